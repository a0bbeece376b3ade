package models

import (
	"fmt"
	"time"
)

// ForumCategory represents a discussion category
type ForumCategory struct {
	ID          int64     `gorm:"primaryKey;autoIncrement;column:id"`
	Name        string    `gorm:"type:varchar(100);not null;column:name"`
	Description string    `gorm:"type:text;column:description"`
	CreatedAt   time.Time `gorm:"not null;column:created_at"`

	// Relationships
	Threads []ForumThread `gorm:"foreignKey:CategoryID;references:ID"`
}

// TableName specifies the table name for ForumCategory
func (ForumCategory) TableName() string {
	return "forum_categories"
}

// AsMap returns the API representation of the category
func (c *ForumCategory) AsMap() map[string]interface{} {
	return map[string]interface{}{
		"id":           c.ID,
		"name":         c.Name,
		"description":  c.Description,
		"created_at":   c.CreatedAt.UTC().Format(time.RFC3339),
		"thread_count": len(c.Threads),
	}
}

// ForumThread represents a discussion thread
type ForumThread struct {
	ID         int64     `gorm:"primaryKey;autoIncrement;column:id"`
	Title      string    `gorm:"type:varchar(200);not null;column:title"`
	Content    string    `gorm:"type:text;not null;column:content"`
	AuthorID   int64     `gorm:"not null;column:author_id"`
	CategoryID int64     `gorm:"not null;column:category_id"`
	CreatedAt  time.Time `gorm:"not null;column:created_at"`
	UpdatedAt  time.Time `gorm:"not null;column:updated_at"`
	Pinned     bool      `gorm:"not null;default:false;column:pinned"`
	Locked     bool      `gorm:"not null;default:false;column:locked"`
	Approved   bool      `gorm:"not null;default:true;column:approved"`

	// Relationships
	Category *ForumCategory `gorm:"foreignKey:CategoryID;references:ID"`
	Posts    []ForumPost    `gorm:"foreignKey:ThreadID;references:ID;constraint:OnDelete:CASCADE"`
}

// TableName specifies the table name for ForumThread
func (ForumThread) TableName() string {
	return "forum_threads"
}

// LastPostAt derives the time of the latest reply, falling back to the
// thread's own creation time when there are no replies.
func (t *ForumThread) LastPostAt() time.Time {
	last := t.CreatedAt
	for _, post := range t.Posts {
		if post.CreatedAt.After(last) {
			last = post.CreatedAt
		}
	}
	return last
}

// AsMap returns the API representation of the thread
func (t *ForumThread) AsMap() map[string]interface{} {
	categoryName := "Unknown"
	if t.Category != nil {
		categoryName = t.Category.Name
	}
	return map[string]interface{}{
		"id":            t.ID,
		"title":         t.Title,
		"content":       t.Content,
		"author_id":     t.AuthorID,
		"author_name":   "Unknown",
		"category_id":   t.CategoryID,
		"category_name": categoryName,
		"created_at":    t.CreatedAt.UTC().Format(time.RFC3339),
		"updated_at":    t.UpdatedAt.UTC().Format(time.RFC3339),
		"pinned":        t.Pinned,
		"locked":        t.Locked,
		"approved":      t.Approved,
		"post_count":    len(t.Posts),
		"last_post_at":  t.LastPostAt().UTC().Format(time.RFC3339),
	}
}

// ForumPost represents a reply within a thread
type ForumPost struct {
	ID        int64     `gorm:"primaryKey;autoIncrement;column:id"`
	Content   string    `gorm:"type:text;not null;column:content"`
	AuthorID  int64     `gorm:"not null;column:author_id"`
	ThreadID  int64     `gorm:"not null;column:thread_id"`
	CreatedAt time.Time `gorm:"not null;column:created_at"`
	UpdatedAt time.Time `gorm:"not null;column:updated_at"`
	Approved  bool      `gorm:"not null;default:true;column:approved"`
}

// TableName specifies the table name for ForumPost
func (ForumPost) TableName() string {
	return "forum_posts"
}

// AsMap returns the API representation of the post
func (p *ForumPost) AsMap() map[string]interface{} {
	return map[string]interface{}{
		"id":          p.ID,
		"content":     p.Content,
		"author_id":   p.AuthorID,
		"author_name": "Unknown",
		"thread_id":   p.ThreadID,
		"created_at":  p.CreatedAt.UTC().Format(time.RFC3339),
		"updated_at":  p.UpdatedAt.UTC().Format(time.RFC3339),
		"approved":    p.Approved,
	}
}

// ContentKind identifies which moderated entity an operation targets
type ContentKind string

// Moderated content kinds
const (
	ContentKindThread ContentKind = "thread"
	ContentKindPost   ContentKind = "post"
)

// ParseContentKind maps a path segment to a ContentKind
func ParseContentKind(s string) (ContentKind, error) {
	switch ContentKind(s) {
	case ContentKindThread:
		return ContentKindThread, nil
	case ContentKindPost:
		return ContentKindPost, nil
	default:
		return "", fmt.Errorf("invalid content type: %s", s)
	}
}
