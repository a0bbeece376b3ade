package models

import (
	"strings"
	"time"
)

// BlogPost represents a blog article
type BlogPost struct {
	ID            int64     `gorm:"primaryKey;autoIncrement;column:id"`
	Title         string    `gorm:"type:varchar(200);not null;column:title"`
	Content       string    `gorm:"type:text;not null;column:content"`
	Excerpt       string    `gorm:"type:text;column:excerpt"`
	Author        string    `gorm:"type:varchar(100);not null;column:author"`
	CreatedAt     time.Time `gorm:"not null;column:created_at"`
	UpdatedAt     time.Time `gorm:"not null;column:updated_at"`
	Published     bool      `gorm:"not null;default:false;column:published"`
	FeaturedImage string    `gorm:"type:varchar(500);column:featured_image"`
	Tags          string    `gorm:"type:varchar(500);column:tags"`
}

// TableName specifies the table name for BlogPost
func (BlogPost) TableName() string {
	return "blog_posts"
}

// TagList splits the comma-joined tags column into a slice
func (p *BlogPost) TagList() []string {
	if p.Tags == "" {
		return []string{}
	}
	return strings.Split(p.Tags, ",")
}

// SetTagList joins a tag slice into the tags column
func (p *BlogPost) SetTagList(tags []string) {
	p.Tags = strings.Join(tags, ",")
}

// AsMap returns the API representation of the post
func (p *BlogPost) AsMap() map[string]interface{} {
	return map[string]interface{}{
		"id":             p.ID,
		"title":          p.Title,
		"content":        p.Content,
		"excerpt":        p.Excerpt,
		"author":         p.Author,
		"created_at":     p.CreatedAt.UTC().Format(time.RFC3339),
		"updated_at":     p.UpdatedAt.UTC().Format(time.RFC3339),
		"published":      p.Published,
		"featured_image": p.FeaturedImage,
		"tags":           p.TagList(),
	}
}
