package db

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/prematurebabys/community/internal/models"
)

// Repository provides database access methods
type Repository struct {
	db *gorm.DB
}

// NewRepository creates a new repository
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// BlogRepository provides blog-related database operations
type BlogRepository struct {
	*Repository
}

// NewBlogRepository creates a new blog repository
func NewBlogRepository(repo *Repository) *BlogRepository {
	return &BlogRepository{Repository: repo}
}

// ListPublished retrieves published posts, newest first
func (r *BlogRepository) ListPublished(ctx context.Context) ([]*models.BlogPost, error) {
	var posts []*models.BlogPost
	if err := r.db.WithContext(ctx).
		Where("published = ?", true).
		Order("created_at DESC").
		Find(&posts).Error; err != nil {
		return nil, err
	}
	return posts, nil
}

// GetByID retrieves a blog post by ID
func (r *BlogRepository) GetByID(ctx context.Context, id int64) (*models.BlogPost, error) {
	var post models.BlogPost
	if err := r.db.WithContext(ctx).First(&post, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &post, nil
}

// Create creates a new blog post
func (r *BlogRepository) Create(ctx context.Context, post *models.BlogPost) error {
	return r.db.WithContext(ctx).Create(post).Error
}

// Update updates a blog post
func (r *BlogRepository) Update(ctx context.Context, post *models.BlogPost) error {
	return r.db.WithContext(ctx).Save(post).Error
}

// Delete deletes a blog post
func (r *BlogRepository) Delete(ctx context.Context, post *models.BlogPost) error {
	return r.db.WithContext(ctx).Delete(post).Error
}

// ForumRepository provides forum-related database operations
type ForumRepository struct {
	*Repository
}

// NewForumRepository creates a new forum repository
func NewForumRepository(repo *Repository) *ForumRepository {
	return &ForumRepository{Repository: repo}
}

// ListCategories retrieves all categories with their threads loaded
func (r *ForumRepository) ListCategories(ctx context.Context) ([]*models.ForumCategory, error) {
	var categories []*models.ForumCategory
	if err := r.db.WithContext(ctx).Preload("Threads").Find(&categories).Error; err != nil {
		return nil, err
	}
	return categories, nil
}

// CreateCategory creates a new category
func (r *ForumRepository) CreateCategory(ctx context.Context, category *models.ForumCategory) error {
	return r.db.WithContext(ctx).Create(category).Error
}

// SeedCategories creates any of the given categories whose name does not
// exist yet. Safe to call repeatedly.
func (r *ForumRepository) SeedCategories(ctx context.Context, categories []models.ForumCategory) error {
	for i := range categories {
		var count int64
		if err := r.db.WithContext(ctx).
			Model(&models.ForumCategory{}).
			Where("name = ?", categories[i].Name).
			Count(&count).Error; err != nil {
			return err
		}
		if count > 0 {
			continue
		}
		if err := r.db.WithContext(ctx).Create(&categories[i]).Error; err != nil {
			return err
		}
	}
	return nil
}

// ListThreads retrieves approved threads, pinned first then most recently
// updated, optionally filtered by category
func (r *ForumRepository) ListThreads(ctx context.Context, categoryID *int64) ([]*models.ForumThread, error) {
	query := r.db.WithContext(ctx).
		Preload("Category").
		Preload("Posts").
		Where("approved = ?", true)
	if categoryID != nil {
		query = query.Where("category_id = ?", *categoryID)
	}

	var threads []*models.ForumThread
	if err := query.
		Order("pinned DESC").
		Order("updated_at DESC").
		Find(&threads).Error; err != nil {
		return nil, err
	}
	return threads, nil
}

// GetThread retrieves a thread by ID with its category and posts loaded
func (r *ForumRepository) GetThread(ctx context.Context, id int64) (*models.ForumThread, error) {
	var thread models.ForumThread
	if err := r.db.WithContext(ctx).
		Preload("Category").
		Preload("Posts").
		First(&thread, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &thread, nil
}

// CreateThread creates a new thread
func (r *ForumRepository) CreateThread(ctx context.Context, thread *models.ForumThread) error {
	return r.db.WithContext(ctx).Create(thread).Error
}

// ListThreadPosts retrieves the approved posts of a thread, oldest first
func (r *ForumRepository) ListThreadPosts(ctx context.Context, threadID int64) ([]*models.ForumPost, error) {
	var posts []*models.ForumPost
	if err := r.db.WithContext(ctx).
		Where("thread_id = ? AND approved = ?", threadID, true).
		Order("created_at ASC").
		Find(&posts).Error; err != nil {
		return nil, err
	}
	return posts, nil
}

// CreatePost creates a reply and bumps the parent thread's updated_at in the
// same transaction
func (r *ForumRepository) CreatePost(ctx context.Context, post *models.ForumPost) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(post).Error; err != nil {
			return err
		}
		return tx.Model(&models.ForumThread{}).
			Where("id = ?", post.ThreadID).
			Update("updated_at", tx.NowFunc()).Error
	})
}

// UnapprovedThreads retrieves threads awaiting moderation
func (r *ForumRepository) UnapprovedThreads(ctx context.Context) ([]*models.ForumThread, error) {
	var threads []*models.ForumThread
	if err := r.db.WithContext(ctx).
		Preload("Category").
		Preload("Posts").
		Where("approved = ?", false).
		Find(&threads).Error; err != nil {
		return nil, err
	}
	return threads, nil
}

// UnapprovedPosts retrieves posts awaiting moderation
func (r *ForumRepository) UnapprovedPosts(ctx context.Context) ([]*models.ForumPost, error) {
	var posts []*models.ForumPost
	if err := r.db.WithContext(ctx).
		Where("approved = ?", false).
		Find(&posts).Error; err != nil {
		return nil, err
	}
	return posts, nil
}

// Approve flips the approved flag of a thread or post. Approving content that
// is already approved is a no-op that still reports found. Returns false when
// no row matches the id.
func (r *ForumRepository) Approve(ctx context.Context, kind models.ContentKind, id int64) (bool, error) {
	var model interface{}
	switch kind {
	case models.ContentKindThread:
		model = &models.ForumThread{}
	case models.ContentKindPost:
		model = &models.ForumPost{}
	default:
		return false, fmt.Errorf("invalid content type: %s", kind)
	}

	result := r.db.WithContext(ctx).
		Model(model).
		Where("id = ?", id).
		Update("approved", true)
	if result.Error != nil {
		return false, result.Error
	}
	return result.RowsAffected > 0, nil
}

// AnalyticsRepository provides analytics-related database operations
type AnalyticsRepository struct {
	*Repository
}

// NewAnalyticsRepository creates a new analytics repository
func NewAnalyticsRepository(repo *Repository) *AnalyticsRepository {
	return &AnalyticsRepository{Repository: repo}
}

// CreatePageView appends a page view record
func (r *AnalyticsRepository) CreatePageView(ctx context.Context, pv *models.PageView) error {
	return r.db.WithContext(ctx).Create(pv).Error
}

// referralCodeAttempts bounds the unique-code retry loop
const referralCodeAttempts = 5

// MintReferralCode returns a new 8-character referral code
func MintReferralCode() string {
	return uuid.New().String()[:8]
}

// CreateShareLink writes a ShareEvent and a ReferralTracking row sharing a
// freshly minted referral code. Both rows are committed in one transaction;
// a code collision on the unique index retries with a new code.
func (r *AnalyticsRepository) CreateShareLink(ctx context.Context, contentType string, contentID int64, platform, targetURL string) (*models.ShareEvent, *models.ReferralTracking, error) {
	var lastErr error
	for attempt := 0; attempt < referralCodeAttempts; attempt++ {
		code := MintReferralCode()

		event := &models.ShareEvent{
			ContentType:  contentType,
			ContentID:    contentID,
			Platform:     platform,
			ShareURL:     targetURL,
			ReferralCode: code,
		}
		referral := &models.ReferralTracking{
			ReferralCode: code,
			OriginalURL:  targetURL,
		}

		err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
			if err := tx.Create(referral).Error; err != nil {
				return err
			}
			return tx.Create(event).Error
		})
		if err == nil {
			return event, referral, nil
		}
		if !errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, nil, err
		}
		lastErr = err
	}
	return nil, nil, fmt.Errorf("failed to mint unique referral code: %w", lastErr)
}

// ResolveReferral looks up a referral code, incrementing the tracking row's
// click counter and the matching share event's click counter. Returns nil
// when the code is unknown, without mutating anything.
func (r *AnalyticsRepository) ResolveReferral(ctx context.Context, code string) (*models.ReferralTracking, error) {
	var referral models.ReferralTracking
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("referral_code = ?", code).First(&referral).Error; err != nil {
			return err
		}
		if err := tx.Model(&referral).
			Update("clicks", gorm.Expr("clicks + 1")).Error; err != nil {
			return err
		}
		// The share event is linked only by code; it may be absent.
		return tx.Model(&models.ShareEvent{}).
			Where("referral_code = ?", code).
			Update("clicks", gorm.Expr("clicks + 1")).Error
	})
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &referral, nil
}

// PageCount is one entry of the top-pages dashboard listing
type PageCount struct {
	URL   string `json:"url"`
	Views int64  `json:"views"`
}

// PlatformStats aggregates shares and clicks for one platform
type PlatformStats struct {
	Platform string `json:"platform"`
	Shares   int64  `json:"shares"`
	Clicks   int64  `json:"clicks"`
}

// DashboardData is the aggregate payload backing the analytics dashboard
type DashboardData struct {
	TotalPageviews    int64                    `json:"total_pageviews"`
	TotalShares       int64                    `json:"total_shares"`
	TopPages          []PageCount              `json:"top_pages"`
	PlatformBreakdown []PlatformStats          `json:"platform_breakdown"`
	TopReferrals      []map[string]interface{} `json:"top_referrals"`
}

// Dashboard computes the aggregate counters for the given trailing window
func (r *AnalyticsRepository) Dashboard(ctx context.Context, days int) (*DashboardData, error) {
	since := time.Now().UTC().AddDate(0, 0, -days)
	data := &DashboardData{
		TopPages:          []PageCount{},
		PlatformBreakdown: []PlatformStats{},
		TopReferrals:      []map[string]interface{}{},
	}

	if err := r.db.WithContext(ctx).
		Model(&models.PageView{}).
		Where("timestamp >= ?", since).
		Count(&data.TotalPageviews).Error; err != nil {
		return nil, err
	}

	if err := r.db.WithContext(ctx).
		Model(&models.PageView{}).
		Select("page_url AS url, COUNT(id) AS views").
		Where("timestamp >= ?", since).
		Group("page_url").
		Order("views DESC").
		Limit(10).
		Scan(&data.TopPages).Error; err != nil {
		return nil, err
	}

	if err := r.db.WithContext(ctx).
		Model(&models.ShareEvent{}).
		Where("timestamp >= ?", since).
		Count(&data.TotalShares).Error; err != nil {
		return nil, err
	}

	if err := r.db.WithContext(ctx).
		Model(&models.ShareEvent{}).
		Select("platform, COUNT(id) AS shares, COALESCE(SUM(clicks), 0) AS clicks").
		Where("timestamp >= ?", since).
		Group("platform").
		Scan(&data.PlatformBreakdown).Error; err != nil {
		return nil, err
	}

	var referrals []*models.ReferralTracking
	if err := r.db.WithContext(ctx).
		Where("created_at >= ?", since).
		Order("clicks DESC").
		Limit(10).
		Find(&referrals).Error; err != nil {
		return nil, err
	}
	for _, ref := range referrals {
		data.TopReferrals = append(data.TopReferrals, ref.AsMap())
	}

	return data, nil
}
