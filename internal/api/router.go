package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/prematurebabys/community/internal/cache"
	"github.com/prematurebabys/community/internal/db"
	"github.com/prematurebabys/community/internal/llm"
	"github.com/prematurebabys/community/internal/social"
	"github.com/prematurebabys/community/pkg/config"
	"github.com/prematurebabys/community/pkg/logging"
)

// Router sets up API routes
type Router struct {
	blog      *BlogAPI
	forum     *ForumAPI
	analytics *AnalyticsAPI
	social    *SocialAPI
	webhook   *WebhookAPI
	logger    *zap.Logger
}

// NewRouter creates a new API router
func NewRouter(database *db.DB, redisCache *cache.Cache, llmClient *llm.Client, relay *social.Relay, site config.SiteConfig) *Router {
	repo := db.NewRepository(database.DB)

	return &Router{
		blog:      NewBlogAPI(db.NewBlogRepository(repo), llmClient),
		forum:     NewForumAPI(db.NewForumRepository(repo), llmClient),
		analytics: NewAnalyticsAPI(db.NewAnalyticsRepository(repo), redisCache, site),
		social:    NewSocialAPI(relay),
		webhook:   NewWebhookAPI(),
		logger:    logging.WithComponent("api-router"),
	}
}

// SetupRoutes sets up all API routes
func (r *Router) SetupRoutes(engine *gin.Engine) {
	// Health check endpoints
	engine.GET("/health", r.healthHandler)
	engine.GET("/.well-known/healthcheck.json", r.healthHandler)

	// Blog
	engine.GET("/blog/posts", r.blog.ListPosts)
	engine.POST("/blog/posts", r.blog.CreatePost)
	engine.GET("/blog/posts/:id", r.blog.GetPost)
	engine.PUT("/blog/posts/:id", r.blog.UpdatePost)
	engine.DELETE("/blog/posts/:id", r.blog.DeletePost)
	engine.POST("/blog/generate", r.blog.GenerateContent)

	// Forum
	engine.GET("/forum/categories", r.forum.ListCategories)
	engine.POST("/forum/categories", r.forum.CreateCategory)
	engine.GET("/forum/threads", r.forum.ListThreads)
	engine.POST("/forum/threads", r.forum.CreateThread)
	engine.GET("/forum/threads/:id", r.forum.GetThread)
	engine.POST("/forum/posts", r.forum.CreatePost)
	engine.GET("/forum/moderation/threads", r.forum.ModerationThreads)
	engine.GET("/forum/moderation/posts", r.forum.ModerationPosts)
	engine.POST("/forum/moderation/approve/:content_type/:content_id", r.forum.ApproveContent)
	engine.POST("/forum/init", r.forum.InitForum)

	// Analytics and referral tracking
	engine.POST("/analytics/pageview", r.analytics.TrackPageView)
	engine.POST("/analytics/create-share-link", r.analytics.CreateShareLink)
	engine.GET("/share/:referral_code", r.analytics.TrackReferralClick)
	engine.GET("/analytics/dashboard", r.analytics.Dashboard)
	engine.POST("/analytics/auto-post", r.analytics.AutoPost)

	// Social media relay
	engine.GET("/social-media/status", r.social.Status)
	engine.POST("/social-media/post", r.social.Post)
	engine.POST("/social-media/schedule", r.social.Schedule)
	engine.GET("/social-media/test-connection/:platform", r.social.TestConnection)
	engine.POST("/social-media/generate-content", r.social.GenerateContent)

	// Webhooks
	engine.POST("/webhook", r.webhook.Handle)

	r.logger.Info("Routes registered")
}

// healthHandler handles health check requests
func (r *Router) healthHandler(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":  "OK",
		"service": "premie-community-api",
	})
}
