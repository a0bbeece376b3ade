package api

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/prematurebabys/community/internal/db"
	"github.com/prematurebabys/community/internal/llm"
	"github.com/prematurebabys/community/internal/models"
	"github.com/prematurebabys/community/pkg/logging"
)

// BlogAPI provides blog endpoints
type BlogAPI struct {
	repo   *db.BlogRepository
	llm    *llm.Client
	logger *zap.Logger
}

// NewBlogAPI creates a new blog API
func NewBlogAPI(repo *db.BlogRepository, llmClient *llm.Client) *BlogAPI {
	return &BlogAPI{
		repo:   repo,
		llm:    llmClient,
		logger: logging.WithComponent("blog-api"),
	}
}

// ListPosts handles GET /blog/posts
func (a *BlogAPI) ListPosts(c *gin.Context) {
	posts, err := a.repo.ListPublished(c.Request.Context())
	if err != nil {
		a.logger.Error("Failed to list blog posts", zap.Error(err))
		respondError(c, http.StatusInternalServerError, "failed to list posts")
		return
	}

	result := make([]map[string]interface{}, 0, len(posts))
	for _, post := range posts {
		result = append(result, post.AsMap())
	}
	c.JSON(http.StatusOK, result)
}

// GetPost handles GET /blog/posts/:id
func (a *BlogAPI) GetPost(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		respondError(c, http.StatusBadRequest, "invalid post id")
		return
	}

	post, err := a.repo.GetByID(c.Request.Context(), id)
	if err != nil {
		a.logger.Error("Failed to get blog post", zap.Int64("id", id), zap.Error(err))
		respondError(c, http.StatusInternalServerError, "failed to get post")
		return
	}
	if post == nil {
		respondError(c, http.StatusNotFound, "post not found")
		return
	}

	c.JSON(http.StatusOK, post.AsMap())
}

type createBlogPostRequest struct {
	Title         string   `json:"title"`
	Content       string   `json:"content"`
	Excerpt       string   `json:"excerpt"`
	Author        string   `json:"author"`
	Published     bool     `json:"published"`
	FeaturedImage string   `json:"featured_image"`
	Tags          []string `json:"tags"`
}

// CreatePost handles POST /blog/posts
func (a *BlogAPI) CreatePost(c *gin.Context) {
	var req createBlogPostRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, "invalid request body")
		return
	}

	if req.Author == "" {
		req.Author = "Admin"
	}

	post := &models.BlogPost{
		Title:         req.Title,
		Content:       req.Content,
		Excerpt:       req.Excerpt,
		Author:        req.Author,
		Published:     req.Published,
		FeaturedImage: req.FeaturedImage,
	}
	post.SetTagList(req.Tags)

	if err := a.repo.Create(c.Request.Context(), post); err != nil {
		a.logger.Error("Failed to create blog post", zap.Error(err))
		respondError(c, http.StatusInternalServerError, "failed to create post")
		return
	}

	c.JSON(http.StatusCreated, post.AsMap())
}

type updateBlogPostRequest struct {
	Title         *string  `json:"title"`
	Content       *string  `json:"content"`
	Excerpt       *string  `json:"excerpt"`
	Published     *bool    `json:"published"`
	FeaturedImage *string  `json:"featured_image"`
	Tags          []string `json:"tags"`
}

// UpdatePost handles PUT /blog/posts/:id. Fields absent from the body stay
// unchanged; tags are replaced only when a non-empty list is supplied.
func (a *BlogAPI) UpdatePost(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		respondError(c, http.StatusBadRequest, "invalid post id")
		return
	}

	post, err := a.repo.GetByID(c.Request.Context(), id)
	if err != nil {
		a.logger.Error("Failed to get blog post", zap.Int64("id", id), zap.Error(err))
		respondError(c, http.StatusInternalServerError, "failed to get post")
		return
	}
	if post == nil {
		respondError(c, http.StatusNotFound, "post not found")
		return
	}

	var req updateBlogPostRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, "invalid request body")
		return
	}

	if req.Title != nil {
		post.Title = *req.Title
	}
	if req.Content != nil {
		post.Content = *req.Content
	}
	if req.Excerpt != nil {
		post.Excerpt = *req.Excerpt
	}
	if req.Published != nil {
		post.Published = *req.Published
	}
	if req.FeaturedImage != nil {
		post.FeaturedImage = *req.FeaturedImage
	}
	if len(req.Tags) > 0 {
		post.SetTagList(req.Tags)
	}

	if err := a.repo.Update(c.Request.Context(), post); err != nil {
		a.logger.Error("Failed to update blog post", zap.Int64("id", id), zap.Error(err))
		respondError(c, http.StatusInternalServerError, "failed to update post")
		return
	}

	c.JSON(http.StatusOK, post.AsMap())
}

// DeletePost handles DELETE /blog/posts/:id
func (a *BlogAPI) DeletePost(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		respondError(c, http.StatusBadRequest, "invalid post id")
		return
	}

	post, err := a.repo.GetByID(c.Request.Context(), id)
	if err != nil {
		a.logger.Error("Failed to get blog post", zap.Int64("id", id), zap.Error(err))
		respondError(c, http.StatusInternalServerError, "failed to get post")
		return
	}
	if post == nil {
		respondError(c, http.StatusNotFound, "post not found")
		return
	}

	if err := a.repo.Delete(c.Request.Context(), post); err != nil {
		a.logger.Error("Failed to delete blog post", zap.Int64("id", id), zap.Error(err))
		respondError(c, http.StatusInternalServerError, "failed to delete post")
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Post deleted successfully"})
}

type generateContentRequest struct {
	Topic string `json:"topic"`
}

// GenerateContent handles POST /blog/generate
func (a *BlogAPI) GenerateContent(c *gin.Context) {
	var req generateContentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, "invalid request body")
		return
	}
	if req.Topic == "" {
		respondError(c, http.StatusBadRequest, "Topic is required")
		return
	}

	generated, err := a.llm.GenerateBlogPost(c.Request.Context(), req.Topic)
	if err != nil {
		// Surface the completion-service error text to the caller
		respondError(c, http.StatusInternalServerError, err.Error())
		return
	}

	c.JSON(http.StatusOK, generated)
}
