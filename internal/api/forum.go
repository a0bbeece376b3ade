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

// defaultAuthorID is used until the platform grows an account system
const defaultAuthorID int64 = 1

// moderationNote is the advisory message shown to authors of held content
const moderationNote = "Your post is being reviewed to ensure it provides the best support for our community."

// postModerationNote is the variant for thread replies
const postModerationNote = "Your message is being reviewed to ensure it provides the best support for our community."

// defaultCategories returns the categories seeded by POST /forum/init. A
// fresh slice per call, since gorm writes generated IDs back into the rows.
func defaultCategories() []models.ForumCategory {
	return []models.ForumCategory{
		{
			Name:        "NICU Support",
			Description: "Share your NICU journey, ask questions, and find support from other families",
		},
		{
			Name:        "Coming Home",
			Description: "Discuss the transition from NICU to home, equipment, and ongoing care",
		},
		{
			Name:        "Feeding & Growth",
			Description: "Share experiences about feeding challenges, growth milestones, and nutrition",
		},
		{
			Name:        "Mental Health & Wellness",
			Description: "A safe space to discuss the emotional aspects of the NICU journey",
		},
		{
			Name:        "Celebrations & Milestones",
			Description: "Celebrate the victories, big and small, in your premature baby's journey",
		},
		{
			Name:        "Resources & Recommendations",
			Description: "Share helpful resources, products, and recommendations for NICU families",
		},
	}
}

// ForumAPI provides forum endpoints
type ForumAPI struct {
	repo   *db.ForumRepository
	llm    *llm.Client
	logger *zap.Logger
}

// NewForumAPI creates a new forum API
func NewForumAPI(repo *db.ForumRepository, llmClient *llm.Client) *ForumAPI {
	return &ForumAPI{
		repo:   repo,
		llm:    llmClient,
		logger: logging.WithComponent("forum-api"),
	}
}

// ListCategories handles GET /forum/categories
func (a *ForumAPI) ListCategories(c *gin.Context) {
	categories, err := a.repo.ListCategories(c.Request.Context())
	if err != nil {
		a.logger.Error("Failed to list categories", zap.Error(err))
		respondError(c, http.StatusInternalServerError, "failed to list categories")
		return
	}

	result := make([]map[string]interface{}, 0, len(categories))
	for _, category := range categories {
		result = append(result, category.AsMap())
	}
	c.JSON(http.StatusOK, result)
}

type createCategoryRequest struct {
	Name        string `json:"name"`
	Description string `json:"description"`
}

// CreateCategory handles POST /forum/categories
func (a *ForumAPI) CreateCategory(c *gin.Context) {
	var req createCategoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, "invalid request body")
		return
	}

	category := &models.ForumCategory{
		Name:        req.Name,
		Description: req.Description,
	}
	if err := a.repo.CreateCategory(c.Request.Context(), category); err != nil {
		a.logger.Error("Failed to create category", zap.Error(err))
		respondError(c, http.StatusInternalServerError, "failed to create category")
		return
	}

	c.JSON(http.StatusCreated, category.AsMap())
}

// ListThreads handles GET /forum/threads. Only approved threads are listed,
// pinned first then most recently updated.
func (a *ForumAPI) ListThreads(c *gin.Context) {
	var categoryID *int64
	if raw := c.Query("category_id"); raw != "" {
		id, err := strconv.ParseInt(raw, 10, 64)
		if err != nil {
			respondError(c, http.StatusBadRequest, "invalid category_id")
			return
		}
		categoryID = &id
	}

	threads, err := a.repo.ListThreads(c.Request.Context(), categoryID)
	if err != nil {
		a.logger.Error("Failed to list threads", zap.Error(err))
		respondError(c, http.StatusInternalServerError, "failed to list threads")
		return
	}

	result := make([]map[string]interface{}, 0, len(threads))
	for _, thread := range threads {
		result = append(result, thread.AsMap())
	}
	c.JSON(http.StatusOK, result)
}

// GetThread handles GET /forum/threads/:id, returning the thread plus its
// approved posts oldest first
func (a *ForumAPI) GetThread(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		respondError(c, http.StatusBadRequest, "invalid thread id")
		return
	}

	thread, err := a.repo.GetThread(c.Request.Context(), id)
	if err != nil {
		a.logger.Error("Failed to get thread", zap.Int64("id", id), zap.Error(err))
		respondError(c, http.StatusInternalServerError, "failed to get thread")
		return
	}
	if thread == nil {
		respondError(c, http.StatusNotFound, "thread not found")
		return
	}

	posts, err := a.repo.ListThreadPosts(c.Request.Context(), id)
	if err != nil {
		a.logger.Error("Failed to list thread posts", zap.Int64("id", id), zap.Error(err))
		respondError(c, http.StatusInternalServerError, "failed to list posts")
		return
	}

	postMaps := make([]map[string]interface{}, 0, len(posts))
	for _, post := range posts {
		postMaps = append(postMaps, post.AsMap())
	}

	c.JSON(http.StatusOK, gin.H{
		"thread": thread.AsMap(),
		"posts":  postMaps,
	})
}

type createThreadRequest struct {
	Title      string `json:"title"`
	Content    string `json:"content"`
	AuthorID   int64  `json:"author_id"`
	CategoryID int64  `json:"category_id"`
}

// CreateThread handles POST /forum/threads. Content passes through the
// moderation gate before the row is written; a held thread is still created,
// flagged unapproved, with an advisory note in the response.
func (a *ForumAPI) CreateThread(c *gin.Context) {
	var req createThreadRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, "invalid request body")
		return
	}
	if req.AuthorID == 0 {
		req.AuthorID = defaultAuthorID
	}

	decision := a.llm.Moderate(c.Request.Context(), req.Content)

	thread := &models.ForumThread{
		Title:      req.Title,
		Content:    req.Content,
		AuthorID:   req.AuthorID,
		CategoryID: req.CategoryID,
		Approved:   decision.Approved,
	}
	if err := a.repo.CreateThread(c.Request.Context(), thread); err != nil {
		a.logger.Error("Failed to create thread", zap.Error(err))
		respondError(c, http.StatusInternalServerError, "failed to create thread")
		return
	}

	response := thread.AsMap()
	if !decision.Approved {
		response["moderation_note"] = moderationNote
	}
	c.JSON(http.StatusCreated, response)
}

type createPostRequest struct {
	Content  string `json:"content"`
	AuthorID int64  `json:"author_id"`
	ThreadID int64  `json:"thread_id"`
}

// CreatePost handles POST /forum/posts, moderation-gated like threads. The
// parent thread's updated_at is bumped alongside the insert.
func (a *ForumAPI) CreatePost(c *gin.Context) {
	var req createPostRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, "invalid request body")
		return
	}
	if req.AuthorID == 0 {
		req.AuthorID = defaultAuthorID
	}

	decision := a.llm.Moderate(c.Request.Context(), req.Content)

	post := &models.ForumPost{
		Content:  req.Content,
		AuthorID: req.AuthorID,
		ThreadID: req.ThreadID,
		Approved: decision.Approved,
	}
	if err := a.repo.CreatePost(c.Request.Context(), post); err != nil {
		a.logger.Error("Failed to create post", zap.Error(err))
		respondError(c, http.StatusInternalServerError, "failed to create post")
		return
	}

	response := post.AsMap()
	if !decision.Approved {
		response["moderation_note"] = postModerationNote
	}
	c.JSON(http.StatusCreated, response)
}

// ModerationThreads handles GET /forum/moderation/threads
func (a *ForumAPI) ModerationThreads(c *gin.Context) {
	threads, err := a.repo.UnapprovedThreads(c.Request.Context())
	if err != nil {
		a.logger.Error("Failed to list unapproved threads", zap.Error(err))
		respondError(c, http.StatusInternalServerError, "failed to list threads")
		return
	}

	result := make([]map[string]interface{}, 0, len(threads))
	for _, thread := range threads {
		result = append(result, thread.AsMap())
	}
	c.JSON(http.StatusOK, result)
}

// ModerationPosts handles GET /forum/moderation/posts
func (a *ForumAPI) ModerationPosts(c *gin.Context) {
	posts, err := a.repo.UnapprovedPosts(c.Request.Context())
	if err != nil {
		a.logger.Error("Failed to list unapproved posts", zap.Error(err))
		respondError(c, http.StatusInternalServerError, "failed to list posts")
		return
	}

	result := make([]map[string]interface{}, 0, len(posts))
	for _, post := range posts {
		result = append(result, post.AsMap())
	}
	c.JSON(http.StatusOK, result)
}

// ApproveContent handles POST /forum/moderation/approve/:content_type/:content_id.
// Approving already-approved content is a no-op that still succeeds.
func (a *ForumAPI) ApproveContent(c *gin.Context) {
	kind, err := models.ParseContentKind(c.Param("content_type"))
	if err != nil {
		respondError(c, http.StatusBadRequest, "Invalid content type")
		return
	}

	id, err := strconv.ParseInt(c.Param("content_id"), 10, 64)
	if err != nil {
		respondError(c, http.StatusBadRequest, "invalid content id")
		return
	}

	found, err := a.repo.Approve(c.Request.Context(), kind, id)
	if err != nil {
		a.logger.Error("Failed to approve content",
			zap.String("kind", string(kind)), zap.Int64("id", id), zap.Error(err))
		respondError(c, http.StatusInternalServerError, "failed to approve content")
		return
	}
	if !found {
		respondError(c, http.StatusNotFound, "content not found")
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Content approved successfully"})
}

// InitForum handles POST /forum/init, seeding the default categories.
// Categories whose name already exists are skipped, so repeat calls are safe.
func (a *ForumAPI) InitForum(c *gin.Context) {
	if err := a.repo.SeedCategories(c.Request.Context(), defaultCategories()); err != nil {
		a.logger.Error("Failed to seed categories", zap.Error(err))
		respondError(c, http.StatusInternalServerError, "failed to initialize forum")
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Forum initialized successfully"})
}
