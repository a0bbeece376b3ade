package api

import (
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/prematurebabys/community/internal/social"
	"github.com/prematurebabys/community/pkg/logging"
)

// SocialAPI provides social-media relay endpoints
type SocialAPI struct {
	relay  *social.Relay
	logger *zap.Logger
}

// NewSocialAPI creates a new social API
func NewSocialAPI(relay *social.Relay) *SocialAPI {
	return &SocialAPI{
		relay:  relay,
		logger: logging.WithComponent("social-api"),
	}
}

// Status handles GET /social-media/status
func (a *SocialAPI) Status(c *gin.Context) {
	c.JSON(http.StatusOK, a.relay.Status())
}

type socialPostRequest struct {
	Content   string   `json:"content"`
	Platforms []string `json:"platforms"`
	MediaURL  string   `json:"media_url"`
}

// Post handles POST /social-media/post. Platform results are independent;
// the aggregate response is always 200 with per-platform outcomes.
func (a *SocialAPI) Post(c *gin.Context) {
	var req socialPostRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, "invalid request body")
		return
	}
	if req.Content == "" {
		respondError(c, http.StatusBadRequest, "Content is required")
		return
	}
	if len(req.Platforms) == 0 {
		respondError(c, http.StatusBadRequest, "At least one platform must be specified")
		return
	}

	results := a.relay.Post(c.Request.Context(), req.Content, req.MediaURL, req.Platforms)
	a.logger.Info("Relayed post", zap.Strings("platforms", req.Platforms))
	c.JSON(http.StatusOK, results)
}

type scheduleRequest struct {
	Content      string   `json:"content"`
	Platforms    []string `json:"platforms"`
	ScheduleTime string   `json:"schedule_time"`
	MediaURL     string   `json:"media_url"`
}

// Schedule handles POST /social-media/schedule. The request is validated and
// echoed back; nothing is persisted or executed later.
func (a *SocialAPI) Schedule(c *gin.Context) {
	var req scheduleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, "invalid request body")
		return
	}
	if req.Content == "" || len(req.Platforms) == 0 || req.ScheduleTime == "" {
		respondError(c, http.StatusBadRequest, "Content, platforms, and schedule_time are required")
		return
	}

	now := time.Now().UTC()
	scheduledPost := gin.H{
		"id":            fmt.Sprintf("scheduled_%d", now.Unix()),
		"content":       req.Content,
		"platforms":     req.Platforms,
		"media_url":     req.MediaURL,
		"schedule_time": req.ScheduleTime,
		"status":        "scheduled",
		"created_at":    now.Format(time.RFC3339),
	}

	c.JSON(http.StatusOK, gin.H{
		"success":        true,
		"scheduled_post": scheduledPost,
		"message":        "Post scheduled successfully",
	})
}

// TestConnection handles GET /social-media/test-connection/:platform
func (a *SocialAPI) TestConnection(c *gin.Context) {
	platform, err := social.ParsePlatform(c.Param("platform"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": err.Error()})
		return
	}

	result := a.relay.TestConnection(c.Request.Context(), platform)
	if !result.Success {
		c.JSON(http.StatusBadRequest, result)
		return
	}
	c.JSON(http.StatusOK, result)
}

type generateSocialContentRequest struct {
	Topic    string `json:"topic"`
	Platform string `json:"platform"`
	Tone     string `json:"tone"`
}

// GenerateContent handles POST /social-media/generate-content
func (a *SocialAPI) GenerateContent(c *gin.Context) {
	var req generateSocialContentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, "invalid request body")
		return
	}
	if req.Topic == "" {
		respondError(c, http.StatusBadRequest, "Topic is required")
		return
	}
	if req.Platform == "" {
		req.Platform = "general"
	}
	if req.Tone == "" {
		req.Tone = "supportive"
	}

	c.JSON(http.StatusOK, gin.H{
		"content": fmt.Sprintf(
			"Compassionate content about %s for %s - Generated with love and understanding for NICU families 💜",
			req.Topic, req.Platform),
		"hashtags":     []string{"#NICUFamily", "#PrematureBaby", "#NICUSupport", "#PremieParents"},
		"platform":     req.Platform,
		"tone":         req.Tone,
		"generated_at": time.Now().UTC().Format(time.RFC3339),
	})
}
