package api

import (
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/prematurebabys/community/internal/cache"
	"github.com/prematurebabys/community/internal/db"
	"github.com/prematurebabys/community/internal/models"
	"github.com/prematurebabys/community/internal/social"
	"github.com/prematurebabys/community/pkg/config"
	"github.com/prematurebabys/community/pkg/logging"
)

// dashboardCacheTTL bounds staleness of the cached dashboard payload
const dashboardCacheTTL = 60 * time.Second

// defaultDashboardDays is the trailing window when ?days is absent
const defaultDashboardDays = 30

// AnalyticsAPI provides page-view, share-link and dashboard endpoints
type AnalyticsAPI struct {
	repo   *db.AnalyticsRepository
	cache  *cache.Cache
	site   config.SiteConfig
	logger *zap.Logger
}

// NewAnalyticsAPI creates a new analytics API
func NewAnalyticsAPI(repo *db.AnalyticsRepository, redisCache *cache.Cache, site config.SiteConfig) *AnalyticsAPI {
	return &AnalyticsAPI{
		repo:   repo,
		cache:  redisCache,
		site:   site,
		logger: logging.WithComponent("analytics-api"),
	}
}

type pageViewRequest struct {
	PageURL   string `json:"page_url"`
	Referrer  string `json:"referrer"`
	SessionID string `json:"session_id"`
}

// TrackPageView handles POST /analytics/pageview. User agent and client
// address come from the request itself, not the body.
func (a *AnalyticsAPI) TrackPageView(c *gin.Context) {
	var req pageViewRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, "invalid request body")
		return
	}

	pv := &models.PageView{
		PageURL:   req.PageURL,
		UserAgent: c.Request.UserAgent(),
		IPAddress: c.ClientIP(),
		Referrer:  req.Referrer,
		SessionID: req.SessionID,
	}
	if err := a.repo.CreatePageView(c.Request.Context(), pv); err != nil {
		a.logger.Error("Failed to record page view", zap.Error(err))
		respondError(c, http.StatusInternalServerError, "failed to record page view")
		return
	}

	c.JSON(http.StatusOK, gin.H{"status": "success"})
}

type shareLinkRequest struct {
	ContentType string `json:"content_type"`
	ContentID   int64  `json:"content_id"`
	Platform    string `json:"platform"`
	URL         string `json:"url"`
	Title       string `json:"title"`
}

// shareURL builds the public referral URL for a code
func (a *AnalyticsAPI) shareURL(code string) string {
	return fmt.Sprintf("%s/share/%s", a.site.BaseURL, code)
}

// CreateShareLink handles POST /analytics/create-share-link
func (a *AnalyticsAPI) CreateShareLink(c *gin.Context) {
	var req shareLinkRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, "invalid request body")
		return
	}

	_, referral, err := a.repo.CreateShareLink(c.Request.Context(), req.ContentType, req.ContentID, req.Platform, req.URL)
	if err != nil {
		a.logger.Error("Failed to create share link", zap.Error(err))
		respondError(c, http.StatusInternalServerError, "failed to create share link")
		return
	}

	shareURL := a.shareURL(referral.ReferralCode)
	platform, _ := social.ParsePlatform(req.Platform)

	c.JSON(http.StatusOK, gin.H{
		"share_url":             shareURL,
		"referral_code":         referral.ReferralCode,
		"platform_specific_url": social.ShareIntentURL(platform, shareURL, req.Title),
	})
}

// TrackReferralClick handles GET /share/:referral_code. A known code bumps
// both click counters and hands back the destination; an unknown code is a
// 404 with no mutation.
func (a *AnalyticsAPI) TrackReferralClick(c *gin.Context) {
	code := c.Param("referral_code")

	referral, err := a.repo.ResolveReferral(c.Request.Context(), code)
	if err != nil {
		a.logger.Error("Failed to resolve referral", zap.String("code", code), zap.Error(err))
		respondError(c, http.StatusInternalServerError, "failed to resolve referral")
		return
	}
	if referral == nil {
		respondError(c, http.StatusNotFound, "Invalid referral code")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"redirect_url": referral.OriginalURL,
		"message":      "Welcome to our supportive community!",
	})
}

// Dashboard handles GET /analytics/dashboard?days=N
func (a *AnalyticsAPI) Dashboard(c *gin.Context) {
	days := defaultDashboardDays
	if raw := c.Query("days"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed <= 0 {
			respondError(c, http.StatusBadRequest, "invalid days parameter")
			return
		}
		days = parsed
	}

	cacheKey := cache.HashKey("dashboard", strconv.Itoa(days))
	if a.cache != nil {
		var cached db.DashboardData
		if err := a.cache.GetJSON(cacheKey, &cached); err == nil {
			c.JSON(http.StatusOK, &cached)
			return
		}
	}

	data, err := a.repo.Dashboard(c.Request.Context(), days)
	if err != nil {
		a.logger.Error("Failed to compute dashboard", zap.Error(err))
		respondError(c, http.StatusInternalServerError, "failed to compute dashboard")
		return
	}

	if a.cache != nil {
		if err := a.cache.SetJSON(cacheKey, data, dashboardCacheTTL); err != nil {
			a.logger.Warn("Failed to cache dashboard", zap.Error(err))
		}
	}

	c.JSON(http.StatusOK, data)
}

type autoPostRequest struct {
	Content     string   `json:"content"`
	Platforms   []string `json:"platforms"`
	ContentType string   `json:"content_type"`
	ContentID   int64    `json:"content_id"`
	URL         string   `json:"url"`
	Title       string   `json:"title"`
}

// AutoPost handles POST /analytics/auto-post, minting a tracked share link
// per requested platform
func (a *AnalyticsAPI) AutoPost(c *gin.Context) {
	var req autoPostRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, "invalid request body")
		return
	}
	if req.ContentType == "" {
		req.ContentType = "blog"
	}

	results := make(map[string]gin.H, len(req.Platforms))
	for _, platform := range req.Platforms {
		_, referral, err := a.repo.CreateShareLink(c.Request.Context(), req.ContentType, req.ContentID, platform, req.URL)
		if err != nil {
			a.logger.Error("Failed to create share link",
				zap.String("platform", platform), zap.Error(err))
			respondError(c, http.StatusInternalServerError, "failed to create share link")
			return
		}

		results[platform] = gin.H{
			"status":    "scheduled",
			"share_url": a.shareURL(referral.ReferralCode),
			"message":   fmt.Sprintf("Content scheduled for %s", platform),
		}
	}

	c.JSON(http.StatusOK, results)
}
