package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/prematurebabys/community/pkg/logging"
)

// WebhookAPI accepts inbound webhook notifications
type WebhookAPI struct {
	logger *zap.Logger
}

// NewWebhookAPI creates a new webhook API
func NewWebhookAPI() *WebhookAPI {
	return &WebhookAPI{
		logger: logging.WithComponent("webhook-api"),
	}
}

// Handle handles POST /webhook. Any valid JSON payload is accepted, logged
// and acknowledged; there is no dispatch on its contents yet.
func (w *WebhookAPI) Handle(c *gin.Context) {
	var payload interface{}
	if err := c.ShouldBindJSON(&payload); err != nil {
		respondError(c, http.StatusBadRequest, "invalid request body")
		return
	}

	w.logger.Info("Received webhook", zap.Any("payload", payload))
	c.JSON(http.StatusOK, gin.H{"status": "success"})
}
