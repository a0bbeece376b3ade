package api

import (
	"github.com/gin-gonic/gin"
)

// respondError writes the standard {"error": message} payload
func respondError(c *gin.Context, code int, message string) {
	c.JSON(code, gin.H{"error": message})
}
