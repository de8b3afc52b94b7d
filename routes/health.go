package routes

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// RegisterHealthRoutes sets up the liveness endpoint.
func RegisterHealthRoutes(router *gin.Engine) {
	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
}
