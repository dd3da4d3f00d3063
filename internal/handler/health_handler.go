package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// Welcome is the root endpoint.
func Welcome(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"message": "Welcome to BinderBuilder API!"})
}

// Health reports service liveness.
func Health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":  "healthy",
		"message": "BinderBuilder API is running",
	})
}
