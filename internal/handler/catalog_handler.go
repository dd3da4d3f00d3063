package handler

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
)

// CatalogClient is the outbound interface to the external card catalog.
type CatalogClient interface {
	Search(ctx context.Context, query string, page, pageSize int) (json.RawMessage, error)
	GetByID(ctx context.Context, cardID string) (json.RawMessage, error)
}

// CatalogHandler proxies search and lookup requests to the catalog API.
// Responses are passed through unmodified.
type CatalogHandler struct {
	client CatalogClient
}

func NewCatalogHandler(client CatalogClient) *CatalogHandler {
	return &CatalogHandler{client: client}
}

func (h *CatalogHandler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.GET("/search", h.Search)
	rg.GET("/card/:id", h.GetCard)
}

// Search proxies a card search to the catalog service
func (h *CatalogHandler) Search(c *gin.Context) {
	query := c.Query("q")
	if query == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Query parameter 'q' is required"})
		return
	}

	page, err := strconv.Atoi(c.DefaultQuery("page", "1"))
	if err != nil || page < 1 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid page"})
		return
	}
	pageSize, err := strconv.Atoi(c.DefaultQuery("pageSize", "20"))
	if err != nil || pageSize < 1 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid pageSize"})
		return
	}

	body, err := h.client.Search(c.Request.Context(), query, page, pageSize)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch cards"})
		return
	}

	c.Data(http.StatusOK, "application/json", body)
}

// GetCard proxies a card lookup by id to the catalog service
func (h *CatalogHandler) GetCard(c *gin.Context) {
	cardID := c.Param("id")

	body, err := h.client.GetByID(c.Request.Context(), cardID)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": fmt.Sprintf("Failed to fetch card %s", cardID)})
		return
	}

	c.Data(http.StatusOK, "application/json", body)
}
