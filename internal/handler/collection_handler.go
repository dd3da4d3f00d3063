package handler

import (
	"context"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"binderbuilder/internal/dto"
	"binderbuilder/internal/models"
	"binderbuilder/internal/service"
)

type CollectionHandler struct {
	svc service.CollectionService
}

func NewCollectionHandler(svc service.CollectionService) *CollectionHandler {
	return &CollectionHandler{svc: svc}
}

// RegisterRoutes registers the collection routes. The group must already be
// protected by the auth middleware.
func (h *CollectionHandler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.GET("/collections", h.ListCollections)
	rg.GET("/collection/:id", h.GetCollection)
	rg.POST("/collection/:id/add-card", h.AddCard)
}

// ListCollections lists the requesting user's collections
func (h *CollectionHandler) ListCollections(c *gin.Context) {
	userID, exists := c.Get("userID")
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "user not authenticated"})
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
	defer cancel()

	collections, err := h.svc.ListCollections(ctx, userID.(string))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to list collections"})
		return
	}
	if collections == nil {
		collections = []models.Collection{}
	}

	c.JSON(http.StatusOK, collections)
}

// GetCollection lists a collection's cards, most recently added first
func (h *CollectionHandler) GetCollection(c *gin.Context) {
	collectionID, ok := h.requireOwnership(c)
	if !ok {
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
	defer cancel()

	cards, err := h.svc.ListCards(ctx, collectionID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to list cards"})
		return
	}
	if cards == nil {
		cards = []models.CollectionCard{}
	}

	c.JSON(http.StatusOK, dto.CollectionCardsResponse{
		CollectionID: collectionID,
		Cards:        cards,
	})
}

// AddCard adds a catalog card to a collection, incrementing quantity when
// the card is already there
func (h *CollectionHandler) AddCard(c *gin.Context) {
	collectionID, ok := h.requireOwnership(c)
	if !ok {
		return
	}

	var req dto.AddCardRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
	defer cancel()

	cardID, message, err := h.svc.AddCard(ctx, collectionID, req.ToModel())
	if err == service.ErrMissingCardFields {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Missing required card data"})
		return
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to add card to collection"})
		return
	}

	c.JSON(http.StatusOK, dto.AddCardResponse{
		Message: message,
		CardID:  cardID,
	})
}

// requireOwnership parses the collection id parameter and verifies the
// collection belongs to the authenticated user. On failure it writes the
// response and returns ok=false.
func (h *CollectionHandler) requireOwnership(c *gin.Context) (collectionID int64, ok bool) {
	userValue, exists := c.Get("userID")
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "user not authenticated"})
		return 0, false
	}
	userID := userValue.(string)

	collectionID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid collection id"})
		return 0, false
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
	defer cancel()

	if err := h.svc.AssertOwnership(ctx, collectionID, userID); err != nil {
		if err == service.ErrNotOwner {
			c.JSON(http.StatusForbidden, gin.H{"error": "collection does not belong to user"})
			return 0, false
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to check collection ownership"})
		return 0, false
	}

	return collectionID, true
}
