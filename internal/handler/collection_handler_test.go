package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"binderbuilder/internal/dto"
	"binderbuilder/internal/models"
	"binderbuilder/internal/service"
)

// MockCollectionService mocks the CollectionService interface
type MockCollectionService struct {
	mock.Mock
}

func (m *MockCollectionService) AssertOwnership(ctx context.Context, collectionID int64, userID string) error {
	args := m.Called(ctx, collectionID, userID)
	return args.Error(0)
}

func (m *MockCollectionService) AddCard(ctx context.Context, collectionID int64, card *models.CollectionCard) (int64, string, error) {
	args := m.Called(ctx, collectionID, card)
	return int64(args.Int(0)), args.String(1), args.Error(2)
}

func (m *MockCollectionService) ListCards(ctx context.Context, collectionID int64) ([]models.CollectionCard, error) {
	args := m.Called(ctx, collectionID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.CollectionCard), args.Error(1)
}

func (m *MockCollectionService) ListCollections(ctx context.Context, userID string) ([]models.Collection, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Collection), args.Error(1)
}

// setupCollectionRouter mounts the collection routes behind a stand-in for
// the auth middleware that injects the given user id.
func setupCollectionRouter(svc service.CollectionService, userID string) *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	group := router.Group("/api")
	group.Use(func(c *gin.Context) {
		c.Set("userID", userID)
	})
	NewCollectionHandler(svc).RegisterRoutes(group)
	return router
}

func TestGetCollection_Forbidden(t *testing.T) {
	mockSvc := new(MockCollectionService)
	router := setupCollectionRouter(mockSvc, "user-456")

	// valid token, but the collection belongs to someone else
	mockSvc.On("AssertOwnership", mock.Anything, int64(1), "user-456").Return(service.ErrNotOwner)

	req, _ := http.NewRequest("GET", "/api/collection/1", nil)
	w := httptest.NewRecorder()

	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusForbidden, w.Code)
	mockSvc.AssertNotCalled(t, "ListCards")
}

func TestGetCollection_Empty(t *testing.T) {
	mockSvc := new(MockCollectionService)
	router := setupCollectionRouter(mockSvc, "user-123")

	mockSvc.On("AssertOwnership", mock.Anything, int64(1), "user-123").Return(nil)
	mockSvc.On("ListCards", mock.Anything, int64(1)).Return([]models.CollectionCard{}, nil)

	req, _ := http.NewRequest("GET", "/api/collection/1", nil)
	w := httptest.NewRecorder()

	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)

	var response dto.CollectionCardsResponse
	json.Unmarshal(w.Body.Bytes(), &response)
	assert.Equal(t, int64(1), response.CollectionID)
	assert.NotNil(t, response.Cards)
	assert.Empty(t, response.Cards)
	// empty collection serializes as [], not null
	assert.Contains(t, w.Body.String(), `"cards":[]`)
}

func TestGetCollection_InvalidID(t *testing.T) {
	mockSvc := new(MockCollectionService)
	router := setupCollectionRouter(mockSvc, "user-123")

	req, _ := http.NewRequest("GET", "/api/collection/abc", nil)
	w := httptest.NewRecorder()

	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	mockSvc.AssertNotCalled(t, "AssertOwnership")
}

func TestAddCard_Handler_Success(t *testing.T) {
	mockSvc := new(MockCollectionService)
	router := setupCollectionRouter(mockSvc, "user-123")

	mockSvc.On("AssertOwnership", mock.Anything, int64(1), "user-123").Return(nil)
	mockSvc.On("AddCard", mock.Anything, int64(1),
		mock.MatchedBy(func(card *models.CollectionCard) bool {
			return card.CatalogCardID == "xy7-54" &&
				card.Name == "Pikachu" &&
				card.SetName == "Ancient Origins" &&
				card.ImageURL == "https://images.pokemontcg.io/xy7/54.png" &&
				card.Price != nil && *card.Price == 0.25
		})).
		Return(42, "Card added to collection successfully", nil)

	payload := `{
		"id": "xy7-54",
		"name": "Pikachu",
		"set": {"name": "Ancient Origins", "series": "XY"},
		"images": {"small": "https://images.pokemontcg.io/xy7/54.png"},
		"cardmarket": {"prices": {"averageSellPrice": 0.25}}
	}`

	req, _ := http.NewRequest("POST", "/api/collection/1/add-card", bytes.NewBufferString(payload))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()

	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)

	var response dto.AddCardResponse
	json.Unmarshal(w.Body.Bytes(), &response)
	assert.Equal(t, int64(42), response.CardID)
	assert.Equal(t, "Card added to collection successfully", response.Message)

	mockSvc.AssertExpectations(t)
}

func TestAddCard_Handler_MissingFields(t *testing.T) {
	mockSvc := new(MockCollectionService)
	router := setupCollectionRouter(mockSvc, "user-123")

	mockSvc.On("AssertOwnership", mock.Anything, int64(1), "user-123").Return(nil)
	mockSvc.On("AddCard", mock.Anything, int64(1), mock.AnythingOfType("*models.CollectionCard")).
		Return(0, "", service.ErrMissingCardFields)

	req, _ := http.NewRequest("POST", "/api/collection/1/add-card", bytes.NewBufferString(`{"set":{"name":"Ancient Origins"}}`))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()

	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestListCollections_Handler(t *testing.T) {
	mockSvc := new(MockCollectionService)
	router := setupCollectionRouter(mockSvc, "user-123")

	owned := []models.Collection{
		{ID: 2, Name: "Trades", OwnerID: "user-123"},
		{ID: 1, Name: "testuser's Collection", OwnerID: "user-123"},
	}
	mockSvc.On("ListCollections", mock.Anything, "user-123").Return(owned, nil)

	req, _ := http.NewRequest("GET", "/api/collections", nil)
	w := httptest.NewRecorder()

	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)

	var response []models.Collection
	json.Unmarshal(w.Body.Bytes(), &response)
	assert.Len(t, response, 2)
	assert.Equal(t, "Trades", response[0].Name)
}
