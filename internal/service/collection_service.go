package service

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"binderbuilder/internal/models"
	"binderbuilder/internal/repository"
)

var (
	ErrNotOwner          = errors.New("collection does not belong to user")
	ErrMissingCardFields = errors.New("card id and name are required")
)

type CollectionService interface {
	AssertOwnership(ctx context.Context, collectionID int64, userID string) error
	AddCard(ctx context.Context, collectionID int64, card *models.CollectionCard) (cardID int64, message string, err error)
	ListCards(ctx context.Context, collectionID int64) ([]models.CollectionCard, error)
	ListCollections(ctx context.Context, userID string) ([]models.Collection, error)
}

type collectionService struct {
	collectionRepo repository.CollectionRepository
	cardRepo       repository.CardRepository
}

func NewCollectionService(collectionRepo repository.CollectionRepository, cardRepo repository.CardRepository) CollectionService {
	return &collectionService{
		collectionRepo: collectionRepo,
		cardRepo:       cardRepo,
	}
}

// AssertOwnership fails unless the collection exists and belongs to the
// user. A collection that exists but belongs to someone else and a
// collection that does not exist both come back as ErrNotOwner, so callers
// cannot probe which ids are taken.
func (s *collectionService) AssertOwnership(ctx context.Context, collectionID int64, userID string) error {
	if _, err := s.collectionRepo.FindByIDAndOwner(ctx, collectionID, userID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrNotOwner
		}
		return err
	}
	return nil
}

// AddCard inserts the card into the collection, or bumps its quantity when
// the same catalog card is already present. Ownership must have been
// asserted by the caller.
func (s *collectionService) AddCard(ctx context.Context, collectionID int64, card *models.CollectionCard) (int64, string, error) {
	if card.CatalogCardID == "" || card.Name == "" {
		return 0, "", ErrMissingCardFields
	}

	card.CollectionID = collectionID
	if card.Quantity == 0 {
		card.Quantity = 1
	}

	if err := s.cardRepo.Upsert(ctx, card); err != nil {
		return 0, "", err
	}

	return card.ID, "Card added to collection successfully", nil
}

func (s *collectionService) ListCards(ctx context.Context, collectionID int64) ([]models.CollectionCard, error) {
	return s.cardRepo.ListByCollection(ctx, collectionID)
}

func (s *collectionService) ListCollections(ctx context.Context, userID string) ([]models.Collection, error) {
	return s.collectionRepo.ListByOwner(ctx, userID)
}
