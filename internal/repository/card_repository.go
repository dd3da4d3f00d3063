package repository

import (
	"context"
	"fmt"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"binderbuilder/internal/models"
)

type CardRepository interface {
	Upsert(ctx context.Context, card *models.CollectionCard) error
	ListByCollection(ctx context.Context, collectionID int64) ([]models.CollectionCard, error)
}

type cardRepository struct {
	db *gorm.DB
}

func NewCardRepository(db *gorm.DB) CardRepository {
	return &cardRepository{db: db}
}

// Upsert inserts the card or, when (catalog_card_id, collection_id) already
// exists, increments the stored quantity by one and leaves every other
// column as it was at first insertion. The conflict resolution happens in a
// single statement so two concurrent adds of the same card cannot lose an
// update. card.ID is populated from the affected row either way.
func (r *cardRepository) Upsert(ctx context.Context, card *models.CollectionCard) error {
	if err := r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns: []clause.Column{{Name: "catalog_card_id"}, {Name: "collection_id"}},
			DoUpdates: clause.Assignments(map[string]interface{}{
				"quantity": gorm.Expr("cards.quantity + 1"),
			}),
		}).
		Create(card).Error; err != nil {
		return fmt.Errorf("upsert card: %w", err)
	}
	return nil
}

func (r *cardRepository) ListByCollection(ctx context.Context, collectionID int64) ([]models.CollectionCard, error) {
	var cards []models.CollectionCard

	if err := r.db.WithContext(ctx).
		Where("collection_id = ?", collectionID).
		Order("added_at DESC").
		Find(&cards).Error; err != nil {
		return nil, fmt.Errorf("list cards: %w", err)
	}

	return cards, nil
}
