package repository

import (
	"context"
	"fmt"

	"gorm.io/gorm"

	"binderbuilder/internal/models"
)

type CollectionRepository interface {
	ListByOwner(ctx context.Context, ownerID string) ([]models.Collection, error)
	FindByIDAndOwner(ctx context.Context, id int64, ownerID string) (*models.Collection, error)
}

type collectionRepository struct {
	db *gorm.DB
}

func NewCollectionRepository(db *gorm.DB) CollectionRepository {
	return &collectionRepository{db: db}
}

func (r *collectionRepository) ListByOwner(ctx context.Context, ownerID string) ([]models.Collection, error) {
	var collections []models.Collection

	if err := r.db.WithContext(ctx).
		Where("owner_id = ?", ownerID).
		Order("created_at DESC").
		Find(&collections).Error; err != nil {
		return nil, fmt.Errorf("list collections: %w", err)
	}

	return collections, nil
}

func (r *collectionRepository) FindByIDAndOwner(ctx context.Context, id int64, ownerID string) (*models.Collection, error) {
	var collection models.Collection
	if err := r.db.WithContext(ctx).
		Where("id = ? AND owner_id = ?", id, ownerID).
		First(&collection).Error; err != nil {
		return nil, err
	}
	return &collection, nil
}
