package models

import "time"

// CollectionCard is one card entry inside a collection. A card appears at
// most once per collection; re-adding it bumps Quantity instead of creating
// a second row (enforced by the composite unique index).
type CollectionCard struct {
	ID            int64     `gorm:"primaryKey;autoIncrement" json:"id"`
	CatalogCardID string    `gorm:"not null;uniqueIndex:idx_cards_catalog_collection" json:"catalog_card_id"`
	Name          string    `gorm:"not null" json:"name"`
	SetName       string    `json:"set_name,omitempty"`
	Series        string    `json:"series,omitempty"`
	ImageURL      string    `gorm:"type:text" json:"image_url,omitempty"`
	Price         *float64  `gorm:"type:decimal(10,2)" json:"price,omitempty"`
	Quantity      int       `gorm:"not null;default:1" json:"quantity"`
	CollectionID  int64     `gorm:"not null;uniqueIndex:idx_cards_catalog_collection" json:"collection_id"`
	AddedAt       time.Time `gorm:"autoCreateTime" json:"added_at"`
}

func (CollectionCard) TableName() string {
	return "cards"
}
