package models

import "time"

type Collection struct {
	ID          int64     `gorm:"primaryKey;autoIncrement" json:"id"`
	Name        string    `gorm:"not null" json:"name"`
	Description string    `gorm:"type:text" json:"description"`
	OwnerID     string    `gorm:"type:uuid;not null;index" json:"owner_id"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`

	// Associations
	Owner *User            `gorm:"foreignKey:OwnerID;constraint:OnDelete:CASCADE" json:"owner,omitempty"`
	Cards []CollectionCard `gorm:"foreignKey:CollectionID;constraint:OnDelete:CASCADE" json:"cards,omitempty"`
}

func (Collection) TableName() string {
	return "collections"
}
