package dto

import "binderbuilder/internal/models"

// AddCardRequest mirrors the catalog card JSON the frontend posts back when
// adding a search result to a collection. Only id and name are required;
// the nested set/images/cardmarket blocks are optional and flattened into
// the stored row.
type AddCardRequest struct {
	ID   string `json:"id"`
	Name string `json:"name"`
	Set  struct {
		Name   string `json:"name"`
		Series string `json:"series"`
	} `json:"set"`
	Images struct {
		Small string `json:"small"`
		Large string `json:"large"`
	} `json:"images"`
	Cardmarket struct {
		Prices struct {
			AverageSellPrice *float64 `json:"averageSellPrice"`
		} `json:"prices"`
	} `json:"cardmarket"`
}

// ToModel flattens the catalog card payload into a collection card row.
func (r *AddCardRequest) ToModel() *models.CollectionCard {
	return &models.CollectionCard{
		CatalogCardID: r.ID,
		Name:          r.Name,
		SetName:       r.Set.Name,
		Series:        r.Set.Series,
		ImageURL:      r.Images.Small,
		Price:         r.Cardmarket.Prices.AverageSellPrice,
	}
}

// AddCardResponse: outcome of adding a card to a collection
type AddCardResponse struct {
	Message string `json:"message"`
	CardID  int64  `json:"card_id"`
}

// CollectionCardsResponse: a collection's cards, most recently added first
type CollectionCardsResponse struct {
	CollectionID int64                   `json:"collection_id"`
	Cards        []models.CollectionCard `json:"cards"`
}
