package domain

import "time"

// CatalogItem is a sellable product listed in one store's catalog.
type CatalogItem struct {
	ID              string    `json:"_id"`
	StoreID         string    `json:"storeID"`
	ItemName        string    `json:"itemName"`
	ItemDescription string    `json:"itemDescription"`
	ItemPrice       float64   `json:"itemPrice"`
	CompareAtPrice  float64   `json:"compareAtPrice"`
	CostPerItem     float64   `json:"costPerItem"`
	Quantity        int       `json:"quantity"`
	ItemImages      []string  `json:"itemImages"`
	CreatedAt       time.Time `json:"createdAt"`
	UpdatedAt       time.Time `json:"updatedAt"`
}
