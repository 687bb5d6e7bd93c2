package catalog

import (
	"context"

	"storefront/internal/domain"
)

type Repository interface {
	Insert(ctx context.Context, item domain.CatalogItem) (*domain.CatalogItem, error)
	ListByStore(ctx context.Context, storeID string) ([]domain.CatalogItem, error)
	GetByID(ctx context.Context, storeID, id string) (*domain.CatalogItem, error)
	// Update replaces the editable fields of the item. Nil ItemImages leaves
	// the stored images untouched.
	Update(ctx context.Context, item domain.CatalogItem) (*domain.CatalogItem, error)
	// DeleteMany removes the store's items with the given ids and returns the
	// ids, as passed in, that matched.
	DeleteMany(ctx context.Context, storeID string, ids []string) ([]string, error)
}
