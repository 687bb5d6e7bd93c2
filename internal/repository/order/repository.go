package order

import (
	"context"

	"storefront/internal/domain"
)

type Repository interface {
	// Insert stores the order as one document and returns its id.
	Insert(ctx context.Context, order domain.Order) (string, error)
}
