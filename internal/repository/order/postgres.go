package order

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log"

	"github.com/jackc/pgx/v5/pgxpool"

	"storefront/internal/domain"
)

type postgresRepo struct {
	pool   *pgxpool.Pool
	logger *log.Logger
}

func NewPostgres(pool *pgxpool.Pool, logger *log.Logger) Repository {
	if logger == nil {
		logger = log.New(io.Discard, "", 0)
	}
	return &postgresRepo{pool: pool, logger: logger}
}

func (r *postgresRepo) Insert(ctx context.Context, order domain.Order) (string, error) {
	order.ID = ""
	doc, err := json.Marshal(order)
	if err != nil {
		return "", fmt.Errorf("encode order: %w", err)
	}

	const q = `
INSERT INTO orders (email, payment_method, total, placed_at, document)
VALUES ($1, $2, $3, $4, $5)
RETURNING id::text
`
	var id string
	if err := r.pool.QueryRow(ctx, q, order.Email, string(order.PaymentMethod), order.Total, order.Date, doc).Scan(&id); err != nil {
		r.logger.Printf("order repo: insert email=%s items=%d error=%v", order.Email, len(order.CartItems), err)
		return "", err
	}
	r.logger.Printf("order repo: inserted id=%s items=%d total=%.2f", id, len(order.CartItems), order.Total)
	return id, nil
}
