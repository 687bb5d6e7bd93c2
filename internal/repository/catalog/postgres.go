package catalog

import (
	"context"
	"errors"
	"io"
	"log"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
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

const itemColumns = `id::text, store_id, item_name, item_description, item_price, compare_at_price, cost_per_item, quantity, item_images, created_at, updated_at`

func scanItem(row pgx.Row) (*domain.CatalogItem, error) {
	var it domain.CatalogItem
	if err := row.Scan(&it.ID, &it.StoreID, &it.ItemName, &it.ItemDescription, &it.ItemPrice, &it.CompareAtPrice, &it.CostPerItem, &it.Quantity, &it.ItemImages, &it.CreatedAt, &it.UpdatedAt); err != nil {
		return nil, err
	}
	if it.ItemImages == nil {
		it.ItemImages = []string{}
	}
	return &it, nil
}

func (r *postgresRepo) Insert(ctx context.Context, item domain.CatalogItem) (*domain.CatalogItem, error) {
	const q = `
INSERT INTO catalog_items (store_id, item_name, item_description, item_price, compare_at_price, cost_per_item, quantity, item_images)
VALUES ($1, $2, $3, $4, $5, $6, $7, COALESCE($8::jsonb, '[]'::jsonb))
RETURNING ` + itemColumns
	images := item.ItemImages
	if images == nil {
		images = []string{}
	}
	out, err := scanItem(r.pool.QueryRow(ctx, q,
		item.StoreID,
		item.ItemName,
		item.ItemDescription,
		item.ItemPrice,
		item.CompareAtPrice,
		item.CostPerItem,
		item.Quantity,
		images,
	))
	if err != nil {
		r.logger.Printf("catalog repo: insert store_id=%s name=%q error=%v", item.StoreID, item.ItemName, err)
		return nil, err
	}
	r.logger.Printf("catalog repo: inserted store_id=%s id=%s images=%d", out.StoreID, out.ID, len(out.ItemImages))
	return out, nil
}

func (r *postgresRepo) ListByStore(ctx context.Context, storeID string) ([]domain.CatalogItem, error) {
	q := `
SELECT ` + itemColumns + `
FROM catalog_items
WHERE store_id = $1
ORDER BY created_at DESC
`
	rows, err := r.pool.Query(ctx, q, storeID)
	if err != nil {
		r.logger.Printf("catalog repo: list store_id=%s error=%v", storeID, err)
		return nil, err
	}
	defer rows.Close()

	result := []domain.CatalogItem{}
	for rows.Next() {
		it, err := scanItem(rows)
		if err != nil {
			return nil, err
		}
		result = append(result, *it)
	}
	if err := rows.Err(); err != nil {
		r.logger.Printf("catalog repo: list rows store_id=%s error=%v", storeID, err)
		return nil, err
	}
	r.logger.Printf("catalog repo: list store_id=%s count=%d", storeID, len(result))
	return result, nil
}

func (r *postgresRepo) GetByID(ctx context.Context, storeID, id string) (*domain.CatalogItem, error) {
	uid, err := uuid.Parse(id)
	if err != nil {
		return nil, domain.ErrNotFound
	}
	q := `
SELECT ` + itemColumns + `
FROM catalog_items
WHERE store_id = $1 AND id = $2::uuid
`
	it, err := scanItem(r.pool.QueryRow(ctx, q, storeID, uid.String()))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			r.logger.Printf("catalog repo: get store_id=%s id=%s not found", storeID, id)
			return nil, domain.ErrNotFound
		}
		r.logger.Printf("catalog repo: get store_id=%s id=%s error=%v", storeID, id, err)
		return nil, err
	}
	return it, nil
}

func (r *postgresRepo) Update(ctx context.Context, item domain.CatalogItem) (*domain.CatalogItem, error) {
	uid, err := uuid.Parse(item.ID)
	if err != nil {
		return nil, domain.ErrNotFound
	}
	const q = `
UPDATE catalog_items SET
    item_name = $3,
    item_description = $4,
    item_price = $5,
    compare_at_price = $6,
    cost_per_item = $7,
    quantity = $8,
    item_images = COALESCE($9::jsonb, item_images),
    updated_at = now()
WHERE store_id = $1 AND id = $2::uuid
RETURNING ` + itemColumns
	// An untyped nil is sent as SQL NULL so COALESCE keeps the stored images.
	var images any
	if item.ItemImages != nil {
		images = item.ItemImages
	}
	out, err := scanItem(r.pool.QueryRow(ctx, q,
		item.StoreID,
		uid.String(),
		item.ItemName,
		item.ItemDescription,
		item.ItemPrice,
		item.CompareAtPrice,
		item.CostPerItem,
		item.Quantity,
		images,
	))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			r.logger.Printf("catalog repo: update store_id=%s id=%s not found", item.StoreID, item.ID)
			return nil, domain.ErrNotFound
		}
		r.logger.Printf("catalog repo: update store_id=%s id=%s error=%v", item.StoreID, item.ID, err)
		return nil, err
	}
	r.logger.Printf("catalog repo: updated store_id=%s id=%s", out.StoreID, out.ID)
	return out, nil
}

func (r *postgresRepo) DeleteMany(ctx context.Context, storeID string, ids []string) ([]string, error) {
	// Canonical form -> id as the caller sent it. Ids that are not UUIDs
	// cannot exist in the table and are skipped.
	byCanonical := make(map[string]string, len(ids))
	canonical := make([]string, 0, len(ids))
	for _, id := range ids {
		uid, err := uuid.Parse(id)
		if err != nil {
			continue
		}
		if _, seen := byCanonical[uid.String()]; !seen {
			byCanonical[uid.String()] = id
			canonical = append(canonical, uid.String())
		}
	}
	if len(canonical) == 0 {
		return []string{}, nil
	}

	const q = `
DELETE FROM catalog_items
WHERE store_id = $1 AND id::text = ANY($2)
RETURNING id::text
`
	rows, err := r.pool.Query(ctx, q, storeID, canonical)
	if err != nil {
		r.logger.Printf("catalog repo: delete store_id=%s ids=%d error=%v", storeID, len(canonical), err)
		return nil, err
	}
	defer rows.Close()

	deleted := []string{}
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, err
		}
		deleted = append(deleted, byCanonical[id])
	}
	if err := rows.Err(); err != nil {
		r.logger.Printf("catalog repo: delete rows store_id=%s error=%v", storeID, err)
		return nil, err
	}
	r.logger.Printf("catalog repo: delete store_id=%s requested=%d deleted=%d", storeID, len(ids), len(deleted))
	return deleted, nil
}
