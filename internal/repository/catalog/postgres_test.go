package catalog

import (
	"context"
	"testing"

	"storefront/internal/domain"
	"storefront/internal/testhelpers"
)

func TestPostgres_Contract(t *testing.T) {
	pool := testhelpers.PostgresPool(t)
	runRepositoryContract(t, NewPostgres(pool, nil))
}

func TestPostgres_DeleteKeepsCallerIDForm(t *testing.T) {
	ctx := context.Background()
	pool := testhelpers.PostgresPool(t)
	repo := NewPostgres(pool, nil)

	item, err := repo.Insert(ctx, domain.CatalogItem{StoreID: "s", ItemName: "Mug"})
	if err != nil {
		t.Fatalf("Insert: %v", err)
	}
	upper := toUpper(item.ID)
	deleted, err := repo.DeleteMany(ctx, "s", []string{upper})
	if err != nil {
		t.Fatalf("DeleteMany: %v", err)
	}
	if len(deleted) != 1 || deleted[0] != upper {
		t.Fatalf("expected caller id %s back, got %v", upper, deleted)
	}
}

func toUpper(s string) string {
	b := []byte(s)
	for i, c := range b {
		if c >= 'a' && c <= 'z' {
			b[i] = c - 'a' + 'A'
		}
	}
	return string(b)
}
