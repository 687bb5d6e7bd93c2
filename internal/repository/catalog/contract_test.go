package catalog

import (
	"context"
	"errors"
	"sort"
	"testing"
	"time"

	"storefront/internal/domain"
)

const pixel = "data:image/png;base64,iVBORw0KGgo="

// runRepositoryContract exercises behaviour every backend must share.
func runRepositoryContract(t *testing.T, repo Repository) {
	t.Helper()
	ctx := context.Background()

	first, err := repo.Insert(ctx, domain.CatalogItem{
		StoreID:    "store-a",
		ItemName:   "Mug",
		ItemPrice:  12.5,
		Quantity:   3,
		ItemImages: []string{pixel},
	})
	if err != nil {
		t.Fatalf("Insert: %v", err)
	}
	if first.ID == "" || first.CreatedAt.IsZero() {
		t.Fatalf("expected id and timestamps, got %+v", first)
	}
	// Creation order drives list order; keep the timestamps apart.
	time.Sleep(5 * time.Millisecond)
	second, err := repo.Insert(ctx, domain.CatalogItem{StoreID: "store-a", ItemName: "Cap"})
	if err != nil {
		t.Fatalf("Insert second: %v", err)
	}
	if second.ItemImages == nil || len(second.ItemImages) != 0 {
		t.Fatalf("expected empty image list, got %v", second.ItemImages)
	}
	if _, err := repo.Insert(ctx, domain.CatalogItem{StoreID: "store-b", ItemName: "Other"}); err != nil {
		t.Fatalf("Insert other store: %v", err)
	}

	list, err := repo.ListByStore(ctx, "store-a")
	if err != nil {
		t.Fatalf("ListByStore: %v", err)
	}
	if len(list) != 2 || list[0].ID != second.ID || list[1].ID != first.ID {
		t.Fatalf("expected newest first for store-a, got %+v", list)
	}
	empty, err := repo.ListByStore(ctx, "nobody")
	if err != nil || empty == nil || len(empty) != 0 {
		t.Fatalf("expected empty non-nil list, got %v err=%v", empty, err)
	}

	if _, err := repo.GetByID(ctx, "store-b", first.ID); !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("expected not found across stores, got %v", err)
	}
	if _, err := repo.GetByID(ctx, "store-a", "missing"); !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("expected not found for malformed id, got %v", err)
	}

	updated, err := repo.Update(ctx, domain.CatalogItem{
		ID:        first.ID,
		StoreID:   "store-a",
		ItemName:  "Big Mug",
		ItemPrice: 15,
		Quantity:  1,
	})
	if err != nil {
		t.Fatalf("Update: %v", err)
	}
	if updated.ItemName != "Big Mug" || updated.ItemPrice != 15 {
		t.Fatalf("unexpected update result %+v", updated)
	}
	if len(updated.ItemImages) != 1 || updated.ItemImages[0] != pixel {
		t.Fatalf("nil images should keep stored ones, got %v", updated.ItemImages)
	}
	if _, err := repo.Update(ctx, domain.CatalogItem{ID: first.ID, StoreID: "store-b", ItemName: "x"}); !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("expected not found updating in another store, got %v", err)
	}

	deleted, err := repo.DeleteMany(ctx, "store-a", []string{first.ID, second.ID, "missing"})
	if err != nil {
		t.Fatalf("DeleteMany: %v", err)
	}
	sort.Strings(deleted)
	want := []string{first.ID, second.ID}
	sort.Strings(want)
	if len(deleted) != 2 || deleted[0] != want[0] || deleted[1] != want[1] {
		t.Fatalf("unexpected deleted ids %v", deleted)
	}
	again, err := repo.DeleteMany(ctx, "store-a", []string{first.ID})
	if err != nil || len(again) != 0 {
		t.Fatalf("expected nothing deleted twice, got %v err=%v", again, err)
	}

	// Boundary values accepted by the service must round-trip unchanged.
	edge, err := repo.Insert(ctx, domain.CatalogItem{
		StoreID:        "store-c",
		ItemName:       "Edge",
		ItemPrice:      19.99,
		CompareAtPrice: 9999999999.99,
		CostPerItem:    0.01,
		Quantity:       domain.MaxQuantity,
	})
	if err != nil {
		t.Fatalf("Insert boundary values: %v", err)
	}
	stored, err := repo.GetByID(ctx, "store-c", edge.ID)
	if err != nil {
		t.Fatalf("GetByID boundary values: %v", err)
	}
	if stored.ItemPrice != 19.99 || stored.CompareAtPrice != 9999999999.99 || stored.CostPerItem != 0.01 || stored.Quantity != domain.MaxQuantity {
		t.Fatalf("boundary values changed in storage: %+v", stored)
	}
}
