package seed

import (
	"bytes"
	"context"
	"fmt"
	"image"
	"image/color"
	"image/png"

	"storefront/internal/dataurl"
	"storefront/internal/domain"
)

// CatalogWriter is the part of the catalog repository seeding needs.
type CatalogWriter interface {
	ListByStore(ctx context.Context, storeID string) ([]domain.CatalogItem, error)
	Insert(ctx context.Context, item domain.CatalogItem) (*domain.CatalogItem, error)
}

type itemSeed struct {
	Name           string
	Description    string
	Price          float64
	CompareAtPrice float64
	CostPerItem    float64
	Quantity       int
	Swatch         color.RGBA
}

var demoItems = []itemSeed{
	{
		Name:           "Demo T-Shirt",
		Description:    "Soft cotton tee for demo purposes",
		Price:          19.99,
		CompareAtPrice: 24.99,
		CostPerItem:    7.5,
		Quantity:       40,
		Swatch:         color.RGBA{R: 0x0F, G: 0x64, B: 0x66, A: 0xFF},
	},
	{
		Name:        "Demo Mug",
		Description: "Ceramic mug with demo logo",
		Price:       12.99,
		CostPerItem: 3.2,
		Quantity:    25,
		Swatch:      color.RGBA{R: 0xE0, G: 0x8E, B: 0x2B, A: 0xFF},
	},
}

// Apply inserts demo items into the store. Items whose name already exists
// in the store are skipped, so running it twice is harmless.
func Apply(ctx context.Context, repo CatalogWriter, storeID string) (int, error) {
	existing, err := repo.ListByStore(ctx, storeID)
	if err != nil {
		return 0, fmt.Errorf("list store items: %w", err)
	}
	present := make(map[string]bool, len(existing))
	for _, it := range existing {
		present[it.ItemName] = true
	}

	inserted := 0
	for _, s := range demoItems {
		if present[s.Name] {
			continue
		}
		img, err := swatch(s.Swatch)
		if err != nil {
			return inserted, fmt.Errorf("render swatch for %s: %w", s.Name, err)
		}
		_, err = repo.Insert(ctx, domain.CatalogItem{
			StoreID:         storeID,
			ItemName:        s.Name,
			ItemDescription: s.Description,
			ItemPrice:       s.Price,
			CompareAtPrice:  s.CompareAtPrice,
			CostPerItem:     s.CostPerItem,
			Quantity:        s.Quantity,
			ItemImages:      []string{img},
		})
		if err != nil {
			return inserted, fmt.Errorf("insert item %s: %w", s.Name, err)
		}
		inserted++
	}
	return inserted, nil
}

// swatch renders a small solid-colour PNG used as a placeholder product image.
func swatch(c color.RGBA) (string, error) {
	img := image.NewRGBA(image.Rect(0, 0, 8, 8))
	for y := 0; y < 8; y++ {
		for x := 0; x < 8; x++ {
			img.SetRGBA(x, y, c)
		}
	}
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		return "", err
	}
	return dataurl.Encode(buf.Bytes()), nil
}
