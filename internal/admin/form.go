// Package admin holds the merchant-side item form, image encoding, bulk
// selection and listing views.
package admin

import (
	"context"
	"fmt"

	"storefront/internal/dataurl"
	"storefront/internal/domain"
	catalogsvc "storefront/internal/service/catalog"
)

// ItemForm is the add/update item view-model.
type ItemForm struct {
	Name           string
	Description    string
	Price          float64
	CompareAtPrice float64
	CostPerItem    float64
	Quantity       int
	Images         []string
}

// FormFromItem pre-fills the update form. Images start empty so an update
// without new files keeps the stored ones.
func FormFromItem(item domain.CatalogItem) ItemForm {
	return ItemForm{
		Name:           item.ItemName,
		Description:    item.ItemDescription,
		Price:          item.ItemPrice,
		CompareAtPrice: item.CompareAtPrice,
		CostPerItem:    item.CostPerItem,
		Quantity:       item.Quantity,
	}
}

func (f ItemForm) AddInput(storeID string) catalogsvc.AddInput {
	return catalogsvc.AddInput{
		StoreID:         storeID,
		ItemName:        f.Name,
		ItemDescription: f.Description,
		ItemPrice:       f.Price,
		CompareAtPrice:  f.CompareAtPrice,
		CostPerItem:     f.CostPerItem,
		Quantity:        f.Quantity,
		ItemImages:      f.Images,
	}
}

func (f ItemForm) UpdateInput(storeID, itemID string) catalogsvc.UpdateInput {
	return catalogsvc.UpdateInput{
		StoreID:                storeID,
		ItemID:                 itemID,
		UpdatedItemName:        f.Name,
		UpdatedItemDescription: f.Description,
		UpdatedItemPrice:       f.Price,
		CompareAtPrice:         f.CompareAtPrice,
		CostPerItem:            f.CostPerItem,
		Quantity:               f.Quantity,
		ItemImages:             f.Images,
	}
}

// EncodeImages reads each file into an inline data URL, in input order.
// It stops at the first unreadable or non-image file.
func EncodeImages(ctx context.Context, paths []string) ([]string, error) {
	out := make([]string, 0, len(paths))
	for _, p := range paths {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		img, err := dataurl.EncodeFile(p)
		if err != nil {
			return nil, err
		}
		if !dataurl.IsImage(img) {
			return nil, fmt.Errorf("%s is not an image", p)
		}
		out = append(out, img)
	}
	return out, nil
}
