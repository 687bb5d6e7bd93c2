package catalog

import (
	"context"
	"fmt"
	"strings"

	"storefront/internal/dataurl"
	"storefront/internal/domain"
	catalogrepo "storefront/internal/repository/catalog"
)

type Service struct {
	repo catalogrepo.Repository
}

func New(repo catalogrepo.Repository) *Service {
	return &Service{repo: repo}
}

type AddInput struct {
	StoreID         string   `json:"storeID"`
	ItemName        string   `json:"itemName"`
	ItemDescription string   `json:"itemDescription"`
	ItemPrice       float64  `json:"itemPrice"`
	CompareAtPrice  float64  `json:"compareAtPrice"`
	CostPerItem     float64  `json:"costPerItem"`
	Quantity        int      `json:"quantity"`
	ItemImages      []string `json:"itemImages"`
}

type UpdateInput struct {
	StoreID                string   `json:"storeID"`
	ItemID                 string   `json:"itemID"`
	UpdatedItemName        string   `json:"updatedItemName"`
	UpdatedItemDescription string   `json:"updatedItemDescription"`
	UpdatedItemPrice       float64  `json:"updatedItemPrice"`
	CompareAtPrice         float64  `json:"compareAtPrice"`
	CostPerItem            float64  `json:"costPerItem"`
	Quantity               int      `json:"quantity"`
	ItemImages             []string `json:"itemImages"`
}

type DeleteInput struct {
	StoreID string   `json:"storeID"`
	ItemIDs []string `json:"itemIDs"`
}

// DeleteResult reports which requested ids were removed and which did not
// exist in the store.
type DeleteResult struct {
	Deleted  []string `json:"deleted"`
	NotFound []string `json:"notFound"`
}

func invalid(format string, args ...any) error {
	return fmt.Errorf("%w: "+format, append([]any{domain.ErrInvalidInput}, args...)...)
}

func validateFields(name string, price, compareAt, cost float64, quantity int, images []string) error {
	if strings.TrimSpace(name) == "" {
		return invalid("item name required")
	}
	if !domain.ValidAmount(price) || !domain.ValidAmount(compareAt) || !domain.ValidAmount(cost) {
		return invalid("prices must be non-negative, below %.0f and have at most two decimals", domain.MaxAmount)
	}
	if !domain.ValidQuantity(quantity) {
		return invalid("quantity must be between 0 and %d", domain.MaxQuantity)
	}
	for i, img := range images {
		if !dataurl.IsImage(img) {
			return invalid("image %d is not an inline image", i+1)
		}
	}
	return nil
}

func (s *Service) Add(ctx context.Context, in AddInput) (*domain.CatalogItem, error) {
	storeID := strings.TrimSpace(in.StoreID)
	if storeID == "" {
		return nil, invalid("storeID required")
	}
	if err := validateFields(in.ItemName, in.ItemPrice, in.CompareAtPrice, in.CostPerItem, in.Quantity, in.ItemImages); err != nil {
		return nil, err
	}
	return s.repo.Insert(ctx, domain.CatalogItem{
		StoreID:         storeID,
		ItemName:        strings.TrimSpace(in.ItemName),
		ItemDescription: in.ItemDescription,
		ItemPrice:       in.ItemPrice,
		CompareAtPrice:  in.CompareAtPrice,
		CostPerItem:     in.CostPerItem,
		Quantity:        in.Quantity,
		ItemImages:      in.ItemImages,
	})
}

// Update replaces every editable field of the item. An empty image list keeps
// the images already stored.
func (s *Service) Update(ctx context.Context, in UpdateInput) (*domain.CatalogItem, error) {
	storeID := strings.TrimSpace(in.StoreID)
	itemID := strings.TrimSpace(in.ItemID)
	if storeID == "" {
		return nil, invalid("storeID required")
	}
	if itemID == "" {
		return nil, invalid("itemID required")
	}
	if err := validateFields(in.UpdatedItemName, in.UpdatedItemPrice, in.CompareAtPrice, in.CostPerItem, in.Quantity, in.ItemImages); err != nil {
		return nil, err
	}
	var images []string
	if len(in.ItemImages) > 0 {
		images = in.ItemImages
	}
	return s.repo.Update(ctx, domain.CatalogItem{
		ID:              itemID,
		StoreID:         storeID,
		ItemName:        strings.TrimSpace(in.UpdatedItemName),
		ItemDescription: in.UpdatedItemDescription,
		ItemPrice:       in.UpdatedItemPrice,
		CompareAtPrice:  in.CompareAtPrice,
		CostPerItem:     in.CostPerItem,
		Quantity:        in.Quantity,
		ItemImages:      images,
	})
}

func (s *Service) Delete(ctx context.Context, in DeleteInput) (*DeleteResult, error) {
	storeID := strings.TrimSpace(in.StoreID)
	if storeID == "" {
		return nil, invalid("storeID required")
	}
	ids := dedupe(in.ItemIDs)
	if len(ids) == 0 {
		return nil, invalid("itemIDs required")
	}

	deleted, err := s.repo.DeleteMany(ctx, storeID, ids)
	if err != nil {
		return nil, err
	}
	gone := make(map[string]struct{}, len(deleted))
	for _, id := range deleted {
		gone[id] = struct{}{}
	}
	res := &DeleteResult{Deleted: []string{}, NotFound: []string{}}
	for _, id := range ids {
		if _, ok := gone[id]; ok {
			res.Deleted = append(res.Deleted, id)
		} else {
			res.NotFound = append(res.NotFound, id)
		}
	}
	return res, nil
}

func (s *Service) List(ctx context.Context, storeID string) ([]domain.CatalogItem, error) {
	storeID = strings.TrimSpace(storeID)
	if storeID == "" {
		return nil, invalid("storeID required")
	}
	items, err := s.repo.ListByStore(ctx, storeID)
	if err != nil {
		return nil, err
	}
	if items == nil {
		items = []domain.CatalogItem{}
	}
	return items, nil
}

func dedupe(ids []string) []string {
	seen := make(map[string]struct{}, len(ids))
	out := make([]string, 0, len(ids))
	for _, id := range ids {
		id = strings.TrimSpace(id)
		if id == "" {
			continue
		}
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		out = append(out, id)
	}
	return out
}
