package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"regexp"
	"strings"

	"storefront/internal/admin"
	"storefront/internal/domain"
)

func (a *app) items(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("items", flag.ContinueOnError)
	store := fs.String("store", "", "store id (default: session store)")
	if err := fs.Parse(args); err != nil {
		return err
	}
	storeID, err := a.storeID(*store)
	if err != nil {
		return err
	}
	items, err := a.client.ViewItems(ctx, storeID)
	if err != nil {
		return err
	}
	return admin.RenderGrid(os.Stdout, items)
}

func itemFlags(fs *flag.FlagSet, f *admin.ItemForm, images *stringList) {
	fs.StringVar(&f.Name, "name", f.Name, "item name")
	fs.StringVar(&f.Description, "desc", f.Description, "item description")
	fs.Float64Var(&f.Price, "price", f.Price, "price")
	fs.Float64Var(&f.CompareAtPrice, "compare", f.CompareAtPrice, "compare-at price")
	fs.Float64Var(&f.CostPerItem, "cost", f.CostPerItem, "cost per item")
	fs.IntVar(&f.Quantity, "qty", f.Quantity, "quantity")
	fs.Var(images, "image", "image file (repeatable)")
}

func (a *app) addItem(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("add-item", flag.ContinueOnError)
	store := fs.String("store", "", "store id (default: session store)")
	var (
		form   admin.ItemForm
		images stringList
	)
	itemFlags(fs, &form, &images)
	if err := fs.Parse(args); err != nil {
		return err
	}
	storeID, err := a.storeID(*store)
	if err != nil {
		return err
	}
	if form.Images, err = admin.EncodeImages(ctx, images); err != nil {
		return err
	}
	item, err := a.client.AddItem(ctx, form.AddInput(storeID))
	if err != nil {
		return err
	}
	fmt.Printf("Item added successfully (%s)\n", item.ID)
	return nil
}

func (a *app) updateItem(ctx context.Context, args []string) error {
	// Two passes: the first finds the item, the second overlays the flags the
	// user actually set onto the pre-filled form.
	probe := flag.NewFlagSet("update-item", flag.ContinueOnError)
	store := probe.String("store", "", "store id (default: session store)")
	id := probe.String("id", "", "item id")
	var (
		form   admin.ItemForm
		images stringList
	)
	itemFlags(probe, &form, &images)
	if err := probe.Parse(args); err != nil {
		return err
	}
	if *id == "" {
		return fmt.Errorf("-id is required")
	}
	storeID, err := a.storeID(*store)
	if err != nil {
		return err
	}

	items, err := a.client.ViewItems(ctx, storeID)
	if err != nil {
		return err
	}
	var current *domain.CatalogItem
	for i := range items {
		if items[i].ID == *id {
			current = &items[i]
			break
		}
	}
	if current == nil {
		return fmt.Errorf("item %s not found in store %s", *id, storeID)
	}

	form = admin.FormFromItem(*current)
	images = nil
	fs := flag.NewFlagSet("update-item", flag.ContinueOnError)
	fs.String("store", "", "")
	fs.String("id", "", "")
	itemFlags(fs, &form, &images)
	if err := fs.Parse(args); err != nil {
		return err
	}
	if form.Images, err = admin.EncodeImages(ctx, images); err != nil {
		return err
	}
	if len(form.Images) == 0 {
		form.Images = nil
	}

	if _, err := a.client.UpdateItem(ctx, form.UpdateInput(storeID, *id)); err != nil {
		return err
	}
	fmt.Println("Item updated successfully")
	return nil
}

func (a *app) deleteItem(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("delete-item", flag.ContinueOnError)
	store := fs.String("store", "", "store id (default: session store)")
	all := fs.Bool("all", false, "select every item")
	var ids stringList
	fs.Var(&ids, "id", "item id (repeatable)")
	if err := fs.Parse(args); err != nil {
		return err
	}
	storeID, err := a.storeID(*store)
	if err != nil {
		return err
	}
	items, err := a.client.ViewItems(ctx, storeID)
	if err != nil {
		return err
	}

	sel := admin.NewSelection()
	if *all {
		every := make([]string, 0, len(items))
		for _, it := range items {
			every = append(every, it.ID)
		}
		sel.SelectAll(every)
	} else {
		for _, id := range ids {
			if !sel.Selected(id) {
				sel.Toggle(id)
			}
		}
	}
	if err := admin.RenderTable(os.Stdout, items, sel); err != nil {
		return err
	}

	selected, err := sel.IDs()
	if err != nil {
		return err
	}
	res, err := a.client.DeleteItems(ctx, storeID, selected)
	if err != nil {
		return err
	}
	fmt.Printf("Deleted %d item(s)\n", len(res.Deleted))
	if len(res.NotFound) > 0 {
		a.logger.Printf("not found: %v", res.NotFound)
	}
	return nil
}

func (a *app) export(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("export", flag.ContinueOnError)
	store := fs.String("store", "", "store id (default: session store)")
	out := fs.String("out", "", "output file (default catalog-<store>.xlsx)")
	if err := fs.Parse(args); err != nil {
		return err
	}
	storeID, err := a.storeID(*store)
	if err != nil {
		return err
	}
	path := *out
	if path == "" {
		path = exportFilename(storeID)
	}
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := a.client.ExportItems(ctx, storeID, f); err != nil {
		f.Close()
		os.Remove(path)
		return err
	}
	if err := f.Close(); err != nil {
		return err
	}
	fmt.Printf("Wrote %s\n", path)
	return nil
}

var unsafeFilename = regexp.MustCompile(`[^A-Za-z0-9_-]+`)

// exportFilename keeps the default export in the working directory whatever
// the store id contains.
func exportFilename(storeID string) string {
	name := strings.Trim(unsafeFilename.ReplaceAllString(storeID, "-"), "-")
	if name == "" {
		name = "store"
	}
	return "catalog-" + name + ".xlsx"
}
