package admin

import (
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"github.com/shopspring/decimal"

	"storefront/internal/checkout"
	"storefront/internal/domain"
)

const (
	emptyStoreMessage  = "No items found in this store."
	emptyDeleteMessage = "No items found to delete."
)

func money(v float64) string {
	return checkout.FormatMoney(decimal.NewFromFloat(v))
}

// RenderGrid writes the view-items listing.
func RenderGrid(w io.Writer, items []domain.CatalogItem) error {
	if len(items) == 0 {
		_, err := fmt.Fprintln(w, emptyStoreMessage)
		return err
	}
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tNAME\tPRICE\tCOMPARE AT\tQTY\tIMAGES\tDESCRIPTION")
	for _, it := range items {
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%d\t%d\t%s\n",
			it.ID, it.ItemName, money(it.ItemPrice), money(it.CompareAtPrice),
			it.Quantity, len(it.ItemImages), truncate(it.ItemDescription, 40))
	}
	return tw.Flush()
}

// RenderTable writes the delete view with a checkbox column driven by sel.
func RenderTable(w io.Writer, items []domain.CatalogItem, sel *Selection) error {
	if len(items) == 0 {
		_, err := fmt.Fprintln(w, emptyDeleteMessage)
		return err
	}
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "SEL\tID\tNAME\tPRICE\tQTY")
	for _, it := range items {
		mark := "[ ]"
		if sel != nil && sel.Selected(it.ID) {
			mark = "[x]"
		}
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%d\n", mark, it.ID, it.ItemName, money(it.ItemPrice), it.Quantity)
	}
	return tw.Flush()
}

func truncate(s string, n int) string {
	s = strings.ReplaceAll(s, "\n", " ")
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n-1]) + "…"
}
