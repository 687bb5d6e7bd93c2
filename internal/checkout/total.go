package checkout

import (
	"fmt"
	"io"

	"github.com/shopspring/decimal"

	"storefront/internal/domain"
)

// LineTotal is price × quantity for one cart entry.
func LineTotal(item domain.CartItem) decimal.Decimal {
	return decimal.NewFromFloat(item.Price).Mul(decimal.NewFromInt(int64(item.Quantity)))
}

// Total sums price × quantity over the cart, rounded to cents.
func Total(items []domain.CartItem) decimal.Decimal {
	sum := decimal.Zero
	for _, item := range items {
		sum = sum.Add(LineTotal(item))
	}
	return sum.Round(2)
}

// FormatMoney renders an amount with exactly two decimals.
func FormatMoney(d decimal.Decimal) string {
	return "$" + d.StringFixed(2)
}

// RenderSummary writes the order summary shown next to the checkout form.
func RenderSummary(w io.Writer, items []domain.CartItem) error {
	if len(items) == 0 {
		_, err := fmt.Fprintln(w, "Your cart is empty.")
		return err
	}
	for _, item := range items {
		if _, err := fmt.Fprintf(w, "%s\t%d × %s\t%s\n",
			item.Title, item.Quantity, FormatMoney(decimal.NewFromFloat(item.Price)), FormatMoney(LineTotal(item))); err != nil {
			return err
		}
	}
	_, err := fmt.Fprintf(w, "Total:\t\t%s\n", FormatMoney(Total(items)))
	return err
}
