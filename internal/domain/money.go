package domain

import (
	"math"

	"github.com/shopspring/decimal"
)

const (
	// MaxAmount is the exclusive upper bound for any stored money value
	// (numeric(12,2) in the relational schema).
	MaxAmount = 1e10
	// MaxQuantity matches the integer quantity column.
	MaxQuantity = math.MaxInt32
)

// ValidAmount reports whether v is a non-negative amount with at most two
// decimals and below MaxAmount, so every backend stores it unchanged.
func ValidAmount(v float64) bool {
	if math.IsNaN(v) || math.IsInf(v, 0) || v < 0 || v >= MaxAmount {
		return false
	}
	d := decimal.NewFromFloat(v)
	return d.Equal(d.Round(2))
}

// ValidQuantity reports whether q is within 0..MaxQuantity.
func ValidQuantity(q int) bool {
	return q >= 0 && int64(q) <= MaxQuantity
}
