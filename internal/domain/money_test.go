package domain

import (
	"math"
	"testing"
)

func TestValidAmount(t *testing.T) {
	cases := []struct {
		v    float64
		want bool
	}{
		{0, true},
		{19.99, true},
		{0.1, true},
		{9999999999.99, true},
		{19.999, false},
		{0.001, false},
		{-0.01, false},
		{1e10, false},
		{math.Inf(1), false},
		{math.NaN(), false},
	}
	for _, tc := range cases {
		if got := ValidAmount(tc.v); got != tc.want {
			t.Fatalf("ValidAmount(%v) = %v, want %v", tc.v, got, tc.want)
		}
	}
}

func TestValidQuantity(t *testing.T) {
	if !ValidQuantity(0) || !ValidQuantity(MaxQuantity) {
		t.Fatalf("expected bounds to be valid")
	}
	if ValidQuantity(-1) || ValidQuantity(MaxQuantity+1) {
		t.Fatalf("expected out-of-range quantities to be rejected")
	}
}
