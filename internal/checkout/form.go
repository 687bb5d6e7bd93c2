// Package checkout holds the checkout form, its validation rules, cart totals
// and the flow that turns a session cart into a submitted order.
package checkout

import (
	"time"

	"storefront/internal/domain"
)

// Form is the checkout view-model bound to the order form inputs.
type Form struct {
	Email         string
	FirstName     string
	LastName      string
	Address       string
	City          string
	Phone         string
	UID           string
	ProofImage    string
	PaymentMethod domain.PaymentMethod
}

// BuildOrder snapshots the form and cart into an order placed at now.
func BuildOrder(f Form, items []domain.CartItem, now time.Time) domain.Order {
	method := f.PaymentMethod
	if method == "" {
		method = domain.PaymentCashOnDelivery
	}
	order := domain.Order{
		Email:         f.Email,
		FirstName:     f.FirstName,
		LastName:      f.LastName,
		Address:       f.Address,
		City:          f.City,
		Phone:         f.Phone,
		CartItems:     append([]domain.CartItem(nil), items...),
		Total:         Total(items).InexactFloat64(),
		PaymentMethod: method,
		Date:          now.UTC(),
	}
	// Transaction reference and proof only make sense for online payment.
	if method == domain.PaymentOnline {
		order.UID = f.UID
		order.ProofImage = f.ProofImage
	}
	return order
}
