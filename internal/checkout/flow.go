package checkout

import (
	"context"
	"errors"
	"time"

	"storefront/internal/domain"
)

// ErrEmptyCart is returned when checkout is attempted with nothing in the cart.
var ErrEmptyCart = errors.New("cart is empty")

// OrderSubmitter sends an order to the order endpoint.
type OrderSubmitter interface {
	SubmitOrder(ctx context.Context, order domain.Order) (string, error)
}

// CartStore is the persisted cart hand-off between shopping and checkout.
type CartStore interface {
	Cart() ([]domain.CartItem, error)
	ClearCart() error
}

// Flow places orders from the persisted cart.
type Flow struct {
	submitter OrderSubmitter
	cart      CartStore
	now       func() time.Time
}

func NewFlow(submitter OrderSubmitter, cart CartStore) *Flow {
	return &Flow{submitter: submitter, cart: cart, now: time.Now}
}

// PlaceOrder validates the form, submits the order and clears the cart once
// the server accepted it. Nothing is sent when validation fails.
func (f *Flow) PlaceOrder(ctx context.Context, form Form) (*domain.Order, error) {
	items, err := f.cart.Cart()
	if err != nil {
		return nil, err
	}
	if len(items) == 0 {
		return nil, ErrEmptyCart
	}
	if err := Validate(form); err != nil {
		return nil, err
	}

	order := BuildOrder(form, items, f.now())
	id, err := f.submitter.SubmitOrder(ctx, order)
	if err != nil {
		return nil, err
	}
	order.ID = id
	if err := f.cart.ClearCart(); err != nil {
		return &order, err
	}
	return &order, nil
}
