package checkout

import (
	"context"
	"errors"
	"testing"
	"time"

	"storefront/internal/domain"
)

type stubSubmitter struct {
	calls int
	last  domain.Order
	id    string
	err   error
}

func (s *stubSubmitter) SubmitOrder(_ context.Context, order domain.Order) (string, error) {
	s.calls++
	s.last = order
	return s.id, s.err
}

type stubCart struct {
	items   []domain.CartItem
	err     error
	cleared bool
}

func (s *stubCart) Cart() ([]domain.CartItem, error) {
	return s.items, s.err
}

func (s *stubCart) ClearCart() error {
	s.cleared = true
	s.items = nil
	return nil
}

func newTestFlow(sub *stubSubmitter, cart *stubCart) *Flow {
	f := NewFlow(sub, cart)
	f.now = func() time.Time { return time.Date(2026, 5, 1, 12, 0, 0, 0, time.UTC) }
	return f
}

func TestPlaceOrder_SubmitsAndClearsCart(t *testing.T) {
	sub := &stubSubmitter{id: "ord-1"}
	cart := &stubCart{items: []domain.CartItem{{Title: "Shirt", Price: 12.5, Quantity: 2}}}

	order, err := newTestFlow(sub, cart).PlaceOrder(context.Background(), validForm())
	if err != nil {
		t.Fatalf("PlaceOrder: %v", err)
	}
	if sub.calls != 1 || sub.last.Total != 25 {
		t.Fatalf("unexpected submission %+v", sub.last)
	}
	if order.ID != "ord-1" {
		t.Fatalf("expected id from server, got %q", order.ID)
	}
	if !cart.cleared {
		t.Fatalf("expected cart cleared after success")
	}
}

func TestPlaceOrder_ValidationFailureMakesNoCall(t *testing.T) {
	sub := &stubSubmitter{}
	cart := &stubCart{items: []domain.CartItem{{Title: "Shirt", Price: 1, Quantity: 1}}}
	form := validForm()
	form.Email = "john@outlook.com"

	_, err := newTestFlow(sub, cart).PlaceOrder(context.Background(), form)
	var vErr *ValidationError
	if !errors.As(err, &vErr) || vErr.Field != "email" {
		t.Fatalf("expected email validation error, got %v", err)
	}
	if sub.calls != 0 {
		t.Fatalf("expected no submission, got %d", sub.calls)
	}
	if cart.cleared {
		t.Fatalf("cart must survive a failed validation")
	}
}

func TestPlaceOrder_SubmitFailureKeepsCart(t *testing.T) {
	sub := &stubSubmitter{err: errors.New("boom")}
	cart := &stubCart{items: []domain.CartItem{{Title: "Shirt", Price: 1, Quantity: 1}}}

	if _, err := newTestFlow(sub, cart).PlaceOrder(context.Background(), validForm()); err == nil {
		t.Fatalf("expected error")
	}
	if cart.cleared {
		t.Fatalf("cart must survive a failed submission")
	}
}

func TestPlaceOrder_EmptyCart(t *testing.T) {
	sub := &stubSubmitter{}
	_, err := newTestFlow(sub, &stubCart{}).PlaceOrder(context.Background(), validForm())
	if !errors.Is(err, ErrEmptyCart) {
		t.Fatalf("expected ErrEmptyCart, got %v", err)
	}
	if sub.calls != 0 {
		t.Fatalf("expected no submission")
	}
}
