package order

import (
	"context"
	"io"
	"log"
	"math"
	"strings"
	"time"

	"storefront/internal/checkout"
	"storefront/internal/dataurl"
	"storefront/internal/domain"
	orderrepo "storefront/internal/repository/order"
)

type Service struct {
	repo   orderrepo.Repository
	logger *log.Logger
	now    func() time.Time
}

func New(repo orderrepo.Repository, logger *log.Logger) *Service {
	if logger == nil {
		logger = log.New(io.Discard, "", 0)
	}
	return &Service{repo: repo, logger: logger, now: time.Now}
}

// SubmitInput is the order document posted by the checkout page.
type SubmitInput struct {
	Email         string               `json:"email"`
	FirstName     string               `json:"firstName"`
	LastName      string               `json:"lastName"`
	Address       string               `json:"address"`
	City          string               `json:"city"`
	Phone         string               `json:"phone"`
	UID           string               `json:"uid"`
	ProofImage    string               `json:"proofImage"`
	CartItems     []domain.CartItem    `json:"cartItems"`
	Total         float64              `json:"total"`
	PaymentMethod domain.PaymentMethod `json:"paymentMethod"`
	Date          string               `json:"date"`
}

// Submit validates the posted order and stores it. The total is recomputed
// from the cart; the client-supplied value is only compared for logging.
func (s *Service) Submit(ctx context.Context, in SubmitInput) (*domain.Order, error) {
	form := checkout.Form{
		Email:         strings.TrimSpace(in.Email),
		FirstName:     in.FirstName,
		LastName:      in.LastName,
		Address:       strings.TrimSpace(in.Address),
		City:          strings.TrimSpace(in.City),
		Phone:         strings.TrimSpace(in.Phone),
		UID:           strings.TrimSpace(in.UID),
		ProofImage:    in.ProofImage,
		PaymentMethod: in.PaymentMethod,
	}
	if err := checkout.Validate(form); err != nil {
		return nil, err
	}
	if err := validateCart(in.CartItems); err != nil {
		return nil, err
	}
	if form.ProofImage != "" && !dataurl.IsImage(form.ProofImage) {
		s.logger.Printf("order service: dropping proof image that is not an inline image email=%s", form.Email)
		form.ProofImage = ""
	}

	placedAt := s.now()
	if in.Date != "" {
		if parsed, err := time.Parse(time.RFC3339, in.Date); err == nil {
			placedAt = parsed
		}
	}

	order := checkout.BuildOrder(form, in.CartItems, placedAt)
	if !domain.ValidAmount(order.Total) {
		return nil, &checkout.ValidationError{Field: "total", Message: "Order total is too large."}
	}
	if in.Total != 0 && math.Abs(in.Total-order.Total) >= 0.005 {
		s.logger.Printf("order service: client total %.2f differs from computed %.2f email=%s", in.Total, order.Total, form.Email)
	}

	id, err := s.repo.Insert(ctx, order)
	if err != nil {
		return nil, err
	}
	order.ID = id
	return &order, nil
}

func validateCart(items []domain.CartItem) error {
	if len(items) == 0 {
		return &checkout.ValidationError{Field: "cartItems", Message: "Your cart is empty."}
	}
	for _, it := range items {
		if strings.TrimSpace(it.Title) == "" {
			return &checkout.ValidationError{Field: "cartItems", Message: "Every cart item needs a title."}
		}
		if !domain.ValidAmount(it.Price) {
			return &checkout.ValidationError{Field: "cartItems", Message: "Cart item prices must be non-negative with at most two decimals."}
		}
		if it.Quantity <= 0 || !domain.ValidQuantity(it.Quantity) {
			return &checkout.ValidationError{Field: "cartItems", Message: "Cart item quantities must be positive."}
		}
	}
	return nil
}
