package domain

import "time"

type PaymentMethod string

const (
	PaymentCashOnDelivery PaymentMethod = "cod"
	PaymentOnline         PaymentMethod = "online"
)

// Valid reports whether m is one of the supported payment methods.
func (m PaymentMethod) Valid() bool {
	return m == PaymentCashOnDelivery || m == PaymentOnline
}

// CartItem is a catalog item snapshot held by the shopper before checkout.
type CartItem struct {
	Title    string  `json:"title"`
	Image    string  `json:"image"`
	Price    float64 `json:"price"`
	Quantity int     `json:"quantity"`
	StoreID  string  `json:"storeID,omitempty"`
}

// Order is the frozen snapshot written once at checkout.
type Order struct {
	ID            string        `json:"_id,omitempty"`
	Email         string        `json:"email"`
	FirstName     string        `json:"firstName"`
	LastName      string        `json:"lastName"`
	Address       string        `json:"address"`
	City          string        `json:"city"`
	Phone         string        `json:"phone"`
	UID           string        `json:"uid,omitempty"`
	ProofImage    string        `json:"proofImage,omitempty"`
	CartItems     []CartItem    `json:"cartItems"`
	Total         float64       `json:"total"`
	PaymentMethod PaymentMethod `json:"paymentMethod"`
	Date          time.Time     `json:"date"`
}
