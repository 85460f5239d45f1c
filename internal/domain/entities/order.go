package entities

import (
	"time"
)

// OrderStatus tracks payment progress of an order
type OrderStatus string

const (
	OrderStatusPending OrderStatus = "pending"
	OrderStatusPaid    OrderStatus = "paid"
)

// CartItem references a product and a quantity; prices are resolved at checkout
type CartItem struct {
	ProductID string `json:"productId"`
	Quantity  int    `json:"quantity"`
}

// CheckoutRequest is the payload accepted by /Checkout
type CheckoutRequest struct {
	Items []CartItem `json:"items"`
}

// OrderLine is a priced cart line frozen at checkout time
type OrderLine struct {
	ProductID string  `json:"productId" db:"product_id"`
	Name      string  `json:"name" db:"name"`
	UnitPrice float64 `json:"unitPrice" db:"unit_price"`
	Quantity  int     `json:"quantity" db:"quantity"`
	LineTotal float64 `json:"lineTotal" db:"line_total"`
}

// Order is a checked-out cart
type Order struct {
	ID               string      `json:"id" db:"id"`
	UserID           string      `json:"userId" db:"user_id"`
	Lines            []OrderLine `json:"lines"`
	Subtotal         float64     `json:"subtotal" db:"subtotal"`
	Tax              float64     `json:"tax" db:"tax"`
	Total            float64     `json:"total" db:"total"`
	Status           OrderStatus `json:"status" db:"status"`
	PaymentURL       string      `json:"paymentUrl,omitempty" db:"payment_url"`
	PaymentSessionID string      `json:"paymentSessionId,omitempty" db:"payment_session_id"`
	CreatedAt        time.Time   `json:"createdAt" db:"created_at"`
	UpdatedAt        time.Time   `json:"updatedAt" db:"updated_at"`
}
