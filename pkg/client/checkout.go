package client

import (
	"context"
	"net/http"
)

// CheckoutService covers /Checkout and /Orders
type CheckoutService struct {
	c *Client
}

// Checkout places an order for the given lines. The server prices them.
func (s *CheckoutService) Checkout(ctx context.Context, items []CartItem) Response[Order] {
	body := struct {
		Items []CartItem `json:"items"`
	}{Items: items}
	return do[Order](ctx, s.c, call{method: http.MethodPost, path: "/Checkout", body: body, private: true})
}

// Orders lists the caller's orders
func (s *CheckoutService) Orders(ctx context.Context) Response[[]Order] {
	return do[[]Order](ctx, s.c, call{method: http.MethodGet, path: "/Orders/mine", private: true})
}
