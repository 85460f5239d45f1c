package repositories

import (
	"context"

	"github.com/sokebat/barber-frontend-sub000/internal/domain/entities"
)

// OrderRepository defines the interface for checked-out orders
type OrderRepository interface {
	// Create stores an order and its lines atomically
	Create(ctx context.Context, order *entities.Order) error

	// UpdatePayment records the payment session for an order
	UpdatePayment(ctx context.Context, orderID, sessionID, paymentURL string) error

	GetByID(ctx context.Context, id string) (*entities.Order, error)
	ListByUser(ctx context.Context, userID string) ([]*entities.Order, error)
}
