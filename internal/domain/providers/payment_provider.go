package providers

import (
	"context"

	"github.com/sokebat/barber-frontend-sub000/internal/domain/entities"
)

// PaymentSession is a hosted payment page created for an order
type PaymentSession struct {
	ID  string
	URL string
}

// PaymentProvider creates hosted payment sessions
type PaymentProvider interface {
	CreateCheckoutSession(ctx context.Context, order *entities.Order) (*PaymentSession, error)
}
