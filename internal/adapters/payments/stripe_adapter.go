package payments

import (
	"context"
	"math"
	"strings"

	"github.com/sokebat/barber-frontend-sub000/internal/domain/entities"
	"github.com/sokebat/barber-frontend-sub000/internal/domain/providers"
	"github.com/sokebat/barber-frontend-sub000/pkg/config"
	apperrors "github.com/sokebat/barber-frontend-sub000/pkg/errors"
	"github.com/stripe/stripe-go/v79"
	checkoutsession "github.com/stripe/stripe-go/v79/checkout/session"
)

type sessionCreator func(params *stripe.CheckoutSessionParams) (*stripe.CheckoutSession, error)

// StripeAdapter creates Stripe Checkout Sessions for orders
type StripeAdapter struct {
	successURL string
	cancelURL  string
	currency   string
	create     sessionCreator
}

var _ providers.PaymentProvider = (*StripeAdapter)(nil)

// NewStripeAdapter sets the global Stripe key and returns an adapter
func NewStripeAdapter(cfg *config.StripeConfig) *StripeAdapter {
	stripe.Key = cfg.SecretKey
	return newStripeAdapter(cfg, checkoutsession.New)
}

func newStripeAdapter(cfg *config.StripeConfig, create sessionCreator) *StripeAdapter {
	currency := strings.ToLower(cfg.Currency)
	if currency == "" {
		currency = string(stripe.CurrencyUSD)
	}
	return &StripeAdapter{
		successURL: cfg.SuccessURL,
		cancelURL:  cfg.CancelURL,
		currency:   currency,
		create:     create,
	}
}

// CreateCheckoutSession creates a one-off payment session with one line per order line plus tax
func (a *StripeAdapter) CreateCheckoutSession(ctx context.Context, order *entities.Order) (*providers.PaymentSession, error) {
	params := a.sessionParams(order)
	params.Context = ctx

	sess, err := a.create(params)
	if err != nil {
		return nil, apperrors.NewExternalError("failed to create payment session", err)
	}

	return &providers.PaymentSession{ID: sess.ID, URL: sess.URL}, nil
}

func (a *StripeAdapter) sessionParams(order *entities.Order) *stripe.CheckoutSessionParams {
	lineItems := make([]*stripe.CheckoutSessionLineItemParams, 0, len(order.Lines)+1)
	for _, line := range order.Lines {
		lineItems = append(lineItems, a.lineItem(line.Name, line.UnitPrice, int64(line.Quantity)))
	}
	if order.Tax > 0 {
		lineItems = append(lineItems, a.lineItem("Sales tax", order.Tax, 1))
	}

	params := &stripe.CheckoutSessionParams{
		Mode:              stripe.String(string(stripe.CheckoutSessionModePayment)),
		SuccessURL:        stripe.String(a.successURL),
		CancelURL:         stripe.String(a.cancelURL),
		ClientReferenceID: stripe.String(order.ID),
		LineItems:         lineItems,
		Metadata: map[string]string{
			"order_id": order.ID,
			"user_id":  order.UserID,
		},
	}
	params.IdempotencyKey = stripe.String("order-" + order.ID)
	return params
}

func (a *StripeAdapter) lineItem(name string, amount float64, quantity int64) *stripe.CheckoutSessionLineItemParams {
	return &stripe.CheckoutSessionLineItemParams{
		PriceData: &stripe.CheckoutSessionLineItemPriceDataParams{
			Currency:   stripe.String(a.currency),
			UnitAmount: stripe.Int64(toMinorUnits(amount)),
			ProductData: &stripe.CheckoutSessionLineItemPriceDataProductDataParams{
				Name: stripe.String(name),
			},
		},
		Quantity: stripe.Int64(quantity),
	}
}

func toMinorUnits(amount float64) int64 {
	return int64(math.Round(amount * 100))
}
