package payments

import (
	"context"
	"errors"
	"testing"

	"github.com/sokebat/barber-frontend-sub000/internal/domain/entities"
	"github.com/sokebat/barber-frontend-sub000/pkg/config"
	apperrors "github.com/sokebat/barber-frontend-sub000/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stripe/stripe-go/v79"
)

func testOrder() *entities.Order {
	return &entities.Order{
		ID:     "o1",
		UserID: "u1",
		Lines: []entities.OrderLine{
			{ProductID: "p1", Name: "Shampoo", UnitPrice: 24.99, Quantity: 2, LineTotal: 49.98},
			{ProductID: "p2", Name: "Conditioner", UnitPrice: 35, Quantity: 1, LineTotal: 35},
		},
		Subtotal: 84.98,
		Tax:      8.5,
		Total:    93.48,
	}
}

func TestStripeAdapter_CreateCheckoutSession(t *testing.T) {
	var captured *stripe.CheckoutSessionParams
	adapter := newStripeAdapter(&config.StripeConfig{
		SuccessURL: "https://salon.test/success",
		CancelURL:  "https://salon.test/cart",
	}, func(params *stripe.CheckoutSessionParams) (*stripe.CheckoutSession, error) {
		captured = params
		return &stripe.CheckoutSession{ID: "cs_test_1", URL: "https://checkout.stripe.test/cs_test_1"}, nil
	})

	session, err := adapter.CreateCheckoutSession(context.Background(), testOrder())
	require.NoError(t, err)
	assert.Equal(t, "cs_test_1", session.ID)
	assert.Equal(t, "https://checkout.stripe.test/cs_test_1", session.URL)

	require.NotNil(t, captured)
	assert.Equal(t, "payment", *captured.Mode)
	assert.Equal(t, "o1", *captured.ClientReferenceID)
	assert.Equal(t, "order-o1", *captured.IdempotencyKey)
	require.Len(t, captured.LineItems, 3)

	first := captured.LineItems[0]
	assert.Equal(t, int64(2499), *first.PriceData.UnitAmount)
	assert.Equal(t, int64(2), *first.Quantity)
	assert.Equal(t, "usd", *first.PriceData.Currency)

	tax := captured.LineItems[2]
	assert.Equal(t, "Sales tax", *tax.PriceData.ProductData.Name)
	assert.Equal(t, int64(850), *tax.PriceData.UnitAmount)
}

func TestStripeAdapter_ErrorIsExternal(t *testing.T) {
	adapter := newStripeAdapter(&config.StripeConfig{Currency: "EUR"}, func(*stripe.CheckoutSessionParams) (*stripe.CheckoutSession, error) {
		return nil, errors.New("card_declined")
	})

	_, err := adapter.CreateCheckoutSession(context.Background(), testOrder())
	assert.True(t, apperrors.IsType(err, apperrors.ErrorTypeExternal))
	assert.Equal(t, "eur", adapter.currency)
}

func TestToMinorUnits(t *testing.T) {
	assert.Equal(t, int64(9348), toMinorUnits(93.478))
	assert.Equal(t, int64(0), toMinorUnits(0))
}
