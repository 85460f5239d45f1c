package services_test

import (
	"context"
	"errors"
	"testing"

	"github.com/sokebat/barber-frontend-sub000/internal/application/loaders"
	"github.com/sokebat/barber-frontend-sub000/internal/application/services"
	"github.com/sokebat/barber-frontend-sub000/internal/domain/entities"
	"github.com/sokebat/barber-frontend-sub000/internal/domain/providers"
	apperrors "github.com/sokebat/barber-frontend-sub000/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func catalogProducts() []*entities.Product {
	return []*entities.Product{
		{ID: "oil", Name: "Argan Oil", Price: 29.99, DiscountPrice: price(24.99)},
		{ID: "kit", Name: "Nail Kit", Price: 35},
	}
}

func TestCheckoutService_Checkout(t *testing.T) {
	t.Run("prices lines from current products with tax", func(t *testing.T) {
		orders := new(MockOrderRepository)
		products := new(MockProductRepository)
		events := &RecordingPublisher{}
		service := services.NewCheckoutService(orders, products, nil, events, nil, 0.10)

		products.On("GetByIDs", mock.Anything, []string{"oil", "kit"}).Return(catalogProducts(), nil).Once()
		orders.On("Create", mock.Anything, mock.Anything).Return(nil)

		order, err := service.Checkout(customerCtx(), &entities.CheckoutRequest{Items: []entities.CartItem{
			{ProductID: "oil", Quantity: 1},
			{ProductID: "kit", Quantity: 1},
			{ProductID: "oil", Quantity: 1},
		}})

		require.NoError(t, err)
		require.Len(t, order.Lines, 2)
		assert.Equal(t, 2, order.Lines[0].Quantity)
		assert.Equal(t, 24.99, order.Lines[0].UnitPrice)
		assert.Equal(t, 49.98, order.Lines[0].LineTotal)
		assert.Equal(t, 84.98, order.Subtotal)
		assert.Equal(t, 8.5, order.Tax)
		assert.Equal(t, 93.48, order.Total)
		assert.Equal(t, entities.OrderStatusPending, order.Status)
		assert.Equal(t, "u-1", order.UserID)
		assert.Empty(t, order.PaymentURL)
		assert.Equal(t, []string{providers.EventChannelOrders}, events.Channels())
		products.AssertExpectations(t)
	})

	t.Run("uses request scoped loaders when present", func(t *testing.T) {
		orders := new(MockOrderRepository)
		products := new(MockProductRepository)
		service := services.NewCheckoutService(orders, nil, nil, nil, nil, 0)

		products.On("GetByIDs", mock.Anything, []string{"kit"}).Return(catalogProducts()[1:], nil).Once()
		orders.On("Create", mock.Anything, mock.Anything).Return(nil)

		ctx := loaders.WithLoaders(customerCtx(), loaders.NewLoaders(products))
		order, err := service.Checkout(ctx, &entities.CheckoutRequest{Items: []entities.CartItem{{ProductID: "kit", Quantity: 3}}})

		require.NoError(t, err)
		assert.Equal(t, 105.0, order.Total)
	})

	t.Run("creates a payment session when payments are configured", func(t *testing.T) {
		orders := new(MockOrderRepository)
		products := new(MockProductRepository)
		payments := new(MockPaymentProvider)
		service := services.NewCheckoutService(orders, products, payments, nil, nil, 0.10)

		products.On("GetByIDs", mock.Anything, []string{"kit"}).Return(catalogProducts()[1:], nil)
		orders.On("Create", mock.Anything, mock.Anything).Return(nil)
		payments.On("CreateCheckoutSession", mock.Anything, mock.Anything).
			Return(&providers.PaymentSession{ID: "cs_123", URL: "https://checkout.stripe.com/pay/cs_123"}, nil)
		orders.On("UpdatePayment", mock.Anything, mock.Anything, "cs_123", "https://checkout.stripe.com/pay/cs_123").Return(nil)

		order, err := service.Checkout(customerCtx(), &entities.CheckoutRequest{Items: []entities.CartItem{{ProductID: "kit", Quantity: 1}}})

		require.NoError(t, err)
		assert.Equal(t, "cs_123", order.PaymentSessionID)
		assert.Equal(t, "https://checkout.stripe.com/pay/cs_123", order.PaymentURL)
		orders.AssertExpectations(t)
	})

	t.Run("payment failures are returned", func(t *testing.T) {
		orders := new(MockOrderRepository)
		products := new(MockProductRepository)
		payments := new(MockPaymentProvider)
		service := services.NewCheckoutService(orders, products, payments, nil, nil, 0.10)

		products.On("GetByIDs", mock.Anything, []string{"kit"}).Return(catalogProducts()[1:], nil)
		orders.On("Create", mock.Anything, mock.Anything).Return(nil)
		payments.On("CreateCheckoutSession", mock.Anything, mock.Anything).
			Return(nil, apperrors.NewExternalError("failed to create checkout session", errors.New("card_declined")))

		_, err := service.Checkout(customerCtx(), &entities.CheckoutRequest{Items: []entities.CartItem{{ProductID: "kit", Quantity: 1}}})

		assert.True(t, apperrors.IsType(err, apperrors.ErrorTypeExternal))
		orders.AssertNotCalled(t, "UpdatePayment", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("unknown products are a validation error", func(t *testing.T) {
		orders := new(MockOrderRepository)
		products := new(MockProductRepository)
		service := services.NewCheckoutService(orders, products, nil, nil, nil, 0.10)

		products.On("GetByIDs", mock.Anything, []string{"ghost"}).Return([]*entities.Product{}, nil)

		_, err := service.Checkout(customerCtx(), &entities.CheckoutRequest{Items: []entities.CartItem{{ProductID: "ghost", Quantity: 1}}})

		assert.True(t, apperrors.IsType(err, apperrors.ErrorTypeValidation))
		orders.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	})

	invalid := []*entities.CheckoutRequest{
		nil,
		{},
		{Items: []entities.CartItem{{ProductID: "kit", Quantity: 0}}},
		{Items: []entities.CartItem{{ProductID: "", Quantity: 1}}},
	}
	for _, req := range invalid {
		service := services.NewCheckoutService(new(MockOrderRepository), new(MockProductRepository), nil, nil, nil, 0.10)
		_, err := service.Checkout(customerCtx(), req)
		assert.True(t, apperrors.IsType(err, apperrors.ErrorTypeValidation), "request %+v", req)
	}

	service := services.NewCheckoutService(new(MockOrderRepository), new(MockProductRepository), nil, nil, nil, 0.10)
	_, err := service.Checkout(context.Background(), &entities.CheckoutRequest{Items: []entities.CartItem{{ProductID: "kit", Quantity: 1}}})
	assert.True(t, apperrors.IsType(err, apperrors.ErrorTypeUnauthorized))
}

func TestCheckoutService_Mine(t *testing.T) {
	orders := new(MockOrderRepository)
	service := services.NewCheckoutService(orders, nil, nil, nil, nil, 0.10)
	orders.On("ListByUser", mock.Anything, "u-1").Return([]*entities.Order{{ID: "o1"}}, nil)

	list, err := service.Mine(customerCtx())

	require.NoError(t, err)
	assert.Len(t, list, 1)
}

func TestRoundCents(t *testing.T) {
	assert.Equal(t, 93.48, services.RoundCents(93.478))
	assert.Equal(t, 84.98, services.RoundCents(2*24.99+35.00))
	assert.Equal(t, 0.0, services.RoundCents(0))
}
