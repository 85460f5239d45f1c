package services

import (
	"context"
	"math"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
	"github.com/sokebat/barber-frontend-sub000/internal/application/auth"
	"github.com/sokebat/barber-frontend-sub000/internal/application/loaders"
	"github.com/sokebat/barber-frontend-sub000/internal/domain/entities"
	"github.com/sokebat/barber-frontend-sub000/internal/domain/providers"
	"github.com/sokebat/barber-frontend-sub000/internal/domain/repositories"
	"github.com/sokebat/barber-frontend-sub000/internal/infrastructure/observability"
	apperrors "github.com/sokebat/barber-frontend-sub000/pkg/errors"
)

// CheckoutService prices carts and records orders
type CheckoutService struct {
	orders   repositories.OrderRepository
	products repositories.ProductRepository
	payments providers.PaymentProvider
	events   providers.EventPublisher
	metrics  *observability.Metrics
	taxRate  float64
}

// NewCheckoutService creates a new checkout service. payments, events and metrics may be nil.
func NewCheckoutService(
	orders repositories.OrderRepository,
	products repositories.ProductRepository,
	payments providers.PaymentProvider,
	events providers.EventPublisher,
	metrics *observability.Metrics,
	taxRate float64,
) *CheckoutService {
	return &CheckoutService{
		orders:   orders,
		products: products,
		payments: payments,
		events:   events,
		metrics:  metrics,
		taxRate:  taxRate,
	}
}

// RoundCents rounds an amount to two decimal places
func RoundCents(amount float64) float64 {
	return math.Round(amount*100) / 100
}

// Checkout prices the cart from current product rows and stores a pending order
func (s *CheckoutService) Checkout(ctx context.Context, req *entities.CheckoutRequest) (*entities.Order, error) {
	identity := auth.IdentityFromContext(ctx)
	if identity == nil {
		return nil, apperrors.NewUnauthorizedError("authentication required")
	}
	if req == nil || len(req.Items) == 0 {
		return nil, apperrors.NewValidationError("cart is empty")
	}

	// Merge repeated product ids, keeping first-seen order
	quantities := make(map[string]int, len(req.Items))
	var ids []string
	for _, item := range req.Items {
		id := strings.TrimSpace(item.ProductID)
		if id == "" {
			return nil, apperrors.NewValidationError("productId is required")
		}
		if item.Quantity < 1 {
			return nil, apperrors.NewValidationError("quantity must be at least 1")
		}
		if _, seen := quantities[id]; !seen {
			ids = append(ids, id)
		}
		quantities[id] += item.Quantity
	}

	l := loaders.For(ctx)
	if l == nil {
		l = loaders.NewLoaders(s.products)
	}
	products, errs := l.LoadProducts(ctx, ids)

	lines := make([]entities.OrderLine, 0, len(ids))
	subtotal := 0.0
	for i, id := range ids {
		if errs[i] != nil {
			if apperrors.IsType(errs[i], apperrors.ErrorTypeNotFound) {
				return nil, apperrors.NewValidationError("unknown product " + id)
			}
			return nil, errs[i]
		}
		product := products[i]
		unit := product.EffectivePrice()
		qty := quantities[id]
		lineTotal := RoundCents(unit * float64(qty))

		lines = append(lines, entities.OrderLine{
			ProductID: id,
			Name:      product.Name,
			UnitPrice: unit,
			Quantity:  qty,
			LineTotal: lineTotal,
		})
		subtotal += unit * float64(qty)
	}

	subtotal = RoundCents(subtotal)
	tax := RoundCents(subtotal * s.taxRate)

	now := time.Now()
	order := &entities.Order{
		ID:        uuid.New().String(),
		UserID:    identity.UserID,
		Lines:     lines,
		Subtotal:  subtotal,
		Tax:       tax,
		Total:     RoundCents(subtotal + tax),
		Status:    entities.OrderStatusPending,
		CreatedAt: now,
		UpdatedAt: now,
	}

	if err := s.orders.Create(ctx, order); err != nil {
		return nil, err
	}

	if s.payments != nil {
		session, err := s.payments.CreateCheckoutSession(ctx, order)
		if err != nil {
			// The order stays pending without a payment link
			return nil, err
		}
		if err := s.orders.UpdatePayment(ctx, order.ID, session.ID, session.URL); err != nil {
			return nil, err
		}
		order.PaymentSessionID = session.ID
		order.PaymentURL = session.URL
	}

	withPayment := order.PaymentSessionID != ""
	observability.RecordOrderCreated(ctx, s.metrics, withPayment)
	observability.CountOrderCreated(order.Total, withPayment)
	s.publish(ctx, order)

	return order, nil
}

// Mine returns the caller's orders
func (s *CheckoutService) Mine(ctx context.Context) ([]*entities.Order, error) {
	identity := auth.IdentityFromContext(ctx)
	if identity == nil {
		return nil, apperrors.NewUnauthorizedError("authentication required")
	}
	return s.orders.ListByUser(ctx, identity.UserID)
}

func (s *CheckoutService) publish(ctx context.Context, order *entities.Order) {
	if s.events == nil {
		return
	}
	event := entities.NewDomainEvent(entities.EventOrderCreated, entities.AggregateOrder, order.ID, map[string]interface{}{
		"userId": order.UserID,
		"total":  order.Total,
		"lines":  len(order.Lines),
	})
	if err := s.events.Publish(ctx, providers.EventChannelOrders, event); err != nil {
		log.Warn().Err(err).Str("order_id", order.ID).Msg("failed to publish order event")
	}
}
