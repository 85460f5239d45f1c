package database

import (
	"context"
	"database/sql"
	"time"

	"github.com/doug-martin/goqu/v9"
	"github.com/sokebat/barber-frontend-sub000/internal/domain/entities"
	"github.com/sokebat/barber-frontend-sub000/internal/domain/repositories"
	"github.com/sokebat/barber-frontend-sub000/internal/infrastructure/clients/postgres"
	apperrors "github.com/sokebat/barber-frontend-sub000/pkg/errors"
)

var orderColumns = []interface{}{
	"id", "user_id", "subtotal", "tax", "total", "status",
	"payment_url", "payment_session_id", "created_at", "updated_at",
}

// OrderAdapter implements the OrderRepository interface
type OrderAdapter struct {
	client *postgres.Client
	db     *goqu.Database
}

// NewOrderAdapter creates a new order adapter
func NewOrderAdapter(client *postgres.Client) repositories.OrderRepository {
	return &OrderAdapter{
		client: client,
		db:     goqu.New("postgres", client.DB()),
	}
}

// Create stores an order and its lines atomically
func (a *OrderAdapter) Create(ctx context.Context, order *entities.Order) error {
	orderQuery, orderArgs, err := a.db.Insert("orders").Rows(goqu.Record{
		"id":                 order.ID,
		"user_id":            order.UserID,
		"subtotal":           order.Subtotal,
		"tax":                order.Tax,
		"total":              order.Total,
		"status":             order.Status,
		"payment_url":        order.PaymentURL,
		"payment_session_id": order.PaymentSessionID,
		"created_at":         order.CreatedAt,
		"updated_at":         order.UpdatedAt,
	}).ToSQL()
	if err != nil {
		return apperrors.NewInternalError("failed to build insert query", err)
	}

	lines := make([]interface{}, 0, len(order.Lines))
	for i, line := range order.Lines {
		lines = append(lines, goqu.Record{
			"order_id":   order.ID,
			"position":   i,
			"product_id": line.ProductID,
			"name":       line.Name,
			"unit_price": line.UnitPrice,
			"quantity":   line.Quantity,
			"line_total": line.LineTotal,
		})
	}

	tx, err := a.client.BeginTx(ctx)
	if err != nil {
		return apperrors.NewInternalError("failed to begin transaction", err)
	}
	defer func() { _ = tx.Rollback() }()

	if _, err := tx.ExecContext(ctx, orderQuery, orderArgs...); err != nil {
		return apperrors.NewInternalError("failed to create order", err)
	}

	if len(lines) > 0 {
		linesQuery, linesArgs, err := a.db.Insert("order_lines").Rows(lines...).ToSQL()
		if err != nil {
			return apperrors.NewInternalError("failed to build insert query", err)
		}
		if _, err := tx.ExecContext(ctx, linesQuery, linesArgs...); err != nil {
			return apperrors.NewInternalError("failed to create order lines", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return apperrors.NewInternalError("failed to commit order", err)
	}
	return nil
}

// UpdatePayment records the payment session for an order
func (a *OrderAdapter) UpdatePayment(ctx context.Context, orderID, sessionID, paymentURL string) error {
	query, args, err := a.db.Update("orders").
		Set(goqu.Record{
			"payment_session_id": sessionID,
			"payment_url":        paymentURL,
			"updated_at":         time.Now(),
		}).
		Where(goqu.Ex{"id": orderID}).
		ToSQL()
	if err != nil {
		return apperrors.NewInternalError("failed to build update query", err)
	}

	result, err := a.client.DB().ExecContext(ctx, query, args...)
	if err != nil {
		return apperrors.NewInternalError("failed to update order payment", err)
	}
	return expectAffected(result, "order", orderID)
}

// GetByID retrieves an order with its lines
func (a *OrderAdapter) GetByID(ctx context.Context, id string) (*entities.Order, error) {
	query, args, err := a.db.Select(orderColumns...).
		From("orders").
		Where(goqu.Ex{"id": id}).
		ToSQL()
	if err != nil {
		return nil, apperrors.NewInternalError("failed to build query", err)
	}

	order, err := scanOrder(a.client.DB().QueryRowContext(ctx, query, args...))
	if err != nil {
		return nil, readError(err, "order", id)
	}

	lines, err := a.linesFor(ctx, []string{id})
	if err != nil {
		return nil, err
	}
	order.Lines = lines[id]
	return order, nil
}

// ListByUser retrieves a user's orders, newest first
func (a *OrderAdapter) ListByUser(ctx context.Context, userID string) ([]*entities.Order, error) {
	query, args, err := a.db.Select(orderColumns...).
		From("orders").
		Where(goqu.Ex{"user_id": userID}).
		Order(goqu.I("created_at").Desc()).
		ToSQL()
	if err != nil {
		return nil, apperrors.NewInternalError("failed to build query", err)
	}

	rows, err := a.client.DB().QueryContext(ctx, query, args...)
	if err != nil {
		return nil, apperrors.NewInternalError("failed to list orders", err)
	}
	defer rows.Close()

	orders := make([]*entities.Order, 0)
	ids := make([]string, 0)
	for rows.Next() {
		order, err := scanOrder(rows)
		if err != nil {
			return nil, apperrors.NewInternalError("failed to scan order", err)
		}
		orders = append(orders, order)
		ids = append(ids, order.ID)
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewInternalError("error iterating orders", err)
	}

	if len(ids) == 0 {
		return orders, nil
	}

	lines, err := a.linesFor(ctx, ids)
	if err != nil {
		return nil, err
	}
	for _, order := range orders {
		order.Lines = lines[order.ID]
	}
	return orders, nil
}

func (a *OrderAdapter) linesFor(ctx context.Context, orderIDs []string) (map[string][]entities.OrderLine, error) {
	query, args, err := a.db.Select("order_id", "product_id", "name", "unit_price", "quantity", "line_total").
		From("order_lines").
		Where(goqu.Ex{"order_id": orderIDs}).
		Order(goqu.I("order_id").Asc(), goqu.I("position").Asc()).
		ToSQL()
	if err != nil {
		return nil, apperrors.NewInternalError("failed to build query", err)
	}

	rows, err := a.client.DB().QueryContext(ctx, query, args...)
	if err != nil {
		return nil, apperrors.NewInternalError("failed to load order lines", err)
	}
	defer rows.Close()

	result := make(map[string][]entities.OrderLine, len(orderIDs))
	for rows.Next() {
		var orderID string
		var line entities.OrderLine
		if err := rows.Scan(&orderID, &line.ProductID, &line.Name, &line.UnitPrice, &line.Quantity, &line.LineTotal); err != nil {
			return nil, apperrors.NewInternalError("failed to scan order line", err)
		}
		result[orderID] = append(result[orderID], line)
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewInternalError("error iterating order lines", err)
	}
	return result, nil
}

func scanOrder(row rowScanner) (*entities.Order, error) {
	order := &entities.Order{}
	var status string
	var paymentURL, sessionID sql.NullString

	err := row.Scan(
		&order.ID,
		&order.UserID,
		&order.Subtotal,
		&order.Tax,
		&order.Total,
		&status,
		&paymentURL,
		&sessionID,
		&order.CreatedAt,
		&order.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	order.Status = entities.OrderStatus(status)
	order.PaymentURL = paymentURL.String
	order.PaymentSessionID = sessionID.String
	return order, nil
}
