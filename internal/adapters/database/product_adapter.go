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

var productColumns = []interface{}{
	"id", "name", "description", "price", "discount_price",
	"image_url", "category_name", "created_at", "updated_at",
}

// ProductAdapter implements the ProductRepository interface
type ProductAdapter struct {
	client *postgres.Client
	db     *goqu.Database
}

// NewProductAdapter creates a new product adapter
func NewProductAdapter(client *postgres.Client) repositories.ProductRepository {
	return &ProductAdapter{
		client: client,
		db:     goqu.New("postgres", client.DB()),
	}
}

func productRecord(product *entities.Product) goqu.Record {
	var discount interface{}
	if product.DiscountPrice != nil {
		discount = *product.DiscountPrice
	}
	return goqu.Record{
		"name":           product.Name,
		"description":    product.Description,
		"price":          product.Price,
		"discount_price": discount,
		"image_url":      product.ImageURL,
		"category_name":  product.CategoryName,
		"updated_at":     product.UpdatedAt,
	}
}

// Create creates a new product
func (a *ProductAdapter) Create(ctx context.Context, product *entities.Product) error {
	record := productRecord(product)
	record["id"] = product.ID
	record["created_at"] = product.CreatedAt

	query, args, err := a.db.Insert("products").Rows(record).ToSQL()
	if err != nil {
		return apperrors.NewInternalError("failed to build insert query", err)
	}

	if _, err = a.client.DB().ExecContext(ctx, query, args...); err != nil {
		return apperrors.NewInternalError("failed to create product", err)
	}
	return nil
}

// GetByID retrieves a product by ID
func (a *ProductAdapter) GetByID(ctx context.Context, id string) (*entities.Product, error) {
	query, args, err := a.db.Select(productColumns...).
		From("products").
		Where(goqu.Ex{"id": id}).
		ToSQL()
	if err != nil {
		return nil, apperrors.NewInternalError("failed to build query", err)
	}

	product, err := scanProduct(a.client.DB().QueryRowContext(ctx, query, args...))
	if err != nil {
		return nil, readError(err, "product", id)
	}
	return product, nil
}

// GetByIDs returns the products that exist; missing ids are skipped
func (a *ProductAdapter) GetByIDs(ctx context.Context, ids []string) ([]*entities.Product, error) {
	if len(ids) == 0 {
		return []*entities.Product{}, nil
	}

	query, args, err := a.db.Select(productColumns...).
		From("products").
		Where(goqu.Ex{"id": ids}).
		ToSQL()
	if err != nil {
		return nil, apperrors.NewInternalError("failed to build query", err)
	}

	return a.query(ctx, query, args)
}

// List retrieves products, newest first, optionally restricted to one category name
func (a *ProductAdapter) List(ctx context.Context, filter repositories.ProductFilter) ([]*entities.Product, error) {
	ds := a.db.Select(productColumns...).From("products")

	if filter.CategoryName != "" {
		ds = ds.Where(goqu.Ex{"category_name": filter.CategoryName})
	}

	ds = ds.Order(goqu.I("created_at").Desc(), goqu.I("name").Asc())

	if filter.Limit > 0 {
		ds = ds.Limit(uint(filter.Limit))
	}
	if filter.Offset > 0 {
		ds = ds.Offset(uint(filter.Offset))
	}

	query, args, err := ds.ToSQL()
	if err != nil {
		return nil, apperrors.NewInternalError("failed to build query", err)
	}

	return a.query(ctx, query, args)
}

// Update replaces a product's fields
func (a *ProductAdapter) Update(ctx context.Context, product *entities.Product) error {
	product.UpdatedAt = time.Now()

	query, args, err := a.db.Update("products").
		Set(productRecord(product)).
		Where(goqu.Ex{"id": product.ID}).
		ToSQL()
	if err != nil {
		return apperrors.NewInternalError("failed to build update query", err)
	}

	result, err := a.client.DB().ExecContext(ctx, query, args...)
	if err != nil {
		return apperrors.NewInternalError("failed to update product", err)
	}
	return expectAffected(result, "product", product.ID)
}

// Delete deletes a product
func (a *ProductAdapter) Delete(ctx context.Context, id string) error {
	query, args, err := a.db.Delete("products").Where(goqu.Ex{"id": id}).ToSQL()
	if err != nil {
		return apperrors.NewInternalError("failed to build delete query", err)
	}

	result, err := a.client.DB().ExecContext(ctx, query, args...)
	if err != nil {
		return apperrors.NewInternalError("failed to delete product", err)
	}
	return expectAffected(result, "product", id)
}

func (a *ProductAdapter) query(ctx context.Context, query string, args []interface{}) ([]*entities.Product, error) {
	rows, err := a.client.DB().QueryContext(ctx, query, args...)
	if err != nil {
		return nil, apperrors.NewInternalError("failed to query products", err)
	}
	defer rows.Close()

	products := make([]*entities.Product, 0)
	for rows.Next() {
		product, err := scanProduct(rows)
		if err != nil {
			return nil, apperrors.NewInternalError("failed to scan product", err)
		}
		products = append(products, product)
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewInternalError("error iterating products", err)
	}
	return products, nil
}

func scanProduct(row rowScanner) (*entities.Product, error) {
	product := &entities.Product{}
	var discount sql.NullFloat64

	err := row.Scan(
		&product.ID,
		&product.Name,
		&product.Description,
		&product.Price,
		&discount,
		&product.ImageURL,
		&product.CategoryName,
		&product.CreatedAt,
		&product.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	if discount.Valid {
		d := discount.Float64
		product.DiscountPrice = &d
	}
	return product, nil
}
