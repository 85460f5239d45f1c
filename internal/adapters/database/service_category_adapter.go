package database

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/doug-martin/goqu/v9"
	"github.com/sokebat/barber-frontend-sub000/internal/domain/entities"
	"github.com/sokebat/barber-frontend-sub000/internal/domain/repositories"
	"github.com/sokebat/barber-frontend-sub000/internal/infrastructure/clients/postgres"
	apperrors "github.com/sokebat/barber-frontend-sub000/pkg/errors"
)

var serviceCategoryColumns = []interface{}{
	"id", "name", "description", "image", "created_at", "updated_at",
}

var serviceItemColumns = []interface{}{
	"id", "category_id", "title", "subtitle", "price", "type",
}

// ServiceCategoryAdapter stores service categories and their ordered items
type ServiceCategoryAdapter struct {
	client *postgres.Client
	db     *goqu.Database
}

// NewServiceCategoryAdapter creates a new service category adapter
func NewServiceCategoryAdapter(client *postgres.Client) repositories.ServiceCategoryRepository {
	return &ServiceCategoryAdapter{
		client: client,
		db:     goqu.New("postgres", client.DB()),
	}
}

// Create inserts a category and its items in one transaction
func (a *ServiceCategoryAdapter) Create(ctx context.Context, category *entities.ServiceCategory) error {
	query, args, err := a.db.Insert("service_categories").Rows(goqu.Record{
		"id":          category.ID,
		"name":        category.Name,
		"description": category.Description,
		"image":       category.Image,
		"created_at":  category.CreatedAt,
		"updated_at":  category.UpdatedAt,
	}).ToSQL()
	if err != nil {
		return apperrors.NewInternalError("failed to build insert query", err)
	}

	return a.inTx(ctx, func(tx *sql.Tx) error {
		if _, err := tx.ExecContext(ctx, query, args...); err != nil {
			return apperrors.NewInternalError("failed to create service category", err)
		}
		return a.insertItems(ctx, tx, category.ID, category.Items)
	})
}

// GetByID retrieves a category with its items
func (a *ServiceCategoryAdapter) GetByID(ctx context.Context, id string) (*entities.ServiceCategory, error) {
	query, args, err := a.db.Select(serviceCategoryColumns...).
		From("service_categories").
		Where(goqu.Ex{"id": id}).
		ToSQL()
	if err != nil {
		return nil, apperrors.NewInternalError("failed to build query", err)
	}

	category, err := scanServiceCategory(a.client.DB().QueryRowContext(ctx, query, args...))
	if err != nil {
		return nil, readError(err, "service category", id)
	}

	items, err := a.itemsFor(ctx, []string{id})
	if err != nil {
		return nil, err
	}
	category.Items = items[id]
	if category.Items == nil {
		category.Items = []entities.ServiceItem{}
	}
	return category, nil
}

// List retrieves every category with its items using two queries
func (a *ServiceCategoryAdapter) List(ctx context.Context) ([]*entities.ServiceCategory, error) {
	query, args, err := a.db.Select(serviceCategoryColumns...).
		From("service_categories").
		Order(goqu.I("created_at").Asc(), goqu.I("name").Asc()).
		ToSQL()
	if err != nil {
		return nil, apperrors.NewInternalError("failed to build query", err)
	}

	rows, err := a.client.DB().QueryContext(ctx, query, args...)
	if err != nil {
		return nil, apperrors.NewInternalError("failed to list service categories", err)
	}
	defer rows.Close()

	categories := make([]*entities.ServiceCategory, 0)
	ids := make([]string, 0)
	for rows.Next() {
		category, err := scanServiceCategory(rows)
		if err != nil {
			return nil, apperrors.NewInternalError("failed to scan service category", err)
		}
		categories = append(categories, category)
		ids = append(ids, category.ID)
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewInternalError("error iterating service categories", err)
	}

	if len(ids) == 0 {
		return categories, nil
	}

	items, err := a.itemsFor(ctx, ids)
	if err != nil {
		return nil, err
	}
	for _, category := range categories {
		category.Items = items[category.ID]
		if category.Items == nil {
			category.Items = []entities.ServiceItem{}
		}
	}
	return categories, nil
}

// Update replaces the category fields and its whole item list
func (a *ServiceCategoryAdapter) Update(ctx context.Context, category *entities.ServiceCategory) error {
	category.UpdatedAt = time.Now()

	updateQuery, updateArgs, err := a.db.Update("service_categories").
		Set(goqu.Record{
			"name":        category.Name,
			"description": category.Description,
			"image":       category.Image,
			"updated_at":  category.UpdatedAt,
		}).
		Where(goqu.Ex{"id": category.ID}).
		ToSQL()
	if err != nil {
		return apperrors.NewInternalError("failed to build update query", err)
	}

	deleteQuery, deleteArgs, err := a.db.Delete("service_items").
		Where(goqu.Ex{"category_id": category.ID}).
		ToSQL()
	if err != nil {
		return apperrors.NewInternalError("failed to build delete query", err)
	}

	return a.inTx(ctx, func(tx *sql.Tx) error {
		result, err := tx.ExecContext(ctx, updateQuery, updateArgs...)
		if err != nil {
			return apperrors.NewInternalError("failed to update service category", err)
		}
		if err := expectAffected(result, "service category", category.ID); err != nil {
			return err
		}
		if _, err := tx.ExecContext(ctx, deleteQuery, deleteArgs...); err != nil {
			return apperrors.NewInternalError("failed to clear service items", err)
		}
		return a.insertItems(ctx, tx, category.ID, category.Items)
	})
}

// Delete removes a category; items cascade
func (a *ServiceCategoryAdapter) Delete(ctx context.Context, id string) error {
	query, args, err := a.db.Delete("service_categories").Where(goqu.Ex{"id": id}).ToSQL()
	if err != nil {
		return apperrors.NewInternalError("failed to build delete query", err)
	}

	result, err := a.client.DB().ExecContext(ctx, query, args...)
	if err != nil {
		return apperrors.NewInternalError("failed to delete service category", err)
	}
	return expectAffected(result, "service category", id)
}

// AddItem appends an item after the category's current last item
func (a *ServiceCategoryAdapter) AddItem(ctx context.Context, categoryID string, item *entities.ServiceItem) error {
	if _, err := a.GetByID(ctx, categoryID); err != nil {
		return err
	}

	next := a.db.From("service_items").
		Select(goqu.L("COALESCE(MAX(position) + 1, 0)")).
		Where(goqu.Ex{"category_id": categoryID})

	query, args, err := a.db.Insert("service_items").Rows(goqu.Record{
		"id":          item.ID,
		"category_id": categoryID,
		"position":    next,
		"title":       item.Title,
		"subtitle":    item.Subtitle,
		"price":       item.Price,
		"type":        item.Type,
	}).ToSQL()
	if err != nil {
		return apperrors.NewInternalError("failed to build insert query", err)
	}

	if _, err := a.client.DB().ExecContext(ctx, query, args...); err != nil {
		return apperrors.NewInternalError("failed to add service item", err)
	}
	return nil
}

// UpdateItem replaces one item of a category
func (a *ServiceCategoryAdapter) UpdateItem(ctx context.Context, categoryID string, item *entities.ServiceItem) error {
	query, args, err := a.db.Update("service_items").
		Set(goqu.Record{
			"title":    item.Title,
			"subtitle": item.Subtitle,
			"price":    item.Price,
			"type":     item.Type,
		}).
		Where(goqu.Ex{"id": item.ID, "category_id": categoryID}).
		ToSQL()
	if err != nil {
		return apperrors.NewInternalError("failed to build update query", err)
	}

	result, err := a.client.DB().ExecContext(ctx, query, args...)
	if err != nil {
		return apperrors.NewInternalError("failed to update service item", err)
	}
	return expectAffected(result, "service item", item.ID)
}

// DeleteItem removes one item of a category
func (a *ServiceCategoryAdapter) DeleteItem(ctx context.Context, categoryID, itemID string) error {
	query, args, err := a.db.Delete("service_items").
		Where(goqu.Ex{"id": itemID, "category_id": categoryID}).
		ToSQL()
	if err != nil {
		return apperrors.NewInternalError("failed to build delete query", err)
	}

	result, err := a.client.DB().ExecContext(ctx, query, args...)
	if err != nil {
		return apperrors.NewInternalError("failed to delete service item", err)
	}
	return expectAffected(result, "service item", itemID)
}

func (a *ServiceCategoryAdapter) insertItems(ctx context.Context, tx *sql.Tx, categoryID string, items []entities.ServiceItem) error {
	if len(items) == 0 {
		return nil
	}

	rows := make([]interface{}, 0, len(items))
	for i, item := range items {
		rows = append(rows, goqu.Record{
			"id":          item.ID,
			"category_id": categoryID,
			"position":    i,
			"title":       item.Title,
			"subtitle":    item.Subtitle,
			"price":       item.Price,
			"type":        item.Type,
		})
	}

	query, args, err := a.db.Insert("service_items").Rows(rows...).ToSQL()
	if err != nil {
		return apperrors.NewInternalError("failed to build insert query", err)
	}
	if _, err := tx.ExecContext(ctx, query, args...); err != nil {
		return apperrors.NewInternalError("failed to insert service items", err)
	}
	return nil
}

func (a *ServiceCategoryAdapter) itemsFor(ctx context.Context, categoryIDs []string) (map[string][]entities.ServiceItem, error) {
	query, args, err := a.db.Select(serviceItemColumns...).
		From("service_items").
		Where(goqu.Ex{"category_id": categoryIDs}).
		Order(goqu.I("category_id").Asc(), goqu.I("position").Asc()).
		ToSQL()
	if err != nil {
		return nil, apperrors.NewInternalError("failed to build query", err)
	}

	rows, err := a.client.DB().QueryContext(ctx, query, args...)
	if err != nil {
		return nil, apperrors.NewInternalError("failed to load service items", err)
	}
	defer rows.Close()

	result := make(map[string][]entities.ServiceItem, len(categoryIDs))
	for rows.Next() {
		var item entities.ServiceItem
		var categoryID string
		if err := rows.Scan(&item.ID, &categoryID, &item.Title, &item.Subtitle, &item.Price, &item.Type); err != nil {
			return nil, apperrors.NewInternalError("failed to scan service item", err)
		}
		result[categoryID] = append(result[categoryID], item)
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewInternalError("error iterating service items", err)
	}
	return result, nil
}

func (a *ServiceCategoryAdapter) inTx(ctx context.Context, fn func(tx *sql.Tx) error) error {
	tx, err := a.client.BeginTx(ctx)
	if err != nil {
		return apperrors.NewInternalError("failed to begin transaction", err)
	}

	if err := fn(tx); err != nil {
		if rbErr := tx.Rollback(); rbErr != nil {
			return fmt.Errorf("%w (rollback failed: %v)", err, rbErr)
		}
		return err
	}

	if err := tx.Commit(); err != nil {
		return apperrors.NewInternalError("failed to commit transaction", err)
	}
	return nil
}

func scanServiceCategory(row rowScanner) (*entities.ServiceCategory, error) {
	category := &entities.ServiceCategory{}
	err := row.Scan(
		&category.ID,
		&category.Name,
		&category.Description,
		&category.Image,
		&category.CreatedAt,
		&category.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return category, nil
}
