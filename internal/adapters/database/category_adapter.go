package database

import (
	"context"
	"fmt"
	"time"

	"github.com/doug-martin/goqu/v9"
	"github.com/sokebat/barber-frontend-sub000/internal/domain/entities"
	"github.com/sokebat/barber-frontend-sub000/internal/domain/repositories"
	"github.com/sokebat/barber-frontend-sub000/internal/infrastructure/clients/postgres"
	apperrors "github.com/sokebat/barber-frontend-sub000/pkg/errors"
)

// CategoryAdapter implements the CategoryRepository interface
type CategoryAdapter struct {
	client *postgres.Client
	db     *goqu.Database
}

// NewCategoryAdapter creates a new category adapter
func NewCategoryAdapter(client *postgres.Client) repositories.CategoryRepository {
	return &CategoryAdapter{
		client: client,
		db:     goqu.New("postgres", client.DB()),
	}
}

func (a *CategoryAdapter) Create(ctx context.Context, category *entities.Category) error {
	query, args, err := a.db.Insert("categories").Rows(goqu.Record{
		"id":         category.ID,
		"name":       category.Name,
		"created_at": category.CreatedAt,
		"updated_at": category.UpdatedAt,
	}).ToSQL()
	if err != nil {
		return apperrors.NewInternalError("failed to build insert query", err)
	}

	if _, err = a.client.DB().ExecContext(ctx, query, args...); err != nil {
		return writeError(err, "failed to create category", fmt.Sprintf("category %q already exists", category.Name))
	}
	return nil
}

func (a *CategoryAdapter) GetByID(ctx context.Context, id string) (*entities.Category, error) {
	query, args, err := a.db.Select("id", "name", "created_at", "updated_at").
		From("categories").
		Where(goqu.Ex{"id": id}).
		ToSQL()
	if err != nil {
		return nil, apperrors.NewInternalError("failed to build query", err)
	}

	category := &entities.Category{}
	err = a.client.DB().QueryRowContext(ctx, query, args...).
		Scan(&category.ID, &category.Name, &category.CreatedAt, &category.UpdatedAt)
	if err != nil {
		return nil, readError(err, "category", id)
	}
	return category, nil
}

func (a *CategoryAdapter) List(ctx context.Context) ([]*entities.Category, error) {
	query, args, err := a.db.Select("id", "name", "created_at", "updated_at").
		From("categories").
		Order(goqu.I("name").Asc()).
		ToSQL()
	if err != nil {
		return nil, apperrors.NewInternalError("failed to build query", err)
	}

	rows, err := a.client.DB().QueryContext(ctx, query, args...)
	if err != nil {
		return nil, apperrors.NewInternalError("failed to list categories", err)
	}
	defer rows.Close()

	categories := make([]*entities.Category, 0)
	for rows.Next() {
		category := &entities.Category{}
		if err := rows.Scan(&category.ID, &category.Name, &category.CreatedAt, &category.UpdatedAt); err != nil {
			return nil, apperrors.NewInternalError("failed to scan category", err)
		}
		categories = append(categories, category)
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewInternalError("error iterating categories", err)
	}
	return categories, nil
}

func (a *CategoryAdapter) Update(ctx context.Context, category *entities.Category) error {
	category.UpdatedAt = time.Now()

	query, args, err := a.db.Update("categories").
		Set(goqu.Record{"name": category.Name, "updated_at": category.UpdatedAt}).
		Where(goqu.Ex{"id": category.ID}).
		ToSQL()
	if err != nil {
		return apperrors.NewInternalError("failed to build update query", err)
	}

	result, err := a.client.DB().ExecContext(ctx, query, args...)
	if err != nil {
		return writeError(err, "failed to update category", fmt.Sprintf("category %q already exists", category.Name))
	}
	return expectAffected(result, "category", category.ID)
}

func (a *CategoryAdapter) Delete(ctx context.Context, id string) error {
	query, args, err := a.db.Delete("categories").Where(goqu.Ex{"id": id}).ToSQL()
	if err != nil {
		return apperrors.NewInternalError("failed to build delete query", err)
	}

	result, err := a.client.DB().ExecContext(ctx, query, args...)
	if err != nil {
		return apperrors.NewInternalError("failed to delete category", err)
	}
	return expectAffected(result, "category", id)
}
