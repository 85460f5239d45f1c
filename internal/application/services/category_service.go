package services

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/sokebat/barber-frontend-sub000/internal/domain/entities"
	"github.com/sokebat/barber-frontend-sub000/internal/domain/providers"
	"github.com/sokebat/barber-frontend-sub000/internal/domain/repositories"
	apperrors "github.com/sokebat/barber-frontend-sub000/pkg/errors"
)

// CategoryService handles business logic for product categories
type CategoryService struct {
	repo   repositories.CategoryRepository
	events providers.EventPublisher
}

// NewCategoryService creates a new category service
func NewCategoryService(repo repositories.CategoryRepository, events providers.EventPublisher) *CategoryService {
	return &CategoryService{
		repo:   repo,
		events: events,
	}
}

// Create creates a new category
func (s *CategoryService) Create(ctx context.Context, category *entities.Category) (*entities.Category, error) {
	if category == nil || strings.TrimSpace(category.Name) == "" {
		return nil, apperrors.NewValidationError("category name is required")
	}

	now := time.Now()
	created := &entities.Category{
		ID:        uuid.New().String(),
		Name:      strings.TrimSpace(category.Name),
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := s.repo.Create(ctx, created); err != nil {
		return nil, err
	}

	publishCatalogChange(ctx, s.events, entities.AggregateCategory, created.ID, actionCreated)
	return created, nil
}

// GetByID retrieves a category by ID
func (s *CategoryService) GetByID(ctx context.Context, id string) (*entities.Category, error) {
	return s.repo.GetByID(ctx, id)
}

// List retrieves all categories
func (s *CategoryService) List(ctx context.Context) ([]*entities.Category, error) {
	return s.repo.List(ctx)
}

// Update renames a category
func (s *CategoryService) Update(ctx context.Context, id string, category *entities.Category) (*entities.Category, error) {
	if category == nil || strings.TrimSpace(category.Name) == "" {
		return nil, apperrors.NewValidationError("category name is required")
	}

	existing, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	existing.Name = strings.TrimSpace(category.Name)
	existing.UpdatedAt = time.Now()

	if err := s.repo.Update(ctx, existing); err != nil {
		return nil, err
	}

	publishCatalogChange(ctx, s.events, entities.AggregateCategory, id, actionUpdated)
	return existing, nil
}

// Delete deletes a category
func (s *CategoryService) Delete(ctx context.Context, id string) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}
	publishCatalogChange(ctx, s.events, entities.AggregateCategory, id, actionDeleted)
	return nil
}
