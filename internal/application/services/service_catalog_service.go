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

// ServiceCatalogService manages service categories and their bookable items
type ServiceCatalogService struct {
	repo   repositories.ServiceCategoryRepository
	events providers.EventPublisher
}

// NewServiceCatalogService creates a new service catalog service
func NewServiceCatalogService(repo repositories.ServiceCategoryRepository, events providers.EventPublisher) *ServiceCatalogService {
	return &ServiceCatalogService{
		repo:   repo,
		events: events,
	}
}

func validateItem(item *entities.ServiceItem) error {
	if item == nil || strings.TrimSpace(item.Title) == "" {
		return apperrors.NewValidationError("service item title is required")
	}
	if item.Price < 0 {
		return apperrors.NewValidationError("service item price cannot be negative")
	}
	return nil
}

func prepareCategory(category *entities.ServiceCategory) error {
	if category == nil || strings.TrimSpace(category.Name) == "" {
		return apperrors.NewValidationError("service category name is required")
	}
	category.Name = strings.TrimSpace(category.Name)
	for i := range category.Items {
		item := &category.Items[i]
		if err := validateItem(item); err != nil {
			return err
		}
		item.Title = strings.TrimSpace(item.Title)
		if item.ID == "" {
			item.ID = uuid.New().String()
		}
	}
	if category.Items == nil {
		category.Items = []entities.ServiceItem{}
	}
	return nil
}

// Create creates a category together with its items
func (s *ServiceCatalogService) Create(ctx context.Context, category *entities.ServiceCategory) (*entities.ServiceCategory, error) {
	if err := prepareCategory(category); err != nil {
		return nil, err
	}

	now := time.Now()
	category.ID = uuid.New().String()
	category.CreatedAt = now
	category.UpdatedAt = now

	if err := s.repo.Create(ctx, category); err != nil {
		return nil, err
	}

	publishCatalogChange(ctx, s.events, entities.AggregateServiceCategory, category.ID, actionCreated)
	return category, nil
}

// GetByID retrieves a category with its items
func (s *ServiceCatalogService) GetByID(ctx context.Context, id string) (*entities.ServiceCategory, error) {
	return s.repo.GetByID(ctx, id)
}

// List retrieves every category with its items
func (s *ServiceCatalogService) List(ctx context.Context) ([]*entities.ServiceCategory, error) {
	return s.repo.List(ctx)
}

// ListFlat returns one UIService per item across all categories
func (s *ServiceCatalogService) ListFlat(ctx context.Context) ([]entities.UIService, error) {
	categories, err := s.repo.List(ctx)
	if err != nil {
		return nil, err
	}
	flat := entities.Flatten(categories)
	if flat == nil {
		flat = []entities.UIService{}
	}
	return flat, nil
}

// Update replaces the category fields and its whole item list
func (s *ServiceCatalogService) Update(ctx context.Context, id string, category *entities.ServiceCategory) (*entities.ServiceCategory, error) {
	if err := prepareCategory(category); err != nil {
		return nil, err
	}

	existing, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	existing.Name = category.Name
	existing.Description = category.Description
	existing.Image = category.Image
	existing.Items = category.Items
	existing.UpdatedAt = time.Now()

	if err := s.repo.Update(ctx, existing); err != nil {
		return nil, err
	}

	publishCatalogChange(ctx, s.events, entities.AggregateServiceCategory, id, actionUpdated)
	return existing, nil
}

// Delete removes a category and its items
func (s *ServiceCatalogService) Delete(ctx context.Context, id string) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}
	publishCatalogChange(ctx, s.events, entities.AggregateServiceCategory, id, actionDeleted)
	return nil
}

// AddItem appends one item to a category and returns the updated category
func (s *ServiceCatalogService) AddItem(ctx context.Context, categoryID string, item *entities.ServiceItem) (*entities.ServiceCategory, error) {
	if err := validateItem(item); err != nil {
		return nil, err
	}
	item.ID = uuid.New().String()
	item.Title = strings.TrimSpace(item.Title)

	if err := s.repo.AddItem(ctx, categoryID, item); err != nil {
		return nil, err
	}
	return s.itemChanged(ctx, categoryID)
}

// UpdateItem replaces one item of a category and returns the updated category
func (s *ServiceCatalogService) UpdateItem(ctx context.Context, categoryID, itemID string, item *entities.ServiceItem) (*entities.ServiceCategory, error) {
	if err := validateItem(item); err != nil {
		return nil, err
	}
	item.ID = itemID
	item.Title = strings.TrimSpace(item.Title)

	if err := s.repo.UpdateItem(ctx, categoryID, item); err != nil {
		return nil, err
	}
	return s.itemChanged(ctx, categoryID)
}

// DeleteItem removes one item from a category and returns the updated category
func (s *ServiceCatalogService) DeleteItem(ctx context.Context, categoryID, itemID string) (*entities.ServiceCategory, error) {
	if err := s.repo.DeleteItem(ctx, categoryID, itemID); err != nil {
		return nil, err
	}
	return s.itemChanged(ctx, categoryID)
}

func (s *ServiceCatalogService) itemChanged(ctx context.Context, categoryID string) (*entities.ServiceCategory, error) {
	publishCatalogChange(ctx, s.events, entities.AggregateServiceCategory, categoryID, actionUpdated)
	return s.repo.GetByID(ctx, categoryID)
}
