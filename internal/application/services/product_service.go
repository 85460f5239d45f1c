package services

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
	"github.com/sokebat/barber-frontend-sub000/internal/domain/entities"
	"github.com/sokebat/barber-frontend-sub000/internal/domain/providers"
	"github.com/sokebat/barber-frontend-sub000/internal/domain/repositories"
	apperrors "github.com/sokebat/barber-frontend-sub000/pkg/errors"
)

// ProductService handles business logic for store products
type ProductService struct {
	repo       repositories.ProductRepository
	searchRepo repositories.ProductSearchRepository
	events     providers.EventPublisher
}

// NewProductService creates a new product service. searchRepo may be nil.
func NewProductService(repo repositories.ProductRepository, searchRepo repositories.ProductSearchRepository, events providers.EventPublisher) *ProductService {
	return &ProductService{
		repo:       repo,
		searchRepo: searchRepo,
		events:     events,
	}
}

func validateProduct(product *entities.Product) error {
	if product == nil || strings.TrimSpace(product.Name) == "" {
		return apperrors.NewValidationError("product name is required")
	}
	if product.Price < 0 {
		return apperrors.NewValidationError("price cannot be negative")
	}
	if product.DiscountPrice != nil && (*product.DiscountPrice < 0 || *product.DiscountPrice > product.Price) {
		return apperrors.NewValidationError("discount price must be between 0 and the price")
	}
	return nil
}

// Create creates a new product and indexes it
func (s *ProductService) Create(ctx context.Context, product *entities.Product) (*entities.Product, error) {
	if err := validateProduct(product); err != nil {
		return nil, err
	}

	now := time.Now()
	created := *product
	created.ID = uuid.New().String()
	created.Name = strings.TrimSpace(product.Name)
	created.CategoryName = strings.TrimSpace(product.CategoryName)
	created.CreatedAt = now
	created.UpdatedAt = now

	// 1. Save to database
	if err := s.repo.Create(ctx, &created); err != nil {
		return nil, err
	}

	// 2. Index in search engine
	s.index(ctx, &created)

	publishCatalogChange(ctx, s.events, entities.AggregateProduct, created.ID, actionCreated)
	return &created, nil
}

// GetByID retrieves a product by ID
func (s *ProductService) GetByID(ctx context.Context, id string) (*entities.Product, error) {
	return s.repo.GetByID(ctx, id)
}

// List retrieves products, optionally filtered by category name
func (s *ProductService) List(ctx context.Context, filter repositories.ProductFilter) ([]*entities.Product, error) {
	return s.repo.List(ctx, filter)
}

// Update replaces a product and updates the index
func (s *ProductService) Update(ctx context.Context, id string, product *entities.Product) (*entities.Product, error) {
	if err := validateProduct(product); err != nil {
		return nil, err
	}

	existing, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	existing.Name = strings.TrimSpace(product.Name)
	existing.Description = product.Description
	existing.Price = product.Price
	existing.DiscountPrice = product.DiscountPrice
	existing.ImageURL = product.ImageURL
	existing.CategoryName = strings.TrimSpace(product.CategoryName)
	existing.UpdatedAt = time.Now()

	if err := s.repo.Update(ctx, existing); err != nil {
		return nil, err
	}

	s.index(ctx, existing)

	publishCatalogChange(ctx, s.events, entities.AggregateProduct, id, actionUpdated)
	return existing, nil
}

// Delete deletes a product and removes it from the index
func (s *ProductService) Delete(ctx context.Context, id string) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}

	if s.searchRepo != nil {
		if err := s.searchRepo.Delete(ctx, id); err != nil {
			log.Warn().Err(err).Str("product_id", id).Msg("failed to delete product from index")
		}
	}

	publishCatalogChange(ctx, s.events, entities.AggregateProduct, id, actionDeleted)
	return nil
}

// Search searches products using the search engine if available, falling back to a database scan
func (s *ProductService) Search(ctx context.Context, params repositories.ProductSearchParams) (*repositories.ProductSearchResult, error) {
	if s.searchRepo != nil {
		result, err := s.searchRepo.Search(ctx, params)
		if err == nil {
			return result, nil
		}
		log.Warn().Err(err).Str("query", params.Query).Msg("search engine failed, falling back to database")
	}

	products, err := s.repo.List(ctx, repositories.ProductFilter{CategoryName: params.CategoryName})
	if err != nil {
		return nil, err
	}

	query := strings.ToLower(strings.TrimSpace(params.Query))
	var matched []*entities.Product
	for _, p := range products {
		if query == "" || strings.Contains(strings.ToLower(p.Name), query) ||
			strings.Contains(strings.ToLower(p.Description), query) {
			matched = append(matched, p)
		}
	}

	total := len(matched)
	if params.Offset > 0 {
		if params.Offset >= len(matched) {
			matched = nil
		} else {
			matched = matched[params.Offset:]
		}
	}
	if params.Limit > 0 && len(matched) > params.Limit {
		matched = matched[:params.Limit]
	}
	if matched == nil {
		matched = []*entities.Product{}
	}

	return &repositories.ProductSearchResult{Products: matched, TotalCount: total}, nil
}

// Reindex pushes every product into the search engine and returns how many were sent
func (s *ProductService) Reindex(ctx context.Context) (int, error) {
	if s.searchRepo == nil {
		return 0, nil
	}

	products, err := s.repo.List(ctx, repositories.ProductFilter{})
	if err != nil {
		return 0, err
	}
	if err := s.searchRepo.IndexAll(ctx, products); err != nil {
		return 0, apperrors.NewExternalError("failed to reindex products", err)
	}

	log.Info().Int("count", len(products)).Msg("reindexed products")
	return len(products), nil
}

func (s *ProductService) index(ctx context.Context, product *entities.Product) {
	if s.searchRepo == nil {
		return
	}
	if err := s.searchRepo.Index(ctx, product); err != nil {
		// Search is eventually consistent; the scheduled reindex repairs misses
		log.Warn().Err(err).Str("product_id", product.ID).Msg("failed to index product")
	}
}
