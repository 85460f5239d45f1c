package search

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/rs/zerolog/log"
	"github.com/sokebat/barber-frontend-sub000/internal/domain/entities"
	"github.com/sokebat/barber-frontend-sub000/internal/domain/repositories"
	tsclient "github.com/sokebat/barber-frontend-sub000/internal/infrastructure/clients/typesense"
	"github.com/typesense/typesense-go/v2/typesense/api"
	"github.com/typesense/typesense-go/v2/typesense/api/pointer"
)

const (
	defaultPerPage = 20
	maxPerPage     = 100
)

// TypesenseAdapter implements product search using Typesense
type TypesenseAdapter struct {
	client *tsclient.Client
}

// Ensure TypesenseAdapter implements ProductSearchRepository
var _ repositories.ProductSearchRepository = (*TypesenseAdapter)(nil)

// NewTypesenseAdapter creates a new Typesense adapter
func NewTypesenseAdapter(client *tsclient.Client) *TypesenseAdapter {
	return &TypesenseAdapter{client: client}
}

// InitSchema ensures the collection exists
func (a *TypesenseAdapter) InitSchema(ctx context.Context) error {
	return a.client.InitSchema(ctx)
}

// Index upserts a product document
func (a *TypesenseAdapter) Index(ctx context.Context, product *entities.Product) error {
	_, err := a.client.Client().Collection(tsclient.ProductsCollection).Documents().Upsert(ctx, productDocument(product))
	if err != nil {
		return fmt.Errorf("failed to index product: %w", err)
	}
	return nil
}

// IndexAll upserts every product, continuing past individual failures
func (a *TypesenseAdapter) IndexAll(ctx context.Context, products []*entities.Product) error {
	failed := 0
	var lastErr error
	for _, product := range products {
		if err := ctx.Err(); err != nil {
			return err
		}
		if err := a.Index(ctx, product); err != nil {
			failed++
			lastErr = err
			log.Warn().Err(err).Str("product_id", product.ID).Msg("failed to index product")
		}
	}

	if failed > 0 {
		return fmt.Errorf("%d of %d products failed to index: %w", failed, len(products), lastErr)
	}
	return nil
}

// Delete removes a product from the index
func (a *TypesenseAdapter) Delete(ctx context.Context, id string) error {
	_, err := a.client.Client().Collection(tsclient.ProductsCollection).Document(id).Delete(ctx)
	if err != nil {
		return fmt.Errorf("failed to delete product from index: %w", err)
	}
	return nil
}

// Search runs a full-text product query with an optional category filter
func (a *TypesenseAdapter) Search(ctx context.Context, params repositories.ProductSearchParams) (*repositories.ProductSearchResult, error) {
	result, err := a.client.Client().Collection(tsclient.ProductsCollection).Documents().Search(ctx, buildSearchParams(params))
	if err != nil {
		return nil, fmt.Errorf("failed to search products: %w", err)
	}

	out := &repositories.ProductSearchResult{Products: []*entities.Product{}}
	if result.Found != nil {
		out.TotalCount = *result.Found
	}
	if result.Hits == nil {
		return out, nil
	}

	for _, hit := range *result.Hits {
		if hit.Document == nil {
			continue
		}
		out.Products = append(out.Products, productFromDocument(*hit.Document))
	}
	return out, nil
}

func buildSearchParams(params repositories.ProductSearchParams) *api.SearchCollectionParams {
	q := strings.TrimSpace(params.Query)
	if q == "" {
		q = "*"
	}

	perPage := params.Limit
	if perPage <= 0 {
		perPage = defaultPerPage
	}
	if perPage > maxPerPage {
		perPage = maxPerPage
	}

	offset := params.Offset
	if offset < 0 {
		offset = 0
	}

	searchParams := &api.SearchCollectionParams{
		Q:       pointer.String(q),
		QueryBy: pointer.String("name,description,category_name"),
		Page:    pointer.Int(offset/perPage + 1),
		PerPage: pointer.Int(perPage),
	}

	if category := strings.TrimSpace(params.CategoryName); category != "" {
		searchParams.FilterBy = pointer.String(fmt.Sprintf("category_name:=`%s`", strings.ReplaceAll(category, "`", "")))
	}

	return searchParams
}

func productDocument(product *entities.Product) map[string]interface{} {
	doc := map[string]interface{}{
		"id":              product.ID,
		"name":            product.Name,
		"description":     product.Description,
		"category_name":   product.CategoryName,
		"price":           product.Price,
		"effective_price": product.EffectivePrice(),
		"has_discount":    product.DiscountPrice != nil,
		"image_url":       product.ImageURL,
		"created_at":      product.CreatedAt.Unix(),
	}
	return doc
}

// productFromDocument rebuilds a product from a hit; missing fields stay zero
func productFromDocument(doc map[string]interface{}) *entities.Product {
	product := &entities.Product{
		ID:           stringField(doc, "id"),
		Name:         stringField(doc, "name"),
		Description:  stringField(doc, "description"),
		CategoryName: stringField(doc, "category_name"),
		ImageURL:     stringField(doc, "image_url"),
		Price:        floatField(doc, "price"),
	}

	if hasDiscount, _ := doc["has_discount"].(bool); hasDiscount {
		discount := floatField(doc, "effective_price")
		product.DiscountPrice = &discount
	}

	if created := floatField(doc, "created_at"); created > 0 {
		product.CreatedAt = time.Unix(int64(created), 0).UTC()
	}
	return product
}

func stringField(doc map[string]interface{}, key string) string {
	s, _ := doc[key].(string)
	return s
}

func floatField(doc map[string]interface{}, key string) float64 {
	switch v := doc[key].(type) {
	case float64:
		return v
	case float32:
		return float64(v)
	case int:
		return float64(v)
	case int64:
		return float64(v)
	}
	return 0
}
