package typesense

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog/log"
	"github.com/sokebat/barber-frontend-sub000/pkg/config"
	"github.com/sokebat/barber-frontend-sub000/pkg/retry"
	"github.com/typesense/typesense-go/v2/typesense"
	"github.com/typesense/typesense-go/v2/typesense/api"
	"github.com/typesense/typesense-go/v2/typesense/api/pointer"
)

const (
	ProductsCollection = "products"
)

// Client represents a Typesense client
type Client struct {
	client *typesense.Client
}

// NewClient creates a new Typesense client with exponential backoff retry
func NewClient(ctx context.Context, cfg *config.TypesenseConfig) (*Client, error) {
	client := typesense.NewClient(
		typesense.WithServer(cfg.URL),
		typesense.WithAPIKey(cfg.APIKey),
		typesense.WithConnectionTimeout(5*time.Second),
	)

	err := retry.DoWithLog(
		ctx,
		retry.DefaultConfig(),
		"Typesense",
		func() error {
			healthCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
			defer cancel()
			_, err := client.Health(healthCtx, 2*time.Second)
			return err
		},
		func(attempt int, err error, nextDelay time.Duration) {
			log.Warn().Err(err).Int("attempt", attempt).Dur("retry_in", nextDelay).Msg("Typesense connection attempt failed")
		},
	)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to Typesense after retries: %w", err)
	}

	log.Info().Str("url", cfg.URL).Msg("connected to Typesense")
	return &Client{client: client}, nil
}

// Client returns the underlying Typesense client
func (c *Client) Client() *typesense.Client {
	return c.client
}

// Ping reports whether the Typesense node is healthy
func (c *Client) Ping(ctx context.Context) error {
	healthy, err := c.client.Health(ctx, 2*time.Second)
	if err != nil {
		return err
	}
	if !healthy {
		return fmt.Errorf("typesense reports unhealthy")
	}
	return nil
}

// ProductSchema describes the products collection
func ProductSchema() *api.CollectionSchema {
	return &api.CollectionSchema{
		Name: ProductsCollection,
		Fields: []api.Field{
			{Name: "id", Type: "string"},
			{Name: "name", Type: "string"},
			{Name: "description", Type: "string", Optional: pointer.True()},
			{Name: "category_name", Type: "string", Facet: pointer.True()},
			{Name: "price", Type: "float", Facet: pointer.True()},
			{Name: "effective_price", Type: "float"},
			{Name: "has_discount", Type: "bool", Facet: pointer.True()},
			{Name: "image_url", Type: "string", Optional: pointer.True(), Index: pointer.False()},
			{Name: "created_at", Type: "int64"},
		},
		DefaultSortingField: pointer.String("created_at"),
	}
}

// InitSchema ensures the products collection exists
func (c *Client) InitSchema(ctx context.Context) error {
	if _, err := c.client.Collection(ProductsCollection).Retrieve(ctx); err == nil {
		return nil
	}

	if _, err := c.client.Collections().Create(ctx, ProductSchema()); err != nil {
		return fmt.Errorf("failed to create collection: %w", err)
	}

	log.Info().Str("collection", ProductsCollection).Msg("created Typesense collection")
	return nil
}

// DropProducts deletes the products collection; InitSchema recreates it
func (c *Client) DropProducts(ctx context.Context) error {
	if _, err := c.client.Collection(ProductsCollection).Delete(ctx); err != nil {
		return fmt.Errorf("failed to delete collection: %w", err)
	}
	return nil
}
