package main

import (
	"context"
	"flag"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/rs/zerolog/log"
	"github.com/sokebat/barber-frontend-sub000/internal/adapters/database"
	"github.com/sokebat/barber-frontend-sub000/internal/adapters/search"
	"github.com/sokebat/barber-frontend-sub000/internal/application/services"
	"github.com/sokebat/barber-frontend-sub000/internal/infrastructure/clients/postgres"
	"github.com/sokebat/barber-frontend-sub000/internal/infrastructure/clients/typesense"
	"github.com/sokebat/barber-frontend-sub000/internal/infrastructure/observability"
	"github.com/sokebat/barber-frontend-sub000/pkg/config"
)

func main() {
	var reset bool
	var intervalFlag string
	flag.BoolVar(&reset, "reset", false, "delete the products collection before reindexing")
	flag.StringVar(&intervalFlag, "interval", "", "repeat interval for reindexing (e.g. 6h, 30m)")
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load configuration")
	}
	observability.InitLogger("salon-indexer", cfg.Env)

	intervalValue := strings.TrimSpace(intervalFlag)
	if intervalValue == "" {
		intervalValue = strings.TrimSpace(os.Getenv("REINDEX_INTERVAL"))
	}

	var interval time.Duration
	if intervalValue != "" {
		interval, err = time.ParseDuration(intervalValue)
		if err != nil {
			log.Fatal().Err(err).Str("interval", intervalValue).Msg("invalid interval")
		}
		if interval <= 0 {
			log.Fatal().Msg("interval must be greater than zero")
		}
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	pgClient, err := postgres.NewClient(ctx, &cfg.Database)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to initialize PostgreSQL client")
	}
	defer pgClient.Close()

	tsClient, err := typesense.NewClient(ctx, &cfg.Typesense)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to initialize Typesense client")
	}

	products := services.NewProductService(database.NewProductAdapter(pgClient), search.NewTypesenseAdapter(tsClient), nil)

	if reset || os.Getenv("RESET_TYPESENSE") == "true" {
		log.Info().Str("collection", typesense.ProductsCollection).Msg("deleting collection before reindex")
		if err := tsClient.DropProducts(ctx); err != nil {
			log.Warn().Err(err).Msg("failed to delete collection")
		}
	}

	for {
		if err := indexOnce(ctx, tsClient, products); err != nil {
			log.Error().Err(err).Msg("reindex failed")
		}

		if interval <= 0 {
			return
		}
		log.Info().Dur("next_run_in", interval).Msg("reindex complete")

		select {
		case <-ctx.Done():
			log.Info().Msg("reindexer shutting down")
			return
		case <-time.After(interval):
		}
	}
}

func indexOnce(ctx context.Context, tsClient *typesense.Client, products *services.ProductService) error {
	if err := tsClient.InitSchema(ctx); err != nil {
		return err
	}

	start := time.Now()
	count, err := products.Reindex(ctx)
	if err != nil {
		return err
	}
	log.Info().Int("products", count).Dur("duration", time.Since(start)).Msg("indexed products")
	return nil
}
