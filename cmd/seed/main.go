package main

import (
	"context"
	"os"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
	"github.com/sokebat/barber-frontend-sub000/internal/adapters/database"
	"github.com/sokebat/barber-frontend-sub000/internal/adapters/search"
	"github.com/sokebat/barber-frontend-sub000/internal/application/auth"
	"github.com/sokebat/barber-frontend-sub000/internal/application/services"
	"github.com/sokebat/barber-frontend-sub000/internal/domain/entities"
	"github.com/sokebat/barber-frontend-sub000/internal/domain/repositories"
	"github.com/sokebat/barber-frontend-sub000/internal/infrastructure/clients/postgres"
	"github.com/sokebat/barber-frontend-sub000/internal/infrastructure/clients/typesense"
	"github.com/sokebat/barber-frontend-sub000/internal/infrastructure/migrations"
	"github.com/sokebat/barber-frontend-sub000/internal/infrastructure/observability"
	"github.com/sokebat/barber-frontend-sub000/pkg/config"
	apperrors "github.com/sokebat/barber-frontend-sub000/pkg/errors"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load config")
	}
	observability.InitLogger("salon-seed", cfg.Env)

	ctx := context.Background()

	pgClient, err := postgres.NewClient(ctx, &cfg.Database)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to connect to database")
	}
	defer pgClient.Close()

	if err := migrations.Apply(ctx, pgClient.DB()); err != nil {
		log.Fatal().Err(err).Msg("failed to apply migrations")
	}

	var productSearch repositories.ProductSearchRepository
	if tsClient, err := typesense.NewClient(ctx, &cfg.Typesense); err == nil {
		adapter := search.NewTypesenseAdapter(tsClient)
		if err := adapter.InitSchema(ctx); err != nil {
			log.Warn().Err(err).Msg("failed to init Typesense schema")
		}
		productSearch = adapter
	} else {
		log.Warn().Err(err).Msg("Typesense unavailable; products will not be indexed")
	}

	if os.Getenv("RESET_DB") == "true" {
		log.Info().Msg("RESET_DB=true detected, truncating tables before seeding")
		_, err := pgClient.DB().ExecContext(ctx, `
			TRUNCATE TABLE
				order_lines,
				orders,
				appointments,
				service_items,
				service_categories,
				products,
				categories,
				team_members,
				users
			CASCADE
		`)
		if err != nil {
			log.Fatal().Err(err).Msg("failed to reset tables")
		}
	}

	categoryService := services.NewCategoryService(database.NewCategoryAdapter(pgClient), nil)
	productService := services.NewProductService(database.NewProductAdapter(pgClient), productSearch, nil)
	catalogService := services.NewServiceCatalogService(database.NewServiceCategoryAdapter(pgClient), nil)
	teamService := services.NewTeamService(database.NewTeamAdapter(pgClient), nil)

	// 1. Product categories
	for _, name := range []string{"Hair Care", "Skin Care", "Nail Care", "Tools"} {
		if _, err := categoryService.Create(ctx, &entities.Category{Name: name}); err != nil {
			log.Warn().Err(err).Str("category", name).Msg("failed to create category")
		}
	}

	// 2. Products
	products := []*entities.Product{
		{Name: "Argan Oil Serum", Description: "Cold-pressed argan oil for dry ends", Price: 29.99, DiscountPrice: price(24.99), CategoryName: "Hair Care"},
		{Name: "Repair Shampoo", Description: "Sulphate-free shampoo with coconut oil", Price: 18.50, CategoryName: "Hair Care"},
		{Name: "Hydrating Face Mask", Description: "Hyaluronic sheet mask, pack of five", Price: 22.00, DiscountPrice: price(19.00), CategoryName: "Skin Care"},
		{Name: "Vitamin C Cream", Description: "Brightening day cream", Price: 42.00, CategoryName: "Skin Care"},
		{Name: "Professional Nail Kit", Description: "Files, buffer and cuticle pusher", Price: 35.00, CategoryName: "Nail Care"},
		{Name: "Wide Tooth Comb", Description: "Detangling comb for curly hair", Price: 4.50, CategoryName: "Tools"},
	}
	for _, p := range products {
		if _, err := productService.Create(ctx, p); err != nil {
			log.Warn().Err(err).Str("product", p.Name).Msg("failed to create product")
		}
	}

	// 3. Services
	catalog := []*entities.ServiceCategory{
		{
			Name:        "Hair",
			Description: "Cuts, colour and styling",
			Items: []entities.ServiceItem{
				{Title: "Haircut", Subtitle: "Wash, cut and blow-dry", Price: 35, Type: "hair"},
				{Title: "Full Colour", Subtitle: "Single process colour", Price: 80, Type: "hair"},
				{Title: "Balayage", Subtitle: "Hand-painted highlights", Price: 140, Type: "hair"},
			},
		},
		{
			Name:        "Nails",
			Description: "Manicures and pedicures",
			Items: []entities.ServiceItem{
				{Title: "Gel Manicure", Subtitle: "Long-lasting gel polish", Price: 40, Type: "nails"},
				{Title: "Spa Pedicure", Subtitle: "Soak, scrub and polish", Price: 50, Type: "nails"},
			},
		},
		{
			Name:        "Skin",
			Description: "Facials and treatments",
			Items: []entities.ServiceItem{
				{Title: "Signature Facial", Subtitle: "60 minutes", Price: 75, Type: "skin"},
			},
		},
	}
	for _, c := range catalog {
		if _, err := catalogService.Create(ctx, c); err != nil {
			log.Warn().Err(err).Str("service_category", c.Name).Msg("failed to create service category")
		}
	}

	// 4. Team
	team := []*entities.TeamMember{
		{Name: "Anna Reyes", Specialty: "Colourist", Description: "Ten years of balayage and creative colour"},
		{Name: "Marcus Lee", Specialty: "Barber", Description: "Classic cuts and beard trims"},
		{Name: "Priya Shah", Specialty: "Nail Technician", Description: "Gel, acrylic and nail art"},
		{Name: "Sofia Rossi", Specialty: "Esthetician", Description: "Facials and skin consultations"},
	}
	for _, m := range team {
		if _, err := teamService.Create(ctx, m); err != nil {
			log.Warn().Err(err).Str("member", m.Name).Msg("failed to create team member")
		}
	}

	// 5. Admin user
	if err := seedAdmin(ctx, database.NewUserAdapter(pgClient)); err != nil {
		log.Fatal().Err(err).Msg("failed to create admin user")
	}

	log.Info().
		Int("products", len(products)).
		Int("service_categories", len(catalog)).
		Int("team", len(team)).
		Msg("seeding complete")
}

func seedAdmin(ctx context.Context, users repositories.UserRepository) error {
	email := getEnv("SEED_ADMIN_EMAIL", "admin@salon.local")
	password := getEnv("SEED_ADMIN_PASSWORD", "admin12345")

	hash, err := auth.HashPassword(password)
	if err != nil {
		return err
	}

	now := time.Now()
	err = users.Create(ctx, &entities.User{
		ID:           uuid.New().String(),
		FullName:     "Salon Admin",
		Email:        email,
		Role:         entities.RoleAdmin,
		PasswordHash: hash,
		CreatedAt:    now,
		UpdatedAt:    now,
	})
	if apperrors.IsType(err, apperrors.ErrorTypeConflict) {
		log.Info().Str("email", email).Msg("admin user already exists")
		return nil
	}
	if err != nil {
		return err
	}
	log.Info().Str("email", email).Msg("created admin user")
	return nil
}

func price(v float64) *float64 {
	return &v
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
