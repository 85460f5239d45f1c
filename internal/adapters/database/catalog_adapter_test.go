package database_test

import (
	"context"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/lib/pq"
	"github.com/sokebat/barber-frontend-sub000/internal/adapters/database"
	"github.com/sokebat/barber-frontend-sub000/internal/domain/entities"
	"github.com/sokebat/barber-frontend-sub000/internal/domain/repositories"
	apperrors "github.com/sokebat/barber-frontend-sub000/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var productCols = []string{
	"id", "name", "description", "price", "discount_price",
	"image_url", "category_name", "created_at", "updated_at",
}

func TestProductAdapter_GetByIDs(t *testing.T) {
	client, mock := newMockClient(t)
	created := time.Date(2026, 9, 1, 0, 0, 0, 0, time.UTC)
	rows := sqlmock.NewRows(productCols).
		AddRow("p1", "Shampoo", "", 24.99, nil, "", "Hair", created, created).
		AddRow("p2", "Conditioner", "", 40.00, 35.00, "", "Hair", created, created)
	mock.ExpectQuery(`SELECT .* FROM "products" WHERE \("id" IN \('p1', 'p2'\)\)`).WillReturnRows(rows)

	products, err := database.NewProductAdapter(client).GetByIDs(context.Background(), []string{"p1", "p2"})
	require.NoError(t, err)
	require.Len(t, products, 2)
	assert.Nil(t, products[0].DiscountPrice)
	require.NotNil(t, products[1].DiscountPrice)
	assert.Equal(t, 35.00, products[1].EffectivePrice())
}

func TestProductAdapter_GetByIDsEmpty(t *testing.T) {
	client, _ := newMockClient(t)

	products, err := database.NewProductAdapter(client).GetByIDs(context.Background(), nil)
	require.NoError(t, err)
	assert.Empty(t, products)
}

func TestProductAdapter_ListByCategory(t *testing.T) {
	client, mock := newMockClient(t)
	mock.ExpectQuery(`SELECT .* FROM "products" WHERE \("category_name" = 'Hair'\) ORDER BY "created_at" DESC, "name" ASC LIMIT 10`).
		WillReturnRows(sqlmock.NewRows(productCols))

	products, err := database.NewProductAdapter(client).List(context.Background(), repositories.ProductFilter{CategoryName: "Hair", Limit: 10})
	require.NoError(t, err)
	assert.Empty(t, products)
}

func TestProductAdapter_UpdateMissing(t *testing.T) {
	client, mock := newMockClient(t)
	mock.ExpectExec(`UPDATE "products"`).WillReturnResult(sqlmock.NewResult(0, 0))

	err := database.NewProductAdapter(client).Update(context.Background(), &entities.Product{ID: "gone", Name: "x"})
	assert.True(t, apperrors.IsType(err, apperrors.ErrorTypeNotFound))
}

func TestCategoryAdapter_CreateDuplicate(t *testing.T) {
	client, mock := newMockClient(t)
	mock.ExpectExec(`INSERT INTO "categories"`).WillReturnError(&pq.Error{Code: "23505"})

	err := database.NewCategoryAdapter(client).Create(context.Background(), &entities.Category{ID: "c1", Name: "Hair"})
	assert.True(t, apperrors.IsType(err, apperrors.ErrorTypeConflict))
}

func TestTeamAdapter_List(t *testing.T) {
	client, mock := newMockClient(t)
	created := time.Date(2026, 9, 1, 0, 0, 0, 0, time.UTC)
	mock.ExpectQuery(`SELECT .* FROM "team_members" ORDER BY "name" ASC`).WillReturnRows(
		sqlmock.NewRows([]string{"id", "name", "specialty", "description", "profile_image_url", "created_at", "updated_at"}).
			AddRow("t1", "Ava", "Color", "", "", created, created),
	)

	members, err := database.NewTeamAdapter(client).List(context.Background())
	require.NoError(t, err)
	require.Len(t, members, 1)
	assert.Equal(t, "Color", members[0].Specialty)
}

func TestServiceCategoryAdapter_List(t *testing.T) {
	client, mock := newMockClient(t)
	created := time.Date(2026, 9, 1, 0, 0, 0, 0, time.UTC)

	mock.ExpectQuery(`SELECT .* FROM "service_categories"`).WillReturnRows(
		sqlmock.NewRows([]string{"id", "name", "description", "image", "created_at", "updated_at"}).
			AddRow("c1", "Hair", "Cuts and color", "hair.png", created, created).
			AddRow("c2", "Nails", "", "", created, created),
	)
	mock.ExpectQuery(`SELECT .* FROM "service_items" WHERE \("category_id" IN \('c1', 'c2'\)\) ORDER BY "category_id" ASC, "position" ASC`).WillReturnRows(
		sqlmock.NewRows([]string{"id", "category_id", "title", "subtitle", "price", "type"}).
			AddRow("i1", "c1", "Cut", "30 min", 25.0, "basic").
			AddRow("i2", "c1", "Color", "90 min", 80.0, "premium"),
	)

	categories, err := database.NewServiceCategoryAdapter(client).List(context.Background())
	require.NoError(t, err)
	require.Len(t, categories, 2)
	assert.Len(t, categories[0].Items, 2)
	assert.NotNil(t, categories[1].Items)
	assert.Empty(t, categories[1].Items)

	flat := entities.Flatten(categories)
	require.Len(t, flat, 2)
	assert.Equal(t, "c1-i2", flat[1].ID)
}

func TestServiceCategoryAdapter_UpdateReplacesItems(t *testing.T) {
	client, mock := newMockClient(t)

	mock.ExpectBegin()
	mock.ExpectExec(`UPDATE "service_categories"`).WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec(`DELETE FROM "service_items" WHERE \("category_id" = 'c1'\)`).WillReturnResult(sqlmock.NewResult(0, 3))
	mock.ExpectExec(`INSERT INTO "service_items"`).WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	err := database.NewServiceCategoryAdapter(client).Update(context.Background(), &entities.ServiceCategory{
		ID:    "c1",
		Name:  "Hair",
		Items: []entities.ServiceItem{{ID: "i1", Title: "Cut", Price: 25}},
	})
	require.NoError(t, err)
}

func TestServiceCategoryAdapter_UpdateMissingRollsBack(t *testing.T) {
	client, mock := newMockClient(t)

	mock.ExpectBegin()
	mock.ExpectExec(`UPDATE "service_categories"`).WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectRollback()

	err := database.NewServiceCategoryAdapter(client).Update(context.Background(), &entities.ServiceCategory{ID: "c9"})
	assert.True(t, apperrors.IsType(err, apperrors.ErrorTypeNotFound))
}

func TestServiceCategoryAdapter_DeleteItem(t *testing.T) {
	client, mock := newMockClient(t)
	mock.ExpectExec(`DELETE FROM "service_items" WHERE \(\("category_id" = 'c1'\) AND \("id" = 'i1'\)\)`).
		WillReturnResult(sqlmock.NewResult(0, 1))

	require.NoError(t, database.NewServiceCategoryAdapter(client).DeleteItem(context.Background(), "c1", "i1"))
}

func TestOrderAdapter_Create(t *testing.T) {
	client, mock := newMockClient(t)

	mock.ExpectBegin()
	mock.ExpectExec(`INSERT INTO "orders"`).WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec(`INSERT INTO "order_lines"`).WillReturnResult(sqlmock.NewResult(0, 2))
	mock.ExpectCommit()

	order := &entities.Order{
		ID:     "o1",
		UserID: "u1",
		Lines: []entities.OrderLine{
			{ProductID: "p1", Name: "Shampoo", UnitPrice: 24.99, Quantity: 2, LineTotal: 49.98},
			{ProductID: "p2", Name: "Conditioner", UnitPrice: 35, Quantity: 1, LineTotal: 35},
		},
		Subtotal: 84.98,
		Tax:      8.5,
		Total:    93.48,
		Status:   entities.OrderStatusPending,
	}
	require.NoError(t, database.NewOrderAdapter(client).Create(context.Background(), order))
}

func TestOrderAdapter_CreateRollsBackOnLineFailure(t *testing.T) {
	client, mock := newMockClient(t)

	mock.ExpectBegin()
	mock.ExpectExec(`INSERT INTO "orders"`).WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec(`INSERT INTO "order_lines"`).WillReturnError(assert.AnError)
	mock.ExpectRollback()

	order := &entities.Order{ID: "o1", UserID: "u1", Lines: []entities.OrderLine{{ProductID: "p1", Quantity: 1}}}
	err := database.NewOrderAdapter(client).Create(context.Background(), order)
	assert.True(t, apperrors.IsType(err, apperrors.ErrorTypeInternal))
}

func TestCachedProductAdapter(t *testing.T) {
	client, mock := newMockClient(t)
	cache := newMemoryCache()
	repo := database.NewCachedProductAdapter(database.NewProductAdapter(client), cache)
	created := time.Date(2026, 9, 1, 0, 0, 0, 0, time.UTC)

	mock.ExpectQuery(`SELECT .* FROM "products" WHERE \("id" = 'p1'\)`).WillReturnRows(
		sqlmock.NewRows(productCols).AddRow("p1", "Shampoo", "", 24.99, nil, "", "Hair", created, created),
	)

	first, err := repo.GetByID(context.Background(), "p1")
	require.NoError(t, err)
	second, err := repo.GetByID(context.Background(), "p1")
	require.NoError(t, err)
	assert.Equal(t, first.Name, second.Name)

	// p1 is cached, so only p2 reaches the database
	mock.ExpectQuery(`SELECT .* FROM "products" WHERE \("id" IN \('p2'\)\)`).WillReturnRows(
		sqlmock.NewRows(productCols).AddRow("p2", "Conditioner", "", 35.0, nil, "", "Hair", created, created),
	)
	batch, err := repo.GetByIDs(context.Background(), []string{"p1", "p2"})
	require.NoError(t, err)
	assert.Len(t, batch, 2)

	mock.ExpectExec(`DELETE FROM "products"`).WillReturnResult(sqlmock.NewResult(0, 1))
	require.NoError(t, repo.Delete(context.Background(), "p1"))
	assert.Contains(t, cache.patterns, "catalog:products:*")

	exists, _ := cache.Exists(context.Background(), "catalog:products:id:p1")
	assert.False(t, exists)
}
