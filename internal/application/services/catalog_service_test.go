package services_test

import (
	"context"
	"errors"
	"testing"

	"github.com/sokebat/barber-frontend-sub000/internal/application/services"
	"github.com/sokebat/barber-frontend-sub000/internal/domain/entities"
	"github.com/sokebat/barber-frontend-sub000/internal/domain/providers"
	"github.com/sokebat/barber-frontend-sub000/internal/domain/repositories"
	apperrors "github.com/sokebat/barber-frontend-sub000/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func price(v float64) *float64 { return &v }

func TestProductService_Create(t *testing.T) {
	t.Run("saves, indexes and announces the product", func(t *testing.T) {
		repo := new(MockProductRepository)
		search := new(MockProductSearch)
		events := &RecordingPublisher{}
		service := services.NewProductService(repo, search, events)

		repo.On("Create", mock.Anything, mock.MatchedBy(func(p *entities.Product) bool {
			return p.ID != "" && p.Name == "Argan Oil"
		})).Return(nil)
		search.On("Index", mock.Anything, mock.Anything).Return(nil)

		product, err := service.Create(context.Background(), &entities.Product{
			Name: " Argan Oil ", Price: 24.99, DiscountPrice: price(19.99), CategoryName: "Hair",
		})

		require.NoError(t, err)
		assert.Equal(t, 19.99, product.EffectivePrice())
		assert.Equal(t, []entities.EventType{entities.EventCatalogChanged}, events.Types())
		assert.Equal(t, []string{providers.EventChannelCatalog}, events.Channels())
		repo.AssertExpectations(t)
		search.AssertExpectations(t)
	})

	t.Run("index failures do not fail the write", func(t *testing.T) {
		repo := new(MockProductRepository)
		search := new(MockProductSearch)
		service := services.NewProductService(repo, search, nil)

		repo.On("Create", mock.Anything, mock.Anything).Return(nil)
		search.On("Index", mock.Anything, mock.Anything).Return(errors.New("typesense down"))

		_, err := service.Create(context.Background(), &entities.Product{Name: "Comb", Price: 5})
		assert.NoError(t, err)
	})

	invalid := []*entities.Product{
		nil,
		{Name: "", Price: 10},
		{Name: "Comb", Price: -1},
		{Name: "Comb", Price: 10, DiscountPrice: price(12)},
	}
	for _, p := range invalid {
		service := services.NewProductService(new(MockProductRepository), nil, nil)
		_, err := service.Create(context.Background(), p)
		assert.True(t, apperrors.IsType(err, apperrors.ErrorTypeValidation), "product %+v", p)
	}
}

func TestProductService_Delete(t *testing.T) {
	repo := new(MockProductRepository)
	search := new(MockProductSearch)
	events := &RecordingPublisher{}
	service := services.NewProductService(repo, search, events)

	repo.On("Delete", mock.Anything, "p1").Return(nil)
	search.On("Delete", mock.Anything, "p1").Return(nil)

	require.NoError(t, service.Delete(context.Background(), "p1"))
	search.AssertExpectations(t)
	assert.Len(t, events.Types(), 1)
}

func TestProductService_SearchFallsBackToDatabase(t *testing.T) {
	repo := new(MockProductRepository)
	search := new(MockProductSearch)
	service := services.NewProductService(repo, search, nil)

	params := repositories.ProductSearchParams{Query: "oil", CategoryName: "Hair", Limit: 1}
	search.On("Search", mock.Anything, params).Return(nil, errors.New("unavailable"))
	repo.On("List", mock.Anything, repositories.ProductFilter{CategoryName: "Hair"}).Return([]*entities.Product{
		{ID: "p1", Name: "Argan Oil"},
		{ID: "p2", Name: "Shampoo", Description: "with coconut oil"},
		{ID: "p3", Name: "Brush"},
	}, nil)

	result, err := service.Search(context.Background(), params)

	require.NoError(t, err)
	assert.Equal(t, 2, result.TotalCount)
	require.Len(t, result.Products, 1)
	assert.Equal(t, "p1", result.Products[0].ID)
}

func TestProductService_Reindex(t *testing.T) {
	repo := new(MockProductRepository)
	search := new(MockProductSearch)
	service := services.NewProductService(repo, search, nil)

	products := []*entities.Product{{ID: "p1"}, {ID: "p2"}}
	repo.On("List", mock.Anything, repositories.ProductFilter{}).Return(products, nil)
	search.On("IndexAll", mock.Anything, products).Return(nil)

	count, err := service.Reindex(context.Background())

	require.NoError(t, err)
	assert.Equal(t, 2, count)

	noSearch := services.NewProductService(repo, nil, nil)
	count, err = noSearch.Reindex(context.Background())
	require.NoError(t, err)
	assert.Zero(t, count)
}

func TestCategoryService_CreateAndUpdate(t *testing.T) {
	repo := new(MockCategoryRepository)
	events := &RecordingPublisher{}
	service := services.NewCategoryService(repo, events)

	repo.On("Create", mock.Anything, mock.Anything).Return(nil)
	created, err := service.Create(context.Background(), &entities.Category{Name: " Hair "})
	require.NoError(t, err)
	assert.Equal(t, "Hair", created.Name)

	repo.On("GetByID", mock.Anything, created.ID).Return(created, nil)
	repo.On("Update", mock.Anything, mock.Anything).Return(nil)
	updated, err := service.Update(context.Background(), created.ID, &entities.Category{Name: "Skin"})
	require.NoError(t, err)
	assert.Equal(t, "Skin", updated.Name)

	_, err = service.Create(context.Background(), &entities.Category{Name: "  "})
	assert.True(t, apperrors.IsType(err, apperrors.ErrorTypeValidation))
	assert.Len(t, events.Types(), 2)
}

func TestTeamService_Validation(t *testing.T) {
	repo := new(MockTeamRepository)
	service := services.NewTeamService(repo, nil)

	_, err := service.Create(context.Background(), &entities.TeamMember{Name: "Anna"})
	assert.True(t, apperrors.IsType(err, apperrors.ErrorTypeValidation))

	repo.On("Create", mock.Anything, mock.Anything).Return(nil)
	member, err := service.Create(context.Background(), &entities.TeamMember{Name: "Anna", Specialty: "Colourist"})
	require.NoError(t, err)
	assert.NotEmpty(t, member.ID)
}

func TestTeamService_DeleteMissing(t *testing.T) {
	repo := new(MockTeamRepository)
	events := &RecordingPublisher{}
	service := services.NewTeamService(repo, events)
	repo.On("Delete", mock.Anything, "t9").Return(apperrors.NewNotFoundError("team member t9 not found"))

	err := service.Delete(context.Background(), "t9")

	assert.True(t, apperrors.IsType(err, apperrors.ErrorTypeNotFound))
	assert.Empty(t, events.Types())
}

func TestServiceCatalogService_CreateAssignsItemIDs(t *testing.T) {
	repo := new(MockServiceCategoryRepository)
	service := services.NewServiceCatalogService(repo, nil)

	repo.On("Create", mock.Anything, mock.MatchedBy(func(c *entities.ServiceCategory) bool {
		return len(c.Items) == 2 && c.Items[0].ID != "" && c.Items[1].ID != "" && c.Items[0].ID != c.Items[1].ID
	})).Return(nil)

	category, err := service.Create(context.Background(), &entities.ServiceCategory{
		Name: "Hair",
		Items: []entities.ServiceItem{
			{Title: "Haircut", Price: 35},
			{Title: "Colour", Price: 80},
		},
	})

	require.NoError(t, err)
	assert.NotEmpty(t, category.ID)
	repo.AssertExpectations(t)
}

func TestServiceCatalogService_RejectsInvalidItems(t *testing.T) {
	service := services.NewServiceCatalogService(new(MockServiceCategoryRepository), nil)

	_, err := service.Create(context.Background(), &entities.ServiceCategory{
		Name:  "Hair",
		Items: []entities.ServiceItem{{Title: "", Price: 10}},
	})
	assert.True(t, apperrors.IsType(err, apperrors.ErrorTypeValidation))

	_, err = service.AddItem(context.Background(), "c1", &entities.ServiceItem{Title: "Trim", Price: -5})
	assert.True(t, apperrors.IsType(err, apperrors.ErrorTypeValidation))
}

func TestServiceCatalogService_ItemLevelEdits(t *testing.T) {
	repo := new(MockServiceCategoryRepository)
	events := &RecordingPublisher{}
	service := services.NewServiceCatalogService(repo, events)

	after := &entities.ServiceCategory{ID: "c1", Name: "Hair", Items: []entities.ServiceItem{{ID: "i1", Title: "Trim", Price: 20}}}
	repo.On("UpdateItem", mock.Anything, "c1", mock.MatchedBy(func(i *entities.ServiceItem) bool {
		return i.ID == "i1" && i.Title == "Trim"
	})).Return(nil)
	repo.On("DeleteItem", mock.Anything, "c1", "i1").Return(nil)
	repo.On("GetByID", mock.Anything, "c1").Return(after, nil)

	category, err := service.UpdateItem(context.Background(), "c1", "i1", &entities.ServiceItem{Title: " Trim ", Price: 20})
	require.NoError(t, err)
	assert.Equal(t, "Trim", category.Items[0].Title)

	_, err = service.DeleteItem(context.Background(), "c1", "i1")
	require.NoError(t, err)

	assert.Len(t, events.Types(), 2)
	repo.AssertExpectations(t)
}

func TestServiceCatalogService_ListFlat(t *testing.T) {
	repo := new(MockServiceCategoryRepository)
	service := services.NewServiceCatalogService(repo, nil)
	repo.On("List", mock.Anything).Return([]*entities.ServiceCategory{
		{ID: "2", Name: "Hair", Items: []entities.ServiceItem{{ID: "1", Title: "Haircut", Price: 35}}},
		{ID: "3", Name: "Nails"},
	}, nil)

	flat, err := service.ListFlat(context.Background())

	require.NoError(t, err)
	require.Len(t, flat, 1)
	assert.Equal(t, "2-1", flat[0].ID)
}
