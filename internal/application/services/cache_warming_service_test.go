package services_test

import (
	"context"
	"errors"
	"testing"

	"github.com/sokebat/barber-frontend-sub000/internal/application/services"
	"github.com/sokebat/barber-frontend-sub000/internal/domain/entities"
	"github.com/sokebat/barber-frontend-sub000/internal/domain/repositories"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestCacheWarmingService_WarmCache(t *testing.T) {
	products := new(MockProductRepository)
	categories := new(MockCategoryRepository)
	catalog := new(MockServiceCategoryRepository)
	team := new(MockTeamRepository)
	service := services.NewCacheWarmingService(products, categories, catalog, team, NewMockCacheProvider())

	listed := []*entities.Product{{ID: "p1"}, {ID: "p2"}}
	products.On("List", mock.Anything, repositories.ProductFilter{}).Return(listed, nil)
	products.On("GetByIDs", mock.Anything, []string{"p1", "p2"}).Return(listed, nil)
	categories.On("List", mock.Anything).Return([]*entities.Category{}, nil)
	catalog.On("List", mock.Anything).Return([]*entities.ServiceCategory{}, nil)
	team.On("List", mock.Anything).Return([]*entities.TeamMember{}, nil)

	require.NoError(t, service.WarmCache(context.Background()))

	products.AssertExpectations(t)
	categories.AssertExpectations(t)
	catalog.AssertExpectations(t)
	team.AssertExpectations(t)
}

func TestCacheWarmingService_ContinuesAfterFailure(t *testing.T) {
	products := new(MockProductRepository)
	categories := new(MockCategoryRepository)
	catalog := new(MockServiceCategoryRepository)
	team := new(MockTeamRepository)
	service := services.NewCacheWarmingService(products, categories, catalog, team, NewMockCacheProvider())

	products.On("List", mock.Anything, repositories.ProductFilter{}).Return(nil, errors.New("db down"))
	categories.On("List", mock.Anything).Return([]*entities.Category{}, nil)
	catalog.On("List", mock.Anything).Return([]*entities.ServiceCategory{}, nil)
	team.On("List", mock.Anything).Return([]*entities.TeamMember{}, nil)

	err := service.WarmCache(context.Background())

	require.Error(t, err)
	assert.Contains(t, err.Error(), "db down")
	team.AssertExpectations(t)
}

func TestCacheWarmingService_GetCacheStats(t *testing.T) {
	cache := NewMockCacheProvider()
	service := services.NewCacheWarmingService(nil, nil, nil, nil, cache)
	seed(t, cache, "catalog:team:list", "catalog:categories:list")

	stats, err := service.GetCacheStats(context.Background())

	require.NoError(t, err)
	assert.Equal(t, 2, stats["cached_count"])
	assert.Equal(t, 4, stats["sample_size"])
}
