package client

import (
	"context"
	"net/http"
	"net/url"
	"strconv"
)

// ProductService covers /Product
type ProductService struct {
	c *Client
}

// List returns products, optionally narrowed to one category name
func (s *ProductService) List(ctx context.Context, category string) Response[[]Product] {
	query := url.Values{}
	if category != "" {
		query.Set("category", category)
	}
	return do[[]Product](ctx, s.c, call{method: http.MethodGet, path: "/Product", query: query})
}

// Search runs a full-text product search
func (s *ProductService) Search(ctx context.Context, q, category string, limit int) Response[ProductSearchResult] {
	query := url.Values{"q": {q}}
	if category != "" {
		query.Set("category", category)
	}
	if limit > 0 {
		query.Set("limit", strconv.Itoa(limit))
	}
	return do[ProductSearchResult](ctx, s.c, call{method: http.MethodGet, path: "/Product/search", query: query})
}

func (s *ProductService) Get(ctx context.Context, id string) Response[Product] {
	return do[Product](ctx, s.c, call{method: http.MethodGet, path: "/Product/" + url.PathEscape(id)})
}

func (s *ProductService) Create(ctx context.Context, p Product) Response[Product] {
	return do[Product](ctx, s.c, call{method: http.MethodPost, path: "/Product", body: p, private: true})
}

func (s *ProductService) Update(ctx context.Context, id string, p Product) Response[Product] {
	return do[Product](ctx, s.c, call{method: http.MethodPut, path: "/Product/" + url.PathEscape(id), body: p, private: true})
}

func (s *ProductService) Delete(ctx context.Context, id string) Response[struct{}] {
	return do[struct{}](ctx, s.c, call{method: http.MethodDelete, path: "/Product/" + url.PathEscape(id), private: true})
}

// CategoryService covers /Category
type CategoryService struct {
	c *Client
}

func (s *CategoryService) List(ctx context.Context) Response[[]Category] {
	return do[[]Category](ctx, s.c, call{method: http.MethodGet, path: "/Category"})
}

func (s *CategoryService) Get(ctx context.Context, id string) Response[Category] {
	return do[Category](ctx, s.c, call{method: http.MethodGet, path: "/Category/" + url.PathEscape(id)})
}

func (s *CategoryService) Create(ctx context.Context, name string) Response[Category] {
	return do[Category](ctx, s.c, call{method: http.MethodPost, path: "/Category", body: Category{Name: name}, private: true})
}

func (s *CategoryService) Update(ctx context.Context, id, name string) Response[Category] {
	return do[Category](ctx, s.c, call{method: http.MethodPut, path: "/Category/" + url.PathEscape(id), body: Category{Name: name}, private: true})
}

func (s *CategoryService) Delete(ctx context.Context, id string) Response[struct{}] {
	return do[struct{}](ctx, s.c, call{method: http.MethodDelete, path: "/Category/" + url.PathEscape(id), private: true})
}

// ServiceCatalogService covers /OurServices
type ServiceCatalogService struct {
	c *Client
}

// List returns service categories with their items
func (s *ServiceCatalogService) List(ctx context.Context) Response[[]ServiceCategory] {
	return do[[]ServiceCategory](ctx, s.c, call{method: http.MethodGet, path: "/OurServices"})
}

// ListFlat fetches the categories and flattens them locally
func (s *ServiceCatalogService) ListFlat(ctx context.Context) Response[[]UIService] {
	resp := s.List(ctx)
	return Response[[]UIService]{
		Success: resp.Success,
		Data:    Flatten(resp.Data),
		Message: resp.Message,
		Status:  resp.Status,
		Error:   resp.Error,
	}
}

func (s *ServiceCatalogService) Get(ctx context.Context, id string) Response[ServiceCategory] {
	return do[ServiceCategory](ctx, s.c, call{method: http.MethodGet, path: "/OurServices/" + url.PathEscape(id)})
}

func (s *ServiceCatalogService) Create(ctx context.Context, c ServiceCategory) Response[ServiceCategory] {
	return do[ServiceCategory](ctx, s.c, call{method: http.MethodPost, path: "/OurServices", body: c, private: true})
}

// Update replaces a category including its whole item list
func (s *ServiceCatalogService) Update(ctx context.Context, id string, c ServiceCategory) Response[ServiceCategory] {
	return do[ServiceCategory](ctx, s.c, call{method: http.MethodPut, path: "/OurServices/" + url.PathEscape(id), body: c, private: true})
}

func (s *ServiceCatalogService) Delete(ctx context.Context, id string) Response[struct{}] {
	return do[struct{}](ctx, s.c, call{method: http.MethodDelete, path: "/OurServices/" + url.PathEscape(id), private: true})
}

// AddItem appends one item and returns the updated category
func (s *ServiceCatalogService) AddItem(ctx context.Context, categoryID string, item ServiceItem) Response[ServiceCategory] {
	return do[ServiceCategory](ctx, s.c, call{
		method:  http.MethodPost,
		path:    "/OurServices/" + url.PathEscape(categoryID) + "/items",
		body:    item,
		private: true,
	})
}

func (s *ServiceCatalogService) UpdateItem(ctx context.Context, categoryID, itemID string, item ServiceItem) Response[ServiceCategory] {
	return do[ServiceCategory](ctx, s.c, call{
		method:  http.MethodPut,
		path:    "/OurServices/" + url.PathEscape(categoryID) + "/items/" + url.PathEscape(itemID),
		body:    item,
		private: true,
	})
}

func (s *ServiceCatalogService) DeleteItem(ctx context.Context, categoryID, itemID string) Response[ServiceCategory] {
	return do[ServiceCategory](ctx, s.c, call{
		method:  http.MethodDelete,
		path:    "/OurServices/" + url.PathEscape(categoryID) + "/items/" + url.PathEscape(itemID),
		private: true,
	})
}

// TeamService covers /Team
type TeamService struct {
	c *Client
}

func (s *TeamService) List(ctx context.Context) Response[[]TeamMember] {
	return do[[]TeamMember](ctx, s.c, call{method: http.MethodGet, path: "/Team"})
}

func (s *TeamService) Get(ctx context.Context, id string) Response[TeamMember] {
	return do[TeamMember](ctx, s.c, call{method: http.MethodGet, path: "/Team/" + url.PathEscape(id)})
}

func (s *TeamService) Create(ctx context.Context, m TeamMember) Response[TeamMember] {
	return do[TeamMember](ctx, s.c, call{method: http.MethodPost, path: "/Team", body: m, private: true})
}

func (s *TeamService) Update(ctx context.Context, id string, m TeamMember) Response[TeamMember] {
	return do[TeamMember](ctx, s.c, call{method: http.MethodPut, path: "/Team/" + url.PathEscape(id), body: m, private: true})
}

func (s *TeamService) Delete(ctx context.Context, id string) Response[struct{}] {
	return do[struct{}](ctx, s.c, call{method: http.MethodDelete, path: "/Team/" + url.PathEscape(id), private: true})
}
