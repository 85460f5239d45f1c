package repositories

import (
	"context"

	"github.com/sokebat/barber-frontend-sub000/internal/domain/entities"
)

// CategoryRepository defines the interface for product category operations
type CategoryRepository interface {
	Create(ctx context.Context, category *entities.Category) error
	GetByID(ctx context.Context, id string) (*entities.Category, error)
	List(ctx context.Context) ([]*entities.Category, error)
	Update(ctx context.Context, category *entities.Category) error
	Delete(ctx context.Context, id string) error
}

// ProductRepository defines the interface for product operations
type ProductRepository interface {
	Create(ctx context.Context, product *entities.Product) error
	GetByID(ctx context.Context, id string) (*entities.Product, error)

	// GetByIDs returns the products that exist; missing ids are skipped
	GetByIDs(ctx context.Context, ids []string) ([]*entities.Product, error)

	List(ctx context.Context, filter ProductFilter) ([]*entities.Product, error)
	Update(ctx context.Context, product *entities.Product) error
	Delete(ctx context.Context, id string) error
}

// ProductFilter defines filters for listing products
type ProductFilter struct {
	CategoryName string
	Limit        int
	Offset       int
}

// ServiceCategoryRepository stores service categories together with their items
type ServiceCategoryRepository interface {
	Create(ctx context.Context, category *entities.ServiceCategory) error
	GetByID(ctx context.Context, id string) (*entities.ServiceCategory, error)
	List(ctx context.Context) ([]*entities.ServiceCategory, error)

	// Update replaces the category fields and its whole item list
	Update(ctx context.Context, category *entities.ServiceCategory) error
	Delete(ctx context.Context, id string) error

	AddItem(ctx context.Context, categoryID string, item *entities.ServiceItem) error
	UpdateItem(ctx context.Context, categoryID string, item *entities.ServiceItem) error
	DeleteItem(ctx context.Context, categoryID, itemID string) error
}

// TeamRepository defines the interface for team member operations
type TeamRepository interface {
	Create(ctx context.Context, member *entities.TeamMember) error
	GetByID(ctx context.Context, id string) (*entities.TeamMember, error)
	List(ctx context.Context) ([]*entities.TeamMember, error)
	Update(ctx context.Context, member *entities.TeamMember) error
	Delete(ctx context.Context, id string) error
}

// ProductSearchRepository defines the interface for product full-text search (e.g. Typesense)
type ProductSearchRepository interface {
	Search(ctx context.Context, params ProductSearchParams) (*ProductSearchResult, error)
	Index(ctx context.Context, product *entities.Product) error
	IndexAll(ctx context.Context, products []*entities.Product) error
	Delete(ctx context.Context, id string) error
}

// ProductSearchParams defines parameters for product search
type ProductSearchParams struct {
	Query        string
	CategoryName string
	Limit        int
	Offset       int
}

// ProductSearchResult holds one page of search hits
type ProductSearchResult struct {
	Products   []*entities.Product `json:"products"`
	TotalCount int                  `json:"totalCount"`
}
