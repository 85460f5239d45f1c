package handlers

import (
	"context"
	"net/http"

	"github.com/sokebat/barber-frontend-sub000/internal/domain/entities"
	"github.com/sokebat/barber-frontend-sub000/internal/domain/repositories"
)

const (
	defaultSearchLimit = 20
	maxSearchLimit     = 100
)

// ProductService defines the interface for product operations
type ProductService interface {
	Create(ctx context.Context, product *entities.Product) (*entities.Product, error)
	GetByID(ctx context.Context, id string) (*entities.Product, error)
	List(ctx context.Context, filter repositories.ProductFilter) ([]*entities.Product, error)
	Update(ctx context.Context, id string, product *entities.Product) (*entities.Product, error)
	Delete(ctx context.Context, id string) error
	Search(ctx context.Context, params repositories.ProductSearchParams) (*repositories.ProductSearchResult, error)
}

// ProductHandler handles /Product requests
type ProductHandler struct {
	service ProductService
}

// NewProductHandler creates a new product handler
func NewProductHandler(service ProductService) *ProductHandler {
	return &ProductHandler{service: service}
}

// List handles GET /Product?category=
func (h *ProductHandler) List(w http.ResponseWriter, r *http.Request) {
	filter := repositories.ProductFilter{CategoryName: r.URL.Query().Get("category")}

	var err error
	if filter.Limit, err = intParam(r, "limit", 0); err != nil {
		respondWithAppError(w, r, err)
		return
	}
	if filter.Offset, err = intParam(r, "offset", 0); err != nil {
		respondWithAppError(w, r, err)
		return
	}

	products, err := h.service.List(r.Context(), filter)
	if err != nil {
		respondWithAppError(w, r, err)
		return
	}
	respondWithJSON(w, http.StatusOK, products)
}

// Search handles GET /Product/search?q=&category=&limit=&offset=
func (h *ProductHandler) Search(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()
	params := repositories.ProductSearchParams{
		Query:        query.Get("q"),
		CategoryName: query.Get("category"),
	}

	var err error
	if params.Limit, err = intParam(r, "limit", defaultSearchLimit); err != nil {
		respondWithAppError(w, r, err)
		return
	}
	if params.Limit == 0 || params.Limit > maxSearchLimit {
		params.Limit = maxSearchLimit
	}
	if params.Offset, err = intParam(r, "offset", 0); err != nil {
		respondWithAppError(w, r, err)
		return
	}

	result, err := h.service.Search(r.Context(), params)
	if err != nil {
		respondWithAppError(w, r, err)
		return
	}
	respondWithJSON(w, http.StatusOK, result)
}

// Get handles GET /Product/{id}
func (h *ProductHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}
	product, err := h.service.GetByID(r.Context(), id)
	if err != nil {
		respondWithAppError(w, r, err)
		return
	}
	respondWithJSON(w, http.StatusOK, product)
}

// Create handles POST /Product
func (h *ProductHandler) Create(w http.ResponseWriter, r *http.Request) {
	var product entities.Product
	if err := decodeJSON(w, r, &product); err != nil {
		respondWithAppError(w, r, err)
		return
	}
	created, err := h.service.Create(r.Context(), &product)
	if err != nil {
		respondWithAppError(w, r, err)
		return
	}
	respondWithJSON(w, http.StatusCreated, created)
}

// Update handles PUT /Product/{id}
func (h *ProductHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}
	var product entities.Product
	if err := decodeJSON(w, r, &product); err != nil {
		respondWithAppError(w, r, err)
		return
	}
	updated, err := h.service.Update(r.Context(), id, &product)
	if err != nil {
		respondWithAppError(w, r, err)
		return
	}
	respondWithJSON(w, http.StatusOK, updated)
}

// Delete handles DELETE /Product/{id}
func (h *ProductHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}
	if err := h.service.Delete(r.Context(), id); err != nil {
		respondWithAppError(w, r, err)
		return
	}
	respondWithMessage(w, http.StatusOK, "product deleted", nil)
}
