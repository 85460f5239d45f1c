package handlers

import (
	"context"
	"net/http"

	"github.com/sokebat/barber-frontend-sub000/internal/domain/entities"
)

// CategoryService defines the interface for product category operations
type CategoryService interface {
	Create(ctx context.Context, category *entities.Category) (*entities.Category, error)
	GetByID(ctx context.Context, id string) (*entities.Category, error)
	List(ctx context.Context) ([]*entities.Category, error)
	Update(ctx context.Context, id string, category *entities.Category) (*entities.Category, error)
	Delete(ctx context.Context, id string) error
}

// CategoryHandler handles /Category requests
type CategoryHandler struct {
	service CategoryService
}

// NewCategoryHandler creates a new category handler
func NewCategoryHandler(service CategoryService) *CategoryHandler {
	return &CategoryHandler{service: service}
}

// List handles GET /Category
func (h *CategoryHandler) List(w http.ResponseWriter, r *http.Request) {
	categories, err := h.service.List(r.Context())
	if err != nil {
		respondWithAppError(w, r, err)
		return
	}
	respondWithJSON(w, http.StatusOK, categories)
}

// Get handles GET /Category/{id}
func (h *CategoryHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}
	category, err := h.service.GetByID(r.Context(), id)
	if err != nil {
		respondWithAppError(w, r, err)
		return
	}
	respondWithJSON(w, http.StatusOK, category)
}

// Create handles POST /Category
func (h *CategoryHandler) Create(w http.ResponseWriter, r *http.Request) {
	var category entities.Category
	if err := decodeJSON(w, r, &category); err != nil {
		respondWithAppError(w, r, err)
		return
	}
	created, err := h.service.Create(r.Context(), &category)
	if err != nil {
		respondWithAppError(w, r, err)
		return
	}
	respondWithJSON(w, http.StatusCreated, created)
}

// Update handles PUT /Category/{id}
func (h *CategoryHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}
	var category entities.Category
	if err := decodeJSON(w, r, &category); err != nil {
		respondWithAppError(w, r, err)
		return
	}
	updated, err := h.service.Update(r.Context(), id, &category)
	if err != nil {
		respondWithAppError(w, r, err)
		return
	}
	respondWithJSON(w, http.StatusOK, updated)
}

// Delete handles DELETE /Category/{id}
func (h *CategoryHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}
	if err := h.service.Delete(r.Context(), id); err != nil {
		respondWithAppError(w, r, err)
		return
	}
	respondWithMessage(w, http.StatusOK, "category deleted", nil)
}
