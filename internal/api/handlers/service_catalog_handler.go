package handlers

import (
	"context"
	"net/http"
	"strconv"

	"github.com/sokebat/barber-frontend-sub000/internal/domain/entities"
)

// ServiceCatalogService defines the interface for salon service menu operations
type ServiceCatalogService interface {
	Create(ctx context.Context, category *entities.ServiceCategory) (*entities.ServiceCategory, error)
	GetByID(ctx context.Context, id string) (*entities.ServiceCategory, error)
	List(ctx context.Context) ([]*entities.ServiceCategory, error)
	ListFlat(ctx context.Context) ([]entities.UIService, error)
	Update(ctx context.Context, id string, category *entities.ServiceCategory) (*entities.ServiceCategory, error)
	Delete(ctx context.Context, id string) error
	AddItem(ctx context.Context, categoryID string, item *entities.ServiceItem) (*entities.ServiceCategory, error)
	UpdateItem(ctx context.Context, categoryID, itemID string, item *entities.ServiceItem) (*entities.ServiceCategory, error)
	DeleteItem(ctx context.Context, categoryID, itemID string) (*entities.ServiceCategory, error)
}

// ServiceCatalogHandler handles /OurServices requests
type ServiceCatalogHandler struct {
	service ServiceCatalogService
}

// NewServiceCatalogHandler creates a new service catalog handler
func NewServiceCatalogHandler(service ServiceCatalogService) *ServiceCatalogHandler {
	return &ServiceCatalogHandler{service: service}
}

// List handles GET /OurServices. With ?flat=true it returns one record per item.
func (h *ServiceCatalogHandler) List(w http.ResponseWriter, r *http.Request) {
	if flat, _ := strconv.ParseBool(r.URL.Query().Get("flat")); flat {
		services, err := h.service.ListFlat(r.Context())
		if err != nil {
			respondWithAppError(w, r, err)
			return
		}
		respondWithJSON(w, http.StatusOK, services)
		return
	}

	categories, err := h.service.List(r.Context())
	if err != nil {
		respondWithAppError(w, r, err)
		return
	}
	respondWithJSON(w, http.StatusOK, categories)
}

// Get handles GET /OurServices/{id}
func (h *ServiceCatalogHandler) Get(w http.ResponseWriter, r *http.Request) {
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

// Create handles POST /OurServices
func (h *ServiceCatalogHandler) Create(w http.ResponseWriter, r *http.Request) {
	var category entities.ServiceCategory
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

// Update handles PUT /OurServices/{id}; the items array is replaced as sent
func (h *ServiceCatalogHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}
	var category entities.ServiceCategory
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

// Delete handles DELETE /OurServices/{id}
func (h *ServiceCatalogHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}
	if err := h.service.Delete(r.Context(), id); err != nil {
		respondWithAppError(w, r, err)
		return
	}
	respondWithMessage(w, http.StatusOK, "service category deleted", nil)
}

// AddItem handles POST /OurServices/{id}/items
func (h *ServiceCatalogHandler) AddItem(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}
	var item entities.ServiceItem
	if err := decodeJSON(w, r, &item); err != nil {
		respondWithAppError(w, r, err)
		return
	}
	category, err := h.service.AddItem(r.Context(), id, &item)
	if err != nil {
		respondWithAppError(w, r, err)
		return
	}
	respondWithJSON(w, http.StatusCreated, category)
}

// UpdateItem handles PUT /OurServices/{id}/items/{itemId}
func (h *ServiceCatalogHandler) UpdateItem(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}
	itemID, ok := pathID(w, r, "itemId")
	if !ok {
		return
	}
	var item entities.ServiceItem
	if err := decodeJSON(w, r, &item); err != nil {
		respondWithAppError(w, r, err)
		return
	}
	category, err := h.service.UpdateItem(r.Context(), id, itemID, &item)
	if err != nil {
		respondWithAppError(w, r, err)
		return
	}
	respondWithJSON(w, http.StatusOK, category)
}

// DeleteItem handles DELETE /OurServices/{id}/items/{itemId}
func (h *ServiceCatalogHandler) DeleteItem(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}
	itemID, ok := pathID(w, r, "itemId")
	if !ok {
		return
	}
	category, err := h.service.DeleteItem(r.Context(), id, itemID)
	if err != nil {
		respondWithAppError(w, r, err)
		return
	}
	respondWithJSON(w, http.StatusOK, category)
}
