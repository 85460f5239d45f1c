package handlers

import (
	"context"
	"net/http"

	"github.com/sokebat/barber-frontend-sub000/internal/domain/entities"
)

// TeamService defines the interface for staff operations
type TeamService interface {
	Create(ctx context.Context, member *entities.TeamMember) (*entities.TeamMember, error)
	GetByID(ctx context.Context, id string) (*entities.TeamMember, error)
	List(ctx context.Context) ([]*entities.TeamMember, error)
	Update(ctx context.Context, id string, member *entities.TeamMember) (*entities.TeamMember, error)
	Delete(ctx context.Context, id string) error
}

// TeamHandler handles /Team requests
type TeamHandler struct {
	service TeamService
}

// NewTeamHandler creates a new team handler
func NewTeamHandler(service TeamService) *TeamHandler {
	return &TeamHandler{service: service}
}

// List handles GET /Team
func (h *TeamHandler) List(w http.ResponseWriter, r *http.Request) {
	members, err := h.service.List(r.Context())
	if err != nil {
		respondWithAppError(w, r, err)
		return
	}
	respondWithJSON(w, http.StatusOK, members)
}

// Get handles GET /Team/{id}
func (h *TeamHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}
	member, err := h.service.GetByID(r.Context(), id)
	if err != nil {
		respondWithAppError(w, r, err)
		return
	}
	respondWithJSON(w, http.StatusOK, member)
}

// Create handles POST /Team
func (h *TeamHandler) Create(w http.ResponseWriter, r *http.Request) {
	var member entities.TeamMember
	if err := decodeJSON(w, r, &member); err != nil {
		respondWithAppError(w, r, err)
		return
	}
	created, err := h.service.Create(r.Context(), &member)
	if err != nil {
		respondWithAppError(w, r, err)
		return
	}
	respondWithJSON(w, http.StatusCreated, created)
}

// Update handles PUT /Team/{id}
func (h *TeamHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}
	var member entities.TeamMember
	if err := decodeJSON(w, r, &member); err != nil {
		respondWithAppError(w, r, err)
		return
	}
	updated, err := h.service.Update(r.Context(), id, &member)
	if err != nil {
		respondWithAppError(w, r, err)
		return
	}
	respondWithJSON(w, http.StatusOK, updated)
}

// Delete handles DELETE /Team/{id}
func (h *TeamHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}
	if err := h.service.Delete(r.Context(), id); err != nil {
		respondWithAppError(w, r, err)
		return
	}
	respondWithMessage(w, http.StatusOK, "team member deleted", nil)
}
