package handlers

import (
	"context"
	"net/http"
	"strconv"

	"github.com/sokebat/barber-frontend-sub000/internal/domain/entities"
	"github.com/sokebat/barber-frontend-sub000/internal/domain/repositories"
	apperrors "github.com/sokebat/barber-frontend-sub000/pkg/errors"
)

// AppointmentService defines the interface for appointment operations
type AppointmentService interface {
	Create(ctx context.Context, req *entities.CreateAppointmentRequest) (*entities.Appointment, error)
	GetByID(ctx context.Context, id string) (*entities.Appointment, error)
	List(ctx context.Context, filter repositories.AppointmentFilter) ([]*entities.Appointment, error)
	Mine(ctx context.Context) ([]*entities.Appointment, error)
	Update(ctx context.Context, id string, update *entities.Appointment) (*entities.Appointment, error)
	Approve(ctx context.Context, id string, approved bool) (*entities.Appointment, error)
	Delete(ctx context.Context, id string) error
	Availability(ctx context.Context, specialist, date string) (*entities.Availability, error)
}

// AppointmentHandler handles appointment requests
type AppointmentHandler struct {
	service AppointmentService
}

// NewAppointmentHandler creates a new appointment handler
func NewAppointmentHandler(service AppointmentService) *AppointmentHandler {
	return &AppointmentHandler{
		service: service,
	}
}

// ApproveRequest is the body of PATCH /Appointment/{id}/approve
type ApproveRequest struct {
	IsApproved *bool `json:"isApproved"`
}

// List handles GET /Appointment
func (h *AppointmentHandler) List(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()
	filter := repositories.AppointmentFilter{
		SpecialistName: query.Get("specialist"),
		Date:           query.Get("date"),
	}

	if raw := query.Get("approved"); raw != "" {
		approved, err := strconv.ParseBool(raw)
		if err != nil {
			respondWithError(w, http.StatusBadRequest, "approved must be true or false")
			return
		}
		filter.Approved = &approved
	}

	var err error
	if filter.Limit, err = intParam(r, "limit", 0); err != nil {
		respondWithAppError(w, r, err)
		return
	}
	if filter.Offset, err = intParam(r, "offset", 0); err != nil {
		respondWithAppError(w, r, err)
		return
	}

	appointments, err := h.service.List(r.Context(), filter)
	if err != nil {
		respondWithAppError(w, r, err)
		return
	}

	respondWithJSON(w, http.StatusOK, appointments)
}

// Mine handles GET /Appointment/mine
func (h *AppointmentHandler) Mine(w http.ResponseWriter, r *http.Request) {
	appointments, err := h.service.Mine(r.Context())
	if err != nil {
		respondWithAppError(w, r, err)
		return
	}

	respondWithJSON(w, http.StatusOK, appointments)
}

// Availability handles GET /Appointment/availability?specialist=&date=
func (h *AppointmentHandler) Availability(w http.ResponseWriter, r *http.Request) {
	specialist := r.URL.Query().Get("specialist")
	date := r.URL.Query().Get("date")
	if specialist == "" || date == "" {
		respondWithError(w, http.StatusBadRequest, "specialist and date query parameters are required")
		return
	}

	availability, err := h.service.Availability(r.Context(), specialist, date)
	if err != nil {
		respondWithAppError(w, r, err)
		return
	}

	respondWithJSON(w, http.StatusOK, availability)
}

// Get handles GET /Appointment/{id}
func (h *AppointmentHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}

	appointment, err := h.service.GetByID(r.Context(), id)
	if err != nil {
		respondWithAppError(w, r, err)
		return
	}

	respondWithJSON(w, http.StatusOK, appointment)
}

// Create handles POST /Appointment
func (h *AppointmentHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req entities.CreateAppointmentRequest
	if err := decodeJSON(w, r, &req); err != nil {
		respondWithAppError(w, r, err)
		return
	}

	appointment, err := h.service.Create(r.Context(), &req)
	if err != nil {
		respondWithAppError(w, r, err)
		return
	}

	respondWithMessage(w, http.StatusCreated, "appointment booked", appointment)
}

// Update handles PUT /Appointment/{id}
func (h *AppointmentHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}

	var update entities.Appointment
	if err := decodeJSON(w, r, &update); err != nil {
		respondWithAppError(w, r, err)
		return
	}

	appointment, err := h.service.Update(r.Context(), id, &update)
	if err != nil {
		respondWithAppError(w, r, err)
		return
	}

	respondWithJSON(w, http.StatusOK, appointment)
}

// Approve handles PATCH /Appointment/{id}/approve
func (h *AppointmentHandler) Approve(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}

	var req ApproveRequest
	if err := decodeJSON(w, r, &req); err != nil {
		respondWithAppError(w, r, err)
		return
	}
	if req.IsApproved == nil {
		respondWithAppError(w, r, apperrors.NewValidationError("isApproved is required"))
		return
	}

	appointment, err := h.service.Approve(r.Context(), id, *req.IsApproved)
	if err != nil {
		respondWithAppError(w, r, err)
		return
	}

	respondWithJSON(w, http.StatusOK, appointment)
}

// Delete handles DELETE /Appointment/{id}
func (h *AppointmentHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}

	if err := h.service.Delete(r.Context(), id); err != nil {
		respondWithAppError(w, r, err)
		return
	}

	respondWithMessage(w, http.StatusOK, "appointment deleted", nil)
}
