package handlers

import (
	"context"
	"net/http"

	"github.com/sokebat/barber-frontend-sub000/internal/domain/entities"
)

// AuthService defines the interface for account operations
type AuthService interface {
	Register(ctx context.Context, req *entities.RegisterRequest) (*entities.User, error)
	Login(ctx context.Context, req *entities.LoginRequest) (*entities.AuthResult, error)
	Me(ctx context.Context) (*entities.User, error)
}

// AuthHandler handles /auth requests
type AuthHandler struct {
	service AuthService
}

// NewAuthHandler creates a new auth handler
func NewAuthHandler(service AuthService) *AuthHandler {
	return &AuthHandler{service: service}
}

// Register handles POST /auth/register
func (h *AuthHandler) Register(w http.ResponseWriter, r *http.Request) {
	var req entities.RegisterRequest
	if err := decodeJSON(w, r, &req); err != nil {
		respondWithAppError(w, r, err)
		return
	}

	user, err := h.service.Register(r.Context(), &req)
	if err != nil {
		respondWithAppError(w, r, err)
		return
	}

	respondWithMessage(w, http.StatusCreated, "registration successful", user)
}

// Login handles POST /auth/login
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req entities.LoginRequest
	if err := decodeJSON(w, r, &req); err != nil {
		respondWithAppError(w, r, err)
		return
	}

	result, err := h.service.Login(r.Context(), &req)
	if err != nil {
		respondWithAppError(w, r, err)
		return
	}

	respondWithMessage(w, http.StatusOK, "login successful", result)
}

// Me handles GET /auth/me
func (h *AuthHandler) Me(w http.ResponseWriter, r *http.Request) {
	user, err := h.service.Me(r.Context())
	if err != nil {
		respondWithAppError(w, r, err)
		return
	}

	respondWithJSON(w, http.StatusOK, user)
}
