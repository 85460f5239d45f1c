package handlers

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strconv"

	"github.com/rs/zerolog/log"
	apperrors "github.com/sokebat/barber-frontend-sub000/pkg/errors"
)

// maxBodyBytes bounds JSON request bodies
const maxBodyBytes = 1 << 20

// Envelope is the shape of every JSON response
type Envelope struct {
	Success bool        `json:"success"`
	Data    interface{} `json:"data"`
	Message string      `json:"message,omitempty"`
	Status  int         `json:"status"`
	Error   string      `json:"error,omitempty"`
}

func respondWithJSON(w http.ResponseWriter, statusCode int, payload interface{}) {
	respondWithMessage(w, statusCode, "", payload)
}

func respondWithMessage(w http.ResponseWriter, statusCode int, message string, payload interface{}) {
	writeEnvelope(w, Envelope{
		Success: true,
		Data:    payload,
		Message: message,
		Status:  statusCode,
	})
}

func respondWithError(w http.ResponseWriter, statusCode int, message string) {
	writeEnvelope(w, Envelope{
		Success: false,
		Message: message,
		Status:  statusCode,
		Error:   string(errorTypeFor(statusCode)),
	})
}

// respondWithAppError maps an error onto its HTTP status. Internal details are logged, not returned.
func respondWithAppError(w http.ResponseWriter, r *http.Request, err error) {
	appErr, ok := apperrors.As(err)
	if !ok {
		appErr = apperrors.NewInternalError("internal server error", err)
	}

	status := appErr.HTTPStatus()
	message := appErr.Message
	if status >= http.StatusInternalServerError {
		log.Ctx(r.Context()).Error().Err(err).Str("path", r.URL.Path).Msg("request failed")
		if appErr.Type == apperrors.ErrorTypeInternal {
			message = "internal server error"
		}
	}

	writeEnvelope(w, Envelope{
		Success: false,
		Message: message,
		Status:  status,
		Error:   string(appErr.Type),
	})
}

func writeEnvelope(w http.ResponseWriter, envelope Envelope) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(envelope.Status)
	if err := json.NewEncoder(w).Encode(envelope); err != nil {
		log.Warn().Err(err).Msg("failed to encode response")
	}
}

func errorTypeFor(statusCode int) apperrors.ErrorType {
	switch statusCode {
	case http.StatusBadRequest:
		return apperrors.ErrorTypeValidation
	case http.StatusUnauthorized:
		return apperrors.ErrorTypeUnauthorized
	case http.StatusForbidden:
		return apperrors.ErrorTypeForbidden
	case http.StatusNotFound:
		return apperrors.ErrorTypeNotFound
	case http.StatusConflict:
		return apperrors.ErrorTypeConflict
	case http.StatusBadGateway:
		return apperrors.ErrorTypeExternal
	default:
		return apperrors.ErrorTypeInternal
	}
}

// decodeJSON reads a bounded JSON body into v
func decodeJSON(w http.ResponseWriter, r *http.Request, v interface{}) error {
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		if errors.Is(err, io.EOF) {
			return apperrors.NewValidationError("request body is required")
		}
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			return apperrors.NewValidationError("request body too large")
		}
		return apperrors.NewValidationError("invalid request body")
	}
	return nil
}

// intParam parses a non-negative integer query parameter, falling back to def
func intParam(r *http.Request, name string, def int) (int, error) {
	raw := r.URL.Query().Get(name)
	if raw == "" {
		return def, nil
	}
	v, err := strconv.Atoi(raw)
	if err != nil || v < 0 {
		return 0, apperrors.NewValidationError(name + " must be a non-negative integer")
	}
	return v, nil
}

func pathID(w http.ResponseWriter, r *http.Request, name string) (string, bool) {
	id := r.PathValue(name)
	if id == "" {
		respondWithError(w, http.StatusBadRequest, name+" is required")
		return "", false
	}
	return id, true
}
