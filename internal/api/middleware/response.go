package middleware

import (
	"encoding/json"
	"net/http"

	apperrors "github.com/sokebat/barber-frontend-sub000/pkg/errors"
)

// writeError writes the same {success,data,message,status,error} envelope the handlers use
func writeError(w http.ResponseWriter, appErr *apperrors.AppError) {
	status := appErr.HTTPStatus()
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(map[string]interface{}{
		"success": false,
		"data":    nil,
		"message": appErr.Message,
		"status":  status,
		"error":   string(appErr.Type),
	})
}

// Chain applies middlewares so the first one listed is outermost
func Chain(h http.Handler, middlewares ...func(http.Handler) http.Handler) http.Handler {
	for i := len(middlewares) - 1; i >= 0; i-- {
		h = middlewares[i](h)
	}
	return h
}
