package errors

import (
	"database/sql"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestAppError_HTTPStatus(t *testing.T) {
	cases := map[ErrorType]int{
		ErrorTypeNotFound:     http.StatusNotFound,
		ErrorTypeValidation:   http.StatusBadRequest,
		ErrorTypeConflict:     http.StatusConflict,
		ErrorTypeUnauthorized: http.StatusUnauthorized,
		ErrorTypeForbidden:    http.StatusForbidden,
		ErrorTypeExternal:     http.StatusBadGateway,
		ErrorTypeInternal:     http.StatusInternalServerError,
	}
	for typ, status := range cases {
		err := &AppError{Type: typ, Message: "x"}
		assert.Equal(t, status, err.HTTPStatus(), string(typ))
	}
}

func TestAs_FindsWrappedAppError(t *testing.T) {
	inner := NewConflictError("slot already booked")
	wrapped := fmt.Errorf("booking: %w", inner)

	appErr, ok := As(wrapped)
	assert.True(t, ok)
	assert.Equal(t, ErrorTypeConflict, appErr.Type)
	assert.True(t, IsType(wrapped, ErrorTypeConflict))
	assert.False(t, IsType(wrapped, ErrorTypeNotFound))
}

func TestAppError_ErrorAndUnwrap(t *testing.T) {
	err := NewInternalError("failed to get product", sql.ErrConnDone)

	assert.Contains(t, err.Error(), "INTERNAL: failed to get product")
	assert.ErrorIs(t, err, sql.ErrConnDone)

	_, ok := As(sql.ErrNoRows)
	assert.False(t, ok)
}
