package database

import (
	"database/sql"
	"errors"
	"fmt"

	"github.com/lib/pq"
	apperrors "github.com/sokebat/barber-frontend-sub000/pkg/errors"
)

const uniqueViolation = "23505"

// writeError maps driver failures on INSERT/UPDATE to application errors.
// A unique violation becomes CONFLICT with conflictMsg.
func writeError(err error, msg, conflictMsg string) error {
	var pqErr *pq.Error
	if errors.As(err, &pqErr) && string(pqErr.Code) == uniqueViolation {
		return apperrors.NewConflictError(conflictMsg)
	}
	return apperrors.NewInternalError(msg, err)
}

// readError maps sql.ErrNoRows to NOT_FOUND and anything else to INTERNAL.
func readError(err error, kind, id string) error {
	if errors.Is(err, sql.ErrNoRows) {
		return apperrors.NewNotFoundError(fmt.Sprintf("%s with id %s not found", kind, id))
	}
	return apperrors.NewInternalError(fmt.Sprintf("failed to get %s", kind), err)
}

// expectAffected turns a zero-row UPDATE/DELETE into NOT_FOUND.
func expectAffected(result sql.Result, kind, id string) error {
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return apperrors.NewInternalError("failed to get rows affected", err)
	}
	if rowsAffected == 0 {
		return apperrors.NewNotFoundError(fmt.Sprintf("%s with id %s not found", kind, id))
	}
	return nil
}

func nullIfEmpty(s string) interface{} {
	if s == "" {
		return nil
	}
	return s
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}
