package db

import (
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"realgo/internal/shared/apperrors"
)

// Translate converts storage-level failures into the shared error taxonomy
// so constraint violations that slipped past pre-validation are not leaked
// as raw pg errors. what names the entity for NotFound messages.
func Translate(err error, what string) error {
	if err == nil {
		return nil
	}

	if errors.Is(err, pgx.ErrNoRows) {
		return apperrors.NotFound(what)
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch pgErr.Code {
		case "23505": // unique_violation
			return apperrors.Conflict("%s already exists", what)
		case "23503": // foreign_key_violation
			return apperrors.Validation("%s references a missing row", what)
		case "23514": // check_violation
			return apperrors.Validation("%s violates a value constraint", what)
		}
	}

	return apperrors.Internal(err)
}
