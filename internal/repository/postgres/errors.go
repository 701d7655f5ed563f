package postgres

import (
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/baharkarakas/tours-backend/internal/apperr"
)

const uniqueViolation = "23505"

// mapErr translates driver errors into the shared taxonomy: unique-index
// violations become conflicts, no-rows becomes not-found.
func mapErr(err error, conflictMsg, notFoundMsg string) error {
	if err == nil {
		return nil
	}
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == uniqueViolation {
		return apperr.Wrap(apperr.Conflict(conflictMsg), err)
	}
	if errors.Is(err, pgx.ErrNoRows) {
		return apperr.Wrap(apperr.NotFound(notFoundMsg), err)
	}
	return err
}
