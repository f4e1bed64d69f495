package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/mkravets/polyglot-backend/internal/domain"
)

// MapError converts pgx/pgconn errors to domain errors, wrapping them with
// the failed operation. Context cancellation errors pass through unmapped so
// callers can still detect them with errors.Is.
func MapError(err error, op string) error {
	if err == nil {
		return nil
	}

	if errors.Is(err, context.DeadlineExceeded) || errors.Is(err, context.Canceled) {
		return fmt.Errorf("%s: %w", op, err)
	}

	if errors.Is(err, pgx.ErrNoRows) {
		return fmt.Errorf("%s: %w", op, domain.ErrNotFound)
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch pgErr.Code {
		case "23505", "23514": // unique_violation, check_violation
			return fmt.Errorf("%s: %w", op, domain.ErrValidation)
		case "23503": // foreign_key_violation
			return fmt.Errorf("%s: %w", op, domain.ErrNotFound)
		}
	}

	return fmt.Errorf("%s: %w", op, err)
}
