package repository

import (
	"errors"
	"fmt"
	"strings"

	"atelier/internal/storage"

	"github.com/jackc/pgconn"
	"github.com/jackc/pgx/v4"
)

var errConflict = fmt.Errorf("%w: %w", storage.ErrValidationRejected, storage.ErrConflict)

func wrap(op string, kind, err error) error {
	if err == nil {
		return fmt.Errorf("%s: %w", op, kind)
	}
	return fmt.Errorf("%s: %w: %w", op, kind, err)
}

// classifyPg maps pgx/pgconn errors onto the store taxonomy.
func classifyPg(op string, err error) error {
	if errors.Is(err, pgx.ErrNoRows) {
		return wrap(op, storage.ErrNotFound, err)
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch {
		case pgErr.Code == "23505":
			return wrap(op, errConflict, err)
		case strings.HasPrefix(pgErr.Code, "23"), strings.HasPrefix(pgErr.Code, "22"):
			// integrity constraint violation / data exception
			return wrap(op, storage.ErrValidationRejected, err)
		}
	}

	return wrap(op, storage.ErrStoreUnavailable, err)
}

// classifyPostgREST maps PostgREST error responses. postgrest-go reports them
// as "(<code>) <message>", the code being either a PGRST code or a SQLSTATE.
func classifyPostgREST(op string, err error) error {
	msg := err.Error()

	switch {
	case strings.Contains(msg, "PGRST116"):
		return wrap(op, storage.ErrNotFound, err)
	case strings.Contains(msg, "23505"), strings.Contains(msg, "duplicate key"):
		return wrap(op, errConflict, err)
	case strings.Contains(msg, "(23"), strings.Contains(msg, "(22"), strings.Contains(msg, "PGRST204"):
		return wrap(op, storage.ErrValidationRejected, err)
	}

	return wrap(op, storage.ErrStoreUnavailable, err)
}
