package pgsql

import (
	"errors"

	"github.com/jackc/pgx/v5/pgconn"

	"github.com/centavoapp/centavo/internal/apperrors"
)

// mapConstraintError translates postgres constraint violations into the
// application error taxonomy: unique violations become ErrDuplicate and
// foreign key violations become ErrNotFound (the referenced row is missing).
// Anything else is returned untouched.
func mapConstraintError(err error) error {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch pgErr.Code {
		case "23505":
			return apperrors.ErrDuplicate
		case "23503":
			return apperrors.ErrNotFound
		}
	}
	return err
}
