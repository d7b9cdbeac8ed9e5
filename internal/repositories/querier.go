package repositories

import (
	"context"
	"errors"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	apperrors "asset-system/pkg/errors"
)

// Querier is satisfied by both *pgxpool.Pool and pgx.Tx so repository
// helpers can run inside or outside a transaction.
type Querier interface {
	QueryRow(ctx context.Context, sql string, args ...interface{}) pgx.Row
	Exec(ctx context.Context, sql string, arguments ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
}

// orderClause resolves the first whitelisted sort key from the request into an
// ORDER BY fragment. Unknown keys are ignored; direction defaults to DESC and
// only an explicit "asc" flips it. With no usable key the fallback wins.
func orderClause(sort map[string]string, allowed map[string]string, fallback string) string {
	for key, dir := range sort {
		col, ok := allowed[key]
		if !ok {
			continue
		}
		if strings.EqualFold(dir, "asc") {
			return col + " ASC"
		}
		return col + " DESC"
	}
	return fallback
}

// mapConstraintErr translates a unique violation into the Conflict sentinel
// and leaves every other error untouched.
func mapConstraintErr(err error) error {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == "23505" {
		return apperrors.ErrConflict
	}
	return err
}
