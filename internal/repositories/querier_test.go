package repositories

import (
	"errors"
	"testing"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"

	apperrors "asset-system/pkg/errors"
)

func TestOrderClause(t *testing.T) {
	allowed := map[string]string{
		"serial_no":  "serial_no",
		"created_at": "created_at",
	}

	cases := []struct {
		name string
		sort map[string]string
		want string
	}{
		{"no sort falls back", nil, "created_at DESC"},
		{"unknown key falls back", map[string]string{"password_hash": "asc"}, "created_at DESC"},
		{"explicit asc", map[string]string{"serial_no": "asc"}, "serial_no ASC"},
		{"asc is case insensitive", map[string]string{"serial_no": "ASC"}, "serial_no ASC"},
		{"anything else means desc", map[string]string{"serial_no": "down"}, "serial_no DESC"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, orderClause(tc.sort, allowed, "created_at DESC"))
		})
	}
}

func TestMapConstraintErr(t *testing.T) {
	uniqueViolation := &pgconn.PgError{Code: "23505", ConstraintName: "assets_serial_no_key"}
	assert.ErrorIs(t, mapConstraintErr(uniqueViolation), apperrors.ErrConflict)

	fkViolation := &pgconn.PgError{Code: "23503"}
	assert.Equal(t, error(fkViolation), mapConstraintErr(fkViolation))

	plain := errors.New("connection reset")
	assert.Equal(t, plain, mapConstraintErr(plain))

	assert.NoError(t, mapConstraintErr(nil))
}
