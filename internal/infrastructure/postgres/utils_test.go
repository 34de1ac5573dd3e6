package postgres

import (
	"errors"
	"fmt"
	"testing"

	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
)

func TestClasificacionDeErrores(t *testing.T) {
	unique := fmt.Errorf("insert: %w", &pgconn.PgError{Code: pgerrcode.UniqueViolation})
	fk := &pgconn.PgError{Code: pgerrcode.ForeignKeyViolation}
	badUUID := &pgconn.PgError{Code: pgerrcode.InvalidTextRepresentation}

	assert.True(t, isUniqueViolation(unique))
	assert.False(t, isUniqueViolation(fk))
	assert.True(t, isForeignKeyViolation(fk))
	assert.True(t, isNotFound(badUUID))
	assert.True(t, isNotFound(pgx.ErrNoRows))
	assert.False(t, isNotFound(errors.New("conexión rechazada")))
}

func TestNullIfEmpty(t *testing.T) {
	assert.Nil(t, nullIfEmpty(""))
	assert.Equal(t, "abc", nullIfEmpty("abc"))
	s := "x"
	assert.Equal(t, "x", derefString(&s))
	assert.Equal(t, "", derefString(nil))
}
