package db

import (
	"errors"
	"testing"
	"time"

	"github.com/jackc/pgconn"
	pgx "github.com/jackc/pgx/v4"
	"github.com/stretchr/testify/assert"
)

var errSentinel = errors.New("not found")

func TestHandleQueryError_NoRowsMapsToSentinel(t *testing.T) {
	err := HandleQueryError(pgx.ErrNoRows, errSentinel, "find user by name", time.Now())
	assert.ErrorIs(t, err, errSentinel)
}

func TestHandleQueryError_WrapsOtherErrors(t *testing.T) {
	cause := errors.New("connection refused")
	err := HandleQueryError(cause, errSentinel, "find record by id", time.Now())
	assert.ErrorIs(t, err, cause)
	assert.Contains(t, err.Error(), "failed to find record by id")
	assert.NoError(t, HandleQueryError(nil, errSentinel, "find record by id", time.Now()))
}

func TestHandleExecError(t *testing.T) {
	assert.NoError(t, HandleExecError(nil, "delete records", time.Now()))

	cause := errors.New("timeout")
	assert.ErrorIs(t, HandleExecError(cause, "delete records", time.Now()), cause)
}

func TestIsUniqueViolation(t *testing.T) {
	pgErr := &pgconn.PgError{Code: "23505", ConstraintName: "users_name_key"}

	assert.True(t, IsUniqueViolation(pgErr, ""))
	assert.True(t, IsUniqueViolation(pgErr, "users_name_key"))
	assert.False(t, IsUniqueViolation(pgErr, "records_pkey"))
	assert.False(t, IsUniqueViolation(&pgconn.PgError{Code: "23503"}, ""))
	assert.False(t, IsUniqueViolation(errors.New("plain"), ""))
}

func TestExtractTableFromOperation(t *testing.T) {
	assert.Equal(t, "users", extractTableFromOperation("touch user"))
	assert.Equal(t, "records", extractTableFromOperation("list record ids"))
	assert.Equal(t, "unknown", extractTableFromOperation("ping"))
}
