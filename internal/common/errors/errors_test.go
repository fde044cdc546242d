package commonerrors

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDomainError_WithCauseKeepsIdentity(t *testing.T) {
	cause := errors.New("connection reset")
	base := NewDomainError("DB_ERROR", CategoryInternal, http.StatusInternalServerError, "database operation failed")
	err := base.WithCause(cause)

	assert.True(t, errors.Is(err, base))
	assert.True(t, errors.Is(err, cause))
	assert.Equal(t, "database operation failed: connection reset", err.Error())
	assert.Equal(t, "database operation failed", err.Message())
	assert.Equal(t, http.StatusInternalServerError, err.HTTPStatus())
}

func TestDomainError_DifferentCodesDoNotMatch(t *testing.T) {
	assert.False(t, errors.Is(ErrEmptyUUID, ErrInvalidUUID))
}

func TestAsDomainError_Wrapped(t *testing.T) {
	wrapped := fmt.Errorf("handler: %w", ErrInvalidUUID)

	de, ok := AsDomainError(wrapped)
	require.True(t, ok)
	assert.Equal(t, "INVALID_UUID", de.Code())
	assert.Equal(t, CategoryValidation, de.Category())
}

func TestAsDomainError_PlainError(t *testing.T) {
	_, ok := AsDomainError(errors.New("boom"))
	assert.False(t, ok)

	_, ok = AsDomainError(nil)
	assert.False(t, ok)
}
