package validation

import (
	"github.com/google/uuid"

	commonerrors "github.com/AlibekovAA/seraas-authentication/internal/common/errors"
)

// ParseUUID checks that s is a well-formed identifier and returns it in the
// canonical lowercase hyphenated form the store expects.
func ParseUUID(s string) (string, error) {
	if s == "" {
		return "", commonerrors.ErrEmptyUUID
	}
	id, err := uuid.Parse(s)
	if err != nil {
		return "", commonerrors.ErrInvalidUUID.WithCause(err)
	}
	return id.String(), nil
}
