package commonerrors

import (
	"errors"
	"net/http"
)

var (
	ErrMissingRequiredConfig = errors.New("missing required configuration value")
	ErrInvalidConfig         = errors.New("invalid configuration")
)

var (
	ErrEmptyUUID = NewDomainError(
		"EMPTY_UUID",
		CategoryValidation,
		http.StatusBadRequest,
		"uuid cannot be empty",
	)

	ErrInvalidUUID = NewDomainError(
		"INVALID_UUID",
		CategoryValidation,
		http.StatusBadRequest,
		"uuid is malformed",
	)
)
