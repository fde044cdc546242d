package service

import (
	"net/http"

	commonerrors "github.com/AlibekovAA/seraas-authentication/internal/common/errors"
)

var (
	ErrUsernameEmpty = commonerrors.NewDomainError(
		"USERNAME_REQUIRED",
		commonerrors.CategoryValidation,
		http.StatusBadRequest,
		"username is required",
	)

	ErrUsernameInvalid = commonerrors.NewDomainError(
		"USERNAME_INVALID",
		commonerrors.CategoryValidation,
		http.StatusBadRequest,
		"username contains invalid characters",
	)

	ErrPasswordEmpty = commonerrors.NewDomainError(
		"PASSWORD_REQUIRED",
		commonerrors.CategoryValidation,
		http.StatusBadRequest,
		"password is required",
	)

	ErrPasswordTooShort = commonerrors.NewDomainError(
		"PASSWORD_TOO_SHORT",
		commonerrors.CategoryValidation,
		http.StatusBadRequest,
		"password must be at least 7 characters",
	)

	ErrUsernameTaken = commonerrors.NewDomainError(
		"USERNAME_TAKEN",
		commonerrors.CategoryConflict,
		http.StatusConflict,
		"username already in use",
	)

	// ErrInvalidCredentials covers every login failure so callers cannot
	// tell a missing account from a wrong password.
	ErrInvalidCredentials = commonerrors.NewDomainError(
		"INVALID_CREDENTIALS",
		commonerrors.CategoryNotFound,
		http.StatusNotFound,
		"no user found with credentials",
	)

	ErrInvalidUserID = commonerrors.NewDomainError(
		"INVALID_USER_ID",
		commonerrors.CategoryValidation,
		http.StatusBadRequest,
		"invalid user id",
	)
)
