package service

import (
	"net/http"

	commonerrors "github.com/AlibekovAA/seraas-authentication/internal/common/errors"
)

var (
	ErrInvalidUserID = commonerrors.NewDomainError(
		"INVALID_USER_ID",
		commonerrors.CategoryValidation,
		http.StatusBadRequest,
		"invalid user id",
	)

	ErrInvalidRecordID = commonerrors.NewDomainError(
		"INVALID_RECORD_ID",
		commonerrors.CategoryValidation,
		http.StatusBadRequest,
		"invalid query id",
	)

	ErrFileNameRequired = commonerrors.NewDomainError(
		"FILE_NAME_REQUIRED",
		commonerrors.CategoryValidation,
		http.StatusBadRequest,
		"fileName is required",
	)

	ErrFileNameInvalid = commonerrors.NewDomainError(
		"FILE_NAME_INVALID",
		commonerrors.CategoryValidation,
		http.StatusBadRequest,
		"fileName contains invalid characters",
	)

	ErrEmotionsInvalid = commonerrors.NewDomainError(
		"EMOTIONS_INVALID",
		commonerrors.CategoryValidation,
		http.StatusBadRequest,
		"emotionsAvailable contains invalid characters",
	)

	ErrQueryIntervalOutOfRange = commonerrors.NewDomainError(
		"PERIODIC_QUERY_OUT_OF_RANGE",
		commonerrors.CategoryValidation,
		http.StatusBadRequest,
		"periodicQueryInterval is out of range",
	)

	ErrOutputRequired = commonerrors.NewDomainError(
		"OUTPUT_REQUIRED",
		commonerrors.CategoryValidation,
		http.StatusBadRequest,
		"output is required",
	)

	ErrUserNotFound = commonerrors.NewDomainError(
		"USER_NOT_FOUND",
		commonerrors.CategoryNotFound,
		http.StatusNotFound,
		"no such user",
	)

	ErrRecordNotFound = commonerrors.NewDomainError(
		"RECORD_NOT_FOUND",
		commonerrors.CategoryNotFound,
		http.StatusNotFound,
		"no such record",
	)

	ErrInvalidFlushKey = commonerrors.NewDomainError(
		"INVALID_SECRET_KEY",
		commonerrors.CategoryForbidden,
		http.StatusForbidden,
		"invalid secret key",
	)
)

func newInternalError(code, message string, cause error) commonerrors.DomainError {
	err := commonerrors.NewDomainError(
		code,
		commonerrors.CategoryInternal,
		http.StatusInternalServerError,
		message,
	)
	if cause != nil {
		err = err.WithCause(cause)
	}
	return err
}
