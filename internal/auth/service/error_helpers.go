package service

import (
	"net/http"

	commonerrors "github.com/AlibekovAA/seraas-authentication/internal/common/errors"
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
