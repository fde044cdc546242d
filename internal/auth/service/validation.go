package service

import (
	"strings"
	"unicode/utf8"

	"github.com/AlibekovAA/seraas-authentication/internal/common/constants"
)

// validateCredentials reports the first broken rule: empty username, a
// username the store cannot hold, then empty password, then a password
// shorter than the minimum.
func validateCredentials(username, password string) error {
	if username == "" {
		return ErrUsernameEmpty
	}

	if strings.ContainsRune(username, 0) {
		return ErrUsernameInvalid
	}

	if password == "" {
		return ErrPasswordEmpty
	}

	if utf8.RuneCountInString(password) < constants.PasswordMinLength {
		return ErrPasswordTooShort
	}

	return nil
}
