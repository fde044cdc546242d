package service_test

import (
	"context"
	"errors"
	"io"
	"time"

	"github.com/AlibekovAA/seraas-authentication/internal/common/logger"
	userdomain "github.com/AlibekovAA/seraas-authentication/internal/user/domain"
	userrepo "github.com/AlibekovAA/seraas-authentication/internal/user/repository"
)

type mockUserRepo struct {
	createFunc     func(ctx context.Context, user userdomain.User) (userdomain.User, error)
	findByNameFunc func(ctx context.Context, name string) (userdomain.User, error)
	touchFunc      func(ctx context.Context, id userdomain.ID, at time.Time) (userdomain.User, error)
	existsFunc     func(ctx context.Context, id userdomain.ID) (bool, error)
	deleteFunc     func(ctx context.Context, id userdomain.ID) error

	createCalls int
	touchCalls  int
}

func (m *mockUserRepo) Create(ctx context.Context, user userdomain.User) (userdomain.User, error) {
	m.createCalls++
	if m.createFunc != nil {
		return m.createFunc(ctx, user)
	}
	user.ID = "00000000-0000-0000-0000-000000000001"
	return user, nil
}

func (m *mockUserRepo) FindByName(ctx context.Context, name string) (userdomain.User, error) {
	if m.findByNameFunc != nil {
		return m.findByNameFunc(ctx, name)
	}
	return userdomain.User{}, userrepo.ErrUserNotFound
}

func (m *mockUserRepo) Touch(ctx context.Context, id userdomain.ID, at time.Time) (userdomain.User, error) {
	m.touchCalls++
	if m.touchFunc != nil {
		return m.touchFunc(ctx, id, at)
	}
	return userdomain.User{}, userrepo.ErrUserNotFound
}

func (m *mockUserRepo) Exists(ctx context.Context, id userdomain.ID) (bool, error) {
	if m.existsFunc != nil {
		return m.existsFunc(ctx, id)
	}
	return false, nil
}

func (m *mockUserRepo) Delete(ctx context.Context, id userdomain.ID) error {
	if m.deleteFunc != nil {
		return m.deleteFunc(ctx, id)
	}
	return nil
}

type mockHasher struct {
	hashFunc    func(password string) (string, error)
	compareFunc func(hash, password string) error

	hashCalls int
}

func (m *mockHasher) Hash(password string) (string, error) {
	m.hashCalls++
	if m.hashFunc != nil {
		return m.hashFunc(password)
	}
	return "hashed:" + password, nil
}

func (m *mockHasher) Compare(hash, password string) error {
	if m.compareFunc != nil {
		return m.compareFunc(hash, password)
	}
	if hash != "hashed:"+password {
		return errMismatch
	}
	return nil
}

var errMismatch = errors.New("hash mismatch")

func newTestLogger() *logger.Logger {
	return logger.NewWithWriter(io.Discard, "test", "error")
}
