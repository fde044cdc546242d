package service_test

import (
	"context"
	"io"
	"time"

	"github.com/AlibekovAA/seraas-authentication/internal/common/logger"
	recorddomain "github.com/AlibekovAA/seraas-authentication/internal/record/domain"
	userdomain "github.com/AlibekovAA/seraas-authentication/internal/user/domain"
	userrepo "github.com/AlibekovAA/seraas-authentication/internal/user/repository"
)

type mockRecordRepo struct {
	createFunc              func(ctx context.Context, record recorddomain.Record) (recorddomain.Record, error)
	listIDsByUserFunc       func(ctx context.Context, userID userdomain.ID) ([]recorddomain.ID, error)
	findByIDFunc            func(ctx context.Context, id recorddomain.ID) (recorddomain.Record, error)
	deleteCreatedBeforeFunc func(ctx context.Context, cutoff time.Time) (int64, error)

	createCalls int
	deleteCalls int
}

func (m *mockRecordRepo) Create(ctx context.Context, record recorddomain.Record) (recorddomain.Record, error) {
	m.createCalls++
	if m.createFunc != nil {
		return m.createFunc(ctx, record)
	}
	record.ID = "a2b9f3c4-5d6e-4f70-8a91-b2c3d4e5f607"
	return record, nil
}

func (m *mockRecordRepo) ListIDsByUser(ctx context.Context, userID userdomain.ID) ([]recorddomain.ID, error) {
	if m.listIDsByUserFunc != nil {
		return m.listIDsByUserFunc(ctx, userID)
	}
	return []recorddomain.ID{}, nil
}

func (m *mockRecordRepo) FindByID(ctx context.Context, id recorddomain.ID) (recorddomain.Record, error) {
	if m.findByIDFunc != nil {
		return m.findByIDFunc(ctx, id)
	}
	return recorddomain.Record{}, nil
}

func (m *mockRecordRepo) DeleteCreatedBefore(ctx context.Context, cutoff time.Time) (int64, error) {
	m.deleteCalls++
	if m.deleteCreatedBeforeFunc != nil {
		return m.deleteCreatedBeforeFunc(ctx, cutoff)
	}
	return 0, nil
}

type mockUserToucher struct {
	touchFunc func(ctx context.Context, id userdomain.ID, at time.Time) (userdomain.User, error)

	touched []time.Time
}

func (m *mockUserToucher) Touch(ctx context.Context, id userdomain.ID, at time.Time) (userdomain.User, error) {
	if m.touchFunc != nil {
		return m.touchFunc(ctx, id, at)
	}
	if id != testUserID {
		return userdomain.User{}, userrepo.ErrUserNotFound
	}
	m.touched = append(m.touched, at)
	return userdomain.User{ID: id, LastUsed: at}, nil
}

func newTestLogger() *logger.Logger {
	return logger.NewWithWriter(io.Discard, "test", "error")
}
