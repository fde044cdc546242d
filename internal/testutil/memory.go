// Package testutil holds in-memory stores that satisfy the repository
// interfaces, for service and handler tests that do not need PostgreSQL.
package testutil

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"

	recorddomain "github.com/AlibekovAA/seraas-authentication/internal/record/domain"
	recordrepo "github.com/AlibekovAA/seraas-authentication/internal/record/repository"
	userdomain "github.com/AlibekovAA/seraas-authentication/internal/user/domain"
	userrepo "github.com/AlibekovAA/seraas-authentication/internal/user/repository"
)

type UserStore struct {
	mu    sync.Mutex
	users map[userdomain.ID]userdomain.User
}

func NewUserStore() *UserStore {
	return &UserStore{users: make(map[userdomain.ID]userdomain.User)}
}

func (s *UserStore) Create(ctx context.Context, user userdomain.User) (userdomain.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, existing := range s.users {
		if existing.Name == user.Name {
			return userdomain.User{}, userrepo.ErrUsernameAlreadyExists
		}
	}
	user.ID = userdomain.ID(uuid.NewString())
	s.users[user.ID] = user
	return user, nil
}

func (s *UserStore) FindByName(ctx context.Context, name string) (userdomain.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, u := range s.users {
		if u.Name == name {
			return u, nil
		}
	}
	return userdomain.User{}, userrepo.ErrUserNotFound
}

func (s *UserStore) Touch(ctx context.Context, id userdomain.ID, at time.Time) (userdomain.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	u, ok := s.users[id]
	if !ok {
		return userdomain.User{}, userrepo.ErrUserNotFound
	}
	u.LastUsed = at
	s.users[id] = u
	return u, nil
}

func (s *UserStore) Exists(ctx context.Context, id userdomain.ID) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	_, ok := s.users[id]
	return ok, nil
}

func (s *UserStore) Delete(ctx context.Context, id userdomain.ID) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.users[id]; !ok {
		return userrepo.ErrUserNotFound
	}
	delete(s.users, id)
	return nil
}

func (s *UserStore) Get(id userdomain.ID) (userdomain.User, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	u, ok := s.users[id]
	return u, ok
}

func (s *UserStore) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.users)
}

// RecordStore keeps records in insertion order.
type RecordStore struct {
	mu      sync.Mutex
	records []recorddomain.Record
}

func NewRecordStore() *RecordStore {
	return &RecordStore{}
}

func (s *RecordStore) Create(ctx context.Context, record recorddomain.Record) (recorddomain.Record, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	record.ID = recorddomain.ID(uuid.NewString())
	s.records = append(s.records, record)
	return record, nil
}

func (s *RecordStore) ListIDsByUser(ctx context.Context, userID userdomain.ID) ([]recorddomain.ID, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	ids := make([]recorddomain.ID, 0)
	for _, r := range s.records {
		if r.UserID == userID {
			ids = append(ids, r.ID)
		}
	}
	return ids, nil
}

func (s *RecordStore) FindByID(ctx context.Context, id recorddomain.ID) (recorddomain.Record, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, r := range s.records {
		if r.ID == id {
			return r, nil
		}
	}
	return recorddomain.Record{}, recordrepo.ErrRecordNotFound
}

func (s *RecordStore) DeleteCreatedBefore(ctx context.Context, cutoff time.Time) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	kept := s.records[:0]
	var removed int64
	for _, r := range s.records {
		if r.DateCreated.Before(cutoff) {
			removed++
			continue
		}
		kept = append(kept, r)
	}
	s.records = kept
	return removed, nil
}

func (s *RecordStore) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.records)
}
