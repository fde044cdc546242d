//go:build integration

package repository_test

import (
	"context"
	"encoding/json"
	"log"
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/AlibekovAA/seraas-authentication/internal/record/domain"
	"github.com/AlibekovAA/seraas-authentication/internal/record/repository"
	"github.com/AlibekovAA/seraas-authentication/internal/testutil"
	userdomain "github.com/AlibekovAA/seraas-authentication/internal/user/domain"
)

const (
	aliceID = userdomain.ID("6f1c2f7e-2b0a-4f57-9a43-3c1d64c2b8a1")
	bobID   = userdomain.ID("0b6a4c1e-93f4-4d8e-9d43-0e8e0c5d7f11")
)

var testDB *testutil.PostgresDB

func TestMain(m *testing.M) {
	ctx := context.Background()

	var err error
	testDB, err = testutil.StartPostgres(ctx)
	if err != nil {
		log.Fatalf("failed to start test database: %s", err)
	}

	code := m.Run()

	if err := testDB.Close(ctx); err != nil {
		log.Printf("failed to terminate postgres container: %s", err)
	}
	os.Exit(code)
}

func newRepo(t *testing.T) *repository.PgRepository {
	t.Helper()
	require.NoError(t, testDB.Reset(context.Background()))
	return repository.NewPgRepository(testDB.Pool)
}

func newRecord(userID userdomain.ID, name string, created time.Time) domain.Record {
	return domain.Record{
		UserID:                userID,
		FileName:              name,
		DateCreated:           created,
		EmotionsAvailable:     domain.DefaultEmotions(),
		PeriodicQueryInterval: domain.NotPeriodic,
		Output:                json.RawMessage(`{"emotions":{"neutral":0.6,"happy":0.4}}`),
	}
}

func TestPgRepository_CreateListFind(t *testing.T) {
	repo := newRepo(t)
	ctx := context.Background()
	now := time.Now().UTC().Truncate(time.Microsecond)

	first, err := repo.Create(ctx, newRecord(aliceID, "first.wav", now))
	require.NoError(t, err)
	second, err := repo.Create(ctx, newRecord(aliceID, "second.wav", now))
	require.NoError(t, err)
	_, err = repo.Create(ctx, newRecord(bobID, "bob.wav", now))
	require.NoError(t, err)

	ids, err := repo.ListIDsByUser(ctx, aliceID)
	require.NoError(t, err)
	assert.Equal(t, []domain.ID{first.ID, second.ID}, ids)

	found, err := repo.FindByID(ctx, first.ID)
	require.NoError(t, err)
	assert.Equal(t, aliceID, found.UserID)
	assert.Equal(t, "first.wav", found.FileName)
	assert.Equal(t, []string{domain.AllEmotions}, found.EmotionsAvailable)
	assert.Equal(t, domain.NotPeriodic, found.PeriodicQueryInterval)
	assert.JSONEq(t, `{"emotions":{"neutral":0.6,"happy":0.4}}`, string(found.Output))
	assert.True(t, found.DateCreated.Equal(now))
}

func TestPgRepository_OutputStoredVerbatim(t *testing.T) {
	repo := newRepo(t)
	ctx := context.Background()

	payloads := []string{
		`{"zeta": 1,  "alpha": {"b":2,"a":1}, "alpha": 3, "n": 1.50}`,
		`{"note":"nul \u0000 inside"}`,
	}
	for _, payload := range payloads {
		record := newRecord(aliceID, "raw.wav", time.Now().UTC())
		record.Output = json.RawMessage(payload)

		created, err := repo.Create(ctx, record)
		require.NoError(t, err, payload)

		found, err := repo.FindByID(ctx, created.ID)
		require.NoError(t, err, payload)
		assert.Equal(t, payload, string(found.Output))
	}
}

func TestPgRepository_ListEmpty(t *testing.T) {
	repo := newRepo(t)

	ids, err := repo.ListIDsByUser(context.Background(), aliceID)
	require.NoError(t, err)
	assert.NotNil(t, ids)
	assert.Empty(t, ids)
}

func TestPgRepository_FindMissing(t *testing.T) {
	repo := newRepo(t)

	_, err := repo.FindByID(context.Background(), domain.ID("a2b9f3c4-5d6e-4f70-8a91-b2c3d4e5f607"))
	assert.ErrorIs(t, err, repository.ErrRecordNotFound)
}

func TestPgRepository_DeleteCreatedBefore(t *testing.T) {
	repo := newRepo(t)
	ctx := context.Background()
	cutoff := time.Now().UTC().Truncate(time.Microsecond)

	_, err := repo.Create(ctx, newRecord(aliceID, "old.wav", cutoff.Add(-time.Minute)))
	require.NoError(t, err)
	boundary, err := repo.Create(ctx, newRecord(aliceID, "boundary.wav", cutoff))
	require.NoError(t, err)
	fresh, err := repo.Create(ctx, newRecord(bobID, "fresh.wav", cutoff.Add(time.Minute)))
	require.NoError(t, err)

	removed, err := repo.DeleteCreatedBefore(ctx, cutoff)
	require.NoError(t, err)
	assert.Equal(t, int64(1), removed)

	ids, err := repo.ListIDsByUser(ctx, aliceID)
	require.NoError(t, err)
	assert.Equal(t, []domain.ID{boundary.ID}, ids)

	_, err = repo.FindByID(ctx, fresh.ID)
	assert.NoError(t, err)
}
