package repository

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v4/pgxpool"

	"github.com/AlibekovAA/seraas-authentication/internal/common/constants"
	"github.com/AlibekovAA/seraas-authentication/internal/common/db"
	"github.com/AlibekovAA/seraas-authentication/internal/record/domain"
	userdomain "github.com/AlibekovAA/seraas-authentication/internal/user/domain"
)

var ErrRecordNotFound = errors.New("record not found")

type Repository interface {
	Create(ctx context.Context, record domain.Record) (domain.Record, error)
	ListIDsByUser(ctx context.Context, userID userdomain.ID) ([]domain.ID, error)
	FindByID(ctx context.Context, id domain.ID) (domain.Record, error)
	DeleteCreatedBefore(ctx context.Context, cutoff time.Time) (int64, error)
}

type PgRepository struct {
	pool *pgxpool.Pool
}

func NewPgRepository(pool *pgxpool.Pool) *PgRepository {
	return &PgRepository{pool: pool}
}

func (r *PgRepository) Create(ctx context.Context, record domain.Record) (domain.Record, error) {
	ctx, cancel := context.WithTimeout(ctx, constants.DBQueryTimeout)
	defer cancel()

	start := time.Now()
	row := r.pool.QueryRow(
		ctx,
		`INSERT INTO records (user_id, file_name, date_created, emotions_available, periodic_query_interval, output)
		 VALUES ($1, $2, $3, $4, $5, $6)
		 RETURNING id, user_id, file_name, date_created, emotions_available, periodic_query_interval`,
		string(record.UserID),
		record.FileName,
		record.DateCreated,
		record.EmotionsAvailable,
		record.PeriodicQueryInterval,
		[]byte(record.Output),
	)

	var created domain.Record
	err := row.Scan(
		&created.ID,
		&created.UserID,
		&created.FileName,
		&created.DateCreated,
		&created.EmotionsAvailable,
		&created.PeriodicQueryInterval,
	)
	if err := db.HandleExecError(err, "create record", start); err != nil {
		return domain.Record{}, err
	}
	created.Output = record.Output
	return created, nil
}

// ListIDsByUser returns record ids in insertion order. Outputs never leave
// the database here.
func (r *PgRepository) ListIDsByUser(ctx context.Context, userID userdomain.ID) ([]domain.ID, error) {
	ctx, cancel := context.WithTimeout(ctx, constants.DBQueryTimeout)
	defer cancel()

	start := time.Now()
	rows, err := r.pool.Query(ctx, `SELECT id FROM records WHERE user_id = $1 ORDER BY seq ASC`, string(userID))
	if err := db.HandleExecError(err, "list record ids", start); err != nil {
		return nil, err
	}
	defer rows.Close()

	ids := make([]domain.ID, 0)
	for rows.Next() {
		var id domain.ID
		if err := rows.Scan(&id); err != nil {
			return nil, db.HandleExecError(err, "scan record id", start)
		}
		ids = append(ids, id)
	}
	if err := rows.Err(); err != nil {
		return nil, db.HandleExecError(err, "iterate record ids", start)
	}
	return ids, nil
}

func (r *PgRepository) FindByID(ctx context.Context, id domain.ID) (domain.Record, error) {
	ctx, cancel := context.WithTimeout(ctx, constants.DBQueryTimeout)
	defer cancel()

	start := time.Now()
	row := r.pool.QueryRow(
		ctx,
		`SELECT id, user_id, file_name, date_created, emotions_available, periodic_query_interval, output
		 FROM records WHERE id = $1`,
		string(id),
	)

	var (
		record domain.Record
		output []byte
	)
	err := row.Scan(
		&record.ID,
		&record.UserID,
		&record.FileName,
		&record.DateCreated,
		&record.EmotionsAvailable,
		&record.PeriodicQueryInterval,
		&output,
	)
	if err := db.HandleQueryError(err, ErrRecordNotFound, "find record by id", start); err != nil {
		return domain.Record{}, err
	}
	record.Output = output
	return record, nil
}

// DeleteCreatedBefore removes every record with date_created strictly before
// cutoff and reports how many went.
func (r *PgRepository) DeleteCreatedBefore(ctx context.Context, cutoff time.Time) (int64, error) {
	ctx, cancel := context.WithTimeout(ctx, constants.DBQueryTimeout)
	defer cancel()

	start := time.Now()
	res, err := r.pool.Exec(ctx, `DELETE FROM records WHERE date_created < $1`, cutoff)
	if err := db.HandleExecError(err, "delete expired records", start); err != nil {
		return 0, err
	}
	return res.RowsAffected(), nil
}
