package repository

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v4/pgxpool"

	"github.com/AlibekovAA/seraas-authentication/internal/common/constants"
	"github.com/AlibekovAA/seraas-authentication/internal/common/db"
	"github.com/AlibekovAA/seraas-authentication/internal/user/domain"
)

var (
	ErrUserNotFound          = errors.New("user not found")
	ErrUsernameAlreadyExists = errors.New("username already exists")
)

const usernameConstraint = "users_name_key"

type Repository interface {
	Create(ctx context.Context, user domain.User) (domain.User, error)
	FindByName(ctx context.Context, name string) (domain.User, error)
	Touch(ctx context.Context, id domain.ID, at time.Time) (domain.User, error)
	Exists(ctx context.Context, id domain.ID) (bool, error)
	Delete(ctx context.Context, id domain.ID) error
}

type PgRepository struct {
	pool *pgxpool.Pool
}

func NewPgRepository(pool *pgxpool.Pool) *PgRepository {
	return &PgRepository{pool: pool}
}

const userColumns = `id, name, password_hash, date_created, last_used`

// Create inserts the user and returns the stored row with its generated id.
// A name collision, including one lost in a concurrent race, yields
// ErrUsernameAlreadyExists.
func (r *PgRepository) Create(ctx context.Context, user domain.User) (domain.User, error) {
	ctx, cancel := context.WithTimeout(ctx, constants.DBQueryTimeout)
	defer cancel()

	start := time.Now()
	row := r.pool.QueryRow(
		ctx,
		`INSERT INTO users (name, password_hash, date_created, last_used)
		 VALUES ($1, $2, $3, $4)
		 RETURNING `+userColumns,
		user.Name,
		user.PasswordHash,
		user.DateCreated,
		user.LastUsed,
	)

	created, err := scanUser(row)
	if err != nil {
		if db.IsUniqueViolation(err, usernameConstraint) {
			db.MeasureQueryDuration("create user", start)
			return domain.User{}, ErrUsernameAlreadyExists
		}
		return domain.User{}, db.HandleExecError(err, "create user", start)
	}
	db.MeasureQueryDuration("create user", start)
	return created, nil
}

func (r *PgRepository) FindByName(ctx context.Context, name string) (domain.User, error) {
	ctx, cancel := context.WithTimeout(ctx, constants.DBQueryTimeout)
	defer cancel()

	start := time.Now()
	row := r.pool.QueryRow(ctx, `SELECT `+userColumns+` FROM users WHERE name = $1`, name)

	user, err := scanUser(row)
	if err := db.HandleQueryError(err, ErrUserNotFound, "find user by name", start); err != nil {
		return domain.User{}, err
	}
	return user, nil
}

// Touch sets last_used in a single statement and returns the updated row,
// so the existence check and the refresh cannot observe different states.
func (r *PgRepository) Touch(ctx context.Context, id domain.ID, at time.Time) (domain.User, error) {
	ctx, cancel := context.WithTimeout(ctx, constants.DBQueryTimeout)
	defer cancel()

	start := time.Now()
	row := r.pool.QueryRow(
		ctx,
		`UPDATE users SET last_used = $2 WHERE id = $1 RETURNING `+userColumns,
		string(id),
		at,
	)

	user, err := scanUser(row)
	if err := db.HandleQueryError(err, ErrUserNotFound, "touch user", start); err != nil {
		return domain.User{}, err
	}
	return user, nil
}

func (r *PgRepository) Exists(ctx context.Context, id domain.ID) (bool, error) {
	ctx, cancel := context.WithTimeout(ctx, constants.DBQueryTimeout)
	defer cancel()

	start := time.Now()
	var exists bool
	err := r.pool.QueryRow(ctx, `SELECT EXISTS(SELECT 1 FROM users WHERE id = $1)`, string(id)).Scan(&exists)
	if err := db.HandleExecError(err, "check user exists", start); err != nil {
		return false, err
	}
	return exists, nil
}

func (r *PgRepository) Delete(ctx context.Context, id domain.ID) error {
	ctx, cancel := context.WithTimeout(ctx, constants.DBQueryTimeout)
	defer cancel()

	start := time.Now()
	res, err := r.pool.Exec(ctx, `DELETE FROM users WHERE id = $1`, string(id))
	if err := db.HandleExecError(err, "delete user", start); err != nil {
		return err
	}
	if res.RowsAffected() == 0 {
		return ErrUserNotFound
	}
	return nil
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanUser(row rowScanner) (domain.User, error) {
	var user domain.User
	err := row.Scan(&user.ID, &user.Name, &user.PasswordHash, &user.DateCreated, &user.LastUsed)
	return user, err
}
