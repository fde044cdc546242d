//go:build integration

package testutil

import (
	"context"
	"fmt"
	"io"

	"github.com/jackc/pgx/v4/pgxpool"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"

	"github.com/AlibekovAA/seraas-authentication/internal/common/db"
	"github.com/AlibekovAA/seraas-authentication/internal/common/logger"
)

// PostgresDB is a throwaway PostgreSQL container with the schema applied.
type PostgresDB struct {
	Pool      *pgxpool.Pool
	container *postgres.PostgresContainer
}

func StartPostgres(ctx context.Context) (*PostgresDB, error) {
	container, err := postgres.Run(ctx,
		"postgres:14-alpine",
		postgres.WithDatabase("testdb"),
		postgres.WithUsername("user"),
		postgres.WithPassword("password"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").WithOccurrence(2),
		),
	)
	if err != nil {
		return nil, fmt.Errorf("start postgres container: %w", err)
	}

	connStr, err := container.ConnectionString(ctx, "sslmode=disable")
	if err != nil {
		_ = container.Terminate(ctx)
		return nil, fmt.Errorf("connection string: %w", err)
	}

	log := logger.NewWithWriter(io.Discard, "test", "error")
	if err := db.Migrate(ctx, log, connStr); err != nil {
		_ = container.Terminate(ctx)
		return nil, err
	}

	pool, err := pgxpool.Connect(ctx, connStr)
	if err != nil {
		_ = container.Terminate(ctx)
		return nil, fmt.Errorf("connect to test database: %w", err)
	}

	return &PostgresDB{Pool: pool, container: container}, nil
}

// Reset empties every table between tests.
func (p *PostgresDB) Reset(ctx context.Context) error {
	_, err := p.Pool.Exec(ctx, "TRUNCATE users, records")
	return err
}

func (p *PostgresDB) Close(ctx context.Context) error {
	p.Pool.Close()
	return p.container.Terminate(ctx)
}
