package db

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v4/pgxpool"

	"github.com/AlibekovAA/seraas-authentication/internal/common/constants"
	"github.com/AlibekovAA/seraas-authentication/internal/common/logger"
)

type PoolConfig struct {
	MaxConns       int32
	MinConns       int32
	MaxAttempts    int
	InitialDelay   time.Duration
	MaxDelay       time.Duration
	ConnectTimeout time.Duration
}

func DefaultPoolConfig() PoolConfig {
	return PoolConfig{
		MaxConns:       constants.DBPoolMaxOpenConns,
		MinConns:       constants.DBPoolMinOpenConns,
		MaxAttempts:    constants.DBPoolMaxAttempts,
		InitialDelay:   constants.DBPoolRetryDelay,
		MaxDelay:       8 * time.Second,
		ConnectTimeout: constants.DBPoolConnectTimeout,
	}
}

// NewPool connects to PostgreSQL, backing off between attempts while the
// database comes up. It gives up after MaxAttempts or when ctx is done.
func NewPool(ctx context.Context, log *logger.Logger, databaseURL string, pc PoolConfig) (*pgxpool.Pool, error) {
	cfg, err := pgxpool.ParseConfig(databaseURL)
	if err != nil {
		return nil, fmt.Errorf("failed to parse database url: %w", err)
	}

	cfg.MaxConns = pc.MaxConns
	cfg.MinConns = pc.MinConns
	cfg.MaxConnLifetime = constants.DBPoolConnMaxLifetime
	cfg.MaxConnIdleTime = constants.DBPoolConnMaxIdleTime
	cfg.HealthCheckPeriod = constants.DBPoolHealthCheck
	cfg.ConnConfig.ConnectTimeout = pc.ConnectTimeout
	cfg.ConnConfig.RuntimeParams = map[string]string{
		"application_name": "seraas-" + constants.ServiceName,
	}

	attempts := pc.MaxAttempts
	if attempts <= 0 {
		attempts = 1
	}
	delay := pc.InitialDelay

	var lastErr error
	for attempt := 1; attempt <= attempts; attempt++ {
		pool, err := pgxpool.ConnectConfig(ctx, cfg)
		if err == nil {
			log.Infof("database connection pool initialized: max=%d, min=%d", cfg.MaxConns, cfg.MinConns)
			return pool, nil
		}
		lastErr = err

		log.Warnf("failed to connect to database (attempt %d/%d): %v", attempt, attempts, err)
		if attempt == attempts {
			break
		}

		select {
		case <-ctx.Done():
			return nil, fmt.Errorf("database connect aborted: %w", ctx.Err())
		case <-time.After(delay):
		}

		delay *= 2
		if pc.MaxDelay > 0 && delay > pc.MaxDelay {
			delay = pc.MaxDelay
		}
	}

	return nil, fmt.Errorf("failed to connect to database after %d attempts: %w", attempts, lastErr)
}
