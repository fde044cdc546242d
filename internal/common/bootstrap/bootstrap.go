package bootstrap

import (
	"context"
	"fmt"
	"net/http"

	"github.com/jackc/pgx/v4/pgxpool"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	authhttp "github.com/AlibekovAA/seraas-authentication/internal/auth/http"
	authservice "github.com/AlibekovAA/seraas-authentication/internal/auth/service"
	"github.com/AlibekovAA/seraas-authentication/internal/common/clock"
	"github.com/AlibekovAA/seraas-authentication/internal/common/config"
	"github.com/AlibekovAA/seraas-authentication/internal/common/constants"
	commoncrypto "github.com/AlibekovAA/seraas-authentication/internal/common/crypto"
	"github.com/AlibekovAA/seraas-authentication/internal/common/db"
	commonhttp "github.com/AlibekovAA/seraas-authentication/internal/common/http"
	"github.com/AlibekovAA/seraas-authentication/internal/common/logger"
	recordhttp "github.com/AlibekovAA/seraas-authentication/internal/record/http"
	recordrepo "github.com/AlibekovAA/seraas-authentication/internal/record/repository"
	recordservice "github.com/AlibekovAA/seraas-authentication/internal/record/service"
	userrepo "github.com/AlibekovAA/seraas-authentication/internal/user/repository"
)

type App struct {
	Log           *logger.Logger
	Config        config.AppConfig
	Pool          *pgxpool.Pool
	UserRepo      userrepo.Repository
	RecordRepo    recordrepo.Repository
	AuthService   *authservice.AuthService
	RecordService *recordservice.RecordService
}

func NewLogger(cfg config.AppConfig) (*logger.Logger, error) {
	return logger.New(cfg.LogDir, constants.ServiceName, cfg.LogLevel)
}

// NewApp connects to the database and wires repositories and services.
// Migrations run first when AutoMigrate is set.
func NewApp(ctx context.Context, cfg config.AppConfig, log *logger.Logger) (*App, error) {
	if cfg.AutoMigrate {
		if err := db.Migrate(ctx, log, cfg.DatabaseURL); err != nil {
			return nil, fmt.Errorf("failed to migrate database: %w", err)
		}
	}

	pool, err := db.NewPool(ctx, log, cfg.DatabaseURL, db.DefaultPoolConfig())
	if err != nil {
		return nil, err
	}

	return newApp(cfg, log, pool, userrepo.NewPgRepository(pool), recordrepo.NewPgRepository(pool)), nil
}

func newApp(cfg config.AppConfig, log *logger.Logger, pool *pgxpool.Pool, users userrepo.Repository, records recordrepo.Repository) *App {
	realClock := clock.NewRealClock()

	authService := authservice.NewAuthService(authservice.AuthServiceDeps{
		Repo:   users,
		Hasher: commoncrypto.NewBcryptHasher(commoncrypto.DefaultBcryptCost),
		Clock:  realClock,
		Log:    log,
	})

	recordService := recordservice.NewRecordService(
		recordservice.RecordServiceDeps{
			Records: records,
			Users:   users,
			Clock:   realClock,
			Log:     log,
		},
		recordservice.RecordServiceConfig{
			FlushSecretKey:     cfg.FlushSecretKey,
			RetentionWindow:    cfg.RetentionWindow,
			AllowCrossUserLoad: cfg.AllowCrossUserLoad,
		},
	)

	return &App{
		Log:           log,
		Config:        cfg,
		Pool:          pool,
		UserRepo:      users,
		RecordRepo:    records,
		AuthService:   authService,
		RecordService: recordService,
	}
}

// Handler builds the full HTTP surface of the service.
func (a *App) Handler() http.Handler {
	r := commonhttp.NewRouter(a.Log, commonhttp.RouterOptions{
		ServiceName:    constants.ServiceName,
		AllowedOrigins: a.Config.CORSOrigins,
	})

	r.Get("/health", commonhttp.HealthHandler(a.Log))
	if a.Pool != nil {
		r.Get("/ready", commonhttp.ReadinessHandler(a.Log, a.Pool))
	}
	r.Handle("/metrics", promhttp.Handler())

	authhttp.NewHandler(a.AuthService, a.Config.RequestTimeout, a.Log).Mount(r)
	recordhttp.NewHandler(a.RecordService, a.Config.RequestTimeout, a.Log).Mount(r)

	return r
}

func (a *App) Close() {
	if a.Pool != nil {
		a.Pool.Close()
	}
}
