package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/AlibekovAA/seraas-authentication/internal/common/bootstrap"
	"github.com/AlibekovAA/seraas-authentication/internal/common/config"
	"github.com/AlibekovAA/seraas-authentication/internal/common/constants"
	"github.com/AlibekovAA/seraas-authentication/internal/common/db"
	"github.com/AlibekovAA/seraas-authentication/internal/common/logger"
	"github.com/AlibekovAA/seraas-authentication/internal/common/schedule"
	srv "github.com/AlibekovAA/seraas-authentication/internal/common/server"
	"github.com/AlibekovAA/seraas-authentication/internal/record/cleanup"
)

func main() {
	var configPath string

	rootCmd := &cobra.Command{
		Use:          "authentication",
		Short:        "SERaaS authentication and usage-record service",
		SilenceUsage: true,
	}
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "optional config file, environment variables take precedence")

	serveCmd := &cobra.Command{
		Use:   "serve",
		Short: "serve the HTTP API",
		RunE: func(cmd *cobra.Command, args []string) error {
			return withApp(cmd.Context(), configPath, runServe)
		},
	}

	migrateCmd := &cobra.Command{
		Use:   "migrate",
		Short: "apply database migrations and exit",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, log, err := loadConfigAndLogger(configPath)
			if err != nil {
				return err
			}
			defer log.Close()
			return db.Migrate(cmd.Context(), log, cfg.DatabaseURL)
		},
	}

	flushCmd := &cobra.Command{
		Use:   "flush",
		Short: "remove usage records older than the retention window",
		RunE: func(cmd *cobra.Command, args []string) error {
			return withApp(cmd.Context(), configPath, func(ctx context.Context, app *bootstrap.App) error {
				removed, err := app.RecordService.Flush(ctx, app.Config.FlushSecretKey)
				if err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "removedCount: %d\n", removed)
				return nil
			})
		},
	}

	rootCmd.AddCommand(serveCmd, migrateCmd, flushCmd)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		os.Stderr.WriteString(fmt.Sprintf("%s: %v\n", constants.ServiceName, err))
		stop()
		os.Exit(1)
	}
}

func loadConfigAndLogger(configPath string) (config.AppConfig, *logger.Logger, error) {
	cfg, err := config.Load(configPath)
	if err != nil {
		return config.AppConfig{}, nil, fmt.Errorf("failed to load config: %w", err)
	}
	log, err := bootstrap.NewLogger(cfg)
	if err != nil {
		return config.AppConfig{}, nil, fmt.Errorf("failed to initialize logger: %w", err)
	}
	return cfg, log, nil
}

func withApp(ctx context.Context, configPath string, fn func(ctx context.Context, app *bootstrap.App) error) error {
	cfg, log, err := loadConfigAndLogger(configPath)
	if err != nil {
		return err
	}
	defer log.Close()

	app, err := bootstrap.NewApp(ctx, cfg, log)
	if err != nil {
		log.Errorf("failed to start: %v", err)
		return err
	}
	defer app.Close()

	return fn(ctx, app)
}

func runServe(ctx context.Context, app *bootstrap.App) error {
	log := app.Log

	workerCtx, cancelWorkers := context.WithCancel(ctx)
	defer cancelWorkers()

	db.StartPoolMetrics(workerCtx, app.Pool, constants.DBPoolMetricsInterval)

	var scheduler schedule.Scheduler
	if spec := app.Config.RetentionSchedule; spec != "" {
		cronScheduler := schedule.NewCronScheduler(log)
		if err := cronScheduler.AddJob(cleanup.NewRetentionJob(app.RecordService, log), spec); err != nil {
			return fmt.Errorf("failed to schedule retention sweep: %w", err)
		}
		cronScheduler.Start(workerCtx)
		scheduler = cronScheduler
	}

	server := srv.NewServer(srv.DefaultServerConfig(app.Config.HTTPPort), app.Handler())

	hooks := []srv.ShutdownHook{
		func(ctx context.Context) error {
			log.Infof("%s service: stopping background workers", constants.ServiceName)
			cancelWorkers()
			if scheduler != nil {
				scheduler.Stop()
			}
			return nil
		},
	}

	return srv.Run(ctx, server, log, constants.ServiceName, hooks)
}
