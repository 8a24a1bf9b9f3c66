package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/covadmin/covadmin/internal/config"
	"github.com/covadmin/covadmin/internal/domain/beneficiary"
	"github.com/covadmin/covadmin/internal/domain/billing"
	"github.com/covadmin/covadmin/internal/domain/dashboard"
	"github.com/covadmin/covadmin/internal/domain/employee"
	"github.com/covadmin/covadmin/internal/domain/medservice"
	"github.com/covadmin/covadmin/internal/domain/policy"
	"github.com/covadmin/covadmin/internal/platform/auth"
	"github.com/covadmin/covadmin/internal/platform/db"
	"github.com/covadmin/covadmin/internal/platform/metrics"
	"github.com/covadmin/covadmin/internal/platform/middleware"
	"github.com/covadmin/covadmin/internal/platform/reporting"
	"github.com/covadmin/covadmin/internal/platform/sandbox"
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "covadmin-server",
		Short: "Coverage administration API server",
	}

	rootCmd.AddCommand(serveCmd())
	rootCmd.AddCommand(migrateCmd())
	rootCmd.AddCommand(seedCmd())

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func serveCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Start the HTTP API server",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServer()
		},
	}
}

func migrateCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "migrate",
		Short: "Manage database migrations",
	}

	upCmd := &cobra.Command{
		Use:   "up",
		Short: "Apply pending migrations",
		RunE: func(cmd *cobra.Command, args []string) error {
			dir, _ := cmd.Flags().GetString("dir")

			pool, cleanup, err := openPool()
			if err != nil {
				return err
			}
			defer cleanup()

			count, err := db.NewMigrator(pool, dir).Up(context.Background())
			if err != nil {
				return fmt.Errorf("migration failed: %w", err)
			}
			fmt.Printf("Applied %d migration(s).\n", count)
			return nil
		},
	}
	upCmd.Flags().String("dir", "./migrations", "path to migrations directory")
	cmd.AddCommand(upCmd)

	statusCmd := &cobra.Command{
		Use:   "status",
		Short: "Show migration status",
		RunE: func(cmd *cobra.Command, args []string) error {
			dir, _ := cmd.Flags().GetString("dir")

			pool, cleanup, err := openPool()
			if err != nil {
				return err
			}
			defer cleanup()

			statuses, err := db.NewMigrator(pool, dir).Status(context.Background())
			if err != nil {
				return fmt.Errorf("failed to read migration status: %w", err)
			}

			fmt.Printf("%-10s %-40s %-10s %s\n", "VERSION", "NAME", "STATUS", "APPLIED AT")
			for _, s := range statuses {
				state := "pending"
				appliedAt := ""
				if s.Applied {
					state = "applied"
					if s.AppliedAt != nil {
						appliedAt = s.AppliedAt.Format("2006-01-02 15:04:05")
					}
				}
				fmt.Printf("%-10d %-40s %-10s %s\n", s.Version, s.Name, state, appliedAt)
			}
			return nil
		},
	}
	statusCmd.Flags().String("dir", "./migrations", "path to migrations directory")
	cmd.AddCommand(statusCmd)

	return cmd
}

func seedCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "seed",
		Short: "Reset all collections to the sample dataset",
		RunE: func(cmd *cobra.Command, args []string) error {
			logger := newLogger(os.Getenv("ENV"))

			pool, cleanup, err := openPool()
			if err != nil {
				return err
			}
			defer cleanup()

			seeder := sandbox.NewSeeder(sandbox.Collections{
				Employees:     employee.NewPGRepository(pool),
				Beneficiaries: beneficiary.NewPGRepository(pool),
				Services:      medservice.NewPGRepository(pool),
				Billing:       billing.NewPGRepository(pool),
				Policies:      policy.NewPGRepository(pool),
			}, logger)

			result, err := seeder.Seed(context.Background())
			if err != nil {
				return err
			}
			fmt.Printf("Seeded %d employees, %d beneficiaries, %d services, %d billing records, %d policies.\n",
				result.Employees, result.Beneficiaries, result.Services, result.Billing, result.Policies)
			return nil
		},
	}
}

func openPool() (pool *pgxpool.Pool, cleanup func(), err error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, nil, err
	}
	pool, err = db.NewPool(context.Background(), cfg.DatabaseURL, cfg.DBMaxConns, cfg.DBMinConns)
	if err != nil {
		return nil, nil, err
	}
	return pool, pool.Close, nil
}

func newLogger(env string) zerolog.Logger {
	if env == "development" {
		return zerolog.New(zerolog.ConsoleWriter{Out: os.Stdout}).With().Timestamp().Logger()
	}
	return zerolog.New(os.Stdout).With().Timestamp().Logger()
}

func runServer() error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	logger := newLogger(cfg.Env)

	pool, err := db.NewPool(context.Background(), cfg.DatabaseURL, cfg.DBMaxConns, cfg.DBMinConns)
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to connect to database")
	}
	defer pool.Close()
	logger.Info().Msg("connected to database")

	e := echo.New()
	e.HideBanner = true
	e.HidePort = true

	collector := metrics.NewCollector()

	e.Use(middleware.Recovery(logger))
	e.Use(middleware.RequestID())
	e.Use(middleware.Logger(logger))
	e.Use(collector.Middleware())
	e.Use(echomw.CORSWithConfig(echomw.CORSConfig{
		AllowOrigins: cfg.CORSOrigins,
		AllowMethods: []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodDelete},
		AllowHeaders: []string{"Authorization", "Content-Type", "X-Request-ID"},
	}))

	employeeRepo := employee.NewPGRepository(pool)
	beneficiaryRepo := beneficiary.NewPGRepository(pool)
	serviceRepo := medservice.NewPGRepository(pool)
	billingRepo := billing.NewPGRepository(pool)
	policyRepo := policy.NewPGRepository(pool)

	employeeSvc := employee.NewService(employeeRepo)
	beneficiarySvc := beneficiary.NewService(beneficiaryRepo, employeeRepo)
	serviceSvc := medservice.NewService(serviceRepo)
	billingSvc := billing.NewService(billingRepo)
	policySvc := policy.NewService(policyRepo)
	dashboardSvc := dashboard.NewService(employeeSvc, beneficiarySvc, serviceSvc, billingSvc, logger)

	seeder := sandbox.NewSeeder(sandbox.Collections{
		Employees:     employeeRepo,
		Beneficiaries: beneficiaryRepo,
		Services:      serviceRepo,
		Billing:       billingRepo,
		Policies:      policyRepo,
	}, logger)

	api := e.Group("/api")
	if cfg.AuthEnabled() {
		api.Use(auth.Middleware(cfg.AuthSecret))
		logger.Info().Msg("bearer token authentication enabled")
	}

	employee.NewHandler(employeeSvc).RegisterRoutes(api)
	beneficiary.NewHandler(beneficiarySvc, logger).RegisterRoutes(api)
	medservice.NewHandler(serviceSvc).RegisterRoutes(api)
	billing.NewHandler(billingSvc).RegisterRoutes(api)
	policy.NewHandler(policySvc).RegisterRoutes(api)
	dashboard.NewHandler(dashboardSvc).RegisterRoutes(api)
	reporting.NewHandler(billingSvc).RegisterRoutes(api)
	sandbox.NewHandler(seeder).RegisterRoutes(api)

	e.GET("/api/health", db.HealthHandler(pool))
	e.GET("/metrics", collector.Handler())

	// Graceful shutdown
	go func() {
		addr := ":" + cfg.Port
		logger.Info().Str("addr", addr).Msg("starting server")
		if err := e.Start(addr); err != nil && err != http.ErrServerClosed {
			logger.Fatal().Err(err).Msg("server error")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info().Msg("shutting down server")
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := e.Shutdown(ctx); err != nil {
		logger.Fatal().Err(err).Msg("server shutdown failed")
	}
	logger.Info().Msg("server stopped")
	return nil
}
