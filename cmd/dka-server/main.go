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

	"github.com/dka/dka/internal/config"
	"github.com/dka/dka/internal/domain/lab"
	"github.com/dka/dka/internal/domain/patient"
	"github.com/dka/dka/internal/domain/reference"
	"github.com/dka/dka/internal/domain/treatment"
	"github.com/dka/dka/internal/platform/auth"
	"github.com/dka/dka/internal/platform/db"
	"github.com/dka/dka/internal/platform/middleware"
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "dka-server",
		Short: "DKA ward data-entry API server",
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
		Short: "Start the API server",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServer()
		},
	}
}

// bootstrapSteps lists the managed tables in foreign-key order: the
// dimension catalogs first, then patients, then the fact tables that
// reference them.
func bootstrapSteps(pool *pgxpool.Pool) []db.Step {
	refRepo := reference.NewRepoPG(pool)
	patientRepo := patient.NewRepoPG(pool)
	labRepo := lab.NewRepoPG(pool)
	treatmentRepo := treatment.NewRepoPG(pool)

	return []db.Step{
		{
			Name:   "dimensions",
			Tables: []string{"dim_treatment_type", "dim_application_method"},
			Ensure: refRepo.EnsureTables,
			Seed:   refRepo.SeedDimensions,
		},
		{
			Name:   "patients",
			Tables: []string{"patients"},
			Ensure: patientRepo.EnsureTable,
		},
		{
			Name:   "lab_results",
			Tables: []string{"lab_results"},
			Ensure: labRepo.EnsureTable,
		},
		{
			Name:   "treatments",
			Tables: []string{"treatments"},
			Ensure: treatmentRepo.EnsureTable,
		},
	}
}

func connect(ctx context.Context) (*config.Config, *pgxpool.Pool, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, nil, err
	}
	pool, err := db.NewPool(ctx, cfg.DatabaseURL, cfg.DBMaxConns, cfg.DBMinConns)
	if err != nil {
		return nil, nil, err
	}
	return cfg, pool, nil
}

func migrateCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "migrate",
		Short: "Manage the database schema",
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "up",
		Short: "Create missing tables and load reference catalogs",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			_, pool, err := connect(ctx)
			if err != nil {
				return err
			}
			defer pool.Close()

			count, err := db.NewBootstrap(pool, bootstrapSteps(pool)).Up(ctx)
			if err != nil {
				return fmt.Errorf("migration failed: %w", err)
			}
			fmt.Printf("Applied %d step(s) successfully.\n", count)
			return nil
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "status",
		Short: "Show table status",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			_, pool, err := connect(ctx)
			if err != nil {
				return err
			}
			defer pool.Close()

			statuses, err := db.NewBootstrap(pool, bootstrapSteps(pool)).Status(ctx)
			if err != nil {
				return fmt.Errorf("failed to get schema status: %w", err)
			}

			fmt.Printf("%-30s %-10s %s\n", "TABLE", "PRESENT", "ROWS")
			fmt.Println("------------------------------ ---------- ----------")
			for _, s := range statuses {
				present := "missing"
				rows := ""
				if s.Present {
					present = "present"
					rows = fmt.Sprintf("%d", s.Rows)
				}
				fmt.Printf("%-30s %-10s %s\n", s.Table, present, rows)
			}
			return nil
		},
	})

	return cmd
}

func seedCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "seed",
		Short: "Re-apply the reference catalogs",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			_, pool, err := connect(ctx)
			if err != nil {
				return err
			}
			defer pool.Close()

			if err := db.NewBootstrap(pool, bootstrapSteps(pool)).SeedOnly(ctx); err != nil {
				return fmt.Errorf("seed failed: %w", err)
			}
			fmt.Println("Reference catalogs seeded.")
			return nil
		},
	}
}

func runServer() error {
	// Logger
	logger := zerolog.New(os.Stdout).With().Timestamp().Logger()
	if os.Getenv("ENV") == "development" {
		logger = zerolog.New(zerolog.ConsoleWriter{Out: os.Stdout}).With().Timestamp().Logger()
	}

	// Config
	cfg, err := config.Load()
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to load config")
	}
	if err := cfg.Validate(); err != nil {
		logger.Fatal().Err(err).Msg("invalid configuration")
	}

	// Database
	ctx := context.Background()
	pool, err := db.NewPool(ctx, cfg.DatabaseURL, cfg.DBMaxConns, cfg.DBMinConns)
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to connect to database")
	}
	defer pool.Close()
	logger.Info().Msg("connected to database")

	// Echo server
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true

	// Global middleware
	e.Use(middleware.Recovery(logger))
	e.Use(middleware.RequestID())
	e.Use(middleware.Logger(logger))
	e.Use(middleware.RequestTimeout(time.Duration(cfg.RequestTimeoutSec) * time.Second))
	e.Use(echomw.CORSWithConfig(echomw.CORSConfig{
		AllowOrigins: cfg.CORSOrigins,
		AllowMethods: []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodDelete},
		AllowHeaders: []string{"Authorization", "Content-Type", "X-Request-ID"},
	}))

	// Auth middleware
	if cfg.ResolvedAuthMode() == "development" {
		e.Use(auth.DevAuthMiddleware())
	} else {
		e.Use(auth.JWTMiddleware([]byte(cfg.AuthSigningKey)))
	}

	// Health check
	e.GET("/health", db.HealthHandler(pool))

	// API group
	apiV1 := e.Group("/api/v1")

	// Patient domain
	patientRepo := patient.NewRepoPG(pool)
	patientSvc := patient.NewService(patientRepo)
	patient.NewHandler(patientSvc).RegisterRoutes(apiV1)

	// Lab domain
	labRepo := lab.NewRepoPG(pool)
	labSvc := lab.NewService(labRepo)
	lab.NewHandler(labSvc).RegisterRoutes(apiV1)

	// Treatment domain
	treatmentRepo := treatment.NewRepoPG(pool)
	treatmentSvc := treatment.NewService(treatmentRepo)
	treatment.NewHandler(treatmentSvc).RegisterRoutes(apiV1)

	// Reference catalogs
	refRepo := reference.NewRepoPG(pool)
	refSvc := reference.NewService(refRepo)
	reference.NewHandler(refSvc).RegisterRoutes(apiV1)

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
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := e.Shutdown(shutdownCtx); err != nil {
		logger.Fatal().Err(err).Msg("server shutdown failed")
	}
	logger.Info().Msg("server stopped")
	return nil
}
