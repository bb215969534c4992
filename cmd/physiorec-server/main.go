package main

import (
	"context"
	crypto_rand "crypto/rand"
	"encoding/hex"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/physiorec/physiorec/internal/config"
	"github.com/physiorec/physiorec/internal/domain/clinical"
	"github.com/physiorec/physiorec/internal/domain/evolution"
	"github.com/physiorec/physiorec/internal/domain/identity"
	"github.com/physiorec/physiorec/internal/domain/patient"
	"github.com/physiorec/physiorec/internal/domain/professional"
	"github.com/physiorec/physiorec/internal/platform/auth"
	"github.com/physiorec/physiorec/internal/platform/db"
	"github.com/physiorec/physiorec/internal/platform/httpx"
	"github.com/physiorec/physiorec/internal/platform/middleware"
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "physiorec-server",
		Short: "Clinical records API server",
	}

	rootCmd.AddCommand(serveCmd())
	rootCmd.AddCommand(migrateCmd())

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

func migrateCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "migrate",
		Short: "Run database migrations",
	}

	upCmd := &cobra.Command{
		Use:   "up",
		Short: "Apply pending migrations",
		RunE: func(cmd *cobra.Command, args []string) error {
			dir, _ := cmd.Flags().GetString("dir")

			cfg, err := config.Load()
			if err != nil {
				return err
			}

			ctx := context.Background()
			pool, err := db.NewPool(ctx, cfg.DatabaseURL, cfg.DBMaxConns, cfg.DBMinConns)
			if err != nil {
				return err
			}
			defer pool.Close()

			migrator := db.NewMigrator(pool, dir)
			count, err := migrator.Up(ctx)
			if err != nil {
				return fmt.Errorf("migration failed: %w", err)
			}

			fmt.Printf("Applied %d migration(s) successfully.\n", count)
			return nil
		},
	}
	upCmd.Flags().String("dir", "./migrations", "Path to migrations directory")
	cmd.AddCommand(upCmd)

	statusCmd := &cobra.Command{
		Use:   "status",
		Short: "Show migration status",
		RunE: func(cmd *cobra.Command, args []string) error {
			dir, _ := cmd.Flags().GetString("dir")

			cfg, err := config.Load()
			if err != nil {
				return err
			}

			ctx := context.Background()
			pool, err := db.NewPool(ctx, cfg.DatabaseURL, cfg.DBMaxConns, cfg.DBMinConns)
			if err != nil {
				return err
			}
			defer pool.Close()

			migrator := db.NewMigrator(pool, dir)
			statuses, err := migrator.Status(ctx)
			if err != nil {
				return fmt.Errorf("failed to get migration status: %w", err)
			}

			fmt.Printf("%-10s %-40s %-10s %s\n", "VERSION", "NAME", "STATUS", "APPLIED AT")
			fmt.Println("---------- ---------------------------------------- ---------- --------------------")
			for _, s := range statuses {
				status := "pending"
				appliedAt := ""
				if s.Applied {
					status = "applied"
					if s.AppliedAt != nil {
						appliedAt = s.AppliedAt.Format("2006-01-02 15:04:05")
					}
				}
				fmt.Printf("%-10d %-40s %-10s %s\n", s.Version, s.Name, status, appliedAt)
			}
			return nil
		},
	}
	statusCmd.Flags().String("dir", "./migrations", "Path to migrations directory")
	cmd.AddCommand(statusCmd)

	return cmd
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
		logger.Fatal().Err(err).Msg("invalid config")
	}
	if cfg.TokenSecret == "" {
		buf := make([]byte, 32)
		if _, err := crypto_rand.Read(buf); err != nil {
			logger.Fatal().Err(err).Msg("failed to generate dev token secret")
		}
		cfg.TokenSecret = hex.EncodeToString(buf)
		logger.Warn().Msg("TOKEN_SECRET not set; using a random secret, tokens will not survive restarts")
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
	e.HTTPErrorHandler = httpx.ErrorHandler(logger)

	// Global middleware
	e.Use(middleware.Recovery(logger))
	e.Use(middleware.RequestID())
	e.Use(middleware.Logger(logger))
	e.Use(echomw.CORSWithConfig(echomw.CORSConfig{
		AllowOrigins: cfg.CORSOrigins,
		AllowMethods: []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodPatch, http.MethodDelete},
		AllowHeaders: []string{"Authorization", "Content-Type", "X-Request-ID"},
	}))

	// Health check
	e.GET("/health", db.HealthHandler(pool))

	// Services
	tokens := auth.NewTokenManager(cfg.TokenSecret, time.Duration(cfg.TokenTTLMinutes)*time.Minute)

	userRepo := identity.NewUserRepoPG(pool)
	identitySvc := identity.NewService(userRepo)

	gate := clinical.NewPatientGate(pool)
	clinicalSvc := clinical.NewService(gate,
		clinical.NewRepo(pool, clinical.HistoryTable),
		clinical.NewRepo(pool, clinical.ExaminationTable),
		clinical.NewRepo(pool, clinical.CompExamTable),
		clinical.NewRepo(pool, clinical.DiagnosisTable),
		clinical.NewRepo(pool, clinical.PrognosisTable),
		clinical.NewRepo(pool, clinical.PlanTable))

	evoRepo := evolution.NewRecordRepoPG(pool)
	professionalSvc := professional.NewService(professional.NewProfessionalRepoPG(pool), evoRepo)
	evolutionSvc := evolution.NewService(evoRepo, gate, professionalSvc)
	patientSvc := patient.NewService(patient.NewPatientRepoPG(pool), clinicalSvc, evoRepo)

	// Route groups. Every request runs inside one database transaction;
	// clinical routes additionally require a bearer token.
	session := db.SessionMiddleware(pool, logger)
	public := e.Group("", session)
	protected := e.Group("", session, auth.Middleware(tokens, identitySvc), middleware.Audit(logger))

	identity.NewHandler(identitySvc, tokens).RegisterRoutes(public, protected)
	patient.NewHandler(patientSvc).RegisterRoutes(protected)
	clinical.NewHandler(clinicalSvc).RegisterRoutes(protected)
	professional.NewHandler(professionalSvc).RegisterRoutes(protected)
	evolution.NewHandler(evolutionSvc).RegisterRoutes(protected)

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
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := e.Shutdown(shutdownCtx); err != nil {
		logger.Fatal().Err(err).Msg("server shutdown failed")
	}
	logger.Info().Msg("server stopped")
	return nil
}
