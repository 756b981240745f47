package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
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

	"github.com/lepufeng/SDSC-5003-Hospital-Management-System/internal/config"
	"github.com/lepufeng/SDSC-5003-Hospital-Management-System/internal/domain/admin"
	"github.com/lepufeng/SDSC-5003-Hospital-Management-System/internal/domain/billing"
	"github.com/lepufeng/SDSC-5003-Hospital-Management-System/internal/domain/identity"
	"github.com/lepufeng/SDSC-5003-Hospital-Management-System/internal/domain/roster"
	"github.com/lepufeng/SDSC-5003-Hospital-Management-System/internal/domain/scheduling"
	"github.com/lepufeng/SDSC-5003-Hospital-Management-System/internal/domain/treatment"
	"github.com/lepufeng/SDSC-5003-Hospital-Management-System/internal/platform/db"
	"github.com/lepufeng/SDSC-5003-Hospital-Management-System/internal/platform/jobs"
	"github.com/lepufeng/SDSC-5003-Hospital-Management-System/internal/platform/middleware"
	"github.com/lepufeng/SDSC-5003-Hospital-Management-System/migrations"
)

func main() {
	if err := rootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func rootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:          "clinic-server",
		Short:        "Clinic records API server",
		SilenceUsage: true,
	}
	root.AddCommand(serveCmd())
	root.AddCommand(migrateCmd())
	root.AddCommand(statsCmd())
	return root
}

func serveCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Start the clinic API server",
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

	// migrate up
	upCmd := &cobra.Command{
		Use:   "up",
		Short: "Apply pending migrations",
		RunE: func(cmd *cobra.Command, args []string) error {
			target, _ := cmd.Flags().GetInt("to")

			cfg, pool, err := connect(cmd.Context())
			if err != nil {
				return err
			}
			defer pool.Close()

			fmt.Fprintf(cmd.OutOrStdout(), "Running migrations on schema: %s\n", cfg.DBSchema)
			count, err := db.NewMigrator(pool, migrations.FS).UpTo(cmd.Context(), cfg.DBSchema, target)
			if err != nil {
				return fmt.Errorf("migration failed: %w", err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Applied %d migration(s) successfully.\n", count)
			return nil
		},
	}
	upCmd.Flags().Int("to", 0, "Stop after this migration version (0 applies all)")
	cmd.AddCommand(upCmd)

	// migrate status
	cmd.AddCommand(&cobra.Command{
		Use:   "status",
		Short: "Show migration status",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, pool, err := connect(cmd.Context())
			if err != nil {
				return err
			}
			defer pool.Close()

			statuses, err := db.NewMigrator(pool, migrations.FS).Status(cmd.Context(), cfg.DBSchema)
			if err != nil {
				return fmt.Errorf("failed to get migration status: %w", err)
			}
			printStatus(cmd, cfg.DBSchema, statuses)
			return nil
		},
	})

	return cmd
}

func printStatus(cmd *cobra.Command, schema string, statuses []db.MigrationStatus) {
	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "Migration status for schema: %s\n", schema)
	fmt.Fprintf(out, "%-10s %-40s %-10s %s\n", "VERSION", "NAME", "STATUS", "APPLIED AT")
	fmt.Fprintln(out, "---------- ---------------------------------------- ---------- --------------------")
	for _, s := range statuses {
		status := "pending"
		appliedAt := ""
		if s.Applied {
			status = "applied"
			if s.AppliedAt != nil {
				appliedAt = s.AppliedAt.Format("2006-01-02 15:04:05")
			}
		}
		fmt.Fprintf(out, "%-10d %-40s %-10s %s\n", s.Version, s.Name, status, appliedAt)
	}
}

func statsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "stats",
		Short: "Print record counts and today's appointments",
		RunE: func(cmd *cobra.Command, args []string) error {
			_, pool, err := connect(cmd.Context())
			if err != nil {
				return err
			}
			defer pool.Close()

			census, err := admin.NewService(admin.NewDashboardRepoPG(pool)).Census(cmd.Context())
			if err != nil {
				return err
			}
			enc := json.NewEncoder(cmd.OutOrStdout())
			enc.SetIndent("", "  ")
			return enc.Encode(census)
		},
	}
}

// loadConfig reads and validates the environment configuration.
func loadConfig() (*config.Config, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// connect loads the configuration and opens the pool it names.
func connect(ctx context.Context) (*config.Config, *pgxpool.Pool, error) {
	if ctx == nil {
		ctx = context.Background()
	}
	cfg, err := loadConfig()
	if err != nil {
		return nil, nil, err
	}
	pool, err := db.NewPool(ctx, cfg.DatabaseURL, cfg.DBSchema, cfg.DBMaxConns, cfg.DBMinConns)
	if err != nil {
		return nil, nil, err
	}
	return cfg, pool, nil
}

func newLogger(cfg *config.Config) zerolog.Logger {
	var w io.Writer = os.Stdout
	if cfg.IsDev() {
		w = zerolog.ConsoleWriter{Out: os.Stdout, TimeFormat: time.Kitchen}
	}
	return zerolog.New(w).Level(cfg.Level()).With().Timestamp().Logger()
}

func runServer() error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	logger := newLogger(cfg)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if cfg.AutoMigrate {
		if err := migrate(ctx, cfg, logger); err != nil {
			return fmt.Errorf("auto-migrate: %w", err)
		}
	}
	pool, err := db.NewPool(ctx, cfg.DatabaseURL, cfg.DBSchema, cfg.DBMaxConns, cfg.DBMinConns)
	if err != nil {
		return err
	}
	defer pool.Close()
	logger.Info().Str("schema", cfg.DBSchema).Int32("max_conns", cfg.DBMaxConns).Msg("database pool ready")

	e, dashboard := newServer(cfg, pool, logger)

	scheduler, err := jobs.NewScheduler(cfg.CensusCron, dashboard, logger)
	if err != nil {
		return err
	}
	scheduler.Start()

	served := make(chan error, 1)
	go func() {
		logger.Info().Str("port", cfg.Port).Str("env", cfg.Env).Msg("clinic api listening")
		served <- e.Start(":" + cfg.Port)
	}()

	select {
	case err := <-served:
		if !errors.Is(err, http.ErrServerClosed) {
			scheduler.Stop(context.Background())
			return fmt.Errorf("listen: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	logger.Info().Msg("signal received, draining")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	scheduler.Stop(shutdownCtx)
	if err := e.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}
	logger.Info().Msg("clinic api stopped")
	return nil
}

// migrate applies the embedded migrations on a short-lived pool so the
// serving pool only ever sees a migrated schema.
func migrate(ctx context.Context, cfg *config.Config, logger zerolog.Logger) error {
	pool, err := db.NewPool(ctx, cfg.DatabaseURL, "public", 2, 0)
	if err != nil {
		return err
	}
	defer pool.Close()

	n, err := db.NewMigrator(pool, migrations.FS).Up(ctx, cfg.DBSchema)
	if err != nil {
		return err
	}
	logger.Info().Int("applied", n).Str("schema", cfg.DBSchema).Msg("schema up to date")
	return nil
}

// newServer builds the HTTP surface over pool and returns it with the
// dashboard service the census job reads.
func newServer(cfg *config.Config, pool *pgxpool.Pool, logger zerolog.Logger) (*echo.Echo, *admin.Service) {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true

	// Global middleware
	e.Use(middleware.Recovery(logger))
	e.Use(middleware.RequestID())
	e.Use(middleware.Logger(logger))
	e.Use(middleware.SecurityHeaders())
	e.Use(middleware.BodyLimit(cfg.BodyLimit))
	e.Use(echomw.CORSWithConfig(echomw.CORSConfig{
		AllowOrigins: cfg.CORSOrigins,
		AllowMethods: []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodDelete},
		AllowHeaders: []string{echo.HeaderContentType, middleware.RequestIDHeader},
	}))

	// Health
	e.GET("/health", db.LivenessHandler())
	e.GET("/health/db", db.HealthHandler(pool, cfg.DBSchema))

	// Every API request holds one pooled connection for its whole lifetime.
	// The session is attached per route so unmatched paths never take one.
	session := db.SessionMiddleware(pool)
	api := e.Group("")
	adminGroup := e.Group("/admin")

	// Patients and doctors
	people := identity.NewService(identity.NewPatientRepoPG(pool), identity.NewDoctorRepoPG(pool))
	peopleHandler := identity.NewHandler(people)
	peopleHandler.RegisterRoutes(api, session)
	peopleHandler.RegisterAdminRoutes(adminGroup, session)

	// Appointments
	visits := scheduling.NewService(scheduling.NewAppointmentRepoPG(pool), people)
	visitHandler := scheduling.NewHandler(visits)
	visitHandler.RegisterRoutes(api, session)
	visitHandler.RegisterAdminRoutes(adminGroup, session)

	// Treatments
	careHandler := treatment.NewHandler(treatment.NewService(treatment.NewTreatmentRepoPG(pool), people))
	careHandler.RegisterRoutes(api, session)
	careHandler.RegisterAdminRoutes(adminGroup, session)

	// Billing
	billHandler := billing.NewHandler(billing.NewService(billing.NewBillRepoPG(pool), people))
	billHandler.RegisterRoutes(api, session)
	billHandler.RegisterAdminRoutes(adminGroup, session)

	// Doctor rosters
	roster.NewHandler(roster.NewService(roster.NewRosterRepoPG(pool), people)).RegisterRoutes(api, session)

	// Dashboard
	dashboard := admin.NewService(admin.NewDashboardRepoPG(pool))
	admin.NewHandler(dashboard).RegisterAdminRoutes(adminGroup, session)

	return e, dashboard
}
