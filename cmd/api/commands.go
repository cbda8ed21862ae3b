package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/samber/oops"
	"github.com/spf13/cobra"

	"github.com/crucial707/staybook/internal/config"
	"github.com/crucial707/staybook/internal/db"
	"github.com/crucial707/staybook/internal/uploads"
)

// NewRootCmd creates the root command of the API server.
func NewRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:          "api",
		Short:        "staybook API server",
		SilenceUsage: true,
	}
	cmd.AddCommand(NewServeCmd())
	cmd.AddCommand(NewMigrateCmd())
	return cmd
}

// NewServeCmd creates the serve subcommand.
func NewServeCmd() *cobra.Command {
	var migrateFirst bool
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Start the HTTP API",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runServe(cmd.Context(), migrateFirst)
		},
	}
	cmd.Flags().BoolVar(&migrateFirst, "migrate", false, "apply pending migrations before serving")
	return cmd
}

// NewMigrateCmd creates the migrate subcommand. Without flags it applies pending migrations.
func NewMigrateCmd() *cobra.Command {
	var (
		down   int
		status bool
	)
	cmd := &cobra.Command{
		Use:   "migrate",
		Short: "Run database migrations",
		RunE: func(cmd *cobra.Command, _ []string) error {
			if down > 0 && status {
				return errors.New("--down and --status are mutually exclusive")
			}
			cfg, err := loadConfig()
			if err != nil {
				return err
			}
			switch {
			case status:
				st, err := db.Status(cfg.DatabaseURL)
				if err != nil {
					return err
				}
				cmd.Printf("version %d (dirty: %t)\n", st.Version, st.Dirty)
				return nil
			case down > 0:
				cmd.Printf("Rolling back %d migration(s)...\n", down)
				if err := db.Rollback(cfg.DatabaseURL, down); err != nil {
					return err
				}
			default:
				cmd.Println("Running migrations...")
				if err := db.Run(cfg.DatabaseURL); err != nil {
					return err
				}
			}
			cmd.Println("Migrations completed successfully")
			return nil
		},
	}
	cmd.Flags().IntVar(&down, "down", 0, "roll back this many migrations instead of applying")
	cmd.Flags().BoolVar(&status, "status", false, "print the current schema version and exit")
	return cmd
}

func loadConfig() (config.Config, error) {
	cfg, err := config.Load()
	if err != nil {
		return cfg, oops.With("operation", "load config").Wrap(err)
	}
	if err := cfg.Validate(); err != nil {
		return cfg, oops.With("operation", "validate config").Wrap(err)
	}
	setupLogging(cfg.LogFormat)
	return cfg, nil
}

func setupLogging(format string) {
	opts := &slog.HandlerOptions{Level: slog.LevelInfo}
	var handler slog.Handler
	if format == "json" {
		handler = slog.NewJSONHandler(os.Stderr, opts)
	} else {
		handler = slog.NewTextHandler(os.Stderr, opts)
	}
	slog.SetDefault(slog.New(handler))
}

func runServe(ctx context.Context, migrateFirst bool) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	if ctx == nil {
		ctx = context.Background()
	}
	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	if migrateFirst {
		if err := db.Run(cfg.DatabaseURL); err != nil {
			return err
		}
		slog.Info("migrations applied")
	}

	database, err := db.Connect(ctx, cfg.DatabaseURL, cfg.DBMaxOpenConns, cfg.DBMaxIdleConns)
	if err != nil {
		return oops.With("operation", "connect to database").Wrap(err)
	}
	defer database.Close()
	slog.Info("connected to database")

	if err := uploads.NewStore(cfg.UploadDir, cfg.UploadMaxBytes, cfg.UploadFetchTimeout).Init(); err != nil {
		return oops.With("operation", "create upload dir").With("dir", cfg.UploadDir).Wrap(err)
	}

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           newRouter(database, cfg),
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       60 * time.Second,
		WriteTimeout:      60 * time.Second,
		IdleTimeout:       120 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		slog.Info("starting server", "port", cfg.Port, "env", cfg.Env)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return oops.With("operation", "serve").Wrap(err)
	case <-ctx.Done():
	}

	slog.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}
