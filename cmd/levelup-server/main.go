package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"slices"
	"syscall"
	"time"

	"github.com/at-ishikawa/levelup/internal/config"
	"github.com/at-ishikawa/levelup/internal/database"
	"github.com/at-ishikawa/levelup/internal/flashcard"
	"github.com/at-ishikawa/levelup/internal/server"
	"github.com/at-ishikawa/levelup/schemas"
	"github.com/jmoiron/sqlx"
	"github.com/spf13/cobra"
	"golang.org/x/net/http2"
	"golang.org/x/net/http2/h2c"
)

const (
	appName    = "LevelUp AI"
	appVersion = "1.0.0"
)

var configFile string

func main() {
	if err := newRootCommand().Execute(); err != nil {
		if _, fprintfErr := fmt.Fprintf(os.Stderr, "failed to execute a command: %+v\n", err); fprintfErr != nil {
			panic(fmt.Errorf("failed to output an error: %w. Reason: %w", err, fprintfErr))
		}
		os.Exit(1)
	}
	os.Exit(0)
}

func newRootCommand() *cobra.Command {
	var debugMode bool
	rootCommand := &cobra.Command{
		Use:           "levelup-server",
		Short:         "Serve the LevelUp flashcard and quiz API",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			setupLogger(debugMode)
			return nil
		},
	}
	rootCommand.PersistentFlags().StringVar(&configFile, "config", "", "config file path")
	rootCommand.PersistentFlags().BoolVar(&debugMode, "debug", false, "Enable debug mode")

	rootCommand.AddCommand(
		newServeCommand(),
		newMigrateCommand(),
		newImportCommand(),
	)
	return rootCommand
}

// setupLogger configures the default logger based on debug mode
func setupLogger(debugMode bool) {
	logLevel := slog.LevelInfo
	if debugMode {
		logLevel = slog.LevelDebug
	}

	slog.SetDefault(
		slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{
			Level:     logLevel,
			AddSource: true,
		})),
	)
}

func loadConfig() (*config.Config, error) {
	cfg, err := config.Load(configFile)
	if err != nil {
		return nil, fmt.Errorf("failed to load configuration: %w", err)
	}
	return cfg, nil
}

// openRepository returns the configured flashcard store and a function releasing it.
func openRepository(ctx context.Context, cfg *config.Config) (flashcard.Repository, func() error, error) {
	switch cfg.Server.Storage {
	case config.StorageMySQL:
		db, err := openDatabase(ctx, cfg.Database)
		if err != nil {
			return nil, nil, err
		}
		return flashcard.NewDBRepository(db), db.Close, nil
	default:
		return flashcard.NewYAMLRepository(cfg.Server.DataFile), func() error { return nil }, nil
	}
}

func openDatabase(ctx context.Context, cfg config.DatabaseConfig) (*sqlx.DB, error) {
	db, err := database.Open(cfg)
	if err != nil {
		return nil, fmt.Errorf("database.Open() > %w", err)
	}
	if err := database.Migrate(ctx, db, schemas.Migrations); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("database.Migrate() > %w", err)
	}
	return db, nil
}

func newServeCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Start the HTTP server",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			repository, closeRepository, err := openRepository(ctx, cfg)
			if err != nil {
				return err
			}
			defer func() {
				_ = closeRepository()
			}()

			handler, err := server.NewHandler(repository, server.Options{
				App:               appName,
				Version:           appVersion,
				RequestsPerMinute: cfg.Server.RequestsPerMinute,
			})
			if err != nil {
				return fmt.Errorf("server.NewHandler() > %w", err)
			}

			srv := &http.Server{
				Addr:              cfg.Server.Address,
				Handler:           corsMiddleware(cfg.Server.AllowedOrigins, h2c.NewHandler(handler.Routes(), &http2.Server{})),
				ReadHeaderTimeout: 10 * time.Second,
				IdleTimeout:       60 * time.Second,
			}
			return serve(ctx, srv)
		},
	}
}

// serve runs srv until ctx is done, then shuts it down gracefully.
func serve(ctx context.Context, srv *http.Server) error {
	errCh := make(chan error, 1)
	go func() {
		slog.Default().Info("Starting server", "address", srv.Addr, "app", appName, "version", appVersion)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return fmt.Errorf("srv.ListenAndServe() > %w", err)
	case <-ctx.Done():
	}

	slog.Default().Info("Shutting down server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("srv.Shutdown() > %w", err)
	}
	return nil
}

func newMigrateCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Create the MySQL tables",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}
			if err := cfg.Database.Validate(); err != nil {
				return err
			}

			db, err := openDatabase(cmd.Context(), cfg.Database)
			if err != nil {
				return err
			}
			defer func() {
				_ = db.Close()
			}()

			_, err = fmt.Fprintln(cmd.OutOrStdout(), "Migrations applied")
			return err
		},
	}
}

func newImportCommand() *cobra.Command {
	var (
		dryRun bool
		from   string
	)
	command := &cobra.Command{
		Use:   "import",
		Short: "Import the YAML flashcard deck into MySQL",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}
			if err := cfg.Database.Validate(); err != nil {
				return err
			}
			if from == "" {
				from = cfg.Server.DataFile
			}

			db, err := openDatabase(cmd.Context(), cfg.Database)
			if err != nil {
				return err
			}
			defer func() {
				_ = db.Close()
			}()

			return runImport(cmd, flashcard.NewYAMLRepository(from), flashcard.NewDBRepository(db), dryRun)
		},
	}
	command.Flags().BoolVar(&dryRun, "dry-run", false, "show what would be imported without writing")
	command.Flags().StringVar(&from, "from", "", "YAML deck to import (default from server.data_file)")
	return command
}

func runImport(cmd *cobra.Command, source, target flashcard.Repository, dryRun bool) error {
	out := cmd.OutOrStdout()
	if dryRun {
		if _, err := fmt.Fprintln(out, "Dry run: no changes will be written"); err != nil {
			return err
		}
	}

	result, err := flashcard.NewImporter(source, target, out).Import(cmd.Context(), flashcard.ImportOptions{DryRun: dryRun})
	if err != nil {
		return fmt.Errorf("importer.Import() > %w", err)
	}
	_, err = fmt.Fprintf(out, "Imported %d new flashcards, skipped %d, invalid %d\n", result.New, result.Skipped, result.Invalid)
	return err
}

func corsMiddleware(allowedOrigins []string, next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		origin := r.Header.Get("Origin")
		switch {
		case slices.Contains(allowedOrigins, "*"):
			w.Header().Set("Access-Control-Allow-Origin", "*")
		case origin != "" && slices.Contains(allowedOrigins, origin):
			w.Header().Set("Access-Control-Allow-Origin", origin)
			w.Header().Add("Vary", "Origin")
		}
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type, Accept")
		w.Header().Set("Access-Control-Max-Age", "3600")

		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusNoContent)
			return
		}

		next.ServeHTTP(w, r)
	})
}
