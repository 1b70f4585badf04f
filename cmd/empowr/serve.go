package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/jonathan/empowr-credit/internal/config"
	"github.com/jonathan/empowr-credit/internal/logging"
	"github.com/jonathan/empowr-credit/internal/mock"
	"github.com/jonathan/empowr-credit/internal/scoring"
	"github.com/jonathan/empowr-credit/internal/server"
	"github.com/jonathan/empowr-credit/internal/state"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var (
	servePort int
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the web server",
	Long:  `Start an HTTP server that serves the Empowr Credit pages and JSON API. Configuration is read from the environment.`,
	RunE:  runServe,
}

func init() {
	serveCmd.Flags().IntVar(&servePort, "port", 0, "Port to listen on (overrides PORT)")
	rootCmd.AddCommand(serveCmd)
}

func runServe(cmd *cobra.Command, _ []string) error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	if cmd.Flags().Changed("port") {
		cfg.Port = servePort
	}

	logger, err := logging.New(cfg.LogLevel, cfg.LogFormat)
	if err != nil {
		return err
	}
	defer logger.Sync() //nolint:errcheck

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	srv, cleanup, err := buildServer(ctx, cfg, logger)
	if err != nil {
		return err
	}
	defer cleanup()

	return srv.Start(ctx)
}

// buildServer wires the state store, mock service and HTTP server for cfg.
// cleanup closes the store.
func buildServer(ctx context.Context, cfg *config.Config, logger *zap.Logger) (*server.Server, func(), error) {
	if cfg.Session.Ephemeral {
		logger.Warn("SESSION_SECRET is not set; using a generated secret, sessions will not survive a restart")
	}

	store, err := state.Open(ctx, state.Options{
		Backend: cfg.StateBackend,
		Redis: state.RedisOptions{
			Addr:     cfg.RedisAddr,
			Password: cfg.RedisPassword,
			DB:       cfg.RedisDB,
			TTL:      cfg.Session.TTL(),
		},
		DatabaseURL: cfg.DatabaseURL,
		AutoMigrate: true,
	})
	if err != nil {
		return nil, nil, fmt.Errorf("failed to open %s state store: %w", cfg.StateBackend, err)
	}
	cleanup := func() {
		if err := store.Close(); err != nil {
			logger.Warn("failed to close state store", zap.Error(err))
		}
	}

	deriver := scoring.NewDeriver(nil)
	if cfg.ScoreSeed != 0 {
		deriver = scoring.NewSeededDeriver(cfg.ScoreSeed)
	}

	svc, err := mock.NewService(mock.Options{
		Latencies: mock.Latencies{
			Login:      cfg.Latency.Login,
			Register:   cfg.Latency.Register,
			FetchScore: cfg.Latency.FetchScore,
			Submit:     cfg.Latency.Submit,
		},
		Deriver:   deriver,
		Accounts:  state.NewAccounts(store),
		Passwords: &cfg.Password,
		Strict:    cfg.AuthMode == config.AuthModeStrict,
		Logger:    logger,
	})
	if err != nil {
		cleanup()
		return nil, nil, fmt.Errorf("failed to create mock service: %w", err)
	}

	srv, err := server.New(cfg, server.Deps{Store: store, Service: svc, Logger: logger})
	if err != nil {
		cleanup()
		return nil, nil, fmt.Errorf("failed to create server: %w", err)
	}

	logger.Info("server configured",
		zap.String("state_backend", cfg.StateBackend),
		zap.String("auth_mode", cfg.AuthMode),
		zap.Bool("seeded_scores", cfg.ScoreSeed != 0),
	)
	return srv, cleanup, nil
}
