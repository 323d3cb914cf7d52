package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"os"
	"os/signal"
	"svc-mute/contract"
	"svc-mute/infrastructure/http/server"
	"svc-mute/integrations"
	"svc-mute/internal"
	"svc-mute/override"
	"svc-mute/repositories"
	"svc-mute/runtime"
	"svc-mute/services"
	"syscall"
	"time"

	"github.com/Netflix/go-env"
	"github.com/dgraph-io/badger/v4"
	"github.com/joho/godotenv"
	"github.com/mama165/sdk-go/database"
	"github.com/mama165/sdk-go/logs"
	"google.golang.org/protobuf/proto"
	"google.golang.org/protobuf/types/known/timestamppb"
)

// Exit codes to provide meaningful status to the operating system or service manager (e.g., systemd).
const (
	exitOK      = 0
	exitRuntime = 1
	exitConfig  = 2
)

const shutdownTimeout = 5 * time.Second

func main() {
	code, err := run()
	if err != nil {
		fmt.Fprintf(os.Stderr, "mutecheck terminated with error: %v\n", err)
	}
	os.Exit(code)
}

// run initializes all components, manages the server lifecycle and centralizes error reporting,
// so that every defer runs before the process exits.
func run() (int, error) {
	// 1. Configuration & Logger
	// A missing .env file is fine, the environment alone may be enough.
	_ = godotenv.Load()

	var config internal.Config
	if _, err := env.UnmarshalFromEnviron(&config); err != nil {
		return exitConfig, fmt.Errorf("config error: %w", err)
	}
	store, err := config.Store()
	if err != nil {
		return exitConfig, err
	}

	logger := logs.GetLoggerFromString(config.LogLevel)
	ctx := context.Background()

	// 2. Override persistence
	persistence, closePersistence, err := openPersistence(ctx, store, config, logger)
	if err != nil {
		return exitRuntime, err
	}
	defer closePersistence()

	// 3. Backend discovery, once for the process lifetime
	sessions := runtime.NewSessionRegistry()
	backends := internal.NewBackends(config, sessions, logger)
	defer func() {
		if err := backends.Close(); err != nil {
			logger.Warn("Closing backends failed", "error", err)
		}
	}()

	overrides := override.NewStore()
	var opts []integrations.Option
	if persistence != nil {
		opts = append(opts, integrations.WithPersistence(persistence))
	}
	manager := integrations.NewIntegrationManager(logger, internal.NewEnvProbe(config),
		backends.Factories(), overrides, opts...)
	if err := manager.Reload(ctx); err != nil {
		return exitRuntime, fmt.Errorf("override reload failed: %w", err)
	}
	logger.Info("Mute checkers registered", "backends", manager.Backends())

	// 4. Context & Signals
	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	errChan := make(chan error, 1)

	// 5. Background workers
	sup := runtime.NewSupervisor(logger, config.RestartInterval)
	sup.Add(override.NewReaper(overrides, persistence, config.ReaperInterval, logger))
	go sup.Run(ctx)

	// 6. HTTP Server Setup
	address := fmt.Sprintf("%s:%d", config.Host, config.Port)
	listener, err := net.Listen("tcp", address)
	if err != nil {
		return exitRuntime, fmt.Errorf("failed to listen on %s: %w", address, err)
	}
	muteService := services.NewMuteService(manager, sessions)
	httpServer := &http.Server{
		Handler:           server.NewMuteServer(logger, muteService).Routes(),
		ReadHeaderTimeout: 5 * time.Second,
	}
	go func() {
		logger.Info("Starting HTTP server", "address", address, "at", time.Now().UTC())
		if err := httpServer.Serve(listener); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errChan <- fmt.Errorf("HTTP server error: %w", err)
		}
	}()

	// 7. Wait for Stop or Error
	select {
	case <-ctx.Done():
		logger.Info("Shutdown signal received")
	case err := <-errChan:
		sup.Stop()
		return exitRuntime, err
	}

	// 8. Graceful Shutdown
	logger.Info("Shutting down gracefully...")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		logger.Warn("HTTP shutdown incomplete", "error", err)
	}
	sup.Stop()
	logger.Info("Program stopped cleanly")

	return exitOK, nil
}

// openPersistence returns a nil persistence for the memory store.
func openPersistence(ctx context.Context, store internal.OverrideStore, config internal.Config,
	logger *slog.Logger) (contract.OverridePersistence, func(), error) {
	switch store {
	case internal.OverrideStoreBadger:
		db, err := badger.Open(buildBadgerOpts(ctx, config, logger))
		if err != nil {
			return nil, nil, fmt.Errorf("database opening failed: %w", err)
		}
		if logger.Enabled(ctx, slog.LevelDebug) {
			debugPort := config.Port + 1
			endpoint := "/inspect"
			logger.Info("Debug Badger inspector available",
				"url", fmt.Sprintf("http://localhost:%d%s", debugPort, endpoint))
			database.StartDebugServer(db, debugPort, endpoint, OverrideMapper)
		}
		return repositories.NewOverrideRepository(db, logger), func() {
			logger.Info("Closing BadgerDB...")
			_ = db.Close()
		}, nil
	case internal.OverrideStoreSQLite:
		repository, err := repositories.OpenSQLiteOverrideRepository(config.SQLiteFilepath)
		if err != nil {
			return nil, nil, fmt.Errorf("database opening failed: %w", err)
		}
		return repository, func() {
			logger.Info("Closing SQLite...")
			_ = repository.Close()
		}, nil
	default:
		logger.Warn("Overrides are kept in memory only and lost on restart")
		return nil, func() {}, nil
	}
}

func buildBadgerOpts(ctx context.Context, config internal.Config, logger *slog.Logger) badger.Options {
	options := badger.DefaultOptions(config.BadgerFilepath)
	if logger.Enabled(ctx, slog.LevelDebug) {
		return options.WithLoggingLevel(badger.DEBUG).WithBypassLockGuard(true)
	}
	return options.WithLoggingLevel(badger.WARNING)
}

func OverrideMapper(key string, val []byte) database.InspectRow {
	row := database.DefaultMapper(key, val)
	row.Type = "OVERRIDE"

	var ts timestamppb.Timestamp
	if err := proto.Unmarshal(val, &ts); err != nil {
		row.Detail = "Error: unmarshal failed"
		return row
	}
	row.Detail = "until " + ts.AsTime().Format(time.RFC3339)
	return row
}
