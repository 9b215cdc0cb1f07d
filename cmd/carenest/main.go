package main

import (
	"context"
	"fmt"
	"os"

	"go.uber.org/zap"

	"github.com/iudanet/carenest/internal/client/auth"
	"github.com/iudanet/carenest/internal/client/cli"
	"github.com/iudanet/carenest/internal/client/data"
	"github.com/iudanet/carenest/internal/client/iocli"
	"github.com/iudanet/carenest/internal/client/kv"
	"github.com/iudanet/carenest/internal/client/storage"
	"github.com/iudanet/carenest/internal/client/storage/boltdb"
	"github.com/iudanet/carenest/internal/client/storage/memory"
	"github.com/iudanet/carenest/internal/client/storage/sqlite"
	"github.com/iudanet/carenest/internal/client/summary"
	"github.com/iudanet/carenest/internal/config"
	"github.com/iudanet/carenest/internal/crypto"
	"github.com/iudanet/carenest/internal/logging"
)

var (
	// Version information set via ldflags during build
	Version   = "dev"
	BuildDate = "unknown"
	GitCommit = "unknown"
)

func main() {
	if err := run(context.Background(), os.Args[1:], os.Getenv, iocli.NewStdio()); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run(ctx context.Context, args []string, getenv func(string) string, term iocli.IO) error {
	cfg, err := config.Parse(args, getenv)
	if err != nil {
		return err
	}

	// Show version and exit if requested
	if cfg.ShowVersion {
		printVersion(term)
		return nil
	}

	logger, err := logging.New(cfg.LogLevel)
	if err != nil {
		return err
	}
	defer func() { _ = logger.Sync() }()

	backend, err := openBackend(ctx, cfg)
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}
	defer func() {
		if err := backend.Close(); err != nil {
			logger.Error("failed to close database", zap.Error(err))
		}
	}()

	store := kv.New(backend, logger)

	var hasher crypto.CodeHasher = crypto.PlainHasher{}
	if cfg.HashCode {
		hasher = crypto.NewArgon2Hasher()
	}

	gate := auth.NewGate(store, hasher)
	dataService := data.NewManager(store, data.WithLogger(logger))
	builder := summary.NewBuilder(dataService, nil)

	logger.Debug("storage opened", zap.String("backend", cfg.Backend), zap.String("path", cfg.DBPath))

	return cli.New(term, gate, dataService, builder, cfg.AccessCode).Run(ctx, cfg.Args)
}

// openBackend opens the storage backend selected in cfg
func openBackend(ctx context.Context, cfg *config.Config) (storage.Backend, error) {
	switch cfg.Backend {
	case config.BackendSQLite:
		return sqlite.New(ctx, cfg.DBPath)
	case config.BackendMemory:
		return memory.New(), nil
	case config.BackendBolt:
		return boltdb.New(ctx, cfg.DBPath)
	default:
		return nil, fmt.Errorf("%w: %q", config.ErrUnknownBackend, cfg.Backend)
	}
}

func printVersion(term iocli.IO) {
	term.Printf("CareNest\n")
	term.Printf("Version:    %s\n", Version)
	term.Printf("Build Date: %s\n", BuildDate)
	term.Printf("Git Commit: %s\n", GitCommit)
}
