package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/4chain-ag/go-overlay-helloworld/pkg/config"
	"github.com/4chain-ag/go-overlay-helloworld/pkg/config/loaders"
	"github.com/4chain-ag/go-overlay-helloworld/pkg/core/engine"
	enginestorage "github.com/4chain-ag/go-overlay-helloworld/pkg/core/engine/storage"
	"github.com/4chain-ag/go-overlay-helloworld/pkg/helloworld"
	"github.com/4chain-ag/go-overlay-helloworld/pkg/helloworld/storage"
	"github.com/4chain-ag/go-overlay-helloworld/internal/mongodb"
	"github.com/4chain-ag/go-overlay-helloworld/pkg/server"
	"github.com/gookit/slog"
)

const shutdownTimeout = 10 * time.Second

func main() {
	configPath := flag.String("config", loaders.DefaultConfigFilePath, "Path to the configuration file")
	flag.StringVar(configPath, "c", loaders.DefaultConfigFilePath, "Path to the configuration file (shorthand)")
	printConfig := flag.String("print-config", "", "Print the loaded configuration as json or yaml")
	flag.Parse()

	if err := run(*configPath, *printConfig); err != nil {
		slog.Errorf("overlay server stopped: %v", err)
		os.Exit(1)
	}
}

func run(configPath, printFormat string) error {
	cfg, err := config.Load(configPath)
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}
	if err := config.SetupLogger(cfg.Logger); err != nil {
		return err
	}
	if printFormat != "" {
		if err := cfg.PrettyPrintAs(printFormat); err != nil {
			return err
		}
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	records, closeRecords, err := openRecordStore(ctx, cfg.Storage)
	if err != nil {
		return err
	}
	defer closeRecords()

	ledger, closeLedger, err := openLedger(cfg.Storage)
	if err != nil {
		return err
	}
	defer closeLedger()

	overlay := engine.NewEngine(engine.Engine{
		Managers: map[string]engine.TopicManager{
			helloworld.TopicName: helloworld.NewTopicManager(),
		},
		LookupServices: map[string]engine.LookupService{
			helloworld.ServiceName: helloworld.NewLookupService(records, helloworld.WithStorageTimeout(cfg.Storage.Timeout)),
		},
		Storage: ledger,
	})

	srv := server.New(server.WithConfig(cfg.Server), server.WithEngine(overlay))

	errs := make(chan error, 1)
	go func() {
		slog.WithFields(slog.M{"addr": srv.SocketAddr(), "backend": cfg.Storage.Backend}).Info("overlay server listening")
		errs <- srv.ListenAndServe(ctx)
	}()

	select {
	case err := <-errs:
		return err
	case <-ctx.Done():
	}

	slog.Info("shutting down overlay server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("failed to shut down: %w", err)
	}
	return nil
}

func openRecordStore(ctx context.Context, cfg config.StorageConfig) (storage.RecordStore, func(), error) {
	switch cfg.Backend {
	case config.BackendMongo:
		timeout := cfg.Timeout
		if timeout <= 0 {
			timeout = helloworld.DefaultStorageTimeout
		}
		connectCtx, cancel := context.WithTimeout(ctx, timeout)
		defer cancel()

		cli, db, err := mongodb.Connect(connectCtx, &cfg.Mongo)
		if err != nil {
			return nil, nil, err
		}
		store, err := storage.NewMongoStorage(connectCtx, db)
		if err != nil {
			_ = cli.Disconnect(context.Background())
			return nil, nil, err
		}
		return store, func() {
			if err := cli.Disconnect(context.Background()); err != nil {
				slog.Errorf("failed to disconnect from MongoDB: %v", err)
			}
		}, nil

	case config.BackendSQLite:
		store, err := storage.NewSQLiteStorage(cfg.SQLitePath)
		if err != nil {
			return nil, nil, fmt.Errorf("failed to open record store: %w", err)
		}
		return store, closer("record store", store), nil

	case config.BackendMemory:
		return storage.NewMemoryStorage(), func() {}, nil
	}
	return nil, nil, fmt.Errorf("%w: unknown storage backend %q", config.ErrInvalidConfig, cfg.Backend)
}

func openLedger(cfg config.StorageConfig) (engine.Storage, func(), error) {
	if cfg.LedgerPath == "" {
		return enginestorage.NewMemoryStorage(), func() {}, nil
	}

	ledger, err := enginestorage.NewSQLiteStorage(cfg.LedgerPath)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to open output ledger: %w", err)
	}
	return ledger, closer("output ledger", ledger), nil
}

func closer(name string, c io.Closer) func() {
	return func() {
		if err := c.Close(); err != nil && !errors.Is(err, os.ErrClosed) {
			slog.Errorf("failed to close %s: %v", name, err)
		}
	}
}
