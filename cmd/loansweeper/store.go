package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/AntonStoeckl/library-loan-engine-go/core"
	"github.com/AntonStoeckl/library-loan-engine-go/engine"
	"github.com/AntonStoeckl/library-loan-engine-go/loanstore"
	"github.com/AntonStoeckl/library-loan-engine-go/loanstore/jsonfileengine"
	"github.com/AntonStoeckl/library-loan-engine-go/loanstore/memoryengine"
	"github.com/AntonStoeckl/library-loan-engine-go/loanstore/postgresengine"
	"github.com/AntonStoeckl/library-loan-engine-go/shell/config"
)

const logMsgMemoryStoreSelected = "memory loan store selected, sweeps only see loans created by this process"

// openStore opens the configured loan store. The returned func releases its connections.
func openStore(
	ctx context.Context,
	cfg config.Config,
	logger *slog.Logger,
	metrics postgresengine.MetricsCollector,
) (engine.LoanStore, func(), error) {
	noop := func() {}

	switch cfg.Store {
	case config.StoreMemory:
		logger.Warn(logMsgMemoryStoreSelected)
		store, err := memoryengine.NewMemoryEngine(memoryengine.WithLogger(logger))
		return store, noop, err

	case config.StoreJSONFile:
		store, err := jsonfileengine.NewFileEngine(cfg.LoanFile, jsonfileengine.WithLogger(logger))
		return store, noop, err

	case config.StorePostgres:
		return openPostgresStore(ctx, cfg.Postgres, logger, metrics)

	default:
		return nil, noop, fmt.Errorf("%w: unknown store %q", config.ErrInvalidConfig, cfg.Store)
	}
}

func openPostgresStore(
	ctx context.Context,
	cfg config.PostgresConfig,
	logger *slog.Logger,
	metrics postgresengine.MetricsCollector,
) (engine.LoanStore, func(), error) {
	options := []postgresengine.Option{
		postgresengine.WithTableName(cfg.TableName),
		postgresengine.WithLogger(logger),
		postgresengine.WithMetrics(metrics),
	}

	var store postgresengine.LoanStore
	var closeDB func()

	switch cfg.Driver {
	case config.DriverSQL:
		db, err := cfg.OpenSQLDB(ctx)
		if err != nil {
			return nil, nil, err
		}

		closeDB = func() { _ = db.Close() }
		store, err = postgresengine.NewLoanStoreFromSQLDB(db, options...)
		if err != nil {
			closeDB()
			return nil, nil, err
		}

	case config.DriverSQLX:
		db, err := cfg.OpenSQLX(ctx)
		if err != nil {
			return nil, nil, err
		}

		closeDB = func() { _ = db.Close() }
		store, err = postgresengine.NewLoanStoreFromSQLX(db, options...)
		if err != nil {
			closeDB()
			return nil, nil, err
		}

	default:
		pool, err := cfg.OpenPGXPool(ctx)
		if err != nil {
			return nil, nil, err
		}

		closeDB = pool.Close
		store, err = postgresengine.NewLoanStoreFromPGXPool(pool, options...)
		if err != nil {
			closeDB()
			return nil, nil, err
		}
	}

	if cfg.CreateSchema {
		if err := store.CreateSchema(ctx); err != nil {
			closeDB()
			return nil, nil, err
		}
	}

	return store, closeDB, nil
}

// reconcileAvailability marks the books of all outstanding loans unavailable, since the catalog
// seed knows nothing about loans persisted by earlier runs.
func reconcileAvailability(ctx context.Context, store engine.LoanStore, books engine.BookGateway) error {
	outstanding := loanstore.BuildFilter().
		WithStatusIn(core.LoanStatusActive, core.LoanStatusOverdue).
		Finalize()

	loans, err := store.Find(ctx, outstanding)
	if err != nil {
		return err
	}

	var errs []error
	for _, loan := range loans {
		if setErr := books.SetAvailability(ctx, loan.BookID, false); setErr != nil {
			errs = append(errs, fmt.Errorf("book %s: %w", loan.BookID, setErr))
		}
	}

	return errors.Join(errs...)
}
