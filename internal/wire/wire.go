// Package wire builds the application graph for the CLI: it selects the
// storage backend from configuration and hands out the ingest service with
// all adapters injected.
package wire

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/example/lotledger/internal/adapters/postgres"
	"github.com/example/lotledger/internal/adapters/sqlite"
	"github.com/example/lotledger/internal/app"
	"github.com/example/lotledger/internal/config"
	"github.com/example/lotledger/internal/core/reconcile"
	"github.com/example/lotledger/internal/db"
	"github.com/example/lotledger/internal/models"
	"github.com/example/lotledger/internal/ports/primary"
	"github.com/example/lotledger/internal/ports/secondary"
)

// LotBrowser extends the store port with the read paths the CLI needs.
type LotBrowser interface {
	secondary.LotStore
	ListArchive(ctx context.Context, inn string) ([]*models.Lot, error)
}

// DebtorAdmin extends the directory port with management operations.
type DebtorAdmin interface {
	secondary.DebtorDirectory
	Add(ctx context.Context, d *models.Debtor) error
	List(ctx context.Context) ([]*models.Debtor, error)
}

// ErrorBrowser extends the error sink with the read path.
type ErrorBrowser interface {
	secondary.ErrorSink
	List(ctx context.Context, limit int) ([]*models.Lot, error)
}

// Backend bundles the storage adapters for one configured backend.
type Backend struct {
	Lots    LotBrowser
	Debtors DebtorAdmin
	Errors  ErrorBrowser

	close func()
}

// Close releases the underlying connection.
func (b *Backend) Close() {
	if b.close != nil {
		b.close()
	}
}

// OpenBackend opens the storage backend named in the configuration.
func OpenBackend(ctx context.Context, cfg *config.Config) (*Backend, error) {
	switch cfg.Store {
	case "", config.StoreSQLite:
		path := cfg.SQLitePath
		if path == "" {
			var err error
			path, err = db.DefaultPath()
			if err != nil {
				return nil, err
			}
		}
		conn, err := db.Open(path)
		if err != nil {
			return nil, err
		}
		return &Backend{
			Lots:    sqlite.NewLotStore(conn),
			Debtors: sqlite.NewDebtorRepository(conn),
			Errors:  sqlite.NewErrorRepository(conn),
			close:   func() { conn.Close() },
		}, nil

	case config.StorePostgres:
		dsn, err := config.PostgresDSN()
		if err != nil {
			return nil, err
		}
		pool, err := postgres.Connect(ctx, dsn)
		if err != nil {
			return nil, err
		}
		return &Backend{
			Lots:    postgres.NewLotStore(pool),
			Debtors: postgres.NewDebtorRepository(pool),
			Errors:  postgres.NewErrorRepository(pool),
			close:   pool.Close,
		}, nil

	default:
		return nil, fmt.Errorf("unknown store backend %q", cfg.Store)
	}
}

// IngestService assembles the full pipeline over an open backend.
func IngestService(b *Backend, cfg *config.Config, log zerolog.Logger) primary.IngestService {
	engine := reconcile.New(b.Lots, secondary.MatchKey(cfg.MatchKey), log)
	return app.NewIngestService(engine, b.Debtors, b.Errors, log)
}
