// Package app wires the services of both binaries onto the configured storage.
package app

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"

	"github.com/bruno-santana/minhas-financas-api/internal/config"
	"github.com/bruno-santana/minhas-financas-api/internal/database"
	"github.com/bruno-santana/minhas-financas-api/internal/entry"
	entryStore "github.com/bruno-santana/minhas-financas-api/internal/entry/store"
	"github.com/bruno-santana/minhas-financas-api/internal/export"
	"github.com/bruno-santana/minhas-financas-api/internal/importer"
	"github.com/bruno-santana/minhas-financas-api/internal/user"
	userStore "github.com/bruno-santana/minhas-financas-api/internal/user/store"
)

type Services struct {
	Users   *user.Service
	Entries *entry.Service
	Parser  *importer.Parser
	Export  *export.Service

	db *sql.DB
}

// New opens the storage selected by cfg and builds the services on top of it.
// With postgres storage the schema is migrated first unless DB_MIGRATE is off.
func New(ctx context.Context, cfg *config.Config) (*Services, error) {
	var (
		userRepo  user.Repository
		entryRepo entry.Repository
		db        *sql.DB
	)

	switch cfg.App.Storage {
	case config.StorageMemory:
		slog.Warn("using in-memory storage, data is lost on exit")

		userRepo = userStore.NewMemory()
		entryRepo = entryStore.NewMemory()

	default:
		var err error

		db, err = database.Open(ctx, cfg.ConnectionString(), database.Pool{
			MaxOpenConns:    cfg.DB.MaxOpenConns,
			MaxIdleConns:    cfg.DB.MaxIdleConns,
			ConnMaxLifetime: cfg.DB.ConnMaxLifetime,
		})
		if err != nil {
			return nil, fmt.Errorf("connecting to database: %w", err)
		}

		if cfg.DB.Migrate {
			if err := database.Migrate(db); err != nil {
				db.Close()
				return nil, fmt.Errorf("migrating database: %w", err)
			}
		}

		userRepo = userStore.New(db)
		entryRepo = entryStore.New(db)
	}

	entries := entry.NewService(entryRepo)

	return &Services{
		Users:   user.NewService(userRepo),
		Entries: entries,
		Parser:  importer.NewParser(),
		Export:  export.NewService(entries),
		db:      db,
	}, nil
}

// Close releases the database, if one was opened.
func (s *Services) Close() error {
	if s.db == nil {
		return nil
	}

	return s.db.Close()
}
