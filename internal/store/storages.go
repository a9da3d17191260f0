package store

import (
	"context"
	"fmt"

	"github.com/MKhiriev/go-greeter/internal/config"
	"github.com/MKhiriev/go-greeter/internal/logger"
)

// Storages groups the greeter's persistence.
type Storages struct {
	// Remember is nil when no state database is configured.
	Remember RememberRepository
	Sessions SessionCatalogue

	db *DB
}

// NewStorages opens the state database when one is configured and builds the
// session catalogue. A state database that cannot be opened is logged and
// disabled; the greeter still works without remembering logins.
func NewStorages(ctx context.Context, cfg *config.GreeterConfig, log *logger.Logger) (*Storages, error) {
	storages := &Storages{
		Sessions: NewSessionCatalogue(cfg.Launch.SessionDirs, log),
	}

	if cfg.Storage.DSN == "" {
		log.Debug().Msg("no state database configured, remembering logins disabled")
		return storages, nil
	}

	db, err := NewConnectSQLite(ctx, cfg.Storage.DSN, log)
	if err != nil {
		log.Warn().Err(err).Str("dsn", cfg.Storage.DSN).Msg("state database unavailable, remembering logins disabled")
		return storages, nil
	}
	if err = db.Migrate(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("migrate state database: %w", err)
	}

	storages.db = db
	storages.Remember = NewRememberRepository(db, log)
	return storages, nil
}

// Close releases the state database, if any.
func (s *Storages) Close() error {
	if s.db == nil {
		return nil
	}
	return s.db.Close()
}
