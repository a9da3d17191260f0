package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/MKhiriev/go-greeter/internal/logger"
	"github.com/MKhiriev/go-greeter/models"
)

// rememberRepository is the SQLite-backed implementation of
// [RememberRepository]. The table holds at most one row.
type rememberRepository struct {
	db     *DB
	now    func() time.Time
	logger *logger.Logger
}

// NewRememberRepository constructs a [RememberRepository] backed by db.
func NewRememberRepository(db *DB, logger *logger.Logger) RememberRepository {
	logger.Debug().Msg("creating remember repository")
	return &rememberRepository{
		db:     db,
		now:    time.Now,
		logger: logger,
	}
}

func (r *rememberRepository) Load(ctx context.Context) (models.Remembered, error) {
	query, args, err := buildLoadRememberedQuery()
	if err != nil {
		return models.Remembered{}, fmt.Errorf("build load query: %w", err)
	}

	var remembered models.Remembered
	err = r.db.QueryRowContext(ctx, query, args...).Scan(&remembered.Username, &remembered.Session)
	if errors.Is(err, sql.ErrNoRows) {
		return models.Remembered{}, ErrNothingRemembered
	}
	if err != nil {
		r.logger.Err(err).Str("func", "*rememberRepository.Load").Msg("error loading remembered login")
		return models.Remembered{}, fmt.Errorf("unexpected DB error: %w", err)
	}

	return remembered, nil
}

func (r *rememberRepository) Save(ctx context.Context, remembered models.Remembered) error {
	query, args, err := buildSaveRememberedQuery(remembered, r.now())
	if err != nil {
		return fmt.Errorf("build save query: %w", err)
	}

	res, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		r.logger.Err(err).Str("func", "*rememberRepository.Save").Msg("error saving remembered login")
		return fmt.Errorf("unexpected DB error: %w", err)
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("unexpected DB error: %w", err)
	}
	if affected == 0 {
		return ErrRememberNotSaved
	}

	return nil
}
