package store

import (
	"context"
	"database/sql"
	"errors"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MKhiriev/go-greeter/internal/logger"
	"github.com/MKhiriev/go-greeter/models"
)

var fixedNow = time.Date(2026, 10, 19, 8, 0, 0, 0, time.UTC)

func newTestRememberRepo(t *testing.T) (*rememberRepository, sqlmock.Sqlmock, *sql.DB) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("failed to create sqlmock: %v", err)
	}
	l := logger.Nop()
	repo := &rememberRepository{
		db:     &DB{DB: db, logger: l},
		now:    func() time.Time { return fixedNow },
		logger: l,
	}
	return repo, mock, db
}

// ── Load ─────────────────────────────────────────────────────────────────────

func TestLoad_Success(t *testing.T) {
	repo, mock, db := newTestRememberRepo(t)
	defer db.Close()

	rows := sqlmock.NewRows([]string{"username", "session"}).AddRow("alice", "Sway")
	mock.ExpectQuery("SELECT username, session FROM remembered_login").
		WithArgs(rememberedRowID).
		WillReturnRows(rows)

	got, err := repo.Load(context.Background())
	require.NoError(t, err)
	assert.Equal(t, models.Remembered{Username: "alice", Session: "Sway"}, got)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestLoad_NothingRemembered(t *testing.T) {
	repo, mock, db := newTestRememberRepo(t)
	defer db.Close()

	mock.ExpectQuery("SELECT username, session FROM remembered_login").
		WithArgs(rememberedRowID).
		WillReturnError(sql.ErrNoRows)

	_, err := repo.Load(context.Background())
	assert.ErrorIs(t, err, ErrNothingRemembered)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestLoad_EmptyResult(t *testing.T) {
	repo, mock, db := newTestRememberRepo(t)
	defer db.Close()

	mock.ExpectQuery("SELECT username, session FROM remembered_login").
		WillReturnRows(sqlmock.NewRows([]string{"username", "session"}))

	_, err := repo.Load(context.Background())
	assert.ErrorIs(t, err, ErrNothingRemembered)
}

func TestLoad_DBError(t *testing.T) {
	repo, mock, db := newTestRememberRepo(t)
	defer db.Close()

	dbErr := errors.New("disk I/O error")
	mock.ExpectQuery("SELECT username, session FROM remembered_login").
		WillReturnError(dbErr)

	_, err := repo.Load(context.Background())
	require.Error(t, err)
	assert.ErrorIs(t, err, dbErr)
	assert.NotErrorIs(t, err, ErrNothingRemembered)
}

// ── Save ─────────────────────────────────────────────────────────────────────

func TestSave_Success(t *testing.T) {
	repo, mock, db := newTestRememberRepo(t)
	defer db.Close()

	mock.ExpectExec("INSERT INTO remembered_login").
		WithArgs(rememberedRowID, "bob", "GNOME", fixedNow).
		WillReturnResult(sqlmock.NewResult(1, 1))

	err := repo.Save(context.Background(), models.Remembered{Username: "bob", Session: "GNOME"})
	require.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestSave_NoRowsAffected(t *testing.T) {
	repo, mock, db := newTestRememberRepo(t)
	defer db.Close()

	mock.ExpectExec("INSERT INTO remembered_login").
		WillReturnResult(sqlmock.NewResult(0, 0))

	err := repo.Save(context.Background(), models.Remembered{Username: "bob"})
	assert.ErrorIs(t, err, ErrRememberNotSaved)
}

func TestSave_DBError(t *testing.T) {
	repo, mock, db := newTestRememberRepo(t)
	defer db.Close()

	mock.ExpectExec("INSERT INTO remembered_login").
		WillReturnError(errors.New("database is locked"))

	err := repo.Save(context.Background(), models.Remembered{Username: "bob"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "database is locked")
}

func TestSave_RowsAffectedError(t *testing.T) {
	repo, mock, db := newTestRememberRepo(t)
	defer db.Close()

	mock.ExpectExec("INSERT INTO remembered_login").
		WillReturnResult(sqlmock.NewErrorResult(errors.New("driver does not support RowsAffected")))

	err := repo.Save(context.Background(), models.Remembered{Username: "bob"})
	require.Error(t, err)
	assert.NotErrorIs(t, err, ErrRememberNotSaved)
}
