package store

import (
	"time"

	sq "github.com/Masterminds/squirrel"

	"github.com/MKhiriev/go-greeter/models"
)

const (
	rememberedTable = "remembered_login"
	// rememberedRowID pins the table to a single row.
	rememberedRowID = 1
)

func buildLoadRememberedQuery() (string, []any, error) {
	return sq.
		Select("username", "session").
		From(rememberedTable).
		Where(sq.Eq{"id": rememberedRowID}).
		ToSql()
}

func buildSaveRememberedQuery(r models.Remembered, now time.Time) (string, []any, error) {
	return sq.
		Insert(rememberedTable).
		Columns("id", "username", "session", "updated_at").
		Values(rememberedRowID, r.Username, r.Session, now.UTC()).
		Suffix("ON CONFLICT (id) DO UPDATE SET " +
			"username = excluded.username, " +
			"session = excluded.session, " +
			"updated_at = excluded.updated_at").
		ToSql()
}
