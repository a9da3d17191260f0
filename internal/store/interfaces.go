package store

import (
	"context"

	"github.com/MKhiriev/go-greeter/models"
)

//go:generate mockgen -source=interfaces.go -destination=../mock/store_mock.go -package=mock

// RememberRepository persists the last successful login.
type RememberRepository interface {
	// Load returns the remembered login or [ErrNothingRemembered].
	Load(ctx context.Context) (models.Remembered, error)
	// Save replaces the remembered login with r.
	Save(ctx context.Context, r models.Remembered) error
}

// SessionCatalogue lists the desktop sessions that can be launched.
type SessionCatalogue interface {
	// List returns every displayable session in directory order, then file
	// name order. Duplicate names keep the first occurrence.
	List(ctx context.Context) ([]models.SessionEntry, error)
}
