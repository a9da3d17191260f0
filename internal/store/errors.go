package store

import "errors"

// Sentinel errors returned by repository methods to signal well-known failure
// conditions. Callers should use [errors.Is] to match against these values.
var (
	// ErrNothingRemembered is returned by [RememberRepository.Load] when no
	// login has been saved yet.
	ErrNothingRemembered = errors.New("nothing remembered")

	// ErrRememberNotSaved is returned when the upsert completes without error
	// but affects no rows.
	ErrRememberNotSaved = errors.New("remembered login was not saved")

	// ErrInvalidDesktopEntry is returned for a .desktop file without a usable
	// [Desktop Entry] group.
	ErrInvalidDesktopEntry = errors.New("invalid desktop entry")
)
