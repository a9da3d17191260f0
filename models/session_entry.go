package models

// SessionKind is the display server family a desktop session runs on.
type SessionKind string

const (
	SessionKindWayland SessionKind = "wayland"
	SessionKindX11     SessionKind = "x11"
)

// SessionEntry is one launchable desktop session discovered from a
// .desktop file.
type SessionEntry struct {
	// Name is the human-readable name shown in the session picker.
	Name string
	// Exec is the command line from the Exec key, passed to the daemon as a
	// single element.
	Exec string
	// Kind is derived from the directory the entry was found in.
	Kind SessionKind
	// Path is the .desktop file the entry was read from. Empty for the
	// configured fallback entry.
	Path string
}

// Remembered is the identity and session picked on the last successful
// login.
type Remembered struct {
	Username string
	Session  string
}
