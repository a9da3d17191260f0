// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package config

import (
	"time"
)

// StructuredConfig is the top-level configuration container shared by the
// greeter and the fake session daemon. It is populated by merging values from
// environment variables, command-line flags, and an optional JSON file.
//
// Struct tags:
//   - envPrefix: prefix applied to all nested env tag lookups (caarlos0/env).
//   - env:       direct environment variable name for scalar fields.
type StructuredConfig struct {
	// Greetd holds the daemon socket location and protocol bounds. The socket
	// path is read from GREETD_SOCK, the variable the daemon exports to the
	// greeter it spawns.
	Greetd Greetd

	// Identity holds the username and session preselected at startup.
	Identity Identity `envPrefix:"GREETER_"`

	// Launch holds the start_session command construction settings.
	Launch Launch `envPrefix:"GREETER_LAUNCH_"`

	// Storage holds the remember-store database settings.
	Storage Storage `envPrefix:"GREETER_STORAGE_"`

	// Log holds log destination and verbosity.
	Log Log `envPrefix:"GREETER_LOG_"`

	// FakeGreet holds settings used only by the development daemon.
	FakeGreet FakeGreet `envPrefix:"FAKEGREET_"`

	// JSONFilePath is the optional path to a JSON (with comments) config file.
	// Populated via GREETER_CONFIG or the -c / --config flag.
	JSONFilePath string `env:"GREETER_CONFIG"`
}

// Greetd describes how to reach the session daemon and how long to trust it.
type Greetd struct {
	// SocketPath is the daemon's Unix socket.
	// Env: GREETD_SOCK
	SocketPath string `env:"GREETD_SOCK"`

	// DialTimeout bounds the connect call.
	// Env: GREETER_DIAL_TIMEOUT
	DialTimeout time.Duration `env:"GREETER_DIAL_TIMEOUT"`

	// ResponseTimeout bounds every wait for a response. Zero waits forever.
	// Env: GREETER_RESPONSE_TIMEOUT
	ResponseTimeout time.Duration `env:"GREETER_RESPONSE_TIMEOUT"`

	// MaxPromptRounds bounds the number of auth_message responses in one
	// conversation.
	// Env: GREETER_MAX_PROMPT_ROUNDS
	MaxPromptRounds int `env:"GREETER_MAX_PROMPT_ROUNDS"`

	// RequireRootPeer rejects a socket whose peer process is not uid 0.
	// Env: GREETER_REQUIRE_ROOT_PEER
	RequireRootPeer bool `env:"GREETER_REQUIRE_ROOT_PEER"`
}

// Identity holds startup defaults for the login form.
type Identity struct {
	// Username, when set, issues create_session immediately on startup.
	// Env: GREETER_USERNAME
	Username string `env:"USERNAME"`

	// Session is the name of the session preselected in the picker.
	// Env: GREETER_SESSION
	Session string `env:"SESSION"`
}

// Launch controls how the start_session command is built.
type Launch struct {
	// Wrapper is the pre-exec script placed before the session command.
	// Env: GREETER_LAUNCH_WRAPPER
	Wrapper string `env:"WRAPPER"`

	// NoWrapper sends the session command alone.
	// Env: GREETER_LAUNCH_NO_WRAPPER
	NoWrapper bool `env:"NO_WRAPPER"`

	// ExportSessionType adds XDG_SESSION_TYPE and XDG_SESSION_DESKTOP to the
	// session environment.
	// Env: GREETER_LAUNCH_EXPORT_SESSION_TYPE
	ExportSessionType bool `env:"EXPORT_SESSION_TYPE"`

	// FallbackCommand is offered as the only session when no desktop entries
	// are found.
	// Env: GREETER_LAUNCH_FALLBACK_COMMAND
	FallbackCommand string `env:"FALLBACK_COMMAND"`

	// SessionDirs lists directories scanned for .desktop files, in order.
	// Env: GREETER_LAUNCH_SESSION_DIRS (colon separated)
	SessionDirs []string `env:"SESSION_DIRS" envSeparator:":"`
}

// Storage groups persistence settings.
type Storage struct {
	// DB holds the remember-store connection settings.
	DB DB `envPrefix:"DB_"`
}

// DB holds the SQLite remember-store location.
type DB struct {
	// DSN is the SQLite data source name (e.g. "/var/lib/greeter/state.db").
	// Empty disables the remember store.
	// Env: GREETER_STORAGE_DB_DSN
	DSN string `env:"DSN"`
}

// Log holds log output settings.
type Log struct {
	// FilePath is the log file. The greeter never logs to its own terminal.
	// Env: GREETER_LOG_FILE
	FilePath string `env:"FILE"`

	// Level is a zerolog level name ("debug", "info", ...).
	// Env: GREETER_LOG_LEVEL
	Level string `env:"LEVEL"`
}

// FakeGreet holds settings for the development daemon.
type FakeGreet struct {
	// UsersFile is the YAML file with accepted users.
	// Env: FAKEGREET_USERS_FILE
	UsersFile string `env:"USERS_FILE"`

	// ShutdownTimeout bounds graceful shutdown after a signal.
	// Env: FAKEGREET_SHUTDOWN_TIMEOUT
	ShutdownTimeout time.Duration `env:"SHUTDOWN_TIMEOUT"`
}

// Defaults applied to zero values after all sources are merged.
const (
	DefaultWrapper         = "/etc/ly/wsetup.sh"
	DefaultMaxPromptRounds = 32
	DefaultDialTimeout     = 5 * time.Second
	DefaultShutdownTimeout = 5 * time.Second
	DefaultLogLevel        = "info"
)

// DefaultSessionDirs are scanned when no session directory is configured.
var DefaultSessionDirs = []string{"/usr/share/wayland-sessions", "/usr/share/xsessions"}

// applyDefaults fills zero fields that have a documented default.
func (cfg *StructuredConfig) applyDefaults() {
	if cfg.Greetd.DialTimeout == 0 {
		cfg.Greetd.DialTimeout = DefaultDialTimeout
	}
	if cfg.Greetd.MaxPromptRounds == 0 {
		cfg.Greetd.MaxPromptRounds = DefaultMaxPromptRounds
	}
	if cfg.Launch.Wrapper == "" && !cfg.Launch.NoWrapper {
		cfg.Launch.Wrapper = DefaultWrapper
	}
	if cfg.Launch.NoWrapper {
		cfg.Launch.Wrapper = ""
	}
	if len(cfg.Launch.SessionDirs) == 0 {
		cfg.Launch.SessionDirs = append([]string(nil), DefaultSessionDirs...)
	}
	if cfg.Log.Level == "" {
		cfg.Log.Level = DefaultLogLevel
	}
	if cfg.FakeGreet.ShutdownTimeout == 0 {
		cfg.FakeGreet.ShutdownTimeout = DefaultShutdownTimeout
	}
}
