// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package config

import (
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseEnv_AllFields(t *testing.T) {
	// Arrange
	envVars := map[string]string{
		"GREETER_CONFIG": "/etc/greeter/config.jsonc",

		"GREETD_SOCK":               "/run/greetd.sock",
		"GREETER_DIAL_TIMEOUT":      "2s",
		"GREETER_RESPONSE_TIMEOUT":  "30s",
		"GREETER_MAX_PROMPT_ROUNDS": "8",
		"GREETER_REQUIRE_ROOT_PEER": "true",

		"GREETER_USERNAME": "alice",
		"GREETER_SESSION":  "Sway",

		"GREETER_LAUNCH_WRAPPER":             "/usr/local/bin/wrap",
		"GREETER_LAUNCH_EXPORT_SESSION_TYPE": "true",
		"GREETER_LAUNCH_FALLBACK_COMMAND":    "sway",
		"GREETER_LAUNCH_SESSION_DIRS":        "/a:/b",

		// Storage has nested prefixes: GREETER_STORAGE_ + DB_
		"GREETER_STORAGE_DB_DSN": "/var/lib/greeter/state.db",

		"GREETER_LOG_FILE":  "/var/log/greeter.log",
		"GREETER_LOG_LEVEL": "debug",

		"FAKEGREET_USERS_FILE":       "users.yaml",
		"FAKEGREET_SHUTDOWN_TIMEOUT": "1s",
	}
	setEnvVars(t, envVars)

	// Act
	cfg, err := parseEnv()

	// Assert
	require.NoError(t, err)

	assert.Equal(t, "/etc/greeter/config.jsonc", cfg.JSONFilePath)

	assert.Equal(t, "/run/greetd.sock", cfg.Greetd.SocketPath)
	assert.Equal(t, 2*time.Second, cfg.Greetd.DialTimeout)
	assert.Equal(t, 30*time.Second, cfg.Greetd.ResponseTimeout)
	assert.Equal(t, 8, cfg.Greetd.MaxPromptRounds)
	assert.True(t, cfg.Greetd.RequireRootPeer)

	assert.Equal(t, "alice", cfg.Identity.Username)
	assert.Equal(t, "Sway", cfg.Identity.Session)

	assert.Equal(t, "/usr/local/bin/wrap", cfg.Launch.Wrapper)
	assert.True(t, cfg.Launch.ExportSessionType)
	assert.Equal(t, "sway", cfg.Launch.FallbackCommand)
	assert.Equal(t, []string{"/a", "/b"}, cfg.Launch.SessionDirs)

	assert.Equal(t, "/var/lib/greeter/state.db", cfg.Storage.DB.DSN)

	assert.Equal(t, "/var/log/greeter.log", cfg.Log.FilePath)
	assert.Equal(t, "debug", cfg.Log.Level)

	assert.Equal(t, "users.yaml", cfg.FakeGreet.UsersFile)
	assert.Equal(t, time.Second, cfg.FakeGreet.ShutdownTimeout)
}

func TestParseEnv_PartialFields(t *testing.T) {
	// Arrange
	envVars := map[string]string{
		"GREETD_SOCK":      "/run/greetd.sock",
		"GREETER_USERNAME": "bob",
	}
	setEnvVars(t, envVars)

	// Act
	cfg, err := parseEnv()

	// Assert
	require.NoError(t, err)

	assert.Equal(t, "/run/greetd.sock", cfg.Greetd.SocketPath)
	assert.Zero(t, cfg.Greetd.ResponseTimeout)
	assert.Equal(t, "bob", cfg.Identity.Username)
	assert.Empty(t, cfg.Identity.Session)

	// Others untouched
	assert.Equal(t, Launch{}, cfg.Launch)
	assert.Empty(t, cfg.Storage.DB.DSN)
	assert.Empty(t, cfg.JSONFilePath)
}

func TestParseEnv_EmptyEnv(t *testing.T) {
	// Arrange
	clearEnvVars(t)

	// Act
	cfg, err := parseEnv()

	// Assert
	require.NoError(t, err)
	assert.Equal(t, &StructuredConfig{}, cfg)
}

func TestParseEnv_InvalidDuration(t *testing.T) {
	// Arrange
	setEnvVars(t, map[string]string{
		"GREETER_RESPONSE_TIMEOUT": "soon",
	})

	// Act
	_, err := parseEnv()

	// Assert: Greetd has no envPrefix, so the key maps to ResponseTimeout
	require.Error(t, err)
	assert.Contains(t, err.Error(), "ResponseTimeout")
}

func TestParseEnv_InvalidInt(t *testing.T) {
	setEnvVars(t, map[string]string{
		"GREETER_MAX_PROMPT_ROUNDS": "many",
	})

	_, err := parseEnv()

	require.Error(t, err)
}

func TestParseEnv_DurationFormats(t *testing.T) {
	tests := []struct {
		name     string
		envValue string
		expected time.Duration
	}{
		{"minutes", "2m", 2 * time.Minute},
		{"seconds", "30s", 30 * time.Second},
		{"millis", "250ms", 250 * time.Millisecond},
		{"combined", "1m30s", 90 * time.Second},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			// Arrange
			setEnvVars(t, map[string]string{
				"GREETER_RESPONSE_TIMEOUT": tt.envValue,
			})

			// Act
			cfg, err := parseEnv()

			// Assert
			require.NoError(t, err)
			assert.Equal(t, tt.expected, cfg.Greetd.ResponseTimeout)
		})
	}
}

// Helpers

var envKeys = []string{
	"GREETER_CONFIG",

	"GREETD_SOCK",
	"GREETER_DIAL_TIMEOUT",
	"GREETER_RESPONSE_TIMEOUT",
	"GREETER_MAX_PROMPT_ROUNDS",
	"GREETER_REQUIRE_ROOT_PEER",

	"GREETER_USERNAME",
	"GREETER_SESSION",

	"GREETER_LAUNCH_WRAPPER",
	"GREETER_LAUNCH_NO_WRAPPER",
	"GREETER_LAUNCH_EXPORT_SESSION_TYPE",
	"GREETER_LAUNCH_FALLBACK_COMMAND",
	"GREETER_LAUNCH_SESSION_DIRS",

	"GREETER_STORAGE_DB_DSN",

	"GREETER_LOG_FILE",
	"GREETER_LOG_LEVEL",

	"FAKEGREET_USERS_FILE",
	"FAKEGREET_SHUTDOWN_TIMEOUT",
}

func setEnvVars(t *testing.T, vars map[string]string) {
	t.Helper()
	clearEnvVars(t)
	for k, v := range vars {
		k := k
		require.NoError(t, os.Setenv(k, v))
		t.Cleanup(func() { _ = os.Unsetenv(k) })
	}
}

func clearEnvVars(t *testing.T) {
	t.Helper()
	for _, k := range envKeys {
		k := k
		if old, ok := os.LookupEnv(k); ok {
			t.Cleanup(func() { _ = os.Setenv(k, old) })
		}
		_ = os.Unsetenv(k)
	}
}
