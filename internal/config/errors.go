package config

import "errors"

// Validation errors returned when required configuration is incomplete or
// invalid.
var (
	// ErrMissingSocket means no daemon socket was given (GREETD_SOCK unset
	// and no --socket flag or config entry).
	ErrMissingSocket = errors.New("session daemon socket path is not configured")
	// ErrMissingUsersFile means the fake daemon has no users file.
	ErrMissingUsersFile = errors.New("users file is not configured")
	// ErrInvalidAdapterConfigs indicates invalid transport settings
	// (for example, a negative timeout).
	ErrInvalidAdapterConfigs = errors.New("invalid adapter configuration")
	// ErrInvalidConversationConfigs indicates invalid conversation bounds.
	ErrInvalidConversationConfigs = errors.New("invalid conversation configuration")
	// ErrInvalidLaunchConfigs indicates no session source is configured.
	ErrInvalidLaunchConfigs = errors.New("invalid launch configuration")
)
