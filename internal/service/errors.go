package service

import (
	"errors"
	"fmt"

	"github.com/MKhiriev/go-greeter/internal/adapter"
)

var (
	// ErrUnexpectedResponse means a response arrived while nothing was
	// awaited, or a response variant that the current state never accepts.
	ErrUnexpectedResponse = fmt.Errorf("%w: unexpected response", adapter.ErrProtocolViolation)
	// ErrTooManyPrompts means the daemon exceeded the configured prompt bound.
	ErrTooManyPrompts = fmt.Errorf("%w: too many prompts in one conversation", adapter.ErrProtocolViolation)
	// ErrNotAuthenticated means a launch was attempted before success.
	ErrNotAuthenticated = fmt.Errorf("%w: session launch before authentication", adapter.ErrProtocolViolation)
	// ErrLaunchRejected means start_session was answered with anything but
	// success.
	ErrLaunchRejected = fmt.Errorf("%w: session launch rejected", adapter.ErrProtocolViolation)

	// ErrAlreadyStarted means Start was called twice.
	ErrAlreadyStarted = errors.New("conversation already started")

	// ErrNoSessions means no desktop entry was found and no fallback command
	// is configured.
	ErrNoSessions = errors.New("no sessions available")
)
