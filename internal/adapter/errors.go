package adapter

import (
	"errors"
	"fmt"
)

// Transport error taxonomy. Every error returned by this package wraps one of
// these roots, so callers classify failures with [errors.Is].
var (
	// ErrConnect means the daemon socket could not be reached: daemon not
	// running, permission denied, stale socket path, or a peer that failed
	// the credential check.
	ErrConnect = errors.New("cannot connect to session daemon")

	// ErrIO means a read or write on an established connection failed.
	ErrIO = errors.New("session daemon i/o error")

	// ErrFraming means a frame could not be read completely or its body could
	// not be parsed.
	ErrFraming = errors.New("session daemon framing error")

	// ErrProtocolViolation means a message arrived, or was about to be sent,
	// in a state that does not allow it.
	ErrProtocolViolation = errors.New("session daemon protocol violation")
)

var (
	ErrPeerDisconnected = fmt.Errorf("%w: peer disconnected", ErrFraming)
	ErrMalformedMessage = fmt.Errorf("%w: malformed message", ErrFraming)
	ErrFrameTooLarge    = fmt.Errorf("%w: frame too large", ErrFraming)

	ErrRequestInFlight   = fmt.Errorf("%w: a request is already in flight", ErrProtocolViolation)
	ErrNoRequestInFlight = fmt.Errorf("%w: no request in flight", ErrProtocolViolation)
	ErrUnknownRequest    = fmt.Errorf("%w: unknown request variant", ErrProtocolViolation)

	ErrConnClosed      = fmt.Errorf("%w: connection closed", ErrIO)
	ErrResponseTimeout = fmt.Errorf("%w: timed out waiting for response", ErrIO)

	ErrSocketNotFound   = fmt.Errorf("%w: socket does not exist", ErrConnect)
	ErrConnRefused      = fmt.Errorf("%w: connection refused", ErrConnect)
	ErrSocketPermission = fmt.Errorf("%w: permission denied", ErrConnect)
	ErrPeerNotRoot      = fmt.Errorf("%w: socket peer is not root", ErrConnect)
)

// IsFatal reports whether err ends the greeter. Every transport failure is
// fatal; daemon error responses are not transport failures and never reach
// this function wrapped in one of the roots above.
func IsFatal(err error) bool {
	return errors.Is(err, ErrConnect) ||
		errors.Is(err, ErrIO) ||
		errors.Is(err, ErrFraming) ||
		errors.Is(err, ErrProtocolViolation)
}
