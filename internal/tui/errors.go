package tui

import "errors"

var (
	// ErrUserQuit is returned when the greeter was closed from the keyboard.
	ErrUserQuit = errors.New("user quit")

	// ErrNotAuthenticated is returned when the program ended without a
	// fatal error and without an authenticated conversation.
	ErrNotAuthenticated = errors.New("terminal ui ended before authentication")

	// ErrNotATerminal is returned by [NewTerminalGuard] for a file that is
	// not a terminal.
	ErrNotATerminal = errors.New("not a terminal")
)
