// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package app contains the user-facing wording shared by the greeter's
// conversation, terminal UI, and process entry point.
//
// Msg* constants are shown on the login screen or printed to stderr when the
// greeter exits with an error. Keeping them in one place keeps the wording
// consistent between the screen and the exit message.
package app

const (
	// MsgTitleLogin is the window title while a login is possible.
	MsgTitleLogin = "Login"

	// MsgTitleLoginFailed is the window title after the daemon rejected the
	// credentials.
	MsgTitleLoginFailed = "Login failed"

	// MsgDaemonUnreachable is printed when the session daemon socket cannot
	// be reached at startup or on reconnect.
	MsgDaemonUnreachable = "session daemon is unreachable"

	// MsgConnectionLost is printed when an established connection to the
	// daemon fails mid-conversation.
	MsgConnectionLost = "connection to session daemon lost"

	// MsgProtocolError is printed when the daemon sent something the greeter
	// cannot interpret, or sent it at the wrong time.
	MsgProtocolError = "session daemon protocol error"

	// MsgLaunchRejected is printed when the daemon refused to start the
	// selected session.
	MsgLaunchRejected = "session daemon refused to start the session"

	// MsgNoSessions is printed when no desktop session was found and no
	// fallback command is configured.
	MsgNoSessions = "no desktop sessions found"

	// MsgInvalidConfig is printed when the configuration cannot be loaded.
	MsgInvalidConfig = "invalid configuration"

	// MsgUserQuit is printed when the greeter was closed from the keyboard.
	MsgUserQuit = "greeter closed"

	// MsgNotATerminal is printed when stdin is not a terminal.
	MsgNotATerminal = "greeter must run on a terminal"

	// MsgUnexpectedError covers everything else.
	MsgUnexpectedError = "unexpected error"

	// MsgHotKeys is the key help line at the bottom of the login screen.
	MsgHotKeys = "enter: submit │ tab: next field │ F2/F3: session │ ctrl+c: quit"
)
