// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package models

import (
	"errors"
	"fmt"
)

// Wire values of the "type" field for responses received from the daemon.
const (
	ResponseTypeAuthMessage = "auth_message"
	ResponseTypeSuccess     = "success"
	ResponseTypeError       = "error"
)

// AuthMessageKind tells the greeter how to treat an auth message.
type AuthMessageKind string

const (
	// AuthMessageVisible asks for a reply that may be echoed.
	AuthMessageVisible AuthMessageKind = "visible"
	// AuthMessageSecret asks for a reply that must be masked.
	AuthMessageSecret AuthMessageKind = "secret"
	// AuthMessageInfo only has to be shown and acknowledged.
	AuthMessageInfo AuthMessageKind = "info"
	// AuthMessageError only has to be shown and acknowledged.
	AuthMessageError AuthMessageKind = "error"
)

// Valid reports whether k is one of the four known kinds.
func (k AuthMessageKind) Valid() bool {
	switch k {
	case AuthMessageVisible, AuthMessageSecret, AuthMessageInfo, AuthMessageError:
		return true
	}
	return false
}

// NeedsReply reports whether the user has to type something for this kind.
func (k AuthMessageKind) NeedsReply() bool {
	return k == AuthMessageVisible || k == AuthMessageSecret
}

// ErrorKind distinguishes recoverable authentication failures from other
// daemon errors.
type ErrorKind string

const (
	ErrorKindGeneric ErrorKind = "error"
	ErrorKindAuth    ErrorKind = "auth_error"
)

// Valid reports whether k is a known error kind.
func (k ErrorKind) Valid() bool {
	return k == ErrorKindGeneric || k == ErrorKindAuth
}

// Targets for errors.Is on an [ErrorResponse].
var (
	ErrAuthFailure    = errors.New("authentication failed")
	ErrGenericFailure = errors.New("session daemon error")
)

// Response is a message received from the session daemon. The set of
// implementations is closed.
type Response interface {
	// ResponseType returns the wire value of the "type" field.
	ResponseType() string

	isResponse()
}

// AuthMessage is a daemon prompt.
type AuthMessage struct {
	Kind AuthMessageKind `json:"auth_message_type"`
	Text string          `json:"auth_message"`
}

// Success acknowledges the immediately preceding request.
type Success struct{}

// ErrorResponse reports that the immediately preceding request failed.
type ErrorResponse struct {
	Kind        ErrorKind `json:"error_type"`
	Description string    `json:"description"`
}

func (AuthMessage) ResponseType() string   { return ResponseTypeAuthMessage }
func (Success) ResponseType() string       { return ResponseTypeSuccess }
func (ErrorResponse) ResponseType() string { return ResponseTypeError }

func (AuthMessage) isResponse()   {}
func (Success) isResponse()       {}
func (ErrorResponse) isResponse() {}

// Error implements error so a daemon error can travel up a call chain.
func (e ErrorResponse) Error() string {
	if e.Kind == ErrorKindAuth {
		return fmt.Sprintf("auth error: %s", e.Description)
	}
	return fmt.Sprintf("daemon error: %s", e.Description)
}

// Is matches [ErrAuthFailure] for auth errors and [ErrGenericFailure] for the
// rest.
func (e ErrorResponse) Is(target error) bool {
	switch target {
	case ErrAuthFailure:
		return e.Kind == ErrorKindAuth
	case ErrGenericFailure:
		return e.Kind != ErrorKindAuth
	}
	return false
}
