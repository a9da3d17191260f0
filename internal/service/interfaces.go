// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package service

import (
	"context"

	"github.com/MKhiriev/go-greeter/internal/adapter"
	"github.com/MKhiriev/go-greeter/models"
)

// LaunchDispatcher builds and sends the start_session request once a
// conversation is authenticated.
type LaunchDispatcher interface {
	// Command returns the argv sent to the daemon for entry: the wrapper
	// followed by the entry's exec string, or the exec string alone when no
	// wrapper is configured.
	Command(entry models.SessionEntry) []string

	// Request returns the complete start_session request for entry.
	Request(entry models.SessionEntry) models.StartSession

	// Launch moves conv to LaunchRequested, performs the start_session round
	// trip on rt, and returns nil only if the daemon answered success. Any
	// other answer wraps [ErrLaunchRejected].
	Launch(ctx context.Context, rt adapter.RoundTripper, conv *Conversation, entry models.SessionEntry) error
}

// RememberService persists the identity and session of the last successful
// login. Failures are logged and swallowed; remembering is best effort.
type RememberService interface {
	// Recall returns the last remembered login, if any.
	Recall(ctx context.Context) (models.Remembered, bool)

	// Remember stores r as the last successful login.
	Remember(ctx context.Context, r models.Remembered)
}

// IDGenerator produces unique identifiers for conversations.
type IDGenerator interface {
	Generate() string
}
