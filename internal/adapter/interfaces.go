// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package adapter speaks the session daemon's IPC protocol.
//
// It has two layers:
//   - the wire codec (codec.go): one length-prefixed JSON frame per message,
//     with a 4-byte native-endian prefix counting body bytes only;
//   - the transport session ([Conn]): one live Unix socket connection with
//     a strict one-in-flight discipline, so a second request can never be
//     sent before the previous response has been read.
//
// Errors are classified by the roots in errors.go ([ErrConnect], [ErrIO],
// [ErrFraming], [ErrProtocolViolation]).
package adapter

import (
	"context"

	"github.com/MKhiriev/go-greeter/models"
)

//go:generate mockgen -source=interfaces.go -destination=../mock/adapter_mock.go -package=mock

// RoundTripper sends one request and waits for its response.
type RoundTripper interface {
	// RoundTrip sends req and blocks until exactly one response frame has
	// been decoded. Returns [ErrRequestInFlight] if another request is still
	// unanswered.
	RoundTrip(ctx context.Context, req models.Request) (models.Response, error)
}

// Transport is a live connection to the session daemon.
type Transport interface {
	RoundTripper

	// Send encodes and writes req. Fails with [ErrIO] on write failure and
	// with [ErrRequestInFlight] if the previous request is unanswered.
	Send(ctx context.Context, req models.Request) error

	// Await blocks until the response to the outstanding request has been
	// decoded. Fails with [ErrNoRequestInFlight] when nothing was sent.
	Await(ctx context.Context) (models.Response, error)

	// Close drops the connection. It never sends a cancel handshake.
	Close() error
}

// Dialer opens fresh connections. Reconnection is always explicit: callers
// close the old [Transport] and dial a new one.
type Dialer interface {
	Dial(ctx context.Context) (Transport, error)
}
