// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package adapter

import (
	"context"
	"errors"
	"fmt"
	"net"
	"sync"
	"sync/atomic"
	"time"

	"github.com/MKhiriev/go-greeter/internal/config"
	"github.com/MKhiriev/go-greeter/internal/logger"
	"github.com/MKhiriev/go-greeter/models"
)

// Conn is one live connection to the session daemon. It allows at most one
// request in flight: Send fails while a response is pending and Await fails
// when nothing was sent.
type Conn struct {
	conn            net.Conn
	responseTimeout time.Duration
	logger          *logger.Logger

	mu      sync.Mutex
	pending bool
	broken  error

	closed    atomic.Bool
	closeOnce sync.Once
	closeErr  error
}

// NewConn wraps an established stream. responseTimeout bounds every Await;
// zero waits indefinitely.
func NewConn(conn net.Conn, responseTimeout time.Duration, log *logger.Logger) *Conn {
	return &Conn{conn: conn, responseTimeout: responseTimeout, logger: log}
}

// Send implements [Transport].
func (c *Conn) Send(ctx context.Context, req models.Request) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if err := c.usable(); err != nil {
		return err
	}
	if c.pending {
		return ErrRequestInFlight
	}

	body, err := EncodeRequest(req)
	if err != nil {
		return err
	}

	if deadline, ok := ctx.Deadline(); ok {
		_ = c.conn.SetWriteDeadline(deadline)
		defer c.conn.SetWriteDeadline(time.Time{})
	}

	if err = WriteFrame(c.conn, body); err != nil {
		c.broken = err
		c.logger.Err(err).Str("request", req.RequestType()).Msg("write to session daemon failed")
		return err
	}

	c.pending = true
	c.logger.Debug().Str("request", req.RequestType()).Int("bytes", len(body)).Msg("request sent")
	return nil
}

// Await implements [Transport].
func (c *Conn) Await(ctx context.Context) (models.Response, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if err := c.usable(); err != nil {
		return nil, err
	}
	if !c.pending {
		return nil, ErrNoRequestInFlight
	}

	stop := c.watchDeadline(ctx)
	resp, err := ReadResponse(c.conn)
	stop()

	c.pending = false
	if err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil && errors.Is(err, ErrIO) {
			err = fmt.Errorf("%w: %w", err, ctxErr)
		}
		if c.closed.Load() && !errors.Is(err, ErrConnClosed) {
			err = fmt.Errorf("%w: %w", ErrConnClosed, err)
		}
		c.broken = err
		c.logger.Err(err).Msg("read from session daemon failed")
		return nil, err
	}

	c.logger.Debug().Str("response", resp.ResponseType()).Msg("response received")
	return resp, nil
}

// RoundTrip implements [RoundTripper].
func (c *Conn) RoundTrip(ctx context.Context, req models.Request) (models.Response, error) {
	if err := c.Send(ctx, req); err != nil {
		return nil, err
	}
	return c.Await(ctx)
}

// Close implements [Transport]. It is safe to call from another goroutine
// while Await is blocked; the blocked read then fails with [ErrConnClosed].
func (c *Conn) Close() error {
	c.closeOnce.Do(func() {
		c.closed.Store(true)
		c.closeErr = c.conn.Close()
	})
	return c.closeErr
}

func (c *Conn) usable() error {
	if c.closed.Load() {
		return ErrConnClosed
	}
	if c.broken != nil {
		return fmt.Errorf("%w: connection unusable after earlier failure: %w", ErrIO, c.broken)
	}
	return nil
}

// watchDeadline applies the response timeout and the context deadline to the
// next read, and interrupts the read when ctx is cancelled. The returned
// function must be called once the read has finished.
func (c *Conn) watchDeadline(ctx context.Context) func() {
	var deadline time.Time
	if c.responseTimeout > 0 {
		deadline = time.Now().Add(c.responseTimeout)
	}
	if d, ok := ctx.Deadline(); ok && (deadline.IsZero() || d.Before(deadline)) {
		deadline = d
	}
	_ = c.conn.SetReadDeadline(deadline)

	done := make(chan struct{})
	finished := make(chan struct{})
	go func() {
		defer close(finished)
		select {
		case <-ctx.Done():
			_ = c.conn.SetReadDeadline(time.Unix(1, 0))
		case <-done:
		}
	}()

	return func() {
		close(done)
		<-finished
		_ = c.conn.SetReadDeadline(time.Time{})
	}
}

// socketDialer dials the daemon's Unix socket.
type socketDialer struct {
	cfg    config.GreeterAdapter
	logger *logger.Logger
}

// NewSocketDialer returns a [Dialer] for the socket described by cfg.
func NewSocketDialer(cfg config.GreeterAdapter, log *logger.Logger) Dialer {
	return &socketDialer{cfg: cfg, logger: log}
}

// Dial implements [Dialer].
func (d *socketDialer) Dial(ctx context.Context) (Transport, error) {
	dialer := net.Dialer{Timeout: d.cfg.DialTimeout}
	conn, err := dialer.DialContext(ctx, "unix", d.cfg.SocketPath)
	if err != nil {
		d.logger.Err(err).Str("socket", d.cfg.SocketPath).Msg("dial session daemon")
		return nil, mapDialError(d.cfg.SocketPath, err)
	}

	if d.cfg.RequireRootPeer {
		if err = checkPeerIsRoot(conn); err != nil {
			_ = conn.Close()
			d.logger.Err(err).Str("socket", d.cfg.SocketPath).Msg("peer credential check failed")
			return nil, err
		}
	}

	d.logger.Debug().Str("socket", d.cfg.SocketPath).Msg("connected to session daemon")
	return NewConn(conn, d.cfg.ResponseTimeout, d.logger), nil
}
