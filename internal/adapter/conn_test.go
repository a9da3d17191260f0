package adapter

import (
	"context"
	"io"
	"net"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/MKhiriev/go-greeter/internal/config"
	"github.com/MKhiriev/go-greeter/internal/logger"
	"github.com/MKhiriev/go-greeter/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// ── helpers ───────────────────────────────────────────────────────────────────

// shortSocketPath keeps the path under the sun_path limit regardless of the
// test name length.
func shortSocketPath(t *testing.T) string {
	t.Helper()
	dir, err := os.MkdirTemp("", "gg")
	require.NoError(t, err)
	t.Cleanup(func() { _ = os.RemoveAll(dir) })
	return filepath.Join(dir, "d.sock")
}

func listen(t *testing.T) (net.Listener, string) {
	t.Helper()
	path := shortSocketPath(t)
	ln, err := net.Listen("unix", path)
	require.NoError(t, err)
	t.Cleanup(func() { _ = ln.Close() })
	return ln, path
}

// newConnPair returns a client Conn and the daemon side of the same socket.
func newConnPair(t *testing.T, responseTimeout time.Duration) (*Conn, net.Conn) {
	t.Helper()
	ln, path := listen(t)

	accepted := make(chan net.Conn, 1)
	go func() {
		c, err := ln.Accept()
		if err == nil {
			accepted <- c
		}
		close(accepted)
	}()

	raw, err := net.Dial("unix", path)
	require.NoError(t, err)

	peer, ok := <-accepted
	require.True(t, ok)
	t.Cleanup(func() { _ = peer.Close() })

	conn := NewConn(raw, responseTimeout, logger.Nop())
	t.Cleanup(func() { _ = conn.Close() })
	return conn, peer
}

// serveOnce reads one request from peer and answers with resp.
func serveOnce(t *testing.T, peer net.Conn, resp models.Response) <-chan models.Request {
	t.Helper()
	got := make(chan models.Request, 1)
	go func() {
		defer close(got)
		req, err := ReadRequest(peer)
		if err != nil {
			return
		}
		got <- req
		_ = WriteResponse(peer, resp)
	}()
	return got
}

// ── Conn ──────────────────────────────────────────────────────────────────────

func TestConn_RoundTrip(t *testing.T) {
	conn, peer := newConnPair(t, 0)
	got := serveOnce(t, peer, models.AuthMessage{Kind: models.AuthMessageSecret, Text: "Password:"})

	resp, err := conn.RoundTrip(context.Background(), models.CreateSession{Username: "alice"})

	require.NoError(t, err)
	assert.Equal(t, models.AuthMessage{Kind: models.AuthMessageSecret, Text: "Password:"}, resp)
	assert.Equal(t, models.CreateSession{Username: "alice"}, <-got)
}

func TestConn_SequentialRoundTrips(t *testing.T) {
	conn, peer := newConnPair(t, 0)
	ctx := context.Background()

	serveOnce(t, peer, models.AuthMessage{Kind: models.AuthMessageSecret, Text: "Password:"})
	_, err := conn.RoundTrip(ctx, models.CreateSession{Username: "alice"})
	require.NoError(t, err)

	got := serveOnce(t, peer, models.Success{})
	resp, err := conn.RoundTrip(ctx, models.Reply("pw"))
	require.NoError(t, err)
	assert.Equal(t, models.Success{}, resp)
	assert.Equal(t, models.Reply("pw"), <-got)
}

func TestConn_SendWhilePending(t *testing.T) {
	conn, peer := newConnPair(t, 0)
	ctx := context.Background()

	// drain the first request so the write completes
	go func() { _, _ = ReadRequest(peer) }()

	require.NoError(t, conn.Send(ctx, models.CreateSession{Username: "alice"}))
	err := conn.Send(ctx, models.CancelSession{})

	assert.ErrorIs(t, err, ErrRequestInFlight)
	assert.ErrorIs(t, err, ErrProtocolViolation)
}

func TestConn_AwaitWithoutSend(t *testing.T) {
	conn, _ := newConnPair(t, 0)

	_, err := conn.Await(context.Background())

	assert.ErrorIs(t, err, ErrNoRequestInFlight)
}

func TestConn_PeerDisconnectMidConversation(t *testing.T) {
	conn, peer := newConnPair(t, 0)
	go func() {
		_, _ = ReadRequest(peer)
		_ = peer.Close()
	}()

	_, err := conn.RoundTrip(context.Background(), models.Reply("pw"))
	assert.ErrorIs(t, err, ErrPeerDisconnected)

	// the connection is not reusable afterwards
	err = conn.Send(context.Background(), models.CancelSession{})
	assert.ErrorIs(t, err, ErrIO)
}

func TestConn_PartialFrameIsDisconnect(t *testing.T) {
	conn, peer := newConnPair(t, 0)
	go func() {
		_, _ = ReadRequest(peer)
		frame := frameOf(`{"type":"success"}`)
		_, _ = peer.Write(frame[:len(frame)-2])
		_ = peer.Close()
	}()

	_, err := conn.RoundTrip(context.Background(), models.CancelSession{})
	assert.ErrorIs(t, err, ErrPeerDisconnected)
}

func TestConn_MalformedResponse(t *testing.T) {
	conn, peer := newConnPair(t, 0)
	go func() {
		_, _ = ReadRequest(peer)
		_ = WriteFrame(peer, []byte(`{"type":"greeting"}`))
	}()

	_, err := conn.RoundTrip(context.Background(), models.CancelSession{})
	assert.ErrorIs(t, err, ErrMalformedMessage)
}

func TestConn_ResponseTimeout(t *testing.T) {
	conn, peer := newConnPair(t, 50*time.Millisecond)
	go func() { _, _ = ReadRequest(peer) }()

	_, err := conn.RoundTrip(context.Background(), models.CreateSession{Username: "alice"})

	assert.ErrorIs(t, err, ErrResponseTimeout)
	assert.ErrorIs(t, err, ErrIO)
}

func TestConn_ContextCancelInterruptsAwait(t *testing.T) {
	conn, peer := newConnPair(t, 0)
	go func() { _, _ = ReadRequest(peer) }()

	ctx, cancel := context.WithCancel(context.Background())
	time.AfterFunc(30*time.Millisecond, cancel)

	_, err := conn.RoundTrip(ctx, models.CreateSession{Username: "alice"})

	assert.ErrorIs(t, err, ErrIO)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestConn_CloseUnblocksAwait(t *testing.T) {
	conn, peer := newConnPair(t, 0)
	go func() { _, _ = ReadRequest(peer) }()

	time.AfterFunc(30*time.Millisecond, func() { _ = conn.Close() })

	_, err := conn.RoundTrip(context.Background(), models.CreateSession{Username: "alice"})
	assert.ErrorIs(t, err, ErrConnClosed)

	assert.NoError(t, conn.Close(), "second close returns the first result")
	assert.ErrorIs(t, conn.Send(context.Background(), models.CancelSession{}), ErrConnClosed)
}

// ── socketDialer ──────────────────────────────────────────────────────────────

func TestSocketDialer_Dial(t *testing.T) {
	ln, path := listen(t)
	go func() {
		c, err := ln.Accept()
		if err != nil {
			return
		}
		defer c.Close()
		req, err := ReadRequest(c)
		if err != nil {
			return
		}
		if _, ok := req.(models.CancelSession); ok {
			_ = WriteResponse(c, models.Success{})
		}
	}()

	d := NewSocketDialer(config.GreeterAdapter{SocketPath: path, DialTimeout: time.Second}, logger.Nop())
	tr, err := d.Dial(context.Background())
	require.NoError(t, err)
	defer tr.Close()

	resp, err := tr.RoundTrip(context.Background(), models.CancelSession{})
	require.NoError(t, err)
	assert.Equal(t, models.Success{}, resp)
}

func TestSocketDialer_MissingSocket(t *testing.T) {
	path := shortSocketPath(t)
	d := NewSocketDialer(config.GreeterAdapter{SocketPath: path}, logger.Nop())

	_, err := d.Dial(context.Background())

	assert.ErrorIs(t, err, ErrSocketNotFound)
	assert.ErrorIs(t, err, ErrConnect)
}

func TestSocketDialer_NotASocket(t *testing.T) {
	path := shortSocketPath(t)
	require.NoError(t, os.WriteFile(path, nil, 0o600))
	d := NewSocketDialer(config.GreeterAdapter{SocketPath: path}, logger.Nop())

	_, err := d.Dial(context.Background())

	assert.ErrorIs(t, err, ErrConnect)
}

func TestSocketDialer_RequireRootPeer(t *testing.T) {
	ln, path := listen(t)
	go func() {
		c, err := ln.Accept()
		if err != nil {
			return
		}
		defer c.Close()
		_, _ = io.Copy(io.Discard, c)
	}()

	d := NewSocketDialer(config.GreeterAdapter{SocketPath: path, RequireRootPeer: true}, logger.Nop())
	tr, err := d.Dial(context.Background())

	if os.Geteuid() == 0 {
		require.NoError(t, err)
		_ = tr.Close()
		return
	}
	assert.ErrorIs(t, err, ErrPeerNotRoot)
	assert.ErrorIs(t, err, ErrConnect)
}
