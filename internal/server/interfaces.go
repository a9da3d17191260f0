package server

import (
	"context"
	"net"
)

// Server defines the lifecycle contract of the daemon listener.
//
// Implementations block in [Run] until ctx is done or [Shutdown] is called
// and release the socket in [Shutdown].
type Server interface {
	// Run accepts connections and blocks until the server stops.
	Run(ctx context.Context) error

	// Shutdown stops accepting, waits for open connections up to the
	// shutdown timeout and removes the socket file.
	Shutdown()
}

// ConnHandler serves one accepted connection. Serve must return once ctx is
// done.
type ConnHandler interface {
	Serve(ctx context.Context, conn net.Conn)
}
