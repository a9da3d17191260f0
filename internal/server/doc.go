// Package server runs the development session daemon's Unix socket listener.
//
// It owns the listener lifecycle: stale socket removal, one goroutine per
// accepted connection, and graceful shutdown bounded by a timeout.
package server
