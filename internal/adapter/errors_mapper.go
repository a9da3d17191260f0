package adapter

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"net"
	"os"
	"syscall"
)

// mapReadError classifies a failed read on the daemon socket.
func mapReadError(op string, err error) error {
	switch {
	case errors.Is(err, io.EOF), errors.Is(err, io.ErrUnexpectedEOF):
		return fmt.Errorf("%w: %s", ErrPeerDisconnected, op)
	case errors.Is(err, net.ErrClosed):
		return fmt.Errorf("%w: %s", ErrConnClosed, op)
	case errors.Is(err, os.ErrDeadlineExceeded):
		return fmt.Errorf("%w: %s", ErrResponseTimeout, op)
	case errors.Is(err, syscall.ECONNRESET):
		return fmt.Errorf("%w: %s: %w", ErrPeerDisconnected, op, err)
	default:
		return fmt.Errorf("%w: %s: %w", ErrIO, op, err)
	}
}

// mapWriteError classifies a failed write on the daemon socket.
func mapWriteError(op string, err error) error {
	switch {
	case errors.Is(err, net.ErrClosed):
		return fmt.Errorf("%w: %s", ErrConnClosed, op)
	case errors.Is(err, syscall.EPIPE), errors.Is(err, syscall.ECONNRESET):
		return fmt.Errorf("%w: %s: %w", ErrPeerDisconnected, op, err)
	default:
		return fmt.Errorf("%w: %s: %w", ErrIO, op, err)
	}
}

// mapDialError classifies a failed connect to the socket at path.
func mapDialError(path string, err error) error {
	switch {
	case errors.Is(err, fs.ErrNotExist):
		return fmt.Errorf("%w: %s", ErrSocketNotFound, path)
	case errors.Is(err, syscall.ECONNREFUSED):
		return fmt.Errorf("%w: %s", ErrConnRefused, path)
	case errors.Is(err, fs.ErrPermission):
		return fmt.Errorf("%w: %s", ErrSocketPermission, path)
	default:
		return fmt.Errorf("%w: %s: %w", ErrConnect, path, err)
	}
}
