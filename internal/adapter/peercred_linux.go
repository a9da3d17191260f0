//go:build linux

package adapter

import (
	"fmt"
	"net"

	"golang.org/x/sys/unix"
)

// checkPeerIsRoot reads SO_PEERCRED from the socket and fails unless the
// process on the other end runs as uid 0.
func checkPeerIsRoot(conn net.Conn) error {
	uc, ok := conn.(*net.UnixConn)
	if !ok {
		return fmt.Errorf("%w: %T is not a unix socket", ErrPeerNotRoot, conn)
	}

	raw, err := uc.SyscallConn()
	if err != nil {
		return fmt.Errorf("%w: %w", ErrConnect, err)
	}

	var (
		cred    *unix.Ucred
		credErr error
	)
	err = raw.Control(func(fd uintptr) {
		cred, credErr = unix.GetsockoptUcred(int(fd), unix.SOL_SOCKET, unix.SO_PEERCRED)
	})
	if err != nil {
		return fmt.Errorf("%w: %w", ErrConnect, err)
	}
	if credErr != nil {
		return fmt.Errorf("%w: read peer credentials: %w", ErrConnect, credErr)
	}

	if cred.Uid != 0 {
		return fmt.Errorf("%w: uid %d pid %d", ErrPeerNotRoot, cred.Uid, cred.Pid)
	}
	return nil
}
