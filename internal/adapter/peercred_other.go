//go:build !linux

package adapter

import (
	"fmt"
	"net"
)

// checkPeerIsRoot is only implemented on Linux.
func checkPeerIsRoot(net.Conn) error {
	return fmt.Errorf("%w: peer credential check is not supported on this platform", ErrPeerNotRoot)
}
