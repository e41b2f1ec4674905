//go:build !linux && !darwin && !freebsd && !netbsd && !openbsd && !dragonfly
// +build !linux,!darwin,!freebsd,!netbsd,!openbsd,!dragonfly

package cluster

import "syscall"

// no SO_REUSEPORT here; only one process can bind the address
func reusePortControl(network, address string, conn syscall.RawConn) error {
	return nil
}
