package cluster

import (
	"context"
	"net"

	"github.com/jamesrr39/goutil/errorsx"
)

// Listen opens a TCP listener that other processes can also bind the same address with, where the platform supports it.
// The kernel then spreads incoming connections across all the processes listening.
func Listen(ctx context.Context, addr string) (net.Listener, errorsx.Error) {
	listenConfig := net.ListenConfig{Control: reusePortControl}

	listener, err := listenConfig.Listen(ctx, "tcp", addr)
	if nil != err {
		return nil, errorsx.Wrap(err, "address", addr)
	}

	return listener, nil
}
