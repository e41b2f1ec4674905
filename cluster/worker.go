package cluster

import (
	"context"
	"net"
	"net/http"
	"os"
	"time"

	"github.com/jamesrr39/goutil/errorsx"
	"github.com/jamesrr39/goutil/logpkg"
)

const shutdownTimeout = 10 * time.Second

// ServeWorker serves HTTP requests on the listener until ctx is done, and then shuts the server down gracefully
func ServeWorker(ctx context.Context, logger *logpkg.Logger, listener net.Listener, handler http.Handler) errorsx.Error {
	server := &http.Server{
		ReadTimeout:       5 * time.Second,
		WriteTimeout:      10 * time.Second,
		ReadHeaderTimeout: 5 * time.Second,
		Handler:           handler,
	}

	serveErrChan := make(chan error, 1)
	go func() {
		serveErrChan <- server.Serve(listener)
	}()

	logger.Info("worker (pid %d) serving on %s", os.Getpid(), listener.Addr())

	select {
	case err := <-serveErrChan:
		return errorsx.Wrap(err, "address", listener.Addr().String())
	case <-ctx.Done():
	}

	logger.Info("worker (pid %d) shutting down", os.Getpid())

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	err := server.Shutdown(shutdownCtx)
	if nil != err {
		return errorsx.Wrap(err)
	}

	err = <-serveErrChan
	if http.ErrServerClosed != err {
		return errorsx.Wrap(err)
	}

	return nil
}
