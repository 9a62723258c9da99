// Package adapters fits concrete servers to shutdown.Server.
package adapters

import (
	"context"
	"errors"
	"net"
	"net/http"
	"time"
)

const defaultReadHeaderTimeout = 5 * time.Second

var errNoServer = errors.New("http adapter: server is nil")

// HTTP runs an *http.Server under the shutdown manager. With Lis set it
// serves on that listener, otherwise it listens on Srv.Addr.
type HTTP struct {
	Srv     *http.Server
	Lis     net.Listener
	NameStr string
}

// NewHTTP builds an adapter with conservative server timeouts.
func NewHTTP(name, addr string, h http.Handler) *HTTP {
	return &HTTP{
		NameStr: name,
		Srv: &http.Server{
			Addr:              addr,
			Handler:           h,
			ReadHeaderTimeout: defaultReadHeaderTimeout,
			ReadTimeout:       10 * time.Second,
			WriteTimeout:      10 * time.Second,
			IdleTimeout:       60 * time.Second,
		},
	}
}

func (h *HTTP) Name() string {
	if h.NameStr == "" {
		return "http"
	}
	return h.NameStr
}

// Serve blocks until ctx is done or the server fails. Request contexts carry
// the values of ctx but not its cancellation: requests in flight when ctx
// ends keep running until GracefulStop drains them or ForceStop closes
// their connections.
func (h *HTTP) Serve(ctx context.Context) error {
	if h.Srv == nil {
		return errNoServer
	}
	base := context.WithoutCancel(ctx)
	h.Srv.BaseContext = func(net.Listener) context.Context { return base }

	errCh := make(chan error, 1)
	go func() {
		if h.Lis != nil {
			errCh <- h.Srv.Serve(h.Lis)
			return
		}
		errCh <- h.Srv.ListenAndServe()
	}()

	select {
	case <-ctx.Done():
		return ctx.Err()
	case err := <-errCh:
		return err
	}
}

func (h *HTTP) GracefulStop(ctx context.Context) error {
	if h.Srv == nil {
		return errNoServer
	}
	return h.Srv.Shutdown(ctx)
}

func (h *HTTP) ForceStop() {
	if h.Srv != nil {
		_ = h.Srv.Close()
	}
}
