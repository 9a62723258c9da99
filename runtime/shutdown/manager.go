// Package shutdown runs the service's HTTP servers and stops them together:
// gracefully within a deadline, forcefully after it, and then runs closers
// for shared resources such as the Redis client.
package shutdown

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"os/signal"
	"sync"
	"sync/atomic"
	"syscall"
	"time"

	"github.com/vortex-fintech/go-iban/foundation/logger"
	"golang.org/x/sync/errgroup"
)

const waitSlack = 2 * time.Second

// Server is anything the Manager can start and stop.
type Server interface {
	Serve(ctx context.Context) error
	GracefulStop(ctx context.Context) error
	ForceStop()
	Name() string
}

// Metrics receives shutdown statistics; see the prommetrics package.
type Metrics interface {
	IncStopTotal(result string)
	ObserveGracefulDuration(d time.Duration)
	IncServeError(name string)
	IncServerStopResult(name, result string)
}

type Config struct {
	// ShutdownTimeout bounds the graceful phase. Zero forces an immediate stop.
	ShutdownTimeout time.Duration
	// HandleSignals turns SIGINT and SIGTERM into a graceful stop.
	HandleSignals bool
	// IsNormalError reports Serve errors that are expected on shutdown.
	IsNormalError func(error) bool

	Logger  logger.LoggerInterface
	Metrics Metrics
}

type closer struct {
	name string
	fn   func(context.Context) error
}

type Manager struct {
	cfg     Config
	mu      sync.Mutex
	servers []Server
	closers []closer
	stopped bool
	stopErr error
}

func New(cfg Config) *Manager {
	if cfg.Logger == nil {
		cfg.Logger = logger.Nop()
	}
	if cfg.IsNormalError == nil {
		cfg.IsNormalError = DefaultIsNormalErr
	}
	return &Manager{cfg: cfg}
}

// Add registers a server. Nil servers are ignored.
func (m *Manager) Add(s Server) {
	if s == nil {
		return
	}
	m.mu.Lock()
	m.servers = append(m.servers, s)
	m.mu.Unlock()
}

// AddCloser registers fn to run after every server has stopped. Closers run
// in reverse registration order and share what is left of the deadline.
func (m *Manager) AddCloser(name string, fn func(context.Context) error) {
	if fn == nil {
		return
	}
	m.mu.Lock()
	m.closers = append(m.closers, closer{name: name, fn: fn})
	m.mu.Unlock()
}

// Run serves until ctx is done, a signal arrives (with HandleSignals) or a
// server fails, then calls Stop. It returns the first unexpected Serve
// error, or the closer errors.
func (m *Manager) Run(ctx context.Context) error {
	if m.cfg.HandleSignals {
		var stop context.CancelFunc
		ctx, stop = signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
		defer stop()
	}

	log := m.cfg.Logger
	g, gctx := errgroup.WithContext(ctx)
	for _, srv := range m.snapshot() {
		g.Go(func() error {
			name := safeName(srv)
			log.Infow("serve start", "server", name)
			err := srv.Serve(gctx)
			if err != nil && !m.cfg.IsNormalError(err) && gctx.Err() == nil {
				log.Errorw("serve failed", "server", name, "error", err)
				if m.cfg.Metrics != nil {
					m.cfg.Metrics.IncServeError(name)
				}
				return fmt.Errorf("%s: %w", name, err)
			}
			log.Infow("serve stop", "server", name)
			return nil
		})
	}

	waitCh := make(chan error, 1)
	go func() { waitCh <- g.Wait() }()

	var (
		groupDone bool
		groupErr  error
	)
	select {
	case <-ctx.Done():
		log.Infow("shutdown requested", "cause", context.Cause(ctx))
	case groupErr = <-waitCh:
		groupDone = true
		log.Warnw("server group exited; shutting down", "error", groupErr)
	}

	stopErr := m.Stop()

	if !groupDone {
		select {
		case groupErr = <-waitCh:
		case <-time.After(m.cfg.ShutdownTimeout + waitSlack):
			return fmt.Errorf("shutdown: servers still running %s after stop", m.cfg.ShutdownTimeout+waitSlack)
		}
	}
	if groupErr != nil && !m.cfg.IsNormalError(groupErr) {
		return errors.Join(groupErr, stopErr)
	}
	return stopErr
}

// Stop stops every server and then runs the closers. Later calls return
// the result of the first one.
func (m *Manager) Stop() error {
	m.mu.Lock()
	if m.stopped {
		err := m.stopErr
		m.mu.Unlock()
		return err
	}
	m.stopped = true
	servers := append([]Server(nil), m.servers...)
	closers := append([]closer(nil), m.closers...)
	m.mu.Unlock()

	started := time.Now()
	ctx, cancel := context.WithTimeout(context.Background(), m.cfg.ShutdownTimeout)
	defer cancel()

	var forcedAny atomic.Bool
	var g errgroup.Group
	for _, srv := range servers {
		g.Go(func() error {
			if !m.stopServer(ctx, srv) {
				forcedAny.Store(true)
			}
			return nil
		})
	}
	_ = g.Wait()

	// Closers get their own budget when the servers used up the shared one.
	cctx := ctx
	if ctx.Err() != nil {
		var ccancel context.CancelFunc
		cctx, ccancel = context.WithTimeout(context.Background(), waitSlack)
		defer ccancel()
	}
	var errs []error
	for i := len(closers) - 1; i >= 0; i-- {
		c := closers[i]
		if err := c.fn(cctx); err != nil {
			m.cfg.Logger.Warnw("closer failed", "closer", c.name, "error", err)
			errs = append(errs, fmt.Errorf("close %s: %w", c.name, err))
		}
	}

	if m.cfg.Metrics != nil {
		m.cfg.Metrics.ObserveGracefulDuration(time.Since(started))
		result := "success"
		if forcedAny.Load() {
			result = "force"
		}
		m.cfg.Metrics.IncStopTotal(result)
	}

	err := errors.Join(errs...)
	m.mu.Lock()
	m.stopErr = err
	m.mu.Unlock()
	return err
}

// stopServer reports whether srv stopped gracefully.
func (m *Manager) stopServer(ctx context.Context, srv Server) bool {
	name := safeName(srv)
	done := make(chan error, 1)
	go func() { done <- srv.GracefulStop(ctx) }()

	result := "success"
	select {
	case err := <-done:
		if err != nil {
			m.cfg.Logger.Warnw("graceful stop failed; forcing", "server", name, "error", err)
			srv.ForceStop()
			result = "force"
		} else {
			m.cfg.Logger.Infow("graceful stop done", "server", name)
		}
	case <-ctx.Done():
		m.cfg.Logger.Warnw("graceful stop timed out; forcing", "server", name)
		srv.ForceStop()
		result = "force"
	}
	if m.cfg.Metrics != nil {
		m.cfg.Metrics.IncServerStopResult(name, result)
	}
	return result == "success"
}

func (m *Manager) snapshot() []Server {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]Server(nil), m.servers...)
}

// DefaultIsNormalErr accepts nil, http.ErrServerClosed, net.ErrClosed and
// context cancellation.
func DefaultIsNormalErr(err error) bool {
	return err == nil ||
		errors.Is(err, http.ErrServerClosed) ||
		errors.Is(err, net.ErrClosed) ||
		errors.Is(err, context.Canceled)
}

func safeName(s Server) string {
	if n := s.Name(); n != "" {
		return n
	}
	return "server"
}
