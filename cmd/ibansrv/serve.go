package main

import (
	"context"
	"fmt"
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/vortex-fintech/go-iban/data/recent"
	redispkg "github.com/vortex-fintech/go-iban/data/redis"
	"github.com/vortex-fintech/go-iban/foundation/logger"
	"github.com/vortex-fintech/go-iban/runtime/metrics"
	"github.com/vortex-fintech/go-iban/runtime/shutdown"
	"github.com/vortex-fintech/go-iban/runtime/shutdown/adapters"
	"github.com/vortex-fintech/go-iban/runtime/shutdown/prommetrics"
	"github.com/vortex-fintech/go-iban/transport/httpapi"
)

type app struct {
	api     http.Handler
	ops     http.Handler
	manager *shutdown.Manager
}

// build wires the store, both handlers and the shutdown manager. Closers for
// anything it opened are registered on the manager.
func build(ctx context.Context, cfg Config, log logger.LoggerInterface, handleSignals bool) (*app, error) {
	reg := prometheus.NewRegistry()

	sm, err := prommetrics.New(reg, "ibansrv", "shutdown")
	if err != nil {
		return nil, err
	}
	mgr := shutdown.New(shutdown.Config{
		ShutdownTimeout: cfg.Shutdown.Timeout,
		HandleSignals:   handleSignals,
		Logger:          log.With("component", "shutdown"),
		Metrics:         sm,
	})

	store, ready, err := openStore(ctx, cfg, log, mgr)
	if err != nil {
		return nil, err
	}

	apiMetrics, err := httpapi.NewMetrics(reg)
	if err != nil {
		_ = mgr.Stop()
		return nil, err
	}
	api := httpapi.New(httpapi.Options{
		Logger:  log.With("component", "api"),
		Recent:  store,
		Metrics: apiMetrics,
		Env:     cfg.Env,
	})

	ops, _, err := metrics.New(metrics.Options{
		Registry:       reg,
		Ready:          ready,
		Logger:         log.With("component", "ops"),
		StrictRegister: true,
	})
	if err != nil {
		_ = mgr.Stop()
		return nil, err
	}

	a := &app{api: api.Routes(), ops: ops, manager: mgr}
	mgr.Add(adapters.NewHTTP("api", cfg.HTTP.Addr, a.api))
	mgr.Add(adapters.NewHTTP("ops", cfg.Metrics.Addr, a.ops))
	return a, nil
}

func openStore(ctx context.Context, cfg Config, log logger.LoggerInterface, mgr *shutdown.Manager) (recent.Store, []metrics.Check, error) {
	opts := []recent.Option{recent.WithLimit(cfg.Recent.Limit), recent.WithKey(cfg.Recent.Key)}

	if cfg.Recent.Backend != backendRedis {
		log.Infow("recent store ready", "backend", backendMemory, "limit", cfg.Recent.Limit)
		return recent.NewMemoryStore(opts...), nil, nil
	}

	rdb, err := redispkg.Connect(ctx, cfg.Redis)
	if err != nil {
		return nil, nil, fmt.Errorf("recent store: %w", err)
	}
	mgr.AddCloser("redis", func(context.Context) error { return rdb.Close() })
	log.Infow("recent store ready", "backend", backendRedis, "key", cfg.Recent.Key, "limit", cfg.Recent.Limit)

	check := metrics.Check{Name: "recent_store", Fn: func(ctx context.Context) error {
		return rdb.Ping(ctx).Err()
	}}
	return recent.NewRedisStore(rdb, opts...), []metrics.Check{check}, nil
}

func serve(ctx context.Context, cfg Config, log logger.LoggerInterface, handleSignals bool) error {
	a, err := build(ctx, cfg, log, handleSignals)
	if err != nil {
		return err
	}
	log.Infow("ibansrv starting", "version", version, "http_addr", cfg.HTTP.Addr, "metrics_addr", cfg.Metrics.Addr, "env", cfg.Env)
	return a.manager.Run(ctx)
}
