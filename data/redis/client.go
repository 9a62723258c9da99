// Package redis builds the go-redis client behind the Redis-backed recent
// lookups store.
package redis

import (
	"context"
	"crypto/tls"
	"fmt"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/vortex-fintech/go-iban/foundation/retry"
)

const defaultPingTimeout = 3 * time.Second

// NewUniversal is swapped in tests.
var NewUniversal = func(opt *redis.UniversalOptions) redis.UniversalClient {
	return redis.NewUniversalClient(opt)
}

// Options converts cfg into go-redis options. It does not validate.
func (c Config) Options() *redis.UniversalOptions {
	opt := &redis.UniversalOptions{
		Addrs:        c.addrs(),
		MasterName:   strings.TrimSpace(c.MasterName),
		DB:           c.DB,
		Username:     c.Username,
		Password:     c.Password,
		PoolSize:     c.PoolSize,
		DialTimeout:  c.DialTimeout,
		ReadTimeout:  c.ReadTimeout,
		WriteTimeout: c.WriteTimeout,
	}
	if c.TLSEnabled {
		opt.TLSConfig = &tls.Config{MinVersion: tls.VersionTLS12}
	}
	return opt
}

// NewRedisClient validates cfg, builds a client and pings it once.
func NewRedisClient(ctx context.Context, cfg Config) (redis.UniversalClient, error) {
	return connect(ctx, cfg, func(ctx context.Context, ping func(context.Context) error) error {
		return ping(ctx)
	})
}

// Connect is NewRedisClient with the ping retried under retry.Init, for
// startup when Redis may still be coming up.
func Connect(ctx context.Context, cfg Config) (redis.UniversalClient, error) {
	return connect(ctx, cfg, func(ctx context.Context, ping func(context.Context) error) error {
		return retry.Do(ctx, retry.Init, ping)
	})
}

func connect(ctx context.Context, cfg Config, run func(context.Context, func(context.Context) error) error) (redis.UniversalClient, error) {
	if ctx == nil {
		ctx = context.Background()
	}
	if err := cfg.Validate(); err != nil {
		return nil, retry.Permanent(err)
	}

	rdb := NewUniversal(cfg.Options())

	timeout := cfg.DialTimeout
	if timeout <= 0 {
		timeout = defaultPingTimeout
	}
	ping := func(ctx context.Context) error {
		c, cancel := context.WithTimeout(ctx, timeout)
		defer cancel()
		return rdb.Ping(c).Err()
	}

	if err := run(ctx, ping); err != nil {
		_ = rdb.Close()
		return nil, fmt.Errorf("redis: ping: %w", err)
	}
	return rdb, nil
}
