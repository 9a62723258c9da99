package main

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
	"github.com/vortex-fintech/go-iban/data/recent"
	redispkg "github.com/vortex-fintech/go-iban/data/redis"
	"github.com/vortex-fintech/go-iban/foundation/validator"
)

const (
	backendMemory = "memory"
	backendRedis  = "redis"
)

type Config struct {
	Env      string          `mapstructure:"env" validate:"oneof=production development debug quiet"`
	HTTP     AddrConfig      `mapstructure:"http"`
	Metrics  AddrConfig      `mapstructure:"metrics"`
	Recent   RecentConfig    `mapstructure:"recent"`
	Redis    redispkg.Config `mapstructure:"redis"`
	Shutdown ShutdownConfig  `mapstructure:"shutdown"`
}

type AddrConfig struct {
	Addr string `mapstructure:"addr" validate:"required"`
}

type RecentConfig struct {
	Backend string `mapstructure:"backend" validate:"oneof=memory redis"`
	Limit   int    `mapstructure:"limit" validate:"min=1,max=1000"`
	Key     string `mapstructure:"key" validate:"required"`
}

type ShutdownConfig struct {
	Timeout time.Duration `mapstructure:"timeout"`
}

// setDefaults registers every key, which AutomaticEnv needs to bind
// IBANSRV_* variables during Unmarshal.
func setDefaults(v *viper.Viper) {
	v.SetDefault("env", "production")
	v.SetDefault("http.addr", ":8080")
	v.SetDefault("metrics.addr", ":9090")
	v.SetDefault("recent.backend", backendMemory)
	v.SetDefault("recent.limit", recent.DefaultLimit)
	v.SetDefault("recent.key", recent.DefaultKey)
	v.SetDefault("shutdown.timeout", 10*time.Second)

	v.SetDefault("redis.mode", redispkg.ModeSingle)
	v.SetDefault("redis.addr", "localhost:6379")
	v.SetDefault("redis.addrs", []string{})
	v.SetDefault("redis.master_name", "")
	v.SetDefault("redis.db", 0)
	v.SetDefault("redis.username", "")
	v.SetDefault("redis.password", "")
	v.SetDefault("redis.dial_timeout", 2*time.Second)
	v.SetDefault("redis.read_timeout", time.Second)
	v.SetDefault("redis.write_timeout", time.Second)
	v.SetDefault("redis.pool_size", 0)
	v.SetDefault("redis.tls", false)
}

func newViper() *viper.Viper {
	v := viper.New()
	v.SetEnvPrefix("IBANSRV")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	setDefaults(v)
	return v
}

// loadConfig reads the optional config file and decodes and checks the result.
func loadConfig(v *viper.Viper, file string) (Config, error) {
	if file != "" {
		v.SetConfigFile(file)
		if err := v.ReadInConfig(); err != nil {
			return Config{}, fmt.Errorf("read config %s: %w", file, err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, fmt.Errorf("decode config: %w", err)
	}
	cfg.Recent.Backend = strings.ToLower(strings.TrimSpace(cfg.Recent.Backend))
	cfg.Recent.Key = strings.TrimSpace(cfg.Recent.Key)

	if err := validator.Instance().Struct(cfg); err != nil {
		return Config{}, fmt.Errorf("invalid config: %w", err)
	}
	if cfg.Shutdown.Timeout < 0 {
		return Config{}, errors.New("invalid config: shutdown.timeout must not be negative")
	}
	if cfg.Recent.Backend == backendRedis {
		if err := cfg.Redis.Validate(); err != nil {
			return Config{}, fmt.Errorf("invalid config: %w", err)
		}
	}
	if cfg.HTTP.Addr == cfg.Metrics.Addr {
		return Config{}, errors.New("invalid config: http.addr and metrics.addr must differ")
	}
	return cfg, nil
}
