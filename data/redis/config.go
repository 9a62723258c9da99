package redis

import (
	"errors"
	"strings"
	"time"
)

type Mode = string

const (
	ModeSingle   Mode = "single"
	ModeSentinel Mode = "sentinel"
	ModeCluster  Mode = "cluster"
)

// Config is bound from the "redis" section of the service configuration.
type Config struct {
	Mode         string        `mapstructure:"mode"`
	Addr         string        `mapstructure:"addr"`
	Addrs        []string      `mapstructure:"addrs"`
	MasterName   string        `mapstructure:"master_name"`
	DB           int           `mapstructure:"db"`
	Username     string        `mapstructure:"username"`
	Password     string        `mapstructure:"password"`
	DialTimeout  time.Duration `mapstructure:"dial_timeout"`
	ReadTimeout  time.Duration `mapstructure:"read_timeout"`
	WriteTimeout time.Duration `mapstructure:"write_timeout"`
	PoolSize     int           `mapstructure:"pool_size"`
	TLSEnabled   bool          `mapstructure:"tls"`
}

var (
	ErrAddressRequired      = errors.New("redis: address is required")
	ErrUnsupportedMode      = errors.New("redis: unsupported mode")
	errMasterNameRequired   = errors.New("redis: master name is required for sentinel mode")
	errMasterNameUnexpected = errors.New("redis: master name is only valid for sentinel mode")
	errSingleModeAddrCount  = errors.New("redis: single mode requires exactly one address")
	errClusterModeAddrCount = errors.New("redis: cluster mode requires at least two addresses")
	errClusterDBUnsupported = errors.New("redis: db must be 0 in cluster mode")
	errInvalidDB            = errors.New("redis: db must be >= 0")
)

// Validate checks the config the same way NewRedisClient does before dialing.
func (c Config) Validate() error {
	return validate(c, c.mode(), c.addrs())
}

func (c Config) mode() Mode {
	m := strings.ToLower(strings.TrimSpace(c.Mode))
	if m == "" {
		return ModeSingle
	}
	return Mode(m)
}

// addrs prefers Addrs and falls back to Addr.
func (c Config) addrs() []string {
	out := make([]string, 0, len(c.Addrs)+1)
	for _, a := range c.Addrs {
		if a = strings.TrimSpace(a); a != "" {
			out = append(out, a)
		}
	}
	if len(out) == 0 {
		if a := strings.TrimSpace(c.Addr); a != "" {
			out = append(out, a)
		}
	}
	return out
}

func validate(c Config, mode Mode, addrs []string) error {
	if c.DB < 0 {
		return errInvalidDB
	}
	if len(addrs) == 0 {
		return ErrAddressRequired
	}
	master := strings.TrimSpace(c.MasterName)

	switch mode {
	case ModeSingle:
		if len(addrs) != 1 {
			return errSingleModeAddrCount
		}
		if master != "" {
			return errMasterNameUnexpected
		}
	case ModeCluster:
		if len(addrs) < 2 {
			return errClusterModeAddrCount
		}
		if master != "" {
			return errMasterNameUnexpected
		}
		if c.DB != 0 {
			return errClusterDBUnsupported
		}
	case ModeSentinel:
		if master == "" {
			return errMasterNameRequired
		}
	default:
		return ErrUnsupportedMode
	}
	return nil
}
