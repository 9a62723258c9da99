// Command ibansrv serves the IBAN HTTP API and its operational endpoints.
//
// Configuration comes from an optional YAML file (--config), IBANSRV_*
// environment variables (IBANSRV_RECENT_BACKEND=redis) and flags.
package main

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/vortex-fintech/go-iban/foundation/logger"
)

var version = "dev"

func main() {
	if err := newRootCmd().ExecuteContext(context.Background()); err != nil {
		fmt.Fprintln(os.Stderr, "ibansrv:", err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	v := newViper()
	var cfgFile string

	cmd := &cobra.Command{
		Use:           "ibansrv",
		Short:         "Serve IBAN validation and decomposition over HTTP",
		Version:       version,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := loadConfig(v, cfgFile)
			if err != nil {
				return err
			}
			log, err := logger.New("ibansrv", cfg.Env)
			if err != nil {
				return err
			}
			defer log.SafeSync()

			return serve(cmd.Context(), cfg, log, true)
		},
	}

	f := cmd.Flags()
	f.StringVar(&cfgFile, "config", "", "YAML config file")
	f.String("http-addr", ":8080", "API listen address")
	f.String("metrics-addr", ":9090", "metrics, health and readiness listen address")
	f.String("env", "production", "log preset: production, development, debug or quiet")
	f.String("recent-backend", "memory", "recent lookups backend: memory or redis")
	_ = v.BindPFlag("http.addr", f.Lookup("http-addr"))
	_ = v.BindPFlag("metrics.addr", f.Lookup("metrics-addr"))
	_ = v.BindPFlag("env", f.Lookup("env"))
	_ = v.BindPFlag("recent.backend", f.Lookup("recent-backend"))

	return cmd
}
