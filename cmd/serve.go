package cmd

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/veridata-labs/airlens-cli/internal/cache"
	"github.com/veridata-labs/airlens-cli/internal/server"
	"github.com/veridata-labs/airlens-cli/internal/store"
)

var serveAddr string

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the processing HTTP service",
	Long:  `Serve exposes the pipeline over HTTP. With redis_addr configured, the service memoizes results by upload digest; with postgres_dsn configured, results persist to Postgres, otherwise to the local results directory.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		if cfg == nil {
			return fmt.Errorf("no config loaded")
		}
		opts := server.Options{
			MaxUploadBytes: int64(cfg.MaxUploadBytes),
			HTTPTimeout:    time.Duration(cfg.HTTPTimeoutSec) * time.Second,
		}

		if cfg.RedisAddr != "" {
			c, err := cache.NewResultCache(cmd.Context(), cfg.RedisAddr, time.Duration(cfg.CacheTTLSec)*time.Second)
			if err != nil {
				return fmt.Errorf("connect result cache: %w", err)
			}
			defer c.Close()
			opts.Cache = c
		}

		if cfg.PostgresDSN != "" {
			pg, err := store.OpenPostgres(cmd.Context(), cfg.PostgresDSN)
			if err != nil {
				return fmt.Errorf("open postgres store: %w", err)
			}
			defer pg.Close()
			opts.Results = pg
		} else {
			opts.Results = store.NewFSStore(cfg.ResultsDir)
		}

		addr := serveAddr
		if addr == "" {
			addr = cfg.ServerAddr
		}
		if debug {
			fmt.Fprintf(os.Stderr, "cache=%v postgres=%v addr=%s\n",
				opts.Cache != nil, cfg.PostgresDSN != "", addr)
		}
		return server.New(opts).Run(addr)
	},
}

func init() {
	rootCmd.AddCommand(serveCmd)
	serveCmd.Flags().StringVar(&serveAddr, "addr", "", "listen address (overrides config server_addr)")
}
