package cmd

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	cfgpkg "github.com/veridata-labs/airlens-cli/internal/config"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "View or set AirLens configuration",
}

var configShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show effective configuration",
	RunE: func(cmd *cobra.Command, args []string) error {
		if cfg == nil {
			fmt.Println("No config loaded")
			return nil
		}
		fmt.Printf("results_dir: %s\n", cfg.ResultsDir)
		fmt.Printf("server_addr: %s\n", cfg.ServerAddr)
		if cfg.RedisAddr != "" {
			fmt.Printf("redis_addr: %s\n", cfg.RedisAddr)
		}
		if cfg.PostgresDSN != "" {
			fmt.Printf("postgres_dsn: %s\n", cfg.PostgresDSN)
		}
		fmt.Printf("cache_ttl_sec: %d\n", cfg.CacheTTLSec)
		fmt.Printf("http_timeout_sec: %d\n", cfg.HTTPTimeoutSec)
		fmt.Printf("max_upload_bytes: %d\n", cfg.MaxUploadBytes)
		return nil
	},
}

var configSetCmd = &cobra.Command{
	Use:   "set <key> <value>",
	Short: "Set a config value and save to disk",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		key, val := args[0], args[1]
		if cfg == nil {
			c, err := cfgpkg.Load(cfgFile)
			if err != nil {
				return err
			}
			cfg = c
		}
		switch key {
		case "results_dir":
			cfg.ResultsDir = val
		case "server_addr":
			cfg.ServerAddr = val
		case "redis_addr":
			cfg.RedisAddr = val
		case "postgres_dsn":
			cfg.PostgresDSN = val
		case "cache_ttl_sec":
			i, err := strconv.Atoi(val)
			if err != nil || i < 0 {
				return fmt.Errorf("invalid int for cache_ttl_sec: %v", val)
			}
			cfg.CacheTTLSec = i
		case "http_timeout_sec":
			i, err := strconv.Atoi(val)
			if err != nil || i <= 0 {
				return fmt.Errorf("invalid int for http_timeout_sec: %v", val)
			}
			cfg.HTTPTimeoutSec = i
		case "max_upload_bytes":
			i, err := strconv.Atoi(val)
			if err != nil || i <= 0 {
				return fmt.Errorf("invalid int for max_upload_bytes: %v", val)
			}
			cfg.MaxUploadBytes = i
		default:
			return fmt.Errorf("unknown key: %s", key)
		}
		if err := cfgpkg.Save(cfg, cfgFile); err != nil {
			return err
		}
		fmt.Println("Saved config")
		return nil
	},
}

func init() {
	rootCmd.AddCommand(configCmd)
	configCmd.AddCommand(configShowCmd)
	configCmd.AddCommand(configSetCmd)
}
