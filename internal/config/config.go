// Package config loads and persists airlens settings. Viper resolves the
// effective configuration; Save writes plain YAML so the file stays readable.
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"
)

// Global configuration structure.
type Global struct {
	ResultsDir  string `mapstructure:"results_dir" yaml:"results_dir"`
	ServerAddr  string `mapstructure:"server_addr" yaml:"server_addr"`
	RedisAddr   string `mapstructure:"redis_addr" yaml:"redis_addr"`
	PostgresDSN string `mapstructure:"postgres_dsn" yaml:"postgres_dsn"`

	CacheTTLSec    int `mapstructure:"cache_ttl_sec" yaml:"cache_ttl_sec"`
	HTTPTimeoutSec int `mapstructure:"http_timeout_sec" yaml:"http_timeout_sec"`
	MaxUploadBytes int `mapstructure:"max_upload_bytes" yaml:"max_upload_bytes"`
}

// Save writes the given configuration to the cfgFile path. If cfgFile is
// empty, it writes to ~/.airlens/config.yaml, creating the directory if
// necessary.
func Save(c *Global, cfgFile string) error {
	var path string
	if cfgFile != "" {
		path = cfgFile
	} else {
		home, err := os.UserHomeDir()
		if err != nil {
			return fmt.Errorf("resolve home dir: %w", err)
		}
		dir := filepath.Join(home, ".airlens")
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("mkdir config dir: %w", err)
		}
		path = filepath.Join(dir, "config.yaml")
	}
	b, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("marshal yaml: %w", err)
	}
	if err := os.WriteFile(path, b, 0o644); err != nil {
		return fmt.Errorf("write config: %w", err)
	}
	return nil
}

// Load loads configuration from file, env, and defaults.
// Precedence: flags (cfgFile) > env > config file > defaults.
func Load(cfgFile string) (*Global, error) {
	v := viper.New()
	v.SetEnvPrefix("AIRLENS")
	v.AutomaticEnv()

	v.SetDefault("server_addr", ":8080")
	v.SetDefault("redis_addr", "")
	v.SetDefault("postgres_dsn", "")
	v.SetDefault("cache_ttl_sec", 3600)
	v.SetDefault("http_timeout_sec", 30)
	v.SetDefault("max_upload_bytes", 32<<20)

	if cfgFile != "" {
		v.SetConfigFile(cfgFile)
	} else {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("resolve home dir: %w", err)
		}
		dir := filepath.Join(home, ".airlens")
		_ = os.MkdirAll(dir, 0o755)
		v.AddConfigPath(dir)
		v.SetConfigName("config")
		v.SetConfigType("yaml")
	}
	// optional read
	_ = v.ReadInConfig()

	var c Global
	if err := v.Unmarshal(&c); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}
	// Resolve results_dir default: ~/.airlens/results
	if c.ResultsDir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("resolve home dir: %w", err)
		}
		c.ResultsDir = filepath.Join(home, ".airlens", "results")
	}
	return &c, nil
}
