// internal/config/config.go
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

const (
	defaultPort            = 8080
	defaultEnvironment     = "development"
	defaultSessionTTL      = 4 * time.Hour
	defaultSweepInterval   = 5 * time.Minute
	defaultShutdownTimeout = 30 * time.Second
)

type Config struct {
	App struct {
		Name            string `yaml:"name"`
		Environment     string `yaml:"environment"`
		Port            int    `yaml:"port"`
		ShutdownTimeout string `yaml:"shutdown_timeout"`
	} `yaml:"app"`

	Assets struct {
		// BaseURL prefixes relative image paths for previews. Loaded
		// from the environment, never from yaml, so the same config can
		// point at different buckets. Its absence is non-fatal but makes
		// the hosted-asset check always fail.
		BaseURL string `yaml:"-"`
	} `yaml:"assets"`

	Sessions struct {
		TTL           string `yaml:"ttl"`
		SweepInterval string `yaml:"sweep_interval"`
	} `yaml:"sessions"`
}

// Load reads the yaml config and overlays environment values. A .env
// file beside the config is loaded first if present. An empty path
// yields a default configuration driven purely by the environment.
func Load(configPath string) (*Config, error) {
	if configPath != "" {
		envPath := filepath.Join(filepath.Dir(configPath), ".env")
		if err := godotenv.Load(envPath); err != nil && !os.IsNotExist(err) {
			return nil, fmt.Errorf("error loading .env file: %w", err)
		}
	} else {
		_ = godotenv.Load()
	}

	var cfg Config
	if configPath != "" {
		data, err := os.ReadFile(configPath)
		if err != nil {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return nil, fmt.Errorf("error parsing config file: %w", err)
		}
	}

	cfg.applyDefaults()
	cfg.applyEnv()

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return &cfg, nil
}

func (c *Config) applyDefaults() {
	if c.App.Name == "" {
		c.App.Name = "teamstudio"
	}
	if c.App.Environment == "" {
		c.App.Environment = defaultEnvironment
	}
	if c.App.Port == 0 {
		c.App.Port = defaultPort
	}
}

func (c *Config) applyEnv() {
	if v := os.Getenv("PORT"); v != "" {
		if port, err := strconv.Atoi(v); err == nil && port > 0 {
			c.App.Port = port
		}
	}
	if v := os.Getenv("ENVIRONMENT"); v != "" {
		c.App.Environment = v
	}
	c.Assets.BaseURL = os.Getenv("ASSET_BASE_URL")
}

func (c *Config) Validate() error {
	if c.App.Name == "" {
		return fmt.Errorf("app name is required")
	}
	if c.App.Port <= 0 || c.App.Port > 65535 {
		return fmt.Errorf("app port %d out of range", c.App.Port)
	}
	for _, raw := range []string{c.App.ShutdownTimeout, c.Sessions.TTL, c.Sessions.SweepInterval} {
		if raw == "" {
			continue
		}
		if _, err := time.ParseDuration(raw); err != nil {
			return fmt.Errorf("invalid duration %q: %w", raw, err)
		}
	}
	return nil
}

// SessionTTL is how long an idle editing session survives before the
// sweeper discards it.
func (c *Config) SessionTTL() time.Duration {
	return duration(c.Sessions.TTL, defaultSessionTTL)
}

// SweepInterval is how often expired sessions are purged.
func (c *Config) SweepInterval() time.Duration {
	return duration(c.Sessions.SweepInterval, defaultSweepInterval)
}

// ShutdownTimeout bounds graceful server shutdown.
func (c *Config) ShutdownTimeout() time.Duration {
	return duration(c.App.ShutdownTimeout, defaultShutdownTimeout)
}

func duration(raw string, fallback time.Duration) time.Duration {
	if raw == "" {
		return fallback
	}
	d, err := time.ParseDuration(raw)
	if err != nil {
		return fallback
	}
	return d
}
