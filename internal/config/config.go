// Package config loads server and CLI configuration from TOML files.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/BurntSushi/toml"

	"github.com/specatlas/specatlas/pkg/layout"
)

// Config is the top-level configuration.
type Config struct {
	Server ServerConfig `toml:"server"`
	Store  StoreConfig  `toml:"store"`
	Cache  CacheConfig  `toml:"cache"`
	Share  ShareConfig  `toml:"share"`
	Layout LayoutConfig `toml:"layout"`
}

// ServerConfig configures the HTTP server.
type ServerConfig struct {
	Addr            string   `toml:"addr"`
	ReadTimeout     duration `toml:"read_timeout"`
	WriteTimeout    duration `toml:"write_timeout"`
	ShutdownTimeout duration `toml:"shutdown_timeout"`
}

// StoreConfig selects and configures the graph store backend.
type StoreConfig struct {
	// Backend is "file" or "mongo".
	Backend string `toml:"backend"`
	Dir     string `toml:"dir"`
	Mongo   struct {
		URI        string `toml:"uri"`
		Database   string `toml:"database"`
		Collection string `toml:"collection"`
	} `toml:"mongo"`
}

// CacheConfig selects and configures the layout cache backend.
type CacheConfig struct {
	// Backend is "file", "redis", or "none".
	Backend string `toml:"backend"`
	Dir     string `toml:"dir"`
	Redis   struct {
		Addr     string `toml:"addr"`
		Password string `toml:"password"`
		DB       int    `toml:"db"`
	} `toml:"redis"`
}

// ShareConfig selects and configures the share-link store backend.
type ShareConfig struct {
	// Backend is "memory", "file", or "redis". Redis reuses [CacheConfig.Redis]
	// connection settings unless overridden here.
	Backend string   `toml:"backend"`
	Dir     string   `toml:"dir"`
	TTL     duration `toml:"ttl"`
}

// LayoutConfig carries layout engine tuning. Mode is the default view mode
// when a request leaves it unset; the gaps and margin override the engine's
// spacing constants (zero keeps the built-in default).
type LayoutConfig struct {
	Mode       string `toml:"mode"`
	RankGap    int    `toml:"rank_gap"`
	NodeGap    int    `toml:"node_gap"`
	Margin     int    `toml:"margin"`
	Iterations int    `toml:"iterations"`
}

// Options converts the tuning section into engine options, suitable as the
// base options of a view.Runner.
func (l LayoutConfig) Options() layout.Options {
	return layout.Options{
		Mode:       l.Mode,
		RankGap:    float64(l.RankGap),
		NodeGap:    float64(l.NodeGap),
		Margin:     float64(l.Margin),
		Iterations: l.Iterations,
	}
}

// duration wraps time.Duration for TOML strings like "30s" or "720h".
type duration struct {
	time.Duration
}

func (d *duration) UnmarshalText(text []byte) error {
	parsed, err := time.ParseDuration(string(text))
	if err != nil {
		return err
	}
	d.Duration = parsed
	return nil
}

// Default returns the built-in configuration.
func Default() Config {
	cfg := Config{}
	cfg.Server.Addr = ":8080"
	cfg.Server.ReadTimeout = duration{15 * time.Second}
	cfg.Server.WriteTimeout = duration{30 * time.Second}
	cfg.Server.ShutdownTimeout = duration{10 * time.Second}
	cfg.Store.Backend = "file"
	cfg.Store.Dir = defaultDir("graphs")
	cfg.Cache.Backend = "file"
	cfg.Cache.Dir = defaultDir("cache")
	cfg.Share.Backend = "memory"
	cfg.Share.TTL = duration{30 * 24 * time.Hour}
	cfg.Layout.Mode = "hierarchical"
	return cfg
}

func defaultDir(sub string) string {
	home, err := os.UserHomeDir()
	if err != nil {
		return filepath.Join(".specatlas", sub)
	}
	return filepath.Join(home, ".config", "specatlas", sub)
}

// Load reads a TOML config file on top of the defaults.
// An empty path returns the defaults unchanged.
func Load(path string) (Config, error) {
	cfg := Default()
	if path == "" {
		return cfg, nil
	}

	meta, err := toml.DecodeFile(path, &cfg)
	if err != nil {
		return Config{}, fmt.Errorf("load config %s: %w", path, err)
	}
	if undecoded := meta.Undecoded(); len(undecoded) > 0 {
		return Config{}, fmt.Errorf("load config %s: unknown key %q", path, undecoded[0].String())
	}
	if err := cfg.validate(); err != nil {
		return Config{}, fmt.Errorf("load config %s: %w", path, err)
	}
	return cfg, nil
}

func (c Config) validate() error {
	switch c.Store.Backend {
	case "file", "mongo":
	default:
		return fmt.Errorf("invalid store backend %q", c.Store.Backend)
	}
	switch c.Cache.Backend {
	case "file", "redis", "none":
	default:
		return fmt.Errorf("invalid cache backend %q", c.Cache.Backend)
	}
	switch c.Share.Backend {
	case "memory", "file", "redis":
	default:
		return fmt.Errorf("invalid share backend %q", c.Share.Backend)
	}
	if c.Store.Backend == "mongo" && c.Store.Mongo.URI == "" {
		return fmt.Errorf("store backend mongo requires store.mongo.uri")
	}
	if c.Cache.Backend == "redis" && c.Cache.Redis.Addr == "" {
		return fmt.Errorf("cache backend redis requires cache.redis.addr")
	}
	if c.Layout.Mode != "" {
		if err := layout.ValidateMode(c.Layout.Mode); err != nil {
			return fmt.Errorf("layout.mode: %w", err)
		}
	}
	return nil
}
