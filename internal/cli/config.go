package cli

import (
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"
)

// Config holds on-disk CLI preferences, loaded from
// ~/.config/floorslice/config.toml (or $XDG_CONFIG_HOME/floorslice/).
// Missing file or fields fall back to defaults; flags always win.
type Config struct {
	Cache  CacheConfig  `toml:"cache"`
	Redis  RedisConfig  `toml:"redis"`
	Render RenderConfig `toml:"render"`
}

// CacheConfig selects and locates the cache backend.
type CacheConfig struct {
	// Backend is one of "file" (default), "redis", or "none".
	Backend string `toml:"backend"`
	// Dir overrides the file cache directory.
	Dir string `toml:"dir"`
}

// RedisConfig configures the redis backend when Backend is "redis".
type RedisConfig struct {
	Addr     string `toml:"addr"`
	Password string `toml:"password"`
	DB       int    `toml:"db"`
}

// RenderConfig holds render defaults.
type RenderConfig struct {
	// Format is the default render format for the render command.
	Format string `toml:"format"`
	// Scale is the default SVG scale in user units per plan unit.
	Scale int `toml:"scale"`
}

// defaultConfig returns the configuration used when no file is present.
func defaultConfig() Config {
	return Config{
		Cache:  CacheConfig{Backend: "file"},
		Redis:  RedisConfig{Addr: "localhost:6379"},
		Render: RenderConfig{Format: "svg"},
	}
}

// LoadConfig reads the config file if it exists. Any read or parse failure
// falls back to defaults: a broken config file should not make the CLI
// unusable.
func LoadConfig() Config {
	cfg := defaultConfig()

	path, err := configPath()
	if err != nil {
		return cfg
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return cfg
	}
	if err := toml.Unmarshal(data, &cfg); err != nil {
		return defaultConfig()
	}
	if cfg.Cache.Backend == "" {
		cfg.Cache.Backend = "file"
	}
	if cfg.Redis.Addr == "" {
		cfg.Redis.Addr = "localhost:6379"
	}
	if cfg.Render.Format == "" {
		cfg.Render.Format = "svg"
	}
	return cfg
}

// configPath returns the config file path using XDG standard.
func configPath() (string, error) {
	if configHome := os.Getenv("XDG_CONFIG_HOME"); configHome != "" {
		return filepath.Join(configHome, appName, "config.toml"), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".config", appName, "config.toml"), nil
}
