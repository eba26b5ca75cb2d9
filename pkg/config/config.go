// Package config loads layoutcfg settings.
//
// Settings are resolved with the precedence flags > environment > file >
// defaults. The file is TOML, read from --config or from
// $XDG_CONFIG_HOME/layoutcfg/config.toml (~/.config/layoutcfg/config.toml
// when XDG_CONFIG_HOME is unset). A missing default file is not an error;
// unknown keys are.
//
// Example file:
//
//	downloads = "~/Downloads"
//	max_version = 50
//	probe_timeout = "2s"
//
//	[cache]
//	backend = "redis"
//	redis_addr = "localhost:6379"
package config

import (
	"time"

	"github.com/matzehuels/layoutcfg/pkg/cache"
	"github.com/matzehuels/layoutcfg/pkg/export"
	"github.com/matzehuels/layoutcfg/pkg/resolve"
)

// AppName names the config and cache directories.
const AppName = "layoutcfg"

// Config holds all settings.
type Config struct {
	// Downloads is the directory or http(s) URL holding bundle files.
	Downloads string `toml:"downloads"`
	// Schemas is where metadata schemas live. Empty means Downloads.
	Schemas string `toml:"schemas"`

	MaxVersion     int           `toml:"max_version"`
	ProbeTimeout   time.Duration `toml:"probe_timeout"`
	ExportInterval time.Duration `toml:"export_interval"`
	// Dedupe writes "name (N).json" instead of overwriting, like a browser
	// download manager.
	Dedupe bool `toml:"dedupe"`

	Cache  CacheConfig  `toml:"cache"`
	Server ServerConfig `toml:"server"`
}

// CacheConfig selects the schema cache backend.
type CacheConfig struct {
	Backend   string        `toml:"backend"`
	Dir       string        `toml:"dir"`
	TTL       time.Duration `toml:"ttl"`
	RedisAddr string        `toml:"redis_addr"`
	RedisDB   int           `toml:"redis_db"`
}

// ServerConfig configures the dev server.
type ServerConfig struct {
	Addr string `toml:"addr"`
}

// Default returns the built-in settings.
func Default() Config {
	cacheDir, err := CacheDir()
	if err != nil {
		cacheDir = ""
	}
	return Config{
		Downloads:      "Downloads",
		MaxVersion:     resolve.DefaultMaxVersion,
		ProbeTimeout:   resolve.DefaultProbeTimeout,
		ExportInterval: export.DefaultInterval,
		Dedupe:         true,
		Cache: CacheConfig{
			Backend:   cache.BackendNone,
			Dir:       cacheDir,
			TTL:       time.Hour,
			RedisAddr: "localhost:6379",
		},
		Server: ServerConfig{Addr: "127.0.0.1:5173"},
	}
}

// SchemasLocation returns where schemas are read from.
func (c Config) SchemasLocation() string {
	if c.Schemas != "" {
		return c.Schemas
	}
	return c.Downloads
}

// ResolveOptions converts the settings for [resolve.New].
func (c Config) ResolveOptions() resolve.Options {
	return resolve.Options{MaxVersion: c.MaxVersion, ProbeTimeout: c.ProbeTimeout}
}

// ExportOptions converts the settings for [export.New].
func (c Config) ExportOptions() export.Options {
	return export.Options{Interval: c.ExportInterval}
}

// CacheOptions converts the settings for [cache.Open].
func (c Config) CacheOptions() cache.Options {
	return cache.Options{
		Backend:   c.Cache.Backend,
		Dir:       c.Cache.Dir,
		RedisAddr: c.Cache.RedisAddr,
		RedisDB:   c.Cache.RedisDB,
	}
}
