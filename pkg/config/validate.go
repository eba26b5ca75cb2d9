package config

import (
	"errors"
	"strings"

	"github.com/matzehuels/layoutcfg/pkg/cache"
	layouterrors "github.com/matzehuels/layoutcfg/pkg/errors"
)

// Validate reports every invalid setting at once.
func (c Config) Validate() error {
	var errs []error
	bad := func(format string, args ...any) {
		errs = append(errs, layouterrors.New(layouterrors.ErrCodeInvalidConfig, format, args...))
	}

	if c.Downloads == "" {
		bad("downloads: location is required")
	}
	for _, loc := range []struct{ key, value string }{
		{"downloads", c.Downloads},
		{"schemas", c.Schemas},
	} {
		if isURLish(loc.value) {
			if err := layouterrors.ValidateURL(loc.value); err != nil {
				bad("%s: %s", loc.key, layouterrors.UserMessage(err))
			}
		}
	}
	if c.MaxVersion < 0 {
		bad("max_version: must be >= 0, got %d", c.MaxVersion)
	}
	if c.ProbeTimeout < 0 {
		bad("probe_timeout: must be >= 0, got %s", c.ProbeTimeout)
	}
	if c.ExportInterval < 0 {
		bad("export_interval: must be >= 0, got %s", c.ExportInterval)
	}
	if c.Cache.TTL < 0 {
		bad("cache.ttl: must be >= 0, got %s", c.Cache.TTL)
	}

	switch c.Cache.Backend {
	case "", cache.BackendNone:
	case cache.BackendFile:
		if c.Cache.Dir == "" {
			bad("cache.dir: required for the file backend")
		}
	case cache.BackendRedis:
		if c.Cache.RedisAddr == "" {
			bad("cache.redis_addr: required for the redis backend")
		}
		if c.Cache.RedisDB < 0 {
			bad("cache.redis_db: must be >= 0, got %d", c.Cache.RedisDB)
		}
	default:
		bad("cache.backend: unknown backend %q (want none, file or redis)", c.Cache.Backend)
	}

	if c.Server.Addr == "" {
		bad("server.addr: address is required")
	}
	return errors.Join(errs...)
}

// isURLish reports whether loc looks like it was meant as a URL.
func isURLish(loc string) bool {
	return strings.Contains(loc, "://")
}
