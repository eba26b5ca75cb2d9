package config

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/BurntSushi/toml"

	layouterrors "github.com/matzehuels/layoutcfg/pkg/errors"
)

// ErrUnknownField is wrapped by Load when the file contains keys that map to
// no setting.
var ErrUnknownField = errors.New("unknown config field")

// Environment variables read by Load.
const (
	EnvDownloads  = "LAYOUTCFG_DOWNLOADS"
	EnvSchemas    = "LAYOUTCFG_SCHEMAS"
	EnvMaxVersion = "LAYOUTCFG_MAX_VERSION"
	EnvCache      = "LAYOUTCFG_CACHE"
	EnvRedisAddr  = "LAYOUTCFG_REDIS_ADDR"
)

// DefaultPath returns the config file location following the XDG base
// directory convention.
func DefaultPath() (string, error) {
	if dir := os.Getenv("XDG_CONFIG_HOME"); dir != "" {
		return filepath.Join(dir, AppName, "config.toml"), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".config", AppName, "config.toml"), nil
}

// CacheDir returns the cache directory using XDG standard (~/.cache/layoutcfg/).
func CacheDir() (string, error) {
	if dir := os.Getenv("XDG_CACHE_HOME"); dir != "" {
		return filepath.Join(dir, AppName), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".cache", AppName), nil
}

// Load reads settings from path over the defaults, applies environment
// overrides and validates the result. An empty path means [DefaultPath],
// which may be absent; an explicit path must exist.
func Load(path string) (Config, error) {
	cfg := Default()

	explicit := path != ""
	if !explicit {
		p, err := DefaultPath()
		if err != nil {
			return cfg, cfg.Validate()
		}
		path = p
	}

	if err := decodeFile(path, &cfg); err != nil {
		if explicit || !errors.Is(err, fs.ErrNotExist) {
			return Config{}, err
		}
	}

	if err := applyEnv(&cfg); err != nil {
		return Config{}, err
	}
	cfg.expandHome()
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func decodeFile(path string, cfg *Config) error {
	md, err := toml.DecodeFile(path, cfg)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return err
		}
		return layouterrors.Wrap(layouterrors.ErrCodeInvalidConfig, err, "parse %s", path)
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, len(undecoded))
		for i, k := range undecoded {
			keys[i] = k.String()
		}
		return layouterrors.Wrap(layouterrors.ErrCodeInvalidConfig,
			fmt.Errorf("%w: %s", ErrUnknownField, strings.Join(keys, ", ")), "parse %s", path)
	}
	return nil
}

func applyEnv(cfg *Config) error {
	if v, ok := os.LookupEnv(EnvDownloads); ok {
		cfg.Downloads = v
	}
	if v, ok := os.LookupEnv(EnvSchemas); ok {
		cfg.Schemas = v
	}
	if v, ok := os.LookupEnv(EnvMaxVersion); ok {
		n, err := strconv.Atoi(v)
		if err != nil {
			return layouterrors.Wrap(layouterrors.ErrCodeInvalidConfig, err, "%s", EnvMaxVersion)
		}
		cfg.MaxVersion = n
	}
	if v, ok := os.LookupEnv(EnvCache); ok {
		cfg.Cache.Backend = v
	}
	if v, ok := os.LookupEnv(EnvRedisAddr); ok {
		cfg.Cache.RedisAddr = v
	}
	return nil
}

// expandHome replaces a leading "~/" in local paths.
func (c *Config) expandHome() {
	home, err := os.UserHomeDir()
	if err != nil {
		return
	}
	for _, p := range []*string{&c.Downloads, &c.Schemas, &c.Cache.Dir} {
		if strings.HasPrefix(*p, "~/") {
			*p = filepath.Join(home, (*p)[2:])
		}
	}
}

// Write encodes c as TOML.
func (c Config) Write(w io.Writer) error {
	return toml.NewEncoder(w).Encode(c)
}
