// Package cli implements the layoutcfg command-line interface.
package cli

import (
	"context"
	"io"
	"time"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/matzehuels/layoutcfg/pkg/buildinfo"
	"github.com/matzehuels/layoutcfg/pkg/cache"
	"github.com/matzehuels/layoutcfg/pkg/config"
	layouterrors "github.com/matzehuels/layoutcfg/pkg/errors"
	"github.com/matzehuels/layoutcfg/pkg/export"
	"github.com/matzehuels/layoutcfg/pkg/httputil"
	"github.com/matzehuels/layoutcfg/pkg/resolve"
	"github.com/matzehuels/layoutcfg/pkg/schema"
	"github.com/matzehuels/layoutcfg/pkg/storage"
)

// =============================================================================
// Constants
// =============================================================================

// appName is the application name used for display.
const appName = config.AppName

// Log levels exported for use in main.go.
const (
	LogDebug = log.DebugLevel
	LogInfo  = log.InfoLevel
)

// =============================================================================
// CLI - Central CLI State
// =============================================================================

// CLI holds shared state for all commands.
type CLI struct {
	Logger *log.Logger

	// Global flags.
	configPath string
	downloads  string
	schemas    string
	cacheMode  string
}

// New creates a new CLI instance with a default logger.
func New(w io.Writer, level log.Level) *CLI {
	return &CLI{Logger: newLogger(w, level)}
}

// SetLogLevel updates the logger's level.
func (c *CLI) SetLogLevel(level log.Level) {
	c.Logger.SetLevel(level)
}

// RootCommand creates the root cobra command with all subcommands registered.
func (c *CLI) RootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:   appName,
		Short: "layoutcfg exports and resolves component layout bundles",
		Long: `layoutcfg manages the three JSON files that describe a component layout:
the edit configuration, the view configuration and the node positions.

It exports bundles as three separately spaced downloads and finds the newest
complete bundle among auto-suffixed duplicates such as "componentConfig_edit (3).json".`,
		Version:       buildinfo.Version,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			registerHooks(c.Logger)
			cmd.SetContext(withLogger(cmd.Context(), c.Logger))
			return nil
		},
	}

	root.SetVersionTemplate(buildinfo.Template())

	pf := root.PersistentFlags()
	pf.StringVar(&c.configPath, "config", "", "config file (default $XDG_CONFIG_HOME/layoutcfg/config.toml)")
	pf.StringVar(&c.downloads, "downloads", "", "downloads directory or http(s) URL")
	pf.StringVar(&c.schemas, "schemas", "", "schema directory or URL (default: downloads)")
	pf.StringVar(&c.cacheMode, "cache", "", "schema cache backend: none, file or redis")

	root.AddCommand(c.exportCommand())
	root.AddCommand(c.resolveCommand())
	root.AddCommand(c.schemaCommand())
	root.AddCommand(c.serveCommand())
	root.AddCommand(c.watchCommand())
	root.AddCommand(c.previewCommand())
	root.AddCommand(c.cacheCommand())
	root.AddCommand(c.configCommand())
	root.AddCommand(c.completionCommand())

	return root
}

// =============================================================================
// Config & Factories
// =============================================================================

// loadConfig reads the config file and applies global flag overrides.
func (c *CLI) loadConfig() (config.Config, error) {
	cfg, err := config.Load(c.configPath)
	if err != nil {
		return cfg, err
	}
	if c.downloads != "" {
		cfg.Downloads = c.downloads
	}
	if c.schemas != "" {
		cfg.Schemas = c.schemas
	}
	if c.cacheMode != "" {
		cfg.Cache.Backend = c.cacheMode
	}
	return cfg, cfg.Validate()
}

func newHTTPClient() *httputil.Client {
	return httputil.NewClient(map[string]string{"User-Agent": buildinfo.UserAgent()}).
		WithRetry(3, 500*time.Millisecond)
}

func (c *CLI) newResolver(cfg config.Config) (*resolve.Resolver, error) {
	src, err := storage.Open(cfg.Downloads, newHTTPClient())
	if err != nil {
		return nil, err
	}
	opts := cfg.ResolveOptions()
	opts.Logger = c.Logger
	return resolve.New(src, opts)
}

// newExporter writes into dir. Remote locations cannot be written to.
func (c *CLI) newExporter(dir string, cfg config.Config) (*export.Exporter, error) {
	if storage.IsURL(dir) {
		return nil, layouterrors.New(layouterrors.ErrCodeInvalidInput, "cannot export to %s: exports need a local directory", dir)
	}
	sink, err := storage.NewDirSink(dir, cfg.Dedupe)
	if err != nil {
		return nil, err
	}
	opts := cfg.ExportOptions()
	opts.Logger = c.Logger
	return export.New(sink, opts)
}

// newSchemaLoader returns a loader and a close function for its cache.
func (c *CLI) newSchemaLoader(ctx context.Context, cfg config.Config) (*schema.Loader, func(), error) {
	src, err := storage.Open(cfg.SchemasLocation(), newHTTPClient())
	if err != nil {
		return nil, nil, err
	}
	sc, err := cache.Open(ctx, cfg.CacheOptions())
	if err != nil {
		c.Logger.Warn("schema cache unavailable, continuing without", "backend", cfg.Cache.Backend, "err", err)
		sc = cache.NewNullCache()
	}
	loader, err := schema.NewLoader(src, schema.Options{Cache: sc, TTL: cfg.Cache.TTL, Logger: c.Logger})
	if err != nil {
		sc.Close()
		return nil, nil, err
	}
	return loader, func() { sc.Close() }, nil
}
