package cli

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/cobra"

	layouterrors "github.com/matzehuels/layoutcfg/pkg/errors"
	"github.com/matzehuels/layoutcfg/pkg/storage"
)

type resolveFlags struct {
	maxVersion int
	timeout    string
	asJSON     bool
	out        string
}

// resolveCommand creates the "resolve" command.
func (c *CLI) resolveCommand() *cobra.Command {
	var f resolveFlags

	cmd := &cobra.Command{
		Use:   "resolve",
		Short: "Find the newest complete bundle in the downloads location",
		Long: `Resolve scans bundle versions from --max-version down to 0 and reports the
first version whose three files all exist and parse. Version 1 is the bare
file name, every other version N is "name (N).json".`,
		Example: `  layoutcfg resolve
  layoutcfg resolve --downloads http://localhost:5173/Downloads/ --json
  layoutcfg resolve --out ./current`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runResolve(cmd, f)
		},
	}

	cmd.Flags().IntVar(&f.maxVersion, "max-version", -1, "highest version to probe (default from config, 100)")
	cmd.Flags().StringVar(&f.timeout, "timeout", "", "per-version probe timeout (e.g. 5s, 0 disables)")
	cmd.Flags().BoolVar(&f.asJSON, "json", false, "print the bundle as JSON (empty bundle when none found)")
	cmd.Flags().StringVarP(&f.out, "out", "o", "", "copy the resolved files to this directory under their bare names")

	return cmd
}

func (c *CLI) runResolve(cmd *cobra.Command, f resolveFlags) error {
	ctx := cmd.Context()
	logger := loggerFromContext(ctx)

	cfg, err := c.loadConfig()
	if err != nil {
		return err
	}
	if f.maxVersion >= 0 {
		cfg.MaxVersion = f.maxVersion
	}
	if f.timeout != "" {
		if cfg.ProbeTimeout, err = parseDuration("timeout", f.timeout); err != nil {
			return err
		}
	}

	r, err := c.newResolver(cfg)
	if err != nil {
		return err
	}

	if f.asJSON {
		b, version, err := r.ResolveOrEmpty(ctx)
		if err != nil {
			return err
		}
		if version >= 0 {
			logger.Debug("resolved", "version", version)
		}
		enc := json.NewEncoder(cmd.OutOrStdout())
		enc.SetIndent("", "  ")
		return enc.Encode(b)
	}

	spin := newSpinner(ctx, "Resolving "+cfg.Downloads)
	spin.Start()
	prog := newProgress(logger)
	res, err := r.Resolve(ctx)
	spin.Stop()
	if err != nil {
		return err
	}

	if res == nil {
		printWarning("No complete bundle in %s", cfg.Downloads)
		printDetail("Probed versions %d to 0", cfg.MaxVersion)
		printNextStep("Export one with", appName+" export")
		return nil
	}

	prog.done(fmt.Sprintf("Resolved version %d after %d probes", res.Version, res.Probes))
	for _, name := range res.Names {
		printFile(name)
	}
	printBundleStats(res.Bundle, res.Version)

	if f.out != "" {
		cfg.Dedupe = false
		cfg.ExportInterval = 0
		exp, err := c.newExporter(f.out, cfg)
		if err != nil {
			return err
		}
		if _, err := exp.Export(ctx, res.Bundle); err != nil {
			return err
		}
		printSuccess("Copied to %s", f.out)
	}
	return nil
}

// parseDuration parses a flag value, accepting a bare "0".
func parseDuration(flag, v string) (time.Duration, error) {
	v = strings.TrimSpace(v)
	if v == "0" {
		return 0, nil
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		return 0, layouterrors.Wrap(layouterrors.ErrCodeInvalidInput, err, "--%s", flag)
	}
	if d < 0 {
		return 0, layouterrors.New(layouterrors.ErrCodeInvalidInput, "--%s must not be negative", flag)
	}
	return d, nil
}

// isLocal reports whether location is a directory rather than a URL.
func isLocal(location string) bool {
	return !storage.IsURL(location)
}

