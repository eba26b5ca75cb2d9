package cli

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/matzehuels/layoutcfg/pkg/bundle"
)

type exportFlags struct {
	edit      string
	view      string
	positions string
	bundle    string
	out       string
	interval  string
	noDedupe  bool
}

// exportCommand creates the "export" command.
func (c *CLI) exportCommand() *cobra.Command {
	var f exportFlags

	cmd := &cobra.Command{
		Use:   "export",
		Short: "Save a bundle as three spaced downloads",
		Long: `Export writes componentConfig_edit.json, componentConfig_view.json and
componentPositions.json into the downloads directory, one after another with
a short pause between them.

Members can be given as separate files or as one combined bundle file with
"edit", "view" and "positions" keys. Missing members are exported empty.`,
		Example: `  layoutcfg export --edit edit.json --view view.json --positions positions.json
  layoutcfg export --bundle layout.json --out ./Downloads`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runExport(cmd, f)
		},
	}

	cmd.Flags().StringVar(&f.edit, "edit", "", "edit configuration JSON file")
	cmd.Flags().StringVar(&f.view, "view", "", "view configuration JSON file")
	cmd.Flags().StringVar(&f.positions, "positions", "", "positions JSON file")
	cmd.Flags().StringVar(&f.bundle, "bundle", "", "combined bundle JSON file")
	cmd.Flags().StringVarP(&f.out, "out", "o", "", "output directory (default: downloads)")
	cmd.Flags().StringVar(&f.interval, "interval", "", "pause between saves (e.g. 100ms)")
	cmd.Flags().BoolVar(&f.noDedupe, "no-dedupe", false, "overwrite existing files instead of writing \"name (N).json\"")
	cmd.MarkFlagsMutuallyExclusive("bundle", "edit")
	cmd.MarkFlagsMutuallyExclusive("bundle", "view")
	cmd.MarkFlagsMutuallyExclusive("bundle", "positions")

	return cmd
}

func (c *CLI) runExport(cmd *cobra.Command, f exportFlags) error {
	ctx := cmd.Context()
	logger := loggerFromContext(ctx)

	cfg, err := c.loadConfig()
	if err != nil {
		return err
	}
	if f.interval != "" {
		if cfg.ExportInterval, err = parseDuration("interval", f.interval); err != nil {
			return err
		}
	}
	if f.noDedupe {
		cfg.Dedupe = false
	}
	dir := f.out
	if dir == "" {
		dir = cfg.Downloads
	}

	b, err := readBundleInputs(f)
	if err != nil {
		return err
	}

	exp, err := c.newExporter(dir, cfg)
	if err != nil {
		return err
	}

	prog := newProgress(logger)
	report, err := exp.Export(ctx, b)
	if report != nil {
		for _, file := range report.Files {
			if file.Err == nil {
				printFile(filepath.Join(dir, file.Saved))
			}
		}
	}
	if err != nil {
		return err
	}
	prog.done(fmt.Sprintf("Exported %d files", len(report.Files)))
	printBundleStats(b, -1)
	return nil
}

// readBundleInputs assembles a bundle from the export flags.
func readBundleInputs(f exportFlags) (bundle.Bundle, error) {
	b := bundle.Empty()
	if f.bundle != "" {
		data, err := os.ReadFile(f.bundle)
		if err != nil {
			return b, err
		}
		if b, err = bundle.DecodeBundle(data); err != nil {
			return b, fmt.Errorf("%s: %w", f.bundle, err)
		}
		return b, nil
	}

	var err error
	if f.edit != "" {
		if b.Edit, err = readConfigFile(f.edit); err != nil {
			return b, err
		}
	}
	if f.view != "" {
		if b.View, err = readConfigFile(f.view); err != nil {
			return b, err
		}
	}
	if f.positions != "" {
		if b.Positions, err = readPositionsFile(f.positions); err != nil {
			return b, err
		}
	}
	return b, nil
}

func readConfigFile(path string) (bundle.ConfigFile, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return bundle.ConfigFile{}, err
	}
	cf, err := bundle.DecodeConfig(data)
	if err != nil {
		return bundle.ConfigFile{}, fmt.Errorf("%s: %w", path, err)
	}
	return cf, nil
}

func readPositionsFile(path string) (bundle.PositionFile, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	pf, err := bundle.DecodePositions(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return pf, nil
}
