package cli

import (
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/matzehuels/layoutcfg/pkg/preview"
)

type previewFlags struct {
	positions string
	out       string
	scale     float64
	dot       bool
}

// previewCommand creates the "preview" command.
func (c *CLI) previewCommand() *cobra.Command {
	var f previewFlags

	cmd := &cobra.Command{
		Use:   "preview",
		Short: "Render node positions as an SVG diagram",
		Long: `Preview draws every node at its stored position. By default the positions of
the newest complete bundle are used; --positions renders a file instead.`,
		Example: `  layoutcfg preview -o layout.svg
  layoutcfg preview --positions componentPositions.json --dot`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runPreview(cmd, f)
		},
	}

	cmd.Flags().StringVar(&f.positions, "positions", "", "positions JSON file to render")
	cmd.Flags().StringVarP(&f.out, "out", "o", "", "output file (default stdout)")
	cmd.Flags().Float64Var(&f.scale, "scale", 1, "coordinate scale factor")
	cmd.Flags().BoolVar(&f.dot, "dot", false, "print Graphviz DOT instead of SVG")

	return cmd
}

func (c *CLI) runPreview(cmd *cobra.Command, f previewFlags) error {
	ctx := cmd.Context()
	opts := preview.Options{Scale: f.scale}

	var dot string
	if f.positions != "" {
		pf, err := readPositionsFile(f.positions)
		if err != nil {
			return err
		}
		dot = preview.ToDOT(pf, opts)
	} else {
		cfg, err := c.loadConfig()
		if err != nil {
			return err
		}
		r, err := c.newResolver(cfg)
		if err != nil {
			return err
		}
		b, version, err := r.ResolveOrEmpty(ctx)
		if err != nil {
			return err
		}
		if version < 0 {
			printWarning("No complete bundle in %s, rendering an empty diagram", cfg.Downloads)
		}
		dot = preview.FromBundle(b, opts)
	}

	out := []byte(dot)
	if !f.dot {
		svg, err := preview.RenderSVG(ctx, dot)
		if err != nil {
			return err
		}
		out = svg
	}
	return writeOutput(cmd.OutOrStdout(), f.out, out)
}

// writeOutput writes data to path, or to w when path is empty.
func writeOutput(w io.Writer, path string, data []byte) error {
	if path == "" {
		_, err := w.Write(data)
		return err
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return err
	}
	printFile(path)
	return nil
}

