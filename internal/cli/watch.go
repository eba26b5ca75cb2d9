package cli

import (
	"github.com/spf13/cobra"

	layouterrors "github.com/matzehuels/layoutcfg/pkg/errors"
	"github.com/matzehuels/layoutcfg/pkg/resolve"
	"github.com/matzehuels/layoutcfg/pkg/watch"
)

// watchCommand creates the "watch" command.
func (c *CLI) watchCommand() *cobra.Command {
	var debounce string

	cmd := &cobra.Command{
		Use:   "watch",
		Short: "Report the latest bundle whenever new downloads arrive",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			cfg, err := c.loadConfig()
			if err != nil {
				return err
			}
			if !isLocal(cfg.Downloads) {
				return layouterrors.New(layouterrors.ErrCodeInvalidInput, "watch needs a local downloads directory, got %s", cfg.Downloads)
			}
			opts := watch.Options{Logger: c.Logger}
			if debounce != "" {
				if opts.Debounce, err = parseDuration("debounce", debounce); err != nil {
					return err
				}
			}

			r, err := c.newResolver(cfg)
			if err != nil {
				return err
			}
			w, err := watch.New(cfg.Downloads, r, opts)
			if err != nil {
				return err
			}

			printInfo("Watching %s", cfg.Downloads)
			return w.Run(ctx, func(res *resolve.Result) {
				if res == nil {
					printWarning("No complete bundle")
					return
				}
				printSuccess("Bundle version %d", res.Version)
				printBundleStats(res.Bundle, res.Version)
			})
		},
	}

	cmd.Flags().StringVar(&debounce, "debounce", "", "quiet period before re-resolving (default 500ms)")
	return cmd
}
