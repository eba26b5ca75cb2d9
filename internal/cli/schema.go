package cli

import (
	"encoding/json"
	"strconv"

	"github.com/spf13/cobra"

	layouterrors "github.com/matzehuels/layoutcfg/pkg/errors"
)

// schemaCommand creates the "schema" command.
func (c *CLI) schemaCommand() *cobra.Command {
	return &cobra.Command{
		Use:     "schema ID",
		Short:   "Print the metadata schema with the given id",
		Example: `  layoutcfg schema 3 --schemas http://localhost:5173/Downloads/`,
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			id, err := strconv.Atoi(args[0])
			if err != nil {
				return layouterrors.New(layouterrors.ErrCodeInvalidInput, "schema id %q is not a number", args[0])
			}

			cfg, err := c.loadConfig()
			if err != nil {
				return err
			}
			loader, closeCache, err := c.newSchemaLoader(ctx, cfg)
			if err != nil {
				return err
			}
			defer closeCache()

			s, err := loader.Load(ctx, id)
			if err != nil {
				return err
			}
			enc := json.NewEncoder(cmd.OutOrStdout())
			enc.SetIndent("", "  ")
			return enc.Encode(s)
		},
	}
}
