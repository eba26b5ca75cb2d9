package cli

import (
	"context"
	"os"

	"github.com/spf13/cobra"
)

// Execute runs the layoutcfg CLI with ctx and returns an error if any
// command fails.
//
// Logging goes to stderr at info level, or debug level with --verbose (-v).
// The logger is attached to the command context and reachable through
// loggerFromContext.
//
//	func main() {
//	    ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt)
//	    defer cancel()
//	    if err := cli.Execute(ctx); err != nil {
//	        os.Exit(1)
//	    }
//	}
func Execute(ctx context.Context) error {
	return newRoot(New(os.Stderr, LogInfo)).ExecuteContext(ctx)
}

// newRoot wires the --verbose flag into c's root command.
func newRoot(c *CLI) *cobra.Command {
	var verbose bool

	root := c.RootCommand()
	root.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable verbose logging")

	preRun := root.PersistentPreRunE
	root.PersistentPreRunE = func(cmd *cobra.Command, args []string) error {
		level := LogInfo
		if verbose {
			level = LogDebug
		}
		c.SetLogLevel(level)
		if preRun != nil {
			return preRun(cmd, args)
		}
		return nil
	}
	return root
}
