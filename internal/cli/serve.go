package cli

import (
	"github.com/spf13/cobra"

	"github.com/matzehuels/layoutcfg/pkg/export"
	"github.com/matzehuels/layoutcfg/pkg/server"
	"github.com/matzehuels/layoutcfg/pkg/storage"
)

// serveCommand creates the "serve" command.
func (c *CLI) serveCommand() *cobra.Command {
	var addr string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve bundles and schemas over HTTP",
		Long: `Serve starts a development server:

  GET  /healthz            liveness
  GET  /downloads/{name}   raw bundle file
  GET  /schemas/{id}       metadata schema
  GET  /bundle/latest      newest complete bundle (X-Bundle-Version header)
  POST /bundle             export a bundle (local downloads only)`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			cfg, err := c.loadConfig()
			if err != nil {
				return err
			}
			if addr != "" {
				cfg.Server.Addr = addr
			}

			downloads, err := storage.Open(cfg.Downloads, newHTTPClient())
			if err != nil {
				return err
			}
			r, err := c.newResolver(cfg)
			if err != nil {
				return err
			}
			loader, closeCache, err := c.newSchemaLoader(ctx, cfg)
			if err != nil {
				return err
			}
			defer closeCache()

			var exp *export.Exporter
			if isLocal(cfg.Downloads) {
				if exp, err = c.newExporter(cfg.Downloads, cfg); err != nil {
					return err
				}
			}

			srv := server.New(server.Config{
				Downloads: downloads,
				Resolver:  r,
				Schemas:   loader,
				Exporter:  exp,
				Logger:    c.Logger,
			})
			ready := make(chan string, 1)
			go func() {
				if bound, ok := <-ready; ok {
					printSuccess("Serving %s", StyleLink.Render("http://"+bound))
					printDetail("Downloads: %s", cfg.Downloads)
				}
			}()
			err = srv.ListenAndServe(ctx, cfg.Server.Addr, ready)
			close(ready)
			return err
		},
	}

	cmd.Flags().StringVar(&addr, "addr", "", "listen address (default from config, 127.0.0.1:5173)")
	return cmd
}
