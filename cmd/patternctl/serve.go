package main

import (
	"github.com/spf13/cobra"

	"github.com/platformeng/patternctl/internal/api"
)

type serveOptions struct {
	port string
}

func newServeCmd(app *appContext) *cobra.Command {
	opts := &serveOptions{}

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the validation and analysis API over HTTP",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			server := api.New(app.catalog, app.log)
			return server.Start(opts.port)
		},
	}

	cmd.Flags().StringVarP(&opts.port, "port", "p", "8080", "Port to listen on")

	return cmd
}
