package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/platformeng/patternctl/internal/catalog"
)

var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

func newVersionCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "version",
		Short: "Display build information",
		RunE: func(cmd *cobra.Command, args []string) error {
			fmt.Fprintf(cmd.OutOrStdout(), "patternctl %s\ncatalog: %s\ncommit: %s\nbuilt: %s\n", version, catalog.Version, commit, date)
			return nil
		},
	}

	return cmd
}
