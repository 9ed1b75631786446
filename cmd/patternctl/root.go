package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

type rootFlags struct {
	verbose bool
}

func newRootCmd(app *appContext) *cobra.Command {
	flags := &rootFlags{}

	cmd := &cobra.Command{
		Use:           "patternctl",
		Short:         "patternctl validates and resolves infrastructure pattern requests",
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmd.Help()
		},
	}

	cmd.PersistentFlags().BoolVarP(&flags.verbose, "verbose", "v", false, "Enable verbose output")

	cmd.AddCommand(newValidateCmd(flags, app))
	cmd.AddCommand(newResolveCmd(flags, app))
	cmd.AddCommand(newAnalyzeCmd(flags, app))
	cmd.AddCommand(newPatternsCmd(app))
	cmd.AddCommand(newServeCmd(app))
	cmd.AddCommand(newAddCmd(flags, app))
	cmd.AddCommand(newRemoveCmd(app))
	cmd.AddCommand(newListCmd(app))
	cmd.AddCommand(newRefreshCmd(app))
	cmd.AddCommand(newVersionCmd())

	return cmd
}

func newCommandError(operation, context string, cause error, suggestion string) error {
	return &commandError{operation: operation, context: context, cause: cause, suggestion: suggestion}
}

type commandError struct {
	operation  string
	context    string
	cause      error
	suggestion string
}

func (e *commandError) Error() string {
	return fmt.Sprintf("Failed to %s: %s\n\nError: %v\n\nSuggestion: %s", e.operation, e.context, e.cause, e.suggestion)
}

func (e *commandError) Unwrap() error {
	return e.cause
}
