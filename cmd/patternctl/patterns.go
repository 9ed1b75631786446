package main

import (
	"fmt"
	"sort"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/platformeng/patternctl/internal/catalog"
)

func newPatternsCmd(app *appContext) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "patterns",
		Short: "Inspect the pattern catalog",
	}

	cmd.AddCommand(newPatternsListCmd(app))
	cmd.AddCommand(newPatternsShowCmd(app))

	return cmd
}

func newPatternsListCmd(app *appContext) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List every pattern in the catalog",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runPatternsList(cmd, app)
		},
	}
}

func newPatternsShowCmd(app *appContext) *cobra.Command {
	return &cobra.Command{
		Use:   "show <pattern-name>",
		Short: "Show the full definition of one pattern",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runPatternsShow(cmd, app, args[0])
		},
	}
}

func runPatternsList(cmd *cobra.Command, app *appContext) error {
	out := cmd.OutOrStdout()

	fmt.Fprintf(out, "Catalog version %s\n\n", catalog.Version)

	writer := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
	fmt.Fprintln(writer, "NAME\tCATEGORY\tCOMPONENTS\tDESCRIPTION")
	for _, def := range app.catalog.Patterns() {
		fmt.Fprintf(writer, "%s\t%s\t%s\t%s\n",
			def.Name,
			def.Category,
			strings.Join(def.Components, ", "),
			def.Description,
		)
	}
	return writer.Flush()
}

func runPatternsShow(cmd *cobra.Command, app *appContext, name string) error {
	def, err := app.catalog.Lookup(name)
	if err != nil {
		return newCommandError("show pattern", fmt.Sprintf("looking up %q", name), err,
			fmt.Sprintf("Available patterns: %s.", strings.Join(app.catalog.ValidNames(), ", ")))
	}

	out := cmd.OutOrStdout()

	fmt.Fprintf(out, "%s (%s)\n", def.Name, def.Category)
	if def.Description != "" {
		fmt.Fprintf(out, "  %s\n", def.Description)
	}

	fmt.Fprintln(out, "\nComponents:")
	for _, component := range def.Components {
		fmt.Fprintf(out, "  - %s\n", component)
	}

	if len(def.UseCases) > 0 {
		fmt.Fprintln(out, "\nUse cases:")
		for _, useCase := range def.UseCases {
			fmt.Fprintf(out, "  - %s\n", useCase)
		}
	}

	fmt.Fprintln(out, "\nRequired fields:")
	for _, field := range def.Config.Required {
		fmt.Fprintf(out, "  - %s\n", field)
	}

	if len(def.Config.Optional) > 0 {
		fmt.Fprintln(out, "\nOptional fields:")
		names := make([]string, 0, len(def.Config.Optional))
		for optName := range def.Config.Optional {
			names = append(names, optName)
		}
		sort.Strings(names)

		writer := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
		fmt.Fprintln(writer, "  NAME\tTYPE\tDEFAULT\tDESCRIPTION")
		for _, optName := range names {
			opt := def.Config.Optional[optName]
			fmt.Fprintf(writer, "  %s\t%s\t%s\t%s\n", optName, opt.Type, formatDefault(opt.Default), opt.Description)
		}
		if err := writer.Flush(); err != nil {
			return err
		}
	}

	fmt.Fprintln(out, "\nEstimated monthly cost (USD):")
	writer := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
	fmt.Fprintln(writer, "  SIZE\tDEV\tSTAGING\tPROD")
	for _, size := range catalog.Sizes {
		cells := make([]string, 0, len(catalog.Environments))
		for _, env := range catalog.Environments {
			if cost, ok := def.Cost(size, env); ok {
				cells = append(cells, fmt.Sprintf("$%.0f", cost))
			} else {
				cells = append(cells, "-")
			}
		}
		fmt.Fprintf(writer, "  %s\t%s\n", size, strings.Join(cells, "\t"))
	}
	return writer.Flush()
}

func formatDefault(value any) string {
	if value == nil {
		return "-"
	}
	return fmt.Sprintf("%v", value)
}
