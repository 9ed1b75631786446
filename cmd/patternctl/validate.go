package main

import (
	"encoding/json"
	"fmt"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/platformeng/patternctl/internal/batch"
	"github.com/platformeng/patternctl/internal/request"
)

type validateOptions struct {
	jsonOutput bool
}

func newValidateCmd(rootFlags *rootFlags, app *appContext) *cobra.Command {
	opts := &validateOptions{}

	cmd := &cobra.Command{
		Use:   "validate <request-file>",
		Short: "Validate a request file and show the resulting batch plan",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runValidate(cmd, app, args[0], opts)
		},
	}

	cmd.Flags().BoolVar(&opts.jsonOutput, "json", false, "Output the batch plan as JSON")

	return cmd
}

func runValidate(cmd *cobra.Command, app *appContext, path string, opts *validateOptions) error {
	docs, err := request.ParseFile(path)
	if err != nil {
		return newCommandError("validate", fmt.Sprintf("parsing request file %q", path), err, "Fix the YAML errors shown above and try again.")
	}

	plan := app.validator.Validate(docs)

	if opts.jsonOutput {
		encoder := json.NewEncoder(cmd.OutOrStdout())
		encoder.SetIndent("", "  ")
		if err := encoder.Encode(plan); err != nil {
			return err
		}
	} else if err := renderPlan(cmd, plan); err != nil {
		return err
	}

	if !plan.Valid {
		invalid := 0
		for _, doc := range plan.Documents {
			if !doc.Valid {
				invalid++
			}
		}
		return fmt.Errorf("validation failed: %d of %d document(s) invalid", invalid, plan.DocumentCount)
	}

	return nil
}

func renderPlan(cmd *cobra.Command, plan batch.Plan) error {
	out := cmd.OutOrStdout()

	writer := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
	fmt.Fprintln(writer, "INDEX\tPATTERN\tACTION\tVALID\tCOST/MO\tRESOURCE GROUP")
	for _, doc := range plan.Documents {
		fmt.Fprintf(writer, "%d\t%s\t%s\t%s\t%s\t%s\n",
			doc.Index,
			valueOrFallback(doc.Pattern, "(none)"),
			doc.Action,
			formatValidity(doc.Valid),
			formatCost(doc.EstimatedCostUSD),
			valueOrFallback(doc.ResourceGroup, "-"),
		)
	}
	if err := writer.Flush(); err != nil {
		return err
	}

	for _, doc := range plan.Documents {
		for _, msg := range doc.Errors {
			fmt.Fprintf(out, "  ✗ document %d: %s\n", doc.Index, msg)
		}
		for _, msg := range doc.Warnings {
			fmt.Fprintf(out, "  ⚠ document %d: %s\n", doc.Index, msg)
		}
	}

	fmt.Fprintf(out, "\nExecution order: %s\n", formatOrder(plan.ExecutionOrder))
	fmt.Fprintf(out, "Total monthly cost: %s\n", formatCost(plan.TotalMonthlyCostUSD))
	fmt.Fprintf(out, "Plan: %s\n", plan.ID)

	return nil
}

func formatValidity(valid bool) string {
	if valid {
		return "yes"
	}
	return "NO"
}

func formatCost(cost *float64) string {
	if cost == nil {
		return "unknown"
	}
	return fmt.Sprintf("$%.0f", *cost)
}

func formatOrder(order []int) string {
	if len(order) == 0 {
		return "(empty)"
	}

	parts := make([]string, len(order))
	for i, idx := range order {
		parts[i] = fmt.Sprintf("%d", idx)
	}
	return strings.Join(parts, " → ")
}
