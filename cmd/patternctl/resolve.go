package main

import (
	"encoding/json"
	"fmt"
	"sort"

	"github.com/spf13/cobra"

	"github.com/platformeng/patternctl/internal/request"
	"github.com/platformeng/patternctl/internal/resolver"
)

type resolveOptions struct {
	jsonOutput bool
}

func newResolveCmd(rootFlags *rootFlags, app *appContext) *cobra.Command {
	opts := &resolveOptions{}

	cmd := &cobra.Command{
		Use:   "resolve <request-file>",
		Short: "Resolve each document to its full effective configuration",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runResolve(cmd, app, args[0], opts)
		},
	}

	cmd.Flags().BoolVar(&opts.jsonOutput, "json", false, "Output resolved plans as JSON")

	return cmd
}

func runResolve(cmd *cobra.Command, app *appContext, path string, opts *resolveOptions) error {
	docs, err := request.ParseFile(path)
	if err != nil {
		return newCommandError("resolve", fmt.Sprintf("parsing request file %q", path), err, "Fix the YAML errors shown above and try again.")
	}

	plans := make([]resolver.Plan, 0, len(docs))
	for _, doc := range docs {
		plans = append(plans, app.resolver.Resolve(doc))
	}

	if opts.jsonOutput {
		encoder := json.NewEncoder(cmd.OutOrStdout())
		encoder.SetIndent("", "  ")
		return encoder.Encode(plans)
	}

	invalid := 0
	for i, plan := range plans {
		renderResolvedPlan(cmd, i, plan)
		if !plan.Valid {
			invalid++
		}
	}

	if invalid > 0 {
		return fmt.Errorf("resolution failed: %d of %d document(s) invalid", invalid, len(plans))
	}

	return nil
}

func renderResolvedPlan(cmd *cobra.Command, index int, plan resolver.Plan) {
	out := cmd.OutOrStdout()

	fmt.Fprintf(out, "Document %d: %s (%s)\n", index, valueOrFallback(plan.Pattern, "(none)"), plan.Action)

	if !plan.Valid {
		for _, msg := range plan.Errors {
			fmt.Fprintf(out, "  ✗ %s\n", msg)
		}
		for _, msg := range plan.Warnings {
			fmt.Fprintf(out, "  ⚠ %s\n", msg)
		}
		fmt.Fprintln(out)
		return
	}

	fmt.Fprintf(out, "  Environment:    %s\n", plan.Environment)
	fmt.Fprintf(out, "  Size:           %s\n", plan.Size)
	fmt.Fprintf(out, "  Resource group: %s\n", plan.ResourceGroup)
	fmt.Fprintf(out, "  State key:      %s\n", plan.StateKey)
	fmt.Fprintf(out, "  Cost:           %s/month\n", formatCost(plan.EstimatedCostUSD))

	fmt.Fprintln(out, "  Components:")
	for _, component := range plan.Components {
		fmt.Fprintf(out, "    - %s\n", component)
	}

	fmt.Fprintln(out, "  Effective config:")
	keys := make([]string, 0, len(plan.EffectiveConfig))
	for key := range plan.EffectiveConfig {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	for _, key := range keys {
		fmt.Fprintf(out, "    %s: %v\n", key, plan.EffectiveConfig[key])
	}

	for _, msg := range plan.Warnings {
		fmt.Fprintf(out, "  ⚠ %s\n", msg)
	}

	fmt.Fprintln(out)
}
