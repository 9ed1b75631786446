package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"github.com/spf13/cobra"

	"github.com/platformeng/patternctl/internal/classifier"
)

type analyzeOptions struct {
	dir        string
	maxFiles   int
	includeAll bool
	jsonOutput bool
}

func newAnalyzeCmd(rootFlags *rootFlags, app *appContext) *cobra.Command {
	opts := &analyzeOptions{}

	cmd := &cobra.Command{
		Use:   "analyze [file ...]",
		Short: "Suggest matching patterns from codebase signals",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runAnalyze(cmd, app, args, opts)
		},
	}

	cmd.Flags().StringVarP(&opts.dir, "dir", "d", "", "Scan a project directory instead of individual files")
	cmd.Flags().IntVar(&opts.maxFiles, "max-files", classifier.DefaultMaxFiles, "Maximum number of files to read during a directory scan")
	cmd.Flags().BoolVar(&opts.includeAll, "all", false, "Include low-confidence matches below the noise floor")
	cmd.Flags().BoolVar(&opts.jsonOutput, "json", false, "Output recommendations as JSON")

	return cmd
}

func runAnalyze(cmd *cobra.Command, app *appContext, args []string, opts *analyzeOptions) error {
	if opts.dir == "" && len(args) == 0 {
		return errors.New("provide file paths or --dir to analyze")
	}
	if opts.dir != "" && len(args) > 0 {
		return errors.New("--dir and explicit file paths are mutually exclusive")
	}

	var (
		results []classifier.Recommendation
		err     error
	)

	if opts.dir != "" {
		results, err = app.classifier.ScanDirectory(cmd.Context(), opts.dir, classifier.ScanOptions{MaxFiles: opts.maxFiles})
		if err != nil {
			return newCommandError("analyze", fmt.Sprintf("scanning directory %q", opts.dir), err, "Check that the directory exists and is readable.")
		}
	} else {
		files, readErr := readInputFiles(args)
		if readErr != nil {
			return newCommandError("analyze", "reading input files", readErr, "Check that every listed file exists and is readable.")
		}
		if opts.includeAll {
			results = app.classifier.ClassifyAll(files)
		} else {
			results = app.classifier.Classify(files)
		}
	}

	if opts.jsonOutput {
		if results == nil {
			results = []classifier.Recommendation{}
		}
		encoder := json.NewEncoder(cmd.OutOrStdout())
		encoder.SetIndent("", "  ")
		return encoder.Encode(results)
	}

	renderRecommendations(cmd, results)
	return nil
}

func readInputFiles(paths []string) ([]classifier.File, error) {
	files := make([]classifier.File, 0, len(paths))
	for _, path := range paths {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, err
		}
		files = append(files, classifier.File{
			Path:    filepath.ToSlash(path),
			Content: string(data),
		})
	}
	return files, nil
}

func renderRecommendations(cmd *cobra.Command, results []classifier.Recommendation) {
	out := cmd.OutOrStdout()

	if len(results) == 0 {
		fmt.Fprintln(out, "No pattern signals detected.")
		return
	}

	for _, rec := range results {
		fmt.Fprintf(out, "%s (confidence %.0f%%)\n", rec.Pattern, rec.Confidence*100)
		for _, evidence := range rec.Evidence {
			fmt.Fprintf(out, "  • %s\n", evidence)
		}
		if len(rec.SuggestedConfig) > 0 {
			fmt.Fprintln(out, "  suggested config:")
			for _, key := range sortedConfigKeys(rec.SuggestedConfig) {
				fmt.Fprintf(out, "    %s: %v\n", key, rec.SuggestedConfig[key])
			}
		}
		fmt.Fprintln(out)
	}
}

func sortedConfigKeys(config map[string]any) []string {
	keys := make([]string, 0, len(config))
	for key := range config {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	return keys
}
