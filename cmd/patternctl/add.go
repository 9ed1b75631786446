package main

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/platformeng/patternctl/internal/request"
	"github.com/platformeng/patternctl/internal/registry"
)

type addOptions struct {
	id          string
	name        string
	description string
	verbose     bool
}

func newAddCmd(rootFlags *rootFlags, app *appContext) *cobra.Command {
	opts := &addOptions{}

	cmd := &cobra.Command{
		Use:   "add <request-file>",
		Short: "Track a request file in the submission registry",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			opts.verbose = rootFlags.verbose
			return runAdd(cmd, args[0], opts)
		},
	}

	cmd.Flags().StringVarP(&opts.id, "id", "i", "", "Submission ID (auto-generated if omitted)")
	cmd.Flags().StringVarP(&opts.name, "name", "n", "", "Submission name (defaults to filename)")
	cmd.Flags().StringVarP(&opts.description, "description", "d", "", "Optional description")

	return cmd
}

func runAdd(cmd *cobra.Command, requestPath string, opts *addOptions) error {
	absPath, err := validateAndNormalizePath(requestPath)
	if err != nil {
		return newCommandError("add", fmt.Sprintf("resolving request path %q", requestPath), err, "Check that the file exists and you have permission to read it.")
	}

	if opts.name == "" {
		opts.name = deriveNameFromPath(absPath)
	}

	if opts.id == "" {
		opts.id = registry.GenerateSubmissionID(absPath)
	}

	if err := registry.ValidateSubmissionID(opts.id); err != nil {
		return newCommandError("add", "validating submission ID", err, "Provide an ID using lowercase letters, numbers, and hyphens. IDs must start and end with alphanumeric characters.")
	}

	if opts.verbose {
		_, _ = fmt.Fprintf(cmd.ErrOrStderr(), "→ Parsing request file: %s\n", absPath)
	}

	// Reject files that do not even parse; semantic validity is checked
	// later by refresh.
	if _, err := request.ParseFile(absPath); err != nil {
		return newCommandError("add", "parsing request file", err, "Fix the YAML errors shown above and try again.")
	}

	registryPath, err := defaultRegistryPath()
	if err != nil {
		return newCommandError("add", "determining registry path", err, "Ensure your HOME directory is set correctly.")
	}

	reg, err := registry.NewRegistry(registryPath)
	if err != nil {
		return newCommandError("add", "loading registry", err, "Check that you have write access to the registry directory.")
	}

	submission := registry.Submission{
		ID:           opts.id,
		Name:         opts.name,
		Path:         absPath,
		Description:  opts.description,
		RegisteredAt: time.Now().UTC(),
	}

	if err := reg.Add(submission); err != nil {
		return newCommandError("add", fmt.Sprintf("adding submission %q", opts.id), err, "Use a different ID or remove the existing submission first.")
	}

	if err := reg.Save(); err != nil {
		return newCommandError("add", "saving registry", err, "Check disk space and file permissions, then retry.")
	}

	_, _ = fmt.Fprintf(cmd.OutOrStdout(), "✓ Added submission '%s' (%s)\n", submission.ID, submission.Name)
	_, _ = fmt.Fprintf(cmd.OutOrStdout(), "  Path: %s\n", submission.Path)
	_, _ = fmt.Fprintf(cmd.OutOrStdout(), "  ID:   %s\n", submission.ID)

	_, _ = fmt.Fprintln(cmd.OutOrStdout(), "\nRun 'patternctl refresh "+submission.ID+"' to validate it against the catalog.")

	return nil
}

func validateAndNormalizePath(path string) (string, error) {
	if strings.TrimSpace(path) == "" {
		return "", errors.New("request path cannot be empty")
	}

	if strings.HasPrefix(path, "~") {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", err
		}
		path = filepath.Join(home, strings.TrimPrefix(path, "~"))
	}

	absPath, err := filepath.Abs(path)
	if err != nil {
		return "", err
	}

	info, err := os.Stat(absPath)
	if err != nil {
		return "", err
	}

	if info.IsDir() {
		return "", fmt.Errorf("%s is a directory, not a file", absPath)
	}

	return absPath, nil
}

func deriveNameFromPath(path string) string {
	base := filepath.Base(path)
	if idx := strings.LastIndex(base, "."); idx > 0 {
		base = base[:idx]
	}
	return strings.TrimSpace(base)
}
