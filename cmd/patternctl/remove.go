package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/platformeng/patternctl/internal/registry"
)

func newRemoveCmd(app *appContext) *cobra.Command {
	return &cobra.Command{
		Use:   "remove <submission-id>",
		Short: "Remove a submission from the registry",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runRemove(cmd, args[0])
		},
	}
}

func runRemove(cmd *cobra.Command, id string) error {
	registryPath, err := defaultRegistryPath()
	if err != nil {
		return newCommandError("remove", "determining registry path", err, "Ensure your HOME directory is set correctly.")
	}

	reg, err := registry.NewRegistry(registryPath)
	if err != nil {
		return newCommandError("remove", "loading registry", err, "Check registry file permissions and try again.")
	}

	if err := reg.Remove(id); err != nil {
		return newCommandError("remove", fmt.Sprintf("removing submission %q", id), err, "Run 'patternctl list' to view registered submissions.")
	}

	if err := reg.Save(); err != nil {
		return newCommandError("remove", "saving registry", err, "Check disk space and file permissions, then retry.")
	}

	// Drop any stale status entry; a missing cache is not an error here.
	if statusPath, err := defaultStatusCachePath(); err == nil {
		if cache, err := registry.NewStatusCache(statusPath); err == nil {
			cache.Invalidate(id)
			_ = cache.Save()
		}
	}

	_, _ = fmt.Fprintf(cmd.OutOrStdout(), "✓ Removed submission '%s'\n", id)
	return nil
}
