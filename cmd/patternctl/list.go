package main

import (
	"encoding/json"
	"fmt"
	"os"
	"sort"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/platformeng/patternctl/internal/registry"
)

type listOptions struct {
	jsonOutput bool
}

func newListCmd(app *appContext) *cobra.Command {
	opts := &listOptions{}

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List tracked submissions and their last known status",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runList(cmd, opts)
		},
	}

	cmd.Flags().BoolVar(&opts.jsonOutput, "json", false, "Output in JSON format")

	return cmd
}

func runList(cmd *cobra.Command, opts *listOptions) error {
	registryPath, err := defaultRegistryPath()
	if err != nil {
		return newCommandError("list", "determining registry path", err, "Ensure your HOME directory is set correctly.")
	}

	statusPath, err := defaultStatusCachePath()
	if err != nil {
		return newCommandError("list", "determining status cache path", err, "Ensure your HOME directory is set correctly.")
	}

	reg, err := registry.NewRegistry(registryPath)
	if err != nil {
		return newCommandError("list", "loading submission registry", err, "Check registry file permissions and try again.")
	}

	submissions := reg.List()
	if len(submissions) == 0 {
		fmt.Fprintln(cmd.OutOrStdout(), "No submissions tracked yet.")
		fmt.Fprintln(cmd.OutOrStdout(), "\nRun 'patternctl add <request-file>' to track your first request file.")
		return nil
	}

	statusCache, err := registry.NewStatusCache(statusPath)
	if err != nil {
		return newCommandError("list", "loading status cache", err, "Check status cache file permissions and try again.")
	}

	enriched := enrichWithStatus(submissions, statusCache)

	if opts.jsonOutput {
		return renderListJSON(cmd, enriched)
	}

	return renderListTable(cmd, enriched)
}

type submissionWithStatus struct {
	Submission registry.Submission
	Status     registry.CachedStatus
}

func enrichWithStatus(submissions []registry.Submission, cache *registry.StatusCache) []submissionWithStatus {
	enriched := make([]submissionWithStatus, len(submissions))

	for i, s := range submissions {
		status, ok := cache.Get(s.ID)
		if !ok {
			status = registry.CachedStatus{Status: registry.StatusUnknown}
		}

		enriched[i] = submissionWithStatus{Submission: s, Status: status}
	}

	sort.Slice(enriched, func(i, j int) bool {
		return enriched[i].Submission.ID < enriched[j].Submission.ID
	})

	return enriched
}

func renderListTable(cmd *cobra.Command, submissions []submissionWithStatus) error {
	writer := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)

	fmt.Fprintln(writer, "ID\tNAME\tSTATUS\tDOCS\tCOST/MO\tCHECKED\tPATH")

	useUnicode := supportsUnicode(cmd.OutOrStdout())

	for _, s := range submissions {
		fmt.Fprintf(writer, "%s\t%s\t%s\t%s\t%s\t%s\t%s\n",
			s.Submission.ID,
			valueOrFallback(s.Submission.Name, "(no name)"),
			formatStatus(s.Status.Status, useUnicode),
			formatDocCount(s.Status),
			formatCost(s.Status.MonthlyCostUSD),
			formatRelativeTime(s.Status.CheckedAt),
			s.Submission.Path,
		)
	}

	return writer.Flush()
}

type listJSONSubmission struct {
	ID             string                    `json:"id"`
	Name           string                    `json:"name"`
	Path           string                    `json:"path"`
	Description    string                    `json:"description"`
	RegisteredAt   time.Time                 `json:"registered_at"`
	Status         registry.SubmissionStatus `json:"status"`
	CheckedAt      time.Time                 `json:"checked_at"`
	CatalogVersion string                    `json:"catalog_version,omitempty"`
	DocumentCount  int                       `json:"document_count"`
	ErrorCount     int                       `json:"error_count"`
	WarningCount   int                       `json:"warning_count"`
	MonthlyCostUSD *float64                  `json:"monthly_cost_usd,omitempty"`
}

type listJSONPayload struct {
	Version     string               `json:"version"`
	Count       int                  `json:"count"`
	Submissions []listJSONSubmission `json:"submissions"`
}

func renderListJSON(cmd *cobra.Command, submissions []submissionWithStatus) error {
	payload := listJSONPayload{
		Version:     "1.0",
		Count:       len(submissions),
		Submissions: make([]listJSONSubmission, len(submissions)),
	}

	for i, s := range submissions {
		payload.Submissions[i] = listJSONSubmission{
			ID:             s.Submission.ID,
			Name:           s.Submission.Name,
			Path:           s.Submission.Path,
			Description:    s.Submission.Description,
			RegisteredAt:   s.Submission.RegisteredAt,
			Status:         s.Status.Status,
			CheckedAt:      s.Status.CheckedAt,
			CatalogVersion: s.Status.CatalogVersion,
			DocumentCount:  s.Status.DocumentCount,
			ErrorCount:     s.Status.ErrorCount,
			WarningCount:   s.Status.WarningCount,
			MonthlyCostUSD: s.Status.MonthlyCostUSD,
		}
	}

	encoder := json.NewEncoder(cmd.OutOrStdout())
	encoder.SetIndent("", "  ")
	return encoder.Encode(payload)
}

func supportsUnicode(writer any) bool {
	if file, ok := writer.(*os.File); ok {
		return term.IsTerminal(int(file.Fd()))
	}
	return false
}

func formatStatus(status registry.SubmissionStatus, useUnicode bool) string {
	if useUnicode {
		label := lipgloss.NewStyle().Foreground(status.Color()).Render(status.String())
		return fmt.Sprintf("%s %s", status.Icon(), label)
	}

	return fmt.Sprintf("%s %s", status.IconFallback(), status.String())
}

func formatDocCount(status registry.CachedStatus) string {
	if status.Status == registry.StatusUnknown {
		return "-"
	}
	return fmt.Sprintf("%d", status.DocumentCount)
}

func formatRelativeTime(ts time.Time) string {
	if ts.IsZero() {
		return "never"
	}

	delta := time.Since(ts)
	if delta < time.Minute {
		return "just now"
	}
	if delta < time.Hour {
		return fmt.Sprintf("%d minutes ago", int(delta.Minutes()))
	}
	if delta < 24*time.Hour {
		return fmt.Sprintf("%d hours ago", int(delta.Hours()))
	}

	return fmt.Sprintf("%d days ago", int(delta.Hours()/24))
}

func valueOrFallback(value, fallback string) string {
	trimmed := strings.TrimSpace(value)
	if trimmed == "" {
		return fallback
	}
	return trimmed
}
