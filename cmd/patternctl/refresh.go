package main

import (
	"errors"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/spf13/cobra"

	"github.com/platformeng/patternctl/internal/catalog"
	"github.com/platformeng/patternctl/internal/registry"
	"github.com/platformeng/patternctl/internal/request"
)

type refreshOptions struct {
	concurrency  int
	submissionID string
}

type refreshResult struct {
	SubmissionID string
	Status       registry.CachedStatus
	Err          error
}

func newRefreshCmd(app *appContext) *cobra.Command {
	opts := &refreshOptions{}

	cmd := &cobra.Command{
		Use:   "refresh [submission-id]",
		Short: "Re-validate tracked submissions against the current catalog",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) == 1 {
				opts.submissionID = args[0]
			}
			return runRefresh(cmd, app, opts)
		},
	}

	cmd.Flags().IntVarP(&opts.concurrency, "concurrency", "c", 5, "Number of submissions to validate concurrently")

	return cmd
}

func runRefresh(cmd *cobra.Command, app *appContext, opts *refreshOptions) error {
	registryPath, err := defaultRegistryPath()
	if err != nil {
		return newCommandError("refresh", "determining registry path", err, "Ensure your HOME directory is set correctly.")
	}

	statusPath, err := defaultStatusCachePath()
	if err != nil {
		return newCommandError("refresh", "determining status cache path", err, "Ensure your HOME directory is set correctly.")
	}

	reg, err := registry.NewRegistry(registryPath)
	if err != nil {
		return newCommandError("refresh", "loading registry", err, "Check registry file permissions and try again.")
	}

	submissions := reg.List()
	if len(submissions) == 0 {
		_, _ = fmt.Fprintln(cmd.OutOrStdout(), "No submissions tracked. Run 'patternctl add <request-file>' first.")
		return nil
	}

	if opts.submissionID != "" {
		filtered := submissions[:0]
		for _, s := range submissions {
			if s.ID == opts.submissionID {
				filtered = append(filtered, s)
			}
		}
		if len(filtered) == 0 {
			return newCommandError("refresh", fmt.Sprintf("looking up submission %q", opts.submissionID), errors.New("submission not found"), "Run 'patternctl list' to view tracked submissions.")
		}
		submissions = filtered
	}

	sort.Slice(submissions, func(i, j int) bool {
		return submissions[i].ID < submissions[j].ID
	})

	statusCache, err := registry.NewStatusCache(statusPath)
	if err != nil {
		return newCommandError("refresh", "loading status cache", err, "Check status cache file permissions and try again.")
	}

	results := validateSubmissions(cmd, app, submissions, opts.concurrency)

	now := time.Now().UTC()
	for _, r := range results {
		r.Status.CheckedAt = now
		r.Status.CatalogVersion = catalog.Version
		statusCache.Set(r.SubmissionID, r.Status)
	}

	if err := statusCache.Save(); err != nil {
		return newCommandError("refresh", "saving status cache", err, "Check disk space and file permissions, then retry.")
	}

	valid, invalid := 0, 0
	for _, r := range results {
		if r.Status.Status == registry.StatusValid {
			valid++
		} else {
			invalid++
		}
	}
	_, _ = fmt.Fprintf(cmd.OutOrStdout(), "\nSummary:\n  ✓ Valid:   %d\n  ✗ Invalid: %d\n", valid, invalid)

	return nil
}

func validateSubmissions(cmd *cobra.Command, app *appContext, submissions []registry.Submission, concurrency int) []refreshResult {
	if concurrency <= 0 {
		concurrency = 1
	}

	out := cmd.OutOrStdout()

	results := make([]refreshResult, len(submissions))
	wg := sync.WaitGroup{}
	sem := make(chan struct{}, concurrency)

	for i, submission := range submissions {
		i := i
		submission := submission
		wg.Add(1)
		go func() {
			defer wg.Done()

			sem <- struct{}{}
			result := validateSubmission(app, submission)
			result.SubmissionID = submission.ID
			results[i] = result
			<-sem

			_, _ = fmt.Fprintf(out, "[%d/%d] %s... %s\n", i+1, len(submissions), submission.ID, formatRefreshResult(result))
		}()
	}

	wg.Wait()
	return results
}

func validateSubmission(app *appContext, submission registry.Submission) refreshResult {
	docs, err := request.ParseFile(submission.Path)
	if err != nil {
		return refreshResult{
			Status: registry.CachedStatus{Status: registry.StatusInvalid, ErrorCount: 1},
			Err:    err,
		}
	}

	plan := app.validator.Validate(docs)

	status := registry.CachedStatus{
		Status:         registry.StatusValid,
		DocumentCount:  plan.DocumentCount,
		ErrorCount:     len(plan.Errors),
		MonthlyCostUSD: plan.TotalMonthlyCostUSD,
	}
	for _, doc := range plan.Documents {
		status.WarningCount += len(doc.Warnings)
	}
	if !plan.Valid {
		status.Status = registry.StatusInvalid
	}

	return refreshResult{Status: status}
}

func formatRefreshResult(result refreshResult) string {
	if result.Err != nil {
		return fmt.Sprintf("✗ failed (%v)", result.Err)
	}

	switch result.Status.Status {
	case registry.StatusValid:
		if result.Status.WarningCount > 0 {
			return fmt.Sprintf("✓ valid (%d warnings)", result.Status.WarningCount)
		}
		return "✓ valid"
	default:
		return fmt.Sprintf("✗ invalid (%d errors)", result.Status.ErrorCount)
	}
}
