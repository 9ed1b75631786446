package registry

import (
	"time"

	"github.com/charmbracelet/lipgloss"
)

// Submission is a tracked request file: a YAML document set that operators
// re-validate as the catalog evolves.
type Submission struct {
	ID           string    `json:"id"`
	Name         string    `json:"name"`
	Path         string    `json:"path"`
	Description  string    `json:"description"`
	RegisteredAt time.Time `json:"registered_at"`

	// Runtime state, populated from the status cache, never persisted in
	// the registry file itself.
	Status      SubmissionStatus `json:"-"`
	LastChecked time.Time        `json:"-"`
}

// SubmissionStatus is the outcome of the most recent validation run.
type SubmissionStatus string

const (
	StatusUnknown  SubmissionStatus = "unknown"
	StatusValid    SubmissionStatus = "valid"
	StatusInvalid  SubmissionStatus = "invalid"
	StatusChecking SubmissionStatus = "checking"
)

// Icon returns the Unicode icon for the status
func (s SubmissionStatus) Icon() string {
	switch s {
	case StatusValid:
		return "🟢"
	case StatusInvalid:
		return "🔴"
	case StatusChecking:
		return "🟡"
	default:
		return "⚪"
	}
}

// IconFallback returns ASCII fallback when Unicode is not supported
func (s SubmissionStatus) IconFallback() string {
	switch s {
	case StatusValid:
		return "[OK]"
	case StatusInvalid:
		return "[XX]"
	case StatusChecking:
		return "[..]"
	default:
		return "[??]"
	}
}

// Color returns the Lipgloss color for the status
func (s SubmissionStatus) Color() lipgloss.Color {
	switch s {
	case StatusValid:
		return lipgloss.Color("42") // green
	case StatusInvalid:
		return lipgloss.Color("196") // red
	case StatusChecking:
		return lipgloss.Color("226") // yellow
	default:
		return lipgloss.Color("250") // light gray
	}
}

// String returns the string representation of the status
func (s SubmissionStatus) String() string {
	return string(s)
}

// RegistryFile is the JSON file format for the submission registry
type RegistryFile struct {
	Version     string       `json:"version"`
	Submissions []Submission `json:"submissions"`
}

// CachedStatus stores the last validation outcome for a submission
type CachedStatus struct {
	Status         SubmissionStatus `json:"status"`
	CheckedAt      time.Time        `json:"checked_at"`
	CatalogVersion string           `json:"catalog_version"`
	DocumentCount  int              `json:"document_count"`
	ErrorCount     int              `json:"error_count"`
	WarningCount   int              `json:"warning_count"`

	// MonthlyCostUSD mirrors the plan total: nil means no cost data, not
	// zero cost.
	MonthlyCostUSD *float64 `json:"monthly_cost_usd,omitempty"`
}

// StatusCacheFile is the JSON file format for the status cache
type StatusCacheFile struct {
	Version  string                  `json:"version"`
	Statuses map[string]CachedStatus `json:"statuses"`
}
