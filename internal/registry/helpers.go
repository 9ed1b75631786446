package registry

import (
	"crypto/rand"
	"fmt"
	"path/filepath"
	"regexp"
	"strings"
)

const (
	submissionIDMaxLength  = 64
	randomIDSuffixLength   = 8
	randomIDSuffixFallback = "abcdefgh"
)

var (
	submissionIDPattern = regexp.MustCompile(`^[a-z0-9][a-z0-9-]*[a-z0-9]$`)
	nonAlphanumericExpr = regexp.MustCompile(`[^a-z0-9]+`)
)

// GenerateSubmissionID converts a request file path into a sanitized
// submission ID.
func GenerateSubmissionID(path string) string {
	base := filepath.Base(path)
	if ext := filepath.Ext(base); ext != "" {
		base = strings.TrimSuffix(base, ext)
	}

	id := SanitizeFilename(base)
	if id == "" {
		id = fmt.Sprintf("submission-%s", randomIDSuffix(randomIDSuffixLength))
	}

	if len(id) > submissionIDMaxLength {
		id = trimToLength(id, submissionIDMaxLength)
	}

	if id == "" {
		id = fmt.Sprintf("submission-%s", randomIDSuffix(randomIDSuffixLength))
	}

	return id
}

// ValidateSubmissionID ensures the provided ID matches the allowed pattern.
func ValidateSubmissionID(id string) error {
	if id == "" {
		return fmt.Errorf("submission ID cannot be empty")
	}

	if len(id) > submissionIDMaxLength {
		return fmt.Errorf("submission ID %q is too long: maximum length is %d characters", id, submissionIDMaxLength)
	}

	if !submissionIDPattern.MatchString(id) {
		return fmt.Errorf("invalid submission ID %q: must match %s", id, submissionIDPattern.String())
	}

	return nil
}

// SanitizeFilename normalizes a filename into an identifier-friendly format.
func SanitizeFilename(name string) string {
	lowered := strings.ToLower(name)
	sanitized := nonAlphanumericExpr.ReplaceAllString(lowered, "-")
	sanitized = strings.Trim(sanitized, "-")

	if len(sanitized) > submissionIDMaxLength {
		sanitized = trimToLength(sanitized, submissionIDMaxLength)
	}

	return sanitized
}

func randomIDSuffix(length int) string {
	const alphabet = "abcdefghijklmnopqrstuvwxyz0123456789"

	if length <= 0 {
		return ""
	}

	buf := make([]byte, length)
	if _, err := rand.Read(buf); err != nil {
		return randomIDSuffixFallback
	}

	for i := range buf {
		buf[i] = alphabet[int(buf[i])%len(alphabet)]
	}

	return string(buf)
}

func trimToLength(value string, length int) string {
	if len(value) <= length {
		return strings.Trim(value, "-")
	}

	trimmed := value[:length]
	return strings.Trim(trimmed, "-")
}
