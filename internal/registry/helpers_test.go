package registry

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestGenerateSubmissionID(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		path string
		want string
	}{
		{"plain file", "/infra/billing.yaml", "billing"},
		{"mixed case and spaces", "/infra/Billing Requests.yaml", "billing-requests"},
		{"nested path uses base only", "/a/b/c/platform-core.yml", "platform-core"},
		{"underscores become dashes", "team_alpha_infra.yaml", "team-alpha-infra"},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			require.Equal(t, tt.want, GenerateSubmissionID(tt.path))
		})
	}
}

func TestGenerateSubmissionIDFallsBackToRandom(t *testing.T) {
	t.Parallel()

	id := GenerateSubmissionID("/infra/---.yaml")
	require.True(t, strings.HasPrefix(id, "submission-"), id)
	require.NoError(t, ValidateSubmissionID(id))
}

func TestValidateSubmissionID(t *testing.T) {
	t.Parallel()

	require.NoError(t, ValidateSubmissionID("billing-infra"))
	require.Error(t, ValidateSubmissionID(""))
	require.Error(t, ValidateSubmissionID("-leading-dash"))
	require.Error(t, ValidateSubmissionID("Uppercase"))
	require.Error(t, ValidateSubmissionID(strings.Repeat("a", 65)))
}

func TestSanitizeFilenameTruncates(t *testing.T) {
	t.Parallel()

	long := strings.Repeat("abc-", 30)
	sanitized := SanitizeFilename(long)
	require.LessOrEqual(t, len(sanitized), 64)
	require.NoError(t, ValidateSubmissionID(sanitized))
}
