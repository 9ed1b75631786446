package request

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	patternerrors "github.com/platformeng/patternctl/pkg/errors"
)

const singleDoc = `
version: "1"
metadata:
  project: billing
  environment: prod
  business_unit: finance
  owners:
    - team-billing@example.com
pattern: keyvault
pattern_version: "1.2.0"
config:
  name: secrets
`

const multiDoc = `
version: "1"
action: destroy
metadata:
  project: billing
  environment: staging
  business_unit: finance
  owners: [team-billing@example.com]
pattern: postgresql
config:
  name: legacy-db
---
version: "1"
metadata:
  project: billing
  environment: staging
  business_unit: finance
  owners: [team-billing@example.com]
pattern: keyvault
config:
  name: secrets
---
`

func TestParseSingleDocument(t *testing.T) {
	t.Parallel()

	docs, err := Parse([]byte(singleDoc), "request.yaml")
	require.NoError(t, err)
	require.Len(t, docs, 1)

	doc := docs[0]
	require.Equal(t, ActionCreate, doc.Action, "action defaults to create")
	require.Equal(t, DefaultLocation, doc.Metadata.Location, "location defaults")
	require.Equal(t, "keyvault", doc.Pattern)
	require.Equal(t, "secrets", doc.Config["name"])
	require.Equal(t, []string{"team-billing@example.com"}, doc.Metadata.Owners)
}

func TestParseMultiDocument(t *testing.T) {
	t.Parallel()

	docs, err := Parse([]byte(multiDoc), "request.yaml")
	require.NoError(t, err)
	require.Len(t, docs, 2, "trailing empty document is skipped")

	require.Equal(t, ActionDestroy, docs[0].Action)
	require.Equal(t, ActionCreate, docs[1].Action)
}

func TestParseRejectsEmptySubmission(t *testing.T) {
	t.Parallel()

	for _, input := range []string{"", "---\n", "---\n---\n"} {
		_, err := Parse([]byte(input), "empty.yaml")
		require.Error(t, err)

		var pe *patternerrors.ParseError
		require.True(t, errors.As(err, &pe))
	}
}

func TestParseRejectsMalformedYAML(t *testing.T) {
	t.Parallel()

	_, err := Parse([]byte("pattern: [unclosed\n"), "broken.yaml")
	require.Error(t, err)

	var pe *patternerrors.ParseError
	require.True(t, errors.As(err, &pe))
	require.Equal(t, "broken.yaml", pe.Source)
}

func TestParseFile(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "request.yaml")
	require.NoError(t, os.WriteFile(path, []byte(singleDoc), 0o644))

	docs, err := ParseFile(path)
	require.NoError(t, err)
	require.Len(t, docs, 1)

	_, err = ParseFile(filepath.Join(t.TempDir(), "missing.yaml"))
	require.Error(t, err)
}
