package main

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

const validRequest = `version: "1"
action: create
metadata:
  project: billing
  environment: dev
  business_unit: finance
  owners:
    - team@example.com
pattern: keyvault
config:
  name: secrets
`

const invalidRequest = `version: "1"
metadata:
  project: billing
  environment: dev
  business_unit: finance
  owners:
    - team@example.com
pattern: keyvault
config: {}
`

func writeRequestFile(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "request.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestValidateCommandValidFile(t *testing.T) {
	path := writeRequestFile(t, validRequest)

	out, err := executeCommand(t, newTestApp(t), "validate", path)
	require.NoError(t, err)
	require.Contains(t, out, "keyvault")
	require.Contains(t, out, "Execution order: 0")
}

func TestValidateCommandInvalidFile(t *testing.T) {
	path := writeRequestFile(t, invalidRequest)

	out, err := executeCommand(t, newTestApp(t), "validate", path)
	require.Error(t, err)
	require.Contains(t, err.Error(), "1 of 1 document(s) invalid")
	require.Contains(t, out, "Missing required config field: name")
}

func TestValidateCommandJSONOutput(t *testing.T) {
	path := writeRequestFile(t, validRequest)

	out, err := executeCommand(t, newTestApp(t), "validate", path, "--json")
	require.NoError(t, err)

	var plan map[string]any
	require.NoError(t, json.Unmarshal([]byte(out), &plan))
	require.Equal(t, true, plan["valid"])
	require.EqualValues(t, 1, plan["document_count"])
}

func TestValidateCommandMissingFile(t *testing.T) {
	_, err := executeCommand(t, newTestApp(t), "validate", filepath.Join(t.TempDir(), "absent.yaml"))
	require.Error(t, err)
}

func TestResolveCommand(t *testing.T) {
	path := writeRequestFile(t, validRequest)

	out, err := executeCommand(t, newTestApp(t), "resolve", path)
	require.NoError(t, err)
	require.Contains(t, out, "Resource group: rg-billing-keyvault-dev")
	require.Contains(t, out, "Effective config:")
}
