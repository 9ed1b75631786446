package main

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestAnalyzeCommandFiles(t *testing.T) {
	path := filepath.Join(t.TempDir(), "package.json")
	require.NoError(t, os.WriteFile(path, []byte(`{"dependencies": {"@azure/functions": "^4.0.0"}}`), 0o644))

	out, err := executeCommand(t, newTestApp(t), "analyze", path)
	require.NoError(t, err)
	require.Contains(t, out, "function_app")
	require.Contains(t, out, "confidence")
}

func TestAnalyzeCommandDirectory(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "requirements.txt"), []byte("psycopg2-binary==2.9\n"), 0o644))

	out, err := executeCommand(t, newTestApp(t), "analyze", "--dir", dir)
	require.NoError(t, err)
	require.Contains(t, out, "postgresql")
}

func TestAnalyzeCommandRequiresInput(t *testing.T) {
	_, err := executeCommand(t, newTestApp(t), "analyze")
	require.Error(t, err)
}

func TestPatternsListCommand(t *testing.T) {
	out, err := executeCommand(t, newTestApp(t), "patterns", "list")
	require.NoError(t, err)
	require.Contains(t, out, "keyvault")
	require.Contains(t, out, "function_app")
}

func TestPatternsShowCommand(t *testing.T) {
	out, err := executeCommand(t, newTestApp(t), "patterns", "show", "keyvault")
	require.NoError(t, err)
	require.Contains(t, out, "key-vault")
	require.Contains(t, out, "Required fields:")

	_, err = executeCommand(t, newTestApp(t), "patterns", "show", "unobtainium")
	require.Error(t, err)
}
