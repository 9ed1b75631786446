package api

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/platformeng/patternctl/internal/catalog"
	"github.com/platformeng/patternctl/internal/logger"
)

const validSubmission = `version: "1"
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

func newTestServer(t *testing.T) *Server {
	t.Helper()

	c, err := catalog.Load()
	require.NoError(t, err)

	log, err := logger.New(logger.Options{Level: "error", Writer: io.Discard})
	require.NoError(t, err)

	return New(c, log)
}

func doRequest(t *testing.T, s *Server, method, path, contentType string, body string) *httptest.ResponseRecorder {
	t.Helper()

	var reader io.Reader
	if body != "" {
		reader = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, path, reader)
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}

	rec := httptest.NewRecorder()
	s.Handler().ServeHTTP(rec, req)
	return rec
}

func decodeBody(t *testing.T, rec *httptest.ResponseRecorder) map[string]any {
	t.Helper()

	var payload map[string]any
	require.NoError(t, json.NewDecoder(bytes.NewReader(rec.Body.Bytes())).Decode(&payload))
	return payload
}

func TestHealthEndpoint(t *testing.T) {
	t.Parallel()

	rec := doRequest(t, newTestServer(t), http.MethodGet, "/health", "", "")
	require.Equal(t, http.StatusOK, rec.Code)

	payload := decodeBody(t, rec)
	require.Equal(t, "healthy", payload["status"])
	require.Equal(t, catalog.Version, payload["catalog_version"])
}

func TestDryRunValidSubmission(t *testing.T) {
	t.Parallel()

	rec := doRequest(t, newTestServer(t), http.MethodPost, "/api/dry-run", "application/yaml", validSubmission)
	require.Equal(t, http.StatusOK, rec.Code)

	payload := decodeBody(t, rec)
	require.Equal(t, true, payload["valid"])
	require.EqualValues(t, 1, payload["document_count"])
	require.NotEmpty(t, payload["plan_id"])
	require.Equal(t, []any{float64(0)}, payload["execution_order"])
}

func TestDryRunInvalidDocumentReturnsBreakdown(t *testing.T) {
	t.Parallel()

	submission := strings.Replace(validSubmission, "  name: secrets\n", "  other: value\n", 1)

	rec := doRequest(t, newTestServer(t), http.MethodPost, "/api/dry-run", "application/yaml", submission)
	require.Equal(t, http.StatusBadRequest, rec.Code)

	payload := decodeBody(t, rec)
	require.Equal(t, false, payload["valid"])

	docs, ok := payload["documents"].([]any)
	require.True(t, ok)
	require.Len(t, docs, 1)

	errs := payload["errors"].([]any)
	require.Contains(t, errs, "Document 0: Missing required config field: name")
}

func TestDryRunMalformedYAML(t *testing.T) {
	t.Parallel()

	rec := doRequest(t, newTestServer(t), http.MethodPost, "/api/dry-run", "application/yaml", "pattern: [unclosed")
	require.Equal(t, http.StatusBadRequest, rec.Code)

	payload := decodeBody(t, rec)
	require.Contains(t, payload, "error")
}

func TestDryRunEmptyBody(t *testing.T) {
	t.Parallel()

	rec := doRequest(t, newTestServer(t), http.MethodPost, "/api/dry-run", "application/yaml", "")
	require.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestAnalyzeEndpoint(t *testing.T) {
	t.Parallel()

	body := `{"project_name": "billing", "files": [{"path": "package.json", "content": "\"@azure/functions\""}]}`

	rec := doRequest(t, newTestServer(t), http.MethodPost, "/api/analyze", "application/json", body)
	require.Equal(t, http.StatusOK, rec.Code)

	payload := decodeBody(t, rec)
	require.Equal(t, "billing", payload["project_name"])

	recs, ok := payload["recommendations"].([]any)
	require.True(t, ok)
	require.NotEmpty(t, recs)

	top := recs[0].(map[string]any)
	require.Equal(t, "function_app", top["pattern_name"])
}

func TestAnalyzeEmptyFileSet(t *testing.T) {
	t.Parallel()

	rec := doRequest(t, newTestServer(t), http.MethodPost, "/api/analyze", "application/json", `{"files": []}`)
	require.Equal(t, http.StatusOK, rec.Code)

	payload := decodeBody(t, rec)
	require.Empty(t, payload["recommendations"])
}

func TestAnalyzeRejectsMalformedJSON(t *testing.T) {
	t.Parallel()

	rec := doRequest(t, newTestServer(t), http.MethodPost, "/api/analyze", "application/json", `{"files": `)
	require.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestPatternsList(t *testing.T) {
	t.Parallel()

	rec := doRequest(t, newTestServer(t), http.MethodGet, "/api/patterns", "", "")
	require.Equal(t, http.StatusOK, rec.Code)

	payload := decodeBody(t, rec)
	patterns, ok := payload["patterns"].([]any)
	require.True(t, ok)
	require.NotEmpty(t, patterns)

	first := patterns[0].(map[string]any)
	require.Contains(t, first, "name")
	require.Contains(t, first, "components")
}

func TestPatternDetail(t *testing.T) {
	t.Parallel()

	rec := doRequest(t, newTestServer(t), http.MethodGet, "/api/patterns/keyvault", "", "")
	require.Equal(t, http.StatusOK, rec.Code)

	payload := decodeBody(t, rec)
	require.Equal(t, "keyvault", payload["name"])
	require.Equal(t, []any{"name"}, payload["required_fields"])
	require.Contains(t, payload, "optional_fields")
}

func TestPatternDetailNotFound(t *testing.T) {
	t.Parallel()

	rec := doRequest(t, newTestServer(t), http.MethodGet, "/api/patterns/unobtainium", "", "")
	require.Equal(t, http.StatusNotFound, rec.Code)

	payload := decodeBody(t, rec)
	detail := payload["error"].(map[string]any)
	require.Equal(t, "NOT_FOUND", detail["code"])
}

func TestCatalogVersionEndpoint(t *testing.T) {
	t.Parallel()

	rec := doRequest(t, newTestServer(t), http.MethodGet, "/api/catalog/version", "", "")
	require.Equal(t, http.StatusOK, rec.Code)

	payload := decodeBody(t, rec)
	require.Equal(t, catalog.Version, payload["version"])
	require.Greater(t, payload["pattern_count"], float64(0))
}
