package errors

import (
	stderrors "errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestParseError(t *testing.T) {
	t.Parallel()

	cause := fmt.Errorf("unexpected node")
	err := NewParseError("request.yaml", 12, cause)

	require.EqualError(t, err, "parse error: request.yaml:12: unexpected node")
	require.ErrorIs(t, err, cause)

	noLine := NewParseError("request.yaml", 0, cause)
	require.EqualError(t, noLine, "parse error: request.yaml: unexpected node")
}

func TestValidationError(t *testing.T) {
	t.Parallel()

	err := NewValidationError("config.name", "missing required config field: name", nil)
	require.EqualError(t, err, "validation error: config.name: missing required config field: name")

	var ve *ValidationError
	require.True(t, stderrors.As(err, &ve))
	require.Equal(t, "config.name", ve.Field)

	fieldless := NewValidationError("", "document is empty", nil)
	require.EqualError(t, fieldless, "validation error: document is empty")
}

func TestCatalogError(t *testing.T) {
	t.Parallel()

	cause := fmt.Errorf("yaml: line 3: mapping values are not allowed")
	err := NewCatalogError("keyvault", "unreadable sizing matrix", cause)

	require.EqualError(t, err, "catalog error [keyvault]: unreadable sizing matrix")
	require.ErrorIs(t, err, cause)
}

func TestNotFoundError(t *testing.T) {
	t.Parallel()

	err := NewNotFoundError("pattern", "quantum_db")
	require.EqualError(t, err, "pattern not found: quantum_db")

	var nf *NotFoundError
	require.True(t, stderrors.As(err, &nf))
	require.Equal(t, "pattern", nf.Kind)
	require.Equal(t, "quantum_db", nf.Name)
}
