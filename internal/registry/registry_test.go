package registry

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	patternerrors "github.com/platformeng/patternctl/pkg/errors"
)

func testSubmission(id string) Submission {
	return Submission{
		ID:           id,
		Name:         id,
		Path:         "/tmp/" + id + ".yaml",
		Description:  "test submission",
		RegisteredAt: time.Now().UTC(),
	}
}

func TestNewRegistryStartsEmpty(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "registry.json")
	r, err := NewRegistry(path)
	require.NoError(t, err)
	require.Empty(t, r.List())
}

func TestRegistryAddGetRemove(t *testing.T) {
	t.Parallel()

	r, err := NewRegistry(filepath.Join(t.TempDir(), "registry.json"))
	require.NoError(t, err)

	require.NoError(t, r.Add(testSubmission("billing-infra")))

	got, err := r.Get("billing-infra")
	require.NoError(t, err)
	require.Equal(t, "billing-infra", got.ID)

	// Duplicate IDs are rejected.
	require.Error(t, r.Add(testSubmission("billing-infra")))

	require.NoError(t, r.Remove("billing-infra"))
	_, err = r.Get("billing-infra")

	var nf *patternerrors.NotFoundError
	require.ErrorAs(t, err, &nf)
}

func TestRegistryUpdate(t *testing.T) {
	t.Parallel()

	r, err := NewRegistry(filepath.Join(t.TempDir(), "registry.json"))
	require.NoError(t, err)

	sub := testSubmission("api-infra")
	require.NoError(t, r.Add(sub))

	sub.Description = "updated"
	require.NoError(t, r.Update(sub))

	got, err := r.Get("api-infra")
	require.NoError(t, err)
	require.Equal(t, "updated", got.Description)

	require.Error(t, r.Update(testSubmission("never-added")))
}

func TestRegistrySaveAndReload(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "registry.json")

	r, err := NewRegistry(path)
	require.NoError(t, err)
	require.NoError(t, r.Add(testSubmission("first")))
	require.NoError(t, r.Add(testSubmission("second")))
	require.NoError(t, r.Save())

	// No stray temp file after an atomic save.
	_, err = os.Stat(path + ".tmp")
	require.True(t, os.IsNotExist(err))

	reloaded, err := NewRegistry(path)
	require.NoError(t, err)

	subs := reloaded.List()
	require.Len(t, subs, 2)
	require.Equal(t, "first", subs[0].ID)
	require.Equal(t, "second", subs[1].ID)
}

func TestRegistryRejectsCorruptFile(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "registry.json")
	require.NoError(t, os.WriteFile(path, []byte("{not json"), 0644))

	_, err := NewRegistry(path)
	require.Error(t, err)
}
