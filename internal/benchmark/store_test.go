package benchmark

import (
	"errors"
	"io/fs"
	"path/filepath"
	"testing"
	"time"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFileStore(t *testing.T) {
	fsys := afero.NewMemMapFs()
	path := filepath.Join("nested", "runs.json")
	store, err := NewFileStore(fsys, path)
	require.NoError(t, err)
	defer store.Close()

	// LoadAll on a missing file
	runs, err := store.LoadAll()
	assert.NoError(t, err)
	assert.Empty(t, runs)

	latest, err := store.LoadLatest()
	assert.NoError(t, err)
	assert.Nil(t, latest)

	exists, err := store.Exists()
	require.NoError(t, err)
	assert.False(t, exists)

	now := time.Now()
	// Saved out of order; LoadAll sorts by timestamp.
	require.NoError(t, store.Save(Run{
		Timestamp: now,
		Variant:   "functional",
		Policy:    "exact",
		Elements:  3,
		Results:   []Result{{Repetition: 1, Total: "14", Seconds: 0.7}},
	}))
	require.NoError(t, store.Save(Run{
		Timestamp: now.Add(-time.Hour),
		Variant:   "loop",
		Policy:    "exact",
		Elements:  3,
		Results:   []Result{{Repetition: 1, Total: "14", Seconds: 0.5}},
	}))

	exists, err = store.Exists()
	require.NoError(t, err)
	assert.True(t, exists)

	runs, err = store.LoadAll()
	require.NoError(t, err)
	require.Len(t, runs, 2)
	assert.Equal(t, "loop", runs[0].Variant)
	assert.Equal(t, "functional", runs[1].Variant)
	assert.Equal(t, "14", runs[1].Results[0].Total)

	latest, err = store.LoadLatest()
	require.NoError(t, err)
	require.NotNil(t, latest)
	assert.Equal(t, "functional", latest.Variant)

	// The file is a plain JSON array on the given filesystem.
	data, err := afero.ReadFile(fsys, path)
	require.NoError(t, err)
	assert.Contains(t, string(data), `"variant": "loop"`)
}

func TestFileStore_Empty(t *testing.T) {
	fsys := afero.NewMemMapFs()
	require.NoError(t, afero.WriteFile(fsys, "runs.json", nil, 0644))

	store, err := NewFileStore(fsys, "runs.json")
	require.NoError(t, err)

	runs, err := store.LoadAll()
	assert.NoError(t, err)
	assert.Empty(t, runs)
}

func TestFileStore_Corrupt(t *testing.T) {
	fsys := afero.NewMemMapFs()
	require.NoError(t, afero.WriteFile(fsys, "runs.json", []byte("{not json"), 0644))

	store, err := NewFileStore(fsys, "runs.json")
	require.NoError(t, err)

	_, err = store.LoadAll()
	assert.ErrorContains(t, err, "failed to unmarshal runs")

	// Saving must not silently discard the unreadable history.
	err = store.Save(Run{Variant: "loop"})
	assert.Error(t, err)

	data, err := afero.ReadFile(fsys, "runs.json")
	require.NoError(t, err)
	assert.Equal(t, "{not json", string(data))
}

func TestFileStore_ReadOnlyFs(t *testing.T) {
	base := afero.NewMemMapFs()
	store, err := NewFileStore(afero.NewReadOnlyFs(base), "runs.json")
	require.NoError(t, err)

	err = store.Save(Run{Variant: "loop"})
	assert.ErrorContains(t, err, "failed to write runs.json")

	_, statErr := base.Stat("runs.json")
	assert.True(t, errors.Is(statErr, fs.ErrNotExist))
}
