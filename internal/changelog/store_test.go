package changelog

import (
	"os"
	"testing"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStore_LoadMissing(t *testing.T) {
	t.Parallel()

	s := &Store{Fs: afero.NewMemMapFs(), Path: "/repo/CHANGELOG.md"}
	doc, exists, err := s.Load()
	require.NoError(t, err)
	assert.False(t, exists)
	assert.Empty(t, doc)
}

func TestStore_SaveAndLoad(t *testing.T) {
	t.Parallel()

	fs := afero.NewMemMapFs()
	s := &Store{Fs: fs, Path: "/repo/docs/CHANGELOG.md"}

	require.NoError(t, s.Save(Header+"## [1.0.0] (2026-01-01)\n"))

	doc, exists, err := s.Load()
	require.NoError(t, err)
	assert.True(t, exists)
	assert.Equal(t, Header+"## [1.0.0] (2026-01-01)\n", doc)

	info, err := fs.Stat("/repo/docs/CHANGELOG.md")
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0o644), info.Mode().Perm())
}

func TestStore_SaveReplacesAndLeavesNoTempFiles(t *testing.T) {
	t.Parallel()

	fs := afero.NewMemMapFs()
	s := &Store{Fs: fs, Path: "/repo/CHANGELOG.md"}
	require.NoError(t, afero.WriteFile(fs, s.Path, []byte("old"), 0o644))

	require.NoError(t, s.Save("new"))

	doc, _, err := s.Load()
	require.NoError(t, err)
	assert.Equal(t, "new", doc)

	entries, err := afero.ReadDir(fs, "/repo")
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, "CHANGELOG.md", entries[0].Name())
}

func TestStore_SaveReadOnly(t *testing.T) {
	t.Parallel()

	s := &Store{Fs: afero.NewReadOnlyFs(afero.NewMemMapFs()), Path: "/repo/CHANGELOG.md"}
	err := s.Save("doc")
	require.Error(t, err)
}

func TestNewStore(t *testing.T) {
	t.Parallel()

	s := NewStore("CHANGELOG.md")
	assert.Equal(t, "CHANGELOG.md", s.Path)
	assert.IsType(t, &afero.OsFs{}, s.Fs)
}
