// pkg/filesystem/fs_test.go
// TEST TYPE: Unit Test
// DEPENDENCIES: afero MemMapFs, t.TempDir
// PURPOSE: Verify permission helpers on both backends

package filesystem_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/arthur-debert/openwith/pkg/filesystem"
	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHelpers_Memory(t *testing.T) {
	fsys := filesystem.NewMemory()
	require.NoError(t, fsys.MkdirAll("/data/applications", 0755))
	require.NoError(t, fsys.WriteFile("/data/applications/a.desktop", []byte("[Desktop Entry]\n"), 0644))
	require.NoError(t, fsys.WriteFile("/bin/tool", []byte("#!/bin/sh\n"), 0755))

	assert.True(t, filesystem.IsTraversableDir(fsys, "/data/applications"))
	assert.False(t, filesystem.IsTraversableDir(fsys, "/data/applications/a.desktop"))
	assert.False(t, filesystem.IsTraversableDir(fsys, "/missing"))

	assert.True(t, filesystem.IsReadableFile(fsys, "/data/applications/a.desktop"))
	assert.False(t, filesystem.IsReadableFile(fsys, "/data/applications"))

	assert.True(t, filesystem.IsExecutableFile(fsys, "/bin/tool"))
	assert.False(t, filesystem.IsExecutableFile(fsys, "/data/applications/a.desktop"))

	entries, err := fsys.ReadDir("/data/applications")
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, "a.desktop", entries[0].Name())

	_, err = fsys.ReadFile("/data")
	assert.Error(t, err)
}

func TestHelpers_OS(t *testing.T) {
	dir := t.TempDir()
	file := filepath.Join(dir, "x.txt")
	require.NoError(t, os.WriteFile(file, []byte("x"), 0644))

	fsys := filesystem.NewOS()
	assert.True(t, filesystem.IsTraversableDir(fsys, dir))
	assert.True(t, filesystem.IsReadableFile(fsys, file))
	assert.False(t, filesystem.IsExecutableFile(fsys, file))

	data, err := fsys.ReadFile(file)
	require.NoError(t, err)
	assert.Equal(t, "x", string(data))
}

func TestNewAferoFS_BasePath(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(dir, "share", "applications"), 0755))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "share", "applications", "b.desktop"), []byte("b"), 0644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "share", "applications", "a.desktop"), []byte("a"), 0644))

	fsys := filesystem.NewAferoFS(afero.NewReadOnlyFs(afero.NewBasePathFs(afero.NewOsFs(), dir)))

	entries, err := fsys.ReadDir("/share/applications")
	require.NoError(t, err)
	require.Len(t, entries, 2)
	assert.Equal(t, "a.desktop", entries[0].Name())

	assert.Error(t, fsys.WriteFile("/share/applications/c.desktop", []byte("c"), 0644))
}
