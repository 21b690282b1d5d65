// pkg/filesystem/filesystem_test.go
// TEST TYPE: Integration Test
// DEPENDENCIES: Real temporary directories
// PURPOSE: Test both FS implementations against the real filesystem

package filesystem_test

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/arthur-debert/zoimods/pkg/filesystem"
	"github.com/arthur-debert/zoimods/pkg/types"
	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestImplementations(t *testing.T) {
	impls := map[string]types.FS{
		"os":    filesystem.NewOS(),
		"afero": filesystem.NewAferoFS(afero.NewOsFs()),
	}

	for name, fsys := range impls {
		t.Run(name, func(t *testing.T) {
			dir := t.TempDir()
			src := filepath.Join(dir, "mod", "MySites", "abc")
			link := filepath.Join(dir, "docs", "abc")

			require.NoError(t, fsys.MkdirAll(src, 0755))
			require.NoError(t, fsys.MkdirAll(filepath.Dir(link), 0755))
			require.NoError(t, fsys.Symlink(src, link))

			info, err := fsys.Lstat(link)
			require.NoError(t, err)
			assert.True(t, info.Mode()&os.ModeSymlink != 0)

			info, err = fsys.Stat(link)
			require.NoError(t, err)
			assert.True(t, info.IsDir())

			target, err := fsys.Readlink(link)
			require.NoError(t, err)
			assert.Equal(t, src, target)

			entries, err := fsys.ReadDir(filepath.Dir(link))
			require.NoError(t, err)
			require.Len(t, entries, 1)
			assert.Equal(t, "abc", entries[0].Name())
			assert.True(t, entries[0].Type()&os.ModeSymlink != 0)

			require.NoError(t, fsys.Remove(link))
			_, err = fsys.Lstat(link)
			assert.True(t, errors.Is(err, os.ErrNotExist))

			_, err = fsys.Stat(src)
			assert.NoError(t, err)
		})
	}
}

func TestAferoFS_NoSymlinkSupport(t *testing.T) {
	fsys := filesystem.NewAferoFS(afero.NewMemMapFs())

	err := fsys.Symlink("/a", "/b")
	assert.True(t, errors.Is(err, afero.ErrNoSymlink))

	_, err = fsys.Readlink("/b")
	assert.True(t, errors.Is(err, afero.ErrNoReadlink))
}
