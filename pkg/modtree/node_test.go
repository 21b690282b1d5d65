// pkg/modtree/node_test.go
// TEST TYPE: Unit Test
// DEPENDENCIES: None
// PURPOSE: Test virtual tree navigation, moves, merges and removals

package modtree_test

import (
	"testing"

	"github.com/arthur-debert/zoimods/pkg/errors"
	"github.com/arthur-debert/zoimods/pkg/modtree"
	"github.com/arthur-debert/zoimods/pkg/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFromPaths(t *testing.T) {
	tree := modtree.FromPaths("MyGun/MyGun.glb", "readme.txt", "Empty/")

	assert.Equal(t, []string{
		"Empty/",
		"MyGun/",
		"MyGun/MyGun.glb",
		"readme.txt",
	}, tree.Paths())
	assert.Equal(t, 3, tree.Len())
	assert.Nil(t, tree.Parent())
}

func TestFind_CaseInsensitive(t *testing.T) {
	tree := modtree.FromPaths("BlueClient/Content/Paks/~mods/a.pak")

	e := tree.Find("blueclient/CONTENT/paks/~MODS/A.PAK")
	require.NotNil(t, e)
	assert.Equal(t, "BlueClient/Content/Paks/~mods/a.pak", e.Path())
	assert.False(t, e.IsDir())

	assert.Nil(t, tree.Find("BlueClient/missing"))
	assert.Nil(t, tree.Find("BlueClient/Content/Paks/~mods/a.pak/deeper"))
}

func TestParent(t *testing.T) {
	tree := modtree.FromPaths("a/b/c.txt")

	c := tree.Find("a/b/c.txt")
	require.NotNil(t, c)
	parent := c.Parent()
	require.NotNil(t, parent)
	assert.Equal(t, "a/b", parent.Path())
	assert.Equal(t, "", parent.Parent().Parent().Path())
}

func TestMove(t *testing.T) {
	tests := []struct {
		name  string
		paths []string
		src   string
		dest  string
		want  []string
	}{
		{
			name:  "into_directory_keeps_name",
			paths: []string{"a.pak"},
			src:   "a.pak",
			dest:  "BlueClient/Content/Paks/~mods/",
			want: []string{
				"BlueClient/",
				"BlueClient/Content/",
				"BlueClient/Content/Paks/",
				"BlueClient/Content/Paks/~mods/",
				"BlueClient/Content/Paks/~mods/a.pak",
			},
		},
		{
			name:  "rename",
			paths: []string{"Folder/gun.glb"},
			src:   "Folder",
			dest:  "gun",
			want:  []string{"gun/", "gun/gun.glb"},
		},
		{
			name:  "case_only_rename",
			paths: []string{"blueclient/x.pak"},
			src:   "blueclient",
			dest:  "BlueClient",
			want:  []string{"BlueClient/", "BlueClient/x.pak"},
		},
		{
			name:  "directory_merge",
			paths: []string{"X/BlueClient/Content/b.pak", "BlueClient/Content/a.pak"},
			src:   "X/BlueClient",
			dest:  "BlueClient",
			want: []string{
				"BlueClient/",
				"BlueClient/Content/",
				"BlueClient/Content/a.pak",
				"BlueClient/Content/b.pak",
				"X/",
			},
		},
		{
			name:  "backslash_destination",
			paths: []string{"dsound.dll"},
			src:   "dsound.dll",
			dest:  `BlueClient\Binaries\Win64\`,
			want: []string{
				"BlueClient/",
				"BlueClient/Binaries/",
				"BlueClient/Binaries/Win64/",
				"BlueClient/Binaries/Win64/dsound.dll",
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tree := modtree.FromPaths(tt.paths...)
			src := tree.Find(tt.src)
			require.NotNil(t, src)

			require.NoError(t, tree.Move(src, tt.dest))
			assert.Equal(t, tt.want, tree.Paths())
		})
	}
}

func TestMove_Errors(t *testing.T) {
	tests := []struct {
		name  string
		paths []string
		src   string
		dest  string
		code  errors.ErrorCode
	}{
		{
			name:  "file_collision",
			paths: []string{"a/x.pak", "b/x.pak"},
			src:   "a/x.pak",
			dest:  "b/",
			code:  errors.ErrTreeConflict,
		},
		{
			name:  "into_itself",
			paths: []string{"a/b/c.txt"},
			src:   "a",
			dest:  "a/b/",
			code:  errors.ErrTreeInvalid,
		},
		{
			name:  "through_file",
			paths: []string{"a.txt", "b.pak"},
			src:   "b.pak",
			dest:  "a.txt/",
			code:  errors.ErrTreeConflict,
		},
		{
			name:  "escape",
			paths: []string{"a.txt"},
			src:   "a.txt",
			dest:  "../a.txt",
			code:  errors.ErrTreeInvalid,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tree := modtree.FromPaths(tt.paths...)
			before := tree.Paths()

			err := tree.Move(tree.Find(tt.src), tt.dest)
			require.Error(t, err)
			assert.True(t, errors.IsErrorCode(err, tt.code), "got %v", err)
			assert.Equal(t, before, tree.Paths())
		})
	}
}

func TestMove_ForeignEntry(t *testing.T) {
	a := modtree.FromPaths("x.txt")
	b := modtree.FromPaths("y.txt")

	err := a.Move(b.Find("y.txt"), "z.txt")
	require.Error(t, err)
	assert.True(t, errors.IsErrorCode(err, errors.ErrTreeForeign))
}

func TestMove_FromSubtree(t *testing.T) {
	tree := modtree.FromPaths("Wrapper/MyGun/MyGun.glb")

	sub, ok := types.AsTree(tree.Find("Wrapper"))
	require.True(t, ok)
	require.NoError(t, sub.Move(sub.Find("MyGun"), "My3DPrinter/"))

	assert.Equal(t, []string{
		"Wrapper/",
		"Wrapper/My3DPrinter/",
		"Wrapper/My3DPrinter/MyGun/",
		"Wrapper/My3DPrinter/MyGun/MyGun.glb",
	}, tree.Paths())
}

func TestRemove(t *testing.T) {
	tree := modtree.FromPaths("readme.txt", "a/b.pak")

	require.NoError(t, tree.Remove(tree.Find("a")))
	assert.Equal(t, []string{"readme.txt"}, tree.Paths())

	err := tree.Remove(tree)
	require.Error(t, err)
	assert.True(t, errors.IsErrorCode(err, errors.ErrTreeInvalid))
}

func TestEntries_Snapshot(t *testing.T) {
	tree := modtree.FromPaths("a.txt", "b.txt")

	entries := tree.Entries()
	require.NoError(t, tree.Remove(entries[0]))

	assert.Len(t, entries, 2)
	assert.Equal(t, "b.txt", entries[1].Name())
	assert.Equal(t, 1, tree.Len())
}
