// pkg/checker/glob_test.go
// TEST TYPE: Unit Test
// DEPENDENCIES: In-memory tree
// PURPOSE: Test the root-level glob rules for inZOI mods

package checker_test

import (
	"testing"

	"github.com/arthur-debert/zoimods/pkg/checker"
	"github.com/arthur-debert/zoimods/pkg/modtree"
	"github.com/arthur-debert/zoimods/pkg/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGlobChecker_DataLooksValid(t *testing.T) {
	tests := []struct {
		name  string
		paths []string
		want  types.Verdict
	}{
		{"empty", nil, types.Invalid},
		{"blueclient", []string{"BlueClient/Content/Paks/~mods/a.pak"}, types.Valid},
		{"valid_case_insensitive", []string{"blueclient/x", "META.INI"}, types.Valid},
		{"loose_pak", []string{"a.pak"}, types.Fixable},
		{"loose_dll", []string{"dsound.dll", "BlueClient/"}, types.Fixable},
		{"junk_only", []string{"readme.txt"}, types.Fixable},
		{"unknown", []string{"My3DPrinter/", "random.bin"}, types.Invalid},
		{"unfold_valid", []string{"inZOI/BlueClient/a"}, types.Fixable},
		{"unfold_invalid", []string{"Creations/weird/"}, types.Invalid},
		{"unfold_file", []string{"AIGenerated"}, types.Invalid},
	}

	g := checker.NewGlobChecker(checker.InzoiPatterns())
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, g.DataLooksValid(modtree.FromPaths(tt.paths...)))
		})
	}
}

func TestGlobChecker_Fix(t *testing.T) {
	tests := []struct {
		name  string
		paths []string
		want  []string
	}{
		{
			name:  "moves_packages_and_dlls",
			paths: []string{"a.pak", "a.utoc", "dwmapi.dll", "readme.txt", "meta.ini"},
			want: []string{
				"BlueClient/",
				"BlueClient/Binaries/",
				"BlueClient/Binaries/Win64/",
				"BlueClient/Binaries/Win64/dwmapi.dll",
				"BlueClient/Content/",
				"BlueClient/Content/Paks/",
				"BlueClient/Content/Paks/~mods/",
				"BlueClient/Content/Paks/~mods/a.pak",
				"BlueClient/Content/Paks/~mods/a.utoc",
				"meta.ini",
			},
		},
		{
			name:  "unfolds_documents_folders",
			paths: []string{"AIGenerated/MyAIMotions/0123456789abcdef0123456789abcdef/motion.dat", "AIGenerated/notes.md"},
			want: []string{
				"MyAIMotions/",
				"MyAIMotions/0123456789abcdef0123456789abcdef/",
				"MyAIMotions/0123456789abcdef0123456789abcdef/motion.dat",
			},
		},
		{
			name:  "leaves_unknown_entries",
			paths: []string{"weird.bin", "LICENCE"},
			want:  []string{"weird.bin"},
		},
	}

	g := checker.NewGlobChecker(checker.InzoiPatterns())
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tree := modtree.FromPaths(tt.paths...)
			_, err := g.Fix(tree)
			require.NoError(t, err)
			assert.Equal(t, tt.want, tree.Paths())
		})
	}
}

func TestGlobChecker_CustomPatterns(t *testing.T) {
	g := checker.NewGlobChecker(checker.GlobPatterns{
		Valid: []string{"Data"},
		Move:  []checker.MoveRule{{Pattern: "*.esp", Target: "Data/"}},
	})

	tree := modtree.FromPaths("mod.ESP")
	assert.Equal(t, types.Fixable, g.DataLooksValid(tree))

	_, err := g.Fix(tree)
	require.NoError(t, err)
	assert.Equal(t, []string{"Data/", "Data/mod.ESP"}, tree.Paths())
	assert.Equal(t, types.Valid, g.DataLooksValid(tree))
}
