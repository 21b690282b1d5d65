// pkg/checker/checker_test.go
// TEST TYPE: Unit Test
// DEPENDENCIES: In-memory tree, mock base checker
// PURPOSE: Test category aware classification of mod layouts

package checker_test

import (
	"testing"

	"github.com/arthur-debert/zoimods/pkg/checker"
	"github.com/arthur-debert/zoimods/pkg/logging"
	"github.com/arthur-debert/zoimods/pkg/modtree"
	"github.com/arthur-debert/zoimods/pkg/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

const id = "0123456789abcdef0123456789abcdef"

// MockBase implements checker.Base for testing
type MockBase struct {
	mock.Mock
}

func (m *MockBase) DataLooksValid(tree types.Tree) types.Verdict {
	args := m.Called(tree)
	return args.Get(0).(types.Verdict)
}

func (m *MockBase) Fix(tree types.Tree) (types.Tree, error) {
	args := m.Called(tree)
	return tree, args.Error(0)
}

func TestDataLooksValid(t *testing.T) {
	tests := []struct {
		name  string
		paths []string
		want  types.Verdict
	}{
		{"canonical_packages", []string{"BlueClient/Content/Paks/~mods/a.pak"}, types.Valid},
		{"canonical_printer", []string{"My3DPrinter/" + id + "/gun.glb"}, types.Valid},
		{"canonical_motion", []string{"MyAIMotions/" + id + "/motion.dat"}, types.Valid},
		{"canonical_site", []string{"MySites/" + id + "/site.dat"}, types.Valid},
		{"canonical_appearance", []string{"MyAppearances/" + id + "/appearance.dat"}, types.Valid},
		{"nested_blueclient", []string{"MyMod/BlueClient/Content/Paks/~mods/a.pak"}, types.Fixable},
		{"nested_blueclient_lowercase", []string{"MyMod/blueclient/x"}, types.Fixable},
		{"wrapped_package", []string{"MyMod/a.UCAS"}, types.Fixable},
		{"loose_glb", []string{"MyGun/MyGun.glb"}, types.Fixable},
		{"loose_motion", []string{"Dance/motion.dat"}, types.Fixable},
		{"loose_site", []string{"House/site.dat"}, types.Fixable},
		{"loose_appearance", []string{"Face/appearance.dat"}, types.Fixable},
		{"misplaced_identifier", []string{"weed/" + id + "/motion.dat"}, types.Fixable},
		{"uppercase_identifier", []string{"MySites/0123456789ABCDEF0123456789ABCDEF/site.dat"}, types.Valid},
		{"wrong_case_root", []string{"mysites/" + id + "/site.dat"}, types.Fixable},
		{"short_identifier", []string{"weed/0123456789abcdef/motion.dat"}, types.Invalid},
		{"unknown", []string{"Random/stuff.bin"}, types.Invalid},
		{"two_wrappers", []string{"A/BlueClient/", "B/BlueClient/"}, types.Invalid},
	}

	c := checker.NewDefault(nil)
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, c.DataLooksValid(modtree.FromPaths(tt.paths...)))
		})
	}
}

func TestDataLooksValid_ParentFixable(t *testing.T) {
	tree := modtree.FromPaths("MyGun/MyGun.glb", "Other/keep.bin")
	sub, ok := types.AsTree(tree.Find("Other"))
	require.True(t, ok)

	c := checker.NewDefault(logging.NewLevel(logging.LevelDebug))
	assert.Equal(t, types.Fixable, c.DataLooksValid(sub))
}

func TestDataLooksValid_BaseRulesOnlyWhenInvalid(t *testing.T) {
	tree := modtree.FromPaths("MyMod/BlueClient/")

	base := &MockBase{}
	base.On("DataLooksValid", mock.Anything).Return(types.Valid)
	assert.Equal(t, types.Valid, checker.New(base, nil).DataLooksValid(tree))

	base = &MockBase{}
	base.On("DataLooksValid", mock.Anything).Return(types.Invalid)
	assert.Equal(t, types.Fixable, checker.New(base, nil).DataLooksValid(tree))
	base.AssertExpectations(t)
}

func TestDataLooksValid_DoesNotMutate(t *testing.T) {
	tree := modtree.FromPaths("weed/"+id+"/motion.dat", "MyGun/MyGun.glb", "a.pak")
	before := tree.Paths()

	checker.NewDefault(nil).DataLooksValid(tree)
	assert.Equal(t, before, tree.Paths())
}
