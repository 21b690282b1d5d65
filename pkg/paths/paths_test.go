// pkg/paths/paths_test.go
// TEST TYPE: Unit Test
// DEPENDENCIES: Temporary directory, environment
// PURPOSE: Test instance discovery and derived locations

package paths_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/adrg/xdg"
	"github.com/arthur-debert/zoimods/pkg/config"
	"github.com/arthur-debert/zoimods/pkg/errors"
	"github.com/arthur-debert/zoimods/pkg/paths"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew_Defaults(t *testing.T) {
	root := t.TempDir()

	p, err := paths.New(root, nil)
	require.NoError(t, err)

	assert.Equal(t, root, p.InstanceDir())
	assert.False(t, p.UsedFallback())
	assert.Equal(t, filepath.Join(root, config.FileName), p.ConfigPath())
	assert.Equal(t, filepath.Join(root, config.SettingsFileName), p.SettingsPath())
	assert.Equal(t, filepath.Join(root, "mods"), p.ModsDir())
	assert.Equal(t, filepath.Join(root, "mods", "Gun"), p.ModPath("Gun"))
	assert.Equal(t, filepath.Join(root, "profiles", "Default"), p.ProfileDir())
	assert.Equal(t, "", p.GameDir())
	assert.Equal(t, "", p.GameBinariesDir())
	assert.Equal(t, filepath.Join(xdg.UserDirs.Documents, "inZOI"), p.DocumentsDir())
	assert.Equal(t, filepath.Join(p.DocumentsDir(), "SaveGames"), p.SavesDir())
	assert.Equal(t, filepath.Dir(p.LogFilePath()), p.StateDir())
}

func TestNew_FromConfig(t *testing.T) {
	root := t.TempDir()
	cfg, err := config.FromMap(root, map[string]interface{}{
		"game.dir":         "/games/inZOI",
		"game.documents":   "/docs/inZOI",
		"instance.profile": "Modded",
	})
	require.NoError(t, err)

	p, err := paths.New(root, cfg)
	require.NoError(t, err)

	assert.Equal(t, "/games/inZOI", p.GameDir())
	assert.Equal(t, filepath.Join("/games/inZOI", "BlueClient", "Binaries", "Win64"), p.GameBinariesDir())
	assert.Equal(t, "/docs/inZOI", p.DocumentsDir())
	assert.Equal(t, filepath.Join(root, "profiles", "Modded"), p.ProfileDir())
}

func TestFindInstanceDir(t *testing.T) {
	t.Run("explicit", func(t *testing.T) {
		t.Setenv(paths.EnvInstanceDir, "/from/env")
		root, fallback, err := paths.FindInstanceDir("/explicit")
		require.NoError(t, err)
		assert.Equal(t, "/explicit", root)
		assert.False(t, fallback)
	})

	t.Run("environment", func(t *testing.T) {
		t.Setenv(paths.EnvInstanceDir, "/from/env")
		root, fallback, err := paths.FindInstanceDir("")
		require.NoError(t, err)
		assert.Equal(t, "/from/env", root)
		assert.False(t, fallback)
	})

	t.Run("config_file_lookup", func(t *testing.T) {
		t.Setenv(paths.EnvInstanceDir, "")
		root, err := filepath.EvalSymlinks(t.TempDir())
		require.NoError(t, err)
		nested := filepath.Join(root, "mods", "Gun")
		require.NoError(t, os.MkdirAll(nested, 0755))
		require.NoError(t, os.WriteFile(filepath.Join(root, config.FileName), nil, 0644))
		wd, err := os.Getwd()
		require.NoError(t, err)
		require.NoError(t, os.Chdir(nested))
		t.Cleanup(func() { _ = os.Chdir(wd) })

		found, fallback, err := paths.FindInstanceDir("")
		require.NoError(t, err)
		assert.Equal(t, root, found)
		assert.False(t, fallback)
	})

	t.Run("expands_home", func(t *testing.T) {
		home, err := os.UserHomeDir()
		require.NoError(t, err)
		root, _, err := paths.FindInstanceDir("~/inzoi")
		require.NoError(t, err)
		assert.Equal(t, filepath.Join(home, "inzoi"), root)
	})
}

func TestIsInInstance(t *testing.T) {
	root := t.TempDir()
	p, err := paths.New(root, nil)
	require.NoError(t, err)

	inside, err := p.IsInInstance(filepath.Join(root, "mods", "Gun"))
	require.NoError(t, err)
	assert.True(t, inside)

	inside, err = p.IsInInstance(filepath.Join(root, "..", "other"))
	require.NoError(t, err)
	assert.False(t, inside)

	inside, err = p.IsInInstance(filepath.Join(root, "..foo"))
	require.NoError(t, err)
	assert.True(t, inside)

	_, err = p.IsInInstance("")
	assert.True(t, errors.IsErrorCode(err, errors.ErrInvalidInput))
}

func TestValidateModName(t *testing.T) {
	tests := []struct {
		name    string
		modName string
		wantErr bool
	}{
		{name: "plain", modName: "Better Guns", wantErr: false},
		{name: "empty", modName: "", wantErr: true},
		{name: "blank", modName: "  ", wantErr: true},
		{name: "separator", modName: "a/b", wantErr: true},
		{name: "dotdot", modName: "..", wantErr: true},
		{name: "modlist_prefix", modName: "+Gun", wantErr: true},
		{name: "separator_marker", modName: "Guns_separator", wantErr: false},
		{name: "invalid_char", modName: "Gun?", wantErr: true},
		{name: "control_char", modName: "Gun\t", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := paths.ValidateModName(tt.modName)
			if tt.wantErr {
				assert.True(t, errors.IsErrorCode(err, errors.ErrInvalidInput))
			} else {
				assert.NoError(t, err)
			}
		})
	}
}
