// pkg/config/settings_test.go
// TEST TYPE: Unit Test
// DEPENDENCIES: afero in-memory filesystem
// PURPOSE: Test the persisted plugin settings store

package config_test

import (
	"testing"

	"github.com/arthur-debert/zoimods/pkg/config"
	"github.com/arthur-debert/zoimods/pkg/errors"
	"github.com/arthur-debert/zoimods/pkg/types"
	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const (
	plugin       = "inZOI Support Plugin"
	settingsPath = "/instance/plugin-settings.toml"
)

var declared = []types.PluginSetting{
	{Name: "Deploy Symlinks on Launch", Description: "deploy", Default: true},
	{Name: "LogLevel", Description: "level", Default: "Info"},
}

func TestSettings_Defaults(t *testing.T) {
	s, err := config.LoadSettings(afero.NewMemMapFs(), settingsPath)
	require.NoError(t, err)
	s.Declare(plugin, declared)

	assert.Equal(t, true, s.PluginSetting(plugin, "Deploy Symlinks on Launch"))
	assert.Equal(t, "Info", s.PluginSetting(plugin, "LogLevel"))
	assert.Nil(t, s.PluginSetting(plugin, "Nope"))
	assert.Equal(t, []string{"Deploy Symlinks on Launch", "LogLevel"}, s.Names(plugin))
}

func TestSettings_SetAndReload(t *testing.T) {
	fsys := afero.NewMemMapFs()
	s, err := config.LoadSettings(fsys, settingsPath)
	require.NoError(t, err)
	s.Declare(plugin, declared)

	var changes [][]any
	s.OnChanged(func(p, name string, oldValue, newValue any) {
		changes = append(changes, []any{p, name, oldValue, newValue})
	})

	require.NoError(t, s.SetPluginSetting(plugin, "Deploy Symlinks on Launch", "false"))
	require.NoError(t, s.SetPluginSetting(plugin, "LogLevel", "Debug"))
	require.NoError(t, s.SetPluginSetting(plugin, "LogLevel", "Debug"))

	require.Len(t, changes, 2)
	assert.Equal(t, []any{plugin, "Deploy Symlinks on Launch", true, false}, changes[0])
	assert.Equal(t, []any{plugin, "LogLevel", "Info", "Debug"}, changes[1])

	reloaded, err := config.LoadSettings(fsys, settingsPath)
	require.NoError(t, err)
	reloaded.Declare(plugin, declared)
	assert.Equal(t, false, reloaded.PluginSetting(plugin, "Deploy Symlinks on Launch"))
	assert.Equal(t, "Debug", reloaded.PluginSetting(plugin, "LogLevel"))
}

func TestSettings_Errors(t *testing.T) {
	fsys := afero.NewMemMapFs()
	s, err := config.LoadSettings(fsys, settingsPath)
	require.NoError(t, err)
	s.Declare(plugin, declared)

	err = s.SetPluginSetting(plugin, "Unknown", 1)
	assert.True(t, errors.IsErrorCode(err, errors.ErrSettingUnknown))

	err = s.SetPluginSetting(plugin, "Deploy Symlinks on Launch", "maybe")
	assert.True(t, errors.IsErrorCode(err, errors.ErrInvalidInput))

	require.NoError(t, afero.WriteFile(fsys, settingsPath, []byte("not = [toml"), 0644))
	_, err = config.LoadSettings(fsys, settingsPath)
	assert.True(t, errors.IsErrorCode(err, errors.ErrConfigParse))
}
