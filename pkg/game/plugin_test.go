// pkg/game/plugin_test.go
// TEST TYPE: Integration Test
// DEPENDENCIES: Real temporary directories, mock organizer
// PURPOSE: Test the launch, mod state and setting hooks

package game_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/arthur-debert/zoimods/pkg/checker"
	"github.com/arthur-debert/zoimods/pkg/filesystem"
	"github.com/arthur-debert/zoimods/pkg/game"
	"github.com/arthur-debert/zoimods/pkg/profile"
	"github.com/arthur-debert/zoimods/pkg/symlinks"
	"github.com/arthur-debert/zoimods/pkg/testutil"
	"github.com/arthur-debert/zoimods/pkg/types"
	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

const id = testutil.ContentID

// MockOrganizer records hook registrations; settings and the mod list are
// plain fakes.
type MockOrganizer struct {
	mock.Mock
	mods   types.ModList
	values map[string]any
}

func (m *MockOrganizer) PluginSetting(plugin, name string) any {
	if plugin != game.PluginName {
		return nil
	}
	if v, ok := m.values[name]; ok {
		return v
	}
	for _, s := range game.Settings() {
		if s.Name == name {
			return s.Default
		}
	}
	return nil
}

func (m *MockOrganizer) SetPluginSetting(plugin, name string, value any) error {
	m.values[name] = value
	return nil
}

func (m *MockOrganizer) ModList() types.ModList { return m.mods }

func (m *MockOrganizer) OnAboutToRun(fn func(path string) bool) { m.Called(fn) }

func (m *MockOrganizer) OnFinishedRun(fn func(path string, exitCode int)) { m.Called(fn) }

func (m *MockOrganizer) OnModStateChanged(fn func(states map[string]types.ModState)) { m.Called(fn) }

func (m *MockOrganizer) OnPluginSettingChanged(fn func(plugin, setting string, oldValue, newValue any)) {
	m.Called(fn)
}

type env struct {
	docs   string
	game   string
	mods   string
	org    *MockOrganizer
	plugin *game.Plugin
}

// newEnv builds an instance with an enabled mod "Gun" holding a printer
// object and a loader file, and a disabled mod "Hat" holding a motion.
func newEnv(t *testing.T, values map[string]any) *env {
	t.Helper()
	root := t.TempDir()
	e := &env{
		docs: filepath.Join(root, "Documents", "inZOI"),
		game: filepath.Join(root, "game"),
		mods: filepath.Join(root, "mods"),
	}

	write := func(rel string) {
		testutil.WriteFile(t, filepath.Join(e.mods, filepath.FromSlash(rel)), "x")
	}
	write("Gun/My3DPrinter/" + id + "/gun.glb")
	write("Gun/BlueClient/Binaries/Win64/dsound.dll")
	write("Hat/MyAIMotions/" + id + "/motion.dat")

	profileDir := filepath.Join(root, "profiles", "Default")
	testutil.WriteFile(t, filepath.Join(profileDir, profile.ModListFile), "-Hat\n+Gun\n")
	mods, err := profile.Load(afero.NewOsFs(), profileDir, e.mods)
	require.NoError(t, err)

	if values == nil {
		values = map[string]any{}
	}
	e.org = &MockOrganizer{mods: mods, values: values}
	e.plugin = game.New(e.org, filesystem.NewOS(), symlinks.Config{DocumentsDir: e.docs, GameDir: e.game},
		checker.NewGlobChecker(checker.InzoiPatterns()))
	return e
}

func (e *env) printerLink() string {
	return filepath.Join(e.docs, "AIGenerated", "My3DPrinter", id)
}

func (e *env) motionLink() string {
	return filepath.Join(e.docs, "AIGenerated", "MyAIMotions", id)
}

func (e *env) loaderLink() string {
	return filepath.Join(e.game, "BlueClient", "Binaries", "Win64", "dsound.dll")
}

func TestInit_RegistersHooks(t *testing.T) {
	e := newEnv(t, nil)

	var aboutToRun func(string) bool
	var finishedRun func(string, int)
	e.org.On("OnAboutToRun", mock.Anything).Run(func(args mock.Arguments) {
		aboutToRun = args.Get(0).(func(string) bool)
	}).Once()
	e.org.On("OnFinishedRun", mock.Anything).Run(func(args mock.Arguments) {
		finishedRun = args.Get(0).(func(string, int))
	}).Once()
	e.org.On("OnModStateChanged", mock.Anything).Once()
	e.org.On("OnPluginSettingChanged", mock.Anything).Once()

	e.plugin.Init()
	e.org.AssertExpectations(t)

	require.NotNil(t, aboutToRun)
	assert.True(t, aboutToRun(filepath.Join(e.game, "inZOI.exe")))
	assert.True(t, testutil.IsSymlink(e.printerLink()))
	assert.True(t, testutil.IsSymlink(e.loaderLink()))

	require.NotNil(t, finishedRun)
	finishedRun(filepath.Join(e.game, "inZOI.exe"), 0)
	assert.False(t, testutil.IsSymlink(e.printerLink()))
	assert.False(t, testutil.IsSymlink(e.loaderLink()))
}

func TestAboutToRun_DeployOnLaunch(t *testing.T) {
	e := newEnv(t, nil)

	report := e.plugin.AboutToRun("inZOI.exe")
	require.NoError(t, report.Err())
	assert.Equal(t, 2, report.Count(symlinks.ActionCreated))

	dest, err := os.Readlink(e.printerLink())
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(e.mods, "Gun", "My3DPrinter", id), dest)
	assert.True(t, testutil.IsSymlink(e.loaderLink()))
	assert.False(t, testutil.IsSymlink(e.motionLink()), "disabled mods are not linked")

	report = e.plugin.FinishedRun("inZOI.exe", 1)
	require.NoError(t, report.Err())
	assert.Equal(t, 2, report.Count(symlinks.ActionRemoved))
	assert.False(t, testutil.IsSymlink(e.printerLink()))
	assert.False(t, testutil.IsSymlink(e.loaderLink()))
}

func TestAboutToRun_DeployOff(t *testing.T) {
	e := newEnv(t, map[string]any{game.SettingDeployOnLaunch: false})

	report := e.plugin.AboutToRun("inZOI.exe")
	assert.Equal(t, 1, report.Count(symlinks.ActionCreated))
	assert.True(t, testutil.IsSymlink(e.loaderLink()))
	assert.False(t, testutil.IsSymlink(e.printerLink()))

	report = e.plugin.FinishedRun("inZOI.exe", 0)
	assert.Equal(t, 1, report.Count(symlinks.ActionRemoved))
	assert.False(t, testutil.IsSymlink(e.loaderLink()))
}

func TestModStateChanged_DeployOff(t *testing.T) {
	e := newEnv(t, map[string]any{game.SettingDeployOnLaunch: "false"})

	report := e.plugin.ModStateChanged(map[string]types.ModState{
		"Gun":     types.ModStateActive | types.ModStateExists,
		"Missing": types.ModStateActive,
	})
	assert.Equal(t, 1, report.Count(symlinks.ActionCreated))
	assert.True(t, testutil.IsSymlink(e.printerLink()))

	report = e.plugin.ModStateChanged(map[string]types.ModState{"Gun": types.ModStateExists})
	assert.Equal(t, 1, report.Count(symlinks.ActionRemoved))
	assert.False(t, testutil.IsSymlink(e.printerLink()))
}

func TestModStateChanged_DeployOn(t *testing.T) {
	e := newEnv(t, nil)

	report := e.plugin.ModStateChanged(map[string]types.ModState{
		"Gun": types.ModStateActive | types.ModStateExists,
	})
	assert.Empty(t, report.Entries)
	assert.False(t, testutil.IsSymlink(e.printerLink()))
}

func TestSettingChanged(t *testing.T) {
	e := newEnv(t, nil)
	assert.False(t, e.plugin.Level().IsDebug())

	e.org.values[game.SettingLogLevel] = "debug"
	e.plugin.SettingChanged("Another Plugin", game.SettingLogLevel, "Info", "debug")
	assert.False(t, e.plugin.Level().IsDebug())

	e.plugin.SettingChanged(game.PluginName, game.SettingLogLevel, "Info", "debug")
	assert.True(t, e.plugin.Level().IsDebug())
	assert.Equal(t, "Debug", e.plugin.Level().String())

	e.org.values[game.SettingLogLevel] = "Info"
	e.plugin.SettingChanged(game.PluginName, game.SettingLogLevel, "debug", "Info")
	assert.False(t, e.plugin.Level().IsDebug())
}

func TestSettingHelpers(t *testing.T) {
	org := &MockOrganizer{values: map[string]any{}}
	assert.True(t, game.DeployOnLaunch(org))
	assert.Equal(t, "Info", game.LogLevel(org))

	org.values[game.SettingDeployOnLaunch] = "nonsense"
	assert.True(t, game.DeployOnLaunch(org))
	org.values[game.SettingDeployOnLaunch] = false
	assert.False(t, game.DeployOnLaunch(org))

	org.values[game.SettingLogLevel] = " DEBUG "
	assert.Equal(t, "Debug", game.LogLevel(org))
}
