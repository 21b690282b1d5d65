// pkg/game/metadata_test.go
// TEST TYPE: Unit Test
// DEPENDENCIES: None
// PURPOSE: Test the plugin declarations

package game_test

import (
	"path/filepath"
	"testing"

	"github.com/arthur-debert/zoimods/pkg/game"
	"github.com/stretchr/testify/assert"
)

func TestInfo(t *testing.T) {
	info := game.Info()
	assert.Equal(t, "inZOI Support Plugin", info.Name)
	assert.Equal(t, "inzoi", info.ShortName)
	assert.Equal(t, "inZOI.exe", info.Binary)
	assert.Equal(t, 7480, info.NexusID)
	assert.Equal(t, 2456740, info.SteamID)
	assert.Equal(t, "%DOCUMENTS%/inZOI", info.Documents)
}

func TestExecutables(t *testing.T) {
	exes := game.Executables()
	assert.Equal(t, []game.Executable{
		{Title: "inZOI", Binary: "inZOI.exe"},
		{Title: "inZOI Shipping Exe", Binary: "inZOI-Win64-Shipping.exe"},
	}, exes)
	assert.Equal(t, filepath.Join("/games/inZOI", "inZOI.exe"), exes[0].Path("/games/inZOI"))

	exe, ok := game.FindExecutable("inzoi shipping exe")
	assert.True(t, ok)
	assert.Equal(t, "inZOI-Win64-Shipping.exe", exe.Binary)

	_, ok = game.FindExecutable("launcher.exe")
	assert.False(t, ok)
}

func TestExecutableForcedLoads(t *testing.T) {
	assert.Equal(t, []game.ForcedLoad{
		{Process: "inZOI-Win64-Shipping.exe", Library: "BlueClient/Binaries/Win64/dwmapi.dll", Enabled: true},
	}, game.ExecutableForcedLoads())
}

func TestSettings(t *testing.T) {
	settings := game.Settings()
	assert.Len(t, settings, 2)
	assert.Equal(t, "Deploy Symlinks on Launch", settings[0].Name)
	assert.Equal(t, true, settings[0].Default)
	assert.Equal(t, "LogLevel", settings[1].Name)
	assert.Equal(t, "Info", settings[1].Default)
}
