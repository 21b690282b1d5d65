package game

import (
	"path/filepath"
	"strings"
)

// Plugin identity.
const (
	PluginName        = "inZOI Support Plugin"
	PluginAuthor      = "Frog"
	PluginVersion     = "2.0.0"
	PluginDescription = "Adds inZOI support, includes handling for 3DPrinter files and UE4SS dwmapi.dll injection."
)

// Game identity.
const (
	GameName      = "inZOI"
	GameShortName = "inzoi"
	GameBinary    = "inZOI.exe"
	ShippingExe   = "inZOI-Win64-Shipping.exe"
	GameNexusID   = 7480
	GameSteamID   = 2456740

	GameDataPath           = "%GAME_PATH%"
	GameDocumentsDirectory = "%DOCUMENTS%/inZOI"
	GameSavesDirectory     = "%GAME_DOCUMENTS%/SaveGames"
)

// Metadata describes the plugin and the game it supports.
type Metadata struct {
	Name        string `json:"name" yaml:"name"`
	Author      string `json:"author" yaml:"author"`
	Version     string `json:"version" yaml:"version"`
	Description string `json:"description" yaml:"description"`
	GameName    string `json:"gameName" yaml:"gameName"`
	ShortName   string `json:"shortName" yaml:"shortName"`
	Binary      string `json:"binary" yaml:"binary"`
	NexusID     int    `json:"nexusId" yaml:"nexusId"`
	SteamID     int    `json:"steamId" yaml:"steamId"`
	DataPath    string `json:"dataPath" yaml:"dataPath"`
	Documents   string `json:"documents" yaml:"documents"`
	Saves       string `json:"saves" yaml:"saves"`
}

// Info returns the plugin metadata.
func Info() Metadata {
	return Metadata{
		Name:        PluginName,
		Author:      PluginAuthor,
		Version:     PluginVersion,
		Description: PluginDescription,
		GameName:    GameName,
		ShortName:   GameShortName,
		Binary:      GameBinary,
		NexusID:     GameNexusID,
		SteamID:     GameSteamID,
		DataPath:    GameDataPath,
		Documents:   GameDocumentsDirectory,
		Saves:       GameSavesDirectory,
	}
}

// Executable is a launchable program of the game.
type Executable struct {
	Title string `json:"title" yaml:"title"`
	// Binary is relative to the game directory.
	Binary string `json:"binary" yaml:"binary"`
}

// Path returns the absolute binary path under gameDir.
func (e Executable) Path(gameDir string) string {
	return filepath.Join(gameDir, filepath.FromSlash(e.Binary))
}

// ForcedLoad preloads Library into processes named Process.
type ForcedLoad struct {
	Process string `json:"process" yaml:"process"`
	Library string `json:"library" yaml:"library"`
	Enabled bool   `json:"enabled" yaml:"enabled"`
}

// forcedLibraries are preloaded into the shipping executable.
var forcedLibraries = []string{"BlueClient/Binaries/Win64/dwmapi.dll"}

// Executables returns the game's launchable programs.
func Executables() []Executable {
	return []Executable{
		{Title: "inZOI", Binary: GameBinary},
		{Title: "inZOI Shipping Exe", Binary: ShippingExe},
	}
}

// ExecutableForcedLoads returns the forced library loads, which only apply
// to the shipping executable.
func ExecutableForcedLoads() []ForcedLoad {
	var loads []ForcedLoad
	for _, exe := range Executables() {
		if filepath.Base(exe.Binary) != ShippingExe {
			continue
		}
		for _, lib := range forcedLibraries {
			loads = append(loads, ForcedLoad{Process: filepath.Base(exe.Binary), Library: lib, Enabled: true})
		}
	}
	return loads
}

// FindExecutable returns the executable whose title or binary name matches
// name, case-insensitively.
func FindExecutable(name string) (Executable, bool) {
	for _, exe := range Executables() {
		if strings.EqualFold(exe.Title, name) || strings.EqualFold(exe.Binary, name) {
			return exe, true
		}
	}
	return Executable{}, false
}
