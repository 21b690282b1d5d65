package output

import (
	"github.com/arthur-debert/zoimods/pkg/game"
)

// Setting is one plugin setting with its current value.
type Setting struct {
	Name        string `json:"name" yaml:"name"`
	Description string `json:"description" yaml:"description"`
	Value       any    `json:"value" yaml:"value"`
	Default     any    `json:"default" yaml:"default"`
}

// Executables lists the launchable programs under a game folder.
type Executables struct {
	GameDir     string            `json:"gameDir" yaml:"gameDir"`
	Executables []game.Executable `json:"executables" yaml:"executables"`
	ForcedLoads []game.ForcedLoad `json:"forcedLoads" yaml:"forcedLoads"`
}

// Version is build metadata.
type Version struct {
	Version string `json:"version" yaml:"version"`
	Commit  string `json:"commit" yaml:"commit"`
	Date    string `json:"date" yaml:"date"`
}

// Launch is the outcome of a launch.
type Launch struct {
	Binary   string `json:"binary" yaml:"binary"`
	ExitCode int    `json:"exitCode" yaml:"exitCode"`
}
