package config

import (
	"github.com/arthur-debert/zoimods/pkg/checker"
)

// FileName is the instance configuration file.
const FileName = "zoimods.toml"

// Config is the complete instance configuration.
type Config struct {
	Game     Game                 `koanf:"game"`
	Instance Instance             `koanf:"instance"`
	Log      Log                  `koanf:"log"`
	Checker  checker.GlobPatterns `koanf:"checker"`
}

// Game locates the game install and documents.
type Game struct {
	Dir       string `koanf:"dir"`
	Documents string `koanf:"documents"`
}

// Instance locates the mods and profiles of a mod manager instance.
type Instance struct {
	Mods     string `koanf:"mods"`
	Profiles string `koanf:"profiles"`
	Profile  string `koanf:"profile"`
}

// Log holds the initial plugin verbosity.
type Log struct {
	Level string `koanf:"level"`
}

// Patterns returns the inZOI glob tables extended with the configured
// rules. Configured move rules take precedence over built-in ones.
func (c *Config) Patterns() checker.GlobPatterns {
	p := checker.InzoiPatterns()
	p.Unfold = append(p.Unfold, c.Checker.Unfold...)
	p.Valid = append(p.Valid, c.Checker.Valid...)
	p.Delete = append(p.Delete, c.Checker.Delete...)
	p.Move = append(append([]checker.MoveRule(nil), c.Checker.Move...), p.Move...)
	return p
}
