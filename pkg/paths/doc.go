// Package paths provides centralized path handling for zoimods.
//
// A zoimods instance is an MO2-style directory holding the instance
// configuration, a mods folder with one folder per mod and a profiles
// folder with one modlist.txt per profile. This package finds the instance
// root and derives every other location from it and from the loaded
// configuration:
//
//   - Instance root discovery (explicit, ZOIMODS_INSTANCE, zoimods.toml
//     lookup from the working directory, working directory fallback)
//   - Mods, profiles and plugin settings locations
//   - Game install and Win64 binaries folder
//   - inZOI documents folder (default: the user's Documents/inZOI)
//   - XDG state directory for the log file
//
// # Usage
//
//	root, _, err := paths.FindInstanceDir("")
//	cfg, err := config.Load(root)
//	p, err := paths.New(root, cfg)
//
//	p.ModsDir()       // /home/user/inzoi-mods/mods
//	p.DocumentsDir()  // /home/user/Documents/inZOI
//	p.ModPath("Gun")  // /home/user/inzoi-mods/mods/Gun
package paths
