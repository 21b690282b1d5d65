// Package instance is the command line host of the inZOI plugin. It loads
// an instance directory (configuration, plugin settings, active profile),
// implements the host side of game.Organizer and exposes the operations
// the CLI runs: checking and fixing mod folders, linking, toggling mods
// and launching the game with the launch hooks around it.
package instance
