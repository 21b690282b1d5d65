// Package game is the inZOI game plugin.
//
// It declares what the mod manager host needs to know about the game
// (identity, executables, the forced dwmapi.dll preload, plugin settings)
// and connects the host's lifecycle events to the layout checker and the
// symlink reconciler:
//
//   - before an executable runs, loader files are linked and, when
//     "Deploy Symlinks on Launch" is on, every content category is linked
//   - after it exits, the same links are torn down
//   - when deploy-on-launch is off, enabling or disabling a mod links or
//     unlinks that mod's content immediately
//   - changing the LogLevel setting updates the shared logging.Level
package game
