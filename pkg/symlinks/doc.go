// Package symlinks maintains the symlink farm that exposes content inside
// active mods to the game.
//
// Each content category has a shared base folder under the game's
// documents directory. For every active mod, every folder under
// <mod>/<category root>/ gets a directory link <base>/<folder> pointing
// back into the mod. Loader files (bitfix, dsound.dll) are linked from
// <mod>/BlueClient/Binaries/Win64/ into the same folder of the game
// install.
//
// The reconciler only ever replaces or removes symlinks. Real files and
// folders found where a link should go are reported and left alone.
// Failures are logged per entry and never abort the rest of a pass.
package symlinks
