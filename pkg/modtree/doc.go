// Package modtree provides an in-memory virtual file tree for a mod.
//
// A tree is loaded from a directory on an afero filesystem, mutated through
// the types.Tree Move and Remove primitives (typically by the layout
// checker), and then either inspected as a list of Changes or applied back
// to the filesystem in one staged pass.
//
// # Semantics
//
//   - Sibling names are unique, compared case-insensitively.
//   - Move with a destination ending in "/" keeps the entry's name.
//   - Moving a directory onto an existing directory merges the two; any
//     other collision fails with errors.ErrTreeConflict.
//   - Nothing touches the filesystem until Apply.
package modtree
