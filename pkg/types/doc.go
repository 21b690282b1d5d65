// Package types defines the core types and interfaces shared by the layout
// checker, the symlink reconciler and the host glue. This includes the
// virtual tree (Entry, Tree), the Verdict returned by classification, the
// filesystem seam used for symlinks (FS) and the host's mod list and
// settings store.
package types
