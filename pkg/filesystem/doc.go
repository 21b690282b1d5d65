// Package filesystem provides the types.FS implementations used by the
// symlink reconciler.
//
// NewOS talks to the operating system directly. NewAferoFS adapts an
// afero.Fs, so the same instance filesystem can back mod tree loading,
// profile files and symlinks.
package filesystem
