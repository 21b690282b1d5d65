// Package testutil provides fixtures for tests that need a real instance
// directory: mods, a profile and a zoimods.toml laid out under a temporary
// directory.
//
// Symlink tests run against the real filesystem, so these helpers write
// real files. Tests of pure tree logic should use afero.NewMemMapFs
// instead.
package testutil
