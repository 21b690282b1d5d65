package testutil

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/arthur-debert/zoimods/pkg/config"
	"github.com/arthur-debert/zoimods/pkg/profile"
	"github.com/stretchr/testify/require"
)

// ContentID is a valid content identifier for fixtures.
const ContentID = "0123456789abcdef0123456789abcdef"

// WriteFile creates path with content, making parent directories.
func WriteFile(t *testing.T, path, content string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
}

// IsSymlink reports whether path exists and is a symlink.
func IsSymlink(path string) bool {
	info, err := os.Lstat(path)
	return err == nil && info.Mode()&os.ModeSymlink != 0
}

// InstanceBuilder lays out an instance directory.
type InstanceBuilder struct {
	t       *testing.T
	root    string
	config  string
	modlist string
	files   map[string]string
}

// NewInstance starts an instance under a fresh temporary directory.
func NewInstance(t *testing.T) *InstanceBuilder {
	t.Helper()
	return &InstanceBuilder{t: t, root: t.TempDir(), files: map[string]string{}}
}

// WithConfig sets the content of zoimods.toml.
func (b *InstanceBuilder) WithConfig(toml string) *InstanceBuilder {
	b.config = toml
	return b
}

// WithModList sets the content of the Default profile's modlist.txt.
func (b *InstanceBuilder) WithModList(modlist string) *InstanceBuilder {
	b.modlist = modlist
	return b
}

// WithModFile adds a file to a mod. rel is slash separated and relative
// to the mod folder.
func (b *InstanceBuilder) WithModFile(mod, rel, content string) *InstanceBuilder {
	b.files[filepath.Join("mods", mod, filepath.FromSlash(rel))] = content
	return b
}

// Build writes the instance and returns its root.
func (b *InstanceBuilder) Build() string {
	b.t.Helper()
	if b.config != "" {
		WriteFile(b.t, filepath.Join(b.root, config.FileName), b.config)
	}
	if b.modlist != "" {
		WriteFile(b.t, filepath.Join(b.root, "profiles", "Default", profile.ModListFile), b.modlist)
	}
	for rel, content := range b.files {
		WriteFile(b.t, filepath.Join(b.root, rel), content)
	}
	return b.root
}
