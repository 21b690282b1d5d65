package paths

import (
	"strings"

	"github.com/arthur-debert/zoimods/pkg/errors"
)

// ValidatePath rejects empty paths, null bytes and excessive lengths.
func ValidatePath(path string) error {
	if path == "" {
		return errors.New(errors.ErrInvalidInput, "path cannot be empty")
	}
	if strings.Contains(path, "\x00") {
		return errors.New(errors.ErrInvalidInput, "path contains null bytes")
	}
	// Check path length (common filesystem limit)
	if len(path) > 4096 {
		return errors.New(errors.ErrInvalidInput, "path exceeds maximum length")
	}
	return nil
}

// ValidateModName ensures a mod name is usable as a folder under the mods
// directory and as a modlist.txt line. Mod names must:
// - Not be empty
// - Not contain path separators
// - Not be reserved names (. or ..)
// - Not start with a modlist prefix (+, -, *)
func ValidateModName(name string) error {
	if strings.TrimSpace(name) == "" {
		return errors.New(errors.ErrInvalidInput, "mod name cannot be empty")
	}
	if strings.ContainsAny(name, "/\\") {
		return errors.New(errors.ErrInvalidInput, "mod name cannot contain path separators")
	}
	if name == "." || name == ".." {
		return errors.New(errors.ErrInvalidInput, "mod name cannot be '.' or '..'")
	}
	if strings.ContainsAny(name[:1], "+-*#") {
		return errors.Newf(errors.ErrInvalidInput, "mod name cannot start with %q", name[:1])
	}

	invalidChars := ":*?\"<>|"
	if strings.ContainsAny(name, invalidChars) {
		return errors.Newf(errors.ErrInvalidInput,
			"mod name contains invalid characters: %s", invalidChars)
	}
	for _, r := range name {
		if r < 32 {
			return errors.New(errors.ErrInvalidInput,
				"mod name contains control characters")
		}
	}
	return nil
}
