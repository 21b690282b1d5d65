// Package categories holds the static table of user-generated content
// categories the game knows about, and the content identifier rules shared
// by the layout checker and the symlink reconciler.
package categories

import (
	"path"
	"strings"
)

// Category is one kind of user-generated content.
type Category int

const (
	Printer Category = iota
	Motion
	Site
	Appearance
)

type info struct {
	label  string
	root   string
	marker string
	glob   bool
	base   []string
}

// Order matters: it is the marker priority used when several markers
// coexist in one folder.
var table = [...]info{
	Printer:    {label: "3DPrinter", root: "My3DPrinter", marker: "*.glb", glob: true, base: []string{"AIGenerated", "My3DPrinter"}},
	Motion:     {label: "AIMotions", root: "MyAIMotions", marker: "motion.dat", base: []string{"AIGenerated", "MyAIMotions"}},
	Site:       {label: "MySites", root: "MySites", marker: "site.dat", base: []string{"Creations", "MySites"}},
	Appearance: {label: "MyAppearances", root: "MyAppearances", marker: "appearance.dat", base: []string{"Creations", "MyAppearances"}},
}

// All returns every category in marker priority order.
func All() []Category {
	return []Category{Printer, Motion, Site, Appearance}
}

// String returns a short human label
func (c Category) String() string {
	if !c.valid() {
		return "unknown"
	}
	return table[c].label
}

// Root is the canonical folder name inside a mod.
func (c Category) Root() string {
	return table[c].root
}

// Marker is the pattern of the file that identifies this category's data.
func (c Category) Marker() string {
	return table[c].marker
}

// DocumentsBase returns the path elements of the shared folder under the
// game's documents directory.
func (c Category) DocumentsBase() []string {
	return append([]string(nil), table[c].base...)
}

// RenamesToMarker reports whether a consolidated folder takes the name of
// its single marker file.
func (c Category) RenamesToMarker() bool {
	return table[c].glob
}

// IsMarker reports whether a file name identifies this category.
// Matching is case-insensitive.
func (c Category) IsMarker(name string) bool {
	t := table[c]
	name = strings.ToLower(name)
	if t.glob {
		ok, _ := path.Match(t.marker, name)
		return ok
	}
	return name == t.marker
}

// MarshalText renders the category by label.
func (c Category) MarshalText() ([]byte, error) {
	return []byte(c.String()), nil
}

func (c Category) valid() bool {
	return c >= Printer && int(c) < len(table)
}

// ByRoot returns the category whose canonical root folder is exactly name.
func ByRoot(name string) (Category, bool) {
	for _, c := range All() {
		if table[c].root == name {
			return c, true
		}
	}
	return 0, false
}

// IsRoot reports whether name is one of the canonical root folders.
func IsRoot(name string) bool {
	_, ok := ByRoot(name)
	return ok
}

// MarkerCategory returns the highest priority category whose marker is
// among names.
func MarkerCategory(names []string) (Category, bool) {
	for _, c := range All() {
		for _, n := range names {
			if c.IsMarker(n) {
				return c, true
			}
		}
	}
	return 0, false
}
