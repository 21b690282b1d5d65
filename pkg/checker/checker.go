package checker

import (
	"path"
	"strings"

	"github.com/arthur-debert/zoimods/pkg/categories"
	"github.com/arthur-debert/zoimods/pkg/logging"
	"github.com/arthur-debert/zoimods/pkg/types"
)

// Base is the root-level checker a Checker builds on.
type Base interface {
	DataLooksValid(tree types.Tree) types.Verdict
	Fix(tree types.Tree) (types.Tree, error)
}

// Checker is the category aware layout checker for inZOI mods.
type Checker struct {
	base  Base
	level *logging.Level
}

// New wraps base. level controls whether rule decisions are logged; it may
// be nil.
func New(base Base, level *logging.Level) *Checker {
	return &Checker{base: base, level: level}
}

// NewDefault returns a Checker over the inZOI glob tables.
func NewDefault(level *logging.Level) *Checker {
	return New(NewGlobChecker(InzoiPatterns()), level)
}

// DataLooksValid classifies tree. It never mutates it.
func (c *Checker) DataLooksValid(tree types.Tree) types.Verdict {
	logger := c.level.Logger("checker")

	if parent := tree.Parent(); parent != nil && c.DataLooksValid(parent) == types.Fixable {
		return types.Fixable
	}

	verdict := c.base.DataLooksValid(tree)

	if verdict == types.Invalid {
		if wrapper, ok := singleDir(tree); ok {
			if inner := findBlueClient(wrapper); inner != nil {
				logger.Debug().Str("wrapper", wrapper.Name()).Msg("Found nested BlueClient folder")
				return types.Fixable
			}
			if hasFile(wrapper, isPackage) {
				logger.Debug().Str("folder", wrapper.Name()).Msg("Found package files one level too deep")
				return types.Fixable
			}
		}
	}

	for _, cat := range categories.All() {
		for _, dir := range subTrees(tree) {
			if hasFile(dir, cat.IsMarker) {
				logger.Debug().
					Str("folder", dir.Name()).
					Str("marker", cat.Marker()).
					Msg("Found misplaced content files")
				return types.Fixable
			}
		}
	}

	for _, dir := range subTrees(tree) {
		id := identifierDir(dir)
		if id == nil {
			continue
		}
		if categories.IsRoot(dir.Name()) {
			logger.Debug().Str("folder", dir.Name()).Str("id", id.Name()).Msg("Proper content folder")
			return types.Valid
		}
		logger.Debug().Str("folder", dir.Name()).Str("id", id.Name()).Msg("Found misplaced content identifier folder")
		return types.Fixable
	}

	return verdict
}

// singleDir returns the only child of tree when it is a directory.
func singleDir(tree types.Tree) (types.Tree, bool) {
	if tree.Len() != 1 {
		return nil, false
	}
	return types.AsTree(tree.Entries()[0])
}

func findBlueClient(tree types.Tree) types.Entry {
	for _, e := range tree.Entries() {
		if e.IsDir() && strings.EqualFold(e.Name(), BlueClientDir) {
			return e
		}
	}
	return nil
}

func subTrees(tree types.Tree) []types.Tree {
	var out []types.Tree
	for _, e := range tree.Entries() {
		if sub, ok := types.AsTree(e); ok && e.Name() != "" {
			out = append(out, sub)
		}
	}
	return out
}

func files(tree types.Tree) []types.Entry {
	var out []types.Entry
	for _, e := range tree.Entries() {
		if !e.IsDir() {
			out = append(out, e)
		}
	}
	return out
}

func fileNames(tree types.Tree) []string {
	var names []string
	for _, f := range files(tree) {
		names = append(names, f.Name())
	}
	return names
}

func hasFile(tree types.Tree, pred func(string) bool) bool {
	for _, f := range files(tree) {
		if pred(f.Name()) {
			return true
		}
	}
	return false
}

// identifierDir returns the first content identifier folder in tree.
func identifierDir(tree types.Tree) types.Entry {
	for _, e := range tree.Entries() {
		if e.IsDir() && categories.IsIdentifier(e.Name()) {
			return e
		}
	}
	return nil
}

var packagePatterns = []string{"*.pak", "*.utoc", "*.ucas"}

func isPackage(name string) bool {
	name = strings.ToLower(name)
	for _, p := range packagePatterns {
		if ok, _ := path.Match(p, name); ok {
			return true
		}
	}
	return false
}
