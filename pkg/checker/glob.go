package checker

import (
	"path"
	"strings"

	"github.com/arthur-debert/zoimods/pkg/logging"
	"github.com/arthur-debert/zoimods/pkg/types"
	"github.com/rs/zerolog"
)

// MoveRule sends root entries matching Pattern to Target. A target ending
// in "/" keeps the entry's name.
type MoveRule struct {
	Pattern string `koanf:"pattern"`
	Target  string `koanf:"target"`
}

// GlobPatterns are the root-level tables of a GlobChecker. Patterns use
// path.Match syntax and match case-insensitively.
type GlobPatterns struct {
	Unfold []string   `koanf:"unfold"`
	Valid  []string   `koanf:"valid"`
	Delete []string   `koanf:"delete"`
	Move   []MoveRule `koanf:"move"`
}

// InzoiPatterns returns the tables for inZOI mods.
func InzoiPatterns() GlobPatterns {
	return GlobPatterns{
		Unfold: []string{"AIGenerated", "Creations", "inZOI"},
		Valid: []string{
			"My3DPrinter",
			"MyAIMotions",
			"MySites",
			"MyAppearances",
			"BlueClient",
			"meta.ini",
		},
		Delete: []string{
			"*.txt",
			"*.md",
			"README",
			"icon.png",
			"license",
			"LICENCE",
			"manifest.json",
			"*.dll.mdb",
			"*.pdb",
		},
		Move: []MoveRule{
			{Pattern: "dwmapi.dll", Target: BinariesDir + "/"},
			{Pattern: "dsound.dll", Target: BinariesDir + "/"},
			{Pattern: "*.pak", Target: PaksDir + "/"},
			{Pattern: "*.utoc", Target: PaksDir + "/"},
			{Pattern: "*.ucas", Target: PaksDir + "/"},
		},
	}
}

// Engine locations inside a mod.
const (
	BlueClientDir = "BlueClient"
	BinariesDir   = "BlueClient/Binaries/Win64"
	PaksDir       = "BlueClient/Content/Paks/~mods"
)

// GlobChecker validates and fixes the root of a tree from GlobPatterns.
type GlobChecker struct {
	patterns GlobPatterns
	logger   zerolog.Logger
}

// NewGlobChecker creates a checker for the given tables.
func NewGlobChecker(patterns GlobPatterns) *GlobChecker {
	return &GlobChecker{
		patterns: patterns,
		logger:   logging.GetLogger("checker.glob"),
	}
}

// Patterns returns the checker's tables.
func (g *GlobChecker) Patterns() GlobPatterns {
	return g.patterns
}

// DataLooksValid classifies the root entries of tree. Unfolded folders are
// classified recursively; any unknown entry makes the whole tree Invalid.
func (g *GlobChecker) DataLooksValid(tree types.Tree) types.Verdict {
	status := types.Invalid
	for _, entry := range tree.Entries() {
		name := entry.Name()
		switch {
		case matchAny(g.patterns.Unfold, name):
			sub, ok := types.AsTree(entry)
			if !ok || g.DataLooksValid(sub) == types.Invalid {
				return types.Invalid
			}
			status = types.Fixable
		case matchAny(g.patterns.Valid, name):
			if status == types.Invalid {
				status = types.Valid
			}
		case matchAny(g.patterns.Delete, name), g.moveTarget(name) != "":
			status = types.Fixable
		default:
			return types.Invalid
		}
	}
	return status
}

// Fix unfolds, deletes and moves root entries of tree. Mutation errors are
// returned as is.
func (g *GlobChecker) Fix(tree types.Tree) (types.Tree, error) {
	for _, entry := range tree.Entries() {
		name := entry.Name()
		switch {
		case matchAny(g.patterns.Unfold, name):
			sub, ok := types.AsTree(entry)
			if !ok {
				continue
			}
			if _, err := g.Fix(sub); err != nil {
				return tree, err
			}
			for _, child := range sub.Entries() {
				if err := tree.Move(child, child.Name()); err != nil {
					return tree, err
				}
			}
			g.logger.Debug().Str("folder", name).Msg("Unfolded folder")
			if err := tree.Remove(entry); err != nil {
				return tree, err
			}
		case matchAny(g.patterns.Delete, name):
			g.logger.Debug().Str("entry", name).Msg("Deleting")
			if err := tree.Remove(entry); err != nil {
				return tree, err
			}
		default:
			if target := g.moveTarget(name); target != "" {
				g.logger.Debug().Str("entry", name).Str("target", target).Msg("Moving")
				if err := tree.Move(entry, target); err != nil {
					return tree, err
				}
			}
		}
	}
	return tree, nil
}

func (g *GlobChecker) moveTarget(name string) string {
	for _, rule := range g.patterns.Move {
		if match(rule.Pattern, name) {
			return rule.Target
		}
	}
	return ""
}

func match(pattern, name string) bool {
	ok, err := path.Match(strings.ToLower(pattern), strings.ToLower(name))
	return err == nil && ok
}

func matchAny(patterns []string, name string) bool {
	for _, p := range patterns {
		if match(p, name) {
			return true
		}
	}
	return false
}
