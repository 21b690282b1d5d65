package modtree

import (
	"fmt"
	"path/filepath"
	"sort"
	"strings"

	"github.com/arthur-debert/zoimods/pkg/errors"
	"github.com/arthur-debert/zoimods/pkg/logging"
	"github.com/spf13/afero"
)

// ChangeKind classifies a pending filesystem change.
type ChangeKind string

const (
	ChangeMove   ChangeKind = "move"
	ChangeRemove ChangeKind = "remove"
	ChangeMkdir  ChangeKind = "mkdir"
	ChangePrune  ChangeKind = "prune"
)

// Change is one filesystem effect of applying the tree. Paths are relative
// to the tree root and use "/".
type Change struct {
	Kind ChangeKind `json:"kind" yaml:"kind"`
	From string     `json:"from,omitempty" yaml:"from,omitempty"`
	To   string     `json:"to,omitempty" yaml:"to,omitempty"`
}

func (c Change) String() string {
	switch c.Kind {
	case ChangeMove:
		return fmt.Sprintf("move %s -> %s", c.From, c.To)
	case ChangeMkdir:
		return fmt.Sprintf("mkdir %s", c.To)
	default:
		return fmt.Sprintf("%s %s", c.Kind, c.From)
	}
}

const stagingDir = ".zoimods-staging"

// Load reads the directory root of fsys into a new tree.
func Load(fsys afero.Fs, root string) (*Node, error) {
	info, err := fsys.Stat(root)
	if err != nil {
		return nil, errors.Wrapf(err, errors.ErrTreeNotFound, "cannot read mod directory %s", root)
	}
	if !info.IsDir() {
		return nil, errors.Newf(errors.ErrTreeInvalid, "%s is not a directory", root)
	}

	tree := New(filepath.Base(root))
	if err := load(fsys, root, tree); err != nil {
		return nil, err
	}
	return tree, nil
}

func load(fsys afero.Fs, dir string, n *Node) error {
	infos, err := afero.ReadDir(fsys, dir)
	if err != nil {
		return errors.Wrapf(err, errors.ErrFileAccess, "cannot list %s", dir)
	}
	for _, info := range infos {
		if n.parent == nil && info.Name() == stagingDir {
			continue
		}
		if info.IsDir() {
			child := n.AddDir(info.Name())
			if err := load(fsys, filepath.Join(dir, info.Name()), child); err != nil {
				return err
			}
			continue
		}
		n.AddFile(info.Name())
	}
	return nil
}

// Changes returns the filesystem changes Apply would perform, in order.
func (n *Node) Changes() []Change {
	var changes []Change
	removedPrefixes := n.removedOrigins()

	for _, r := range n.st.removed {
		if r.origin != "" {
			changes = append(changes, Change{Kind: ChangeRemove, From: r.origin})
		}
	}

	finalDirs := map[string]bool{}
	var newDirs []string
	origDirs := map[string]bool{}
	for _, d := range n.st.origDirs {
		origDirs[d] = true
	}

	n.walk(func(c *Node) {
		p := c.Path()
		if c.dir {
			finalDirs[p] = true
			if !origDirs[p] {
				newDirs = append(newDirs, p)
			}
			return
		}
		if c.origin != "" && (p != c.origin || underAny(c.origin, removedPrefixes)) {
			changes = append(changes, Change{Kind: ChangeMove, From: c.origin, To: p})
		}
	})

	for _, d := range n.prunable(finalDirs, removedPrefixes) {
		changes = append(changes, Change{Kind: ChangePrune, From: d})
	}
	sort.Strings(newDirs)
	for _, d := range newDirs {
		changes = append(changes, Change{Kind: ChangeMkdir, To: d})
	}
	return changes
}

// Apply writes the tree back to root on fsys. Moved files are first parked
// in a staging directory so that swaps and renames through removed folders
// cannot clobber each other. On success the tree's origins are reset, so a
// later Apply only performs new changes.
func (n *Node) Apply(fsys afero.Fs, root string) error {
	logger := logging.GetLogger("modtree.apply")
	done := logging.LogOperationStart(logger, "apply")
	defer done()

	changes := n.Changes()
	var moves []Change
	for _, c := range changes {
		if c.Kind == ChangeMove {
			moves = append(moves, c)
		}
	}

	staging := filepath.Join(root, stagingDir)
	if len(moves) > 0 {
		if err := fsys.MkdirAll(staging, 0755); err != nil {
			return errors.Wrap(err, errors.ErrTreeApply, "cannot create staging directory")
		}
	}
	for i, m := range moves {
		if err := fsys.Rename(native(root, m.From), filepath.Join(staging, fmt.Sprint(i))); err != nil {
			return errors.Wrapf(err, errors.ErrTreeApply, "cannot stage %s", m.From)
		}
	}

	for _, c := range changes {
		switch c.Kind {
		case ChangeRemove:
			logger.Debug().Str("path", c.From).Msg("Removing")
			if err := fsys.RemoveAll(native(root, c.From)); err != nil {
				return errors.Wrapf(err, errors.ErrTreeApply, "cannot remove %s", c.From)
			}
		case ChangePrune:
			p := native(root, c.From)
			if empty, err := afero.IsEmpty(fsys, p); err == nil && empty {
				if err := fsys.Remove(p); err != nil {
					return errors.Wrapf(err, errors.ErrTreeApply, "cannot remove empty folder %s", c.From)
				}
			}
		}
	}

	var mkErr error
	n.walk(func(c *Node) {
		if c.dir && mkErr == nil {
			if err := fsys.MkdirAll(native(root, c.Path()), 0755); err != nil {
				mkErr = errors.Wrapf(err, errors.ErrDirCreate, "cannot create %s", c.Path())
			}
		}
	})
	if mkErr != nil {
		return mkErr
	}

	for i, m := range moves {
		logger.Debug().Str("from", m.From).Str("to", m.To).Msg("Moving")
		if err := fsys.Rename(filepath.Join(staging, fmt.Sprint(i)), native(root, m.To)); err != nil {
			return errors.Wrapf(err, errors.ErrTreeApply, "cannot move %s to %s", m.From, m.To)
		}
	}
	if len(moves) > 0 {
		if err := fsys.RemoveAll(staging); err != nil {
			return errors.Wrap(err, errors.ErrTreeApply, "cannot remove staging directory")
		}
	}

	n.st.removed = nil
	n.st.origDirs = nil
	n.walk(func(c *Node) {
		c.origin = c.Path()
		if c.dir {
			n.st.origDirs = append(n.st.origDirs, c.origin)
		}
	})
	logger.Info().Int("changes", len(changes)).Str("root", root).Msg("Applied mod layout changes")
	return nil
}

func (n *Node) walk(fn func(*Node)) {
	for _, c := range n.children {
		fn(c)
		if c.dir {
			c.walk(fn)
		}
	}
}

func (n *Node) removedOrigins() []string {
	var out []string
	for _, r := range n.st.removed {
		if r.origin != "" {
			out = append(out, r.origin)
		}
	}
	return out
}

// prunable lists loaded directories that no longer exist in the tree,
// deepest first.
func (n *Node) prunable(finalDirs map[string]bool, removed []string) []string {
	var out []string
	for _, d := range n.st.origDirs {
		if finalDirs[d] || underAny(d, removed) {
			continue
		}
		out = append(out, d)
	}
	sort.Slice(out, func(i, j int) bool {
		di, dj := strings.Count(out[i], "/"), strings.Count(out[j], "/")
		if di != dj {
			return di > dj
		}
		return out[i] < out[j]
	})
	return out
}

func underAny(p string, prefixes []string) bool {
	for _, prefix := range prefixes {
		if p == prefix || strings.HasPrefix(p, prefix+"/") {
			return true
		}
	}
	return false
}

func native(root, rel string) string {
	return filepath.Join(root, filepath.FromSlash(rel))
}
