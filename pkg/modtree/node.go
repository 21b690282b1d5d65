package modtree

import (
	"sort"
	"strings"

	"github.com/arthur-debert/zoimods/pkg/errors"
	"github.com/arthur-debert/zoimods/pkg/types"
)

// state is shared by every node of one tree.
type state struct {
	removed  []*Node
	origDirs []string
}

// Node is a file or directory of a virtual tree. Directory nodes implement
// types.Tree.
type Node struct {
	name     string
	dir      bool
	parent   *Node
	children []*Node
	// origin is the path the node had when the tree was loaded, or ""
	// for directories created by Move.
	origin string
	st     *state
}

// New returns an empty root directory.
func New(name string) *Node {
	return &Node{name: name, dir: true, st: &state{}}
}

// FromPaths builds a tree from slash separated paths. Paths ending in "/"
// are directories, anything else is a file. Parents are created as needed.
// Every node is treated as loaded, so Changes reports moves against these
// paths.
func FromPaths(paths ...string) *Node {
	root := New("")
	for _, p := range paths {
		if strings.HasSuffix(p, "/") {
			root.AddDir(p)
		} else {
			root.AddFile(p)
		}
	}
	return root
}

// AddDir creates (or returns) the directory at p, relative to n.
func (n *Node) AddDir(p string) *Node {
	cur := n
	for _, part := range splitPath(p) {
		next := cur.child(part)
		if next == nil {
			next = &Node{name: part, dir: true, st: n.st}
			cur.attach(next)
			next.origin = next.Path()
			n.st.origDirs = append(n.st.origDirs, next.origin)
		}
		cur = next
	}
	return cur
}

// AddFile creates a file at p, relative to n, creating parents as needed.
// An existing entry with the same name is returned unchanged.
func (n *Node) AddFile(p string) *Node {
	parts := splitPath(p)
	if len(parts) == 0 {
		return nil
	}
	dir := n.AddDir(strings.Join(parts[:len(parts)-1], "/"))
	if existing := dir.child(parts[len(parts)-1]); existing != nil {
		return existing
	}
	f := &Node{name: parts[len(parts)-1], st: n.st}
	dir.attach(f)
	f.origin = f.Path()
	return f
}

// Name implements types.Entry
func (n *Node) Name() string { return n.name }

// IsDir implements types.Entry
func (n *Node) IsDir() bool { return n.dir }

// Parent implements types.Entry
func (n *Node) Parent() types.Tree {
	if n.parent == nil {
		return nil
	}
	return n.parent
}

// Path implements types.Entry
func (n *Node) Path() string {
	var parts []string
	for cur := n; cur.parent != nil; cur = cur.parent {
		parts = append(parts, cur.name)
	}
	for i, j := 0, len(parts)-1; i < j; i, j = i+1, j-1 {
		parts[i], parts[j] = parts[j], parts[i]
	}
	return strings.Join(parts, "/")
}

// Origin returns the path the node was loaded from, or "".
func (n *Node) Origin() string { return n.origin }

// Entries implements types.Tree
func (n *Node) Entries() []types.Entry {
	out := make([]types.Entry, len(n.children))
	for i, c := range n.children {
		out[i] = c
	}
	return out
}

// Len implements types.Tree
func (n *Node) Len() int { return len(n.children) }

// Find implements types.Tree
func (n *Node) Find(p string) types.Entry {
	cur := n
	for _, part := range splitPath(p) {
		if !cur.dir {
			return nil
		}
		cur = cur.child(part)
		if cur == nil {
			return nil
		}
	}
	return cur
}

// Move implements types.Tree
func (n *Node) Move(e types.Entry, dest string) error {
	if !n.dir {
		return errors.Newf(errors.ErrTreeInvalid, "cannot move into file %q", n.Path())
	}
	src, err := n.own(e)
	if err != nil {
		return err
	}

	dest = strings.ReplaceAll(dest, "\\", "/")
	into := strings.HasSuffix(dest, "/")
	parts := splitPath(dest)
	for _, p := range parts {
		if p == ".." {
			return errors.Newf(errors.ErrTreeInvalid, "destination %q escapes the tree", dest)
		}
	}

	name := src.name
	if !into {
		if len(parts) == 0 {
			return errors.New(errors.ErrTreeInvalid, "empty move destination")
		}
		name = parts[len(parts)-1]
		parts = parts[:len(parts)-1]
	}

	dir, err := n.ensureDir(parts, src)
	if err != nil {
		return err
	}

	existing := dir.child(name)
	switch {
	case existing == src:
		src.name = name
		return nil
	case existing == nil:
		src.detach()
		src.name = name
		dir.attach(src)
		return nil
	case existing.dir && src.dir && !existing.contains(src):
		return merge(existing, src)
	default:
		return errors.Newf(errors.ErrTreeConflict, "cannot move %q to %q: destination exists",
			src.Path(), joinPath(dir.Path(), name)).WithDetail("existing", existing.Path())
	}
}

// Remove implements types.Tree
func (n *Node) Remove(e types.Entry) error {
	src, err := n.own(e)
	if err != nil {
		return err
	}
	src.detach()
	n.st.removed = append(n.st.removed, src)
	return nil
}

// Paths lists every entry below n in depth-first order, directories with a
// trailing "/". Useful for assertions and dry-run output.
func (n *Node) Paths() []string {
	var out []string
	var walk func(*Node)
	walk = func(cur *Node) {
		for _, c := range cur.children {
			if c.dir {
				out = append(out, c.Path()+"/")
				walk(c)
			} else {
				out = append(out, c.Path())
			}
		}
	}
	walk(n)
	sort.Strings(out)
	return out
}

func (n *Node) own(e types.Entry) (*Node, error) {
	src, ok := e.(*Node)
	if !ok || src == nil || src.st != n.st {
		return nil, errors.New(errors.ErrTreeForeign, "entry does not belong to this tree")
	}
	if src.parent == nil {
		return nil, errors.Newf(errors.ErrTreeInvalid, "cannot move or remove %q: root or detached entry", src.name)
	}
	return src, nil
}

func (n *Node) ensureDir(parts []string, moving *Node) (*Node, error) {
	cur := n
	for _, part := range parts {
		if moving.contains(cur) {
			return nil, errors.Newf(errors.ErrTreeInvalid, "cannot move %q into itself", moving.Path())
		}
		next := cur.child(part)
		if next == nil {
			next = &Node{name: part, dir: true, st: n.st}
			cur.attach(next)
		} else if !next.dir {
			return nil, errors.Newf(errors.ErrTreeConflict, "%q is a file", next.Path())
		}
		cur = next
	}
	if moving.contains(cur) {
		return nil, errors.Newf(errors.ErrTreeInvalid, "cannot move %q into itself", moving.Path())
	}
	return cur, nil
}

func merge(dst, src *Node) error {
	for _, c := range append([]*Node(nil), src.children...) {
		existing := dst.child(c.name)
		switch {
		case existing == nil:
			c.detach()
			dst.attach(c)
		case existing.dir && c.dir:
			if err := merge(existing, c); err != nil {
				return err
			}
		default:
			return errors.Newf(errors.ErrTreeConflict, "cannot merge %q: %q exists",
				c.Path(), existing.Path())
		}
	}
	src.detach()
	return nil
}

// contains reports whether other is n or one of its descendants.
func (n *Node) contains(other *Node) bool {
	for cur := other; cur != nil; cur = cur.parent {
		if cur == n {
			return true
		}
	}
	return false
}

func (n *Node) child(name string) *Node {
	for _, c := range n.children {
		if strings.EqualFold(c.name, name) {
			return c
		}
	}
	return nil
}

func (n *Node) attach(c *Node) {
	c.parent = n
	n.children = append(n.children, c)
}

func (n *Node) detach() {
	if n.parent == nil {
		return
	}
	siblings := n.parent.children
	for i, c := range siblings {
		if c == n {
			n.parent.children = append(siblings[:i:i], siblings[i+1:]...)
			break
		}
	}
	n.parent = nil
}

func splitPath(p string) []string {
	var parts []string
	for _, part := range strings.Split(strings.ReplaceAll(p, "\\", "/"), "/") {
		if part == "" || part == "." {
			continue
		}
		parts = append(parts, part)
	}
	return parts
}

func joinPath(dir, name string) string {
	if dir == "" {
		return name
	}
	return dir + "/" + name
}

var _ types.Tree = (*Node)(nil)
