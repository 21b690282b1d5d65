package types

// Entry is a node in a mod's virtual file tree. Entries are owned by the
// host's tree implementation; consumers only read them and request moves or
// removals through the Tree that contains them.
type Entry interface {
	// Name returns the entry's own name (no separators).
	Name() string

	// IsDir reports whether the entry is a directory. Directory entries
	// also implement Tree.
	IsDir() bool

	// Parent returns the directory holding this entry, or nil for the root
	// and for detached entries.
	Parent() Tree

	// Path returns the entry's path relative to the tree root, using "/"
	// as separator. The root's path is "".
	Path() string
}

// Tree is a directory entry of a virtual tree. Children are ordered and
// their names are unique (case-insensitively) within the directory.
type Tree interface {
	Entry

	// Entries returns a snapshot of the direct children in order.
	// Mutating the tree does not change a previously returned slice.
	Entries() []Entry

	// Len returns the number of direct children.
	Len() int

	// Find resolves a "/" separated path relative to this tree. It returns
	// nil when no such entry exists.
	Find(path string) Entry

	// Move relocates entry to path, relative to this tree. A path ending
	// in "/" moves the entry into that directory keeping its name;
	// otherwise the last element becomes the entry's new name. Missing
	// intermediate directories are created. Moving a directory onto an
	// existing directory merges them; any other collision is an error.
	Move(entry Entry, path string) error

	// Remove detaches entry, and its subtree, from the tree.
	Remove(entry Entry) error
}

// AsTree returns e as a Tree when it is a directory.
func AsTree(e Entry) (Tree, bool) {
	if e == nil || !e.IsDir() {
		return nil, false
	}
	t, ok := e.(Tree)
	return t, ok
}
