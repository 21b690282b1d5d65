package symlinks

import (
	"io/fs"
	"path/filepath"

	"github.com/arthur-debert/zoimods/pkg/categories"
	"github.com/arthur-debert/zoimods/pkg/types"
)

// State describes one expected or stray link.
type State string

const (
	// StateLinked means the link exists and points at the mod folder.
	StateLinked State = "linked"
	// StateMissing means nothing exists at the link path.
	StateMissing State = "missing"
	// StateConflict means a real file or folder occupies the link path.
	StateConflict State = "conflict"
	// StateForeign means a symlink points somewhere else, usually at a
	// higher priority mod providing the same content.
	StateForeign State = "foreign"
	// StateDangling means a link under a base points at nothing.
	StateDangling State = "dangling"
)

// LinkStatus is the state of one link path.
type LinkStatus struct {
	State    State  `json:"state" yaml:"state"`
	Group    string `json:"group" yaml:"group"`
	Mod      string `json:"mod,omitempty" yaml:"mod,omitempty"`
	Source   string `json:"source,omitempty" yaml:"source,omitempty"`
	Target   string `json:"target" yaml:"target"`
	PointsTo string `json:"points_to,omitempty" yaml:"points_to,omitempty"`
}

// Status reports every link the active mods expect, followed by dangling
// links found under the category bases and in the game binaries folder.
// It never modifies anything.
func (r *Reconciler) Status() []LinkStatus {
	logger := r.logger()
	var out []LinkStatus
	discard := newReport("status")

	for _, mod := range types.ActiveMods(r.mods) {
		for _, cat := range categories.All() {
			srcRoot := filepath.Join(mod.AbsolutePath(), cat.Root())
			for _, name := range r.contentFolders(logger, discard, srcRoot, cat) {
				out = append(out, r.check(LinkStatus{
					Group:  cat.String(),
					Mod:    mod.Name(),
					Source: filepath.Join(srcRoot, name),
					Target: filepath.Join(r.Base(cat), linkName(name)),
				}))
			}
		}

		if !r.HasGame() {
			continue
		}
		srcDir := filepath.Join(append([]string{mod.AbsolutePath()}, BinariesPath...)...)
		for _, name := range LoaderFiles {
			source := filepath.Join(srcDir, name)
			if _, err := r.fs.Stat(source); err != nil {
				continue
			}
			out = append(out, r.check(LinkStatus{
				Group:  LoaderGroup,
				Mod:    mod.Name(),
				Source: source,
				Target: filepath.Join(r.GameBinariesDir(), name),
			}))
		}
	}

	for _, cat := range categories.All() {
		entries, err := r.fs.ReadDir(r.Base(cat))
		if err != nil {
			continue
		}
		for _, e := range entries {
			out = append(out, r.dangling(cat.String(), filepath.Join(r.Base(cat), e.Name()))...)
		}
	}
	for _, name := range LoaderFiles {
		if r.HasGame() {
			out = append(out, r.dangling(LoaderGroup, filepath.Join(r.GameBinariesDir(), name))...)
		}
	}

	logger.Debug().Int("links", len(out)).Msg("Collected link status")
	return out
}

func (r *Reconciler) check(s LinkStatus) LinkStatus {
	info, err := r.fs.Lstat(s.Target)
	switch {
	case err != nil:
		s.State = StateMissing
	case info.Mode()&fs.ModeSymlink == 0:
		s.State = StateConflict
	default:
		dest, err := r.fs.Readlink(s.Target)
		s.PointsTo = dest
		if err == nil && samePath(dest, s.Source) {
			s.State = StateLinked
		} else {
			s.State = StateForeign
		}
	}
	return s
}

func (r *Reconciler) dangling(group, target string) []LinkStatus {
	if !r.isSymlink(target) {
		return nil
	}
	if _, err := r.fs.Stat(target); err == nil {
		return nil
	}
	dest, _ := r.fs.Readlink(target)
	return []LinkStatus{{State: StateDangling, Group: group, Target: target, PointsTo: dest}}
}

// Summary counts statuses by state.
func Summary(statuses []LinkStatus) map[State]int {
	counts := map[State]int{}
	for _, s := range statuses {
		counts[s.State]++
	}
	return counts
}
