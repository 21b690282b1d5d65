package types

// ModState is a bit set describing a mod in the active profile. The values
// mirror the host's own flags.
type ModState uint32

const (
	ModStateExists ModState = 1 << iota
	ModStateActive
	ModStateEssential
	ModStateEmpty
	ModStateEndorsed
	ModStateValid
	ModStateAlternate
)

// IsActive reports whether the active flag is set.
func (s ModState) IsActive() bool {
	return s&ModStateActive != 0
}

// Mod is a single installed mod.
type Mod interface {
	Name() string
	// AbsolutePath is the mod's real directory on disk.
	AbsolutePath() string
}

// ModList is the host's view of the mods in the active profile.
type ModList interface {
	// AllModsByProfilePriority returns every mod name, lowest priority first.
	AllModsByProfilePriority() []string

	// State returns the state flags of the named mod. Unknown mods have no
	// flags set.
	State(name string) ModState

	// GetMod returns the named mod or nil when it cannot be resolved.
	GetMod(name string) Mod
}

// ActiveMods resolves the active mods of list in priority order, skipping
// names that no longer resolve.
func ActiveMods(list ModList) []Mod {
	var mods []Mod
	for _, name := range list.AllModsByProfilePriority() {
		if !list.State(name).IsActive() {
			continue
		}
		if mod := list.GetMod(name); mod != nil {
			mods = append(mods, mod)
		}
	}
	return mods
}
