package types

// Verdict is the outcome of classifying a mod's file tree.
type Verdict int

const (
	// Invalid means no recognizable structure was found.
	Invalid Verdict = iota
	// Fixable means the content is recognizable but misplaced.
	Fixable
	// Valid means the tree already matches the canonical layout.
	Valid
)

// String returns the lower-case verdict name
func (v Verdict) String() string {
	switch v {
	case Valid:
		return "valid"
	case Fixable:
		return "fixable"
	default:
		return "invalid"
	}
}

// MarshalText lets verdicts render by name in JSON and YAML output.
func (v Verdict) MarshalText() ([]byte, error) {
	return []byte(v.String()), nil
}
