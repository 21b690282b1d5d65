package symlinks

import (
	"github.com/arthur-debert/zoimods/pkg/errors"
)

// Action is what happened to one link.
type Action string

const (
	ActionCreated Action = "created"
	ActionRemoved Action = "removed"
	ActionSkipped Action = "skipped"
	ActionFailed  Action = "failed"
)

// LoaderGroup is the Entry.Group of loader file links.
const LoaderGroup = "loader"

// Entry records the outcome for one link path.
type Entry struct {
	Action Action `json:"action" yaml:"action"`
	Group  string `json:"group" yaml:"group"`
	Mod    string `json:"mod,omitempty" yaml:"mod,omitempty"`
	Source string `json:"source,omitempty" yaml:"source,omitempty"`
	Target string `json:"target" yaml:"target"`
	Reason string `json:"reason,omitempty" yaml:"reason,omitempty"`
	Err    error  `json:"-" yaml:"-"`
}

// Report collects the entries of one reconciler operation.
type Report struct {
	Operation string  `json:"operation" yaml:"operation"`
	Entries   []Entry `json:"entries" yaml:"entries"`
}

func newReport(operation string) *Report {
	return &Report{Operation: operation, Entries: []Entry{}}
}

func (r *Report) add(e Entry) {
	if e.Err != nil && e.Reason == "" {
		e.Reason = e.Err.Error()
	}
	r.Entries = append(r.Entries, e)
}

// Merge appends other's entries.
func (r *Report) Merge(other *Report) {
	if other == nil {
		return
	}
	r.Entries = append(r.Entries, other.Entries...)
}

// Count returns how many entries have action a.
func (r *Report) Count(a Action) int {
	n := 0
	for _, e := range r.Entries {
		if e.Action == a {
			n++
		}
	}
	return n
}

// Targets returns the target paths of entries with action a.
func (r *Report) Targets(a Action) []string {
	var out []string
	for _, e := range r.Entries {
		if e.Action == a {
			out = append(out, e.Target)
		}
	}
	return out
}

// Err summarizes failed entries, or returns nil when there are none.
func (r *Report) Err() error {
	failed := r.Count(ActionFailed)
	if failed == 0 {
		return nil
	}
	var first error
	for _, e := range r.Entries {
		if e.Action == ActionFailed {
			first = e.Err
			break
		}
	}
	code := errors.ErrSymlinkCreate
	if r.Operation == OpUnlink {
		code = errors.ErrSymlinkRemove
	}
	if first == nil {
		return errors.Newf(code, "%s: %d link(s) failed", r.Operation, failed).WithDetail("failed", failed)
	}
	return errors.Wrapf(first, code, "%s: %d link(s) failed", r.Operation, failed).WithDetail("failed", failed)
}
