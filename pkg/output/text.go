package output

import (
	"fmt"
	"io"
	"sort"
	"strings"

	"github.com/arthur-debert/zoimods/pkg/instance"
	"github.com/arthur-debert/zoimods/pkg/symlinks"
	"github.com/arthur-debert/zoimods/pkg/types"
	"github.com/charmbracelet/lipgloss"
)

// textRenderer prints human readable output, styled when styled is set
type textRenderer struct {
	out    io.Writer
	styled bool
}

func (r *textRenderer) paint(style lipgloss.Style, s string) string {
	if !r.styled {
		return s
	}
	return style.Render(s)
}

func (r *textRenderer) println(format string, args ...interface{}) error {
	_, err := fmt.Fprintf(r.out, format+"\n", args...)
	return err
}

func (r *textRenderer) RenderResult(result interface{}) error {
	switch v := result.(type) {
	case *instance.CheckResult:
		return r.renderCheck(v)
	case []*instance.CheckResult:
		for _, c := range v {
			if err := r.renderCheck(c); err != nil {
				return err
			}
		}
		return nil
	case *instance.FixResult:
		return r.renderFix(v)
	case *symlinks.Report:
		return r.renderReport(v)
	case []symlinks.LinkStatus:
		return r.renderStatus(v)
	case []Setting:
		return r.renderSettings(v)
	case *Executables:
		return r.renderExecutables(v)
	case *Version:
		return r.renderVersion(v)
	case *Launch:
		return r.println("%s exited with code %d", r.paint(PathStyle, v.Binary), v.ExitCode)
	default:
		return r.println("%+v", result)
	}
}

func (r *textRenderer) RenderError(err error) error {
	return r.println("%s %v", r.paint(ErrorStyle, "Error:"), err)
}

func (r *textRenderer) RenderMessage(msg string) error {
	return r.println("%s", msg)
}

func (r *textRenderer) verdict(v types.Verdict) string {
	switch v {
	case types.Valid:
		return r.paint(SuccessStyle, v.String())
	case types.Fixable:
		return r.paint(WarningStyle, v.String())
	default:
		return r.paint(ErrorStyle, v.String())
	}
}

func (r *textRenderer) renderCheck(c *instance.CheckResult) error {
	return r.println("%s: %s", r.paint(PathStyle, c.Dir), r.verdict(c.Verdict))
}

func (r *textRenderer) renderFix(f *instance.FixResult) error {
	if err := r.println("%s: %s -> %s", r.paint(PathStyle, f.Dir), r.verdict(f.Before), r.verdict(f.After)); err != nil {
		return err
	}
	for _, c := range f.Changes {
		if err := r.println("  %s", c.String()); err != nil {
			return err
		}
	}
	switch {
	case len(f.Changes) == 0:
		return r.println("%s", r.paint(MutedStyle, "No changes needed."))
	case !f.Applied:
		return r.println("%s", r.paint(WarningStyle, "DRY RUN - no changes were made"))
	}
	return nil
}

func (r *textRenderer) action(a symlinks.Action) string {
	switch a {
	case symlinks.ActionCreated, symlinks.ActionRemoved:
		return r.paint(SuccessStyle, string(a))
	case symlinks.ActionSkipped:
		return r.paint(WarningStyle, string(a))
	default:
		return r.paint(ErrorStyle, string(a))
	}
}

func (r *textRenderer) renderReport(rep *symlinks.Report) error {
	if len(rep.Entries) == 0 {
		return r.println("%s", r.paint(MutedStyle, "Nothing to "+rep.Operation+"."))
	}
	for _, e := range rep.Entries {
		line := fmt.Sprintf("%-8s %-10s %s", r.action(e.Action), e.Group, r.paint(PathStyle, e.Target))
		if e.Source != "" && e.Action == symlinks.ActionCreated {
			line += " -> " + e.Source
		}
		if e.Reason != "" {
			line += r.paint(MutedStyle, " ("+e.Reason+")")
		}
		if err := r.println("%s", line); err != nil {
			return err
		}
	}
	return r.println("\n%d created, %d removed, %d skipped, %d failed",
		rep.Count(symlinks.ActionCreated), rep.Count(symlinks.ActionRemoved),
		rep.Count(symlinks.ActionSkipped), rep.Count(symlinks.ActionFailed))
}

func (r *textRenderer) state(s symlinks.State) string {
	switch s {
	case symlinks.StateLinked:
		return r.paint(SuccessStyle, string(s))
	case symlinks.StateMissing:
		return r.paint(MutedStyle, string(s))
	case symlinks.StateForeign:
		return r.paint(InfoStyle, string(s))
	default:
		return r.paint(ErrorStyle, string(s))
	}
}

func (r *textRenderer) renderStatus(statuses []symlinks.LinkStatus) error {
	if len(statuses) == 0 {
		return r.println("%s", r.paint(MutedStyle, "No links expected by the active mods."))
	}
	for _, s := range statuses {
		line := fmt.Sprintf("%-9s %-10s %s", r.state(s.State), s.Group, r.paint(PathStyle, s.Target))
		if s.Mod != "" {
			line += " [" + s.Mod + "]"
		}
		if s.PointsTo != "" && s.State != symlinks.StateLinked {
			line += " -> " + s.PointsTo
		}
		if err := r.println("%s", line); err != nil {
			return err
		}
	}

	summary := symlinks.Summary(statuses)
	states := make([]string, 0, len(summary))
	for s := range summary {
		states = append(states, string(s))
	}
	sort.Strings(states)
	parts := make([]string, 0, len(states))
	for _, s := range states {
		parts = append(parts, fmt.Sprintf("%d %s", summary[symlinks.State(s)], s))
	}
	return r.println("\n%s", strings.Join(parts, ", "))
}

func (r *textRenderer) renderSettings(settings []Setting) error {
	for _, s := range settings {
		if err := r.println("%s = %v", r.paint(TitleStyle, s.Name), s.Value); err != nil {
			return err
		}
		if err := r.println("  %s", r.paint(MutedStyle, fmt.Sprintf("%s (default: %v)", s.Description, s.Default))); err != nil {
			return err
		}
	}
	return nil
}

func (r *textRenderer) renderExecutables(e *Executables) error {
	for _, exe := range e.Executables {
		binary := exe.Binary
		if e.GameDir != "" {
			binary = exe.Path(e.GameDir)
		}
		if err := r.println("%-20s %s", r.paint(TitleStyle, exe.Title), r.paint(PathStyle, binary)); err != nil {
			return err
		}
	}
	for _, fl := range e.ForcedLoads {
		if err := r.println("  forced load: %s into %s (enabled: %v)", fl.Library, fl.Process, fl.Enabled); err != nil {
			return err
		}
	}
	return nil
}

func (r *textRenderer) renderVersion(v *Version) error {
	return r.println("zoimods version %s\nCommit: %s\nBuilt:  %s", v.Version, v.Commit, v.Date)
}
