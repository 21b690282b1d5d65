// Package profile reads and writes a Mod Organizer style profile: the
// modlist.txt of a profile folder plus the mods folder next to it.
//
// modlist.txt lists one mod per line, highest priority first. A "+"
// prefix marks an enabled mod, "-" a disabled one and "*" an unmanaged
// entry (game DLC and the like). Lines starting with "#" are comments.
package profile

import (
	"bufio"
	"bytes"
	"path/filepath"
	"strings"

	"github.com/arthur-debert/zoimods/pkg/errors"
	"github.com/arthur-debert/zoimods/pkg/logging"
	"github.com/arthur-debert/zoimods/pkg/types"
	"github.com/rs/zerolog"
	"github.com/spf13/afero"
)

// ModListFile is the profile file holding the mod order.
const ModListFile = "modlist.txt"

const header = "# This file was automatically generated by zoimods.\n"

type line struct {
	prefix byte
	name   string
}

type mod struct {
	name string
	path string
}

func (m mod) Name() string         { return m.name }
func (m mod) AbsolutePath() string { return m.path }

// Profile is a loaded profile. It implements types.ModList.
type Profile struct {
	fs       afero.Fs
	dir      string
	modsDir  string
	lines    []line
	comments []string
	handlers []func(map[string]types.ModState)
	logger   zerolog.Logger
}

// Load reads dir/modlist.txt. A missing file is an empty profile.
func Load(fsys afero.Fs, dir, modsDir string) (*Profile, error) {
	p := &Profile{
		fs:      fsys,
		dir:     dir,
		modsDir: modsDir,
		logger:  logging.GetLogger("profile"),
	}

	data, err := afero.ReadFile(fsys, p.Path())
	if err != nil {
		if exists, _ := afero.Exists(fsys, p.Path()); !exists {
			p.logger.Debug().Str("path", p.Path()).Msg("No mod list, starting empty")
			return p, nil
		}
		return nil, errors.Wrapf(err, errors.ErrProfileLoad, "cannot read %s", p.Path())
	}

	scanner := bufio.NewScanner(bytes.NewReader(data))
	for scanner.Scan() {
		text := strings.TrimRight(scanner.Text(), "\r")
		switch {
		case strings.TrimSpace(text) == "":
		case strings.HasPrefix(text, "#"):
			p.comments = append(p.comments, text)
		case text[0] == '+' || text[0] == '-' || text[0] == '*':
			if name := strings.TrimSpace(text[1:]); name != "" {
				p.lines = append(p.lines, line{prefix: text[0], name: name})
			}
		default:
			p.logger.Warn().Str("line", text).Msg("Ignoring malformed mod list line")
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, errors.Wrapf(err, errors.ErrProfileLoad, "cannot parse %s", p.Path())
	}

	p.logger.Debug().Str("path", p.Path()).Int("mods", len(p.lines)).Msg("Loaded mod list")
	return p, nil
}

// Path returns the modlist.txt path.
func (p *Profile) Path() string {
	return filepath.Join(p.dir, ModListFile)
}

// ModsDir returns the folder holding the mods.
func (p *Profile) ModsDir() string {
	return p.modsDir
}

// AllModsByProfilePriority implements types.ModList
func (p *Profile) AllModsByProfilePriority() []string {
	var names []string
	for i := len(p.lines) - 1; i >= 0; i-- {
		if p.lines[i].prefix != '*' {
			names = append(names, p.lines[i].name)
		}
	}
	return names
}

// State implements types.ModList
func (p *Profile) State(name string) types.ModState {
	l := p.find(name)
	if l == nil || l.prefix == '*' {
		return 0
	}
	var state types.ModState
	if p.isDir(name) {
		state |= types.ModStateExists | types.ModStateValid
		if empty, err := afero.IsEmpty(p.fs, p.modPath(name)); err == nil && empty {
			state |= types.ModStateEmpty
		}
	}
	if l.prefix == '+' {
		state |= types.ModStateActive
	}
	return state
}

// GetMod implements types.ModList
func (p *Profile) GetMod(name string) types.Mod {
	l := p.find(name)
	if l == nil || l.prefix == '*' || !p.isDir(l.name) {
		return nil
	}
	return mod{name: l.name, path: p.modPath(l.name)}
}

// Add appends a new mod at the highest priority, disabled. Adding a mod
// that is already listed is a no-op.
func (p *Profile) Add(name string) {
	if p.find(name) != nil {
		return
	}
	p.lines = append([]line{{prefix: '-', name: name}}, p.lines...)
}

// Discover adds every folder of the mods directory missing from the list,
// disabled, and returns their names.
func (p *Profile) Discover() ([]string, error) {
	infos, err := afero.ReadDir(p.fs, p.modsDir)
	if err != nil {
		if exists, _ := afero.DirExists(p.fs, p.modsDir); !exists {
			return nil, nil
		}
		return nil, errors.Wrapf(err, errors.ErrProfileLoad, "cannot list %s", p.modsDir)
	}
	var added []string
	for _, info := range infos {
		if !info.IsDir() || p.find(info.Name()) != nil {
			continue
		}
		p.Add(info.Name())
		added = append(added, info.Name())
	}
	if len(added) > 0 {
		p.logger.Info().Strs("mods", added).Msg("Discovered new mods")
	}
	return added, nil
}

// SetActive enables or disables a listed mod and notifies state change
// handlers when the state actually changed.
func (p *Profile) SetActive(name string, active bool) error {
	l := p.find(name)
	if l == nil || l.prefix == '*' {
		return errors.Newf(errors.ErrModNotFound, "mod %q is not in the profile", name).
			WithDetail("mod", name)
	}
	prefix := byte('-')
	if active {
		prefix = '+'
	}
	if l.prefix == prefix {
		return nil
	}
	l.prefix = prefix
	p.logger.Info().Str("mod", l.name).Bool("active", active).Msg("Mod state changed")

	changed := map[string]types.ModState{l.name: p.State(l.name)}
	for _, h := range p.handlers {
		h(changed)
	}
	return nil
}

// OnModStateChanged registers fn to run after SetActive changes a mod.
func (p *Profile) OnModStateChanged(fn func(map[string]types.ModState)) {
	p.handlers = append(p.handlers, fn)
}

// Save writes modlist.txt back.
func (p *Profile) Save() error {
	var buf bytes.Buffer
	if len(p.comments) == 0 {
		buf.WriteString(header)
	}
	for _, c := range p.comments {
		buf.WriteString(c + "\n")
	}
	for _, l := range p.lines {
		buf.WriteByte(l.prefix)
		buf.WriteString(l.name + "\n")
	}

	if err := p.fs.MkdirAll(p.dir, 0755); err != nil {
		return errors.Wrapf(err, errors.ErrProfileSave, "cannot create %s", p.dir)
	}
	if err := afero.WriteFile(p.fs, p.Path(), buf.Bytes(), 0644); err != nil {
		return errors.Wrapf(err, errors.ErrProfileSave, "cannot write %s", p.Path())
	}
	p.logger.Debug().Str("path", p.Path()).Msg("Saved mod list")
	return nil
}

func (p *Profile) find(name string) *line {
	for i := range p.lines {
		if strings.EqualFold(p.lines[i].name, name) {
			return &p.lines[i]
		}
	}
	return nil
}

func (p *Profile) modPath(name string) string {
	return filepath.Join(p.modsDir, name)
}

func (p *Profile) isDir(name string) bool {
	ok, err := afero.DirExists(p.fs, p.modPath(name))
	return err == nil && ok
}

var _ types.ModList = (*Profile)(nil)
