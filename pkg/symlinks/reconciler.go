package symlinks

import (
	stderrors "errors"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/arthur-debert/zoimods/pkg/categories"
	"github.com/arthur-debert/zoimods/pkg/errors"
	"github.com/arthur-debert/zoimods/pkg/logging"
	"github.com/arthur-debert/zoimods/pkg/types"
	"github.com/rs/zerolog"
)

// Report operations.
const (
	OpLink   = "link"
	OpUnlink = "unlink"
)

// LoaderFiles are linked from each active mod's binaries folder into the
// game's.
var LoaderFiles = []string{"bitfix", "dsound.dll"}

// BinariesPath is the engine binaries folder, relative to the game install
// and to a mod.
var BinariesPath = []string{"BlueClient", "Binaries", "Win64"}

// Config locates the directories the reconciler writes to.
type Config struct {
	// DocumentsDir is the game's documents folder (…/Documents/inZOI).
	DocumentsDir string
	// GameDir is the game install folder.
	GameDir string
}

// Reconciler creates and removes the symlinks of the active mods.
type Reconciler struct {
	fs    types.FS
	mods  types.ModList
	cfg   Config
	level *logging.Level
}

// New creates a reconciler. level may be nil.
func New(fsys types.FS, mods types.ModList, cfg Config, level *logging.Level) *Reconciler {
	return &Reconciler{fs: fsys, mods: mods, cfg: cfg, level: level}
}

// Base returns the shared documents folder of cat.
func (r *Reconciler) Base(cat categories.Category) string {
	return filepath.Join(append([]string{r.cfg.DocumentsDir}, cat.DocumentsBase()...)...)
}

// GameBinariesDir returns the game's engine binaries folder.
func (r *Reconciler) GameBinariesDir() string {
	return filepath.Join(append([]string{r.cfg.GameDir}, BinariesPath...)...)
}

// HasGame reports whether a game folder is configured. Loader files are
// only handled when it is.
func (r *Reconciler) HasGame() bool {
	return r.cfg.GameDir != ""
}

func (r *Reconciler) logger() zerolog.Logger {
	return r.level.Logger("symlinks")
}

// LinkCategory links the cat folders of every active mod, lowest priority
// first so higher priority mods win on identical names.
func (r *Reconciler) LinkCategory(cat categories.Category) *Report {
	report := newReport(OpLink)
	logger := r.logger().With().Str("category", cat.String()).Logger()
	if !r.ensureBase(logger, report, cat) {
		return report
	}
	for _, mod := range types.ActiveMods(r.mods) {
		r.linkModCategory(logger, report, mod, cat)
	}
	logger.Info().
		Int("created", report.Count(ActionCreated)).
		Int("skipped", report.Count(ActionSkipped)).
		Int("failed", report.Count(ActionFailed)).
		Msg("Linked category")
	return report
}

// UnlinkCategory removes every symlink directly under the base of cat.
// Real files and folders are left alone.
func (r *Reconciler) UnlinkCategory(cat categories.Category) *Report {
	report := newReport(OpUnlink)
	logger := r.logger().With().Str("category", cat.String()).Logger()
	base := r.Base(cat)

	entries, err := r.fs.ReadDir(base)
	if err != nil {
		if !isNotExist(err) {
			logger.Error().Err(err).Str("base", base).Msg("Cannot list category folder")
			report.add(Entry{Action: ActionFailed, Group: cat.String(), Target: base,
				Err: errors.Wrap(err, errors.ErrFileAccess, "cannot list category folder")})
		}
		return report
	}
	for _, e := range entries {
		target := filepath.Join(base, e.Name())
		if !r.isSymlink(target) {
			logger.Debug().Str("target", target).Msg("Leaving non-symlink in place")
			continue
		}
		r.removeLink(logger, report, Entry{Group: cat.String(), Target: target})
	}
	logger.Info().Int("removed", report.Count(ActionRemoved)).Msg("Unlinked category")
	return report
}

// LinkAll links every category.
func (r *Reconciler) LinkAll() *Report {
	report := newReport(OpLink)
	for _, cat := range categories.All() {
		report.Merge(r.LinkCategory(cat))
	}
	return report
}

// UnlinkAll unlinks every category.
func (r *Reconciler) UnlinkAll() *Report {
	report := newReport(OpUnlink)
	for _, cat := range categories.All() {
		report.Merge(r.UnlinkCategory(cat))
	}
	return report
}

// LinkMod links the content of a single mod in every category.
func (r *Reconciler) LinkMod(mod types.Mod) *Report {
	report := newReport(OpLink)
	for _, cat := range categories.All() {
		logger := r.logger().With().Str("category", cat.String()).Str("mod", mod.Name()).Logger()
		if !r.ensureBase(logger, report, cat) {
			continue
		}
		r.linkModCategory(logger, report, mod, cat)
	}
	return report
}

// UnlinkMod removes the links of a single mod. A link is only removed when
// it points into this mod, so another active mod providing the same
// content keeps its link.
func (r *Reconciler) UnlinkMod(mod types.Mod) *Report {
	report := newReport(OpUnlink)
	for _, cat := range categories.All() {
		logger := r.logger().With().Str("category", cat.String()).Str("mod", mod.Name()).Logger()
		srcRoot := filepath.Join(mod.AbsolutePath(), cat.Root())
		for _, name := range r.contentFolders(logger, report, srcRoot, cat) {
			source := filepath.Join(srcRoot, name)
			target := filepath.Join(r.Base(cat), linkName(name))
			entry := Entry{Group: cat.String(), Mod: mod.Name(), Source: source, Target: target}

			if !r.isSymlink(target) {
				continue
			}
			if dest, err := r.fs.Readlink(target); err != nil || !samePath(dest, source) {
				logger.Debug().Str("target", target).Str("points_to", dest).Msg("Link belongs to another mod")
				continue
			}
			r.removeLink(logger, report, entry)
		}
	}
	return report
}

// LinkLoaderFiles links the loader files of every active mod into the
// game's binaries folder.
func (r *Reconciler) LinkLoaderFiles() *Report {
	report := newReport(OpLink)
	logger := r.logger().With().Str("group", LoaderGroup).Logger()
	if !r.HasGame() {
		logger.Debug().Msg("No game folder configured, skipping loader files")
		return report
	}
	dstDir := r.GameBinariesDir()

	for _, mod := range types.ActiveMods(r.mods) {
		srcDir := filepath.Join(append([]string{mod.AbsolutePath()}, BinariesPath...)...)
		for _, name := range LoaderFiles {
			source := filepath.Join(srcDir, name)
			if _, err := r.fs.Stat(source); err != nil {
				continue
			}
			if err := r.fs.MkdirAll(dstDir, 0755); err != nil {
				logger.Error().Err(err).Str("dir", dstDir).Msg("Cannot create game binaries folder")
				report.add(Entry{Action: ActionFailed, Group: LoaderGroup, Mod: mod.Name(), Source: source, Target: dstDir,
					Err: errors.Wrap(err, errors.ErrDirCreate, "cannot create game binaries folder")})
				continue
			}
			r.link(logger, report, Entry{Group: LoaderGroup, Mod: mod.Name(), Source: source, Target: filepath.Join(dstDir, name)})
		}
	}
	return report
}

// UnlinkLoaderFiles removes loader file links from the game's binaries
// folder.
func (r *Reconciler) UnlinkLoaderFiles() *Report {
	report := newReport(OpUnlink)
	logger := r.logger().With().Str("group", LoaderGroup).Logger()
	if !r.HasGame() {
		logger.Debug().Msg("No game folder configured, skipping loader files")
		return report
	}
	for _, name := range LoaderFiles {
		target := filepath.Join(r.GameBinariesDir(), name)
		if r.isSymlink(target) {
			r.removeLink(logger, report, Entry{Group: LoaderGroup, Target: target})
		}
	}
	return report
}

func (r *Reconciler) ensureBase(logger zerolog.Logger, report *Report, cat categories.Category) bool {
	base := r.Base(cat)
	if err := r.fs.MkdirAll(base, 0755); err != nil {
		logger.Error().Err(err).Str("base", base).Msg("Cannot create category folder")
		report.add(Entry{Action: ActionFailed, Group: cat.String(), Target: base,
			Err: errors.Wrap(err, errors.ErrDirCreate, "cannot create category folder")})
		return false
	}
	return true
}

func (r *Reconciler) linkModCategory(logger zerolog.Logger, report *Report, mod types.Mod, cat categories.Category) {
	srcRoot := filepath.Join(mod.AbsolutePath(), cat.Root())
	for _, name := range r.contentFolders(logger, report, srcRoot, cat) {
		if categories.IsIdentifier(name) {
			r.dropCaseVariants(logger, report, cat, name)
		}
		r.link(logger, report, Entry{
			Group:  cat.String(),
			Mod:    mod.Name(),
			Source: filepath.Join(srcRoot, name),
			Target: filepath.Join(r.Base(cat), linkName(name)),
		})
	}
}

// linkName is the name of the shared link for a content folder. Identifiers
// are lowercased so differently cased copies of one item share a link.
func linkName(name string) string {
	if categories.IsIdentifier(name) {
		return categories.NormalizeIdentifier(name)
	}
	return name
}

// dropCaseVariants removes symlinks in the category base whose name is the
// same identifier as id in a different case.
func (r *Reconciler) dropCaseVariants(logger zerolog.Logger, report *Report, cat categories.Category, id string) {
	base := r.Base(cat)
	entries, err := r.fs.ReadDir(base)
	if err != nil {
		return
	}
	for _, e := range entries {
		name := e.Name()
		if name == linkName(id) || !categories.SameIdentifier(name, id) {
			continue
		}
		target := filepath.Join(base, name)
		if !r.isSymlink(target) {
			continue
		}
		logger.Debug().Str("target", target).Msg("Replacing differently cased link")
		r.removeLink(logger, report, Entry{Group: cat.String(), Target: target})
	}
}

// contentFolders lists the real folders under a mod's category root.
func (r *Reconciler) contentFolders(logger zerolog.Logger, report *Report, srcRoot string, cat categories.Category) []string {
	entries, err := r.fs.ReadDir(srcRoot)
	if err != nil {
		if !isNotExist(err) {
			logger.Error().Err(err).Str("dir", srcRoot).Msg("Cannot list mod content folder")
			report.add(Entry{Action: ActionFailed, Group: cat.String(), Source: srcRoot,
				Err: errors.Wrap(err, errors.ErrFileAccess, "cannot list mod content folder")})
		}
		return nil
	}
	var names []string
	for _, e := range entries {
		if e.IsDir() {
			names = append(names, e.Name())
		}
	}
	return names
}

// link creates e.Target -> e.Source, replacing an existing symlink.
func (r *Reconciler) link(logger zerolog.Logger, report *Report, e Entry) {
	if info, err := r.fs.Lstat(e.Target); err == nil {
		if info.Mode()&fs.ModeSymlink == 0 {
			logger.Warn().Str("target", e.Target).Msg("Skipping existing non-symlink")
			e.Action = ActionSkipped
			e.Reason = "target exists and is not a symlink"
			report.add(e)
			return
		}
		if err := r.fs.Remove(e.Target); err != nil {
			logger.Error().Err(err).Str("target", e.Target).Msg("Failed to remove existing symlink")
			e.Action = ActionFailed
			e.Err = errors.Wrapf(err, errors.ErrSymlinkRemove, "cannot replace %s", e.Target)
			report.add(e)
			return
		}
	} else if !isNotExist(err) {
		logger.Error().Err(err).Str("target", e.Target).Msg("Cannot inspect link target")
		e.Action = ActionFailed
		e.Err = errors.Wrapf(err, errors.ErrFileAccess, "cannot inspect %s", e.Target)
		report.add(e)
		return
	}

	if err := r.fs.Symlink(e.Source, e.Target); err != nil {
		logger.Error().Err(err).Str("target", e.Target).Str("source", e.Source).Msg("Failed to create symlink")
		e.Action = ActionFailed
		e.Err = errors.Wrapf(err, errors.ErrSymlinkCreate, "cannot link %s", e.Target)
		report.add(e)
		return
	}
	logger.Info().Str("target", e.Target).Str("source", e.Source).Msg("Created symlink")
	e.Action = ActionCreated
	report.add(e)
}

func (r *Reconciler) removeLink(logger zerolog.Logger, report *Report, e Entry) {
	if err := r.fs.Remove(e.Target); err != nil {
		logger.Error().Err(err).Str("target", e.Target).Msg("Failed to remove symlink")
		e.Action = ActionFailed
		e.Err = errors.Wrapf(err, errors.ErrSymlinkRemove, "cannot remove %s", e.Target)
		report.add(e)
		return
	}
	logger.Info().Str("target", e.Target).Msg("Removed symlink")
	e.Action = ActionRemoved
	report.add(e)
}

func (r *Reconciler) isSymlink(p string) bool {
	info, err := r.fs.Lstat(p)
	return err == nil && info.Mode()&fs.ModeSymlink != 0
}

func isNotExist(err error) bool {
	return stderrors.Is(err, fs.ErrNotExist) || os.IsNotExist(err)
}

func samePath(a, b string) bool {
	return filepath.Clean(a) == filepath.Clean(b)
}
