package game

import (
	"sort"

	"github.com/arthur-debert/zoimods/pkg/checker"
	"github.com/arthur-debert/zoimods/pkg/logging"
	"github.com/arthur-debert/zoimods/pkg/symlinks"
	"github.com/arthur-debert/zoimods/pkg/types"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

// Organizer is the mod manager host as seen by the plugin.
type Organizer interface {
	types.SettingsStore

	ModList() types.ModList

	OnAboutToRun(func(path string) bool)
	OnFinishedRun(func(path string, exitCode int))
	OnModStateChanged(func(states map[string]types.ModState))
	OnPluginSettingChanged(func(plugin, setting string, oldValue, newValue any))
}

// Plugin connects the host's events to the checker and the reconciler.
type Plugin struct {
	organizer Organizer
	level     *logging.Level
	checker   *checker.Checker
	links     *symlinks.Reconciler

	// session identifies the current launch in the log.
	session string
}

// New creates the plugin. base is the glob checker the layout checker
// composes; dirs locates the game and its documents folder.
func New(org Organizer, fsys types.FS, dirs symlinks.Config, base checker.Base) *Plugin {
	level := logging.NewLevel(LogLevel(org))
	return &Plugin{
		organizer: org,
		level:     level,
		checker:   checker.New(base, level),
		links:     symlinks.New(fsys, org.ModList(), dirs, level),
	}
}

// Init registers the event hooks with the host.
func (p *Plugin) Init() {
	p.organizer.OnAboutToRun(p.onAboutToRun)
	p.organizer.OnFinishedRun(p.onFinishedRun)
	p.organizer.OnModStateChanged(func(states map[string]types.ModState) {
		p.ModStateChanged(states)
	})
	p.organizer.OnPluginSettingChanged(p.SettingChanged)
	logger := p.logger()
	logger.Debug().Str("level", p.level.String()).Msg("Plugin initialized")
}

// Level returns the plugin verbosity shared with the checker and the
// reconciler.
func (p *Plugin) Level() *logging.Level {
	return p.level
}

// Checker returns the layout checker.
func (p *Plugin) Checker() *checker.Checker {
	return p.checker
}

// Reconciler returns the symlink reconciler.
func (p *Plugin) Reconciler() *symlinks.Reconciler {
	return p.links
}

// DeployOnLaunch reports the current deploy-on-launch setting.
func (p *Plugin) DeployOnLaunch() bool {
	return DeployOnLaunch(p.organizer)
}

func (p *Plugin) logger() zerolog.Logger {
	logger := p.level.Logger("game")
	if p.session != "" {
		logger = logger.With().Str("session", p.session).Logger()
	}
	return logger
}

func (p *Plugin) onAboutToRun(path string) bool {
	p.AboutToRun(path)
	return true
}

func (p *Plugin) onFinishedRun(path string, exitCode int) {
	p.FinishedRun(path, exitCode)
}

// AboutToRun links the loader files of the active mods and, with deploy on
// launch, every content category. The launch is never blocked.
func (p *Plugin) AboutToRun(path string) *symlinks.Report {
	p.session = uuid.NewString()
	logger := p.logger()
	logger.Info().Str("path", path).Msg("Application about to run")

	report := p.links.LinkLoaderFiles()
	if p.DeployOnLaunch() {
		report.Merge(p.links.LinkAll())
	}
	logger.Info().
		Int("created", report.Count(symlinks.ActionCreated)).
		Int("skipped", report.Count(symlinks.ActionSkipped)).
		Int("failed", report.Count(symlinks.ActionFailed)).
		Msg("Deployed links")
	return report
}

// FinishedRun tears down what AboutToRun set up.
func (p *Plugin) FinishedRun(path string, exitCode int) *symlinks.Report {
	logger := p.logger()
	logger.Info().Str("path", path).Int("exit_code", exitCode).Msg("Application finished running")

	report := p.links.UnlinkLoaderFiles()
	if p.DeployOnLaunch() {
		report.Merge(p.links.UnlinkAll())
	}
	logger.Info().
		Int("removed", report.Count(symlinks.ActionRemoved)).
		Int("failed", report.Count(symlinks.ActionFailed)).
		Msg("Removed links")
	p.session = ""
	return report
}

// ModStateChanged links or unlinks the content of each changed mod when
// deploy on launch is off. With deploy on launch the change is only
// logged; the launch hooks handle the links.
func (p *Plugin) ModStateChanged(states map[string]types.ModState) *symlinks.Report {
	report := &symlinks.Report{Operation: "state", Entries: []symlinks.Entry{}}
	logger := p.logger()
	deploy := p.DeployOnLaunch()
	mods := p.organizer.ModList()

	names := make([]string, 0, len(states))
	for name := range states {
		names = append(names, name)
	}
	sort.Strings(names)

	for _, name := range names {
		mod := mods.GetMod(name)
		if mod == nil {
			logger.Warn().Str("mod", name).Msg("Mod not found")
			continue
		}
		if states[name].IsActive() {
			logger.Info().Str("mod", name).Msg("Mod enabled")
			if !deploy {
				report.Merge(p.links.LinkMod(mod))
			}
			continue
		}
		logger.Info().Str("mod", name).Msg("Mod disabled")
		if !deploy {
			report.Merge(p.links.UnlinkMod(mod))
		}
	}
	return report
}

// SettingChanged re-reads the log level when one of this plugin's settings
// changes.
func (p *Plugin) SettingChanged(plugin, setting string, oldValue, newValue any) {
	if plugin != PluginName {
		return
	}
	p.level.Set(LogLevel(p.organizer))
	logger := p.logger()
	logger.Debug().
		Str("setting", setting).
		Interface("old", oldValue).
		Interface("new", newValue).
		Msg("Plugin setting changed")
}
