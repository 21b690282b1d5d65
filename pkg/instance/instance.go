package instance

import (
	"github.com/arthur-debert/zoimods/pkg/checker"
	"github.com/arthur-debert/zoimods/pkg/config"
	"github.com/arthur-debert/zoimods/pkg/filesystem"
	"github.com/arthur-debert/zoimods/pkg/game"
	"github.com/arthur-debert/zoimods/pkg/logging"
	"github.com/arthur-debert/zoimods/pkg/paths"
	"github.com/arthur-debert/zoimods/pkg/profile"
	"github.com/arthur-debert/zoimods/pkg/symlinks"
	"github.com/arthur-debert/zoimods/pkg/types"
	"github.com/rs/zerolog"
	"github.com/spf13/afero"
)

// Instance is an opened instance directory.
type Instance struct {
	paths    paths.Paths
	config   *config.Config
	fs       afero.Fs
	settings *config.SettingsFile
	profile  *profile.Profile
	plugin   *game.Plugin

	aboutToRun  []func(path string) bool
	finishedRun []func(path string, exitCode int)

	logger zerolog.Logger
}

// Options for Open.
type Options struct {
	// Dir is the instance root. Empty means discovery, see
	// paths.FindInstanceDir.
	Dir string
	// Fs backs settings, profile and mod trees. Nil means the OS.
	Fs afero.Fs
}

// Open loads the instance and initializes the plugin.
func Open(opts Options) (*Instance, error) {
	logger := logging.GetLogger("instance")
	defer logging.LogOperationStart(logger, "open")()

	root, fallback, err := paths.FindInstanceDir(opts.Dir)
	if err != nil {
		return nil, err
	}
	if fallback {
		logger.Debug().Str("dir", root).Msg("No instance found, using the working directory")
	}

	cfg, err := config.Load(root)
	if err != nil {
		return nil, err
	}
	p, err := paths.New(root, cfg)
	if err != nil {
		return nil, err
	}

	fsys := opts.Fs
	if fsys == nil {
		fsys = afero.NewOsFs()
	}

	settings, err := config.LoadSettings(fsys, p.SettingsPath())
	if err != nil {
		return nil, err
	}
	settings.Declare(game.PluginName, declarations(cfg))

	prof, err := profile.Load(fsys, p.ProfileDir(), p.ModsDir())
	if err != nil {
		return nil, err
	}

	inst := &Instance{
		paths:    p,
		config:   cfg,
		fs:       fsys,
		settings: settings,
		profile:  prof,
		logger:   logger,
	}
	inst.plugin = game.New(inst, filesystem.NewAferoFS(fsys),
		symlinks.Config{DocumentsDir: p.DocumentsDir(), GameDir: p.GameDir()},
		checker.NewGlobChecker(cfg.Patterns()))
	inst.plugin.Init()

	logger.Debug().
		Str("instance", root).
		Str("profile", p.ProfileDir()).
		Int("mods", len(prof.AllModsByProfilePriority())).
		Msg("Instance opened")
	return inst, nil
}

// declarations returns the plugin settings with the configured log level
// as the LogLevel default.
func declarations(cfg *config.Config) []types.PluginSetting {
	settings := game.Settings()
	for i := range settings {
		if settings[i].Name == game.SettingLogLevel && cfg.Log.Level != "" {
			settings[i].Default = logging.ParseLevel(cfg.Log.Level)
		}
	}
	return settings
}

// Paths returns the resolved instance locations.
func (i *Instance) Paths() paths.Paths { return i.paths }

// Config returns the loaded configuration.
func (i *Instance) Config() *config.Config { return i.config }

// Profile returns the active profile.
func (i *Instance) Profile() *profile.Profile { return i.profile }

// Settings returns the plugin settings store.
func (i *Instance) Settings() *config.SettingsFile { return i.settings }

// Plugin returns the game plugin.
func (i *Instance) Plugin() *game.Plugin { return i.plugin }

// PluginSetting implements game.Organizer
func (i *Instance) PluginSetting(plugin, name string) any {
	return i.settings.PluginSetting(plugin, name)
}

// SetPluginSetting implements game.Organizer
func (i *Instance) SetPluginSetting(plugin, name string, value any) error {
	return i.settings.SetPluginSetting(plugin, name, value)
}

// ModList implements game.Organizer
func (i *Instance) ModList() types.ModList { return i.profile }

// OnAboutToRun implements game.Organizer
func (i *Instance) OnAboutToRun(fn func(path string) bool) {
	i.aboutToRun = append(i.aboutToRun, fn)
}

// OnFinishedRun implements game.Organizer
func (i *Instance) OnFinishedRun(fn func(path string, exitCode int)) {
	i.finishedRun = append(i.finishedRun, fn)
}

// OnModStateChanged implements game.Organizer
func (i *Instance) OnModStateChanged(fn func(states map[string]types.ModState)) {
	i.profile.OnModStateChanged(fn)
}

// OnPluginSettingChanged implements game.Organizer
func (i *Instance) OnPluginSettingChanged(fn func(plugin, setting string, oldValue, newValue any)) {
	i.settings.OnChanged(fn)
}

var _ game.Organizer = (*Instance)(nil)
