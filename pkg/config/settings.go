package config

import (
	"fmt"
	"reflect"
	"sort"
	"strconv"
	"strings"

	"github.com/arthur-debert/zoimods/pkg/errors"
	"github.com/arthur-debert/zoimods/pkg/logging"
	"github.com/arthur-debert/zoimods/pkg/types"
	"github.com/pelletier/go-toml/v2"
	"github.com/rs/zerolog"
	"github.com/spf13/afero"
)

// SettingsFileName is the file plugin settings are persisted in, next to
// zoimods.toml.
const SettingsFileName = "plugin-settings.toml"

// SettingChangedFunc is called after a stored setting changes.
type SettingChangedFunc func(plugin, setting string, oldValue, newValue any)

// SettingsFile is a types.SettingsStore persisted as TOML, one table per
// plugin.
type SettingsFile struct {
	fs       afero.Fs
	path     string
	values   map[string]map[string]any
	declared map[string][]types.PluginSetting
	handlers []SettingChangedFunc
	logger   zerolog.Logger
}

// LoadSettings reads path. A missing file yields an empty store.
func LoadSettings(fsys afero.Fs, path string) (*SettingsFile, error) {
	s := &SettingsFile{
		fs:       fsys,
		path:     path,
		values:   map[string]map[string]any{},
		declared: map[string][]types.PluginSetting{},
		logger:   logging.GetLogger("config.settings"),
	}

	data, err := afero.ReadFile(fsys, path)
	if err != nil {
		if exists, _ := afero.Exists(fsys, path); exists {
			return nil, errors.Wrapf(err, errors.ErrConfigLoad, "cannot read %s", path)
		}
		return s, nil
	}
	if err := toml.Unmarshal(data, &s.values); err != nil {
		return nil, errors.Wrapf(err, errors.ErrConfigParse, "cannot parse %s", path)
	}
	s.logger.Debug().Str("path", path).Int("plugins", len(s.values)).Msg("Loaded plugin settings")
	return s, nil
}

// Path returns the settings file location.
func (s *SettingsFile) Path() string {
	return s.path
}

// Declare registers the settings of a plugin and their defaults.
func (s *SettingsFile) Declare(plugin string, settings []types.PluginSetting) {
	s.declared[plugin] = append([]types.PluginSetting(nil), settings...)
}

// Declared returns the settings a plugin declared.
func (s *SettingsFile) Declared(plugin string) []types.PluginSetting {
	return s.declared[plugin]
}

// OnChanged registers fn to run after SetPluginSetting changes a value.
func (s *SettingsFile) OnChanged(fn SettingChangedFunc) {
	s.handlers = append(s.handlers, fn)
}

// PluginSetting implements types.SettingsStore
func (s *SettingsFile) PluginSetting(plugin, name string) any {
	decl, ok := s.declaration(plugin, name)
	if v, stored := s.values[plugin][name]; stored {
		return v
	}
	if !ok {
		return nil
	}
	return decl.Default
}

// SetPluginSetting implements types.SettingsStore. The value is coerced
// to the type of the declared default, then saved.
func (s *SettingsFile) SetPluginSetting(plugin, name string, value any) error {
	decl, ok := s.declaration(plugin, name)
	if !ok {
		return errors.Newf(errors.ErrSettingUnknown, "plugin %q has no setting %q", plugin, name).
			WithDetail("plugin", plugin).
			WithDetail("setting", name)
	}
	coerced, err := coerce(value, decl.Default)
	if err != nil {
		return errors.Wrapf(err, errors.ErrInvalidInput, "invalid value for %q", name)
	}

	old := s.PluginSetting(plugin, name)
	if s.values[plugin] == nil {
		s.values[plugin] = map[string]any{}
	}
	s.values[plugin][name] = coerced
	if err := s.Save(); err != nil {
		return err
	}

	s.logger.Info().Str("plugin", plugin).Str("setting", name).Interface("value", coerced).Msg("Setting changed")
	if !reflect.DeepEqual(old, coerced) {
		for _, h := range s.handlers {
			h(plugin, name, old, coerced)
		}
	}
	return nil
}

// Save writes the stored values.
func (s *SettingsFile) Save() error {
	data, err := toml.Marshal(s.values)
	if err != nil {
		return errors.Wrap(err, errors.ErrConfigSave, "cannot encode settings")
	}
	if err := afero.WriteFile(s.fs, s.path, data, 0644); err != nil {
		return errors.Wrapf(err, errors.ErrConfigSave, "cannot write %s", s.path)
	}
	return nil
}

// Names returns the declared setting names of plugin, sorted.
func (s *SettingsFile) Names(plugin string) []string {
	var names []string
	for _, d := range s.declared[plugin] {
		names = append(names, d.Name)
	}
	sort.Strings(names)
	return names
}

func (s *SettingsFile) declaration(plugin, name string) (types.PluginSetting, bool) {
	for _, d := range s.declared[plugin] {
		if d.Name == name {
			return d, true
		}
	}
	return types.PluginSetting{}, false
}

// coerce converts value to the type of def. Strings from the command line
// are parsed for bool and integer settings.
func coerce(value, def any) (any, error) {
	switch def.(type) {
	case bool:
		switch v := value.(type) {
		case bool:
			return v, nil
		case string:
			return strconv.ParseBool(strings.TrimSpace(v))
		}
	case int, int64:
		switch v := value.(type) {
		case int:
			return int64(v), nil
		case int64:
			return v, nil
		case string:
			return strconv.ParseInt(strings.TrimSpace(v), 10, 64)
		}
	case string:
		return fmt.Sprint(value), nil
	default:
		return value, nil
	}
	return nil, fmt.Errorf("expected %T, got %T", def, value)
}
