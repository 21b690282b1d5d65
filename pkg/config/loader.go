package config

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/arthur-debert/zoimods/pkg/errors"
	"github.com/arthur-debert/zoimods/pkg/logging"
	"github.com/go-viper/mapstructure/v2"
	"github.com/knadh/koanf/parsers/toml"
	"github.com/knadh/koanf/providers/confmap"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
)

// EnvPrefix prefixes environment overrides: ZOIMODS_GAME_DIR sets game.dir.
const EnvPrefix = "ZOIMODS_"

// Load builds the configuration of the instance in dir. Layers, lowest
// first: embedded defaults, dir/zoimods.toml, environment. Relative
// instance paths are resolved against dir.
func Load(dir string) (*Config, error) {
	logger := logging.GetLogger("config")
	k := koanf.New(".")

	// 1. Embedded defaults
	if err := k.Load(&rawBytesProvider{bytes: defaultConfig}, toml.Parser()); err != nil {
		return nil, errors.Wrap(err, errors.ErrConfigParse, "failed to load defaults")
	}

	// 2. Instance file
	path := filepath.Join(dir, FileName)
	if _, err := os.Stat(path); err == nil {
		if err := k.Load(file.Provider(path), toml.Parser()); err != nil {
			return nil, errors.Wrapf(err, errors.ErrConfigParse, "failed to load %s", path)
		}
		logger.Debug().Str("path", path).Msg("Loaded instance config")
	} else if !os.IsNotExist(err) {
		return nil, errors.Wrapf(err, errors.ErrConfigLoad, "cannot read %s", path)
	}

	// 3. Env vars
	err := k.Load(env.Provider(EnvPrefix, ".", func(s string) string {
		return strings.ReplaceAll(strings.ToLower(strings.TrimPrefix(s, EnvPrefix)), "_", ".")
	}), nil)
	if err != nil {
		return nil, errors.Wrap(err, errors.ErrConfigLoad, "failed to load env vars")
	}

	cfg, err := unmarshal(k)
	if err != nil {
		return nil, err
	}
	resolve(cfg, dir)
	return cfg, nil
}

// Default returns the embedded defaults, resolved against dir.
func Default(dir string) *Config {
	k := koanf.New(".")
	_ = k.Load(&rawBytesProvider{bytes: defaultConfig}, toml.Parser())
	cfg, err := unmarshal(k)
	if err != nil {
		cfg = &Config{}
	}
	resolve(cfg, dir)
	return cfg
}

// FromMap builds a configuration from already flattened keys, on top of
// the defaults. Used by tests and callers that assemble settings in code.
func FromMap(dir string, values map[string]interface{}) (*Config, error) {
	k := koanf.New(".")
	if err := k.Load(&rawBytesProvider{bytes: defaultConfig}, toml.Parser()); err != nil {
		return nil, errors.Wrap(err, errors.ErrConfigParse, "failed to load defaults")
	}
	if err := k.Load(confmap.Provider(values, "."), nil); err != nil {
		return nil, errors.Wrap(err, errors.ErrConfigLoad, "failed to load values")
	}
	cfg, err := unmarshal(k)
	if err != nil {
		return nil, err
	}
	resolve(cfg, dir)
	return cfg, nil
}

func unmarshal(k *koanf.Koanf) (*Config, error) {
	var cfg Config
	unmarshalConf := koanf.UnmarshalConf{
		Tag: "koanf",
		DecoderConfig: &mapstructure.DecoderConfig{
			Result:           &cfg,
			WeaklyTypedInput: true,
			DecodeHook: mapstructure.ComposeDecodeHookFunc(
				mapstructure.StringToSliceHookFunc(","),
			),
		},
	}
	if err := k.UnmarshalWithConf("", &cfg, unmarshalConf); err != nil {
		return nil, errors.Wrap(err, errors.ErrConfigParse, "failed to unmarshal configuration")
	}
	return &cfg, nil
}

func resolve(cfg *Config, dir string) {
	abs := func(p string) string {
		if p == "" || filepath.IsAbs(p) {
			return p
		}
		return filepath.Join(dir, p)
	}
	cfg.Instance.Mods = abs(cfg.Instance.Mods)
	cfg.Instance.Profiles = abs(cfg.Instance.Profiles)
	cfg.Game.Dir = abs(cfg.Game.Dir)
	cfg.Game.Documents = abs(cfg.Game.Documents)
}

// ProfileDir returns the folder of the selected profile.
func (c *Config) ProfileDir() string {
	return filepath.Join(c.Instance.Profiles, c.Instance.Profile)
}
