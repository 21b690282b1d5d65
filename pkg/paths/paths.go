package paths

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/adrg/xdg"
	"github.com/arthur-debert/zoimods/pkg/config"
	"github.com/arthur-debert/zoimods/pkg/errors"
	"github.com/arthur-debert/zoimods/pkg/logging"
)

// Environment variable names
const (
	// EnvInstanceDir selects the instance root
	EnvInstanceDir = "ZOIMODS_INSTANCE"

	// EnvHome is the standard home directory variable
	EnvHome = "HOME"
)

// Fixed names inside the instance and the game install. These mirror the
// layout the mod manager and the game expect and are not configurable.
const (
	// GameDocumentsDir is the game's folder under the user's Documents
	GameDocumentsDir = "inZOI"

	// SaveGamesDir holds save games under the game documents folder
	SaveGamesDir = "SaveGames"

	// BinariesDir is the game's Win64 binaries folder, relative to the game dir
	BinariesDir = "BlueClient/Binaries/Win64"
)

// Paths provides centralized path management for an instance
type Paths interface {
	InstanceDir() string
	UsedFallback() bool
	ConfigPath() string
	SettingsPath() string
	ModsDir() string
	ModPath(name string) string
	ProfilesDir() string
	ProfileDir() string
	GameDir() string
	GameBinariesDir() string
	DocumentsDir() string
	SavesDir() string
	StateDir() string
	LogFilePath() string
	NormalizePath(path string) (string, error)
	IsInInstance(path string) (bool, error)
}

type paths struct {
	instanceDir  string
	usedFallback bool

	modsDir      string
	profilesDir  string
	profile      string
	gameDir      string
	documentsDir string
	stateDir     string
}

// New creates a Paths for the instance rooted at instanceDir. An empty
// instanceDir is discovered with FindInstanceDir. A nil cfg means the
// embedded defaults.
func New(instanceDir string, cfg *config.Config) (Paths, error) {
	root, usedFallback, err := FindInstanceDir(instanceDir)
	if err != nil {
		return nil, err
	}
	if cfg == nil {
		cfg = config.Default(root)
	}

	p := &paths{
		instanceDir:  root,
		usedFallback: usedFallback,
		modsDir:      cfg.Instance.Mods,
		profilesDir:  cfg.Instance.Profiles,
		profile:      cfg.Instance.Profile,
		gameDir:      expandHome(cfg.Game.Dir),
		documentsDir: expandHome(cfg.Game.Documents),
		stateDir:     filepath.Dir(logging.LogFilePath()),
	}
	if p.modsDir == "" {
		p.modsDir = filepath.Join(root, "mods")
	}
	if p.profilesDir == "" {
		p.profilesDir = filepath.Join(root, "profiles")
	}
	if p.documentsDir == "" {
		p.documentsDir = DefaultDocumentsDir()
	}

	logger := logging.GetLogger("paths")
	logger.Debug().
		Str("instance", p.instanceDir).
		Str("game", p.gameDir).
		Str("documents", p.documentsDir).
		Msg("Resolved paths")
	return p, nil
}

// DefaultDocumentsDir returns Documents/inZOI of the current user.
func DefaultDocumentsDir() string {
	return filepath.Join(xdg.UserDirs.Documents, GameDocumentsDir)
}

// FindInstanceDir determines the instance root using the following priority:
// 1. explicit, when not empty
// 2. ZOIMODS_INSTANCE environment variable
// 3. the nearest directory holding zoimods.toml, from the working directory up
// 4. the working directory (fallback)
//
// The returned bool reports whether the fallback was used.
func FindInstanceDir(explicit string) (string, bool, error) {
	root, usedFallback, err := findInstanceDir(explicit)
	if err != nil {
		return "", false, err
	}
	abs, err := filepath.Abs(root)
	if err != nil {
		return "", false, errors.Wrapf(err, errors.ErrFileAccess, "failed to get absolute path for %s", root)
	}
	return abs, usedFallback, nil
}

func findInstanceDir(explicit string) (string, bool, error) {
	if explicit != "" {
		return expandHome(explicit), false, nil
	}
	if root := os.Getenv(EnvInstanceDir); root != "" {
		return expandHome(root), false, nil
	}

	cwd, err := os.Getwd()
	if err != nil {
		return "", false, errors.Wrapf(err, errors.ErrFileAccess, "failed to get current directory")
	}
	for dir := cwd; ; dir = filepath.Dir(dir) {
		if _, err := os.Stat(filepath.Join(dir, config.FileName)); err == nil {
			return dir, false, nil
		}
		if filepath.Dir(dir) == dir {
			break
		}
	}
	return cwd, true, nil
}

// expandHome expands ~ to the home directory
func expandHome(path string) string {
	if path == "" || path[0] != '~' {
		return path
	}

	homeDir, err := os.UserHomeDir()
	if err != nil {
		homeDir = os.Getenv(EnvHome)
		if homeDir == "" {
			return path
		}
	}

	if len(path) == 1 {
		return homeDir
	}
	if path[1] == '/' || path[1] == filepath.Separator {
		return filepath.Join(homeDir, path[2:])
	}

	// ~something (not the user's home)
	return path
}

// ExpandHome is a utility function that expands ~ in paths
func ExpandHome(path string) string {
	return expandHome(path)
}

// InstanceDir returns the instance root
func (p *paths) InstanceDir() string {
	return p.instanceDir
}

// UsedFallback returns true if the working directory was used as fallback
func (p *paths) UsedFallback() bool {
	return p.usedFallback
}

// ConfigPath returns the instance configuration file
func (p *paths) ConfigPath() string {
	return filepath.Join(p.instanceDir, config.FileName)
}

// SettingsPath returns the persisted plugin settings file
func (p *paths) SettingsPath() string {
	return filepath.Join(p.instanceDir, config.SettingsFileName)
}

// ModsDir returns the folder holding one folder per mod
func (p *paths) ModsDir() string {
	return p.modsDir
}

// ModPath returns the folder of a specific mod
func (p *paths) ModPath(name string) string {
	return filepath.Join(p.modsDir, name)
}

// ProfilesDir returns the folder holding the profiles
func (p *paths) ProfilesDir() string {
	return p.profilesDir
}

// ProfileDir returns the folder of the selected profile
func (p *paths) ProfileDir() string {
	return filepath.Join(p.profilesDir, p.profile)
}

// GameDir returns the game install folder, empty when not configured
func (p *paths) GameDir() string {
	return p.gameDir
}

// GameBinariesDir returns the game's Win64 binaries folder
func (p *paths) GameBinariesDir() string {
	if p.gameDir == "" {
		return ""
	}
	return filepath.Join(p.gameDir, filepath.FromSlash(BinariesDir))
}

// DocumentsDir returns the game documents folder
func (p *paths) DocumentsDir() string {
	return p.documentsDir
}

// SavesDir returns the save games folder
func (p *paths) SavesDir() string {
	return filepath.Join(p.documentsDir, SaveGamesDir)
}

// StateDir returns the XDG state directory holding the log file
func (p *paths) StateDir() string {
	return p.stateDir
}

// LogFilePath returns the path to the log file
func (p *paths) LogFilePath() string {
	return logging.LogFilePath()
}

// NormalizePath normalizes a path by expanding home, making it absolute,
// and cleaning it
func (p *paths) NormalizePath(path string) (string, error) {
	if err := ValidatePath(path); err != nil {
		return "", err
	}

	abs, err := filepath.Abs(expandHome(path))
	if err != nil {
		return "", errors.Wrapf(err, errors.ErrFileAccess, "failed to get absolute path")
	}
	return filepath.Clean(abs), nil
}

// IsInInstance checks if a path is within the instance root
func (p *paths) IsInInstance(path string) (bool, error) {
	normalized, err := p.NormalizePath(path)
	if err != nil {
		return false, err
	}

	rel, err := filepath.Rel(p.instanceDir, normalized)
	if err != nil {
		return false, nil
	}
	return rel != ".." && !strings.HasPrefix(rel, ".."+string(filepath.Separator)), nil
}
