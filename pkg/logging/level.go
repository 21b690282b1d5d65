package logging

import (
	"strings"
	"sync/atomic"

	"github.com/rs/zerolog"
)

// Plugin log level names, as stored in the LogLevel setting.
const (
	LevelInfo  = "Info"
	LevelDebug = "Debug"
)

// Level is the plugin's runtime-adjustable verbosity. One Level is created
// by the plugin and handed to the checker and the reconciler; the setting
// changed hook calls Set and every logger derived afterwards honors it.
type Level struct {
	debug atomic.Bool
}

// NewLevel returns a Level initialised from a setting value.
func NewLevel(name string) *Level {
	l := &Level{}
	l.Set(name)
	return l
}

// Set updates the level from a setting value. Matching is case-insensitive
// and anything other than "debug" means Info.
func (l *Level) Set(name string) {
	l.debug.Store(ParseLevel(name) == LevelDebug)
}

// ParseLevel normalises a setting value to LevelInfo or LevelDebug.
func ParseLevel(name string) string {
	if strings.EqualFold(strings.TrimSpace(name), LevelDebug) {
		return LevelDebug
	}
	return LevelInfo
}

// IsDebug reports whether Debug verbosity is active. A nil Level is Info.
func (l *Level) IsDebug() bool {
	return l != nil && l.debug.Load()
}

// String returns the setting value for the current level.
func (l *Level) String() string {
	if l.IsDebug() {
		return LevelDebug
	}
	return LevelInfo
}

// Logger returns a component logger lowered to debug when the Level asks
// for it. It never raises a logger that is already more verbose.
func (l *Level) Logger(component string) zerolog.Logger {
	logger := GetLogger(component)
	if l.IsDebug() && logger.GetLevel() > zerolog.DebugLevel {
		logger = logger.Level(zerolog.DebugLevel)
	}
	return logger
}
