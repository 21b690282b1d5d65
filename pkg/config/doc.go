// Package config handles configuration management for zoimods.
// It loads the instance configuration from embedded defaults, the
// instance's zoimods.toml and ZOIMODS_* environment variables, and
// persists plugin settings in plugin-settings.toml.
package config
