package types

// PluginSetting declares one persisted setting of a plugin.
type PluginSetting struct {
	Name        string `json:"name" yaml:"name"`
	Description string `json:"description" yaml:"description"`
	Default     any    `json:"default" yaml:"default"`
}

// SettingsStore is the host's per-plugin settings persistence.
type SettingsStore interface {
	// PluginSetting returns the stored value, or the declared default when
	// nothing was stored. It returns nil for undeclared settings.
	PluginSetting(plugin, name string) any

	// SetPluginSetting stores a value.
	SetPluginSetting(plugin, name string, value any) error
}
