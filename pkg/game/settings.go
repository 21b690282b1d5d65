package game

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/arthur-debert/zoimods/pkg/logging"
	"github.com/arthur-debert/zoimods/pkg/types"
)

// Setting names.
const (
	SettingDeployOnLaunch = "Deploy Symlinks on Launch"
	SettingLogLevel       = "LogLevel"
)

// Settings returns the plugin's declared settings.
func Settings() []types.PluginSetting {
	return []types.PluginSetting{
		{
			Name:        SettingDeployOnLaunch,
			Description: "Deploys 3DPrinter, MyAIMotion, MySites and MyAppearances mods on launch instead of when the mod is enabled.",
			Default:     true,
		},
		{
			Name:        SettingLogLevel,
			Description: "Controls the level of detail in the plugin log. Options: Info, Debug",
			Default:     logging.LevelInfo,
		},
	}
}

// DeployOnLaunch reports the deploy-on-launch setting. Missing or
// unreadable values mean the default, on.
func DeployOnLaunch(store types.SettingsStore) bool {
	switch v := store.PluginSetting(PluginName, SettingDeployOnLaunch).(type) {
	case bool:
		return v
	case string:
		if b, err := strconv.ParseBool(strings.TrimSpace(v)); err == nil {
			return b
		}
	}
	return true
}

// LogLevel reports the LogLevel setting, normalised to Info or Debug.
func LogLevel(store types.SettingsStore) string {
	v := store.PluginSetting(PluginName, SettingLogLevel)
	if v == nil {
		return logging.LevelInfo
	}
	return logging.ParseLevel(fmt.Sprint(v))
}
