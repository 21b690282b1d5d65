package zoimods

import (
	_ "embed"
	"strings"
)

// Short messages (one-liners)
const (
	// Command descriptions
	MsgRootShort        = "inZOI mod layout checker and symlink manager"
	MsgCheckShort       = "Classify the layout of mod folders"
	MsgFixShort         = "Repair the layout of a mod folder"
	MsgLinkShort        = "Link the content of all active mods"
	MsgUnlinkShort      = "Remove all content links"
	MsgStatusShort      = "Show the state of every content link"
	MsgEnableShort      = "Enable a mod in the active profile"
	MsgDisableShort     = "Disable a mod in the active profile"
	MsgLaunchShort      = "Launch the game with links deployed"
	MsgSettingsShort    = "List, read or change plugin settings"
	MsgExecutablesShort = "List the game executables"
	MsgVersionShort     = "Print version information"
	MsgCompletionShort  = "Generate shell completion script"

	// Status messages
	MsgModEnabled  = "Enabled %s"
	MsgModDisabled = "Disabled %s"
	MsgSettingSet  = "%s = %v"

	// Error messages
	MsgErrOpenInstance  = "failed to open instance: %w"
	MsgErrUnknownFormat = "invalid --format: %w"
	MsgErrNoCommand     = "no command specified"

	// Flag descriptions
	MsgFlagVerbose  = "Increase verbosity (-v DEBUG, -vv TRACE)"
	MsgFlagInstance = "Instance directory (default: discovered from the working directory)"
	MsgFlagFormat   = "Output format: auto, term, text, json or yaml"
	MsgFlagDryRun   = "Preview changes without executing them"

	// Completion help
	MsgCompletionLong = `To load completions:

Bash:
  $ source <(zoimods completion bash)

Zsh:
  $ zoimods completion zsh > "${fpath[1]}/_zoimods"

Fish:
  $ zoimods completion fish | source

PowerShell:
  PS> zoimods completion powershell | Out-String | Invoke-Expression`
)

// Long messages from embedded files
var (
	//go:embed msgs/root-long.txt
	msgRootLongRaw string
	MsgRootLong    = strings.TrimSpace(msgRootLongRaw)

	//go:embed msgs/fix-long.txt
	msgFixLongRaw string
	MsgFixLong    = strings.TrimSpace(msgFixLongRaw)

	//go:embed msgs/fix-example.txt
	msgFixExampleRaw string
	MsgFixExample    = strings.TrimSpace(msgFixExampleRaw)

	//go:embed msgs/launch-long.txt
	msgLaunchLongRaw string
	MsgLaunchLong    = strings.TrimSpace(msgLaunchLongRaw)

	//go:embed msgs/launch-example.txt
	msgLaunchExampleRaw string
	MsgLaunchExample    = strings.TrimSpace(msgLaunchExampleRaw)

	//go:embed msgs/settings-long.txt
	msgSettingsLongRaw string
	MsgSettingsLong    = strings.TrimSpace(msgSettingsLongRaw)
)
