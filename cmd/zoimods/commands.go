package zoimods

import (
	"embed"
	"fmt"
	"io/fs"
	"os"
	"strings"

	"github.com/arthur-debert/zoimods/internal/version"
	"github.com/arthur-debert/zoimods/pkg/cobrax/topics"
	"github.com/arthur-debert/zoimods/pkg/errors"
	"github.com/arthur-debert/zoimods/pkg/game"
	"github.com/arthur-debert/zoimods/pkg/instance"
	"github.com/arthur-debert/zoimods/pkg/logging"
	"github.com/arthur-debert/zoimods/pkg/output"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
)

//go:embed topics
var topicFiles embed.FS

// options are the global flags shared by every command
type options struct {
	verbosity   int
	instanceDir string
	format      string
}

// NewRootCmd creates and returns the root command
func NewRootCmd() *cobra.Command {
	opts := &options{}

	rootCmd := &cobra.Command{
		Use:     "zoimods",
		Short:   MsgRootShort,
		Long:    MsgRootLong,
		Version: version.Version,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			logging.SetupLogger(opts.verbosity)
			log.Debug().Str("command", cmd.Name()).Msg("Command started")
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			_ = cmd.Help()
			return fmt.Errorf(MsgErrNoCommand)
		},
		SilenceUsage:      true,
		SilenceErrors:     true,
		DisableAutoGenTag: true,
	}

	rootCmd.PersistentFlags().CountVarP(&opts.verbosity, "verbose", "v", MsgFlagVerbose)
	rootCmd.PersistentFlags().StringVarP(&opts.instanceDir, "instance", "i", "", MsgFlagInstance)
	rootCmd.PersistentFlags().StringVarP(&opts.format, "format", "o", "auto", MsgFlagFormat)

	rootCmd.AddGroup(&cobra.Group{ID: "mods", Title: "MOD LAYOUT:"})
	rootCmd.AddGroup(&cobra.Group{ID: "links", Title: "LINKS AND PROFILE:"})
	rootCmd.AddGroup(&cobra.Group{ID: "misc", Title: "MISC:"})

	rootCmd.AddCommand(newCheckCmd(opts))
	rootCmd.AddCommand(newFixCmd(opts))
	rootCmd.AddCommand(newLinkCmd(opts))
	rootCmd.AddCommand(newUnlinkCmd(opts))
	rootCmd.AddCommand(newStatusCmd(opts))
	rootCmd.AddCommand(newToggleCmd(opts, "enable <mod>", MsgEnableShort, MsgModEnabled, true))
	rootCmd.AddCommand(newToggleCmd(opts, "disable <mod>", MsgDisableShort, MsgModDisabled, false))
	rootCmd.AddCommand(newLaunchCmd(opts))
	rootCmd.AddCommand(newSettingsCmd(opts))
	rootCmd.AddCommand(newExecutablesCmd(opts))
	rootCmd.AddCommand(newVersionCmd(opts))
	rootCmd.AddCommand(newCompletionCmd())

	source, err := fs.Sub(topicFiles, "topics")
	if err == nil {
		err = topics.InitializeWithOptions(rootCmd, source, topics.Options{
			Renderer: topics.NewGlamourRenderer(),
		})
	}
	if err != nil {
		log.Warn().Err(err).Msg("Help topics unavailable")
	}

	return rootCmd
}

// openInstance loads the instance selected by the global flags
func openInstance(opts *options) (*instance.Instance, error) {
	inst, err := instance.Open(instance.Options{Dir: opts.instanceDir})
	if err != nil {
		return nil, fmt.Errorf(MsgErrOpenInstance, err)
	}
	if inst.Paths().UsedFallback() {
		log.Debug().Str("dir", inst.Paths().InstanceDir()).Msg("Using current directory as instance")
	}
	return inst, nil
}

// renderer creates the renderer selected by --format, writing to the
// command's output
func renderer(cmd *cobra.Command, opts *options) (output.Renderer, error) {
	format, err := output.ParseFormat(opts.format)
	if err != nil {
		return nil, fmt.Errorf(MsgErrUnknownFormat, err)
	}
	return output.NewRenderer(format, cmd.OutOrStdout())
}

// run opens the instance and the renderer, then calls fn
func run(cmd *cobra.Command, opts *options, fn func(*instance.Instance, output.Renderer) error) error {
	r, err := renderer(cmd, opts)
	if err != nil {
		return err
	}
	inst, err := openInstance(opts)
	if err != nil {
		return err
	}
	return fn(inst, r)
}

// modNamesCompletion provides shell completion for mod names
func modNamesCompletion(opts *options) func(*cobra.Command, []string, string) ([]string, cobra.ShellCompDirective) {
	return func(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
		if len(args) > 0 {
			return nil, cobra.ShellCompDirectiveNoFileComp
		}
		inst, err := openInstance(opts)
		if err != nil {
			return nil, cobra.ShellCompDirectiveError
		}
		return inst.ModList().AllModsByProfilePriority(), cobra.ShellCompDirectiveNoFileComp
	}
}

func newCheckCmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:     "check <mod|dir>...",
		Short:   MsgCheckShort,
		GroupID: "mods",
		Args:    cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(cmd, opts, func(inst *instance.Instance, r output.Renderer) error {
				var results []*instance.CheckResult
				for _, arg := range args {
					result, err := inst.Check(inst.ModDir(arg))
					if err != nil {
						return err
					}
					results = append(results, result)
				}
				return r.RenderResult(results)
			})
		},
	}
}

func newFixCmd(opts *options) *cobra.Command {
	var dryRun bool
	cmd := &cobra.Command{
		Use:               "fix <mod|dir>",
		Short:             MsgFixShort,
		Long:              MsgFixLong,
		Example:           MsgFixExample,
		GroupID:           "mods",
		Args:              cobra.ExactArgs(1),
		ValidArgsFunction: modNamesCompletion(opts),
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(cmd, opts, func(inst *instance.Instance, r output.Renderer) error {
				result, err := inst.Fix(inst.ModDir(args[0]), dryRun)
				if err != nil {
					return err
				}
				return r.RenderResult(result)
			})
		},
	}
	cmd.Flags().BoolVarP(&dryRun, "dry-run", "n", false, MsgFlagDryRun)
	return cmd
}

func newLinkCmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:     "link",
		Short:   MsgLinkShort,
		GroupID: "links",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(cmd, opts, func(inst *instance.Instance, r output.Renderer) error {
				report := inst.Link()
				if err := r.RenderResult(report); err != nil {
					return err
				}
				return report.Err()
			})
		},
	}
}

func newUnlinkCmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:     "unlink",
		Short:   MsgUnlinkShort,
		GroupID: "links",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(cmd, opts, func(inst *instance.Instance, r output.Renderer) error {
				report := inst.Unlink()
				if err := r.RenderResult(report); err != nil {
					return err
				}
				return report.Err()
			})
		},
	}
}

func newStatusCmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:     "status",
		Short:   MsgStatusShort,
		GroupID: "links",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(cmd, opts, func(inst *instance.Instance, r output.Renderer) error {
				return r.RenderResult(inst.Status())
			})
		},
	}
}

func newToggleCmd(opts *options, use, short, done string, active bool) *cobra.Command {
	return &cobra.Command{
		Use:               use,
		Short:             short,
		GroupID:           "links",
		Args:              cobra.ExactArgs(1),
		ValidArgsFunction: modNamesCompletion(opts),
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(cmd, opts, func(inst *instance.Instance, r output.Renderer) error {
				if err := inst.SetModActive(args[0], active); err != nil {
					return err
				}
				return r.RenderMessage(fmt.Sprintf(done, args[0]))
			})
		},
	}
}

func newLaunchCmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:     "launch [executable] [-- args...]",
		Short:   MsgLaunchShort,
		Long:    MsgLaunchLong,
		Example: MsgLaunchExample,
		GroupID: "links",
		Args:    cobra.ArbitraryArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			name, procArgs, err := splitLaunchArgs(args, cmd.ArgsLenAtDash())
			if err != nil {
				return err
			}
			return run(cmd, opts, func(inst *instance.Instance, r output.Renderer) error {
				binary, err := inst.ResolveExecutable(name)
				if err != nil {
					return err
				}
				code, err := inst.Launch(cmd.Context(), name, procArgs)
				if err != nil {
					return err
				}
				return r.RenderResult(&output.Launch{Binary: binary, ExitCode: code})
			})
		},
	}
}

// splitLaunchArgs separates the executable from the process arguments
// given after --.
func splitLaunchArgs(args []string, dash int) (string, []string, error) {
	before, after := args, []string(nil)
	if dash >= 0 {
		before, after = args[:dash], args[dash:]
	}
	if len(before) > 1 {
		return "", nil, errors.Newf(errors.ErrInvalidInput,
			"expected at most one executable, got %d; pass process arguments after --", len(before))
	}
	name := ""
	if len(before) == 1 {
		name = before[0]
	}
	return name, after, nil
}

func newSettingsCmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:     "settings [name] [value]",
		Short:   MsgSettingsShort,
		Long:    MsgSettingsLong,
		GroupID: "misc",
		Args:    cobra.MaximumNArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(cmd, opts, func(inst *instance.Instance, r output.Renderer) error {
				views := settingViews(inst)
				if len(args) == 0 {
					return r.RenderResult(views)
				}

				view, ok := findSetting(views, args[0])
				if !ok {
					return errors.Newf(errors.ErrSettingUnknown, "unknown setting %q", args[0]).
						WithDetail("setting", args[0])
				}
				if len(args) == 1 {
					return r.RenderResult([]output.Setting{view})
				}

				if err := inst.SetPluginSetting(game.PluginName, view.Name, args[1]); err != nil {
					return err
				}
				value := inst.PluginSetting(game.PluginName, view.Name)
				return r.RenderMessage(fmt.Sprintf(MsgSettingSet, view.Name, value))
			})
		},
	}
}

func settingViews(inst *instance.Instance) []output.Setting {
	var views []output.Setting
	for _, s := range inst.Settings().Declared(game.PluginName) {
		views = append(views, output.Setting{
			Name:        s.Name,
			Description: s.Description,
			Value:       inst.PluginSetting(game.PluginName, s.Name),
			Default:     s.Default,
		})
	}
	return views
}

func findSetting(views []output.Setting, name string) (output.Setting, bool) {
	for _, v := range views {
		if strings.EqualFold(v.Name, name) {
			return v, true
		}
	}
	return output.Setting{}, false
}

func newExecutablesCmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:     "executables",
		Short:   MsgExecutablesShort,
		GroupID: "misc",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(cmd, opts, func(inst *instance.Instance, r output.Renderer) error {
				return r.RenderResult(&output.Executables{
					GameDir:     inst.Paths().GameDir(),
					Executables: game.Executables(),
					ForcedLoads: game.ExecutableForcedLoads(),
				})
			})
		},
	}
}

func newVersionCmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:     "version",
		Short:   MsgVersionShort,
		GroupID: "misc",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			r, err := renderer(cmd, opts)
			if err != nil {
				return err
			}
			return r.RenderResult(&output.Version{
				Version: version.Version,
				Commit:  version.Commit,
				Date:    version.Date,
			})
		},
	}
}

func newCompletionCmd() *cobra.Command {
	return &cobra.Command{
		Use:                   "completion [bash|zsh|fish|powershell]",
		Short:                 MsgCompletionShort,
		Long:                  MsgCompletionLong,
		DisableFlagsInUseLine: true,
		ValidArgs:             []string{"bash", "zsh", "fish", "powershell"},
		Args:                  cobra.MatchAll(cobra.ExactArgs(1), cobra.OnlyValidArgs),
		GroupID:               "misc",
		RunE: func(cmd *cobra.Command, args []string) error {
			switch args[0] {
			case "bash":
				return cmd.Root().GenBashCompletion(os.Stdout)
			case "zsh":
				return cmd.Root().GenZshCompletion(os.Stdout)
			case "fish":
				return cmd.Root().GenFishCompletion(os.Stdout, true)
			case "powershell":
				return cmd.Root().GenPowerShellCompletionWithDesc(os.Stdout)
			}
			return nil
		},
	}
}
