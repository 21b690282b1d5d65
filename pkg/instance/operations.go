package instance

import (
	"context"
	stderrors "errors"
	"os"
	"os/exec"
	"path/filepath"

	"github.com/arthur-debert/zoimods/pkg/errors"
	"github.com/arthur-debert/zoimods/pkg/game"
	"github.com/arthur-debert/zoimods/pkg/logging"
	"github.com/arthur-debert/zoimods/pkg/modtree"
	"github.com/arthur-debert/zoimods/pkg/paths"
	"github.com/arthur-debert/zoimods/pkg/symlinks"
	"github.com/arthur-debert/zoimods/pkg/types"
)

// CheckResult is the verdict for one mod folder.
type CheckResult struct {
	Dir     string        `json:"dir" yaml:"dir"`
	Verdict types.Verdict `json:"verdict" yaml:"verdict"`
	Paths   []string      `json:"paths" yaml:"paths"`
}

// FixResult describes a fix run.
type FixResult struct {
	Dir     string           `json:"dir" yaml:"dir"`
	Before  types.Verdict    `json:"before" yaml:"before"`
	After   types.Verdict    `json:"after" yaml:"after"`
	Changes []modtree.Change `json:"changes" yaml:"changes"`
	Applied bool             `json:"applied" yaml:"applied"`
}

// ModDir resolves a check or fix argument: an existing folder is used as
// is, anything else is looked up as a mod name.
func (i *Instance) ModDir(arg string) string {
	if info, err := i.fs.Stat(arg); err == nil && info.IsDir() {
		return arg
	}
	return i.paths.ModPath(arg)
}

// Check classifies the folder dir.
func (i *Instance) Check(dir string) (*CheckResult, error) {
	tree, err := modtree.Load(i.fs, dir)
	if err != nil {
		return nil, err
	}
	return &CheckResult{
		Dir:     dir,
		Verdict: i.plugin.Checker().DataLooksValid(tree),
		Paths:   tree.Paths(),
	}, nil
}

// Fix repairs the layout of dir. With dryRun the changes are computed but
// nothing on disk is touched. Folders that are already valid or cannot be
// fixed are left alone.
func (i *Instance) Fix(dir string, dryRun bool) (*FixResult, error) {
	logger := i.logger.With().Str("dir", dir).Bool("dry_run", dryRun).Logger()
	defer logging.LogOperationStart(logger, "fix")()

	tree, err := modtree.Load(i.fs, dir)
	if err != nil {
		return nil, err
	}
	chk := i.plugin.Checker()
	result := &FixResult{Dir: dir, Before: chk.DataLooksValid(tree), Changes: []modtree.Change{}}
	if result.Before != types.Fixable {
		result.After = result.Before
		return result, nil
	}

	if _, err := chk.Fix(tree); err != nil {
		return nil, err
	}
	result.After = chk.DataLooksValid(tree)
	result.Changes = tree.Changes()
	if dryRun || len(result.Changes) == 0 {
		return result, nil
	}

	if err := tree.Apply(i.fs, dir); err != nil {
		return nil, err
	}
	result.Applied = true
	logger.Info().Int("changes", len(result.Changes)).Str("verdict", result.After.String()).Msg("Fixed mod layout")
	return result, nil
}

// Link creates every link of the active mods, regardless of the deploy on
// launch setting.
func (i *Instance) Link() *symlinks.Report {
	rec := i.plugin.Reconciler()
	report := rec.LinkLoaderFiles()
	report.Merge(rec.LinkAll())
	return report
}

// Unlink removes every link Link creates.
func (i *Instance) Unlink() *symlinks.Report {
	rec := i.plugin.Reconciler()
	report := rec.UnlinkLoaderFiles()
	report.Merge(rec.UnlinkAll())
	return report
}

// Status reports the state of every link.
func (i *Instance) Status() []symlinks.LinkStatus {
	return i.plugin.Reconciler().Status()
}

// SetModActive enables or disables a mod, runs the state change hooks and
// saves the profile. Mods present in the mods folder but missing from the
// profile are added first.
func (i *Instance) SetModActive(name string, active bool) error {
	if err := paths.ValidateModName(name); err != nil {
		return err
	}
	if _, err := i.profile.Discover(); err != nil {
		return err
	}
	if err := i.profile.SetActive(name, active); err != nil {
		return err
	}
	return i.profile.Save()
}

// ResolveExecutable turns a launch argument into a binary path. An empty
// name is the game binary; a known executable title or binary name is
// resolved under the game folder; anything else is used as a path.
func (i *Instance) ResolveExecutable(name string) (string, error) {
	if name == "" {
		name = game.GameBinary
	}
	exe, known := game.FindExecutable(name)
	if !known {
		return name, nil
	}
	if i.paths.GameDir() == "" {
		return "", errors.New(errors.ErrInvalidInput, "game.dir is not configured").
			WithDetail("executable", exe.Title)
	}
	return exe.Path(i.paths.GameDir()), nil
}

// Launch runs the executable with the launch hooks around it and returns
// its exit code. A hook returning false cancels the launch.
func (i *Instance) Launch(ctx context.Context, name string, args []string) (int, error) {
	binary, err := i.ResolveExecutable(name)
	if err != nil {
		return -1, err
	}
	logger := i.logger.With().Str("binary", binary).Logger()

	for _, hook := range i.aboutToRun {
		if !hook(binary) {
			logger.Warn().Msg("Launch cancelled by hook")
			return -1, errors.New(errors.ErrProcessLaunch, "launch cancelled").WithDetail("binary", binary)
		}
	}

	cmd := exec.CommandContext(ctx, binary, args...)
	cmd.Dir = filepath.Dir(binary)
	cmd.Stdin = os.Stdin
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr

	logger.Info().Strs("args", args).Msg("Launching")
	exitCode := 0
	runErr := cmd.Run()
	if runErr != nil {
		var exitErr *exec.ExitError
		if stderrors.As(runErr, &exitErr) {
			exitCode = exitErr.ExitCode()
			runErr = nil
		} else {
			exitCode = -1
		}
	}

	for _, hook := range i.finishedRun {
		hook(binary, exitCode)
	}
	if runErr != nil {
		return exitCode, errors.Wrapf(runErr, errors.ErrProcessLaunch, "cannot run %s", binary)
	}
	return exitCode, nil
}
