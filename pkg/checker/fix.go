package checker

import (
	"path"
	"strings"

	"github.com/arthur-debert/zoimods/pkg/categories"
	"github.com/arthur-debert/zoimods/pkg/errors"
	"github.com/arthur-debert/zoimods/pkg/logging"
	"github.com/arthur-debert/zoimods/pkg/types"
	"github.com/rs/zerolog"
)

// Fix repairs tree in place and returns it. The base fix runs first, then
// the passes below in a fixed order. A move that collides with an existing
// file skips that entry with a warning. Any other mutation error aborts the
// remaining passes and is returned with the partially fixed tree.
func (c *Checker) Fix(tree types.Tree) (types.Tree, error) {
	logger := c.level.Logger("checker.fix")
	done := logging.LogOperationStart(logger, "fix")
	defer done()

	tree, err := c.base.Fix(tree)
	if err != nil {
		return tree, err
	}

	passes := []struct {
		name string
		run  func(zerolog.Logger, types.Tree) error
	}{
		{"unwrap", c.unwrapBlueClient},
		{"relocate", c.relocateIdentifiers},
		{"flatten", c.flattenPackages},
	}
	for _, p := range passes {
		if err := p.run(logger, tree); err != nil {
			logger.Error().Err(err).Str("pass", p.name).Msg("Fix pass failed")
			return tree, err
		}
	}
	for _, cat := range categories.All() {
		if err := c.consolidate(logger, tree, cat); err != nil {
			logger.Error().Err(err).Str("category", cat.String()).Msg("Fix pass failed")
			return tree, err
		}
	}
	return tree, nil
}

// unwrapBlueClient turns Wrapper/BlueClient/... into BlueClient/... and
// drops the wrapper.
func (c *Checker) unwrapBlueClient(logger zerolog.Logger, tree types.Tree) error {
	wrapper, ok := singleDir(tree)
	if !ok || strings.EqualFold(wrapper.Name(), BlueClientDir) {
		return nil
	}
	inner := findBlueClient(wrapper)
	if inner == nil {
		return nil
	}

	logger.Info().
		Str("wrapper", wrapper.Name()).
		Str("folder", inner.Name()).
		Msg("Flattening wrapper folder")
	if err := tree.Move(inner, inner.Name()); err != nil {
		return err
	}
	return tree.Remove(wrapper)
}

// relocateIdentifiers moves content identifier folders found under any top
// level folder to <root>/<id> of the category their files belong to.
func (c *Checker) relocateIdentifiers(logger zerolog.Logger, tree types.Tree) error {
	for _, outer := range subTrees(tree) {
		fixedAny := false
		for _, e := range outer.Entries() {
			sub, ok := types.AsTree(e)
			if !ok || !categories.IsIdentifier(e.Name()) {
				continue
			}
			cat, ok := categories.MarkerCategory(fileNames(sub))
			if !ok {
				continue
			}
			if strings.EqualFold(outer.Name(), cat.Root()) {
				continue
			}

			target := path.Join(cat.Root(), e.Name())
			logger.Info().
				Str("from", e.Path()).
				Str("to", target).
				Str("category", cat.String()).
				Msg("Moving content folder to its category")
			if err := tree.Move(e, target); err != nil {
				if skipConflict(logger, err, e.Path(), target) {
					continue
				}
				return err
			}
			fixedAny = true
		}
		if fixedAny && outer.Len() == 0 {
			logger.Info().Str("folder", outer.Name()).Msg("Removing empty wrapper folder")
			if err := tree.Remove(outer); err != nil {
				return err
			}
		}
	}
	return nil
}

// flattenPackages moves engine package files out of a single wrapping
// folder into the mods package directory.
func (c *Checker) flattenPackages(logger zerolog.Logger, tree types.Tree) error {
	if c.DataLooksValid(tree) != types.Fixable {
		return nil
	}
	folder, ok := singleDir(tree)
	if !ok || isProtected(folder.Name()) || len(files(folder)) == 0 {
		return nil
	}

	var moved []string
	for _, f := range files(folder) {
		if !isPackage(f.Name()) {
			continue
		}
		if err := tree.Move(f, PaksDir+"/"); err != nil {
			if skipConflict(logger, err, f.Path(), PaksDir) {
				continue
			}
			return err
		}
		moved = append(moved, f.Name())
	}
	if len(moved) == 0 {
		logger.Debug().Str("folder", folder.Name()).Msg("No package files to move")
		return nil
	}
	logger.Info().Strs("files", moved).Str("to", PaksDir).Msg("Moved package files")

	if len(files(folder)) == 0 {
		warnDropped(logger, folder)
		logger.Info().Str("folder", folder.Name()).Msg("Removing empty folder")
		return tree.Remove(folder)
	}
	return nil
}

// consolidate moves the files of every top level folder holding cat's
// marker into <root>/<folder>/. Printer folders holding a single model
// take the model's name first. Category roots and BlueClient are never
// renamed or removed.
func (c *Checker) consolidate(logger zerolog.Logger, tree types.Tree, cat categories.Category) error {
	var candidates []types.Tree
	for _, dir := range subTrees(tree) {
		if hasFile(dir, cat.IsMarker) {
			candidates = append(candidates, dir)
		}
	}

	for _, dir := range candidates {
		name := dir.Name()
		protected := isProtected(name)
		fs := files(dir)

		if cat.RenamesToMarker() {
			if stem, ok := singleMarkerStem(fs, cat); ok && stem != name && !isProtected(stem) {
				if protected {
					name = stem
				} else {
					logger.Info().Str("from", name).Str("to", stem).Msg("Renaming content folder")
					err := tree.Move(dir, stem)
					switch {
					case err == nil:
						// a rename onto an existing folder merges into it
						if renamed, ok := types.AsTree(tree.Find(stem)); ok {
							dir = renamed
						}
						name = stem
					case !skipConflict(logger, err, dir.Path(), stem):
						return err
					}
				}
			}
		}

		target := path.Join(cat.Root(), name)
		logger.Info().
			Str("folder", dir.Name()).
			Str("to", target).
			Str("category", cat.String()).
			Msg("Fixing content folder")
		for _, f := range fs {
			if err := tree.Move(f, target+"/"); err != nil {
				if skipConflict(logger, err, f.Path(), target) {
					continue
				}
				return err
			}
		}

		if !protected && len(files(dir)) == 0 {
			warnDropped(logger, dir)
			logger.Info().Str("folder", dir.Name()).Msg("Removing empty folder")
			if err := tree.Remove(dir); err != nil {
				return err
			}
		}
	}
	return nil
}

// skipConflict logs and swallows a move that collides with an existing
// file. Other errors are left to the caller.
func skipConflict(logger zerolog.Logger, err error, from, to string) bool {
	if !errors.IsErrorCode(err, errors.ErrTreeConflict) {
		return false
	}
	logger.Warn().Err(err).Str("from", from).Str("to", to).Msg("Skipping conflicting entry")
	return true
}

// warnDropped logs the subfolders that go away with dir.
func warnDropped(logger zerolog.Logger, dir types.Tree) {
	var dropped []string
	for _, sub := range subTrees(dir) {
		dropped = append(dropped, sub.Path())
	}
	if len(dropped) > 0 {
		logger.Warn().Str("folder", dir.Path()).Strs("dropped", dropped).Msg("Removing folder with subfolders")
	}
}

func singleMarkerStem(fs []types.Entry, cat categories.Category) (string, bool) {
	var stem string
	count := 0
	for _, f := range fs {
		if cat.IsMarker(f.Name()) {
			count++
			stem = strings.TrimSuffix(f.Name(), path.Ext(f.Name()))
		}
	}
	return stem, count == 1 && stem != ""
}

func isProtected(name string) bool {
	return categories.IsRoot(name) || strings.EqualFold(name, BlueClientDir)
}
