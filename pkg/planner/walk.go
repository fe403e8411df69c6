package planner

import (
	"io/fs"
	"path/filepath"
	"sort"

	"github.com/arthur-debert/slinky/pkg/errors"
	"github.com/arthur-debert/slinky/pkg/types"
)

// children lists the immediate entries of the package directory rel, in
// lexicographic order, with ignored entries removed.
func children(rc *types.RunContext, pkg types.Package, ig *Ignorer, rel string) ([]types.FileEntry, error) {
	dir := pkg.Path(rel)
	entries, err := rc.FS.ReadDir(dir)
	if err != nil {
		return nil, errors.PathError(err, "read", dir)
	}

	out := make([]types.FileEntry, 0, len(entries))
	for _, entry := range entries {
		childRel := filepath.Join(rel, entry.Name())
		if ig.Ignored(childRel) {
			rc.Logger.Trace().Str("path", childRel).Msg("Ignored")
			continue
		}
		out = append(out, types.FileEntry{RelPath: childRel, Kind: kindOf(entry.Type())})
	}

	sort.Slice(out, func(i, j int) bool {
		return out[i].RelPath < out[j].RelPath
	})
	return out, nil
}

func kindOf(mode fs.FileMode) types.NodeKind {
	switch {
	case mode&fs.ModeSymlink != 0:
		return types.NodeSymlink
	case mode.IsDir():
		return types.NodeDir
	default:
		return types.NodeFile
	}
}

// Walk returns every entry of the package depth-first in lexicographic
// order. Symlinks inside the package are leaves and are not followed.
func Walk(rc *types.RunContext, pkg types.Package) ([]types.FileEntry, error) {
	ig, err := LoadIgnorer(rc, pkg)
	if err != nil {
		return nil, err
	}

	var out []types.FileEntry
	var walk func(rel string) error
	walk = func(rel string) error {
		entries, err := children(rc, pkg, ig, rel)
		if err != nil {
			return err
		}
		for _, e := range entries {
			out = append(out, e)
			if e.Kind == types.NodeDir {
				if err := walk(e.RelPath); err != nil {
					return err
				}
			}
		}
		return nil
	}

	if err := walk(""); err != nil {
		return nil, err
	}
	return out, nil
}

// hasIgnored reports whether anything below the package directory rel is
// ignored. Such a directory cannot be folded without exposing those entries.
func hasIgnored(rc *types.RunContext, pkg types.Package, ig *Ignorer, rel string) (bool, error) {
	dir := pkg.Path(rel)
	entries, err := rc.FS.ReadDir(dir)
	if err != nil {
		return false, errors.PathError(err, "read", dir)
	}
	for _, entry := range entries {
		childRel := filepath.Join(rel, entry.Name())
		if ig.Ignored(childRel) {
			return true, nil
		}
		if entry.IsDir() {
			found, err := hasIgnored(rc, pkg, ig, childRel)
			if err != nil || found {
				return found, err
			}
		}
	}
	return false, nil
}
