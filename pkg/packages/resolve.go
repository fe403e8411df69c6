package packages

import (
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/arthur-debert/slinky/pkg/config"
	"github.com/arthur-debert/slinky/pkg/errors"
	"github.com/arthur-debert/slinky/pkg/paths"
	"github.com/arthur-debert/slinky/pkg/types"
)

// IgnoreFile opts a package out of resolution
const IgnoreFile = ".slinkyignore"

// Resolve returns the packages in stowDir sorted by name.
func Resolve(rc *types.RunContext, stowDir string) ([]types.Package, error) {
	logger := rc.Logger.With().Str("component", "packages").Logger()

	root, err := paths.Normalize(stowDir)
	if err != nil {
		return nil, err
	}
	logger.Trace().Str("root", root).Msg("Resolving packages")

	info, err := rc.FS.Stat(root)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errors.Wrap(err, errors.ErrNotFound, "stow directory does not exist").
				WithDetail("path", root)
		}
		return nil, errors.PathError(err, "stat", root)
	}
	if !info.IsDir() {
		return nil, errors.New(errors.ErrNotFound, "stow directory is not a directory").
			WithDetail("path", root)
	}

	entries, err := rc.FS.ReadDir(root)
	if err != nil {
		return nil, errors.PathError(err, "read", root)
	}

	var packages []types.Package
	for _, entry := range entries {
		name := entry.Name()
		if strings.HasPrefix(name, ".") {
			logger.Trace().Str("name", name).Msg("Skipping hidden entry")
			continue
		}

		dir := filepath.Join(root, name)
		if !isPackageDir(rc.FS, entry, dir) {
			continue
		}

		if _, err := rc.FS.Lstat(filepath.Join(dir, IgnoreFile)); err == nil {
			logger.Debug().Str("package", name).Msg("Package skipped due to " + IgnoreFile)
			continue
		}

		pkgConfig, err := config.LoadPackageConfig(rc.FS, dir)
		if err != nil {
			// A broken .slinky.toml should not hide the other packages
			logger.Warn().Err(err).Str("package", name).Msg("Failed to load package config, skipping")
			continue
		}

		packages = append(packages, types.Package{Name: name, Root: dir, Config: pkgConfig})
		logger.Trace().Str("package", name).Str("root", dir).Msg("Found package")
	}

	sort.Slice(packages, func(i, j int) bool {
		return packages[i].Name < packages[j].Name
	})

	logger.Debug().Int("count", len(packages)).Msg("Resolved packages")
	return packages, nil
}

// isPackageDir accepts directories and symlinks that resolve to directories.
func isPackageDir(fs types.FS, entry os.DirEntry, path string) bool {
	if entry.IsDir() {
		return true
	}
	if entry.Type()&os.ModeSymlink == 0 {
		return false
	}
	info, err := fs.Stat(path)
	return err == nil && info.IsDir()
}
