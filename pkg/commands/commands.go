// Package commands is the orchestration layer between the CLI and the core
// packages. Each command resolves packages or files from its options, calls
// the planner, executor, scanner or vault, and returns plain results for the
// output layer to render.
package commands

import (
	"path/filepath"

	"github.com/arthur-debert/slinky/pkg/config"
	"github.com/arthur-debert/slinky/pkg/errors"
	"github.com/arthur-debert/slinky/pkg/paths"
	"github.com/arthur-debert/slinky/pkg/types"
)

// PackageOptions selects packages for link, unlink and status.
type PackageOptions struct {
	// StowDir holds the packages
	StowDir string

	// TargetDir is where links go unless a package overrides it
	TargetDir string

	// Names selects packages; empty means Defaults, then everything
	Names []string

	// Defaults are used when Names is empty and All is false
	Defaults []string

	// All selects every package regardless of Defaults
	All bool
}

// PackageOptionsFrom fills PackageOptions from cfg.
func PackageOptionsFrom(cfg *config.Config, names []string, all bool) PackageOptions {
	return PackageOptions{
		StowDir:   cfg.StowDir,
		TargetDir: cfg.TargetDir,
		Names:     names,
		Defaults:  cfg.Packages,
		All:       all,
	}
}

// names returns the package names to select; nil means all packages.
func (o PackageOptions) names() []string {
	switch {
	case len(o.Names) > 0:
		return o.Names
	case o.All:
		return nil
	default:
		return o.Defaults
	}
}

// targetFor returns where pkg links to. A package target_dir wins; a
// relative one is taken from the default target.
func targetFor(pkg types.Package, defaultTarget string) string {
	t := pkg.Config.TargetDir
	if t == "" {
		return defaultTarget
	}
	t = paths.ExpandHome(t)
	if !filepath.IsAbs(t) {
		t = filepath.Join(defaultTarget, t)
	}
	return t
}

// requireSecrets fails when the secrets workflow is switched off.
func requireSecrets(cfg *config.Config) error {
	if !cfg.SecretsEnabled {
		return errors.New(errors.ErrInvalidInput, "secrets are disabled (secrets_enabled = false)")
	}
	return nil
}
