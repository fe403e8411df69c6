package types

import (
	"path/filepath"
)

// PackageConfigFile is the optional per-package configuration file.
const PackageConfigFile = ".slinky.toml"

// Package represents a named directory of related configuration files that
// is projected into a target directory as a unit.
type Package struct {
	// Name is the directory name, unique within a stow directory
	Name string

	// Root is the absolute path to the package directory
	Root string

	// Config holds the overrides from the package's .slinky.toml, if any
	Config PackageConfig
}

// PackageConfig is the per-package configuration read from .slinky.toml.
type PackageConfig struct {
	// Ignore lists extra patterns excluded from linking
	Ignore []string `toml:"ignore"`

	// TargetDir overrides the target directory for this package
	TargetDir string `toml:"target_dir"`
}

// Path returns the absolute path of a package-relative path.
func (p Package) Path(rel string) string {
	return filepath.Join(p.Root, rel)
}

// NodeKind is the kind of node found while walking a package tree.
type NodeKind int

const (
	NodeFile NodeKind = iota
	NodeDir
	NodeSymlink
)

func (k NodeKind) String() string {
	switch k {
	case NodeFile:
		return "file"
	case NodeDir:
		return "directory"
	case NodeSymlink:
		return "symlink"
	default:
		return "unknown"
	}
}

// FileEntry is a package-relative path paired with its node kind.
type FileEntry struct {
	RelPath string
	Kind    NodeKind
}
