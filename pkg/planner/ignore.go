package planner

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/arthur-debert/slinky/pkg/errors"
	"github.com/arthur-debert/slinky/pkg/types"
)

// LocalIgnoreFile lists per-package ignore patterns, one per line
const LocalIgnoreFile = ".stow-local-ignore"

// controlFiles live at a package root and are never linked
var controlFiles = []string{LocalIgnoreFile, types.PackageConfigFile, ".slinkyignore"}

// Ignorer decides which package entries take no part in linking.
//
// A pattern containing a glob metacharacter is matched against both the
// relative path and the base name. Any other pattern matches the relative
// path or the base name exactly.
type Ignorer struct {
	patterns []string
}

// NewIgnorer builds an Ignorer from patterns, dropping blanks and comments.
func NewIgnorer(patterns ...string) *Ignorer {
	ig := &Ignorer{}
	for _, p := range patterns {
		p = strings.Trim(strings.TrimSpace(p), "/")
		if p == "" || strings.HasPrefix(p, "#") {
			continue
		}
		ig.patterns = append(ig.patterns, p)
	}
	return ig
}

// LoadIgnorer gathers the global patterns from rc, the package's
// .slinky.toml patterns and its .stow-local-ignore file.
func LoadIgnorer(rc *types.RunContext, pkg types.Package) (*Ignorer, error) {
	patterns := append([]string{}, rc.Ignore...)
	patterns = append(patterns, pkg.Config.Ignore...)

	path := pkg.Path(LocalIgnoreFile)
	data, err := rc.FS.ReadFile(path)
	switch {
	case err == nil:
		patterns = append(patterns, strings.Split(string(data), "\n")...)
	case !os.IsNotExist(err):
		return nil, errors.PathError(err, "read", path)
	}

	return NewIgnorer(patterns...), nil
}

// Ignored reports whether the package-relative path rel is excluded.
func (ig *Ignorer) Ignored(rel string) bool {
	rel = filepath.ToSlash(rel)
	base := filepath.Base(rel)

	if !strings.Contains(rel, "/") {
		for _, name := range controlFiles {
			if rel == name {
				return true
			}
		}
	}

	for _, p := range ig.patterns {
		if strings.ContainsAny(p, "*?[") {
			if ok, _ := filepath.Match(p, rel); ok {
				return true
			}
			if ok, _ := filepath.Match(p, base); ok {
				return true
			}
			continue
		}
		if rel == p || base == p {
			return true
		}
	}
	return false
}
