// Package planner diffs a package tree against a target directory and
// produces an ordered, typed plan of link operations.
//
// Linking walks the package depth-first in lexicographic order. A package
// directory whose target counterpart does not exist is folded into a single
// symlink; a target directory that already exists as a real directory is
// unfolded and planned per entry. Anything in the way that is not the
// expected symlink is reported as a conflict, never resolved.
//
// Unlinking is the inverse: symlinks in the target that point into the
// package are removed, real directories are descended into and everything
// else is left alone.
//
// Planning only reads the filesystem; the executor package applies plans.
package planner
