// Package packages enumerates the packages of a stow directory.
//
// A package is any immediate, non-hidden subdirectory of the stow directory,
// or a top-level symlink that resolves to a directory. Packages are not
// nested: only one level is inspected. A package holding a .slinkyignore
// file is skipped.
package packages
