package testutil

import (
	"io/fs"

	"github.com/arthur-debert/slinky/pkg/types"
)

// FailingFS wraps a types.FS and fails mutations on selected paths. It stands
// in for permission errors, which root-run test environments cannot produce.
type FailingFS struct {
	types.FS

	// Fail maps a path to the error returned by any mutation touching it
	Fail map[string]error
}

// NewFailingFS wraps base with an empty failure table.
func NewFailingFS(base types.FS) *FailingFS {
	return &FailingFS{FS: base, Fail: make(map[string]error)}
}

func (f *FailingFS) Symlink(oldname, newname string) error {
	if err, ok := f.Fail[newname]; ok {
		return err
	}
	return f.FS.Symlink(oldname, newname)
}

func (f *FailingFS) Remove(name string) error {
	if err, ok := f.Fail[name]; ok {
		return err
	}
	return f.FS.Remove(name)
}

func (f *FailingFS) MkdirAll(path string, perm fs.FileMode) error {
	if err, ok := f.Fail[path]; ok {
		return err
	}
	return f.FS.MkdirAll(path, perm)
}

func (f *FailingFS) AtomicWrite(name string, data []byte, perm fs.FileMode) error {
	if err, ok := f.Fail[name]; ok {
		return err
	}
	return f.FS.AtomicWrite(name, data, perm)
}
