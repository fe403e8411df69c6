package types

import (
	"io/fs"
)

// FS is the filesystem abstraction used by the resolver, planner, executor
// and vault. All mutations in slinky go through it.
type FS interface {
	// File operations
	Stat(name string) (fs.FileInfo, error)
	Lstat(name string) (fs.FileInfo, error)
	ReadFile(name string) ([]byte, error)

	// AtomicWrite replaces name with data via a temp file and rename, so
	// readers never observe a partial write. A symlink at name is followed
	// and survives the write.
	AtomicWrite(name string, data []byte, perm fs.FileMode) error

	// Directory operations
	ReadDir(name string) ([]fs.DirEntry, error)
	MkdirAll(path string, perm fs.FileMode) error

	// Symlink operations
	Symlink(oldname, newname string) error
	Readlink(name string) (string, error)

	// Remove deletes a file, a symlink or an empty directory.
	Remove(name string) error
}
