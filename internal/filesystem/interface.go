package filesystem

import (
	"io/fs"
)

// FileSystem is the file access used by workspace discovery and the
// profile store, so both run against an in-memory tree in tests.
type FileSystem interface {
	// Files
	ReadFile(path string) ([]byte, error)
	WriteFile(path string, data []byte, perm fs.FileMode) error
	Rename(oldPath, newPath string) error
	Remove(path string) error

	// Directories
	ReadDir(path string) ([]fs.DirEntry, error)
	MkdirAll(path string, perm fs.FileMode) error

	// Lookup
	Stat(path string) (fs.FileInfo, error)
	Exists(path string) bool
	Getwd() (string, error)

	WalkDir(root string, fn fs.WalkDirFunc) error
}
