package filesystem

import (
	"io/fs"
)

// FS is the subset of filesystem operations the loader relies on
type FS interface {
	Stat(name string) (fs.FileInfo, error)
	ReadFile(name string) ([]byte, error)
	WriteFile(name string, data []byte, perm fs.FileMode) error
	MkdirAll(path string, perm fs.FileMode) error
}

// Exists reports whether name can be stat'ed. Permission and I/O errors
// count as missing.
func Exists(fsys FS, name string) bool {
	_, err := fsys.Stat(name)
	return err == nil
}
