package filesystem

import (
	"io"
	"io/fs"
)

// FS is the read-mostly filesystem surface used by the XDG database layer
type FS interface {
	Stat(name string) (fs.FileInfo, error)
	Open(name string) (io.ReadCloser, error)
	ReadFile(name string) ([]byte, error)
	ReadDir(name string) ([]fs.DirEntry, error)
	WriteFile(name string, data []byte, perm fs.FileMode) error
	MkdirAll(path string, perm fs.FileMode) error
}

// IsTraversableDir reports whether path is a directory with at least one
// search bit set
func IsTraversableDir(fsys FS, path string) bool {
	info, err := fsys.Stat(path)
	if err != nil {
		return false
	}
	return info.IsDir() && info.Mode().Perm()&0111 != 0
}

// IsReadableFile reports whether path is a regular file that can be opened
func IsReadableFile(fsys FS, path string) bool {
	info, err := fsys.Stat(path)
	if err != nil || !info.Mode().IsRegular() {
		return false
	}
	f, err := fsys.Open(path)
	if err != nil {
		return false
	}
	_ = f.Close()
	return true
}

// IsExecutableFile reports whether path is a regular file with an exec bit
func IsExecutableFile(fsys FS, path string) bool {
	info, err := fsys.Stat(path)
	if err != nil {
		return false
	}
	return info.Mode().IsRegular() && info.Mode().Perm()&0111 != 0
}
