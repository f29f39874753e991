package filesystem

import (
	"io"
	"io/fs"

	"github.com/spf13/afero"
)

// aferoFS adapts an afero.Fs to FS. Both the real and the in-memory
// filesystem go through it.
type aferoFS struct {
	base afero.Fs
}

// NewOS returns the host filesystem
func NewOS() FS {
	return NewAferoFS(afero.NewOsFs())
}

// NewMemory returns an empty in-memory tree
func NewMemory() FS {
	return NewAferoFS(afero.NewMemMapFs())
}

// NewAferoFS wraps any afero filesystem, e.g. a read-only or base-path view
func NewAferoFS(base afero.Fs) FS {
	return &aferoFS{base: base}
}

func (a *aferoFS) Stat(name string) (fs.FileInfo, error) {
	return a.base.Stat(name)
}

func (a *aferoFS) Open(name string) (io.ReadCloser, error) {
	return a.base.Open(name)
}

// ReadFile refuses directories on every backend; MemMapFs would return an
// empty read otherwise
func (a *aferoFS) ReadFile(name string) ([]byte, error) {
	info, err := a.base.Stat(name)
	if err != nil {
		return nil, err
	}
	if info.IsDir() {
		return nil, &fs.PathError{Op: "read", Path: name, Err: fs.ErrInvalid}
	}
	return afero.ReadFile(a.base, name)
}

// ReadDir lists name sorted by file name
func (a *aferoFS) ReadDir(name string) ([]fs.DirEntry, error) {
	infos, err := afero.ReadDir(a.base, name)
	if err != nil {
		return nil, err
	}
	entries := make([]fs.DirEntry, 0, len(infos))
	for _, info := range infos {
		entries = append(entries, fs.FileInfoToDirEntry(info))
	}
	return entries, nil
}

func (a *aferoFS) WriteFile(name string, data []byte, perm fs.FileMode) error {
	return afero.WriteFile(a.base, name, data, perm)
}

func (a *aferoFS) MkdirAll(path string, perm fs.FileMode) error {
	return a.base.MkdirAll(path, perm)
}
