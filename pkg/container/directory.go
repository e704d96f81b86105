package container

import (
	"os"
	"path"
	"path/filepath"
	"strings"

	"github.com/arthur-debert/apploader/pkg/errors"
	"github.com/arthur-debert/apploader/pkg/types"
	"github.com/gobwas/glob"
	"github.com/spf13/afero"
)

// Directory is a container backed by a directory tree
type Directory struct {
	fs   afero.Fs
	root string
}

// NewDirectory returns a container rooted at root
func NewDirectory(fs afero.Fs, root string) *Directory {
	return &Directory{fs: fs, root: filepath.Clean(root)}
}

// OpenDirectory checks that root is a directory and returns a container for it
func OpenDirectory(fs afero.Fs, root string) (*Directory, error) {
	info, err := fs.Stat(root)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errors.Wrapf(err, errors.ErrFileNotFound, "container %s not found", root)
		}
		return nil, errors.Wrapf(err, errors.ErrFileAccess, "failed to stat container %s", root)
	}
	if !info.IsDir() {
		return nil, errors.Newf(errors.ErrInvalidInput, "container %s is not a directory", root)
	}
	return NewDirectory(fs, root), nil
}

func (d *Directory) Path() string { return d.root }

// Enumerate walks the tree in lexical order and returns the files whose
// base name matches pattern. Names are slash-separated and relative to
// the root.
func (d *Directory) Enumerate(pattern string) ([]types.Entry, error) {
	g, err := glob.Compile(pattern)
	if err != nil {
		return nil, errors.Wrapf(err, errors.ErrInvalidInput, "failed to compile glob pattern %q", pattern)
	}

	var entries []types.Entry
	err = afero.Walk(d.fs, d.root, func(p string, info os.FileInfo, err error) error {
		if err != nil {
			return err
		}
		if info.IsDir() || !g.Match(info.Name()) {
			return nil
		}
		rel, err := filepath.Rel(d.root, p)
		if err != nil {
			return err
		}
		entries = append(entries, types.Entry{Name: filepath.ToSlash(rel), Size: info.Size()})
		return nil
	})
	if err != nil {
		return nil, errors.Wrapf(err, errors.ErrFileAccess, "failed to enumerate %s", d.root)
	}

	return entries, nil
}

// Open opens an entry read-only. Names escaping the root are rejected.
func (d *Directory) Open(name string) (types.File, error) {
	clean := path.Clean(strings.TrimPrefix(filepath.ToSlash(name), "/"))
	if clean == ".." || strings.HasPrefix(clean, "../") {
		return nil, errors.Newf(errors.ErrInvalidInput, "entry %q escapes container", name)
	}

	f, err := d.fs.Open(filepath.Join(d.root, filepath.FromSlash(clean)))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errors.Wrapf(err, errors.ErrFileNotFound, "entry %s not found in %s", name, d.root)
		}
		return nil, errors.Wrapf(err, errors.ErrFileAccess, "failed to open %s in %s", name, d.root)
	}
	return f, nil
}

// Close is a no-op; entries are closed individually
func (d *Directory) Close() error { return nil }
