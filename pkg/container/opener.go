package container

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/arthur-debert/apploader/pkg/errors"
	"github.com/arthur-debert/apploader/pkg/registry"
	"github.com/arthur-debert/apploader/pkg/types"
	"github.com/spf13/afero"
)

// OpenFunc opens a container file of one format
type OpenFunc func(fs afero.Fs, path string) (types.Container, error)

// Opener opens containers by path. Directories open as Directory; files
// are dispatched on their lowercased extension.
type Opener struct {
	fs      afero.Fs
	formats registry.Registry[string, OpenFunc]
}

// NewOpener creates an opener without any file formats
func NewOpener(fs afero.Fs) *Opener {
	return &Opener{
		fs:      fs,
		formats: registry.New[string, OpenFunc](),
	}
}

// RegisterFormat binds a file extension such as ".xci" to an OpenFunc
func (o *Opener) RegisterFormat(ext string, fn OpenFunc) error {
	ext = strings.ToLower(ext)
	if !strings.HasPrefix(ext, ".") {
		return errors.Newf(errors.ErrInvalidInput, "extension %q must start with a dot", ext)
	}
	return o.formats.Register(ext, fn)
}

// Formats lists the registered extensions
func (o *Opener) Formats() []string {
	return o.formats.List()
}

// OpenContainer implements types.ContainerOpener
func (o *Opener) OpenContainer(path string) (types.Container, error) {
	info, err := o.fs.Stat(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errors.Wrapf(err, errors.ErrFileNotFound, "container %s not found", path)
		}
		return nil, errors.Wrapf(err, errors.ErrFileAccess, "failed to stat container %s", path)
	}
	if info.IsDir() {
		return NewDirectory(o.fs, path), nil
	}

	ext := strings.ToLower(filepath.Ext(path))
	open, err := o.formats.Get(ext)
	if err != nil {
		return nil, errors.Newf(errors.ErrUnsupportedFormat, "no container format registered for %q", ext).
			WithDetail("path", path)
	}
	return open(o.fs, path)
}
