package loader

import (
	"github.com/arthur-debert/apploader/pkg/errors"
	"github.com/arthur-debert/apploader/pkg/types"
)

// SelectTitle picks the metadata of applicationID from apps. Id 0 selects
// the first application in enumeration order.
func SelectTitle(apps *types.ApplicationMap, applicationID uint64) (*types.ContentMetaData, error) {
	if applicationID == 0 {
		meta, ok := apps.First()
		if !ok {
			return nil, errors.New(errors.ErrNotFound, "container holds no application")
		}
		return meta, nil
	}

	meta, ok := apps.Get(applicationID)
	if !ok {
		return nil, errors.Newf(errors.ErrNotFound, "no metadata for application %016X", applicationID)
	}
	return meta, nil
}

// OpenTitle opens the program and control archives of meta at the
// configured persistence index. A missing reference yields a nil archive.
func (l *Loader) OpenTitle(c types.Container, meta *types.ContentMetaData, ks types.KeySet) (program, control types.Archive, err error) {
	program, err = l.openContent(c, meta, types.ContentTypeProgram, ks)
	if err != nil {
		return nil, nil, err
	}

	control, err = l.openContent(c, meta, types.ContentTypeControl, ks)
	if err != nil {
		closeArchive(program)
		return nil, nil, err
	}

	return program, control, nil
}

func (l *Loader) openContent(c types.Container, meta *types.ContentMetaData, t types.ContentType, ks types.KeySet) (types.Archive, error) {
	loc, ok := meta.Locator(t, l.opts.PersistenceIndex)
	if !ok {
		return nil, nil
	}

	archive, err := l.openArchive(c, loc.Path, ks)
	if err != nil {
		return nil, errors.Wrapf(err, errors.ErrFileAccess, "failed to open %s archive %s", t, loc.Path)
	}
	return archive, nil
}
