package loader

import (
	"github.com/arthur-debert/apploader/pkg/errors"
	"github.com/arthur-debert/apploader/pkg/keys"
	"github.com/arthur-debert/apploader/pkg/logging"
	"github.com/arthur-debert/apploader/pkg/types"
)

// metaResult is the outcome of reading one meta archive
type metaResult struct {
	meta *types.ContentMeta
	err  error
}

// ScanContentMeta imports the tickets of c into ks, then reads every meta
// archive of c and maps the records of type metaType by application id.
// Unreadable entries are skipped and the first record per id wins. An
// empty map is not an error.
func (l *Loader) ScanContentMeta(c types.Container, metaType types.MetaType, ks types.KeySet) (*types.ApplicationMap, error) {
	logger := logging.GetLogger("loader")

	if _, err := keys.ImportTickets(c, ks, l.opts.TicketPattern); err != nil {
		return nil, err
	}

	entries, err := c.Enumerate(l.opts.MetaPattern)
	if err != nil {
		return nil, errors.Wrapf(err, errors.ErrFileAccess, "failed to enumerate metadata in %s", c.Path())
	}

	apps := types.NewApplicationMap()
	for _, entry := range entries {
		res := l.readContentMeta(c, entry.Name, ks)
		if res.err != nil {
			logger.Warn().Err(res.err).Str("entry", entry.Name).Msg("Skipping corrupt metadata entry")
			continue
		}
		if res.meta.Type != metaType {
			logger.Trace().Str("entry", entry.Name).Stringer("type", res.meta.Type).Msg("Skipping metadata of other type")
			continue
		}
		if !apps.Add(types.NewContentMetaData(res.meta)) {
			logger.Debug().
				Str("entry", entry.Name).
				Uint64("applicationId", res.meta.ApplicationID).
				Msg("Dropping duplicate metadata for application")
		}
	}

	logger.Debug().Int("applications", apps.Len()).Int("entries", len(entries)).Msg("Scanned metadata")
	return apps, nil
}

func (l *Loader) readContentMeta(c types.Container, name string, ks types.KeySet) metaResult {
	archive, err := l.openArchive(c, name, ks)
	if err != nil {
		return metaResult{err: errors.Wrap(err, errors.ErrCorruptEntry, "failed to open metadata archive").
			WithDetail("entry", name)}
	}
	defer closeArchive(archive)

	meta, err := archive.ContentMeta(l.opts.IntegrityCheckLevel)
	if err != nil {
		return metaResult{err: errors.Wrap(err, errors.ErrCorruptEntry, "failed to read metadata record").
			WithDetail("entry", name)}
	}
	if meta == nil {
		return metaResult{err: errors.New(errors.ErrCorruptEntry, "archive holds no metadata record").
			WithDetail("entry", name)}
	}
	return metaResult{meta: meta}
}

// openArchive opens a container entry through the archive parser
func (l *Loader) openArchive(c types.Container, name string, ks types.KeySet) (types.Archive, error) {
	f, err := c.Open(name)
	if err != nil {
		return nil, err
	}
	return l.parser.OpenArchive(f, ks)
}
