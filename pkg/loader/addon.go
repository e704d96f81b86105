package loader

import (
	"fmt"
	"path/filepath"
	"slices"
	"strings"

	"github.com/arthur-debert/apploader/pkg/errors"
	"github.com/arthur-debert/apploader/pkg/filesystem"
	"github.com/arthur-debert/apploader/pkg/logging"
	"github.com/arthur-debert/apploader/pkg/manifest"
	"github.com/arthur-debert/apploader/pkg/types"
)

// ResolveAddOnContent lists the add-on content of the title with
// programIDBase. The persisted manifest wins when it exists; otherwise a
// scannable origin container is searched for public data archives of the
// title. Failures are logged and give an empty list.
func (l *Loader) ResolveAddOnContent(ks types.KeySet, programIDBase uint64, originPath string) []types.DownloadableContentContainer {
	logger := logging.GetLogger("loader")

	manifestPath := l.paths.ManifestPath(programIDBase)
	if filesystem.Exists(l.fs, manifestPath) {
		containers, err := manifest.Load(l.fs, manifestPath)
		if err != nil {
			logger.Warn().Err(err).Str("manifest", manifestPath).Msg("Ignoring unreadable add-on content manifest")
			return nil
		}
		logger.Debug().Str("manifest", manifestPath).Int("containers", len(containers)).Msg("Using add-on content manifest")
		return containers
	}

	ext := strings.ToLower(filepath.Ext(originPath))
	if slices.Contains(l.opts.ScannableExtensions, ext) {
		return l.scanAddOnContent(ks, programIDBase, originPath)
	}

	return nil
}

// scanAddOnContent synthesizes one container record from the public data
// archives of originPath sharing programIDBase
func (l *Loader) scanAddOnContent(ks types.KeySet, programIDBase uint64, originPath string) []types.DownloadableContentContainer {
	logger := logging.GetLogger("loader")

	if l.containers == nil {
		logger.Warn().Str("path", originPath).Msg("No container opener configured, skipping add-on content scan")
		return nil
	}

	c, err := l.containers.OpenContainer(originPath)
	if err != nil {
		logger.Warn().Err(err).Str("path", originPath).Msg("Failed to open container for add-on content scan")
		return nil
	}
	defer c.Close()

	entries, err := c.Enumerate(l.opts.ContentPattern)
	if err != nil {
		logger.Warn().Err(err).Str("path", originPath).Msg("Failed to enumerate container for add-on content scan")
		return nil
	}

	container := types.DownloadableContentContainer{ContainerPath: originPath}
	for _, entry := range entries {
		archive, err := l.openArchive(c, entry.Name, ks)
		if err != nil {
			logger.Debug().
				Err(errors.Wrap(err, errors.ErrCorruptEntry, "unreadable archive")).
				Str("entry", entry.Name).
				Msg("Skipping archive during add-on content scan")
			continue
		}

		if archive.Kind() == types.ContentKindPublicData && archive.ProgramIDBase() == programIDBase {
			container.Entries = append(container.Entries, types.DownloadableContentEntry{
				Enabled:   true,
				TitleID:   archive.TitleID(),
				InnerPath: entry.Name,
			})
		}
		closeArchive(archive)
	}

	logger.Debug().Int("entries", len(container.Entries)).Str("path", originPath).Msg("Scanned add-on content")
	return []types.DownloadableContentContainer{container}
}

// RegisterAddOnContent clears reg and adds every enabled entry whose
// container file exists. Entries of missing containers are skipped with
// a warning.
func (l *Loader) RegisterAddOnContent(reg types.AddOnContentRegistry, containers []types.DownloadableContentContainer) {
	logger := logging.GetLogger("loader")

	// Only one title's add-on content is tracked at a time.
	reg.Clear()

	for _, c := range containers {
		exists := filesystem.Exists(l.fs, c.ContainerPath)
		for _, entry := range c.Entries {
			if !exists {
				logger.Warn().
					Err(errors.New(errors.ErrMissingAsset, "add-on content container missing")).
					Str("titleId", fmt.Sprintf("%016x", entry.TitleID)).
					Msgf("Cannot find add-on content file %s. It may have been moved or renamed.", c.ContainerPath)
				continue
			}
			if entry.Enabled {
				reg.Add(entry.TitleID, c.ContainerPath, entry.InnerPath)
			}
		}
	}
}
