package loader

import (
	"github.com/arthur-debert/apploader/pkg/logging"
	"github.com/arthur-debert/apploader/pkg/types"
)

// MergeUpdate asks the update finder for an update of main. A returned
// patch or control archive replaces the current one, which is closed.
// Finder errors are logged and leave the base title untouched.
func (l *Loader) MergeUpdate(main, patch, control types.Archive, originPath string) (types.Archive, types.Archive) {
	if l.updates == nil {
		return patch, control
	}

	logger := logging.GetLogger("loader")

	updatePatch, updateControl, err := l.updates.FindUpdate(main, l.opts.IntegrityCheckLevel, l.opts.PersistenceIndex, originPath)
	if err != nil {
		logger.Warn().Err(err).Str("path", originPath).Msg("Failed to look up update, loading base title")
		closeArchives(updatePatch, updateControl)
		return patch, control
	}

	if updatePatch != nil {
		closeArchive(patch)
		patch = updatePatch
	}
	if updateControl != nil {
		closeArchive(control)
		control = updateControl
	}

	return patch, control
}
