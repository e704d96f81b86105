package loader

import (
	"fmt"

	"github.com/arthur-debert/apploader/pkg/errors"
	"github.com/arthur-debert/apploader/pkg/filesystem"
	"github.com/arthur-debert/apploader/pkg/logging"
	"github.com/arthur-debert/apploader/pkg/paths"
	"github.com/arthur-debert/apploader/pkg/types"
)

// State is a step of a resolution
type State int

const (
	StateStart State = iota
	StateMetadataResolved
	StateMainValidated
	StateUpdateMerged
	StateAddOnResolved
	StateLoaded
	StateFailed
)

var stateNames = [...]string{"Start", "MetadataResolved", "MainValidated", "UpdateMerged", "AddOnResolved", "Loaded", "Failed"}

func (s State) String() string {
	if s >= 0 && int(s) < len(stateNames) {
		return stateNames[s]
	}
	return fmt.Sprintf("State(%d)", int(s))
}

// Dependencies are the collaborators a Loader calls into.
// FS, Paths, Parser and Processes are required.
type Dependencies struct {
	FS         filesystem.FS
	Paths      paths.Paths
	Parser     types.ArchiveParser
	Processes  types.ProcessBuilder
	Containers types.ContainerOpener
	Updates    types.UpdateFinder
	ProgramMap types.ProgramMapRegistrar
}

// Loader resolves titles from containers
type Loader struct {
	fs         filesystem.FS
	paths      paths.Paths
	parser     types.ArchiveParser
	processes  types.ProcessBuilder
	containers types.ContainerOpener
	updates    types.UpdateFinder
	programMap types.ProgramMapRegistrar
	opts       Options
}

// New creates a Loader
func New(deps Dependencies, opts Options) (*Loader, error) {
	switch {
	case deps.FS == nil:
		return nil, errors.New(errors.ErrInvalidInput, "loader requires a filesystem")
	case deps.Paths == nil:
		return nil, errors.New(errors.ErrInvalidInput, "loader requires paths")
	case deps.Parser == nil:
		return nil, errors.New(errors.ErrInvalidInput, "loader requires an archive parser")
	case deps.Processes == nil:
		return nil, errors.New(errors.ErrInvalidInput, "loader requires a process builder")
	}

	return &Loader{
		fs:         deps.FS,
		paths:      deps.Paths,
		parser:     deps.Parser,
		processes:  deps.Processes,
		containers: deps.Containers,
		updates:    deps.Updates,
		programMap: deps.ProgramMap,
		opts:       opts.withDefaults(),
	}, nil
}

// Options returns the effective options
func (l *Loader) Options() Options {
	return l.opts
}

// TryLoad runs Load and reports its outcome as (success, result, message).
// The message is empty on success.
func (l *Loader) TryLoad(ctx *Context, c types.Container, originPath string, applicationID uint64) (bool, types.ProcessResult, string) {
	result, err := l.Load(ctx, c, originPath, applicationID)
	if err != nil {
		return false, nil, errors.Message(err)
	}
	return true, result, ""
}

// Load resolves the application applicationID (0 for the first one found)
// from c, which was opened from originPath, and hands the resolved
// archives to the process builder. Every archive opened here is closed
// before Load returns. The returned error is a *errors.LoaderError coded
// ErrPropagated, ErrNotFound or ErrFormatMismatch.
//
// The add-on content registry of ctx is refilled before the process is
// built. When Build fails it keeps the add-on content of this title.
func (l *Loader) Load(ctx *Context, c types.Container, originPath string, applicationID uint64) (types.ProcessResult, error) {
	if ctx == nil || ctx.Keys == nil || ctx.AddOnContent == nil {
		return nil, errors.New(errors.ErrInvalidInput, "load context requires a key set and an add-on content registry")
	}

	logger := logging.GetLogger("loader").With().
		Str("path", originPath).
		Str("applicationId", fmt.Sprintf("%016x", applicationID)).
		Logger()
	done := logging.LogOperationStart(logger, "load")
	defer done()

	var main, patch, control types.Archive
	defer func() {
		closeArchives(main, patch, control)
	}()

	state := StateStart
	fail := func(err *errors.LoaderError) (types.ProcessResult, error) {
		err.WithDetail("state", state.String())
		logger.Error().Err(err).Str("state", state.String()).Msg("Load failed")
		return nil, err
	}
	advance := func(next State) {
		logger.Debug().Str("from", state.String()).Str("to", next.String()).Msg("Load state")
		state = next
	}

	apps, err := l.ScanContentMeta(c, types.MetaTypeApplication, ctx.Keys)
	if err != nil {
		return fail(errors.Wrap(err, errors.ErrPropagated, "Unable to load"))
	}

	if meta, err := SelectTitle(apps, applicationID); err == nil {
		main, control, err = l.OpenTitle(c, meta, ctx.Keys)
		if err != nil {
			return fail(errors.Wrap(err, errors.ErrPropagated, "Unable to load"))
		}
	} else {
		logger.Debug().Err(err).Msg("No metadata for requested application")
	}

	if l.programMap != nil {
		if err := l.programMap.RegisterProgramMap(c); err != nil {
			return fail(errors.Wrap(err, errors.ErrPropagated, "Unable to load"))
		}
	}
	advance(StateMetadataResolved)

	if main == nil {
		return fail(errors.Newf(errors.ErrNotFound,
			"Unable to load: Could not find main program for title \"%016X\"", applicationID))
	}
	if main.Kind() != types.ContentKindProgram {
		return fail(errors.New(errors.ErrFormatMismatch, "Selected archive is not a \"Program\" archive").
			WithDetail("kind", main.Kind().String()))
	}
	advance(StateMainValidated)

	patch, control = l.MergeUpdate(main, patch, control, originPath)
	advance(StateUpdateMerged)

	programIDBase := main.ProgramIDBase()
	containers := l.ResolveAddOnContent(ctx.Keys, programIDBase, originPath)
	l.RegisterAddOnContent(ctx.AddOnContent, containers)
	advance(StateAddOnResolved)

	result, err := l.processes.Build(main, patch, control)
	if err != nil {
		return fail(errors.Wrap(err, errors.ErrPropagated, "Unable to load"))
	}
	advance(StateLoaded)

	logger.Info().
		Str("titleId", fmt.Sprintf("%016x", main.TitleID())).
		Bool("patch", patch != nil).
		Bool("control", control != nil).
		Msg("Title resolved")

	return result, nil
}

func closeArchives(archives ...types.Archive) {
	for _, a := range archives {
		closeArchive(a)
	}
}

func closeArchive(a types.Archive) {
	if a == nil {
		return
	}
	if err := a.Close(); err != nil {
		logger := logging.GetLogger("loader")
		logger.Debug().Err(err).Msg("Failed to close archive")
	}
}
