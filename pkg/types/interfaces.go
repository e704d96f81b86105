package types

import "io"

// File is a readable byte stream opened from a container
type File interface {
	io.Reader
	io.ReaderAt
	io.Seeker
	io.Closer
}

// Entry is one enumerable item of a container
type Entry struct {
	// Name is the entry path relative to the container root
	Name string
	Size int64
}

// Container is a storage location enumerable for content units. Every
// concrete container format (extracted directory, partition image, game
// card image) satisfies it.
type Container interface {
	// Path is the location the container was opened from
	Path() string

	// Enumerate returns the entries whose names match pattern, in a stable order
	Enumerate(pattern string) ([]Entry, error)

	// Open opens an entry for reading
	Open(name string) (File, error)

	Close() error
}

// ContainerOpener opens the container stored at a filesystem path
type ContainerOpener interface {
	OpenContainer(path string) (Container, error)
}

// Archive is an opened content unit. The storage behind it belongs to the
// external parsing layer.
type Archive interface {
	Kind() ContentKind
	TitleID() uint64
	ProgramIDBase() uint64

	// ContentMeta extracts the metadata record of a meta archive
	ContentMeta(level IntegrityCheckLevel) (*ContentMeta, error)

	Close() error
}

// ArchiveParser builds archives from raw streams. OpenArchive takes
// ownership of f and must close it on failure.
type ArchiveParser interface {
	OpenArchive(f File, keys KeySet) (Archive, error)
}

// KeySet receives ticket records needed to decrypt title content.
// Imports are additive.
type KeySet interface {
	ImportTicket(rightsID string, data []byte) error
}

// UpdateFinder locates an update applicable to a main program. Either
// returned archive may be nil.
type UpdateFinder interface {
	FindUpdate(main Archive, level IntegrityCheckLevel, index uint8, originPath string) (patch, control Archive, err error)
}

// ProgramMapRegistrar records the multi-program bindings of a container
type ProgramMapRegistrar interface {
	RegisterProgramMap(c Container) error
}

// ProcessResult is the opaque outcome of process construction
type ProcessResult interface{}

// ProcessBuilder constructs the process for a resolved title. The
// archives are closed after Build returns.
type ProcessBuilder interface {
	Build(main, patch, control Archive) (ProcessResult, error)
}
