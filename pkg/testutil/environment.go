// pkg/testutil/environment.go
// DEPENDENCIES: afero in-memory filesystem
// PURPOSE: Build titles, containers and manifests for loader tests

package testutil

import (
	"fmt"
	"path"
	"testing"

	"github.com/arthur-debert/apploader/pkg/container"
	"github.com/arthur-debert/apploader/pkg/filesystem"
	"github.com/arthur-debert/apploader/pkg/loader"
	"github.com/arthur-debert/apploader/pkg/manifest"
	"github.com/arthur-debert/apploader/pkg/paths"
	"github.com/arthur-debert/apploader/pkg/types"
	"github.com/spf13/afero"
	"github.com/stretchr/testify/require"
)

// GamesDir is the games directory of every TestEnvironment
const GamesDir = "/games"

// TestEnvironment bundles an in-memory filesystem with mocks for every
// loader collaborator
type TestEnvironment struct {
	Fs     afero.Fs
	FS     filesystem.FS
	Paths  paths.Paths
	Opener *container.Opener

	Parser     *MockArchiveParser
	Processes  *MockProcessBuilder
	Updates    *MockUpdateFinder
	ProgramMap *MockProgramMap
	Registry   *MockAddOnRegistry

	t *testing.T
}

// NewTestEnvironment creates an environment. Files with a ".xci"
// extension open as directory containers rooted at "<file>.d".
func NewTestEnvironment(t *testing.T) *TestEnvironment {
	t.Helper()

	fs := afero.NewMemMapFs()
	p, err := paths.New(paths.WithGamesDir(GamesDir))
	require.NoError(t, err)

	opener := container.NewOpener(fs)
	require.NoError(t, opener.RegisterFormat(".xci", func(fs afero.Fs, p string) (types.Container, error) {
		return container.OpenDirectory(fs, p+".d")
	}))

	return &TestEnvironment{
		Fs:         fs,
		FS:         filesystem.NewAferoFS(fs),
		Paths:      p,
		Opener:     opener,
		Parser:     NewMockArchiveParser(),
		Processes:  NewMockProcessBuilder(),
		Updates:    &MockUpdateFinder{},
		ProgramMap: &MockProgramMap{},
		Registry:   NewMockAddOnRegistry(),
		t:          t,
	}
}

// Dependencies returns loader dependencies wired to the environment
func (env *TestEnvironment) Dependencies() loader.Dependencies {
	return loader.Dependencies{
		FS:         env.FS,
		Paths:      env.Paths,
		Parser:     env.Parser,
		Processes:  env.Processes,
		Containers: env.Opener,
		Updates:    env.Updates,
		ProgramMap: env.ProgramMap,
	}
}

// Loader builds a loader with default options
func (env *TestEnvironment) Loader() *loader.Loader {
	env.t.Helper()
	l, err := loader.New(env.Dependencies(), loader.DefaultOptions())
	require.NoError(env.t, err)
	return l
}

// Context returns a load context using the mock registry
func (env *TestEnvironment) Context() *loader.Context {
	ctx := loader.NewContext()
	ctx.AddOnContent = env.Registry
	return ctx
}

// WriteFile writes raw content
func (env *TestEnvironment) WriteFile(name string, content []byte) {
	env.t.Helper()
	require.NoError(env.t, afero.WriteFile(env.Fs, name, content, 0644))
}

// WriteArchive writes an archive described by spec
func (env *TestEnvironment) WriteArchive(name string, spec ArchiveSpec) {
	env.t.Helper()
	env.WriteFile(name, spec.Encode())
}

// WriteManifest writes the add-on content manifest of programIDBase
func (env *TestEnvironment) WriteManifest(programIDBase uint64, containers []types.DownloadableContentContainer) {
	env.t.Helper()
	data, err := manifest.Marshal(containers)
	require.NoError(env.t, err)
	env.WriteFile(env.Paths.ManifestPath(programIDBase), data)
}

// Container returns a directory container rooted at root
func (env *TestEnvironment) Container(root string) types.Container {
	return container.NewDirectory(env.Fs, root)
}

// Title describes an application stored in a container
type Title struct {
	ApplicationID uint64

	// ProgramIDBase defaults to ApplicationID
	ProgramIDBase uint64

	// MetaType defaults to Application
	MetaType types.MetaType

	// MainKind is the header kind of the program archive, Program by default
	MainKind types.ContentKind

	NoProgram bool
	NoControl bool

	// Tag distinguishes content ids of titles sharing an application id
	Tag uint32
}

// ContentID builds a 32 hex digit content id
func ContentID(applicationID uint64, t types.ContentType, tag uint32) string {
	return fmt.Sprintf("%016x%08x%08x", applicationID, uint32(t), tag)
}

// AddTitle writes the meta, program and control archives of title under
// root and returns the meta record it references
func (env *TestEnvironment) AddTitle(root string, title Title) *types.ContentMeta {
	env.t.Helper()

	if title.ProgramIDBase == 0 {
		title.ProgramIDBase = title.ApplicationID
	}
	if title.MetaType == 0 {
		title.MetaType = types.MetaTypeApplication
	}

	meta := &types.ContentMeta{
		TitleID:       title.ApplicationID,
		ApplicationID: title.ApplicationID,
		Type:          title.MetaType,
	}

	if !title.NoProgram {
		id := ContentID(title.ApplicationID, types.ContentTypeProgram, title.Tag)
		meta.Contents = append(meta.Contents, types.ContentRecord{ID: id, Type: types.ContentTypeProgram})
		env.WriteArchive(path.Join(root, types.ContentFileName(id, types.ContentTypeProgram)), ArchiveSpec{
			Kind:          title.MainKind,
			TitleID:       title.ApplicationID,
			ProgramIDBase: title.ProgramIDBase,
		})
	}
	if !title.NoControl {
		id := ContentID(title.ApplicationID, types.ContentTypeControl, title.Tag)
		meta.Contents = append(meta.Contents, types.ContentRecord{ID: id, Type: types.ContentTypeControl})
		env.WriteArchive(path.Join(root, types.ContentFileName(id, types.ContentTypeControl)), ArchiveSpec{
			Kind:          types.ContentKindControl,
			TitleID:       title.ApplicationID,
			ProgramIDBase: title.ProgramIDBase,
		})
	}

	metaID := ContentID(title.ApplicationID, types.ContentTypeMeta, title.Tag)
	env.WriteArchive(path.Join(root, types.ContentFileName(metaID, types.ContentTypeMeta)), ArchiveSpec{
		Kind:          types.ContentKindMeta,
		TitleID:       title.ApplicationID,
		ProgramIDBase: title.ProgramIDBase,
		Meta:          meta,
	})

	return meta
}

// AddPublicData writes a public data archive under root
func (env *TestEnvironment) AddPublicData(root, name string, titleID, programIDBase uint64) {
	env.t.Helper()
	env.WriteArchive(path.Join(root, name), ArchiveSpec{
		Kind:          types.ContentKindPublicData,
		TitleID:       titleID,
		ProgramIDBase: programIDBase,
	})
}
