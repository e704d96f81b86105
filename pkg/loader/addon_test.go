// pkg/loader/addon_test.go
// TEST TYPE: Integration Test
// DEPENDENCIES: In-memory filesystem, mock archive parser
// PURPOSE: Test add-on content resolution and registration

package loader_test

import (
	"testing"

	"github.com/arthur-debert/apploader/pkg/aoc"
	"github.com/arthur-debert/apploader/pkg/keys"
	"github.com/arthur-debert/apploader/pkg/loader"
	"github.com/arthur-debert/apploader/pkg/testutil"
	"github.com/arthur-debert/apploader/pkg/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const (
	dlcOne uint64 = 0x0100000000011001
	dlcTwo uint64 = 0x0100000000011002
)

// setupCartridge writes an origin file at origin and its contents, which the
// test environment opens from origin+".d"
func setupCartridge(env *testutil.TestEnvironment, origin string) types.Container {
	env.WriteFile(origin, []byte("cartridge image"))
	root := origin + ".d"
	env.AddTitle(root, testutil.Title{ApplicationID: appID})
	return env.Container(root)
}

func TestResolveAddOnContent_NonScannableWithoutManifest(t *testing.T) {
	env := testutil.NewTestEnvironment(t)
	c := setupCartridge(env, "/roms/game.nsp")
	env.AddPublicData("/roms/game.nsp.d", "aoc.nca", dlcOne, appID)

	l := env.Loader()
	assert.Empty(t, l.ResolveAddOnContent(keys.New(), appID, "/roms/game.nsp"))

	_, err := l.Load(env.Context(), c, "/roms/game.nsp", appID)
	require.NoError(t, err)
	assert.Equal(t, 1, env.Registry.Clears())
	assert.Empty(t, env.Registry.Items())
}

func TestResolveAddOnContent_ManifestEntries(t *testing.T) {
	env := testutil.NewTestEnvironment(t)
	c := setupCartridge(env, "/roms/game.nsp")
	env.WriteFile("/dlc/one.nsp", []byte("dlc"))
	env.WriteFile("/dlc/two.nsp", []byte("dlc"))
	env.WriteManifest(appID, []types.DownloadableContentContainer{
		{
			ContainerPath: "/dlc/one.nsp",
			Entries:       []types.DownloadableContentEntry{{Enabled: false, TitleID: dlcOne, InnerPath: "one.nca"}},
		},
		{
			ContainerPath: "/dlc/two.nsp",
			Entries:       []types.DownloadableContentEntry{{Enabled: true, TitleID: dlcTwo, InnerPath: "two.nca"}},
		},
	})

	_, err := env.Loader().Load(env.Context(), c, "/roms/game.nsp", appID)
	require.NoError(t, err)

	assert.Equal(t, []string{"Clear()", "Add(0100000000011002,/dlc/two.nsp,two.nca)"}, env.Registry.GetCalls())
	assert.Equal(t, []aoc.Item{{TitleID: dlcTwo, ContainerPath: "/dlc/two.nsp", InnerPath: "two.nca"}}, env.Registry.Items())
}

func TestResolveAddOnContent_ScanFiltersByProgramIDBase(t *testing.T) {
	env := testutil.NewTestEnvironment(t)
	c := setupCartridge(env, "/roms/game.xci")
	env.AddPublicData("/roms/game.xci.d", "aoc-a.nca", dlcOne, appID)
	env.AddPublicData("/roms/game.xci.d", "aoc-b.nca", 0x0100000000021001, otherID)

	l := env.Loader()
	containers := l.ResolveAddOnContent(keys.New(), appID, "/roms/game.xci")
	require.Len(t, containers, 1)
	assert.Equal(t, "/roms/game.xci", containers[0].ContainerPath)
	assert.Equal(t, []types.DownloadableContentEntry{{Enabled: true, TitleID: dlcOne, InnerPath: "aoc-a.nca"}}, containers[0].Entries)
	assert.Zero(t, env.Parser.OpenCount())

	_, err := l.Load(env.Context(), c, "/roms/game.xci", appID)
	require.NoError(t, err)
	assert.Equal(t, []aoc.Item{{TitleID: dlcOne, ContainerPath: "/roms/game.xci", InnerPath: "aoc-a.nca"}}, env.Registry.Items())
}

func TestResolveAddOnContent_ScanExtensionIsCaseInsensitive(t *testing.T) {
	env := testutil.NewTestEnvironment(t)
	env.WriteFile("/roms/GAME.XCI", nil)
	env.AddPublicData("/roms/GAME.XCI.d", "aoc.nca", dlcOne, appID)

	containers := env.Loader().ResolveAddOnContent(keys.New(), appID, "/roms/GAME.XCI")
	require.Len(t, containers, 1)
	assert.Len(t, containers[0].Entries, 1)
}

func TestResolveAddOnContent_ManifestWinsOverScan(t *testing.T) {
	env := testutil.NewTestEnvironment(t)
	c := setupCartridge(env, "/roms/game.xci")
	env.AddPublicData("/roms/game.xci.d", "aoc.nca", dlcOne, appID)
	env.WriteFile("/dlc/two.nsp", nil)
	manifest := []types.DownloadableContentContainer{{
		ContainerPath: "/dlc/two.nsp",
		Entries:       []types.DownloadableContentEntry{{Enabled: true, TitleID: dlcTwo, InnerPath: "two.nca"}},
	}}
	env.WriteManifest(appID, manifest)

	l := env.Loader()
	assert.Equal(t, manifest, l.ResolveAddOnContent(keys.New(), appID, "/roms/game.xci"))

	_, err := l.Load(env.Context(), c, "/roms/game.xci", appID)
	require.NoError(t, err)
	assert.Equal(t, []aoc.Item{{TitleID: dlcTwo, ContainerPath: "/dlc/two.nsp", InnerPath: "two.nca"}}, env.Registry.Items())
}

func TestResolveAddOnContent_UnreadableManifest(t *testing.T) {
	env := testutil.NewTestEnvironment(t)
	c := setupCartridge(env, "/roms/game.xci")
	env.AddPublicData("/roms/game.xci.d", "aoc.nca", dlcOne, appID)
	env.WriteFile(env.Paths.ManifestPath(appID), []byte("{ not json"))

	l := env.Loader()
	assert.Empty(t, l.ResolveAddOnContent(keys.New(), appID, "/roms/game.xci"))

	_, err := l.Load(env.Context(), c, "/roms/game.xci", appID)
	require.NoError(t, err)
	assert.Empty(t, env.Registry.Items())
}

func TestResolveAddOnContent_ScanWithoutOpener(t *testing.T) {
	env := testutil.NewTestEnvironment(t)
	setupCartridge(env, "/roms/game.xci")
	env.AddPublicData("/roms/game.xci.d", "aoc.nca", dlcOne, appID)

	deps := env.Dependencies()
	deps.Containers = nil
	l, err := loader.New(deps, loader.DefaultOptions())
	require.NoError(t, err)

	assert.Empty(t, l.ResolveAddOnContent(keys.New(), appID, "/roms/game.xci"))
}

func TestRegisterAddOnContent(t *testing.T) {
	env := testutil.NewTestEnvironment(t)
	env.WriteFile("/dlc/present.nsp", nil)
	l := env.Loader()

	t.Run("missing_container_is_skipped", func(t *testing.T) {
		reg := testutil.NewMockAddOnRegistry()
		reg.Add(0x1, "/stale.nsp", "stale.nca")

		l.RegisterAddOnContent(reg, []types.DownloadableContentContainer{
			{
				ContainerPath: "/dlc/missing.nsp",
				Entries:       []types.DownloadableContentEntry{{Enabled: true, TitleID: dlcOne, InnerPath: "a.nca"}},
			},
			{
				ContainerPath: "/dlc/present.nsp",
				Entries:       []types.DownloadableContentEntry{{Enabled: true, TitleID: dlcTwo, InnerPath: "b.nca"}},
			},
		})

		assert.Equal(t, 1, reg.Clears())
		assert.Equal(t, []aoc.Item{{TitleID: dlcTwo, ContainerPath: "/dlc/present.nsp", InnerPath: "b.nca"}}, reg.Items())
	})

	t.Run("no_containers_still_clears", func(t *testing.T) {
		reg := aoc.NewRegistry()
		reg.Add(dlcOne, "/dlc/present.nsp", "a.nca")

		l.RegisterAddOnContent(reg, nil)
		assert.Zero(t, reg.Count())
	})

	t.Run("first_duplicate_wins", func(t *testing.T) {
		reg := aoc.NewRegistry()
		l.RegisterAddOnContent(reg, []types.DownloadableContentContainer{{
			ContainerPath: "/dlc/present.nsp",
			Entries: []types.DownloadableContentEntry{
				{Enabled: true, TitleID: dlcOne, InnerPath: "first.nca"},
				{Enabled: true, TitleID: dlcOne, InnerPath: "second.nca"},
			},
		}})

		item, ok := reg.Get(dlcOne)
		require.True(t, ok)
		assert.Equal(t, "first.nca", item.InnerPath)
	})
}

func TestLoad_MissingAddOnContainerStillLoads(t *testing.T) {
	env := testutil.NewTestEnvironment(t)
	c := setupCartridge(env, "/roms/game.nsp")
	env.WriteManifest(appID, []types.DownloadableContentContainer{{
		ContainerPath: "/dlc/moved.nsp",
		Entries:       []types.DownloadableContentEntry{{Enabled: true, TitleID: dlcOne, InnerPath: "a.nca"}},
	}})

	ok, _, msg := env.Loader().TryLoad(env.Context(), c, "/roms/game.nsp", appID)
	require.True(t, ok, msg)
	assert.Empty(t, env.Registry.Items())
}
