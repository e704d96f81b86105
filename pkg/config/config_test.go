// pkg/config/config_test.go
// TEST TYPE: Unit Test
// DEPENDENCIES: Temporary files
// PURPOSE: Test configuration layering, validation and rendering

package config_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/arthur-debert/apploader/pkg/config"
	"github.com/arthur-debert/apploader/pkg/errors"
	"github.com/arthur-debert/apploader/pkg/loader"
	"github.com/arthur-debert/apploader/pkg/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.toml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestLoad_Defaults(t *testing.T) {
	cfg, err := config.Load("")
	require.NoError(t, err)

	assert.Equal(t, "error", cfg.Loader.IntegrityCheckLevel)
	assert.Equal(t, 0, cfg.Loader.PersistenceIndex)
	assert.Equal(t, []string{".xci"}, cfg.Loader.ScannableExtensions)
	assert.Equal(t, "*.cnmt.nca", cfg.Patterns.Meta)
	assert.Equal(t, "*.nca", cfg.Patterns.Content)
	assert.Equal(t, "*.tik", cfg.Patterns.Ticket)
	assert.Equal(t, "dlc.json", cfg.AddOn.ManifestName)
	assert.Empty(t, cfg.Paths.GamesDir)
}

func TestLoad_MissingFileUsesDefaults(t *testing.T) {
	cfg, err := config.Load(filepath.Join(t.TempDir(), "absent.toml"))
	require.NoError(t, err)
	assert.Equal(t, "error", cfg.Loader.IntegrityCheckLevel)
}

func TestLoad_FileOverrides(t *testing.T) {
	path := writeConfig(t, `
[loader]
integrity_check_level = "warn"
persistence_index = 2
scannable_extensions = [".xci", ".XCZ"]

[paths]
games_dir = "/srv/games"
`)

	cfg, err := config.Load(path)
	require.NoError(t, err)

	assert.Equal(t, "warn", cfg.Loader.IntegrityCheckLevel)
	assert.Equal(t, 2, cfg.Loader.PersistenceIndex)
	assert.Equal(t, []string{".xci", ".XCZ"}, cfg.Loader.ScannableExtensions)
	assert.Equal(t, "/srv/games", cfg.Paths.GamesDir)
	// untouched keys keep their defaults
	assert.Equal(t, "*.cnmt.nca", cfg.Patterns.Meta)
}

func TestLoad_EnvOverrides(t *testing.T) {
	t.Setenv("APPLOADER_LOADER__INTEGRITY_CHECK_LEVEL", "none")
	t.Setenv("APPLOADER_LOADER__PERSISTENCE_INDEX", "3")
	t.Setenv("APPLOADER_LOADER__SCANNABLE_EXTENSIONS", ".xci,.xcz")
	t.Setenv("APPLOADER_ADDON__MANIFEST_NAME", "addons.json")

	path := writeConfig(t, "[loader]\nintegrity_check_level = \"warn\"\n")
	cfg, err := config.Load(path)
	require.NoError(t, err)

	assert.Equal(t, "none", cfg.Loader.IntegrityCheckLevel)
	assert.Equal(t, 3, cfg.Loader.PersistenceIndex)
	assert.Equal(t, []string{".xci", ".xcz"}, cfg.Loader.ScannableExtensions)
	assert.Equal(t, "addons.json", cfg.AddOn.ManifestName)
}

func TestLoad_Errors(t *testing.T) {
	tests := []struct {
		name    string
		content string
		code    errors.ErrorCode
	}{
		{"malformed_toml", "[loader\n", errors.ErrConfigParse},
		{"unknown_level", "[loader]\nintegrity_check_level = \"paranoid\"\n", errors.ErrConfigValid},
		{"index_out_of_range", "[loader]\npersistence_index = 256\n", errors.ErrConfigValid},
		{"extension_without_dot", "[loader]\nscannable_extensions = [\"xci\"]\n", errors.ErrConfigValid},
		{"empty_pattern", "[patterns]\nmeta = \"\"\n", errors.ErrConfigValid},
		{"bad_glob", "[patterns]\ncontent = \"[*.nca\"\n", errors.ErrConfigValid},
		{"manifest_name_with_separator", "[addon]\nmanifest_name = \"dlc/list.json\"\n", errors.ErrConfigValid},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := config.Load(writeConfig(t, tt.content))
			require.Error(t, err)
			assert.True(t, errors.IsErrorCode(err, tt.code), "got %v", err)
		})
	}
}

func TestLoaderOptions(t *testing.T) {
	path := writeConfig(t, `
[loader]
integrity_check_level = "warn"
persistence_index = 1
scannable_extensions = [".XCI"]
`)
	cfg, err := config.Load(path)
	require.NoError(t, err)

	opts, err := cfg.LoaderOptions()
	require.NoError(t, err)
	assert.Equal(t, loader.Options{
		IntegrityCheckLevel: types.IntegrityWarnOnInvalid,
		PersistenceIndex:    1,
		ScannableExtensions: []string{".xci"},
		MetaPattern:         "*.cnmt.nca",
		ContentPattern:      "*.nca",
		TicketPattern:       "*.tik",
	}, opts)
}

func TestLoaderOptions_DefaultsMatchLoader(t *testing.T) {
	cfg, err := config.Load("")
	require.NoError(t, err)

	opts, err := cfg.LoaderOptions()
	require.NoError(t, err)
	assert.Equal(t, loader.DefaultOptions(), opts)
}

func TestGenerate(t *testing.T) {
	cfg, err := config.Load("")
	require.NoError(t, err)
	cfg.Loader.PersistenceIndex = 4

	out, err := config.Generate(cfg)
	require.NoError(t, err)

	rendered := string(out)
	assert.Contains(t, rendered, "[loader]")
	assert.Contains(t, rendered, "integrity_check_level = 'error'")
	assert.Contains(t, rendered, "persistence_index = 4")

	// the rendered file loads back to the same configuration
	reloaded, err := config.Load(writeConfig(t, rendered))
	require.NoError(t, err)
	assert.Equal(t, cfg, reloaded)
}

func TestGetDefaultsContent(t *testing.T) {
	content := config.GetDefaultsContent()
	assert.Contains(t, content, "[loader]")
	assert.Contains(t, content, "manifest_name = \"dlc.json\"")
}

func TestLoadWithOverrides(t *testing.T) {
	t.Setenv("APPLOADER_PATHS__GAMES_DIR", "/from/env")

	cfg, err := config.LoadWithOverrides("", map[string]interface{}{
		"paths.games_dir":          "/from/flag",
		"loader.persistence_index": 7,
	})
	require.NoError(t, err)
	assert.Equal(t, "/from/flag", cfg.Paths.GamesDir)
	assert.Equal(t, 7, cfg.Loader.PersistenceIndex)

	_, err = config.LoadWithOverrides("", map[string]interface{}{"loader.integrity_check_level": "loud"})
	assert.True(t, errors.IsErrorCode(err, errors.ErrConfigValid))
}
