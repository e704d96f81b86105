package filesystem

import (
	"path/filepath"
	"testing"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewOS(t *testing.T) {
	fs := NewOS()
	require.NotNil(t, fs)

	tmpDir := t.TempDir()
	testFile := filepath.Join(tmpDir, "games", "0100000000010000", "dlc.json")

	require.NoError(t, fs.MkdirAll(filepath.Dir(testFile), 0755))
	require.NoError(t, fs.WriteFile(testFile, []byte("[]"), 0644))

	content, err := fs.ReadFile(testFile)
	require.NoError(t, err)
	assert.Equal(t, []byte("[]"), content)

	assert.True(t, Exists(fs, testFile))
	assert.False(t, Exists(fs, filepath.Join(tmpDir, "missing.nsp")))
}

func TestAferoFS(t *testing.T) {
	mem := afero.NewMemMapFs()
	fs := NewAferoFS(mem)

	require.NoError(t, fs.MkdirAll("/games/dlc", 0755))
	require.NoError(t, fs.WriteFile("/games/dlc/pack.nsp", []byte("data"), 0644))

	t.Run("read file", func(t *testing.T) {
		content, err := fs.ReadFile("/games/dlc/pack.nsp")
		require.NoError(t, err)
		assert.Equal(t, "data", string(content))
	})

	t.Run("read directory fails", func(t *testing.T) {
		_, err := fs.ReadFile("/games/dlc")
		assert.Error(t, err)
	})

	t.Run("exists", func(t *testing.T) {
		assert.True(t, Exists(fs, "/games/dlc/pack.nsp"))
		assert.True(t, Exists(fs, "/games/dlc"))
		assert.False(t, Exists(fs, "/games/dlc/other.nsp"))
	})
}
