package container_test

import (
	"io"
	"testing"

	"github.com/arthur-debert/apploader/pkg/container"
	"github.com/arthur-debert/apploader/pkg/errors"
	"github.com/arthur-debert/apploader/pkg/types"
	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTitleFs(t *testing.T) afero.Fs {
	t.Helper()
	fs := afero.NewMemMapFs()
	files := map[string]string{
		"/title/b.nca":                "program",
		"/title/a.cnmt.nca":           "meta",
		"/title/c.nca":                "control",
		"/title/0100000000010000.tik": "ticket",
		"/title/sub/d.nca":            "nested",
		"/title/readme.txt":           "ignored",
		"/elsewhere/secret.nca":       "outside",
	}
	for name, content := range files {
		require.NoError(t, afero.WriteFile(fs, name, []byte(content), 0644))
	}
	return fs
}

func names(entries []types.Entry) []string {
	out := make([]string, 0, len(entries))
	for _, e := range entries {
		out = append(out, e.Name)
	}
	return out
}

func TestDirectory_Enumerate(t *testing.T) {
	dir := container.NewDirectory(newTitleFs(t), "/title")

	tests := []struct {
		name    string
		pattern string
		want    []string
	}{
		{"meta archives", "*.cnmt.nca", []string{"a.cnmt.nca"}},
		{"all archives in lexical order", "*.nca", []string{"a.cnmt.nca", "b.nca", "c.nca", "sub/d.nca"}},
		{"tickets", "*.tik", []string{"0100000000010000.tik"}},
		{"no match", "*.xci", []string{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			entries, err := dir.Enumerate(tt.pattern)
			require.NoError(t, err)
			assert.Equal(t, tt.want, names(entries))
		})
	}
}

func TestDirectory_EnumerateReportsSize(t *testing.T) {
	dir := container.NewDirectory(newTitleFs(t), "/title")

	entries, err := dir.Enumerate("b.nca")
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, int64(len("program")), entries[0].Size)
}

func TestDirectory_EnumerateInvalidPattern(t *testing.T) {
	dir := container.NewDirectory(newTitleFs(t), "/title")

	_, err := dir.Enumerate("[")
	assert.True(t, errors.IsErrorCode(err, errors.ErrInvalidInput))
}

func TestDirectory_Open(t *testing.T) {
	dir := container.NewDirectory(newTitleFs(t), "/title")

	t.Run("reads entry", func(t *testing.T) {
		f, err := dir.Open("sub/d.nca")
		require.NoError(t, err)
		defer f.Close()

		data, err := io.ReadAll(f)
		require.NoError(t, err)
		assert.Equal(t, "nested", string(data))
	})

	t.Run("missing entry", func(t *testing.T) {
		_, err := dir.Open("missing.nca")
		assert.True(t, errors.IsErrorCode(err, errors.ErrFileNotFound))
	})

	t.Run("escaping entry", func(t *testing.T) {
		_, err := dir.Open("../elsewhere/secret.nca")
		assert.True(t, errors.IsErrorCode(err, errors.ErrInvalidInput))
	})
}

func TestOpenDirectory(t *testing.T) {
	fs := newTitleFs(t)

	dir, err := container.OpenDirectory(fs, "/title")
	require.NoError(t, err)
	assert.Equal(t, "/title", dir.Path())
	assert.NoError(t, dir.Close())

	_, err = container.OpenDirectory(fs, "/nope")
	assert.True(t, errors.IsErrorCode(err, errors.ErrFileNotFound))

	_, err = container.OpenDirectory(fs, "/title/b.nca")
	assert.True(t, errors.IsErrorCode(err, errors.ErrInvalidInput))
}
