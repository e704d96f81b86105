// pkg/keys/keyset_test.go
// TEST TYPE: Unit Test
// DEPENDENCIES: In-memory filesystem
// PURPOSE: Test ticket storage and import from containers

package keys_test

import (
	"testing"

	"github.com/arthur-debert/apploader/pkg/container"
	"github.com/arthur-debert/apploader/pkg/errors"
	"github.com/arthur-debert/apploader/pkg/keys"
	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const rightsID = "0100000000010000000000000000000a"

func TestNormalizeRightsID(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    string
		wantErr bool
	}{
		{"lowercase", rightsID, rightsID, false},
		{"uppercase", "0100000000010000000000000000000A", rightsID, false},
		{"surrounding_space", " " + rightsID + "\n", rightsID, false},
		{"too_short", "0100", "", true},
		{"not_hex", "0100000000010000000000000000000z", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := keys.NormalizeRightsID(tt.input)
			if tt.wantErr {
				assert.True(t, errors.IsErrorCode(err, errors.ErrInvalidInput))
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestKeySet_ImportTicket(t *testing.T) {
	ks := keys.New()

	require.NoError(t, ks.ImportTicket(rightsID, []byte("first")))
	require.NoError(t, ks.ImportTicket("0100000000010000000000000000000A", []byte("second")))

	assert.Equal(t, 1, ks.Count())
	data, ok := ks.Ticket(rightsID)
	require.True(t, ok)
	assert.Equal(t, []byte("first"), data)

	assert.Error(t, ks.ImportTicket("bogus", []byte("x")))
	assert.False(t, ks.Has("bogus"))
	assert.False(t, ks.Has("0100000000020000000000000000000a"))
}

func TestKeySet_TicketIsCopied(t *testing.T) {
	ks := keys.New()
	data := []byte("ticket")
	require.NoError(t, ks.ImportTicket(rightsID, data))
	data[0] = 'X'

	stored, ok := ks.Ticket(rightsID)
	require.True(t, ok)
	assert.Equal(t, []byte("ticket"), stored)
}

func TestImportTickets(t *testing.T) {
	fs := afero.NewMemMapFs()
	files := map[string]string{
		"/c/" + rightsID + ".tik":                        "one",
		"/c/nested/0100000000020000000000000000000b.tik": "two",
		"/c/short.tik":                                   "bad name",
		"/c/" + rightsID + ".nca":                        "not a ticket",
	}
	for name, content := range files {
		require.NoError(t, afero.WriteFile(fs, name, []byte(content), 0644))
	}

	ks := keys.New()
	n, err := keys.ImportTickets(container.NewDirectory(fs, "/c"), ks, "*.tik")
	require.NoError(t, err)

	assert.Equal(t, 2, n)
	assert.True(t, ks.Has(rightsID))
	assert.True(t, ks.Has("0100000000020000000000000000000b"))

	t.Run("missing_container", func(t *testing.T) {
		_, err := keys.ImportTickets(container.NewDirectory(fs, "/absent"), keys.New(), "*.tik")
		assert.True(t, errors.IsErrorCode(err, errors.ErrFileAccess))
	})
}
