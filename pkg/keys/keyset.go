// Package keys holds the key context title content is decrypted with.
// Tickets imported from containers are merged into it and never removed.
package keys

import (
	"encoding/hex"
	"io"
	"path"
	"strings"

	"github.com/arthur-debert/apploader/pkg/errors"
	"github.com/arthur-debert/apploader/pkg/logging"
	"github.com/arthur-debert/apploader/pkg/registry"
	"github.com/arthur-debert/apploader/pkg/types"
)

// RightsIDLength is the length of a rights id in hex digits
const RightsIDLength = 32

// maxTicketSize bounds how much of a ticket entry is read
const maxTicketSize = 64 << 10

// KeySet stores tickets by rights id
type KeySet struct {
	tickets registry.Registry[string, []byte]
}

// New creates an empty key set
func New() *KeySet {
	return &KeySet{tickets: registry.New[string, []byte]()}
}

// ImportTicket adds a ticket. Re-importing a known rights id keeps the
// stored ticket.
func (k *KeySet) ImportTicket(rightsID string, data []byte) error {
	id, err := NormalizeRightsID(rightsID)
	if err != nil {
		return err
	}

	buf := make([]byte, len(data))
	copy(buf, data)

	err = k.tickets.Register(id, buf)
	if err != nil && !errors.IsErrorCode(err, errors.ErrAlreadyExists) {
		return err
	}
	return nil
}

// Ticket returns the ticket stored for a rights id
func (k *KeySet) Ticket(rightsID string) ([]byte, bool) {
	id, err := NormalizeRightsID(rightsID)
	if err != nil {
		return nil, false
	}
	data, err := k.tickets.Get(id)
	if err != nil {
		return nil, false
	}
	return data, true
}

// Has reports whether a ticket is known for a rights id
func (k *KeySet) Has(rightsID string) bool {
	_, ok := k.Ticket(rightsID)
	return ok
}

// Count returns the number of stored tickets
func (k *KeySet) Count() int {
	return k.tickets.Count()
}

// NormalizeRightsID validates a rights id and lowercases it
func NormalizeRightsID(rightsID string) (string, error) {
	id := strings.ToLower(strings.TrimSpace(rightsID))
	if len(id) != RightsIDLength {
		return "", errors.Newf(errors.ErrInvalidInput, "rights id %q must be %d hex digits", rightsID, RightsIDLength)
	}
	if _, err := hex.DecodeString(id); err != nil {
		return "", errors.Wrapf(err, errors.ErrInvalidInput, "rights id %q is not hex", rightsID)
	}
	return id, nil
}

// ImportTickets imports every ticket entry of c matching pattern into
// keys. Ticket entries are named `<rights id>.tik`; entries with any other
// name or that cannot be read are skipped with a warning. It returns the
// number of imported tickets.
func ImportTickets(c types.Container, keys types.KeySet, pattern string) (int, error) {
	logger := logging.GetLogger("keys")

	entries, err := c.Enumerate(pattern)
	if err != nil {
		return 0, errors.Wrapf(err, errors.ErrFileAccess, "failed to enumerate tickets in %s", c.Path())
	}

	imported := 0
	for _, entry := range entries {
		base := path.Base(entry.Name)
		rightsID := strings.TrimSuffix(base, path.Ext(base))

		data, err := readEntry(c, entry.Name)
		if err != nil {
			logger.Warn().Err(err).Str("entry", entry.Name).Msg("Skipping unreadable ticket")
			continue
		}

		if err := keys.ImportTicket(rightsID, data); err != nil {
			logger.Warn().Err(err).Str("entry", entry.Name).Msg("Skipping ticket")
			continue
		}
		imported++
	}

	logger.Debug().Int("count", imported).Str("container", c.Path()).Msg("Imported tickets")
	return imported, nil
}

func readEntry(c types.Container, name string) ([]byte, error) {
	f, err := c.Open(name)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	return io.ReadAll(io.LimitReader(f, maxTicketSize))
}
