package loader

import (
	"github.com/arthur-debert/apploader/pkg/aoc"
	"github.com/arthur-debert/apploader/pkg/keys"
	"github.com/arthur-debert/apploader/pkg/types"
)

// Default container entry patterns
const (
	DefaultMetaPattern    = "*.cnmt.nca"
	DefaultContentPattern = "*.nca"
	DefaultTicketPattern  = "*.tik"
)

// Options tunes resolution
type Options struct {
	IntegrityCheckLevel types.IntegrityCheckLevel
	PersistenceIndex    uint8

	// ScannableExtensions lists lowercased origin extensions (".xci") whose
	// containers are scanned for add-on content when no manifest exists
	ScannableExtensions []string

	MetaPattern    string
	ContentPattern string
	TicketPattern  string
}

// DefaultOptions returns the options used when nothing is configured
func DefaultOptions() Options {
	return Options{
		IntegrityCheckLevel: types.IntegrityErrorOnInvalid,
		ScannableExtensions: []string{".xci"},
		MetaPattern:         DefaultMetaPattern,
		ContentPattern:      DefaultContentPattern,
		TicketPattern:       DefaultTicketPattern,
	}
}

func (o Options) withDefaults() Options {
	if o.MetaPattern == "" {
		o.MetaPattern = DefaultMetaPattern
	}
	if o.ContentPattern == "" {
		o.ContentPattern = DefaultContentPattern
	}
	if o.TicketPattern == "" {
		o.TicketPattern = DefaultTicketPattern
	}
	return o
}

// Context carries the mutable state a resolution writes into
type Context struct {
	// Keys receives the tickets found in scanned containers
	Keys types.KeySet

	// AddOnContent is cleared and refilled by every load
	AddOnContent types.AddOnContentRegistry
}

// NewContext creates a context with an empty key set and add-on registry
func NewContext() *Context {
	return &Context{
		Keys:         keys.New(),
		AddOnContent: aoc.NewRegistry(),
	}
}
