package config

import (
	"strings"

	"github.com/arthur-debert/apploader/pkg/loader"
	"github.com/arthur-debert/apploader/pkg/types"
)

// Config is the effective apploader configuration
type Config struct {
	Loader   Loader   `koanf:"loader" toml:"loader"`
	Patterns Patterns `koanf:"patterns" toml:"patterns"`
	AddOn    AddOn    `koanf:"addon" toml:"addon"`
	Paths    Paths    `koanf:"paths" toml:"paths"`
}

// Loader holds title resolution settings
type Loader struct {
	IntegrityCheckLevel string   `koanf:"integrity_check_level" toml:"integrity_check_level" validate:"required,oneof=none warn error"`
	PersistenceIndex    int      `koanf:"persistence_index" toml:"persistence_index" validate:"gte=0,lte=255"`
	ScannableExtensions []string `koanf:"scannable_extensions" toml:"scannable_extensions" validate:"dive,startswith=."`
}

// Patterns are the container entry name globs
type Patterns struct {
	Meta    string `koanf:"meta" toml:"meta" validate:"required"`
	Content string `koanf:"content" toml:"content" validate:"required"`
	Ticket  string `koanf:"ticket" toml:"ticket" validate:"required"`
}

// AddOn holds add-on content settings
type AddOn struct {
	ManifestName string `koanf:"manifest_name" toml:"manifest_name" validate:"required,excludesall=/\\"`
}

// Paths holds directory overrides
type Paths struct {
	GamesDir string `koanf:"games_dir" toml:"games_dir"`
}

// LoaderOptions converts the configuration into loader options
func (c *Config) LoaderOptions() (loader.Options, error) {
	level, err := types.ParseIntegrityCheckLevel(c.Loader.IntegrityCheckLevel)
	if err != nil {
		return loader.Options{}, err
	}

	exts := make([]string, 0, len(c.Loader.ScannableExtensions))
	for _, ext := range c.Loader.ScannableExtensions {
		exts = append(exts, strings.ToLower(ext))
	}

	return loader.Options{
		IntegrityCheckLevel: level,
		PersistenceIndex:    uint8(c.Loader.PersistenceIndex),
		ScannableExtensions: exts,
		MetaPattern:         c.Patterns.Meta,
		ContentPattern:      c.Patterns.Content,
		TicketPattern:       c.Patterns.Ticket,
	}, nil
}
