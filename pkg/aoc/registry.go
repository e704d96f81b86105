// Package aoc tracks the add-on content available to the loaded title.
package aoc

import (
	"github.com/arthur-debert/apploader/pkg/errors"
	"github.com/arthur-debert/apploader/pkg/logging"
	"github.com/arthur-debert/apploader/pkg/registry"
)

// Item locates one add-on content archive
type Item struct {
	TitleID       uint64
	ContainerPath string
	InnerPath     string
}

// Registry maps add-on content title ids to their location. It only
// tracks one title's add-on content at a time: the loader clears it
// before every resolution.
type Registry struct {
	items registry.Registry[uint64, Item]
}

// NewRegistry creates an empty registry
func NewRegistry() *Registry {
	return &Registry{items: registry.New[uint64, Item]()}
}

// Clear drops every item
func (r *Registry) Clear() {
	r.items.Clear()
}

// Add records an item. The first item added for a title id is kept;
// duplicates are logged and dropped.
func (r *Registry) Add(titleID uint64, containerPath, innerPath string) {
	logger := logging.GetLogger("aoc")

	err := r.items.Register(titleID, Item{
		TitleID:       titleID,
		ContainerPath: containerPath,
		InnerPath:     innerPath,
	})
	switch {
	case err == nil:
		logger.Info().
			Str("titleId", formatTitleID(titleID)).
			Str("container", containerPath).
			Msg("Found add-on content")
	case errors.IsErrorCode(err, errors.ErrAlreadyExists):
		logger.Warn().
			Str("titleId", formatTitleID(titleID)).
			Str("container", containerPath).
			Msg("Duplicate add-on content detected, keeping the first one")
	default:
		logger.Warn().Err(err).Str("container", containerPath).Msg("Ignoring add-on content")
	}
}

// Get returns the item for a title id
func (r *Registry) Get(titleID uint64) (Item, bool) {
	item, err := r.items.Get(titleID)
	if err != nil {
		return Item{}, false
	}
	return item, true
}

// List returns every item ordered by title id
func (r *Registry) List() []Item {
	ids := r.items.List()
	out := make([]Item, 0, len(ids))
	for _, id := range ids {
		if item, err := r.items.Get(id); err == nil {
			out = append(out, item)
		}
	}
	return out
}

// Count returns the number of items
func (r *Registry) Count() int {
	return r.items.Count()
}
