// Package manifest reads the persisted add-on content manifest of a title.
//
// The manifest is a JSON array of containers, each listing the add-on
// content archives it holds:
//
//	[
//	  {
//	    "containerPath": "/games/dlc/pack.nsp",
//	    "entries": [
//	      {"enabled": true, "titleId": "0100000000011001", "innerPath": "/3c4f.nca"}
//	    ]
//	  }
//	]
//
// Comments and trailing commas are accepted.
package manifest

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"

	"github.com/arthur-debert/apploader/pkg/errors"
	"github.com/arthur-debert/apploader/pkg/filesystem"
	"github.com/arthur-debert/apploader/pkg/types"
	"github.com/tidwall/jsonc"
)

// TitleID is a title id serialized as 16 hex digits
type TitleID uint64

func (id TitleID) String() string {
	return fmt.Sprintf("%016x", uint64(id))
}

func (id TitleID) MarshalJSON() ([]byte, error) {
	return json.Marshal(id.String())
}

// UnmarshalJSON accepts a hex string, with or without 0x, or a bare
// JSON number as written by older managers
func (id *TitleID) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		var n uint64
		if numErr := json.Unmarshal(data, &n); numErr != nil {
			return fmt.Errorf("title id must be a hex string or number: %s", string(data))
		}
		*id = TitleID(n)
		return nil
	}

	s = strings.TrimPrefix(strings.TrimPrefix(strings.TrimSpace(s), "0x"), "0X")
	n, err := strconv.ParseUint(s, 16, 64)
	if err != nil {
		return fmt.Errorf("invalid title id %q: %w", s, err)
	}
	*id = TitleID(n)
	return nil
}

// Entry is the serialized form of types.DownloadableContentEntry
type Entry struct {
	Enabled   bool    `json:"enabled"`
	TitleID   TitleID `json:"titleId"`
	InnerPath string  `json:"innerPath"`
}

// Container is the serialized form of types.DownloadableContentContainer
type Container struct {
	ContainerPath string  `json:"containerPath"`
	Entries       []Entry `json:"entries"`
}

// Parse decodes a manifest document
func Parse(data []byte) ([]types.DownloadableContentContainer, error) {
	var raw []Container
	if err := json.Unmarshal(jsonc.ToJSON(data), &raw); err != nil {
		return nil, errors.Wrap(err, errors.ErrManifestParse, "failed to parse add-on content manifest")
	}

	out := make([]types.DownloadableContentContainer, 0, len(raw))
	for _, c := range raw {
		container := types.DownloadableContentContainer{ContainerPath: c.ContainerPath}
		for _, e := range c.Entries {
			container.Entries = append(container.Entries, types.DownloadableContentEntry{
				Enabled:   e.Enabled,
				TitleID:   uint64(e.TitleID),
				InnerPath: e.InnerPath,
			})
		}
		out = append(out, container)
	}
	return out, nil
}

// Load reads and decodes the manifest at path
func Load(fsys filesystem.FS, path string) ([]types.DownloadableContentContainer, error) {
	data, err := fsys.ReadFile(path)
	if err != nil {
		return nil, errors.Wrapf(err, errors.ErrFileAccess, "failed to read manifest %s", path)
	}

	containers, err := Parse(data)
	if err != nil {
		return nil, errors.Wrapf(err, errors.ErrManifestParse, "manifest %s", path)
	}
	return containers, nil
}

// Marshal encodes containers with the manifest schema
func Marshal(containers []types.DownloadableContentContainer) ([]byte, error) {
	raw := make([]Container, 0, len(containers))
	for _, c := range containers {
		entries := make([]Entry, 0, len(c.Entries))
		for _, e := range c.Entries {
			entries = append(entries, Entry{Enabled: e.Enabled, TitleID: TitleID(e.TitleID), InnerPath: e.InnerPath})
		}
		raw = append(raw, Container{ContainerPath: c.ContainerPath, Entries: entries})
	}
	return json.MarshalIndent(raw, "", "  ")
}

// Enabled returns the enabled entries of a container
func Enabled(c types.DownloadableContentContainer) []types.DownloadableContentEntry {
	var out []types.DownloadableContentEntry
	for _, e := range c.Entries {
		if e.Enabled {
			out = append(out, e)
		}
	}
	return out
}
