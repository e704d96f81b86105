// pkg/testutil/archive.go
// DEPENDENCIES: None (base test utilities)
// PURPOSE: Fake archive parsing driven by JSON descriptions

package testutil

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"sync"

	"github.com/arthur-debert/apploader/pkg/types"
)

// ArchiveSpec describes an archive. Serialized as JSON it is the content
// of a fake archive file.
type ArchiveSpec struct {
	Kind          types.ContentKind  `json:"kind"`
	TitleID       uint64             `json:"titleId"`
	ProgramIDBase uint64             `json:"programIdBase"`
	Meta          *types.ContentMeta `json:"meta,omitempty"`

	// MetaError makes ContentMeta fail with this message
	MetaError string `json:"metaError,omitempty"`
}

// Encode serializes the spec
func (s ArchiveSpec) Encode() []byte {
	data, err := json.Marshal(s)
	if err != nil {
		panic(fmt.Sprintf("encode archive spec: %v", err))
	}
	return data
}

// MockArchiveParser implements types.ArchiveParser for ArchiveSpec files
// and tracks how many archives are open
type MockArchiveParser struct {
	mu     sync.Mutex
	opened int
	closed int
	keys   []types.KeySet
}

// NewMockArchiveParser creates a parser
func NewMockArchiveParser() *MockArchiveParser {
	return &MockArchiveParser{}
}

// OpenArchive reads f fully and decodes it as an ArchiveSpec
func (p *MockArchiveParser) OpenArchive(f types.File, keys types.KeySet) (types.Archive, error) {
	data, err := io.ReadAll(f)
	_ = f.Close()
	if err != nil {
		return nil, err
	}

	var spec ArchiveSpec
	if err := json.Unmarshal(data, &spec); err != nil {
		return nil, fmt.Errorf("invalid archive header: %w", err)
	}

	p.mu.Lock()
	p.keys = append(p.keys, keys)
	p.mu.Unlock()

	return p.NewArchive(spec), nil
}

// NewArchive returns an open archive for spec
func (p *MockArchiveParser) NewArchive(spec ArchiveSpec) *MockArchive {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.opened++
	return &MockArchive{spec: spec, parser: p}
}

// OpenCount returns the number of archives not yet closed
func (p *MockArchiveParser) OpenCount() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.opened - p.closed
}

// Opened returns the number of archives ever opened
func (p *MockArchiveParser) Opened() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.opened
}

// KeySets returns the key sets passed to OpenArchive
func (p *MockArchiveParser) KeySets() []types.KeySet {
	p.mu.Lock()
	defer p.mu.Unlock()
	return append([]types.KeySet(nil), p.keys...)
}

func (p *MockArchiveParser) release() {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.closed++
}

// MockArchive implements types.Archive
type MockArchive struct {
	spec   ArchiveSpec
	parser *MockArchiveParser
	closed bool
}

func (a *MockArchive) Kind() types.ContentKind { return a.spec.Kind }
func (a *MockArchive) TitleID() uint64         { return a.spec.TitleID }
func (a *MockArchive) ProgramIDBase() uint64   { return a.spec.ProgramIDBase }

// Spec returns the description the archive was built from
func (a *MockArchive) Spec() ArchiveSpec { return a.spec }

// Closed reports whether Close was called
func (a *MockArchive) Closed() bool { return a.closed }

func (a *MockArchive) ContentMeta(level types.IntegrityCheckLevel) (*types.ContentMeta, error) {
	if a.spec.MetaError != "" {
		return nil, errors.New(a.spec.MetaError)
	}
	if a.spec.Meta == nil {
		return nil, errors.New("archive has no metadata section")
	}
	meta := *a.spec.Meta
	return &meta, nil
}

func (a *MockArchive) Close() error {
	if a.closed {
		return errors.New("archive already closed")
	}
	a.closed = true
	a.parser.release()
	return nil
}
