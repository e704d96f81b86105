// pkg/testutil/mocks.go
// DEPENDENCIES: None (base test utilities)
// PURPOSE: Recording implementations of loader collaborators

package testutil

import (
	"fmt"
	"sync"

	"github.com/arthur-debert/apploader/pkg/aoc"
	"github.com/arthur-debert/apploader/pkg/types"
)

// MockAddOnRegistry records Clear and Add calls
type MockAddOnRegistry struct {
	mu     sync.Mutex
	clears int
	adds   []aoc.Item
	calls  []string
}

// NewMockAddOnRegistry creates an empty registry
func NewMockAddOnRegistry() *MockAddOnRegistry {
	return &MockAddOnRegistry{}
}

func (m *MockAddOnRegistry) Clear() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.clears++
	m.adds = nil
	m.calls = append(m.calls, "Clear()")
}

func (m *MockAddOnRegistry) Add(titleID uint64, containerPath, innerPath string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.adds = append(m.adds, aoc.Item{TitleID: titleID, ContainerPath: containerPath, InnerPath: innerPath})
	m.calls = append(m.calls, fmt.Sprintf("Add(%016x,%s,%s)", titleID, containerPath, innerPath))
}

// Items returns the items added since the last Clear
func (m *MockAddOnRegistry) Items() []aoc.Item {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]aoc.Item(nil), m.adds...)
}

// Clears returns how often Clear was called
func (m *MockAddOnRegistry) Clears() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.clears
}

// GetCalls returns every call in order
func (m *MockAddOnRegistry) GetCalls() []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]string(nil), m.calls...)
}

// BuildCall captures the archives handed to a process builder
type BuildCall struct {
	Main, Patch, Control ArchiveSpec
	HasPatch, HasControl bool
}

// MockProcessBuilder records Build calls and returns a fixed result
type MockProcessBuilder struct {
	mu            sync.Mutex
	calls         []BuildCall
	result        types.ProcessResult
	errorToReturn error
}

// NewMockProcessBuilder creates a builder returning "process"
func NewMockProcessBuilder() *MockProcessBuilder {
	return &MockProcessBuilder{result: "process"}
}

// WithResult sets the returned result
func (m *MockProcessBuilder) WithResult(result types.ProcessResult) *MockProcessBuilder {
	m.result = result
	return m
}

// WithError makes Build fail
func (m *MockProcessBuilder) WithError(err error) *MockProcessBuilder {
	m.errorToReturn = err
	return m
}

func (m *MockProcessBuilder) Build(main, patch, control types.Archive) (types.ProcessResult, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	call := BuildCall{Main: specOf(main)}
	if patch != nil {
		call.Patch, call.HasPatch = specOf(patch), true
	}
	if control != nil {
		call.Control, call.HasControl = specOf(control), true
	}
	m.calls = append(m.calls, call)

	if m.errorToReturn != nil {
		return nil, m.errorToReturn
	}
	return m.result, nil
}

// Calls returns the recorded Build calls
func (m *MockProcessBuilder) Calls() []BuildCall {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]BuildCall(nil), m.calls...)
}

func specOf(a types.Archive) ArchiveSpec {
	if mock, ok := a.(*MockArchive); ok {
		return mock.Spec()
	}
	return ArchiveSpec{Kind: a.Kind(), TitleID: a.TitleID(), ProgramIDBase: a.ProgramIDBase()}
}

// MockUpdateFinder returns preset update archives
type MockUpdateFinder struct {
	Patch, Control types.Archive
	Err            error

	calls int
}

func (m *MockUpdateFinder) FindUpdate(main types.Archive, level types.IntegrityCheckLevel, index uint8, originPath string) (types.Archive, types.Archive, error) {
	m.calls++
	if m.Err != nil {
		return nil, nil, m.Err
	}
	return m.Patch, m.Control, nil
}

// Calls returns how often FindUpdate ran
func (m *MockUpdateFinder) Calls() int { return m.calls }

// MockProgramMap records program map registrations
type MockProgramMap struct {
	Err        error
	Containers []string
}

func (m *MockProgramMap) RegisterProgramMap(c types.Container) error {
	m.Containers = append(m.Containers, c.Path())
	return m.Err
}
