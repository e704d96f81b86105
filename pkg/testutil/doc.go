// Package testutil provides utilities for testing apploader components.
//
// Key components:
//   - TestEnvironment: in-memory filesystem, paths and mocks wired into a Loader
//   - MockArchiveParser: parses archives described as JSON ArchiveSpec documents
//   - MockAddOnRegistry, MockProcessBuilder, MockUpdateFinder, MockProgramMap:
//     recording implementations of the loader's collaborators
//
// All test data is defined inline; nothing touches the real filesystem.
package testutil
