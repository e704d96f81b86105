// Package filesystem provides the filesystem access used for manifest
// reads and add-on content existence checks.
//
// It contains the FS interface with an OS implementation and an
// afero-backed implementation used by tests.
package filesystem
