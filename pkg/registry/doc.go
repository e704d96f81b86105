// Package registry provides a generic, type-safe keyed registry. It backs
// the add-on content registry (keyed by title id) and the container
// format table (keyed by file extension).
package registry
