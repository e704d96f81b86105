// Package container implements the container abstraction over afero.
//
// Directory serves extracted titles laid out on a filesystem. Opener
// opens directories directly and dispatches files to container formats
// registered by extension; binary formats (partition and game card
// images) are supplied by the host.
package container
