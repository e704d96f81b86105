// Package paths provides centralized path handling for apploader.
//
// Directories follow the XDG Base Directory specification with
// environment overrides. The games directory holds one subdirectory per
// program id base; each may contain the add-on content manifest written
// by the title manager.
package paths
