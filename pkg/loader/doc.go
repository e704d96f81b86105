// Package loader resolves, from a container of packaged content, the set
// of archives making up one loadable title: the main program, an optional
// update, the control archive and the enabled add-on content.
//
// Resolution runs in one synchronous pass:
//
//	Start -> MetadataResolved -> MainValidated -> UpdateMerged -> AddOnResolved -> Loaded
//
// and any step may fail with a single descriptive error. Per-entry problems
// (a corrupt archive during a scan, a missing add-on content file) are
// logged and skipped; they never fail a load.
//
// The key set and add-on content registry are passed in through a Context
// so callers control their lifetime. Loads sharing a Context must be
// serialized by the caller.
package loader
