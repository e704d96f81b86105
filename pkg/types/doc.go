// Package types defines the data model and collaborator interfaces of
// title resolution: content metadata, archives, containers, add-on
// content records and the external hooks the loader calls into.
package types
