package types

// DownloadableContentEntry is one add-on content archive inside a container
type DownloadableContentEntry struct {
	Enabled   bool
	TitleID   uint64
	InnerPath string
}

// DownloadableContentContainer groups the add-on content entries stored in
// one container file
type DownloadableContentContainer struct {
	ContainerPath string
	Entries       []DownloadableContentEntry
}

// AddOnContentRegistry receives the add-on content resolved for the
// loaded title
type AddOnContentRegistry interface {
	Clear()
	Add(titleID uint64, containerPath, innerPath string)
}
