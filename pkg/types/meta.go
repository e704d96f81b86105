package types

// ContentRecord is one content entry of a parsed metadata record
type ContentRecord struct {
	// ID is the content id as 32 lowercase hex digits
	ID       string
	Type     ContentType
	IDOffset uint8
	Size     int64
}

// ContentMeta is the structured metadata record extracted from a meta
// archive by the external parser
type ContentMeta struct {
	TitleID       uint64
	ApplicationID uint64
	Version       uint32
	Type          MetaType
	Contents      []ContentRecord
}

// ContentLocator references a content unit inside a container
type ContentLocator struct {
	Path     string
	Type     ContentType
	IDOffset uint8
}

// ContentMetaData is the per-application view of a metadata record. It is
// built once per scan and never mutated afterwards.
type ContentMetaData struct {
	applicationID uint64
	titleID       uint64
	version       uint32
	metaType      MetaType
	locators      []ContentLocator
	byType        map[ContentType][]ContentLocator
}

// NewContentMetaData builds locators for every content record of meta.
// Locator paths follow the container naming convention: `<id>.nca`, with
// meta content stored as `<id>.cnmt.nca`.
func NewContentMetaData(meta *ContentMeta) *ContentMetaData {
	cm := &ContentMetaData{
		applicationID: meta.ApplicationID,
		titleID:       meta.TitleID,
		version:       meta.Version,
		metaType:      meta.Type,
		byType:        make(map[ContentType][]ContentLocator),
	}

	for _, record := range meta.Contents {
		loc := ContentLocator{
			Path:     ContentFileName(record.ID, record.Type),
			Type:     record.Type,
			IDOffset: record.IDOffset,
		}
		cm.locators = append(cm.locators, loc)
		cm.byType[record.Type] = append(cm.byType[record.Type], loc)
	}

	return cm
}

// ContentFileName returns the container entry name for a content id
func ContentFileName(id string, t ContentType) string {
	if t == ContentTypeMeta {
		return id + ".cnmt.nca"
	}
	return id + ".nca"
}

func (c *ContentMetaData) ApplicationID() uint64 { return c.applicationID }
func (c *ContentMetaData) TitleID() uint64       { return c.titleID }
func (c *ContentMetaData) Version() uint32       { return c.version }
func (c *ContentMetaData) Type() MetaType        { return c.metaType }

// Locators returns every locator in record order
func (c *ContentMetaData) Locators() []ContentLocator {
	out := make([]ContentLocator, len(c.locators))
	copy(out, c.locators)
	return out
}

// Locator returns the content of type t whose id offset equals the
// persistence index
func (c *ContentMetaData) Locator(t ContentType, index uint8) (ContentLocator, bool) {
	for _, loc := range c.byType[t] {
		if loc.IDOffset == index {
			return loc, true
		}
	}
	return ContentLocator{}, false
}

// ApplicationMap maps application ids to metadata, remembering insertion
// order. The first record added for an id wins.
type ApplicationMap struct {
	order []uint64
	items map[uint64]*ContentMetaData
}

// NewApplicationMap creates an empty map
func NewApplicationMap() *ApplicationMap {
	return &ApplicationMap{items: make(map[uint64]*ContentMetaData)}
}

// Add inserts meta unless its application id is already present.
// It reports whether meta was inserted.
func (m *ApplicationMap) Add(meta *ContentMetaData) bool {
	id := meta.ApplicationID()
	if _, exists := m.items[id]; exists {
		return false
	}
	m.items[id] = meta
	m.order = append(m.order, id)
	return true
}

// Get performs an exact lookup
func (m *ApplicationMap) Get(id uint64) (*ContentMetaData, bool) {
	meta, ok := m.items[id]
	return meta, ok
}

// First returns the earliest inserted record
func (m *ApplicationMap) First() (*ContentMetaData, bool) {
	if len(m.order) == 0 {
		return nil, false
	}
	return m.items[m.order[0]], true
}

// IDs returns application ids in insertion order
func (m *ApplicationMap) IDs() []uint64 {
	out := make([]uint64, len(m.order))
	copy(out, m.order)
	return out
}

func (m *ApplicationMap) Len() int { return len(m.order) }
