package types

import (
	"fmt"
	"strings"
)

// MetaType is the kind of title a content metadata record describes
type MetaType uint8

const (
	MetaTypeSystemProgram        MetaType = 0x01
	MetaTypeSystemData           MetaType = 0x02
	MetaTypeSystemUpdate         MetaType = 0x03
	MetaTypeBootImagePackage     MetaType = 0x04
	MetaTypeBootImagePackageSafe MetaType = 0x05
	MetaTypeApplication          MetaType = 0x80
	MetaTypePatch                MetaType = 0x81
	MetaTypeAddOnContent         MetaType = 0x82
	MetaTypeDelta                MetaType = 0x83
	MetaTypeDataPatch            MetaType = 0x84
)

var metaTypeNames = map[MetaType]string{
	MetaTypeSystemProgram:        "SystemProgram",
	MetaTypeSystemData:           "SystemData",
	MetaTypeSystemUpdate:         "SystemUpdate",
	MetaTypeBootImagePackage:     "BootImagePackage",
	MetaTypeBootImagePackageSafe: "BootImagePackageSafe",
	MetaTypeApplication:          "Application",
	MetaTypePatch:                "Patch",
	MetaTypeAddOnContent:         "AddOnContent",
	MetaTypeDelta:                "Delta",
	MetaTypeDataPatch:            "DataPatch",
}

func (t MetaType) String() string {
	if name, ok := metaTypeNames[t]; ok {
		return name
	}
	return fmt.Sprintf("MetaType(0x%02x)", uint8(t))
}

// ContentType is the role of one content record inside a metadata record
type ContentType uint8

const (
	ContentTypeMeta ContentType = iota
	ContentTypeProgram
	ContentTypeData
	ContentTypeControl
	ContentTypeHtmlDocument
	ContentTypeLegalInformation
	ContentTypeDeltaFragment
)

var contentTypeNames = [...]string{
	"Meta", "Program", "Data", "Control", "HtmlDocument", "LegalInformation", "DeltaFragment",
}

func (t ContentType) String() string {
	if int(t) < len(contentTypeNames) {
		return contentTypeNames[t]
	}
	return fmt.Sprintf("ContentType(%d)", uint8(t))
}

// ContentKind is the kind declared in an opened archive's header
type ContentKind uint8

const (
	ContentKindProgram ContentKind = iota
	ContentKindMeta
	ContentKindControl
	ContentKindManual
	ContentKindData
	ContentKindPublicData
)

var contentKindNames = [...]string{"Program", "Meta", "Control", "Manual", "Data", "PublicData"}

func (k ContentKind) String() string {
	if int(k) < len(contentKindNames) {
		return contentKindNames[k]
	}
	return fmt.Sprintf("ContentKind(%d)", uint8(k))
}

// IntegrityCheckLevel controls how hash verification failures are treated
// by the archive parser
type IntegrityCheckLevel uint8

const (
	// IntegrityNone skips verification
	IntegrityNone IntegrityCheckLevel = iota
	// IntegrityWarnOnInvalid logs invalid hashes and keeps reading
	IntegrityWarnOnInvalid
	// IntegrityErrorOnInvalid fails on the first invalid hash
	IntegrityErrorOnInvalid
)

func (l IntegrityCheckLevel) String() string {
	switch l {
	case IntegrityNone:
		return "none"
	case IntegrityWarnOnInvalid:
		return "warn"
	case IntegrityErrorOnInvalid:
		return "error"
	}
	return fmt.Sprintf("IntegrityCheckLevel(%d)", uint8(l))
}

// ParseIntegrityCheckLevel converts the configuration spelling of a level
func ParseIntegrityCheckLevel(s string) (IntegrityCheckLevel, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "none":
		return IntegrityNone, nil
	case "warn":
		return IntegrityWarnOnInvalid, nil
	case "error":
		return IntegrityErrorOnInvalid, nil
	}
	return IntegrityNone, fmt.Errorf("unknown integrity check level %q", s)
}
