package walker

import (
	"path"
	"strings"
)

// Kind is the broad class of an asset.
type Kind string

const (
	KindImage    Kind = "image"
	KindVideo    Kind = "video"
	KindDocument Kind = "document"
	KindStyle    Kind = "style"
	KindScript   Kind = "script"
	KindData     Kind = "data"
	KindOther    Kind = "other"
)

var kindByExt = map[string]Kind{
	".png": KindImage, ".jpg": KindImage, ".jpeg": KindImage, ".gif": KindImage,
	".webp": KindImage, ".svg": KindImage, ".avif": KindImage, ".ico": KindImage,
	".mp4": KindVideo, ".webm": KindVideo, ".mov": KindVideo, ".ogv": KindVideo,
	".pdf": KindDocument, ".bib": KindDocument, ".txt": KindDocument,
	".css": KindStyle, ".js": KindScript,
	".json": KindData, ".xml": KindData, ".yml": KindData, ".yaml": KindData,
}

// KindOf classifies a file by extension.
func KindOf(name string) Kind {
	if k, ok := kindByExt[strings.ToLower(path.Ext(name))]; ok {
		return k
	}
	return KindOther
}

// IsMedia reports whether the kind can be shown in an <img> or <video>.
func (k Kind) IsMedia() bool { return k == KindImage || k == KindVideo }
