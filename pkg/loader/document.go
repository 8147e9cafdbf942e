package loader

import (
	"path"
	"strings"
)

// Kind says which reader a document is dispatched to.
type Kind int

const (
	KindUnknown Kind = iota
	KindTitles
	KindReligions
	KindCultures
	KindDynasties
	KindProvince
	KindMap
	KindLocalisation
)

// String returns the kind's metric and log label.
func (k Kind) String() string {
	switch k {
	case KindTitles:
		return "titles"
	case KindReligions:
		return "religions"
	case KindCultures:
		return "cultures"
	case KindDynasties:
		return "dynasties"
	case KindProvince:
		return "provinces"
	case KindMap:
		return "map"
	case KindLocalisation:
		return "localisation"
	default:
		return "unknown"
	}
}

// mapDescriptor is the relative path of the map descriptor.
const mapDescriptor = "map/default.map"

// folders are the game folders scanned for documents, with the extension
// their documents carry.
var folders = []struct {
	dir  string
	ext  string
	kind Kind
}{
	{"common/landed_titles", ".txt", KindTitles},
	{"common/religions", ".txt", KindReligions},
	{"common/cultures", ".txt", KindCultures},
	{"common/dynasties", ".txt", KindDynasties},
	{"history/provinces", ".txt", KindProvince},
	{"localisation", ".csv", KindLocalisation},
}

// KindOf classifies a slash-separated path relative to the game root.
func KindOf(rel string) Kind {
	if rel == mapDescriptor {
		return KindMap
	}
	ext := strings.ToLower(path.Ext(rel))
	for _, f := range folders {
		if ext == f.ext && strings.HasPrefix(rel, f.dir+"/") {
			return f.kind
		}
	}
	return KindUnknown
}

// Document is one file selected for loading.
type Document struct {
	// Path is the file on disk
	Path string

	// Rel is the slash-separated path relative to the layer root. Documents
	// of later layers replace earlier ones with the same Rel.
	Rel string

	// Kind selects the reader
	Kind Kind

	// Layer names the mod the document comes from; empty for the base game
	Layer string
}
