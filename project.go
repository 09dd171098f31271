package main

import (
	"path/filepath"
	"sort"
	"strings"
)

// Project is one portfolio entry: a remodeling job with its media documents.
type Project struct {
	ID        string     `json:"id"`
	Title     string     `json:"title"`
	Category  string     `json:"category"`
	Location  string     `json:"location"`
	Year      int        `json:"year"`
	Featured  bool       `json:"featured"`
	Documents []Document `json:"documents"`
}

// Document is a stored media record attached to a project. URLs point at
// local files or archive entries in "archive:entry" form.
type Document struct {
	ID           string `json:"id"`
	Title        string `json:"title"`
	URL          string `json:"url"`
	ThumbnailURL string `json:"thumbnail_url,omitempty"`
	ContentType  string `json:"content_type,omitempty"`
	Caption      string `json:"caption,omitempty"`
	Featured     bool   `json:"featured,omitempty"`
	SortOrder    int    `json:"sort_order,omitempty"`
}

// Picture is the presentation-layer image record the gallery displays.
// It is immutable once built and discarded when the gallery closes.
type Picture struct {
	ID           string
	URI          string
	Type         string
	Description  string
	ThumbnailURI string
}

// imageExts are the raster formats the viewer can decode. webp and bmp come
// from golang.org/x/image, the rest from the standard decoders.
var imageExts = map[string]bool{
	".png":  true,
	".jpg":  true,
	".jpeg": true,
	".webp": true,
	".bmp":  true,
	".gif":  true,
}

func isSupportedExt(path string) bool {
	return imageExts[strings.ToLower(filepath.Ext(path))]
}

func isArchiveExt(path string) bool {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".zip", ".rar", ".7z":
		return true
	default:
		return false
	}
}

// isImageDocument reports whether a document is gallery-displayable. The
// content type wins when present; otherwise the URL extension decides.
// Archive-entry URLs ("album.zip:kitchen/01.jpg") check the entry part.
func isImageDocument(d Document) bool {
	if d.ContentType != "" {
		return strings.HasPrefix(strings.ToLower(d.ContentType), "image/")
	}
	uri := d.URL
	if _, entry, ok := splitArchiveURI(uri); ok {
		uri = entry
	}
	return isSupportedExt(uri)
}

// ConvertDocumentsToPictures maps stored documents to the gallery's Picture
// shape: non-image documents (PDFs, plans) are dropped, as are documents
// without a URL; duplicate URLs keep the first occurrence; output is ordered
// by sort key, ties by input order.
func ConvertDocumentsToPictures(docs []Document) []Picture {
	type keyed struct {
		pic  Picture
		sort int
		pos  int
	}

	seen := make(map[string]bool)
	kept := make([]keyed, 0, len(docs))
	for i, d := range docs {
		if d.URL == "" || !isImageDocument(d) {
			continue
		}
		if seen[d.URL] {
			continue
		}
		seen[d.URL] = true
		kept = append(kept, keyed{
			pic: Picture{
				ID:           d.ID,
				URI:          d.URL,
				Type:         d.ContentType,
				Description:  d.Caption,
				ThumbnailURI: d.ThumbnailURL,
			},
			sort: d.SortOrder,
			pos:  i,
		})
	}

	sort.SliceStable(kept, func(i, j int) bool {
		if kept[i].sort != kept[j].sort {
			return kept[i].sort < kept[j].sort
		}
		return kept[i].pos < kept[j].pos
	})

	pictures := make([]Picture, len(kept))
	for i, k := range kept {
		pictures[i] = k.pic
	}
	return pictures
}

// splitArchiveURI splits an "archive.zip:entry/path.jpg" URI. Windows drive
// letters ("C:\...") are not treated as archive separators.
func splitArchiveURI(uri string) (archive, entry string, ok bool) {
	idx := strings.Index(uri, ":")
	for idx >= 0 {
		candidate := uri[:idx]
		if isArchiveExt(candidate) {
			return candidate, uri[idx+1:], true
		}
		next := strings.Index(uri[idx+1:], ":")
		if next < 0 {
			break
		}
		idx += 1 + next
	}
	return "", "", false
}
