// Package assets converts uploaded images to embeddable data URIs during
// editing and back to discrete files during export.
package assets

import (
	"encoding/base64"
	"fmt"
	"regexp"
	"strings"
)

// dataURIRe matches the embedded form a field may hold:
// data:<mime>;base64,<payload>. Anything that does not match is treated
// as an external URL and left alone.
var dataURIRe = regexp.MustCompile(`^data:([\w.+-]+/[\w.+-]+);base64,(.*)$`)

// extByMIME maps recognized image MIME types to file extensions.
// Unrecognized types that still matched the data-URI grammar fall back
// to png.
var extByMIME = map[string]string{
	"image/png":     "png",
	"image/jpeg":    "jpg",
	"image/gif":     "gif",
	"image/webp":    "webp",
	"image/svg+xml": "svg",
}

// ToDataURI encodes raw image bytes and their declared MIME type as a
// self-contained data URI.
func ToDataURI(b []byte, mime string) string {
	return "data:" + mime + ";base64," + base64.StdEncoding.EncodeToString(b)
}

// IsDataURI reports whether value holds an embedded image rather than an
// external URL. A bare prefix check suffices; no real URL scheme
// collides with it.
func IsDataURI(value string) bool {
	return strings.HasPrefix(value, "data:")
}

// ExtForMIME returns the export file extension for a MIME type.
func ExtForMIME(mime string) string {
	if ext, ok := extByMIME[strings.ToLower(mime)]; ok {
		return ext
	}
	return "png"
}

// File is one image extracted from a document during an export pass.
type File struct {
	Name string // e.g. "logo_001.png"
	Path string // archive path, e.g. "images/logo_001.png"
	Data []byte
}

// Extractor turns embedded data URIs back into files over one export
// pass. The filename counter is shared across all prefixes so names
// never collide between semantic categories.
type Extractor struct {
	seq   int
	files []*File
}

// NewExtractor returns an Extractor for a single export pass.
func NewExtractor() *Extractor {
	return &Extractor{}
}

// Extract resolves one image-bearing field value. A value that is not a
// data URI (an external URL, an anchor, an empty string) passes through
// unchanged with a nil file. A matching value is decoded,
// assigned the next <prefix>_<NNN>.<ext> name and rewritten to its
// archive-relative images/ path.
func (e *Extractor) Extract(value, prefix string) (string, *File) {
	m := dataURIRe.FindStringSubmatch(value)
	if m == nil {
		return value, nil
	}

	data, err := base64.StdEncoding.DecodeString(m[2])
	if err != nil {
		// A malformed embed is left in place rather than failing the
		// whole export.
		return value, nil
	}

	e.seq++
	name := fmt.Sprintf("%s_%03d.%s", prefix, e.seq, ExtForMIME(m[1]))
	f := &File{
		Name: name,
		Path: "images/" + name,
		Data: data,
	}
	e.files = append(e.files, f)
	return f.Path, f
}

// Files returns every file extracted so far, in extraction order.
func (e *Extractor) Files() []*File {
	return e.files
}
