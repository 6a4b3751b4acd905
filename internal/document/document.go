package document

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"sort"
)

// requiredKeys are the top-level keys every persisted document must carry.
// A missing key is a structural mismatch and fails the whole load; there
// are no silent defaults.
var requiredKeys = []string{
	"site",
	"colors",
	"hero",
	"comparison_top",
	"recommend_section",
	"detail_table",
	"shops",
	"flow",
	"summary_table",
	"footer",
	"sections_visibility",
}

// Load parses a full configuration document from r. The load is
// all-or-nothing: on any parse or structural error the caller's current
// document is untouched and the error describes the missing piece.
func Load(r io.Reader) (*Document, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("reading document: %w", err)
	}

	var raw map[string]json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("parsing document: %w", err)
	}

	var missing []string
	for _, key := range requiredKeys {
		if _, ok := raw[key]; !ok {
			missing = append(missing, key)
		}
	}
	if len(missing) > 0 {
		sort.Strings(missing)
		return nil, fmt.Errorf("document is missing required sections: %v", missing)
	}

	var doc Document
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("decoding document: %w", err)
	}

	// section_order is editor state layered on the wire format: older
	// documents omit it, so derive the default rather than failing.
	if len(doc.SectionOrder) == 0 {
		doc.SectionOrder = DefaultSectionOrder()
	} else if err := ValidateOrder(doc.SectionOrder); err != nil {
		return nil, fmt.Errorf("decoding document: %w", err)
	}
	if doc.Visibility == nil {
		return nil, fmt.Errorf("document sections_visibility must be an object")
	}

	return &doc, nil
}

// LoadFile loads a document from a JSON file on disk.
func LoadFile(path string) (*Document, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening document %s: %w", path, err)
	}
	defer f.Close()

	doc, err := Load(f)
	if err != nil {
		return nil, fmt.Errorf("loading %s: %w", path, err)
	}
	return doc, nil
}

// Save writes the document to w as two-space-indented UTF-8 JSON.
// load(save(doc)) is structurally identical to doc.
func (d *Document) Save(w io.Writer) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	enc.SetEscapeHTML(false)
	if err := enc.Encode(d); err != nil {
		return fmt.Errorf("encoding document: %w", err)
	}
	return nil
}

// SaveFile serializes the document to a file on disk.
func (d *Document) SaveFile(path string) error {
	var buf bytes.Buffer
	if err := d.Save(&buf); err != nil {
		return err
	}
	if err := os.WriteFile(path, buf.Bytes(), 0o644); err != nil {
		return fmt.Errorf("writing document to %s: %w", path, err)
	}
	return nil
}

// Clone returns a deep copy sharing no mutable substructure with the
// receiver. Rendering and export always operate on a clone so the
// editing session's document is never disturbed.
func (d *Document) Clone() *Document {
	data, err := json.Marshal(d)
	if err != nil {
		// The document is a closed tree of marshal-safe types; failure
		// here means the type definitions themselves are broken.
		panic(fmt.Sprintf("document: clone marshal: %v", err))
	}
	var out Document
	if err := json.Unmarshal(data, &out); err != nil {
		panic(fmt.Sprintf("document: clone unmarshal: %v", err))
	}
	if len(out.SectionOrder) == 0 {
		out.SectionOrder = DefaultSectionOrder()
	}
	return &out
}

// Equal reports structural equality of two documents, ignoring JSON key
// order.
func Equal(a, b *Document) bool {
	aj, err := json.Marshal(a)
	if err != nil {
		return false
	}
	bj, err := json.Marshal(b)
	if err != nil {
		return false
	}
	return bytes.Equal(aj, bj)
}

// SectionVisible reports whether a whole section renders. Sections
// absent from the visibility map default to visible, matching the
// editor's checkbox semantics.
func (d *Document) SectionVisible(id string) bool {
	if v, ok := d.Visibility[id]; ok {
		return v
	}
	return true
}
