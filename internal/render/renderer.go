// Package render turns a configuration document into the final landing
// page HTML. Rendering is a pure function of the document plus an
// export flag; the live document is never mutated.
package render

import (
	"bytes"
	"fmt"
	"html/template"
	"os"
	"strings"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/renderer/html"

	"github.com/lpforge/lpforge/internal/document"
)

// Renderer holds the parsed page template and the markdown converter
// for rich-text fields. It is safe for repeated use; rendering the same
// document twice yields byte-identical output.
type Renderer struct {
	tmpl *template.Template
	md   goldmark.Markdown
}

// pageData is the root object handed to the page template.
type pageData struct {
	Doc    *document.Document
	Export bool
}

// New returns a Renderer using the embedded default page template.
func New() (*Renderer, error) {
	return fromSource(pageTemplate)
}

// NewFromFile returns a Renderer using a custom template file. An empty
// path falls back to the embedded default.
func NewFromFile(path string) (*Renderer, error) {
	if path == "" {
		return New()
	}
	src, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading template %s: %w", path, err)
	}
	r, err := fromSource(string(src))
	if err != nil {
		return nil, fmt.Errorf("parsing template %s: %w", path, err)
	}
	return r, nil
}

func fromSource(src string) (*Renderer, error) {
	r := &Renderer{
		md: goldmark.New(
			goldmark.WithExtensions(extension.GFM),
			goldmark.WithRendererOptions(html.WithUnsafe()),
		),
	}

	tmpl, err := template.New("page").Funcs(r.funcMap()).Parse(src)
	if err != nil {
		return nil, fmt.Errorf("parsing page template: %w", err)
	}
	r.tmpl = tmpl
	return r, nil
}

// Render produces the full HTML page for the document. Sections are
// emitted in the document's section order, honoring both section-level
// and per-shop visibility. Shop ranks are derived from position on a
// clone; the caller's document is untouched.
func (r *Renderer) Render(doc *document.Document, export bool) (string, error) {
	working := doc.Clone()
	working.DeriveRanks()
	working.DetailTable.Normalize()

	var buf bytes.Buffer
	if err := r.tmpl.Execute(&buf, pageData{Doc: working, Export: export}); err != nil {
		return "", fmt.Errorf("executing page template: %w", err)
	}
	return buf.String(), nil
}

func (r *Renderer) funcMap() template.FuncMap {
	return template.FuncMap{
		"markdown":     r.markdown,
		"inlineMD":     r.inlineMarkdown,
		"ratingSymbol": ratingSymbol,
		"nl2br":        nl2br,
		"url":          imageURL,
		"bgStyle":      bgStyle,
	}
}

// imageURL marks an image reference as a trusted URL. Image fields hold
// either an operator-entered URL or a data URI produced by the upload
// path; without this the template engine would strip the data: scheme.
func imageURL(s string) template.URL {
	return template.URL(s)
}

// bgStyle builds the inline background-image attribute for the hero.
// Returns an empty attribute when no image is set.
func bgStyle(u string) template.HTMLAttr {
	if u == "" {
		return ""
	}
	u = strings.ReplaceAll(u, `'`, "%27")
	u = strings.ReplaceAll(u, `"`, "%22")
	return template.HTMLAttr(fmt.Sprintf(` style="background-image:url('%s')"`, u))
}

// markdown converts a rich-text field to HTML.
func (r *Renderer) markdown(src string) (template.HTML, error) {
	var buf bytes.Buffer
	if err := r.md.Convert([]byte(src), &buf); err != nil {
		return "", err
	}
	return template.HTML(buf.String()), nil
}

// inlineMarkdown converts a rich-text field and strips the wrapping
// paragraph, for use inside headings and table cells.
func (r *Renderer) inlineMarkdown(src string) (template.HTML, error) {
	out, err := r.markdown(src)
	if err != nil {
		return "", err
	}
	s := strings.TrimSpace(string(out))
	s = strings.TrimPrefix(s, "<p>")
	s = strings.TrimSuffix(s, "</p>")
	return template.HTML(s), nil
}

// ratingSymbol maps a metric rating to its display glyph.
func ratingSymbol(r document.Rating) string {
	switch r {
	case document.RatingDoubleCircle:
		return "◎"
	case document.RatingCircle:
		return "○"
	case document.RatingTriangle:
		return "△"
	default:
		return string(r)
	}
}

// nl2br renders a plain-text field with hard line breaks preserved.
func nl2br(s string) template.HTML {
	escaped := template.HTMLEscapeString(s)
	return template.HTML(strings.ReplaceAll(escaped, "\n", "<br>"))
}
