// Package export materializes a configuration document into a
// self-contained HTML + image-file ZIP bundle.
package export

import (
	"archive/zip"
	"bytes"
	"fmt"

	"github.com/lpforge/lpforge/internal/assets"
	"github.com/lpforge/lpforge/internal/document"
	"github.com/lpforge/lpforge/internal/render"
)

// Image filename prefixes, named for the semantic origin of the field.
const (
	prefixLogo     = "logo"
	prefixHero     = "hero"
	prefixCompLogo = "comp_logo"
	prefixShopLogo = "shop_logo"
	prefixCampaign = "campaign"
	prefixFeature  = "feature"
	prefixExtra    = "extra"
	prefixFlowIcon = "flow_icon"
)

// Package builds the export archive for doc: exactly one index.html at
// the root plus one file per embedded image under images/. The input
// document is never mutated; all rewriting happens on a deep copy.
func Package(doc *document.Document, renderer *render.Renderer) ([]byte, error) {
	working := doc.Clone()
	ex := assets.NewExtractor()
	resolveImages(working, ex)

	html, err := renderer.Render(working, true)
	if err != nil {
		return nil, fmt.Errorf("rendering export HTML: %w", err)
	}

	var buf bytes.Buffer
	zw := zip.NewWriter(&buf)

	w, err := zw.Create("index.html")
	if err != nil {
		return nil, fmt.Errorf("creating index.html entry: %w", err)
	}
	if _, err := w.Write([]byte(html)); err != nil {
		return nil, fmt.Errorf("writing index.html: %w", err)
	}

	for _, f := range ex.Files() {
		w, err := zw.Create(f.Path)
		if err != nil {
			return nil, fmt.Errorf("creating %s entry: %w", f.Path, err)
		}
		if _, err := w.Write(f.Data); err != nil {
			return nil, fmt.Errorf("writing %s: %w", f.Path, err)
		}
	}

	if err := zw.Close(); err != nil {
		return nil, fmt.Errorf("finalizing archive: %w", err)
	}
	return buf.Bytes(), nil
}

// resolveImages walks every image-bearing field in a fixed traversal
// order, replacing embedded data URIs with their extracted images/ path.
// The order is deterministic so the same document always exports the
// same filenames.
func resolveImages(doc *document.Document, ex *assets.Extractor) {
	doc.Site.LogoURL, _ = ex.Extract(doc.Site.LogoURL, prefixLogo)
	doc.Hero.BGImageURL, _ = ex.Extract(doc.Hero.BGImageURL, prefixHero)

	for i := range doc.ComparisonTop.Shops {
		s := &doc.ComparisonTop.Shops[i]
		s.LogoURL, _ = ex.Extract(s.LogoURL, prefixCompLogo)
	}

	for i := range doc.Shops {
		shop := &doc.Shops[i]
		shop.LogoURL, _ = ex.Extract(shop.LogoURL, prefixShopLogo)
		shop.Campaign.ImageURL, _ = ex.Extract(shop.Campaign.ImageURL, prefixCampaign)
		for j := range shop.Features {
			shop.Features[j].ImageURL, _ = ex.Extract(shop.Features[j].ImageURL, prefixFeature)
		}
		for j := range shop.ExtraImages {
			shop.ExtraImages[j], _ = ex.Extract(shop.ExtraImages[j], prefixExtra)
		}
	}

	for i := range doc.Flow.Steps {
		step := &doc.Flow.Steps[i]
		step.IconImageURL, _ = ex.Extract(step.IconImageURL, prefixFlowIcon)
	}
}
