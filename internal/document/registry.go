package document

import "fmt"

// Section identifiers. These are the only ids the section order and the
// visibility map may reference.
const (
	SectionHero          = "hero"
	SectionComparisonTop = "comparison_top"
	SectionRecommend     = "recommend_section"
	SectionDetailTable   = "detail_table"
	SectionShops         = "shops"
	SectionFlow          = "flow"
	SectionSummaryTable  = "summary_table"
	SectionFooter        = "footer"
)

// defaultOrder is the canonical display order for a fresh document.
var defaultOrder = []string{
	SectionHero,
	SectionComparisonTop,
	SectionRecommend,
	SectionDetailTable,
	SectionShops,
	SectionFlow,
	SectionSummaryTable,
	SectionFooter,
}

// sectionLabels maps section ids to operator-facing display names.
var sectionLabels = map[string]string{
	SectionHero:          "Hero (main visual)",
	SectionComparisonTop: "Comparison table (top)",
	SectionRecommend:     "Recommendation message",
	SectionDetailTable:   "Detail comparison table",
	SectionShops:         "Shop cards",
	SectionFlow:          "Purchase flow",
	SectionSummaryTable:  "Summary comparison",
	SectionFooter:        "Footer",
}

// DefaultSectionOrder returns a fresh copy of the canonical order.
func DefaultSectionOrder() []string {
	out := make([]string, len(defaultOrder))
	copy(out, defaultOrder)
	return out
}

// SectionLabel returns the display name for a section id, falling back
// to the id itself for unknown sections.
func SectionLabel(id string) string {
	if label, ok := sectionLabels[id]; ok {
		return label
	}
	return id
}

// KnownSection reports whether id is a registered section.
func KnownSection(id string) bool {
	_, ok := sectionLabels[id]
	return ok
}

// ValidateOrder checks that order is a permutation of the registered
// section ids.
func ValidateOrder(order []string) error {
	if len(order) != len(defaultOrder) {
		return fmt.Errorf("section order has %d entries, want %d", len(order), len(defaultOrder))
	}
	seen := make(map[string]bool, len(order))
	for _, id := range order {
		if !KnownSection(id) {
			return fmt.Errorf("unknown section %q in order", id)
		}
		if seen[id] {
			return fmt.Errorf("duplicate section %q in order", id)
		}
		seen[id] = true
	}
	return nil
}

// SwapUp swaps the section at index i with its predecessor. Out-of-range
// indices and the first entry are a no-op.
func SwapUp(order []string, i int) {
	if i <= 0 || i >= len(order) {
		return
	}
	order[i], order[i-1] = order[i-1], order[i]
}

// SwapDown swaps the section at index i with its successor. Out-of-range
// indices and the last entry are a no-op.
func SwapDown(order []string, i int) {
	if i < 0 || i >= len(order)-1 {
		return
	}
	order[i], order[i+1] = order[i+1], order[i]
}
