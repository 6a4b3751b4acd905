package document

import (
	"encoding/json"
	"fmt"
)

// cloneShop deep-copies one card so the new card shares no slices or
// info pairs with its source.
func cloneShop(src ShopCard) ShopCard {
	data, err := json.Marshal(src)
	if err != nil {
		panic(fmt.Sprintf("document: shop clone marshal: %v", err))
	}
	var out ShopCard
	if err := json.Unmarshal(data, &out); err != nil {
		panic(fmt.Sprintf("document: shop clone unmarshal: %v", err))
	}
	return out
}

// DeriveRanks stamps rank = position+1 over the shop cards in order.
// Rank is always derived from the current sequence immediately before a
// render; whatever values the fields held before are overwritten.
func (d *Document) DeriveRanks() {
	for i := range d.Shops {
		d.Shops[i].Rank = i + 1
	}
}

// AddColumn appends a column to the detail table and pads every row
// with one empty cell, keeping len(cells) == len(columns).
func (t *DetailTable) AddColumn(name string) {
	t.Columns = append(t.Columns, name)
	for i := range t.Rows {
		t.Rows[i].Cells = append(t.Rows[i].Cells, "")
	}
}

// RemoveColumn drops the last column and the last cell of every row.
// The table never goes below one column.
func (t *DetailTable) RemoveColumn() error {
	if len(t.Columns) <= 1 {
		return fmt.Errorf("detail table must keep at least one column")
	}
	t.Columns = t.Columns[:len(t.Columns)-1]
	for i := range t.Rows {
		if n := len(t.Rows[i].Cells); n > 0 {
			t.Rows[i].Cells = t.Rows[i].Cells[:n-1]
		}
	}
	return nil
}

// AddRow appends a row with one empty cell per current column.
func (t *DetailTable) AddRow(label string) {
	t.Rows = append(t.Rows, Row{
		Label: label,
		Cells: make([]string, len(t.Columns)),
	})
}

// RemoveRow drops the last row. The table never goes below one row.
func (t *DetailTable) RemoveRow() error {
	if len(t.Rows) <= 1 {
		return fmt.Errorf("detail table must keep at least one row")
	}
	t.Rows = t.Rows[:len(t.Rows)-1]
	return nil
}

// Normalize pads or truncates every row so its cell count matches the
// column count. Mutating operations keep the invariant proactively;
// this exists for documents edited outside the tool.
func (t *DetailTable) Normalize() {
	want := len(t.Columns)
	for i := range t.Rows {
		cells := t.Rows[i].Cells
		for len(cells) < want {
			cells = append(cells, "")
		}
		t.Rows[i].Cells = cells[:want]
	}
}

// AddShop appends a new shop card. Like the editor's "add card" button
// it clones the last card as a starting point, re-stamping id, rank and
// name; with no cards present it seeds a blank one.
func (d *Document) AddShop() *ShopCard {
	n := len(d.Shops) + 1
	var card ShopCard
	if len(d.Shops) > 0 {
		card = cloneShop(d.Shops[len(d.Shops)-1])
	} else {
		card = ShopCard{
			Link: "#",
			Info: InfoMap{},
			Visibility: Visibility{
				Info:     true,
				Features: true,
				Reviews:  true,
				Campaign: true,
				CTA:      true,
			},
			CTAText: "Learn more",
		}
	}
	card.ID = fmt.Sprintf("shop%d", n)
	card.Rank = n
	card.Name = fmt.Sprintf("New shop %d", n)
	d.Shops = append(d.Shops, card)
	return &d.Shops[len(d.Shops)-1]
}

// RemoveShop drops the last shop card, keeping at least one.
func (d *Document) RemoveShop() error {
	if len(d.Shops) <= 1 {
		return fmt.Errorf("document must keep at least one shop card")
	}
	d.Shops = d.Shops[:len(d.Shops)-1]
	return nil
}

// MoveShop moves the card at index from to index to, shifting the
// cards in between. Ranks are left stale on purpose: they are
// re-derived from position before every render.
func (d *Document) MoveShop(from, to int) error {
	n := len(d.Shops)
	if from < 0 || from >= n || to < 0 || to >= n {
		return fmt.Errorf("shop index out of range (have %d cards)", n)
	}
	if from == to {
		return nil
	}
	card := d.Shops[from]
	rest := append(d.Shops[:from:from], d.Shops[from+1:]...)
	d.Shops = append(rest[:to:to], append([]ShopCard{card}, rest[to:]...)...)
	return nil
}

// ShopByID returns the card with the given id, or nil.
func (d *Document) ShopByID(id string) *ShopCard {
	for i := range d.Shops {
		if d.Shops[i].ID == id {
			return &d.Shops[i]
		}
	}
	return nil
}

// AddFeature appends a blank feature to the card.
func (s *ShopCard) AddFeature() {
	s.Features = append(s.Features, Feature{Title: "New feature", Text: "Description"})
}

// RemoveFeature drops the last feature, keeping at least one.
func (s *ShopCard) RemoveFeature() error {
	if len(s.Features) <= 1 {
		return fmt.Errorf("shop card must keep at least one feature")
	}
	s.Features = s.Features[:len(s.Features)-1]
	return nil
}

// AddReview appends a placeholder review.
func (s *ShopCard) AddReview() {
	s.Reviews = append(s.Reviews, "New review")
}

// RemoveReview drops the last review. Reviews may go to zero.
func (s *ShopCard) RemoveReview() error {
	if len(s.Reviews) == 0 {
		return fmt.Errorf("no reviews to remove")
	}
	s.Reviews = s.Reviews[:len(s.Reviews)-1]
	return nil
}

// AddExtraImage appends a free-form image slot.
func (s *ShopCard) AddExtraImage(value string) {
	s.ExtraImages = append(s.ExtraImages, value)
}

// RemoveExtraImage drops the last extra image slot.
func (s *ShopCard) RemoveExtraImage() error {
	if len(s.ExtraImages) == 0 {
		return fmt.Errorf("no extra images to remove")
	}
	s.ExtraImages = s.ExtraImages[:len(s.ExtraImages)-1]
	return nil
}

// AddCompShop appends a minimal shop summary to the top comparison.
func (c *ComparisonTop) AddCompShop() {
	c.Shops = append(c.Shops, CompShop{
		Name: "New shop",
		Link: "#",
		Metrics: []Metric{
			{Label: "Item", Value: "Value", Rating: RatingCircle},
		},
		CTAText: "Apply now (free)",
	})
}

// RemoveCompShop drops the last summary, keeping at least one.
func (c *ComparisonTop) RemoveCompShop() error {
	if len(c.Shops) <= 1 {
		return fmt.Errorf("comparison table must keep at least one shop")
	}
	c.Shops = c.Shops[:len(c.Shops)-1]
	return nil
}

// AddStep appends a flow step with an emoji icon.
func (f *Flow) AddStep() {
	f.Steps = append(f.Steps, Step{
		Title:    "New step",
		Text:     "Description",
		IconType: IconEmoji,
		Icon:     "📋",
	})
}

// RemoveStep drops the last flow step, keeping at least one.
func (f *Flow) RemoveStep() error {
	if len(f.Steps) <= 1 {
		return fmt.Errorf("flow must keep at least one step")
	}
	f.Steps = f.Steps[:len(f.Steps)-1]
	return nil
}
