package document

// Rating is the three-level qualitative ranking used by comparison metrics,
// highest to lowest.
type Rating string

const (
	RatingDoubleCircle Rating = "double_circle"
	RatingCircle       Rating = "circle"
	RatingTriangle     Rating = "triangle"
)

// IconType selects which icon field of a flow step is rendered.
type IconType string

const (
	IconEmoji IconType = "emoji"
	IconImage IconType = "image"
)

// Site holds the page-wide settings.
type Site struct {
	Title    string `json:"title"`
	Subtitle string `json:"subtitle"`
	LogoText string `json:"logo_text"`
	LogoURL  string `json:"logo_url"`
	AdLabel  string `json:"ad_label"`
}

// Colors are the five named theme colors, each a hex/CSS color string.
type Colors struct {
	Main   string `json:"main"`
	Sub    string `json:"sub"`
	Text   string `json:"text"`
	BG     string `json:"bg"`
	Accent string `json:"accent"`
}

// Hero is the main visual. Copy is baked into the background image.
type Hero struct {
	BGImageURL string `json:"bg_image_url"`
}

// Metric is one row of a comparison-top shop summary.
type Metric struct {
	Label  string `json:"label"`
	Value  string `json:"value"`
	Rating Rating `json:"rating"`
}

// CompShop is one shop summary in the top comparison table.
type CompShop struct {
	Name    string   `json:"name"`
	LogoURL string   `json:"logo_url"`
	Link    string   `json:"link"`
	CTAText string   `json:"cta_text"`
	Metrics []Metric `json:"metrics"`
}

// ComparisonTop is the above-the-fold comparison table.
type ComparisonTop struct {
	Heading string     `json:"heading"`
	Shops   []CompShop `json:"shops"`
}

// RecommendSection is a single rich-text message block.
type RecommendSection struct {
	Heading string `json:"heading"`
}

// Row is one row of the detail table. len(Cells) always equals the
// current column count of the owning table.
type Row struct {
	Label string   `json:"label"`
	Cells []string `json:"cells"`
}

// DetailTable is the full-width comparison table.
type DetailTable struct {
	Columns    []string `json:"columns"`
	Rows       []Row    `json:"rows"`
	FooterNote string   `json:"footer_note"`
}

// Feature is one selling point of a shop card.
type Feature struct {
	Title    string `json:"title"`
	Text     string `json:"text"`
	ImageURL string `json:"image_url,omitempty"`
}

// Campaign is the promotional block of a shop card.
type Campaign struct {
	Text     string `json:"text"`
	SubText  string `json:"sub_text"`
	ImageURL string `json:"image_url"`
}

// Visibility controls which subsections of a shop card render.
type Visibility struct {
	Info     bool `json:"info"`
	Features bool `json:"features"`
	Reviews  bool `json:"reviews"`
	Campaign bool `json:"campaign"`
	CTA      bool `json:"cta"`
}

// ShopCard is the primary repeating entity: one ranked shop block.
// Rank is derived from slice position before every render; the stored
// value is never authoritative.
type ShopCard struct {
	ID          string     `json:"id"`
	Rank        int        `json:"rank"`
	Name        string     `json:"name"`
	CatchCopy   string     `json:"catch_copy"`
	SubCatch    string     `json:"sub_catch"`
	Link        string     `json:"link"`
	LogoURL     string     `json:"logo_url"`
	Info        InfoMap    `json:"info"`
	Features    []Feature  `json:"features"`
	Reviews     []string   `json:"reviews"`
	Campaign    Campaign   `json:"campaign"`
	CTAText     string     `json:"cta_text"`
	CTASub      string     `json:"cta_sub"`
	Visibility  Visibility `json:"visibility"`
	ExtraImages []string   `json:"extra_images"`
}

// Step is one step of the purchase flow. Icon is used when IconType is
// emoji, IconImageURL when it is image.
type Step struct {
	Title        string   `json:"title"`
	Text         string   `json:"text"`
	IconType     IconType `json:"icon_type"`
	Icon         string   `json:"icon,omitempty"`
	IconImageURL string   `json:"icon_image_url,omitempty"`
}

// Flow is the step-by-step section.
type Flow struct {
	Heading string `json:"heading"`
	Steps   []Step `json:"steps"`
}

// SummaryShop is one flat recap entry in the closing table.
type SummaryShop struct {
	Name     string `json:"name"`
	Features string `json:"features"`
	Scope    string `json:"scope"`
	Speed    string `json:"speed"`
	CTAText  string `json:"cta_text"`
	Link     string `json:"link"`
}

// SummaryTable is the closing comparison recap.
type SummaryTable struct {
	Heading string        `json:"heading"`
	Shops   []SummaryShop `json:"shops"`
}

// FooterLink is one named link in a footer list.
type FooterLink struct {
	Name string `json:"name"`
	Link string `json:"link"`
}

// Footer holds the copyright line and the two link lists.
type Footer struct {
	Copyright   string       `json:"copyright"`
	ShopLinks   []FooterLink `json:"shop_links"`
	ColumnLinks []FooterLink `json:"column_links"`
}

// Document is the full configuration tree for one landing page. It is
// the single source of truth for an editing session: every editing
// operation mutates it in place, and rendering/export work on clones.
type Document struct {
	Site             Site             `json:"site"`
	Colors           Colors           `json:"colors"`
	Hero             Hero             `json:"hero"`
	ComparisonTop    ComparisonTop    `json:"comparison_top"`
	RecommendSection RecommendSection `json:"recommend_section"`
	DetailTable      DetailTable      `json:"detail_table"`
	Shops            []ShopCard       `json:"shops"`
	Flow             Flow             `json:"flow"`
	SummaryTable     SummaryTable     `json:"summary_table"`
	Footer           Footer           `json:"footer"`
	Visibility       map[string]bool  `json:"sections_visibility"`
	SectionOrder     []string         `json:"section_order,omitempty"`
}
