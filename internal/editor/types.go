package editor

// sessionResponse is returned by session-creating and session-level
// endpoints.
type sessionResponse struct {
	ID       string `json:"id"`
	Revision int    `json:"revision"`
}

// fieldRequest sets one scalar field by dotted path.
type fieldRequest struct {
	Path  string `json:"path"`
	Value string `json:"value"`
}

// sectionOrderRequest swaps the section at Index with a neighbor.
type sectionOrderRequest struct {
	Index     int    `json:"index"`
	Direction string `json:"direction"` // "up" or "down"
}

// sectionVisibilityRequest toggles a whole section on or off.
type sectionVisibilityRequest struct {
	Section string `json:"section"`
	Visible bool   `json:"visible"`
}

// shopsOpRequest mutates the shop-card sequence.
type shopsOpRequest struct {
	Action string `json:"action"` // "add", "remove", "move"
	From   int    `json:"from"`
	To     int    `json:"to"`
}

// shopVisibilityRequest toggles one subsection of one shop card.
type shopVisibilityRequest struct {
	Block   string `json:"block"` // info, features, reviews, campaign, cta
	Visible bool   `json:"visible"`
}

// tableOpRequest mutates the detail table's columns or rows.
type tableOpRequest struct {
	Action string `json:"action"` // "add" or "remove"
	Name   string `json:"name"`   // column name / row label for "add"
}

// listOpRequest appends to or pops from one of the document's repeated
// sequences.
type listOpRequest struct {
	Target string `json:"target"` // comp_shops, steps, features, reviews, extra_images
	Shop   int    `json:"shop"`   // shop index for per-card targets
	Action string `json:"action"` // "add" or "remove"
	Value  string `json:"value"`  // initial value for extra_images add
}

// previewMessage is the websocket frame pushed after each committed
// mutation and in reply to a client refresh.
type previewMessage struct {
	Type     string `json:"type"` // "preview" or "error"
	HTML     string `json:"html,omitempty"`
	Revision int    `json:"revision,omitempty"`
	Error    string `json:"error,omitempty"`
}

// clientMessage is the message format preview clients may send.
type clientMessage struct {
	Type string `json:"type"` // "refresh"
}
