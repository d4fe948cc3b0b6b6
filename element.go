package voicenav

// ElementKind classifies an interactive element. The string value is the
// persisted "tag" of an element.
type ElementKind string

// Element kinds discovered by an Extractor.
const (
	KindButton    ElementKind = "button"
	KindAnchor    ElementKind = "a"
	KindNavAnchor ElementKind = "nav-a"
)

// IDPrefix returns the prefix used when synthesizing identifiers for
// elements of this kind.
func (k ElementKind) IDPrefix() string {
	switch k {
	case KindButton:
		return "btn"
	case KindAnchor:
		return "a"
	case KindNavAnchor:
		return "nav-a"
	}
	return ""
}

// Valid reports whether k is a known kind.
func (k ElementKind) Valid() bool {
	return k.IDPrefix() != ""
}

// Element is one discovered interactive element.
type Element struct {
	ID   string      `json:"id"`
	Text string      `json:"text"`
	Kind ElementKind `json:"tag"`
	Href string      `json:"href,omitempty"` // Anchor and NavAnchor only
}

// Catalog groups the elements extracted from one or more documents by kind.
// Each slice is in document order, documents in upload order.
type Catalog struct {
	Buttons    []Element `json:"buttons"`
	Anchors    []Element `json:"anchors"`
	NavAnchors []Element `json:"nav_anchors"`
}

// Len returns the total number of elements in the catalog.
func (c *Catalog) Len() int {
	return len(c.Buttons) + len(c.Anchors) + len(c.NavAnchors)
}

// All returns buttons, anchors and navigation anchors concatenated.
func (c *Catalog) All() []Element {
	all := make([]Element, 0, c.Len())
	all = append(all, c.Buttons...)
	all = append(all, c.Anchors...)
	return append(all, c.NavAnchors...)
}

// FindByID returns the first element with the given id, searching buttons,
// then anchors, then navigation anchors.
func (c *Catalog) FindByID(id string) (Element, bool) {
	for _, group := range [][]Element{c.Buttons, c.Anchors, c.NavAnchors} {
		for _, el := range group {
			if el.ID == id {
				return el, true
			}
		}
	}
	return Element{}, false
}

// Add appends el to the group matching its kind.
func (c *Catalog) Add(el Element) {
	switch el.Kind {
	case KindButton:
		c.Buttons = append(c.Buttons, el)
	case KindAnchor:
		c.Anchors = append(c.Anchors, el)
	case KindNavAnchor:
		c.NavAnchors = append(c.NavAnchors, el)
	}
}

// Merge appends every group of other to c, preserving order.
func (c *Catalog) Merge(other *Catalog) {
	if other == nil {
		return
	}
	c.Buttons = append(c.Buttons, other.Buttons...)
	c.Anchors = append(c.Anchors, other.Anchors...)
	c.NavAnchors = append(c.NavAnchors, other.NavAnchors...)
}
