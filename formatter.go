package voicenav

import (
	"fmt"
	"strings"
)

// FormatCatalog renders a catalog as a plain-text listing grouped by kind.
// Empty groups are omitted.
func FormatCatalog(c *Catalog) string {
	if c == nil || c.Len() == 0 {
		return ""
	}

	var parts []string
	add := func(title string, elements []Element) {
		if len(elements) == 0 {
			return
		}
		var b strings.Builder
		fmt.Fprintf(&b, "## %s (%d)", title, len(elements))
		for _, el := range elements {
			fmt.Fprintf(&b, "\n%s  %q", el.ID, el.Text)
			if el.Href != "" {
				fmt.Fprintf(&b, "  %s", el.Href)
			}
		}
		parts = append(parts, b.String())
	}

	add("Buttons", c.Buttons)
	add("Standalone Anchors", c.Anchors)
	add("Navbar Anchors", c.NavAnchors)

	return strings.Join(parts, "\n\n")
}
