// Package goquery implements element discovery over HTML documents using
// goquery.
package goquery

import (
	"bytes"
	"encoding/hex"
	"fmt"
	"io"
	"strings"
	"unicode/utf8"

	"github.com/PuerkitoBio/goquery"
	"github.com/cespare/xxhash/v2"
	"github.com/fwojciec/voicenav"
	"github.com/google/uuid"
	"golang.org/x/net/html"
	"golang.org/x/net/html/charset"
)

// maxSuffixAttempts bounds how often a colliding identifier is re-drawn.
const maxSuffixAttempts = 16

// Ensure Extractor implements voicenav.Extractor at compile time.
var _ voicenav.Extractor = (*Extractor)(nil)

// Extractor discovers buttons, standalone anchors and navigation anchors,
// assigning an identifier to every element that lacks one. The identifier
// is written back into the parsed tree, and the annotated markup is
// returned alongside the catalog.
type Extractor struct {
	// NewSuffix returns the random part of a synthesized identifier.
	// Defaults to RandomSuffix.
	NewSuffix func() string
}

// NewExtractor creates a new Extractor.
func NewExtractor() *Extractor {
	return &Extractor{NewSuffix: RandomSuffix}
}

// RandomSuffix returns eight lowercase hex characters from a random UUID.
func RandomSuffix() string {
	id := uuid.New()
	return hex.EncodeToString(id[:4])
}

// Extract parses every upload in order and returns the merged catalog.
// All file names are validated before any document is parsed.
func (e *Extractor) Extract(uploads []voicenav.Upload) (*voicenav.ExtractResult, error) {
	for _, u := range uploads {
		if err := voicenav.ValidateFilename(u.Filename); err != nil {
			return nil, err
		}
	}

	suffix := e.NewSuffix
	if suffix == nil {
		suffix = RandomSuffix
	}
	run := &extraction{suffix: suffix, ids: make(map[string]struct{})}

	result := &voicenav.ExtractResult{
		Catalog: voicenav.Catalog{
			Buttons:    []voicenav.Element{},
			Anchors:    []voicenav.Element{},
			NavAnchors: []voicenav.Element{},
		},
		Documents: make([]voicenav.AnnotatedDocument, 0, len(uploads)),
	}

	for _, u := range uploads {
		doc, err := parseDocument(u)
		if err != nil {
			return nil, err
		}

		run.reserve(doc)
		var catalog voicenav.Catalog
		if err := run.collect(doc, &catalog); err != nil {
			return nil, err
		}
		result.Catalog.Merge(&catalog)

		annotated, err := renderDocument(doc)
		if err != nil {
			return nil, fmt.Errorf("rendering %s: %w", u.Filename, err)
		}

		result.Documents = append(result.Documents, voicenav.AnnotatedDocument{
			Filename: u.Filename,
			HTML:     annotated,
			Hash:     computeHash(u.Content),
		})
	}

	return result, nil
}

// extraction holds the identifier state of one Extract call.
type extraction struct {
	suffix func() string
	ids    map[string]struct{}
}

// reserve records every identifier already present in doc so synthesized
// identifiers never shadow them.
func (r *extraction) reserve(doc *goquery.Document) {
	doc.Find("[id]").Each(func(_ int, sel *goquery.Selection) {
		if id, _ := sel.Attr("id"); id != "" {
			r.ids[id] = struct{}{}
		}
	})
}

func (r *extraction) collect(doc *goquery.Document, catalog *voicenav.Catalog) error {
	var err error
	add := func(sel *goquery.Selection, kind voicenav.ElementKind) bool {
		var el voicenav.Element
		el, err = r.record(sel, kind)
		if err != nil {
			return false
		}
		catalog.Add(el)
		return true
	}

	doc.Find("button").EachWithBreak(func(_ int, sel *goquery.Selection) bool {
		return add(sel, voicenav.KindButton)
	})
	if err != nil {
		return err
	}

	doc.Find("a[href]").EachWithBreak(func(_ int, sel *goquery.Selection) bool {
		if !hasHref(sel) || insideNav(sel) {
			return true
		}
		return add(sel, voicenav.KindAnchor)
	})
	if err != nil {
		return err
	}

	// Nested nav containers reach the same anchors; record each once.
	seen := make(map[*html.Node]bool)
	doc.Find("nav").EachWithBreak(func(_ int, nav *goquery.Selection) bool {
		nav.Find("a[href]").EachWithBreak(func(_ int, sel *goquery.Selection) bool {
			node := sel.Get(0)
			if !hasHref(sel) || seen[node] {
				return true
			}
			seen[node] = true
			return add(sel, voicenav.KindNavAnchor)
		})
		return err == nil
	})
	return err
}

// record resolves the identifier of sel, writing a synthesized one back
// onto the element, and returns its catalog entry.
func (r *extraction) record(sel *goquery.Selection, kind voicenav.ElementKind) (voicenav.Element, error) {
	id, _ := sel.Attr("id")
	if id == "" {
		var err error
		if id, err = r.synthesize(kind); err != nil {
			return voicenav.Element{}, err
		}
		sel.SetAttr("id", id)
	}
	r.ids[id] = struct{}{}

	el := voicenav.Element{
		ID:   id,
		Kind: kind,
		Text: strings.TrimSpace(sel.Text()),
	}
	if kind != voicenav.KindButton {
		el.Href, _ = sel.Attr("href")
	}
	return el, nil
}

func (r *extraction) synthesize(kind voicenav.ElementKind) (string, error) {
	for attempt := 0; attempt < maxSuffixAttempts; attempt++ {
		id := kind.IDPrefix() + "-" + r.suffix()
		if _, taken := r.ids[id]; !taken {
			return id, nil
		}
	}
	return "", voicenav.Errorf(voicenav.EINTERNAL, "could not synthesize a unique %s identifier", kind)
}

// parseDocument decodes content to UTF-8 and parses it tolerantly.
// Content that still carries NUL bytes after decoding is treated as binary.
func parseDocument(u voicenav.Upload) (*goquery.Document, error) {
	decoded, err := decode(u.Content)
	if err != nil {
		return nil, voicenav.Errorf(voicenav.EMALFORMED, "%s: failed to decode content: %v", u.Filename, err)
	}
	if bytes.IndexByte(decoded, 0) >= 0 {
		return nil, voicenav.Errorf(voicenav.EMALFORMED, "%s: binary content is not HTML", u.Filename)
	}

	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(decoded))
	if err != nil {
		return nil, voicenav.Errorf(voicenav.EMALFORMED, "%s: failed to parse HTML: %v", u.Filename, err)
	}
	return doc, nil
}

// decode returns valid UTF-8 content unchanged and otherwise converts it
// using the encoding declared or sniffed from the markup.
func decode(content []byte) ([]byte, error) {
	if utf8.Valid(content) {
		return content, nil
	}
	r, err := charset.NewReader(bytes.NewReader(content), "text/html")
	if err != nil {
		return nil, err
	}
	return io.ReadAll(r)
}

func renderDocument(doc *goquery.Document) (string, error) {
	var buf bytes.Buffer
	for _, n := range doc.Nodes {
		if err := html.Render(&buf, n); err != nil {
			return "", err
		}
	}
	return buf.String(), nil
}

func hasHref(sel *goquery.Selection) bool {
	href, ok := sel.Attr("href")
	return ok && href != ""
}

func insideNav(sel *goquery.Selection) bool {
	return sel.ParentsFiltered("nav").Length() > 0
}

func computeHash(content []byte) string {
	return fmt.Sprintf("%x", xxhash.Sum64(content))
}
