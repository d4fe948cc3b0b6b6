package voicenav

// AnnotatedDocument is an input document re-serialized after identifier
// resolution, so element lookups by id in a generated script succeed.
type AnnotatedDocument struct {
	Filename string `json:"filename"`
	HTML     string `json:"html"`
	Hash     string `json:"hash"` // of the original content
}

// ExtractResult holds the catalog of one extraction run together with the
// annotated documents. Ids in both always agree.
type ExtractResult struct {
	Catalog   Catalog             `json:"catalog"`
	Documents []AnnotatedDocument `json:"documents"`
}

// Extractor discovers interactive elements in HTML documents.
type Extractor interface {
	// Extract parses every upload in order and returns the merged catalog.
	// Returns EFILEKIND for non-HTML file names and EMALFORMED for content
	// that cannot be parsed as HTML. No partial result is returned.
	Extract(uploads []Upload) (*ExtractResult, error)
}
