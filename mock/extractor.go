package mock

import "github.com/fwojciec/voicenav"

var _ voicenav.Extractor = (*Extractor)(nil)

// Extractor is a mock implementation of voicenav.Extractor.
type Extractor struct {
	ExtractFn func(uploads []voicenav.Upload) (*voicenav.ExtractResult, error)
}

func (e *Extractor) Extract(uploads []voicenav.Upload) (*voicenav.ExtractResult, error) {
	return e.ExtractFn(uploads)
}
