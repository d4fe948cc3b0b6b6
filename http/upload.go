package http

import (
	"io"
	"mime/multipart"

	"github.com/fwojciec/voicenav"
)

type multipartHeader struct {
	*multipart.FileHeader
}

// read validates the file name before reading the part, so non-HTML files
// are rejected without loading them.
func (h *multipartHeader) read() (voicenav.Upload, error) {
	if err := voicenav.ValidateFilename(h.Filename); err != nil {
		return voicenav.Upload{}, err
	}

	f, err := h.Open()
	if err != nil {
		return voicenav.Upload{}, err
	}
	defer f.Close()

	content, err := io.ReadAll(f)
	if err != nil {
		return voicenav.Upload{}, err
	}
	return voicenav.Upload{Filename: h.Filename, Content: content}, nil
}
