package voicenav

import (
	"path/filepath"
	"strings"
)

// Upload is one user-supplied document.
type Upload struct {
	Filename string
	Content  []byte
}

// ValidateFilename returns EFILEKIND unless the name has an .htm or .html
// extension.
func ValidateFilename(name string) error {
	switch strings.ToLower(filepath.Ext(name)) {
	case ".htm", ".html":
		return nil
	}
	return Errorf(EFILEKIND, "invalid file type %q: only .htm and .html files are allowed", name)
}
