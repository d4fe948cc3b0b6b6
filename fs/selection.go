// Package fs provides file-based storage for catalogs, annotated documents
// and selections.
package fs

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/fwojciec/voicenav"
)

// DefaultSelectionsFile is the file the web UI writes selections to.
const DefaultSelectionsFile = "selected_components.json"

// Ensure SelectionFile implements voicenav.SelectionWriter at compile time.
var _ voicenav.SelectionWriter = (*SelectionFile)(nil)

// SelectionFile writes selections as an indented JSON array to a single file,
// replacing its previous contents.
type SelectionFile struct {
	path string
}

// NewSelectionFile creates a new SelectionFile writing to path.
func NewSelectionFile(path string) *SelectionFile {
	return &SelectionFile{path: path}
}

// Path returns the file the selections are written to.
func (f *SelectionFile) Path() string {
	return f.path
}

// SaveSelections writes selections to the file.
func (f *SelectionFile) SaveSelections(ctx context.Context, selections []voicenav.Selection) error {
	if selections == nil {
		selections = []voicenav.Selection{}
	}
	data, err := MarshalIndent(selections)
	if err != nil {
		return fmt.Errorf("failed to encode selections: %w", err)
	}

	if dir := filepath.Dir(f.path); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return err
		}
	}
	return os.WriteFile(f.path, data, 0644)
}

// ReadSelections reads a selections file written by SaveSelections.
func ReadSelections(path string) ([]voicenav.Selection, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var selections []voicenav.Selection
	if err := json.Unmarshal(data, &selections); err != nil {
		return nil, voicenav.Errorf(voicenav.EINVALID, "invalid selections file %s: %s", path, err)
	}
	return selections, nil
}

// ReadCatalog reads a catalog.json file written by OutputStore.
func ReadCatalog(path string) (*voicenav.Catalog, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var catalog voicenav.Catalog
	if err := json.Unmarshal(data, &catalog); err != nil {
		return nil, voicenav.Errorf(voicenav.EINVALID, "invalid catalog file %s: %s", path, err)
	}
	return &catalog, nil
}

// MarshalIndent encodes v as JSON indented with four spaces.
func MarshalIndent(v any) ([]byte, error) {
	return json.MarshalIndent(v, "", "    ")
}
