package fs

import (
	"context"
	"os"
	"path/filepath"

	"github.com/fwojciec/voicenav"
)

// Output file names inside an OutputStore directory.
const (
	CatalogFile = "catalog.json"
	ScriptFile  = "voicenav.js"
)

// OutputStore writes extraction results with atomic update semantics.
// Files are saved to a temporary directory, then moved atomically on Commit.
type OutputStore struct {
	baseDir string
	name    string
}

// NewOutputStore creates a new OutputStore.
// Files are saved to baseDir/name.tmp and moved to baseDir/name on Commit.
func NewOutputStore(baseDir, name string) *OutputStore {
	return &OutputStore{
		baseDir: baseDir,
		name:    name,
	}
}

func (s *OutputStore) tempDir() string {
	return filepath.Join(s.baseDir, s.name+".tmp")
}

// Dir returns the final output directory.
func (s *OutputStore) Dir() string {
	return filepath.Join(s.baseDir, s.name)
}

// SaveDocument writes the annotated markup under the document's base file name.
func (s *OutputStore) SaveDocument(ctx context.Context, doc voicenav.AnnotatedDocument) error {
	name := filepath.Base(doc.Filename)
	if name == "." || name == string(filepath.Separator) {
		return voicenav.Errorf(voicenav.EINVALID, "invalid document file name %q", doc.Filename)
	}
	return s.write(name, []byte(doc.HTML))
}

// SaveCatalog writes the catalog as catalog.json.
func (s *OutputStore) SaveCatalog(ctx context.Context, catalog *voicenav.Catalog) error {
	data, err := MarshalIndent(catalog)
	if err != nil {
		return err
	}
	return s.write(CatalogFile, data)
}

// SaveScript writes a generated script as voicenav.js.
func (s *OutputStore) SaveScript(ctx context.Context, source string) error {
	return s.write(ScriptFile, []byte(source))
}

func (s *OutputStore) write(name string, data []byte) error {
	if err := os.MkdirAll(s.tempDir(), 0755); err != nil {
		return err
	}
	return os.WriteFile(filepath.Join(s.tempDir(), name), data, 0644)
}

// Commit replaces the final directory with everything saved so far.
func (s *OutputStore) Commit() error {
	// Remove existing final directory if present
	if err := os.RemoveAll(s.Dir()); err != nil {
		return err
	}

	return os.Rename(s.tempDir(), s.Dir())
}

// Abort discards everything saved since the last Commit.
func (s *OutputStore) Abort() error {
	return os.RemoveAll(s.tempDir())
}
