package main

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/fwojciec/voicenav"
	"github.com/fwojciec/voicenav/fs"
)

// Run executes the extract command.
func (c *ExtractCmd) Run(deps *Dependencies) error {
	uploads := make([]voicenav.Upload, 0, len(c.Files))
	for _, path := range c.Files {
		content, err := os.ReadFile(path)
		if err != nil {
			fmt.Fprintf(deps.Stderr, "error: %s\n", err)
			return err
		}
		uploads = append(uploads, voicenav.Upload{Filename: filepath.Base(path), Content: content})
	}

	return writeResult(deps, uploads, c.JSON, c.Out)
}

// writeResult extracts uploads and reports the catalog, optionally writing
// the annotated pages to out.
func writeResult(deps *Dependencies, uploads []voicenav.Upload, asJSON bool, out string) error {
	result, err := deps.Extractor.Extract(uploads)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", errorMessage(err))
		return err
	}

	if out != "" {
		if err := saveOutput(deps, result, out); err != nil {
			fmt.Fprintf(deps.Stderr, "error: %s\n", errorMessage(err))
			return err
		}
	}

	if asJSON {
		enc := json.NewEncoder(deps.Stdout)
		enc.SetIndent("", "    ")
		return enc.Encode(result.Catalog)
	}

	if result.Catalog.Len() == 0 {
		fmt.Fprintln(deps.Stdout, "No buttons or links found.")
	} else {
		fmt.Fprintln(deps.Stdout, voicenav.FormatCatalog(&result.Catalog))
	}
	if out != "" {
		fmt.Fprintf(deps.Stdout, "\nWrote %d annotated pages and %s to %s\n", len(result.Documents), fs.CatalogFile, out)
	}
	return nil
}

func saveOutput(deps *Dependencies, result *voicenav.ExtractResult, out string) (err error) {
	store := fs.NewOutputStore(filepath.Dir(out), filepath.Base(out))
	defer func() {
		if err != nil {
			_ = store.Abort()
		}
	}()

	for _, doc := range result.Documents {
		if err := store.SaveDocument(deps.Ctx, doc); err != nil {
			return err
		}
	}
	if err := store.SaveCatalog(deps.Ctx, &result.Catalog); err != nil {
		return err
	}
	return store.Commit()
}
