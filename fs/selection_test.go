package fs_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/fwojciec/voicenav"
	"github.com/fwojciec/voicenav/fs"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Story: Persisting Selections
// Selected elements are written as a JSON array other tools can read back

func TestSelectionFile_WritesIndentedArray(t *testing.T) {
	t.Parallel()

	// Given a selection file in a fresh directory
	path := filepath.Join(t.TempDir(), fs.DefaultSelectionsFile)
	file := fs.NewSelectionFile(path)

	// When I save a button and a nav anchor
	err := file.SaveSelections(context.Background(), []voicenav.Selection{
		{Element: voicenav.Element{ID: "btn-1", Text: "Submit", Kind: voicenav.KindButton}, Name: "send"},
		{Element: voicenav.Element{ID: "nav-a-2", Text: "About", Kind: voicenav.KindNavAnchor, Href: "#about"}, Name: "about"},
	})
	require.NoError(t, err)

	// Then the file holds the four-space indented array
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	want := `[
    {
        "id": "btn-1",
        "text": "Submit",
        "tag": "button",
        "name": "send"
    },
    {
        "id": "nav-a-2",
        "text": "About",
        "tag": "nav-a",
        "href": "#about",
        "name": "about"
    }
]`
	assert.Equal(t, want, string(data))
}

func TestSelectionFile_ReplacesPreviousContents(t *testing.T) {
	t.Parallel()

	// Given a file that already holds selections
	path := filepath.Join(t.TempDir(), "sel.json")
	file := fs.NewSelectionFile(path)
	ctx := context.Background()
	require.NoError(t, file.SaveSelections(ctx, []voicenav.Selection{
		{Element: voicenav.Element{ID: "btn-1", Kind: voicenav.KindButton}, Name: "one"},
		{Element: voicenav.Element{ID: "btn-2", Kind: voicenav.KindButton}, Name: "two"},
	}))

	// When I save a shorter list
	require.NoError(t, file.SaveSelections(ctx, []voicenav.Selection{
		{Element: voicenav.Element{ID: "btn-3", Kind: voicenav.KindButton}, Name: "three"},
	}))

	// Then only the new list is read back
	selections, err := fs.ReadSelections(path)
	require.NoError(t, err)
	require.Len(t, selections, 1)
	assert.Equal(t, "btn-3", selections[0].ID)
	assert.Equal(t, "three", selections[0].Name)
}

func TestSelectionFile_CreatesParentDirectories(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "nested", "dir", "sel.json")
	file := fs.NewSelectionFile(path)

	err := file.SaveSelections(context.Background(), nil)
	require.NoError(t, err)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "[]", string(data))
}

func TestReadCatalog(t *testing.T) {
	t.Parallel()

	t.Run("reads catalog written by output store", func(t *testing.T) {
		t.Parallel()

		base := t.TempDir()
		store := fs.NewOutputStore(base, "out")
		catalog := &voicenav.Catalog{
			Buttons:    []voicenav.Element{{ID: "btn-1", Text: "Go", Kind: voicenav.KindButton}},
			Anchors:    []voicenav.Element{},
			NavAnchors: []voicenav.Element{{ID: "nav-a-1", Text: "Home", Kind: voicenav.KindNavAnchor, Href: "#home"}},
		}
		require.NoError(t, store.SaveCatalog(context.Background(), catalog))
		require.NoError(t, store.Commit())

		got, err := fs.ReadCatalog(filepath.Join(base, "out", fs.CatalogFile))
		require.NoError(t, err)
		assert.Equal(t, catalog, got)
	})

	t.Run("returns EINVALID for malformed JSON", func(t *testing.T) {
		t.Parallel()

		path := filepath.Join(t.TempDir(), "catalog.json")
		require.NoError(t, os.WriteFile(path, []byte("{not json"), 0644))

		_, err := fs.ReadCatalog(path)
		require.Error(t, err)
		assert.Equal(t, voicenav.EINVALID, voicenav.ErrorCode(err))
	})

	t.Run("returns error for missing file", func(t *testing.T) {
		t.Parallel()

		_, err := fs.ReadCatalog(filepath.Join(t.TempDir(), "missing.json"))
		require.Error(t, err)
		assert.True(t, os.IsNotExist(err))
	})
}
