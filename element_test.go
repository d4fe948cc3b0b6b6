package voicenav_test

import (
	"encoding/json"
	"testing"

	"github.com/fwojciec/voicenav"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestElementKind_IDPrefix(t *testing.T) {
	t.Parallel()

	tests := []struct {
		kind voicenav.ElementKind
		want string
	}{
		{kind: voicenav.KindButton, want: "btn"},
		{kind: voicenav.KindAnchor, want: "a"},
		{kind: voicenav.KindNavAnchor, want: "nav-a"},
		{kind: voicenav.ElementKind("input"), want: ""},
	}

	for _, tt := range tests {
		t.Run(string(tt.kind), func(t *testing.T) {
			t.Parallel()

			assert.Equal(t, tt.want, tt.kind.IDPrefix())
			assert.Equal(t, tt.want != "", tt.kind.Valid())
		})
	}
}

func TestCatalog_FindByID(t *testing.T) {
	t.Parallel()

	catalog := &voicenav.Catalog{
		Buttons:    []voicenav.Element{{ID: "dup", Text: "Button", Kind: voicenav.KindButton}},
		Anchors:    []voicenav.Element{{ID: "dup", Text: "Anchor", Kind: voicenav.KindAnchor, Href: "/x"}},
		NavAnchors: []voicenav.Element{{ID: "about", Text: "About", Kind: voicenav.KindNavAnchor, Href: "#about"}},
	}

	t.Run("finds navigation anchors", func(t *testing.T) {
		t.Parallel()

		el, ok := catalog.FindByID("about")

		require.True(t, ok)
		assert.Equal(t, voicenav.KindNavAnchor, el.Kind)
	})

	t.Run("prefers buttons when ids are duplicated", func(t *testing.T) {
		t.Parallel()

		el, ok := catalog.FindByID("dup")

		require.True(t, ok)
		assert.Equal(t, "Button", el.Text)
	})

	t.Run("reports missing ids", func(t *testing.T) {
		t.Parallel()

		_, ok := catalog.FindByID("missing")

		assert.False(t, ok)
	})
}

func TestCatalog_AddAndMerge(t *testing.T) {
	t.Parallel()

	var first voicenav.Catalog
	first.Add(voicenav.Element{ID: "b1", Kind: voicenav.KindButton})
	first.Add(voicenav.Element{ID: "n1", Kind: voicenav.KindNavAnchor, Href: "#n"})

	var second voicenav.Catalog
	second.Add(voicenav.Element{ID: "b2", Kind: voicenav.KindButton})
	second.Add(voicenav.Element{ID: "a1", Kind: voicenav.KindAnchor, Href: "/a"})

	first.Merge(&second)

	assert.Equal(t, 4, first.Len())
	ids := make([]string, 0, first.Len())
	for _, el := range first.All() {
		ids = append(ids, el.ID)
	}
	assert.Equal(t, []string{"b1", "b2", "a1", "n1"}, ids)
}

func TestSelection_JSONShape(t *testing.T) {
	t.Parallel()

	selections := []voicenav.Selection{
		{Element: voicenav.Element{ID: "btn-1", Text: "Go", Kind: voicenav.KindButton}, Name: "Start"},
		{Element: voicenav.Element{ID: "nav-a-1", Text: "About", Kind: voicenav.KindNavAnchor, Href: "#about"}, Name: "About"},
	}

	data, err := json.Marshal(selections)

	require.NoError(t, err)
	assert.JSONEq(t, `[
		{"id":"btn-1","text":"Go","tag":"button","name":"Start"},
		{"id":"nav-a-1","text":"About","tag":"nav-a","href":"#about","name":"About"}
	]`, string(data))
}
