package sqlite_test

import (
	"context"
	"testing"

	"github.com/fwojciec/voicenav"
	"github.com/fwojciec/voicenav/sqlite"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupTestDB(t *testing.T) *sqlite.DB {
	t.Helper()
	db := sqlite.NewDB(":memory:")
	require.NoError(t, db.Open())
	t.Cleanup(func() { db.Close() })
	return db
}

func newScript(name string) *voicenav.Script {
	return &voicenav.Script{
		Selections: []voicenav.Selection{{
			Element: voicenav.Element{ID: "btn-1", Text: "Submit", Kind: voicenav.KindButton},
			Name:    name,
		}},
		Source: "// " + name,
	}
}

func TestScriptService_CreateScript(t *testing.T) {
	t.Parallel()

	t.Run("assigns ID, hash and timestamp", func(t *testing.T) {
		t.Parallel()

		svc := sqlite.NewScriptService(setupTestDB(t))
		script := newScript("submit")

		err := svc.CreateScript(context.Background(), script)
		require.NoError(t, err)

		assert.NotEmpty(t, script.ID)
		assert.NotEmpty(t, script.Hash)
		assert.False(t, script.CreatedAt.IsZero())
	})

	t.Run("same source yields same hash", func(t *testing.T) {
		t.Parallel()

		svc := sqlite.NewScriptService(setupTestDB(t))
		ctx := context.Background()
		a := newScript("submit")
		b := newScript("submit")

		require.NoError(t, svc.CreateScript(ctx, a))
		require.NoError(t, svc.CreateScript(ctx, b))

		assert.NotEqual(t, a.ID, b.ID)
		assert.Equal(t, a.Hash, b.Hash)
	})

	t.Run("rejects script without selections", func(t *testing.T) {
		t.Parallel()

		svc := sqlite.NewScriptService(setupTestDB(t))
		script := &voicenav.Script{Source: "// empty"}

		err := svc.CreateScript(context.Background(), script)
		require.Error(t, err)
		assert.Equal(t, voicenav.ENOSELECTION, voicenav.ErrorCode(err))
	})

	t.Run("rejects script without source", func(t *testing.T) {
		t.Parallel()

		svc := sqlite.NewScriptService(setupTestDB(t))
		script := newScript("submit")
		script.Source = ""

		err := svc.CreateScript(context.Background(), script)
		require.Error(t, err)
		assert.Equal(t, voicenav.EINVALID, voicenav.ErrorCode(err))
	})
}

func TestScriptService_FindScriptByID(t *testing.T) {
	t.Parallel()

	t.Run("returns stored script with selections", func(t *testing.T) {
		t.Parallel()

		svc := sqlite.NewScriptService(setupTestDB(t))
		ctx := context.Background()
		script := newScript("submit")
		script.Selections = append(script.Selections, voicenav.Selection{
			Element: voicenav.Element{ID: "nav-a-2", Text: "About", Kind: voicenav.KindNavAnchor, Href: "#about"},
			Name:    "about",
		})
		require.NoError(t, svc.CreateScript(ctx, script))

		found, err := svc.FindScriptByID(ctx, script.ID)
		require.NoError(t, err)

		assert.Equal(t, script.ID, found.ID)
		assert.Equal(t, script.Source, found.Source)
		assert.Equal(t, script.Hash, found.Hash)
		assert.Equal(t, script.Selections, found.Selections)
		assert.True(t, script.CreatedAt.Equal(found.CreatedAt))
	})

	t.Run("returns ENOTFOUND for unknown ID", func(t *testing.T) {
		t.Parallel()

		svc := sqlite.NewScriptService(setupTestDB(t))

		_, err := svc.FindScriptByID(context.Background(), "missing")
		require.Error(t, err)
		assert.Equal(t, voicenav.ENOTFOUND, voicenav.ErrorCode(err))
	})
}

func TestScriptService_FindScripts(t *testing.T) {
	t.Parallel()

	t.Run("returns newest first", func(t *testing.T) {
		t.Parallel()

		svc := sqlite.NewScriptService(setupTestDB(t))
		ctx := context.Background()
		first := newScript("first")
		second := newScript("second")
		require.NoError(t, svc.CreateScript(ctx, first))
		require.NoError(t, svc.CreateScript(ctx, second))

		scripts, err := svc.FindScripts(ctx, voicenav.ScriptFilter{})
		require.NoError(t, err)

		require.Len(t, scripts, 2)
		assert.Equal(t, second.ID, scripts[0].ID)
		assert.Equal(t, first.ID, scripts[1].ID)
	})

	t.Run("applies limit and offset", func(t *testing.T) {
		t.Parallel()

		svc := sqlite.NewScriptService(setupTestDB(t))
		ctx := context.Background()
		var ids []string
		for _, name := range []string{"a", "b", "c"} {
			script := newScript(name)
			require.NoError(t, svc.CreateScript(ctx, script))
			ids = append(ids, script.ID)
		}

		scripts, err := svc.FindScripts(ctx, voicenav.ScriptFilter{Limit: 1, Offset: 1})
		require.NoError(t, err)
		require.Len(t, scripts, 1)
		assert.Equal(t, ids[1], scripts[0].ID)

		scripts, err = svc.FindScripts(ctx, voicenav.ScriptFilter{Offset: 2})
		require.NoError(t, err)
		require.Len(t, scripts, 1)
		assert.Equal(t, ids[0], scripts[0].ID)
	})

	t.Run("filters by ID", func(t *testing.T) {
		t.Parallel()

		svc := sqlite.NewScriptService(setupTestDB(t))
		ctx := context.Background()
		a := newScript("a")
		require.NoError(t, svc.CreateScript(ctx, a))
		require.NoError(t, svc.CreateScript(ctx, newScript("b")))

		scripts, err := svc.FindScripts(ctx, voicenav.ScriptFilter{ID: &a.ID})
		require.NoError(t, err)
		require.Len(t, scripts, 1)
		assert.Equal(t, "a", scripts[0].Selections[0].Name)
	})

	t.Run("returns empty result on empty table", func(t *testing.T) {
		t.Parallel()

		svc := sqlite.NewScriptService(setupTestDB(t))

		scripts, err := svc.FindScripts(context.Background(), voicenav.ScriptFilter{})
		require.NoError(t, err)
		assert.Empty(t, scripts)
	})
}
