package application

import (
	"bytes"
	"context"
	"log/slog"
	"path/filepath"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/notebook-md/notebookmd/internal/database"
	"github.com/notebook-md/notebookmd/internal/logging"
	"github.com/notebook-md/notebookmd/internal/model"
	"github.com/notebook-md/notebookmd/internal/services"
	"github.com/notebook-md/notebookmd/internal/store"
)

func openDB(t *testing.T, path string) *database.Context {
	t.Helper()
	dbCtx, err := database.CreateDatabase(path)
	require.NoError(t, err)
	t.Cleanup(func() { _ = database.CloseDatabase(dbCtx) })
	return dbCtx
}

func TestOpen_EmptyDatabase(t *testing.T) {
	dbCtx := openDB(t, filepath.Join(t.TempDir(), "index.db"))

	app, err := Open(context.Background(), dbCtx, nil)
	require.NoError(t, err)

	assert.Empty(t, app.Notebooks.List())
	assert.Empty(t, app.Sections.List())
	assert.Zero(t, app.Pages.Len())
}

func TestMutationsArePersistedAndReloaded(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "index.db")
	dbCtx := openDB(t, path)

	app, err := Open(ctx, dbCtx, nil)
	require.NoError(t, err)
	nb := app.Notebooks.Create("Work", "1", "", "")
	sec := app.Sections.Create(nb.ID, "Todo", "1", "")
	root := app.Pages.Create(nb.ID, sec.ID, "Root", "", "body")
	child := app.Pages.Create(nb.ID, sec.ID, "Child", root.ID, "")
	require.True(t, app.Pages.Reposition(child.ID, 0))

	payload, err := services.NewBlobService(dbCtx).Load(ctx, store.PageBlob)
	require.NoError(t, err)
	assert.Contains(t, string(payload), child.ID)

	reopened, err := Open(ctx, dbCtx, nil)
	require.NoError(t, err)

	got, ok := reopened.Notebooks.Get(nb.ID)
	require.True(t, ok)
	assert.Equal(t, "Work", got.Name)
	_, ok = reopened.Sections.Get(sec.ID)
	assert.True(t, ok)
	assert.Equal(t, []model.PageID{child.ID, root.ID}, reopened.Pages.Order())
	assert.Equal(t, model.Content("body"), mustPage(t, reopened, root.ID).Data)
}

func TestPersistFailureIsLogged(t *testing.T) {
	dbCtx, err := database.CreateDatabase(filepath.Join(t.TempDir(), "index.db"))
	require.NoError(t, err)

	var buf bytes.Buffer
	app, err := Open(context.Background(), dbCtx, logging.New(&buf, slog.LevelInfo))
	require.NoError(t, err)

	require.NoError(t, database.CloseDatabase(dbCtx))
	nb := app.Notebooks.Create("Offline", "1", "", "")

	_, ok := app.Notebooks.Get(nb.ID)
	assert.True(t, ok, "mutation must survive a failed write")
	assert.Contains(t, buf.String(), "failed to persist store")
	assert.Contains(t, buf.String(), store.NotebookBlob)
}

func TestSnapshotAndReplace(t *testing.T) {
	ctx := context.Background()
	source, err := Open(ctx, openDB(t, filepath.Join(t.TempDir(), "a.db")), nil)
	require.NoError(t, err)
	nb := source.Notebooks.Create("Work", "1", "", "")
	source.Pages.Create("", "", "Loose", "", "")

	snapshot, err := source.Snapshot()
	require.NoError(t, err)
	assert.Len(t, snapshot, 3)

	targetDB := openDB(t, filepath.Join(t.TempDir(), "b.db"))
	target, err := Open(ctx, targetDB, nil)
	require.NoError(t, err)
	target.Sections.Create("other", "Stale", "1", "")

	delete(snapshot, store.SectionBlob)
	require.NoError(t, target.Replace(ctx, snapshot))

	_, ok := target.Notebooks.Get(nb.ID)
	assert.True(t, ok)
	assert.Empty(t, target.Sections.List())
	assert.Equal(t, 1, target.Pages.Len())

	reopened, err := Open(ctx, targetDB, nil)
	require.NoError(t, err)
	assert.Equal(t, 1, reopened.Pages.Len())
	assert.Empty(t, reopened.Sections.List())
}

func TestReplaceRejectsBadBlobWithoutChanges(t *testing.T) {
	ctx := context.Background()
	app, err := Open(ctx, openDB(t, filepath.Join(t.TempDir(), "index.db")), nil)
	require.NoError(t, err)
	app.Notebooks.Create("Keep", "1", "", "")

	err = app.Replace(ctx, map[string][]byte{
		store.NotebookBlob: []byte(`{"notebooks":{}}`),
		store.PageBlob:     []byte(`not json`),
	})
	require.Error(t, err)
	assert.Len(t, app.Notebooks.List(), 1)
}

func TestCheckFindsBrokenReferences(t *testing.T) {
	ctx := context.Background()
	app, err := Open(ctx, openDB(t, filepath.Join(t.TempDir(), "index.db")), nil)
	require.NoError(t, err)

	nb := app.Notebooks.Create("Work", "1", "", "")
	sec := app.Sections.Create(nb.ID, "Todo", "1", "")
	app.Notebooks.AddSection(nb.ID, sec.ID)
	app.Pages.Create(nb.ID, sec.ID, "Fine", "", "")
	require.NoError(t, app.Check())

	app.Sections.Create("ghost-notebook", "Orphan", "1", "")
	app.Notebooks.AddSection(nb.ID, "section-gone")
	app.Pages.Create(nb.ID, "section-missing", "Lost", "", "")

	err = app.Check()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "notebook ghost-notebook does not exist")
	assert.Contains(t, err.Error(), "section section-gone does not exist")
	assert.Contains(t, err.Error(), "section section-missing does not exist")
}

func mustPage(t *testing.T, app *App, id model.PageID) model.Page {
	t.Helper()
	p, ok := app.Pages.Get(id)
	require.True(t, ok)
	return p
}

func TestConcurrentWritersPersistFinalState(t *testing.T) {
	ctx := context.Background()
	dbCtx := openDB(t, filepath.Join(t.TempDir(), "index.db"))

	app, err := Open(ctx, dbCtx, nil)
	require.NoError(t, err)

	const writers, perWriter = 8, 10
	var wg sync.WaitGroup
	for range writers {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for range perWriter {
				app.Pages.Create("", "", "Note", "", "")
			}
		}()
	}
	wg.Wait()
	require.Equal(t, writers*perWriter, app.Pages.Len())

	want, err := app.Pages.MarshalBlob()
	require.NoError(t, err)
	stored, err := services.NewBlobService(dbCtx).Load(ctx, store.PageBlob)
	require.NoError(t, err)
	assert.JSONEq(t, string(want), string(stored))

	reopened, err := Open(ctx, dbCtx, nil)
	require.NoError(t, err)
	assert.Equal(t, app.Pages.Order(), reopened.Pages.Order())
}

func TestDiscardEmptiesStoresWithoutWriting(t *testing.T) {
	ctx := context.Background()
	dbCtx := openDB(t, filepath.Join(t.TempDir(), "index.db"))

	app, err := Open(ctx, dbCtx, nil)
	require.NoError(t, err)
	p := app.Pages.Create("", "", "Kept on disk", "", "")

	require.NoError(t, app.Discard())
	assert.Zero(t, app.Pages.Len())

	stored, err := services.NewBlobService(dbCtx).Load(ctx, store.PageBlob)
	require.NoError(t, err)
	assert.Contains(t, string(stored), p.ID)
}
