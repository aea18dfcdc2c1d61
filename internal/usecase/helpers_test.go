package usecase

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/notebook-md/notebookmd/internal/application"
	"github.com/notebook-md/notebookmd/internal/database"
	"github.com/notebook-md/notebookmd/internal/model"
)

type fixture struct {
	ws    *Workspace
	maint *Maintenance
	app   *application.App
	dbCtx *database.Context
}

func newFixture(t *testing.T) fixture {
	t.Helper()
	dir := t.TempDir()
	t.Setenv("NOTEBOOK_DIR", dir)

	dbCtx, err := database.CreateDatabase(filepath.Join(dir, "index.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = database.CloseDatabase(dbCtx) })

	app, err := application.Open(context.Background(), dbCtx, nil)
	require.NoError(t, err)

	return fixture{
		ws:    NewWorkspace(app, ""),
		maint: NewMaintenance(app, dbCtx),
		app:   app,
		dbCtx: dbCtx,
	}
}

// seed builds one notebook with one section.
func (f fixture) seed(t *testing.T) (model.Notebook, model.Section) {
	t.Helper()
	nb, err := f.ws.CreateNotebook(NotebookInput{Name: "Work"})
	require.NoError(t, err)
	sec, err := f.ws.CreateSection(SectionInput{NotebookID: nb.ID, Name: "Todo"})
	require.NoError(t, err)
	return nb, sec
}

func (f fixture) page(t *testing.T, sectionID model.SectionID, parent model.PageID, title string) model.Page {
	t.Helper()
	p, err := f.ws.CreatePage(PageInput{SectionID: sectionID, ParentPageID: parent, Title: title})
	require.NoError(t, err)
	return p
}
