package mcp

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/notebook-md/notebookmd/internal/application"
	"github.com/notebook-md/notebookmd/internal/database"
	"github.com/notebook-md/notebookmd/internal/usecase"
)

func newTestServer(t *testing.T) *Server {
	t.Helper()
	dir := t.TempDir()
	t.Setenv("NOTEBOOK_DIR", dir)

	dbCtx, err := database.CreateDatabase(filepath.Join(dir, "index.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = database.CloseDatabase(dbCtx) })

	app, err := application.Open(context.Background(), dbCtx, nil)
	require.NoError(t, err)
	return NewServer(usecase.NewWorkspace(app, ""), "test", nil)
}

func ptr[T any](v T) *T { return &v }

func TestNotebookAndSectionTools(t *testing.T) {
	s := newTestServer(t)
	ctx := context.Background()

	_, nb, err := s.handleNotebookCreate(ctx, nil, NotebookCreateInput{Name: "Work"})
	require.NoError(t, err)
	assert.Equal(t, "#FFFFFF", nb.Colour)
	assert.Empty(t, nb.Sections)

	_, sec, err := s.handleSectionCreate(ctx, nil, SectionCreateInput{NotebookID: nb.ID, Name: "Todo", Color: ptr("#AA0000")})
	require.NoError(t, err)
	assert.Equal(t, nb.ID, sec.NotebookID)
	assert.Equal(t, "#AA0000", sec.Color)

	_, list, err := s.handleNotebookList(ctx, nil, NotebookListInput{})
	require.NoError(t, err)
	require.Len(t, list.Notebooks, 1)
	assert.Equal(t, []string{sec.ID}, list.Notebooks[0].Sections)

	_, sections, err := s.handleSectionList(ctx, nil, SectionListInput{NotebookID: nb.ID})
	require.NoError(t, err)
	require.Len(t, sections.Sections, 1)

	_, _, err = s.handleSectionCreate(ctx, nil, SectionCreateInput{NotebookID: "missing", Name: "x"})
	assert.ErrorIs(t, err, usecase.ErrNotFound)

	_, page, err := s.handlePageCreate(ctx, nil, PageCreateInput{Title: "Plan", SectionID: ptr(sec.ID)})
	require.NoError(t, err)

	_, deleted, err := s.handleNotebookDelete(ctx, nil, NotebookDeleteInput{ID: nb.ID})
	require.NoError(t, err)
	assert.Equal(t, []string{sec.ID}, deleted.Sections)
	assert.Equal(t, []string{page.ID}, deleted.Pages)

	_, list, err = s.handleNotebookList(ctx, nil, NotebookListInput{})
	require.NoError(t, err)
	assert.Empty(t, list.Notebooks)
}

func TestPageTools(t *testing.T) {
	s := newTestServer(t)
	ctx := context.Background()

	_, nb, err := s.handleNotebookCreate(ctx, nil, NotebookCreateInput{Name: "Work"})
	require.NoError(t, err)
	_, sec, err := s.handleSectionCreate(ctx, nil, SectionCreateInput{NotebookID: nb.ID, Name: "Todo"})
	require.NoError(t, err)

	_, parent, err := s.handlePageCreate(ctx, nil, PageCreateInput{Title: "Parent", SectionID: ptr(sec.ID)})
	require.NoError(t, err)
	assert.Equal(t, nb.ID+"/"+sec.ID+"/"+parent.ID, parent.Path)
	assert.Equal(t, "/app/notebook/"+nb.ID+"/section/"+sec.ID+"/page/"+parent.ID, parent.Location)

	_, child, err := s.handlePageCreate(ctx, nil, PageCreateInput{Title: "Child", ParentPageID: ptr(parent.ID), Data: ptr(`{"root":{}}`)})
	require.NoError(t, err)
	assert.Empty(t, child.SectionID, "a child keeps the section it was given")
	assert.Equal(t, parent.Path+"/"+child.ID, child.Path)
	assert.Equal(t, 1, child.Level)
	assert.Empty(t, child.Data, "create does not echo content")

	_, got, err := s.handlePageGet(ctx, nil, PageGetInput{ID: child.ID})
	require.NoError(t, err)
	assert.Equal(t, `{"root":{}}`, got.Data)

	_, updated, err := s.handlePageUpdate(ctx, nil, PageUpdateInput{ID: child.ID, Title: ptr("Renamed"), Archived: ptr(true)})
	require.NoError(t, err)
	assert.Equal(t, "Renamed", updated.Title)
	assert.True(t, updated.Archived)

	_, tree, err := s.handlePageTree(ctx, nil, PageTreeInput{SectionID: sec.ID})
	require.NoError(t, err)
	require.Len(t, tree.Entries, 2)
	assert.Equal(t, parent.ID, tree.Entries[0].ID)
	assert.Equal(t, child.ID, tree.Entries[1].ID)
	assert.Equal(t, parent.ID, tree.Entries[1].ParentPageID)

	_, found, err := s.handlePageSearch(ctx, nil, PageSearchInput{Query: "renam"})
	require.NoError(t, err)
	require.Len(t, found.Pages, 1)
	assert.Equal(t, child.ID, found.Pages[0].ID)

	_, moved, err := s.handlePageReorder(ctx, nil, PageReorderInput{ActiveID: child.ID})
	require.NoError(t, err)
	assert.True(t, moved.Changed)
	assert.Empty(t, moved.Page.ParentPageID)
	assert.Equal(t, 0, moved.Page.Level)
	assert.Equal(t, child.ID, moved.Page.Path)
	assert.Equal(t, "/app/pages/page/"+child.ID, moved.Page.Location)

	_, deleted, err := s.handlePageDelete(ctx, nil, PageDeleteInput{ID: parent.ID})
	require.NoError(t, err)
	assert.Equal(t, []string{parent.ID}, deleted.Pages)

	_, _, err = s.handlePageGet(ctx, nil, PageGetInput{ID: parent.ID})
	assert.ErrorIs(t, err, usecase.ErrNotFound)
}

func TestInboxTree(t *testing.T) {
	s := newTestServer(t)
	ctx := context.Background()

	_, p, err := s.handlePageCreate(ctx, nil, PageCreateInput{Title: "Loose"})
	require.NoError(t, err)
	assert.Empty(t, p.SectionID)
	assert.Equal(t, "/app/pages/page/"+p.ID, p.Location)

	_, tree, err := s.handlePageTree(ctx, nil, PageTreeInput{})
	require.NoError(t, err)
	require.Len(t, tree.Entries, 1)
	assert.Equal(t, p.ID, tree.Entries[0].ID)
}

func TestDragTools(t *testing.T) {
	s := newTestServer(t)
	ctx := context.Background()

	_, a, err := s.handlePageCreate(ctx, nil, PageCreateInput{Title: "A"})
	require.NoError(t, err)
	_, b, err := s.handlePageCreate(ctx, nil, PageCreateInput{Title: "B"})
	require.NoError(t, err)

	_, status, err := s.handlePageDragStatus(ctx, nil, PageDragStatusInput{})
	require.NoError(t, err)
	assert.False(t, status.Active)

	_, _, err = s.handlePageReorder(ctx, nil, PageReorderInput{OverID: a.ID})
	assert.ErrorContains(t, err, "no drag in progress")

	_, started, err := s.handlePageDragStart(ctx, nil, PageDragStartInput{ID: b.ID})
	require.NoError(t, err)
	require.True(t, started.Active)
	assert.Equal(t, b.ID, started.Page.ID)

	_, cancelled, err := s.handlePageDragCancel(ctx, nil, PageDragStatusInput{})
	require.NoError(t, err)
	assert.False(t, cancelled.Active)
	assert.Nil(t, cancelled.Page)

	_, _, err = s.handlePageDragStart(ctx, nil, PageDragStartInput{ID: b.ID})
	require.NoError(t, err)
	_, moved, err := s.handlePageReorder(ctx, nil, PageReorderInput{OverID: a.ID})
	require.NoError(t, err)
	assert.True(t, moved.Changed)
	assert.Equal(t, b.ID, moved.Page.ID)

	order := s.ws.Pages()
	require.Len(t, order, 2)
	assert.Equal(t, b.ID, order[0].ID)

	_, status, err = s.handlePageDragStatus(ctx, nil, PageDragStatusInput{})
	require.NoError(t, err)
	assert.False(t, status.Active, "a drop ends the drag")

	_, _, err = s.handlePageDragStart(ctx, nil, PageDragStartInput{ID: "page-missing"})
	assert.ErrorIs(t, err, usecase.ErrNotFound)
}
