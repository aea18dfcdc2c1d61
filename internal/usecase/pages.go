package usecase

import (
	"fmt"

	"github.com/notebook-md/notebookmd/internal/model"
	"github.com/notebook-md/notebookmd/internal/store"
)

type PageInput struct {
	SectionID    model.SectionID
	ParentPageID model.PageID
	Title        string
	Data         model.Content
}

// CreatePage adds a page. The section is taken as given: a child created
// without one stays in the inbox even when its parent is categorized.
func (w *Workspace) CreatePage(in PageInput) (model.Page, error) {
	if in.ParentPageID != "" {
		if _, ok := w.app.Pages.Get(in.ParentPageID); !ok {
			return model.Page{}, fmt.Errorf("parent page %s: %w", in.ParentPageID, ErrNotFound)
		}
	}

	var notebookID model.NotebookID
	if in.SectionID != "" {
		sec, ok := w.app.Sections.Get(in.SectionID)
		if !ok {
			return model.Page{}, fmt.Errorf("section %s: %w", in.SectionID, ErrNotFound)
		}
		notebookID = sec.NotebookID
	}

	return w.app.Pages.Create(notebookID, in.SectionID, in.Title, in.ParentPageID, in.Data), nil
}

func (w *Workspace) Page(id model.PageID) (model.Page, error) {
	p, ok := w.app.Pages.Get(id)
	if !ok {
		return model.Page{}, fmt.Errorf("page %s: %w", id, ErrNotFound)
	}
	return p, nil
}

// UpdatePage applies patch and returns the updated page.
func (w *Workspace) UpdatePage(id model.PageID, patch store.PagePatch) (model.Page, error) {
	if !w.app.Pages.Update(id, patch) {
		return model.Page{}, fmt.Errorf("page %s: %w", id, ErrNotFound)
	}
	return w.Page(id)
}

func (w *Workspace) ArchivePage(id model.PageID, archived bool) error {
	if !w.app.Pages.Archive(id, archived) {
		return fmt.Errorf("page %s: %w", id, ErrNotFound)
	}
	return nil
}

// DeletePage removes the page and its subtree.
func (w *Workspace) DeletePage(id model.PageID) ([]model.PageID, error) {
	removed := w.app.Pages.Remove(id)
	if len(removed) == 0 {
		return nil, fmt.Errorf("page %s: %w", id, ErrNotFound)
	}
	w.dropActiveIfRemoved(removed)
	return removed, nil
}

// Reposition moves the page to index in the flat order without touching the
// hierarchy.
func (w *Workspace) Reposition(id model.PageID, index int) error {
	if _, ok := w.app.Pages.Get(id); !ok {
		return fmt.Errorf("page %s: %w", id, ErrNotFound)
	}
	w.app.Pages.Reposition(id, index)
	return nil
}

func (w *Workspace) Search(query string) []model.Page {
	return w.app.Pages.Search(query)
}

// Tree returns the page tree of a section. An empty id returns the inbox tree.
func (w *Workspace) Tree(sectionID model.SectionID) ([]store.Node, error) {
	if sectionID != "" {
		if _, ok := w.app.Sections.Get(sectionID); !ok {
			return nil, fmt.Errorf("section %s: %w", sectionID, ErrNotFound)
		}
	}
	return w.app.Pages.Tree(sectionID), nil
}

func (w *Workspace) Inbox() []model.Page {
	return w.app.Pages.Inbox()
}

// AllPages lists every root page, oldest first.
func (w *Workspace) AllPages() []model.Page {
	return w.app.Pages.Roots()
}

// Pages lists every page in flat order.
func (w *Workspace) Pages() []model.Page {
	return w.app.Pages.List()
}
