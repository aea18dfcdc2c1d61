package usecase

import (
	"fmt"

	"github.com/notebook-md/notebookmd/internal/location"
	"github.com/notebook-md/notebookmd/internal/model"
)

// Target is what a location points at. Fields the location does not address
// are nil.
type Target struct {
	Location location.Location
	Notebook *model.Notebook
	Section  *model.Section
	Page     *model.Page
}

// Resolve looks up the entities a location addresses. Every id in the
// location must exist.
func (w *Workspace) Resolve(loc location.Location) (Target, error) {
	if err := location.Validate(loc); err != nil {
		return Target{}, fmt.Errorf("%w: %w", ErrInvalidInput, err)
	}

	target := Target{Location: loc}
	if loc.NotebookID != "" {
		nb, err := w.Notebook(loc.NotebookID)
		if err != nil {
			return Target{}, err
		}
		target.Notebook = &nb
	}
	if loc.SectionID != "" {
		sec, err := w.Section(loc.SectionID)
		if err != nil {
			return Target{}, err
		}
		target.Section = &sec
	}
	if loc.PageID != "" {
		p, err := w.Page(loc.PageID)
		if err != nil {
			return Target{}, err
		}
		target.Page = &p
	}
	return target, nil
}

// ResolvePath parses path and resolves it.
func (w *Workspace) ResolvePath(path string) (Target, error) {
	loc, err := location.Parse(path)
	if err != nil {
		return Target{}, fmt.Errorf("%w: %w", ErrInvalidInput, err)
	}
	return w.Resolve(loc)
}

// LocationOf returns the route that opens the page.
func (w *Workspace) LocationOf(id model.PageID) (location.Location, error) {
	p, err := w.Page(id)
	if err != nil {
		return location.Location{}, err
	}
	var notebookID model.NotebookID
	if sec, ok := w.app.Sections.Get(p.SectionID); ok && p.SectionID != "" {
		if _, ok := w.app.Notebooks.Get(sec.NotebookID); ok {
			notebookID = sec.NotebookID
		}
	}
	if notebookID == "" {
		return location.ForPage("", "", p.ID), nil
	}
	return location.ForPage(notebookID, p.SectionID, p.ID), nil
}
