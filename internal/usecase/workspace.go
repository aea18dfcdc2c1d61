// Package usecase implements the commands behind the CLI and the MCP server.
// Commands that span several stores, such as cascading deletes, live here.
package usecase

import (
	"errors"
	"fmt"
	"slices"
	"strings"
	"sync"

	"github.com/notebook-md/notebookmd/internal/application"
	"github.com/notebook-md/notebookmd/internal/model"
	"github.com/notebook-md/notebookmd/internal/store"
)

var (
	// ErrNotFound is returned when a command names an id that does not exist.
	ErrNotFound = errors.New("not found")
	// ErrInvalidInput is returned for blank names and similar caller mistakes.
	ErrInvalidInput = errors.New("invalid input")
)

type Workspace struct {
	app  *application.App
	user model.UserID

	mu     sync.Mutex
	active model.PageID
}

// NewWorkspace returns a workspace acting as user. An empty user falls back
// to "1".
func NewWorkspace(app *application.App, user model.UserID) *Workspace {
	if user == "" {
		user = "1"
	}
	return &Workspace{app: app, user: user}
}

// App exposes the underlying application state.
func (w *Workspace) App() *application.App {
	return w.app
}

type NotebookInput struct {
	Name        string
	Description string
	Colour      string
}

func (w *Workspace) CreateNotebook(in NotebookInput) (model.Notebook, error) {
	name, err := requireName("notebook", in.Name)
	if err != nil {
		return model.Notebook{}, err
	}
	return w.app.Notebooks.Create(name, w.user, in.Description, in.Colour), nil
}

func (w *Workspace) Notebooks() []model.Notebook {
	return w.app.Notebooks.List()
}

func (w *Workspace) Notebook(id model.NotebookID) (model.Notebook, error) {
	nb, ok := w.app.Notebooks.Get(id)
	if !ok {
		return model.Notebook{}, fmt.Errorf("notebook %s: %w", id, ErrNotFound)
	}
	return nb, nil
}

func (w *Workspace) RenameNotebook(id model.NotebookID, name string) error {
	name, err := requireName("notebook", name)
	if err != nil {
		return err
	}
	if !w.app.Notebooks.Update(id, store.NotebookPatch{Name: &name}) {
		return fmt.Errorf("notebook %s: %w", id, ErrNotFound)
	}
	return nil
}

// Removed lists what a cascading delete took out.
type Removed struct {
	Sections []model.SectionID
	Pages    []model.PageID
}

// DeleteNotebook removes the notebook with every section it owns and every
// page in those sections. Sections are found both through the notebook's
// back-references and through their own notebook id.
func (w *Workspace) DeleteNotebook(id model.NotebookID) (Removed, error) {
	nb, ok := w.app.Notebooks.Get(id)
	if !ok {
		return Removed{}, fmt.Errorf("notebook %s: %w", id, ErrNotFound)
	}

	sectionIDs := append([]model.SectionID{}, nb.Sections...)
	for _, sec := range w.app.Sections.ListByNotebook(id) {
		if !slices.Contains(sectionIDs, sec.ID) {
			sectionIDs = append(sectionIDs, sec.ID)
		}
	}

	var removed Removed
	for _, secID := range sectionIDs {
		removed.Pages = append(removed.Pages, w.app.Pages.RemoveBySection(secID)...)
		if w.app.Sections.Delete(secID) {
			removed.Sections = append(removed.Sections, secID)
		}
	}
	w.app.Notebooks.Delete(id)
	w.dropActiveIfRemoved(removed.Pages)
	return removed, nil
}

type SectionInput struct {
	NotebookID model.NotebookID
	Name       string
	Color      string
}

// CreateSection adds a section and registers it on its notebook.
func (w *Workspace) CreateSection(in SectionInput) (model.Section, error) {
	name, err := requireName("section", in.Name)
	if err != nil {
		return model.Section{}, err
	}
	if _, ok := w.app.Notebooks.Get(in.NotebookID); !ok {
		return model.Section{}, fmt.Errorf("notebook %s: %w", in.NotebookID, ErrNotFound)
	}
	sec := w.app.Sections.Create(in.NotebookID, name, w.user, in.Color)
	w.app.Notebooks.AddSection(in.NotebookID, sec.ID)
	return sec, nil
}

func (w *Workspace) Sections(notebookID model.NotebookID) ([]model.Section, error) {
	if _, ok := w.app.Notebooks.Get(notebookID); !ok {
		return nil, fmt.Errorf("notebook %s: %w", notebookID, ErrNotFound)
	}
	return w.app.Sections.ListByNotebook(notebookID), nil
}

func (w *Workspace) Section(id model.SectionID) (model.Section, error) {
	sec, ok := w.app.Sections.Get(id)
	if !ok {
		return model.Section{}, fmt.Errorf("section %s: %w", id, ErrNotFound)
	}
	return sec, nil
}

func (w *Workspace) RenameSection(id model.SectionID, name string) error {
	name, err := requireName("section", name)
	if err != nil {
		return err
	}
	if !w.app.Sections.Update(id, store.SectionPatch{Name: &name}) {
		return fmt.Errorf("section %s: %w", id, ErrNotFound)
	}
	return nil
}

// DeleteSection removes the section, its pages and its notebook
// back-reference, and returns the ids of the removed pages.
func (w *Workspace) DeleteSection(id model.SectionID) ([]model.PageID, error) {
	sec, ok := w.app.Sections.Get(id)
	if !ok {
		return nil, fmt.Errorf("section %s: %w", id, ErrNotFound)
	}
	pages := w.app.Pages.RemoveBySection(id)
	w.app.Sections.Delete(id)
	w.app.Notebooks.RemoveSection(sec.NotebookID, id)
	w.dropActiveIfRemoved(pages)
	return pages, nil
}

func requireName(kind, name string) (string, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return "", fmt.Errorf("%s name must not be empty: %w", kind, ErrInvalidInput)
	}
	return name, nil
}
