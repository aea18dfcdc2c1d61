package store

import (
	"maps"
	"slices"
	"strings"

	"github.com/notebook-md/notebookmd/internal/model"
)

type notebookState struct {
	notebooks map[model.NotebookID]model.Notebook
}

func (s *notebookState) clone() *notebookState {
	return &notebookState{notebooks: maps.Clone(s.notebooks)}
}

// NotebookPatch carries the fields to change on a notebook. Nil fields are left
// untouched.
type NotebookPatch struct {
	Name        *string
	User        *model.UserID
	Description *string
	Colour      *string
	Sections    []model.SectionID
}

// NotebookStore owns the notebook map. It knows sections only through each
// notebook's back-reference list and never deletes them itself.
type NotebookStore struct {
	cell *cell[notebookState]
	opts options
}

// NewNotebookStore returns an empty store.
func NewNotebookStore(opts ...Option) *NotebookStore {
	return &NotebookStore{
		cell: newCell(&notebookState{notebooks: map[model.NotebookID]model.Notebook{}}),
		opts: buildOptions(opts),
	}
}

// Create adds a notebook with a fresh id and no sections. Empty description and
// colour fall back to "" and DefaultNotebookColour.
func (s *NotebookStore) Create(name string, user model.UserID, description, colour string) model.Notebook {
	if colour == "" {
		colour = DefaultNotebookColour
	}
	nb := model.Notebook{
		ID:          s.opts.newID(),
		Name:        name,
		User:        user,
		Description: description,
		Colour:      colour,
		Sections:    []model.SectionID{},
	}
	s.cell.update(func(cur *notebookState) *notebookState {
		next := cur.clone()
		next.notebooks[nb.ID] = nb
		return next
	})
	return nb.Clone()
}

// Get returns the notebook with the given id.
func (s *NotebookStore) Get(id model.NotebookID) (model.Notebook, bool) {
	nb, ok := s.cell.load().notebooks[id]
	if !ok {
		return model.Notebook{}, false
	}
	return nb.Clone(), true
}

// List returns all notebooks ordered by name, then id.
func (s *NotebookStore) List() []model.Notebook {
	state := s.cell.load()
	out := make([]model.Notebook, 0, len(state.notebooks))
	for _, nb := range state.notebooks {
		out = append(out, nb.Clone())
	}
	slices.SortFunc(out, func(a, b model.Notebook) int {
		if c := strings.Compare(strings.ToLower(a.Name), strings.ToLower(b.Name)); c != 0 {
			return c
		}
		return strings.Compare(a.ID, b.ID)
	})
	return out
}

// Update merges patch into the notebook. It reports false, changing nothing,
// when the id is unknown.
func (s *NotebookStore) Update(id model.NotebookID, patch NotebookPatch) bool {
	return s.cell.update(func(cur *notebookState) *notebookState {
		nb, ok := cur.notebooks[id]
		if !ok {
			return nil
		}
		nb = nb.Clone()
		if patch.Name != nil {
			nb.Name = *patch.Name
		}
		if patch.User != nil {
			nb.User = *patch.User
		}
		if patch.Description != nil {
			nb.Description = *patch.Description
		}
		if patch.Colour != nil {
			nb.Colour = *patch.Colour
		}
		if patch.Sections != nil {
			nb.Sections = append([]model.SectionID{}, patch.Sections...)
		}
		next := cur.clone()
		next.notebooks[id] = nb
		return next
	})
}

// Put stores nb as given, inserting or overwriting by id.
func (s *NotebookStore) Put(nb model.Notebook) {
	if nb.ID == "" {
		nb.ID = s.opts.newID()
	}
	nb = nb.Clone()
	s.cell.update(func(cur *notebookState) *notebookState {
		next := cur.clone()
		next.notebooks[nb.ID] = nb
		return next
	})
}

// AddSection appends sectionID to the notebook's back-references if missing.
func (s *NotebookStore) AddSection(id model.NotebookID, sectionID model.SectionID) bool {
	return s.cell.update(func(cur *notebookState) *notebookState {
		nb, ok := cur.notebooks[id]
		if !ok || slices.Contains(nb.Sections, sectionID) {
			return nil
		}
		nb = nb.Clone()
		nb.Sections = append(nb.Sections, sectionID)
		next := cur.clone()
		next.notebooks[id] = nb
		return next
	})
}

// RemoveSection drops sectionID from the notebook's back-references.
func (s *NotebookStore) RemoveSection(id model.NotebookID, sectionID model.SectionID) bool {
	return s.cell.update(func(cur *notebookState) *notebookState {
		nb, ok := cur.notebooks[id]
		if !ok || !slices.Contains(nb.Sections, sectionID) {
			return nil
		}
		nb = nb.Clone()
		nb.Sections = slices.DeleteFunc(nb.Sections, func(s model.SectionID) bool { return s == sectionID })
		next := cur.clone()
		next.notebooks[id] = nb
		return next
	})
}

// Delete removes the notebook only. Sections and pages are left to the caller.
func (s *NotebookStore) Delete(id model.NotebookID) bool {
	return s.cell.update(func(cur *notebookState) *notebookState {
		if _, ok := cur.notebooks[id]; !ok {
			return nil
		}
		next := cur.clone()
		delete(next.notebooks, id)
		return next
	})
}

// Clear removes every notebook.
func (s *NotebookStore) Clear() {
	s.cell.update(func(cur *notebookState) *notebookState {
		if len(cur.notebooks) == 0 {
			return nil
		}
		return &notebookState{notebooks: map[model.NotebookID]model.Notebook{}}
	})
}

// Subscribe registers fn to run after every committed mutation.
func (s *NotebookStore) Subscribe(fn func()) {
	s.cell.subscribe(fn)
}
