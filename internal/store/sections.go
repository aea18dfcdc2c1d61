package store

import (
	"maps"
	"slices"
	"strings"

	"github.com/notebook-md/notebookmd/internal/model"
)

type sectionState struct {
	sections map[model.SectionID]model.Section
}

func (s *sectionState) clone() *sectionState {
	return &sectionState{sections: maps.Clone(s.sections)}
}

// SectionPatch carries the fields to change on a section.
type SectionPatch struct {
	Name       *string
	User       *model.UserID
	NotebookID *model.NotebookID
	Color      *string
}

// SectionStore owns the section map.
type SectionStore struct {
	cell *cell[sectionState]
	opts options
}

// NewSectionStore returns an empty store.
func NewSectionStore(opts ...Option) *SectionStore {
	return &SectionStore{
		cell: newCell(&sectionState{sections: map[model.SectionID]model.Section{}}),
		opts: buildOptions(opts),
	}
}

// Create adds a section under notebookID. An empty color is replaced by a
// random red-pink one.
func (s *SectionStore) Create(notebookID model.NotebookID, name string, user model.UserID, color string) model.Section {
	if color == "" {
		color = RandomRedPinkHex()
	}
	sec := model.Section{
		ID:         "section-" + s.opts.newID(),
		Name:       name,
		User:       user,
		NotebookID: notebookID,
		Color:      color,
	}
	s.cell.update(func(cur *sectionState) *sectionState {
		next := cur.clone()
		next.sections[sec.ID] = sec
		return next
	})
	return sec
}

// Get returns the section with the given id.
func (s *SectionStore) Get(id model.SectionID) (model.Section, bool) {
	sec, ok := s.cell.load().sections[id]
	return sec, ok
}

// ListByNotebook returns the sections whose NotebookID matches, ordered by name
// then id. Callers must not rely on any other ordering.
func (s *SectionStore) ListByNotebook(notebookID model.NotebookID) []model.Section {
	var out []model.Section
	for _, sec := range s.cell.load().sections {
		if sec.NotebookID == notebookID {
			out = append(out, sec)
		}
	}
	sortSections(out)
	return out
}

// List returns every section ordered by name then id.
func (s *SectionStore) List() []model.Section {
	out := slices.Collect(maps.Values(s.cell.load().sections))
	sortSections(out)
	return out
}

func sortSections(sections []model.Section) {
	slices.SortFunc(sections, func(a, b model.Section) int {
		if c := strings.Compare(strings.ToLower(a.Name), strings.ToLower(b.Name)); c != 0 {
			return c
		}
		return strings.Compare(a.ID, b.ID)
	})
}

// Update merges patch into the section; false when the id is unknown.
func (s *SectionStore) Update(id model.SectionID, patch SectionPatch) bool {
	return s.cell.update(func(cur *sectionState) *sectionState {
		sec, ok := cur.sections[id]
		if !ok {
			return nil
		}
		if patch.Name != nil {
			sec.Name = *patch.Name
		}
		if patch.User != nil {
			sec.User = *patch.User
		}
		if patch.NotebookID != nil {
			sec.NotebookID = *patch.NotebookID
		}
		if patch.Color != nil {
			sec.Color = *patch.Color
		}
		next := cur.clone()
		next.sections[id] = sec
		return next
	})
}

// Put stores sec as given, inserting or overwriting by id.
func (s *SectionStore) Put(sec model.Section) {
	if sec.ID == "" {
		sec.ID = "section-" + s.opts.newID()
	}
	s.cell.update(func(cur *sectionState) *sectionState {
		next := cur.clone()
		next.sections[sec.ID] = sec
		return next
	})
}

// Delete removes the section only. Its pages are removed through
// PageStore.RemoveBySection.
func (s *SectionStore) Delete(id model.SectionID) bool {
	return s.cell.update(func(cur *sectionState) *sectionState {
		if _, ok := cur.sections[id]; !ok {
			return nil
		}
		next := cur.clone()
		delete(next.sections, id)
		return next
	})
}

// Clear removes every section.
func (s *SectionStore) Clear() {
	s.cell.update(func(cur *sectionState) *sectionState {
		if len(cur.sections) == 0 {
			return nil
		}
		return &sectionState{sections: map[model.SectionID]model.Section{}}
	})
}

// Subscribe registers fn to run after every committed mutation.
func (s *SectionStore) Subscribe(fn func()) {
	s.cell.subscribe(fn)
}
