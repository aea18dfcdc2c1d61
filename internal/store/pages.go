package store

import (
	"maps"
	"slices"

	"github.com/notebook-md/notebookmd/internal/model"
)

// pageState pairs the page map with the flat drag order. ordered is always a
// permutation of the map keys.
type pageState struct {
	pages   map[model.PageID]model.Page
	ordered []model.PageID
}

func (s *pageState) clone() *pageState {
	return &pageState{
		pages:   maps.Clone(s.pages),
		ordered: slices.Clone(s.ordered),
	}
}

func emptyPageState() *pageState {
	return &pageState{pages: map[model.PageID]model.Page{}, ordered: []model.PageID{}}
}

// PagePatch carries the content and metadata fields a caller may change.
// Hierarchy fields are only changed by Reorder, Reposition and Add.
type PagePatch struct {
	Title    *string
	Data     *model.Content
	Archived *bool
}

// PageStore owns the page map, the flat page order and the hierarchy engine.
type PageStore struct {
	cell *cell[pageState]
	opts options
}

// NewPageStore returns an empty store.
func NewPageStore(opts ...Option) *PageStore {
	return &PageStore{
		cell: newCell(emptyPageState()),
		opts: buildOptions(opts),
	}
}

// Create adds a page and appends it to the end of the flat order.
//
// Without a parent (or with a parent id that does not resolve) the page is a
// root page whose path is notebookID/sectionID/id, skipping empty parts. With a
// parent the page sits one level below it and extends the parent's path. The
// sectionID passed in is kept as is, even when it differs from the parent's.
func (s *PageStore) Create(notebookID model.NotebookID, sectionID model.SectionID, title string, parentPageID model.PageID, data model.Content) model.Page {
	var page model.Page
	s.cell.update(func(cur *pageState) *pageState {
		now := s.opts.now()
		id := "page-" + s.opts.newID()
		page = model.Page{
			ID:           id,
			SectionID:    sectionID,
			Title:        title,
			Data:         data,
			Path:         joinPath(joinPath(notebookID, sectionID), id),
			CreationDate: now,
			EditedDate:   now,
		}
		if parent, ok := cur.pages[parentPageID]; ok && parentPageID != "" {
			page.ParentPageID = parent.ID
			page.Level = parent.Level + 1
			page.Path = parent.Path + "/" + id
		}

		next := cur.clone()
		next.pages[id] = page
		next.ordered = append(next.ordered, id)
		return next
	})
	return page
}

// Add inserts an existing page, for example one restored from an export. Its
// level and path are normalised against its parent; a parent that does not
// exist turns it into a root page. An id already present keeps its position in
// the flat order.
func (s *PageStore) Add(page model.Page) model.Page {
	s.cell.update(func(cur *pageState) *pageState {
		if page.ID == "" {
			page.ID = "page-" + s.opts.newID()
		}
		if page.CreationDate.IsZero() {
			page.CreationDate = s.opts.now()
		}
		if page.EditedDate.IsZero() {
			page.EditedDate = page.CreationDate
		}
		parent, ok := cur.pages[page.ParentPageID]
		switch {
		case ok && page.ParentPageID != page.ID && !isWithin(cur.pages, parent.ID, page.ID):
			page.Level = parent.Level + 1
			page.Path = parent.Path + "/" + page.ID
		default:
			prefix := cur.rootPrefix(page)
			page.ParentPageID = ""
			page.Level = 0
			page.Path = joinPath(prefix, page.ID)
		}

		next := cur.clone()
		if _, exists := next.pages[page.ID]; !exists {
			next.ordered = append(next.ordered, page.ID)
		}
		next.pages[page.ID] = page
		next.rebase(page.ID, page.SectionID, page.SectionID)
		return next
	})
	return page
}

// Get returns the page with the given id.
func (s *PageStore) Get(id model.PageID) (model.Page, bool) {
	p, ok := s.cell.load().pages[id]
	return p, ok
}

// Len returns the number of pages.
func (s *PageStore) Len() int {
	return len(s.cell.load().pages)
}

// List returns every page in flat order.
func (s *PageStore) List() []model.Page {
	state := s.cell.load()
	out := make([]model.Page, 0, len(state.ordered))
	for _, id := range state.ordered {
		out = append(out, state.pages[id])
	}
	return out
}

// Order returns a copy of the flat page order.
func (s *PageStore) Order() []model.PageID {
	return slices.Clone(s.cell.load().ordered)
}

// Update merges patch into the page and refreshes its edited date. It reports
// false, changing nothing, when the id is unknown.
func (s *PageStore) Update(id model.PageID, patch PagePatch) bool {
	return s.cell.update(func(cur *pageState) *pageState {
		p, ok := cur.pages[id]
		if !ok {
			return nil
		}
		if patch.Title != nil {
			p.Title = *patch.Title
		}
		if patch.Data != nil {
			p.Data = *patch.Data
		}
		if patch.Archived != nil {
			p.Archived = *patch.Archived
		}
		p.EditedDate = s.opts.now()

		next := cur.clone()
		next.pages[id] = p
		return next
	})
}

// Archive sets the archived flag. Archived pages stay in the tree.
func (s *PageStore) Archive(id model.PageID, archived bool) bool {
	return s.Update(id, PagePatch{Archived: &archived})
}

// Remove deletes the page together with its whole subtree and returns the ids
// removed, in flat order. Unknown ids remove nothing.
func (s *PageStore) Remove(id model.PageID) []model.PageID {
	var removed []model.PageID
	s.cell.update(func(cur *pageState) *pageState {
		if _, ok := cur.pages[id]; !ok {
			return nil
		}
		next, ids := cur.without(subtree(cur, id))
		removed = ids
		return next
	})
	return removed
}

// RemoveBySection deletes every page of the section, plus any descendants they
// have in other sections, and returns the ids removed in flat order.
func (s *PageStore) RemoveBySection(sectionID model.SectionID) []model.PageID {
	var removed []model.PageID
	s.cell.update(func(cur *pageState) *pageState {
		doomed := map[model.PageID]bool{}
		for id, p := range cur.pages {
			if p.SectionID == sectionID {
				for sub := range subtree(cur, id) {
					doomed[sub] = true
				}
			}
		}
		if len(doomed) == 0 {
			return nil
		}
		next, ids := cur.without(doomed)
		removed = ids
		return next
	})
	return removed
}

// Clear removes every page.
func (s *PageStore) Clear() {
	s.cell.update(func(cur *pageState) *pageState {
		if len(cur.pages) == 0 {
			return nil
		}
		return emptyPageState()
	})
}

// Reposition moves the page to index in the flat order. The index is clamped to
// the valid range. The hierarchy is not touched.
func (s *PageStore) Reposition(id model.PageID, index int) bool {
	return s.cell.update(func(cur *pageState) *pageState {
		from := slices.Index(cur.ordered, id)
		if from < 0 {
			return nil
		}
		index = max(0, min(index, len(cur.ordered)-1))
		if from == index {
			return nil
		}
		next := cur.clone()
		next.ordered = arrayMove(next.ordered, from, index)
		return next
	})
}

// Subscribe registers fn to run after every committed mutation.
func (s *PageStore) Subscribe(fn func()) {
	s.cell.subscribe(fn)
}

// without returns a copy of s minus the given ids, and the removed ids in flat
// order.
func (s *pageState) without(doomed map[model.PageID]bool) (*pageState, []model.PageID) {
	next := &pageState{
		pages:   make(map[model.PageID]model.Page, len(s.pages)),
		ordered: make([]model.PageID, 0, len(s.ordered)),
	}
	var removed []model.PageID
	for _, id := range s.ordered {
		if doomed[id] {
			removed = append(removed, id)
			continue
		}
		next.ordered = append(next.ordered, id)
		next.pages[id] = s.pages[id]
	}
	return next, removed
}

// arrayMove removes the element at from and reinserts it at to.
func arrayMove(ids []model.PageID, from, to int) []model.PageID {
	moved := ids[from]
	ids = slices.Delete(ids, from, from+1)
	return slices.Insert(ids, to, moved)
}
