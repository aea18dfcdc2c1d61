package store

import (
	"slices"
	"strings"

	"github.com/notebook-md/notebookmd/internal/model"
)

// Reorder applies a drag of activeID onto overID.
//
// An empty overID means the page was dropped outside the tree: it becomes a
// root page under its own section's notebook/section prefix, or a bare id for
// an inbox page. Otherwise the page takes
// overID's slot in the flat order (unless overID is its own child) and is then
// re-parented according to the pre-move levels of both pages:
//
//   - same level, different parent: active becomes a sibling of over;
//   - active deeper than over: over becomes active's parent;
//   - active shallower than over, and over is not active's child: active takes
//     over's parent and level.
//
// A move that would place a page under its own descendant is not applied.
// Descendants follow the moved page so levels and paths stay consistent.
// Unknown ids are ignored. Reorder reports whether anything changed.
func (s *PageStore) Reorder(activeID, overID model.PageID) bool {
	return s.cell.update(func(cur *pageState) *pageState {
		active, ok := cur.pages[activeID]
		if !ok {
			return nil
		}

		if overID == "" {
			next := cur.clone()
			if !next.resetToRoot(active) {
				return nil
			}
			return next
		}

		over, ok := cur.pages[overID]
		if !ok {
			return nil
		}

		next := cur.clone()
		changed := false
		if over.ParentPageID != active.ID {
			from := slices.Index(next.ordered, active.ID)
			to := slices.Index(next.ordered, over.ID)
			if from >= 0 && to >= 0 && from != to {
				next.ordered = arrayMove(next.ordered, from, to)
				changed = true
			}
		}
		if next.reparent(active, over) {
			changed = true
		}
		if !changed {
			return nil
		}
		return next
	})
}

// resetToRoot detaches the page from its parent.
func (s *pageState) resetToRoot(active model.Page) bool {
	placed := active
	placed.ParentPageID = ""
	placed.Level = 0
	placed.Path = joinPath(s.rootPrefix(active), active.ID)
	return s.place(active, placed)
}

// rootPrefix returns the notebook/section prefix a root page of p's section
// carries. Inbox pages have none, even when they sit under a categorized
// parent. The page's own path is preferred; otherwise another page of the
// same section supplies it.
func (s *pageState) rootPrefix(p model.Page) string {
	if p.IsInbox() {
		return ""
	}
	if prefix := pathPrefix(p); endsWithSection(prefix, p.SectionID) {
		return prefix
	}
	for _, id := range s.ordered {
		other, ok := s.pages[id]
		if !ok || other.SectionID != p.SectionID {
			continue
		}
		if prefix := pathPrefix(other); endsWithSection(prefix, p.SectionID) {
			return prefix
		}
	}
	return pathPrefix(p)
}

func endsWithSection(prefix string, sectionID model.SectionID) bool {
	return prefix == sectionID || strings.HasSuffix(prefix, "/"+sectionID)
}

// reparent applies the hierarchy half of a drag, using the pages as they were
// before the flat-order move.
func (s *pageState) reparent(active, over model.Page) bool {
	placed := active
	switch {
	case active.Level == over.Level:
		if active.ParentPageID == over.ParentPageID {
			return false
		}
		placed.ParentPageID = over.ParentPageID
		placed.Level = over.Level
		placed.Path = replaceLast(over.Path, active.ID)
	case active.Level > over.Level:
		placed.ParentPageID = over.ID
		placed.Level = over.Level + 1
		placed.Path = over.Path + "/" + active.ID
	default:
		if active.ID == over.ParentPageID {
			return false
		}
		placed.ParentPageID = over.ParentPageID
		placed.Level = over.Level
		placed.Path = replaceLast(over.Path, active.ID)
	}

	if placed.ParentPageID != "" && isWithin(s.pages, placed.ParentPageID, active.ID) {
		return false
	}
	placed.SectionID = over.SectionID
	return s.place(active, placed)
}

// place stores the moved page and rebases its subtree. It reports false when
// placed is identical to the page's current hierarchy fields.
func (s *pageState) place(before, placed model.Page) bool {
	if before.ParentPageID == placed.ParentPageID &&
		before.Level == placed.Level &&
		before.Path == placed.Path &&
		before.SectionID == placed.SectionID {
		return false
	}
	s.pages[placed.ID] = placed
	s.rebase(placed.ID, before.SectionID, placed.SectionID)
	return true
}

// rebase recomputes level and path for every descendant of id. Descendants
// that shared the moved page's old section follow it into the new one.
func (s *pageState) rebase(id model.PageID, oldSection, newSection model.SectionID) {
	children := childIndex(s)
	queue := []model.PageID{id}
	seen := map[model.PageID]bool{id: true}
	for len(queue) > 0 {
		parent := s.pages[queue[0]]
		queue = queue[1:]
		for _, childID := range children[parent.ID] {
			if seen[childID] {
				continue
			}
			seen[childID] = true
			child := s.pages[childID]
			child.Level = parent.Level + 1
			child.Path = parent.Path + "/" + child.ID
			if oldSection != newSection && child.SectionID == oldSection {
				child.SectionID = newSection
			}
			s.pages[childID] = child
			queue = append(queue, childID)
		}
	}
}

// childIndex maps each page id to its children, in flat order.
func childIndex(s *pageState) map[model.PageID][]model.PageID {
	children := make(map[model.PageID][]model.PageID, len(s.pages))
	for _, id := range s.ordered {
		p, ok := s.pages[id]
		if !ok || p.ParentPageID == "" {
			continue
		}
		children[p.ParentPageID] = append(children[p.ParentPageID], id)
	}
	return children
}

// subtree returns root and every page below it.
func subtree(s *pageState, root model.PageID) map[model.PageID]bool {
	children := childIndex(s)
	out := map[model.PageID]bool{root: true}
	queue := []model.PageID{root}
	for len(queue) > 0 {
		id := queue[0]
		queue = queue[1:]
		for _, child := range children[id] {
			if !out[child] {
				out[child] = true
				queue = append(queue, child)
			}
		}
	}
	return out
}

// isWithin reports whether id is ancestor or one of its descendants, by
// walking parent links up from id.
func isWithin(pages map[model.PageID]model.Page, id, ancestor model.PageID) bool {
	seen := map[model.PageID]bool{}
	for id != "" && !seen[id] {
		if id == ancestor {
			return true
		}
		seen[id] = true
		p, ok := pages[id]
		if !ok {
			return false
		}
		id = p.ParentPageID
	}
	return false
}

// pathPrefix returns the notebook/section part of the page's path, i.e. what
// precedes the level+1 page ids at its end.
func pathPrefix(p model.Page) string {
	segments := strings.Split(p.Path, "/")
	n := len(segments) - (p.Level + 1)
	if n <= 0 {
		return ""
	}
	return strings.Join(segments[:n], "/")
}

func joinPath(prefix, id string) string {
	switch {
	case prefix == "":
		return id
	case id == "":
		return prefix
	default:
		return prefix + "/" + id
	}
}

// replaceLast swaps the final path segment for id.
func replaceLast(path, id string) string {
	i := strings.LastIndex(path, "/")
	if i < 0 {
		return id
	}
	return path[:i+1] + id
}
