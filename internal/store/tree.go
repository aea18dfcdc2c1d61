package store

import (
	"slices"
	"strings"

	"github.com/notebook-md/notebookmd/internal/model"
)

// Node is a page with its children, used to render a page tree.
type Node struct {
	Page     model.Page
	Children []Node
}

// Children returns the direct children of id in flat order.
func (s *PageStore) Children(id model.PageID) []model.Page {
	state := s.cell.load()
	var out []model.Page
	for _, childID := range childIndex(state)[id] {
		out = append(out, state.pages[childID])
	}
	return out
}

// Tree returns the root pages of the section, each with its descendants, in
// flat order. An empty sectionID selects the inbox.
func (s *PageStore) Tree(sectionID model.SectionID) []Node {
	state := s.cell.load()
	children := childIndex(state)
	var roots []Node
	for _, id := range state.ordered {
		p := state.pages[id]
		if p.IsRoot() && p.SectionID == sectionID {
			roots = append(roots, buildNode(state, children, p, map[model.PageID]bool{}))
		}
	}
	return roots
}

func buildNode(state *pageState, children map[model.PageID][]model.PageID, p model.Page, seen map[model.PageID]bool) Node {
	seen[p.ID] = true
	n := Node{Page: p}
	for _, childID := range children[p.ID] {
		if seen[childID] {
			continue
		}
		n.Children = append(n.Children, buildNode(state, children, state.pages[childID], seen))
	}
	return n
}

// Inbox returns the root pages without a section, oldest first.
func (s *PageStore) Inbox() []model.Page {
	return s.rootsWhere(func(p model.Page) bool { return p.IsInbox() })
}

// Roots returns every level 0 page, oldest first.
func (s *PageStore) Roots() []model.Page {
	return s.rootsWhere(func(model.Page) bool { return true })
}

func (s *PageStore) rootsWhere(keep func(model.Page) bool) []model.Page {
	var out []model.Page
	for _, p := range s.List() {
		if p.Level == 0 && keep(p) {
			out = append(out, p)
		}
	}
	sortByCreation(out)
	return out
}

// sortByCreation orders pages oldest first, breaking ties by id.
func sortByCreation(pages []model.Page) {
	slices.SortStableFunc(pages, func(a, b model.Page) int {
		if c := a.CreationDate.Compare(b.CreationDate); c != 0 {
			return c
		}
		return strings.Compare(a.ID, b.ID)
	})
}
