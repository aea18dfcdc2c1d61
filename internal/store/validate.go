package store

import (
	"errors"
	"fmt"
	"strings"

	"github.com/notebook-md/notebookmd/internal/model"
)

// Validate checks the page invariants: the flat order is a permutation of the
// page ids, every parent exists, there are no cycles, and level and path agree
// with the parent chain. It returns every violation found, joined.
func (s *PageStore) Validate() error {
	return validatePages(s.cell.load())
}

func validatePages(state *pageState) error {
	var errs []error

	seen := make(map[model.PageID]bool, len(state.ordered))
	for _, id := range state.ordered {
		if seen[id] {
			errs = append(errs, fmt.Errorf("page %s appears twice in the order", id))
			continue
		}
		seen[id] = true
		if _, ok := state.pages[id]; !ok {
			errs = append(errs, fmt.Errorf("order references missing page %s", id))
		}
	}
	for id := range state.pages {
		if !seen[id] {
			errs = append(errs, fmt.Errorf("page %s is missing from the order", id))
		}
	}

	for id, p := range state.pages {
		if last := p.Path[strings.LastIndex(p.Path, "/")+1:]; last != id {
			errs = append(errs, fmt.Errorf("page %s: path %q does not end in its id", id, p.Path))
		}
		if p.ParentPageID == "" {
			if p.Level != 0 {
				errs = append(errs, fmt.Errorf("page %s: root page has level %d", id, p.Level))
			}
			continue
		}
		parent, ok := state.pages[p.ParentPageID]
		if !ok {
			errs = append(errs, fmt.Errorf("page %s: parent %s does not exist", id, p.ParentPageID))
			continue
		}
		if isWithin(state.pages, p.ParentPageID, id) {
			errs = append(errs, fmt.Errorf("page %s: parent chain loops back to itself", id))
			continue
		}
		if p.Level != parent.Level+1 {
			errs = append(errs, fmt.Errorf("page %s: level %d, parent level %d", id, p.Level, parent.Level))
		}
		if p.Path != parent.Path+"/"+id {
			errs = append(errs, fmt.Errorf("page %s: path %q does not extend parent path %q", id, p.Path, parent.Path))
		}
	}

	return errors.Join(errs...)
}
