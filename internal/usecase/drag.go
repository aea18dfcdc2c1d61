package usecase

import (
	"fmt"

	"github.com/notebook-md/notebookmd/internal/model"
)

// StartDrag records the page being dragged.
func (w *Workspace) StartDrag(id model.PageID) error {
	if _, ok := w.app.Pages.Get(id); !ok {
		return fmt.Errorf("page %s: %w", id, ErrNotFound)
	}
	w.mu.Lock()
	defer w.mu.Unlock()
	w.active = id
	return nil
}

// ActiveDrag returns the page currently being dragged, if any.
func (w *Workspace) ActiveDrag() (model.PageID, bool) {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.active, w.active != ""
}

// CancelDrag forgets the active drag without changing any page.
func (w *Workspace) CancelDrag() {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.active = ""
}

// EndDrag drops activeID onto overID and clears the active drag. An empty
// activeID uses the page passed to StartDrag. An empty overID means the page
// was dropped outside any page and becomes a root page. Drops that cannot be
// applied change nothing and are not errors; the result reports whether the
// tree or order changed.
func (w *Workspace) EndDrag(activeID, overID model.PageID) bool {
	w.mu.Lock()
	if activeID == "" {
		activeID = w.active
	}
	w.active = ""
	w.mu.Unlock()

	if activeID == "" {
		return false
	}
	return w.app.Pages.Reorder(activeID, overID)
}

func (w *Workspace) dropActiveIfRemoved(removed []model.PageID) {
	w.mu.Lock()
	defer w.mu.Unlock()
	for _, id := range removed {
		if id == w.active {
			w.active = ""
			return
		}
	}
}
