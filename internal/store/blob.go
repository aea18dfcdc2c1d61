package store

import (
	"encoding/json"
	"fmt"

	"github.com/notebook-md/notebookmd/internal/model"
)

// Blob names under which each store persists its whole state.
const (
	NotebookBlob = "notebook-storage"
	SectionBlob  = "section-storage"
	PageBlob     = "page-storage"
)

// Persistent is a store that can be saved to and loaded from a single JSON blob.
type Persistent interface {
	BlobName() string
	MarshalBlob() ([]byte, error)
	LoadBlob(data []byte) error
	Subscribe(fn func())
}

var (
	_ Persistent = (*NotebookStore)(nil)
	_ Persistent = (*SectionStore)(nil)
	_ Persistent = (*PageStore)(nil)
)

type notebookBlob struct {
	Notebooks map[model.NotebookID]model.Notebook `json:"notebooks"`
}

func (s *NotebookStore) BlobName() string { return NotebookBlob }

func (s *NotebookStore) MarshalBlob() ([]byte, error) {
	return json.Marshal(notebookBlob{Notebooks: s.cell.load().notebooks})
}

// LoadBlob replaces the store's state without notifying subscribers.
func (s *NotebookStore) LoadBlob(data []byte) error {
	var blob notebookBlob
	if err := json.Unmarshal(data, &blob); err != nil {
		return fmt.Errorf("failed to decode %s: %w", NotebookBlob, err)
	}
	state := &notebookState{notebooks: make(map[model.NotebookID]model.Notebook, len(blob.Notebooks))}
	for id, nb := range blob.Notebooks {
		nb.ID = id
		if nb.Sections == nil {
			nb.Sections = []model.SectionID{}
		}
		state.notebooks[id] = nb
	}
	s.cell.replace(state)
	return nil
}

type sectionBlob struct {
	Sections map[model.SectionID]model.Section `json:"sections"`
}

func (s *SectionStore) BlobName() string { return SectionBlob }

func (s *SectionStore) MarshalBlob() ([]byte, error) {
	return json.Marshal(sectionBlob{Sections: s.cell.load().sections})
}

// LoadBlob replaces the store's state without notifying subscribers.
func (s *SectionStore) LoadBlob(data []byte) error {
	var blob sectionBlob
	if err := json.Unmarshal(data, &blob); err != nil {
		return fmt.Errorf("failed to decode %s: %w", SectionBlob, err)
	}
	state := &sectionState{sections: make(map[model.SectionID]model.Section, len(blob.Sections))}
	for id, sec := range blob.Sections {
		sec.ID = id
		state.sections[id] = sec
	}
	s.cell.replace(state)
	return nil
}

type pageBlob struct {
	Pages        map[model.PageID]model.Page `json:"pages"`
	OrderedPages []model.PageID              `json:"orderedPages"`
}

func (s *PageStore) BlobName() string { return PageBlob }

func (s *PageStore) MarshalBlob() ([]byte, error) {
	state := s.cell.load()
	return json.Marshal(pageBlob{Pages: state.pages, OrderedPages: state.ordered})
}

// LoadBlob replaces the store's state without notifying subscribers. The
// stored order is repaired so it stays a permutation of the page ids: unknown
// and repeated ids are dropped, and pages missing from it are appended.
func (s *PageStore) LoadBlob(data []byte) error {
	var blob pageBlob
	if err := json.Unmarshal(data, &blob); err != nil {
		return fmt.Errorf("failed to decode %s: %w", PageBlob, err)
	}
	state := emptyPageState()
	for id, p := range blob.Pages {
		p.ID = id
		state.pages[id] = p
	}

	seen := make(map[model.PageID]bool, len(state.pages))
	for _, id := range blob.OrderedPages {
		if _, ok := state.pages[id]; ok && !seen[id] {
			seen[id] = true
			state.ordered = append(state.ordered, id)
		}
	}
	var missing []model.Page
	for id, p := range state.pages {
		if !seen[id] {
			missing = append(missing, p)
		}
	}
	sortByCreation(missing)
	for _, p := range missing {
		state.ordered = append(state.ordered, p.ID)
	}

	s.cell.replace(state)
	return nil
}
