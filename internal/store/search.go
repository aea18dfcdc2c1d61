package store

import (
	"slices"
	"strings"

	"github.com/notebook-md/notebookmd/internal/model"
)

// RecentLimit is the number of pages an empty search returns.
const RecentLimit = 4

// Search matches page titles case-insensitively against query and returns the
// hits in flat order. An empty query returns the RecentLimit most recently
// edited pages, newest first. Whitespace is matched literally.
func (s *PageStore) Search(query string) []model.Page {
	pages := s.List()
	if query == "" {
		slices.SortStableFunc(pages, func(a, b model.Page) int {
			return b.EditedDate.Compare(a.EditedDate)
		})
		return pages[:min(RecentLimit, len(pages))]
	}

	needle := strings.ToLower(query)
	out := make([]model.Page, 0)
	for _, p := range pages {
		if strings.Contains(strings.ToLower(p.Title), needle) {
			out = append(out, p)
		}
	}
	return out
}
