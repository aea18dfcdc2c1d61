package store

import (
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/notebook-md/notebookmd/internal/model"
)

var epoch = time.Date(2024, 3, 1, 9, 0, 0, 0, time.UTC)

// testOptions gives a store a clock that advances one minute per call and
// sequential ids.
func testOptions() []Option {
	ticks, ids := 0, 0
	return []Option{
		WithClock(func() time.Time {
			ticks++
			return epoch.Add(time.Duration(ticks) * time.Minute)
		}),
		WithIDGenerator(func() string {
			ids++
			return fmt.Sprintf("%d", ids)
		}),
	}
}

func newTestPageStore() *PageStore {
	return NewPageStore(testOptions()...)
}

func mustGet(t *testing.T, s *PageStore, id model.PageID) model.Page {
	t.Helper()
	p, ok := s.Get(id)
	require.True(t, ok, "page %s not found", id)
	return p
}

func requireValid(t *testing.T, s *PageStore) {
	t.Helper()
	require.NoError(t, s.Validate())
}

func ids(pages []model.Page) []model.PageID {
	out := make([]model.PageID, 0, len(pages))
	for _, p := range pages {
		out = append(out, p.ID)
	}
	return out
}
