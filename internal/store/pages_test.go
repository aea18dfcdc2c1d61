package store

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/notebook-md/notebookmd/internal/model"
)

func TestPageStore_CreateRoot(t *testing.T) {
	s := newTestPageStore()

	p := s.Create("nb", "section-1", "Root", "", "doc")

	assert.Equal(t, "page-1", p.ID)
	assert.Equal(t, 0, p.Level)
	assert.Equal(t, "nb/section-1/page-1", p.Path)
	assert.Equal(t, p.CreationDate, p.EditedDate)
	assert.Equal(t, []model.PageID{p.ID}, s.Order())
}

func TestPageStore_CreateInboxPathIsBareID(t *testing.T) {
	s := newTestPageStore()

	p := s.Create("", "", "Loose", "", "")

	assert.Equal(t, p.ID, p.Path)
	assert.True(t, p.IsInbox())
}

func TestPageStore_CreateChild(t *testing.T) {
	s := newTestPageStore()
	a := s.Create("nb", "sec", "A", "", "")

	b := s.Create("nb", "sec", "B", a.ID, "")

	assert.Equal(t, 1, b.Level)
	assert.Equal(t, a.Path+"/"+b.ID, b.Path)
	assert.Equal(t, a.ID, b.ParentPageID)
	requireValid(t, s)
}

func TestPageStore_CreateUnknownParentIsRoot(t *testing.T) {
	s := newTestPageStore()

	p := s.Create("nb", "sec", "Orphan", "page-missing", "")

	assert.Equal(t, 0, p.Level)
	assert.Empty(t, p.ParentPageID)
	requireValid(t, s)
}

func TestPageStore_UpdateRefreshesEditedDate(t *testing.T) {
	s := newTestPageStore()
	p := s.Create("", "", "Draft", "", "")

	title := "Final"
	data := model.Content(`{"ops":[]}`)
	require.True(t, s.Update(p.ID, PagePatch{Title: &title, Data: &data}))

	got := mustGet(t, s, p.ID)
	assert.Equal(t, "Final", got.Title)
	assert.Equal(t, data, got.Data)
	assert.True(t, got.EditedDate.After(p.EditedDate))
	assert.Equal(t, p.CreationDate, got.CreationDate)
}

func TestPageStore_UpdateUnknownIsNoop(t *testing.T) {
	s := newTestPageStore()
	calls := 0
	s.Subscribe(func() { calls++ })

	title := "x"
	assert.False(t, s.Update("page-nope", PagePatch{Title: &title}))
	assert.Equal(t, 0, calls)
}

func TestPageStore_Archive(t *testing.T) {
	s := newTestPageStore()
	p := s.Create("", "", "Old", "", "")

	require.True(t, s.Archive(p.ID, true))
	assert.True(t, mustGet(t, s, p.ID).Archived)

	require.True(t, s.Archive(p.ID, false))
	assert.False(t, mustGet(t, s, p.ID).Archived)
}

func TestPageStore_RemoveDeletesSubtree(t *testing.T) {
	s := newTestPageStore()
	a := s.Create("nb", "sec", "A", "", "")
	b := s.Create("nb", "sec", "B", a.ID, "")
	c := s.Create("nb", "sec", "C", b.ID, "")
	d := s.Create("nb", "sec", "D", "", "")

	removed := s.Remove(a.ID)

	assert.Equal(t, []model.PageID{a.ID, b.ID, c.ID}, removed)
	assert.Equal(t, []model.PageID{d.ID}, s.Order())
	assert.Equal(t, 1, s.Len())
	requireValid(t, s)
}

func TestPageStore_RemoveUnknown(t *testing.T) {
	s := newTestPageStore()
	s.Create("", "", "A", "", "")

	assert.Empty(t, s.Remove("page-nope"))
	assert.Equal(t, 1, s.Len())
}

func TestPageStore_RemoveBySection(t *testing.T) {
	s := newTestPageStore()
	p1 := s.Create("nb", "sec", "P1", "", "")
	s.Create("nb", "sec", "C1", p1.ID, "")
	s.Create("nb", "sec", "C2", p1.ID, "")
	s.Create("nb", "sec", "P2", "", "")
	s.Create("nb", "sec", "P3", "", "")
	keep := s.Create("nb", "other", "Keep", "", "")

	removed := s.RemoveBySection("sec")

	assert.Len(t, removed, 5)
	assert.Equal(t, []model.PageID{keep.ID}, s.Order())
	for _, id := range removed {
		_, ok := s.Get(id)
		assert.False(t, ok, "page %s still present", id)
	}
	requireValid(t, s)
}

func TestPageStore_RemoveBySectionTakesForeignDescendants(t *testing.T) {
	s := newTestPageStore()
	p := s.Create("nb", "sec", "P", "", "")
	s.Create("nb", "other", "Child elsewhere", p.ID, "")

	removed := s.RemoveBySection("sec")

	assert.Len(t, removed, 2)
	assert.Zero(t, s.Len())
}

func TestPageStore_Reposition(t *testing.T) {
	s := newTestPageStore()
	a := s.Create("", "", "A", "", "")
	b := s.Create("", "", "B", "", "")
	c := s.Create("", "", "C", "", "")

	require.True(t, s.Reposition(a.ID, 99))
	assert.Equal(t, []model.PageID{b.ID, c.ID, a.ID}, s.Order())

	require.True(t, s.Reposition(a.ID, -3))
	assert.Equal(t, []model.PageID{a.ID, b.ID, c.ID}, s.Order())

	assert.False(t, s.Reposition(a.ID, 0))
	assert.False(t, s.Reposition("page-nope", 1))
}

func TestPageStore_AddNormalisesHierarchy(t *testing.T) {
	s := newTestPageStore()
	parent := s.Create("nb", "sec", "Parent", "", "")

	child := s.Add(model.Page{
		ID:           "page-imported",
		SectionID:    "sec",
		ParentPageID: parent.ID,
		Title:        "Imported",
		Level:        7,
		Path:         "garbage",
	})

	assert.Equal(t, 1, child.Level)
	assert.Equal(t, parent.Path+"/page-imported", child.Path)
	assert.False(t, child.CreationDate.IsZero())
	requireValid(t, s)
}

func TestPageStore_AddMissingParentBecomesRoot(t *testing.T) {
	s := newTestPageStore()

	p := s.Add(model.Page{
		ID:           "page-x",
		SectionID:    "sec",
		ParentPageID: "page-gone",
		Level:        1,
		Path:         "nb/sec/page-gone/page-x",
	})

	assert.Empty(t, p.ParentPageID)
	assert.Equal(t, 0, p.Level)
	assert.Equal(t, "nb/sec/page-x", p.Path)
	requireValid(t, s)
}

func TestPageStore_AddInboxPageWithMissingParentDropsPrefix(t *testing.T) {
	s := newTestPageStore()

	p := s.Add(model.Page{
		ID:           "page-x",
		ParentPageID: "page-gone",
		Level:        1,
		Path:         "nb/sec/page-gone/page-x",
	})

	assert.Equal(t, "page-x", p.Path)
	assert.True(t, p.IsInbox())
	requireValid(t, s)
}

func TestPageStore_AddExistingKeepsOrder(t *testing.T) {
	s := newTestPageStore()
	a := s.Create("", "", "A", "", "")
	b := s.Create("", "", "B", "", "")

	a.Title = "A again"
	s.Add(a)

	assert.Equal(t, []model.PageID{a.ID, b.ID}, s.Order())
	assert.Equal(t, "A again", mustGet(t, s, a.ID).Title)
}

func TestPageStore_Clear(t *testing.T) {
	s := newTestPageStore()
	s.Create("", "", "A", "", "")
	calls := 0
	s.Subscribe(func() { calls++ })

	s.Clear()
	s.Clear()

	assert.Zero(t, s.Len())
	assert.Empty(t, s.Order())
	assert.Equal(t, 1, calls)
}

func TestPageStore_SnapshotsAreIsolated(t *testing.T) {
	s := newTestPageStore()
	a := s.Create("", "", "A", "", "")
	before := s.Order()

	s.Create("", "", "B", "", "")

	assert.Equal(t, []model.PageID{a.ID}, before)
}
