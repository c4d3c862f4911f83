package collection

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMergedSortsAndReindexes(t *testing.T) {
	s := NewDraftStore[note]()
	s.Hydrate([]Item[note]{
		{ID: "b", Order: 10, Payload: note{Label: "b"}},
		{ID: "a", Order: 3, Payload: note{Label: "a"}},
	})
	s.Stage(note{Label: "c"})

	merged := s.Merged()
	require.Len(t, merged, 3)
	assert.Equal(t, []string{"a", "b", "c"}, labelsOf(merged))
	for i, item := range merged {
		assert.Equal(t, i, item.Order)
	}
}

// Staging into a collection whose hydrated orders are sparse must still
// append: the new item may never sort ahead of existing members.
func TestStageAppendsAfterSparseOrders(t *testing.T) {
	s := NewDraftStore[note]()
	s.Hydrate([]Item[note]{
		{ID: "a", Order: 3, Payload: note{Label: "a"}},
		{ID: "b", Order: 10, Payload: note{Label: "b"}},
	})

	first := s.Stage(note{Label: "c"})
	second := s.Stage(note{Label: "d"})

	assert.Greater(t, first.Order, 10)
	assert.Greater(t, second.Order, first.Order)

	merged := s.Merged()
	require.Len(t, merged, 4)
	assert.Equal(t, []string{"a", "b", "c", "d"}, labelsOf(merged))
}

func TestMergedIsStableForEqualOrders(t *testing.T) {
	s := NewDraftStore[note]()
	s.Hydrate([]Item[note]{
		{ID: "first", Order: 0},
		{ID: "second", Order: 0},
	})

	merged := s.Merged()
	assert.Equal(t, "first", merged[0].ID, "ties keep arrival order")
	assert.Equal(t, "second", merged[1].ID)
}

func TestPromotePreservesLocalPosition(t *testing.T) {
	s := NewDraftStore[note]()
	s.Hydrate([]Item[note]{{ID: "a", Order: 0}})
	staged := s.Stage(note{Label: "new"})

	// The server assigns its own order; the local slot wins until the
	// next CommitOrder.
	ok := s.Promote(staged.ID, Item[note]{ID: "srv-9", Order: 99, Payload: note{Label: "new"}})
	require.True(t, ok)

	item, found := s.Get("srv-9")
	require.True(t, found)
	assert.Equal(t, staged.Order, item.Order)
	assert.Equal(t, OriginPersisted, item.Origin)
	assert.Equal(t, StateSynced, item.State)

	_, stillStaged := s.Get(staged.ID)
	assert.False(t, stillStaged)
}

func TestHydrateDropsStagedLeftovers(t *testing.T) {
	s := NewDraftStore[note]()
	s.Stage(note{Label: "orphan"})

	s.Hydrate([]Item[note]{{ID: "a", Order: 0}})
	assert.Equal(t, 1, s.Len())
}

func TestCommitOrderMakesPresentationDurable(t *testing.T) {
	s := NewDraftStore[note]()
	s.Hydrate([]Item[note]{
		{ID: "b", Order: 7},
		{ID: "a", Order: 2},
	})

	s.CommitOrder()

	item, _ := s.Get("a")
	assert.Equal(t, 0, item.Order)
	item, _ = s.Get("b")
	assert.Equal(t, 1, item.Order)
}
