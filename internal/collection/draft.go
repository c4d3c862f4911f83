package collection

import "sort"

// DraftStore holds the in-memory working copy of one collection: the items
// fetched from the gateway plus the items staged locally. It is pure state;
// it never talks to the gateway itself.
type DraftStore[P any] struct {
	persisted []Item[P]
	staged    []Item[P]
}

// NewDraftStore returns an empty working copy.
func NewDraftStore[P any]() *DraftStore[P] {
	return &DraftStore[P]{
		persisted: []Item[P]{},
		staged:    []Item[P]{},
	}
}

// Hydrate replaces the persisted sequence with the backend's view and
// drops any leftover staged items from a previous dialog.
func (s *DraftStore[P]) Hydrate(items []Item[P]) {
	s.persisted = make([]Item[P], len(items))
	copy(s.persisted, items)
	s.staged = []Item[P]{}
}

// Merged returns persisted ++ staged sorted by order, with the order
// values re-presented contiguous 0..N-1. The returned slice is a copy;
// stored orders stay untouched until CommitOrder.
func (s *DraftStore[P]) Merged() []Item[P] {
	merged := make([]Item[P], 0, len(s.persisted)+len(s.staged))
	merged = append(merged, s.persisted...)
	merged = append(merged, s.staged...)

	sort.SliceStable(merged, func(i, j int) bool {
		return merged[i].Order < merged[j].Order
	})

	for i := range merged {
		merged[i].Order = i
	}
	return merged
}

// Len is the merged collection length.
func (s *DraftStore[P]) Len() int {
	return len(s.persisted) + len(s.staged)
}

// Stage appends a new local item with a fresh temporary id at the end of
// the merged view.
func (s *DraftStore[P]) Stage(payload P) Item[P] {
	item := Item[P]{
		ID:      NewStagedID(),
		Order:   s.nextOrder(),
		Origin:  OriginStaged,
		State:   StateStaged,
		Payload: payload,
	}
	s.staged = append(s.staged, item)
	return item
}

// nextOrder is one past the highest stored order, 0 when empty. The
// count is not enough: hydrated orders may still be sparse before
// CommitOrder runs, and a new item must never sort ahead of them.
func (s *DraftStore[P]) nextOrder() int {
	next := 0
	for _, item := range s.persisted {
		if item.Order >= next {
			next = item.Order + 1
		}
	}
	for _, item := range s.staged {
		if item.Order >= next {
			next = item.Order + 1
		}
	}
	return next
}

// Promote swaps a staged item for the persisted one the backend returned
// after a successful create, preserving the local position.
func (s *DraftStore[P]) Promote(stagedID string, serverItem Item[P]) bool {
	for i := range s.staged {
		if s.staged[i].ID != stagedID {
			continue
		}
		serverItem.Order = s.staged[i].Order
		serverItem.Origin = OriginPersisted
		serverItem.State = StateSynced
		serverItem.SyncError = ""
		s.staged = append(s.staged[:i], s.staged[i+1:]...)
		s.persisted = append(s.persisted, serverItem)
		return true
	}
	return false
}

// RemoveLocally removes the item from whichever sequence holds it.
// Calling the gateway, when required, is the manager's responsibility.
func (s *DraftStore[P]) RemoveLocally(id string) bool {
	for i := range s.staged {
		if s.staged[i].ID == id {
			s.staged = append(s.staged[:i], s.staged[i+1:]...)
			return true
		}
	}
	for i := range s.persisted {
		if s.persisted[i].ID == id {
			s.persisted = append(s.persisted[:i], s.persisted[i+1:]...)
			return true
		}
	}
	return false
}

// Get returns a copy of the item with the given id.
func (s *DraftStore[P]) Get(id string) (Item[P], bool) {
	if item := s.find(id); item != nil {
		return *item, true
	}
	return Item[P]{}, false
}

// find returns a mutable pointer into the underlying sequences.
func (s *DraftStore[P]) find(id string) *Item[P] {
	for i := range s.staged {
		if s.staged[i].ID == id {
			return &s.staged[i]
		}
	}
	for i := range s.persisted {
		if s.persisted[i].ID == id {
			return &s.persisted[i]
		}
	}
	return nil
}

// each visits every stored item mutably, staged and persisted.
func (s *DraftStore[P]) each(fn func(item *Item[P])) {
	for i := range s.persisted {
		fn(&s.persisted[i])
	}
	for i := range s.staged {
		fn(&s.staged[i])
	}
}

// CommitOrder rewrites the stored order values to match the merged view,
// making the contiguous 0..N-1 presentation durable.
func (s *DraftStore[P]) CommitOrder() {
	for i, item := range s.Merged() {
		if stored := s.find(item.ID); stored != nil {
			stored.Order = i
		}
	}
}

// stagedInOrder returns the ids of items still awaiting a create, in
// merged order. Flushing follows this order so the server-assigned
// positions match what the user arranged.
func (s *DraftStore[P]) stagedInOrder() []string {
	ids := make([]string, 0, len(s.staged))
	for _, item := range s.Merged() {
		if item.Origin == OriginStaged {
			ids = append(ids, item.ID)
		}
	}
	return ids
}
