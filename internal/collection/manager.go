package collection

import (
	"context"
	"sync"

	"goiashop-bff/internal/gateway"
)

// Gateway is the remote store a Manager synchronizes against. The HTTP
// implementation lives in internal/gateway; tests plug in fakes.
type Gateway[P any] interface {
	List(ctx context.Context, ownerID string) ([]gateway.Remote[P], error)
	Create(ctx context.Context, ownerID string, payload P, isDefault bool) (gateway.Remote[P], error)
	Update(ctx context.Context, itemID string, payload P) (gateway.Remote[P], error)
	Remove(ctx context.Context, itemID string) error
	SetDefault(ctx context.Context, itemID string) error
	SetOrder(ctx context.Context, itemID string, order int) error
}

// Manager owns one collection's working copy and enforces its two
// invariants across every mutation path:
//
//   - exactly min(1, len) items carry IsDefault
//   - the order values are exactly {0..N-1}, no gaps, no duplicates
//
// Gateway errors are never swallowed: the optimistic local mutation is
// reverted (or the item parked in a *_failed state) and the error
// re-surfaces to the caller with its kind and message intact.
type Manager[P any] struct {
	mu      sync.Mutex
	ownerID string
	store   *DraftStore[P]
	gw      Gateway[P]
}

// NewManager creates a manager for one owner's collection. Call Hydrate
// before reading Items.
func NewManager[P any](gw Gateway[P], ownerID string) *Manager[P] {
	return &Manager[P]{
		ownerID: ownerID,
		store:   NewDraftStore[P](),
		gw:      gw,
	}
}

func fromRemote[P any](r gateway.Remote[P]) Item[P] {
	return Item[P]{
		ID:        r.ID,
		Order:     r.Order,
		IsDefault: r.IsDefault,
		Origin:    OriginPersisted,
		State:     StateSynced,
		Payload:   r.Payload,
	}
}

// Hydrate loads the backend's view of the collection, discarding any
// staged leftovers. An owner without the collection propagates as
// NotFoundError - absence of data is not an empty list.
func (m *Manager[P]) Hydrate(ctx context.Context) error {
	remotes, err := m.gw.List(ctx, m.ownerID)
	if err != nil {
		return err
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	items := make([]Item[P], len(remotes))
	for i, r := range remotes {
		items[i] = fromRemote(r)
	}
	m.store.Hydrate(items)
	m.store.CommitOrder()
	return nil
}

// Items returns the ordered, merged view of the collection.
func (m *Manager[P]) Items() []Item[P] {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.store.Merged()
}

// Get returns a single item by id.
func (m *Manager[P]) Get(id string) (Item[P], bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.store.Get(id)
}

// Stage adds a new local item. The first item of an empty collection is
// forced default no matter what the caller asked for - there is no other
// sensible default. Later items are default only on explicit request.
func (m *Manager[P]) Stage(payload P, asDefault bool) Item[P] {
	m.mu.Lock()
	defer m.mu.Unlock()

	wasEmpty := m.store.Len() == 0
	item := m.store.Stage(payload)
	stored := m.store.find(item.ID)

	if wasEmpty || asDefault {
		m.store.each(func(it *Item[P]) {
			it.IsDefault = false
			it.PendingDefault = false
		})
		stored.IsDefault = true
		stored.PendingDefault = true
	}
	return *stored
}

// Save flushes staged items to the gateway one at a time, in merged
// order: the server assigns positions by arrival, so parallel uploads
// would scramble the sequence the user arranged. The flush stops at the
// first failure; the failing item is parked in stage_failed with the
// gateway's message and stays visible for retry or discard.
func (m *Manager[P]) Save(ctx context.Context) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	for _, id := range m.store.stagedInOrder() {
		stored := m.store.find(id)
		if stored == nil || (stored.State != StateStaged && stored.State != StateStageFailed) {
			continue
		}

		stored.State = StatePersisting
		wantDefault := stored.IsDefault

		remote, err := m.gw.Create(ctx, m.ownerID, stored.Payload, wantDefault)
		if err != nil {
			stored.State = StateStageFailed
			stored.SyncError = gateway.GetErrorMessage(err)
			return err
		}

		m.store.Promote(id, fromRemote(remote))

		if wantDefault {
			if !remote.IsDefault {
				// The create body carried the flag but the server did
				// not confirm it; settle it with an explicit call.
				if err := m.gw.SetDefault(ctx, remote.ID); err != nil {
					if stored := m.store.find(remote.ID); stored != nil {
						stored.PendingDefault = true
					}
					return err
				}
			}
			m.applyDefault(remote.ID)
		}
	}

	m.store.CommitOrder()
	return nil
}

// UpdateItem replaces the payload of an item. Staged items mutate locally
// and ride the next Save; persisted items are updated optimistically and
// reverted when the gateway rejects the change.
func (m *Manager[P]) UpdateItem(ctx context.Context, id string, payload P) (Item[P], error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	stored := m.store.find(id)
	if stored == nil {
		return Item[P]{}, gateway.NewNotFoundError("item is not part of this collection")
	}

	if stored.Origin == OriginStaged {
		stored.Payload = payload
		return *stored, nil
	}

	previous := stored.Payload
	stored.Payload = payload

	remote, err := m.gw.Update(ctx, id, payload)
	if err != nil {
		stored.Payload = previous
		return Item[P]{}, err
	}

	stored.Payload = remote.Payload
	return *stored, nil
}

// SetDefault makes the target the collection's single default. The whole
// collection is rewritten, not toggled: two rapid "set default" clicks
// resolve last-write-wins instead of leaving two defaults behind. The
// assignment is durable only once the gateway confirms; until then the
// target carries PendingDefault.
func (m *Manager[P]) SetDefault(ctx context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	target := m.store.find(id)
	if target == nil {
		return gateway.NewNotFoundError("item is not part of this collection")
	}

	type flagState struct {
		isDefault, pending bool
	}
	snapshot := map[string]flagState{}
	m.store.each(func(it *Item[P]) {
		snapshot[it.ID] = flagState{it.IsDefault, it.PendingDefault}
		it.IsDefault = it.ID == id
		it.PendingDefault = false
	})
	target.PendingDefault = true

	if IsStagedID(id) {
		// Confirmed at Save time, once the item exists server-side.
		return nil
	}

	if err := m.gw.SetDefault(ctx, id); err != nil {
		m.store.each(func(it *Item[P]) {
			prev := snapshot[it.ID]
			it.IsDefault = prev.isDefault
			it.PendingDefault = prev.pending
		})
		return err
	}

	target.PendingDefault = false
	return nil
}

// Remove deletes an item. Staged items vanish locally; persisted items go
// through deleting and stay in the list as delete_failed when the gateway
// refuses. Removing the default promotes whoever now sits at order 0.
func (m *Manager[P]) Remove(ctx context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	target := m.store.find(id)
	if target == nil {
		return gateway.NewNotFoundError("item is not part of this collection")
	}
	wasDefault := target.IsDefault

	if target.Origin == OriginStaged {
		m.store.RemoveLocally(id)
		m.store.CommitOrder()
		if wasDefault {
			return m.promoteHead(ctx)
		}
		return nil
	}

	target.State = StateDeleting

	if err := m.gw.Remove(ctx, id); err != nil {
		if !gateway.IsNotFoundError(err) {
			if stored := m.store.find(id); stored != nil {
				stored.State = StateDeleteFailed
				stored.SyncError = gateway.GetErrorMessage(err)
			}
			return err
		}
		// Already gone server-side; dropping it locally is the refresh.
	}

	m.store.RemoveLocally(id)
	m.store.CommitOrder()

	if wasDefault {
		return m.promoteHead(ctx)
	}
	return nil
}

// Discard throws away a staged item (typically one stuck in stage_failed)
// without touching the gateway.
func (m *Manager[P]) Discard(ctx context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	target := m.store.find(id)
	if target == nil || target.Origin != OriginStaged {
		return gateway.NewNotFoundError("no staged item with this id")
	}
	wasDefault := target.IsDefault

	m.store.RemoveLocally(id)
	m.store.CommitOrder()

	if wasDefault {
		return m.promoteHead(ctx)
	}
	return nil
}

// Move repositions an item and recomputes every order as its new index.
// A persisted item is moved server-side first; the local rewrite only
// happens once the gateway confirms, so a rejected move leaves the
// sequence untouched. Staged items move locally and get their durable
// position from the flush order at Save time.
func (m *Manager[P]) Move(ctx context.Context, id string, newIndex int) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	merged := m.store.Merged()
	oldIndex := -1
	for i, item := range merged {
		if item.ID == id {
			oldIndex = i
			break
		}
	}
	if oldIndex == -1 {
		return gateway.NewNotFoundError("item is not part of this collection")
	}

	if newIndex < 0 {
		newIndex = 0
	}
	if newIndex > len(merged)-1 {
		newIndex = len(merged) - 1
	}
	if newIndex == oldIndex {
		return nil
	}

	if !IsStagedID(id) {
		if err := m.gw.SetOrder(ctx, id, newIndex); err != nil {
			return err
		}
	}

	moved := merged[oldIndex]
	rest := append(append([]Item[P]{}, merged[:oldIndex]...), merged[oldIndex+1:]...)
	reordered := append(append(append([]Item[P]{}, rest[:newIndex]...), moved), rest[newIndex:]...)

	for i, item := range reordered {
		if stored := m.store.find(item.ID); stored != nil {
			stored.Order = i
		}
	}
	m.store.CommitOrder()
	return nil
}

// promoteHead assigns the default to the item at order 0 after the old
// default left a non-empty collection. Local first, pending until the
// gateway confirms; an empty collection simply has no default.
func (m *Manager[P]) promoteHead(ctx context.Context) error {
	merged := m.store.Merged()
	if len(merged) == 0 {
		return nil
	}
	head := merged[0]

	m.store.each(func(it *Item[P]) {
		it.IsDefault = it.ID == head.ID
		it.PendingDefault = false
	})
	stored := m.store.find(head.ID)
	stored.PendingDefault = true

	if IsStagedID(head.ID) {
		return nil
	}

	if err := m.gw.SetDefault(ctx, head.ID); err != nil {
		// Keep the local promotion with the pending badge; the caller
		// surfaces the error and may retry via SetDefault.
		return err
	}

	stored.PendingDefault = false
	return nil
}

// applyDefault rewrites the whole collection so that id is the single
// confirmed default.
func (m *Manager[P]) applyDefault(id string) {
	m.store.each(func(it *Item[P]) {
		it.IsDefault = it.ID == id
		it.PendingDefault = false
	})
}
