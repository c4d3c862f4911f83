package collection

import (
	"strings"

	"github.com/google/uuid"
)

// Origin tells apart items fetched from the backend and items created
// locally that the backend has not acknowledged yet.
type Origin string

const (
	OriginPersisted Origin = "persisted"
	OriginStaged    Origin = "staged"
)

// SyncState is the per-item synchronization state machine:
//
//	staged -> persisting -> synced   (create confirmed)
//	staged -> persisting -> stage_failed   (item stays visible with the error)
//	synced -> deleting -> (removed)
//	synced -> deleting -> delete_failed    (item stays in the list)
type SyncState string

const (
	StateSynced       SyncState = "synced"
	StateStaged       SyncState = "staged"
	StatePersisting   SyncState = "persisting"
	StateStageFailed  SyncState = "stage_failed"
	StateDeleting     SyncState = "deleting"
	StateDeleteFailed SyncState = "delete_failed"
)

// stagedIDPrefix keeps client-generated tags recognizable; a server ID can
// never carry it.
const stagedIDPrefix = "tmp-"

// NewStagedID returns a fresh temporary identifier for a staged item.
func NewStagedID() string {
	return stagedIDPrefix + uuid.NewString()
}

// IsStagedID reports whether id is a client-generated temporary tag.
func IsStagedID(id string) bool {
	return strings.HasPrefix(id, stagedIDPrefix)
}

// Item is one member of an owner-scoped collection: an address of a
// customer, an image of a product.
type Item[P any] struct {
	// ID is a server-assigned identifier for persisted items or a
	// "tmp-" tag for staged ones.
	ID string `json:"id"`

	// Order is the zero-based position within the collection. At every
	// observable point the orders of a collection are exactly 0..N-1.
	Order int `json:"order"`

	// IsDefault marks the single distinguished member (default address,
	// principal image). A non-empty collection has exactly one.
	IsDefault bool `json:"is_default"`

	// PendingDefault is set while a locally decided default assignment
	// has not been confirmed by the backend; the UI grays the badge.
	PendingDefault bool `json:"pending_default,omitempty"`

	Origin Origin    `json:"origin"`
	State  SyncState `json:"state"`

	// SyncError holds the last gateway failure for this item, verbatim,
	// so a stage_failed item is never silently dropped.
	SyncError string `json:"sync_error,omitempty"`

	Payload P `json:"payload"`
}
