package gateway

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
)

// =====================================================
// GENERIC COLLECTION RESOURCE
// =====================================================

// Remote is one collection member as the backend reports it. The entity
// fields of P sit flat next to id/order/is_default in the wire JSON.
type Remote[P any] struct {
	ID        string
	Order     int
	IsDefault bool
	Payload   P
}

// Resource is the REST contract for one owner-scoped collection
// (a customer's addresses, a product's images). ownerPath and itemPath
// are printf templates, e.g. "/customers/%s/addresses" and "/addresses/%s".
type Resource[P any] struct {
	client    *Client
	ownerPath string
	itemPath  string
}

// NewResource builds the gateway for one collection type.
func NewResource[P any](client *Client, ownerPath, itemPath string) *Resource[P] {
	return &Resource[P]{
		client:    client,
		ownerPath: ownerPath,
		itemPath:  itemPath,
	}
}

// remoteMeta is the collection bookkeeping the backend serializes next to
// the entity fields.
type remoteMeta struct {
	ID        string `json:"id"`
	Order     int    `json:"order"`
	IsDefault bool   `json:"is_default"`
}

func decodeRemote[P any](raw json.RawMessage) (Remote[P], error) {
	var meta remoteMeta
	if err := json.Unmarshal(raw, &meta); err != nil {
		return Remote[P]{}, NewNetworkError(fmt.Errorf("failed to unmarshal item: %w", err))
	}
	var payload P
	if err := json.Unmarshal(raw, &payload); err != nil {
		return Remote[P]{}, NewNetworkError(fmt.Errorf("failed to unmarshal payload: %w", err))
	}
	return Remote[P]{
		ID:        meta.ID,
		Order:     meta.Order,
		IsDefault: meta.IsDefault,
		Payload:   payload,
	}, nil
}

// List fetches every item the owner has. An owner without the collection
// surfaces as NotFoundError; an owner with zero items yields an empty,
// non-nil slice. Callers must not collapse the two.
func (r *Resource[P]) List(ctx context.Context, ownerID string) ([]Remote[P], error) {
	var rawItems []json.RawMessage
	err := r.client.doJSON(ctx, http.MethodGet, fmt.Sprintf(r.ownerPath, ownerID), nil, &rawItems)
	if err != nil {
		return nil, err
	}

	items := make([]Remote[P], 0, len(rawItems))
	for _, raw := range rawItems {
		item, err := decodeRemote[P](raw)
		if err != nil {
			return nil, err
		}
		items = append(items, item)
	}
	return items, nil
}

// createBody wraps the payload with the requested default flag; the server
// assigns id and order.
type createBody[P any] struct {
	Payload   P    `json:"payload"`
	IsDefault bool `json:"is_default"`
}

// Create stages a new item server-side. Not idempotent - never retried here.
func (r *Resource[P]) Create(ctx context.Context, ownerID string, payload P, isDefault bool) (Remote[P], error) {
	var raw json.RawMessage
	body := createBody[P]{Payload: payload, IsDefault: isDefault}
	err := r.client.doJSON(ctx, http.MethodPost, fmt.Sprintf(r.ownerPath, ownerID), body, &raw)
	if err != nil {
		return Remote[P]{}, err
	}
	return decodeRemote[P](raw)
}

// Update replaces the item's payload. NotFoundError when it vanished.
func (r *Resource[P]) Update(ctx context.Context, itemID string, payload P) (Remote[P], error) {
	var raw json.RawMessage
	err := r.client.doJSON(ctx, http.MethodPut, fmt.Sprintf(r.itemPath, itemID), payload, &raw)
	if err != nil {
		return Remote[P]{}, err
	}
	return decodeRemote[P](raw)
}

// Remove deletes the item. The backend does not guarantee idempotence: a
// second call on an already-removed item fails with NotFoundError.
func (r *Resource[P]) Remove(ctx context.Context, itemID string) error {
	return r.client.doJSON(ctx, http.MethodDelete, fmt.Sprintf(r.itemPath, itemID), nil, nil)
}

// SetDefault marks the item as the collection's default. The server is the
// arbiter and atomically clears the flag on every sibling.
func (r *Resource[P]) SetDefault(ctx context.Context, itemID string) error {
	return r.client.doJSON(ctx, http.MethodPut, fmt.Sprintf(r.itemPath, itemID)+"/set-default", nil, nil)
}

type orderBody struct {
	Order int `json:"order"`
}

// SetOrder moves the item to a new zero-based position. The server
// shifts the siblings and keeps the sequence contiguous.
func (r *Resource[P]) SetOrder(ctx context.Context, itemID string, order int) error {
	return r.client.doJSON(ctx, http.MethodPut, fmt.Sprintf(r.itemPath, itemID)+"/position", orderBody{Order: order}, nil)
}
