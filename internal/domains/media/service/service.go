package service

import (
	"context"

	"goiashop-bff/internal/collection"
	"goiashop-bff/internal/domains/media"
	"goiashop-bff/internal/gateway"
)

// Gallery drives one product's image collection for the backoffice.
// Uploads are staged as a batch and flushed one request at a time so the
// gallery order matches the selection order the operator arranged.
type Gallery struct {
	gw collection.Gateway[media.Image]
}

func NewGallery(gw collection.Gateway[media.Image]) *Gallery {
	return &Gallery{gw: gw}
}

func (s *Gallery) manager(ctx context.Context, productID string) (*collection.Manager[media.Image], error) {
	mgr := collection.NewManager(s.gw, productID)
	if err := mgr.Hydrate(ctx); err != nil {
		return nil, err
	}
	return mgr, nil
}

// List returns the product's gallery in display order.
func (s *Gallery) List(ctx context.Context, productID string) ([]collection.Item[media.Image], error) {
	mgr, err := s.manager(ctx, productID)
	if err != nil {
		return nil, err
	}
	return mgr.Items(), nil
}

// Upload validates the selection as a whole, stages every file and
// flushes sequentially. The first file of an empty gallery becomes the
// principal image. When a flush fails mid-batch the returned items show
// which files landed and which one is parked in stage_failed.
func (s *Gallery) Upload(ctx context.Context, productID string, uploads []media.Upload) ([]collection.Item[media.Image], error) {
	mgr, err := s.manager(ctx, productID)
	if err != nil {
		return nil, err
	}

	if err := media.ValidateUploads(len(mgr.Items()), uploads); err != nil {
		return nil, gateway.NewValidationError(err.Error())
	}

	for _, u := range uploads {
		mgr.Stage(u.Payload(), false)
	}

	if err := mgr.Save(ctx); err != nil {
		return mgr.Items(), err
	}
	return mgr.Items(), nil
}

// Remove deletes an image; removing the principal promotes the image now
// at the head of the gallery.
func (s *Gallery) Remove(ctx context.Context, productID, imageID string) ([]collection.Item[media.Image], error) {
	mgr, err := s.manager(ctx, productID)
	if err != nil {
		return nil, err
	}
	if err := mgr.Remove(ctx, imageID); err != nil {
		return mgr.Items(), err
	}
	return mgr.Items(), nil
}

// SetPrincipal marks imageID as the product's single principal image.
func (s *Gallery) SetPrincipal(ctx context.Context, productID, imageID string) ([]collection.Item[media.Image], error) {
	mgr, err := s.manager(ctx, productID)
	if err != nil {
		return nil, err
	}
	if err := mgr.SetDefault(ctx, imageID); err != nil {
		return mgr.Items(), err
	}
	return mgr.Items(), nil
}

// Move repositions an image inside the gallery. The backend confirms the
// new position before the returned view reflects it, so the order a fresh
// List reads matches what the operator sees.
func (s *Gallery) Move(ctx context.Context, productID, imageID string, newIndex int) ([]collection.Item[media.Image], error) {
	mgr, err := s.manager(ctx, productID)
	if err != nil {
		return nil, err
	}
	if err := mgr.Move(ctx, imageID, newIndex); err != nil {
		return mgr.Items(), err
	}
	return mgr.Items(), nil
}
