package service

import (
	"context"

	"goiashop-bff/internal/cep"
	"goiashop-bff/internal/collection"
	"goiashop-bff/internal/domains/address"
)

// AddressBook drives one customer's address collection. Every call
// hydrates a fresh working copy, runs the mutation through the invariant
// rules and reports the resulting item states back to the dialog.
//
// Edits are batched: a dialog save issues exactly one create or one
// update, never a per-field trickle.
type AddressBook struct {
	gw       collection.Gateway[address.Address]
	autofill *cep.Autofill
}

// NewAddressBook wires the address gateway and the postal autofill.
func NewAddressBook(gw collection.Gateway[address.Address], autofill *cep.Autofill) *AddressBook {
	return &AddressBook{
		gw:       gw,
		autofill: autofill,
	}
}

func (s *AddressBook) manager(ctx context.Context, customerID string) (*collection.Manager[address.Address], error) {
	mgr := collection.NewManager(s.gw, customerID)
	if err := mgr.Hydrate(ctx); err != nil {
		return nil, err
	}
	return mgr, nil
}

// List returns the ordered collection as the backend knows it.
func (s *AddressBook) List(ctx context.Context, customerID string) ([]collection.Item[address.Address], error) {
	mgr, err := s.manager(ctx, customerID)
	if err != nil {
		return nil, err
	}
	return mgr.Items(), nil
}

// Create validates the form, stages the address and flushes it. When the
// gateway rejects the create, the staged item comes back in stage_failed
// with the server's message attached, alongside the error.
func (s *AddressBook) Create(ctx context.Context, customerID string, form *address.Form) (collection.Item[address.Address], error) {
	form.Normalize()
	if err := form.Validate(); err != nil {
		return collection.Item[address.Address]{}, err
	}

	mgr, err := s.manager(ctx, customerID)
	if err != nil {
		return collection.Item[address.Address]{}, err
	}

	staged := mgr.Stage(form.Payload(), form.IsDefault)
	if err := mgr.Save(ctx); err != nil {
		failed, _ := mgr.Get(staged.ID)
		return failed, err
	}

	// The staged id is gone after a successful promote; the persisted
	// item now sits at the same position.
	for _, item := range mgr.Items() {
		if item.Order == staged.Order {
			return item, nil
		}
	}
	return collection.Item[address.Address]{}, nil
}

// Update validates the form and replaces the address payload.
func (s *AddressBook) Update(ctx context.Context, customerID, addressID string, form *address.Form) (collection.Item[address.Address], error) {
	form.Normalize()
	if err := form.Validate(); err != nil {
		return collection.Item[address.Address]{}, err
	}

	mgr, err := s.manager(ctx, customerID)
	if err != nil {
		return collection.Item[address.Address]{}, err
	}
	return mgr.UpdateItem(ctx, addressID, form.Payload())
}

// Delete removes the address; deleting the default promotes whoever is
// now first.
func (s *AddressBook) Delete(ctx context.Context, customerID, addressID string) ([]collection.Item[address.Address], error) {
	mgr, err := s.manager(ctx, customerID)
	if err != nil {
		return nil, err
	}
	if err := mgr.Remove(ctx, addressID); err != nil {
		return mgr.Items(), err
	}
	return mgr.Items(), nil
}

// SetDefault makes addressID the customer's single default address.
func (s *AddressBook) SetDefault(ctx context.Context, customerID, addressID string) ([]collection.Item[address.Address], error) {
	mgr, err := s.manager(ctx, customerID)
	if err != nil {
		return nil, err
	}
	if err := mgr.SetDefault(ctx, addressID); err != nil {
		return mgr.Items(), err
	}
	return mgr.Items(), nil
}

// Lookup resolves a postal code for the open dialog. clientID scopes the
// stale-response guard to the requesting browser. A nil result with a
// nil error means the input was incomplete or the response went stale;
// the form stays as it is.
func (s *AddressBook) Lookup(ctx context.Context, clientID, raw string) (*cep.Result, error) {
	return s.autofill.Resolve(ctx, clientID, raw)
}
