package cep

import (
	"context"
	"sync"
)

// Lookuper is what Autofill needs from the lookup client.
type Lookuper interface {
	Lookup(ctx context.Context, code string) (*Result, error)
}

// fieldState tracks one owner's in-flight lookups: the code the field
// holds right now and a counter distinguishing requests for that code.
type fieldState struct {
	seq     uint64
	current string
}

// Autofill guards the postal-code field against stale lookup responses.
// It is safe to call on every keystroke: anything that is not exactly
// 8 digits is a no-op, and a response that returns after the field has
// moved on to a different code is discarded instead of racing into the
// form. The guard is scoped per owner (the browser's client id), so one
// client finishing a lookup never invalidates another client's
// in-flight request.
type Autofill struct {
	client Lookuper

	mu     sync.Mutex
	fields map[string]*fieldState
}

// NewAutofill wraps a lookup client with the stale-response guard.
func NewAutofill(client Lookuper) *Autofill {
	return &Autofill{
		client: client,
		fields: map[string]*fieldState{},
	}
}

// Resolve normalizes raw input and, when it is a complete 8-digit code,
// performs the lookup on behalf of owner. Return values:
//
//	(nil, nil)   - incomplete input, or the response went stale mid-flight
//	(result, nil) - fresh hit; the caller may apply it to the form
//	(nil, err)    - LookupMiss or LookupError; nothing gets overwritten
func (a *Autofill) Resolve(ctx context.Context, owner, raw string) (*Result, error) {
	code := Normalize(raw)
	if len(code) != 8 {
		return nil, nil
	}

	a.mu.Lock()
	st := a.fields[owner]
	if st == nil {
		st = &fieldState{}
		a.fields[owner] = st
	}
	st.seq++
	seq := st.seq
	st.current = code
	a.mu.Unlock()

	result, err := a.client.Lookup(ctx, code)

	a.mu.Lock()
	defer a.mu.Unlock()

	// Only the lookup triggered by the owner's most recently completed
	// code may apply. seq catches a newer request for the same code;
	// current catches the field having moved on entirely. The pointer
	// comparison protects against the entry having been retired and a
	// fresh one created for a later request.
	if a.fields[owner] != st || st.current != code || seq != st.seq {
		return nil, nil
	}

	// The freshest request answered; the entry is done. Dropping it keeps
	// the map bounded by in-flight owners instead of every owner ever seen.
	delete(a.fields, owner)

	if err != nil {
		return nil, err
	}
	return result, nil
}
