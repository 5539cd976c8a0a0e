// Package kv defines the persistence contract the document store runs on:
// an opaque key-value backend holding the whole register document as one
// JSON text under a single fixed key.
package kv

import "context"

// Backend is the outbound persistence port. Load reports absence through
// the boolean rather than an error; Save failures are non-fatal to the
// session (the in-memory document stays authoritative).
type Backend interface {
	Load(ctx context.Context, key string) (text string, ok bool, err error)
	Save(ctx context.Context, key, text string) error
}
