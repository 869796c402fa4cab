package cart

import "context"

// Repository persists cart snapshots keyed by an opaque cart key
// (one key per shopper session). Load returns shared.ErrNotFound when no
// snapshot exists for the key.
type Repository interface {
	Load(ctx context.Context, key string) (*Snapshot, error)
	Save(ctx context.Context, key string, snap *Snapshot) error
	Delete(ctx context.Context, key string) error
}
