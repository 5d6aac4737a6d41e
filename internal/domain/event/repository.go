package event

import "context"

// Repository mirrors the fixture store contract for single-sided events.
type Repository interface {
	GetByIdentity(ctx context.Context, identity string) (Event, bool, error)
	Upsert(ctx context.Context, e Event) error
	ListAll(ctx context.Context) ([]Event, error)
	DeleteAndRenumber(ctx context.Context, identities []string) (int, error)
}
