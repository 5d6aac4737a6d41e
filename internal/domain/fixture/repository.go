package fixture

import "context"

// Repository is the minimal store contract the reconciliation core needs.
// Upsert assigns the next display ordinal on first insert; DeleteAndRenumber
// removes the given identities and reassigns ordinals 1..N so the next
// insert continues from the new maximum.
type Repository interface {
	GetByIdentity(ctx context.Context, identity string) (Fixture, bool, error)
	Upsert(ctx context.Context, f Fixture) error
	ListAll(ctx context.Context) ([]Fixture, error)
	DeleteAndRenumber(ctx context.Context, identities []string) (int, error)
}
