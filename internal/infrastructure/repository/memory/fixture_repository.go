package memory

import (
	"context"
	"sort"
	"sync"

	"github.com/sgwessen/kalender/internal/domain/fixture"
)

// FixtureRepository is the in-memory store used by tests and dry runs. It
// mirrors the SQL store's ordinal semantics: display ordinals are store
// owned, inserts take max+1 and deletes renumber the survivors 1..N in
// display order.
type FixtureRepository struct {
	mu    sync.RWMutex
	items map[string]fixture.Fixture
}

func NewFixtureRepository() *FixtureRepository {
	return &FixtureRepository{items: make(map[string]fixture.Fixture)}
}

func (r *FixtureRepository) GetByIdentity(_ context.Context, identity string) (fixture.Fixture, bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	item, ok := r.items[identity]
	return item, ok, nil
}

func (r *FixtureRepository) Upsert(_ context.Context, item fixture.Fixture) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if existing, ok := r.items[item.Identity]; ok {
		item.DisplayNo = existing.DisplayNo
	} else {
		item.DisplayNo = r.maxDisplayNoLocked() + 1
	}
	r.items[item.Identity] = item
	return nil
}

func (r *FixtureRepository) ListAll(_ context.Context) ([]fixture.Fixture, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return r.sortedLocked(), nil
}

func (r *FixtureRepository) DeleteAndRenumber(_ context.Context, identities []string) (int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	deleted := 0
	for _, identity := range identities {
		if _, ok := r.items[identity]; ok {
			delete(r.items, identity)
			deleted++
		}
	}
	if deleted == 0 {
		return 0, nil
	}

	for i, item := range r.sortedLocked() {
		item.DisplayNo = i + 1
		r.items[item.Identity] = item
	}
	return deleted, nil
}

func (r *FixtureRepository) maxDisplayNoLocked() int {
	highest := 0
	for _, item := range r.items {
		if item.DisplayNo > highest {
			highest = item.DisplayNo
		}
	}
	return highest
}

func (r *FixtureRepository) sortedLocked() []fixture.Fixture {
	out := make([]fixture.Fixture, 0, len(r.items))
	for _, item := range r.items {
		out = append(out, item)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].DisplayNo < out[j].DisplayNo })
	return out
}
