package memory

import (
	"context"
	"sort"
	"sync"

	"github.com/sgwessen/kalender/internal/domain/event"
)

// EventRepository is the in-memory counterpart of the SQL event store,
// with the same store-owned display ordinal behavior as FixtureRepository.
type EventRepository struct {
	mu    sync.RWMutex
	items map[string]event.Event
}

func NewEventRepository() *EventRepository {
	return &EventRepository{items: make(map[string]event.Event)}
}

func (r *EventRepository) GetByIdentity(_ context.Context, identity string) (event.Event, bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	item, ok := r.items[identity]
	return item, ok, nil
}

func (r *EventRepository) Upsert(_ context.Context, item event.Event) error {
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

func (r *EventRepository) ListAll(_ context.Context) ([]event.Event, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return r.sortedLocked(), nil
}

func (r *EventRepository) DeleteAndRenumber(_ context.Context, identities []string) (int, error) {
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

func (r *EventRepository) maxDisplayNoLocked() int {
	highest := 0
	for _, item := range r.items {
		if item.DisplayNo > highest {
			highest = item.DisplayNo
		}
	}
	return highest
}

func (r *EventRepository) sortedLocked() []event.Event {
	out := make([]event.Event, 0, len(r.items))
	for _, item := range r.items {
		out = append(out, item)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].DisplayNo < out[j].DisplayNo })
	return out
}
