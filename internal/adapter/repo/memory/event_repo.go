package memory

import (
	"context"

	"shiloassist/internal/domain/activity"
)

type EventRepo struct {
	store *Store
}

func NewEventRepo(store *Store) EventRepo {
	return EventRepo{store: store}
}

func (r EventRepo) Append(_ context.Context, sessionID string, events []activity.Event) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	r.store.events[sessionID] = append(r.store.events[sessionID], events...)
	return nil
}

// ListBySession returns the newest limit events in occurrence order; limit <= 0 returns all.
func (r EventRepo) ListBySession(_ context.Context, sessionID string, limit int) ([]activity.Event, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()
	events := r.store.events[sessionID]
	if limit > 0 && len(events) > limit {
		events = events[len(events)-limit:]
	}
	return append([]activity.Event(nil), events...), nil
}
