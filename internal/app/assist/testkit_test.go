package assist

import (
	"context"
	"fmt"
	"sync"
	"time"

	"shiloassist/internal/app/ports"
	"shiloassist/internal/domain/activity"
	"shiloassist/internal/domain/world"
)

type stubRegionRepo struct {
	byBase map[world.RegionBase]world.CollisionMap
	err    error
	gets   int
}

func (r *stubRegionRepo) GetRegion(_ context.Context, base world.RegionBase) (world.CollisionMap, error) {
	r.gets++
	if r.err != nil {
		return world.CollisionMap{}, r.err
	}
	m, ok := r.byBase[base]
	if !ok {
		return world.CollisionMap{}, ports.ErrNotFound
	}
	return m, nil
}

func (r *stubRegionRepo) SaveRegion(_ context.Context, m world.CollisionMap) error {
	if r.byBase == nil {
		r.byBase = map[world.RegionBase]world.CollisionMap{}
	}
	r.byBase[m.Base] = m
	return nil
}

type stubEventRepo struct {
	mu     sync.Mutex
	events map[string][]activity.Event
}

func (r *stubEventRepo) Append(_ context.Context, sessionID string, events []activity.Event) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.events == nil {
		r.events = map[string][]activity.Event{}
	}
	r.events[sessionID] = append(r.events[sessionID], events...)
	return nil
}

func (r *stubEventRepo) ListBySession(_ context.Context, sessionID string, limit int) ([]activity.Event, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := r.events[sessionID]
	if limit > 0 && len(out) > limit {
		out = out[len(out)-limit:]
	}
	return append([]activity.Event(nil), out...), nil
}

func (r *stubEventRepo) transitions(sessionID string) []activity.Transition {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]activity.Transition, 0, len(r.events[sessionID]))
	for _, e := range r.events[sessionID] {
		out = append(out, e.Transition)
	}
	return out
}

type stubJournal struct {
	records []any
	err     error
}

func (j *stubJournal) Write(v any) error {
	if j.err != nil {
		return j.err
	}
	j.records = append(j.records, v)
	return nil
}

type stubMetrics struct {
	ticks       int
	outOfRegion int
	searches    int
	found       int
	transitions []activity.Transition
}

func (m *stubMetrics) RecordTick(inRegion bool) {
	m.ticks++
	if !inRegion {
		m.outOfRegion++
	}
}

func (m *stubMetrics) RecordSearch(found bool) {
	m.searches++
	if found {
		m.found++
	}
}

func (m *stubMetrics) RecordTransition(t activity.Transition) {
	m.transitions = append(m.transitions, t)
}

var testBase = world.RegionBase{X: 2800, Y: 2912}

func openGrid() world.CollisionMap {
	return world.NewCollisionMap(testBase, 1)
}

type fixture struct {
	uc      UseCase
	regions *stubRegionRepo
	events  *stubEventRepo
	journal *stubJournal
	metrics *stubMetrics
	clock   time.Time
}

func newFixture() *fixture {
	f := &fixture{
		regions: &stubRegionRepo{byBase: map[world.RegionBase]world.CollisionMap{testBase: openGrid()}},
		events:  &stubEventRepo{},
		journal: &stubJournal{},
		metrics: &stubMetrics{},
		clock:   time.Unix(1700000000, 0),
	}
	store := NewSessionStore()
	n := 0
	store.NewID = func() string {
		n++
		return fmt.Sprintf("sess-%d", n)
	}
	f.uc = UseCase{
		Sessions: store,
		Regions:  f.regions,
		Events:   f.events,
		Journal:  f.journal,
		Metrics:  f.metrics,
		Config:   DefaultConfig(),
		Now:      func() time.Time { return f.clock },
	}
	return f
}

func (f *fixture) open() string {
	resp, err := f.uc.Open(context.Background())
	if err != nil {
		panic(err)
	}
	return resp.SessionID
}

func pt(x, y int) *world.Point {
	return &world.Point{X: x, Y: y}
}

func spot(id string, x, y int) world.Candidate {
	return world.Candidate{ID: id, Name: "Fishing spot", Capability: world.CapabilityFishingSpot, Position: world.Point{X: x, Y: y}}
}

func fishing(handle string) *world.Interaction {
	return &world.Interaction{Handle: handle, Name: "Fishing spot", Capability: world.CapabilityFishingSpot}
}
