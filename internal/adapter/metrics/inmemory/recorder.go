package inmemory

import (
	"sync"

	"shiloassist/internal/domain/activity"
)

type Snapshot struct {
	TickTotal       uint64            `json:"tick_total"`
	TickOutOfRegion uint64            `json:"tick_out_of_region"`
	SearchTotal     uint64            `json:"search_total"`
	SearchFound     uint64            `json:"search_found"`
	SearchMissed    uint64            `json:"search_missed"`
	ByTransition    map[string]uint64 `json:"by_transition"`
}

type Recorder struct {
	mu           sync.Mutex
	ticks        uint64
	outOfRegion  uint64
	found        uint64
	missed       uint64
	byTransition map[string]uint64
}

func NewRecorder() *Recorder {
	return &Recorder{
		byTransition: map[string]uint64{},
	}
}

func (r *Recorder) RecordTick(inRegion bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.ticks++
	if !inRegion {
		r.outOfRegion++
	}
}

func (r *Recorder) RecordSearch(found bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if found {
		r.found++
		return
	}
	r.missed++
}

func (r *Recorder) RecordTransition(t activity.Transition) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.byTransition[string(t)]++
}

func (r *Recorder) Snapshot() Snapshot {
	r.mu.Lock()
	defer r.mu.Unlock()

	out := Snapshot{
		TickTotal:       r.ticks,
		TickOutOfRegion: r.outOfRegion,
		SearchFound:     r.found,
		SearchMissed:    r.missed,
		SearchTotal:     r.found + r.missed,
		ByTransition:    make(map[string]uint64, len(r.byTransition)),
	}
	for k, v := range r.byTransition {
		out.ByTransition[k] = v
	}
	return out
}

func (r *Recorder) SnapshotAny() any {
	return r.Snapshot()
}
