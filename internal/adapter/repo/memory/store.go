package memory

import (
	"sync"

	"shiloassist/internal/domain/activity"
	"shiloassist/internal/domain/world"
)

type Store struct {
	// txMu serialises transactions; mu guards the maps for individual reads and writes.
	txMu    sync.Mutex
	mu      sync.RWMutex
	regions map[world.RegionBase]world.CollisionMap
	events  map[string][]activity.Event
}

func NewStore() *Store {
	return &Store{
		regions: make(map[world.RegionBase]world.CollisionMap),
		events:  make(map[string][]activity.Event),
	}
}
