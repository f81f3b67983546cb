package memory

import (
	"context"

	"shiloassist/internal/app/ports"
	"shiloassist/internal/domain/world"
)

type RegionRepo struct {
	store *Store
}

func NewRegionRepo(store *Store) RegionRepo {
	return RegionRepo{store: store}
}

func (r RegionRepo) GetRegion(_ context.Context, base world.RegionBase) (world.CollisionMap, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()
	m, ok := r.store.regions[base]
	if !ok {
		return world.CollisionMap{}, ports.ErrNotFound
	}
	return m, nil
}

// SaveRegion stores a private copy so later edits by the caller never leak into searches.
func (r RegionRepo) SaveRegion(_ context.Context, m world.CollisionMap) error {
	cp := world.CollisionMap{Base: m.Base, Planes: make([]world.PlaneFlags, len(m.Planes))}
	for i, plane := range m.Planes {
		cp.Planes[i] = world.NewPlaneFlags()
		for x := range plane {
			copy(cp.Planes[i][x], plane[x])
		}
	}
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	r.store.regions[m.Base] = cp
	return nil
}
