package sqliterepo

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"shiloassist/internal/app/ports"
	"shiloassist/internal/domain/world"

	"github.com/klauspost/compress/zstd"
)

// RegionRepo keeps collision maps as zstd-compressed JSON blobs.
type RegionRepo struct {
	db *sql.DB
}

func NewRegionRepo(db *sql.DB) RegionRepo {
	return RegionRepo{db: db}
}

func (r RegionRepo) GetRegion(ctx context.Context, base world.RegionBase) (world.CollisionMap, error) {
	var blob []byte
	err := conn(ctx, r.db).QueryRowContext(ctx,
		`SELECT flags FROM region_collisions WHERE base_x=? AND base_y=?`, base.X, base.Y).Scan(&blob)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return world.CollisionMap{}, ports.ErrNotFound
		}
		return world.CollisionMap{}, err
	}
	planes, err := decodePlanes(blob)
	if err != nil {
		return world.CollisionMap{}, fmt.Errorf("decode region (%d,%d): %w", base.X, base.Y, err)
	}
	m := world.CollisionMap{Base: base, Planes: planes}
	if err := m.Validate(); err != nil {
		return world.CollisionMap{}, err
	}
	return m, nil
}

func (r RegionRepo) SaveRegion(ctx context.Context, m world.CollisionMap) error {
	blob, err := encodePlanes(m.Planes)
	if err != nil {
		return err
	}
	_, err = conn(ctx, r.db).ExecContext(ctx,
		`INSERT INTO region_collisions(base_x,base_y,planes,flags,updated_at) VALUES(?,?,?,?,?)
		ON CONFLICT(base_x,base_y) DO UPDATE SET planes=excluded.planes, flags=excluded.flags, updated_at=excluded.updated_at`,
		m.Base.X, m.Base.Y, len(m.Planes), blob, time.Now().UTC().Format(time.RFC3339))
	return err
}

func encodePlanes(planes []world.PlaneFlags) ([]byte, error) {
	raw, err := json.Marshal(planes)
	if err != nil {
		return nil, err
	}
	enc, err := zstd.NewWriter(nil)
	if err != nil {
		return nil, err
	}
	defer enc.Close()
	return enc.EncodeAll(raw, nil), nil
}

func decodePlanes(blob []byte) ([]world.PlaneFlags, error) {
	dec, err := zstd.NewReader(nil)
	if err != nil {
		return nil, err
	}
	defer dec.Close()
	raw, err := dec.DecodeAll(blob, nil)
	if err != nil {
		return nil, err
	}
	var out []world.PlaneFlags
	if err := json.Unmarshal(raw, &out); err != nil {
		return nil, err
	}
	return out, nil
}
