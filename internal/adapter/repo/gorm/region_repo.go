package gormrepo

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"shiloassist/internal/adapter/repo/gorm/model"
	"shiloassist/internal/app/ports"
	"shiloassist/internal/domain/world"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type RegionRepo struct {
	db *gorm.DB
}

func NewRegionRepo(db *gorm.DB) RegionRepo {
	return RegionRepo{db: db}
}

func (r RegionRepo) GetRegion(ctx context.Context, base world.RegionBase) (world.CollisionMap, error) {
	var row model.RegionCollision
	err := getDBFromCtx(ctx, r.db).WithContext(ctx).
		Where(map[string]any{"base_x": int32(base.X), "base_y": int32(base.Y)}).
		First(&row).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return world.CollisionMap{}, ports.ErrNotFound
		}
		return world.CollisionMap{}, err
	}
	planes, err := decodePlanes(row.Flags)
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
	b, err := json.Marshal(m.Planes)
	if err != nil {
		return err
	}
	row := model.RegionCollision{
		BaseX:     int32(m.Base.X),
		BaseY:     int32(m.Base.Y),
		Planes:    int32(len(m.Planes)),
		Flags:     b,
		UpdatedAt: time.Now(),
	}
	return getDBFromCtx(ctx, r.db).WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "base_x"}, {Name: "base_y"}},
		DoUpdates: clause.AssignmentColumns([]string{"planes", "flags", "updated_at"}),
	}).Create(&row).Error
}

func decodePlanes(data []byte) ([]world.PlaneFlags, error) {
	out := []world.PlaneFlags{}
	if len(data) == 0 {
		return out, nil
	}
	if err := json.Unmarshal(data, &out); err != nil {
		return nil, err
	}
	return out, nil
}
