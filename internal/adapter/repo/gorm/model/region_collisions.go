package model

import "time"

const TableNameRegionCollision = "region_collisions"

// RegionCollision mapped from table <region_collisions>
type RegionCollision struct {
	BaseX     int32     `gorm:"column:base_x;primaryKey" json:"base_x"`
	BaseY     int32     `gorm:"column:base_y;primaryKey" json:"base_y"`
	Planes    int32     `gorm:"column:planes;not null" json:"planes"`
	Flags     []byte    `gorm:"column:flags;not null" json:"flags"`
	UpdatedAt time.Time `gorm:"column:updated_at;not null;default:now()" json:"updated_at"`
}

// TableName RegionCollision's table name
func (*RegionCollision) TableName() string {
	return TableNameRegionCollision
}
