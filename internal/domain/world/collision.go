package world

import (
	"errors"
	"fmt"
)

type CollisionFlag uint32

const (
	BlockNorthWest       CollisionFlag = 0x1
	BlockNorth           CollisionFlag = 0x2
	BlockNorthEast       CollisionFlag = 0x4
	BlockEast            CollisionFlag = 0x8
	BlockSouthEast       CollisionFlag = 0x10
	BlockSouth           CollisionFlag = 0x20
	BlockSouthWest       CollisionFlag = 0x40
	BlockWest            CollisionFlag = 0x80
	BlockObject          CollisionFlag = 0x100
	BlockFloorDecoration CollisionFlag = 0x40000
	BlockFloor           CollisionFlag = 0x200000

	BlockFull = BlockObject | BlockFloorDecoration | BlockFloor
)

// RegionSize is the edge length, in tiles, of one streamed region block.
const RegionSize = 104

type RegionBase struct {
	X int `json:"base_x"`
	Y int `json:"base_y"`
}

// PlaneFlags is indexed [localX][localY].
type PlaneFlags [][]CollisionFlag

type CollisionMap struct {
	Base   RegionBase   `json:"base"`
	Planes []PlaneFlags `json:"planes"`
}

var ErrInvalidCollisionMap = errors.New("invalid collision map")

func NewCollisionMap(base RegionBase, planes int) CollisionMap {
	m := CollisionMap{Base: base, Planes: make([]PlaneFlags, planes)}
	for i := range m.Planes {
		m.Planes[i] = NewPlaneFlags()
	}
	return m
}

func NewPlaneFlags() PlaneFlags {
	cells := make([]CollisionFlag, RegionSize*RegionSize)
	out := make(PlaneFlags, RegionSize)
	for x := range out {
		out[x] = cells[x*RegionSize : (x+1)*RegionSize]
	}
	return out
}

func (m CollisionMap) Validate() error {
	if len(m.Planes) == 0 {
		return fmt.Errorf("%w: no planes", ErrInvalidCollisionMap)
	}
	for i, plane := range m.Planes {
		if len(plane) != RegionSize {
			return fmt.Errorf("%w: plane %d has %d columns", ErrInvalidCollisionMap, i, len(plane))
		}
		for x, col := range plane {
			if len(col) != RegionSize {
				return fmt.Errorf("%w: plane %d column %d has %d rows", ErrInvalidCollisionMap, i, x, len(col))
			}
		}
	}
	return nil
}

func (m CollisionMap) Local(p Point) (int, int) {
	return p.X - m.Base.X, p.Y - m.Base.Y
}

func (m CollisionMap) Contains(p Point) bool {
	if p.Plane < 0 || p.Plane >= len(m.Planes) {
		return false
	}
	lx, ly := m.Local(p)
	return inRegion(lx, ly)
}

func (m CollisionMap) Flags(p Point) (CollisionFlag, bool) {
	if !m.Contains(p) {
		return 0, false
	}
	lx, ly := m.Local(p)
	return m.Planes[p.Plane][lx][ly], true
}

// CanStep reports whether a single cardinal step from `from` by (dx, dy) is walkable.
// Directional walls are honoured on both sides of the shared edge.
func CanStep(m *CollisionMap, from Point, dx, dy int) bool {
	if m == nil || abs(dx)+abs(dy) != 1 {
		return false
	}
	src, ok := m.Flags(from)
	if !ok {
		return false
	}
	dst, ok := m.Flags(from.Add(dx, dy))
	if !ok {
		return false
	}
	if dst&(BlockFull|BlockObject) != 0 {
		return false
	}
	switch {
	case dx == -1:
		return src&BlockWest == 0 && dst&BlockEast == 0
	case dx == 1:
		return src&BlockEast == 0 && dst&BlockWest == 0
	case dy == -1:
		return src&BlockSouth == 0 && dst&BlockNorth == 0
	default:
		return src&BlockNorth == 0 && dst&BlockSouth == 0
	}
}

func inRegion(lx, ly int) bool {
	return lx >= 0 && ly >= 0 && lx < RegionSize && ly < RegionSize
}
