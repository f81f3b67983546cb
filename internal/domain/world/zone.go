package world

// Bounds is an inclusive rectangle of world tiles on every plane.
type Bounds struct {
	MinX int `json:"min_x" yaml:"min_x"`
	MaxX int `json:"max_x" yaml:"max_x"`
	MinY int `json:"min_y" yaml:"min_y"`
	MaxY int `json:"max_y" yaml:"max_y"`
}

func (b Bounds) Contains(p Point) bool {
	return p.X >= b.MinX && p.X <= b.MaxX && p.Y >= b.MinY && p.Y <= b.MaxY
}

func (b Bounds) Empty() bool {
	return b.MinX > b.MaxX || b.MinY > b.MaxY
}
