package world

import "math"

type Point struct {
	X     int `json:"x"`
	Y     int `json:"y"`
	Plane int `json:"plane"`
}

func (p Point) Add(dx, dy int) Point {
	return Point{X: p.X + dx, Y: p.Y + dy, Plane: p.Plane}
}

// Adjacent reports whether a and b share a plane and differ by one tile along one axis.
func Adjacent(a, b Point) bool {
	if a.Plane != b.Plane {
		return false
	}
	return abs(a.X-b.X)+abs(a.Y-b.Y) == 1
}

// Distance is the Chebyshev distance between two tiles, or math.MaxInt across planes.
func Distance(a, b Point) int {
	if a.Plane != b.Plane {
		return math.MaxInt
	}
	return max(abs(a.X-b.X), abs(a.Y-b.Y))
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
