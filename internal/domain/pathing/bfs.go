package pathing

import "shiloassist/internal/domain/world"

const DefaultMaxRadius = 80

// Path runs from the tile after the start up to the tile beside the goal.
type Path []world.Point

func (p Path) Len() int { return len(p) }

func (p Path) Empty() bool { return len(p) == 0 }

func (p Path) Last() (world.Point, bool) {
	if len(p) == 0 {
		return world.Point{}, false
	}
	return p[len(p)-1], true
}

// Enumeration order decides ties between equally short paths.
var steps = [4][2]int{{-1, 0}, {1, 0}, {0, -1}, {0, 1}}

// FindPath searches breadth-first for the shortest walk that ends cardinally beside goal.
// The goal tile itself is never entered. An empty Path means no walk is needed or none exists.
func FindPath(start, goal world.Point, grid *world.CollisionMap, maxRadius int) Path {
	if grid == nil || start == goal {
		return nil
	}
	if maxRadius <= 0 {
		maxRadius = DefaultMaxRadius
	}

	cameFrom := map[world.Point]world.Point{}
	visited := map[world.Point]bool{start: true}
	queue := []world.Point{start}

	for len(queue) > 0 {
		cur := queue[0]
		queue = queue[1:]

		if world.Adjacent(cur, goal) {
			return reconstruct(cameFrom, start, cur)
		}
		if world.Distance(cur, start) > maxRadius {
			continue
		}
		for _, next := range Neighbours(grid, cur) {
			if visited[next] {
				continue
			}
			visited[next] = true
			cameFrom[next] = cur
			queue = append(queue, next)
		}
	}
	return nil
}

// Neighbours lists the tiles reachable from p in one step, west, east, south, north.
func Neighbours(grid *world.CollisionMap, p world.Point) []world.Point {
	out := make([]world.Point, 0, len(steps))
	for _, d := range steps {
		if world.CanStep(grid, p, d[0], d[1]) {
			out = append(out, p.Add(d[0], d[1]))
		}
	}
	return out
}

func reconstruct(cameFrom map[world.Point]world.Point, start, end world.Point) Path {
	var out Path
	for cur := end; cur != start; {
		out = append(out, cur)
		prev, ok := cameFrom[cur]
		if !ok {
			break
		}
		cur = prev
	}
	for i, j := 0, len(out)-1; i < j; i, j = i+1, j-1 {
		out[i], out[j] = out[j], out[i]
	}
	return out
}
