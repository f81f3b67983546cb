package targeting

import (
	"shiloassist/internal/domain/pathing"
	"shiloassist/internal/domain/world"
)

type Selection struct {
	Candidate world.Candidate `json:"candidate"`
	Path      pathing.Path    `json:"path"`
	Adjacent  bool            `json:"adjacent"`
}

// SelectBest picks the candidate with the wanted capability that the player can reach soonest.
// A candidate already beside the player wins outright without a search.
func SelectBest(candidates []world.Candidate, player world.Point, want world.Capability, grid *world.CollisionMap, maxRadius int) (Selection, bool) {
	for _, c := range candidates {
		if c.Capability != want {
			continue
		}
		if world.Adjacent(player, c.Position) {
			return Selection{Candidate: c, Adjacent: true}, true
		}
	}

	var best Selection
	found := false
	for _, c := range candidates {
		if c.Capability != want {
			continue
		}
		p := pathing.FindPath(player, c.Position, grid, maxRadius)
		if p.Empty() {
			continue
		}
		if !found || p.Len() < best.Path.Len() {
			best = Selection{Candidate: c, Path: p}
			found = true
		}
	}
	return best, found
}
