package bridge

import (
	"strings"

	"shiloassist/internal/domain/world"
)

// ClassifyByName tags a game object by its display name. Matching is case-insensitive.
func ClassifyByName(name string) world.Capability {
	n := strings.ToLower(strings.TrimSpace(name))
	switch {
	case n == "":
		return world.CapabilityNone
	case strings.Contains(n, "fishing"):
		return world.CapabilityFishingSpot
	case strings.Contains(n, "deposit box"):
		return world.CapabilityDepositBox
	default:
		return world.CapabilityNone
	}
}

type PointPayload struct {
	X     int `json:"x"`
	Y     int `json:"y"`
	Plane int `json:"plane"`
}

func (p PointPayload) Point() world.Point {
	return world.Point{X: p.X, Y: p.Y, Plane: p.Plane}
}

type ObjectPayload struct {
	ID       string       `json:"id"`
	Name     string       `json:"name"`
	Position PointPayload `json:"position"`
}

type InteractionPayload struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

type InventoryPayload struct {
	Used     int `json:"used"`
	Capacity int `json:"capacity"`
}

// ObservationPayload is the tick body sent by the client bridge.
type ObservationPayload struct {
	Tick        int64               `json:"tick"`
	Player      *PointPayload       `json:"player"`
	BaseX       int                 `json:"base_x"`
	BaseY       int                 `json:"base_y"`
	Animation   *int                `json:"animation"`
	Interacting *InteractionPayload `json:"interacting"`
	Objects     []ObjectPayload     `json:"objects"`
	Inventory   *InventoryPayload   `json:"inventory"`
}

// ToObservation tags every named object and interaction target with its capability.
func (p ObservationPayload) ToObservation() world.Observation {
	obs := world.Observation{
		Tick:      p.Tick,
		Region:    world.RegionBase{X: p.BaseX, Y: p.BaseY},
		Animation: world.NoAnimation,
	}
	if p.Player != nil {
		pt := p.Player.Point()
		obs.Player = &pt
	}
	if p.Animation != nil {
		obs.Animation = *p.Animation
	}
	if p.Interacting != nil {
		obs.Interaction = &world.Interaction{
			Handle:     p.Interacting.ID,
			Name:       p.Interacting.Name,
			Capability: ClassifyByName(p.Interacting.Name),
		}
	}
	if p.Inventory != nil {
		obs.Inventory = &world.Inventory{Used: p.Inventory.Used, Capacity: p.Inventory.Capacity}
	}
	obs.Candidates = make([]world.Candidate, 0, len(p.Objects))
	for _, o := range p.Objects {
		obs.Candidates = append(obs.Candidates, world.Candidate{
			ID:         o.ID,
			Name:       o.Name,
			Capability: ClassifyByName(o.Name),
			Position:   o.Position.Point(),
		})
	}
	return obs
}
