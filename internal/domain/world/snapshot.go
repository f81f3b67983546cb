package world

// NoAnimation is the animation id reported while the player is not animating.
const NoAnimation = -1

type Interaction struct {
	Handle     string     `json:"handle"`
	Name       string     `json:"name"`
	Capability Capability `json:"capability"`
}

// Observation is what the client bridge reports for one game tick.
type Observation struct {
	Tick        int64        `json:"tick"`
	Player      *Point       `json:"player,omitempty"`
	Region      RegionBase   `json:"region"`
	Animation   int          `json:"animation"`
	Interaction *Interaction `json:"interaction,omitempty"`
	Candidates  []Candidate  `json:"candidates"`
	Inventory   *Inventory   `json:"inventory,omitempty"`
}
