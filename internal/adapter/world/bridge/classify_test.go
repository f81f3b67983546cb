package bridge

import (
	"testing"

	"shiloassist/internal/domain/world"
)

func TestClassifyByName(t *testing.T) {
	cases := []struct {
		name string
		want world.Capability
	}{
		{"Fishing spot", world.CapabilityFishingSpot},
		{"ROD FISHING SPOT", world.CapabilityFishingSpot},
		{"  fishing  ", world.CapabilityFishingSpot},
		{"Bank deposit box", world.CapabilityDepositBox},
		{"Banker", world.CapabilityNone},
		{"Fish", world.CapabilityNone},
		{"", world.CapabilityNone},
	}
	for _, tc := range cases {
		if got := ClassifyByName(tc.name); got != tc.want {
			t.Fatalf("ClassifyByName(%q)=%s want %s", tc.name, got, tc.want)
		}
	}
}

func TestObservationPayload_ToObservation(t *testing.T) {
	anim := 621
	p := ObservationPayload{
		Tick:        42,
		Player:      &PointPayload{X: 2850, Y: 2960},
		BaseX:       2800,
		BaseY:       2912,
		Animation:   &anim,
		Interacting: &InteractionPayload{ID: "npc-7", Name: "Fishing spot"},
		Objects: []ObjectPayload{
			{ID: "npc-7", Name: "Fishing spot", Position: PointPayload{X: 2851, Y: 2960}},
			{ID: "10529", Name: "Bank deposit box", Position: PointPayload{X: 2852, Y: 2952}},
			{ID: "npc-9", Name: "Banker", Position: PointPayload{X: 2849, Y: 2955}},
		},
		Inventory: &InventoryPayload{Used: 12},
	}

	obs := p.ToObservation()
	if obs.Player == nil || *obs.Player != (world.Point{X: 2850, Y: 2960}) {
		t.Fatalf("unexpected player %+v", obs.Player)
	}
	if obs.Region != (world.RegionBase{X: 2800, Y: 2912}) || obs.Animation != 621 {
		t.Fatalf("unexpected region/animation %+v %d", obs.Region, obs.Animation)
	}
	if obs.Interaction == nil || obs.Interaction.Capability != world.CapabilityFishingSpot || obs.Interaction.Handle != "npc-7" {
		t.Fatalf("unexpected interaction %+v", obs.Interaction)
	}
	want := []world.Capability{world.CapabilityFishingSpot, world.CapabilityDepositBox, world.CapabilityNone}
	for i, c := range obs.Candidates {
		if c.Capability != want[i] {
			t.Fatalf("candidate %d capability=%s want %s", i, c.Capability, want[i])
		}
	}
	if obs.Inventory == nil || obs.Inventory.Used != 12 {
		t.Fatalf("unexpected inventory %+v", obs.Inventory)
	}
}

func TestObservationPayload_DefaultsAnimationToSentinel(t *testing.T) {
	obs := ObservationPayload{}.ToObservation()
	if obs.Animation != world.NoAnimation || obs.Player != nil || obs.Interaction != nil {
		t.Fatalf("unexpected defaults %+v", obs)
	}
	if obs.Candidates == nil {
		t.Fatalf("expected non-nil candidates")
	}
}
