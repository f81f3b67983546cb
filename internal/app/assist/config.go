package assist

import (
	"shiloassist/internal/domain/pathing"
	"shiloassist/internal/domain/world"
)

type Color struct {
	R uint8 `json:"r" yaml:"r"`
	G uint8 `json:"g" yaml:"g"`
	B uint8 `json:"b" yaml:"b"`
	A uint8 `json:"a" yaml:"a"`
}

func (c Color) WithAlpha(a uint8) Color {
	c.A = a
	return c
}

// Outline is the fill colour with its alpha raised by 80, capped at opaque.
func (c Color) Outline() Color {
	return c.WithAlpha(uint8(min(255, int(c.A)+80)))
}

type Overlays struct {
	ShowPath           bool `json:"show_path" yaml:"show_path"`
	ShowInventoryCount bool `json:"show_inventory_count" yaml:"show_inventory_count"`
	ShowDepositPath    bool `json:"show_deposit_path" yaml:"show_deposit_path"`
	ShowIdleTint       bool `json:"show_idle_tint" yaml:"show_idle_tint"`
}

type Config struct {
	Region            world.Bounds `json:"region" yaml:"region"`
	DepositPoint      world.Point  `json:"deposit_point" yaml:"deposit_point"`
	DepositObjectID   int          `json:"deposit_object_id" yaml:"deposit_object_id"`
	MaxRadius         int          `json:"max_radius" yaml:"max_radius"`
	InventoryCapacity int          `json:"inventory_capacity" yaml:"inventory_capacity"`
	Overlays          Overlays     `json:"overlays" yaml:"overlays"`
	PathColor         Color        `json:"path_color" yaml:"path_color"`
	IdleColor         Color        `json:"idle_color" yaml:"idle_color"`
}

const (
	idleTintAlpha = 70
)

var depositPathColor = Color{R: 255, G: 215, B: 0, A: 140}

func DefaultConfig() Config {
	return Config{
		Region:            world.Bounds{MinX: 2810, MaxX: 2880, MinY: 2940, MaxY: 3000},
		DepositPoint:      world.Point{X: 2852, Y: 2952, Plane: 0},
		DepositObjectID:   10529,
		MaxRadius:         pathing.DefaultMaxRadius,
		InventoryCapacity: world.DefaultInventoryCapacity,
		Overlays: Overlays{
			ShowPath:           true,
			ShowInventoryCount: true,
			ShowDepositPath:    true,
			ShowIdleTint:       true,
		},
		PathColor: Color{R: 0, G: 255, B: 255, A: 200},
		IdleColor: Color{R: 255, G: 0, B: 0, A: 255},
	}
}

func (c Config) normalized() Config {
	def := DefaultConfig()
	if c.Region.Empty() || c.Region == (world.Bounds{}) {
		c.Region = def.Region
	}
	if c.MaxRadius <= 0 {
		c.MaxRadius = def.MaxRadius
	}
	if c.InventoryCapacity <= 0 {
		c.InventoryCapacity = def.InventoryCapacity
	}
	if c.DepositObjectID <= 0 {
		c.DepositObjectID = def.DepositObjectID
	}
	return c
}
