package assist

import (
	"time"

	"shiloassist/internal/domain/activity"
	"shiloassist/internal/domain/pathing"
	"shiloassist/internal/domain/world"
)

type OpenResponse struct {
	SessionID string    `json:"session_id"`
	OpenedAt  time.Time `json:"opened_at"`
}

type TickRequest struct {
	SessionID   string
	Observation world.Observation
	InputAt     time.Time
}

type TickResponse struct {
	SessionID  string              `json:"session_id"`
	Tick       int64               `json:"tick"`
	InRegion   bool                `json:"in_region"`
	Idle       bool                `json:"idle"`
	Mode       activity.Mode       `json:"mode"`
	Transition activity.Transition `json:"transition"`
	Target     *world.Candidate    `json:"target,omitempty"`
	TargetPath pathing.Path        `json:"target_path"`
	Adjacent   bool                `json:"adjacent"`
}

type InputRequest struct {
	SessionID string
	At        time.Time
}

type FrameRequest struct {
	SessionID string
}

type PathStyle struct {
	Fill    Color `json:"fill"`
	Outline Color `json:"outline"`
}

type Highlight struct {
	ObjectID int         `json:"object_id"`
	Point    world.Point `json:"point"`
	Color    Color       `json:"color"`
}

type InventoryBadge struct {
	Free  int                  `json:"free"`
	Level world.InventoryLevel `json:"level"`
}

// Frame is everything the presentation surface needs to paint once.
type Frame struct {
	SessionID      string           `json:"session_id"`
	InRegion       bool             `json:"in_region"`
	Idle           bool             `json:"idle"`
	IdleTint       *Color           `json:"idle_tint,omitempty"`
	Path           pathing.Path     `json:"path"`
	PathStyle      *PathStyle       `json:"path_style,omitempty"`
	FallbackActive bool             `json:"fallback_active"`
	Highlight      *Highlight       `json:"highlight,omitempty"`
	Inventory      *InventoryBadge  `json:"inventory,omitempty"`
	Target         *world.Candidate `json:"target,omitempty"`
}

type StatusResponse struct {
	SessionID  string           `json:"session_id"`
	State      activity.State   `json:"state"`
	Mode       activity.Mode    `json:"mode"`
	InRegion   bool             `json:"in_region"`
	Target     *world.Candidate `json:"target,omitempty"`
	LastTickAt time.Time        `json:"last_tick_at"`
}

// TickRecord is one journal line; replaying records through Tick reproduces a session.
type TickRecord struct {
	SessionID   string              `json:"session_id"`
	At          time.Time           `json:"at"`
	InputAt     time.Time           `json:"input_at,omitempty"`
	Observation world.Observation   `json:"observation"`
	Idle        bool                `json:"idle"`
	Transition  activity.Transition `json:"transition"`
	TargetID    string              `json:"target_id,omitempty"`
}
