package replay

import "shiloassist/internal/domain/activity"

type Request struct {
	SessionID    string
	Limit        int
	OccurredFrom int64
	OccurredTo   int64
}

// Summary is the activity picture rebuilt from a session's stored transitions.
type Summary struct {
	Mode            activity.Mode               `json:"mode"`
	Idle            bool                        `json:"idle"`
	LastInteraction string                      `json:"last_interaction,omitempty"`
	LastAnimation   int                         `json:"last_animation"`
	FishingRuns     int                         `json:"fishing_runs"`
	Counts          map[activity.Transition]int `json:"counts"`
}

type Response struct {
	SessionID string           `json:"session_id"`
	Events    []activity.Event `json:"events"`
	Latest    Summary          `json:"latest"`
}
