package activity

import "time"

type Event struct {
	Transition Transition     `json:"transition"`
	Mode       Mode           `json:"mode"`
	Tick       int64          `json:"tick"`
	OccurredAt time.Time      `json:"occurred_at"`
	Payload    map[string]any `json:"payload,omitempty"`
}

func NewEvent(t Transition, s State, tick int64, at time.Time) Event {
	return Event{
		Transition: t,
		Mode:       s.Mode(),
		Tick:       tick,
		OccurredAt: at,
		Payload: map[string]any{
			"idle":             s.Idle,
			"last_interaction": s.LastInteraction,
			"last_animation":   s.LastAnimation,
		},
	}
}
