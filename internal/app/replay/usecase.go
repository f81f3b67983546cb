package replay

import (
	"context"
	"errors"
	"strings"

	"shiloassist/internal/app/ports"
	"shiloassist/internal/domain/activity"
	"shiloassist/internal/domain/world"
)

var ErrInvalidRequest = errors.New("invalid replay request")

type UseCase struct {
	Events ports.ActivityEventRepository
}

func (u UseCase) Execute(ctx context.Context, req Request) (Response, error) {
	if strings.TrimSpace(req.SessionID) == "" || req.Limit < 0 {
		return Response{}, ErrInvalidRequest
	}
	events, err := u.Events.ListBySession(ctx, req.SessionID, req.Limit)
	if err != nil {
		return Response{}, err
	}
	events = filterByTimeWindow(events, req.OccurredFrom, req.OccurredTo)
	return Response{SessionID: req.SessionID, Events: events, Latest: reconstruct(events)}, nil
}

func filterByTimeWindow(events []activity.Event, from, to int64) []activity.Event {
	if from <= 0 && to <= 0 {
		return events
	}
	out := make([]activity.Event, 0, len(events))
	for _, evt := range events {
		ts := evt.OccurredAt.Unix()
		if from > 0 && ts < from {
			continue
		}
		if to > 0 && ts > to {
			continue
		}
		out = append(out, evt)
	}
	return out
}

func reconstruct(events []activity.Event) Summary {
	s := Summary{
		Mode:          activity.ModeNeutral,
		LastAnimation: world.NoAnimation,
		Counts:        map[activity.Transition]int{},
	}
	for _, evt := range events {
		s.Counts[evt.Transition]++
		if evt.Transition == activity.TransitionStarted {
			s.FishingRuns++
		}
		if evt.Mode != "" {
			s.Mode = evt.Mode
		}
		if idle, ok := evt.Payload["idle"].(bool); ok {
			s.Idle = idle
		}
		if handle, ok := evt.Payload["last_interaction"].(string); ok && handle != "" {
			s.LastInteraction = handle
		}
		if anim, ok := num(evt.Payload["last_animation"]); ok {
			s.LastAnimation = int(anim)
		}
	}
	return s
}

// num accepts the numeric shapes a payload takes in memory and after a JSON round trip.
func num(v any) (float64, bool) {
	switch n := v.(type) {
	case float64:
		return n, true
	case float32:
		return float64(n), true
	case int:
		return float64(n), true
	case int64:
		return float64(n), true
	default:
		return 0, false
	}
}
