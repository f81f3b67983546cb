package activity

import (
	"time"

	"shiloassist/internal/domain/world"
)

type Mode string

const (
	ModeNeutral Mode = "neutral"
	ModeFishing Mode = "fishing"
	ModeIdle    Mode = "idle"
)

type Transition string

const (
	TransitionNone           Transition = "none"
	TransitionInput          Transition = "input"
	TransitionStarted        Transition = "started"
	TransitionStoppedIdle    Transition = "stopped_idle"
	TransitionStoppedClicked Transition = "stopped_clicked"
)

// State is owned by a single session and replaced wholesale on every tick.
type State struct {
	Idle               bool      `json:"idle"`
	WasActive          bool      `json:"was_active"`
	ClickedSinceActive bool      `json:"clicked_since_active"`
	LastInputAt        time.Time `json:"last_input_at"`
	LastInteraction    string    `json:"last_interaction,omitempty"`
	LastAnimation      int       `json:"last_animation"`
}

type Signals struct {
	Animation   int
	Interaction *world.Interaction
	// InputAt is set when a manual input was observed since the previous tick.
	InputAt time.Time
}

func NewState() State {
	return State{LastAnimation: world.NoAnimation}
}

func (s State) Mode() Mode {
	switch {
	case s.Idle:
		return ModeIdle
	case s.WasActive:
		return ModeFishing
	default:
		return ModeNeutral
	}
}

// ApplyInput clears idle the moment the user acts and remembers that they did.
func ApplyInput(s State, at time.Time) State {
	s.Idle = false
	s.LastInputAt = at
	s.ClickedSinceActive = true
	return s
}

// Step advances the machine by one tick. Input is applied before the tick's animation signals.
func Step(prev State, sig Signals) (State, Transition) {
	next := prev
	transition := TransitionNone
	if !sig.InputAt.IsZero() {
		next = ApplyInput(next, sig.InputAt)
		transition = TransitionInput
	}

	if qualifying(sig) {
		if !next.WasActive {
			transition = TransitionStarted
		}
		next.Idle = false
		next.ClickedSinceActive = false
		next.WasActive = true
		next.LastInteraction = sig.Interaction.Handle
		next.LastAnimation = sig.Animation
		return next, transition
	}

	if next.WasActive && (sig.Animation == world.NoAnimation || sig.Interaction == nil) {
		if next.ClickedSinceActive {
			transition = TransitionStoppedClicked
		} else {
			next.Idle = true
			transition = TransitionStoppedIdle
		}
		next.WasActive = false
		next.ClickedSinceActive = false
		return next, transition
	}

	return next, transition
}

func Reset() State {
	return NewState()
}

func qualifying(sig Signals) bool {
	return sig.Interaction != nil &&
		sig.Interaction.Capability == world.CapabilityFishingSpot &&
		sig.Animation != world.NoAnimation
}
