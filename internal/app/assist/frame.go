package assist

import (
	"context"

	"shiloassist/internal/domain/pathing"
	"shiloassist/internal/domain/world"
)

// Frame assembles the overlay for the last observation of a session.
// It never mutates session state beyond reading it.
func (u UseCase) Frame(ctx context.Context, req FrameRequest) (Frame, error) {
	sess, err := u.session(req.SessionID)
	if err != nil {
		return Frame{}, err
	}
	cfg := u.Config.normalized()

	sess.mu.Lock()
	defer sess.mu.Unlock()

	out := Frame{
		SessionID: sess.ID,
		InRegion:  sess.inRegion,
		Idle:      sess.state.Idle,
	}
	if sess.target != nil {
		target := sess.target.Candidate
		out.Target = &target
	}
	if !sess.inRegion || sess.last == nil || sess.last.Player == nil {
		return out, nil
	}
	obs := sess.last

	if cfg.Overlays.ShowIdleTint && sess.state.Idle {
		tint := cfg.IdleColor.WithAlpha(idleTintAlpha)
		out.IdleTint = &tint
	}

	inv := u.inventory(cfg, obs)
	if cfg.Overlays.ShowInventoryCount && inv != nil {
		out.Inventory = &InventoryBadge{Free: inv.Free(), Level: inv.Level()}
	}

	if !cfg.Overlays.ShowPath {
		return out, nil
	}

	player := *obs.Player
	color := cfg.PathColor
	var goal world.Point
	switch {
	case cfg.Overlays.ShowDepositPath && inv != nil && inv.Full():
		goal = cfg.DepositPoint
		color = depositPathColor
		out.FallbackActive = true
		out.Highlight = &Highlight{ObjectID: cfg.DepositObjectID, Point: cfg.DepositPoint, Color: depositPathColor}
	case sess.target != nil:
		goal = sess.target.Candidate.Position
	default:
		return out, nil
	}
	if goal == player {
		return out, nil
	}

	path := pathing.FindPath(player, goal, u.loadGrid(ctx, obs.Region), cfg.MaxRadius)
	if path.Empty() {
		return out, nil
	}
	out.Path = path
	out.PathStyle = &PathStyle{Fill: color, Outline: color.Outline()}
	return out, nil
}

func (u UseCase) inventory(cfg Config, obs *world.Observation) *world.Inventory {
	if obs.Inventory == nil {
		return nil
	}
	inv := *obs.Inventory
	if inv.Capacity <= 0 {
		inv.Capacity = cfg.InventoryCapacity
	}
	return &inv
}
