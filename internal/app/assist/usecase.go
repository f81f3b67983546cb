package assist

import (
	"context"
	"errors"
	"strings"
	"time"

	"shiloassist/internal/app/ports"
	"shiloassist/internal/domain/activity"
	"shiloassist/internal/domain/targeting"
	"shiloassist/internal/domain/world"

	"github.com/cloudwego/hertz/pkg/common/hlog"
)

var ErrInvalidRequest = errors.New("invalid assist request")

type UseCase struct {
	Sessions *SessionStore
	Regions  ports.RegionRepository
	Events   ports.ActivityEventRepository
	Journal  ports.TickJournal
	Metrics  ports.AssistMetrics
	Config   Config
	Now      func() time.Time
}

func (u UseCase) Open(_ context.Context) (OpenResponse, error) {
	if u.Sessions == nil {
		return OpenResponse{}, ErrInvalidRequest
	}
	sess := u.Sessions.Open(u.now())
	return OpenResponse{SessionID: sess.ID, OpenedAt: sess.OpenedAt}, nil
}

func (u UseCase) Close(_ context.Context, sessionID string) error {
	if strings.TrimSpace(sessionID) == "" {
		return ErrInvalidRequest
	}
	return u.Sessions.Close(sessionID)
}

func (u UseCase) Tick(ctx context.Context, req TickRequest) (TickResponse, error) {
	sess, err := u.session(req.SessionID)
	if err != nil {
		return TickResponse{}, err
	}
	cfg := u.Config.normalized()
	now := u.now()
	obs := req.Observation

	sess.mu.Lock()
	defer sess.mu.Unlock()

	sess.last = &obs
	sess.lastTickAt = now

	if obs.Player == nil {
		return u.tickResponse(sess, obs.Tick, activity.TransitionNone), nil
	}

	if !cfg.Region.Contains(*obs.Player) {
		sess.reset()
		u.recordTick(false)
		u.journal(ctx, sess, req, now, activity.TransitionNone)
		return u.tickResponse(sess, obs.Tick, activity.TransitionNone), nil
	}
	sess.inRegion = true

	grid := u.loadGrid(ctx, obs.Region)
	if sel, ok := targeting.SelectBest(obs.Candidates, *obs.Player, world.CapabilityFishingSpot, grid, cfg.MaxRadius); ok {
		sess.target = &sel
		u.recordSearch(true)
	} else {
		sess.target = nil
		u.recordSearch(false)
	}

	next, transition := activity.Step(sess.state, activity.Signals{
		Animation:   obs.Animation,
		Interaction: obs.Interaction,
		InputAt:     req.InputAt,
	})
	sess.state = next
	if transition != activity.TransitionNone {
		u.recordTransition(ctx, sess, transition, obs.Tick, now)
	}

	u.recordTick(true)
	u.journal(ctx, sess, req, now, transition)
	return u.tickResponse(sess, obs.Tick, transition), nil
}

func (u UseCase) RecordInput(ctx context.Context, req InputRequest) (StatusResponse, error) {
	sess, err := u.session(req.SessionID)
	if err != nil {
		return StatusResponse{}, err
	}
	at := req.At
	if at.IsZero() {
		at = u.now()
	}

	sess.mu.Lock()
	defer sess.mu.Unlock()
	sess.state = activity.ApplyInput(sess.state, at)
	u.recordTransition(ctx, sess, activity.TransitionInput, 0, at)
	return statusOf(sess), nil
}

func (u UseCase) Status(_ context.Context, sessionID string) (StatusResponse, error) {
	sess, err := u.session(sessionID)
	if err != nil {
		return StatusResponse{}, err
	}
	sess.mu.Lock()
	defer sess.mu.Unlock()
	return statusOf(sess), nil
}

func (u UseCase) session(id string) (*Session, error) {
	if strings.TrimSpace(id) == "" || u.Sessions == nil {
		return nil, ErrInvalidRequest
	}
	return u.Sessions.Get(id)
}

// loadGrid returns nil when the region has not been uploaded or cannot be read.
func (u UseCase) loadGrid(ctx context.Context, base world.RegionBase) *world.CollisionMap {
	if u.Regions == nil {
		return nil
	}
	m, err := u.Regions.GetRegion(ctx, base)
	if err != nil {
		if !errors.Is(err, ports.ErrNotFound) {
			hlog.CtxWarnf(ctx, "load region base=(%d,%d): %v", base.X, base.Y, err)
		}
		return nil
	}
	return &m
}

func (u UseCase) recordTransition(ctx context.Context, sess *Session, t activity.Transition, tick int64, at time.Time) {
	if u.Metrics != nil {
		u.Metrics.RecordTransition(t)
	}
	if u.Events == nil {
		return
	}
	evt := activity.NewEvent(t, sess.state, tick, at)
	if err := u.Events.Append(ctx, sess.ID, []activity.Event{evt}); err != nil {
		hlog.CtxWarnf(ctx, "append activity event session=%s: %v", sess.ID, err)
	}
}

func (u UseCase) recordTick(inRegion bool) {
	if u.Metrics != nil {
		u.Metrics.RecordTick(inRegion)
	}
}

func (u UseCase) recordSearch(found bool) {
	if u.Metrics != nil {
		u.Metrics.RecordSearch(found)
	}
}

func (u UseCase) journal(ctx context.Context, sess *Session, req TickRequest, at time.Time, t activity.Transition) {
	if u.Journal == nil {
		return
	}
	rec := TickRecord{
		SessionID:   sess.ID,
		At:          at,
		InputAt:     req.InputAt,
		Observation: req.Observation,
		Idle:        sess.state.Idle,
		Transition:  t,
	}
	if sess.target != nil {
		rec.TargetID = sess.target.Candidate.ID
	}
	if err := u.Journal.Write(rec); err != nil {
		hlog.CtxWarnf(ctx, "journal tick session=%s: %v", sess.ID, err)
	}
}

func (u UseCase) tickResponse(sess *Session, tick int64, t activity.Transition) TickResponse {
	out := TickResponse{
		SessionID:  sess.ID,
		Tick:       tick,
		InRegion:   sess.inRegion,
		Idle:       sess.state.Idle,
		Mode:       sess.state.Mode(),
		Transition: t,
	}
	if sess.target != nil {
		target := sess.target.Candidate
		out.Target = &target
		out.TargetPath = sess.target.Path
		out.Adjacent = sess.target.Adjacent
	}
	return out
}

func statusOf(sess *Session) StatusResponse {
	out := StatusResponse{
		SessionID:  sess.ID,
		State:      sess.state,
		Mode:       sess.state.Mode(),
		InRegion:   sess.inRegion,
		LastTickAt: sess.lastTickAt,
	}
	if sess.target != nil {
		target := sess.target.Candidate
		out.Target = &target
	}
	return out
}

func (u UseCase) now() time.Time {
	if u.Now == nil {
		return time.Now()
	}
	return u.Now()
}
