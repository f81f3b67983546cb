package httpadapter

import (
	"context"
	"encoding/json"
	"errors"
	"strconv"
	"strings"
	"time"

	"shiloassist/internal/adapter/world/bridge"
	"shiloassist/internal/app/assist"
	"shiloassist/internal/app/ports"
	"shiloassist/internal/app/regions"
	"shiloassist/internal/app/replay"
	"shiloassist/internal/domain/world"

	"github.com/cloudwego/hertz/pkg/app"
	"github.com/cloudwego/hertz/pkg/app/server"
	"github.com/cloudwego/hertz/pkg/common/hlog"
	"github.com/cloudwego/hertz/pkg/protocol/consts"
)

type Handler struct {
	AssistUC  assist.UseCase
	RegionsUC regions.UseCase
	ReplayUC  replay.UseCase
	KPI       kpiSnapshotProvider
}

func (h Handler) RegisterRoutes(s *server.Hertz) {
	s.Use(corsMiddleware())

	a := s.Group("/api/assist")
	a.POST("/session/open", h.openSession)
	a.POST("/session/close", h.closeSession)
	a.POST("/tick", h.tick)
	a.POST("/input", h.input)
	a.POST("/frame", h.frame)
	a.POST("/status", h.status)
	a.GET("/history", h.history)
	a.PUT("/regions", h.putRegion)
	a.GET("/regions", h.getRegion)

	s.GET("/ops/kpi", h.kpi)
}

type sessionRequest struct {
	SessionID string `json:"session_id"`
}

type tickRequest struct {
	SessionID   string                    `json:"session_id"`
	InputAt     *time.Time                `json:"input_at,omitempty"`
	Observation bridge.ObservationPayload `json:"observation"`
}

type inputRequest struct {
	SessionID string     `json:"session_id"`
	At        *time.Time `json:"at,omitempty"`
}

func (h Handler) openSession(c context.Context, ctx *app.RequestContext) {
	resp, err := h.AssistUC.Open(c)
	if err != nil {
		writeError(ctx, err)
		return
	}
	hlog.CtxInfof(c, "assist session opened id=%s", resp.SessionID)
	ctx.JSON(consts.StatusCreated, resp)
}

func (h Handler) closeSession(c context.Context, ctx *app.RequestContext) {
	var body sessionRequest
	if err := decodeJSON(ctx, &body); err != nil {
		writeErrorBody(ctx, consts.StatusBadRequest, "invalid_json", "invalid json")
		return
	}
	if err := h.AssistUC.Close(c, sessionID(ctx, body.SessionID)); err != nil {
		writeError(ctx, err)
		return
	}
	ctx.JSON(consts.StatusOK, map[string]any{"closed": true})
}

func (h Handler) tick(c context.Context, ctx *app.RequestContext) {
	raw := ctx.Request.Body()
	if err := validateTickBody(raw); err != nil {
		writeErrorBody(ctx, consts.StatusBadRequest, "invalid_tick", err.Error())
		return
	}
	var body tickRequest
	if err := json.Unmarshal(raw, &body); err != nil {
		writeErrorBody(ctx, consts.StatusBadRequest, "invalid_json", "invalid json")
		return
	}
	req := assist.TickRequest{
		SessionID:   body.SessionID,
		Observation: body.Observation.ToObservation(),
	}
	if body.InputAt != nil {
		req.InputAt = *body.InputAt
	}
	resp, err := h.AssistUC.Tick(c, req)
	if err != nil {
		writeError(ctx, err)
		return
	}
	ctx.JSON(consts.StatusOK, resp)
}

func (h Handler) input(c context.Context, ctx *app.RequestContext) {
	var body inputRequest
	if err := decodeJSON(ctx, &body); err != nil {
		writeErrorBody(ctx, consts.StatusBadRequest, "invalid_json", "invalid json")
		return
	}
	req := assist.InputRequest{SessionID: sessionID(ctx, body.SessionID)}
	if body.At != nil {
		req.At = *body.At
	}
	resp, err := h.AssistUC.RecordInput(c, req)
	if err != nil {
		writeError(ctx, err)
		return
	}
	ctx.JSON(consts.StatusOK, resp)
}

func (h Handler) frame(c context.Context, ctx *app.RequestContext) {
	var body sessionRequest
	if err := decodeJSON(ctx, &body); err != nil {
		writeErrorBody(ctx, consts.StatusBadRequest, "invalid_json", "invalid json")
		return
	}
	resp, err := h.AssistUC.Frame(c, assist.FrameRequest{SessionID: sessionID(ctx, body.SessionID)})
	if err != nil {
		writeError(ctx, err)
		return
	}
	ctx.JSON(consts.StatusOK, resp)
}

func (h Handler) status(c context.Context, ctx *app.RequestContext) {
	var body sessionRequest
	if err := decodeJSON(ctx, &body); err != nil {
		writeErrorBody(ctx, consts.StatusBadRequest, "invalid_json", "invalid json")
		return
	}
	resp, err := h.AssistUC.Status(c, sessionID(ctx, body.SessionID))
	if err != nil {
		writeError(ctx, err)
		return
	}
	ctx.JSON(consts.StatusOK, resp)
}

func (h Handler) history(c context.Context, ctx *app.RequestContext) {
	limit, _ := strconv.Atoi(string(ctx.Query("limit")))
	occurredFrom, _ := strconv.ParseInt(string(ctx.Query("occurred_from")), 10, 64)
	occurredTo, _ := strconv.ParseInt(string(ctx.Query("occurred_to")), 10, 64)
	resp, err := h.ReplayUC.Execute(c, replay.Request{
		SessionID:    sessionID(ctx, string(ctx.Query("session_id"))),
		Limit:        limit,
		OccurredFrom: occurredFrom,
		OccurredTo:   occurredTo,
	})
	if err != nil {
		writeError(ctx, err)
		return
	}
	ctx.JSON(consts.StatusOK, resp)
}

func (h Handler) putRegion(c context.Context, ctx *app.RequestContext) {
	var body world.CollisionMap
	if err := decodeJSON(ctx, &body); err != nil {
		writeErrorBody(ctx, consts.StatusBadRequest, "invalid_json", "invalid json")
		return
	}
	resp, err := h.RegionsUC.Put(c, body)
	if err != nil {
		writeError(ctx, err)
		return
	}
	hlog.CtxInfof(c, "region stored base=(%d,%d) planes=%d", resp.Base.X, resp.Base.Y, resp.Planes)
	ctx.JSON(consts.StatusOK, resp)
}

func (h Handler) getRegion(c context.Context, ctx *app.RequestContext) {
	x, errX := strconv.Atoi(string(ctx.Query("base_x")))
	y, errY := strconv.Atoi(string(ctx.Query("base_y")))
	if errX != nil || errY != nil {
		writeErrorBody(ctx, consts.StatusBadRequest, "invalid_region_base", "base_x and base_y are required integers")
		return
	}
	resp, err := h.RegionsUC.Get(c, world.RegionBase{X: x, Y: y})
	if err != nil {
		writeError(ctx, err)
		return
	}
	ctx.JSON(consts.StatusOK, resp)
}

type kpiSnapshotProvider interface {
	SnapshotAny() any
}

func (h Handler) kpi(_ context.Context, ctx *app.RequestContext) {
	if h.KPI == nil {
		writeErrorBody(ctx, consts.StatusNotFound, "not_configured", "kpi provider not configured")
		return
	}
	ctx.JSON(consts.StatusOK, h.KPI.SnapshotAny())
}

const sessionHeader = "X-Session-ID"

// sessionID prefers the body value and falls back to the session header.
func sessionID(ctx *app.RequestContext, fromBody string) string {
	if id := strings.TrimSpace(fromBody); id != "" {
		return id
	}
	return strings.TrimSpace(string(ctx.GetHeader(sessionHeader)))
}

func decodeJSON(ctx *app.RequestContext, out any) error {
	body := ctx.Request.Body()
	if len(body) == 0 {
		return nil
	}
	return json.Unmarshal(body, out)
}

func writeError(ctx *app.RequestContext, err error) {
	switch {
	case errors.Is(err, assist.ErrInvalidRequest),
		errors.Is(err, regions.ErrInvalidRequest),
		errors.Is(err, replay.ErrInvalidRequest),
		errors.Is(err, world.ErrInvalidCollisionMap):
		writeErrorBody(ctx, consts.StatusBadRequest, "bad_request", err.Error())
	case errors.Is(err, ports.ErrNotFound):
		writeErrorBody(ctx, consts.StatusNotFound, "not_found", err.Error())
	case errors.Is(err, ports.ErrConflict):
		writeErrorBody(ctx, consts.StatusConflict, "conflict", err.Error())
	default:
		hlog.Errorf("unhandled assist error: %v", err)
		writeErrorBody(ctx, consts.StatusInternalServerError, "internal_error", "internal error")
	}
}

func writeErrorBody(ctx *app.RequestContext, status int, code, message string) {
	ctx.JSON(status, map[string]any{
		"error": map[string]string{
			"code":    code,
			"message": message,
		},
	})
}
