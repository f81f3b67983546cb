package httpadapter

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"testing"
	"time"

	metricsinmem "shiloassist/internal/adapter/metrics/inmemory"
	"shiloassist/internal/adapter/repo/memory"
	"shiloassist/internal/app/assist"
	"shiloassist/internal/app/ports"
	"shiloassist/internal/app/regions"
	"shiloassist/internal/app/replay"
	"shiloassist/internal/domain/world"

	"github.com/cloudwego/hertz/pkg/app"
	"github.com/cloudwego/hertz/pkg/protocol/consts"
)

func newTestHandler(t *testing.T) Handler {
	t.Helper()
	store := memory.NewStore()
	regionRepo := memory.NewRegionRepo(store)
	eventRepo := memory.NewEventRepo(store)
	kpi := metricsinmem.NewRecorder()
	sessions := assist.NewSessionStore()
	sessions.NewID = func() string { return "sess-1" }

	base := world.RegionBase{X: 2800, Y: 2912}
	if err := regionRepo.SaveRegion(context.Background(), world.NewCollisionMap(base, 1)); err != nil {
		t.Fatalf("seed region: %v", err)
	}
	return Handler{
		AssistUC: assist.UseCase{
			Sessions: sessions,
			Regions:  regionRepo,
			Events:   eventRepo,
			Metrics:  kpi,
			Config:   assist.DefaultConfig(),
			Now:      func() time.Time { return time.Unix(1700000000, 0) },
		},
		RegionsUC: regions.UseCase{Repo: regionRepo, TxManager: memory.NewTxManager(store)},
		ReplayUC:  replay.UseCase{Events: eventRepo},
		KPI:       kpi,
	}
}

func decodeBody(t *testing.T, ctx *app.RequestContext) map[string]any {
	t.Helper()
	var out map[string]any
	if err := json.Unmarshal(ctx.Response.Body(), &out); err != nil {
		t.Fatalf("unmarshal response %q: %v", string(ctx.Response.Body()), err)
	}
	return out
}

func post(h func(context.Context, *app.RequestContext), body string) *app.RequestContext {
	ctx := &app.RequestContext{}
	ctx.Request.SetBody([]byte(body))
	h(context.Background(), ctx)
	return ctx
}

func TestHandler_OpenTickFrameFlow(t *testing.T) {
	h := newTestHandler(t)

	ctx := post(h.openSession, "")
	if got, want := ctx.Response.StatusCode(), consts.StatusCreated; got != want {
		t.Fatalf("open status mismatch: got=%d want=%d", got, want)
	}
	if got := decodeBody(t, ctx)["session_id"]; got != "sess-1" {
		t.Fatalf("unexpected session id %v", got)
	}

	tick := `{"session_id":"sess-1","observation":{"tick":1,"player":{"x":2850,"y":2960},"base_x":2800,"base_y":2912,
		"animation":-1,"objects":[{"id":"npc-1","name":"Fishing spot","position":{"x":2855,"y":2960}},
		{"id":"npc-2","name":"Banker","position":{"x":2851,"y":2960}}],"inventory":{"used":10}}}`
	ctx = post(h.tick, tick)
	if got, want := ctx.Response.StatusCode(), consts.StatusOK; got != want {
		t.Fatalf("tick status mismatch: got=%d want=%d body=%s", got, want, ctx.Response.Body())
	}
	body := decodeBody(t, ctx)
	target, _ := body["target"].(map[string]any)
	if target["id"] != "npc-1" || target["capability"] != "fishing_spot" {
		t.Fatalf("unexpected target %v", body["target"])
	}
	if body["in_region"] != true {
		t.Fatalf("expected in_region, got %v", body["in_region"])
	}

	ctx = post(h.frame, `{"session_id":"sess-1"}`)
	if got, want := ctx.Response.StatusCode(), consts.StatusOK; got != want {
		t.Fatalf("frame status mismatch: got=%d want=%d", got, want)
	}
	frame := decodeBody(t, ctx)
	path, _ := frame["path"].([]any)
	if len(path) != 4 {
		t.Fatalf("expected 4-step path, got %v", frame["path"])
	}
	inv, _ := frame["inventory"].(map[string]any)
	if inv["free"] != float64(18) || inv["level"] != "plenty" {
		t.Fatalf("unexpected inventory badge %v", frame["inventory"])
	}

	ctx = post(h.closeSession, `{"session_id":"sess-1"}`)
	if got, want := ctx.Response.StatusCode(), consts.StatusOK; got != want {
		t.Fatalf("close status mismatch: got=%d want=%d", got, want)
	}
	ctx = post(h.frame, `{"session_id":"sess-1"}`)
	if got, want := ctx.Response.StatusCode(), consts.StatusNotFound; got != want {
		t.Fatalf("frame after close: got=%d want=%d", got, want)
	}
}

func TestHandler_TickRejectsSchemaViolations(t *testing.T) {
	h := newTestHandler(t)
	post(h.openSession, "")

	cases := map[string]string{
		"missing observation": `{"session_id":"sess-1"}`,
		"bad player":          `{"session_id":"sess-1","observation":{"tick":1,"player":{"x":"a","y":2}}}`,
		"object without id":   `{"session_id":"sess-1","observation":{"tick":1,"objects":[{"position":{"x":1,"y":2}}]}}`,
		"not json":            `{`,
	}
	for name, body := range cases {
		ctx := post(h.tick, body)
		if got, want := ctx.Response.StatusCode(), consts.StatusBadRequest; got != want {
			t.Fatalf("%s: status mismatch: got=%d want=%d", name, got, want)
		}
	}
}

func TestHandler_InputAndHistory(t *testing.T) {
	h := newTestHandler(t)
	post(h.openSession, "")

	ctx := &app.RequestContext{}
	ctx.Request.Header.Set(sessionHeader, "sess-1")
	h.input(context.Background(), ctx)
	if got, want := ctx.Response.StatusCode(), consts.StatusOK; got != want {
		t.Fatalf("input status mismatch: got=%d want=%d body=%s", got, want, ctx.Response.Body())
	}

	ctx = &app.RequestContext{}
	ctx.Request.SetRequestURI("/api/assist/history?session_id=sess-1&limit=10")
	h.history(context.Background(), ctx)
	if got, want := ctx.Response.StatusCode(), consts.StatusOK; got != want {
		t.Fatalf("history status mismatch: got=%d want=%d", got, want)
	}
	events, _ := decodeBody(t, ctx)["events"].([]any)
	if len(events) != 1 {
		t.Fatalf("expected one input event, got %v", events)
	}
}

func TestHandler_RegionPutGet(t *testing.T) {
	h := newTestHandler(t)
	m := world.NewCollisionMap(world.RegionBase{X: 3200, Y: 3200}, 1)
	m.Planes[0][1][1] = world.BlockObject
	b, err := json.Marshal(m)
	if err != nil {
		t.Fatalf("marshal map: %v", err)
	}

	ctx := &app.RequestContext{}
	ctx.Request.SetBody(b)
	h.putRegion(context.Background(), ctx)
	if got, want := ctx.Response.StatusCode(), consts.StatusOK; got != want {
		t.Fatalf("put status mismatch: got=%d want=%d body=%s", got, want, ctx.Response.Body())
	}

	ctx = &app.RequestContext{}
	ctx.Request.SetRequestURI(fmt.Sprintf("/api/assist/regions?base_x=%d&base_y=%d", 3200, 3200))
	h.getRegion(context.Background(), ctx)
	if got, want := ctx.Response.StatusCode(), consts.StatusOK; got != want {
		t.Fatalf("get status mismatch: got=%d want=%d", got, want)
	}
	var got world.CollisionMap
	if err := json.Unmarshal(ctx.Response.Body(), &got); err != nil {
		t.Fatalf("unmarshal region: %v", err)
	}
	if got.Planes[0][1][1] != world.BlockObject {
		t.Fatalf("flag lost in round trip")
	}

	ctx = post(h.putRegion, `{"base":{"base_x":1,"base_y":1},"planes":[[[0]]]}`)
	if got, want := ctx.Response.StatusCode(), consts.StatusBadRequest; got != want {
		t.Fatalf("malformed region: got=%d want=%d", got, want)
	}

	ctx = &app.RequestContext{}
	ctx.Request.SetRequestURI("/api/assist/regions?base_x=1")
	h.getRegion(context.Background(), ctx)
	if got, want := ctx.Response.StatusCode(), consts.StatusBadRequest; got != want {
		t.Fatalf("missing base_y: got=%d want=%d", got, want)
	}
}

func TestHandler_KPI(t *testing.T) {
	h := newTestHandler(t)
	ctx := &app.RequestContext{}
	h.kpi(context.Background(), ctx)
	if got, want := ctx.Response.StatusCode(), consts.StatusOK; got != want {
		t.Fatalf("kpi status mismatch: got=%d want=%d", got, want)
	}
	if _, ok := decodeBody(t, ctx)["tick_total"]; !ok {
		t.Fatalf("expected tick_total in kpi snapshot")
	}

	h.KPI = nil
	ctx = &app.RequestContext{}
	h.kpi(context.Background(), ctx)
	if got, want := ctx.Response.StatusCode(), consts.StatusNotFound; got != want {
		t.Fatalf("kpi without provider: got=%d want=%d", got, want)
	}
}

func TestWriteError_Mapping(t *testing.T) {
	cases := []struct {
		err    error
		status int
		code   string
	}{
		{assist.ErrInvalidRequest, consts.StatusBadRequest, "bad_request"},
		{fmt.Errorf("wrap: %w", regions.ErrInvalidRequest), consts.StatusBadRequest, "bad_request"},
		{fmt.Errorf("session %q: %w", "x", ports.ErrNotFound), consts.StatusNotFound, "not_found"},
		{ports.ErrConflict, consts.StatusConflict, "conflict"},
		{errors.New("boom"), consts.StatusInternalServerError, "internal_error"},
	}
	for _, tc := range cases {
		ctx := &app.RequestContext{}
		writeError(ctx, tc.err)
		if got := ctx.Response.StatusCode(); got != tc.status {
			t.Fatalf("%v: status=%d want %d", tc.err, got, tc.status)
		}
		var body map[string]map[string]any
		if err := json.Unmarshal(ctx.Response.Body(), &body); err != nil {
			t.Fatalf("unmarshal response: %v", err)
		}
		if got := body["error"]["code"]; got != tc.code {
			t.Fatalf("%v: code=%v want %s", tc.err, got, tc.code)
		}
	}
}

func TestSessionID_FallsBackToHeader(t *testing.T) {
	ctx := &app.RequestContext{}
	ctx.Request.Header.Set(sessionHeader, " from-header ")
	if got := sessionID(ctx, ""); got != "from-header" {
		t.Fatalf("expected header session, got %q", got)
	}
	if got := sessionID(ctx, "from-body"); got != "from-body" {
		t.Fatalf("expected body session, got %q", got)
	}
}
