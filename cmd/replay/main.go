package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"time"

	"shiloassist/internal/adapter/journal"
	"shiloassist/internal/adapter/render/terminal"
	"shiloassist/internal/adapter/repo/memory"
	sqliterepo "shiloassist/internal/adapter/repo/sqlite"
	"shiloassist/internal/app/assist"
	"shiloassist/internal/app/ports"
	"shiloassist/internal/config"

	"github.com/cloudwego/hertz/pkg/common/hlog"
	"github.com/gdamore/tcell/v2"
)

func main() {
	var dir, session, sqlitePath string
	var delay time.Duration
	flag.StringVar(&dir, "journal", os.Getenv("SHILOASSIST_JOURNAL_DIR"), "tick journal directory")
	flag.StringVar(&session, "session", "", "only replay this session id")
	flag.StringVar(&sqlitePath, "sqlite", os.Getenv("SHILOASSIST_SQLITE_PATH"), "sqlite region store (optional)")
	flag.DurationVar(&delay, "delay", 600*time.Millisecond, "pause between ticks")
	flag.Parse()

	if dir == "" {
		log.Fatal("missing --journal or SHILOASSIST_JOURNAL_DIR")
	}
	records, err := loadRecords(dir, session)
	if err != nil {
		log.Fatalf("read journal: %v", err)
	}
	if len(records) == 0 {
		log.Fatalf("no ticks found in %s", dir)
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("load config: %v", err)
	}
	regionRepo, closeRepo, err := openRegions(sqlitePath)
	if err != nil {
		log.Fatalf("open regions: %v", err)
	}
	defer closeRepo()

	screen, err := tcell.NewScreen()
	if err != nil {
		log.Fatalf("create screen: %v", err)
	}
	if err := screen.Init(); err != nil {
		log.Fatalf("init screen: %v", err)
	}
	defer screen.Fini()

	p := player{
		uc: assist.UseCase{
			Sessions: assist.NewSessionStore(),
			Regions:  regionRepo,
			Config:   cfg.Assist,
		},
		regions:  regionRepo,
		renderer: terminal.Renderer{Screen: screen},
	}
	if err := p.run(context.Background(), records, delay, quitOnKey(screen)); err != nil {
		screen.Fini()
		hlog.Errorf("replay: %v", err)
		os.Exit(1)
	}
}

func loadRecords(dir, session string) ([]assist.TickRecord, error) {
	files, err := journal.Files(dir, "ticks")
	if err != nil {
		return nil, err
	}
	all, err := journal.Decode[assist.TickRecord](files...)
	if err != nil {
		return nil, err
	}
	if session == "" {
		return all, nil
	}
	out := all[:0]
	for _, rec := range all {
		if rec.SessionID == session {
			out = append(out, rec)
		}
	}
	return out, nil
}

func openRegions(path string) (ports.RegionRepository, func() error, error) {
	if path == "" {
		return memory.NewRegionRepo(memory.NewStore()), func() error { return nil }, nil
	}
	db, err := sqliterepo.OpenSQLite(path)
	if err != nil {
		return nil, nil, err
	}
	return sqliterepo.NewRegionRepo(db), db.Close, nil
}

func quitOnKey(screen tcell.Screen) <-chan struct{} {
	quit := make(chan struct{})
	go func() {
		for {
			switch ev := screen.PollEvent().(type) {
			case nil:
				return
			case *tcell.EventKey:
				if ev.Key() == tcell.KeyEscape || ev.Key() == tcell.KeyCtrlC || ev.Rune() == 'q' {
					close(quit)
					return
				}
			}
		}
	}()
	return quit
}

// player feeds journaled ticks through a fresh assist session, one session per recorded id.
type player struct {
	uc       assist.UseCase
	regions  ports.RegionRepository
	renderer terminal.Renderer
	sessions map[string]string
}

func (p *player) run(ctx context.Context, records []assist.TickRecord, delay time.Duration, quit <-chan struct{}) error {
	for _, rec := range records {
		view, err := p.step(ctx, rec)
		if err != nil {
			return err
		}
		p.renderer.Draw(view)
		select {
		case <-quit:
			return nil
		case <-time.After(delay):
		}
	}
	return nil
}

func (p *player) step(ctx context.Context, rec assist.TickRecord) (terminal.View, error) {
	if p.sessions == nil {
		p.sessions = map[string]string{}
	}
	id, ok := p.sessions[rec.SessionID]
	if !ok {
		opened, err := p.uc.Open(ctx)
		if err != nil {
			return terminal.View{}, err
		}
		id = opened.SessionID
		p.sessions[rec.SessionID] = id
	}

	resp, err := p.uc.Tick(ctx, assist.TickRequest{SessionID: id, Observation: rec.Observation, InputAt: rec.InputAt})
	if err != nil {
		return terminal.View{}, fmt.Errorf("tick %d: %w", rec.Observation.Tick, err)
	}
	if resp.Idle != rec.Idle {
		hlog.CtxWarnf(ctx, "tick %d diverged: recorded idle=%v replayed idle=%v", rec.Observation.Tick, rec.Idle, resp.Idle)
	}
	frame, err := p.uc.Frame(ctx, assist.FrameRequest{SessionID: id})
	if err != nil {
		return terminal.View{}, err
	}

	view := terminal.View{Frame: frame, Candidates: rec.Observation.Candidates, Tick: rec.Observation.Tick}
	if rec.Observation.Player != nil {
		view.Player = *rec.Observation.Player
	}
	if m, err := p.regions.GetRegion(ctx, rec.Observation.Region); err == nil {
		view.Grid = &m
	}
	return view, nil
}
