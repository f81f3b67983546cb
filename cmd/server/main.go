package main

import (
	"context"
	"log"
	"strings"
	"time"

	httpadapter "shiloassist/internal/adapter/http"
	"shiloassist/internal/adapter/journal"
	metricsinmem "shiloassist/internal/adapter/metrics/inmemory"
	gormrepo "shiloassist/internal/adapter/repo/gorm"
	"shiloassist/internal/adapter/repo/memory"
	sqliterepo "shiloassist/internal/adapter/repo/sqlite"
	"shiloassist/internal/app/assist"
	"shiloassist/internal/app/ports"
	"shiloassist/internal/app/regions"
	"shiloassist/internal/app/replay"
	"shiloassist/internal/config"

	"github.com/cloudwego/hertz/pkg/app/server"
	"github.com/cloudwego/hertz/pkg/common/hlog"
)

type repos struct {
	kind      string
	regions   ports.RegionRepository
	events    ports.ActivityEventRepository
	txManager ports.TxManager
	close     func() error
}

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("load config: %v", err)
	}
	hlog.SetLevel(parseLevel(cfg.LogLevel))

	r, err := buildRepos(context.Background(), cfg)
	if err != nil {
		log.Fatalf("build repos: %v", err)
	}
	defer r.close()

	var tickJournal ports.TickJournal
	if cfg.JournalDir != "" {
		j := journal.NewTickJournal(cfg.JournalDir)
		defer j.Close()
		tickJournal = j
	}
	kpiRecorder := metricsinmem.NewRecorder()

	h := httpadapter.Handler{
		AssistUC: assist.UseCase{
			Sessions: assist.NewSessionStore(),
			Regions:  r.regions,
			Events:   r.events,
			Journal:  tickJournal,
			Metrics:  kpiRecorder,
			Config:   cfg.Assist,
			Now:      time.Now,
		},
		RegionsUC: regions.UseCase{Repo: r.regions, TxManager: r.txManager},
		ReplayUC:  replay.UseCase{Events: r.events},
		KPI:       kpiRecorder,
	}

	s := server.Default(server.WithHostPorts(cfg.Addr))
	h.RegisterRoutes(s)

	hlog.Infof("shiloassist listening on %s (store=%s journal=%q)", cfg.Addr, r.kind, cfg.JournalDir)
	s.Spin()
}

// buildRepos picks postgres when a DSN is set, else sqlite when a path is set, else memory.
func buildRepos(ctx context.Context, cfg config.Server) (repos, error) {
	switch {
	case cfg.DSN != "":
		db, err := gormrepo.OpenPostgres(cfg.DSN)
		if err != nil {
			return repos{}, err
		}
		if cfg.MigrationsDir != "" {
			if err := gormrepo.ApplyMigrations(ctx, db, cfg.MigrationsDir); err != nil {
				return repos{}, err
			}
		}
		return repos{
			kind:      "postgres",
			regions:   gormrepo.NewRegionRepo(db),
			events:    gormrepo.NewActivityEventRepo(db),
			txManager: gormrepo.NewTxManager(db),
			close: func() error {
				sqlDB, err := db.DB()
				if err != nil {
					return err
				}
				return sqlDB.Close()
			},
		}, nil
	case cfg.SQLitePath != "":
		db, err := sqliterepo.OpenSQLite(cfg.SQLitePath)
		if err != nil {
			return repos{}, err
		}
		return repos{
			kind:      "sqlite",
			regions:   sqliterepo.NewRegionRepo(db),
			events:    sqliterepo.NewActivityEventRepo(db),
			txManager: sqliterepo.NewTxManager(db),
			close:     db.Close,
		}, nil
	default:
		store := memory.NewStore()
		return repos{
			kind:      "memory",
			regions:   memory.NewRegionRepo(store),
			events:    memory.NewEventRepo(store),
			txManager: memory.NewTxManager(store),
			close:     func() error { return nil },
		}, nil
	}
}

func parseLevel(s string) hlog.Level {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "trace":
		return hlog.LevelTrace
	case "debug":
		return hlog.LevelDebug
	case "warn", "warning":
		return hlog.LevelWarn
	case "error":
		return hlog.LevelError
	default:
		return hlog.LevelInfo
	}
}
