package gormrepo

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"shiloassist/internal/app/ports"
	"shiloassist/internal/domain/activity"
	"shiloassist/internal/domain/world"

	"gorm.io/gorm"
)

func requireDSN(t *testing.T) string {
	t.Helper()
	dsn := os.Getenv("SHILOASSIST_DB_DSN")
	if dsn == "" {
		t.Skip("SHILOASSIST_DB_DSN is required for integration test")
	}
	return dsn
}

func openMigrated(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := OpenPostgres(requireDSN(t))
	if err != nil {
		t.Fatalf("open postgres: %v", err)
	}
	if err := ApplyMigrations(context.Background(), db, filepath.Join("..", "..", "..", "..", "db", "migrations")); err != nil {
		t.Fatalf("apply migrations: %v", err)
	}
	return db
}

func TestRegionRepo_RoundTripAndUpsert(t *testing.T) {
	db := openMigrated(t)
	ctx := context.Background()
	base := world.RegionBase{X: -104, Y: -208}
	_ = db.Exec("DELETE FROM region_collisions WHERE base_x = ? AND base_y = ?", base.X, base.Y).Error

	repo := NewRegionRepo(db)
	if _, err := repo.GetRegion(ctx, base); !errors.Is(err, ports.ErrNotFound) {
		t.Fatalf("expected ErrNotFound before save, got %v", err)
	}

	m := world.NewCollisionMap(base, 2)
	m.Planes[0][5][6] = world.BlockWest | world.BlockObject
	if err := repo.SaveRegion(ctx, m); err != nil {
		t.Fatalf("save: %v", err)
	}
	m.Planes[1][7][8] = world.BlockFloor
	if err := repo.SaveRegion(ctx, m); err != nil {
		t.Fatalf("upsert: %v", err)
	}

	got, err := repo.GetRegion(ctx, base)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if len(got.Planes) != 2 {
		t.Fatalf("expected 2 planes, got %d", len(got.Planes))
	}
	if got.Planes[0][5][6] != world.BlockWest|world.BlockObject || got.Planes[1][7][8] != world.BlockFloor {
		t.Fatalf("flags not preserved: %x %x", got.Planes[0][5][6], got.Planes[1][7][8])
	}
}

func TestActivityEventRepo_ListNewestInOrder(t *testing.T) {
	db := openMigrated(t)
	ctx := context.Background()
	sessionID := "it-activity-events"
	_ = db.Exec("DELETE FROM activity_events WHERE session_id = ?", sessionID).Error

	repo := NewActivityEventRepo(db)
	tx := NewTxManager(db)
	err := tx.RunInTx(ctx, func(ctx context.Context) error {
		for i, tr := range []activity.Transition{activity.TransitionStarted, activity.TransitionStoppedIdle, activity.TransitionInput} {
			evt := activity.Event{
				Transition: tr,
				Mode:       activity.ModeFishing,
				Tick:       int64(i + 1),
				OccurredAt: time.Unix(1700000000+int64(i), 0),
				Payload:    map[string]any{"idle": tr == activity.TransitionStoppedIdle},
			}
			if err := repo.Append(ctx, sessionID, []activity.Event{evt}); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		t.Fatalf("append in tx: %v", err)
	}

	got, err := repo.ListBySession(ctx, sessionID, 2)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("expected 2 events, got %d", len(got))
	}
	if got[0].Transition != activity.TransitionStoppedIdle || got[1].Transition != activity.TransitionInput {
		t.Fatalf("unexpected order: %s, %s", got[0].Transition, got[1].Transition)
	}
	if idle, _ := got[0].Payload["idle"].(bool); !idle {
		t.Fatalf("expected idle payload on stopped event, got %+v", got[0].Payload)
	}
}
