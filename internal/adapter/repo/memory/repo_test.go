package memory

import (
	"context"
	"errors"
	"testing"
	"time"

	"shiloassist/internal/app/ports"
	"shiloassist/internal/domain/activity"
	"shiloassist/internal/domain/world"
)

func TestRegionRepo_SaveCopiesFlags(t *testing.T) {
	store := NewStore()
	repo := NewRegionRepo(store)
	ctx := context.Background()
	base := world.RegionBase{X: 2800, Y: 2912}
	m := world.NewCollisionMap(base, 1)
	m.Planes[0][1][2] = world.BlockWest

	if err := repo.SaveRegion(ctx, m); err != nil {
		t.Fatalf("save: %v", err)
	}
	m.Planes[0][1][2] = world.BlockObject

	got, err := repo.GetRegion(ctx, base)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if got.Planes[0][1][2] != world.BlockWest {
		t.Fatalf("expected stored copy to keep BlockWest, got %x", got.Planes[0][1][2])
	}
}

func TestRegionRepo_MissingIsNotFound(t *testing.T) {
	repo := NewRegionRepo(NewStore())
	if _, err := repo.GetRegion(context.Background(), world.RegionBase{X: 1}); !errors.Is(err, ports.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestEventRepo_ListHonoursLimit(t *testing.T) {
	store := NewStore()
	repo := NewEventRepo(store)
	ctx := context.Background()
	for i := 0; i < 5; i++ {
		evt := activity.Event{Transition: activity.TransitionInput, Tick: int64(i), OccurredAt: time.Unix(int64(i), 0)}
		if err := repo.Append(ctx, "sess-1", []activity.Event{evt}); err != nil {
			t.Fatalf("append: %v", err)
		}
	}
	if err := repo.Append(ctx, "sess-2", []activity.Event{{Transition: activity.TransitionStarted}}); err != nil {
		t.Fatalf("append: %v", err)
	}

	got, err := repo.ListBySession(ctx, "sess-1", 2)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(got) != 2 || got[0].Tick != 3 || got[1].Tick != 4 {
		t.Fatalf("expected newest two in order, got %+v", got)
	}
	all, _ := repo.ListBySession(ctx, "sess-1", 0)
	if len(all) != 5 {
		t.Fatalf("expected 5 events, got %d", len(all))
	}
}

func TestTxManager_RepoCallsInsideTx(t *testing.T) {
	store := NewStore()
	tx := NewTxManager(store)
	repo := NewRegionRepo(store)
	err := tx.RunInTx(context.Background(), func(ctx context.Context) error {
		if err := repo.SaveRegion(ctx, world.NewCollisionMap(world.RegionBase{}, 1)); err != nil {
			return err
		}
		_, err := repo.GetRegion(ctx, world.RegionBase{})
		return err
	})
	if err != nil {
		t.Fatalf("run in tx: %v", err)
	}
}
