package ports

import (
	"context"

	"shiloassist/internal/domain/activity"
	"shiloassist/internal/domain/world"
)

// RegionRepository stores collision maps uploaded by the client bridge, keyed by region base.
type RegionRepository interface {
	GetRegion(ctx context.Context, base world.RegionBase) (world.CollisionMap, error)
	SaveRegion(ctx context.Context, m world.CollisionMap) error
}

type ActivityEventRepository interface {
	Append(ctx context.Context, sessionID string, events []activity.Event) error
	ListBySession(ctx context.Context, sessionID string, limit int) ([]activity.Event, error)
}
