package gormrepo

import (
	"context"
	"encoding/json"

	"shiloassist/internal/adapter/repo/gorm/model"
	"shiloassist/internal/domain/activity"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type ActivityEventRepo struct {
	db *gorm.DB
}

func NewActivityEventRepo(db *gorm.DB) ActivityEventRepo {
	return ActivityEventRepo{db: db}
}

func (r ActivityEventRepo) Append(ctx context.Context, sessionID string, events []activity.Event) error {
	if len(events) == 0 {
		return nil
	}
	rows := make([]model.ActivityEvent, 0, len(events))
	for _, e := range events {
		b, _ := json.Marshal(e.Payload)
		rows = append(rows, model.ActivityEvent{
			SessionID:  sessionID,
			Transition: string(e.Transition),
			Mode:       string(e.Mode),
			Tick:       e.Tick,
			OccurredAt: e.OccurredAt,
			Payload:    b,
		})
	}
	return getDBFromCtx(ctx, r.db).WithContext(ctx).Create(&rows).Error
}

// ListBySession returns the newest limit events, oldest first.
func (r ActivityEventRepo) ListBySession(ctx context.Context, sessionID string, limit int) ([]activity.Event, error) {
	rows := []model.ActivityEvent{}
	query := getDBFromCtx(ctx, r.db).WithContext(ctx).
		Where(&model.ActivityEvent{SessionID: sessionID}).
		Clauses(clause.OrderBy{
			Columns: []clause.OrderByColumn{
				{Column: clause.Column{Name: "occurred_at"}, Desc: true},
				{Column: clause.Column{Name: "id"}, Desc: true},
			},
		})
	if limit > 0 {
		query = query.Limit(limit)
	}
	if err := query.Find(&rows).Error; err != nil {
		return nil, err
	}

	out := make([]activity.Event, 0, len(rows))
	for i := len(rows) - 1; i >= 0; i-- {
		row := rows[i]
		var payload map[string]any
		if len(row.Payload) > 0 {
			_ = json.Unmarshal(row.Payload, &payload)
		}
		out = append(out, activity.Event{
			Transition: activity.Transition(row.Transition),
			Mode:       activity.Mode(row.Mode),
			Tick:       row.Tick,
			OccurredAt: row.OccurredAt,
			Payload:    payload,
		})
	}
	return out, nil
}
