package sqliterepo

import (
	"context"
	"database/sql"
	"encoding/json"
	"time"

	"shiloassist/internal/domain/activity"
)

type ActivityEventRepo struct {
	db *sql.DB
}

func NewActivityEventRepo(db *sql.DB) ActivityEventRepo {
	return ActivityEventRepo{db: db}
}

func (r ActivityEventRepo) Append(ctx context.Context, sessionID string, events []activity.Event) error {
	c := conn(ctx, r.db)
	for _, e := range events {
		b, _ := json.Marshal(e.Payload)
		if _, err := c.ExecContext(ctx,
			`INSERT INTO activity_events(session_id,transition,mode,tick,occurred_at,payload) VALUES(?,?,?,?,?,?)`,
			sessionID, string(e.Transition), string(e.Mode), e.Tick, e.OccurredAt.UnixNano(), string(b)); err != nil {
			return err
		}
	}
	return nil
}

func (r ActivityEventRepo) ListBySession(ctx context.Context, sessionID string, limit int) ([]activity.Event, error) {
	q := `SELECT transition,mode,tick,occurred_at,payload FROM activity_events WHERE session_id=? ORDER BY occurred_at DESC, id DESC`
	args := []any{sessionID}
	if limit > 0 {
		q += ` LIMIT ?`
		args = append(args, limit)
	}
	rows, err := conn(ctx, r.db).QueryContext(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []activity.Event
	for rows.Next() {
		var (
			transition, mode string
			tick, at         int64
			payload          sql.NullString
		)
		if err := rows.Scan(&transition, &mode, &tick, &at, &payload); err != nil {
			return nil, err
		}
		evt := activity.Event{
			Transition: activity.Transition(transition),
			Mode:       activity.Mode(mode),
			Tick:       tick,
			OccurredAt: time.Unix(0, at),
		}
		if payload.Valid && payload.String != "" {
			_ = json.Unmarshal([]byte(payload.String), &evt.Payload)
		}
		out = append(out, evt)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	for i, j := 0, len(out)-1; i < j; i, j = i+1, j-1 {
		out[i], out[j] = out[j], out[i]
	}
	return out, nil
}
