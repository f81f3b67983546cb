package model

import "time"

const TableNameActivityEvent = "activity_events"

// ActivityEvent mapped from table <activity_events>
type ActivityEvent struct {
	ID         int64     `gorm:"column:id;primaryKey;autoIncrement:true" json:"id"`
	SessionID  string    `gorm:"column:session_id;not null" json:"session_id"`
	Transition string    `gorm:"column:transition;not null" json:"transition"`
	Mode       string    `gorm:"column:mode;not null" json:"mode"`
	Tick       int64     `gorm:"column:tick;not null" json:"tick"`
	OccurredAt time.Time `gorm:"column:occurred_at;not null" json:"occurred_at"`
	Payload    []byte    `gorm:"column:payload" json:"payload"`
}

// TableName ActivityEvent's table name
func (*ActivityEvent) TableName() string {
	return TableNameActivityEvent
}
