package audit

import "time"

// LogEntry is append-only: entries are never updated or deleted by the
// application outside of a full database wipe.
type LogEntry struct {
	ID        string    `gorm:"column:id;primaryKey"`
	Action    string    `gorm:"column:action;not null"`
	Details   string    `gorm:"column:details"`
	Type      string    `gorm:"column:type;not null;default:'info'"`
	Actor     string    `gorm:"column:actor;not null"`
	Timestamp time.Time `gorm:"column:timestamp;not null"`
}

func (LogEntry) TableName() string {
	return "audit_logs"
}
