package audit

import (
	"time"

	auditDatamodel "github.com/frahmantamala/compliance-management/internal/core/datamodel/audit"
)

// LogEntry is one line of the audit trail. Entries are append-only; nothing
// in the application updates or deletes them short of a full database wipe,
// and the wipe itself is logged first.
type LogEntry struct {
	ID        string    `json:"id"`
	Action    string    `json:"action"`
	Details   string    `json:"details"`
	Type      string    `json:"type"`
	Actor     string    `json:"user"`
	Timestamp time.Time `json:"timestamp"`
}

func ToDataModel(e *LogEntry) *auditDatamodel.LogEntry {
	return &auditDatamodel.LogEntry{
		ID:        e.ID,
		Action:    e.Action,
		Details:   e.Details,
		Type:      e.Type,
		Actor:     e.Actor,
		Timestamp: e.Timestamp,
	}
}

func FromDataModel(e *auditDatamodel.LogEntry) *LogEntry {
	return &LogEntry{
		ID:        e.ID,
		Action:    e.Action,
		Details:   e.Details,
		Type:      e.Type,
		Actor:     e.Actor,
		Timestamp: e.Timestamp,
	}
}

func FromDataModelSlice(entries []*auditDatamodel.LogEntry) []*LogEntry {
	result := make([]*LogEntry, len(entries))
	for i, e := range entries {
		result[i] = FromDataModel(e)
	}
	return result
}
