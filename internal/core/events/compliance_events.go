package events

import (
	"fmt"
	"time"

	"github.com/google/uuid"
)

const (
	EventTypeRecordSaved     = "compliance.record_saved"
	EventTypeRecordDeleted   = "compliance.record_deleted"
	EventTypeStatusToggled   = "compliance.status_toggled"
	EventTypeBulkImport      = "compliance.bulk_import"
	EventTypeDataExported    = "compliance.data_exported"
	EventTypeDatabaseWiped   = "compliance.database_wiped"
	EventTypeDeptCreated     = "compliance.department_created"
	EventTypeDeptMetaUpdated = "compliance.department_meta_updated"
	EventTypeStaffMoved      = "compliance.staff_moved"
	EventTypePortalUpload    = "compliance.portal_upload"
)

// Severity tags carried into the audit trail.
const (
	SeverityInfo    = "info"
	SeveritySuccess = "success"
	SeverityWarning = "warning"
	SeverityDanger  = "danger"
)

// ComplianceEvent describes one auditable mutation: a short action label, a
// free-text detail line, a severity tag, and the acting user.
type ComplianceEvent struct {
	ID        string    `json:"id"`
	Type      string    `json:"type"`
	Timestamp time.Time `json:"timestamp"`
	Action    string    `json:"action"`
	Details   string    `json:"details"`
	Severity  string    `json:"severity"`
	Actor     string    `json:"actor"`
}

func (e *ComplianceEvent) EventType() string     { return e.Type }
func (e *ComplianceEvent) EventID() string       { return e.ID }
func (e *ComplianceEvent) OccurredAt() time.Time { return e.Timestamp }

func newEvent(eventType, action, details, severity, actor string) *ComplianceEvent {
	return &ComplianceEvent{
		ID:        uuid.NewString(),
		Type:      eventType,
		Timestamp: time.Now(),
		Action:    action,
		Details:   details,
		Severity:  severity,
		Actor:     actor,
	}
}

func NewRecordSaved(email, actor string, created bool) *ComplianceEvent {
	action := "Updated Record"
	if created {
		action = "Created Record"
	}
	return newEvent(EventTypeRecordSaved, action, fmt.Sprintf("Employee: %s", email), SeveritySuccess, actor)
}

func NewRecordDeleted(email, actor string) *ComplianceEvent {
	return newEvent(EventTypeRecordDeleted, "Deleted Record", fmt.Sprintf("Employee: %s", email), SeverityDanger, actor)
}

func NewStatusToggled(email, field string, value bool, actor string) *ComplianceEvent {
	return newEvent(EventTypeStatusToggled, "Status Toggled",
		fmt.Sprintf("Employee: %s, %s=%t", email, field, value), SeverityInfo, actor)
}

func NewBulkImport(newCount, updatedCount int, actor string) *ComplianceEvent {
	return newEvent(EventTypeBulkImport, "Bulk Import",
		fmt.Sprintf("Imported %d new, Updated %d", newCount, updatedCount), SeverityInfo, actor)
}

func NewDataExported(recordCount int, actor string) *ComplianceEvent {
	return newEvent(EventTypeDataExported, "Data Export",
		fmt.Sprintf("Downloaded CSV report, %d records", recordCount), SeverityInfo, actor)
}

func NewDatabaseWiped(recordCount int, actor string) *ComplianceEvent {
	return newEvent(EventTypeDatabaseWiped, "Database Wipe",
		fmt.Sprintf("All %d records deleted", recordCount), SeverityDanger, actor)
}

func NewDepartmentCreated(name string, memberCount int, actor string) *ComplianceEvent {
	return newEvent(EventTypeDeptCreated, "Department Created",
		fmt.Sprintf("Created '%s' with %d members", name, memberCount), SeveritySuccess, actor)
}

func NewDepartmentMetaUpdated(name, actor string) *ComplianceEvent {
	return newEvent(EventTypeDeptMetaUpdated, "Dept Info Updated",
		fmt.Sprintf("Updated metadata for %s", name), SeverityInfo, actor)
}

func NewStaffMoved(count int, department, actor string) *ComplianceEvent {
	return newEvent(EventTypeStaffMoved, "Staff Moved",
		fmt.Sprintf("Moved %d staff to %s", count, department), SeverityWarning, actor)
}

func NewPortalUpload(email, fileName string) *ComplianceEvent {
	return newEvent(EventTypePortalUpload, "Undertaking Uploaded",
		fmt.Sprintf("Employee: %s, file: %s", email, fileName), SeveritySuccess, "Employee Portal")
}

// AllEventTypes lists every compliance event type; the audit recorder
// subscribes to each of them.
func AllEventTypes() []string {
	return []string{
		EventTypeRecordSaved,
		EventTypeRecordDeleted,
		EventTypeStatusToggled,
		EventTypeBulkImport,
		EventTypeDataExported,
		EventTypeDatabaseWiped,
		EventTypeDeptCreated,
		EventTypeDeptMetaUpdated,
		EventTypeStaffMoved,
		EventTypePortalUpload,
	}
}
