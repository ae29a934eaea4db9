package staff

import (
	"strings"
	"time"

	staffDatamodel "github.com/frahmantamala/compliance-management/internal/core/datamodel/staff"
)

// Derived status values. Status is persisted for querying convenience but is
// never an independent source of truth: every write path recomputes it from
// the two booleans through ApplyCompliance.
const (
	StatusAccepted = "Accepted"
	StatusNotified = "Notified"
	StatusPending  = "Pending"
)

// DepartmentUnassigned is the sentinel bucket for records without a
// department label.
const DepartmentUnassigned = "Unassigned"

type StaffRecord struct {
	SrNo                string     `json:"sr_no"`
	FirstName           string     `json:"first_name"`
	LastName            string     `json:"last_name"`
	Email               string     `json:"email"`
	Department          string     `json:"department"`
	Mobile              string     `json:"mobile"`
	ContactPerson       string     `json:"contact_person"`
	NotificationSent    bool       `json:"notification_sent"`
	UndertakingReceived bool       `json:"undertaking_received"`
	SentDate            *time.Time `json:"sent_date,omitempty"`
	ReceivedDate        *time.Time `json:"received_date,omitempty"`
	Status              string     `json:"status"`
	UpdatedAt           time.Time  `json:"updated_at"`
	CreatedAt           time.Time  `json:"created_at"`
}

// DeriveStatus is the single status rule for the whole system:
// received wins over notified, otherwise pending.
func DeriveStatus(notificationSent, undertakingReceived bool) string {
	if undertakingReceived {
		return StatusAccepted
	}
	if notificationSent {
		return StatusNotified
	}
	return StatusPending
}

// ApplyCompliance sets the two compliance booleans on a record, recomputes
// the derived status, and stamps sentDate/receivedDate the first time the
// corresponding boolean flips true. Date stamps are never cleared or
// overwritten here; only explicit manual edits may change them.
func (r *StaffRecord) ApplyCompliance(notificationSent, undertakingReceived bool, now time.Time) {
	r.NotificationSent = notificationSent
	r.UndertakingReceived = undertakingReceived
	r.Status = DeriveStatus(notificationSent, undertakingReceived)

	if notificationSent && r.SentDate == nil {
		d := now
		r.SentDate = &d
	}
	if undertakingReceived && r.ReceivedDate == nil {
		d := now
		r.ReceivedDate = &d
	}
	r.UpdatedAt = now
}

// NormalizeEmail lowercases and trims an email for matching. Stored emails
// keep their original casing; comparisons always go through this.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// NormalizeDepartment trims a department label and maps the empty label to
// the Unassigned sentinel.
func NormalizeDepartment(department string) string {
	d := strings.TrimSpace(department)
	if d == "" {
		return DepartmentUnassigned
	}
	return d
}

// DisplayName joins the name parts, falling back to the email when both are
// empty.
func (r *StaffRecord) DisplayName() string {
	name := strings.TrimSpace(r.FirstName + " " + r.LastName)
	if name == "" {
		return r.Email
	}
	return name
}

func ToDataModel(r *StaffRecord) *staffDatamodel.StaffRecord {
	return &staffDatamodel.StaffRecord{
		Email:               r.Email,
		SrNo:                r.SrNo,
		FirstName:           r.FirstName,
		LastName:            r.LastName,
		Department:          r.Department,
		Mobile:              r.Mobile,
		ContactPerson:       r.ContactPerson,
		NotificationSent:    r.NotificationSent,
		UndertakingReceived: r.UndertakingReceived,
		SentDate:            r.SentDate,
		ReceivedDate:        r.ReceivedDate,
		Status:              r.Status,
		UpdatedAt:           r.UpdatedAt,
		CreatedAt:           r.CreatedAt,
	}
}

func FromDataModel(r *staffDatamodel.StaffRecord) *StaffRecord {
	return &StaffRecord{
		Email:               r.Email,
		SrNo:                r.SrNo,
		FirstName:           r.FirstName,
		LastName:            r.LastName,
		Department:          r.Department,
		Mobile:              r.Mobile,
		ContactPerson:       r.ContactPerson,
		NotificationSent:    r.NotificationSent,
		UndertakingReceived: r.UndertakingReceived,
		SentDate:            r.SentDate,
		ReceivedDate:        r.ReceivedDate,
		Status:              r.Status,
		UpdatedAt:           r.UpdatedAt,
		CreatedAt:           r.CreatedAt,
	}
}

func FromDataModelSlice(records []*staffDatamodel.StaffRecord) []*StaffRecord {
	result := make([]*StaffRecord, len(records))
	for i, r := range records {
		result[i] = FromDataModel(r)
	}
	return result
}
