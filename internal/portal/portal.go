package portal

import "github.com/frahmantamala/compliance-management/internal/staff"

// LookupResult is the public view of one record: enough for an employee to
// see where they stand, nothing more.
type LookupResult struct {
	Exists     bool   `json:"exists"`
	Name       string `json:"name,omitempty"`
	Department string `json:"department,omitempty"`
	Status     string `json:"status,omitempty"`
	CanUpload  bool   `json:"can_upload"`
}

func lookupResultFor(record *staff.StaffRecord) *LookupResult {
	return &LookupResult{
		Exists:     true,
		Name:       record.DisplayName(),
		Department: record.Department,
		Status:     staff.DeriveStatus(record.NotificationSent, record.UndertakingReceived),
		CanUpload:  !record.UndertakingReceived,
	}
}
