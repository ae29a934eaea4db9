package staff

import (
	"strings"
	"time"

	"github.com/frahmantamala/compliance-management/internal/core/common/validation"
)

// SaveRecordDTO is the admin form payload for creating or editing one record.
type SaveRecordDTO struct {
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
}

func (dto SaveRecordDTO) Validate() error {
	v := validation.NewValidator()
	v.Field("email", strings.TrimSpace(dto.Email)).Required().Email()
	v.Field("first_name", dto.FirstName).MaxLength(100)
	v.Field("last_name", dto.LastName).MaxLength(100)
	v.Field("department", dto.Department).MaxLength(100)
	v.Field("sent_date", dto.SentDate).NotFuture()
	v.Field("received_date", dto.ReceivedDate).NotFuture()

	if err := v.Validate(); err != nil {
		return err
	}
	return nil
}

// ToggleDTO flips a single compliance flag on one record.
type ToggleDTO struct {
	Value bool `json:"value"`
}

// ListResponse wraps the registry view: the filtered total plus one
// display-only page of it. Pagination never reaches the data-access layer.
type ListResponse struct {
	Records    []*StaffRecord `json:"records"`
	Total      int            `json:"total"`
	Page       int            `json:"page"`
	PerPage    int            `json:"per_page"`
	TotalPages int            `json:"total_pages"`
}
