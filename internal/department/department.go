package department

import (
	"time"

	departmentDatamodel "github.com/frahmantamala/compliance-management/internal/core/datamodel/department"
)

// HodNotAssigned is the display fallback for departments without metadata.
const HodNotAssigned = "Not Assigned"

// Metadata carries head-of-department display fields. Its lifecycle is
// independent from staff records: metadata may exist with zero members and
// members may exist with no metadata.
type Metadata struct {
	Name      string    `json:"name"`
	HodName   string    `json:"hod_name"`
	HodEmail  string    `json:"hod_email"`
	HodPhone  string    `json:"hod_phone"`
	UpdatedAt time.Time `json:"updated_at"`
}

func ToDataModel(m *Metadata) *departmentDatamodel.Metadata {
	return &departmentDatamodel.Metadata{
		Name:      m.Name,
		HodName:   m.HodName,
		HodEmail:  m.HodEmail,
		HodPhone:  m.HodPhone,
		UpdatedAt: m.UpdatedAt,
	}
}

func FromDataModel(m *departmentDatamodel.Metadata) *Metadata {
	return &Metadata{
		Name:      m.Name,
		HodName:   m.HodName,
		HodEmail:  m.HodEmail,
		HodPhone:  m.HodPhone,
		UpdatedAt: m.UpdatedAt,
	}
}
