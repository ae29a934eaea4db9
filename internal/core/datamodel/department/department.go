package department

import "time"

// Metadata holds head-of-department display fields. Lifecycle is independent
// from staff records: a department may have metadata with zero members, or
// members with no metadata.
type Metadata struct {
	Name      string    `gorm:"column:name;primaryKey"`
	HodName   string    `gorm:"column:hod_name"`
	HodEmail  string    `gorm:"column:hod_email"`
	HodPhone  string    `gorm:"column:hod_phone"`
	UpdatedAt time.Time `gorm:"column:updated_at"`
}

func (Metadata) TableName() string {
	return "department_metadata"
}
