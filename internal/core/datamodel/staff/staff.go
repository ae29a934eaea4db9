package staff

import "time"

// StaffRecord is the persisted shape of a tracked staff member. The email is
// the natural key; there is no surrogate identity.
type StaffRecord struct {
	Email               string     `gorm:"column:email;primaryKey"`
	SrNo                string     `gorm:"column:sr_no"`
	FirstName           string     `gorm:"column:first_name"`
	LastName            string     `gorm:"column:last_name"`
	Department          string     `gorm:"column:department"`
	Mobile              string     `gorm:"column:mobile"`
	ContactPerson       string     `gorm:"column:contact_person"`
	NotificationSent    bool       `gorm:"column:notification_sent;not null;default:false"`
	UndertakingReceived bool       `gorm:"column:undertaking_received;not null;default:false"`
	SentDate            *time.Time `gorm:"column:sent_date;type:date"`
	ReceivedDate        *time.Time `gorm:"column:received_date;type:date"`
	Status              string     `gorm:"column:status;not null;default:'Pending'"`
	UpdatedAt           time.Time  `gorm:"column:updated_at"`
	CreatedAt           time.Time  `gorm:"column:created_at"`
}

func (StaffRecord) TableName() string {
	return "staff_records"
}
