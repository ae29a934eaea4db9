package postgres

import (
	"strings"
	"time"

	"github.com/frahmantamala/compliance-management/internal"
	staffDatamodel "github.com/frahmantamala/compliance-management/internal/core/datamodel/staff"
	"github.com/frahmantamala/compliance-management/internal/staff"
	"gorm.io/gorm"
)

// StaffRepository implements staff.Repository using GORM. All email matching
// is case-insensitive; stored emails keep their original casing.
type StaffRepository struct {
	db *gorm.DB
}

func NewStaffRepository(db *gorm.DB) *StaffRepository {
	return &StaffRepository{db: db}
}

func (r *StaffRepository) GetAll() ([]*staff.StaffRecord, error) {
	var records []*staffDatamodel.StaffRecord
	if err := r.db.Find(&records).Error; err != nil {
		return nil, err
	}
	return staff.FromDataModelSlice(records), nil
}

func (r *StaffRepository) GetByEmail(email string) (*staff.StaffRecord, error) {
	var record staffDatamodel.StaffRecord
	err := r.db.Where("LOWER(email) = ?", staff.NormalizeEmail(email)).First(&record).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, internal.ErrRecordNotFound
		}
		return nil, err
	}
	return staff.FromDataModel(&record), nil
}

// Save upserts one record. An existing row is matched by lowercased email and
// keeps its stored email casing as the persistence key; a new row is created
// with the casing supplied.
func (r *StaffRepository) Save(record *staff.StaffRecord) error {
	return r.upsert(r.db, record)
}

func (r *StaffRepository) Delete(email string) error {
	result := r.db.Where("LOWER(email) = ?", staff.NormalizeEmail(email)).
		Delete(&staffDatamodel.StaffRecord{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return internal.ErrRecordNotFound
	}
	return nil
}

func (r *StaffRepository) DeleteAll() (int64, error) {
	result := r.db.Where("1 = 1").Delete(&staffDatamodel.StaffRecord{})
	return result.RowsAffected, result.Error
}

// UpsertBatch applies a reconciliation batch inside one transaction: either
// every staged upsert lands or none do.
func (r *StaffRepository) UpsertBatch(records []*staff.StaffRecord) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		for _, record := range records {
			if err := r.upsert(tx, record); err != nil {
				return err
			}
		}
		return nil
	})
}

func (r *StaffRepository) upsert(tx *gorm.DB, record *staff.StaffRecord) error {
	dm := staff.ToDataModel(record)

	updates := map[string]interface{}{
		"sr_no":                dm.SrNo,
		"first_name":           dm.FirstName,
		"last_name":            dm.LastName,
		"department":           dm.Department,
		"mobile":               dm.Mobile,
		"contact_person":       dm.ContactPerson,
		"notification_sent":    dm.NotificationSent,
		"undertaking_received": dm.UndertakingReceived,
		"sent_date":            dm.SentDate,
		"received_date":        dm.ReceivedDate,
		"status":               dm.Status,
		"updated_at":           dm.UpdatedAt,
	}

	result := tx.Model(&staffDatamodel.StaffRecord{}).
		Where("LOWER(email) = ?", strings.ToLower(dm.Email)).
		Updates(updates)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected > 0 {
		return nil
	}

	return tx.Create(dm).Error
}

// AssignDepartment relabels a set of records into one department inside a
// single transaction, returning how many rows changed.
func (r *StaffRepository) AssignDepartment(emails []string, department string, now time.Time) (int64, error) {
	var moved int64
	err := r.db.Transaction(func(tx *gorm.DB) error {
		for _, email := range emails {
			result := tx.Model(&staffDatamodel.StaffRecord{}).
				Where("LOWER(email) = ?", staff.NormalizeEmail(email)).
				Updates(map[string]interface{}{
					"department": department,
					"updated_at": now,
				})
			if result.Error != nil {
				return result.Error
			}
			moved += result.RowsAffected
		}
		return nil
	})
	return moved, err
}
