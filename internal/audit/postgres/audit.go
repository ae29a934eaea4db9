package postgres

import (
	"github.com/frahmantamala/compliance-management/internal/audit"
	auditDatamodel "github.com/frahmantamala/compliance-management/internal/core/datamodel/audit"
	"gorm.io/gorm"
)

type AuditRepository struct {
	db *gorm.DB
}

func NewAuditRepository(db *gorm.DB) *AuditRepository {
	return &AuditRepository{db: db}
}

func (r *AuditRepository) Append(entry *audit.LogEntry) error {
	return r.db.Create(audit.ToDataModel(entry)).Error
}

func (r *AuditRepository) List(limit int) ([]*audit.LogEntry, error) {
	var entries []*auditDatamodel.LogEntry
	err := r.db.Order("timestamp DESC").Limit(limit).Find(&entries).Error
	if err != nil {
		return nil, err
	}
	return audit.FromDataModelSlice(entries), nil
}
