package postgres

import (
	"github.com/frahmantamala/compliance-management/internal"
	departmentDatamodel "github.com/frahmantamala/compliance-management/internal/core/datamodel/department"
	"github.com/frahmantamala/compliance-management/internal/department"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// MetadataRepository implements department.MetadataRepository using GORM.
type MetadataRepository struct {
	db *gorm.DB
}

func NewMetadataRepository(db *gorm.DB) *MetadataRepository {
	return &MetadataRepository{db: db}
}

func (r *MetadataRepository) GetAll() ([]*department.Metadata, error) {
	var metas []*departmentDatamodel.Metadata
	if err := r.db.Find(&metas).Error; err != nil {
		return nil, err
	}

	result := make([]*department.Metadata, len(metas))
	for i, m := range metas {
		result[i] = department.FromDataModel(m)
	}
	return result, nil
}

func (r *MetadataRepository) GetByName(name string) (*department.Metadata, error) {
	var meta departmentDatamodel.Metadata
	err := r.db.Where("name = ?", name).First(&meta).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, internal.ErrDepartmentNotFound
		}
		return nil, err
	}
	return department.FromDataModel(&meta), nil
}

func (r *MetadataRepository) Upsert(meta *department.Metadata) error {
	dm := department.ToDataModel(meta)
	return r.db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "name"}},
		UpdateAll: true,
	}).Create(dm).Error
}
