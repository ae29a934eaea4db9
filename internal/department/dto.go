package department

import (
	"errors"
	"strings"
)

// CreateDepartmentDTO creates a department by relabeling the selected
// members; a department exists by virtue of records carrying its label.
type CreateDepartmentDTO struct {
	Name    string   `json:"name"`
	Members []string `json:"members"`
}

func (dto CreateDepartmentDTO) Validate() error {
	if strings.TrimSpace(dto.Name) == "" {
		return errors.New("department name is required")
	}
	return nil
}

// MoveMembersDTO moves existing records into a department.
type MoveMembersDTO struct {
	Members []string `json:"members"`
}

func (dto MoveMembersDTO) Validate() error {
	if len(dto.Members) == 0 {
		return errors.New("select at least one staff member")
	}
	return nil
}

// UpsertMetadataDTO sets head-of-department display fields.
type UpsertMetadataDTO struct {
	HodName  string `json:"hod_name"`
	HodEmail string `json:"hod_email"`
	HodPhone string `json:"hod_phone"`
}

// DepartmentView is one card in the department overview: the compliance
// rollup joined with head-of-department metadata.
type DepartmentView struct {
	Name      string `json:"name"`
	Total     int    `json:"total"`
	Compliant int    `json:"compliant"`
	Pending   int    `json:"pending"`
	HodName   string `json:"hod_name"`
	HodEmail  string `json:"hod_email"`
	HodPhone  string `json:"hod_phone"`
}
