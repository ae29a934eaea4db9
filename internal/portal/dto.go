package portal

import (
	"errors"
	"strings"
)

type LookupDTO struct {
	Email string `json:"email"`
}

func (d *LookupDTO) Validate() error {
	email := strings.TrimSpace(d.Email)
	if email == "" {
		return errors.New("email is required")
	}
	if !strings.Contains(email, "@") {
		return errors.New("email must be a valid address")
	}
	return nil
}

type UploadDTO struct {
	Email    string `json:"email"`
	FileName string `json:"file_name"`
}

func (d *UploadDTO) Validate() error {
	if strings.TrimSpace(d.Email) == "" {
		return errors.New("email is required")
	}
	if strings.TrimSpace(d.FileName) == "" {
		return errors.New("file_name is required")
	}
	return nil
}
