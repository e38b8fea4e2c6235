package dto

import (
	"dinebook/shared/constant"
	"dinebook/shared/model"
	"dinebook/shared/timezone"
)

// Metadata is the audit block embedded in response bodies, rendered in the app timezone.
type Metadata struct {
	CreatedAt  string `json:"created_at"`
	ModifiedAt string `json:"modified_at"`
	CreatedBy  string `json:"created_by,omitempty"`
	ModifiedBy string `json:"modified_by,omitempty"`
}

func (m *Metadata) FromModel(src model.Metadata) {
	*m = Metadata{
		CreatedAt:  timezone.Format(src.CreatedAt, constant.DateFormat),
		ModifiedAt: timezone.Format(src.ModifiedAt, constant.DateFormat),
		CreatedBy:  src.CreatedBy,
		ModifiedBy: src.ModifiedBy,
	}
}
