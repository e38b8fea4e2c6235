package model

import (
	"dinebook/shared/timezone"
	"time"
)

// Metadata is the audit block shared by every table.
type Metadata struct {
	CreatedAt  time.Time `db:"created_at"  json:"created_at"`
	ModifiedAt time.Time `db:"modified_at" json:"modified_at"`
	CreatedBy  string    `db:"created_by"  json:"-"`
	ModifiedBy string    `db:"modified_by" json:"-"`
}

// NewMetadata stamps a new row as created and last modified by actor, now.
func NewMetadata(actor string) Metadata {
	now := timezone.Now()

	return Metadata{
		CreatedAt:  now,
		ModifiedAt: now,
		CreatedBy:  actor,
		ModifiedBy: actor,
	}
}
