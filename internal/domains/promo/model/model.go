package model

import "dinebook/shared/model"

const (
	TableName  = "promo_codes"
	EntityName = "promo_code"

	FieldID                 = "id"
	FieldCode               = "code"
	FieldDescription        = "description"
	FieldDiscountPercentage = "discount_percentage"
	FieldStartDate          = "start_date"
	FieldEndDate            = "end_date"
	FieldIsActive           = "is_active"
	FieldMaxUses            = "max_uses"
	FieldCurrentUses        = "current_uses"
)

var SortableFields = []string{FieldCode, FieldStartDate, FieldEndDate, FieldDiscountPercentage, "created_at"}

type PromoCode struct {
	ID                 string     `db:"id"`
	Code               string     `db:"code"`
	Description        string     `db:"description"`
	DiscountPercentage float64    `db:"discount_percentage"`
	StartDate          model.Date `db:"start_date"`
	EndDate            model.Date `db:"end_date"`
	IsActive           bool       `db:"is_active"`
	MaxUses            int        `db:"max_uses"`
	CurrentUses        int        `db:"current_uses"`
	model.Metadata
}

// IsValid reports whether the code can be redeemed on today ("YYYY-MM-DD").
// A max_uses of zero means unlimited.
func (p PromoCode) IsValid(today string) bool {
	if p.ID == "" || !p.IsActive {
		return false
	}

	if today < p.StartDate.String() || today > p.EndDate.String() {
		return false
	}

	return p.MaxUses == 0 || p.CurrentUses < p.MaxUses
}
