package dto

import (
	"dinebook/internal/domains/promo/model"
	"dinebook/shared"
	gDto "dinebook/shared/dto"
	gModel "dinebook/shared/model"
	"strings"

	"github.com/google/uuid"
)

type CreatePromoCodeRequest struct {
	Code               string  `json:"code"                validate:"required,min=3,max=50"`
	Description        string  `json:"description"         validate:"omitempty,max=500"`
	DiscountPercentage float64 `json:"discount_percentage" validate:"required,gt=0,lte=100"`
	StartDate          string  `json:"start_date"          validate:"required,datetime=2006-01-02"`
	EndDate            string  `json:"end_date"            validate:"required,datetime=2006-01-02"`
	IsActive           *bool   `json:"is_active,omitempty"`
	MaxUses            int     `json:"max_uses"            validate:"gte=0"`
}

func (r *CreatePromoCodeRequest) ToModel(user string) model.PromoCode {
	active := true
	if r.IsActive != nil {
		active = *r.IsActive
	}

	return model.PromoCode{
		ID:                 uuid.NewString(),
		Code:               strings.TrimSpace(r.Code),
		Description:        r.Description,
		DiscountPercentage: r.DiscountPercentage,
		StartDate:          gModel.Date(r.StartDate),
		EndDate:            gModel.Date(r.EndDate),
		IsActive:           active,
		MaxUses:            r.MaxUses,
		Metadata:           gModel.NewMetadata(user),
	}
}

type UpdatePromoCodeRequest struct {
	Description        *string  `db:"description"         json:"description,omitempty"         validate:"omitempty,max=500"`
	DiscountPercentage *float64 `db:"discount_percentage" json:"discount_percentage,omitempty" validate:"omitempty,gt=0,lte=100"`
	StartDate          *string  `db:"start_date"          json:"start_date,omitempty"          validate:"omitempty,datetime=2006-01-02"`
	EndDate            *string  `db:"end_date"            json:"end_date,omitempty"            validate:"omitempty,datetime=2006-01-02"`
	IsActive           *bool    `db:"is_active"           json:"is_active,omitempty"`
	MaxUses            *int     `db:"max_uses"            json:"max_uses,omitempty"            validate:"omitempty,gte=0"`
}

type PromoCodeResponse struct {
	ID                 string  `json:"id"`
	Code               string  `json:"code"`
	Description        string  `json:"description"`
	DiscountPercentage float64 `json:"discount_percentage"`
	StartDate          string  `json:"start_date"`
	EndDate            string  `json:"end_date"`
	IsActive           bool    `json:"is_active"`
	MaxUses            int     `json:"max_uses"`
	CurrentUses        int     `json:"current_uses"`
	gDto.Metadata
}

func (r *PromoCodeResponse) FromModel(m model.PromoCode) {
	r.ID = m.ID
	r.Code = m.Code
	r.Description = m.Description
	r.DiscountPercentage = m.DiscountPercentage
	r.StartDate = m.StartDate.String()
	r.EndDate = m.EndDate.String()
	r.IsActive = m.IsActive
	r.MaxUses = m.MaxUses
	r.CurrentUses = m.CurrentUses
	r.Metadata.FromModel(m.Metadata)
}

type GetPromoCodesResponse struct {
	PromoCodes []PromoCodeResponse `json:"promo_codes"`
	TotalPage  int                 `json:"total_page"`
	TotalData  int                 `json:"total_data"`
}

func (r *GetPromoCodesResponse) FromModels(models []model.PromoCode, totalData, limit int) {
	r.TotalData = totalData
	r.TotalPage = shared.CalculateTotalPage(totalData, limit)

	r.PromoCodes = make([]PromoCodeResponse, len(models))
	for i, m := range models {
		r.PromoCodes[i].FromModel(m)
	}
}

// ValidateResponse answers the public validation endpoint. Unknown codes are reported as invalid.
type ValidateResponse struct {
	IsValid            bool    `json:"is_valid"`
	DiscountPercentage float64 `json:"discount_percentage"`
}
