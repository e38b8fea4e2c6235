package dto

import (
	"dinebook/internal/domains/table/model"
	gDto "dinebook/shared/dto"
	gModel "dinebook/shared/model"

	"github.com/google/uuid"
)

type CreateTableRequest struct {
	TableNumber string   `json:"table_number" validate:"required,max=20"`
	Capacity    int      `json:"capacity"     validate:"required,gt=0,lte=50"`
	IsActive    *bool    `json:"is_active,omitempty"`
	PositionX   float64  `json:"position_x"   validate:"gte=0"`
	PositionY   float64  `json:"position_y"   validate:"gte=0"`
	Width       *float64 `json:"width,omitempty"  validate:"omitempty,gt=0"`
	Height      *float64 `json:"height,omitempty" validate:"omitempty,gt=0"`
	Shape       string   `json:"shape"        validate:"omitempty,oneof=rectangle circle square"`
}

const defaultTableSize = 60

func (r *CreateTableRequest) ToModel(restaurantID, user string) model.Table {
	active := true
	if r.IsActive != nil {
		active = *r.IsActive
	}

	width, height := float64(defaultTableSize), float64(defaultTableSize)
	if r.Width != nil {
		width = *r.Width
	}

	if r.Height != nil {
		height = *r.Height
	}

	shape := r.Shape
	if shape == "" {
		shape = model.ShapeRectangle
	}

	return model.Table{
		ID:           uuid.NewString(),
		RestaurantID: restaurantID,
		TableNumber:  r.TableNumber,
		Capacity:     r.Capacity,
		IsActive:     active,
		PositionX:    r.PositionX,
		PositionY:    r.PositionY,
		Width:        width,
		Height:       height,
		Shape:        shape,
		Metadata:     gModel.NewMetadata(user),
	}
}

type UpdateTableRequest struct {
	TableNumber *string  `db:"table_number" json:"table_number,omitempty" validate:"omitempty,max=20"`
	Capacity    *int     `db:"capacity"     json:"capacity,omitempty"     validate:"omitempty,gt=0,lte=50"`
	IsActive    *bool    `db:"is_active"    json:"is_active,omitempty"`
	PositionX   *float64 `db:"position_x"   json:"position_x,omitempty"   validate:"omitempty,gte=0"`
	PositionY   *float64 `db:"position_y"   json:"position_y,omitempty"   validate:"omitempty,gte=0"`
	Width       *float64 `db:"width"        json:"width,omitempty"        validate:"omitempty,gt=0"`
	Height      *float64 `db:"height"       json:"height,omitempty"       validate:"omitempty,gt=0"`
	Shape       *string  `db:"shape"        json:"shape,omitempty"        validate:"omitempty,oneof=rectangle circle square"`
}

type TableResponse struct {
	ID           string  `json:"id"`
	RestaurantID string  `json:"restaurant_id"`
	TableNumber  string  `json:"table_number"`
	Capacity     int     `json:"capacity"`
	IsActive     bool    `json:"is_active"`
	PositionX    float64 `json:"position_x"`
	PositionY    float64 `json:"position_y"`
	Width        float64 `json:"width"`
	Height       float64 `json:"height"`
	Shape        string  `json:"shape"`
	gDto.Metadata
}

func (r *TableResponse) FromModel(m model.Table) {
	r.ID = m.ID
	r.RestaurantID = m.RestaurantID
	r.TableNumber = m.TableNumber
	r.Capacity = m.Capacity
	r.IsActive = m.IsActive
	r.PositionX = m.PositionX
	r.PositionY = m.PositionY
	r.Width = m.Width
	r.Height = m.Height
	r.Shape = m.Shape
	r.Metadata.FromModel(m.Metadata)
}

func FromModels(models []model.Table) []TableResponse {
	res := make([]TableResponse, len(models))
	for i, m := range models {
		res[i].FromModel(m)
	}

	return res
}
