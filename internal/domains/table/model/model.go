package model

import "dinebook/shared/model"

const (
	TableName  = "restaurant_tables"
	EntityName = "table"

	FieldID           = "id"
	FieldRestaurantID = "restaurant_id"
	FieldTableNumber  = "table_number"
	FieldCapacity     = "capacity"
	FieldIsActive     = "is_active"
	FieldPositionX    = "position_x"
	FieldPositionY    = "position_y"
	FieldWidth        = "width"
	FieldHeight       = "height"
	FieldShape        = "shape"
)

const (
	ShapeRectangle = "rectangle"
	ShapeCircle    = "circle"
	ShapeSquare    = "square"
)

type Table struct {
	ID           string  `db:"id"`
	RestaurantID string  `db:"restaurant_id"`
	TableNumber  string  `db:"table_number"`
	Capacity     int     `db:"capacity"`
	IsActive     bool    `db:"is_active"`
	PositionX    float64 `db:"position_x"`
	PositionY    float64 `db:"position_y"`
	Width        float64 `db:"width"`
	Height       float64 `db:"height"`
	Shape        string  `db:"shape"`
	model.Metadata
}
