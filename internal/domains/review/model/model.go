package model

import "dinebook/shared/model"

const (
	TableName  = "reviews"
	EntityName = "review"

	FieldID           = "id"
	FieldUserID       = "user_id"
	FieldRestaurantID = "restaurant_id"
	FieldRating       = "rating"
	FieldComment      = "comment"
)

var SortableFields = []string{FieldRating, "created_at"}

type Review struct {
	ID           string `db:"id"`
	UserID       string `db:"user_id"`
	RestaurantID string `db:"restaurant_id"`
	Rating       int    `db:"rating"`
	Comment      string `db:"comment"`
	model.Metadata
}
