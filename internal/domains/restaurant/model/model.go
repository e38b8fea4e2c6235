package model

import "dinebook/shared/model"

const (
	TableName  = "restaurants"
	EntityName = "restaurant"

	FieldID             = "id"
	FieldName           = "name"
	FieldDescription    = "description"
	FieldAddress        = "address"
	FieldCity           = "city"
	FieldPhone          = "phone"
	FieldEmail          = "email"
	FieldCuisine        = "cuisine"
	FieldPriceRange     = "price_range"
	FieldOpeningTime    = "opening_time"
	FieldClosingTime    = "closing_time"
	FieldRating         = "rating"
	FieldReviewCount    = "review_count"
	FieldTableCount     = "table_count"
	FieldReservationFee = "reservation_fee"
	FieldIsActive       = "is_active"
)

// SortableFields are the columns a restaurant listing may be ordered by.
var SortableFields = []string{FieldName, FieldRating, FieldPriceRange, FieldReviewCount, "created_at"}

type Restaurant struct {
	ID             string  `db:"id"`
	Name           string  `db:"name"`
	Description    string  `db:"description"`
	Address        string  `db:"address"`
	City           string  `db:"city"`
	Phone          string  `db:"phone"`
	Email          string  `db:"email"`
	Cuisine        string  `db:"cuisine"`
	PriceRange     int     `db:"price_range"`
	OpeningTime    string  `db:"opening_time"`
	ClosingTime    string  `db:"closing_time"`
	Rating         float64 `db:"rating"`
	ReviewCount    int     `db:"review_count"`
	TableCount     int     `db:"table_count"`
	ReservationFee float64 `db:"reservation_fee"`
	IsActive       bool    `db:"is_active"`
	model.Metadata
}
