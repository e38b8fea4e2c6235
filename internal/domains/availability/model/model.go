package model

// Query describes a time window on one day. Times are zero-padded "HH:MM".
type Query struct {
	RestaurantID string `json:"restaurant_id,omitempty"`
	TableID      string `json:"table_id,omitempty"`
	Date         string `json:"date"`
	StartTime    string `json:"start_time"`
	EndTime      string `json:"end_time"`
	MinCapacity  int    `json:"min_capacity,omitempty"`

	// ExcludeReservationID skips one reservation, so an update does not conflict with itself.
	ExcludeReservationID string `json:"exclude_reservation_id,omitempty"`
}

type TableAvailability struct {
	ID          string  `db:"id"           json:"id"`
	TableNumber string  `db:"table_number" json:"table_number"`
	Capacity    int     `db:"capacity"     json:"capacity"`
	IsActive    bool    `db:"is_active"    json:"is_active"`
	PositionX   float64 `db:"position_x"   json:"position_x"`
	PositionY   float64 `db:"position_y"   json:"position_y"`
	Width       float64 `db:"width"        json:"width"`
	Height      float64 `db:"height"       json:"height"`
	Shape       string  `db:"shape"        json:"shape"`
	IsAvailable bool    `db:"is_available" json:"is_available"`
}

// BookedSlot is a non-cancelled reservation holding a table on the queried day.
type BookedSlot struct {
	ID             string `db:"id"          json:"id"`
	TableID        string `db:"table_id"    json:"-"`
	StartTime      string `db:"start_time"  json:"start_time"`
	EndTime        string `db:"end_time"    json:"end_time"`
	Status         string `db:"status"      json:"status"`
	GuestCount     int    `db:"guest_count" json:"guest_count"`
	OverlapsWindow bool   `db:"-"           json:"overlaps_window"`
}

// TableReservations is one table of the floor plan with its bookings for the day.
type TableReservations struct {
	ID           string       `db:"id"           json:"id"`
	TableNumber  string       `db:"table_number" json:"table_number"`
	Capacity     int          `db:"capacity"     json:"capacity"`
	IsActive     bool         `db:"is_active"    json:"is_active"`
	PositionX    float64      `db:"position_x"   json:"position_x"`
	PositionY    float64      `db:"position_y"   json:"position_y"`
	Width        float64      `db:"width"        json:"width"`
	Height       float64      `db:"height"       json:"height"`
	Shape        string       `db:"shape"        json:"shape"`
	Reservations []BookedSlot `db:"-"            json:"reservations"`
}
