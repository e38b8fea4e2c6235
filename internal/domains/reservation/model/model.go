package model

import (
	"dinebook/shared/model"
	"slices"
	"time"
)

const (
	TableName  = "reservations"
	EntityName = "reservation"

	FieldID                 = "id"
	FieldUserID             = "user_id"
	FieldRestaurantID       = "restaurant_id"
	FieldTableID            = "table_id"
	FieldReservationDate    = "reservation_date"
	FieldStartTime          = "start_time"
	FieldEndTime            = "end_time"
	FieldGuestCount         = "guest_count"
	FieldStatus             = "status"
	FieldConfirmationToken  = "confirmation_token"
	FieldTokenExpiresAt     = "token_expires_at"
	FieldConfirmedAt        = "confirmed_at"
	FieldCancelledAt        = "cancelled_at"
	FieldCompletedAt        = "completed_at"
	FieldBaseFee            = "base_fee"
	FieldPersonFee          = "person_fee"
	FieldServiceFee         = "service_fee"
	FieldDiscountAmount     = "discount_amount"
	FieldDiscountPercentage = "discount_percentage"
	FieldTotalPrice         = "total_price"
	FieldReceiptURL         = "receipt_url"
	FieldPaymentMethod      = "payment_method"
	FieldPaymentStatus      = "payment_status"
)

const (
	StatusPending   = "pending"
	StatusConfirmed = "confirmed"
	StatusCancelled = "cancelled"
	StatusCompleted = "completed"
)

const (
	PaymentMethodCash = "cash"
	PaymentMethodCard = "card"

	PaymentStatusPending  = "pending"
	PaymentStatusPaid     = "paid"
	PaymentStatusRefunded = "refunded"
)

// ActiveStatuses are the states a reservation can still leave.
var ActiveStatuses = []string{StatusPending, StatusConfirmed}

var SortableFields = []string{FieldReservationDate, FieldStartTime, FieldStatus, FieldTotalPrice, "created_at"}

type Reservation struct {
	ID                 string     `db:"id"                  json:"id"`
	UserID             string     `db:"user_id"             json:"user_id"`
	RestaurantID       string     `db:"restaurant_id"       json:"restaurant_id"`
	TableID            string     `db:"table_id"            json:"table_id"`
	ReservationDate    model.Date `db:"reservation_date"    json:"reservation_date"`
	StartTime          string     `db:"start_time"          json:"start_time"`
	EndTime            string     `db:"end_time"            json:"end_time"`
	GuestCount         int        `db:"guest_count"         json:"guest_count"`
	Status             string     `db:"status"              json:"status"`
	SpecialRequests    string     `db:"special_requests"    json:"special_requests"`
	Email              string     `db:"email"               json:"email"`
	PhoneNumber        string     `db:"phone_number"        json:"phone_number"`
	ConfirmationToken  *string    `db:"confirmation_token"  json:"confirmation_token"`
	TokenExpiresAt     *time.Time `db:"token_expires_at"    json:"token_expires_at"`
	ConfirmedAt        *time.Time `db:"confirmed_at"        json:"confirmed_at"`
	CancelledAt        *time.Time `db:"cancelled_at"        json:"cancelled_at"`
	CompletedAt        *time.Time `db:"completed_at"        json:"completed_at"`
	BaseFee            float64    `db:"base_fee"            json:"base_fee"`
	PersonFee          float64    `db:"person_fee"          json:"person_fee"`
	ServiceFee         float64    `db:"service_fee"         json:"service_fee"`
	DiscountAmount     float64    `db:"discount_amount"     json:"discount_amount"`
	DiscountPercentage float64    `db:"discount_percentage" json:"discount_percentage"`
	TotalPrice         float64    `db:"total_price"         json:"total_price"`
	PromoCode          string     `db:"promo_code"          json:"promo_code"`
	CardLastFour       string     `db:"card_last_four"      json:"card_last_four"`
	ReceiptURL         string     `db:"receipt_url"         json:"receipt_url"`
	PaymentMethod      string     `db:"payment_method"      json:"payment_method"`
	PaymentStatus      string     `db:"payment_status"      json:"payment_status"`
	model.Metadata
}

// IsTerminal reports whether no further transition is allowed.
func (r Reservation) IsTerminal() bool {
	return !slices.Contains(ActiveStatuses, r.Status)
}

// HasToken reports whether the reservation still carries an unconsumed confirmation token.
func (r Reservation) HasToken() bool {
	return r.ConfirmationToken != nil && *r.ConfirmationToken != ""
}

// IsOwnedBy reports whether userID made the reservation.
func (r Reservation) IsOwnedBy(userID string) bool {
	return userID != "" && r.UserID == userID
}

const (
	EventCreated   = "reservation.created"
	EventUpdated   = "reservation.updated"
	EventConfirmed = "reservation.confirmed"
	EventCancelled = "reservation.cancelled"
	EventCompleted = "reservation.completed"
)

// ReservationEvent is published on every state change, keyed by restaurant.
type ReservationEvent struct {
	Type            string    `json:"type"`
	ReservationID   string    `json:"reservation_id"`
	RestaurantID    string    `json:"restaurant_id"`
	TableID         string    `json:"table_id"`
	ReservationDate string    `json:"reservation_date"`
	StartTime       string    `json:"start_time"`
	EndTime         string    `json:"end_time"`
	GuestCount      int       `json:"guest_count"`
	Status          string    `json:"status"`
	OccurredAt      time.Time `json:"occurred_at"`
}

func NewEvent(eventType string, r Reservation, at time.Time) ReservationEvent {
	return ReservationEvent{
		Type:            eventType,
		ReservationID:   r.ID,
		RestaurantID:    r.RestaurantID,
		TableID:         r.TableID,
		ReservationDate: r.ReservationDate.String(),
		StartTime:       r.StartTime,
		EndTime:         r.EndTime,
		GuestCount:      r.GuestCount,
		Status:          r.Status,
		OccurredAt:      at,
	}
}
