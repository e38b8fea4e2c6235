package dto

import (
	"dinebook/internal/domains/pricing"
	"dinebook/internal/domains/reservation/model"
	"dinebook/shared"
	"dinebook/shared/constant"
	gDto "dinebook/shared/dto"
	gModel "dinebook/shared/model"
	"dinebook/shared/timezone"
	"net/http"
	"strings"
	"time"
	"unicode"

	"github.com/google/uuid"
)

type CreateReservationRequest struct {
	RestaurantID    string `json:"restaurant_id"    validate:"required,uuid"`
	TableID         string `json:"table_id"         validate:"required,uuid"`
	ReservationDate string `json:"reservation_date" validate:"required,datetime=2006-01-02"`
	StartTime       string `json:"start_time"       validate:"required,hhmm"`
	EndTime         string `json:"end_time"         validate:"required,hhmm"`
	GuestCount      int    `json:"guest_count"      validate:"required,gt=0,lte=50"`
	PromoCode       string `json:"promo_code"       validate:"omitempty,max=50"`
	SpecialRequests string `json:"special_requests" validate:"omitempty,max=1000"`
	Email           string `json:"email"            validate:"omitempty,email"`
	PhoneNumber     string `json:"phone_number"     validate:"omitempty,max=30"`
	CardNumber      string `json:"card_number"      validate:"omitempty,min=12,max=23"`
	PaymentMethod   string `json:"payment_method"   validate:"omitempty,oneof=cash card"`
}

// Method resolves the payment method, cash unless the request asks for card.
func (r *CreateReservationRequest) Method() string {
	if r.PaymentMethod == constant.Empty {
		return model.PaymentMethodCash
	}

	return r.PaymentMethod
}

// ToModel builds a pending reservation. Only the last four digits of the card are kept,
// and a card booking is recorded as paid.
func (r *CreateReservationRequest) ToModel(userID, fallbackEmail string) model.Reservation {
	email := r.Email
	if email == constant.Empty {
		email = fallbackEmail
	}

	paymentStatus := model.PaymentStatusPending
	if r.Method() == model.PaymentMethodCard {
		paymentStatus = model.PaymentStatusPaid
	}

	return model.Reservation{
		ID:              uuid.NewString(),
		UserID:          userID,
		RestaurantID:    r.RestaurantID,
		TableID:         r.TableID,
		ReservationDate: gModel.Date(r.ReservationDate),
		StartTime:       r.StartTime,
		EndTime:         r.EndTime,
		GuestCount:      r.GuestCount,
		Status:          model.StatusPending,
		SpecialRequests: r.SpecialRequests,
		Email:           email,
		PhoneNumber:     r.PhoneNumber,
		PromoCode:       strings.TrimSpace(r.PromoCode),
		CardLastFour:    LastFour(r.CardNumber),
		PaymentMethod:   r.Method(),
		PaymentStatus:   paymentStatus,
		Metadata:        gModel.NewMetadata(userID),
	}
}

// LastFour returns the last four digits of a card number, ignoring separators.
func LastFour(cardNumber string) string {
	digits := make([]rune, 0, len(cardNumber))

	for _, r := range cardNumber {
		if unicode.IsDigit(r) {
			digits = append(digits, r)
		}
	}

	if len(digits) < 4 {
		return constant.Empty
	}

	return string(digits[len(digits)-4:])
}

// ApplyPricing copies a price breakdown onto the reservation.
func ApplyPricing(r *model.Reservation, b pricing.Breakdown) {
	r.BaseFee = b.BaseFee
	r.PersonFee = b.PersonFee
	r.ServiceFee = b.ServiceFee
	r.DiscountAmount = b.DiscountAmount
	r.DiscountPercentage = b.DiscountPercentage
	r.TotalPrice = b.Total
}

// PricingFields is the column set written when a reservation is repriced.
func PricingFields(b pricing.Breakdown) map[string]any {
	return map[string]any{
		model.FieldBaseFee:            b.BaseFee,
		model.FieldPersonFee:          b.PersonFee,
		model.FieldServiceFee:         b.ServiceFee,
		model.FieldDiscountAmount:     b.DiscountAmount,
		model.FieldDiscountPercentage: b.DiscountPercentage,
		model.FieldTotalPrice:         b.Total,
	}
}

type UpdateReservationRequest struct {
	TableID         *string `db:"table_id"         json:"table_id,omitempty"         validate:"omitempty,uuid"`
	ReservationDate *string `db:"reservation_date" json:"reservation_date,omitempty" validate:"omitempty,datetime=2006-01-02"`
	StartTime       *string `db:"start_time"       json:"start_time,omitempty"       validate:"omitempty,hhmm"`
	EndTime         *string `db:"end_time"         json:"end_time,omitempty"         validate:"omitempty,hhmm"`
	GuestCount      *int    `db:"guest_count"      json:"guest_count,omitempty"      validate:"omitempty,gt=0,lte=50"`
	SpecialRequests *string `db:"special_requests" json:"special_requests,omitempty" validate:"omitempty,max=1000"`
	Email           *string `db:"email"            json:"email,omitempty"            validate:"omitempty,email"`
	PhoneNumber     *string `db:"phone_number"     json:"phone_number,omitempty"     validate:"omitempty,max=30"`
}

// Apply returns a copy of r with the requested changes.
func (u *UpdateReservationRequest) Apply(r model.Reservation) model.Reservation {
	if u.TableID != nil {
		r.TableID = *u.TableID
	}

	if u.ReservationDate != nil {
		r.ReservationDate = gModel.Date(*u.ReservationDate)
	}

	if u.StartTime != nil {
		r.StartTime = *u.StartTime
	}

	if u.EndTime != nil {
		r.EndTime = *u.EndTime
	}

	if u.GuestCount != nil {
		r.GuestCount = *u.GuestCount
	}

	if u.SpecialRequests != nil {
		r.SpecialRequests = *u.SpecialRequests
	}

	if u.Email != nil {
		r.Email = *u.Email
	}

	if u.PhoneNumber != nil {
		r.PhoneNumber = *u.PhoneNumber
	}

	return r
}

// UpdatePaymentRequest is the administrative payment change.
type UpdatePaymentRequest struct {
	PaymentMethod *string `db:"payment_method" json:"payment_method,omitempty" validate:"omitempty,oneof=cash card"`
	PaymentStatus *string `db:"payment_status" json:"payment_status,omitempty" validate:"omitempty,oneof=pending paid refunded"`
}

type QuoteRequest struct {
	GuestCount int    `json:"guest_count" validate:"required,gt=0,lte=50"`
	PromoCode  string `json:"promo_code"  validate:"omitempty,max=50"`
}

type QuoteResponse struct {
	pricing.Breakdown
	PromoCode string `json:"promo_code,omitempty"`
}

type CreateReservationResponse struct {
	ID string `json:"id"`
}

type ReservationResponse struct {
	ID                 string  `json:"id"`
	UserID             string  `json:"user_id"`
	RestaurantID       string  `json:"restaurant_id"`
	TableID            string  `json:"table_id"`
	ReservationDate    string  `json:"reservation_date"`
	StartTime          string  `json:"start_time"`
	EndTime            string  `json:"end_time"`
	GuestCount         int     `json:"guest_count"`
	Status             string  `json:"status"`
	SpecialRequests    string  `json:"special_requests"`
	Email              string  `json:"email"`
	PhoneNumber        string  `json:"phone_number"`
	AwaitsConfirmation bool    `json:"awaits_confirmation"`
	TokenExpiresAt     string  `json:"token_expires_at,omitempty"`
	ConfirmedAt        string  `json:"confirmed_at,omitempty"`
	CancelledAt        string  `json:"cancelled_at,omitempty"`
	CompletedAt        string  `json:"completed_at,omitempty"`
	BaseFee            float64 `json:"base_fee"`
	PersonFee          float64 `json:"person_fee"`
	ServiceFee         float64 `json:"service_fee"`
	DiscountAmount     float64 `json:"discount_amount"`
	DiscountPercentage float64 `json:"discount_percentage"`
	TotalPrice         float64 `json:"total_price"`
	PromoCode          string  `json:"promo_code"`
	CardLastFour       string  `json:"card_last_four"`
	ReceiptURL         string  `json:"receipt_url"`
	PaymentMethod      string  `json:"payment_method"`
	PaymentStatus      string  `json:"payment_status"`
	gDto.Metadata
}

func formatOptional(t *time.Time) string {
	if t == nil {
		return constant.Empty
	}

	return timezone.Format(*t, constant.DateFormat)
}

// FromModel never exposes the confirmation token; it only travels by email.
func (r *ReservationResponse) FromModel(m model.Reservation) {
	r.ID = m.ID
	r.UserID = m.UserID
	r.RestaurantID = m.RestaurantID
	r.TableID = m.TableID
	r.ReservationDate = m.ReservationDate.String()
	r.StartTime = m.StartTime
	r.EndTime = m.EndTime
	r.GuestCount = m.GuestCount
	r.Status = m.Status
	r.SpecialRequests = m.SpecialRequests
	r.Email = m.Email
	r.PhoneNumber = m.PhoneNumber
	r.AwaitsConfirmation = m.Status == model.StatusPending && m.HasToken()
	r.TokenExpiresAt = formatOptional(m.TokenExpiresAt)
	r.ConfirmedAt = formatOptional(m.ConfirmedAt)
	r.CancelledAt = formatOptional(m.CancelledAt)
	r.CompletedAt = formatOptional(m.CompletedAt)
	r.BaseFee = m.BaseFee
	r.PersonFee = m.PersonFee
	r.ServiceFee = m.ServiceFee
	r.DiscountAmount = m.DiscountAmount
	r.DiscountPercentage = m.DiscountPercentage
	r.TotalPrice = m.TotalPrice
	r.PromoCode = m.PromoCode
	r.CardLastFour = m.CardLastFour
	r.ReceiptURL = m.ReceiptURL
	r.PaymentMethod = m.PaymentMethod
	r.PaymentStatus = m.PaymentStatus
	r.Metadata.FromModel(m.Metadata)
}

type GetReservationsResponse struct {
	Reservations []ReservationResponse `json:"reservations"`
	TotalPage    int                   `json:"total_page"`
	TotalData    int                   `json:"total_data"`
}

func (r *GetReservationsResponse) FromModels(models []model.Reservation, totalData, limit int) {
	r.TotalData = totalData
	r.TotalPage = shared.CalculateTotalPage(totalData, limit)

	r.Reservations = make([]ReservationResponse, len(models))
	for i, m := range models {
		r.Reservations[i].FromModel(m)
	}
}

// Receipt is the document archived for a confirmed reservation.
type Receipt struct {
	ReservationID      string  `json:"reservation_id"`
	RestaurantID       string  `json:"restaurant_id"`
	TableID            string  `json:"table_id"`
	ReservationDate    string  `json:"reservation_date"`
	StartTime          string  `json:"start_time"`
	EndTime            string  `json:"end_time"`
	GuestCount         int     `json:"guest_count"`
	BaseFee            float64 `json:"base_fee"`
	PersonFee          float64 `json:"person_fee"`
	ServiceFee         float64 `json:"service_fee"`
	DiscountPercentage float64 `json:"discount_percentage"`
	DiscountAmount     float64 `json:"discount_amount"`
	TotalPrice         float64 `json:"total_price"`
	PromoCode          string  `json:"promo_code,omitempty"`
	CardLastFour       string  `json:"card_last_four,omitempty"`
	PaymentMethod      string  `json:"payment_method"`
	PaymentStatus      string  `json:"payment_status"`
	ConfirmedAt        string  `json:"confirmed_at"`
}

func NewReceipt(m model.Reservation) Receipt {
	return Receipt{
		ReservationID:      m.ID,
		RestaurantID:       m.RestaurantID,
		TableID:            m.TableID,
		ReservationDate:    m.ReservationDate.String(),
		StartTime:          m.StartTime,
		EndTime:            m.EndTime,
		GuestCount:         m.GuestCount,
		BaseFee:            m.BaseFee,
		PersonFee:          m.PersonFee,
		ServiceFee:         m.ServiceFee,
		DiscountPercentage: m.DiscountPercentage,
		DiscountAmount:     m.DiscountAmount,
		TotalPrice:         m.TotalPrice,
		PromoCode:          m.PromoCode,
		CardLastFour:       m.CardLastFour,
		PaymentMethod:      m.PaymentMethod,
		PaymentStatus:      m.PaymentStatus,
		ConfirmedAt:        formatOptional(m.ConfirmedAt),
	}
}

// ListFilter narrows reservation listings.
type ListFilter struct {
	Status       string `json:"status"        validate:"omitempty,oneof=pending confirmed cancelled completed"`
	Date         string `json:"date"          validate:"omitempty,datetime=2006-01-02"`
	RestaurantID string `json:"restaurant_id" validate:"omitempty,uuid"`
}

func (f *ListFilter) FromRequest(r *http.Request) {
	query := r.URL.Query()

	f.Status = query.Get(model.FieldStatus)
	f.Date = query.Get(constant.RequestParamDate)
	f.RestaurantID = query.Get(model.FieldRestaurantID)
}

// ToFilterGroup combines the listing filters with an optional owner.
func (f *ListFilter) ToFilterGroup(userID string) gDto.FilterGroup {
	group := gDto.FilterGroup{Operator: gDto.FilterGroupOperatorAnd}

	fields := []struct {
		field string
		value string
	}{
		{model.FieldUserID, userID},
		{model.FieldStatus, f.Status},
		{model.FieldRestaurantID, f.RestaurantID},
		{model.FieldReservationDate, f.Date},
	}

	for _, fv := range fields {
		if fv.value == constant.Empty {
			continue
		}

		group.Filters = append(group.Filters, gDto.Filter{
			Field:    fv.field,
			Operator: gDto.FilterOperatorEq,
			Value:    fv.value,
			Table:    model.TableName,
		})
	}

	return group
}
