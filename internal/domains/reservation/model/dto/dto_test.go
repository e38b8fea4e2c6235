package dto_test

import (
	"dinebook/internal/domains/pricing"
	"dinebook/internal/domains/reservation/model"
	"dinebook/internal/domains/reservation/model/dto"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestLastFour(t *testing.T) {
	tests := map[string]string{
		"4242 4242 4242 4242": "4242",
		"5555-5555-5555-4444": "4444",
		"123":                 "",
		"":                    "",
	}

	for in, want := range tests {
		assert.Equal(t, want, dto.LastFour(in), in)
	}
}

func TestCreateReservationRequest_ToModel(t *testing.T) {
	req := dto.CreateReservationRequest{
		RestaurantID:    "rest-1",
		TableID:         "table-1",
		ReservationDate: "2025-06-14",
		StartTime:       "19:00",
		EndTime:         "21:00",
		GuestCount:      2,
		PromoCode:       "  SPRING20 ",
		CardNumber:      "4242 4242 4242 4242",
	}

	r := req.ToModel("user-1", "ana@example.com")

	assert.NotEmpty(t, r.ID)
	assert.Equal(t, model.StatusPending, r.Status)
	assert.Equal(t, "ana@example.com", r.Email, "falls back to the account email")
	assert.Equal(t, "SPRING20", r.PromoCode)
	assert.Equal(t, "4242", r.CardLastFour)
	assert.Equal(t, "2025-06-14", r.ReservationDate.String())
	assert.Equal(t, "user-1", r.CreatedBy)
}

func TestUpdateReservationRequest_Apply(t *testing.T) {
	guests, start := 6, "18:30"
	req := dto.UpdateReservationRequest{GuestCount: &guests, StartTime: &start}

	original := model.Reservation{TableID: "table-1", StartTime: "19:00", EndTime: "21:00", GuestCount: 2}
	updated := req.Apply(original)

	assert.Equal(t, 6, updated.GuestCount)
	assert.Equal(t, "18:30", updated.StartTime)
	assert.Equal(t, "21:00", updated.EndTime)
	assert.Equal(t, 2, original.GuestCount, "the input is not modified")
}

func TestApplyPricing(t *testing.T) {
	var r model.Reservation

	dto.ApplyPricing(&r, pricing.Breakdown{BaseFee: 10, PersonFee: 15, ServiceFee: 1.25, DiscountAmount: 5.25, DiscountPercentage: 20, Total: 21})

	assert.InDelta(t, 21, r.TotalPrice, 0.001)
	assert.InDelta(t, 5.25, r.DiscountAmount, 0.001)
	assert.Len(t, dto.PricingFields(pricing.Breakdown{}), 6)
}

func TestReservationResponse_HidesToken(t *testing.T) {
	token := "secret-token"

	var res dto.ReservationResponse
	res.FromModel(model.Reservation{ID: "res-1", Status: model.StatusPending, ConfirmationToken: &token})

	assert.True(t, res.AwaitsConfirmation)
	assert.Empty(t, res.ConfirmedAt)
}

func TestListFilter(t *testing.T) {
	filter := dto.ListFilter{}
	filter.FromRequest(httptest.NewRequest("GET", "/v1/reservations?status=confirmed&date=2025-06-14", nil))

	where, args := filter.ToFilterGroup("user-1").GetWhereClause()

	assert.Equal(t,
		"(reservations.user_id = :user_id AND reservations.status = :status AND reservations.reservation_date = :reservation_date)",
		where,
	)
	assert.Equal(t, map[string]any{"user_id": "user-1", "status": "confirmed", "reservation_date": "2025-06-14"}, args)

	empty := dto.ListFilter{}
	where, _ = empty.ToFilterGroup("").GetWhereClause()
	assert.Empty(t, where)
}

func TestNewReceipt(t *testing.T) {
	confirmedAt := time.Date(2025, 6, 1, 18, 5, 0, 0, time.UTC)

	receipt := dto.NewReceipt(model.Reservation{
		ID:           "res-1",
		GuestCount:   4,
		TotalPrice:   21,
		CardLastFour: "4242",
		ConfirmedAt:  &confirmedAt,
	})

	assert.Equal(t, "res-1", receipt.ReservationID)
	assert.Equal(t, 4, receipt.GuestCount)
	assert.Equal(t, "4242", receipt.CardLastFour)
	assert.NotEmpty(t, receipt.ConfirmedAt)
	assert.Empty(t, dto.NewReceipt(model.Reservation{}).ConfirmedAt)
}
