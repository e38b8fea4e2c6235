package reservation_test

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"go.uber.org/mock/gomock"

	otelMocks "dinebook/infras/otel/mocks"
	"dinebook/internal/domains/reservation/model"
	"dinebook/internal/domains/reservation/model/dto"
	"dinebook/internal/domains/reservation/service"
	"dinebook/internal/domains/reservation/service/mocks"
	"dinebook/internal/handlers/reservation"
)

const (
	reservationID = "0f6e5d4c-3b2a-4190-8f7e-6d5c4b3a2910"
	restaurantID  = "5b0f3f0e-2d56-4c8e-9a53-6f5d8d1f0a01"
	tableID       = "8c1d2e3f-4a5b-4c6d-8e7f-901a2b3c4d5e"
)

func newRouter(t *testing.T) (*mocks.MockReservation, http.Handler) {
	t.Helper()

	svc := mocks.NewMockReservation(gomock.NewController(t))
	handler := reservation.New(svc, otelMocks.NewOtel())

	router := chi.NewRouter()
	handler.Router(router)

	return svc, router
}

func serve(router http.Handler, method, path, body string) *httptest.ResponseRecorder {
	recorder := httptest.NewRecorder()
	router.ServeHTTP(recorder, httptest.NewRequest(method, path, strings.NewReader(body)))

	return recorder
}

func bookingBody() string {
	return `{"restaurant_id":"` + restaurantID + `","table_id":"` + tableID + `",` +
		`"reservation_date":"2025-06-01","start_time":"19:00","end_time":"21:00","guest_count":2}`
}

func TestCreateReservation(t *testing.T) {
	t.Run("created", func(t *testing.T) {
		svc, router := newRouter(t)

		svc.EXPECT().Create(gomock.Any(), dto.CreateReservationRequest{
			RestaurantID:    restaurantID,
			TableID:         tableID,
			ReservationDate: "2025-06-01",
			StartTime:       "19:00",
			EndTime:         "21:00",
			GuestCount:      2,
		}).Return(dto.CreateReservationResponse{ID: reservationID}, nil)

		rec := serve(router, http.MethodPost, "/reservations", bookingBody())

		assert.Equal(t, http.StatusCreated, rec.Code)
		assert.JSONEq(t, `{"data":{"id":"`+reservationID+`"}}`, rec.Body.String())
	})

	t.Run("slot conflict", func(t *testing.T) {
		svc, router := newRouter(t)

		svc.EXPECT().Create(gomock.Any(), gomock.Any()).Return(dto.CreateReservationResponse{}, service.ErrSlotConflict)

		rec := serve(router, http.MethodPost, "/reservations", bookingBody())

		assert.Equal(t, http.StatusConflict, rec.Code)
		assert.JSONEq(t, `{"error":"the table is not available at the requested time","reason":"slot_conflict"}`, rec.Body.String())
	})

	t.Run("invalid window never reaches the service", func(t *testing.T) {
		_, router := newRouter(t)

		rec := serve(router, http.MethodPost, "/reservations", strings.Replace(bookingBody(), `"19:00"`, `"7pm"`, 1))

		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("unknown payment method", func(t *testing.T) {
		_, router := newRouter(t)

		rec := serve(router, http.MethodPost, "/reservations", strings.Replace(bookingBody(), `"guest_count":2`, `"guest_count":2,"payment_method":"cheque"`, 1))

		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})
}

func TestConfirm(t *testing.T) {
	token := strings.Repeat("ab", 32)

	t.Run("confirmed", func(t *testing.T) {
		svc, router := newRouter(t)

		svc.EXPECT().Confirm(gomock.Any(), token).Return(dto.ReservationResponse{ID: reservationID, Status: model.StatusConfirmed}, nil)

		rec := serve(router, http.MethodGet, "/reservations/confirm/"+token, "")

		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Contains(t, rec.Body.String(), `"status":"confirmed"`)
	})

	t.Run("unknown token", func(t *testing.T) {
		svc, router := newRouter(t)

		svc.EXPECT().Confirm(gomock.Any(), "stale").Return(dto.ReservationResponse{}, service.ErrTokenNotFound)

		rec := serve(router, http.MethodGet, "/reservations/confirm/stale", "")

		assert.Equal(t, http.StatusNotFound, rec.Code)
		assert.JSONEq(t, `{"error":"confirmation token not found","reason":"token_not_found"}`, rec.Body.String())
	})
}

func TestReservationByID(t *testing.T) {
	t.Run("malformed id is a bad request", func(t *testing.T) {
		_, router := newRouter(t)

		for _, path := range []string{
			"/reservations/42",
			"/reservations/not-a-uuid/cancel",
			"/reservations/42/payment",
			"/restaurants/abc/reservations",
		} {
			method := http.MethodGet
			if strings.HasSuffix(path, "/cancel") {
				method = http.MethodPost
			} else if strings.HasSuffix(path, "/payment") {
				method = http.MethodPatch
			}

			rec := serve(router, method, path, `{}`)

			assert.Equal(t, http.StatusBadRequest, rec.Code, path)
			assert.Contains(t, rec.Body.String(), "id must be a valid UUID", path)
		}
	})

	t.Run("get", func(t *testing.T) {
		svc, router := newRouter(t)

		svc.EXPECT().Get(gomock.Any(), reservationID).Return(dto.ReservationResponse{ID: reservationID}, nil)

		rec := serve(router, http.MethodGet, "/reservations/"+reservationID, "")

		assert.Equal(t, http.StatusOK, rec.Code)
	})

	t.Run("cancel after completion", func(t *testing.T) {
		svc, router := newRouter(t)

		svc.EXPECT().Cancel(gomock.Any(), reservationID).Return(service.ErrTerminalState)

		rec := serve(router, http.MethodPost, "/reservations/"+reservationID+"/cancel", "")

		assert.Equal(t, http.StatusConflict, rec.Code)
		assert.Contains(t, rec.Body.String(), `"reason":"terminal_state"`)
	})

	t.Run("moved onto a taken slot", func(t *testing.T) {
		svc, router := newRouter(t)

		start := "20:00"

		svc.EXPECT().Update(gomock.Any(), reservationID, dto.UpdateReservationRequest{StartTime: &start}).Return(service.ErrSlotConflict)

		rec := serve(router, http.MethodPatch, "/reservations/"+reservationID, `{"start_time":"20:00"}`)

		assert.Equal(t, http.StatusConflict, rec.Code)
		assert.Contains(t, rec.Body.String(), `"reason":"slot_conflict"`)
	})

	t.Run("payment update", func(t *testing.T) {
		svc, router := newRouter(t)

		paid := model.PaymentStatusPaid

		svc.EXPECT().UpdatePayment(gomock.Any(), reservationID, dto.UpdatePaymentRequest{PaymentStatus: &paid}).Return(nil)

		rec := serve(router, http.MethodPatch, "/reservations/"+reservationID+"/payment", `{"payment_status":"paid"}`)

		assert.Equal(t, http.StatusOK, rec.Code)
		assert.JSONEq(t, `{"message":"Reservation payment updated"}`, rec.Body.String())
	})

	t.Run("payment update by a guest", func(t *testing.T) {
		svc, router := newRouter(t)

		svc.EXPECT().UpdatePayment(gomock.Any(), reservationID, gomock.Any()).Return(service.ErrAdminOnly)

		rec := serve(router, http.MethodPatch, "/reservations/"+reservationID+"/payment", `{"payment_method":"card"}`)

		assert.Equal(t, http.StatusForbidden, rec.Code)
		assert.Contains(t, rec.Body.String(), `"reason":"admin_only"`)
	})
}
