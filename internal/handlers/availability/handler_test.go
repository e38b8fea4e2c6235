package availability_test

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"go.uber.org/mock/gomock"

	"dinebook/config"
	otelMocks "dinebook/infras/otel/mocks"
	"dinebook/internal/domains/availability/model"
	"dinebook/internal/domains/availability/service"
	"dinebook/internal/domains/availability/service/mocks"
	"dinebook/internal/handlers/availability"
)

const restaurantID = "5b0f3f0e-2d56-4c8e-9a53-6f5d8d1f0a01"

func newRouter(t *testing.T) (*mocks.MockAvailability, http.Handler) {
	t.Helper()

	svc := mocks.NewMockAvailability(gomock.NewController(t))

	cfg := &config.Config{}
	cfg.Reservation.DefaultDurationMinutes = 120

	handler := availability.New(svc, cfg, otelMocks.NewOtel())

	router := chi.NewRouter()
	handler.Router(router)

	return svc, router
}

func get(router http.Handler, path string) *httptest.ResponseRecorder {
	recorder := httptest.NewRecorder()
	router.ServeHTTP(recorder, httptest.NewRequest(http.MethodGet, path, nil))

	return recorder
}

func TestGetTablesWithReservations(t *testing.T) {
	path := "/restaurants/" + restaurantID + "/tables/reservations"

	t.Run("whole day", func(t *testing.T) {
		svc, router := newRouter(t)

		svc.EXPECT().TablesWithReservations(gomock.Any(), model.Query{RestaurantID: restaurantID, Date: "2025-06-01"}).
			Return([]model.TableReservations{{
				ID:          "table-1",
				TableNumber: "A1",
				Reservations: []model.BookedSlot{
					{ID: "res-1", TableID: "table-1", StartTime: "18:00", EndTime: "20:00", Status: "confirmed", GuestCount: 2},
				},
			}}, nil)

		rec := get(router, path+"?date=2025-06-01")

		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Contains(t, rec.Body.String(), `"reservations":[{"id":"res-1","start_time":"18:00","end_time":"20:00","status":"confirmed","guest_count":2,"overlaps_window":false}]`)
		assert.NotContains(t, rec.Body.String(), `"time"`)
	})

	t.Run("window defaults its end to the standard sitting", func(t *testing.T) {
		svc, router := newRouter(t)

		svc.EXPECT().TablesWithReservations(gomock.Any(), model.Query{
			RestaurantID: restaurantID,
			Date:         "2025-06-01",
			StartTime:    "18:30",
			EndTime:      "20:30",
		}).Return([]model.TableReservations{}, nil)

		rec := get(router, path+"?date=2025-06-01&time=18:30")

		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Contains(t, rec.Body.String(), `"end_time":"20:30"`)
	})

	t.Run("date is required", func(t *testing.T) {
		_, router := newRouter(t)

		rec := get(router, path)

		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("inverted window", func(t *testing.T) {
		svc, router := newRouter(t)

		svc.EXPECT().TablesWithReservations(gomock.Any(), gomock.Any()).Return(nil, service.ErrInvalidWindow)

		rec := get(router, path+"?date=2025-06-01&time=20:00&endTime=18:00")

		assert.Equal(t, http.StatusBadRequest, rec.Code)
		assert.Contains(t, rec.Body.String(), `"reason":"invalid_time_window"`)
	})

	t.Run("malformed restaurant id", func(t *testing.T) {
		_, router := newRouter(t)

		rec := get(router, "/restaurants/42/tables/reservations?date=2025-06-01")

		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})
}

func TestCheckAvailability_MissingTime(t *testing.T) {
	_, router := newRouter(t)

	rec := get(router, "/restaurants/"+restaurantID+"/tables/availability?date=2025-06-01")

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}
