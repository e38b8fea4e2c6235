package dto

import (
	"dinebook/internal/domains/availability/model"
	"dinebook/shared"
	"dinebook/shared/constant"
	"net/http"
)

// WindowRequest is the availability query string. Both camelCase and snake_case keys are accepted.
type WindowRequest struct {
	Date      string `json:"date"       validate:"required,datetime=2006-01-02"`
	Time      string `json:"time"       validate:"required,hhmm"`
	EndTime   string `json:"end_time"   validate:"omitempty,hhmm"`
	PartySize int    `json:"party_size" validate:"omitempty,gt=0"`
}

func firstOf(r *http.Request, keys ...string) string {
	query := r.URL.Query()

	for _, key := range keys {
		if value := query.Get(key); value != constant.Empty {
			return value
		}
	}

	return constant.Empty
}

func (w *WindowRequest) FromRequest(r *http.Request) {
	w.Date = firstOf(r, constant.RequestParamDate)
	w.Time = firstOf(r, constant.RequestParamTime)
	w.EndTime = firstOf(r, constant.RequestParamEndTime, constant.RequestParamEndTimeAlt)

	if size := shared.ConvertStringToInt(firstOf(r, constant.RequestParamPartySize, constant.RequestParamPartySizeAlt)); size != nil {
		w.PartySize = *size
	}
}

// ToQuery scopes the window to a restaurant. endTime is the resolved end of the window.
func (w *WindowRequest) ToQuery(restaurantID, endTime string) model.Query {
	return model.Query{
		RestaurantID: restaurantID,
		Date:         w.Date,
		StartTime:    w.Time,
		EndTime:      endTime,
		MinCapacity:  w.PartySize,
	}
}

type TableAvailabilityResponse struct {
	Date   string                    `json:"date"`
	Time   string                    `json:"time"`
	End    string                    `json:"end_time"`
	Tables []model.TableAvailability `json:"tables"`
}

type AvailableTablesResponse struct {
	Date     string   `json:"date"`
	Time     string   `json:"time"`
	End      string   `json:"end_time"`
	TableIDs []string `json:"table_ids"`
}

// FloorRequest is the floor-plan query string. The window is optional and only flags overlapping bookings.
type FloorRequest struct {
	Date    string `json:"date"     validate:"required,datetime=2006-01-02"`
	Time    string `json:"time"     validate:"omitempty,hhmm"`
	EndTime string `json:"end_time" validate:"omitempty,hhmm"`
}

func (f *FloorRequest) FromRequest(r *http.Request) {
	f.Date = firstOf(r, constant.RequestParamDate)
	f.Time = firstOf(r, constant.RequestParamTime)
	f.EndTime = firstOf(r, constant.RequestParamEndTime, constant.RequestParamEndTimeAlt)
}

func (f *FloorRequest) ToQuery(restaurantID, endTime string) model.Query {
	return model.Query{
		RestaurantID: restaurantID,
		Date:         f.Date,
		StartTime:    f.Time,
		EndTime:      endTime,
	}
}

type TablesWithReservationsResponse struct {
	Date   string                    `json:"date"`
	Time   string                    `json:"time,omitempty"`
	End    string                    `json:"end_time,omitempty"`
	Tables []model.TableReservations `json:"tables"`
}
