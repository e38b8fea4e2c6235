package dto

import (
	"dinebook/internal/domains/restaurant/model"
	tableDto "dinebook/internal/domains/table/model/dto"
	"dinebook/shared"
	"dinebook/shared/constant"
	gDto "dinebook/shared/dto"
	gModel "dinebook/shared/model"
	"net/http"

	"github.com/google/uuid"
)

type CreateRestaurantRequest struct {
	Name           string  `json:"name"            validate:"required,min=2,max=150"`
	Description    string  `json:"description"     validate:"omitempty,max=2000"`
	Address        string  `json:"address"         validate:"required"`
	City           string  `json:"city"            validate:"required,max=100"`
	Phone          string  `json:"phone"           validate:"omitempty,max=30"`
	Email          string  `json:"email"           validate:"omitempty,email"`
	Cuisine        string  `json:"cuisine"         validate:"required,max=100"`
	PriceRange     int     `json:"price_range"     validate:"required,min=1,max=4"`
	OpeningTime    string  `json:"opening_time"    validate:"required,hhmm"`
	ClosingTime    string  `json:"closing_time"    validate:"required,hhmm"`
	ReservationFee float64 `json:"reservation_fee" validate:"gte=0"`
	IsActive       *bool   `json:"is_active,omitempty"`
}

func (r *CreateRestaurantRequest) ToModel(user string) model.Restaurant {
	active := true
	if r.IsActive != nil {
		active = *r.IsActive
	}

	return model.Restaurant{
		ID:             uuid.NewString(),
		Name:           r.Name,
		Description:    r.Description,
		Address:        r.Address,
		City:           r.City,
		Phone:          r.Phone,
		Email:          r.Email,
		Cuisine:        r.Cuisine,
		PriceRange:     r.PriceRange,
		OpeningTime:    r.OpeningTime,
		ClosingTime:    r.ClosingTime,
		ReservationFee: r.ReservationFee,
		IsActive:       active,
		Metadata:       gModel.NewMetadata(user),
	}
}

type UpdateRestaurantRequest struct {
	Name           *string  `db:"name"            json:"name,omitempty"            validate:"omitempty,min=2,max=150"`
	Description    *string  `db:"description"     json:"description,omitempty"     validate:"omitempty,max=2000"`
	Address        *string  `db:"address"         json:"address,omitempty"`
	City           *string  `db:"city"            json:"city,omitempty"            validate:"omitempty,max=100"`
	Phone          *string  `db:"phone"           json:"phone,omitempty"           validate:"omitempty,max=30"`
	Email          *string  `db:"email"           json:"email,omitempty"           validate:"omitempty,email"`
	Cuisine        *string  `db:"cuisine"         json:"cuisine,omitempty"         validate:"omitempty,max=100"`
	PriceRange     *int     `db:"price_range"     json:"price_range,omitempty"     validate:"omitempty,min=1,max=4"`
	OpeningTime    *string  `db:"opening_time"    json:"opening_time,omitempty"    validate:"omitempty,hhmm"`
	ClosingTime    *string  `db:"closing_time"    json:"closing_time,omitempty"    validate:"omitempty,hhmm"`
	ReservationFee *float64 `db:"reservation_fee" json:"reservation_fee,omitempty" validate:"omitempty,gte=0"`
	IsActive       *bool    `db:"is_active"       json:"is_active,omitempty"`
}

type RestaurantResponse struct {
	ID             string  `json:"id"`
	Name           string  `json:"name"`
	Description    string  `json:"description"`
	Address        string  `json:"address"`
	City           string  `json:"city"`
	Phone          string  `json:"phone"`
	Email          string  `json:"email"`
	Cuisine        string  `json:"cuisine"`
	PriceRange     int     `json:"price_range"`
	OpeningTime    string  `json:"opening_time"`
	ClosingTime    string  `json:"closing_time"`
	Rating         float64 `json:"rating"`
	ReviewCount    int     `json:"review_count"`
	TableCount     int     `json:"table_count"`
	ReservationFee float64 `json:"reservation_fee"`
	IsActive       bool    `json:"is_active"`
	gDto.Metadata
}

func (r *RestaurantResponse) FromModel(m model.Restaurant) {
	r.ID = m.ID
	r.Name = m.Name
	r.Description = m.Description
	r.Address = m.Address
	r.City = m.City
	r.Phone = m.Phone
	r.Email = m.Email
	r.Cuisine = m.Cuisine
	r.PriceRange = m.PriceRange
	r.OpeningTime = m.OpeningTime
	r.ClosingTime = m.ClosingTime
	r.Rating = m.Rating
	r.ReviewCount = m.ReviewCount
	r.TableCount = m.TableCount
	r.ReservationFee = m.ReservationFee
	r.IsActive = m.IsActive
	r.Metadata.FromModel(m.Metadata)
}

type RestaurantDetailResponse struct {
	RestaurantResponse
	Tables []tableDto.TableResponse `json:"tables"`
}

type GetRestaurantsResponse struct {
	Restaurants []RestaurantResponse `json:"restaurants"`
	TotalPage   int                  `json:"total_page"`
	TotalData   int                  `json:"total_data"`
}

func (r *GetRestaurantsResponse) FromModels(models []model.Restaurant, totalData, limit int) {
	r.TotalData = totalData
	r.TotalPage = shared.CalculateTotalPage(totalData, limit)

	r.Restaurants = make([]RestaurantResponse, len(models))
	for i, m := range models {
		r.Restaurants[i].FromModel(m)
	}
}

// ListFilter carries the search and availability filters of the restaurant listing.
type ListFilter struct {
	Name       string   `json:"name"`
	Location   string   `json:"location"`
	Category   string   `json:"category"`
	MinRating  *float64 `json:"min_rating"  validate:"omitempty,gte=0,lte=5"`
	PriceRange *int     `json:"price_range" validate:"omitempty,min=1,max=4"`
	Date       string   `json:"date"        validate:"omitempty,datetime=2006-01-02"`
	Time       string   `json:"time"        validate:"omitempty,hhmm"`
	EndTime    string   `json:"end_time"    validate:"omitempty,hhmm"`
	PartySize  int      `json:"party_size"  validate:"omitempty,gt=0"`
}

func (f *ListFilter) FromRequest(r *http.Request) {
	query := r.URL.Query()

	f.Name = query.Get(model.FieldName)
	f.Location = query.Get("location")
	f.Category = query.Get("category")
	f.MinRating = shared.ConvertStringToFloat(query.Get("min_rating"))
	f.PriceRange = shared.ConvertStringToInt(query.Get(model.FieldPriceRange))
	f.Date = query.Get(constant.RequestParamDate)
	f.Time = query.Get(constant.RequestParamTime)

	f.EndTime = query.Get(constant.RequestParamEndTimeAlt)
	if f.EndTime == constant.Empty {
		f.EndTime = query.Get(constant.RequestParamEndTime)
	}

	partySize := shared.ConvertStringToInt(query.Get(constant.RequestParamPartySizeAlt))
	if partySize == nil {
		partySize = shared.ConvertStringToInt(query.Get(constant.RequestParamPartySize))
	}

	if partySize != nil {
		f.PartySize = *partySize
	}
}

// HasAvailability reports whether the listing must be narrowed to restaurants with a free table.
func (f *ListFilter) HasAvailability() bool {
	return f.Date != constant.Empty && f.Time != constant.Empty
}

// ToFilterGroup builds the catalog part of the filter. Only active restaurants are listed.
func (f *ListFilter) ToFilterGroup() gDto.FilterGroup {
	group := gDto.FilterGroup{
		Operator: gDto.FilterGroupOperatorAnd,
		Filters: []any{
			gDto.Filter{
				Field:    model.FieldIsActive,
				Operator: gDto.FilterOperatorEq,
				Value:    true,
				Table:    model.TableName,
			},
		},
	}

	likes := map[string]string{
		model.FieldName:    f.Name,
		model.FieldCity:    f.Location,
		model.FieldCuisine: f.Category,
	}

	for _, field := range []string{model.FieldName, model.FieldCity, model.FieldCuisine} {
		if likes[field] == constant.Empty {
			continue
		}

		group.Filters = append(group.Filters, gDto.Filter{
			Field:    field,
			Operator: gDto.FilterOperatorLike,
			Value:    likes[field],
			Table:    model.TableName,
		})
	}

	if f.MinRating != nil {
		group.Filters = append(group.Filters, gDto.Filter{
			Field:    model.FieldRating,
			Operator: gDto.FilterOperatorGreaterEq,
			Value:    *f.MinRating,
			Table:    model.TableName,
		})
	}

	if f.PriceRange != nil {
		group.Filters = append(group.Filters, gDto.Filter{
			Field:    model.FieldPriceRange,
			Operator: gDto.FilterOperatorEq,
			Value:    *f.PriceRange,
			Table:    model.TableName,
		})
	}

	return group
}
