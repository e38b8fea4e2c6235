package dto

import (
	"dinebook/internal/domains/review/model"
	"dinebook/shared"
	gDto "dinebook/shared/dto"
	gModel "dinebook/shared/model"
	"strings"

	"github.com/google/uuid"
)

type CreateReviewRequest struct {
	Rating  int    `json:"rating"  validate:"required,min=1,max=5"`
	Comment string `json:"comment" validate:"omitempty,max=2000"`
}

func (r *CreateReviewRequest) ToModel(restaurantID, userID string) model.Review {
	return model.Review{
		ID:           uuid.NewString(),
		UserID:       userID,
		RestaurantID: restaurantID,
		Rating:       r.Rating,
		Comment:      strings.TrimSpace(r.Comment),
		Metadata:     gModel.NewMetadata(userID),
	}
}

type UpdateReviewRequest struct {
	Rating  *int    `db:"rating"  json:"rating,omitempty"  validate:"omitempty,min=1,max=5"`
	Comment *string `db:"comment" json:"comment,omitempty" validate:"omitempty,max=2000"`
}

type ReviewResponse struct {
	ID           string `json:"id"`
	UserID       string `json:"user_id"`
	RestaurantID string `json:"restaurant_id"`
	Rating       int    `json:"rating"`
	Comment      string `json:"comment"`
	gDto.Metadata
}

func (r *ReviewResponse) FromModel(m model.Review) {
	r.ID = m.ID
	r.UserID = m.UserID
	r.RestaurantID = m.RestaurantID
	r.Rating = m.Rating
	r.Comment = m.Comment
	r.Metadata.FromModel(m.Metadata)
}

type GetReviewsResponse struct {
	Reviews   []ReviewResponse `json:"reviews"`
	TotalPage int              `json:"total_page"`
	TotalData int              `json:"total_data"`
}

func (r *GetReviewsResponse) FromModels(models []model.Review, totalData, limit int) {
	r.TotalData = totalData
	r.TotalPage = shared.CalculateTotalPage(totalData, limit)

	r.Reviews = make([]ReviewResponse, len(models))
	for i, m := range models {
		r.Reviews[i].FromModel(m)
	}
}
