package dto

import (
	"dinebook/internal/domains/user/model"
	"dinebook/shared"
	"dinebook/shared/constant"
	gDto "dinebook/shared/dto"
	gModel "dinebook/shared/model"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"
)

type CreateUserRequest struct {
	Email        string  `json:"email"                   validate:"required,email"`
	Password     string  `json:"password"                validate:"required,min=8,max=72"`
	Level        string  `json:"level"                   validate:"omitempty,oneof=superadmin admin user"`
	FullName     *string `json:"full_name,omitempty"     validate:"omitempty,min=2,max=100"`
	PhoneNumber  *string `json:"phone_number,omitempty"  validate:"omitempty,max=30"`
	ProfileImage *string `json:"profile_image,omitempty" validate:"omitempty,url"`
	IsVerified   *bool   `json:"is_verified,omitempty"`
}

func (r *CreateUserRequest) ToModel(username string, hashedPassword string) model.User {
	level := r.Level
	if level == constant.Empty {
		level = constant.RoleUser
	}

	isVerified := false
	if r.IsVerified != nil {
		isVerified = *r.IsVerified
	}

	return model.User{
		ID:           uuid.NewString(),
		Email:        strings.ToLower(strings.TrimSpace(r.Email)),
		Password:     hashedPassword,
		Level:        level,
		FullName:     r.FullName,
		PhoneNumber:  r.PhoneNumber,
		ProfileImage: r.ProfileImage,
		IsVerified:   isVerified,
		Active:       true,
		Metadata:     gModel.NewMetadata(username),
	}
}

type UserResponse struct {
	ID           string     `json:"id"`
	Email        string     `json:"email"`
	Level        string     `json:"level"`
	FullName     *string    `json:"full_name,omitempty"`
	PhoneNumber  *string    `json:"phone_number,omitempty"`
	ProfileImage *string    `json:"profile_image,omitempty"`
	IsVerified   bool       `json:"is_verified"`
	LastLogin    *time.Time `json:"last_login,omitempty"`
	Active       bool       `json:"active"`
	gDto.Metadata
}

func (r *UserResponse) FromModel(model model.User) {
	r.ID = model.ID
	r.Email = model.Email
	r.Level = model.Level
	r.FullName = model.FullName
	r.PhoneNumber = model.PhoneNumber
	r.ProfileImage = model.ProfileImage
	r.IsVerified = model.IsVerified
	r.LastLogin = model.LastLogin
	r.Active = model.Active
	r.Metadata.FromModel(model.Metadata)
}

// UpdateUserRequest is the administrative update: role and account status.
type UpdateUserRequest struct {
	Level        *string `db:"level"         json:"level,omitempty"         validate:"omitempty,oneof=superadmin admin user"`
	FullName     *string `db:"full_name"     json:"full_name,omitempty"     validate:"omitempty,min=2,max=100"`
	PhoneNumber  *string `db:"phone_number"  json:"phone_number,omitempty"  validate:"omitempty,max=30"`
	ProfileImage *string `db:"profile_image" json:"profile_image,omitempty" validate:"omitempty,url"`
	IsVerified   *bool   `db:"is_verified"   json:"is_verified,omitempty"`
	Active       *bool   `db:"active"        json:"active,omitempty"`
}

// UpdateProfileRequest is what users may change about themselves.
// Avatar is a base64 data uri; once stored it replaces ProfileImage.
type UpdateProfileRequest struct {
	FullName     *string `db:"full_name"     json:"full_name,omitempty"     validate:"omitempty,min=2,max=100"`
	PhoneNumber  *string `db:"phone_number"  json:"phone_number,omitempty"  validate:"omitempty,max=30"`
	ProfileImage *string `db:"profile_image" json:"profile_image,omitempty" validate:"omitempty,url,excluded_with=Avatar"`
	Avatar       *string `json:"avatar,omitempty"                            validate:"omitempty,mimetypes=image/png image/jpg image/jpeg image/webp,maxfilesize=2"`
}

type GetUsersResponse struct {
	Users     []UserResponse `json:"users"`
	TotalPage int            `json:"total_page"`
	TotalData int            `json:"total_data"`
}

func (r *GetUsersResponse) FromModels(models []model.User, totalData, limit int) {
	r.TotalData = totalData
	r.TotalPage = shared.CalculateTotalPage(totalData, limit)

	r.Users = make([]UserResponse, len(models))
	for i, mod := range models {
		r.Users[i].FromModel(mod)
	}
}

// ListFilter narrows the administrative user listing.
type ListFilter struct {
	Email  string `json:"email"  validate:"omitempty,max=255"`
	Level  string `json:"level"  validate:"omitempty,oneof=superadmin admin user"`
	Active *bool  `json:"active"`
}

func (f *ListFilter) FromRequest(r *http.Request) {
	query := r.URL.Query()

	f.Email = query.Get(model.FieldEmail)
	f.Level = query.Get(model.FieldLevel)
	f.Active = shared.ConvertStringToBool(query.Get(model.FieldActive))
}

func (f *ListFilter) ToFilterGroup() gDto.FilterGroup {
	group := gDto.FilterGroup{Operator: gDto.FilterGroupOperatorAnd}

	if f.Email != constant.Empty {
		group.Filters = append(group.Filters, gDto.Filter{
			Field:    model.FieldEmail,
			Value:    f.Email,
			Operator: gDto.FilterOperatorLike,
			Table:    model.TableName,
		})
	}

	if f.Level != constant.Empty {
		group.Filters = append(group.Filters, gDto.Filter{
			Field:    model.FieldLevel,
			Value:    f.Level,
			Operator: gDto.FilterOperatorEq,
			Table:    model.TableName,
		})
	}

	if f.Active != nil {
		group.Filters = append(group.Filters, gDto.Filter{
			Field:    model.FieldActive,
			Value:    *f.Active,
			Operator: gDto.FilterOperatorEq,
			Table:    model.TableName,
		})
	}

	return group
}
