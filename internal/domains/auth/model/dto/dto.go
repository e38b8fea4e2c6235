package dto

import (
	"dinebook/infras/jwt"
	userModel "dinebook/internal/domains/user/model"
	userDto "dinebook/internal/domains/user/model/dto"
	"dinebook/shared/constant"
	gModel "dinebook/shared/model"
	"strings"
	"time"

	"github.com/google/uuid"
)

type RegisterRequest struct {
	Email       string  `json:"email"                  validate:"required,email"`
	Password    string  `json:"password"               validate:"required,min=8,max=72"`
	FullName    *string `json:"full_name,omitempty"    validate:"omitempty,min=2,max=100"`
	PhoneNumber *string `json:"phone_number,omitempty" validate:"omitempty,max=30"`
}

// ToUserModel builds an active, unverified diner that records itself as creator.
func (r RegisterRequest) ToUserModel(hashedPassword string) userModel.User {
	id := uuid.NewString()

	return userModel.User{
		ID:          id,
		Email:       strings.ToLower(strings.TrimSpace(r.Email)),
		Password:    hashedPassword,
		Level:       constant.RoleUser,
		FullName:    r.FullName,
		PhoneNumber: r.PhoneNumber,
		Active:      true,
		Metadata:    gModel.NewMetadata(id),
	}
}

type LoginRequest struct {
	Email    string `json:"email"    validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type RefreshTokenRequest struct {
	RefreshToken string `json:"refresh_token" validate:"required"`
}

type ChangePasswordRequest struct {
	CurrentPassword string `json:"current_password" validate:"required"`
	NewPassword     string `json:"new_password"     validate:"required,min=8,max=72,nefield=CurrentPassword"`
}

// Tokens is the wire form of an issued pair. ExpiresIn is the access token lifetime in seconds.
type Tokens struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
	TokenType    string `json:"token_type"`
	ExpiresIn    int64  `json:"expires_in"`
}

func (t *Tokens) FromTokenPair(pair *jwt.TokenPair) {
	*t = Tokens{
		AccessToken:  pair.AccessToken,
		RefreshToken: pair.RefreshToken,
		TokenType:    pair.TokenType,
		ExpiresIn:    pair.ExpiresIn,
	}
}

type LoginResponse struct {
	Tokens
	User userDto.UserResponse `json:"user"`
}

type RefreshTokenResponse struct {
	Tokens
}

// column patches applied through shared.TransformFields

type UpdateLastLoginRequest struct {
	LastLogin time.Time `db:"last_login"`
}

type UpdatePasswordRequest struct {
	Password string `db:"password"`
}
