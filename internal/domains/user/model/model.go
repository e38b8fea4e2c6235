package model

import (
	"dinebook/shared/constant"
	"dinebook/shared/model"
	"time"
)

const (
	TableName  = "users"
	EntityName = "user"

	FieldID           = "id"
	FieldEmail        = "email"
	FieldPassword     = "password"
	FieldLevel        = "level"
	FieldFullName     = "full_name"
	FieldPhoneNumber  = "phone_number"
	FieldProfileImage = "profile_image"
	FieldIsVerified   = "is_verified"
	FieldLastLogin    = "last_login"
	FieldActive       = "active"
)

var SortableFields = []string{FieldEmail, FieldFullName, FieldLevel, FieldLastLogin, "created_at"}

// User is an account. Level is one of the constant.Role* values; diners are "user".
type User struct {
	ID           string     `db:"id"`
	Email        string     `db:"email"`
	Password     string     `db:"password"`
	Level        string     `db:"level"`
	FullName     *string    `db:"full_name"`
	PhoneNumber  *string    `db:"phone_number"`
	ProfileImage *string    `db:"profile_image"`
	IsVerified   bool       `db:"is_verified"`
	LastLogin    *time.Time `db:"last_login"`
	Active       bool       `db:"active"`
	model.Metadata
}

// Found reports whether the row was loaded; the repository returns a zero User on no match.
func (u User) Found() bool {
	return u.ID != constant.Empty
}

// CanGrant reports whether a caller with actorRole may create or promote an account to level.
// Only a superadmin hands out the superadmin role.
func CanGrant(actorRole, level string) bool {
	return level != constant.RoleSuperAdmin || actorRole == constant.RoleSuperAdmin
}
