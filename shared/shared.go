package shared

import (
	"context"
	"crypto/sha256"
	"dinebook/shared/cache"
	"dinebook/shared/constant"
	"dinebook/shared/dto"
	"dinebook/shared/timezone"
	"encoding/json"
	"errors"
	"fmt"
	"reflect"
	"strconv"
	"strings"

	"github.com/lib/pq"
	"github.com/rs/zerolog/log"
)

// parseOptional returns nil for an empty or unparsable query value.
func parseOptional[T any](value string, parse func(string) (T, error)) *T {
	if value == "" {
		return nil
	}

	parsed, err := parse(value)
	if err != nil {
		log.Debug().Err(err).Str("value", value).Msg("ignoring malformed query value")

		return nil
	}

	return &parsed
}

func ConvertStringToBool(value string) *bool {
	return parseOptional(value, strconv.ParseBool)
}

func ConvertStringToInt(value string) *int {
	return parseOptional(value, strconv.Atoi)
}

func ConvertStringToFloat(value string) *float64 {
	return parseOptional(value, func(s string) (float64, error) {
		return strconv.ParseFloat(s, 64)
	})
}

// CalculateTotalPage is never below 1, so an empty listing still reports one page.
func CalculateTotalPage(total, limit int) int {
	if total <= 0 || limit <= 0 {
		return 1
	}

	return (total + limit - 1) / limit
}

// TransformFields turns a patch request into column updates. Only non-zero fields with a
// db tag are kept, so a nil pointer means "leave unchanged" and a pointer to a zero value
// clears the column. The modifier stamp is always added.
func TransformFields(data any, modifiedBy string) map[string]any {
	val := reflect.ValueOf(data)
	typ := val.Type()

	fields := make(map[string]any, val.NumField()+2)

	for index := range val.NumField() {
		column := typ.Field(index).Tag.Get("db")
		if column == "" || column == "-" {
			continue
		}

		if field := val.Field(index); !field.IsZero() {
			fields[column] = field.Interface()
		}
	}

	fields[constant.FieldModifiedAt] = timezone.Now()
	fields[constant.FieldModifiedBy] = modifiedBy

	return fields
}

func FilterByID(id, fieldID, table string) dto.FilterGroup {
	return dto.FilterGroup{
		Filters: []any{
			dto.Filter{
				Field:    fieldID,
				Value:    id,
				Operator: dto.FilterOperatorEq,
				Table:    table,
			},
		},
	}
}

// BuildCacheKey joins the prefix and parts with ":".
func BuildCacheKey(prefix string, parts ...string) string {
	if len(parts) == 0 {
		return prefix
	}

	return prefix + ":" + strings.Join(parts, ":")
}

// BuildCacheKeyWithQuery derives a stable key from the pagination params and filter of a list query.
func BuildCacheKeyWithQuery(prefix string, params dto.QueryParams, filter dto.FilterGroup) string {
	where, args := filter.GetWhereClause()

	raw, err := json.Marshal(struct {
		Params dto.QueryParams `json:"params"`
		Where  string          `json:"where"`
		Args   map[string]any  `json:"args"`
	}{params, where, args})
	if err != nil {
		log.Error().Err(err).Str("prefix", prefix).Msg("failed to marshal cache query")

		return prefix
	}

	return fmt.Sprintf("%s:%x", prefix, sha256.Sum256(raw))
}

// InvalidateCaches removes every key under the prefix. Errors are only logged.
func InvalidateCaches(ctx context.Context, c cache.RedisCache, prefix string) {
	if err := c.Clear(ctx, prefix+constant.Asterix); err != nil {
		log.Error().Err(err).Str("prefix", prefix).Msg("failed to invalidate caches")
	}
}

// UserID returns the authenticated user id stored by the auth middleware.
func UserID(ctx context.Context) string {
	user, _ := ctx.Value(constant.ContextKeyUserID).(string)

	return user
}

// UserEmail returns the email claim of the authenticated user.
func UserEmail(ctx context.Context) string {
	email, _ := ctx.Value(constant.ContextKeyUserEmail).(string)

	return email
}

func UserRole(ctx context.Context) string {
	role, _ := ctx.Value(constant.ContextKeyUserRole).(string)

	return role
}

// IsAdmin reports whether the authenticated caller holds an administrative role.
func IsAdmin(ctx context.Context) bool {
	role := UserRole(ctx)

	return role == constant.RoleAdmin || role == constant.RoleSuperAdmin
}

// IsPqError reports whether err wraps a Postgres error with the given SQLSTATE code.
func IsPqError(err error, code string) bool {
	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		return string(pqErr.Code) == code
	}

	return false
}
