package shared_test

import (
	"context"
	"dinebook/shared"
	"dinebook/shared/constant"
	"dinebook/shared/dto"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConvertString(t *testing.T) {
	t.Run("bool", func(t *testing.T) {
		assert.Nil(t, shared.ConvertStringToBool(""))
		assert.Nil(t, shared.ConvertStringToBool("maybe"))

		got := shared.ConvertStringToBool("false")
		require.NotNil(t, got)
		assert.False(t, *got)
	})

	t.Run("int", func(t *testing.T) {
		assert.Nil(t, shared.ConvertStringToInt("four"))

		got := shared.ConvertStringToInt("4")
		require.NotNil(t, got)
		assert.Equal(t, 4, *got)
	})

	t.Run("float", func(t *testing.T) {
		assert.Nil(t, shared.ConvertStringToFloat(""))

		got := shared.ConvertStringToFloat("4.5")
		require.NotNil(t, got)
		assert.InDelta(t, 4.5, *got, 0.0001)
	})
}

func TestCalculateTotalPage(t *testing.T) {
	tests := []struct {
		total, limit, want int
	}{
		{total: 0, limit: 10, want: 1},
		{total: 5, limit: 0, want: 1},
		{total: 10, limit: 10, want: 1},
		{total: 11, limit: 10, want: 2},
		{total: 95, limit: 20, want: 5},
	}

	for _, tt := range tests {
		t.Run(fmt.Sprintf("%d/%d", tt.total, tt.limit), func(t *testing.T) {
			assert.Equal(t, tt.want, shared.CalculateTotalPage(tt.total, tt.limit))
		})
	}
}

func TestTransformFields(t *testing.T) {
	type patch struct {
		Name       *string  `db:"name"`
		Capacity   *int     `db:"capacity"`
		Rating     *float64 `db:"rating"`
		Label      string   `db:"label"`
		Note       string
		Derived    string  `db:"-"`
		Unassigned *string `db:"description"`
	}

	name := "Sea Breeze"
	zero := 0

	fields := shared.TransformFields(patch{Name: &name, Capacity: &zero, Note: "ignored", Derived: "ignored"}, "admin-1")

	assert.Equal(t, &name, fields["name"])
	assert.Equal(t, &zero, fields["capacity"], "a pointer to zero is an explicit update")
	assert.NotContains(t, fields, "rating")
	assert.NotContains(t, fields, "label")
	assert.NotContains(t, fields, "description")
	assert.NotContains(t, fields, "-")
	assert.Equal(t, "admin-1", fields[constant.FieldModifiedBy])
	assert.IsType(t, time.Time{}, fields[constant.FieldModifiedAt])
	assert.Len(t, fields, 4)
}

func TestFilterByID(t *testing.T) {
	group := shared.FilterByID("r-1", "id", "restaurants")

	where, args := group.GetWhereClause()

	assert.Equal(t, "(restaurants.id = :id)", where)
	assert.Equal(t, map[string]any{"id": "r-1"}, args)
}

func TestBuildCacheKey(t *testing.T) {
	assert.Equal(t, "restaurant:get", shared.BuildCacheKey("restaurant:get"))
	assert.Equal(t, "availability:r-1:2025-01-01", shared.BuildCacheKey("availability", "r-1", "2025-01-01"))
}

func TestBuildCacheKeyWithQuery(t *testing.T) {
	params := dto.QueryParams{Page: 1, Limit: 10}
	filter := shared.FilterByID("abc", "id", "restaurants")

	first := shared.BuildCacheKeyWithQuery("restaurant:gets", params, filter)

	assert.Equal(t, first, shared.BuildCacheKeyWithQuery("restaurant:gets", params, filter))
	assert.NotEqual(t, first, shared.BuildCacheKeyWithQuery("restaurant:gets", dto.QueryParams{Page: 2, Limit: 10}, filter))
	assert.NotEqual(t, first, shared.BuildCacheKeyWithQuery("restaurant:gets", params, shared.FilterByID("xyz", "id", "restaurants")))
}

func TestCallerFromContext(t *testing.T) {
	ctx := context.Background()
	ctx = context.WithValue(ctx, constant.ContextKeyUserID, "user-1")
	ctx = context.WithValue(ctx, constant.ContextKeyUserEmail, "diner@example.com")
	ctx = context.WithValue(ctx, constant.ContextKeyUserRole, constant.RoleUser)

	assert.Equal(t, "user-1", shared.UserID(ctx))
	assert.Equal(t, "diner@example.com", shared.UserEmail(ctx))
	assert.Equal(t, constant.RoleUser, shared.UserRole(ctx))
	assert.Empty(t, shared.UserID(context.Background()))
}

func TestIsAdmin(t *testing.T) {
	tests := []struct {
		role string
		want bool
	}{
		{role: constant.RoleSuperAdmin, want: true},
		{role: constant.RoleAdmin, want: true},
		{role: constant.RoleUser, want: false},
		{role: "", want: false},
	}

	for _, tt := range tests {
		ctx := context.WithValue(context.Background(), constant.ContextKeyUserRole, tt.role)

		assert.Equal(t, tt.want, shared.IsAdmin(ctx), "role %q", tt.role)
	}
}

func TestIsPqError(t *testing.T) {
	wrapped := fmt.Errorf("failed to insert data (review): %w", &pq.Error{Code: "23505"})

	assert.True(t, shared.IsPqError(wrapped, constant.PqErrorCodeUniqueViolation))
	assert.False(t, shared.IsPqError(wrapped, constant.PqErrorCodeFkViolation))
	assert.False(t, shared.IsPqError(errors.New("plain"), constant.PqErrorCodeUniqueViolation))
}
