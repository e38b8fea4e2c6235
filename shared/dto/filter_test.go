package dto_test

import (
	"dinebook/shared/dto"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFilter_GetWhereClause(t *testing.T) {
	tests := []struct {
		name      string
		filter    dto.Filter
		wantWhere string
		wantArgs  map[string]any
	}{
		{
			name:      "equality with table",
			filter:    dto.Filter{Field: "city", Value: "Lisbon", Operator: dto.FilterOperatorEq, Table: "restaurants"},
			wantWhere: "restaurants.city = :city",
			wantArgs:  map[string]any{"city": "Lisbon"},
		},
		{
			name:      "bind name override",
			filter:    dto.Filter{ArgName: "min_guests", Field: "capacity", Value: 4, Operator: dto.FilterOperatorGreaterEq},
			wantWhere: "capacity >= :min_guests",
			wantArgs:  map[string]any{"min_guests": 4},
		},
		{
			name:      "not equal",
			filter:    dto.Filter{Field: "status", Value: "cancelled", Operator: dto.FilterOperatorNotEq},
			wantWhere: "status <> :status",
			wantArgs:  map[string]any{"status": "cancelled"},
		},
		{
			name:      "strict bounds",
			filter:    dto.Filter{Field: "price_range", Value: 3, Operator: dto.FilterOperatorLess},
			wantWhere: "price_range < :price_range",
			wantArgs:  map[string]any{"price_range": 3},
		},
		{
			name:      "like escapes wildcards",
			filter:    dto.Filter{Field: "name", Value: "50%_off", Operator: dto.FilterOperatorLike},
			wantWhere: "name ILIKE :name",
			wantArgs:  map[string]any{"name": `%50\%\_off%`},
		},
		{
			name:      "in expands slice",
			filter:    dto.Filter{Field: "status", Value: []string{"pending", "confirmed"}, Operator: dto.FilterOperatorIn},
			wantWhere: "status IN (:status_0, :status_1)",
			wantArgs:  map[string]any{"status_0": "pending", "status_1": "confirmed"},
		},
		{
			name:      "in with scalar",
			filter:    dto.Filter{Field: "id", Value: "r-1", Operator: dto.FilterOperatorIn},
			wantWhere: "id IN (:id)",
			wantArgs:  map[string]any{"id": "r-1"},
		},
		{
			name:      "empty in matches nothing",
			filter:    dto.Filter{Field: "id", Value: []string{}, Operator: dto.FilterOperatorIn},
			wantWhere: "FALSE",
			wantArgs:  map[string]any{},
		},
		{
			name:      "empty not in matches everything",
			filter:    dto.Filter{Field: "id", Value: []string{}, Operator: dto.FilterOperatorNotIn},
			wantWhere: "TRUE",
			wantArgs:  map[string]any{},
		},
		{
			name:      "is null",
			filter:    dto.Filter{Field: "cancelled_at", Operator: dto.FilterOperatorIsNull, Table: "reservations"},
			wantWhere: "reservations.cancelled_at IS NULL",
			wantArgs:  map[string]any{},
		},
		{
			name:      "raw",
			filter:    dto.Filter{Value: "rating > 4", Operator: dto.FilterOperatorRaw},
			wantWhere: "(rating > 4)",
			wantArgs:  map[string]any{},
		},
		{
			name:      "unknown operator",
			filter:    dto.Filter{Field: "name", Value: "x", Operator: "between"},
			wantWhere: "",
			wantArgs:  map[string]any{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			where, args := tt.filter.GetWhereClause()

			assert.Equal(t, tt.wantWhere, where)
			assert.Equal(t, tt.wantArgs, args)
		})
	}
}

func TestFilterGroup_GetWhereClause(t *testing.T) {
	t.Run("nested groups", func(t *testing.T) {
		group := dto.FilterGroup{
			Operator: dto.FilterGroupOperatorAnd,
			Filters: []any{
				dto.Filter{Field: "is_active", Value: true, Operator: dto.FilterOperatorEq},
				dto.FilterGroup{
					Operator: dto.FilterGroupOperatorOr,
					Filters: []any{
						dto.Filter{Field: "city", Value: "Porto", Operator: dto.FilterOperatorEq},
						dto.Filter{Field: "cuisine", Value: "seafood", Operator: dto.FilterOperatorEq},
					},
				},
			},
		}

		where, args := group.GetWhereClause()

		assert.Equal(t, "(is_active = :is_active AND (city = :city OR cuisine = :cuisine))", where)
		assert.Len(t, args, 3)
	})

	t.Run("empty and unknown entries skipped", func(t *testing.T) {
		group := dto.FilterGroup{Filters: []any{"not a filter", dto.FilterGroup{}}}

		where, args := group.GetWhereClause()

		assert.Empty(t, where)
		assert.Empty(t, args)
	})

	t.Run("operator defaults to and", func(t *testing.T) {
		group := dto.FilterGroup{Filters: []any{
			dto.Filter{Field: "a", Value: 1, Operator: dto.FilterOperatorEq},
			dto.Filter{Field: "b", Value: 2, Operator: dto.FilterOperatorEq},
		}}

		where, _ := group.GetWhereClause()

		assert.Equal(t, "(a = :a AND b = :b)", where)
	})
}

func TestFilterGroup_And(t *testing.T) {
	base := dto.FilterGroup{Filters: []any{dto.Filter{Field: "id", Value: "r-1", Operator: dto.FilterOperatorEq}}}
	extra := dto.Filter{Field: "status", Value: "pending", Operator: dto.FilterOperatorEq}

	joined := base.And(extra)

	assert.Len(t, base.Filters, 1)
	assert.Len(t, joined.Filters, 2)
	assert.Equal(t, dto.FilterGroupOperatorAnd, joined.Operator)

	or := dto.FilterGroup{Operator: dto.FilterGroupOperatorOr, Filters: base.Filters}
	wrapped := or.And(extra)

	where, _ := wrapped.GetWhereClause()
	assert.Equal(t, "((id = :id) AND status = :status)", where)
}
