package dto

import (
	"fmt"
	"maps"
	"reflect"
	"slices"
	"strings"
)

const (
	FilterOperatorEq        = "eq"
	FilterOperatorNotEq     = "not_eq"
	FilterOperatorLike      = "like"
	FilterOperatorIn        = "in"
	FilterOperatorNotIn     = "not_in"
	FilterOperatorLess      = "less"
	FilterOperatorLessEq    = "less_eq"
	FilterOperatorGreater   = "greater"
	FilterOperatorGreaterEq = "greater_eq"
	FilterOperatorIsNull    = "is_null"
	FilterOperatorIsNotNull = "is_not_null"
	// FilterOperatorRaw embeds Value verbatim. Never feed it request input.
	FilterOperatorRaw = "raw"
)

const (
	FilterGroupOperatorAnd = "AND"
	FilterGroupOperatorOr  = "OR"
)

var comparisonOperators = map[string]string{
	FilterOperatorEq:        "=",
	FilterOperatorNotEq:     "<>",
	FilterOperatorLess:      "<",
	FilterOperatorLessEq:    "<=",
	FilterOperatorGreater:   ">",
	FilterOperatorGreaterEq: ">=",
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

// WhereClauser renders a fragment for a sqlx named query.
type WhereClauser interface {
	GetWhereClause() (string, map[string]any)
}

type Filter struct {
	// ArgName overrides the bind name, needed when one column appears twice in a group.
	ArgName  string
	Field    string
	Value    any
	Operator string `validate:"required,oneof=eq not_eq like in not_in less less_eq greater greater_eq is_null is_not_null"`
	Table    string
}

func (f Filter) column() string {
	if f.Table == "" {
		return f.Field
	}

	return f.Table + "." + f.Field
}

func (f Filter) bindName() string {
	if f.ArgName != "" {
		return f.ArgName
	}

	return f.Field
}

func (f Filter) GetWhereClause() (string, map[string]any) {
	column, name := f.column(), f.bindName()

	if op, ok := comparisonOperators[f.Operator]; ok {
		return fmt.Sprintf("%s %s :%s", column, op, name), map[string]any{name: f.Value}
	}

	switch f.Operator {
	case FilterOperatorLike:
		pattern := "%" + likeEscaper.Replace(fmt.Sprint(f.Value)) + "%"

		return fmt.Sprintf("%s ILIKE :%s", column, name), map[string]any{name: pattern}
	case FilterOperatorIn:
		return f.membership(column, name, "IN", "FALSE")
	case FilterOperatorNotIn:
		return f.membership(column, name, "NOT IN", "TRUE")
	case FilterOperatorIsNull:
		return column + " IS NULL", map[string]any{}
	case FilterOperatorIsNotNull:
		return column + " IS NOT NULL", map[string]any{}
	case FilterOperatorRaw:
		query, _ := f.Value.(string)

		return "(" + query + ")", map[string]any{}
	}

	return "", map[string]any{}
}

// membership binds every element separately; an empty list collapses to a constant.
func (f Filter) membership(column, name, keyword, empty string) (string, map[string]any) {
	args := map[string]any{}

	val := reflect.ValueOf(f.Value)
	if val.Kind() != reflect.Slice && val.Kind() != reflect.Array {
		args[name] = f.Value

		return fmt.Sprintf("%s %s (:%s)", column, keyword, name), args
	}

	if val.Len() == 0 {
		return empty, args
	}

	binds := make([]string, val.Len())

	for idx := range val.Len() {
		key := fmt.Sprintf("%s_%d", name, idx)
		args[key] = val.Index(idx).Interface()
		binds[idx] = ":" + key
	}

	return fmt.Sprintf("%s %s (%s)", column, keyword, strings.Join(binds, ", ")), args
}

// FilterGroup joins Filters, which may hold Filter or nested FilterGroup values, with Operator.
type FilterGroup struct {
	Filters  []any
	Operator string
}

func (g FilterGroup) GetWhereClause() (string, map[string]any) {
	args := map[string]any{}
	parts := make([]string, 0, len(g.Filters))

	for _, item := range g.Filters {
		clauser, ok := item.(WhereClauser)
		if !ok {
			continue
		}

		where, arg := clauser.GetWhereClause()
		if where == "" {
			continue
		}

		parts = append(parts, where)
		maps.Copy(args, arg)
	}

	if len(parts) == 0 {
		return "", args
	}

	operator := g.Operator
	if operator == "" {
		operator = FilterGroupOperatorAnd
	}

	return "(" + strings.Join(parts, " "+operator+" ") + ")", args
}

// And appends a filter to the group and returns it.
func (g FilterGroup) And(filter any) FilterGroup {
	if g.Operator == "" {
		g.Operator = FilterGroupOperatorAnd
	}

	if g.Operator == FilterGroupOperatorAnd {
		g.Filters = append(slices.Clone(g.Filters), filter)

		return g
	}

	return FilterGroup{Operator: FilterGroupOperatorAnd, Filters: []any{g, filter}}
}
