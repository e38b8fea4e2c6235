package repository

import (
	"context"
	"database/sql"
	"dinebook/infras/otel"
	"dinebook/infras/postgres"
	"dinebook/shared/constant"
	"dinebook/shared/dto"
	"dinebook/shared/logger"
	"errors"
	"fmt"
	"maps"
	"reflect"
	"slices"
	"strings"

	"github.com/jmoiron/sqlx"
)

var (
	ErrFilterRequired = errors.New("filter required for destructive statement")
	ErrNothingToSet   = errors.New("no column to update")
)

// Repository is the CRUD base embedded by every table-backed domain repository.
// T must be a struct whose db tags name the table columns, embedded structs included.
type Repository[T any] struct {
	db            *postgres.Connection
	otel          otel.Otel
	table         string
	entity        string
	primaryColumn string
	columns       []string
}

func NewRepository[T any](entityName, tableName, primaryColumn string, dbConnection *postgres.Connection, otl otel.Otel) Repository[T] {
	var zero T

	return Repository[T]{
		db:            dbConnection,
		otel:          otl,
		table:         tableName,
		entity:        entityName,
		primaryColumn: primaryColumn,
		columns:       dbColumns(reflect.TypeOf(zero)),
	}
}

func (repo *Repository[T]) scope(ctx context.Context, op string) (context.Context, otel.Scope) {
	return repo.otel.NewScope(ctx, constant.OtelRepositoryScopeName, fmt.Sprintf("%s.%s.%s", constant.OtelRepositoryScopeName, repo.entity, op))
}

func (repo *Repository[T]) fail(scope otel.Scope, action string, err error) error {
	logger.ErrorWithStack(err)
	scope.TraceError(err)

	return fmt.Errorf("failed to %s (%s): %w", action, repo.entity, err)
}

func (repo *Repository[T]) insertStatement() string {
	binds := make([]string, len(repo.columns))
	for i, col := range repo.columns {
		binds[i] = ":" + col
	}

	return fmt.Sprintf("INSERT INTO %s (%s) VALUES (%s)", repo.table, strings.Join(repo.columns, ", "), strings.Join(binds, ", "))
}

func (repo *Repository[T]) insert(ctx context.Context, ext sqlx.ExtContext, op string, model T) error {
	ctx, scope := repo.scope(ctx, op)
	defer scope.End()

	query := repo.insertStatement()
	scope.SetAttribute(constant.OtelQueryAttributeKey, query)

	if _, err := sqlx.NamedExecContext(ctx, ext, query, model); err != nil {
		return repo.fail(scope, "insert data", err)
	}

	return nil
}

func (repo *Repository[T]) Insert(ctx context.Context, model T) error {
	return repo.insert(ctx, repo.db.Write, "Insert", model)
}

func (repo *Repository[T]) InsertTx(ctx context.Context, tx *sqlx.Tx, model T) error {
	return repo.insert(ctx, tx, "InsertTx", model)
}

// whereClause renders filter with a leading WHERE, or nothing when the filter is empty.
func whereClause(filter dto.FilterGroup) (string, map[string]any) {
	where, args := filter.GetWhereClause()
	if where == "" {
		return "", args
	}

	return " WHERE " + where, args
}

// read binds named args for the read replica and hands the positional query to fn.
func (repo *Repository[T]) read(ctx context.Context, scope otel.Scope, query string, args map[string]any, fn func(query string, args []any) error) error {
	scope.SetAttribute(constant.OtelQueryAttributeKey, query)

	bound, positional, err := repo.db.Read.BindNamed(query, args)
	if err != nil {
		return fmt.Errorf("bind %s query: %w", repo.entity, err)
	}

	return fn(bound, positional)
}

func (repo *Repository[T]) Exist(ctx context.Context, filter dto.FilterGroup) (exist bool, err error) {
	ctx, scope := repo.scope(ctx, "Exist")
	defer scope.End()

	where, args := whereClause(filter)
	if where == "" {
		return false, ErrFilterRequired
	}

	query := fmt.Sprintf("SELECT EXISTS (SELECT 1 FROM %s%s)", repo.table, where)

	err = repo.read(ctx, scope, query, args, func(q string, a []any) error {
		return sqlx.GetContext(ctx, repo.db.Read, &exist, q, a...)
	})
	if err != nil {
		return false, repo.fail(scope, "check existence", err)
	}

	return exist, nil
}

func (repo *Repository[T]) selectList(columns []string) string {
	picked := repo.columns
	if len(columns) > 0 {
		picked = slices.DeleteFunc(slices.Clone(repo.columns), func(col string) bool {
			return !slices.Contains(columns, col)
		})
	}

	qualified := make([]string, len(picked))
	for i, col := range picked {
		qualified[i] = repo.table + "." + col
	}

	return strings.Join(qualified, ", ")
}

// Get returns the zero T when nothing matches.
func (repo *Repository[T]) Get(ctx context.Context, filter dto.FilterGroup, columns ...string) (T, error) {
	ctx, scope := repo.scope(ctx, "Get")
	defer scope.End()

	var model T

	where, args := whereClause(filter)
	query := fmt.Sprintf("SELECT %s FROM %s%s LIMIT 1", repo.selectList(columns), repo.table, where)

	err := repo.read(ctx, scope, query, args, func(q string, a []any) error {
		return sqlx.GetContext(ctx, repo.db.Read, &model, q, a...)
	})
	if errors.Is(err, sql.ErrNoRows) {
		return model, nil
	}

	if err != nil {
		return model, repo.fail(scope, "get data", err)
	}

	return model, nil
}

// page renders ORDER BY and LIMIT/OFFSET. SortBy must already be restricted by the caller.
func page(params dto.QueryParams, args map[string]any) string {
	var clause string

	if params.SortBy != "" {
		dir := params.SortDir
		if dir != dto.SortDirDesc {
			dir = dto.SortDirAsc
		}

		clause = fmt.Sprintf(" ORDER BY %s %s", params.SortBy, dir)
	}

	if params.Limit <= 0 {
		return clause
	}

	args["limit"] = params.Limit
	clause += " LIMIT :limit"

	if offset := params.Offset(); offset > 0 {
		args["offset"] = offset
		clause += " OFFSET :offset"
	}

	return clause
}

func (repo *Repository[T]) GetAll(ctx context.Context, params dto.QueryParams, filter dto.FilterGroup, columns ...string) ([]T, error) {
	ctx, scope := repo.scope(ctx, "GetAll")
	defer scope.End()

	where, args := whereClause(filter)
	query := fmt.Sprintf("SELECT %s FROM %s%s%s", repo.selectList(columns), repo.table, where, page(params, args))

	models := []T{}

	err := repo.read(ctx, scope, query, args, func(q string, a []any) error {
		return sqlx.SelectContext(ctx, repo.db.Read, &models, q, a...)
	})
	if err != nil {
		return nil, repo.fail(scope, "get all data", err)
	}

	return models, nil
}

func (repo *Repository[T]) Count(ctx context.Context, filter dto.FilterGroup) (count int, err error) {
	ctx, scope := repo.scope(ctx, "Count")
	defer scope.End()

	where, args := whereClause(filter)
	query := fmt.Sprintf("SELECT COUNT(%s.%s) FROM %s%s", repo.table, repo.primaryColumn, repo.table, where)

	err = repo.read(ctx, scope, query, args, func(q string, a []any) error {
		return sqlx.GetContext(ctx, repo.db.Read, &count, q, a...)
	})
	if err != nil {
		return 0, repo.fail(scope, "count data", err)
	}

	return count, nil
}

func (repo *Repository[T]) delete(ctx context.Context, ext sqlx.ExtContext, op string, filter dto.FilterGroup) error {
	ctx, scope := repo.scope(ctx, op)
	defer scope.End()

	where, args := whereClause(filter)
	if where == "" {
		return ErrFilterRequired
	}

	query := fmt.Sprintf("DELETE FROM %s%s", repo.table, where)
	scope.SetAttribute(constant.OtelQueryAttributeKey, query)

	if _, err := sqlx.NamedExecContext(ctx, ext, query, args); err != nil {
		return repo.fail(scope, "delete data", err)
	}

	return nil
}

func (repo *Repository[T]) Delete(ctx context.Context, filter dto.FilterGroup) error {
	return repo.delete(ctx, repo.db.Write, "Delete", filter)
}

// updateStatement binds new values as set_<column> so they never collide with filter arguments.
func (repo *Repository[T]) updateStatement(fields map[string]any, filter dto.FilterGroup) (string, map[string]any, error) {
	if len(fields) == 0 {
		return "", nil, ErrNothingToSet
	}

	where, args := whereClause(filter)
	if where == "" {
		return "", nil, ErrFilterRequired
	}

	columns := slices.Sorted(maps.Keys(fields))
	set := make([]string, len(columns))

	for i, col := range columns {
		name := "set_" + col
		set[i] = fmt.Sprintf("%s = :%s", col, name)
		args[name] = fields[col]
	}

	return fmt.Sprintf("UPDATE %s SET %s%s", repo.table, strings.Join(set, ", "), where), args, nil
}

func (repo *Repository[T]) update(ctx context.Context, ext sqlx.ExtContext, op string, fields map[string]any, filter dto.FilterGroup) (int64, error) {
	ctx, scope := repo.scope(ctx, op)
	defer scope.End()

	query, args, err := repo.updateStatement(fields, filter)
	if err != nil {
		return 0, err
	}

	scope.SetAttribute(constant.OtelQueryAttributeKey, query)

	result, err := sqlx.NamedExecContext(ctx, ext, query, args)
	if err != nil {
		return 0, repo.fail(scope, "update data", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return 0, repo.fail(scope, "read affected rows", err)
	}

	scope.SetAttribute("db.rows_affected", affected)

	return affected, nil
}

func (repo *Repository[T]) Update(ctx context.Context, fields map[string]any, filter dto.FilterGroup) error {
	_, err := repo.update(ctx, repo.db.Write, "Update", fields, filter)

	return err
}

// UpdateAffected is Update for compare-and-set callers that need to know whether a row matched.
func (repo *Repository[T]) UpdateAffected(ctx context.Context, fields map[string]any, filter dto.FilterGroup) (int64, error) {
	return repo.update(ctx, repo.db.Write, "UpdateAffected", fields, filter)
}

func (repo *Repository[T]) UpdateAffectedTx(ctx context.Context, tx *sqlx.Tx, fields map[string]any, filter dto.FilterGroup) (int64, error) {
	return repo.update(ctx, tx, "UpdateAffectedTx", fields, filter)
}

func dbColumns(t reflect.Type) []string {
	var columns []string

	for i := range t.NumField() {
		field := t.Field(i)

		if field.Anonymous && field.Type.Kind() == reflect.Struct {
			columns = append(columns, dbColumns(field.Type)...)

			continue
		}

		if tag := field.Tag.Get("db"); tag != "" && tag != "-" {
			columns = append(columns, tag)
		}
	}

	return columns
}
