package repository

//go:generate go run go.uber.org/mock/mockgen -source=./repository.go -destination=../mocks/repository_mock.go -package=mocks

import (
	"context"
	"dinebook/infras/otel"
	"dinebook/infras/postgres"
	"dinebook/internal/domains/availability/model"
	"dinebook/shared/constant"
	"dinebook/shared/logger"
	"fmt"

	"github.com/jmoiron/sqlx"
)

const entityName = "availability"

// conflictPredicate matches a non-cancelled reservation of table t on :date whose
// window overlaps [:start_time, :end_time). Touching boundaries do not overlap.
const conflictPredicate = `
	r.table_id = t.id
	AND r.reservation_date = CAST(:date AS DATE)
	AND r.status <> 'cancelled'
	AND r.start_time COLLATE "C" < :end_time
	AND :start_time < r.end_time COLLATE "C"
	AND (CAST(:exclude_id AS TEXT) = '' OR CAST(r.id AS TEXT) <> :exclude_id)`

type Availability interface {
	CountConflicts(ctx context.Context, query model.Query) (int, error)
	CountConflictsTx(ctx context.Context, tx *sqlx.Tx, query model.Query) (int, error)
	AvailableTableIDs(ctx context.Context, query model.Query) ([]string, error)
	TablesWithAvailability(ctx context.Context, query model.Query) ([]model.TableAvailability, error)
	RestaurantIDsWithFreeTable(ctx context.Context, query model.Query) ([]string, error)
	FloorTables(ctx context.Context, query model.Query) ([]model.TableReservations, error)
	BookedSlots(ctx context.Context, query model.Query) ([]model.BookedSlot, error)
}

type repositoryImpl struct {
	db   *postgres.Connection
	otel otel.Otel
}

func New(db *postgres.Connection, otel otel.Otel) Availability {
	return &repositoryImpl{
		db:   db,
		otel: otel,
	}
}

func args(query model.Query) map[string]any {
	return map[string]any{
		"restaurant_id": query.RestaurantID,
		"table_id":      query.TableID,
		"date":          query.Date,
		"start_time":    query.StartTime,
		"end_time":      query.EndTime,
		"min_capacity":  query.MinCapacity,
		"exclude_id":    query.ExcludeReservationID,
	}
}

func (repo *repositoryImpl) countConflicts(ctx context.Context, exec sqlx.ExtContext, query model.Query) (int, error) {
	ctx, scope := repo.otel.NewScope(ctx, constant.OtelRepositoryScopeName, constant.OtelRepositoryScopeName+"."+entityName+".countConflicts")
	defer scope.End()

	stmt := `SELECT COUNT(*) FROM reservations r
		JOIN restaurant_tables t ON t.id = r.table_id
		WHERE t.id = :table_id AND ` + conflictPredicate
	scope.SetAttribute(constant.OtelQueryAttributeKey, stmt)

	bound, params, err := exec.BindNamed(stmt, args(query))
	if err != nil {
		return 0, fmt.Errorf("failed to bind conflict query: %w", err)
	}

	var count int

	if err = sqlx.GetContext(ctx, exec, &count, bound, params...); err != nil {
		logger.ErrorWithStack(err)
		scope.TraceError(err)

		return 0, fmt.Errorf("failed to count conflicting reservations: %w", err)
	}

	return count, nil
}

func (repo *repositoryImpl) CountConflicts(ctx context.Context, query model.Query) (int, error) {
	return repo.countConflicts(ctx, repo.db.Read, query)
}

func (repo *repositoryImpl) CountConflictsTx(ctx context.Context, tx *sqlx.Tx, query model.Query) (int, error) {
	return repo.countConflicts(ctx, tx, query)
}

func (repo *repositoryImpl) selectNamed(ctx context.Context, span, stmt string, query model.Query, dest any) error {
	ctx, scope := repo.otel.NewScope(ctx, constant.OtelRepositoryScopeName, constant.OtelRepositoryScopeName+"."+entityName+"."+span)
	defer scope.End()

	scope.SetAttribute(constant.OtelQueryAttributeKey, stmt)

	prepare, err := repo.db.Read.PrepareNamedContext(ctx, stmt)
	if err != nil {
		logger.ErrorWithStack(err)
		scope.TraceError(err)

		return fmt.Errorf("failed to prepare statement (%s): %w", entityName, err)
	}
	defer prepare.Close()

	if err = prepare.SelectContext(ctx, dest, args(query)); err != nil {
		logger.ErrorWithStack(err)
		scope.TraceError(err)

		return fmt.Errorf("failed to query %s: %w", entityName, err)
	}

	return nil
}

// AvailableTableIDs is the set difference of the restaurant's active tables with enough
// capacity and the tables holding a conflicting reservation.
func (repo *repositoryImpl) AvailableTableIDs(ctx context.Context, query model.Query) ([]string, error) {
	stmt := `
		SELECT CAST(t.id AS TEXT) FROM restaurant_tables t
		WHERE t.restaurant_id = :restaurant_id AND t.is_active
			AND (:min_capacity = 0 OR t.capacity >= :min_capacity)
		EXCEPT
		SELECT CAST(t.id AS TEXT) FROM restaurant_tables t
		JOIN reservations r ON ` + conflictPredicate + `
		WHERE t.restaurant_id = :restaurant_id`

	ids := []string{}

	if err := repo.selectNamed(ctx, "AvailableTableIDs", stmt, query, &ids); err != nil {
		return []string{}, err
	}

	return ids, nil
}

func (repo *repositoryImpl) TablesWithAvailability(ctx context.Context, query model.Query) ([]model.TableAvailability, error) {
	stmt := `
		SELECT t.id, t.table_number, t.capacity, t.is_active, t.position_x, t.position_y, t.width, t.height, t.shape,
			(t.is_active
				AND (:min_capacity = 0 OR t.capacity >= :min_capacity)
				AND NOT EXISTS (SELECT 1 FROM reservations r WHERE ` + conflictPredicate + `)) AS is_available
		FROM restaurant_tables t
		WHERE t.restaurant_id = :restaurant_id
		ORDER BY t.table_number`

	tables := []model.TableAvailability{}

	if err := repo.selectNamed(ctx, "TablesWithAvailability", stmt, query, &tables); err != nil {
		return []model.TableAvailability{}, err
	}

	return tables, nil
}

func (repo *repositoryImpl) RestaurantIDsWithFreeTable(ctx context.Context, query model.Query) ([]string, error) {
	stmt := `
		SELECT DISTINCT CAST(t.restaurant_id AS TEXT) FROM restaurant_tables t
		JOIN restaurants rs ON rs.id = t.restaurant_id AND rs.is_active
		WHERE t.is_active
			AND (:min_capacity = 0 OR t.capacity >= :min_capacity)
			AND NOT EXISTS (SELECT 1 FROM reservations r WHERE ` + conflictPredicate + `)`

	ids := []string{}

	if err := repo.selectNamed(ctx, "RestaurantIDsWithFreeTable", stmt, query, &ids); err != nil {
		return []string{}, err
	}

	return ids, nil
}

// FloorTables lists every table of the restaurant, inactive ones included, in floor order.
func (repo *repositoryImpl) FloorTables(ctx context.Context, query model.Query) ([]model.TableReservations, error) {
	stmt := `
		SELECT t.id, t.table_number, t.capacity, t.is_active, t.position_x, t.position_y, t.width, t.height, t.shape
		FROM restaurant_tables t
		WHERE t.restaurant_id = :restaurant_id
		ORDER BY t.table_number`

	tables := []model.TableReservations{}

	if err := repo.selectNamed(ctx, "FloorTables", stmt, query, &tables); err != nil {
		return []model.TableReservations{}, err
	}

	return tables, nil
}

// BookedSlots lists the restaurant's non-cancelled reservations on :date by table and start time.
func (repo *repositoryImpl) BookedSlots(ctx context.Context, query model.Query) ([]model.BookedSlot, error) {
	stmt := `
		SELECT CAST(r.id AS TEXT) AS id, CAST(r.table_id AS TEXT) AS table_id, r.start_time, r.end_time, r.status, r.guest_count
		FROM reservations r
		WHERE r.restaurant_id = :restaurant_id
			AND r.reservation_date = CAST(:date AS DATE)
			AND r.status <> 'cancelled'
		ORDER BY r.table_id, r.start_time COLLATE "C"`

	slots := []model.BookedSlot{}

	if err := repo.selectNamed(ctx, "BookedSlots", stmt, query, &slots); err != nil {
		return []model.BookedSlot{}, err
	}

	return slots, nil
}
