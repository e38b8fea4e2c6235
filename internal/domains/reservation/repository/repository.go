package repository

//go:generate go run go.uber.org/mock/mockgen -source=./repository.go -destination=../mocks/repository_mock.go -package=mocks

import (
	"context"
	"dinebook/infras/otel"
	"dinebook/infras/postgres"
	"dinebook/internal/domains/reservation/model"
	"dinebook/shared"
	"dinebook/shared/constant"
	gDto "dinebook/shared/dto"
	"dinebook/shared/logger"
	gRepo "dinebook/shared/repository"
	"fmt"

	"github.com/jmoiron/sqlx"
)

// TxFunc runs inside a transaction that holds the slot lock.
type TxFunc func(ctx context.Context, tx *sqlx.Tx) error

type Reservation interface {
	InsertTx(ctx context.Context, tx *sqlx.Tx, model model.Reservation) error
	Get(ctx context.Context, filter gDto.FilterGroup, columns ...string) (model.Reservation, error)
	GetAll(ctx context.Context, params gDto.QueryParams, filter gDto.FilterGroup, columns ...string) ([]model.Reservation, error)
	Count(ctx context.Context, filter gDto.FilterGroup) (int, error)
	Update(ctx context.Context, req map[string]any, filter gDto.FilterGroup) error
	WithinSlotLock(ctx context.Context, tableID, date string, fn TxFunc) error
	Transition(ctx context.Context, id string, from []string, fields map[string]any) (bool, error)
	TransitionTx(ctx context.Context, tx *sqlx.Tx, id string, from []string, fields map[string]any) (bool, error)
}

type repositoryImpl struct {
	gRepo.Repository[model.Reservation]
	db   *postgres.Connection
	otel otel.Otel
}

func New(db *postgres.Connection, otel otel.Otel) Reservation {
	return &repositoryImpl{
		Repository: gRepo.NewRepository[model.Reservation](model.EntityName, model.TableName, model.FieldID, db, otel),
		db:         db,
		otel:       otel,
	}
}

// SlotKey identifies the lock guarding the bookings of one table on one day.
func SlotKey(tableID, date string) string {
	return tableID + "|" + date
}

// WithinSlotLock runs fn in a write transaction after taking the advisory lock for the table and date.
// The lock is released when the transaction ends; fn's error rolls everything back.
func (repo *repositoryImpl) WithinSlotLock(ctx context.Context, tableID, date string, fn TxFunc) (err error) {
	ctx, scope := repo.otel.NewScope(ctx, constant.OtelRepositoryScopeName, constant.OtelRepositoryScopeName+".reservation.WithinSlotLock")
	defer scope.End()

	return repo.db.Transact(ctx, func(tx *sqlx.Tx) error {
		if _, err := tx.ExecContext(ctx, "SELECT pg_advisory_xact_lock(hashtext($1))", SlotKey(tableID, date)); err != nil {
			logger.ErrorWithStack(err)
			scope.TraceError(err)

			return fmt.Errorf("failed to acquire slot lock (%s): %w", model.EntityName, err)
		}

		return fn(ctx, tx)
	})
}

// Transition updates the reservation only while its status is one of from.
// It reports false when no row matched, so concurrent transitions cannot both win.
func (repo *repositoryImpl) Transition(ctx context.Context, id string, from []string, fields map[string]any) (bool, error) {
	ctx, scope := repo.otel.NewScope(ctx, constant.OtelRepositoryScopeName, constant.OtelRepositoryScopeName+".reservation.Transition")
	defer scope.End()

	affected, err := repo.UpdateAffected(ctx, fields, InStatus(id, from))
	if err != nil {
		scope.TraceError(err)

		return false, fmt.Errorf("failed to transition data (%s): %w", model.EntityName, err)
	}

	return affected > 0, nil
}

// TransitionTx is Transition inside the caller's transaction.
func (repo *repositoryImpl) TransitionTx(ctx context.Context, tx *sqlx.Tx, id string, from []string, fields map[string]any) (bool, error) {
	ctx, scope := repo.otel.NewScope(ctx, constant.OtelRepositoryScopeName, constant.OtelRepositoryScopeName+".reservation.TransitionTx")
	defer scope.End()

	affected, err := repo.UpdateAffectedTx(ctx, tx, fields, InStatus(id, from))
	if err != nil {
		scope.TraceError(err)

		return false, fmt.Errorf("failed to transition data (%s): %w", model.EntityName, err)
	}

	return affected > 0, nil
}

// InStatus matches the reservation only while its status is one of from.
func InStatus(id string, from []string) gDto.FilterGroup {
	return shared.FilterByID(id, model.FieldID, model.TableName).And(gDto.Filter{
		ArgName:  "from_status",
		Field:    model.FieldStatus,
		Operator: gDto.FilterOperatorIn,
		Value:    from,
		Table:    model.TableName,
	})
}

// ByToken filters on an unconsumed confirmation token.
func ByToken(token string) gDto.FilterGroup {
	return gDto.FilterGroup{
		Filters: []any{
			gDto.Filter{
				Field:    model.FieldConfirmationToken,
				Operator: gDto.FilterOperatorEq,
				Value:    token,
				Table:    model.TableName,
			},
		},
	}
}
