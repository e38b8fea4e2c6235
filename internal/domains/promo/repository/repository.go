package repository

//go:generate go run go.uber.org/mock/mockgen -source=./repository.go -destination=../mocks/repository_mock.go -package=mocks

import (
	"context"
	"database/sql"
	"dinebook/infras/otel"
	"dinebook/infras/postgres"
	"dinebook/internal/domains/promo/model"
	"dinebook/shared/constant"
	gDto "dinebook/shared/dto"
	"dinebook/shared/logger"
	gRepo "dinebook/shared/repository"
	"dinebook/shared/timezone"
	"errors"
	"fmt"

	"github.com/jmoiron/sqlx"
)

type PromoCode interface {
	Insert(ctx context.Context, model model.PromoCode) error
	Get(ctx context.Context, filter gDto.FilterGroup, columns ...string) (model.PromoCode, error)
	GetAll(ctx context.Context, params gDto.QueryParams, filter gDto.FilterGroup, columns ...string) ([]model.PromoCode, error)
	Exist(ctx context.Context, filter gDto.FilterGroup) (bool, error)
	Count(ctx context.Context, filter gDto.FilterGroup) (int, error)
	Update(ctx context.Context, req map[string]any, filter gDto.FilterGroup) error
	Delete(ctx context.Context, filter gDto.FilterGroup) error
	ApplyTx(ctx context.Context, tx *sqlx.Tx, code, today string) (discountPercentage float64, applied bool, err error)
}

type repositoryImpl struct {
	gRepo.Repository[model.PromoCode]
	db   *postgres.Connection
	otel otel.Otel
}

func New(db *postgres.Connection, otel otel.Otel) PromoCode {
	return &repositoryImpl{
		Repository: gRepo.NewRepository[model.PromoCode](model.EntityName, model.TableName, model.FieldID, db, otel),
		db:         db,
		otel:       otel,
	}
}

// ApplyTx consumes one use of the code when every validity condition holds at the time of the update.
// applied is false when no row qualified.
func (repo *repositoryImpl) ApplyTx(ctx context.Context, tx *sqlx.Tx, code, today string) (float64, bool, error) {
	ctx, scope := repo.otel.NewScope(ctx, constant.OtelRepositoryScopeName, constant.OtelRepositoryScopeName+".promo_code.ApplyTx")
	defer scope.End()

	query := fmt.Sprintf(`
		UPDATE %[1]s SET %[2]s = %[2]s + 1, modified_at = $3
		WHERE %[3]s = $1
			AND %[4]s = TRUE
			AND %[5]s <= CAST($2 AS DATE)
			AND %[6]s >= CAST($2 AS DATE)
			AND (%[7]s = 0 OR %[2]s < %[7]s)
		RETURNING %[8]s`,
		model.TableName, model.FieldCurrentUses, model.FieldCode, model.FieldIsActive,
		model.FieldStartDate, model.FieldEndDate, model.FieldMaxUses, model.FieldDiscountPercentage,
	)
	scope.SetAttribute(constant.OtelQueryAttributeKey, query)

	var discount float64

	err := tx.QueryRowxContext(ctx, query, code, today, timezone.Now()).Scan(&discount)
	if errors.Is(err, sql.ErrNoRows) {
		return 0, false, nil
	}

	if err != nil {
		logger.ErrorWithStack(err)
		scope.TraceError(err)

		return 0, false, fmt.Errorf("failed to apply promo code (%s): %w", model.EntityName, err)
	}

	return discount, true, nil
}

// ByCode filters on the exact code.
func ByCode(code string) gDto.FilterGroup {
	return gDto.FilterGroup{
		Filters: []any{
			gDto.Filter{
				Field:    model.FieldCode,
				Operator: gDto.FilterOperatorEq,
				Value:    code,
				Table:    model.TableName,
			},
		},
	}
}
