package repository

import (
	"context"
	"dinebook/infras/otel"
	"dinebook/infras/postgres"
	"dinebook/internal/domains/restaurant/model"
	tableModel "dinebook/internal/domains/table/model"
	"dinebook/shared/constant"
	gDto "dinebook/shared/dto"
	"dinebook/shared/logger"
	gRepo "dinebook/shared/repository"
	"dinebook/shared/timezone"
	"fmt"
)

//go:generate go run go.uber.org/mock/mockgen -source=./repository.go -destination=../mocks/repository_mock.go -package=mocks

type Restaurant interface {
	Insert(ctx context.Context, model model.Restaurant) error
	Get(ctx context.Context, filter gDto.FilterGroup, columns ...string) (model.Restaurant, error)
	GetAll(ctx context.Context, params gDto.QueryParams, filter gDto.FilterGroup, columns ...string) ([]model.Restaurant, error)
	Exist(ctx context.Context, filter gDto.FilterGroup) (bool, error)
	Count(ctx context.Context, filter gDto.FilterGroup) (int, error)
	Update(ctx context.Context, req map[string]any, filter gDto.FilterGroup) error
	Delete(ctx context.Context, filter gDto.FilterGroup) error
	RefreshTableCount(ctx context.Context, id string) error
	RefreshRating(ctx context.Context, id string) error
}

type repositoryImpl struct {
	gRepo.Repository[model.Restaurant]
	db   *postgres.Connection
	otel otel.Otel
}

func New(db *postgres.Connection, otel otel.Otel) Restaurant {
	return &repositoryImpl{
		Repository: gRepo.NewRepository[model.Restaurant](model.EntityName, model.TableName, model.FieldID, db, otel),
		db:         db,
		otel:       otel,
	}
}

// RefreshTableCount recomputes table_count from the live table rows.
func (repo *repositoryImpl) RefreshTableCount(ctx context.Context, id string) error {
	ctx, scope := repo.otel.NewScope(ctx, constant.OtelRepositoryScopeName, constant.OtelRepositoryScopeName+".restaurant.RefreshTableCount")
	defer scope.End()

	query := fmt.Sprintf(
		`UPDATE %s SET %s = (SELECT COUNT(*) FROM %s WHERE %s = $1), modified_at = $2 WHERE %s = $1`,
		model.TableName, model.FieldTableCount, tableModel.TableName, tableModel.FieldRestaurantID, model.FieldID,
	)
	scope.SetAttribute(constant.OtelQueryAttributeKey, query)

	if _, err := repo.db.Write.ExecContext(ctx, query, id, timezone.Now()); err != nil {
		logger.ErrorWithStack(err)
		scope.TraceError(err)

		return fmt.Errorf("failed to refresh table count (%s): %w", model.EntityName, err)
	}

	return nil
}

// RefreshRating recomputes rating (one decimal) and review_count from the live review rows.
func (repo *repositoryImpl) RefreshRating(ctx context.Context, id string) error {
	ctx, scope := repo.otel.NewScope(ctx, constant.OtelRepositoryScopeName, constant.OtelRepositoryScopeName+".restaurant.RefreshRating")
	defer scope.End()

	query := fmt.Sprintf(`
		UPDATE %[1]s SET
			%[2]s = COALESCE((SELECT ROUND(AVG(rating)::numeric, 1) FROM reviews WHERE restaurant_id = $1), 0),
			%[3]s = (SELECT COUNT(*) FROM reviews WHERE restaurant_id = $1),
			modified_at = $2
		WHERE %[4]s = $1`,
		model.TableName, model.FieldRating, model.FieldReviewCount, model.FieldID,
	)
	scope.SetAttribute(constant.OtelQueryAttributeKey, query)

	if _, err := repo.db.Write.ExecContext(ctx, query, id, timezone.Now()); err != nil {
		logger.ErrorWithStack(err)
		scope.TraceError(err)

		return fmt.Errorf("failed to refresh rating (%s): %w", model.EntityName, err)
	}

	return nil
}
