package service

//go:generate go run go.uber.org/mock/mockgen -source=./service.go -destination=./mocks/service_mock.go -package=mocks

import (
	"context"
	"dinebook/config"
	"dinebook/infras/otel"
	availabilityService "dinebook/internal/domains/availability/service"
	restaurantModel "dinebook/internal/domains/restaurant/model"
	restaurantRepository "dinebook/internal/domains/restaurant/repository"
	"dinebook/internal/domains/table/model"
	"dinebook/internal/domains/table/model/dto"
	"dinebook/internal/domains/table/repository"
	"dinebook/shared"
	"dinebook/shared/cache"
	"dinebook/shared/constant"
	gDto "dinebook/shared/dto"
	"dinebook/shared/failure"
	"fmt"

	"github.com/rs/zerolog/log"
)

const (
	cacheGetTablesByRestaurant = "table:by_restaurant"

	// restaurant caches embed table data (detail view, table_count in listings).
	cacheGetRestaurant    = "restaurant:get"
	cacheGetAllRestaurant = "restaurant:get_all"
)

type Table interface {
	GetByRestaurant(ctx context.Context, restaurantID string) ([]dto.TableResponse, error)
	Get(ctx context.Context, id string) (dto.TableResponse, error)
	Create(ctx context.Context, restaurantID string, req dto.CreateTableRequest) (dto.TableResponse, error)
	Update(ctx context.Context, id string, req dto.UpdateTableRequest) error
	Delete(ctx context.Context, id string) error
}

type serviceImpl struct {
	repo           repository.Table
	restaurantRepo restaurantRepository.Restaurant
	availability   availabilityService.Availability
	cfg            *config.Config
	cache          cache.RedisCache
	otel           otel.Otel
}

func New(
	repo repository.Table,
	restaurantRepo restaurantRepository.Restaurant,
	availability availabilityService.Availability,
	cfg *config.Config,
	cache cache.RedisCache,
	otel otel.Otel,
) Table {
	return &serviceImpl{
		repo:           repo,
		restaurantRepo: restaurantRepo,
		availability:   availability,
		cfg:            cfg,
		cache:          cache,
		otel:           otel,
	}
}

func (s *serviceImpl) GetByRestaurant(ctx context.Context, restaurantID string) (res []dto.TableResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".GetByRestaurant")
	defer scope.End()
	defer scope.TraceIfError(&err)

	cacheKey := shared.BuildCacheKey(cacheGetTablesByRestaurant, restaurantID)

	if err = s.cache.Get(ctx, cacheKey, &res); err == nil {
		log.Info().Str("cacheKey", cacheKey).Msg("cache hit for restaurant tables")

		return res, nil
	}

	exist, err := s.restaurantRepo.Exist(ctx, shared.FilterByID(restaurantID, restaurantModel.FieldID, restaurantModel.TableName))
	if err != nil {
		log.Error().Err(err).Msg("failed to check restaurant existence")

		return res, fmt.Errorf("failed to check restaurant existence: %w", err)
	}

	if !exist {
		return res, failure.NotFound("restaurant not found")
	}

	params := gDto.QueryParams{SortBy: model.FieldTableNumber, SortDir: gDto.SortDirAsc}

	tables, err := s.repo.GetAll(ctx, params, repository.ByRestaurant(restaurantID))
	if err != nil {
		log.Error().Err(err).Msg("failed to get tables")

		return res, fmt.Errorf("failed to get tables: %w", err)
	}

	res = dto.FromModels(tables)

	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Save(c, cacheKey, res, s.cfg.Cache.TTL); err != nil {
			log.Error().Err(err).Msg("failed to save restaurant tables to cache")
		}
	}()

	return res, nil
}

func (s *serviceImpl) Get(ctx context.Context, id string) (res dto.TableResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Get")
	defer scope.End()
	defer scope.TraceIfError(&err)

	table, err := s.repo.Get(ctx, shared.FilterByID(id, model.FieldID, model.TableName))
	if err != nil {
		log.Error().Err(err).Msg("failed to get table")

		return res, fmt.Errorf("failed to get table: %w", err)
	}

	if table.ID == constant.Empty {
		return res, failure.NotFound("table not found")
	}

	res.FromModel(table)

	return res, nil
}

func (s *serviceImpl) Create(ctx context.Context, restaurantID string, req dto.CreateTableRequest) (res dto.TableResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Create")
	defer scope.End()
	defer scope.TraceIfError(&err)

	exist, err := s.restaurantRepo.Exist(ctx, shared.FilterByID(restaurantID, restaurantModel.FieldID, restaurantModel.TableName))
	if err != nil {
		log.Error().Err(err).Msg("failed to check restaurant existence")

		return res, fmt.Errorf("failed to check restaurant existence: %w", err)
	}

	if !exist {
		return res, failure.NotFound("restaurant not found")
	}

	table := req.ToModel(restaurantID, shared.UserID(ctx))

	if err = s.repo.Insert(ctx, table); err != nil {
		if shared.IsPqError(err, constant.PqErrorCodeUniqueViolation) {
			return res, failure.Conflict("table number already exists in this restaurant")
		}

		log.Error().Err(err).Msg("failed to create table")

		return res, fmt.Errorf("failed to create table: %w", err)
	}

	s.afterMutation(ctx, restaurantID)

	res.FromModel(table)

	return res, nil
}

func (s *serviceImpl) Update(ctx context.Context, id string, req dto.UpdateTableRequest) (err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Update")
	defer scope.End()
	defer scope.TraceIfError(&err)

	if req == (dto.UpdateTableRequest{}) {
		return failure.BadRequestFromString("update request cannot be empty")
	}

	filter := shared.FilterByID(id, model.FieldID, model.TableName)

	table, err := s.repo.Get(ctx, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to get table")

		return fmt.Errorf("failed to get table: %w", err)
	}

	if table.ID == constant.Empty {
		return failure.NotFound("table not found")
	}

	if err = s.repo.Update(ctx, shared.TransformFields(req, shared.UserID(ctx)), filter); err != nil {
		if shared.IsPqError(err, constant.PqErrorCodeUniqueViolation) {
			return failure.Conflict("table number already exists in this restaurant")
		}

		log.Error().Err(err).Msg("failed to update table")

		return fmt.Errorf("failed to update table: %w", err)
	}

	s.afterMutation(ctx, table.RestaurantID)

	return nil
}

// Delete removes the table. Reservations that referenced it are kept.
func (s *serviceImpl) Delete(ctx context.Context, id string) (err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Delete")
	defer scope.End()
	defer scope.TraceIfError(&err)

	filter := shared.FilterByID(id, model.FieldID, model.TableName)

	table, err := s.repo.Get(ctx, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to get table")

		return fmt.Errorf("failed to get table: %w", err)
	}

	if table.ID == constant.Empty {
		return failure.NotFound("table not found")
	}

	if err = s.repo.Delete(ctx, filter); err != nil {
		log.Error().Err(err).Msg("failed to delete table")

		return fmt.Errorf("failed to delete table: %w", err)
	}

	s.afterMutation(ctx, table.RestaurantID)

	return nil
}

// afterMutation keeps table_count in step with the live rows and drops stale caches.
func (s *serviceImpl) afterMutation(ctx context.Context, restaurantID string) {
	if err := s.restaurantRepo.RefreshTableCount(ctx, restaurantID); err != nil {
		log.Error().Err(err).Str("restaurant_id", restaurantID).Msg("failed to refresh table count")
	}

	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Delete(c, shared.BuildCacheKey(cacheGetTablesByRestaurant, restaurantID)); err != nil {
			log.Error().Err(err).Msg("failed to delete restaurant tables cache")
		}

		if err := s.cache.Delete(c, shared.BuildCacheKey(cacheGetRestaurant, restaurantID)); err != nil {
			log.Error().Err(err).Msg("failed to delete restaurant cache")
		}

		shared.InvalidateCaches(c, s.cache, cacheGetAllRestaurant)
		s.availability.InvalidateRestaurant(c, restaurantID)
	}()
}
