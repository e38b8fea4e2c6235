package service

//go:generate go run go.uber.org/mock/mockgen -source=./service.go -destination=./mocks/service_mock.go -package=mocks

import (
	"context"
	"dinebook/config"
	"dinebook/infras/otel"
	availabilityModel "dinebook/internal/domains/availability/model"
	availabilityService "dinebook/internal/domains/availability/service"
	"dinebook/internal/domains/restaurant/model"
	"dinebook/internal/domains/restaurant/model/dto"
	"dinebook/internal/domains/restaurant/repository"
	tableModel "dinebook/internal/domains/table/model"
	tableDto "dinebook/internal/domains/table/model/dto"
	tableRepository "dinebook/internal/domains/table/repository"
	"dinebook/shared"
	"dinebook/shared/cache"
	"dinebook/shared/constant"
	gDto "dinebook/shared/dto"
	"dinebook/shared/failure"
	"fmt"

	"github.com/rs/zerolog/log"
)

const (
	cacheGetRestaurant    = "restaurant:get"
	cacheGetAllRestaurant = "restaurant:get_all"
)

type Restaurant interface {
	Create(ctx context.Context, req dto.CreateRestaurantRequest) (dto.RestaurantResponse, error)
	GetAll(ctx context.Context, params gDto.QueryParams, filter dto.ListFilter) (dto.GetRestaurantsResponse, error)
	Get(ctx context.Context, id string) (dto.RestaurantDetailResponse, error)
	Update(ctx context.Context, id string, req dto.UpdateRestaurantRequest) error
	Delete(ctx context.Context, id string) error
}

type serviceImpl struct {
	repo         repository.Restaurant
	tableRepo    tableRepository.Table
	availability availabilityService.Availability
	cfg          *config.Config
	cache        cache.RedisCache
	otel         otel.Otel
}

func New(
	repo repository.Restaurant,
	tableRepo tableRepository.Table,
	availability availabilityService.Availability,
	cfg *config.Config,
	cache cache.RedisCache,
	otel otel.Otel,
) Restaurant {
	return &serviceImpl{
		repo:         repo,
		tableRepo:    tableRepo,
		availability: availability,
		cfg:          cfg,
		cache:        cache,
		otel:         otel,
	}
}

func (s *serviceImpl) Create(ctx context.Context, req dto.CreateRestaurantRequest) (res dto.RestaurantResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Create")
	defer scope.End()
	defer scope.TraceIfError(&err)

	if req.OpeningTime >= req.ClosingTime {
		return res, failure.BadRequestFromString("opening time must be before closing time")
	}

	restaurant := req.ToModel(shared.UserID(ctx))

	if err = s.repo.Insert(ctx, restaurant); err != nil {
		log.Error().Err(err).Msg("failed to create restaurant")

		return res, fmt.Errorf("failed to create restaurant: %w", err)
	}

	go func() {
		shared.InvalidateCaches(context.WithoutCancel(ctx), s.cache, cacheGetAllRestaurant)
	}()

	res.FromModel(restaurant)

	return res, nil
}

func (s *serviceImpl) GetAll(ctx context.Context, params gDto.QueryParams, filter dto.ListFilter) (res dto.GetRestaurantsResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".GetAll")
	defer scope.End()
	defer scope.TraceIfError(&err)

	params.RestrictSort(model.SortableFields)
	filterGroup := filter.ToFilterGroup()

	if filter.Date != constant.Empty && filter.Time == constant.Empty {
		return res, failure.BadRequestFromString("time is required when filtering by date")
	}

	if filter.HasAvailability() {
		ids, err := s.freeRestaurantIDs(ctx, filter)
		if err != nil {
			return res, err
		}

		if len(ids) == 0 {
			res.FromModels(nil, 0, params.Limit)

			return res, nil
		}

		filterGroup.Filters = append(filterGroup.Filters, gDto.Filter{
			Field:    model.FieldID,
			Operator: gDto.FilterOperatorIn,
			Value:    ids,
			Table:    model.TableName,
		})

		// availability changes by the minute; listings narrowed by it bypass the cache.
		return s.list(ctx, params, filterGroup)
	}

	cacheKey := shared.BuildCacheKeyWithQuery(cacheGetAllRestaurant, params, filterGroup)

	if err = s.cache.Get(ctx, cacheKey, &res); err == nil {
		log.Info().Str("cacheKey", cacheKey).Msg("cache hit for restaurants")

		return res, nil
	}

	res, err = s.list(ctx, params, filterGroup)
	if err != nil {
		return res, err
	}

	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Save(c, cacheKey, res, s.cfg.Cache.TTL); err != nil {
			log.Error().Err(err).Msg("failed to save restaurants to cache")
		}
	}()

	return res, nil
}

func (s *serviceImpl) freeRestaurantIDs(ctx context.Context, filter dto.ListFilter) ([]string, error) {
	endTime := filter.EndTime
	if endTime == constant.Empty {
		var err error

		endTime, err = availabilityService.EndTime(filter.Time, s.cfg.Reservation.DefaultDurationMinutes)
		if err != nil {
			return nil, failure.BadRequestFromString("time must use the HH:MM format")
		}
	}

	ids, err := s.availability.RestaurantIDsWithFreeTable(ctx, availabilityModel.Query{
		Date:        filter.Date,
		StartTime:   filter.Time,
		EndTime:     endTime,
		MinCapacity: filter.PartySize,
	})
	if err != nil {
		log.Error().Err(err).Msg("failed to filter restaurants by availability")

		return nil, err
	}

	return ids, nil
}

func (s *serviceImpl) list(ctx context.Context, params gDto.QueryParams, filter gDto.FilterGroup) (res dto.GetRestaurantsResponse, err error) {
	total, err := s.repo.Count(ctx, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to count restaurants")

		return res, fmt.Errorf("failed to count restaurants: %w", err)
	}

	restaurants, err := s.repo.GetAll(ctx, params, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to get restaurants")

		return res, fmt.Errorf("failed to get restaurants: %w", err)
	}

	res.FromModels(restaurants, total, params.Limit)

	return res, nil
}

func (s *serviceImpl) Get(ctx context.Context, id string) (res dto.RestaurantDetailResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Get")
	defer scope.End()
	defer scope.TraceIfError(&err)

	cacheKey := shared.BuildCacheKey(cacheGetRestaurant, id)

	if err = s.cache.Get(ctx, cacheKey, &res); err == nil {
		log.Info().Str("cacheKey", cacheKey).Msg("cache hit for restaurant")

		return res, nil
	}

	restaurant, err := s.repo.Get(ctx, shared.FilterByID(id, model.FieldID, model.TableName))
	if err != nil {
		log.Error().Err(err).Msg("failed to get restaurant")

		return res, fmt.Errorf("failed to get restaurant: %w", err)
	}

	if restaurant.ID == constant.Empty {
		return res, failure.NotFound("restaurant not found")
	}

	params := gDto.QueryParams{SortBy: tableModel.FieldTableNumber, SortDir: gDto.SortDirAsc}

	tables, err := s.tableRepo.GetAll(ctx, params, tableRepository.ByRestaurant(id))
	if err != nil {
		log.Error().Err(err).Msg("failed to get restaurant tables")

		return res, fmt.Errorf("failed to get restaurant tables: %w", err)
	}

	res.FromModel(restaurant)
	res.Tables = tableDto.FromModels(tables)

	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Save(c, cacheKey, res, s.cfg.Cache.TTL); err != nil {
			log.Error().Err(err).Msg("failed to save restaurant to cache")
		}
	}()

	return res, nil
}

func (s *serviceImpl) Update(ctx context.Context, id string, req dto.UpdateRestaurantRequest) (err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Update")
	defer scope.End()
	defer scope.TraceIfError(&err)

	if req == (dto.UpdateRestaurantRequest{}) {
		return failure.BadRequestFromString("update request cannot be empty")
	}

	filter := shared.FilterByID(id, model.FieldID, model.TableName)

	restaurant, err := s.repo.Get(ctx, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to get restaurant")

		return fmt.Errorf("failed to get restaurant: %w", err)
	}

	if restaurant.ID == constant.Empty {
		return failure.NotFound("restaurant not found")
	}

	opening, closing := restaurant.OpeningTime, restaurant.ClosingTime
	if req.OpeningTime != nil {
		opening = *req.OpeningTime
	}

	if req.ClosingTime != nil {
		closing = *req.ClosingTime
	}

	if opening >= closing {
		return failure.BadRequestFromString("opening time must be before closing time")
	}

	if err = s.repo.Update(ctx, shared.TransformFields(req, shared.UserID(ctx)), filter); err != nil {
		log.Error().Err(err).Msg("failed to update restaurant")

		return fmt.Errorf("failed to update restaurant: %w", err)
	}

	s.invalidate(ctx, id)

	return nil
}

func (s *serviceImpl) Delete(ctx context.Context, id string) (err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Delete")
	defer scope.End()
	defer scope.TraceIfError(&err)

	filter := shared.FilterByID(id, model.FieldID, model.TableName)

	exist, err := s.repo.Exist(ctx, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to check restaurant existence")

		return fmt.Errorf("failed to check restaurant existence: %w", err)
	}

	if !exist {
		return failure.NotFound("restaurant not found")
	}

	if err = s.repo.Delete(ctx, filter); err != nil {
		log.Error().Err(err).Msg("failed to delete restaurant")

		return fmt.Errorf("failed to delete restaurant: %w", err)
	}

	s.invalidate(ctx, id)

	return nil
}

func (s *serviceImpl) invalidate(ctx context.Context, id string) {
	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Delete(c, shared.BuildCacheKey(cacheGetRestaurant, id)); err != nil {
			log.Error().Err(err).Msg("failed to delete restaurant cache")
		}

		shared.InvalidateCaches(c, s.cache, cacheGetAllRestaurant)
		s.availability.InvalidateRestaurant(c, id)
	}()
}
