package service

//go:generate go run go.uber.org/mock/mockgen -source=./service.go -destination=./mocks/service_mock.go -package=mocks

import (
	"context"
	"dinebook/infras/otel"
	restaurantModel "dinebook/internal/domains/restaurant/model"
	restaurantRepository "dinebook/internal/domains/restaurant/repository"
	"dinebook/internal/domains/review/model"
	"dinebook/internal/domains/review/model/dto"
	"dinebook/internal/domains/review/repository"
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

type Review interface {
	Create(ctx context.Context, restaurantID string, req dto.CreateReviewRequest) (dto.ReviewResponse, error)
	GetByRestaurant(ctx context.Context, restaurantID string, params gDto.QueryParams) (dto.GetReviewsResponse, error)
	GetMine(ctx context.Context, restaurantID string) (dto.ReviewResponse, error)
	Update(ctx context.Context, id string, req dto.UpdateReviewRequest) error
	Delete(ctx context.Context, id string) error
}

type serviceImpl struct {
	repo           repository.Review
	restaurantRepo restaurantRepository.Restaurant
	cache          cache.RedisCache
	otel           otel.Otel
}

func New(repo repository.Review, restaurantRepo restaurantRepository.Restaurant, cache cache.RedisCache, otel otel.Otel) Review {
	return &serviceImpl{
		repo:           repo,
		restaurantRepo: restaurantRepo,
		cache:          cache,
		otel:           otel,
	}
}

func (s *serviceImpl) Create(ctx context.Context, restaurantID string, req dto.CreateReviewRequest) (res dto.ReviewResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Create")
	defer scope.End()
	defer scope.TraceIfError(&err)

	userID := shared.UserID(ctx)
	if userID == constant.Empty {
		return res, failure.Unauthorized("authentication required")
	}

	exist, err := s.restaurantRepo.Exist(ctx, shared.FilterByID(restaurantID, restaurantModel.FieldID, restaurantModel.TableName))
	if err != nil {
		log.Error().Err(err).Msg("failed to check restaurant existence")

		return res, fmt.Errorf("failed to check restaurant existence: %w", err)
	}

	if !exist {
		return res, failure.NotFound("restaurant not found")
	}

	review := req.ToModel(restaurantID, userID)

	if err = s.repo.Insert(ctx, review); err != nil {
		if shared.IsPqError(err, constant.PqErrorCodeUniqueViolation) {
			return res, failure.Conflict("you have already reviewed this restaurant") // nolint:wrapcheck
		}

		log.Error().Err(err).Msg("failed to create review")

		return res, fmt.Errorf("failed to create review: %w", err)
	}

	s.afterMutation(ctx, restaurantID)

	res.FromModel(review)

	return res, nil
}

func (s *serviceImpl) GetByRestaurant(ctx context.Context, restaurantID string, params gDto.QueryParams) (res dto.GetReviewsResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".GetByRestaurant")
	defer scope.End()
	defer scope.TraceIfError(&err)

	params.RestrictSort(model.SortableFields)
	filter := repository.ByRestaurant(restaurantID)

	total, err := s.repo.Count(ctx, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to count reviews")

		return res, fmt.Errorf("failed to count reviews: %w", err)
	}

	reviews, err := s.repo.GetAll(ctx, params, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to get reviews")

		return res, fmt.Errorf("failed to get reviews: %w", err)
	}

	res.FromModels(reviews, total, params.Limit)

	return res, nil
}

func (s *serviceImpl) GetMine(ctx context.Context, restaurantID string) (res dto.ReviewResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".GetMine")
	defer scope.End()
	defer scope.TraceIfError(&err)

	review, err := s.repo.Get(ctx, repository.ByUserAndRestaurant(shared.UserID(ctx), restaurantID))
	if err != nil {
		log.Error().Err(err).Msg("failed to get review")

		return res, fmt.Errorf("failed to get review: %w", err)
	}

	if review.ID == constant.Empty {
		return res, failure.NotFound("review not found")
	}

	res.FromModel(review)

	return res, nil
}

func (s *serviceImpl) load(ctx context.Context, id string) (model.Review, error) {
	review, err := s.repo.Get(ctx, shared.FilterByID(id, model.FieldID, model.TableName))
	if err != nil {
		log.Error().Err(err).Msg("failed to get review")

		return review, fmt.Errorf("failed to get review: %w", err)
	}

	if review.ID == constant.Empty {
		return review, failure.NotFound("review not found")
	}

	return review, nil
}

func (s *serviceImpl) Update(ctx context.Context, id string, req dto.UpdateReviewRequest) (err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Update")
	defer scope.End()
	defer scope.TraceIfError(&err)

	if req == (dto.UpdateReviewRequest{}) {
		return failure.BadRequestFromString("update request cannot be empty")
	}

	review, err := s.load(ctx, id)
	if err != nil {
		return err
	}

	userID := shared.UserID(ctx)
	if review.UserID != userID {
		return failure.Forbidden("only the author can edit a review")
	}

	filter := shared.FilterByID(id, model.FieldID, model.TableName)

	if err = s.repo.Update(ctx, shared.TransformFields(req, userID), filter); err != nil {
		log.Error().Err(err).Msg("failed to update review")

		return fmt.Errorf("failed to update review: %w", err)
	}

	s.afterMutation(ctx, review.RestaurantID)

	return nil
}

func (s *serviceImpl) Delete(ctx context.Context, id string) (err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Delete")
	defer scope.End()
	defer scope.TraceIfError(&err)

	review, err := s.load(ctx, id)
	if err != nil {
		return err
	}

	if review.UserID != shared.UserID(ctx) && !shared.IsAdmin(ctx) {
		return failure.Forbidden("only the author or an administrator can delete a review")
	}

	if err = s.repo.Delete(ctx, shared.FilterByID(id, model.FieldID, model.TableName)); err != nil {
		log.Error().Err(err).Msg("failed to delete review")

		return fmt.Errorf("failed to delete review: %w", err)
	}

	s.afterMutation(ctx, review.RestaurantID)

	return nil
}

// afterMutation recomputes the restaurant rating from the live reviews and drops the cached views of it.
func (s *serviceImpl) afterMutation(ctx context.Context, restaurantID string) {
	if err := s.restaurantRepo.RefreshRating(ctx, restaurantID); err != nil {
		log.Error().Err(err).Str("restaurant_id", restaurantID).Msg("failed to refresh restaurant rating")
	}

	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Delete(c, shared.BuildCacheKey(cacheGetRestaurant, restaurantID)); err != nil {
			log.Error().Err(err).Msg("failed to delete restaurant cache")
		}

		shared.InvalidateCaches(c, s.cache, cacheGetAllRestaurant)
	}()
}
