package service

//go:generate go run go.uber.org/mock/mockgen -source=./service.go -destination=./mocks/service_mock.go -package=mocks

import (
	"context"
	"dinebook/infras/otel"
	"dinebook/internal/domains/promo/model"
	"dinebook/internal/domains/promo/model/dto"
	"dinebook/internal/domains/promo/repository"
	"dinebook/shared"
	"dinebook/shared/constant"
	gDto "dinebook/shared/dto"
	"dinebook/shared/failure"
	"dinebook/shared/timezone"
	"fmt"
	"net/http"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/rs/zerolog/log"
)

// ErrInvalidPromoCode is returned when a code is unknown, inactive, outside its dates or used up.
var ErrInvalidPromoCode = failure.WithReason(http.StatusBadRequest, "invalid_promo_code", "promo code is invalid or expired")

type Promo interface {
	Validate(ctx context.Context, code string) (dto.ValidateResponse, error)
	ApplyTx(ctx context.Context, tx *sqlx.Tx, code string) (float64, error)

	Create(ctx context.Context, req dto.CreatePromoCodeRequest) (dto.PromoCodeResponse, error)
	GetAll(ctx context.Context, params gDto.QueryParams) (dto.GetPromoCodesResponse, error)
	Get(ctx context.Context, id string) (dto.PromoCodeResponse, error)
	Update(ctx context.Context, id string, req dto.UpdatePromoCodeRequest) error
	Delete(ctx context.Context, id string) error
}

type serviceImpl struct {
	repo repository.PromoCode
	otel otel.Otel
	now  func() time.Time
}

func New(repo repository.PromoCode, otel otel.Otel) Promo {
	return &serviceImpl{
		repo: repo,
		otel: otel,
		now:  timezone.Now,
	}
}

func (s *serviceImpl) today() string {
	return timezone.Date(s.now())
}

func (s *serviceImpl) Validate(ctx context.Context, code string) (res dto.ValidateResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Validate")
	defer scope.End()
	defer scope.TraceIfError(&err)

	if code == constant.Empty {
		return res, nil
	}

	promo, err := s.repo.Get(ctx, repository.ByCode(code))
	if err != nil {
		log.Error().Err(err).Msg("failed to get promo code")

		return res, fmt.Errorf("failed to get promo code: %w", err)
	}

	if !promo.IsValid(s.today()) {
		return res, nil
	}

	res.IsValid = true
	res.DiscountPercentage = promo.DiscountPercentage

	return res, nil
}

func (s *serviceImpl) ApplyTx(ctx context.Context, tx *sqlx.Tx, code string) (discount float64, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".ApplyTx")
	defer scope.End()
	defer scope.TraceIfError(&err)

	discount, applied, err := s.repo.ApplyTx(ctx, tx, code, s.today())
	if err != nil {
		log.Error().Err(err).Msg("failed to apply promo code")

		return 0, fmt.Errorf("failed to apply promo code: %w", err)
	}

	if !applied {
		return 0, ErrInvalidPromoCode
	}

	return discount, nil
}

func (s *serviceImpl) Create(ctx context.Context, req dto.CreatePromoCodeRequest) (res dto.PromoCodeResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Create")
	defer scope.End()
	defer scope.TraceIfError(&err)

	if req.StartDate > req.EndDate {
		return res, failure.BadRequestFromString("start date must not be after end date")
	}

	promo := req.ToModel(shared.UserID(ctx))

	if err = s.repo.Insert(ctx, promo); err != nil {
		if shared.IsPqError(err, constant.PqErrorCodeUniqueViolation) {
			return res, failure.Conflict("promo code already exists") // nolint:wrapcheck
		}

		log.Error().Err(err).Msg("failed to create promo code")

		return res, fmt.Errorf("failed to create promo code: %w", err)
	}

	res.FromModel(promo)

	return res, nil
}

func (s *serviceImpl) GetAll(ctx context.Context, params gDto.QueryParams) (res dto.GetPromoCodesResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".GetAll")
	defer scope.End()
	defer scope.TraceIfError(&err)

	params.RestrictSort(model.SortableFields)
	filter := gDto.FilterGroup{}

	total, err := s.repo.Count(ctx, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to count promo codes")

		return res, fmt.Errorf("failed to count promo codes: %w", err)
	}

	promos, err := s.repo.GetAll(ctx, params, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to get promo codes")

		return res, fmt.Errorf("failed to get promo codes: %w", err)
	}

	res.FromModels(promos, total, params.Limit)

	return res, nil
}

func (s *serviceImpl) Get(ctx context.Context, id string) (res dto.PromoCodeResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Get")
	defer scope.End()
	defer scope.TraceIfError(&err)

	promo, err := s.repo.Get(ctx, shared.FilterByID(id, model.FieldID, model.TableName))
	if err != nil {
		log.Error().Err(err).Msg("failed to get promo code")

		return res, fmt.Errorf("failed to get promo code: %w", err)
	}

	if promo.ID == constant.Empty {
		return res, failure.NotFound("promo code not found")
	}

	res.FromModel(promo)

	return res, nil
}

func (s *serviceImpl) Update(ctx context.Context, id string, req dto.UpdatePromoCodeRequest) (err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Update")
	defer scope.End()
	defer scope.TraceIfError(&err)

	if req == (dto.UpdatePromoCodeRequest{}) {
		return failure.BadRequestFromString("update request cannot be empty")
	}

	filter := shared.FilterByID(id, model.FieldID, model.TableName)

	promo, err := s.repo.Get(ctx, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to get promo code")

		return fmt.Errorf("failed to get promo code: %w", err)
	}

	if promo.ID == constant.Empty {
		return failure.NotFound("promo code not found")
	}

	start, end := promo.StartDate.String(), promo.EndDate.String()
	if req.StartDate != nil {
		start = *req.StartDate
	}

	if req.EndDate != nil {
		end = *req.EndDate
	}

	if start > end {
		return failure.BadRequestFromString("start date must not be after end date")
	}

	if req.MaxUses != nil && *req.MaxUses > 0 && *req.MaxUses < promo.CurrentUses {
		return failure.BadRequestFromString("max uses cannot be lower than current uses")
	}

	if err = s.repo.Update(ctx, shared.TransformFields(req, shared.UserID(ctx)), filter); err != nil {
		log.Error().Err(err).Msg("failed to update promo code")

		return fmt.Errorf("failed to update promo code: %w", err)
	}

	return nil
}

func (s *serviceImpl) Delete(ctx context.Context, id string) (err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Delete")
	defer scope.End()
	defer scope.TraceIfError(&err)

	filter := shared.FilterByID(id, model.FieldID, model.TableName)

	exist, err := s.repo.Exist(ctx, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to check promo code existence")

		return fmt.Errorf("failed to check promo code existence: %w", err)
	}

	if !exist {
		return failure.NotFound("promo code not found")
	}

	if err = s.repo.Delete(ctx, filter); err != nil {
		log.Error().Err(err).Msg("failed to delete promo code")

		return fmt.Errorf("failed to delete promo code: %w", err)
	}

	return nil
}
