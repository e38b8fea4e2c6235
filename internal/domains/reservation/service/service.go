package service

//go:generate go run go.uber.org/mock/mockgen -source=./service.go -destination=./mocks/service_mock.go -package=mocks

import (
	"context"
	"dinebook/config"
	"dinebook/infras/otel"
	"dinebook/infras/s3"
	availabilityModel "dinebook/internal/domains/availability/model"
	availabilityService "dinebook/internal/domains/availability/service"
	notificationModel "dinebook/internal/domains/notification/model"
	notificationService "dinebook/internal/domains/notification/service"
	"dinebook/internal/domains/pricing"
	promoService "dinebook/internal/domains/promo/service"
	realtimeService "dinebook/internal/domains/realtime/service"
	"dinebook/internal/domains/reservation/model"
	"dinebook/internal/domains/reservation/model/dto"
	"dinebook/internal/domains/reservation/repository"
	restaurantModel "dinebook/internal/domains/restaurant/model"
	restaurantRepository "dinebook/internal/domains/restaurant/repository"
	tableModel "dinebook/internal/domains/table/model"
	tableRepository "dinebook/internal/domains/table/repository"
	"dinebook/shared"
	"dinebook/shared/constant"
	gDto "dinebook/shared/dto"
	"dinebook/shared/failure"
	"dinebook/shared/timezone"
	"dinebook/shared/token"
	"encoding/json"
	"errors"
	"fmt"
	"maps"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/rs/zerolog/log"
)

const receiptDirectory = "receipts"

var (
	ErrNotFound         = failure.WithReason(http.StatusNotFound, "reservation_not_found", "reservation not found")
	ErrTableNotFound    = failure.WithReason(http.StatusNotFound, "table_not_found", "table not found")
	ErrOverCapacity     = failure.WithReason(http.StatusBadRequest, "over_capacity", "guest count exceeds the table capacity")
	ErrSlotConflict     = failure.WithReason(http.StatusConflict, "slot_conflict", "the table is not available at the requested time")
	ErrInvalidPromoCode = promoService.ErrInvalidPromoCode
	ErrTokenNotFound    = failure.WithReason(http.StatusNotFound, "token_not_found", "confirmation token not found")
	ErrTokenExpired     = failure.WithReason(http.StatusBadRequest, "token_expired", "confirmation token has expired")
	ErrNotPending       = failure.WithReason(http.StatusConflict, "not_pending", "reservation is not pending confirmation")
	ErrTerminalState    = failure.WithReason(http.StatusConflict, "terminal_state", "reservation is already cancelled or completed")
	ErrNotOwner         = failure.WithReason(http.StatusForbidden, "not_owner", "reservation belongs to another user")
	ErrAdminOnly        = failure.WithReason(http.StatusForbidden, "admin_only", "only administrators can perform this action")
	ErrCardRequired     = failure.WithReason(http.StatusBadRequest, "card_required", "card_number is required for card payments")
)

type Reservation interface {
	Create(ctx context.Context, req dto.CreateReservationRequest) (dto.CreateReservationResponse, error)
	Quote(ctx context.Context, req dto.QuoteRequest) (dto.QuoteResponse, error)
	Confirm(ctx context.Context, token string) (dto.ReservationResponse, error)
	ResendConfirmation(ctx context.Context, id string) error
	Cancel(ctx context.Context, id string) error
	Complete(ctx context.Context, id string) error
	Update(ctx context.Context, id string, req dto.UpdateReservationRequest) error
	UpdatePayment(ctx context.Context, id string, req dto.UpdatePaymentRequest) error
	Get(ctx context.Context, id string) (dto.ReservationResponse, error)
	ListMine(ctx context.Context, params gDto.QueryParams, filter dto.ListFilter) (dto.GetReservationsResponse, error)
	ListAll(ctx context.Context, params gDto.QueryParams, filter dto.ListFilter) (dto.GetReservationsResponse, error)
	ListByRestaurant(ctx context.Context, restaurantID string, params gDto.QueryParams, filter dto.ListFilter) (dto.GetReservationsResponse, error)
}

type serviceImpl struct {
	repo           repository.Reservation
	tableRepo      tableRepository.Table
	restaurantRepo restaurantRepository.Restaurant
	availability   availabilityService.Availability
	promo          promoService.Promo
	pricing        pricing.Calculator
	dispatcher     notificationService.Dispatcher
	events         realtimeService.Publisher
	storage        s3.S3
	cfg            *config.Config
	otel           otel.Otel
	now            func() time.Time
}

func New(
	repo repository.Reservation,
	tableRepo tableRepository.Table,
	restaurantRepo restaurantRepository.Restaurant,
	availability availabilityService.Availability,
	promo promoService.Promo,
	calculator pricing.Calculator,
	dispatcher notificationService.Dispatcher,
	events realtimeService.Publisher,
	storage s3.S3,
	cfg *config.Config,
	otel otel.Otel,
) Reservation {
	return &serviceImpl{
		repo:           repo,
		tableRepo:      tableRepo,
		restaurantRepo: restaurantRepo,
		availability:   availability,
		promo:          promo,
		pricing:        calculator,
		dispatcher:     dispatcher,
		events:         events,
		storage:        storage,
		cfg:            cfg,
		otel:           otel,
		now:            timezone.Now,
	}
}

// orWrap passes business failures through untouched and wraps everything else as a dependency error.
func orWrap(err error, msg string) error {
	var fail *failure.Failure
	if errors.As(err, &fail) {
		return err
	}

	log.Error().Err(err).Msg(msg)

	return fmt.Errorf("%s: %w", msg, err)
}

func (s *serviceImpl) tokenTTL() time.Duration {
	return time.Duration(s.cfg.Reservation.ConfirmationTTLHours) * time.Hour
}

func (s *serviceImpl) confirmationURL(tok string) string {
	return strings.TrimSuffix(s.cfg.App.PublicURL, "/") + "/confirm-reservation?token=" + url.QueryEscape(tok)
}

// bookableTable loads the table when it is active and belongs to an active restaurant.
func (s *serviceImpl) bookableTable(ctx context.Context, restaurantID, tableID string) (tableModel.Table, restaurantModel.Restaurant, error) {
	table, err := s.tableRepo.Get(ctx, shared.FilterByID(tableID, tableModel.FieldID, tableModel.TableName))
	if err != nil {
		return table, restaurantModel.Restaurant{}, orWrap(err, "failed to get table")
	}

	if table.ID == constant.Empty || !table.IsActive || table.RestaurantID != restaurantID {
		return table, restaurantModel.Restaurant{}, ErrTableNotFound
	}

	restaurant, err := s.restaurantRepo.Get(ctx, shared.FilterByID(restaurantID, restaurantModel.FieldID, restaurantModel.TableName))
	if err != nil {
		return table, restaurant, orWrap(err, "failed to get restaurant")
	}

	if restaurant.ID == constant.Empty || !restaurant.IsActive {
		return table, restaurant, ErrTableNotFound
	}

	return table, restaurant, nil
}

func (s *serviceImpl) load(ctx context.Context, id string) (model.Reservation, error) {
	reservation, err := s.repo.Get(ctx, shared.FilterByID(id, model.FieldID, model.TableName))
	if err != nil {
		return reservation, orWrap(err, "failed to get reservation")
	}

	if reservation.ID == constant.Empty {
		return reservation, ErrNotFound
	}

	return reservation, nil
}

func authorize(ctx context.Context, r model.Reservation) error {
	if shared.IsAdmin(ctx) || r.IsOwnedBy(shared.UserID(ctx)) {
		return nil
	}

	return ErrNotOwner
}

func (s *serviceImpl) Create(ctx context.Context, req dto.CreateReservationRequest) (res dto.CreateReservationResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Create")
	defer scope.End()
	defer scope.TraceIfError(&err)

	if err = availabilityService.ValidateWindow(req.ReservationDate, req.StartTime, req.EndTime); err != nil {
		return res, err //nolint:wrapcheck
	}

	if req.Method() == model.PaymentMethodCard && dto.LastFour(req.CardNumber) == constant.Empty {
		return res, ErrCardRequired
	}

	table, restaurant, err := s.bookableTable(ctx, req.RestaurantID, req.TableID)
	if err != nil {
		return res, err
	}

	if req.GuestCount > table.Capacity {
		return res, ErrOverCapacity
	}

	reservation := req.ToModel(shared.UserID(ctx), shared.UserEmail(ctx))

	tok, err := token.Generate(token.DefaultBytes)
	if err != nil {
		log.Error().Err(err).Msg("failed to generate confirmation token")

		return res, fmt.Errorf("failed to generate confirmation token: %w", err)
	}

	expires := s.now().Add(s.tokenTTL())
	reservation.ConfirmationToken = &tok
	reservation.TokenExpiresAt = &expires

	scope.SetAttributes(map[string]any{
		"reservation.id":       reservation.ID,
		"reservation.table_id": reservation.TableID,
	})

	err = s.repo.WithinSlotLock(ctx, table.ID, req.ReservationDate, func(ctx context.Context, tx *sqlx.Tx) error {
		available, err := s.availability.IsTableAvailableTx(ctx, tx, availabilityModel.Query{
			TableID:   table.ID,
			Date:      req.ReservationDate,
			StartTime: req.StartTime,
			EndTime:   req.EndTime,
		})
		if err != nil {
			return err //nolint:wrapcheck
		}

		if !available {
			return ErrSlotConflict
		}

		var discount float64

		if reservation.PromoCode != constant.Empty {
			if discount, err = s.promo.ApplyTx(ctx, tx, reservation.PromoCode); err != nil {
				return err //nolint:wrapcheck
			}
		}

		dto.ApplyPricing(&reservation, s.pricing.Compute(reservation.GuestCount, discount))

		return s.repo.InsertTx(ctx, tx, reservation) //nolint:wrapcheck
	})
	if err != nil {
		return res, orWrap(err, "failed to create reservation")
	}

	job := s.emailJob(notificationModel.TemplateConfirmation, reservation, restaurant.Name)
	job.ConfirmationURL = s.confirmationURL(tok)

	s.afterCommit(ctx, reservation, model.EventCreated, &job)

	res.ID = reservation.ID

	return res, nil
}

func (s *serviceImpl) Quote(ctx context.Context, req dto.QuoteRequest) (res dto.QuoteResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Quote")
	defer scope.End()
	defer scope.TraceIfError(&err)

	var discount float64

	code := strings.TrimSpace(req.PromoCode)
	if code != constant.Empty {
		validation, err := s.promo.Validate(ctx, code)
		if err != nil {
			return res, orWrap(err, "failed to validate promo code")
		}

		if !validation.IsValid {
			return res, ErrInvalidPromoCode
		}

		discount = validation.DiscountPercentage
		res.PromoCode = code
	}

	res.Breakdown = s.pricing.Compute(req.GuestCount, discount)

	return res, nil
}

func (s *serviceImpl) Confirm(ctx context.Context, tok string) (res dto.ReservationResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Confirm")
	defer scope.End()
	defer scope.TraceIfError(&err)

	if tok == constant.Empty {
		return res, ErrTokenNotFound
	}

	reservation, err := s.repo.Get(ctx, repository.ByToken(tok))
	if err != nil {
		return res, orWrap(err, "failed to get reservation by token")
	}

	if reservation.ID == constant.Empty {
		return res, ErrTokenNotFound
	}

	if reservation.Status != model.StatusPending {
		return res, ErrNotPending
	}

	now := s.now()

	if reservation.TokenExpiresAt != nil && now.After(*reservation.TokenExpiresAt) {
		return res, ErrTokenExpired
	}

	ok, err := s.repo.Transition(ctx, reservation.ID, []string{model.StatusPending}, map[string]any{
		model.FieldStatus:            model.StatusConfirmed,
		model.FieldConfirmedAt:       now,
		model.FieldConfirmationToken: nil,
		model.FieldTokenExpiresAt:    nil,
		constant.FieldModifiedAt:     now,
		constant.FieldModifiedBy:     reservation.UserID,
	})
	if err != nil {
		return res, orWrap(err, "failed to confirm reservation")
	}

	if !ok {
		return res, ErrNotPending
	}

	reservation.Status = model.StatusConfirmed
	reservation.ConfirmedAt = &now
	reservation.ConfirmationToken = nil
	reservation.TokenExpiresAt = nil

	go func() {
		c := context.WithoutCancel(ctx)

		job := s.emailJob(notificationModel.TemplateConfirmed, reservation, s.restaurantName(c, reservation.RestaurantID))
		job.ReceiptURL = s.storeReceipt(c, reservation)

		s.sideEffects(c, reservation, model.EventConfirmed, &job)
	}()

	res.FromModel(reservation)

	return res, nil
}

func (s *serviceImpl) ResendConfirmation(ctx context.Context, id string) (err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".ResendConfirmation")
	defer scope.End()
	defer scope.TraceIfError(&err)

	reservation, err := s.load(ctx, id)
	if err != nil {
		return err
	}

	if err = authorize(ctx, reservation); err != nil {
		return err
	}

	if reservation.Status != model.StatusPending || !reservation.HasToken() {
		return ErrNotPending
	}

	now := s.now()
	expires := now.Add(s.tokenTTL())

	ok, err := s.repo.Transition(ctx, id, []string{model.StatusPending}, map[string]any{
		model.FieldTokenExpiresAt: expires,
		constant.FieldModifiedAt:  now,
		constant.FieldModifiedBy:  shared.UserID(ctx),
	})
	if err != nil {
		return orWrap(err, "failed to extend confirmation token")
	}

	if !ok {
		return ErrNotPending
	}

	reservation.TokenExpiresAt = &expires

	go func() {
		c := context.WithoutCancel(ctx)

		job := s.emailJob(notificationModel.TemplateConfirmation, reservation, s.restaurantName(c, reservation.RestaurantID))
		job.ConfirmationURL = s.confirmationURL(*reservation.ConfirmationToken)

		s.dispatch(c, job)
	}()

	return nil
}

func (s *serviceImpl) Cancel(ctx context.Context, id string) (err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Cancel")
	defer scope.End()
	defer scope.TraceIfError(&err)

	reservation, err := s.load(ctx, id)
	if err != nil {
		return err
	}

	if err = authorize(ctx, reservation); err != nil {
		return err
	}

	return s.finish(ctx, reservation, model.StatusCancelled, model.FieldCancelledAt, model.EventCancelled)
}

func (s *serviceImpl) Complete(ctx context.Context, id string) (err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Complete")
	defer scope.End()
	defer scope.TraceIfError(&err)

	if !shared.IsAdmin(ctx) {
		return ErrAdminOnly
	}

	reservation, err := s.load(ctx, id)
	if err != nil {
		return err
	}

	return s.finish(ctx, reservation, model.StatusCompleted, model.FieldCompletedAt, model.EventCompleted)
}

// finish moves an active reservation into a terminal status. The token is left in place,
// so a later confirmation attempt reports NotPending instead of TokenNotFound.
func (s *serviceImpl) finish(ctx context.Context, reservation model.Reservation, status, timestampField, event string) error {
	if reservation.IsTerminal() {
		return ErrTerminalState
	}

	now := s.now()

	ok, err := s.repo.Transition(ctx, reservation.ID, model.ActiveStatuses, map[string]any{
		model.FieldStatus:        status,
		timestampField:           now,
		constant.FieldModifiedAt: now,
		constant.FieldModifiedBy: shared.UserID(ctx),
	})
	if err != nil {
		return orWrap(err, "failed to update reservation status")
	}

	if !ok {
		return ErrTerminalState
	}

	reservation.Status = status

	s.afterCommit(ctx, reservation, event, nil)

	return nil
}

func (s *serviceImpl) Update(ctx context.Context, id string, req dto.UpdateReservationRequest) (err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Update")
	defer scope.End()
	defer scope.TraceIfError(&err)

	if req == (dto.UpdateReservationRequest{}) {
		return failure.BadRequestFromString("update request cannot be empty")
	}

	current, err := s.load(ctx, id)
	if err != nil {
		return err
	}

	if err = authorize(ctx, current); err != nil {
		return err
	}

	if current.IsTerminal() {
		return ErrTerminalState
	}

	target := req.Apply(current)
	date := target.ReservationDate.String()

	if err = availabilityService.ValidateWindow(date, target.StartTime, target.EndTime); err != nil {
		return err //nolint:wrapcheck
	}

	table, _, err := s.bookableTable(ctx, current.RestaurantID, target.TableID)
	if err != nil {
		return err
	}

	if target.GuestCount > table.Capacity {
		return ErrOverCapacity
	}

	fields := shared.TransformFields(req, shared.UserID(ctx))

	if target.GuestCount != current.GuestCount {
		breakdown := s.pricing.Compute(target.GuestCount, current.DiscountPercentage)
		dto.ApplyPricing(&target, breakdown)
		maps.Copy(fields, dto.PricingFields(breakdown))
	}

	err = s.repo.WithinSlotLock(ctx, target.TableID, date, func(ctx context.Context, tx *sqlx.Tx) error {
		available, err := s.availability.IsTableAvailableTx(ctx, tx, availabilityModel.Query{
			TableID:              target.TableID,
			Date:                 date,
			StartTime:            target.StartTime,
			EndTime:              target.EndTime,
			ExcludeReservationID: current.ID,
		})
		if err != nil {
			return err //nolint:wrapcheck
		}

		if !available {
			return ErrSlotConflict
		}

		changed, err := s.repo.TransitionTx(ctx, tx, current.ID, model.ActiveStatuses, fields)
		if err != nil {
			return err //nolint:wrapcheck
		}

		if !changed {
			return ErrTerminalState
		}

		return nil
	})
	if err != nil {
		return orWrap(err, "failed to update reservation")
	}

	s.afterCommit(ctx, target, model.EventUpdated, nil)

	return nil
}

// UpdatePayment records a payment change. It applies in any status so cancelled bookings can be refunded.
func (s *serviceImpl) UpdatePayment(ctx context.Context, id string, req dto.UpdatePaymentRequest) (err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".UpdatePayment")
	defer scope.End()
	defer scope.TraceIfError(&err)

	if !shared.IsAdmin(ctx) {
		return ErrAdminOnly
	}

	if req == (dto.UpdatePaymentRequest{}) {
		return failure.BadRequestFromString("update request cannot be empty")
	}

	reservation, err := s.load(ctx, id)
	if err != nil {
		return err
	}

	err = s.repo.Update(ctx, shared.TransformFields(req, shared.UserID(ctx)), shared.FilterByID(id, model.FieldID, model.TableName))
	if err != nil {
		return orWrap(err, "failed to update reservation payment")
	}

	if req.PaymentMethod != nil {
		reservation.PaymentMethod = *req.PaymentMethod
	}

	if req.PaymentStatus != nil {
		reservation.PaymentStatus = *req.PaymentStatus
	}

	s.afterCommit(ctx, reservation, model.EventUpdated, nil)

	return nil
}

func (s *serviceImpl) Get(ctx context.Context, id string) (res dto.ReservationResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Get")
	defer scope.End()
	defer scope.TraceIfError(&err)

	reservation, err := s.load(ctx, id)
	if err != nil {
		return res, err
	}

	if err = authorize(ctx, reservation); err != nil {
		return res, err
	}

	res.FromModel(reservation)

	return res, nil
}

func (s *serviceImpl) ListMine(ctx context.Context, params gDto.QueryParams, filter dto.ListFilter) (res dto.GetReservationsResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".ListMine")
	defer scope.End()
	defer scope.TraceIfError(&err)

	userID := shared.UserID(ctx)
	if userID == constant.Empty {
		return res, failure.Unauthorized("authentication required")
	}

	return s.list(ctx, params, filter.ToFilterGroup(userID))
}

func (s *serviceImpl) ListAll(ctx context.Context, params gDto.QueryParams, filter dto.ListFilter) (res dto.GetReservationsResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".ListAll")
	defer scope.End()
	defer scope.TraceIfError(&err)

	return s.list(ctx, params, filter.ToFilterGroup(constant.Empty))
}

func (s *serviceImpl) ListByRestaurant(ctx context.Context, restaurantID string, params gDto.QueryParams, filter dto.ListFilter) (res dto.GetReservationsResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".ListByRestaurant")
	defer scope.End()
	defer scope.TraceIfError(&err)

	exist, err := s.restaurantRepo.Exist(ctx, shared.FilterByID(restaurantID, restaurantModel.FieldID, restaurantModel.TableName))
	if err != nil {
		return res, orWrap(err, "failed to check restaurant existence")
	}

	if !exist {
		return res, failure.NotFound("restaurant not found")
	}

	filter.RestaurantID = restaurantID

	return s.list(ctx, params, filter.ToFilterGroup(constant.Empty))
}

func (s *serviceImpl) list(ctx context.Context, params gDto.QueryParams, filter gDto.FilterGroup) (res dto.GetReservationsResponse, err error) {
	params.RestrictSort(model.SortableFields)

	total, err := s.repo.Count(ctx, filter)
	if err != nil {
		return res, orWrap(err, "failed to count reservations")
	}

	reservations, err := s.repo.GetAll(ctx, params, filter)
	if err != nil {
		return res, orWrap(err, "failed to get reservations")
	}

	res.FromModels(reservations, total, params.Limit)

	return res, nil
}

func (s *serviceImpl) emailJob(template string, r model.Reservation, restaurantName string) notificationModel.EmailJob {
	return notificationModel.EmailJob{
		Template:        template,
		To:              r.Email,
		ReservationID:   r.ID,
		RestaurantName:  restaurantName,
		ReservationDate: r.ReservationDate.String(),
		StartTime:       r.StartTime,
		EndTime:         r.EndTime,
		GuestCount:      r.GuestCount,
		TotalPrice:      r.TotalPrice,
	}
}

func (s *serviceImpl) restaurantName(ctx context.Context, restaurantID string) string {
	restaurant, err := s.restaurantRepo.Get(ctx, shared.FilterByID(restaurantID, restaurantModel.FieldID, restaurantModel.TableName))
	if err != nil {
		log.Warn().Err(err).Str("restaurant_id", restaurantID).Msg("failed to resolve restaurant name for email")

		return constant.Empty
	}

	return restaurant.Name
}

// storeReceipt archives the receipt and records its URL. Failures only cost the receipt link.
func (s *serviceImpl) storeReceipt(ctx context.Context, r model.Reservation) string {
	data, err := json.Marshal(dto.NewReceipt(r))
	if err != nil {
		log.Error().Err(err).Str("reservation_id", r.ID).Msg("failed to encode receipt")

		return constant.Empty
	}

	receiptURL, err := s.storage.PutObject(ctx, receiptDirectory+"/"+r.RestaurantID, r.ID+".json", constant.ContentTypeJSON, data)
	if err != nil {
		log.Error().Err(err).Str("reservation_id", r.ID).Msg("failed to upload receipt")

		return constant.Empty
	}

	err = s.repo.Update(ctx, map[string]any{
		model.FieldReceiptURL:    receiptURL,
		constant.FieldModifiedAt: s.now(),
	}, shared.FilterByID(r.ID, model.FieldID, model.TableName))
	if err != nil {
		log.Error().Err(err).Str("reservation_id", r.ID).Msg("failed to save receipt url")
	}

	return receiptURL
}

func (s *serviceImpl) dispatch(ctx context.Context, job notificationModel.EmailJob) {
	if err := s.dispatcher.Dispatch(ctx, job); err != nil {
		log.Error().Err(err).Str("reservation_id", job.ReservationID).Msg("failed to queue reservation email")
	}
}

// afterCommit runs the side effects of a committed change without holding up the request.
func (s *serviceImpl) afterCommit(ctx context.Context, r model.Reservation, event string, job *notificationModel.EmailJob) {
	go s.sideEffects(context.WithoutCancel(ctx), r, event, job)
}

func (s *serviceImpl) sideEffects(ctx context.Context, r model.Reservation, event string, job *notificationModel.EmailJob) {
	if job != nil {
		s.dispatch(ctx, *job)
	}

	if err := s.events.Publish(ctx, model.NewEvent(event, r, s.now())); err != nil {
		log.Error().Err(err).Str("reservation_id", r.ID).Str("event", event).Msg("failed to publish reservation event")
	}

	s.availability.InvalidateRestaurant(ctx, r.RestaurantID)
}
