package service

//go:generate go run go.uber.org/mock/mockgen -source=./service.go -destination=./mocks/service_mock.go -package=mocks

import (
	"context"
	"dinebook/config"
	"dinebook/infras/otel"
	"dinebook/internal/domains/availability/model"
	"dinebook/internal/domains/availability/repository"
	"dinebook/shared"
	"dinebook/shared/cache"
	"dinebook/shared/constant"
	"dinebook/shared/failure"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/rs/zerolog/log"
)

const (
	cacheRestaurantAvailability = "availability:restaurant"

	lastMinuteOfDay = "23:59"
)

var ErrInvalidWindow = failure.WithReason(400, "invalid_time_window", "start time must be before end time")

// Overlaps reports whether [aStart, aEnd) and [bStart, bEnd) intersect.
// Zero-padded "HH:MM" strings compare in clock order.
func Overlaps(aStart, aEnd, bStart, bEnd string) bool {
	return aStart < bEnd && bStart < aEnd
}

// EndTime adds minutes to an "HH:MM" start, clamped to the last minute of the day.
func EndTime(start string, minutes int) (string, error) {
	t, err := time.Parse(constant.TimeLayout, start)
	if err != nil {
		return constant.Empty, fmt.Errorf("invalid start time %q: %w", start, err)
	}

	end := t.Add(time.Duration(minutes) * time.Minute)
	if end.Day() != t.Day() {
		return lastMinuteOfDay, nil
	}

	return end.Format(constant.TimeLayout), nil
}

// ValidateWindow checks the date and both clock times parse and that start precedes end.
func ValidateWindow(date, start, end string) error {
	if _, err := time.Parse(constant.DateLayout, date); err != nil {
		return failure.BadRequestFromString("date must use the YYYY-MM-DD format") // nolint:wrapcheck
	}

	if _, err := time.Parse(constant.TimeLayout, start); err != nil || len(start) != len(constant.TimeLayout) {
		return failure.BadRequestFromString("start time must use the HH:MM format") // nolint:wrapcheck
	}

	if _, err := time.Parse(constant.TimeLayout, end); err != nil || len(end) != len(constant.TimeLayout) {
		return failure.BadRequestFromString("end time must use the HH:MM format") // nolint:wrapcheck
	}

	if start >= end {
		return ErrInvalidWindow
	}

	return nil
}

type Availability interface {
	IsTableAvailable(ctx context.Context, query model.Query) (bool, error)
	IsTableAvailableTx(ctx context.Context, tx *sqlx.Tx, query model.Query) (bool, error)
	GetAvailableTableIDs(ctx context.Context, query model.Query) ([]string, error)
	CheckRestaurantAvailability(ctx context.Context, query model.Query) ([]model.TableAvailability, error)
	RestaurantIDsWithFreeTable(ctx context.Context, query model.Query) ([]string, error)
	TablesWithReservations(ctx context.Context, query model.Query) ([]model.TableReservations, error)
	InvalidateRestaurant(ctx context.Context, restaurantID string)
}

type serviceImpl struct {
	repo  repository.Availability
	cfg   *config.Config
	cache cache.RedisCache
	otel  otel.Otel
}

func New(repo repository.Availability, cfg *config.Config, cache cache.RedisCache, otel otel.Otel) Availability {
	return &serviceImpl{
		repo:  repo,
		cfg:   cfg,
		cache: cache,
		otel:  otel,
	}
}

func (s *serviceImpl) IsTableAvailable(ctx context.Context, query model.Query) (available bool, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".IsTableAvailable")
	defer scope.End()
	defer scope.TraceIfError(&err)

	if err = ValidateWindow(query.Date, query.StartTime, query.EndTime); err != nil {
		return false, err
	}

	count, err := s.repo.CountConflicts(ctx, query)
	if err != nil {
		log.Error().Err(err).Str("table_id", query.TableID).Msg("failed to check table availability")

		return false, fmt.Errorf("failed to check table availability: %w", err)
	}

	return count == 0, nil
}

// IsTableAvailableTx runs the conflict check inside the caller's transaction.
func (s *serviceImpl) IsTableAvailableTx(ctx context.Context, tx *sqlx.Tx, query model.Query) (available bool, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".IsTableAvailableTx")
	defer scope.End()
	defer scope.TraceIfError(&err)

	count, err := s.repo.CountConflictsTx(ctx, tx, query)
	if err != nil {
		log.Error().Err(err).Str("table_id", query.TableID).Msg("failed to check table availability")

		return false, fmt.Errorf("failed to check table availability: %w", err)
	}

	return count == 0, nil
}

func (s *serviceImpl) GetAvailableTableIDs(ctx context.Context, query model.Query) (ids []string, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".GetAvailableTableIDs")
	defer scope.End()
	defer scope.TraceIfError(&err)

	if err = ValidateWindow(query.Date, query.StartTime, query.EndTime); err != nil {
		return []string{}, err
	}

	ids, err = s.repo.AvailableTableIDs(ctx, query)
	if err != nil {
		log.Error().Err(err).Str("restaurant_id", query.RestaurantID).Msg("failed to get available tables")

		return []string{}, fmt.Errorf("failed to get available tables: %w", err)
	}

	return ids, nil
}

// CheckRestaurantAvailability lists every table of the restaurant with its availability.
// The listing is advisory; booking re-checks under the slot lock.
func (s *serviceImpl) CheckRestaurantAvailability(ctx context.Context, query model.Query) (res []model.TableAvailability, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".CheckRestaurantAvailability")
	defer scope.End()
	defer scope.TraceIfError(&err)

	if err = ValidateWindow(query.Date, query.StartTime, query.EndTime); err != nil {
		return []model.TableAvailability{}, err
	}

	cacheKey := shared.BuildCacheKey(cacheRestaurantAvailability, query.RestaurantID, query.Date, query.StartTime, query.EndTime, fmt.Sprint(query.MinCapacity))

	if err = s.cache.Get(ctx, cacheKey, &res); err == nil {
		log.Info().Str("cacheKey", cacheKey).Msg("cache hit for restaurant availability")

		return res, nil
	}

	res, err = s.repo.TablesWithAvailability(ctx, query)
	if err != nil {
		log.Error().Err(err).Str("restaurant_id", query.RestaurantID).Msg("failed to check restaurant availability")

		return []model.TableAvailability{}, fmt.Errorf("failed to check restaurant availability: %w", err)
	}

	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Save(c, cacheKey, res, s.cfg.Cache.AvailabilityTTL); err != nil {
			log.Error().Err(err).Msg("failed to save restaurant availability to cache")
		}
	}()

	return res, nil
}

func (s *serviceImpl) RestaurantIDsWithFreeTable(ctx context.Context, query model.Query) (ids []string, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".RestaurantIDsWithFreeTable")
	defer scope.End()
	defer scope.TraceIfError(&err)

	if err = ValidateWindow(query.Date, query.StartTime, query.EndTime); err != nil {
		return []string{}, err
	}

	ids, err = s.repo.RestaurantIDsWithFreeTable(ctx, query)
	if err != nil {
		log.Error().Err(err).Msg("failed to get restaurants with a free table")

		return []string{}, fmt.Errorf("failed to get restaurants with a free table: %w", err)
	}

	return ids, nil
}

// TablesWithReservations lays out every table of the restaurant with its bookings on query.Date.
// When the query carries a window, bookings overlapping it are flagged.
func (s *serviceImpl) TablesWithReservations(ctx context.Context, query model.Query) (res []model.TableReservations, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".TablesWithReservations")
	defer scope.End()
	defer scope.TraceIfError(&err)

	windowed := query.StartTime != constant.Empty || query.EndTime != constant.Empty
	if windowed {
		err = ValidateWindow(query.Date, query.StartTime, query.EndTime)
	} else if _, parseErr := time.Parse(constant.DateLayout, query.Date); parseErr != nil {
		err = failure.BadRequestFromString("date must use the YYYY-MM-DD format") // nolint:wrapcheck
	}

	if err != nil {
		return []model.TableReservations{}, err
	}

	tables, err := s.repo.FloorTables(ctx, query)
	if err != nil {
		log.Error().Err(err).Str("restaurant_id", query.RestaurantID).Msg("failed to get restaurant tables")

		return []model.TableReservations{}, fmt.Errorf("failed to get restaurant tables: %w", err)
	}

	slots, err := s.repo.BookedSlots(ctx, query)
	if err != nil {
		log.Error().Err(err).Str("restaurant_id", query.RestaurantID).Msg("failed to get booked slots")

		return []model.TableReservations{}, fmt.Errorf("failed to get booked slots: %w", err)
	}

	byTable := make(map[string][]model.BookedSlot, len(tables))

	for _, slot := range slots {
		slot.OverlapsWindow = windowed && Overlaps(slot.StartTime, slot.EndTime, query.StartTime, query.EndTime)
		byTable[slot.TableID] = append(byTable[slot.TableID], slot)
	}

	for i := range tables {
		tables[i].Reservations = byTable[tables[i].ID]
		if tables[i].Reservations == nil {
			tables[i].Reservations = []model.BookedSlot{}
		}
	}

	return tables, nil
}

// InvalidateRestaurant drops every cached availability listing of the restaurant.
func (s *serviceImpl) InvalidateRestaurant(ctx context.Context, restaurantID string) {
	shared.InvalidateCaches(ctx, s.cache, shared.BuildCacheKey(cacheRestaurantAvailability, restaurantID))
}
