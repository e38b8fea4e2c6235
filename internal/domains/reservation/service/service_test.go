package service_test

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/assert"
	"go.uber.org/mock/gomock"

	"dinebook/config"
	"dinebook/infras/otel/mocks"
	s3Mocks "dinebook/infras/s3/mocks"
	availabilityModel "dinebook/internal/domains/availability/model"
	availabilityMocks "dinebook/internal/domains/availability/service/mocks"
	notificationModel "dinebook/internal/domains/notification/model"
	notificationMocks "dinebook/internal/domains/notification/service/mocks"
	"dinebook/internal/domains/pricing"
	promoDto "dinebook/internal/domains/promo/model/dto"
	promoMocks "dinebook/internal/domains/promo/service/mocks"
	realtimeMocks "dinebook/internal/domains/realtime/service/mocks"
	reservationMocks "dinebook/internal/domains/reservation/mocks"
	"dinebook/internal/domains/reservation/model"
	"dinebook/internal/domains/reservation/model/dto"
	"dinebook/internal/domains/reservation/repository"
	"dinebook/internal/domains/reservation/service"
	restaurantMocks "dinebook/internal/domains/restaurant/mocks"
	restaurantModel "dinebook/internal/domains/restaurant/model"
	tableMocks "dinebook/internal/domains/table/mocks"
	tableModel "dinebook/internal/domains/table/model"
	"dinebook/shared/constant"
	gDto "dinebook/shared/dto"
	"dinebook/shared/failure"
	gModel "dinebook/shared/model"
)

const (
	restaurantID = "5b0f3f0e-2d56-4c8e-9a53-6f5d8d1f0a01"
	tableID      = "8c1d2e3f-4a5b-4c6d-8e7f-901a2b3c4d5e"
	ownerID      = "user-1"
)

type fixture struct {
	svc            service.Reservation
	repo           *reservationMocks.MockReservation
	tableRepo      *tableMocks.MockTable
	restaurantRepo *restaurantMocks.MockRestaurant
	availability   *availabilityMocks.MockAvailability
	promo          *promoMocks.MockPromo
	dispatcher     *notificationMocks.MockDispatcher
	events         *realtimeMocks.MockPublisher
	storage        *s3Mocks.MockS3
}

func newFixture(ctrl *gomock.Controller) fixture {
	f := fixture{
		repo:           reservationMocks.NewMockReservation(ctrl),
		tableRepo:      tableMocks.NewMockTable(ctrl),
		restaurantRepo: restaurantMocks.NewMockRestaurant(ctrl),
		availability:   availabilityMocks.NewMockAvailability(ctrl),
		promo:          promoMocks.NewMockPromo(ctrl),
		dispatcher:     notificationMocks.NewMockDispatcher(ctrl),
		events:         realtimeMocks.NewMockPublisher(ctrl),
		storage:        s3Mocks.NewMockS3(ctrl),
	}

	cfg := &config.Config{}
	cfg.App.PublicURL = "https://dinebook.test/"
	cfg.Reservation.ConfirmationTTLHours = 24

	f.svc = service.New(
		f.repo,
		f.tableRepo,
		f.restaurantRepo,
		f.availability,
		f.promo,
		pricing.NewCalculator(pricing.DefaultRates),
		f.dispatcher,
		f.events,
		f.storage,
		cfg,
		mocks.NewOtel(),
	)

	return f
}

func asUser(id, role string) context.Context {
	ctx := context.WithValue(context.Background(), constant.ContextKeyUserID, id)
	ctx = context.WithValue(ctx, constant.ContextKeyUserEmail, id+"@example.com")

	return context.WithValue(ctx, constant.ContextKeyUserRole, role)
}

func wait(t *testing.T, done <-chan struct{}) {
	t.Helper()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("side effects did not run")
	}
}

// expectSideEffects accepts the post-commit calls and closes the returned channel once they ran.
func (f fixture) expectSideEffects(event string) <-chan struct{} {
	done := make(chan struct{})

	f.events.EXPECT().Publish(gomock.Any(), gomock.Any()).DoAndReturn(func(_ context.Context, e model.ReservationEvent) error {
		if e.Type != event {
			return errors.New("unexpected event " + e.Type)
		}

		return nil
	})
	f.availability.EXPECT().InvalidateRestaurant(gomock.Any(), restaurantID).Do(func(context.Context, string) {
		close(done)
	})

	return done
}

func (f fixture) expectBookable(capacity int) {
	f.tableRepo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(tableModel.Table{
		ID:           tableID,
		RestaurantID: restaurantID,
		Capacity:     capacity,
		IsActive:     true,
	}, nil)
	f.restaurantRepo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(restaurantModel.Restaurant{
		ID:       restaurantID,
		Name:     "Sea Breeze",
		IsActive: true,
	}, nil)
}

func (f fixture) expectSlotLock() {
	f.repo.EXPECT().WithinSlotLock(gomock.Any(), tableID, "2025-06-01", gomock.Any()).
		DoAndReturn(func(ctx context.Context, _, _ string, fn repository.TxFunc) error {
			return fn(ctx, nil)
		})
}

func stored(status string) model.Reservation {
	tok := strings.Repeat("ab", 32)
	expires := time.Now().Add(time.Hour)

	return model.Reservation{
		ID:                "res-1",
		UserID:            ownerID,
		RestaurantID:      restaurantID,
		TableID:           tableID,
		ReservationDate:   gModel.Date("2025-06-01"),
		StartTime:         "19:00",
		EndTime:           "21:00",
		GuestCount:        2,
		Status:            status,
		Email:             "guest@example.com",
		ConfirmationToken: &tok,
		TokenExpiresAt:    &expires,
		TotalPrice:        15.75,
	}
}

func createRequest() dto.CreateReservationRequest {
	return dto.CreateReservationRequest{
		RestaurantID:    restaurantID,
		TableID:         tableID,
		ReservationDate: "2025-06-01",
		StartTime:       "19:00",
		EndTime:         "21:00",
		GuestCount:      2,
		CardNumber:      "4111 1111 1111 1234",
	}
}

func TestReservationService_Create(t *testing.T) {
	t.Run("success", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		f := newFixture(ctrl)

		f.expectBookable(4)
		f.expectSlotLock()
		f.availability.EXPECT().IsTableAvailableTx(gomock.Any(), gomock.Any(), availabilityModel.Query{
			TableID:   tableID,
			Date:      "2025-06-01",
			StartTime: "19:00",
			EndTime:   "21:00",
		}).Return(true, nil)

		var inserted model.Reservation

		f.repo.EXPECT().InsertTx(gomock.Any(), gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ context.Context, _ *sqlx.Tx, r model.Reservation) error {
				inserted = r

				return nil
			})

		var job notificationModel.EmailJob

		f.dispatcher.EXPECT().Dispatch(gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ context.Context, j notificationModel.EmailJob) error {
				job = j

				return nil
			})
		done := f.expectSideEffects(model.EventCreated)

		res, err := f.svc.Create(asUser(ownerID, constant.RoleUser), createRequest())

		assert.NoError(t, err)
		assert.Equal(t, inserted.ID, res.ID)
		assert.Equal(t, model.StatusPending, inserted.Status)
		assert.Equal(t, ownerID, inserted.UserID)
		assert.Equal(t, ownerID+"@example.com", inserted.Email)
		assert.Equal(t, "1234", inserted.CardLastFour)
		assert.Equal(t, model.PaymentMethodCash, inserted.PaymentMethod)
		assert.Equal(t, model.PaymentStatusPending, inserted.PaymentStatus)
		assert.Equal(t, 15.75, inserted.TotalPrice)
		assert.True(t, inserted.HasToken())
		assert.Len(t, *inserted.ConfirmationToken, 64)
		assert.True(t, inserted.TokenExpiresAt.After(time.Now().Add(23*time.Hour)))

		wait(t, done)

		assert.Equal(t, notificationModel.TemplateConfirmation, job.Template)
		assert.Equal(t, "Sea Breeze", job.RestaurantName)
		assert.Equal(t, "https://dinebook.test/confirm-reservation?token="+*inserted.ConfirmationToken, job.ConfirmationURL)
	})

	t.Run("promo code discounts the total", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		f := newFixture(ctrl)

		req := createRequest()
		req.PromoCode = " SUMMER20 "

		f.expectBookable(4)
		f.expectSlotLock()
		f.availability.EXPECT().IsTableAvailableTx(gomock.Any(), gomock.Any(), gomock.Any()).Return(true, nil)
		f.promo.EXPECT().ApplyTx(gomock.Any(), gomock.Any(), "SUMMER20").Return(20.0, nil)

		var inserted model.Reservation

		f.repo.EXPECT().InsertTx(gomock.Any(), gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ context.Context, _ *sqlx.Tx, r model.Reservation) error {
				inserted = r

				return nil
			})
		f.dispatcher.EXPECT().Dispatch(gomock.Any(), gomock.Any()).Return(nil)
		done := f.expectSideEffects(model.EventCreated)

		_, err := f.svc.Create(asUser(ownerID, constant.RoleUser), req)

		assert.NoError(t, err)
		assert.Equal(t, 20.0, inserted.DiscountPercentage)
		assert.Equal(t, 3.15, inserted.DiscountAmount)
		assert.Equal(t, 12.6, inserted.TotalPrice)
		assert.Equal(t, "SUMMER20", inserted.PromoCode)

		wait(t, done)
	})

	t.Run("invalid promo code aborts the booking", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		f := newFixture(ctrl)

		req := createRequest()
		req.PromoCode = "EXPIRED"

		f.expectBookable(4)
		f.expectSlotLock()
		f.availability.EXPECT().IsTableAvailableTx(gomock.Any(), gomock.Any(), gomock.Any()).Return(true, nil)
		f.promo.EXPECT().ApplyTx(gomock.Any(), gomock.Any(), "EXPIRED").Return(0.0, service.ErrInvalidPromoCode)

		_, err := f.svc.Create(asUser(ownerID, constant.RoleUser), req)

		assert.Equal(t, 400, failure.GetCode(err))
		assert.Equal(t, "invalid_promo_code", failure.GetReason(err))
	})

	t.Run("slot conflict", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		f := newFixture(ctrl)

		f.expectBookable(4)
		f.expectSlotLock()
		f.availability.EXPECT().IsTableAvailableTx(gomock.Any(), gomock.Any(), gomock.Any()).Return(false, nil)

		_, err := f.svc.Create(asUser(ownerID, constant.RoleUser), createRequest())

		assert.Equal(t, 409, failure.GetCode(err))
		assert.Equal(t, "slot_conflict", failure.GetReason(err))
	})

	t.Run("card payment needs a card number", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		f := newFixture(ctrl)

		req := createRequest()
		req.PaymentMethod = model.PaymentMethodCard
		req.CardNumber = ""

		_, err := f.svc.Create(asUser(ownerID, constant.RoleUser), req)

		assert.Equal(t, 400, failure.GetCode(err))
		assert.Equal(t, "card_required", failure.GetReason(err))
	})

	t.Run("party larger than the table", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		f := newFixture(ctrl)

		req := createRequest()
		req.GuestCount = 6

		f.expectBookable(4)

		_, err := f.svc.Create(asUser(ownerID, constant.RoleUser), req)

		assert.Equal(t, 400, failure.GetCode(err))
		assert.Equal(t, "over_capacity", failure.GetReason(err))
	})

	t.Run("table of another restaurant", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		f := newFixture(ctrl)

		f.tableRepo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(tableModel.Table{
			ID:           tableID,
			RestaurantID: "other",
			Capacity:     4,
			IsActive:     true,
		}, nil)

		_, err := f.svc.Create(asUser(ownerID, constant.RoleUser), createRequest())

		assert.Equal(t, 404, failure.GetCode(err))
	})

	t.Run("end before start", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		f := newFixture(ctrl)

		req := createRequest()
		req.EndTime = "18:00"

		_, err := f.svc.Create(asUser(ownerID, constant.RoleUser), req)

		assert.Equal(t, 400, failure.GetCode(err))
	})

	t.Run("insert failure", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		f := newFixture(ctrl)

		f.expectBookable(4)
		f.expectSlotLock()
		f.availability.EXPECT().IsTableAvailableTx(gomock.Any(), gomock.Any(), gomock.Any()).Return(true, nil)
		f.repo.EXPECT().InsertTx(gomock.Any(), gomock.Any(), gomock.Any()).Return(errors.New("db down"))

		_, err := f.svc.Create(asUser(ownerID, constant.RoleUser), createRequest())

		assert.ErrorContains(t, err, "db down")
	})
}

func TestReservationService_Confirm(t *testing.T) {
	tok := strings.Repeat("ab", 32)

	t.Run("success archives a receipt", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		f := newFixture(ctrl)

		f.repo.EXPECT().Get(gomock.Any(), repository.ByToken(tok)).Return(stored(model.StatusPending), nil)
		f.repo.EXPECT().Transition(gomock.Any(), "res-1", []string{model.StatusPending}, gomock.Any()).
			DoAndReturn(func(_ context.Context, _ string, _ []string, fields map[string]any) (bool, error) {
				assert.Equal(t, model.StatusConfirmed, fields[model.FieldStatus])
				assert.Nil(t, fields[model.FieldConfirmationToken])

				return true, nil
			})
		f.restaurantRepo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(restaurantModel.Restaurant{ID: restaurantID, Name: "Sea Breeze"}, nil)
		f.storage.EXPECT().PutObject(gomock.Any(), "receipts/"+restaurantID, "res-1.json", constant.ContentTypeJSON, gomock.Any()).
			Return("https://cdn.test/receipts/res-1.json", nil)
		f.repo.EXPECT().Update(gomock.Any(), gomock.Any(), gomock.Any()).Return(nil)

		var job notificationModel.EmailJob

		f.dispatcher.EXPECT().Dispatch(gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ context.Context, j notificationModel.EmailJob) error {
				job = j

				return nil
			})
		done := f.expectSideEffects(model.EventConfirmed)

		res, err := f.svc.Confirm(context.Background(), tok)

		assert.NoError(t, err)
		assert.Equal(t, model.StatusConfirmed, res.Status)
		assert.False(t, res.AwaitsConfirmation)
		assert.NotEmpty(t, res.ConfirmedAt)

		wait(t, done)

		assert.Equal(t, notificationModel.TemplateConfirmed, job.Template)
		assert.Equal(t, "https://cdn.test/receipts/res-1.json", job.ReceiptURL)
	})

	t.Run("empty token", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		f := newFixture(ctrl)

		_, err := f.svc.Confirm(context.Background(), "")

		assert.Equal(t, "token_not_found", failure.GetReason(err))
	})

	t.Run("unknown token", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		f := newFixture(ctrl)

		f.repo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(model.Reservation{}, nil)

		_, err := f.svc.Confirm(context.Background(), tok)

		assert.Equal(t, 404, failure.GetCode(err))
		assert.Equal(t, "token_not_found", failure.GetReason(err))
	})

	t.Run("cancelled reservation", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		f := newFixture(ctrl)

		f.repo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(stored(model.StatusCancelled), nil)

		_, err := f.svc.Confirm(context.Background(), tok)

		assert.Equal(t, 409, failure.GetCode(err))
		assert.Equal(t, "not_pending", failure.GetReason(err))
	})

	t.Run("expired token", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		f := newFixture(ctrl)

		r := stored(model.StatusPending)
		expired := time.Now().Add(-time.Minute)
		r.TokenExpiresAt = &expired

		f.repo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(r, nil)

		_, err := f.svc.Confirm(context.Background(), tok)

		assert.Equal(t, 400, failure.GetCode(err))
		assert.Equal(t, "token_expired", failure.GetReason(err))
	})

	t.Run("lost race", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		f := newFixture(ctrl)

		f.repo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(stored(model.StatusPending), nil)
		f.repo.EXPECT().Transition(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).Return(false, nil)

		_, err := f.svc.Confirm(context.Background(), tok)

		assert.Equal(t, "not_pending", failure.GetReason(err))
	})
}

func TestReservationService_ResendConfirmation(t *testing.T) {
	t.Run("extends the token and mails it again", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		f := newFixture(ctrl)

		r := stored(model.StatusPending)
		done := make(chan struct{})

		f.repo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(r, nil)
		f.repo.EXPECT().Transition(gomock.Any(), "res-1", []string{model.StatusPending}, gomock.Any()).Return(true, nil)
		f.restaurantRepo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(restaurantModel.Restaurant{ID: restaurantID, Name: "Sea Breeze"}, nil)
		f.dispatcher.EXPECT().Dispatch(gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ context.Context, j notificationModel.EmailJob) error {
				defer close(done)

				assert.True(t, strings.HasSuffix(j.ConfirmationURL, *r.ConfirmationToken))

				return nil
			})

		err := f.svc.ResendConfirmation(asUser(ownerID, constant.RoleUser), "res-1")

		assert.NoError(t, err)
		wait(t, done)
	})

	t.Run("already confirmed", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		f := newFixture(ctrl)

		f.repo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(stored(model.StatusConfirmed), nil)

		err := f.svc.ResendConfirmation(asUser(ownerID, constant.RoleUser), "res-1")

		assert.Equal(t, "not_pending", failure.GetReason(err))
	})
}

func TestReservationService_Cancel(t *testing.T) {
	t.Run("owner cancels", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		f := newFixture(ctrl)

		f.repo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(stored(model.StatusConfirmed), nil)
		f.repo.EXPECT().Transition(gomock.Any(), "res-1", model.ActiveStatuses, gomock.Any()).
			DoAndReturn(func(_ context.Context, _ string, _ []string, fields map[string]any) (bool, error) {
				assert.Equal(t, model.StatusCancelled, fields[model.FieldStatus])
				assert.Contains(t, fields, model.FieldCancelledAt)

				return true, nil
			})
		done := f.expectSideEffects(model.EventCancelled)

		err := f.svc.Cancel(asUser(ownerID, constant.RoleUser), "res-1")

		assert.NoError(t, err)
		wait(t, done)
	})

	t.Run("another user", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		f := newFixture(ctrl)

		f.repo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(stored(model.StatusPending), nil)

		err := f.svc.Cancel(asUser("intruder", constant.RoleUser), "res-1")

		assert.Equal(t, 403, failure.GetCode(err))
	})

	t.Run("already completed", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		f := newFixture(ctrl)

		f.repo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(stored(model.StatusCompleted), nil)

		err := f.svc.Cancel(asUser(ownerID, constant.RoleUser), "res-1")

		assert.Equal(t, 409, failure.GetCode(err))
		assert.Equal(t, "terminal_state", failure.GetReason(err))
	})

	t.Run("missing", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		f := newFixture(ctrl)

		f.repo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(model.Reservation{}, nil)

		err := f.svc.Cancel(asUser(ownerID, constant.RoleUser), "res-1")

		assert.Equal(t, 404, failure.GetCode(err))
	})
}

func TestReservationService_Complete(t *testing.T) {
	t.Run("requires an administrator", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		f := newFixture(ctrl)

		err := f.svc.Complete(asUser(ownerID, constant.RoleUser), "res-1")

		assert.Equal(t, 403, failure.GetCode(err))
	})

	t.Run("admin completes", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		f := newFixture(ctrl)

		f.repo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(stored(model.StatusConfirmed), nil)
		f.repo.EXPECT().Transition(gomock.Any(), "res-1", model.ActiveStatuses, gomock.Any()).Return(true, nil)
		done := f.expectSideEffects(model.EventCompleted)

		err := f.svc.Complete(asUser("admin-1", constant.RoleAdmin), "res-1")

		assert.NoError(t, err)
		wait(t, done)
	})
}

func TestReservationService_Update(t *testing.T) {
	guests := 3

	t.Run("empty request", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		f := newFixture(ctrl)

		err := f.svc.Update(asUser(ownerID, constant.RoleUser), "res-1", dto.UpdateReservationRequest{})

		assert.Equal(t, 400, failure.GetCode(err))
	})

	t.Run("reprices a larger party", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		f := newFixture(ctrl)

		f.repo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(stored(model.StatusPending), nil)
		f.expectBookable(4)
		f.expectSlotLock()
		f.availability.EXPECT().IsTableAvailableTx(gomock.Any(), gomock.Any(), availabilityModel.Query{
			TableID:              tableID,
			Date:                 "2025-06-01",
			StartTime:            "19:00",
			EndTime:              "21:00",
			ExcludeReservationID: "res-1",
		}).Return(true, nil)
		f.repo.EXPECT().TransitionTx(gomock.Any(), gomock.Any(), "res-1", model.ActiveStatuses, gomock.Any()).
			DoAndReturn(func(_ context.Context, _ *sqlx.Tx, _ string, _ []string, fields map[string]any) (bool, error) {
				assert.Equal(t, &guests, fields[model.FieldGuestCount])
				assert.Equal(t, 21.0, fields[model.FieldTotalPrice])

				return true, nil
			})
		done := f.expectSideEffects(model.EventUpdated)

		err := f.svc.Update(asUser(ownerID, constant.RoleUser), "res-1", dto.UpdateReservationRequest{GuestCount: &guests})

		assert.NoError(t, err)
		wait(t, done)
	})

	t.Run("moved onto a taken slot", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		f := newFixture(ctrl)

		start, end := "20:00", "22:00"

		f.repo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(stored(model.StatusConfirmed), nil)
		f.expectBookable(4)
		f.expectSlotLock()
		f.availability.EXPECT().IsTableAvailableTx(gomock.Any(), gomock.Any(), gomock.Any()).Return(false, nil)

		err := f.svc.Update(asUser(ownerID, constant.RoleUser), "res-1", dto.UpdateReservationRequest{StartTime: &start, EndTime: &end})

		assert.Equal(t, "slot_conflict", failure.GetReason(err))
	})

	t.Run("cancelled reservation", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		f := newFixture(ctrl)

		f.repo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(stored(model.StatusCancelled), nil)

		err := f.svc.Update(asUser(ownerID, constant.RoleUser), "res-1", dto.UpdateReservationRequest{GuestCount: &guests})

		assert.Equal(t, "terminal_state", failure.GetReason(err))
	})

	t.Run("cancelled while the update was in flight", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		f := newFixture(ctrl)

		f.repo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(stored(model.StatusConfirmed), nil)
		f.expectBookable(4)
		f.expectSlotLock()
		f.availability.EXPECT().IsTableAvailableTx(gomock.Any(), gomock.Any(), gomock.Any()).Return(true, nil)
		f.repo.EXPECT().TransitionTx(gomock.Any(), gomock.Any(), "res-1", model.ActiveStatuses, gomock.Any()).Return(false, nil)

		err := f.svc.Update(asUser(ownerID, constant.RoleUser), "res-1", dto.UpdateReservationRequest{GuestCount: &guests})

		assert.Equal(t, 409, failure.GetCode(err))
		assert.Equal(t, "terminal_state", failure.GetReason(err))
	})

	t.Run("write failure", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		f := newFixture(ctrl)

		f.repo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(stored(model.StatusPending), nil)
		f.expectBookable(4)
		f.expectSlotLock()
		f.availability.EXPECT().IsTableAvailableTx(gomock.Any(), gomock.Any(), gomock.Any()).Return(true, nil)
		f.repo.EXPECT().TransitionTx(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).Return(false, errors.New("db down"))

		err := f.svc.Update(asUser(ownerID, constant.RoleUser), "res-1", dto.UpdateReservationRequest{GuestCount: &guests})

		assert.ErrorContains(t, err, "db down")
	})
}

func TestReservationService_UpdatePayment(t *testing.T) {
	paid := model.PaymentStatusPaid

	t.Run("requires an administrator", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		f := newFixture(ctrl)

		err := f.svc.UpdatePayment(asUser(ownerID, constant.RoleUser), "res-1", dto.UpdatePaymentRequest{PaymentStatus: &paid})

		assert.Equal(t, 403, failure.GetCode(err))
	})

	t.Run("empty request", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		f := newFixture(ctrl)

		err := f.svc.UpdatePayment(asUser("admin-1", constant.RoleAdmin), "res-1", dto.UpdatePaymentRequest{})

		assert.Equal(t, 400, failure.GetCode(err))
	})

	t.Run("missing", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		f := newFixture(ctrl)

		f.repo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(model.Reservation{}, nil)

		err := f.svc.UpdatePayment(asUser("admin-1", constant.RoleAdmin), "res-1", dto.UpdatePaymentRequest{PaymentStatus: &paid})

		assert.Equal(t, 404, failure.GetCode(err))
	})

	t.Run("admin marks a booking paid", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		f := newFixture(ctrl)

		f.repo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(stored(model.StatusConfirmed), nil)
		f.repo.EXPECT().Update(gomock.Any(), gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ context.Context, fields map[string]any, _ gDto.FilterGroup) error {
				assert.Equal(t, &paid, fields[model.FieldPaymentStatus])
				assert.NotContains(t, fields, model.FieldPaymentMethod)

				return nil
			})
		done := f.expectSideEffects(model.EventUpdated)

		err := f.svc.UpdatePayment(asUser("admin-1", constant.RoleAdmin), "res-1", dto.UpdatePaymentRequest{PaymentStatus: &paid})

		assert.NoError(t, err)
		wait(t, done)
	})
}

func TestReservationService_Get(t *testing.T) {
	ctrl := gomock.NewController(t)
	f := newFixture(ctrl)

	t.Run("owner sees the reservation without its token", func(t *testing.T) {
		f.repo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(stored(model.StatusPending), nil)

		res, err := f.svc.Get(asUser(ownerID, constant.RoleUser), "res-1")

		assert.NoError(t, err)
		assert.True(t, res.AwaitsConfirmation)
		assert.Equal(t, "2025-06-01", res.ReservationDate)
	})

	t.Run("admin sees any reservation", func(t *testing.T) {
		f.repo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(stored(model.StatusPending), nil)

		_, err := f.svc.Get(asUser("admin-1", constant.RoleAdmin), "res-1")

		assert.NoError(t, err)
	})

	t.Run("other users are refused", func(t *testing.T) {
		f.repo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(stored(model.StatusPending), nil)

		_, err := f.svc.Get(asUser("intruder", constant.RoleUser), "res-1")

		assert.Equal(t, "not_owner", failure.GetReason(err))
	})
}

func TestReservationService_Lists(t *testing.T) {
	ctrl := gomock.NewController(t)
	f := newFixture(ctrl)

	params := gDto.QueryParams{Page: 1, Limit: 10, SortBy: "created_at", SortDir: "desc"}

	t.Run("mine requires a user", func(t *testing.T) {
		_, err := f.svc.ListMine(context.Background(), params, dto.ListFilter{})

		assert.Equal(t, 401, failure.GetCode(err))
	})

	t.Run("mine", func(t *testing.T) {
		filter := dto.ListFilter{Status: model.StatusPending}

		f.repo.EXPECT().Count(gomock.Any(), filter.ToFilterGroup(ownerID)).Return(11, nil)
		f.repo.EXPECT().GetAll(gomock.Any(), gomock.Any(), filter.ToFilterGroup(ownerID)).
			Return([]model.Reservation{stored(model.StatusPending)}, nil)

		res, err := f.svc.ListMine(asUser(ownerID, constant.RoleUser), params, filter)

		assert.NoError(t, err)
		assert.Equal(t, 11, res.TotalData)
		assert.Equal(t, 2, res.TotalPage)
		assert.Len(t, res.Reservations, 1)
	})

	t.Run("restaurant must exist", func(t *testing.T) {
		f.restaurantRepo.EXPECT().Exist(gomock.Any(), gomock.Any()).Return(false, nil)

		_, err := f.svc.ListByRestaurant(asUser("admin-1", constant.RoleAdmin), restaurantID, params, dto.ListFilter{})

		assert.Equal(t, 404, failure.GetCode(err))
	})

	t.Run("all with count failure", func(t *testing.T) {
		f.repo.EXPECT().Count(gomock.Any(), gomock.Any()).Return(0, errors.New("db down"))

		_, err := f.svc.ListAll(asUser("admin-1", constant.RoleAdmin), params, dto.ListFilter{})

		assert.Error(t, err)
	})
}

func TestReservationService_Quote(t *testing.T) {
	ctrl := gomock.NewController(t)
	f := newFixture(ctrl)

	t.Run("without a code", func(t *testing.T) {
		res, err := f.svc.Quote(context.Background(), dto.QuoteRequest{GuestCount: 4})

		assert.NoError(t, err)
		assert.Equal(t, 25.0, res.Subtotal)
		assert.Equal(t, 26.25, res.Total)
	})

	t.Run("with a valid code", func(t *testing.T) {
		f.promo.EXPECT().Validate(gomock.Any(), "HALF").
			Return(promoDto.ValidateResponse{IsValid: true, DiscountPercentage: 50}, nil)

		res, err := f.svc.Quote(context.Background(), dto.QuoteRequest{GuestCount: 1, PromoCode: "HALF"})

		assert.NoError(t, err)
		assert.Equal(t, "HALF", res.PromoCode)
		assert.Equal(t, 5.25, res.Total)
	})

	t.Run("with an invalid code", func(t *testing.T) {
		f.promo.EXPECT().Validate(gomock.Any(), "NOPE").Return(promoDto.ValidateResponse{}, nil)

		_, err := f.svc.Quote(context.Background(), dto.QuoteRequest{GuestCount: 1, PromoCode: "NOPE"})

		assert.Equal(t, "invalid_promo_code", failure.GetReason(err))
	})
}
