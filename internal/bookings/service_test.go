package bookings

import (
	"context"
	"errors"
	"io"
	"testing"
	"time"

	"github.com/hudumahub/marketplace-backend/pkg/db/models"
	"github.com/hudumahub/marketplace-backend/pkg/enums"
	pkgerrors "github.com/hudumahub/marketplace-backend/pkg/errors"
	"github.com/hudumahub/marketplace-backend/pkg/logger"
	"gorm.io/gorm"
)

type fakeRepository struct {
	createFn              func(ctx context.Context, booking *models.Booking) error
	getByIDFn             func(ctx context.Context, id int64) (*models.Booking, error)
	slotTakenFn           func(ctx context.Context, target enums.TargetType, targetID int64, at time.Time) (bool, error)
	listForClientFn       func(ctx context.Context, clientID int64, filter ClientFilter) ([]models.Booking, error)
	listForTargetFn       func(ctx context.Context, target enums.TargetType, targetID int64, status enums.BookingStatus) ([]TargetBookingRow, error)
	updateStatusFn        func(ctx context.Context, id int64, status enums.BookingStatus) (int64, error)
	updateScheduledTimeFn func(ctx context.Context, id int64, at time.Time) (int64, error)
	deleteFn              func(ctx context.Context, id int64) (int64, error)
	getServiceFn          func(ctx context.Context, id int64) (*models.Service, error)
	branchBelongsFn       func(ctx context.Context, branchID, businessID int64) (bool, error)
	createInteractionFn   func(ctx context.Context, interaction *models.Interaction) error
}

func (f *fakeRepository) WithTx(tx *gorm.DB) Repository { return f }

func (f *fakeRepository) Create(ctx context.Context, booking *models.Booking) error {
	if f.createFn != nil {
		return f.createFn(ctx, booking)
	}
	booking.ID = 1
	return nil
}

func (f *fakeRepository) GetByID(ctx context.Context, id int64) (*models.Booking, error) {
	if f.getByIDFn != nil {
		return f.getByIDFn(ctx, id)
	}
	return nil, gorm.ErrRecordNotFound
}

func (f *fakeRepository) SlotTaken(ctx context.Context, target enums.TargetType, targetID int64, at time.Time) (bool, error) {
	if f.slotTakenFn != nil {
		return f.slotTakenFn(ctx, target, targetID, at)
	}
	return false, nil
}

func (f *fakeRepository) ListForClient(ctx context.Context, clientID int64, filter ClientFilter) ([]models.Booking, error) {
	if f.listForClientFn != nil {
		return f.listForClientFn(ctx, clientID, filter)
	}
	return nil, nil
}

func (f *fakeRepository) ListForTarget(ctx context.Context, target enums.TargetType, targetID int64, status enums.BookingStatus) ([]TargetBookingRow, error) {
	if f.listForTargetFn != nil {
		return f.listForTargetFn(ctx, target, targetID, status)
	}
	return nil, nil
}

func (f *fakeRepository) UpdateStatus(ctx context.Context, id int64, status enums.BookingStatus) (int64, error) {
	if f.updateStatusFn != nil {
		return f.updateStatusFn(ctx, id, status)
	}
	return 1, nil
}

func (f *fakeRepository) UpdateScheduledTime(ctx context.Context, id int64, at time.Time) (int64, error) {
	if f.updateScheduledTimeFn != nil {
		return f.updateScheduledTimeFn(ctx, id, at)
	}
	return 1, nil
}

func (f *fakeRepository) Delete(ctx context.Context, id int64) (int64, error) {
	if f.deleteFn != nil {
		return f.deleteFn(ctx, id)
	}
	return 1, nil
}

func (f *fakeRepository) GetService(ctx context.Context, id int64) (*models.Service, error) {
	if f.getServiceFn != nil {
		return f.getServiceFn(ctx, id)
	}
	return nil, gorm.ErrRecordNotFound
}

func (f *fakeRepository) BranchBelongsToBusiness(ctx context.Context, branchID, businessID int64) (bool, error) {
	if f.branchBelongsFn != nil {
		return f.branchBelongsFn(ctx, branchID, businessID)
	}
	return true, nil
}

func (f *fakeRepository) CreateInteraction(ctx context.Context, interaction *models.Interaction) error {
	if f.createInteractionFn != nil {
		return f.createInteractionFn(ctx, interaction)
	}
	return nil
}

type fakeResolver struct {
	getTargetIDFn  func(ctx context.Context, userID int64, target enums.TargetType) (int64, error)
	targetExistsFn func(ctx context.Context, target enums.TargetType, targetID int64) (bool, error)
}

func (f *fakeResolver) GetTargetID(ctx context.Context, userID int64, target enums.TargetType) (int64, error) {
	if f.getTargetIDFn != nil {
		return f.getTargetIDFn(ctx, userID, target)
	}
	return 0, pkgerrors.New(pkgerrors.CodeForbidden, "no profile for target type")
}

func (f *fakeResolver) AssertOwnsTarget(ctx context.Context, userID int64, target enums.TargetType, targetID int64) error {
	return nil
}

func (f *fakeResolver) TargetExists(ctx context.Context, target enums.TargetType, targetID int64) (bool, error) {
	if f.targetExistsFn != nil {
		return f.targetExistsFn(ctx, target, targetID)
	}
	return true, nil
}

func (f *fakeResolver) GetClientID(ctx context.Context, userID int64) (int64, error) {
	return userID, nil
}

func newServiceWith(t *testing.T, repo Repository, resolver *fakeResolver) *service {
	t.Helper()
	if resolver == nil {
		resolver = &fakeResolver{}
	}
	log := logger.New(logger.Options{ServiceName: "test", Output: io.Discard})
	svc, err := NewService(repo, resolver, log)
	if err != nil {
		t.Fatalf("unexpected service error: %v", err)
	}
	return svc.(*service)
}

func futureTime() time.Time {
	return time.Now().Add(48 * time.Hour).Truncate(time.Minute)
}

func validCreateInput() CreateInput {
	return CreateInput{
		TargetType:         "provider",
		TargetID:           42,
		ServiceDescription: "House cleaning",
		ScheduledTime:      futureTime(),
	}
}

func TestCreateBookingInsertsPending(t *testing.T) {
	var created *models.Booking
	repo := &fakeRepository{
		createFn: func(ctx context.Context, booking *models.Booking) error {
			booking.ID = 11
			created = booking
			return nil
		},
	}
	svc := newServiceWith(t, repo, nil)

	booking, err := svc.Create(context.Background(), 5, validCreateInput())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if booking.ID != 11 || booking.Status != enums.BookingStatusPending {
		t.Fatalf("unexpected booking %+v", booking)
	}
	if created.DurationMinutes != 60 {
		t.Fatalf("expected default duration, got %d", created.DurationMinutes)
	}
}

func TestCreateBookingRecordsInteraction(t *testing.T) {
	var interaction *models.Interaction
	repo := &fakeRepository{
		createInteractionFn: func(ctx context.Context, row *models.Interaction) error {
			interaction = row
			return nil
		},
	}
	svc := newServiceWith(t, repo, nil)

	_, err := svc.Create(context.Background(), 5, validCreateInput())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if interaction == nil || interaction.InteractionType != enums.InteractionTypeBooking {
		t.Fatalf("unexpected interaction %+v", interaction)
	}
}

func TestCreateBookingRejectsPastTime(t *testing.T) {
	svc := newServiceWith(t, &fakeRepository{}, nil)

	input := validCreateInput()
	input.ScheduledTime = time.Now().Add(-time.Hour)
	_, err := svc.Create(context.Background(), 5, input)
	if pkgerrors.As(err).Code() != pkgerrors.CodeValidation {
		t.Fatalf("expected validation error, got %v", err)
	}
}

func TestCreateBookingRejectsUnknownTarget(t *testing.T) {
	resolver := &fakeResolver{
		targetExistsFn: func(ctx context.Context, target enums.TargetType, targetID int64) (bool, error) {
			return false, nil
		},
	}
	svc := newServiceWith(t, &fakeRepository{}, resolver)

	_, err := svc.Create(context.Background(), 5, validCreateInput())
	typed := pkgerrors.As(err)
	if typed == nil || typed.Code() != pkgerrors.CodeValidation {
		t.Fatalf("expected validation error, got %v", err)
	}
	if typed.Message() != "target does not exist" {
		t.Fatalf("unexpected message %q", typed.Message())
	}
}

func TestCreateBookingRejectsTakenSlot(t *testing.T) {
	repo := &fakeRepository{
		slotTakenFn: func(ctx context.Context, target enums.TargetType, targetID int64, at time.Time) (bool, error) {
			return true, nil
		},
	}
	svc := newServiceWith(t, repo, nil)

	_, err := svc.Create(context.Background(), 5, validCreateInput())
	typed := pkgerrors.As(err)
	if typed == nil || typed.Code() != pkgerrors.CodeValidation {
		t.Fatalf("expected validation error, got %v", err)
	}
	if typed.Message() != "slot already booked" {
		t.Fatalf("unexpected message %q", typed.Message())
	}
}

func TestCreateBookingRejectsForeignBranch(t *testing.T) {
	repo := &fakeRepository{
		branchBelongsFn: func(ctx context.Context, branchID, businessID int64) (bool, error) {
			return false, nil
		},
	}
	svc := newServiceWith(t, repo, nil)

	branchID := int64(7)
	input := validCreateInput()
	input.TargetType = "business"
	input.BranchID = &branchID
	_, err := svc.Create(context.Background(), 5, input)
	typed := pkgerrors.As(err)
	if typed == nil || typed.Code() != pkgerrors.CodeValidation {
		t.Fatalf("expected validation error, got %v", err)
	}
	if typed.Message() != "branch does not belong to the business" {
		t.Fatalf("unexpected message %q", typed.Message())
	}
}

func TestCreateBookingRejectsBranchOnProvider(t *testing.T) {
	svc := newServiceWith(t, &fakeRepository{}, nil)

	branchID := int64(7)
	input := validCreateInput()
	input.BranchID = &branchID
	_, err := svc.Create(context.Background(), 5, input)
	if pkgerrors.As(err).Code() != pkgerrors.CodeValidation {
		t.Fatalf("expected validation error, got %v", err)
	}
}

func TestCreateBookingSlotRaceSurfacesConflict(t *testing.T) {
	repo := &fakeRepository{
		createFn: func(ctx context.Context, booking *models.Booking) error {
			return errors.New(`duplicate key value violates unique constraint "uq_bookings_slot"`)
		},
	}
	svc := newServiceWith(t, repo, nil)

	_, err := svc.Create(context.Background(), 5, validCreateInput())
	if pkgerrors.As(err).Code() != pkgerrors.CodeConflict {
		t.Fatalf("expected conflict, got %v", err)
	}
}

func TestCreateBookingUsesServiceDuration(t *testing.T) {
	serviceID := int64(3)
	var created *models.Booking
	repo := &fakeRepository{
		getServiceFn: func(ctx context.Context, id int64) (*models.Service, error) {
			return &models.Service{
				ID:              id,
				TargetType:      enums.TargetTypeProvider,
				TargetID:        42,
				Title:           "Deep cleaning",
				DurationMinutes: 90,
			}, nil
		},
		createFn: func(ctx context.Context, booking *models.Booking) error {
			booking.ID = 12
			created = booking
			return nil
		},
	}
	svc := newServiceWith(t, repo, nil)

	input := validCreateInput()
	input.ServiceID = &serviceID
	input.ServiceDescription = ""
	_, err := svc.Create(context.Background(), 5, input)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if created.DurationMinutes != 90 {
		t.Fatalf("expected service duration, got %d", created.DurationMinutes)
	}
	if created.ServiceDescription != "Deep cleaning" {
		t.Fatalf("expected title fallback, got %q", created.ServiceDescription)
	}
}

func TestCreateBookingRejectsForeignService(t *testing.T) {
	serviceID := int64(3)
	repo := &fakeRepository{
		getServiceFn: func(ctx context.Context, id int64) (*models.Service, error) {
			return &models.Service{ID: id, TargetType: enums.TargetTypeProvider, TargetID: 99}, nil
		},
	}
	svc := newServiceWith(t, repo, nil)

	input := validCreateInput()
	input.ServiceID = &serviceID
	_, err := svc.Create(context.Background(), 5, input)
	typed := pkgerrors.As(err)
	if typed == nil || typed.Code() != pkgerrors.CodeValidation {
		t.Fatalf("expected validation error, got %v", err)
	}
}

func TestUpdateStatusEnforcesStateMachine(t *testing.T) {
	repo := &fakeRepository{
		getByIDFn: func(ctx context.Context, id int64) (*models.Booking, error) {
			return &models.Booking{
				ID:         id,
				ClientID:   5,
				TargetType: enums.TargetTypeProvider,
				TargetID:   42,
				Status:     enums.BookingStatusCompleted,
			}, nil
		},
	}
	resolver := &fakeResolver{
		getTargetIDFn: func(ctx context.Context, userID int64, target enums.TargetType) (int64, error) {
			return 42, nil
		},
	}
	svc := newServiceWith(t, repo, resolver)

	_, err := svc.UpdateStatus(context.Background(), 11, 7, "provider", "pending")
	if pkgerrors.As(err).Code() != pkgerrors.CodeStateConflict {
		t.Fatalf("expected state conflict, got %v", err)
	}
}

func TestUpdateStatusConfirmsPending(t *testing.T) {
	var updatedTo enums.BookingStatus
	repo := &fakeRepository{
		getByIDFn: func(ctx context.Context, id int64) (*models.Booking, error) {
			return &models.Booking{
				ID:         id,
				ClientID:   5,
				TargetType: enums.TargetTypeProvider,
				TargetID:   42,
				Status:     enums.BookingStatusPending,
			}, nil
		},
		updateStatusFn: func(ctx context.Context, id int64, status enums.BookingStatus) (int64, error) {
			updatedTo = status
			return 1, nil
		},
	}
	resolver := &fakeResolver{
		getTargetIDFn: func(ctx context.Context, userID int64, target enums.TargetType) (int64, error) {
			return 42, nil
		},
	}
	svc := newServiceWith(t, repo, resolver)

	booking, err := svc.UpdateStatus(context.Background(), 11, 7, "provider", "confirmed")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if updatedTo != enums.BookingStatusConfirmed || booking.Status != enums.BookingStatusConfirmed {
		t.Fatalf("unexpected status %s", booking.Status)
	}
}

func TestUpdateStatusHidesForeignBooking(t *testing.T) {
	repo := &fakeRepository{
		getByIDFn: func(ctx context.Context, id int64) (*models.Booking, error) {
			return &models.Booking{
				ID:         id,
				TargetType: enums.TargetTypeProvider,
				TargetID:   99,
				Status:     enums.BookingStatusPending,
			}, nil
		},
	}
	resolver := &fakeResolver{
		getTargetIDFn: func(ctx context.Context, userID int64, target enums.TargetType) (int64, error) {
			return 42, nil
		},
	}
	svc := newServiceWith(t, repo, resolver)

	_, err := svc.UpdateStatus(context.Background(), 11, 7, "provider", "confirmed")
	if pkgerrors.As(err).Code() != pkgerrors.CodeNotFound {
		t.Fatalf("expected not found, got %v", err)
	}
}

func TestRescheduleReRunsSlotCheck(t *testing.T) {
	repo := &fakeRepository{
		getByIDFn: func(ctx context.Context, id int64) (*models.Booking, error) {
			return &models.Booking{
				ID:         id,
				ClientID:   5,
				TargetType: enums.TargetTypeProvider,
				TargetID:   42,
				Status:     enums.BookingStatusPending,
			}, nil
		},
		slotTakenFn: func(ctx context.Context, target enums.TargetType, targetID int64, at time.Time) (bool, error) {
			return true, nil
		},
	}
	svc := newServiceWith(t, repo, nil)

	_, err := svc.Reschedule(context.Background(), 11, 5, futureTime())
	typed := pkgerrors.As(err)
	if typed == nil || typed.Code() != pkgerrors.CodeValidation {
		t.Fatalf("expected validation error, got %v", err)
	}
	if typed.Message() != "slot already booked" {
		t.Fatalf("unexpected message %q", typed.Message())
	}
}

func TestRescheduleRejectsTerminalBooking(t *testing.T) {
	repo := &fakeRepository{
		getByIDFn: func(ctx context.Context, id int64) (*models.Booking, error) {
			return &models.Booking{ID: id, ClientID: 5, Status: enums.BookingStatusCancelled}, nil
		},
	}
	svc := newServiceWith(t, repo, nil)

	_, err := svc.Reschedule(context.Background(), 11, 5, futureTime())
	if pkgerrors.As(err).Code() != pkgerrors.CodeStateConflict {
		t.Fatalf("expected state conflict, got %v", err)
	}
}

func TestDeleteForbiddenForOtherClient(t *testing.T) {
	repo := &fakeRepository{
		getByIDFn: func(ctx context.Context, id int64) (*models.Booking, error) {
			return &models.Booking{ID: id, ClientID: 5, Status: enums.BookingStatusPending}, nil
		},
	}
	svc := newServiceWith(t, repo, nil)

	err := svc.Delete(context.Background(), 11, 6)
	if pkgerrors.As(err).Code() != pkgerrors.CodeForbidden {
		t.Fatalf("expected forbidden, got %v", err)
	}
}

func TestDeleteMissingBooking(t *testing.T) {
	svc := newServiceWith(t, &fakeRepository{}, nil)

	err := svc.Delete(context.Background(), 11, 5)
	if pkgerrors.As(err).Code() != pkgerrors.CodeNotFound {
		t.Fatalf("expected not found, got %v", err)
	}
}
