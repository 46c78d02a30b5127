package bookings

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/hudumahub/marketplace-backend/internal/profiles"
	"github.com/hudumahub/marketplace-backend/pkg/db"
	"github.com/hudumahub/marketplace-backend/pkg/db/models"
	"github.com/hudumahub/marketplace-backend/pkg/enums"
	pkgerrors "github.com/hudumahub/marketplace-backend/pkg/errors"
	"github.com/hudumahub/marketplace-backend/pkg/logger"
	"gorm.io/gorm"
)

// Service manages the booking lifecycle for clients and targets. Client
// callers are identified by user id and resolved to their client profile.
type Service interface {
	Create(ctx context.Context, userID int64, input CreateInput) (*models.Booking, error)
	ListForClient(ctx context.Context, userID int64, status, targetType string) ([]models.Booking, error)
	ListForTarget(ctx context.Context, userID int64, targetType, status string) ([]TargetBookingRow, error)
	Get(ctx context.Context, bookingID, userID int64) (*models.Booking, error)
	UpdateStatus(ctx context.Context, bookingID, userID int64, targetType, newStatus string) (*models.Booking, error)
	Reschedule(ctx context.Context, bookingID, userID int64, newTime time.Time) (*models.Booking, error)
	Delete(ctx context.Context, bookingID, userID int64) error
}

// CreateInput carries a new booking request.
type CreateInput struct {
	TargetType         string    `json:"target_type" validate:"required"`
	TargetID           int64     `json:"target_id" validate:"required,gt=0"`
	BranchID           *int64    `json:"branch_id"`
	ServiceID          *int64    `json:"service_id"`
	ServiceDescription string    `json:"service_description"`
	ScheduledTime      time.Time `json:"scheduled_time" validate:"required"`
}

type service struct {
	repo     Repository
	resolver profiles.Resolver
	log      *logger.Logger
	now      func() time.Time
}

// NewService wires booking dependencies.
func NewService(repo Repository, resolver profiles.Resolver, log *logger.Logger) (Service, error) {
	if repo == nil {
		return nil, pkgerrors.New(pkgerrors.CodeDependency, "booking repository required")
	}
	if resolver == nil {
		return nil, pkgerrors.New(pkgerrors.CodeDependency, "profile resolver required")
	}
	if log == nil {
		return nil, pkgerrors.New(pkgerrors.CodeDependency, "logger required")
	}
	return &service{repo: repo, resolver: resolver, log: log, now: time.Now}, nil
}

func (s *service) Create(ctx context.Context, userID int64, input CreateInput) (*models.Booking, error) {
	clientID, err := s.resolver.GetClientID(ctx, userID)
	if err != nil {
		return nil, err
	}
	target, err := enums.ParseTargetType(input.TargetType)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid target type")
	}
	if input.TargetID <= 0 {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "target id required")
	}
	if input.ScheduledTime.Before(s.now()) {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "scheduled time cannot be in the past")
	}

	exists, err := s.resolver.TargetExists(ctx, target, input.TargetID)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "check target")
	}
	if !exists {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "target does not exist")
	}

	description := strings.TrimSpace(input.ServiceDescription)
	duration := 60
	if input.ServiceID != nil {
		offering, err := s.repo.GetService(ctx, *input.ServiceID)
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, "service not found")
		}
		if err != nil {
			return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load service")
		}
		if offering.TargetType != target || offering.TargetID != input.TargetID {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, "service does not belong to target")
		}
		if offering.DurationMinutes > 0 {
			duration = offering.DurationMinutes
		}
		if description == "" {
			description = offering.Title
		}
	}
	if description == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "service description is required")
	}

	if input.BranchID != nil {
		if target != enums.TargetTypeBusiness {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, "branch bookings apply to businesses only")
		}
		ok, err := s.repo.BranchBelongsToBusiness(ctx, *input.BranchID, input.TargetID)
		if err != nil {
			return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "check branch")
		}
		if !ok {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, "branch does not belong to the business")
		}
	}

	taken, err := s.repo.SlotTaken(ctx, target, input.TargetID, input.ScheduledTime)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "check slot")
	}
	if taken {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "slot already booked")
	}

	booking := &models.Booking{
		ClientID:           clientID,
		TargetType:         target,
		TargetID:           input.TargetID,
		BranchID:           input.BranchID,
		ServiceID:          input.ServiceID,
		ServiceDescription: description,
		ScheduledTime:      input.ScheduledTime,
		DurationMinutes:    duration,
		Status:             enums.BookingStatusPending,
	}
	if err := s.repo.Create(ctx, booking); err != nil {
		// the slot index catches concurrent creates the pre-check missed
		if db.IsUniqueViolation(err, "uq_bookings_slot") {
			return nil, pkgerrors.Wrap(pkgerrors.CodeConflict, err, "slot already booked")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "create booking")
	}

	// a failed interaction write never fails the booking
	interaction := &models.Interaction{
		UserID:          userID,
		TargetType:      target,
		TargetID:        input.TargetID,
		InteractionType: enums.InteractionTypeBooking,
	}
	if err := s.repo.CreateInteraction(ctx, interaction); err != nil {
		s.log.Error(ctx, "record booking interaction", err)
	}

	return booking, nil
}

func (s *service) ListForClient(ctx context.Context, userID int64, status, targetType string) ([]models.Booking, error) {
	clientID, err := s.resolver.GetClientID(ctx, userID)
	if err != nil {
		return nil, err
	}

	filter := ClientFilter{}
	if status != "" {
		parsed, err := enums.ParseBookingStatus(status)
		if err != nil {
			return nil, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid status")
		}
		filter.Status = parsed
	}
	if targetType != "" {
		parsed, err := enums.ParseTargetType(targetType)
		if err != nil {
			return nil, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid target type")
		}
		filter.TargetType = parsed
	}

	bookings, err := s.repo.ListForClient(ctx, clientID, filter)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list bookings")
	}
	return bookings, nil
}

func (s *service) ListForTarget(ctx context.Context, userID int64, targetType, status string) ([]TargetBookingRow, error) {
	target, err := enums.ParseTargetType(targetType)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid target type")
	}
	var parsedStatus enums.BookingStatus
	if status != "" {
		parsedStatus, err = enums.ParseBookingStatus(status)
		if err != nil {
			return nil, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid status")
		}
	}

	targetID, err := s.resolver.GetTargetID(ctx, userID, target)
	if err != nil {
		return nil, err
	}

	rows, err := s.repo.ListForTarget(ctx, target, targetID, parsedStatus)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list bookings")
	}
	return rows, nil
}

func (s *service) Get(ctx context.Context, bookingID, userID int64) (*models.Booking, error) {
	clientID, err := s.resolver.GetClientID(ctx, userID)
	if err != nil {
		return nil, err
	}
	return s.loadForClient(ctx, bookingID, clientID)
}

func (s *service) UpdateStatus(ctx context.Context, bookingID, userID int64, targetType, newStatus string) (*models.Booking, error) {
	target, err := enums.ParseTargetType(targetType)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid target type")
	}
	next, err := enums.ParseBookingStatus(newStatus)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid status")
	}

	targetID, err := s.resolver.GetTargetID(ctx, userID, target)
	if err != nil {
		return nil, err
	}

	booking, err := s.repo.GetByID(ctx, bookingID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, pkgerrors.New(pkgerrors.CodeNotFound, "booking not found")
	}
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load booking")
	}
	if booking.TargetType != target || booking.TargetID != targetID {
		return nil, pkgerrors.New(pkgerrors.CodeNotFound, "booking not found")
	}

	if !booking.Status.CanTransitionTo(next) {
		return nil, pkgerrors.New(
			pkgerrors.CodeStateConflict,
			fmt.Sprintf("cannot move booking from %s to %s", booking.Status, next),
		)
	}

	if _, err := s.repo.UpdateStatus(ctx, bookingID, next); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "update booking status")
	}
	booking.Status = next
	return booking, nil
}

func (s *service) Reschedule(ctx context.Context, bookingID, userID int64, newTime time.Time) (*models.Booking, error) {
	if newTime.Before(s.now()) {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "scheduled time cannot be in the past")
	}

	clientID, err := s.resolver.GetClientID(ctx, userID)
	if err != nil {
		return nil, err
	}
	booking, err := s.loadForClient(ctx, bookingID, clientID)
	if err != nil {
		return nil, err
	}
	if booking.Status.IsTerminal() {
		return nil, pkgerrors.New(pkgerrors.CodeStateConflict, "booking can no longer be rescheduled")
	}

	taken, err := s.repo.SlotTaken(ctx, booking.TargetType, booking.TargetID, newTime)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "check slot")
	}
	if taken {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "slot already booked")
	}

	if _, err := s.repo.UpdateScheduledTime(ctx, bookingID, newTime); err != nil {
		if db.IsUniqueViolation(err, "uq_bookings_slot") {
			return nil, pkgerrors.Wrap(pkgerrors.CodeConflict, err, "slot already booked")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "reschedule booking")
	}
	booking.ScheduledTime = newTime
	return booking, nil
}

func (s *service) Delete(ctx context.Context, bookingID, userID int64) error {
	clientID, err := s.resolver.GetClientID(ctx, userID)
	if err != nil {
		return err
	}
	if _, err := s.loadForClient(ctx, bookingID, clientID); err != nil {
		return err
	}
	affected, err := s.repo.Delete(ctx, bookingID)
	if err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "delete booking")
	}
	if affected == 0 {
		return pkgerrors.New(pkgerrors.CodeNotFound, "booking not found")
	}
	return nil
}

func (s *service) loadForClient(ctx context.Context, bookingID, clientID int64) (*models.Booking, error) {
	if bookingID <= 0 {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "booking id required")
	}
	booking, err := s.repo.GetByID(ctx, bookingID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, pkgerrors.New(pkgerrors.CodeNotFound, "booking not found")
	}
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load booking")
	}
	if booking.ClientID != clientID {
		return nil, pkgerrors.New(pkgerrors.CodeForbidden, "booking not owned by caller")
	}
	return booking, nil
}
