package controllers

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/hudumahub/marketplace-backend/api/middleware"
	"github.com/hudumahub/marketplace-backend/internal/bookings"
	"github.com/hudumahub/marketplace-backend/pkg/db/models"
	"github.com/hudumahub/marketplace-backend/pkg/enums"
	pkgerrors "github.com/hudumahub/marketplace-backend/pkg/errors"
)

type fakeBookingService struct {
	createFn       func(ctx context.Context, userID int64, input bookings.CreateInput) (*models.Booking, error)
	updateStatusFn func(ctx context.Context, bookingID, userID int64, targetType, newStatus string) (*models.Booking, error)
	getFn          func(ctx context.Context, bookingID, userID int64) (*models.Booking, error)
}

func (f *fakeBookingService) Create(ctx context.Context, userID int64, input bookings.CreateInput) (*models.Booking, error) {
	if f.createFn != nil {
		return f.createFn(ctx, userID, input)
	}
	return &models.Booking{ID: 1, Status: enums.BookingStatusPending}, nil
}

func (f *fakeBookingService) ListForClient(ctx context.Context, userID int64, status, targetType string) ([]models.Booking, error) {
	return nil, nil
}

func (f *fakeBookingService) ListForTarget(ctx context.Context, userID int64, targetType, status string) ([]bookings.TargetBookingRow, error) {
	return nil, nil
}

func (f *fakeBookingService) Get(ctx context.Context, bookingID, userID int64) (*models.Booking, error) {
	if f.getFn != nil {
		return f.getFn(ctx, bookingID, userID)
	}
	return &models.Booking{ID: bookingID}, nil
}

func (f *fakeBookingService) UpdateStatus(ctx context.Context, bookingID, userID int64, targetType, newStatus string) (*models.Booking, error) {
	if f.updateStatusFn != nil {
		return f.updateStatusFn(ctx, bookingID, userID, targetType, newStatus)
	}
	return &models.Booking{ID: bookingID}, nil
}

func (f *fakeBookingService) Reschedule(ctx context.Context, bookingID, userID int64, newTime time.Time) (*models.Booking, error) {
	return &models.Booking{ID: bookingID, ScheduledTime: newTime}, nil
}

func (f *fakeBookingService) Delete(ctx context.Context, bookingID, userID int64) error {
	return nil
}

func bookingRouter(svc bookings.Service) http.Handler {
	r := chi.NewRouter()
	r.Post("/bookings/createBooking", BookingCreate(svc, nil))
	r.Get("/bookings/{id}", BookingDetail(svc, nil))
	r.Post("/bookings/{id}/status", BookingStatus(svc, nil))
	return r
}

func authed(req *http.Request, userID int64) *http.Request {
	return req.WithContext(middleware.WithUserID(req.Context(), userID))
}

func TestBookingCreateReturns201(t *testing.T) {
	var gotUserID int64
	svc := &fakeBookingService{
		createFn: func(ctx context.Context, userID int64, input bookings.CreateInput) (*models.Booking, error) {
			gotUserID = userID
			return &models.Booking{ID: 5, Status: enums.BookingStatusPending}, nil
		},
	}

	body := fmt.Sprintf(`{"target_type":"provider","target_id":42,"service_description":"plumbing","scheduled_time":%q}`,
		time.Now().Add(time.Hour).Format(time.RFC3339))
	req := authed(httptest.NewRequest(http.MethodPost, "/bookings/createBooking", strings.NewReader(body)), 7)
	rec := httptest.NewRecorder()
	bookingRouter(svc).ServeHTTP(rec, req)

	if rec.Code != http.StatusCreated {
		t.Fatalf("unexpected status %d: %s", rec.Code, rec.Body.String())
	}
	if gotUserID != 7 {
		t.Fatalf("expected caller id 7, got %d", gotUserID)
	}
}

func TestBookingStatusStateConflictIs422(t *testing.T) {
	svc := &fakeBookingService{
		updateStatusFn: func(ctx context.Context, bookingID, userID int64, targetType, newStatus string) (*models.Booking, error) {
			return nil, pkgerrors.New(pkgerrors.CodeStateConflict, "cannot move booking from completed to pending")
		},
	}

	body := `{"target_type":"provider","status":"pending"}`
	req := authed(httptest.NewRequest(http.MethodPost, "/bookings/5/status", strings.NewReader(body)), 7)
	rec := httptest.NewRecorder()
	bookingRouter(svc).ServeHTTP(rec, req)

	if rec.Code != http.StatusUnprocessableEntity {
		t.Fatalf("unexpected status %d", rec.Code)
	}
}

func TestBookingDetailRejectsBadID(t *testing.T) {
	req := authed(httptest.NewRequest(http.MethodGet, "/bookings/abc", nil), 7)
	rec := httptest.NewRecorder()
	bookingRouter(&fakeBookingService{}).ServeHTTP(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("unexpected status %d", rec.Code)
	}
}

func TestBookingDetailNotFoundPassthrough(t *testing.T) {
	svc := &fakeBookingService{
		getFn: func(ctx context.Context, bookingID, userID int64) (*models.Booking, error) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "booking not found")
		},
	}

	req := authed(httptest.NewRequest(http.MethodGet, "/bookings/5", nil), 7)
	rec := httptest.NewRecorder()
	bookingRouter(svc).ServeHTTP(rec, req)

	if rec.Code != http.StatusNotFound {
		t.Fatalf("unexpected status %d", rec.Code)
	}
}
