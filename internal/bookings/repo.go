package bookings

import (
	"context"
	"time"

	"github.com/hudumahub/marketplace-backend/pkg/db/models"
	"github.com/hudumahub/marketplace-backend/pkg/enums"
	"gorm.io/gorm"
)

// ClientFilter narrows a client's booking history. Zero values match all.
type ClientFilter struct {
	Status     enums.BookingStatus
	TargetType enums.TargetType
}

// TargetBookingRow is a booking joined with client and service details for
// the provider or business dashboard.
type TargetBookingRow struct {
	models.Booking
	ClientName   string  `json:"client_name"`
	ClientEmail  string  `json:"client_email"`
	ServiceTitle *string `json:"service_title,omitempty"`
}

// Repository exposes persistence helpers for bookings.
type Repository interface {
	WithTx(tx *gorm.DB) Repository
	Create(ctx context.Context, booking *models.Booking) error
	GetByID(ctx context.Context, id int64) (*models.Booking, error)
	SlotTaken(ctx context.Context, target enums.TargetType, targetID int64, at time.Time) (bool, error)
	ListForClient(ctx context.Context, clientID int64, filter ClientFilter) ([]models.Booking, error)
	ListForTarget(ctx context.Context, target enums.TargetType, targetID int64, status enums.BookingStatus) ([]TargetBookingRow, error)
	UpdateStatus(ctx context.Context, id int64, status enums.BookingStatus) (int64, error)
	UpdateScheduledTime(ctx context.Context, id int64, at time.Time) (int64, error)
	Delete(ctx context.Context, id int64) (int64, error)
	GetService(ctx context.Context, id int64) (*models.Service, error)
	BranchBelongsToBusiness(ctx context.Context, branchID, businessID int64) (bool, error)
	CreateInteraction(ctx context.Context, interaction *models.Interaction) error
}

type repositoryImpl struct {
	db *gorm.DB
}

// NewRepository returns a bookings repository bound to the provided database.
func NewRepository(db *gorm.DB) Repository {
	return &repositoryImpl{db: db}
}

func (r *repositoryImpl) WithTx(tx *gorm.DB) Repository {
	if tx == nil {
		return r
	}
	return &repositoryImpl{db: tx}
}

func (r *repositoryImpl) Create(ctx context.Context, booking *models.Booking) error {
	return r.db.WithContext(ctx).Create(booking).Error
}

func (r *repositoryImpl) GetByID(ctx context.Context, id int64) (*models.Booking, error) {
	var booking models.Booking
	if err := r.db.WithContext(ctx).First(&booking, id).Error; err != nil {
		return nil, err
	}
	return &booking, nil
}

func (r *repositoryImpl) SlotTaken(ctx context.Context, target enums.TargetType, targetID int64, at time.Time) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&models.Booking{}).
		Where("target_type = ? AND target_id = ? AND scheduled_time = ?", target, targetID, at).
		Count(&count).Error
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

func (r *repositoryImpl) ListForClient(ctx context.Context, clientID int64, filter ClientFilter) ([]models.Booking, error) {
	query := r.db.WithContext(ctx).
		Model(&models.Booking{}).
		Where("client_id = ?", clientID)
	if filter.Status != "" {
		query = query.Where("status = ?", filter.Status)
	}
	if filter.TargetType != "" {
		query = query.Where("target_type = ?", filter.TargetType)
	}

	var bookings []models.Booking
	if err := query.Order("scheduled_time DESC").Find(&bookings).Error; err != nil {
		return nil, err
	}
	return bookings, nil
}

func (r *repositoryImpl) ListForTarget(ctx context.Context, target enums.TargetType, targetID int64, status enums.BookingStatus) ([]TargetBookingRow, error) {
	query := r.db.WithContext(ctx).
		Table("bookings AS b").
		Select("b.*, c.full_name AS client_name, u.email AS client_email, s.title AS service_title").
		Joins("JOIN clients c ON c.id = b.client_id").
		Joins("JOIN users u ON u.id = c.user_id").
		Joins("LEFT JOIN services s ON s.id = b.service_id").
		Where("b.target_type = ? AND b.target_id = ?", target, targetID)
	if status != "" {
		query = query.Where("b.status = ?", status)
	}

	var rows []TargetBookingRow
	if err := query.Order("b.scheduled_time DESC").Scan(&rows).Error; err != nil {
		return nil, err
	}
	return rows, nil
}

func (r *repositoryImpl) UpdateStatus(ctx context.Context, id int64, status enums.BookingStatus) (int64, error) {
	result := r.db.WithContext(ctx).
		Model(&models.Booking{}).
		Where("id = ?", id).
		Update("status", status)
	return result.RowsAffected, result.Error
}

func (r *repositoryImpl) UpdateScheduledTime(ctx context.Context, id int64, at time.Time) (int64, error) {
	result := r.db.WithContext(ctx).
		Model(&models.Booking{}).
		Where("id = ?", id).
		Update("scheduled_time", at)
	return result.RowsAffected, result.Error
}

func (r *repositoryImpl) Delete(ctx context.Context, id int64) (int64, error) {
	result := r.db.WithContext(ctx).Delete(&models.Booking{}, id)
	return result.RowsAffected, result.Error
}

func (r *repositoryImpl) GetService(ctx context.Context, id int64) (*models.Service, error) {
	var service models.Service
	if err := r.db.WithContext(ctx).First(&service, id).Error; err != nil {
		return nil, err
	}
	return &service, nil
}

func (r *repositoryImpl) BranchBelongsToBusiness(ctx context.Context, branchID, businessID int64) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&models.BranchLocation{}).
		Where("id = ? AND business_id = ?", branchID, businessID).
		Count(&count).Error
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

func (r *repositoryImpl) CreateInteraction(ctx context.Context, interaction *models.Interaction) error {
	return r.db.WithContext(ctx).Create(interaction).Error
}
