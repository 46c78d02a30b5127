package models

import (
	"time"

	"github.com/hudumahub/marketplace-backend/pkg/enums"
)

// Booking reserves an exact time slot against a provider or business. The
// slot triple carries a unique index so concurrent creates cannot double
// book.
type Booking struct {
	ID                 int64               `gorm:"primaryKey;autoIncrement" json:"id"`
	ClientID           int64               `gorm:"column:client_id;not null" json:"client_id"`
	TargetType         enums.TargetType    `gorm:"column:target_type;type:text;not null;uniqueIndex:uq_bookings_slot" json:"target_type"`
	TargetID           int64               `gorm:"column:target_id;not null;uniqueIndex:uq_bookings_slot" json:"target_id"`
	BranchID           *int64              `gorm:"column:branch_id" json:"branch_id,omitempty"`
	ServiceID          *int64              `gorm:"column:service_id" json:"service_id,omitempty"`
	ServiceDescription string              `gorm:"column:service_description;not null" json:"service_description"`
	ScheduledTime      time.Time           `gorm:"column:scheduled_time;not null;uniqueIndex:uq_bookings_slot" json:"scheduled_time"`
	DurationMinutes    int                 `gorm:"column:duration_minutes;not null;default:60" json:"duration_minutes"`
	Status             enums.BookingStatus `gorm:"type:text;not null;default:pending" json:"status"`
	CreatedAt          time.Time           `gorm:"column:created_at;autoCreateTime" json:"created_at"`
	UpdatedAt          time.Time           `gorm:"column:updated_at;autoUpdateTime" json:"updated_at"`
}
