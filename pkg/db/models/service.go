package models

import (
	"time"

	"github.com/hudumahub/marketplace-backend/pkg/enums"
	"github.com/shopspring/decimal"
)

// Service is a bookable offering published by a provider or business.
type Service struct {
	ID              int64            `gorm:"primaryKey;autoIncrement" json:"id"`
	TargetType      enums.TargetType `gorm:"column:target_type;type:text;not null" json:"target_type"`
	TargetID        int64            `gorm:"column:target_id;not null" json:"target_id"`
	Title           string           `gorm:"type:text;not null" json:"title"`
	Description     string           `gorm:"type:text;not null" json:"description"`
	Price           decimal.Decimal  `gorm:"type:numeric(12,2);not null" json:"price"`
	DurationMinutes int              `gorm:"column:duration_minutes;not null;default:60" json:"duration_minutes"`
	CategoryID      *int64           `gorm:"column:category_id" json:"category_id,omitempty"`
	IsActive        bool             `gorm:"column:is_active;not null;default:true" json:"is_active"`
	CreatedAt       time.Time        `gorm:"column:created_at;autoCreateTime" json:"created_at"`
	UpdatedAt       time.Time        `gorm:"column:updated_at;autoUpdateTime" json:"updated_at"`
}
