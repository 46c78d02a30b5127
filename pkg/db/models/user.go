package models

import (
	"time"

	"github.com/hudumahub/marketplace-backend/pkg/enums"
)

// User represents the canonical identity entity. Role is fixed at
// registration time.
type User struct {
	ID           int64          `gorm:"primaryKey;autoIncrement" json:"id"`
	Username     string         `gorm:"type:text;not null;uniqueIndex" json:"username"`
	Email        string         `gorm:"type:text;not null;uniqueIndex" json:"email"`
	PasswordHash string         `gorm:"column:password_hash;not null" json:"-"`
	Role         enums.UserRole `gorm:"type:text;not null" json:"role"`
	IsAdmin      bool           `gorm:"column:is_admin;not null;default:false" json:"is_admin"`
	CreatedAt    time.Time      `gorm:"column:created_at;autoCreateTime" json:"created_at"`
	UpdatedAt    time.Time      `gorm:"column:updated_at;autoUpdateTime" json:"updated_at"`
}
