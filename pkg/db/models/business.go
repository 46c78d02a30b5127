package models

import "time"

// Business is the profile row for users with the business role.
type Business struct {
	ID            int64     `gorm:"primaryKey;autoIncrement" json:"id"`
	UserID        int64     `gorm:"column:user_id;not null;uniqueIndex" json:"user_id"`
	BusinessName  string    `gorm:"column:business_name;not null" json:"business_name"`
	Description   string    `gorm:"column:description;not null" json:"description"`
	Category      string    `gorm:"column:category;not null" json:"category"`
	Location      string    `gorm:"column:location;not null" json:"location"`
	LicenseNumber string    `gorm:"column:license_number;not null" json:"license_number"`
	KRAPin        string    `gorm:"column:kra_pin;not null" json:"kra_pin"`
	PhoneNumber   string    `gorm:"column:phone_number;not null" json:"phone_number"`
	Email         string    `gorm:"column:email;not null" json:"email"`
	Website       *string   `gorm:"column:website" json:"website,omitempty"`
	Whatsapp      *string   `gorm:"column:whatsapp" json:"whatsapp,omitempty"`
	CreatedAt     time.Time `gorm:"column:created_at;autoCreateTime" json:"created_at"`
	UpdatedAt     time.Time `gorm:"column:updated_at;autoUpdateTime" json:"updated_at"`
}
