package models

import "time"

// Provider is the profile row for users with the provider role.
type Provider struct {
	ID                 int64     `gorm:"primaryKey;autoIncrement" json:"id"`
	UserID             int64     `gorm:"column:user_id;not null;uniqueIndex" json:"user_id"`
	ServiceName        string    `gorm:"column:service_name;not null" json:"service_name"`
	ServiceDescription string    `gorm:"column:service_description;not null" json:"service_description"`
	Category           *string   `gorm:"column:category" json:"category,omitempty"`
	Location           *string   `gorm:"column:location" json:"location,omitempty"`
	PhoneNumber        *string   `gorm:"column:phone_number" json:"phone_number,omitempty"`
	Email              string    `gorm:"column:email;not null" json:"email"`
	Website            *string   `gorm:"column:website" json:"website,omitempty"`
	Whatsapp           *string   `gorm:"column:whatsapp" json:"whatsapp,omitempty"`
	CreatedAt          time.Time `gorm:"column:created_at;autoCreateTime" json:"created_at"`
	UpdatedAt          time.Time `gorm:"column:updated_at;autoUpdateTime" json:"updated_at"`
}
