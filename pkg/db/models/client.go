package models

import "time"

// Client is the profile row for users with the client role.
type Client struct {
	ID             int64     `gorm:"primaryKey;autoIncrement" json:"id"`
	UserID         int64     `gorm:"column:user_id;not null;uniqueIndex" json:"user_id"`
	FullName       string    `gorm:"column:full_name;not null" json:"full_name"`
	PhoneNumber    string    `gorm:"column:phone_number;not null" json:"phone_number"`
	Location       string    `gorm:"column:location;not null" json:"location"`
	ProfilePicture *string   `gorm:"column:profile_picture" json:"profile_picture,omitempty"`
	CreatedAt      time.Time `gorm:"column:created_at;autoCreateTime" json:"created_at"`
	UpdatedAt      time.Time `gorm:"column:updated_at;autoUpdateTime" json:"updated_at"`
}
