package models

import "time"

// County is the top level of the location taxonomy.
type County struct {
	ID   int64  `gorm:"primaryKey;autoIncrement" json:"id"`
	Name string `gorm:"type:text;not null" json:"name"`
}

// TableName overrides the default pluralization.
func (County) TableName() string {
	return "counties"
}

// Constituency belongs to a county.
type Constituency struct {
	ID       int64  `gorm:"primaryKey;autoIncrement" json:"id"`
	CountyID int64  `gorm:"column:county_id;not null" json:"county_id"`
	Name     string `gorm:"type:text;not null" json:"name"`
}

// TableName overrides the default pluralization.
func (Constituency) TableName() string {
	return "constituencies"
}

// Ward belongs to a constituency.
type Ward struct {
	ID             int64  `gorm:"primaryKey;autoIncrement" json:"id"`
	ConstituencyID int64  `gorm:"column:constituency_id;not null" json:"constituency_id"`
	Name           string `gorm:"type:text;not null" json:"name"`
}

// BranchLocation is a physical branch of a business, pinned to a ward.
// Bookings may reference one through their branch_id.
type BranchLocation struct {
	ID         int64     `gorm:"primaryKey;autoIncrement" json:"id"`
	BusinessID int64     `gorm:"column:business_id;not null" json:"business_id"`
	Name       string    `gorm:"type:text;not null" json:"name"`
	Latitude   float64   `gorm:"column:latitude;not null" json:"latitude"`
	Longitude  float64   `gorm:"column:longitude;not null" json:"longitude"`
	WardID     int64     `gorm:"column:ward_id;not null" json:"ward_id"`
	Phone      string    `gorm:"type:text;not null" json:"phone"`
	Address    string    `gorm:"type:text;not null" json:"address"`
	CreatedBy  int64     `gorm:"column:created_by;not null" json:"created_by"`
	CreatedAt  time.Time `gorm:"column:created_at;autoCreateTime" json:"created_at"`
	UpdatedAt  time.Time `gorm:"column:updated_at;autoUpdateTime" json:"updated_at"`
}

// TableName overrides the default pluralization.
func (BranchLocation) TableName() string {
	return "business_branch_locations"
}

// ProviderLocation pins a service provider to a ward.
type ProviderLocation struct {
	ID         int64     `gorm:"primaryKey;autoIncrement" json:"id"`
	ProviderID int64     `gorm:"column:provider_id;not null" json:"provider_id"`
	Latitude   float64   `gorm:"column:latitude;not null" json:"latitude"`
	Longitude  float64   `gorm:"column:longitude;not null" json:"longitude"`
	WardID     int64     `gorm:"column:ward_id;not null" json:"ward_id"`
	Phone      string    `gorm:"type:text;not null" json:"phone"`
	Address    string    `gorm:"type:text;not null" json:"address"`
	CreatedBy  int64     `gorm:"column:created_by;not null" json:"created_by"`
	CreatedAt  time.Time `gorm:"column:created_at;autoCreateTime" json:"created_at"`
	UpdatedAt  time.Time `gorm:"column:updated_at;autoUpdateTime" json:"updated_at"`
}
