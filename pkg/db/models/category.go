package models

import "time"

// Category is a two-level taxonomy node. Root categories have a nil
// ParentID; children always point at a root.
type Category struct {
	ID        int64     `gorm:"primaryKey;autoIncrement" json:"id"`
	Name      string    `gorm:"type:text;not null" json:"name"`
	ParentID  *int64    `gorm:"column:parent_id" json:"parent_id,omitempty"`
	CreatedAt time.Time `gorm:"column:created_at;autoCreateTime" json:"created_at"`
}

// ProviderCategory links a provider to a category.
type ProviderCategory struct {
	ProviderID int64 `gorm:"column:provider_id;primaryKey" json:"provider_id"`
	CategoryID int64 `gorm:"column:category_id;primaryKey" json:"category_id"`
}

// TableName overrides the default pluralization.
func (ProviderCategory) TableName() string {
	return "provider_categories"
}

// BusinessCategory links a business to a category.
type BusinessCategory struct {
	BusinessID int64 `gorm:"column:business_id;primaryKey" json:"business_id"`
	CategoryID int64 `gorm:"column:category_id;primaryKey" json:"category_id"`
}

// TableName overrides the default pluralization.
func (BusinessCategory) TableName() string {
	return "business_categories"
}
