package models

import (
	"time"

	"github.com/hudumahub/marketplace-backend/pkg/enums"
)

// Post is a public feed entry published on behalf of a target.
type Post struct {
	ID         int64            `gorm:"primaryKey;autoIncrement" json:"id"`
	Title      string           `gorm:"type:text;not null" json:"title"`
	Content    string           `gorm:"type:text;not null" json:"content"`
	TargetType enums.TargetType `gorm:"column:target_type;type:text;not null" json:"target_type"`
	TargetID   int64            `gorm:"column:target_id;not null" json:"target_id"`
	CreatedBy  int64            `gorm:"column:created_by;not null" json:"created_by"`
	CreatedAt  time.Time        `gorm:"column:created_at;autoCreateTime" json:"created_at"`
}
