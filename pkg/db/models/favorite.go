package models

import (
	"time"

	"github.com/hudumahub/marketplace-backend/pkg/enums"
)

// Favorite bookmarks a target for a user. Adding twice is a no-op thanks
// to the unique triple.
type Favorite struct {
	ID         int64            `gorm:"primaryKey;autoIncrement" json:"id"`
	UserID     int64            `gorm:"column:user_id;not null;uniqueIndex:uq_favorites_user_target" json:"user_id"`
	TargetType enums.TargetType `gorm:"column:target_type;type:text;not null;uniqueIndex:uq_favorites_user_target" json:"target_type"`
	TargetID   int64            `gorm:"column:target_id;not null;uniqueIndex:uq_favorites_user_target" json:"target_id"`
	CreatedAt  time.Time        `gorm:"column:created_at;autoCreateTime" json:"created_at"`
}
