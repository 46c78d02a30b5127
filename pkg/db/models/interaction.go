package models

import (
	"time"

	"github.com/hudumahub/marketplace-backend/pkg/enums"
)

// Interaction records that a user engaged a target. Reviews require at
// least one prior interaction.
type Interaction struct {
	ID              int64                 `gorm:"primaryKey;autoIncrement" json:"id"`
	UserID          int64                 `gorm:"column:user_id;not null" json:"user_id"`
	TargetType      enums.TargetType      `gorm:"column:target_type;type:text;not null" json:"target_type"`
	TargetID        int64                 `gorm:"column:target_id;not null" json:"target_id"`
	InteractionType enums.InteractionType `gorm:"column:interaction_type;type:text;not null" json:"interaction_type"`
	CreatedAt       time.Time             `gorm:"column:created_at;autoCreateTime" json:"created_at"`
}
