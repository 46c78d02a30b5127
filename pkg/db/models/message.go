package models

import (
	"time"

	"github.com/hudumahub/marketplace-backend/pkg/enums"
)

// Message is one direction of a conversation scoped to a target.
type Message struct {
	ID         int64            `gorm:"primaryKey;autoIncrement" json:"id"`
	SenderID   int64            `gorm:"column:sender_id;not null" json:"sender_id"`
	ReceiverID int64            `gorm:"column:receiver_id;not null" json:"receiver_id"`
	TargetType enums.TargetType `gorm:"column:target_type;type:text;not null" json:"target_type"`
	TargetID   int64            `gorm:"column:target_id;not null" json:"target_id"`
	Content    string           `gorm:"type:text;not null" json:"content"`
	IsRead     bool             `gorm:"column:is_read;not null;default:false" json:"is_read"`
	ReadAt     *time.Time       `gorm:"column:read_at" json:"read_at,omitempty"`
	CreatedAt  time.Time        `gorm:"column:created_at;autoCreateTime" json:"created_at"`
}
