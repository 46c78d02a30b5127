package models

import (
	"time"

	"github.com/hudumahub/marketplace-backend/pkg/enums"
)

// Review is a one-per-reviewer rating of a target.
type Review struct {
	ID         int64            `gorm:"primaryKey;autoIncrement" json:"id"`
	ReviewerID int64            `gorm:"column:reviewer_id;not null;uniqueIndex:uq_reviews_reviewer_target" json:"reviewer_id"`
	TargetType enums.TargetType `gorm:"column:target_type;type:text;not null;uniqueIndex:uq_reviews_reviewer_target" json:"target_type"`
	TargetID   int64            `gorm:"column:target_id;not null;uniqueIndex:uq_reviews_reviewer_target" json:"target_id"`
	Rating     int              `gorm:"column:rating;not null" json:"rating"`
	Comment    string           `gorm:"type:text;not null" json:"comment"`
	CreatedAt  time.Time        `gorm:"column:created_at;autoCreateTime" json:"created_at"`
}
