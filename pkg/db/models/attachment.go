package models

import (
	"time"

	"github.com/hudumahub/marketplace-backend/pkg/enums"
)

// Attachment is a stored upload tied to a target and optionally a post.
type Attachment struct {
	ID         int64            `gorm:"primaryKey;autoIncrement" json:"id"`
	FileName   string           `gorm:"column:file_name;not null" json:"file_name"`
	FilePath   string           `gorm:"column:file_path;not null" json:"file_path"`
	FileType   string           `gorm:"column:file_type;not null" json:"file_type"`
	TargetType enums.TargetType `gorm:"column:target_type;type:text;not null" json:"target_type"`
	TargetID   int64            `gorm:"column:target_id;not null" json:"target_id"`
	PostID     *int64           `gorm:"column:post_id" json:"post_id,omitempty"`
	UploadedBy int64            `gorm:"column:uploaded_by;not null" json:"uploaded_by"`
	CreatedAt  time.Time        `gorm:"column:created_at;autoCreateTime" json:"created_at"`
}
