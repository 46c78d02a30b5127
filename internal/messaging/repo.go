package messaging

import (
	"context"
	"time"

	"github.com/hudumahub/marketplace-backend/pkg/db/models"
	"github.com/hudumahub/marketplace-backend/pkg/enums"
	"gorm.io/gorm"
)

// Repository exposes persistence helpers for messages and interactions.
type Repository interface {
	WithTx(tx *gorm.DB) Repository
	Create(ctx context.Context, message *models.Message) error
	CreateInteraction(ctx context.Context, interaction *models.Interaction) error
	ListConversation(ctx context.Context, userA, userB int64, target enums.TargetType, targetID int64, offset, limit int) ([]models.Message, error)
	MarkRead(ctx context.Context, receiverID int64, target enums.TargetType, targetID int64, messageIDs []int64, readAt time.Time) (int64, error)
	UnreadCount(ctx context.Context, receiverID int64, target enums.TargetType) (int64, error)
}

type repositoryImpl struct {
	db *gorm.DB
}

// NewRepository returns a messaging repository bound to the provided database.
func NewRepository(db *gorm.DB) Repository {
	return &repositoryImpl{db: db}
}

func (r *repositoryImpl) WithTx(tx *gorm.DB) Repository {
	if tx == nil {
		return r
	}
	return &repositoryImpl{db: tx}
}

func (r *repositoryImpl) Create(ctx context.Context, message *models.Message) error {
	return r.db.WithContext(ctx).Create(message).Error
}

func (r *repositoryImpl) CreateInteraction(ctx context.Context, interaction *models.Interaction) error {
	return r.db.WithContext(ctx).Create(interaction).Error
}

func (r *repositoryImpl) ListConversation(ctx context.Context, userA, userB int64, target enums.TargetType, targetID int64, offset, limit int) ([]models.Message, error) {
	var messages []models.Message
	err := r.db.WithContext(ctx).
		Where("target_type = ? AND target_id = ?", target, targetID).
		Where("(sender_id = ? AND receiver_id = ?) OR (sender_id = ? AND receiver_id = ?)", userA, userB, userB, userA).
		Order("created_at ASC").
		Offset(offset).
		Limit(limit).
		Find(&messages).Error
	if err != nil {
		return nil, err
	}
	return messages, nil
}

func (r *repositoryImpl) MarkRead(ctx context.Context, receiverID int64, target enums.TargetType, targetID int64, messageIDs []int64, readAt time.Time) (int64, error) {
	result := r.db.WithContext(ctx).
		Model(&models.Message{}).
		Where("receiver_id = ? AND target_type = ? AND target_id = ?", receiverID, target, targetID).
		Where("id IN ? AND is_read = ?", messageIDs, false).
		Updates(map[string]any{"is_read": true, "read_at": readAt})
	return result.RowsAffected, result.Error
}

func (r *repositoryImpl) UnreadCount(ctx context.Context, receiverID int64, target enums.TargetType) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&models.Message{}).
		Where("receiver_id = ? AND target_type = ? AND is_read = ?", receiverID, target, false).
		Count(&count).Error
	return count, err
}
