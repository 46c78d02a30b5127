package attachments

import (
	"context"

	"github.com/hudumahub/marketplace-backend/pkg/db/models"
	"github.com/hudumahub/marketplace-backend/pkg/enums"
	"gorm.io/gorm"
)

// Repository exposes persistence helpers for attachment rows.
type Repository interface {
	WithTx(tx *gorm.DB) Repository
	Create(ctx context.Context, attachment *models.Attachment) error
	ListForTarget(ctx context.Context, target enums.TargetType, targetID int64) ([]models.Attachment, error)
}

type repositoryImpl struct {
	db *gorm.DB
}

// NewRepository returns an attachments repository bound to the provided database.
func NewRepository(db *gorm.DB) Repository {
	return &repositoryImpl{db: db}
}

func (r *repositoryImpl) WithTx(tx *gorm.DB) Repository {
	if tx == nil {
		return r
	}
	return &repositoryImpl{db: tx}
}

func (r *repositoryImpl) Create(ctx context.Context, attachment *models.Attachment) error {
	return r.db.WithContext(ctx).Create(attachment).Error
}

func (r *repositoryImpl) ListForTarget(ctx context.Context, target enums.TargetType, targetID int64) ([]models.Attachment, error) {
	var attachments []models.Attachment
	err := r.db.WithContext(ctx).
		Where("target_type = ? AND target_id = ?", target, targetID).
		Order("created_at DESC").
		Find(&attachments).Error
	if err != nil {
		return nil, err
	}
	return attachments, nil
}
