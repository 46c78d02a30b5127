package favorites

import (
	"context"

	"github.com/hudumahub/marketplace-backend/pkg/db/models"
	"gorm.io/gorm"
)

// Repository exposes persistence helpers for favorites.
type Repository interface {
	WithTx(tx *gorm.DB) Repository
	Create(ctx context.Context, favorite *models.Favorite) error
	ListForUser(ctx context.Context, userID int64) ([]models.Favorite, error)
	Delete(ctx context.Context, userID, targetID int64) (int64, error)
}

type repositoryImpl struct {
	db *gorm.DB
}

// NewRepository returns a favorites repository bound to the provided database.
func NewRepository(db *gorm.DB) Repository {
	return &repositoryImpl{db: db}
}

func (r *repositoryImpl) WithTx(tx *gorm.DB) Repository {
	if tx == nil {
		return r
	}
	return &repositoryImpl{db: tx}
}

func (r *repositoryImpl) Create(ctx context.Context, favorite *models.Favorite) error {
	return r.db.WithContext(ctx).Create(favorite).Error
}

func (r *repositoryImpl) ListForUser(ctx context.Context, userID int64) ([]models.Favorite, error) {
	var favorites []models.Favorite
	err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Find(&favorites).Error
	if err != nil {
		return nil, err
	}
	return favorites, nil
}

func (r *repositoryImpl) Delete(ctx context.Context, userID, targetID int64) (int64, error) {
	result := r.db.WithContext(ctx).
		Where("user_id = ? AND target_id = ?", userID, targetID).
		Delete(&models.Favorite{})
	return result.RowsAffected, result.Error
}
