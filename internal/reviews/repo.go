package reviews

import (
	"context"

	"github.com/hudumahub/marketplace-backend/pkg/db/models"
	"github.com/hudumahub/marketplace-backend/pkg/enums"
	"gorm.io/gorm"
)

// AggregateRow is the raw average/count pair for one target.
type AggregateRow struct {
	AverageRating float64 `json:"average_rating"`
	ReviewCount   int64   `json:"review_count"`
}

// RankRow is one entry of the target leaderboard.
type RankRow struct {
	TargetID      int64   `json:"target_id"`
	AverageRating float64 `json:"average_rating"`
	ReviewCount   int64   `json:"review_count"`
}

// Repository exposes persistence helpers for reviews.
type Repository interface {
	WithTx(tx *gorm.DB) Repository
	Create(ctx context.Context, review *models.Review) error
	Exists(ctx context.Context, reviewerID int64, target enums.TargetType, targetID int64) (bool, error)
	HasInteraction(ctx context.Context, userID int64, target enums.TargetType, targetID int64) (bool, error)
	ListForTarget(ctx context.Context, target enums.TargetType, targetID int64) ([]models.Review, error)
	Aggregate(ctx context.Context, target enums.TargetType, targetID int64) (AggregateRow, error)
	Rank(ctx context.Context, target enums.TargetType) ([]RankRow, error)
}

type repositoryImpl struct {
	db *gorm.DB
}

// NewRepository returns a reviews repository bound to the provided database.
func NewRepository(db *gorm.DB) Repository {
	return &repositoryImpl{db: db}
}

func (r *repositoryImpl) WithTx(tx *gorm.DB) Repository {
	if tx == nil {
		return r
	}
	return &repositoryImpl{db: tx}
}

func (r *repositoryImpl) Create(ctx context.Context, review *models.Review) error {
	return r.db.WithContext(ctx).Create(review).Error
}

func (r *repositoryImpl) Exists(ctx context.Context, reviewerID int64, target enums.TargetType, targetID int64) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&models.Review{}).
		Where("reviewer_id = ? AND target_type = ? AND target_id = ?", reviewerID, target, targetID).
		Count(&count).Error
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

func (r *repositoryImpl) HasInteraction(ctx context.Context, userID int64, target enums.TargetType, targetID int64) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&models.Interaction{}).
		Where("user_id = ? AND target_type = ? AND target_id = ?", userID, target, targetID).
		Count(&count).Error
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

func (r *repositoryImpl) ListForTarget(ctx context.Context, target enums.TargetType, targetID int64) ([]models.Review, error) {
	var reviews []models.Review
	err := r.db.WithContext(ctx).
		Where("target_type = ? AND target_id = ?", target, targetID).
		Order("created_at DESC").
		Find(&reviews).Error
	if err != nil {
		return nil, err
	}
	return reviews, nil
}

func (r *repositoryImpl) Aggregate(ctx context.Context, target enums.TargetType, targetID int64) (AggregateRow, error) {
	var row AggregateRow
	err := r.db.WithContext(ctx).
		Model(&models.Review{}).
		Select("COALESCE(AVG(rating), 0) AS average_rating, COUNT(*) AS review_count").
		Where("target_type = ? AND target_id = ?", target, targetID).
		Scan(&row).Error
	return row, err
}

func (r *repositoryImpl) Rank(ctx context.Context, target enums.TargetType) ([]RankRow, error) {
	var rows []RankRow
	err := r.db.WithContext(ctx).
		Model(&models.Review{}).
		Select("target_id, AVG(rating) AS average_rating, COUNT(*) AS review_count").
		Where("target_type = ?", target).
		Group("target_id").
		Order("average_rating DESC, review_count DESC").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	return rows, nil
}
