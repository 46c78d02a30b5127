package reviews

import (
	"context"
	"strings"

	"github.com/hudumahub/marketplace-backend/internal/profiles"
	"github.com/hudumahub/marketplace-backend/pkg/db"
	"github.com/hudumahub/marketplace-backend/pkg/db/models"
	"github.com/hudumahub/marketplace-backend/pkg/enums"
	pkgerrors "github.com/hudumahub/marketplace-backend/pkg/errors"
	"github.com/shopspring/decimal"
)

// Service manages target reviews and their aggregates.
type Service interface {
	Create(ctx context.Context, reviewerID int64, input CreateInput) (*models.Review, error)
	ListForTarget(ctx context.Context, targetType string, targetID int64) ([]models.Review, error)
	Aggregate(ctx context.Context, targetType string, targetID int64) (AggregateRow, error)
	Rank(ctx context.Context, targetType string) ([]RankRow, error)
}

// CreateInput carries a new review.
type CreateInput struct {
	TargetType string `json:"target_type" validate:"required"`
	TargetID   int64  `json:"target_id" validate:"required,gt=0"`
	Rating     int    `json:"rating" validate:"required,min=1,max=5"`
	Comment    string `json:"comment" validate:"required"`
}

type service struct {
	repo     Repository
	resolver profiles.Resolver
}

// NewService wires review dependencies.
func NewService(repo Repository, resolver profiles.Resolver) (Service, error) {
	if repo == nil {
		return nil, pkgerrors.New(pkgerrors.CodeDependency, "review repository required")
	}
	if resolver == nil {
		return nil, pkgerrors.New(pkgerrors.CodeDependency, "profile resolver required")
	}
	return &service{repo: repo, resolver: resolver}, nil
}

func (s *service) Create(ctx context.Context, reviewerID int64, input CreateInput) (*models.Review, error) {
	target, err := enums.ParseTargetType(input.TargetType)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid target type")
	}
	if input.TargetID <= 0 {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "target id required")
	}
	if input.Rating < 1 || input.Rating > 5 {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "rating must be between 1 and 5")
	}
	comment := strings.TrimSpace(input.Comment)
	if comment == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "comment is required")
	}

	exists, err := s.resolver.TargetExists(ctx, target, input.TargetID)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "check target")
	}
	if !exists {
		return nil, pkgerrors.New(pkgerrors.CodeNotFound, "target not found")
	}

	reviewed, err := s.repo.Exists(ctx, reviewerID, target, input.TargetID)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "check existing review")
	}
	if reviewed {
		return nil, pkgerrors.New(pkgerrors.CodeConflict, "target already reviewed")
	}

	interacted, err := s.repo.HasInteraction(ctx, reviewerID, target, input.TargetID)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "check interactions")
	}
	if !interacted {
		return nil, pkgerrors.New(pkgerrors.CodeForbidden, "reviews require a prior interaction with the target")
	}

	review := &models.Review{
		ReviewerID: reviewerID,
		TargetType: target,
		TargetID:   input.TargetID,
		Rating:     input.Rating,
		Comment:    comment,
	}
	if err := s.repo.Create(ctx, review); err != nil {
		// the unique triple catches a concurrent duplicate
		if db.IsUniqueViolation(err, "uq_reviews_reviewer_target") {
			return nil, pkgerrors.Wrap(pkgerrors.CodeConflict, err, "target already reviewed")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "create review")
	}
	return review, nil
}

func (s *service) ListForTarget(ctx context.Context, targetType string, targetID int64) ([]models.Review, error) {
	target, err := enums.ParseTargetType(targetType)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid target type")
	}
	if targetID <= 0 {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "target id required")
	}

	reviews, err := s.repo.ListForTarget(ctx, target, targetID)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list reviews")
	}
	return reviews, nil
}

func (s *service) Aggregate(ctx context.Context, targetType string, targetID int64) (AggregateRow, error) {
	target, err := enums.ParseTargetType(targetType)
	if err != nil {
		return AggregateRow{}, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid target type")
	}
	if targetID <= 0 {
		return AggregateRow{}, pkgerrors.New(pkgerrors.CodeValidation, "target id required")
	}

	row, err := s.repo.Aggregate(ctx, target, targetID)
	if err != nil {
		return AggregateRow{}, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "aggregate reviews")
	}
	row.AverageRating = roundRating(row.AverageRating)
	return row, nil
}

func (s *service) Rank(ctx context.Context, targetType string) ([]RankRow, error) {
	target, err := enums.ParseTargetType(targetType)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid target type")
	}

	rows, err := s.repo.Rank(ctx, target)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "rank targets")
	}
	for i := range rows {
		rows[i].AverageRating = roundRating(rows[i].AverageRating)
	}
	return rows, nil
}

func roundRating(value float64) float64 {
	rounded, _ := decimal.NewFromFloat(value).Round(2).Float64()
	return rounded
}
