package posts

import (
	"context"
	"strings"

	"github.com/hudumahub/marketplace-backend/internal/profiles"
	"github.com/hudumahub/marketplace-backend/pkg/db/models"
	"github.com/hudumahub/marketplace-backend/pkg/enums"
	pkgerrors "github.com/hudumahub/marketplace-backend/pkg/errors"
)

// Service manages the public post feed published by targets.
type Service interface {
	Create(ctx context.Context, userID int64, input CreateInput) (*models.Post, error)
	List(ctx context.Context, targetType string, targetID int64) ([]models.Post, error)
}

// CreateInput carries a new post.
type CreateInput struct {
	Title      string `json:"title" validate:"required,min=1,max=255"`
	Content    string `json:"content" validate:"required,min=1,max=1000"`
	TargetType string `json:"target_type" validate:"required"`
	TargetID   int64  `json:"target_id" validate:"required,gt=0"`
}

type service struct {
	repo     Repository
	resolver profiles.Resolver
}

// NewService wires posts dependencies.
func NewService(repo Repository, resolver profiles.Resolver) (Service, error) {
	if repo == nil {
		return nil, pkgerrors.New(pkgerrors.CodeDependency, "posts repository required")
	}
	if resolver == nil {
		return nil, pkgerrors.New(pkgerrors.CodeDependency, "profile resolver required")
	}
	return &service{repo: repo, resolver: resolver}, nil
}

func (s *service) Create(ctx context.Context, userID int64, input CreateInput) (*models.Post, error) {
	target, err := enums.ParseTargetType(input.TargetType)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid target type")
	}
	if input.TargetID <= 0 {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "target id required")
	}
	title := strings.TrimSpace(input.Title)
	if title == "" || len(title) > 255 {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "title must be between 1 and 255 characters")
	}
	content := strings.TrimSpace(input.Content)
	if content == "" || len(content) > 1000 {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "content must be between 1 and 1000 characters")
	}

	if err := s.resolver.AssertOwnsTarget(ctx, userID, target, input.TargetID); err != nil {
		return nil, err
	}

	post := &models.Post{
		Title:      title,
		Content:    content,
		TargetType: target,
		TargetID:   input.TargetID,
		CreatedBy:  userID,
	}
	if err := s.repo.Create(ctx, post); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "create post")
	}
	return post, nil
}

func (s *service) List(ctx context.Context, targetType string, targetID int64) ([]models.Post, error) {
	filter := Filter{}
	if targetType != "" {
		target, err := enums.ParseTargetType(targetType)
		if err != nil {
			return nil, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid target type")
		}
		filter.TargetType = target
	}
	if targetID > 0 {
		filter.TargetID = targetID
	}

	posts, err := s.repo.List(ctx, filter)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list posts")
	}
	return posts, nil
}
