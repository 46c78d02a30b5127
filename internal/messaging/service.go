package messaging

import (
	"context"
	"strings"
	"time"

	"github.com/hudumahub/marketplace-backend/internal/profiles"
	"github.com/hudumahub/marketplace-backend/pkg/db/models"
	"github.com/hudumahub/marketplace-backend/pkg/enums"
	pkgerrors "github.com/hudumahub/marketplace-backend/pkg/errors"
	"github.com/hudumahub/marketplace-backend/pkg/logger"
	"github.com/hudumahub/marketplace-backend/pkg/pagination"
)

// Service manages target-scoped conversations between users.
type Service interface {
	Send(ctx context.Context, senderID int64, input SendInput) (*models.Message, error)
	List(ctx context.Context, userID int64, query ListQuery) ([]models.Message, error)
	MarkRead(ctx context.Context, userID int64, targetType string, targetID int64, messageIDs []int64) (int64, error)
	UnreadCount(ctx context.Context, userID int64, targetType string) (int64, error)
}

// SendInput carries a new message.
type SendInput struct {
	ReceiverID int64  `json:"receiver_id" validate:"required,gt=0"`
	TargetType string `json:"target_type" validate:"required"`
	TargetID   int64  `json:"target_id" validate:"required,gt=0"`
	Content    string `json:"content" validate:"required"`
}

// ListQuery selects one conversation page.
type ListQuery struct {
	TargetType string
	TargetID   int64
	WithUser   int64
	Page       int
	Limit      int
}

type service struct {
	repo     Repository
	resolver profiles.Resolver
	log      *logger.Logger
}

// NewService wires messaging dependencies.
func NewService(repo Repository, resolver profiles.Resolver, log *logger.Logger) (Service, error) {
	if repo == nil {
		return nil, pkgerrors.New(pkgerrors.CodeDependency, "message repository required")
	}
	if resolver == nil {
		return nil, pkgerrors.New(pkgerrors.CodeDependency, "profile resolver required")
	}
	if log == nil {
		return nil, pkgerrors.New(pkgerrors.CodeDependency, "logger required")
	}
	return &service{repo: repo, resolver: resolver, log: log}, nil
}

func (s *service) Send(ctx context.Context, senderID int64, input SendInput) (*models.Message, error) {
	target, err := enums.ParseTargetType(input.TargetType)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid target type")
	}
	if input.ReceiverID <= 0 {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "receiver id required")
	}
	if input.ReceiverID == senderID {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "cannot message yourself")
	}
	if input.TargetID <= 0 {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "target id required")
	}
	content := strings.TrimSpace(input.Content)
	if content == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "message content is required")
	}

	message := &models.Message{
		SenderID:   senderID,
		ReceiverID: input.ReceiverID,
		TargetType: target,
		TargetID:   input.TargetID,
		Content:    content,
	}
	if err := s.repo.Create(ctx, message); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "send message")
	}

	// a failed interaction write never fails the send
	interaction := &models.Interaction{
		UserID:          senderID,
		TargetType:      target,
		TargetID:        input.TargetID,
		InteractionType: enums.InteractionTypeMessage,
	}
	if err := s.repo.CreateInteraction(ctx, interaction); err != nil {
		s.log.Error(ctx, "record message interaction", err)
	}

	return message, nil
}

func (s *service) List(ctx context.Context, userID int64, query ListQuery) ([]models.Message, error) {
	target, err := enums.ParseTargetType(query.TargetType)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid target type")
	}
	if query.TargetID <= 0 {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "target id required")
	}
	if query.WithUser <= 0 {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "with_user required")
	}

	// only the owner of the provider or business the conversation is
	// about may read it
	if err := s.resolver.AssertOwnsTarget(ctx, userID, target, query.TargetID); err != nil {
		return nil, err
	}

	params := pagination.Normalize(pagination.Params{Page: query.Page, Limit: query.Limit})
	messages, err := s.repo.ListConversation(ctx, userID, query.WithUser, target, query.TargetID, params.Offset(), params.Limit)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list conversation")
	}
	return messages, nil
}

func (s *service) MarkRead(ctx context.Context, userID int64, targetType string, targetID int64, messageIDs []int64) (int64, error) {
	target, err := enums.ParseTargetType(targetType)
	if err != nil {
		return 0, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid target type")
	}
	if targetID <= 0 {
		return 0, pkgerrors.New(pkgerrors.CodeValidation, "target id required")
	}
	if len(messageIDs) == 0 {
		return 0, nil
	}

	if err := s.resolver.AssertOwnsTarget(ctx, userID, target, targetID); err != nil {
		return 0, err
	}

	updated, err := s.repo.MarkRead(ctx, userID, target, targetID, messageIDs, time.Now().UTC())
	if err != nil {
		return 0, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "mark messages read")
	}
	return updated, nil
}

func (s *service) UnreadCount(ctx context.Context, userID int64, targetType string) (int64, error) {
	target, err := enums.ParseTargetType(targetType)
	if err != nil {
		return 0, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid target type")
	}

	if _, err := s.resolver.GetTargetID(ctx, userID, target); err != nil {
		return 0, err
	}

	count, err := s.repo.UnreadCount(ctx, userID, target)
	if err != nil {
		return 0, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "count unread messages")
	}
	return count, nil
}
