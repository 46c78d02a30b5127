package messaging

import (
	"context"
	"errors"
	"io"
	"testing"
	"time"

	"github.com/hudumahub/marketplace-backend/pkg/db/models"
	"github.com/hudumahub/marketplace-backend/pkg/enums"
	pkgerrors "github.com/hudumahub/marketplace-backend/pkg/errors"
	"github.com/hudumahub/marketplace-backend/pkg/logger"
	"gorm.io/gorm"
)

type fakeRepository struct {
	createFn            func(ctx context.Context, message *models.Message) error
	createInteractionFn func(ctx context.Context, interaction *models.Interaction) error
	listConversationFn  func(ctx context.Context, userA, userB int64, target enums.TargetType, targetID int64, offset, limit int) ([]models.Message, error)
	markReadFn          func(ctx context.Context, receiverID int64, target enums.TargetType, targetID int64, messageIDs []int64, readAt time.Time) (int64, error)
	unreadCountFn       func(ctx context.Context, receiverID int64, target enums.TargetType) (int64, error)
}

func (f *fakeRepository) WithTx(tx *gorm.DB) Repository { return f }

func (f *fakeRepository) Create(ctx context.Context, message *models.Message) error {
	if f.createFn != nil {
		return f.createFn(ctx, message)
	}
	message.ID = 1
	return nil
}

func (f *fakeRepository) CreateInteraction(ctx context.Context, interaction *models.Interaction) error {
	if f.createInteractionFn != nil {
		return f.createInteractionFn(ctx, interaction)
	}
	return nil
}

func (f *fakeRepository) ListConversation(ctx context.Context, userA, userB int64, target enums.TargetType, targetID int64, offset, limit int) ([]models.Message, error) {
	if f.listConversationFn != nil {
		return f.listConversationFn(ctx, userA, userB, target, targetID, offset, limit)
	}
	return nil, nil
}

func (f *fakeRepository) MarkRead(ctx context.Context, receiverID int64, target enums.TargetType, targetID int64, messageIDs []int64, readAt time.Time) (int64, error) {
	if f.markReadFn != nil {
		return f.markReadFn(ctx, receiverID, target, targetID, messageIDs, readAt)
	}
	return int64(len(messageIDs)), nil
}

func (f *fakeRepository) UnreadCount(ctx context.Context, receiverID int64, target enums.TargetType) (int64, error) {
	if f.unreadCountFn != nil {
		return f.unreadCountFn(ctx, receiverID, target)
	}
	return 0, nil
}

type fakeResolver struct {
	getTargetIDFn      func(ctx context.Context, userID int64, target enums.TargetType) (int64, error)
	assertOwnsTargetFn func(ctx context.Context, userID int64, target enums.TargetType, targetID int64) error
}

func (f *fakeResolver) GetTargetID(ctx context.Context, userID int64, target enums.TargetType) (int64, error) {
	if f.getTargetIDFn != nil {
		return f.getTargetIDFn(ctx, userID, target)
	}
	return userID, nil
}

func (f *fakeResolver) AssertOwnsTarget(ctx context.Context, userID int64, target enums.TargetType, targetID int64) error {
	if f.assertOwnsTargetFn != nil {
		return f.assertOwnsTargetFn(ctx, userID, target, targetID)
	}
	return nil
}

func (f *fakeResolver) TargetExists(ctx context.Context, target enums.TargetType, targetID int64) (bool, error) {
	return true, nil
}

func (f *fakeResolver) GetClientID(ctx context.Context, userID int64) (int64, error) {
	return userID, nil
}

func newServiceWithRepo(t *testing.T, repo Repository) Service {
	t.Helper()
	return newServiceWith(t, repo, &fakeResolver{})
}

func newServiceWith(t *testing.T, repo Repository, resolver *fakeResolver) Service {
	t.Helper()
	log := logger.New(logger.Options{ServiceName: "test", Output: io.Discard})
	svc, err := NewService(repo, resolver, log)
	if err != nil {
		t.Fatalf("unexpected service error: %v", err)
	}
	return svc
}

func TestSendRecordsInteraction(t *testing.T) {
	var interaction *models.Interaction
	repo := &fakeRepository{
		createInteractionFn: func(ctx context.Context, row *models.Interaction) error {
			interaction = row
			return nil
		},
	}
	svc := newServiceWithRepo(t, repo)

	message, err := svc.Send(context.Background(), 5, SendInput{
		ReceiverID: 9,
		TargetType: "provider",
		TargetID:   42,
		Content:    "Are you available on Friday?",
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if message.ID == 0 {
		t.Fatal("expected persisted message")
	}
	if interaction == nil || interaction.UserID != 5 || interaction.InteractionType != enums.InteractionTypeMessage {
		t.Fatalf("unexpected interaction %+v", interaction)
	}
}

func TestSendSurvivesInteractionFailure(t *testing.T) {
	repo := &fakeRepository{
		createInteractionFn: func(ctx context.Context, row *models.Interaction) error {
			return errors.New("boom")
		},
	}
	svc := newServiceWithRepo(t, repo)

	_, err := svc.Send(context.Background(), 5, SendInput{
		ReceiverID: 9,
		TargetType: "provider",
		TargetID:   42,
		Content:    "Hello",
	})
	if err != nil {
		t.Fatalf("interaction failure must not fail the send: %v", err)
	}
}

func TestSendRejectsEmptyContent(t *testing.T) {
	svc := newServiceWithRepo(t, &fakeRepository{})

	_, err := svc.Send(context.Background(), 5, SendInput{
		ReceiverID: 9,
		TargetType: "provider",
		TargetID:   42,
		Content:    "   ",
	})
	if pkgerrors.As(err).Code() != pkgerrors.CodeValidation {
		t.Fatalf("expected validation error, got %v", err)
	}
}

func TestSendRejectsSelfMessage(t *testing.T) {
	svc := newServiceWithRepo(t, &fakeRepository{})

	_, err := svc.Send(context.Background(), 5, SendInput{
		ReceiverID: 5,
		TargetType: "provider",
		TargetID:   42,
		Content:    "Hello",
	})
	if pkgerrors.As(err).Code() != pkgerrors.CodeValidation {
		t.Fatalf("expected validation error, got %v", err)
	}
}

func TestListAppliesPaginationDefaults(t *testing.T) {
	var gotOffset, gotLimit int
	repo := &fakeRepository{
		listConversationFn: func(ctx context.Context, userA, userB int64, target enums.TargetType, targetID int64, offset, limit int) ([]models.Message, error) {
			gotOffset, gotLimit = offset, limit
			return nil, nil
		},
	}
	svc := newServiceWithRepo(t, repo)

	_, err := svc.List(context.Background(), 5, ListQuery{
		TargetType: "provider",
		TargetID:   42,
		WithUser:   9,
		Page:       3,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if gotLimit != 10 {
		t.Fatalf("expected default limit, got %d", gotLimit)
	}
	if gotOffset != 20 {
		t.Fatalf("expected offset 20, got %d", gotOffset)
	}
}

func TestMarkReadIsScopedToReceiver(t *testing.T) {
	var gotReceiver int64
	repo := &fakeRepository{
		markReadFn: func(ctx context.Context, receiverID int64, target enums.TargetType, targetID int64, messageIDs []int64, readAt time.Time) (int64, error) {
			gotReceiver = receiverID
			return 2, nil
		},
	}
	svc := newServiceWithRepo(t, repo)

	updated, err := svc.MarkRead(context.Background(), 5, "provider", 42, []int64{1, 2})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if updated != 2 || gotReceiver != 5 {
		t.Fatalf("unexpected result updated=%d receiver=%d", updated, gotReceiver)
	}
}

func TestMarkReadEmptyIDsIsNoop(t *testing.T) {
	repo := &fakeRepository{
		markReadFn: func(ctx context.Context, receiverID int64, target enums.TargetType, targetID int64, messageIDs []int64, readAt time.Time) (int64, error) {
			t.Fatal("store should not be touched")
			return 0, nil
		},
	}
	svc := newServiceWithRepo(t, repo)

	updated, err := svc.MarkRead(context.Background(), 5, "provider", 42, nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if updated != 0 {
		t.Fatalf("expected zero updates, got %d", updated)
	}
}

func TestListForbiddenWithoutTargetProfile(t *testing.T) {
	repo := &fakeRepository{
		listConversationFn: func(ctx context.Context, userA, userB int64, target enums.TargetType, targetID int64, offset, limit int) ([]models.Message, error) {
			t.Fatal("store should not be touched")
			return nil, nil
		},
	}
	resolver := &fakeResolver{
		assertOwnsTargetFn: func(ctx context.Context, userID int64, target enums.TargetType, targetID int64) error {
			return pkgerrors.New(pkgerrors.CodeForbidden, "no profile for target type")
		},
	}
	svc := newServiceWith(t, repo, resolver)

	_, err := svc.List(context.Background(), 5, ListQuery{
		TargetType: "provider",
		TargetID:   42,
		WithUser:   9,
	})
	if pkgerrors.As(err).Code() != pkgerrors.CodeForbidden {
		t.Fatalf("expected forbidden, got %v", err)
	}
}

func TestMarkReadForbiddenForUnownedTarget(t *testing.T) {
	repo := &fakeRepository{
		markReadFn: func(ctx context.Context, receiverID int64, target enums.TargetType, targetID int64, messageIDs []int64, readAt time.Time) (int64, error) {
			t.Fatal("store should not be touched")
			return 0, nil
		},
	}
	resolver := &fakeResolver{
		assertOwnsTargetFn: func(ctx context.Context, userID int64, target enums.TargetType, targetID int64) error {
			return pkgerrors.New(pkgerrors.CodeForbidden, "target not owned by caller")
		},
	}
	svc := newServiceWith(t, repo, resolver)

	_, err := svc.MarkRead(context.Background(), 5, "provider", 42, []int64{1})
	if pkgerrors.As(err).Code() != pkgerrors.CodeForbidden {
		t.Fatalf("expected forbidden, got %v", err)
	}
}

func TestUnreadCountForbiddenWithoutTargetProfile(t *testing.T) {
	resolver := &fakeResolver{
		getTargetIDFn: func(ctx context.Context, userID int64, target enums.TargetType) (int64, error) {
			return 0, pkgerrors.New(pkgerrors.CodeForbidden, "no profile for target type")
		},
	}
	svc := newServiceWith(t, &fakeRepository{}, resolver)

	_, err := svc.UnreadCount(context.Background(), 5, "provider")
	if pkgerrors.As(err).Code() != pkgerrors.CodeForbidden {
		t.Fatalf("expected forbidden, got %v", err)
	}
}

func TestUnreadCount(t *testing.T) {
	repo := &fakeRepository{
		unreadCountFn: func(ctx context.Context, receiverID int64, target enums.TargetType) (int64, error) {
			return 3, nil
		},
	}
	svc := newServiceWithRepo(t, repo)

	count, err := svc.UnreadCount(context.Background(), 5, "provider")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if count != 3 {
		t.Fatalf("expected 3, got %d", count)
	}
}
