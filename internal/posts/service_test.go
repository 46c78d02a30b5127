package posts

import (
	"context"
	"strings"
	"testing"

	"github.com/hudumahub/marketplace-backend/pkg/db/models"
	"github.com/hudumahub/marketplace-backend/pkg/enums"
	pkgerrors "github.com/hudumahub/marketplace-backend/pkg/errors"
	"gorm.io/gorm"
)

type fakeRepository struct {
	createFn func(ctx context.Context, post *models.Post) error
	listFn   func(ctx context.Context, filter Filter) ([]models.Post, error)
}

func (f *fakeRepository) WithTx(tx *gorm.DB) Repository { return f }

func (f *fakeRepository) Create(ctx context.Context, post *models.Post) error {
	if f.createFn != nil {
		return f.createFn(ctx, post)
	}
	post.ID = 1
	return nil
}

func (f *fakeRepository) List(ctx context.Context, filter Filter) ([]models.Post, error) {
	if f.listFn != nil {
		return f.listFn(ctx, filter)
	}
	return nil, nil
}

type fakeResolver struct {
	assertOwnsFn func(ctx context.Context, userID int64, target enums.TargetType, targetID int64) error
}

func (f *fakeResolver) GetTargetID(ctx context.Context, userID int64, target enums.TargetType) (int64, error) {
	return 0, pkgerrors.New(pkgerrors.CodeForbidden, "no profile for target type")
}

func (f *fakeResolver) AssertOwnsTarget(ctx context.Context, userID int64, target enums.TargetType, targetID int64) error {
	if f.assertOwnsFn != nil {
		return f.assertOwnsFn(ctx, userID, target, targetID)
	}
	return nil
}

func (f *fakeResolver) TargetExists(ctx context.Context, target enums.TargetType, targetID int64) (bool, error) {
	return true, nil
}

func (f *fakeResolver) GetClientID(ctx context.Context, userID int64) (int64, error) {
	return userID, nil
}

func newServiceWith(t *testing.T, repo Repository, resolver *fakeResolver) Service {
	t.Helper()
	if resolver == nil {
		resolver = &fakeResolver{}
	}
	svc, err := NewService(repo, resolver)
	if err != nil {
		t.Fatalf("unexpected service error: %v", err)
	}
	return svc
}

func TestCreatePost(t *testing.T) {
	svc := newServiceWith(t, &fakeRepository{}, nil)

	post, err := svc.Create(context.Background(), 7, CreateInput{
		Title:      "Weekend discount",
		Content:    "20% off all bookings this weekend.",
		TargetType: "provider",
		TargetID:   42,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if post.CreatedBy != 7 || post.TargetID != 42 {
		t.Fatalf("unexpected post %+v", post)
	}
}

func TestCreatePostOwnershipEnforced(t *testing.T) {
	resolver := &fakeResolver{
		assertOwnsFn: func(ctx context.Context, userID int64, target enums.TargetType, targetID int64) error {
			return pkgerrors.New(pkgerrors.CodeForbidden, "target not owned by caller")
		},
	}
	svc := newServiceWith(t, &fakeRepository{}, resolver)

	_, err := svc.Create(context.Background(), 7, CreateInput{
		Title:      "Weekend discount",
		Content:    "20% off all bookings this weekend.",
		TargetType: "provider",
		TargetID:   42,
	})
	if pkgerrors.As(err).Code() != pkgerrors.CodeForbidden {
		t.Fatalf("expected forbidden, got %v", err)
	}
}

func TestCreatePostContentTooLong(t *testing.T) {
	svc := newServiceWith(t, &fakeRepository{}, nil)

	_, err := svc.Create(context.Background(), 7, CreateInput{
		Title:      "Weekend discount",
		Content:    strings.Repeat("x", 1001),
		TargetType: "provider",
		TargetID:   42,
	})
	if pkgerrors.As(err).Code() != pkgerrors.CodeValidation {
		t.Fatalf("expected validation error, got %v", err)
	}
}

func TestListPostsInvalidTargetType(t *testing.T) {
	svc := newServiceWith(t, &fakeRepository{}, nil)

	_, err := svc.List(context.Background(), "warehouse", 0)
	if pkgerrors.As(err).Code() != pkgerrors.CodeValidation {
		t.Fatalf("expected validation error, got %v", err)
	}
}
