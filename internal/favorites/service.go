package favorites

import (
	"context"

	"github.com/hudumahub/marketplace-backend/pkg/db"
	"github.com/hudumahub/marketplace-backend/pkg/db/models"
	"github.com/hudumahub/marketplace-backend/pkg/enums"
	pkgerrors "github.com/hudumahub/marketplace-backend/pkg/errors"
)

// Service manages a user's bookmarked targets.
type Service interface {
	Add(ctx context.Context, userID int64, targetType string, targetID int64) (*models.Favorite, error)
	List(ctx context.Context, userID int64) ([]models.Favorite, error)
	Remove(ctx context.Context, userID, targetID int64) error
}

type service struct {
	repo Repository
}

// NewService wires favorites dependencies.
func NewService(repo Repository) (Service, error) {
	if repo == nil {
		return nil, pkgerrors.New(pkgerrors.CodeDependency, "favorites repository required")
	}
	return &service{repo: repo}, nil
}

func (s *service) Add(ctx context.Context, userID int64, targetType string, targetID int64) (*models.Favorite, error) {
	target, err := enums.ParseTargetType(targetType)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid target type")
	}
	if targetID <= 0 {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "target id required")
	}

	favorite := &models.Favorite{
		UserID:     userID,
		TargetType: target,
		TargetID:   targetID,
	}
	if err := s.repo.Create(ctx, favorite); err != nil {
		// adding an existing favorite is a no-op
		if db.IsUniqueViolation(err, "uq_favorites_user_target") {
			return favorite, nil
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "add favorite")
	}
	return favorite, nil
}

func (s *service) List(ctx context.Context, userID int64) ([]models.Favorite, error) {
	favorites, err := s.repo.ListForUser(ctx, userID)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list favorites")
	}
	return favorites, nil
}

func (s *service) Remove(ctx context.Context, userID, targetID int64) error {
	if targetID <= 0 {
		return pkgerrors.New(pkgerrors.CodeValidation, "target id required")
	}
	affected, err := s.repo.Delete(ctx, userID, targetID)
	if err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "remove favorite")
	}
	if affected == 0 {
		return pkgerrors.New(pkgerrors.CodeNotFound, "favorite not found")
	}
	return nil
}
