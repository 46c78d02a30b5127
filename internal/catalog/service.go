package catalog

import (
	"context"
	"errors"
	"strings"

	"github.com/hudumahub/marketplace-backend/internal/profiles"
	"github.com/hudumahub/marketplace-backend/pkg/db/models"
	"github.com/hudumahub/marketplace-backend/pkg/enums"
	pkgerrors "github.com/hudumahub/marketplace-backend/pkg/errors"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// Service manages the category taxonomy and bookable service listings.
type Service interface {
	ListCategories(ctx context.Context) ([]CategoryRow, error)
	Subcategories(ctx context.Context, parentID int64) ([]models.Category, error)
	CreateCategory(ctx context.Context, name string, parentID *int64) (*models.Category, error)
	CreateParentAndChild(ctx context.Context, parentName, childName string) (*models.Category, *models.Category, error)
	DeleteCategory(ctx context.Context, id int64) error

	AssignCategories(ctx context.Context, userID int64, target enums.TargetType, categoryIDs []int64) error
	ProvidersByCategory(ctx context.Context, category, subcategory string) ([]models.Provider, error)
	BusinessesByCategory(ctx context.Context, category, subcategory string) ([]models.Business, error)

	CreateService(ctx context.Context, userID int64, input ServiceInput) (*models.Service, error)
	ListServices(ctx context.Context, filter ServiceFilter) ([]models.Service, error)
	EditService(ctx context.Context, userID, serviceID int64, patch ServicePatch) (*models.Service, error)
	DeleteService(ctx context.Context, userID, serviceID int64) error
	AssertOwnsService(ctx context.Context, userID, serviceID int64) (*models.Service, error)
}

type txRunner interface {
	WithTx(ctx context.Context, fn func(tx *gorm.DB) error) error
}

type service struct {
	repo     Repository
	tx       txRunner
	resolver profiles.Resolver
}

// ServiceInput carries a new service listing.
type ServiceInput struct {
	TargetType      string          `json:"target_type" validate:"required"`
	TargetID        int64           `json:"target_id" validate:"required,gt=0"`
	Title           string          `json:"title" validate:"required,max=255"`
	Description     string          `json:"description" validate:"required"`
	Price           decimal.Decimal `json:"price" validate:"required"`
	DurationMinutes int             `json:"duration_minutes"`
	CategoryID      *int64          `json:"category_id"`
}

// ServicePatch holds optional edits to an existing service listing.
type ServicePatch struct {
	Title           *string          `json:"title" validate:"omitempty,min=1,max=255"`
	Description     *string          `json:"description" validate:"omitempty,min=1"`
	Price           *decimal.Decimal `json:"price"`
	DurationMinutes *int             `json:"duration_minutes" validate:"omitempty,gt=0"`
	CategoryID      *int64           `json:"category_id"`
	IsActive        *bool            `json:"is_active"`
}

// NewService wires catalog dependencies.
func NewService(repo Repository, tx txRunner, resolver profiles.Resolver) (Service, error) {
	if repo == nil {
		return nil, pkgerrors.New(pkgerrors.CodeDependency, "catalog repository required")
	}
	if tx == nil {
		return nil, pkgerrors.New(pkgerrors.CodeDependency, "transaction runner required")
	}
	if resolver == nil {
		return nil, pkgerrors.New(pkgerrors.CodeDependency, "profile resolver required")
	}
	return &service{repo: repo, tx: tx, resolver: resolver}, nil
}

func (s *service) ListCategories(ctx context.Context) ([]CategoryRow, error) {
	rows, err := s.repo.ListCategories(ctx)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list categories")
	}
	return rows, nil
}

func (s *service) Subcategories(ctx context.Context, parentID int64) ([]models.Category, error) {
	if parentID <= 0 {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "parent id required")
	}
	categories, err := s.repo.Subcategories(ctx, parentID)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list subcategories")
	}
	return categories, nil
}

func (s *service) CreateCategory(ctx context.Context, name string, parentID *int64) (*models.Category, error) {
	name = strings.TrimSpace(name)
	if name == "" || len(name) > 100 {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "category name must be between 1 and 100 characters")
	}

	if parentID != nil {
		parent, err := s.repo.GetCategory(ctx, *parentID)
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "parent category not found")
		}
		if err != nil {
			return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load parent category")
		}
		// the taxonomy stays two levels deep
		if parent.ParentID != nil {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, "parent must be a top-level category")
		}
	}

	category := &models.Category{Name: name, ParentID: parentID}
	if err := s.repo.CreateCategory(ctx, category); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "create category")
	}
	return category, nil
}

func (s *service) CreateParentAndChild(ctx context.Context, parentName, childName string) (*models.Category, *models.Category, error) {
	parentName = strings.TrimSpace(parentName)
	childName = strings.TrimSpace(childName)
	if parentName == "" || childName == "" {
		return nil, nil, pkgerrors.New(pkgerrors.CodeValidation, "parent and child names are required")
	}
	if len(parentName) > 100 || len(childName) > 100 {
		return nil, nil, pkgerrors.New(pkgerrors.CodeValidation, "category names must be at most 100 characters")
	}

	var parent *models.Category
	var child *models.Category
	err := s.tx.WithTx(ctx, func(tx *gorm.DB) error {
		repo := s.repo.WithTx(tx)

		existing, err := repo.GetRootCategoryByName(ctx, parentName)
		switch {
		case err == nil:
			parent = existing
		case errors.Is(err, gorm.ErrRecordNotFound):
			parent = &models.Category{Name: parentName}
			if err := repo.CreateCategory(ctx, parent); err != nil {
				return err
			}
		default:
			return err
		}

		child = &models.Category{Name: childName, ParentID: &parent.ID}
		return repo.CreateCategory(ctx, child)
	})
	if err != nil {
		if typed := pkgerrors.As(err); typed != nil {
			return nil, nil, typed
		}
		return nil, nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "create parent and child categories")
	}
	return parent, child, nil
}

func (s *service) DeleteCategory(ctx context.Context, id int64) error {
	if id <= 0 {
		return pkgerrors.New(pkgerrors.CodeValidation, "category id required")
	}

	err := s.tx.WithTx(ctx, func(tx *gorm.DB) error {
		repo := s.repo.WithTx(tx)

		// children survive the delete and become roots
		if err := repo.ReRootChildren(ctx, id); err != nil {
			return err
		}
		affected, err := repo.DeleteCategory(ctx, id)
		if err != nil {
			return err
		}
		if affected == 0 {
			return pkgerrors.New(pkgerrors.CodeNotFound, "category not found")
		}
		return nil
	})
	if err != nil {
		if typed := pkgerrors.As(err); typed != nil {
			return typed
		}
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "delete category")
	}
	return nil
}

func (s *service) AssignCategories(ctx context.Context, userID int64, target enums.TargetType, categoryIDs []int64) error {
	if target != enums.TargetTypeProvider && target != enums.TargetTypeBusiness {
		return pkgerrors.New(pkgerrors.CodeValidation, "invalid target type")
	}
	for _, id := range categoryIDs {
		if id <= 0 {
			return pkgerrors.New(pkgerrors.CodeValidation, "category ids must be positive")
		}
	}

	targetID, err := s.resolver.GetTargetID(ctx, userID, target)
	if err != nil {
		return err
	}

	err = s.tx.WithTx(ctx, func(tx *gorm.DB) error {
		repo := s.repo.WithTx(tx)

		if target == enums.TargetTypeBusiness {
			if err := repo.DeleteBusinessCategories(ctx, targetID); err != nil {
				return err
			}
			rows := make([]models.BusinessCategory, 0, len(categoryIDs))
			for _, id := range categoryIDs {
				rows = append(rows, models.BusinessCategory{BusinessID: targetID, CategoryID: id})
			}
			return repo.CreateBusinessCategories(ctx, rows)
		}

		if err := repo.DeleteProviderCategories(ctx, targetID); err != nil {
			return err
		}
		rows := make([]models.ProviderCategory, 0, len(categoryIDs))
		for _, id := range categoryIDs {
			rows = append(rows, models.ProviderCategory{ProviderID: targetID, CategoryID: id})
		}
		return repo.CreateProviderCategories(ctx, rows)
	})
	if err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "assign categories")
	}
	return nil
}

func (s *service) ProvidersByCategory(ctx context.Context, category, subcategory string) ([]models.Provider, error) {
	providers, err := s.repo.ProvidersByCategory(ctx, category, subcategory)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list providers by category")
	}
	return providers, nil
}

func (s *service) BusinessesByCategory(ctx context.Context, category, subcategory string) ([]models.Business, error) {
	businesses, err := s.repo.BusinessesByCategory(ctx, category, subcategory)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list businesses by category")
	}
	return businesses, nil
}

func (s *service) CreateService(ctx context.Context, userID int64, input ServiceInput) (*models.Service, error) {
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
	if strings.TrimSpace(input.Description) == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "description is required")
	}
	if !input.Price.IsPositive() {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "price must be greater than zero")
	}
	duration := input.DurationMinutes
	if duration == 0 {
		duration = 60
	}
	if duration < 0 {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "duration must be positive")
	}

	if err := s.resolver.AssertOwnsTarget(ctx, userID, target, input.TargetID); err != nil {
		return nil, err
	}

	if input.CategoryID != nil {
		if _, err := s.repo.GetCategory(ctx, *input.CategoryID); err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, pkgerrors.New(pkgerrors.CodeValidation, "category not found")
			}
			return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load category")
		}
	}

	row := &models.Service{
		TargetType:      target,
		TargetID:        input.TargetID,
		Title:           title,
		Description:     strings.TrimSpace(input.Description),
		Price:           input.Price,
		DurationMinutes: duration,
		CategoryID:      input.CategoryID,
		IsActive:        true,
	}
	if err := s.repo.CreateService(ctx, row); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "create service")
	}
	return row, nil
}

func (s *service) ListServices(ctx context.Context, filter ServiceFilter) ([]models.Service, error) {
	services, err := s.repo.ListServices(ctx, filter)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list services")
	}
	return services, nil
}

func (s *service) EditService(ctx context.Context, userID, serviceID int64, patch ServicePatch) (*models.Service, error) {
	if _, err := s.AssertOwnsService(ctx, userID, serviceID); err != nil {
		return nil, err
	}

	fields := map[string]any{}
	if patch.Title != nil {
		title := strings.TrimSpace(*patch.Title)
		if title == "" || len(title) > 255 {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, "title must be between 1 and 255 characters")
		}
		fields["title"] = title
	}
	if patch.Description != nil {
		description := strings.TrimSpace(*patch.Description)
		if description == "" {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, "description cannot be empty")
		}
		fields["description"] = description
	}
	if patch.Price != nil {
		if !patch.Price.IsPositive() {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, "price must be greater than zero")
		}
		fields["price"] = *patch.Price
	}
	if patch.DurationMinutes != nil {
		if *patch.DurationMinutes <= 0 {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, "duration must be positive")
		}
		fields["duration_minutes"] = *patch.DurationMinutes
	}
	if patch.CategoryID != nil {
		fields["category_id"] = *patch.CategoryID
	}
	if patch.IsActive != nil {
		fields["is_active"] = *patch.IsActive
	}
	if len(fields) == 0 {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "no fields to update")
	}

	if _, err := s.repo.UpdateServiceFields(ctx, serviceID, fields); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "update service")
	}

	updated, err := s.repo.GetService(ctx, serviceID)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "reload service")
	}
	return updated, nil
}

func (s *service) DeleteService(ctx context.Context, userID, serviceID int64) error {
	if _, err := s.AssertOwnsService(ctx, userID, serviceID); err != nil {
		return err
	}
	affected, err := s.repo.DeleteService(ctx, serviceID)
	if err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "delete service")
	}
	if affected == 0 {
		return pkgerrors.New(pkgerrors.CodeNotFound, "service not found")
	}
	return nil
}

// AssertOwnsService loads the service and verifies the caller owns its target.
func (s *service) AssertOwnsService(ctx context.Context, userID, serviceID int64) (*models.Service, error) {
	if serviceID <= 0 {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "service id required")
	}
	row, err := s.repo.GetService(ctx, serviceID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, pkgerrors.New(pkgerrors.CodeNotFound, "service not found")
	}
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load service")
	}
	if err := s.resolver.AssertOwnsTarget(ctx, userID, row.TargetType, row.TargetID); err != nil {
		return nil, err
	}
	return row, nil
}
