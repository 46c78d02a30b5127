package locations

import (
	"context"
	"strings"

	"github.com/hudumahub/marketplace-backend/internal/profiles"
	"github.com/hudumahub/marketplace-backend/pkg/db/models"
	"github.com/hudumahub/marketplace-backend/pkg/enums"
	pkgerrors "github.com/hudumahub/marketplace-backend/pkg/errors"
)

// Service serves the public location reference data and the branch
// locations businesses and providers pin to it.
type Service interface {
	Counties(ctx context.Context) ([]models.County, error)
	ConstituenciesByCounty(ctx context.Context, countyID int64) ([]models.Constituency, error)
	WardsByConstituency(ctx context.Context, constituencyID int64) ([]models.Ward, error)

	CreateBranch(ctx context.Context, userID, businessID int64, input BranchInput) (*models.BranchLocation, error)
	BranchesForBusiness(ctx context.Context, businessID int64) ([]BranchRow, error)
	CreateProviderLocation(ctx context.Context, userID, providerID int64, input ProviderLocationInput) (*models.ProviderLocation, error)
	SearchBusinesses(ctx context.Context, filter AreaFilter) ([]models.Business, error)
	SearchProviders(ctx context.Context, filter AreaFilter) ([]models.Provider, error)
}

// BranchInput carries a new business branch location.
type BranchInput struct {
	Name      string  `json:"name" validate:"required,min=1,max=100"`
	Latitude  float64 `json:"latitude" validate:"latitude"`
	Longitude float64 `json:"longitude" validate:"longitude"`
	WardID    int64   `json:"ward_id" validate:"required,gt=0"`
	Phone     string  `json:"phone" validate:"required,min=7,max=20"`
	Address   string  `json:"address" validate:"required,min=1,max=255"`
}

// ProviderLocationInput carries a provider's location pin.
type ProviderLocationInput struct {
	Latitude  float64 `json:"latitude" validate:"latitude"`
	Longitude float64 `json:"longitude" validate:"longitude"`
	WardID    int64   `json:"ward_id" validate:"required,gt=0"`
	Phone     string  `json:"phone" validate:"required,min=7,max=20"`
	Address   string  `json:"address" validate:"required,min=1,max=255"`
}

type service struct {
	repo     Repository
	resolver profiles.Resolver
}

// NewService wires locations dependencies.
func NewService(repo Repository, resolver profiles.Resolver) (Service, error) {
	if repo == nil {
		return nil, pkgerrors.New(pkgerrors.CodeDependency, "locations repository required")
	}
	if resolver == nil {
		return nil, pkgerrors.New(pkgerrors.CodeDependency, "profile resolver required")
	}
	return &service{repo: repo, resolver: resolver}, nil
}

func (s *service) Counties(ctx context.Context) ([]models.County, error) {
	counties, err := s.repo.Counties(ctx)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list counties")
	}
	return counties, nil
}

func (s *service) ConstituenciesByCounty(ctx context.Context, countyID int64) ([]models.Constituency, error) {
	if countyID <= 0 {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "county id required")
	}
	constituencies, err := s.repo.ConstituenciesByCounty(ctx, countyID)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list constituencies")
	}
	return constituencies, nil
}

func (s *service) WardsByConstituency(ctx context.Context, constituencyID int64) ([]models.Ward, error) {
	if constituencyID <= 0 {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "constituency id required")
	}
	wards, err := s.repo.WardsByConstituency(ctx, constituencyID)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list wards")
	}
	return wards, nil
}

func (s *service) CreateBranch(ctx context.Context, userID, businessID int64, input BranchInput) (*models.BranchLocation, error) {
	if businessID <= 0 {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "business id required")
	}
	if err := s.resolver.AssertOwnsTarget(ctx, userID, enums.TargetTypeBusiness, businessID); err != nil {
		return nil, err
	}
	if err := s.checkWard(ctx, input.WardID); err != nil {
		return nil, err
	}

	row := &models.BranchLocation{
		BusinessID: businessID,
		Name:       strings.TrimSpace(input.Name),
		Latitude:   input.Latitude,
		Longitude:  input.Longitude,
		WardID:     input.WardID,
		Phone:      strings.TrimSpace(input.Phone),
		Address:    strings.TrimSpace(input.Address),
		CreatedBy:  userID,
	}
	if err := s.repo.CreateBranchLocation(ctx, row); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "create branch location")
	}
	return row, nil
}

func (s *service) BranchesForBusiness(ctx context.Context, businessID int64) ([]BranchRow, error) {
	if businessID <= 0 {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "business id required")
	}
	rows, err := s.repo.BranchesForBusiness(ctx, businessID)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list branch locations")
	}
	return rows, nil
}

func (s *service) CreateProviderLocation(ctx context.Context, userID, providerID int64, input ProviderLocationInput) (*models.ProviderLocation, error) {
	if providerID <= 0 {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "provider id required")
	}
	if err := s.resolver.AssertOwnsTarget(ctx, userID, enums.TargetTypeProvider, providerID); err != nil {
		return nil, err
	}
	if err := s.checkWard(ctx, input.WardID); err != nil {
		return nil, err
	}

	row := &models.ProviderLocation{
		ProviderID: providerID,
		Latitude:   input.Latitude,
		Longitude:  input.Longitude,
		WardID:     input.WardID,
		Phone:      strings.TrimSpace(input.Phone),
		Address:    strings.TrimSpace(input.Address),
		CreatedBy:  userID,
	}
	if err := s.repo.CreateProviderLocation(ctx, row); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "create provider location")
	}
	return row, nil
}

func (s *service) SearchBusinesses(ctx context.Context, filter AreaFilter) ([]models.Business, error) {
	businesses, err := s.repo.SearchBusinesses(ctx, filter)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "search businesses")
	}
	return businesses, nil
}

func (s *service) SearchProviders(ctx context.Context, filter AreaFilter) ([]models.Provider, error) {
	providers, err := s.repo.SearchProviders(ctx, filter)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "search providers")
	}
	return providers, nil
}

func (s *service) checkWard(ctx context.Context, wardID int64) error {
	exists, err := s.repo.WardExists(ctx, wardID)
	if err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "check ward")
	}
	if !exists {
		return pkgerrors.New(pkgerrors.CodeValidation, "ward does not exist")
	}
	return nil
}
