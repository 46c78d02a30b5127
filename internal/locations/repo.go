package locations

import (
	"context"

	"github.com/hudumahub/marketplace-backend/pkg/db/models"
	"gorm.io/gorm"
)

// BranchRow is a branch location joined with its ward, constituency and
// county names for display.
type BranchRow struct {
	models.BranchLocation
	WardName         string `json:"ward_name"`
	ConstituencyName string `json:"constituency_name"`
	CountyName       string `json:"county_name"`
}

// AreaFilter narrows a location search. Zero values match everything.
type AreaFilter struct {
	CountyID       int64
	ConstituencyID int64
	WardID         int64
}

// Repository exposes persistence helpers for the location reference data
// and branch locations.
type Repository interface {
	Counties(ctx context.Context) ([]models.County, error)
	ConstituenciesByCounty(ctx context.Context, countyID int64) ([]models.Constituency, error)
	WardsByConstituency(ctx context.Context, constituencyID int64) ([]models.Ward, error)

	WardExists(ctx context.Context, wardID int64) (bool, error)
	CreateBranchLocation(ctx context.Context, row *models.BranchLocation) error
	BranchesForBusiness(ctx context.Context, businessID int64) ([]BranchRow, error)
	CreateProviderLocation(ctx context.Context, row *models.ProviderLocation) error
	SearchBusinesses(ctx context.Context, filter AreaFilter) ([]models.Business, error)
	SearchProviders(ctx context.Context, filter AreaFilter) ([]models.Provider, error)
}

type repositoryImpl struct {
	db *gorm.DB
}

// NewRepository returns a locations repository bound to the provided database.
func NewRepository(db *gorm.DB) Repository {
	return &repositoryImpl{db: db}
}

func (r *repositoryImpl) Counties(ctx context.Context) ([]models.County, error) {
	var counties []models.County
	if err := r.db.WithContext(ctx).Order("name ASC").Find(&counties).Error; err != nil {
		return nil, err
	}
	return counties, nil
}

func (r *repositoryImpl) ConstituenciesByCounty(ctx context.Context, countyID int64) ([]models.Constituency, error) {
	var constituencies []models.Constituency
	err := r.db.WithContext(ctx).
		Where("county_id = ?", countyID).
		Order("name ASC").
		Find(&constituencies).Error
	if err != nil {
		return nil, err
	}
	return constituencies, nil
}

func (r *repositoryImpl) WardsByConstituency(ctx context.Context, constituencyID int64) ([]models.Ward, error) {
	var wards []models.Ward
	err := r.db.WithContext(ctx).
		Where("constituency_id = ?", constituencyID).
		Order("name ASC").
		Find(&wards).Error
	if err != nil {
		return nil, err
	}
	return wards, nil
}

func (r *repositoryImpl) WardExists(ctx context.Context, wardID int64) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&models.Ward{}).
		Where("id = ?", wardID).
		Count(&count).Error
	return count > 0, err
}

func (r *repositoryImpl) CreateBranchLocation(ctx context.Context, row *models.BranchLocation) error {
	return r.db.WithContext(ctx).Create(row).Error
}

func (r *repositoryImpl) BranchesForBusiness(ctx context.Context, businessID int64) ([]BranchRow, error) {
	var rows []BranchRow
	err := r.db.WithContext(ctx).
		Table("business_branch_locations AS bl").
		Select("bl.*, w.name AS ward_name, c.name AS constituency_name, co.name AS county_name").
		Joins("JOIN wards AS w ON w.id = bl.ward_id").
		Joins("JOIN constituencies AS c ON c.id = w.constituency_id").
		Joins("JOIN counties AS co ON co.id = c.county_id").
		Where("bl.business_id = ?", businessID).
		Order("bl.id ASC").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	return rows, nil
}

func (r *repositoryImpl) CreateProviderLocation(ctx context.Context, row *models.ProviderLocation) error {
	return r.db.WithContext(ctx).Create(row).Error
}

func (r *repositoryImpl) SearchBusinesses(ctx context.Context, filter AreaFilter) ([]models.Business, error) {
	var businesses []models.Business
	err := r.areaScope(ctx, "business_branch_locations", "business_id", filter).
		Table("businesses").
		Select("DISTINCT businesses.*").
		Order("businesses.id ASC").
		Scan(&businesses).Error
	if err != nil {
		return nil, err
	}
	return businesses, nil
}

func (r *repositoryImpl) SearchProviders(ctx context.Context, filter AreaFilter) ([]models.Provider, error) {
	var providers []models.Provider
	err := r.areaScope(ctx, "provider_locations", "provider_id", filter).
		Table("providers").
		Select("DISTINCT providers.*").
		Order("providers.id ASC").
		Scan(&providers).Error
	if err != nil {
		return nil, err
	}
	return providers, nil
}

// areaScope joins the owner table through its location rows up the ward
// hierarchy, applying whichever area filters are set.
func (r *repositoryImpl) areaScope(ctx context.Context, locTable, ownerColumn string, filter AreaFilter) *gorm.DB {
	q := r.db.WithContext(ctx).
		Joins("JOIN "+locTable+" AS loc ON loc."+ownerColumn+" = "+ownerTable(locTable)+".id").
		Joins("JOIN wards AS w ON w.id = loc.ward_id").
		Joins("JOIN constituencies AS c ON c.id = w.constituency_id")
	if filter.WardID > 0 {
		q = q.Where("loc.ward_id = ?", filter.WardID)
	}
	if filter.ConstituencyID > 0 {
		q = q.Where("w.constituency_id = ?", filter.ConstituencyID)
	}
	if filter.CountyID > 0 {
		q = q.Where("c.county_id = ?", filter.CountyID)
	}
	return q
}

func ownerTable(locTable string) string {
	if locTable == "provider_locations" {
		return "providers"
	}
	return "businesses"
}
