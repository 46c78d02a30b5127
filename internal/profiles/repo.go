package profiles

import (
	"context"

	"github.com/hudumahub/marketplace-backend/pkg/db/models"
	"github.com/hudumahub/marketplace-backend/pkg/enums"
	"gorm.io/gorm"
)

// Repository exposes persistence helpers for profile rows.
type Repository interface {
	WithTx(tx *gorm.DB) Repository

	GetClientByUserID(ctx context.Context, userID int64) (*models.Client, error)
	CreateClient(ctx context.Context, client *models.Client) error
	UpdateClientFields(ctx context.Context, userID int64, fields map[string]any) (int64, error)

	GetProviderByUserID(ctx context.Context, userID int64) (*models.Provider, error)
	CreateProvider(ctx context.Context, provider *models.Provider) error
	UpdateProviderFields(ctx context.Context, userID int64, fields map[string]any) (int64, error)
	ListProviders(ctx context.Context, filter ProviderFilter) ([]models.Provider, error)

	GetBusinessByUserID(ctx context.Context, userID int64) (*models.Business, error)
	CreateBusiness(ctx context.Context, business *models.Business) error
	UpdateBusinessFields(ctx context.Context, userID int64, fields map[string]any) (int64, error)
	ListBusinesses(ctx context.Context, filter BusinessFilter) ([]models.Business, error)

	GetTargetIDByUser(ctx context.Context, target enums.TargetType, userID int64) (int64, error)
	TargetExists(ctx context.Context, target enums.TargetType, targetID int64) (bool, error)
}

// ProviderFilter narrows public provider listings. All matches are
// parameter bound.
type ProviderFilter struct {
	Category string
	Location string
}

// BusinessFilter narrows public business listings.
type BusinessFilter struct {
	Category string
	Name     string
	Location string
}

type repositoryImpl struct {
	db *gorm.DB
}

// NewRepository returns a profiles repository bound to the provided database.
func NewRepository(db *gorm.DB) Repository {
	return &repositoryImpl{db: db}
}

func (r *repositoryImpl) WithTx(tx *gorm.DB) Repository {
	if tx == nil {
		return r
	}
	return &repositoryImpl{db: tx}
}

func (r *repositoryImpl) GetClientByUserID(ctx context.Context, userID int64) (*models.Client, error) {
	var client models.Client
	if err := r.db.WithContext(ctx).Where("user_id = ?", userID).First(&client).Error; err != nil {
		return nil, err
	}
	return &client, nil
}

func (r *repositoryImpl) CreateClient(ctx context.Context, client *models.Client) error {
	return r.db.WithContext(ctx).Create(client).Error
}

func (r *repositoryImpl) UpdateClientFields(ctx context.Context, userID int64, fields map[string]any) (int64, error) {
	result := r.db.WithContext(ctx).
		Model(&models.Client{}).
		Where("user_id = ?", userID).
		Updates(fields)
	return result.RowsAffected, result.Error
}

func (r *repositoryImpl) GetProviderByUserID(ctx context.Context, userID int64) (*models.Provider, error) {
	var provider models.Provider
	if err := r.db.WithContext(ctx).Where("user_id = ?", userID).First(&provider).Error; err != nil {
		return nil, err
	}
	return &provider, nil
}

func (r *repositoryImpl) CreateProvider(ctx context.Context, provider *models.Provider) error {
	return r.db.WithContext(ctx).Create(provider).Error
}

func (r *repositoryImpl) UpdateProviderFields(ctx context.Context, userID int64, fields map[string]any) (int64, error) {
	result := r.db.WithContext(ctx).
		Model(&models.Provider{}).
		Where("user_id = ?", userID).
		Updates(fields)
	return result.RowsAffected, result.Error
}

func (r *repositoryImpl) ListProviders(ctx context.Context, filter ProviderFilter) ([]models.Provider, error) {
	query := r.db.WithContext(ctx).Model(&models.Provider{})
	if filter.Category != "" {
		query = query.Where("category = ?", filter.Category)
	}
	if filter.Location != "" {
		query = query.Where("location LIKE ?", "%"+filter.Location+"%")
	}

	var providers []models.Provider
	if err := query.Order("id ASC").Find(&providers).Error; err != nil {
		return nil, err
	}
	return providers, nil
}

func (r *repositoryImpl) GetBusinessByUserID(ctx context.Context, userID int64) (*models.Business, error) {
	var business models.Business
	if err := r.db.WithContext(ctx).Where("user_id = ?", userID).First(&business).Error; err != nil {
		return nil, err
	}
	return &business, nil
}

func (r *repositoryImpl) CreateBusiness(ctx context.Context, business *models.Business) error {
	return r.db.WithContext(ctx).Create(business).Error
}

func (r *repositoryImpl) UpdateBusinessFields(ctx context.Context, userID int64, fields map[string]any) (int64, error) {
	result := r.db.WithContext(ctx).
		Model(&models.Business{}).
		Where("user_id = ?", userID).
		Updates(fields)
	return result.RowsAffected, result.Error
}

func (r *repositoryImpl) ListBusinesses(ctx context.Context, filter BusinessFilter) ([]models.Business, error) {
	query := r.db.WithContext(ctx).Model(&models.Business{})
	if filter.Category != "" {
		query = query.Where("category = ?", filter.Category)
	}
	if filter.Name != "" {
		query = query.Where("business_name LIKE ?", "%"+filter.Name+"%")
	}
	if filter.Location != "" {
		query = query.Where("location LIKE ?", "%"+filter.Location+"%")
	}

	var businesses []models.Business
	if err := query.Order("id ASC").Find(&businesses).Error; err != nil {
		return nil, err
	}
	return businesses, nil
}

func (r *repositoryImpl) GetTargetIDByUser(ctx context.Context, target enums.TargetType, userID int64) (int64, error) {
	var id int64
	var err error
	switch target {
	case enums.TargetTypeBusiness:
		err = r.db.WithContext(ctx).
			Model(&models.Business{}).
			Where("user_id = ?", userID).
			Pluck("id", &id).Error
	default:
		err = r.db.WithContext(ctx).
			Model(&models.Provider{}).
			Where("user_id = ?", userID).
			Pluck("id", &id).Error
	}
	if err != nil {
		return 0, err
	}
	if id == 0 {
		return 0, gorm.ErrRecordNotFound
	}
	return id, nil
}

func (r *repositoryImpl) TargetExists(ctx context.Context, target enums.TargetType, targetID int64) (bool, error) {
	var count int64
	var err error
	switch target {
	case enums.TargetTypeBusiness:
		err = r.db.WithContext(ctx).Model(&models.Business{}).Where("id = ?", targetID).Count(&count).Error
	default:
		err = r.db.WithContext(ctx).Model(&models.Provider{}).Where("id = ?", targetID).Count(&count).Error
	}
	if err != nil {
		return false, err
	}
	return count > 0, nil
}
