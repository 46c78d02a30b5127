package catalog

import (
	"context"
	"time"

	"github.com/hudumahub/marketplace-backend/pkg/db/models"
	"github.com/hudumahub/marketplace-backend/pkg/enums"
	"gorm.io/gorm"
)

// CategoryRow is a category joined with its parent's name for listings.
type CategoryRow struct {
	ID         int64     `json:"id"`
	Name       string    `json:"name"`
	ParentID   *int64    `json:"parent_id,omitempty"`
	ParentName *string   `json:"parent_name,omitempty"`
	CreatedAt  time.Time `json:"created_at"`
}

// ServiceFilter narrows service listings. Zero values match everything.
type ServiceFilter struct {
	TargetType enums.TargetType
	TargetID   int64
}

// Repository exposes persistence helpers for categories and services.
type Repository interface {
	WithTx(tx *gorm.DB) Repository

	ListCategories(ctx context.Context) ([]CategoryRow, error)
	Subcategories(ctx context.Context, parentID int64) ([]models.Category, error)
	GetCategory(ctx context.Context, id int64) (*models.Category, error)
	GetRootCategoryByName(ctx context.Context, name string) (*models.Category, error)
	CreateCategory(ctx context.Context, category *models.Category) error
	ReRootChildren(ctx context.Context, parentID int64) error
	DeleteCategory(ctx context.Context, id int64) (int64, error)

	DeleteProviderCategories(ctx context.Context, providerID int64) error
	CreateProviderCategories(ctx context.Context, rows []models.ProviderCategory) error
	DeleteBusinessCategories(ctx context.Context, businessID int64) error
	CreateBusinessCategories(ctx context.Context, rows []models.BusinessCategory) error
	ProvidersByCategory(ctx context.Context, category, subcategory string) ([]models.Provider, error)
	BusinessesByCategory(ctx context.Context, category, subcategory string) ([]models.Business, error)

	CreateService(ctx context.Context, service *models.Service) error
	GetService(ctx context.Context, id int64) (*models.Service, error)
	ListServices(ctx context.Context, filter ServiceFilter) ([]models.Service, error)
	UpdateServiceFields(ctx context.Context, id int64, fields map[string]any) (int64, error)
	DeleteService(ctx context.Context, id int64) (int64, error)
}

type repositoryImpl struct {
	db *gorm.DB
}

// NewRepository returns a catalog repository bound to the provided database.
func NewRepository(db *gorm.DB) Repository {
	return &repositoryImpl{db: db}
}

func (r *repositoryImpl) WithTx(tx *gorm.DB) Repository {
	if tx == nil {
		return r
	}
	return &repositoryImpl{db: tx}
}

func (r *repositoryImpl) ListCategories(ctx context.Context) ([]CategoryRow, error) {
	var rows []CategoryRow
	err := r.db.WithContext(ctx).
		Table("categories AS c").
		Select("c.id, c.name, c.parent_id, p.name AS parent_name, c.created_at").
		Joins("LEFT JOIN categories AS p ON p.id = c.parent_id").
		Order("c.id ASC").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	return rows, nil
}

func (r *repositoryImpl) Subcategories(ctx context.Context, parentID int64) ([]models.Category, error) {
	var categories []models.Category
	err := r.db.WithContext(ctx).
		Where("parent_id = ?", parentID).
		Order("id ASC").
		Find(&categories).Error
	if err != nil {
		return nil, err
	}
	return categories, nil
}

func (r *repositoryImpl) GetCategory(ctx context.Context, id int64) (*models.Category, error) {
	var category models.Category
	if err := r.db.WithContext(ctx).First(&category, id).Error; err != nil {
		return nil, err
	}
	return &category, nil
}

func (r *repositoryImpl) GetRootCategoryByName(ctx context.Context, name string) (*models.Category, error) {
	var category models.Category
	err := r.db.WithContext(ctx).
		Where("name = ? AND parent_id IS NULL", name).
		First(&category).Error
	if err != nil {
		return nil, err
	}
	return &category, nil
}

func (r *repositoryImpl) CreateCategory(ctx context.Context, category *models.Category) error {
	return r.db.WithContext(ctx).Create(category).Error
}

func (r *repositoryImpl) ReRootChildren(ctx context.Context, parentID int64) error {
	return r.db.WithContext(ctx).
		Model(&models.Category{}).
		Where("parent_id = ?", parentID).
		Update("parent_id", nil).Error
}

func (r *repositoryImpl) DeleteCategory(ctx context.Context, id int64) (int64, error) {
	result := r.db.WithContext(ctx).Delete(&models.Category{}, id)
	return result.RowsAffected, result.Error
}

func (r *repositoryImpl) DeleteProviderCategories(ctx context.Context, providerID int64) error {
	return r.db.WithContext(ctx).
		Where("provider_id = ?", providerID).
		Delete(&models.ProviderCategory{}).Error
}

func (r *repositoryImpl) CreateProviderCategories(ctx context.Context, rows []models.ProviderCategory) error {
	if len(rows) == 0 {
		return nil
	}
	return r.db.WithContext(ctx).Create(&rows).Error
}

func (r *repositoryImpl) DeleteBusinessCategories(ctx context.Context, businessID int64) error {
	return r.db.WithContext(ctx).
		Where("business_id = ?", businessID).
		Delete(&models.BusinessCategory{}).Error
}

func (r *repositoryImpl) CreateBusinessCategories(ctx context.Context, rows []models.BusinessCategory) error {
	if len(rows) == 0 {
		return nil
	}
	return r.db.WithContext(ctx).Create(&rows).Error
}

func (r *repositoryImpl) ProvidersByCategory(ctx context.Context, category, subcategory string) ([]models.Provider, error) {
	query := r.db.WithContext(ctx).
		Model(&models.Provider{}).
		Distinct("providers.*").
		Joins("JOIN provider_categories pc ON pc.provider_id = providers.id").
		Joins("JOIN categories c ON c.id = pc.category_id").
		Joins("LEFT JOIN categories p ON p.id = c.parent_id")
	if category != "" {
		query = query.Where("c.name = ? OR p.name = ?", category, category)
	}
	if subcategory != "" {
		query = query.Where("c.name = ?", subcategory)
	}

	var providers []models.Provider
	if err := query.Order("providers.id ASC").Find(&providers).Error; err != nil {
		return nil, err
	}
	return providers, nil
}

func (r *repositoryImpl) BusinessesByCategory(ctx context.Context, category, subcategory string) ([]models.Business, error) {
	query := r.db.WithContext(ctx).
		Model(&models.Business{}).
		Distinct("businesses.*").
		Joins("JOIN business_categories bc ON bc.business_id = businesses.id").
		Joins("JOIN categories c ON c.id = bc.category_id").
		Joins("LEFT JOIN categories p ON p.id = c.parent_id")
	if category != "" {
		query = query.Where("c.name = ? OR p.name = ?", category, category)
	}
	if subcategory != "" {
		query = query.Where("c.name = ?", subcategory)
	}

	var businesses []models.Business
	if err := query.Order("businesses.id ASC").Find(&businesses).Error; err != nil {
		return nil, err
	}
	return businesses, nil
}

func (r *repositoryImpl) CreateService(ctx context.Context, service *models.Service) error {
	return r.db.WithContext(ctx).Create(service).Error
}

func (r *repositoryImpl) GetService(ctx context.Context, id int64) (*models.Service, error) {
	var service models.Service
	if err := r.db.WithContext(ctx).First(&service, id).Error; err != nil {
		return nil, err
	}
	return &service, nil
}

func (r *repositoryImpl) ListServices(ctx context.Context, filter ServiceFilter) ([]models.Service, error) {
	query := r.db.WithContext(ctx).Model(&models.Service{})
	if filter.TargetType != "" {
		query = query.Where("target_type = ?", filter.TargetType)
	}
	if filter.TargetID > 0 {
		query = query.Where("target_id = ?", filter.TargetID)
	}

	var services []models.Service
	if err := query.Order("id ASC").Find(&services).Error; err != nil {
		return nil, err
	}
	return services, nil
}

func (r *repositoryImpl) UpdateServiceFields(ctx context.Context, id int64, fields map[string]any) (int64, error) {
	result := r.db.WithContext(ctx).
		Model(&models.Service{}).
		Where("id = ?", id).
		Updates(fields)
	return result.RowsAffected, result.Error
}

func (r *repositoryImpl) DeleteService(ctx context.Context, id int64) (int64, error) {
	result := r.db.WithContext(ctx).Delete(&models.Service{}, id)
	return result.RowsAffected, result.Error
}
