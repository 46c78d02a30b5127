package profiles

import (
	"context"
	"errors"
	"strings"

	"github.com/hudumahub/marketplace-backend/pkg/db/models"
	"github.com/hudumahub/marketplace-backend/pkg/enums"
	pkgerrors "github.com/hudumahub/marketplace-backend/pkg/errors"
	"gorm.io/gorm"
)

// Resolver exposes the target ownership checks other services depend on.
type Resolver interface {
	GetTargetID(ctx context.Context, userID int64, target enums.TargetType) (int64, error)
	AssertOwnsTarget(ctx context.Context, userID int64, target enums.TargetType, targetID int64) error
	TargetExists(ctx context.Context, target enums.TargetType, targetID int64) (bool, error)
	GetClientID(ctx context.Context, userID int64) (int64, error)
}

// Service defines onboarding, profile and listing operations.
type Service interface {
	Resolver

	OnboardClient(ctx context.Context, userID int64, input ClientInput) (*models.Client, bool, error)
	OnboardProvider(ctx context.Context, userID int64, input ProviderInput) (*models.Provider, bool, error)
	OnboardBusiness(ctx context.Context, userID int64, input BusinessInput) (*models.Business, bool, error)

	UpdateClientProfile(ctx context.Context, userID int64, patch ClientPatch) error
	UpdateProviderProfile(ctx context.Context, userID int64, patch ProviderPatch) error
	UpdateBusinessProfile(ctx context.Context, userID int64, patch BusinessPatch) error

	SetProfilePicture(ctx context.Context, userID int64, filePath string) error

	ListProviders(ctx context.Context, filter ProviderFilter) ([]models.Provider, error)
	ListBusinesses(ctx context.Context, filter BusinessFilter) ([]models.Business, error)
}

type txRunner interface {
	WithTx(ctx context.Context, fn func(tx *gorm.DB) error) error
}

type service struct {
	repo Repository
	tx   txRunner
}

// ClientInput carries client onboarding fields.
type ClientInput struct {
	FullName    string `json:"full_name" validate:"required,min=2"`
	PhoneNumber string `json:"phone_number" validate:"required,min=10"`
	Location    string `json:"location" validate:"required"`
}

// ProviderInput carries provider onboarding fields.
type ProviderInput struct {
	ServiceName        string  `json:"service_name" validate:"required,min=2"`
	ServiceDescription string  `json:"service_description" validate:"required,min=10"`
	Category           *string `json:"category,omitempty"`
	Location           *string `json:"location,omitempty"`
	PhoneNumber        *string `json:"phone_number,omitempty" validate:"omitempty,min=10"`
	Email              string  `json:"email" validate:"required,email"`
	Website            *string `json:"website,omitempty"`
	Whatsapp           *string `json:"whatsapp,omitempty"`
}

// BusinessInput carries business onboarding fields.
type BusinessInput struct {
	BusinessName  string  `json:"business_name" validate:"required,min=2"`
	Description   string  `json:"description" validate:"required,min=10"`
	Category      string  `json:"category" validate:"required"`
	Location      string  `json:"location" validate:"required"`
	LicenseNumber string  `json:"license_number" validate:"required"`
	KRAPin        string  `json:"kra_pin" validate:"required,min=11"`
	PhoneNumber   string  `json:"phone_number" validate:"required,min=10"`
	Email         string  `json:"email" validate:"required,email"`
	Website       *string `json:"website,omitempty"`
	Whatsapp      *string `json:"whatsapp,omitempty"`
}

// ClientPatch is a sparse client profile update.
type ClientPatch struct {
	FullName    *string `json:"full_name,omitempty" validate:"omitempty,min=2"`
	PhoneNumber *string `json:"phone_number,omitempty" validate:"omitempty,min=10"`
	Location    *string `json:"location,omitempty"`
}

// ProviderPatch is a sparse provider profile update.
type ProviderPatch struct {
	ServiceName        *string `json:"service_name,omitempty" validate:"omitempty,min=2"`
	ServiceDescription *string `json:"service_description,omitempty" validate:"omitempty,min=10"`
	Category           *string `json:"category,omitempty"`
	Location           *string `json:"location,omitempty"`
	PhoneNumber        *string `json:"phone_number,omitempty" validate:"omitempty,min=10"`
	Email              *string `json:"email,omitempty" validate:"omitempty,email"`
	Website            *string `json:"website,omitempty"`
	Whatsapp           *string `json:"whatsapp,omitempty"`
}

// BusinessPatch is a sparse business profile update.
type BusinessPatch struct {
	BusinessName  *string `json:"business_name,omitempty" validate:"omitempty,min=2"`
	Description   *string `json:"description,omitempty" validate:"omitempty,min=10"`
	Category      *string `json:"category,omitempty"`
	Location      *string `json:"location,omitempty"`
	LicenseNumber *string `json:"license_number,omitempty"`
	KRAPin        *string `json:"kra_pin,omitempty" validate:"omitempty,min=11"`
	PhoneNumber   *string `json:"phone_number,omitempty" validate:"omitempty,min=10"`
	Email         *string `json:"email,omitempty" validate:"omitempty,email"`
	Website       *string `json:"website,omitempty"`
	Whatsapp      *string `json:"whatsapp,omitempty"`
}

// NewService wires profile dependencies.
func NewService(repo Repository, tx txRunner) (Service, error) {
	if repo == nil {
		return nil, pkgerrors.New(pkgerrors.CodeDependency, "profiles repository required")
	}
	if tx == nil {
		return nil, pkgerrors.New(pkgerrors.CodeDependency, "transaction runner required")
	}
	return &service{repo: repo, tx: tx}, nil
}

func (s *service) OnboardClient(ctx context.Context, userID int64, input ClientInput) (*models.Client, bool, error) {
	if userID <= 0 {
		return nil, false, pkgerrors.New(pkgerrors.CodeValidation, "user id required")
	}

	var row *models.Client
	var created bool
	err := s.tx.WithTx(ctx, func(tx *gorm.DB) error {
		repo := s.repo.WithTx(tx)
		existing, err := repo.GetClientByUserID(ctx, userID)
		switch {
		case errors.Is(err, gorm.ErrRecordNotFound):
			row = &models.Client{
				UserID:      userID,
				FullName:    input.FullName,
				PhoneNumber: input.PhoneNumber,
				Location:    input.Location,
			}
			created = true
			return repo.CreateClient(ctx, row)
		case err != nil:
			return err
		}

		fields := map[string]any{
			"full_name":    input.FullName,
			"phone_number": input.PhoneNumber,
			"location":     input.Location,
		}
		if _, err := repo.UpdateClientFields(ctx, userID, fields); err != nil {
			return err
		}
		existing.FullName = input.FullName
		existing.PhoneNumber = input.PhoneNumber
		existing.Location = input.Location
		row = existing
		return nil
	})
	if err != nil {
		return nil, false, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "onboard client")
	}
	return row, created, nil
}

func (s *service) OnboardProvider(ctx context.Context, userID int64, input ProviderInput) (*models.Provider, bool, error) {
	if userID <= 0 {
		return nil, false, pkgerrors.New(pkgerrors.CodeValidation, "user id required")
	}

	var row *models.Provider
	var created bool
	err := s.tx.WithTx(ctx, func(tx *gorm.DB) error {
		repo := s.repo.WithTx(tx)
		_, err := repo.GetProviderByUserID(ctx, userID)
		switch {
		case errors.Is(err, gorm.ErrRecordNotFound):
			row = &models.Provider{
				UserID:             userID,
				ServiceName:        input.ServiceName,
				ServiceDescription: input.ServiceDescription,
				Category:           input.Category,
				Location:           input.Location,
				PhoneNumber:        input.PhoneNumber,
				Email:              input.Email,
				Website:            input.Website,
				Whatsapp:           input.Whatsapp,
			}
			created = true
			return repo.CreateProvider(ctx, row)
		case err != nil:
			return err
		}

		fields := map[string]any{
			"service_name":        input.ServiceName,
			"service_description": input.ServiceDescription,
			"email":               input.Email,
		}
		addOptional(fields, "category", input.Category)
		addOptional(fields, "location", input.Location)
		addOptional(fields, "phone_number", input.PhoneNumber)
		addOptional(fields, "website", input.Website)
		addOptional(fields, "whatsapp", input.Whatsapp)
		if _, err := repo.UpdateProviderFields(ctx, userID, fields); err != nil {
			return err
		}
		refreshed, err := repo.GetProviderByUserID(ctx, userID)
		if err != nil {
			return err
		}
		row = refreshed
		return nil
	})
	if err != nil {
		return nil, false, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "onboard provider")
	}
	return row, created, nil
}

func (s *service) OnboardBusiness(ctx context.Context, userID int64, input BusinessInput) (*models.Business, bool, error) {
	if userID <= 0 {
		return nil, false, pkgerrors.New(pkgerrors.CodeValidation, "user id required")
	}

	var row *models.Business
	var created bool
	err := s.tx.WithTx(ctx, func(tx *gorm.DB) error {
		repo := s.repo.WithTx(tx)
		if _, err := repo.GetBusinessByUserID(ctx, userID); err != nil {
			if !errors.Is(err, gorm.ErrRecordNotFound) {
				return err
			}
			row = &models.Business{
				UserID:        userID,
				BusinessName:  input.BusinessName,
				Description:   input.Description,
				Category:      input.Category,
				Location:      input.Location,
				LicenseNumber: input.LicenseNumber,
				KRAPin:        input.KRAPin,
				PhoneNumber:   input.PhoneNumber,
				Email:         input.Email,
				Website:       input.Website,
				Whatsapp:      input.Whatsapp,
			}
			created = true
			return repo.CreateBusiness(ctx, row)
		}

		fields := map[string]any{
			"business_name":  input.BusinessName,
			"description":    input.Description,
			"category":       input.Category,
			"location":       input.Location,
			"license_number": input.LicenseNumber,
			"kra_pin":        input.KRAPin,
			"phone_number":   input.PhoneNumber,
			"email":          input.Email,
		}
		addOptional(fields, "website", input.Website)
		addOptional(fields, "whatsapp", input.Whatsapp)
		if _, err := repo.UpdateBusinessFields(ctx, userID, fields); err != nil {
			return err
		}
		refreshed, err := repo.GetBusinessByUserID(ctx, userID)
		if err != nil {
			return err
		}
		row = refreshed
		return nil
	})
	if err != nil {
		return nil, false, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "onboard business")
	}
	return row, created, nil
}

func (s *service) UpdateClientProfile(ctx context.Context, userID int64, patch ClientPatch) error {
	fields := map[string]any{}
	addOptional(fields, "full_name", patch.FullName)
	addOptional(fields, "phone_number", patch.PhoneNumber)
	addOptional(fields, "location", patch.Location)
	return s.applyPatch(ctx, userID, fields, s.repo.UpdateClientFields)
}

func (s *service) UpdateProviderProfile(ctx context.Context, userID int64, patch ProviderPatch) error {
	fields := map[string]any{}
	addOptional(fields, "service_name", patch.ServiceName)
	addOptional(fields, "service_description", patch.ServiceDescription)
	addOptional(fields, "category", patch.Category)
	addOptional(fields, "location", patch.Location)
	addOptional(fields, "phone_number", patch.PhoneNumber)
	addOptional(fields, "email", patch.Email)
	addOptional(fields, "website", patch.Website)
	addOptional(fields, "whatsapp", patch.Whatsapp)
	return s.applyPatch(ctx, userID, fields, s.repo.UpdateProviderFields)
}

func (s *service) UpdateBusinessProfile(ctx context.Context, userID int64, patch BusinessPatch) error {
	fields := map[string]any{}
	addOptional(fields, "business_name", patch.BusinessName)
	addOptional(fields, "description", patch.Description)
	addOptional(fields, "category", patch.Category)
	addOptional(fields, "location", patch.Location)
	addOptional(fields, "license_number", patch.LicenseNumber)
	addOptional(fields, "kra_pin", patch.KRAPin)
	addOptional(fields, "phone_number", patch.PhoneNumber)
	addOptional(fields, "email", patch.Email)
	addOptional(fields, "website", patch.Website)
	addOptional(fields, "whatsapp", patch.Whatsapp)
	return s.applyPatch(ctx, userID, fields, s.repo.UpdateBusinessFields)
}

func (s *service) applyPatch(ctx context.Context, userID int64, fields map[string]any, update func(context.Context, int64, map[string]any) (int64, error)) error {
	if userID <= 0 {
		return pkgerrors.New(pkgerrors.CodeValidation, "user id required")
	}
	if len(fields) == 0 {
		return pkgerrors.New(pkgerrors.CodeValidation, "no fields to update")
	}

	affected, err := update(ctx, userID, fields)
	if err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "update profile")
	}
	if affected == 0 {
		return pkgerrors.New(pkgerrors.CodeNotFound, "profile not found")
	}
	return nil
}

func (s *service) SetProfilePicture(ctx context.Context, userID int64, filePath string) error {
	if strings.TrimSpace(filePath) == "" {
		return pkgerrors.New(pkgerrors.CodeValidation, "file path required")
	}
	return s.applyPatch(ctx, userID, map[string]any{"profile_picture": filePath}, s.repo.UpdateClientFields)
}

func (s *service) ListProviders(ctx context.Context, filter ProviderFilter) ([]models.Provider, error) {
	providers, err := s.repo.ListProviders(ctx, filter)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list providers")
	}
	return providers, nil
}

func (s *service) ListBusinesses(ctx context.Context, filter BusinessFilter) ([]models.Business, error) {
	businesses, err := s.repo.ListBusinesses(ctx, filter)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list businesses")
	}
	return businesses, nil
}

func (s *service) GetTargetID(ctx context.Context, userID int64, target enums.TargetType) (int64, error) {
	if userID <= 0 {
		return 0, pkgerrors.New(pkgerrors.CodeValidation, "user id required")
	}
	if !target.IsValid() {
		return 0, pkgerrors.New(pkgerrors.CodeValidation, "invalid target type")
	}

	id, err := s.repo.GetTargetIDByUser(ctx, target, userID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return 0, pkgerrors.New(pkgerrors.CodeForbidden, "no profile for target type")
	}
	if err != nil {
		return 0, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "resolve target id")
	}
	return id, nil
}

func (s *service) GetClientID(ctx context.Context, userID int64) (int64, error) {
	if userID <= 0 {
		return 0, pkgerrors.New(pkgerrors.CodeValidation, "user id required")
	}
	client, err := s.repo.GetClientByUserID(ctx, userID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return 0, pkgerrors.New(pkgerrors.CodeForbidden, "no client profile")
	}
	if err != nil {
		return 0, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "resolve client id")
	}
	return client.ID, nil
}

func (s *service) AssertOwnsTarget(ctx context.Context, userID int64, target enums.TargetType, targetID int64) error {
	id, err := s.GetTargetID(ctx, userID, target)
	if err != nil {
		return err
	}
	if id != targetID {
		return pkgerrors.New(pkgerrors.CodeForbidden, "target not owned by caller")
	}
	return nil
}

func (s *service) TargetExists(ctx context.Context, target enums.TargetType, targetID int64) (bool, error) {
	if !target.IsValid() {
		return false, pkgerrors.New(pkgerrors.CodeValidation, "invalid target type")
	}
	if targetID <= 0 {
		return false, pkgerrors.New(pkgerrors.CodeValidation, "target id must be positive")
	}
	exists, err := s.repo.TargetExists(ctx, target, targetID)
	if err != nil {
		return false, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "check target")
	}
	return exists, nil
}

func addOptional(fields map[string]any, column string, value *string) {
	if value != nil {
		fields[column] = *value
	}
}
