package profiles

import (
	"context"
	"errors"
	"testing"

	"github.com/hudumahub/marketplace-backend/pkg/db/models"
	"github.com/hudumahub/marketplace-backend/pkg/enums"
	pkgerrors "github.com/hudumahub/marketplace-backend/pkg/errors"
	"gorm.io/gorm"
)

type fakeRepository struct {
	getClientFn      func(ctx context.Context, userID int64) (*models.Client, error)
	createClientFn   func(ctx context.Context, client *models.Client) error
	updateClientFn   func(ctx context.Context, userID int64, fields map[string]any) (int64, error)
	getProviderFn    func(ctx context.Context, userID int64) (*models.Provider, error)
	createProviderFn func(ctx context.Context, provider *models.Provider) error
	updateProviderFn func(ctx context.Context, userID int64, fields map[string]any) (int64, error)
	listProvidersFn  func(ctx context.Context, filter ProviderFilter) ([]models.Provider, error)
	getBusinessFn    func(ctx context.Context, userID int64) (*models.Business, error)
	updateBusinessFn func(ctx context.Context, userID int64, fields map[string]any) (int64, error)
	getTargetIDFn    func(ctx context.Context, target enums.TargetType, userID int64) (int64, error)
	targetExistsFn   func(ctx context.Context, target enums.TargetType, targetID int64) (bool, error)
}

func (f *fakeRepository) WithTx(tx *gorm.DB) Repository { return f }

func (f *fakeRepository) GetClientByUserID(ctx context.Context, userID int64) (*models.Client, error) {
	if f.getClientFn != nil {
		return f.getClientFn(ctx, userID)
	}
	return nil, gorm.ErrRecordNotFound
}

func (f *fakeRepository) CreateClient(ctx context.Context, client *models.Client) error {
	if f.createClientFn != nil {
		return f.createClientFn(ctx, client)
	}
	return nil
}

func (f *fakeRepository) UpdateClientFields(ctx context.Context, userID int64, fields map[string]any) (int64, error) {
	if f.updateClientFn != nil {
		return f.updateClientFn(ctx, userID, fields)
	}
	return 1, nil
}

func (f *fakeRepository) GetProviderByUserID(ctx context.Context, userID int64) (*models.Provider, error) {
	if f.getProviderFn != nil {
		return f.getProviderFn(ctx, userID)
	}
	return nil, gorm.ErrRecordNotFound
}

func (f *fakeRepository) CreateProvider(ctx context.Context, provider *models.Provider) error {
	if f.createProviderFn != nil {
		return f.createProviderFn(ctx, provider)
	}
	return nil
}

func (f *fakeRepository) UpdateProviderFields(ctx context.Context, userID int64, fields map[string]any) (int64, error) {
	if f.updateProviderFn != nil {
		return f.updateProviderFn(ctx, userID, fields)
	}
	return 1, nil
}

func (f *fakeRepository) ListProviders(ctx context.Context, filter ProviderFilter) ([]models.Provider, error) {
	if f.listProvidersFn != nil {
		return f.listProvidersFn(ctx, filter)
	}
	return nil, nil
}

func (f *fakeRepository) GetBusinessByUserID(ctx context.Context, userID int64) (*models.Business, error) {
	if f.getBusinessFn != nil {
		return f.getBusinessFn(ctx, userID)
	}
	return nil, gorm.ErrRecordNotFound
}

func (f *fakeRepository) CreateBusiness(ctx context.Context, business *models.Business) error {
	return nil
}

func (f *fakeRepository) UpdateBusinessFields(ctx context.Context, userID int64, fields map[string]any) (int64, error) {
	if f.updateBusinessFn != nil {
		return f.updateBusinessFn(ctx, userID, fields)
	}
	return 1, nil
}

func (f *fakeRepository) ListBusinesses(ctx context.Context, filter BusinessFilter) ([]models.Business, error) {
	return nil, nil
}

func (f *fakeRepository) GetTargetIDByUser(ctx context.Context, target enums.TargetType, userID int64) (int64, error) {
	if f.getTargetIDFn != nil {
		return f.getTargetIDFn(ctx, target, userID)
	}
	return 0, gorm.ErrRecordNotFound
}

func (f *fakeRepository) TargetExists(ctx context.Context, target enums.TargetType, targetID int64) (bool, error) {
	if f.targetExistsFn != nil {
		return f.targetExistsFn(ctx, target, targetID)
	}
	return false, nil
}

type fakeTxRunner struct{}

func (fakeTxRunner) WithTx(ctx context.Context, fn func(tx *gorm.DB) error) error {
	return fn(nil)
}

func newServiceWithRepo(t *testing.T, repo Repository) Service {
	t.Helper()
	svc, err := NewService(repo, fakeTxRunner{})
	if err != nil {
		t.Fatalf("unexpected service error: %v", err)
	}
	return svc
}

func TestOnboardClientCreatesWhenMissing(t *testing.T) {
	var created *models.Client
	repo := &fakeRepository{
		createClientFn: func(ctx context.Context, client *models.Client) error {
			created = client
			return nil
		},
	}

	svc := newServiceWithRepo(t, repo)
	row, wasCreated, err := svc.OnboardClient(context.Background(), 1, ClientInput{
		FullName:    "Jane Wanjiku",
		PhoneNumber: "0712345678",
		Location:    "Nairobi",
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !wasCreated {
		t.Fatal("expected create path")
	}
	if created == nil || created.UserID != 1 {
		t.Fatalf("unexpected created row %+v", created)
	}
	if row.FullName != "Jane Wanjiku" {
		t.Fatalf("unexpected row %+v", row)
	}
}

func TestOnboardClientUpdatesWhenPresent(t *testing.T) {
	var gotFields map[string]any
	repo := &fakeRepository{
		getClientFn: func(ctx context.Context, userID int64) (*models.Client, error) {
			return &models.Client{ID: 9, UserID: userID, FullName: "Old"}, nil
		},
		updateClientFn: func(ctx context.Context, userID int64, fields map[string]any) (int64, error) {
			gotFields = fields
			return 1, nil
		},
	}

	svc := newServiceWithRepo(t, repo)
	_, wasCreated, err := svc.OnboardClient(context.Background(), 1, ClientInput{
		FullName:    "New Name",
		PhoneNumber: "0712345678",
		Location:    "Mombasa",
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if wasCreated {
		t.Fatal("expected update path")
	}
	if gotFields["full_name"] != "New Name" {
		t.Fatalf("unexpected fields %v", gotFields)
	}
}

func TestOnboardBusinessUpdatesWhenPresent(t *testing.T) {
	var gotFields map[string]any
	repo := &fakeRepository{
		getBusinessFn: func(ctx context.Context, userID int64) (*models.Business, error) {
			return &models.Business{ID: 8, UserID: userID, BusinessName: "Old Traders"}, nil
		},
		updateBusinessFn: func(ctx context.Context, userID int64, fields map[string]any) (int64, error) {
			gotFields = fields
			return 1, nil
		},
	}

	svc := newServiceWithRepo(t, repo)
	row, wasCreated, err := svc.OnboardBusiness(context.Background(), 1, BusinessInput{
		BusinessName:  "New Traders",
		Description:   "General supplies and hardware",
		Category:      "retail",
		Location:      "Nakuru",
		LicenseNumber: "LIC-2291",
		KRAPin:        "A0012345678",
		PhoneNumber:   "0712345678",
		Email:         "info@newtraders.co.ke",
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if wasCreated {
		t.Fatal("expected update path")
	}
	if gotFields["business_name"] != "New Traders" {
		t.Fatalf("unexpected fields %v", gotFields)
	}
	if row == nil || row.ID != 8 {
		t.Fatalf("unexpected row %+v", row)
	}
}

func TestUpdateClientProfileRequiresFields(t *testing.T) {
	svc := newServiceWithRepo(t, &fakeRepository{})

	err := svc.UpdateClientProfile(context.Background(), 1, ClientPatch{})
	if err == nil {
		t.Fatal("expected error for empty patch")
	}
	typed := pkgerrors.As(err)
	if typed.Code() != pkgerrors.CodeValidation {
		t.Fatalf("expected validation error, got %s", typed.Code())
	}
	if typed.Message() != "no fields to update" {
		t.Fatalf("unexpected message %q", typed.Message())
	}
}

func TestUpdateClientProfileNotFound(t *testing.T) {
	repo := &fakeRepository{
		updateClientFn: func(ctx context.Context, userID int64, fields map[string]any) (int64, error) {
			return 0, nil
		},
	}
	svc := newServiceWithRepo(t, repo)

	name := "Someone"
	err := svc.UpdateClientProfile(context.Background(), 1, ClientPatch{FullName: &name})
	if pkgerrors.As(err).Code() != pkgerrors.CodeNotFound {
		t.Fatalf("expected not found, got %v", err)
	}
}

func TestGetTargetIDForbiddenWhenMissing(t *testing.T) {
	svc := newServiceWithRepo(t, &fakeRepository{})

	_, err := svc.GetTargetID(context.Background(), 7, enums.TargetTypeProvider)
	if pkgerrors.As(err).Code() != pkgerrors.CodeForbidden {
		t.Fatalf("expected forbidden, got %v", err)
	}
}

func TestAssertOwnsTarget(t *testing.T) {
	repo := &fakeRepository{
		getTargetIDFn: func(ctx context.Context, target enums.TargetType, userID int64) (int64, error) {
			return 42, nil
		},
	}
	svc := newServiceWithRepo(t, repo)

	if err := svc.AssertOwnsTarget(context.Background(), 7, enums.TargetTypeProvider, 42); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	err := svc.AssertOwnsTarget(context.Background(), 7, enums.TargetTypeProvider, 43)
	if pkgerrors.As(err).Code() != pkgerrors.CodeForbidden {
		t.Fatalf("expected forbidden for mismatch, got %v", err)
	}
}

func TestListProvidersWrapsStoreErrors(t *testing.T) {
	repo := &fakeRepository{
		listProvidersFn: func(ctx context.Context, filter ProviderFilter) ([]models.Provider, error) {
			return nil, errors.New("boom")
		},
	}
	svc := newServiceWithRepo(t, repo)

	_, err := svc.ListProviders(context.Background(), ProviderFilter{})
	if pkgerrors.As(err).Code() != pkgerrors.CodeDependency {
		t.Fatalf("expected dependency error, got %v", err)
	}
}
