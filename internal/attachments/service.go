package attachments

import (
	"context"
	"fmt"
	"mime/multipart"

	"github.com/hudumahub/marketplace-backend/internal/profiles"
	"github.com/hudumahub/marketplace-backend/pkg/config"
	"github.com/hudumahub/marketplace-backend/pkg/db/models"
	"github.com/hudumahub/marketplace-backend/pkg/enums"
	pkgerrors "github.com/hudumahub/marketplace-backend/pkg/errors"
	"github.com/hudumahub/marketplace-backend/pkg/logger"
	"go.uber.org/multierr"
)

// Service stores uploads on disk and records a row per file.
type Service interface {
	Upload(ctx context.Context, userID int64, input UploadInput) ([]models.Attachment, error)
	ListForTarget(ctx context.Context, targetType string, targetID int64) ([]models.Attachment, error)
}

// UploadInput carries a multipart upload batch.
type UploadInput struct {
	TargetType string
	TargetID   int64
	PostID     *int64
	Files      []*multipart.FileHeader
}

type service struct {
	repo     Repository
	resolver profiles.Resolver
	store    diskStore
	log      *logger.Logger
}

// NewService wires attachment dependencies.
func NewService(repo Repository, resolver profiles.Resolver, uploads config.UploadsConfig, log *logger.Logger) (Service, error) {
	if repo == nil {
		return nil, pkgerrors.New(pkgerrors.CodeDependency, "attachments repository required")
	}
	if resolver == nil {
		return nil, pkgerrors.New(pkgerrors.CodeDependency, "profile resolver required")
	}
	if uploads.Dir == "" {
		return nil, pkgerrors.New(pkgerrors.CodeDependency, "upload directory required")
	}
	if log == nil {
		return nil, pkgerrors.New(pkgerrors.CodeDependency, "logger required")
	}
	return &service{
		repo:     repo,
		resolver: resolver,
		store:    diskStore{baseDir: uploads.Dir},
		log:      log,
	}, nil
}

func (s *service) Upload(ctx context.Context, userID int64, input UploadInput) ([]models.Attachment, error) {
	target, err := enums.ParseTargetType(input.TargetType)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid target type")
	}
	if input.TargetID <= 0 {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "target id required")
	}
	if len(input.Files) == 0 {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "no files provided")
	}

	if err := s.resolver.AssertOwnsTarget(ctx, userID, target, input.TargetID); err != nil {
		return nil, err
	}

	var saved []models.Attachment
	var failures error
	for _, header := range input.Files {
		if header.Size == 0 {
			failures = multierr.Append(failures, fmt.Errorf("file %q is empty", header.Filename))
			continue
		}
		fileType := fileTypeFor(header.Filename)
		if fileType == "" {
			// unsupported extensions are skipped, not errors
			s.log.Warn(ctx, fmt.Sprintf("skipping unsupported upload %q", header.Filename))
			continue
		}

		fileName, path, err := s.store.Save(header, fileType)
		if err != nil {
			failures = multierr.Append(failures, fmt.Errorf("file %q: %w", header.Filename, err))
			continue
		}

		attachment := models.Attachment{
			FileName:   fileName,
			FilePath:   path,
			FileType:   fileType,
			TargetType: target,
			TargetID:   input.TargetID,
			PostID:     input.PostID,
			UploadedBy: userID,
		}
		if err := s.repo.Create(ctx, &attachment); err != nil {
			failures = multierr.Append(failures, fmt.Errorf("file %q: %w", header.Filename, err))
			continue
		}
		saved = append(saved, attachment)
	}

	if failures != nil {
		details := make([]string, 0)
		for _, err := range multierr.Errors(failures) {
			details = append(details, err.Error())
		}
		return saved, pkgerrors.
			Wrap(pkgerrors.CodeValidation, failures, "some files could not be uploaded").
			WithDetails(details)
	}
	return saved, nil
}

func (s *service) ListForTarget(ctx context.Context, targetType string, targetID int64) ([]models.Attachment, error) {
	target, err := enums.ParseTargetType(targetType)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid target type")
	}
	if targetID <= 0 {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "target id required")
	}

	attachments, err := s.repo.ListForTarget(ctx, target, targetID)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list attachments")
	}
	return attachments, nil
}
