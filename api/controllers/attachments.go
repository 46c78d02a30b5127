package controllers

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/hudumahub/marketplace-backend/api/middleware"
	"github.com/hudumahub/marketplace-backend/api/responses"
	"github.com/hudumahub/marketplace-backend/api/validators"
	"github.com/hudumahub/marketplace-backend/internal/attachments"
	"github.com/hudumahub/marketplace-backend/internal/catalog"
	"github.com/hudumahub/marketplace-backend/pkg/config"
	pkgerrors "github.com/hudumahub/marketplace-backend/pkg/errors"
	"github.com/hudumahub/marketplace-backend/pkg/logger"
)

// AttachmentUpload stores a multipart batch of files against the caller's
// provider or business profile. Form fields: target_type, target_id,
// optional post_id, repeated "files".
func AttachmentUpload(svc attachments.Service, uploads config.UploadsConfig, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "attachments service unavailable"))
			return
		}

		input, err := parseUploadForm(r, uploads)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		saved, err := svc.Upload(r.Context(), middleware.UserIDFromContext(r.Context()), *input)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccessStatus(w, http.StatusCreated, saved)
	}
}

// ServiceAttachmentUpload stores files against a service listing. The caller
// must own the listing; the files land on the listing's target.
func ServiceAttachmentUpload(catalogSvc catalog.Service, svc attachments.Service, uploads config.UploadsConfig, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil || catalogSvc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "attachments service unavailable"))
			return
		}

		serviceID, err := validators.ParseURLID(r, "id")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		row, err := catalogSvc.AssertOwnsService(r.Context(), middleware.UserIDFromContext(r.Context()), serviceID)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		if err := r.ParseMultipartForm(uploads.MaxUploadBytes()); err != nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid multipart form"))
			return
		}

		input := attachments.UploadInput{
			TargetType: string(row.TargetType),
			TargetID:   row.TargetID,
			Files:      r.MultipartForm.File["files"],
		}

		saved, err := svc.Upload(r.Context(), middleware.UserIDFromContext(r.Context()), input)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccessStatus(w, http.StatusCreated, saved)
	}
}

// AttachmentList returns a target's attachments, newest first.
func AttachmentList(svc attachments.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "attachments service unavailable"))
			return
		}

		targetID, err := validators.ParseURLID(r, "id")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		rows, err := svc.ListForTarget(r.Context(), chiTargetType(r), targetID)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, rows)
	}
}

func parseUploadForm(r *http.Request, uploads config.UploadsConfig) (*attachments.UploadInput, error) {
	if err := r.ParseMultipartForm(uploads.MaxUploadBytes()); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid multipart form")
	}

	input := attachments.UploadInput{
		TargetType: strings.TrimSpace(r.FormValue("target_type")),
		Files:      r.MultipartForm.File["files"],
	}

	rawTarget := strings.TrimSpace(r.FormValue("target_id"))
	targetID, err := strconv.ParseInt(rawTarget, 10, 64)
	if err != nil || targetID <= 0 {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "target_id must be a positive id")
	}
	input.TargetID = targetID

	if rawPost := strings.TrimSpace(r.FormValue("post_id")); rawPost != "" {
		postID, err := strconv.ParseInt(rawPost, 10, 64)
		if err != nil || postID <= 0 {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, "post_id must be a positive id")
		}
		input.PostID = &postID
	}

	return &input, nil
}
