package controllers

import (
	"net/http"
	"strings"

	"github.com/hudumahub/marketplace-backend/api/middleware"
	"github.com/hudumahub/marketplace-backend/api/responses"
	"github.com/hudumahub/marketplace-backend/api/validators"
	"github.com/hudumahub/marketplace-backend/internal/profiles"
	pkgerrors "github.com/hudumahub/marketplace-backend/pkg/errors"
	"github.com/hudumahub/marketplace-backend/pkg/logger"
)

// BusinessOnboard creates or refreshes the caller's business profile.
func BusinessOnboard(svc profiles.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "profiles service unavailable"))
			return
		}

		var input profiles.BusinessInput
		if err := validators.DecodeJSONBody(r, &input); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		business, created, err := svc.OnboardBusiness(r.Context(), middleware.UserIDFromContext(r.Context()), input)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		status := http.StatusOK
		if created {
			status = http.StatusCreated
		}
		responses.WriteSuccessStatus(w, status, business)
	}
}

// BusinessUpdate applies a sparse patch to the caller's business profile.
func BusinessUpdate(svc profiles.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "profiles service unavailable"))
			return
		}

		var patch profiles.BusinessPatch
		if err := validators.DecodeJSONBody(r, &patch); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		if err := svc.UpdateBusinessProfile(r.Context(), middleware.UserIDFromContext(r.Context()), patch); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, map[string]string{"status": "profile updated"})
	}
}

// BusinessList is the public business directory with optional filters.
func BusinessList(svc profiles.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "profiles service unavailable"))
			return
		}

		filter := profiles.BusinessFilter{
			Category: strings.TrimSpace(r.URL.Query().Get("category")),
			Name:     strings.TrimSpace(r.URL.Query().Get("name")),
			Location: strings.TrimSpace(r.URL.Query().Get("location")),
		}

		businesses, err := svc.ListBusinesses(r.Context(), filter)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, businesses)
	}
}
