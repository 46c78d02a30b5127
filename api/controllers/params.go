package controllers

import (
	"net/http"

	"github.com/go-chi/chi/v5"
)

func chiTargetType(r *http.Request) string {
	return chi.URLParam(r, "target_type")
}
