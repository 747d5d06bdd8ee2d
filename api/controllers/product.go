package controllers

import (
	"net/http"

	"github.com/watchlab/storefront-backend/api/responses"
	"github.com/watchlab/storefront-backend/internal/catalog"
)

// ProductGet returns the single catalog entry and its variants.
func ProductGet() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		responses.WriteSuccess(w, catalog.Get())
	}
}
