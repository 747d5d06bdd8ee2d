package controllers

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/watchlab/storefront-backend/api/responses"
	"github.com/watchlab/storefront-backend/api/validators"
	adminsvc "github.com/watchlab/storefront-backend/internal/admin"
	pkgerrors "github.com/watchlab/storefront-backend/pkg/errors"
	"github.com/watchlab/storefront-backend/pkg/logger"
)

type draftReplyRequest struct {
	Message string `json:"message" validate:"required,max=2000"`
}

// AdminOverview returns the dashboard snapshot: stats, orders, recent chat.
func AdminOverview(svc adminsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()

		if svc == nil {
			responses.WriteError(ctx, logg, w, pkgerrors.New(pkgerrors.CodeInternal, "admin service unavailable"))
			return
		}

		overview, err := svc.Overview(ctx)
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}

		responses.WriteSuccess(w, overview)
	}
}

// AdminGetOrder returns one order by its customer-facing reference.
func AdminGetOrder(svc adminsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()

		if svc == nil {
			responses.WriteError(ctx, logg, w, pkgerrors.New(pkgerrors.CodeInternal, "admin service unavailable"))
			return
		}

		order, err := svc.GetOrder(ctx, chi.URLParam(r, "orderNumber"))
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}

		responses.WriteSuccess(w, order)
	}
}

// AdminDraftReply suggests a support response for the operator.
func AdminDraftReply(svc adminsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()

		if svc == nil {
			responses.WriteError(ctx, logg, w, pkgerrors.New(pkgerrors.CodeInternal, "admin service unavailable"))
			return
		}

		var payload draftReplyRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}

		draft, err := svc.DraftReply(ctx, payload.Message)
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}

		responses.WriteSuccess(w, map[string]string{"draft": draft})
	}
}
