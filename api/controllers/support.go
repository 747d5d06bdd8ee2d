package controllers

import (
	"net/http"

	"github.com/watchlab/storefront-backend/api/middleware"
	"github.com/watchlab/storefront-backend/api/responses"
	"github.com/watchlab/storefront-backend/api/validators"
	supportsvc "github.com/watchlab/storefront-backend/internal/support"
	pkgerrors "github.com/watchlab/storefront-backend/pkg/errors"
	"github.com/watchlab/storefront-backend/pkg/logger"
)

type sendSupportMessageRequest struct {
	Message string `json:"message" validate:"required,max=2000"`
}

// SupportSend records a customer message and its automated reply.
func SupportSend(svc supportsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()

		if svc == nil {
			responses.WriteError(ctx, logg, w, pkgerrors.New(pkgerrors.CodeInternal, "support service unavailable"))
			return
		}

		var payload sendSupportMessageRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}

		exchange, err := svc.Send(ctx, middleware.SessionIDFromContext(ctx), payload.Message)
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}

		responses.WriteSuccessStatus(w, http.StatusCreated, exchange)
	}
}

// SupportHistory returns the session's conversation, oldest first.
func SupportHistory(svc supportsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()

		if svc == nil {
			responses.WriteError(ctx, logg, w, pkgerrors.New(pkgerrors.CodeInternal, "support service unavailable"))
			return
		}

		history, err := svc.History(ctx, middleware.SessionIDFromContext(ctx))
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}

		responses.WriteSuccess(w, map[string]any{"messages": history})
	}
}
