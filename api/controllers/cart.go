package controllers

import (
	"net/http"

	"github.com/watchlab/storefront-backend/api/middleware"
	"github.com/watchlab/storefront-backend/api/responses"
	"github.com/watchlab/storefront-backend/api/validators"
	cartsvc "github.com/watchlab/storefront-backend/internal/cart"
	pkgerrors "github.com/watchlab/storefront-backend/pkg/errors"
	"github.com/watchlab/storefront-backend/pkg/logger"
)

type addCartLineRequest struct {
	Color string `json:"color" validate:"required"`
	Size  string `json:"size" validate:"required"`
}

type cartResponse struct {
	Lines    []cartsvc.Line `json:"lines"`
	ShowCart bool           `json:"show_cart"`
}

// CartAdd puts one variant selection into the session's cart. The response
// carries show_cart so the storefront opens the cart panel on first add.
func CartAdd(svc cartsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()

		if svc == nil {
			responses.WriteError(ctx, logg, w, pkgerrors.New(pkgerrors.CodeInternal, "cart service unavailable"))
			return
		}

		sessionID := middleware.SessionIDFromContext(ctx)

		var payload addCartLineRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}

		if _, err := svc.Add(ctx, sessionID, payload.Color, payload.Size); err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}

		responses.WriteSuccessStatus(w, http.StatusCreated, cartResponse{
			Lines:    svc.List(ctx, sessionID),
			ShowCart: true,
		})
	}
}

// CartList returns the session's cart lines in insertion order.
func CartList(svc cartsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()

		if svc == nil {
			responses.WriteError(ctx, logg, w, pkgerrors.New(pkgerrors.CodeInternal, "cart service unavailable"))
			return
		}

		responses.WriteSuccess(w, cartResponse{
			Lines: svc.List(ctx, middleware.SessionIDFromContext(ctx)),
		})
	}
}

// CartClear empties the session's cart.
func CartClear(svc cartsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()

		if svc == nil {
			responses.WriteError(ctx, logg, w, pkgerrors.New(pkgerrors.CodeInternal, "cart service unavailable"))
			return
		}

		svc.Clear(ctx, middleware.SessionIDFromContext(ctx))
		responses.WriteSuccess(w, cartResponse{Lines: []cartsvc.Line{}})
	}
}
