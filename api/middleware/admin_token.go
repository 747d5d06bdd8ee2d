package middleware

import (
	"crypto/subtle"
	"net/http"

	"github.com/watchlab/storefront-backend/api/responses"
	"github.com/watchlab/storefront-backend/pkg/config"
	pkgerrors "github.com/watchlab/storefront-backend/pkg/errors"
	"github.com/watchlab/storefront-backend/pkg/logger"
)

const adminTokenHeader = "X-Admin-Token"

// AdminToken guards the operator surface with a static shared token.
func AdminToken(cfg config.AdminConfig, logg *logger.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx := r.Context()

			if cfg.Token == "" {
				responses.WriteError(ctx, logg, w, pkgerrors.New(pkgerrors.CodeInternal, "admin token not configured"))
				return
			}

			presented := r.Header.Get(adminTokenHeader)
			if subtle.ConstantTimeCompare([]byte(presented), []byte(cfg.Token)) != 1 {
				if logg != nil {
					logg.Warn(ctx, "admin.token.rejected")
				}
				responses.WriteError(ctx, logg, w, pkgerrors.New(pkgerrors.CodeUnauthorized, "invalid admin token"))
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}
