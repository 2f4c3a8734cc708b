package middleware

import (
	"crypto/subtle"
	"net/http"
	"strings"

	"github.com/Demmynile/hanniefoods/api/responses"
	"github.com/Demmynile/hanniefoods/pkg/config"
	pkgerrors "github.com/Demmynile/hanniefoods/pkg/errors"
	"github.com/Demmynile/hanniefoods/pkg/logger"
)

const adminKeyHeader = "X-Admin-Key"

// AdminKey gates the back-office routes behind the shared admin secret.
// The comparison is constant-time.
func AdminKey(cfg config.AdminConfig, logg *logger.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if cfg.Key == "" {
				responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeForbidden, "admin access is not configured"))
				return
			}

			provided := strings.TrimSpace(r.Header.Get(adminKeyHeader))
			if subtle.ConstantTimeCompare([]byte(provided), []byte(cfg.Key)) != 1 {
				responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeForbidden, "invalid admin key"))
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}
