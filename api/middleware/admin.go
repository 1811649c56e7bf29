package middleware

import (
	"net/http"

	"github.com/luxuryconcept/storefront-backend/api/responses"
	"github.com/luxuryconcept/storefront-backend/internal/access"
	pkgerrors "github.com/luxuryconcept/storefront-backend/pkg/errors"
	"github.com/luxuryconcept/storefront-backend/pkg/logger"
)

const DefaultAdminHeader = "X-Admin-Key"

// RequireAdmin rejects requests whose admin header does not satisfy gate.
// A nil gate denies everything.
func RequireAdmin(gate access.Gate, header string, logg *logger.Logger) func(http.Handler) http.Handler {
	if header == "" {
		header = DefaultAdminHeader
	}
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if gate == nil || !gate.Authorize(r.Header.Get(header)) {
				ctx := r.Context()
				if logg != nil {
					logg.Warn(logg.WithField(ctx, "path", r.URL.Path), "admin.access.denied")
				}
				responses.WriteError(ctx, nil, w, pkgerrors.New(pkgerrors.CodeForbidden, "Unauthorized"))
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}
