package middleware

import (
	"net/http"

	"github.com/go-chi/cors"
)

// CORS returns middleware that applies the storefront's allowed origin policy.
// adminHeader is the header carrying the admin secret and must be allowed
// for the admin dashboard to reach /api/admin routes.
func CORS(origins []string, adminHeader string) func(http.Handler) http.Handler {
	allowed := []string{"Accept", "Content-Type", "Idempotency-Key", "X-Requested-With", requestIDHeader}
	if adminHeader != "" {
		allowed = append(allowed, adminHeader)
	}
	return cors.New(cors.Options{
		AllowedOrigins:   origins,
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   allowed,
		ExposedHeaders:   []string{requestIDHeader},
		AllowCredentials: false,
		MaxAge:           300,
	}).Handler
}
