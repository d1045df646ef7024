// internal/middleware/cors.go
//
// Cross-origin policy.
//
// Context
// -------
// The service accepts calls from any web origin, with any method, any
// header, and credentials.  Because browsers reject a literal `*` origin on
// credentialed requests, the request Origin is echoed back instead and
// `Vary: Origin` is set.  Preflight answers are cached for ten minutes.
//
// This is wide open.  Tighten AllowOriginFunc before exposing the service
// outside a trusted network.
//
// Notes
// -----
// • Oxford commas, two spaces after periods.

package middleware

import (
	"net/http"

	"github.com/go-chi/cors"
)

// CORS returns the permissive cross-origin middleware.
func CORS() func(http.Handler) http.Handler {
	return cors.Handler(cors.Options{
		AllowOriginFunc: func(*http.Request, string) bool { return true },
		AllowedMethods: []string{
			http.MethodGet, http.MethodHead, http.MethodPost, http.MethodPut,
			http.MethodPatch, http.MethodDelete, http.MethodOptions,
		},
		AllowedHeaders:   []string{"*"},
		ExposedHeaders:   []string{"X-Request-Id"},
		AllowCredentials: true,
		MaxAge:           600,
	})
}
