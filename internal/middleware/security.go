// internal/middleware/security.go
//
// Security-header middleware.
//
// Injects headers suited to a JSON API on every response:
//
//   • X-Content-Type-Options  –  MIME-sniffing defence
//   • X-Frame-Options         –  click-jacking defence
//   • Referrer-Policy         –  drops path/query from Referer
//   • Cache-Control           –  API answers are never cached by proxies
//   • Strict-Transport-Security, production only
//
// Notes
// -----
// • Headers are set *before* next.ServeHTTP so they reach the client even
//   when the handler writes the body; a handler may still override any of
//   them.
// • Oxford commas, two spaces after periods.

package middleware

import "net/http"

// Security returns middleware that sets security headers.  hsts enables
// Strict-Transport-Security, which only makes sense behind TLS.
func Security(hsts bool) func(http.Handler) http.Handler {
	const (
		nosn   = "nosniff"
		xfo    = "DENY"
		refer  = "no-referrer"
		nocach = "no-store"
		sts    = "max-age=63072000; includeSubDomains"
	)

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			h := w.Header()
			h.Set("X-Content-Type-Options", nosn)
			h.Set("X-Frame-Options", xfo)
			h.Set("Referrer-Policy", refer)
			h.Set("Cache-Control", nocach)
			if hsts {
				h.Set("Strict-Transport-Security", sts)
			}
			next.ServeHTTP(w, r)
		})
	}
}
