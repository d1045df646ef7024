// internal/requestinfo/middleware.go
//
// HTTP middleware that enriches each request with *RequestInfo.
//
/*
Context
--------
This handler sits near the top of the chain, before the access log.  For
every request it:

  1. Parses the User-Agent header into a coarse class.
  2. Extracts the left-most client IP from X-Forwarded-For or X-Real-IP,
     falling back to `r.RemoteAddr`.
  3. Stores a `*RequestInfo` value in `request.Context` under an
     unexported key so the access log can read it without reparsing.

Notes
-----
  • All work is read-only, so the middleware is safe under concurrency.
  • Oxford commas, two spaces after periods.  No em dash.
*/
package requestinfo

import (
	"net/http"
	"time"
)

// Enrich wraps an http.Handler, attaches *RequestInfo, and forwards.
func Enrich(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		info := &RequestInfo{
			IP:        clientIP(r.Header.Get("X-Forwarded-For"), r.Header.Get("X-Real-Ip"), r.RemoteAddr),
			UA:        parseUA(r.UserAgent()),
			Timestamp: time.Now().UTC(),
		}
		next.ServeHTTP(w, r.WithContext(NewContext(r.Context(), info)))
	})
}
