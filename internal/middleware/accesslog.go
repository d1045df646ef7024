// internal/middleware/accesslog.go
//
// Access log and request metrics.
//
// One INFO line per request (DEBUG for probe and scrape paths, so
// orchestrator polling does not drown the log) and one observation on the
// request counter and latency histogram.  The route label is chi's route
// pattern, never the raw path, to keep metric cardinality bounded.

package middleware

import (
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"

	"github.com/yanizio/curriculum-ai/internal/metrics"
	"github.com/yanizio/curriculum-ai/internal/requestinfo"
)

// AccessLog logs and measures every request.
func AccessLog(log *zap.SugaredLogger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			ww := chimw.NewWrapResponseWriter(w, r.ProtoMajor)

			next.ServeHTTP(ww, r)

			status := ww.Status()
			if status == 0 {
				status = http.StatusOK
			}
			route := routePattern(r)
			elapsed := time.Since(start)

			metrics.HTTPRequestsTotal.WithLabelValues(route, r.Method, strconv.Itoa(status)).Inc()
			metrics.HTTPRequestDuration.WithLabelValues(route, r.Method).Observe(elapsed.Seconds())

			fields := []any{
				"method", r.Method,
				"path", r.URL.Path,
				"status", status,
				"bytes", ww.BytesWritten(),
				"duration", elapsed,
				"request_id", chimw.GetReqID(r.Context()),
			}
			if info := requestinfo.FromContext(r.Context()); info != nil {
				fields = append(fields,
					"ip", info.IP.String(),
					"browser", info.UA.Browser,
					"device", info.UA.Device,
					"bot", info.UA.IsBot,
				)
			}

			if quiet(route) {
				log.Debugw("request", fields...)
				return
			}
			log.Infow("request", fields...)
		})
	}
}

// routePattern returns the matched chi pattern or "unmatched".
func routePattern(r *http.Request) string {
	if rc := chi.RouteContext(r.Context()); rc != nil {
		if p := rc.RoutePattern(); p != "" {
			return p
		}
	}
	return "unmatched"
}

func quiet(route string) bool {
	return route == "/metrics" || strings.HasPrefix(route, "/health")
}
