package server

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/yanizio/curriculum-ai/internal/metrics"
	"github.com/yanizio/curriculum-ai/internal/version"
)

const readinessTimeout = 5 * time.Second

// ServiceName is reported by /health.
const ServiceName = "ai-service"

// Field order is part of the wire contract, hence structs rather than maps.
type healthResponse struct {
	Status  string `json:"status"`
	Service string `json:"service"`
}

type rootResponse struct {
	Message string `json:"message"`
}

type unhealthyResponse struct {
	Status      string `json:"status"`
	FailedCheck string `json:"failed_check"`
	Error       string `json:"error"`
}

// HealthCheck is a named readiness check.
type HealthCheck struct {
	Name  string
	Check func(ctx context.Context) error
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	s.writeJSON(w, http.StatusOK, healthResponse{Status: "ok", Service: ServiceName})
}

func (s *Server) handleRoot(w http.ResponseWriter, _ *http.Request) {
	s.writeJSON(w, http.StatusOK, rootResponse{Message: version.Name})
}

func (s *Server) handleVersion(w http.ResponseWriter, _ *http.Request) {
	s.writeJSON(w, http.StatusOK, version.Get())
}

// handleReady runs every check in order and reports the first failure.
func (s *Server) handleReady(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), readinessTimeout)
	defer cancel()

	for _, hc := range s.checks {
		if err := hc.Check(ctx); err != nil {
			metrics.ReadinessCheckFailuresTotal.WithLabelValues(hc.Name).Inc()
			s.log.Warnw("readiness check failed", "check", hc.Name, "err", err)
			s.writeJSON(w, http.StatusServiceUnavailable, unhealthyResponse{
				Status:      "unhealthy",
				FailedCheck: hc.Name,
				Error:       err.Error(),
			})
			return
		}
	}
	s.writeJSON(w, http.StatusOK, map[string]string{"status": "ready"})
}

// writeJSON marshals v and writes it without a trailing newline.
func (s *Server) writeJSON(w http.ResponseWriter, status int, v any) {
	body, err := json.Marshal(v)
	if err != nil {
		s.log.Errorw("encode response", "err", err)
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if _, err := w.Write(body); err != nil {
		s.log.Debugw("write response", "err", err)
	}
}
