package api

import (
	"context"
	"net/http"
	"sort"
	"time"

	"github.com/vytor/stageboard/internal/logger"
)

const readinessTimeout = 2 * time.Second

// handleHealth is the liveness probe; it only proves the process serves HTTP.
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
	w.Write([]byte("OK"))
}

// handleReady pings every configured dependency and returns 503 if any fails.
func (s *Server) handleReady(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContext(r.Context())
	ctx, cancel := context.WithTimeout(r.Context(), readinessTimeout)
	defer cancel()

	names := make([]string, 0, len(s.Checks))
	for name := range s.Checks {
		names = append(names, name)
	}
	sort.Strings(names)

	status := http.StatusOK
	checks := make(map[string]string, len(names))
	for _, name := range names {
		if err := s.Checks[name].Ping(ctx); err != nil {
			log.Warn("readiness check failed - %s: %v", name, err)
			checks[name] = "unavailable"
			status = http.StatusServiceUnavailable
			continue
		}
		checks[name] = "ok"
	}

	writeJSON(w, status, map[string]any{
		"ready":  status == http.StatusOK,
		"checks": checks,
	})
}
