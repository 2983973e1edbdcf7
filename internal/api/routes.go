package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/cors"
)

func (s *Server) Routes() http.Handler {
	origins := s.CORSOrigins
	if len(origins) == 0 {
		origins = []string{"*"}
	}

	r := chi.NewRouter()
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: origins,
		AllowedMethods: []string{http.MethodGet, http.MethodOptions},
		AllowedHeaders: []string{"Accept", "Content-Type", "X-Request-ID"},
		ExposedHeaders: []string{"X-Request-ID"},
		MaxAge:         300,
	}))
	r.Use(recoveryMiddleware)
	r.Use(loggingMiddleware)
	r.Use(s.metricsMiddleware)

	r.Get("/fetchLeaderboard", s.handleFetchLeaderboard)
	r.Get("/getLeaderboard", s.handleGetLeaderboard)
	r.Get("/stages", s.handleListStages)

	r.Get("/healthz", s.handleHealth)
	r.Get("/readyz", s.handleReady)
	r.Handle("/metrics", s.Metrics.Handler())
	return r
}
