package api

import (
	"context"

	"github.com/vytor/stageboard/internal/metrics"
	"github.com/vytor/stageboard/internal/services"
)

// Pinger is anything the readiness probe can check.
type Pinger interface {
	Ping(ctx context.Context) error
}

type Server struct {
	ImportService      services.ImportService
	LeaderboardService services.LeaderboardService
	Metrics            *metrics.Manager
	// Checks are probed by /readyz, keyed by a short name used in the response.
	Checks      map[string]Pinger
	CORSOrigins []string
}
