package api

import (
	"context"
	"net/http"
	"strings"

	apperrors "github.com/vytor/stageboard/internal/errors"
	"github.com/vytor/stageboard/internal/logger"
	"github.com/vytor/stageboard/internal/models"
)

const (
	msgImported       = "Leaderboard data fetched and saved."
	msgInvalidStageID = "Invalid or missing stageId."
	msgMissingStageID = "Missing Stage ID"
	msgStageNotFound  = "Stage ID not found"
	msgImportFailed   = "Error fetching leaderboard data: "
	msgReadFailed     = "An error occurred while reading the leaderboard."
)

type fetchLeaderboardResponse struct {
	Success     bool   `json:"success"`
	Message     string `json:"message"`
	StageID     string `json:"stageId"`
	TotalScores int    `json:"totalScores"`
}

type getLeaderboardResponse struct {
	Success   bool           `json:"success"`
	StageID   string         `json:"stageId"`
	StageName string         `json:"stageName"`
	Threshold *float64       `json:"threshold"`
	Scores    []models.Score `json:"scores"`
}

type stageSummary struct {
	StageID   string   `json:"stageId"`
	StageName string   `json:"stageName"`
	Threshold *float64 `json:"threshold"`
	Imported  string   `json:"importedAt"`
}

// handleFetchLeaderboard imports a stage from the scoring platform.
// A repeated stageId parameter is rejected like a missing one.
func (s *Server) handleFetchLeaderboard(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContext(r.Context())

	values := r.URL.Query()["stageId"]
	if len(values) != 1 || strings.TrimSpace(values[0]) == "" {
		log.Warn("fetchLeaderboard with invalid stageId: %q", values)
		handleError(w, r, apperrors.NewBadRequestError(msgInvalidStageID))
		return
	}

	// The import keeps running if the client goes away, so a closed tab
	// never stops it between batches. Upstream calls are bounded by the
	// client timeout.
	res, err := s.ImportService.ImportStage(context.WithoutCancel(r.Context()), values[0])
	if err != nil {
		appErr := apperrors.As(err)
		if appErr.Status == http.StatusBadRequest {
			handleError(w, r, appErr.WithMessage(msgInvalidStageID))
			return
		}
		handleError(w, r, appErr.WithMessage(msgImportFailed+appErr.Message))
		return
	}

	writeJSON(w, http.StatusOK, fetchLeaderboardResponse{
		Success:     true,
		Message:     msgImported,
		StageID:     res.StageID,
		TotalScores: res.TotalScores,
	})
}

// handleGetLeaderboard returns a stage with all its scores, best hit factor first.
func (s *Server) handleGetLeaderboard(w http.ResponseWriter, r *http.Request) {
	stageID := r.URL.Query().Get("stageId")
	if strings.TrimSpace(stageID) == "" {
		handleError(w, r, apperrors.NewBadRequestError(msgMissingStageID))
		return
	}

	lb, err := s.LeaderboardService.GetLeaderboard(r.Context(), stageID)
	if err != nil {
		appErr := apperrors.As(err)
		switch appErr.Status {
		case http.StatusBadRequest:
			handleError(w, r, appErr.WithMessage(msgMissingStageID))
		case http.StatusNotFound:
			handleError(w, r, appErr.WithMessage(msgStageNotFound))
		default:
			handleError(w, r, appErr.WithMessage(msgReadFailed))
		}
		return
	}

	scores := lb.Scores
	if scores == nil {
		scores = []models.Score{}
	}
	writeJSON(w, http.StatusOK, getLeaderboardResponse{
		Success:   true,
		StageID:   lb.Stage.ID,
		StageName: lb.Stage.Name,
		Threshold: lb.Stage.Threshold,
		Scores:    scores,
	})
}

// handleListStages lists every imported stage, most recent import first.
func (s *Server) handleListStages(w http.ResponseWriter, r *http.Request) {
	stages, err := s.LeaderboardService.ListStages(r.Context())
	if err != nil {
		handleError(w, r, apperrors.As(err).WithMessage(msgReadFailed))
		return
	}

	out := make([]stageSummary, 0, len(stages))
	for _, st := range stages {
		out = append(out, stageSummary{
			StageID:   st.ID,
			StageName: st.Name,
			Threshold: st.Threshold,
			Imported:  st.ImportedAt.UTC().Format("2006-01-02T15:04:05Z"),
		})
	}
	writeJSON(w, http.StatusOK, map[string]any{"success": true, "stages": out})
}
