package cache

import (
	"encoding/json"
	"time"

	"github.com/vytor/stageboard/internal/models"
)

// entry is the stored form of a leaderboard. It keeps the fields the
// public JSON shape hides so a cache hit matches a datastore read.
type entry struct {
	StageID    string       `json:"stage_id"`
	StageName  string       `json:"stage_name"`
	Threshold  *float64     `json:"threshold"`
	ImportedAt time.Time    `json:"imported_at"`
	Revision   int64        `json:"revision"`
	Scores     []entryScore `json:"scores"`
}

type entryScore struct {
	ID            string  `json:"id"`
	DisplayName   string  `json:"display_name"`
	HitFactor     float64 `json:"hit_factor"`
	Rank          int     `json:"rank"`
	TimeInSeconds float64 `json:"time_in_seconds"`
}

func encodeEntry(lb *models.Leaderboard) ([]byte, error) {
	e := entry{
		StageID:    lb.Stage.ID,
		StageName:  lb.Stage.Name,
		Threshold:  lb.Stage.Threshold,
		ImportedAt: lb.Stage.ImportedAt,
		Revision:   lb.Stage.Revision,
		Scores:     make([]entryScore, len(lb.Scores)),
	}
	for i, sc := range lb.Scores {
		e.Scores[i] = entryScore{
			ID:            sc.ID,
			DisplayName:   sc.DisplayName,
			HitFactor:     sc.HitFactor,
			Rank:          sc.Rank,
			TimeInSeconds: sc.TimeInSeconds,
		}
	}
	return json.Marshal(e)
}

func decodeEntry(stageID string, b []byte) (*models.Leaderboard, error) {
	var e entry
	if err := json.Unmarshal(b, &e); err != nil {
		return nil, err
	}

	lb := &models.Leaderboard{
		Stage: models.Stage{
			ID:         stageID,
			Name:       e.StageName,
			Threshold:  e.Threshold,
			ImportedAt: e.ImportedAt,
			Revision:   e.Revision,
		},
		Scores: make([]models.Score, len(e.Scores)),
	}
	for i, sc := range e.Scores {
		lb.Scores[i] = models.Score{
			ID:            sc.ID,
			StageID:       stageID,
			DisplayName:   sc.DisplayName,
			HitFactor:     sc.HitFactor,
			Rank:          sc.Rank,
			TimeInSeconds: sc.TimeInSeconds,
		}
	}
	return lb, nil
}
