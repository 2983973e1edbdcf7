package acexr

import "github.com/vytor/stageboard/internal/models"

// ToScore translates platform field names into the stored score shape.
// A missing hit factor is stored as 0.
func (r ScoreRecord) ToScore(stageID string) models.Score {
	var hitFactor float64
	if r.HitFactor != nil {
		hitFactor = *r.HitFactor
	}
	return models.Score{
		ID:            r.ID,
		StageID:       stageID,
		DisplayName:   r.DisplayName,
		HitFactor:     hitFactor,
		Rank:          int(r.Rank),
		TimeInSeconds: r.TimeInSeconds,
	}
}

// ToStage translates a leaderboard record into the stored stage shape.
func (r LeaderboardRecord) ToStage(stageID string) models.Stage {
	return models.Stage{
		ID:        stageID,
		Name:      r.StageName,
		Threshold: r.Threshold,
	}
}
