package models

import "time"

// Stage is one competition course as last imported from the scoring platform.
// Revision grows with every write to the stage and its scores.
type Stage struct {
	ID         string    `json:"stageId"`
	Name       string    `json:"stageName"`
	Threshold  *float64  `json:"threshold"`
	ImportedAt time.Time `json:"-"`
	Revision   int64     `json:"-"`
}

// Leaderboard is a stage together with its scores, best hit factor first.
type Leaderboard struct {
	Stage  Stage   `json:"stage"`
	Scores []Score `json:"scores"`
}

// ImportResult summarizes one completed import.
type ImportResult struct {
	StageID     string
	StageName   string
	TotalScores int
	Batches     int
}
