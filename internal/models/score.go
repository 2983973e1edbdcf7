package models

// Score is one competitor's result on a stage. ID is assigned by the
// scoring platform and is unique within the stage.
type Score struct {
	ID            string  `json:"-"`
	StageID       string  `json:"-"`
	DisplayName   string  `json:"displayName"`
	HitFactor     float64 `json:"hitFactor"`
	Rank          int     `json:"rank"`
	TimeInSeconds float64 `json:"timeInSeconds"`
}
