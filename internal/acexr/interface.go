package acexr

import "context"

// ClientInterface defines the scoring platform operations the importer needs.
type ClientInterface interface {
	FetchLeaderboard(ctx context.Context, stageID string) (*LeaderboardRecord, error)
	FetchScores(ctx context.Context, ids []string) ([]ScoreRecord, error)
}

var _ ClientInterface = (*Client)(nil)
