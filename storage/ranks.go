package storage

import "context"

// RankStorage keeps the rank baseline leaderboard trends are computed against.
type RankStorage interface {
	SaveRanks(ctx context.Context, ranks map[int]int) error
	// LoadRanks returns an empty map when no baseline was recorded yet.
	LoadRanks(ctx context.Context) (map[int]int, error)
}
