package storage

import (
	"context"
	"time"
)

type ActivityStorage interface {
	// Create assigns ID and CreatedAt.
	Create(ctx context.Context, activity *Activity) error
	// List returns the newest entries first. A limit <= 0 returns everything.
	List(ctx context.Context, limit int) ([]*Activity, error)
	// ListByTeam is List restricted to one team.
	ListByTeam(ctx context.Context, teamID int, limit int) ([]*Activity, error)
	// ActiveTeamsSince counts distinct teams with an entry created at or after since.
	ActiveTeamsSince(ctx context.Context, since time.Time) (int, error)
	// Prune keeps the newest keep entries and returns how many were removed.
	Prune(ctx context.Context, keep int) (int, error)
}
