package storage

import "context"

type ScoreStorage interface {
	Get(ctx context.Context, id int) (*Score, error)
	GetAll(ctx context.Context) ([]*Score, error)
	ListByTeam(ctx context.Context, teamID int) ([]*Score, error)
	// Create assigns ID and AwardedAt.
	Create(ctx context.Context, score *Score) error
	Update(ctx context.Context, score *Score) error
	Delete(ctx context.Context, id int) error
	DeleteByTeam(ctx context.Context, teamID int) error
}
