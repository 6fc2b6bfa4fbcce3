package storage

import "context"

type ChallengeStorage interface {
	Get(ctx context.Context, id int) (*Challenge, error)
	GetAll(ctx context.Context) ([]*Challenge, error)
	Create(ctx context.Context, challenge *Challenge) error
	Update(ctx context.Context, challenge *Challenge) error
	Delete(ctx context.Context, id int) error
}
