package storage

import "context"

type SubmissionStorage interface {
	Get(ctx context.Context, id int) (*Submission, error)
	List(ctx context.Context, filter SubmissionFilter) ([]*Submission, error)
	// Create assigns ID and SubmittedAt.
	Create(ctx context.Context, submission *Submission) error
	Update(ctx context.Context, submission *Submission) error
	Delete(ctx context.Context, id int) error
	DeleteByTeam(ctx context.Context, teamID int) error
}
