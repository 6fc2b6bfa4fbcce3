package memory

import (
	"context"
	"fmt"
	"github.com/Ahmedouyahya/Podium-de-concours/storage"
)

type submissionStore struct{ s *Store }

func (sb *submissionStore) Get(_ context.Context, id int) (*storage.Submission, error) {
	sb.s.mu.RLock()
	defer sb.s.mu.RUnlock()
	sub, ok := sb.s.submissions[id]
	if !ok {
		return nil, fmt.Errorf("%w: submission %d", storage.ErrNotFound, id)
	}
	return cloneSubmission(sub), nil
}

// List returns matching submissions newest first.
func (sb *submissionStore) List(_ context.Context, filter storage.SubmissionFilter) ([]*storage.Submission, error) {
	sb.s.mu.RLock()
	defer sb.s.mu.RUnlock()
	ids := sortedKeys(sb.s.submissions)
	var out []*storage.Submission
	for i := len(ids) - 1; i >= 0; i-- {
		if sub := sb.s.submissions[ids[i]]; filter.Match(sub) {
			out = append(out, cloneSubmission(sub))
		}
	}
	return out, nil
}

func (sb *submissionStore) Create(_ context.Context, sub *storage.Submission) error {
	sb.s.mu.Lock()
	defer sb.s.mu.Unlock()
	sub.ID = sb.s.nextID(counterSubmissions)
	sub.SubmittedAt = sb.s.now().UTC()
	if sub.Status == "" {
		sub.Status = storage.SubmissionPending
	}
	sb.s.submissions[sub.ID] = cloneSubmission(sub)
	return sb.s.commit()
}

func (sb *submissionStore) Update(_ context.Context, sub *storage.Submission) error {
	sb.s.mu.Lock()
	defer sb.s.mu.Unlock()
	if _, ok := sb.s.submissions[sub.ID]; !ok {
		return fmt.Errorf("%w: submission %d", storage.ErrNotFound, sub.ID)
	}
	sb.s.submissions[sub.ID] = cloneSubmission(sub)
	return sb.s.commit()
}

func (sb *submissionStore) Delete(_ context.Context, id int) error {
	sb.s.mu.Lock()
	defer sb.s.mu.Unlock()
	if _, ok := sb.s.submissions[id]; !ok {
		return fmt.Errorf("%w: submission %d", storage.ErrNotFound, id)
	}
	delete(sb.s.submissions, id)
	return sb.s.commit()
}

func (sb *submissionStore) DeleteByTeam(_ context.Context, teamID int) error {
	sb.s.mu.Lock()
	defer sb.s.mu.Unlock()
	for id, sub := range sb.s.submissions {
		if sub.TeamID == teamID {
			delete(sb.s.submissions, id)
		}
	}
	return sb.s.commit()
}
