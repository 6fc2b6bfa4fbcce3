package memory

import (
	"context"
	"fmt"
	"github.com/Ahmedouyahya/Podium-de-concours/storage"
)

type scoreStore struct{ s *Store }

func (sc *scoreStore) Get(_ context.Context, id int) (*storage.Score, error) {
	sc.s.mu.RLock()
	defer sc.s.mu.RUnlock()
	score, ok := sc.s.scores[id]
	if !ok {
		return nil, fmt.Errorf("%w: score %d", storage.ErrNotFound, id)
	}
	return cloneScore(score), nil
}

func (sc *scoreStore) GetAll(_ context.Context) ([]*storage.Score, error) {
	sc.s.mu.RLock()
	defer sc.s.mu.RUnlock()
	scores := make([]*storage.Score, 0, len(sc.s.scores))
	for _, id := range sortedKeys(sc.s.scores) {
		scores = append(scores, cloneScore(sc.s.scores[id]))
	}
	return scores, nil
}

func (sc *scoreStore) ListByTeam(_ context.Context, teamID int) ([]*storage.Score, error) {
	sc.s.mu.RLock()
	defer sc.s.mu.RUnlock()
	var scores []*storage.Score
	for _, id := range sortedKeys(sc.s.scores) {
		if score := sc.s.scores[id]; score.TeamID == teamID {
			scores = append(scores, cloneScore(score))
		}
	}
	return scores, nil
}

func (sc *scoreStore) Create(_ context.Context, score *storage.Score) error {
	sc.s.mu.Lock()
	defer sc.s.mu.Unlock()
	score.ID = sc.s.nextID(counterScores)
	if score.AwardedAt.IsZero() {
		score.AwardedAt = sc.s.now().UTC()
	}
	sc.s.scores[score.ID] = cloneScore(score)
	return sc.s.commit()
}

func (sc *scoreStore) Update(_ context.Context, score *storage.Score) error {
	sc.s.mu.Lock()
	defer sc.s.mu.Unlock()
	if _, ok := sc.s.scores[score.ID]; !ok {
		return fmt.Errorf("%w: score %d", storage.ErrNotFound, score.ID)
	}
	sc.s.scores[score.ID] = cloneScore(score)
	return sc.s.commit()
}

func (sc *scoreStore) Delete(_ context.Context, id int) error {
	sc.s.mu.Lock()
	defer sc.s.mu.Unlock()
	if _, ok := sc.s.scores[id]; !ok {
		return fmt.Errorf("%w: score %d", storage.ErrNotFound, id)
	}
	delete(sc.s.scores, id)
	return sc.s.commit()
}

func (sc *scoreStore) DeleteByTeam(_ context.Context, teamID int) error {
	sc.s.mu.Lock()
	defer sc.s.mu.Unlock()
	for id, score := range sc.s.scores {
		if score.TeamID == teamID {
			delete(sc.s.scores, id)
		}
	}
	return sc.s.commit()
}
