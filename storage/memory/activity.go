package memory

import (
	"context"
	"github.com/Ahmedouyahya/Podium-de-concours/storage"
	"time"
)

type activityStore struct{ s *Store }

func (a *activityStore) Create(_ context.Context, activity *storage.Activity) error {
	a.s.mu.Lock()
	defer a.s.mu.Unlock()
	activity.ID = a.s.nextID(counterActivities)
	activity.CreatedAt = a.s.now().UTC()
	a.s.activities[activity.ID] = cloneActivity(activity)
	return a.s.commit()
}

func (a *activityStore) List(_ context.Context, limit int) ([]*storage.Activity, error) {
	return a.newest(limit, func(*storage.Activity) bool { return true }), nil
}

func (a *activityStore) ListByTeam(_ context.Context, teamID int, limit int) ([]*storage.Activity, error) {
	return a.newest(limit, func(act *storage.Activity) bool {
		return act.TeamID != nil && *act.TeamID == teamID
	}), nil
}

func (a *activityStore) newest(limit int, keep func(*storage.Activity) bool) []*storage.Activity {
	a.s.mu.RLock()
	defer a.s.mu.RUnlock()
	ids := sortedKeys(a.s.activities)
	var out []*storage.Activity
	for i := len(ids) - 1; i >= 0; i-- {
		if limit > 0 && len(out) == limit {
			break
		}
		if act := a.s.activities[ids[i]]; keep(act) {
			out = append(out, cloneActivity(act))
		}
	}
	return out
}

func (a *activityStore) ActiveTeamsSince(_ context.Context, since time.Time) (int, error) {
	a.s.mu.RLock()
	defer a.s.mu.RUnlock()
	teams := map[int]struct{}{}
	for _, act := range a.s.activities {
		if act.TeamID != nil && !act.CreatedAt.Before(since) {
			teams[*act.TeamID] = struct{}{}
		}
	}
	return len(teams), nil
}

func (a *activityStore) Prune(_ context.Context, keep int) (int, error) {
	a.s.mu.Lock()
	defer a.s.mu.Unlock()
	ids := sortedKeys(a.s.activities)
	if keep < 0 {
		keep = 0
	}
	if len(ids) <= keep {
		return 0, nil
	}
	stale := ids[:len(ids)-keep]
	for _, id := range stale {
		delete(a.s.activities, id)
	}
	return len(stale), a.s.commit()
}
