package competition

import (
	"context"
	"fmt"
	"github.com/Ahmedouyahya/Podium-de-concours/logging"
	"github.com/Ahmedouyahya/Podium-de-concours/storage"
)

const (
	DefaultFeedLimit     = 20
	DefaultTeamFeedLimit = 10
	MaxFeedLimit         = 100
)

// Recorder appends to the activity log. The log is for display only.
type Recorder struct {
	activities storage.ActivityStorage
	teams      storage.TeamStorage
}

func NewRecorder(repo *storage.Repository) *Recorder {
	return &Recorder{activities: repo.Activities, teams: repo.Teams}
}

// Record appends an entry. It runs after the write it describes has been
// stored, so a failure is logged and never undoes or fails that write.
func (r *Recorder) Record(ctx context.Context, kind storage.ActivityKind, teamID *int, points int, format string, args ...any) {
	a := &storage.Activity{
		TeamID:       teamID,
		Kind:         kind,
		Description:  fmt.Sprintf(format, args...),
		PointsChange: points,
	}
	if err := r.activities.Create(ctx, a); err != nil {
		logging.Log.Errorf("ACTIVITY: failed to record %s: %v", kind, err)
	}
}

type FeedEntry struct {
	Activity *storage.Activity
	Team     *storage.Team
}

// Feed returns the newest entries first. limit is clamped to 1..MaxFeedLimit.
func (r *Recorder) Feed(ctx context.Context, limit int) ([]FeedEntry, error) {
	activities, err := r.activities.List(ctx, clampFeed(limit, DefaultFeedLimit))
	if err != nil {
		return nil, err
	}
	return r.entries(ctx, activities)
}

// TeamFeed is Feed for one existing team, with a smaller default page.
func (r *Recorder) TeamFeed(ctx context.Context, teamID int, limit int) ([]FeedEntry, error) {
	if _, err := r.teams.Get(ctx, teamID); err != nil {
		return nil, err
	}
	activities, err := r.activities.ListByTeam(ctx, teamID, clampFeed(limit, DefaultTeamFeedLimit))
	if err != nil {
		return nil, err
	}
	return r.entries(ctx, activities)
}

func clampFeed(limit, def int) int {
	if limit <= 0 {
		return def
	}
	if limit > MaxFeedLimit {
		return MaxFeedLimit
	}
	return limit
}

func (r *Recorder) entries(ctx context.Context, activities []*storage.Activity) ([]FeedEntry, error) {
	teams, err := teamIndex(ctx, r.teams)
	if err != nil {
		return nil, err
	}
	out := make([]FeedEntry, 0, len(activities))
	for _, a := range activities {
		entry := FeedEntry{Activity: a}
		if a.TeamID != nil {
			entry.Team = teams[*a.TeamID]
		}
		out = append(out, entry)
	}
	return out, nil
}

func teamIndex(ctx context.Context, teams storage.TeamStorage) (map[int]*storage.Team, error) {
	all, err := teams.GetAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("load teams: %w", err)
	}
	out := make(map[int]*storage.Team, len(all))
	for _, t := range all {
		out[t.ID] = t
	}
	return out, nil
}
