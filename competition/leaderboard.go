package competition

import (
	"context"
	"fmt"
	"github.com/Ahmedouyahya/Podium-de-concours/logging"
	"github.com/Ahmedouyahya/Podium-de-concours/storage"
	"math"
	"time"
)

// Leaderboard reads teams and scores from storage and ranks them. It holds no
// state of its own besides the rank baseline kept in RankStorage.
type Leaderboard struct {
	teams      storage.TeamStorage
	scores     storage.ScoreStorage
	challenges storage.ChallengeStorage
	ranks      storage.RankStorage
	activities storage.ActivityStorage
	now        func() time.Time
}

func NewLeaderboard(repo *storage.Repository) *Leaderboard {
	return &Leaderboard{
		teams:      repo.Teams,
		scores:     repo.Scores,
		challenges: repo.Challenges,
		ranks:      repo.Ranks,
		activities: repo.Activities,
		now:        time.Now,
	}
}

func (l *Leaderboard) compute(ctx context.Context, previous map[int]int) ([]Row, error) {
	teams, err := l.teams.GetAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("load teams: %w", err)
	}
	scores, err := l.scores.GetAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("load scores: %w", err)
	}
	return Aggregate(teams, scores, previous), nil
}

// Rows returns the full ranking with trends against the saved baseline.
func (l *Leaderboard) Rows(ctx context.Context) ([]Row, error) {
	var previous map[int]int
	if l.ranks != nil {
		baseline, err := l.ranks.LoadRanks(ctx)
		if err != nil {
			logging.Log.Warnf("LEADERBOARD: rank baseline unavailable, trends default to stable: %v", err)
		} else {
			previous = baseline
		}
	}
	return l.compute(ctx, previous)
}

func (l *Leaderboard) Standing(ctx context.Context, teamID int) (*Row, error) {
	rows, err := l.Rows(ctx)
	if err != nil {
		return nil, err
	}
	for i := range rows {
		if rows[i].Team.ID == teamID {
			return &rows[i], nil
		}
	}
	return nil, fmt.Errorf("%w: team %d", storage.ErrNotFound, teamID)
}

// SnapshotRanks stores the current ranks as the baseline for later trends.
func (l *Leaderboard) SnapshotRanks(ctx context.Context) error {
	if l.ranks == nil {
		return nil
	}
	rows, err := l.compute(ctx, nil)
	if err != nil {
		return err
	}
	return l.ranks.SaveRanks(ctx, Ranks(rows))
}

type Stats struct {
	TotalTeams         int
	TotalChallenges    int
	TotalPointsAwarded int
	AverageTeamScore   int
	ActiveToday        int
	TopTeam            *Row
}

func (l *Leaderboard) Stats(ctx context.Context) (*Stats, error) {
	rows, err := l.compute(ctx, nil)
	if err != nil {
		return nil, err
	}
	challenges, err := l.challenges.GetAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("load challenges: %w", err)
	}

	// Today starts at local midnight of the server.
	now := l.now()
	y, m, d := now.Date()
	active, err := l.activities.ActiveTeamsSince(ctx, time.Date(y, m, d, 0, 0, 0, 0, now.Location()))
	if err != nil {
		return nil, fmt.Errorf("count active teams: %w", err)
	}

	stats := &Stats{TotalTeams: len(rows), TotalChallenges: len(challenges), ActiveToday: active}
	for _, r := range rows {
		stats.TotalPointsAwarded += r.TotalScore
	}
	if len(rows) > 0 {
		stats.AverageTeamScore = int(math.Round(float64(stats.TotalPointsAwarded) / float64(len(rows))))
		top := rows[0]
		stats.TopTeam = &top
	}
	return stats, nil
}
