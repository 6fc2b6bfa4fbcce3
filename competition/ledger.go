package competition

import (
	"context"
	"errors"
	"fmt"
	"github.com/Ahmedouyahya/Podium-de-concours/logging"
	"github.com/Ahmedouyahya/Podium-de-concours/storage"
	"sort"
	"sync"
)

type Award struct {
	TeamID      int
	ChallengeID *int
	Points      int
	BonusPoints int
	Comment     *string
}

type ScoreChange struct {
	Points      *int
	BonusPoints *int
	Comment     *string
}

type ScoreEntry struct {
	Score     *storage.Score
	Team      *storage.Team
	Challenge *storage.Challenge
}

// Ledger is the score write path. Writes hold the shared write lock so the
// rank baseline taken before a write matches the state that write started
// from, and a team cannot be deleted between its lookup and the insert.
type Ledger struct {
	mu         *sync.Mutex
	teams      storage.TeamStorage
	challenges storage.ChallengeStorage
	scores     storage.ScoreStorage
	board      *Leaderboard
	recorder   *Recorder
	notifier   Notifier
}

func NewLedger(repo *storage.Repository, board *Leaderboard, recorder *Recorder, notifier Notifier, writes *sync.Mutex) *Ledger {
	if notifier == nil {
		notifier = nopNotifier{}
	}
	if writes == nil {
		writes = new(sync.Mutex)
	}
	return &Ledger{
		mu:         writes,
		teams:      repo.Teams,
		challenges: repo.Challenges,
		scores:     repo.Scores,
		board:      board,
		recorder:   recorder,
		notifier:   notifier,
	}
}

func (l *Ledger) snapshot(ctx context.Context) {
	if err := l.board.SnapshotRanks(ctx); err != nil {
		logging.Log.Warnf("SCORE: could not save rank baseline: %v", err)
	}
}

// Award appends a score for an existing team. An unknown team or challenge
// fails with storage.ErrNotFound and leaves the ledger untouched. Points above
// the challenge maximum are accepted with a warning.
func (l *Ledger) Award(ctx context.Context, a Award) (*storage.Score, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	team, err := l.teams.Get(ctx, a.TeamID)
	if err != nil {
		return nil, err
	}
	if a.ChallengeID != nil {
		challenge, err := l.challenges.Get(ctx, *a.ChallengeID)
		if err != nil {
			return nil, err
		}
		if a.Points > challenge.MaxPoints {
			logging.Log.Warnf("SCORE: %d points for %q exceed max_points %d of challenge %q",
				a.Points, team.Name, challenge.MaxPoints, challenge.Name)
		}
	}

	l.snapshot(ctx)

	score := &storage.Score{
		TeamID:      team.ID,
		ChallengeID: a.ChallengeID,
		Points:      a.Points,
		BonusPoints: a.BonusPoints,
		Comment:     a.Comment,
	}
	if err := l.scores.Create(ctx, score); err != nil {
		logging.Log.Errorf("SCORE: failed to create score for team %d: %v", team.ID, err)
		return nil, err
	}

	total := score.Total()
	scoreMutations.WithLabelValues("added").Inc()
	if total > 0 {
		pointsAwarded.Add(float64(total))
	}
	l.recorder.Record(ctx, storage.ActivityScoreAdded, &team.ID, total, "%s a gagné %d points!", team.Name, total)
	l.notifier.Notify(EventLeaderboardUpdated)

	logging.Log.Infof("SCORE: team %q awarded %d (+%d bonus)", team.Name, score.Points, score.BonusPoints)
	return score, nil
}

func (l *Ledger) Update(ctx context.Context, id int, change ScoreChange) (*storage.Score, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	score, err := l.scores.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	before := score.Total()
	if change.Points != nil {
		score.Points = *change.Points
	}
	if change.BonusPoints != nil {
		score.BonusPoints = *change.BonusPoints
	}
	if change.Comment != nil {
		score.Comment = change.Comment
	}

	l.snapshot(ctx)
	if err := l.scores.Update(ctx, score); err != nil {
		return nil, err
	}
	scoreMutations.WithLabelValues("updated").Inc()

	delta := score.Total() - before
	name := l.teamName(ctx, score.TeamID)
	l.recorder.Record(ctx, storage.ActivityScoreUpdated, &score.TeamID, delta, "Score de %s modifié (%+d points)", name, delta)
	l.notifier.Notify(EventLeaderboardUpdated)
	return score, nil
}

func (l *Ledger) Delete(ctx context.Context, id int) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	score, err := l.scores.Get(ctx, id)
	if err != nil {
		return err
	}
	l.snapshot(ctx)
	if err := l.scores.Delete(ctx, id); err != nil {
		return err
	}
	scoreMutations.WithLabelValues("deleted").Inc()

	removed := -score.Total()
	name := l.teamName(ctx, score.TeamID)
	l.recorder.Record(ctx, storage.ActivityScoreDeleted, &score.TeamID, removed, "Score de %s supprimé (%+d points)", name, removed)
	l.notifier.Notify(EventLeaderboardUpdated)
	return nil
}

func (l *Ledger) teamName(ctx context.Context, teamID int) string {
	team, err := l.teams.Get(ctx, teamID)
	if err != nil {
		return fmt.Sprintf("l'équipe #%d", teamID)
	}
	return team.Name
}

// List returns every score newest first with its team and challenge.
func (l *Ledger) List(ctx context.Context) ([]ScoreEntry, error) {
	scores, err := l.scores.GetAll(ctx)
	if err != nil {
		return nil, err
	}
	return l.entries(ctx, scores)
}

func (l *Ledger) ListByTeam(ctx context.Context, teamID int) ([]ScoreEntry, error) {
	if _, err := l.teams.Get(ctx, teamID); err != nil {
		return nil, err
	}
	scores, err := l.scores.ListByTeam(ctx, teamID)
	if err != nil {
		return nil, err
	}
	return l.entries(ctx, scores)
}

func (l *Ledger) entries(ctx context.Context, scores []*storage.Score) ([]ScoreEntry, error) {
	teams, err := teamIndex(ctx, l.teams)
	if err != nil {
		return nil, err
	}
	challenges, err := l.challenges.GetAll(ctx)
	if err != nil && !errors.Is(err, storage.ErrNotFound) {
		return nil, fmt.Errorf("load challenges: %w", err)
	}
	byID := make(map[int]*storage.Challenge, len(challenges))
	for _, c := range challenges {
		byID[c.ID] = c
	}

	sort.SliceStable(scores, func(i, j int) bool {
		if !scores[i].AwardedAt.Equal(scores[j].AwardedAt) {
			return scores[i].AwardedAt.After(scores[j].AwardedAt)
		}
		return scores[i].ID > scores[j].ID
	})
	out := make([]ScoreEntry, 0, len(scores))
	for _, s := range scores {
		entry := ScoreEntry{Score: s, Team: teams[s.TeamID]}
		if s.ChallengeID != nil {
			entry.Challenge = byID[*s.ChallengeID]
		}
		out = append(out, entry)
	}
	return out, nil
}
