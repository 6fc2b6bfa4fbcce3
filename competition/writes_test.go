package competition

import (
	"context"
	"errors"
	"github.com/Ahmedouyahya/Podium-de-concours/storage"
	"github.com/Ahmedouyahya/Podium-de-concours/storage/memory"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"testing"
	"time"
)

// interleavedScores runs beforeCreate once, right before the first insert.
type interleavedScores struct {
	storage.ScoreStorage
	beforeCreate func()
}

func (s *interleavedScores) Create(ctx context.Context, score *storage.Score) error {
	if hook := s.beforeCreate; hook != nil {
		s.beforeCreate = nil
		hook()
	}
	return s.ScoreStorage.Create(ctx, score)
}

type interleavedSubmissions struct {
	storage.SubmissionStorage
	beforeCreate func()
}

func (s *interleavedSubmissions) Create(ctx context.Context, sub *storage.Submission) error {
	if hook := s.beforeCreate; hook != nil {
		s.beforeCreate = nil
		hook()
	}
	return s.SubmissionStorage.Create(ctx, sub)
}

type brokenActivities struct {
	storage.ActivityStorage
}

func (brokenActivities) Create(context.Context, *storage.Activity) error {
	return errors.New("activity log unavailable")
}

var adminActor = Actor{ID: 1, Role: storage.RoleAdmin}

// deleteTeamDuring starts a team deletion from inside a write and checks it
// stays blocked until that write returns.
func deleteTeamDuring(t *testing.T, svc *Services, teamID int, deleted chan<- error) func() {
	return func() {
		done := make(chan error, 1)
		go func() {
			err := svc.Roster.DeleteTeam(context.Background(), adminActor, teamID)
			done <- err
			deleted <- err
		}()
		assert.Never(t, func() bool { return len(done) > 0 }, 100*time.Millisecond, 10*time.Millisecond,
			"team deletion finished while a write for the team was in flight")
	}
}

func TestWritesAgainstTeamDeletion(t *testing.T) {
	ctx := context.Background()

	t.Run("Happy path - deletion waits for an award and removes its score", func(t *testing.T) {
		repo := memory.NewStore().Repository()
		scores := &interleavedScores{ScoreStorage: repo.Scores}
		repo.Scores = scores
		svc := NewServices(repo, nil)

		team := &storage.Team{Name: "Max"}
		require.NoError(t, repo.Teams.Create(ctx, team))

		deleted := make(chan error, 1)
		scores.beforeCreate = deleteTeamDuring(t, svc, team.ID, deleted)

		_, err := svc.Ledger.Award(ctx, Award{TeamID: team.ID, Points: 50})
		require.NoError(t, err)
		require.NoError(t, <-deleted)

		left, err := repo.Scores.ListByTeam(ctx, team.ID)
		require.NoError(t, err)
		assert.Empty(t, left)
		_, err = repo.Teams.Get(ctx, team.ID)
		assert.ErrorIs(t, err, storage.ErrNotFound)

		rows, err := svc.Leaderboard.Rows(ctx)
		require.NoError(t, err)
		assert.Empty(t, rows)
	})

	t.Run("Happy path - deletion waits for a submission and removes it", func(t *testing.T) {
		repo := memory.NewStore().Repository()
		subs := &interleavedSubmissions{SubmissionStorage: repo.Submissions}
		repo.Submissions = subs
		svc := NewServices(repo, nil)

		team := &storage.Team{Name: "Max"}
		require.NoError(t, repo.Teams.Create(ctx, team))
		challenge := &storage.Challenge{Name: "Hello World", MaxPoints: 100, Difficulty: storage.DifficultyEasy}
		require.NoError(t, repo.Challenges.Create(ctx, challenge))

		deleted := make(chan error, 1)
		subs.beforeCreate = deleteTeamDuring(t, svc, team.ID, deleted)

		_, err := svc.Submissions.Create(ctx, adminActor, SubmissionInput{TeamID: &team.ID, ChallengeID: challenge.ID, Title: "Bonjour"})
		require.NoError(t, err)
		require.NoError(t, <-deleted)

		left, err := repo.Submissions.List(ctx, storage.SubmissionFilter{TeamID: &team.ID})
		require.NoError(t, err)
		assert.Empty(t, left)
	})
}

func TestWritesSurviveActivityFailure(t *testing.T) {
	ctx := context.Background()

	t.Run("Happy path - award is kept and announced when the activity log fails", func(t *testing.T) {
		repo := memory.NewStore().Repository()
		repo.Activities = brokenActivities{ActivityStorage: repo.Activities}
		n := &recordingNotifier{}
		svc := NewServices(repo, n)

		team := &storage.Team{Name: "Max"}
		require.NoError(t, repo.Teams.Create(ctx, team))

		score, err := svc.Ledger.Award(ctx, Award{TeamID: team.ID, Points: 100, BonusPoints: 20})
		require.NoError(t, err)
		require.NotNil(t, score)
		assert.Equal(t, []string{EventLeaderboardUpdated}, n.Events())

		stored, err := repo.Scores.Get(ctx, score.ID)
		require.NoError(t, err)
		assert.Equal(t, 120, stored.Total())

		_, err = svc.Ledger.Update(ctx, score.ID, ScoreChange{Points: intPtr(90)})
		require.NoError(t, err)
		require.NoError(t, svc.Ledger.Delete(ctx, score.ID))
		assert.Len(t, n.Events(), 3)
	})
}
