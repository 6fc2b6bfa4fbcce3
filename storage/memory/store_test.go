package memory

import (
	"context"
	"errors"
	"github.com/Ahmedouyahya/Podium-de-concours/storage"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"sync"
	"testing"
	"time"
)

func intPtr(v int) *int { return &v }

func TestTeamStore(t *testing.T) {
	ctx := context.Background()

	t.Run("Happy path - create assigns ids and get returns a copy", func(t *testing.T) {
		repo := NewStore().Repository()
		team := &storage.Team{Name: "Max", Color: "#6366f1"}
		require.NoError(t, repo.Teams.Create(ctx, team))
		assert.Equal(t, 1, team.ID)
		assert.False(t, team.CreatedAt.IsZero())

		got, err := repo.Teams.Get(ctx, team.ID)
		require.NoError(t, err)
		got.Name = "changed"

		again, err := repo.Teams.Get(ctx, team.ID)
		require.NoError(t, err)
		assert.Equal(t, "Max", again.Name)
	})

	t.Run("Unhappy path - duplicate name differing only in case", func(t *testing.T) {
		repo := NewStore().Repository()
		require.NoError(t, repo.Teams.Create(ctx, &storage.Team{Name: "Byte Me"}))
		err := repo.Teams.Create(ctx, &storage.Team{Name: "  byte me"})
		assert.ErrorIs(t, err, storage.ErrAlreadyExists)
	})

	t.Run("Unhappy path - rename onto another team's name", func(t *testing.T) {
		repo := NewStore().Repository()
		a := &storage.Team{Name: "A"}
		b := &storage.Team{Name: "B"}
		require.NoError(t, repo.Teams.Create(ctx, a))
		require.NoError(t, repo.Teams.Create(ctx, b))
		b.Name = "a"
		assert.ErrorIs(t, repo.Teams.Update(ctx, b), storage.ErrAlreadyExists)

		a.Name = "a"
		assert.NoError(t, repo.Teams.Update(ctx, a))
	})

	t.Run("Unhappy path - missing team", func(t *testing.T) {
		repo := NewStore().Repository()
		_, err := repo.Teams.Get(ctx, 42)
		assert.ErrorIs(t, err, storage.ErrNotFound)
		assert.ErrorIs(t, repo.Teams.Delete(ctx, 42), storage.ErrNotFound)
		assert.ErrorIs(t, repo.Teams.Update(ctx, &storage.Team{ID: 42, Name: "x"}), storage.ErrNotFound)
	})
}

func TestUserStore(t *testing.T) {
	ctx := context.Background()
	repo := NewStore().Repository()

	alice := &storage.User{Username: "alice", Email: "alice@example.com", Role: storage.RoleParticipant, TeamID: intPtr(1)}
	require.NoError(t, repo.Users.Create(ctx, alice))
	bob := &storage.User{Username: "bob", Email: "bob@example.com", Role: storage.RoleLeader, TeamID: intPtr(2)}
	require.NoError(t, repo.Users.Create(ctx, bob))

	t.Run("Happy path - login by username or email", func(t *testing.T) {
		u, err := repo.Users.GetByLogin(ctx, "alice")
		require.NoError(t, err)
		assert.Equal(t, alice.ID, u.ID)

		u, err = repo.Users.GetByLogin(ctx, "BOB@example.com")
		require.NoError(t, err)
		assert.Equal(t, bob.ID, u.ID)
	})

	t.Run("Happy path - list by team", func(t *testing.T) {
		users, err := repo.Users.ListByTeam(ctx, 1)
		require.NoError(t, err)
		require.Len(t, users, 1)
		assert.Equal(t, "alice", users[0].Username)
	})

	t.Run("Unhappy path - duplicate username or email", func(t *testing.T) {
		err := repo.Users.Create(ctx, &storage.User{Username: "alice", Email: "other@example.com"})
		assert.ErrorIs(t, err, storage.ErrAlreadyExists)
		err = repo.Users.Create(ctx, &storage.User{Username: "carol", Email: "Alice@example.com"})
		assert.ErrorIs(t, err, storage.ErrAlreadyExists)
	})
}

func TestScoreAndSubmissionStore(t *testing.T) {
	ctx := context.Background()
	repo := NewStore().Repository()

	require.NoError(t, repo.Scores.Create(ctx, &storage.Score{TeamID: 1, Points: 10}))
	require.NoError(t, repo.Scores.Create(ctx, &storage.Score{TeamID: 2, Points: 20, ChallengeID: intPtr(3)}))
	require.NoError(t, repo.Scores.Create(ctx, &storage.Score{TeamID: 1, Points: 30}))

	t.Run("Happy path - list by team and delete by team", func(t *testing.T) {
		scores, err := repo.Scores.ListByTeam(ctx, 1)
		require.NoError(t, err)
		assert.Len(t, scores, 2)

		require.NoError(t, repo.Scores.DeleteByTeam(ctx, 1))
		all, err := repo.Scores.GetAll(ctx)
		require.NoError(t, err)
		require.Len(t, all, 1)
		assert.Equal(t, 2, all[0].TeamID)
	})

	t.Run("Happy path - submissions filtered newest first", func(t *testing.T) {
		for i := 0; i < 3; i++ {
			require.NoError(t, repo.Submissions.Create(ctx, &storage.Submission{TeamID: 1 + i%2, ChallengeID: 7, Title: "s"}))
		}
		subs, err := repo.Submissions.List(ctx, storage.SubmissionFilter{TeamID: intPtr(1)})
		require.NoError(t, err)
		require.Len(t, subs, 2)
		assert.Greater(t, subs[0].ID, subs[1].ID)
		assert.Equal(t, storage.SubmissionPending, subs[0].Status)
	})
}

func TestActivityStore(t *testing.T) {
	ctx := context.Background()
	repo := NewStore().Repository()
	for i := 0; i < 10; i++ {
		require.NoError(t, repo.Activities.Create(ctx, &storage.Activity{Kind: storage.ActivityScoreAdded, PointsChange: i}))
	}

	t.Run("Happy path - newest first with limit", func(t *testing.T) {
		list, err := repo.Activities.List(ctx, 3)
		require.NoError(t, err)
		require.Len(t, list, 3)
		assert.Equal(t, 9, list[0].PointsChange)
		assert.Equal(t, 7, list[2].PointsChange)
	})

	t.Run("Happy path - prune keeps the newest entries", func(t *testing.T) {
		removed, err := repo.Activities.Prune(ctx, 4)
		require.NoError(t, err)
		assert.Equal(t, 6, removed)

		list, err := repo.Activities.List(ctx, 0)
		require.NoError(t, err)
		require.Len(t, list, 4)
		assert.Equal(t, 6, list[3].PointsChange)

		removed, err = repo.Activities.Prune(ctx, 4)
		require.NoError(t, err)
		assert.Zero(t, removed)
	})
}

func TestActivityByTeam(t *testing.T) {
	ctx := context.Background()
	s := NewStore()
	clock := time.Date(2024, 5, 1, 23, 0, 0, 0, time.UTC)
	s.now = func() time.Time { return clock }
	repo := s.Repository()

	add := func(teamID *int, points int) {
		require.NoError(t, repo.Activities.Create(ctx, &storage.Activity{TeamID: teamID, Kind: storage.ActivityScoreAdded, PointsChange: points}))
	}
	add(intPtr(1), 10)
	add(intPtr(2), 20)
	clock = clock.Add(2 * time.Hour)
	add(intPtr(1), 30)
	add(nil, 0)
	add(intPtr(1), 40)
	add(intPtr(3), 50)

	t.Run("Happy path - team entries newest first with limit", func(t *testing.T) {
		list, err := repo.Activities.ListByTeam(ctx, 1, 2)
		require.NoError(t, err)
		require.Len(t, list, 2)
		assert.Equal(t, 40, list[0].PointsChange)
		assert.Equal(t, 30, list[1].PointsChange)

		all, err := repo.Activities.ListByTeam(ctx, 1, 0)
		require.NoError(t, err)
		assert.Len(t, all, 3)
	})

	t.Run("Happy path - unknown team has no entries", func(t *testing.T) {
		list, err := repo.Activities.ListByTeam(ctx, 99, 10)
		require.NoError(t, err)
		assert.Empty(t, list)
	})

	t.Run("Happy path - active teams counts distinct teams since a moment", func(t *testing.T) {
		n, err := repo.Activities.ActiveTeamsSince(ctx, time.Date(2024, 5, 2, 0, 0, 0, 0, time.UTC))
		require.NoError(t, err)
		assert.Equal(t, 2, n)

		n, err = repo.Activities.ActiveTeamsSince(ctx, time.Time{})
		require.NoError(t, err)
		assert.Equal(t, 3, n)
	})
}

func TestStoreLoadKeepsCountersAhead(t *testing.T) {
	ctx := context.Background()
	s := NewStore()
	s.Load(Dataset{Teams: []*storage.Team{{ID: 7, Name: "Seven"}}})

	team := &storage.Team{Name: "Eight"}
	require.NoError(t, s.Repository().Teams.Create(ctx, team))
	assert.Equal(t, 8, team.ID)
	assert.Equal(t, 8, s.Snapshot().Counters["teams"])
}

func TestStoreConcurrentWrites(t *testing.T) {
	ctx := context.Background()
	repo := NewStore().Repository()

	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_ = repo.Scores.Create(ctx, &storage.Score{TeamID: 1, Points: 1})
		}()
	}
	wg.Wait()

	scores, err := repo.Scores.GetAll(ctx)
	require.NoError(t, err)
	assert.Len(t, scores, 50)
	seen := map[int]bool{}
	for _, s := range scores {
		assert.False(t, seen[s.ID])
		seen[s.ID] = true
	}
}

func TestRankStore(t *testing.T) {
	ctx := context.Background()
	r := NewRankStore()
	ranks, err := r.LoadRanks(ctx)
	require.NoError(t, err)
	assert.Empty(t, ranks)

	in := map[int]int{1: 2, 2: 1}
	require.NoError(t, r.SaveRanks(ctx, in))
	in[1] = 99

	ranks, err = r.LoadRanks(ctx)
	require.NoError(t, err)
	assert.Equal(t, map[int]int{1: 2, 2: 1}, ranks)
}

func TestSeed(t *testing.T) {
	ctx := context.Background()
	repo := NewStore().Repository()
	hash := func(p string) (string, error) { return "h:" + p, nil }

	require.NoError(t, storage.Seed(ctx, repo, hash))
	require.NoError(t, storage.Seed(ctx, repo, hash))

	teams, err := repo.Teams.GetAll(ctx)
	require.NoError(t, err)
	require.Len(t, teams, 5)
	assert.Equal(t, "Max", teams[0].Name)
	assert.Equal(t, 4, teams[0].MemberCount)
	require.NotNil(t, teams[0].LeaderID)

	leader, err := repo.Users.Get(ctx, *teams[0].LeaderID)
	require.NoError(t, err)
	assert.Equal(t, "max_leader", leader.Username)
	assert.Equal(t, "h:leader123", leader.PasswordHash)

	scores, err := repo.Scores.GetAll(ctx)
	require.NoError(t, err)
	assert.Len(t, scores, 4)
}

func TestStoreMutationHook(t *testing.T) {
	ctx := context.Background()

	t.Run("Happy path - hook receives the dataset after each write", func(t *testing.T) {
		s := NewStore()
		var last Dataset
		s.OnMutation = func(d Dataset) error {
			last = d
			return nil
		}
		repo := s.Repository()
		require.NoError(t, repo.Teams.Create(ctx, &storage.Team{Name: "Max"}))
		require.Len(t, last.Teams, 1)
		assert.Equal(t, 1, last.Counters[counterTeams])
	})

	t.Run("Unhappy path - failed hook rolls the write back", func(t *testing.T) {
		s := NewStore()
		fail := false
		var persisted Dataset
		s.OnMutation = func(d Dataset) error {
			if fail {
				return errors.New("disk full")
			}
			persisted = d
			return nil
		}
		repo := s.Repository()
		maxTeam := &storage.Team{Name: "Max"}
		require.NoError(t, repo.Teams.Create(ctx, maxTeam))

		fail = true
		err := repo.Teams.Create(ctx, &storage.Team{Name: "Byte Me"})
		require.Error(t, err)
		err = repo.Scores.Create(ctx, &storage.Score{TeamID: maxTeam.ID, Points: 50})
		require.Error(t, err)

		teams, err := repo.Teams.GetAll(ctx)
		require.NoError(t, err)
		assert.Len(t, teams, 1)
		scores, err := repo.Scores.GetAll(ctx)
		require.NoError(t, err)
		assert.Empty(t, scores)

		fail = false
		other := &storage.Team{Name: "Debug Dynasty"}
		require.NoError(t, repo.Teams.Create(ctx, other))
		assert.Equal(t, 2, other.ID)
		require.Len(t, persisted.Teams, 2)
		assert.Equal(t, "Max", persisted.Teams[0].Name)
		assert.Equal(t, "Debug Dynasty", persisted.Teams[1].Name)
		assert.Empty(t, persisted.Scores)
	})
}
