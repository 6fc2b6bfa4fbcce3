package filestore

import (
	"context"
	"encoding/json"
	"github.com/Ahmedouyahya/Podium-de-concours/storage"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"os"
	"path/filepath"
	"testing"
)

func TestFileStore(t *testing.T) {
	ctx := context.Background()

	t.Run("Happy path - mutations survive a reopen", func(t *testing.T) {
		dir := t.TempDir()
		s, err := Open(dir)
		require.NoError(t, err)
		repo := s.Repository()
		assert.Equal(t, storage.ModeFile, repo.Mode)

		team := &storage.Team{Name: "Max", Color: "#6366f1"}
		require.NoError(t, repo.Teams.Create(ctx, team))
		require.NoError(t, repo.Scores.Create(ctx, &storage.Score{TeamID: team.ID, Points: 100, BonusPoints: 20}))

		reopened, err := Open(dir)
		require.NoError(t, err)
		teams, err := reopened.Repository().Teams.GetAll(ctx)
		require.NoError(t, err)
		require.Len(t, teams, 1)
		assert.Equal(t, "Max", teams[0].Name)

		second := &storage.Team{Name: "Byte Me"}
		require.NoError(t, reopened.Repository().Teams.Create(ctx, second))
		assert.Equal(t, 2, second.ID)
	})

	t.Run("Happy path - one file per collection plus counters", func(t *testing.T) {
		dir := t.TempDir()
		s, err := Open(dir)
		require.NoError(t, err)
		require.NoError(t, s.Repository().Challenges.Create(ctx, &storage.Challenge{Name: "API REST", MaxPoints: 200}))

		for _, name := range []string{teamsFile, usersFile, challengesFile, scoresFile, activityFile, submissionsFile, countersFile} {
			_, err := os.Stat(filepath.Join(dir, name))
			assert.NoError(t, err, name)
		}

		raw, err := os.ReadFile(filepath.Join(dir, countersFile))
		require.NoError(t, err)
		var counters map[string]int
		require.NoError(t, json.Unmarshal(raw, &counters))
		assert.Equal(t, 1, counters["challenges"])

		raw, err = os.ReadFile(filepath.Join(dir, teamsFile))
		require.NoError(t, err)
		assert.JSONEq(t, "[]", string(raw))
	})

	t.Run("Unhappy path - failed write is not kept in memory or on disk", func(t *testing.T) {
		dir := filepath.Join(t.TempDir(), "data")
		s, err := Open(dir)
		require.NoError(t, err)
		repo := s.Repository()
		require.NoError(t, repo.Teams.Create(ctx, &storage.Team{Name: "Max"}))

		require.NoError(t, os.RemoveAll(dir))
		require.NoError(t, os.WriteFile(dir, []byte("x"), 0o644))
		assert.Error(t, repo.Teams.Create(ctx, &storage.Team{Name: "Byte Me"}))

		teams, err := repo.Teams.GetAll(ctx)
		require.NoError(t, err)
		assert.Len(t, teams, 1)

		require.NoError(t, os.Remove(dir))
		require.NoError(t, os.MkdirAll(dir, 0o755))
		require.NoError(t, repo.Teams.Create(ctx, &storage.Team{Name: "Debug Dynasty"}))

		reopened, err := Open(dir)
		require.NoError(t, err)
		teams, err = reopened.Repository().Teams.GetAll(ctx)
		require.NoError(t, err)
		require.Len(t, teams, 2)
		assert.Equal(t, "Max", teams[0].Name)
		assert.Equal(t, "Debug Dynasty", teams[1].Name)
	})

	t.Run("Unhappy path - corrupt file fails to open", func(t *testing.T) {
		dir := t.TempDir()
		require.NoError(t, os.WriteFile(filepath.Join(dir, scoresFile), []byte("{not json"), 0o644))
		_, err := Open(dir)
		assert.Error(t, err)
	})
}
