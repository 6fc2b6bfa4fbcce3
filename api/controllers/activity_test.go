package controllers

import (
	"context"
	"fmt"
	testutils "github.com/Ahmedouyahya/Podium-de-concours/api/controllers/testing"
	"github.com/Ahmedouyahya/Podium-de-concours/api/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"net/http"
	"testing"
)

func TestActivity(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	byteMe := env.addTeam(t, "Byte Me")

	for i := 0; i < 3; i++ {
		_, err := env.services.Ledger.Award(ctx, awardFor(env.team.ID, 30, 0))
		require.NoError(t, err)
	}
	_, err := env.services.Ledger.Award(ctx, awardFor(byteMe.ID, 15, 0))
	require.NoError(t, err)

	t.Run("Happy path - feed newest first", func(t *testing.T) {
		res := testutils.PerformRequest(env.router, http.MethodGet, "/api/activity", nil, nil)
		require.Equal(t, http.StatusOK, res.Code)
		var feed []models.ActivityResponse
		_, err := testutils.Decode(res, &feed)
		require.NoError(t, err)
		require.Len(t, feed, 4)
		assert.Equal(t, "score_added", feed[0].ActionType)
		assert.Equal(t, 15, feed[0].PointsChange)
		require.NotNil(t, feed[0].TeamName)
		assert.Equal(t, "Byte Me", *feed[0].TeamName)
	})

	t.Run("Happy path - limit", func(t *testing.T) {
		res := testutils.PerformRequest(env.router, http.MethodGet, "/api/activity?limit=2", nil, nil)
		var feed []models.ActivityResponse
		_, err := testutils.Decode(res, &feed)
		require.NoError(t, err)
		assert.Len(t, feed, 2)
	})

	t.Run("Unhappy path - bad limit", func(t *testing.T) {
		res := testutils.PerformRequest(env.router, http.MethodGet, "/api/activity?limit=lots", nil, nil)
		assert.Equal(t, http.StatusBadRequest, res.Code)
	})

	t.Run("Happy path - team feed only holds that team's entries", func(t *testing.T) {
		res := testutils.PerformRequest(env.router, http.MethodGet, fmt.Sprintf("/api/activity/team/%d", env.team.ID), nil, nil)
		require.Equal(t, http.StatusOK, res.Code)
		var feed []models.ActivityResponse
		_, err := testutils.Decode(res, &feed)
		require.NoError(t, err)
		require.Len(t, feed, 3)
		for _, entry := range feed {
			require.NotNil(t, entry.TeamID)
			assert.Equal(t, env.team.ID, *entry.TeamID)
			assert.Equal(t, 30, entry.PointsChange)
		}
		assert.Greater(t, feed[0].ID, feed[2].ID)
	})

	t.Run("Happy path - team feed limit", func(t *testing.T) {
		res := testutils.PerformRequest(env.router, http.MethodGet, fmt.Sprintf("/api/activity/team/%d?limit=1", env.team.ID), nil, nil)
		var feed []models.ActivityResponse
		_, err := testutils.Decode(res, &feed)
		require.NoError(t, err)
		assert.Len(t, feed, 1)
	})

	t.Run("Unhappy path - team feed of an unknown team", func(t *testing.T) {
		res := testutils.PerformRequest(env.router, http.MethodGet, "/api/activity/team/999", nil, nil)
		assert.Equal(t, http.StatusNotFound, res.Code)
	})

	t.Run("Unhappy path - team feed with a bad id", func(t *testing.T) {
		res := testutils.PerformRequest(env.router, http.MethodGet, "/api/activity/team/max", nil, nil)
		assert.Equal(t, http.StatusBadRequest, res.Code)
	})

	t.Run("Happy path - stats", func(t *testing.T) {
		res := testutils.PerformRequest(env.router, http.MethodGet, "/api/activity/stats", nil, nil)
		require.Equal(t, http.StatusOK, res.Code)
		var stats models.StatsResponse
		_, err := testutils.Decode(res, &stats)
		require.NoError(t, err)
		assert.Equal(t, 2, stats.TotalTeams)
		assert.Equal(t, 1, stats.TotalChallenges)
		assert.Equal(t, 105, stats.TotalPointsAwarded)
		assert.Equal(t, 53, stats.AverageTeamScore)
		assert.Equal(t, 2, stats.ActiveToday)
		require.NotNil(t, stats.TopTeam)
		assert.Equal(t, "Max", stats.TopTeam.Name)
		assert.Equal(t, 90, stats.TopTeam.TotalScore)
	})
}

func TestStatsWithoutTeams(t *testing.T) {
	env := newTestEnv(t)
	admin := testutils.Bearer(env.token(t, env.admin))
	res := testutils.PerformRequest(env.router, http.MethodDelete, "/api/teams/1", nil, admin)
	require.Equal(t, http.StatusOK, res.Code, res.Body.String())

	t.Run("Happy path - no top team", func(t *testing.T) {
		res := testutils.PerformRequest(env.router, http.MethodGet, "/api/activity/stats", nil, nil)
		var stats models.StatsResponse
		_, err := testutils.Decode(res, &stats)
		require.NoError(t, err)
		assert.Equal(t, 0, stats.TotalTeams)
		assert.Equal(t, 0, stats.ActiveToday)
		assert.Nil(t, stats.TopTeam)
	})

	t.Run("Happy path - empty leaderboard is a list", func(t *testing.T) {
		res := testutils.PerformRequest(env.router, http.MethodGet, "/api/scores/leaderboard", nil, nil)
		require.Equal(t, http.StatusOK, res.Code)
		assert.JSONEq(t, `{"success":true,"data":[]}`, res.Body.String())
	})
}
