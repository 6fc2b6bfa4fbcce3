package controllers

import (
	"context"
	testutils "github.com/Ahmedouyahya/Podium-de-concours/api/controllers/testing"
	"github.com/Ahmedouyahya/Podium-de-concours/api/models"
	"github.com/Ahmedouyahya/Podium-de-concours/storage"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"net/http"
	"strconv"
	"testing"
)

func TestCreateTeam(t *testing.T) {
	env := newTestEnv(t)

	t.Run("Happy path - creator becomes leader", func(t *testing.T) {
		res := testutils.PerformRequest(env.router, http.MethodPost, "/api/teams", models.TeamCreateRequest{
			Name: "Syntax Errors",
		}, testutils.Bearer(env.token(t, env.outsider)))
		require.Equal(t, http.StatusCreated, res.Code, res.Body.String())

		var team models.TeamResponse
		_, err := testutils.Decode(res, &team)
		require.NoError(t, err)
		assert.Equal(t, "Syntax Errors", team.Name)
		assert.Equal(t, "#6366f1", team.Color)
		assert.Equal(t, 1, team.MemberCount)
		require.NotNil(t, team.LeaderID)
		assert.Equal(t, env.outsider.ID, *team.LeaderID)

		creator, err := env.repo.Users.Get(context.Background(), env.outsider.ID)
		require.NoError(t, err)
		assert.Equal(t, storage.RoleLeader, creator.Role)
		require.NotNil(t, creator.TeamID)
		assert.Equal(t, team.ID, *creator.TeamID)
	})

	t.Run("Unhappy path - name clash ignores case", func(t *testing.T) {
		res := testutils.PerformRequest(env.router, http.MethodPost, "/api/teams", models.TeamCreateRequest{
			Name: "max",
		}, testutils.Bearer(env.token(t, env.admin)))
		assert.Equal(t, http.StatusConflict, res.Code)
	})

	t.Run("Unhappy path - caller already has a team", func(t *testing.T) {
		res := testutils.PerformRequest(env.router, http.MethodPost, "/api/teams", models.TeamCreateRequest{
			Name: "Breakaway",
		}, testutils.Bearer(env.token(t, env.member)))
		assert.Equal(t, http.StatusBadRequest, res.Code)
	})

	t.Run("Unhappy path - empty name", func(t *testing.T) {
		res := testutils.PerformRequest(env.router, http.MethodPost, "/api/teams", models.TeamCreateRequest{
			Name: "  ",
		}, testutils.Bearer(env.token(t, env.admin)))
		assert.Equal(t, http.StatusBadRequest, res.Code)
	})

	t.Run("Unhappy path - anonymous", func(t *testing.T) {
		res := testutils.PerformRequest(env.router, http.MethodPost, "/api/teams", models.TeamCreateRequest{Name: "Anon"}, nil)
		assert.Equal(t, http.StatusUnauthorized, res.Code)
	})
}

func TestGetTeams(t *testing.T) {
	env := newTestEnv(t)

	t.Run("Happy path - list carries standings", func(t *testing.T) {
		res := testutils.PerformRequest(env.router, http.MethodGet, "/api/teams", nil, nil)
		require.Equal(t, http.StatusOK, res.Code)
		var rows []models.LeaderboardRowResponse
		_, err := testutils.Decode(res, &rows)
		require.NoError(t, err)
		require.Len(t, rows, 1)
		assert.Equal(t, 1, rows[0].Rank)
		assert.Equal(t, 2, rows[0].MemberCount)
		assert.Equal(t, "stable", rows[0].Trend)
	})

	t.Run("Happy path - single team", func(t *testing.T) {
		res := testutils.PerformRequest(env.router, http.MethodGet, "/api/teams/"+strconv.Itoa(env.team.ID), nil, nil)
		require.Equal(t, http.StatusOK, res.Code)
	})

	t.Run("Unhappy path - unknown team", func(t *testing.T) {
		res := testutils.PerformRequest(env.router, http.MethodGet, "/api/teams/404", nil, nil)
		assert.Equal(t, http.StatusNotFound, res.Code)
	})

	t.Run("Unhappy path - unknown route", func(t *testing.T) {
		res := testutils.PerformRequest(env.router, http.MethodGet, "/api/nowhere", nil, nil)
		assert.Equal(t, http.StatusNotFound, res.Code)
		envelope, err := testutils.Decode(res, nil)
		require.NoError(t, err)
		assert.False(t, envelope.Success)
	})
}

func TestUpdateTeam(t *testing.T) {
	env := newTestEnv(t)
	path := "/api/teams/" + strconv.Itoa(env.team.ID)

	t.Run("Happy path - leader renames", func(t *testing.T) {
		res := testutils.PerformRequest(env.router, http.MethodPut, path, models.TeamUpdateRequest{
			Name: strPtr("Max Power"), Color: strPtr("#000000"),
		}, testutils.Bearer(env.token(t, env.leader)))
		require.Equal(t, http.StatusOK, res.Code, res.Body.String())

		var team models.TeamResponse
		_, err := testutils.Decode(res, &team)
		require.NoError(t, err)
		assert.Equal(t, "Max Power", team.Name)
		assert.Equal(t, "#000000", team.Color)
	})

	t.Run("Unhappy path - plain member", func(t *testing.T) {
		res := testutils.PerformRequest(env.router, http.MethodPut, path, models.TeamUpdateRequest{
			Name: strPtr("Mutiny"),
		}, testutils.Bearer(env.token(t, env.member)))
		assert.Equal(t, http.StatusForbidden, res.Code)
	})

	t.Run("Unhappy path - leader cannot hand over leadership", func(t *testing.T) {
		res := testutils.PerformRequest(env.router, http.MethodPut, path, models.TeamUpdateRequest{
			LeaderID: &env.member.ID,
		}, testutils.Bearer(env.token(t, env.leader)))
		assert.Equal(t, http.StatusForbidden, res.Code)
	})

	t.Run("Happy path - admin moves leadership", func(t *testing.T) {
		res := testutils.PerformRequest(env.router, http.MethodPut, path, models.TeamUpdateRequest{
			LeaderID: &env.member.ID,
		}, testutils.Bearer(env.token(t, env.admin)))
		require.Equal(t, http.StatusOK, res.Code, res.Body.String())

		ctx := context.Background()
		previous, err := env.repo.Users.Get(ctx, env.leader.ID)
		require.NoError(t, err)
		assert.Equal(t, storage.RoleParticipant, previous.Role)
		next, err := env.repo.Users.Get(ctx, env.member.ID)
		require.NoError(t, err)
		assert.Equal(t, storage.RoleLeader, next.Role)
	})

	t.Run("Unhappy path - rename onto another team", func(t *testing.T) {
		env.addTeam(t, "Byte Me")
		res := testutils.PerformRequest(env.router, http.MethodPut, path, models.TeamUpdateRequest{
			Name: strPtr("BYTE ME"),
		}, testutils.Bearer(env.token(t, env.admin)))
		assert.Equal(t, http.StatusConflict, res.Code)
	})
}

func TestDeleteTeam(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	path := "/api/teams/" + strconv.Itoa(env.team.ID)
	_, err := env.services.Ledger.Award(ctx, awardFor(env.team.ID, 10, 0))
	require.NoError(t, err)

	t.Run("Unhappy path - leader", func(t *testing.T) {
		res := testutils.PerformRequest(env.router, http.MethodDelete, path, nil, testutils.Bearer(env.token(t, env.leader)))
		assert.Equal(t, http.StatusForbidden, res.Code)
	})

	t.Run("Happy path - admin deletes and members are detached", func(t *testing.T) {
		res := testutils.PerformRequest(env.router, http.MethodDelete, path, nil, testutils.Bearer(env.token(t, env.admin)))
		require.Equal(t, http.StatusOK, res.Code, res.Body.String())

		leader, err := env.repo.Users.Get(ctx, env.leader.ID)
		require.NoError(t, err)
		assert.Nil(t, leader.TeamID)
		assert.Equal(t, storage.RoleParticipant, leader.Role)

		scores, err := env.repo.Scores.GetAll(ctx)
		require.NoError(t, err)
		assert.Empty(t, scores)
	})

	t.Run("Unhappy path - already gone", func(t *testing.T) {
		res := testutils.PerformRequest(env.router, http.MethodDelete, path, nil, testutils.Bearer(env.token(t, env.admin)))
		assert.Equal(t, http.StatusNotFound, res.Code)
	})
}

func TestTeamMembers(t *testing.T) {
	env := newTestEnv(t)
	path := "/api/teams/" + strconv.Itoa(env.team.ID) + "/members"

	t.Run("Happy path - list flags the leader", func(t *testing.T) {
		res := testutils.PerformRequest(env.router, http.MethodGet, path, nil, nil)
		require.Equal(t, http.StatusOK, res.Code)
		var members []models.MemberResponse
		_, err := testutils.Decode(res, &members)
		require.NoError(t, err)
		require.Len(t, members, 2)
		for _, m := range members {
			assert.Equal(t, m.ID == env.leader.ID, m.IsLeader)
		}
	})

	members := func(t *testing.T, token string) []models.MemberResponse {
		t.Helper()
		var headers map[string]string
		if token != "" {
			headers = testutils.Bearer(token)
		}
		res := testutils.PerformRequest(env.router, http.MethodGet, path, nil, headers)
		require.Equal(t, http.StatusOK, res.Code)
		var out []models.MemberResponse
		_, err := testutils.Decode(res, &out)
		require.NoError(t, err)
		require.Len(t, out, 2)
		return out
	}

	t.Run("Happy path - anonymous and outsiders do not see emails", func(t *testing.T) {
		for _, m := range members(t, "") {
			assert.Empty(t, m.Email)
		}
		for _, m := range members(t, env.token(t, env.outsider)) {
			assert.Empty(t, m.Email)
		}
	})

	t.Run("Happy path - teammates and admins see emails", func(t *testing.T) {
		for _, m := range members(t, env.token(t, env.member)) {
			assert.Equal(t, m.Username+"@podium.test", m.Email)
		}
		for _, m := range members(t, env.token(t, env.admin)) {
			assert.Equal(t, m.Username+"@podium.test", m.Email)
		}
	})

	t.Run("Happy path - invalid token is treated as anonymous", func(t *testing.T) {
		for _, m := range members(t, "not-a-token") {
			assert.Empty(t, m.Email)
		}
	})

	t.Run("Happy path - leader adds a participant", func(t *testing.T) {
		res := testutils.PerformRequest(env.router, http.MethodPost, path, models.MemberCreateRequest{
			Username: "sarah", Email: "sarah@podium.test", Password: "pass123",
		}, testutils.Bearer(env.token(t, env.leader)))
		require.Equal(t, http.StatusCreated, res.Code, res.Body.String())

		team, err := env.repo.Teams.Get(context.Background(), env.team.ID)
		require.NoError(t, err)
		assert.Equal(t, 3, team.MemberCount)
	})

	t.Run("Unhappy path - member cannot add", func(t *testing.T) {
		res := testutils.PerformRequest(env.router, http.MethodPost, path, models.MemberCreateRequest{
			Username: "eve", Email: "eve@podium.test", Password: "pass123",
		}, testutils.Bearer(env.token(t, env.member)))
		assert.Equal(t, http.StatusForbidden, res.Code)
	})

	t.Run("Unhappy path - leader cannot be removed", func(t *testing.T) {
		res := testutils.PerformRequest(env.router, http.MethodDelete, path+"/"+strconv.Itoa(env.leader.ID), nil,
			testutils.Bearer(env.token(t, env.admin)))
		assert.Equal(t, http.StatusBadRequest, res.Code)
	})

	t.Run("Happy path - remove detaches the member", func(t *testing.T) {
		res := testutils.PerformRequest(env.router, http.MethodDelete, path+"/"+strconv.Itoa(env.member.ID), nil,
			testutils.Bearer(env.token(t, env.leader)))
		require.Equal(t, http.StatusOK, res.Code, res.Body.String())

		user, err := env.repo.Users.Get(context.Background(), env.member.ID)
		require.NoError(t, err)
		assert.Nil(t, user.TeamID)
	})

	t.Run("Unhappy path - user outside the team", func(t *testing.T) {
		res := testutils.PerformRequest(env.router, http.MethodDelete, path+"/"+strconv.Itoa(env.outsider.ID), nil,
			testutils.Bearer(env.token(t, env.leader)))
		assert.Equal(t, http.StatusNotFound, res.Code)
	})
}
