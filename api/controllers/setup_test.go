package controllers

import (
	"context"
	"github.com/Ahmedouyahya/Podium-de-concours/api/transport"
	"github.com/Ahmedouyahya/Podium-de-concours/auth"
	"github.com/Ahmedouyahya/Podium-de-concours/competition"
	"github.com/Ahmedouyahya/Podium-de-concours/storage"
	"github.com/Ahmedouyahya/Podium-de-concours/storage/memory"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
	"sync"
	"testing"
	"time"
)

const testPassword = "pass123"

var (
	hashOnce sync.Once
	testHash string
)

func passwordHash(t *testing.T) string {
	t.Helper()
	hashOnce.Do(func() {
		h, err := auth.HashPassword(testPassword)
		if err != nil {
			panic(err)
		}
		testHash = h
	})
	return testHash
}

type recorder struct {
	mu     sync.Mutex
	events []string
}

func (r *recorder) Notify(event string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.events = append(r.events, event)
}

func (r *recorder) Events() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]string(nil), r.events...)
}

// testEnv is a full router over the memory backend with one team ("Max")
// holding a leader and a member, an admin (id 1) and a user without team.
type testEnv struct {
	router   *gin.Engine
	repo     *storage.Repository
	services *competition.Services
	issuer   *auth.Issuer
	notifier *recorder

	admin, leader, member, outsider *storage.User
	team                            *storage.Team
	challenge                       *storage.Challenge
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	ctx := context.Background()

	repo := memory.NewStore().Repository()
	n := &recorder{}
	env := &testEnv{
		repo:     repo,
		services: competition.NewServices(repo, n),
		issuer:   auth.NewIssuer("test-secret", time.Hour),
		notifier: n,
	}

	env.admin = env.addUser(t, "admin", storage.RoleAdmin, nil)
	require.Equal(t, competition.PrimaryAdminID, env.admin.ID)

	env.team = &storage.Team{Name: "Max", Color: "#ef4444"}
	require.NoError(t, repo.Teams.Create(ctx, env.team))
	env.leader = env.addUser(t, "max_leader", storage.RoleLeader, &env.team.ID)
	env.member = env.addUser(t, "ahmed", storage.RoleParticipant, &env.team.ID)
	env.outsider = env.addUser(t, "lonely", storage.RoleParticipant, nil)
	env.team.LeaderID = &env.leader.ID
	env.team.MemberCount = 2
	require.NoError(t, repo.Teams.Update(ctx, env.team))

	env.challenge = &storage.Challenge{Name: "Hello World", MaxPoints: 100, Difficulty: storage.DifficultyEasy, Category: "basics"}
	require.NoError(t, repo.Challenges.Create(ctx, env.challenge))

	gin.SetMode(gin.TestMode)
	env.router = transport.NewRouter(transport.RouterOptions{GinMode: gin.TestMode})
	authn := transport.NewAuthenticator(env.issuer, repo.Users)
	svc := env.services

	NewHealthController("memory").RegisterRoutes(env.router)
	NewAuthController(svc.Accounts, svc.Leaderboard, env.issuer, authn, transport.NewRateLimiter(1000, 1000)).RegisterRoutes(env.router)
	NewUserController(svc.Accounts, authn).RegisterRoutes(env.router)
	NewTeamController(svc.Roster, svc.Leaderboard, authn).RegisterRoutes(env.router)
	NewScoreController(svc.Ledger, svc.Leaderboard, authn).RegisterRoutes(env.router)
	NewChallengeController(svc.Challenges, authn).RegisterRoutes(env.router)
	NewActivityController(svc.Recorder, svc.Leaderboard).RegisterRoutes(env.router)
	NewSubmissionController(svc.Submissions, authn).RegisterRoutes(env.router)

	return env
}

func (e *testEnv) addUser(t *testing.T, username string, role storage.Role, teamID *int) *storage.User {
	t.Helper()
	u := &storage.User{
		Username:     username,
		Email:        username + "@podium.test",
		PasswordHash: passwordHash(t),
		Role:         role,
		TeamID:       teamID,
	}
	require.NoError(t, e.repo.Users.Create(context.Background(), u))
	return u
}

func (e *testEnv) addTeam(t *testing.T, name string) *storage.Team {
	t.Helper()
	team := &storage.Team{Name: name, Color: competition.DefaultTeamColor}
	require.NoError(t, e.repo.Teams.Create(context.Background(), team))
	return team
}

func (e *testEnv) token(t *testing.T, u *storage.User) string {
	t.Helper()
	token, err := e.issuer.Issue(u)
	require.NoError(t, err)
	return token
}

func intPtr(v int) *int { return &v }

func strPtr(v string) *string { return &v }
