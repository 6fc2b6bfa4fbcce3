package competition

import (
	"context"
	"github.com/Ahmedouyahya/Podium-de-concours/auth"
	"github.com/Ahmedouyahya/Podium-de-concours/storage"
	"github.com/Ahmedouyahya/Podium-de-concours/storage/memory"
	"github.com/stretchr/testify/require"
	"sync"
	"testing"
)

type recordingNotifier struct {
	mu     sync.Mutex
	events []string
}

func (n *recordingNotifier) Notify(event string) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.events = append(n.events, event)
}

func (n *recordingNotifier) Events() []string {
	n.mu.Lock()
	defer n.mu.Unlock()
	return append([]string(nil), n.events...)
}

type fixture struct {
	svc      *Services
	repo     *storage.Repository
	notifier *recordingNotifier
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	repo := memory.NewStore().Repository()
	n := &recordingNotifier{}
	return &fixture{svc: NewServices(repo, n), repo: repo, notifier: n}
}

func (f *fixture) team(t *testing.T, name string) *storage.Team {
	t.Helper()
	team := &storage.Team{Name: name, Color: DefaultTeamColor}
	require.NoError(t, f.repo.Teams.Create(context.Background(), team))
	return team
}

func (f *fixture) user(t *testing.T, username string, role storage.Role, teamID *int) *storage.User {
	t.Helper()
	hash, err := auth.HashPassword("pass123")
	require.NoError(t, err)
	u := &storage.User{Username: username, Email: username + "@example.com", PasswordHash: hash, Role: role, TeamID: teamID}
	require.NoError(t, f.repo.Users.Create(context.Background(), u))
	return u
}

func (f *fixture) challenge(t *testing.T, name string, maxPoints int) *storage.Challenge {
	t.Helper()
	c := &storage.Challenge{Name: name, MaxPoints: maxPoints, Difficulty: storage.DifficultyEasy}
	require.NoError(t, f.repo.Challenges.Create(context.Background(), c))
	return c
}
