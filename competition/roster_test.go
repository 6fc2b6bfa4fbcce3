package competition

import (
	"context"
	"github.com/Ahmedouyahya/Podium-de-concours/storage"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"testing"
)

func TestRosterCreateTeam(t *testing.T) {
	ctx := context.Background()

	t.Run("Happy path - creator becomes leader", func(t *testing.T) {
		f := newFixture(t)
		u := f.user(t, "sarah", storage.RoleParticipant, nil)

		team, err := f.svc.Roster.CreateTeam(ctx, ActorFrom(u), TeamInput{Name: "Debug Dynasty"})
		require.NoError(t, err)
		assert.Equal(t, DefaultTeamColor, team.Color)
		assert.Equal(t, 1, team.MemberCount)
		require.NotNil(t, team.LeaderID)
		assert.Equal(t, u.ID, *team.LeaderID)

		stored, err := f.repo.Users.Get(ctx, u.ID)
		require.NoError(t, err)
		assert.Equal(t, storage.RoleLeader, stored.Role)
		assert.Equal(t, team.ID, *stored.TeamID)

		feed, err := f.repo.Activities.List(ctx, 1)
		require.NoError(t, err)
		assert.Equal(t, storage.ActivityTeamCreated, feed[0].Kind)
	})

	t.Run("Happy path - admin creates without joining", func(t *testing.T) {
		f := newFixture(t)
		admin := f.user(t, "admin", storage.RoleAdmin, nil)
		team, err := f.svc.Roster.CreateTeam(ctx, ActorFrom(admin), TeamInput{Name: "Infinite Loop", Color: "#ef4444"})
		require.NoError(t, err)
		assert.Zero(t, team.MemberCount)
		assert.Nil(t, team.LeaderID)
	})

	t.Run("Unhappy path - duplicate name ignoring case", func(t *testing.T) {
		f := newFixture(t)
		f.team(t, "Byte Me")
		u := f.user(t, "david", storage.RoleParticipant, nil)
		_, err := f.svc.Roster.CreateTeam(ctx, ActorFrom(u), TeamInput{Name: "BYTE ME"})
		assert.ErrorIs(t, err, storage.ErrAlreadyExists)
	})

	t.Run("Unhappy path - creator already in a team", func(t *testing.T) {
		f := newFixture(t)
		existing := f.team(t, "Max")
		u := f.user(t, "ahmed", storage.RoleParticipant, &existing.ID)
		_, err := f.svc.Roster.CreateTeam(ctx, ActorFrom(u), TeamInput{Name: "Another"})
		assert.ErrorIs(t, err, ErrValidation)
	})

	t.Run("Unhappy path - missing name", func(t *testing.T) {
		f := newFixture(t)
		u := f.user(t, "ahmed", storage.RoleParticipant, nil)
		_, err := f.svc.Roster.CreateTeam(ctx, ActorFrom(u), TeamInput{Name: "  "})
		assert.ErrorIs(t, err, ErrValidation)
	})
}

func TestRosterMembers(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	leader := f.user(t, "max_leader", storage.RoleParticipant, nil)
	team, err := f.svc.Roster.CreateTeam(ctx, ActorFrom(leader), TeamInput{Name: "Max"})
	require.NoError(t, err)
	leader, err = f.repo.Users.Get(ctx, leader.ID)
	require.NoError(t, err)
	stranger := f.user(t, "stranger", storage.RoleParticipant, nil)

	t.Run("Happy path - leader adds a member", func(t *testing.T) {
		member, err := f.svc.Roster.AddMember(ctx, ActorFrom(leader), team.ID, NewMember{Username: "ahmed", Email: "ahmed@example.com", Password: "pass123"})
		require.NoError(t, err)
		assert.Equal(t, storage.RoleParticipant, member.Role)

		members, err := f.svc.Roster.Members(ctx, team.ID)
		require.NoError(t, err)
		require.Len(t, members, 2)
		assert.True(t, members[0].IsLeader)
		assert.False(t, members[1].IsLeader)

		stored, err := f.repo.Teams.Get(ctx, team.ID)
		require.NoError(t, err)
		assert.Equal(t, 2, stored.MemberCount)
	})

	t.Run("Unhappy path - outsider cannot add members", func(t *testing.T) {
		_, err := f.svc.Roster.AddMember(ctx, ActorFrom(stranger), team.ID, NewMember{Username: "x", Email: "x@example.com", Password: "p"})
		assert.ErrorIs(t, err, ErrForbidden)
	})

	t.Run("Unhappy path - leader cannot be removed", func(t *testing.T) {
		err := f.svc.Roster.RemoveMember(ctx, ActorFrom(leader), team.ID, leader.ID)
		assert.ErrorIs(t, err, ErrValidation)
	})

	t.Run("Unhappy path - user outside the team", func(t *testing.T) {
		err := f.svc.Roster.RemoveMember(ctx, ActorFrom(leader), team.ID, stranger.ID)
		assert.ErrorIs(t, err, storage.ErrNotFound)
	})

	t.Run("Happy path - member removed but account kept", func(t *testing.T) {
		ahmed, err := f.repo.Users.GetByLogin(ctx, "ahmed")
		require.NoError(t, err)
		require.NoError(t, f.svc.Roster.RemoveMember(ctx, ActorFrom(leader), team.ID, ahmed.ID))

		ahmed, err = f.repo.Users.Get(ctx, ahmed.ID)
		require.NoError(t, err)
		assert.Nil(t, ahmed.TeamID)
		stored, err := f.repo.Teams.Get(ctx, team.ID)
		require.NoError(t, err)
		assert.Equal(t, 1, stored.MemberCount)
	})

	t.Run("Unhappy path - leader renames onto a taken name", func(t *testing.T) {
		f.team(t, "Taken")
		name := "taken"
		_, err := f.svc.Roster.UpdateTeam(ctx, ActorFrom(leader), team.ID, TeamChange{Name: &name})
		assert.ErrorIs(t, err, storage.ErrAlreadyExists)
	})

	t.Run("Unhappy path - leader cannot reassign leadership", func(t *testing.T) {
		_, err := f.svc.Roster.UpdateTeam(ctx, ActorFrom(leader), team.ID, TeamChange{LeaderID: &stranger.ID})
		assert.ErrorIs(t, err, ErrForbidden)
	})
}

func TestRosterDeleteTeam(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	admin := f.user(t, "admin", storage.RoleAdmin, nil)
	leader := f.user(t, "leader", storage.RoleParticipant, nil)
	team, err := f.svc.Roster.CreateTeam(ctx, ActorFrom(leader), TeamInput{Name: "Syntax Errors"})
	require.NoError(t, err)
	member := f.user(t, "member", storage.RoleParticipant, &team.ID)
	c := f.challenge(t, "API REST", 200)
	_, err = f.svc.Ledger.Award(ctx, Award{TeamID: team.ID, Points: 40})
	require.NoError(t, err)
	_, err = f.svc.Submissions.Create(ctx, ActorFrom(member), SubmissionInput{ChallengeID: c.ID, Title: "API"})
	require.NoError(t, err)

	t.Run("Unhappy path - only admins delete teams", func(t *testing.T) {
		assert.ErrorIs(t, f.svc.Roster.DeleteTeam(ctx, ActorFrom(leader), team.ID), ErrForbidden)
	})

	t.Run("Happy path - cascade", func(t *testing.T) {
		require.NoError(t, f.svc.Roster.DeleteTeam(ctx, ActorFrom(admin), team.ID))

		_, err := f.repo.Teams.Get(ctx, team.ID)
		assert.ErrorIs(t, err, storage.ErrNotFound)

		l, err := f.repo.Users.Get(ctx, leader.ID)
		require.NoError(t, err)
		assert.Nil(t, l.TeamID)
		assert.Equal(t, storage.RoleParticipant, l.Role)

		m, err := f.repo.Users.Get(ctx, member.ID)
		require.NoError(t, err)
		assert.Nil(t, m.TeamID)

		scores, err := f.repo.Scores.GetAll(ctx)
		require.NoError(t, err)
		assert.Empty(t, scores)
		subs, err := f.repo.Submissions.List(ctx, storage.SubmissionFilter{})
		require.NoError(t, err)
		assert.Empty(t, subs)
	})

	t.Run("Unhappy path - already gone", func(t *testing.T) {
		assert.ErrorIs(t, f.svc.Roster.DeleteTeam(ctx, ActorFrom(admin), team.ID), storage.ErrNotFound)
	})
}
