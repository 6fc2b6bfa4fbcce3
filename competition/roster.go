package competition

import (
	"context"
	"errors"
	"fmt"
	"github.com/Ahmedouyahya/Podium-de-concours/auth"
	"github.com/Ahmedouyahya/Podium-de-concours/logging"
	"github.com/Ahmedouyahya/Podium-de-concours/storage"
	"strings"
	"sync"
)

const DefaultTeamColor = "#6366f1"

type TeamInput struct {
	Name   string
	Color  string
	Avatar *string
}

type TeamChange struct {
	Name     *string
	Color    *string
	Avatar   *string
	LeaderID *int
}

type NewMember struct {
	Username string
	Email    string
	Password string
}

type Member struct {
	User     *storage.User
	IsLeader bool
}

// Roster owns team records and team membership. member_count is always
// recomputed from the users pointing at the team.
type Roster struct {
	mu       *sync.Mutex
	teams    storage.TeamStorage
	users    storage.UserStorage
	scores   storage.ScoreStorage
	subs     storage.SubmissionStorage
	board    *Leaderboard
	recorder *Recorder
	notifier Notifier
}

func NewRoster(repo *storage.Repository, board *Leaderboard, recorder *Recorder, notifier Notifier, writes *sync.Mutex) *Roster {
	if notifier == nil {
		notifier = nopNotifier{}
	}
	if writes == nil {
		writes = new(sync.Mutex)
	}
	return &Roster{
		mu:       writes,
		teams:    repo.Teams,
		users:    repo.Users,
		scores:   repo.Scores,
		subs:     repo.Submissions,
		board:    board,
		recorder: recorder,
		notifier: notifier,
	}
}

func (r *Roster) Get(ctx context.Context, id int) (*storage.Team, error) {
	return r.teams.Get(ctx, id)
}

// CreateTeam registers a team. A non-admin creator joins it as leader and
// must not already belong to a team.
func (r *Roster) CreateTeam(ctx context.Context, actor Actor, in TeamInput) (*storage.Team, error) {
	name := strings.TrimSpace(in.Name)
	if name == "" {
		return nil, invalid("team name is required")
	}
	if in.Color == "" {
		in.Color = DefaultTeamColor
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	creator, err := r.users.Get(ctx, actor.ID)
	if err != nil {
		return nil, err
	}
	joins := creator.Role != storage.RoleAdmin
	if joins && creator.TeamID != nil {
		return nil, invalid("user %s already belongs to a team", creator.Username)
	}

	team := &storage.Team{Name: name, Color: in.Color, Avatar: in.Avatar}
	if joins {
		team.LeaderID = &creator.ID
		team.MemberCount = 1
	}
	if err := r.teams.Create(ctx, team); err != nil {
		return nil, err
	}

	if joins {
		creator.TeamID = &team.ID
		creator.Role = storage.RoleLeader
		if err := r.users.Update(ctx, creator); err != nil {
			logging.Log.Errorf("TEAM: failed to attach leader %d to team %d: %v", creator.ID, team.ID, err)
			return nil, err
		}
	}

	r.recorder.Record(ctx, storage.ActivityTeamCreated, &team.ID, 0, "Nouvelle équipe %s créée!", team.Name)
	r.notifier.Notify(EventLeaderboardUpdated)
	logging.Log.Infof("TEAM: created %q (id %d)", team.Name, team.ID)
	return team, nil
}

// UpdateTeam is open to admins and the team leader. Only admins may hand
// leadership to another member.
func (r *Roster) UpdateTeam(ctx context.Context, actor Actor, id int, change TeamChange) (*storage.Team, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	team, err := r.teams.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if !canManage(actor, team) {
		return nil, forbidden("only an admin or the team leader can edit team %d", id)
	}
	if change.Name != nil {
		name := strings.TrimSpace(*change.Name)
		if name == "" {
			return nil, invalid("team name cannot be empty")
		}
		team.Name = name
	}
	if change.Color != nil && *change.Color != "" {
		team.Color = *change.Color
	}
	if change.Avatar != nil {
		team.Avatar = change.Avatar
	}
	if change.LeaderID != nil {
		if !actor.IsAdmin() {
			return nil, forbidden("only an admin can change the team leader")
		}
		if err := r.assignLeaderLocked(ctx, team, *change.LeaderID); err != nil {
			return nil, err
		}
	}
	if err := r.teams.Update(ctx, team); err != nil {
		return nil, err
	}
	r.notifier.Notify(EventLeaderboardUpdated)
	return team, nil
}

// DeleteTeam detaches the members, demoting leaders, and removes the team's
// scores and submissions before the team itself.
func (r *Roster) DeleteTeam(ctx context.Context, actor Actor, id int) error {
	if !actor.IsAdmin() {
		return forbidden("only an admin can delete a team")
	}
	r.mu.Lock()
	defer r.mu.Unlock()

	team, err := r.teams.Get(ctx, id)
	if err != nil {
		return err
	}
	if err := r.board.SnapshotRanks(ctx); err != nil {
		logging.Log.Warnf("TEAM: could not save rank baseline: %v", err)
	}

	members, err := r.users.ListByTeam(ctx, id)
	if err != nil {
		return err
	}
	for _, m := range members {
		m.TeamID = nil
		if m.Role == storage.RoleLeader {
			m.Role = storage.RoleParticipant
		}
		if err := r.users.Update(ctx, m); err != nil {
			return fmt.Errorf("detach user %d: %w", m.ID, err)
		}
	}
	if err := r.scores.DeleteByTeam(ctx, id); err != nil {
		return fmt.Errorf("delete scores of team %d: %w", id, err)
	}
	if err := r.subs.DeleteByTeam(ctx, id); err != nil {
		return fmt.Errorf("delete submissions of team %d: %w", id, err)
	}
	if err := r.teams.Delete(ctx, id); err != nil {
		return err
	}

	r.recorder.Record(ctx, storage.ActivityTeamDeleted, nil, 0, "L'équipe %s a été supprimée", team.Name)
	r.notifier.Notify(EventLeaderboardUpdated)
	logging.Log.Infof("TEAM: deleted %q with %d members detached", team.Name, len(members))
	return nil
}

func (r *Roster) Members(ctx context.Context, teamID int) ([]Member, error) {
	team, err := r.teams.Get(ctx, teamID)
	if err != nil {
		return nil, err
	}
	users, err := r.users.ListByTeam(ctx, teamID)
	if err != nil {
		return nil, err
	}
	out := make([]Member, 0, len(users))
	for _, u := range users {
		out = append(out, Member{User: u, IsLeader: team.LeaderID != nil && *team.LeaderID == u.ID})
	}
	return out, nil
}

// AddMember creates a participant account inside the team.
func (r *Roster) AddMember(ctx context.Context, actor Actor, teamID int, in NewMember) (*storage.User, error) {
	if in.Username == "" || in.Email == "" || in.Password == "" {
		return nil, invalid("username, email and password are required")
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	team, err := r.teams.Get(ctx, teamID)
	if err != nil {
		return nil, err
	}
	if !canManage(actor, team) {
		return nil, forbidden("only an admin or the team leader can add members to team %d", teamID)
	}

	hashed, err := auth.HashPassword(in.Password)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}
	user := &storage.User{
		Username:     in.Username,
		Email:        in.Email,
		PasswordHash: hashed,
		Role:         storage.RoleParticipant,
		TeamID:       &team.ID,
	}
	if err := r.users.Create(ctx, user); err != nil {
		return nil, err
	}
	if err := r.recountLocked(ctx, team.ID); err != nil {
		return nil, err
	}
	r.recorder.Record(ctx, storage.ActivityMemberJoined, &team.ID, 0, "%s a rejoint %s", user.Username, team.Name)
	r.notifier.Notify(EventLeaderboardUpdated)
	return user, nil
}

// RemoveMember detaches a user from the team without deleting the account.
// The leader cannot be removed.
func (r *Roster) RemoveMember(ctx context.Context, actor Actor, teamID, userID int) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	team, err := r.teams.Get(ctx, teamID)
	if err != nil {
		return err
	}
	if !canManage(actor, team) {
		return forbidden("only an admin or the team leader can remove members of team %d", teamID)
	}
	if team.LeaderID != nil && *team.LeaderID == userID {
		return invalid("the team leader cannot be removed")
	}
	user, err := r.users.Get(ctx, userID)
	if err != nil {
		return err
	}
	if user.TeamID == nil || *user.TeamID != teamID {
		return fmt.Errorf("%w: user %d in team %d", storage.ErrNotFound, userID, teamID)
	}
	user.TeamID = nil
	if err := r.users.Update(ctx, user); err != nil {
		return err
	}
	if err := r.recountLocked(ctx, teamID); err != nil {
		return err
	}
	r.notifier.Notify(EventLeaderboardUpdated)
	return nil
}

// recountLocked sets member_count from the users referencing the team.
func (r *Roster) recountLocked(ctx context.Context, teamID int) error {
	team, err := r.teams.Get(ctx, teamID)
	if errors.Is(err, storage.ErrNotFound) {
		return nil
	}
	if err != nil {
		return err
	}
	members, err := r.users.ListByTeam(ctx, teamID)
	if err != nil {
		return err
	}
	if team.MemberCount == len(members) {
		return nil
	}
	team.MemberCount = len(members)
	return r.teams.Update(ctx, team)
}

// assignLeaderLocked makes userID the leader of team and demotes the previous
// leader. The caller persists team.
func (r *Roster) assignLeaderLocked(ctx context.Context, team *storage.Team, userID int) error {
	user, err := r.users.Get(ctx, userID)
	if err != nil {
		return err
	}
	if user.TeamID == nil || *user.TeamID != team.ID {
		return invalid("user %d is not a member of team %d", userID, team.ID)
	}
	if team.LeaderID != nil && *team.LeaderID != userID {
		if previous, err := r.users.Get(ctx, *team.LeaderID); err == nil && previous.Role == storage.RoleLeader {
			previous.Role = storage.RoleParticipant
			if err := r.users.Update(ctx, previous); err != nil {
				return err
			}
		}
	}
	if user.Role != storage.RoleAdmin && user.Role != storage.RoleLeader {
		user.Role = storage.RoleLeader
		if err := r.users.Update(ctx, user); err != nil {
			return err
		}
	}
	team.LeaderID = &user.ID
	return nil
}

func canManage(actor Actor, team *storage.Team) bool {
	return actor.IsAdmin() || (team.LeaderID != nil && *team.LeaderID == actor.ID)
}
