package competition

import (
	"context"
	"errors"
	"fmt"
	"github.com/Ahmedouyahya/Podium-de-concours/auth"
	"github.com/Ahmedouyahya/Podium-de-concours/logging"
	"github.com/Ahmedouyahya/Podium-de-concours/storage"
	"strings"
)

// PrimaryAdminID is the seeded administrator, which can never be deleted.
const PrimaryAdminID = 1

type Registration struct {
	Username string
	Email    string
	Password string
	Role     storage.Role
	TeamID   *int
	Avatar   *string
}

// UserChange patches a user. TeamID 0 detaches the user from its team.
type UserChange struct {
	Username *string
	Email    *string
	Password *string
	Role     *storage.Role
	TeamID   *int
	Avatar   *string
}

type UserEntry struct {
	User *storage.User
	Team *storage.Team
}

type Accounts struct {
	users  storage.UserStorage
	teams  storage.TeamStorage
	roster *Roster
}

func NewAccounts(repo *storage.Repository, roster *Roster) *Accounts {
	return &Accounts{users: repo.Users, teams: repo.Teams, roster: roster}
}

// Register is self sign-up. Only participant and leader roles can be requested.
func (a *Accounts) Register(ctx context.Context, reg Registration) (*storage.User, error) {
	if reg.Role == "" {
		reg.Role = storage.RoleParticipant
	}
	if reg.Role == storage.RoleAdmin {
		return nil, forbidden("admin accounts cannot be self-registered")
	}
	if reg.Role == storage.RoleLeader && reg.TeamID != nil {
		team, err := a.teams.Get(ctx, *reg.TeamID)
		if err != nil {
			return nil, err
		}
		if team.LeaderID != nil {
			return nil, forbidden("team %s already has a leader", team.Name)
		}
	}
	return a.create(ctx, reg)
}

// Create is the admin path and accepts any role.
func (a *Accounts) Create(ctx context.Context, reg Registration) (*storage.User, error) {
	if reg.Role == "" {
		reg.Role = storage.RoleParticipant
	}
	return a.create(ctx, reg)
}

func (a *Accounts) create(ctx context.Context, reg Registration) (*storage.User, error) {
	reg.Username = strings.TrimSpace(reg.Username)
	reg.Email = strings.TrimSpace(reg.Email)
	if reg.Username == "" || reg.Email == "" || reg.Password == "" {
		return nil, invalid("username, email and password are required")
	}
	if !reg.Role.Valid() {
		return nil, invalid("unknown role %q", reg.Role)
	}

	hashed, err := auth.HashPassword(reg.Password)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	a.roster.mu.Lock()
	defer a.roster.mu.Unlock()

	var team *storage.Team
	if reg.TeamID != nil {
		if team, err = a.teams.Get(ctx, *reg.TeamID); err != nil {
			return nil, err
		}
	}

	user := &storage.User{
		Username:     reg.Username,
		Email:        reg.Email,
		PasswordHash: hashed,
		Role:         reg.Role,
		TeamID:       reg.TeamID,
		Avatar:       reg.Avatar,
	}
	if err := a.users.Create(ctx, user); err != nil {
		return nil, err
	}
	if team != nil {
		if err := a.joinedLocked(ctx, team.ID, user); err != nil {
			return nil, err
		}
	}
	logging.Log.Infof("USER: created %q as %s", user.Username, user.Role)
	return user, nil
}

// joinedLocked updates the team a user just entered.
func (a *Accounts) joinedLocked(ctx context.Context, teamID int, user *storage.User) error {
	if user.Role == storage.RoleLeader {
		team, err := a.teams.Get(ctx, teamID)
		if err != nil {
			return err
		}
		if err := a.roster.assignLeaderLocked(ctx, team, user.ID); err != nil {
			return err
		}
		if err := a.teams.Update(ctx, team); err != nil {
			return err
		}
	}
	return a.roster.recountLocked(ctx, teamID)
}

// leftLocked updates the team a user just left.
func (a *Accounts) leftLocked(ctx context.Context, teamID, userID int) error {
	team, err := a.teams.Get(ctx, teamID)
	if errors.Is(err, storage.ErrNotFound) {
		return nil
	}
	if err != nil {
		return err
	}
	if team.LeaderID != nil && *team.LeaderID == userID {
		team.LeaderID = nil
		if err := a.teams.Update(ctx, team); err != nil {
			return err
		}
	}
	return a.roster.recountLocked(ctx, teamID)
}

func (a *Accounts) Authenticate(ctx context.Context, login, password string) (*storage.User, error) {
	user, err := a.users.GetByLogin(ctx, strings.TrimSpace(login))
	if errors.Is(err, storage.ErrNotFound) {
		return nil, ErrInvalidCredentials
	}
	if err != nil {
		return nil, err
	}
	if !auth.CheckPassword(user.PasswordHash, password) {
		return nil, ErrInvalidCredentials
	}
	return user, nil
}

func (a *Accounts) Get(ctx context.Context, id int) (*UserEntry, error) {
	user, err := a.users.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	entry := &UserEntry{User: user}
	if user.TeamID != nil {
		if team, err := a.teams.Get(ctx, *user.TeamID); err == nil {
			entry.Team = team
		}
	}
	return entry, nil
}

func (a *Accounts) List(ctx context.Context) ([]UserEntry, error) {
	users, err := a.users.GetAll(ctx)
	if err != nil {
		return nil, err
	}
	teams, err := teamIndex(ctx, a.teams)
	if err != nil {
		return nil, err
	}
	out := make([]UserEntry, 0, len(users))
	for _, u := range users {
		entry := UserEntry{User: u}
		if u.TeamID != nil {
			entry.Team = teams[*u.TeamID]
		}
		out = append(out, entry)
	}
	return out, nil
}

func (a *Accounts) Update(ctx context.Context, id int, change UserChange) (*storage.User, error) {
	var hashed string
	if change.Password != nil && *change.Password != "" {
		h, err := auth.HashPassword(*change.Password)
		if err != nil {
			return nil, fmt.Errorf("hash password: %w", err)
		}
		hashed = h
	}

	a.roster.mu.Lock()
	defer a.roster.mu.Unlock()

	user, err := a.users.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	oldTeam := user.TeamID
	oldRole := user.Role

	if change.Username != nil {
		if strings.TrimSpace(*change.Username) == "" {
			return nil, invalid("username cannot be empty")
		}
		user.Username = strings.TrimSpace(*change.Username)
	}
	if change.Email != nil {
		if strings.TrimSpace(*change.Email) == "" {
			return nil, invalid("email cannot be empty")
		}
		user.Email = strings.TrimSpace(*change.Email)
	}
	if hashed != "" {
		user.PasswordHash = hashed
	}
	if change.Role != nil {
		if !change.Role.Valid() {
			return nil, invalid("unknown role %q", *change.Role)
		}
		if id == PrimaryAdminID && *change.Role != storage.RoleAdmin {
			return nil, forbidden("the primary admin cannot be demoted")
		}
		user.Role = *change.Role
	}
	if change.Avatar != nil {
		user.Avatar = change.Avatar
	}
	if change.TeamID != nil {
		if *change.TeamID == 0 {
			user.TeamID = nil
		} else {
			if _, err := a.teams.Get(ctx, *change.TeamID); err != nil {
				return nil, err
			}
			teamID := *change.TeamID
			user.TeamID = &teamID
		}
	}

	if err := a.users.Update(ctx, user); err != nil {
		return nil, err
	}

	teamChanged := !sameTeam(oldTeam, user.TeamID)
	if oldTeam != nil && (teamChanged || (oldRole == storage.RoleLeader && user.Role != storage.RoleLeader)) {
		if err := a.leftLocked(ctx, *oldTeam, user.ID); err != nil {
			return nil, err
		}
	}
	if user.TeamID != nil && (teamChanged || user.Role != oldRole) {
		if err := a.joinedLocked(ctx, *user.TeamID, user); err != nil {
			return nil, err
		}
	}
	return user, nil
}

func (a *Accounts) Delete(ctx context.Context, id int) error {
	if id == PrimaryAdminID {
		return forbidden("the primary admin cannot be deleted")
	}
	a.roster.mu.Lock()
	defer a.roster.mu.Unlock()

	user, err := a.users.Get(ctx, id)
	if err != nil {
		return err
	}
	if err := a.users.Delete(ctx, id); err != nil {
		return err
	}
	if user.TeamID != nil {
		if err := a.leftLocked(ctx, *user.TeamID, user.ID); err != nil {
			return err
		}
	}
	logging.Log.Infof("USER: deleted %q", user.Username)
	return nil
}

func sameTeam(a, b *int) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	return *a == *b
}
