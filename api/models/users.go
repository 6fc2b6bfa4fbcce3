package models

import (
	"github.com/Ahmedouyahya/Podium-de-concours/competition"
	"github.com/Ahmedouyahya/Podium-de-concours/storage"
	"time"
)

type RegisterRequest struct {
	Username string  `json:"username"`
	Email    string  `json:"email"`
	Password string  `json:"password"`
	Role     string  `json:"role"`
	TeamID   *int    `json:"team_id"`
	Avatar   *string `json:"avatar"`
}

type LoginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type UserUpdateRequest struct {
	Username *string `json:"username"`
	Email    *string `json:"email"`
	Password *string `json:"password"`
	Role     *string `json:"role"`
	TeamID   *int    `json:"team_id"`
	Avatar   *string `json:"avatar"`
}

// UserResponse never carries the password hash.
type UserResponse struct {
	ID        int       `json:"id"`
	Username  string    `json:"username"`
	Email     string    `json:"email,omitempty"`
	Role      string    `json:"role"`
	TeamID    *int      `json:"team_id"`
	Avatar    *string   `json:"avatar"`
	CreatedAt time.Time `json:"created_at"`
	TeamName  *string   `json:"team_name,omitempty"`
	TeamColor *string   `json:"team_color,omitempty"`
}

type MemberResponse struct {
	UserResponse
	IsLeader bool `json:"is_leader"`
}

type AuthResponse struct {
	User  UserResponse            `json:"user"`
	Team  *LeaderboardRowResponse `json:"team"`
	Token string                  `json:"token,omitempty"`
}

func (r *RegisterRequest) ToRegistration() competition.Registration {
	return competition.Registration{
		Username: r.Username,
		Email:    r.Email,
		Password: r.Password,
		Role:     storage.Role(r.Role),
		TeamID:   r.TeamID,
		Avatar:   r.Avatar,
	}
}

func (r *UserUpdateRequest) ToChange() competition.UserChange {
	change := competition.UserChange{
		Username: r.Username,
		Email:    r.Email,
		Password: r.Password,
		TeamID:   r.TeamID,
		Avatar:   r.Avatar,
	}
	if r.Role != nil {
		role := storage.Role(*r.Role)
		change.Role = &role
	}
	return change
}

func TransformUserFromStorage(u *storage.User) UserResponse {
	return UserResponse{
		ID:        u.ID,
		Username:  u.Username,
		Email:     u.Email,
		Role:      string(u.Role),
		TeamID:    u.TeamID,
		Avatar:    u.Avatar,
		CreatedAt: u.CreatedAt,
	}
}

func TransformUserEntry(e competition.UserEntry) UserResponse {
	res := TransformUserFromStorage(e.User)
	if e.Team != nil {
		res.TeamName = &e.Team.Name
		res.TeamColor = &e.Team.Color
	}
	return res
}

func TransformMember(m competition.Member) MemberResponse {
	return MemberResponse{UserResponse: TransformUserFromStorage(m.User), IsLeader: m.IsLeader}
}
