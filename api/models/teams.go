package models

import (
	"github.com/Ahmedouyahya/Podium-de-concours/competition"
	"github.com/Ahmedouyahya/Podium-de-concours/storage"
	"time"
)

type TeamCreateRequest struct {
	Name   string  `json:"name"`
	Color  string  `json:"color"`
	Avatar *string `json:"avatar"`
}

type TeamUpdateRequest struct {
	Name     *string `json:"name"`
	Color    *string `json:"color"`
	Avatar   *string `json:"avatar"`
	LeaderID *int    `json:"leader_id"`
}

type MemberCreateRequest struct {
	Username string `json:"username"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

type TeamResponse struct {
	ID          int       `json:"id"`
	Name        string    `json:"name"`
	Color       string    `json:"color"`
	Avatar      *string   `json:"avatar"`
	MemberCount int       `json:"member_count"`
	LeaderID    *int      `json:"leader_id"`
	CreatedAt   time.Time `json:"created_at"`
}

// LeaderboardRowResponse is a team with its derived standing.
type LeaderboardRowResponse struct {
	TeamResponse
	TotalScore          int        `json:"total_score"`
	ChallengesCompleted int        `json:"challenges_completed"`
	LastScoreAt         *time.Time `json:"last_score_at"`
	Rank                int        `json:"rank"`
	Trend               string     `json:"trend"`
}

func (r *TeamCreateRequest) ToInput() competition.TeamInput {
	return competition.TeamInput{Name: r.Name, Color: r.Color, Avatar: r.Avatar}
}

func (r *TeamUpdateRequest) ToChange() competition.TeamChange {
	return competition.TeamChange{Name: r.Name, Color: r.Color, Avatar: r.Avatar, LeaderID: r.LeaderID}
}

func (r *MemberCreateRequest) ToNewMember() competition.NewMember {
	return competition.NewMember{Username: r.Username, Email: r.Email, Password: r.Password}
}

func TransformTeamFromStorage(t *storage.Team) TeamResponse {
	return TeamResponse{
		ID:          t.ID,
		Name:        t.Name,
		Color:       t.Color,
		Avatar:      t.Avatar,
		MemberCount: t.MemberCount,
		LeaderID:    t.LeaderID,
		CreatedAt:   t.CreatedAt,
	}
}

func TransformRow(r competition.Row) LeaderboardRowResponse {
	return LeaderboardRowResponse{
		TeamResponse:        TransformTeamFromStorage(&r.Team),
		TotalScore:          r.TotalScore,
		ChallengesCompleted: r.ChallengesCompleted,
		LastScoreAt:         r.LastScoreAt,
		Rank:                r.Rank,
		Trend:               string(r.Trend),
	}
}

func TransformRows(rows []competition.Row) []LeaderboardRowResponse {
	res := make([]LeaderboardRowResponse, 0, len(rows))
	for _, r := range rows {
		res = append(res, TransformRow(r))
	}
	return res
}
