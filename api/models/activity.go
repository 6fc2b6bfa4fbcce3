package models

import (
	"github.com/Ahmedouyahya/Podium-de-concours/competition"
	"time"
)

type ActivityResponse struct {
	ID           int       `json:"id"`
	TeamID       *int      `json:"team_id"`
	ActionType   string    `json:"action_type"`
	Description  string    `json:"description"`
	PointsChange int       `json:"points_change"`
	CreatedAt    time.Time `json:"created_at"`
	TeamName     *string   `json:"team_name"`
	TeamColor    *string   `json:"team_color"`
}

type TopTeamResponse struct {
	Name       string `json:"name"`
	Color      string `json:"color"`
	TotalScore int    `json:"total_score"`
}

type StatsResponse struct {
	TotalTeams         int              `json:"total_teams"`
	TotalChallenges    int              `json:"total_challenges"`
	TotalPointsAwarded int              `json:"total_points_awarded"`
	AverageTeamScore   int              `json:"average_team_score"`
	ActiveToday        int              `json:"active_today"`
	TopTeam            *TopTeamResponse `json:"top_team"`
}

func TransformFeedEntry(e competition.FeedEntry) ActivityResponse {
	a := e.Activity
	res := ActivityResponse{
		ID:           a.ID,
		TeamID:       a.TeamID,
		ActionType:   string(a.Kind),
		Description:  a.Description,
		PointsChange: a.PointsChange,
		CreatedAt:    a.CreatedAt,
	}
	if e.Team != nil {
		res.TeamName = &e.Team.Name
		res.TeamColor = &e.Team.Color
	}
	return res
}

func TransformStats(s *competition.Stats) StatsResponse {
	res := StatsResponse{
		TotalTeams:         s.TotalTeams,
		TotalChallenges:    s.TotalChallenges,
		TotalPointsAwarded: s.TotalPointsAwarded,
		AverageTeamScore:   s.AverageTeamScore,
		ActiveToday:        s.ActiveToday,
	}
	if s.TopTeam != nil {
		res.TopTeam = &TopTeamResponse{
			Name:       s.TopTeam.Team.Name,
			Color:      s.TopTeam.Team.Color,
			TotalScore: s.TopTeam.TotalScore,
		}
	}
	return res
}
