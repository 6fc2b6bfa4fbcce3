package models

import (
	"github.com/Ahmedouyahya/Podium-de-concours/competition"
	"time"
)

type ScoreCreateRequest struct {
	TeamID      *int    `json:"team_id"`
	ChallengeID *int    `json:"challenge_id"`
	Points      *int    `json:"points"`
	BonusPoints int     `json:"bonus_points"`
	Comment     *string `json:"comment"`
}

type ScoreUpdateRequest struct {
	Points      *int    `json:"points"`
	BonusPoints *int    `json:"bonus_points"`
	Comment     *string `json:"comment"`
}

type ScoreResponse struct {
	ID            int       `json:"id"`
	TeamID        int       `json:"team_id"`
	ChallengeID   *int      `json:"challenge_id"`
	Points        int       `json:"points"`
	BonusPoints   int       `json:"bonus_points"`
	Comment       *string   `json:"comment"`
	AwardedAt     time.Time `json:"awarded_at"`
	TeamName      string    `json:"team_name,omitempty"`
	TeamColor     string    `json:"team_color,omitempty"`
	ChallengeName *string   `json:"challenge_name"`
}

func (r *ScoreCreateRequest) ToAward() competition.Award {
	return competition.Award{
		TeamID:      *r.TeamID,
		ChallengeID: r.ChallengeID,
		Points:      *r.Points,
		BonusPoints: r.BonusPoints,
		Comment:     r.Comment,
	}
}

func (r *ScoreUpdateRequest) ToChange() competition.ScoreChange {
	return competition.ScoreChange{Points: r.Points, BonusPoints: r.BonusPoints, Comment: r.Comment}
}

func TransformScoreEntry(e competition.ScoreEntry) ScoreResponse {
	s := e.Score
	res := ScoreResponse{
		ID:          s.ID,
		TeamID:      s.TeamID,
		ChallengeID: s.ChallengeID,
		Points:      s.Points,
		BonusPoints: s.BonusPoints,
		Comment:     s.Comment,
		AwardedAt:   s.AwardedAt,
	}
	if e.Team != nil {
		res.TeamName = e.Team.Name
		res.TeamColor = e.Team.Color
	}
	if e.Challenge != nil {
		res.ChallengeName = &e.Challenge.Name
	}
	return res
}
