package models

import (
	"github.com/Ahmedouyahya/Podium-de-concours/competition"
	"github.com/Ahmedouyahya/Podium-de-concours/storage"
	"time"
)

type SubmissionCreateRequest struct {
	TeamID      *int    `json:"team_id"`
	ChallengeID int     `json:"challenge_id"`
	Title       string  `json:"title"`
	Description string  `json:"description"`
	CodeURL     *string `json:"code_url"`
	DemoURL     *string `json:"demo_url"`
}

type SubmissionUpdateRequest struct {
	Title       *string `json:"title"`
	Description *string `json:"description"`
	CodeURL     *string `json:"code_url"`
	DemoURL     *string `json:"demo_url"`
	Status      *string `json:"status"`
	Feedback    *string `json:"feedback"`
}

type SubmissionResponse struct {
	ID            int       `json:"id"`
	UserID        int       `json:"user_id"`
	TeamID        int       `json:"team_id"`
	ChallengeID   int       `json:"challenge_id"`
	Title         string    `json:"title"`
	Description   string    `json:"description"`
	CodeURL       *string   `json:"code_url"`
	DemoURL       *string   `json:"demo_url"`
	Status        string    `json:"status"`
	Feedback      *string   `json:"feedback"`
	SubmittedAt   time.Time `json:"submitted_at"`
	Username      *string   `json:"username"`
	TeamName      *string   `json:"team_name"`
	TeamColor     *string   `json:"team_color"`
	ChallengeName *string   `json:"challenge_name"`
}

func (r *SubmissionCreateRequest) ToInput() competition.SubmissionInput {
	return competition.SubmissionInput{
		TeamID:      r.TeamID,
		ChallengeID: r.ChallengeID,
		Title:       r.Title,
		Description: r.Description,
		CodeURL:     r.CodeURL,
		DemoURL:     r.DemoURL,
	}
}

func (r *SubmissionUpdateRequest) ToChange() competition.SubmissionChange {
	change := competition.SubmissionChange{
		Title:       r.Title,
		Description: r.Description,
		CodeURL:     r.CodeURL,
		DemoURL:     r.DemoURL,
		Feedback:    r.Feedback,
	}
	if r.Status != nil {
		status := storage.SubmissionStatus(*r.Status)
		change.Status = &status
	}
	return change
}

func TransformSubmission(s *storage.Submission) SubmissionResponse {
	return SubmissionResponse{
		ID:          s.ID,
		UserID:      s.UserID,
		TeamID:      s.TeamID,
		ChallengeID: s.ChallengeID,
		Title:       s.Title,
		Description: s.Description,
		CodeURL:     s.CodeURL,
		DemoURL:     s.DemoURL,
		Status:      string(s.Status),
		Feedback:    s.Feedback,
		SubmittedAt: s.SubmittedAt,
	}
}

func TransformSubmissionEntry(e competition.SubmissionEntry) SubmissionResponse {
	res := TransformSubmission(e.Submission)
	if e.User != nil {
		res.Username = &e.User.Username
	}
	if e.Team != nil {
		res.TeamName = &e.Team.Name
		res.TeamColor = &e.Team.Color
	}
	if e.Challenge != nil {
		res.ChallengeName = &e.Challenge.Name
	}
	return res
}
