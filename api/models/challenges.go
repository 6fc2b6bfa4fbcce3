package models

import (
	"github.com/Ahmedouyahya/Podium-de-concours/competition"
	"github.com/Ahmedouyahya/Podium-de-concours/storage"
	"time"
)

type ChallengeCreateRequest struct {
	Name        string `json:"name"`
	Description string `json:"description"`
	MaxPoints   *int   `json:"max_points"`
	Difficulty  string `json:"difficulty"`
	Category    string `json:"category"`
}

type ChallengeUpdateRequest struct {
	Name        *string `json:"name"`
	Description *string `json:"description"`
	MaxPoints   *int    `json:"max_points"`
	Difficulty  *string `json:"difficulty"`
	Category    *string `json:"category"`
}

type ChallengeResponse struct {
	ID          int       `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	MaxPoints   int       `json:"max_points"`
	Difficulty  string    `json:"difficulty"`
	Category    string    `json:"category"`
	CreatedAt   time.Time `json:"created_at"`
}

func (r *ChallengeCreateRequest) ToInput() competition.ChallengeInput {
	return competition.ChallengeInput{
		Name:        r.Name,
		Description: r.Description,
		MaxPoints:   r.MaxPoints,
		Difficulty:  storage.Difficulty(r.Difficulty),
		Category:    r.Category,
	}
}

func (r *ChallengeUpdateRequest) ToChange() competition.ChallengeChange {
	change := competition.ChallengeChange{
		Name:        r.Name,
		Description: r.Description,
		MaxPoints:   r.MaxPoints,
		Category:    r.Category,
	}
	if r.Difficulty != nil {
		d := storage.Difficulty(*r.Difficulty)
		change.Difficulty = &d
	}
	return change
}

func TransformChallengeFromStorage(c *storage.Challenge) ChallengeResponse {
	return ChallengeResponse{
		ID:          c.ID,
		Name:        c.Name,
		Description: c.Description,
		MaxPoints:   c.MaxPoints,
		Difficulty:  string(c.Difficulty),
		Category:    c.Category,
		CreatedAt:   c.CreatedAt,
	}
}
