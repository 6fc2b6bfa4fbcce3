package competition

import (
	"context"
	"github.com/Ahmedouyahya/Podium-de-concours/storage"
	"strings"
)

const DefaultMaxPoints = 100

type ChallengeInput struct {
	Name        string
	Description string
	MaxPoints   *int
	Difficulty  storage.Difficulty
	Category    string
}

type ChallengeChange struct {
	Name        *string
	Description *string
	MaxPoints   *int
	Difficulty  *storage.Difficulty
	Category    *string
}

type Challenges struct {
	challenges storage.ChallengeStorage
	recorder   *Recorder
	notifier   Notifier
}

func NewChallenges(repo *storage.Repository, recorder *Recorder, notifier Notifier) *Challenges {
	if notifier == nil {
		notifier = nopNotifier{}
	}
	return &Challenges{challenges: repo.Challenges, recorder: recorder, notifier: notifier}
}

func (c *Challenges) List(ctx context.Context) ([]*storage.Challenge, error) {
	return c.challenges.GetAll(ctx)
}

func (c *Challenges) Get(ctx context.Context, id int) (*storage.Challenge, error) {
	return c.challenges.Get(ctx, id)
}

func (c *Challenges) Create(ctx context.Context, in ChallengeInput) (*storage.Challenge, error) {
	name := strings.TrimSpace(in.Name)
	if name == "" {
		return nil, invalid("challenge name is required")
	}
	challenge := &storage.Challenge{
		Name:        name,
		Description: in.Description,
		MaxPoints:   DefaultMaxPoints,
		Difficulty:  storage.DifficultyMedium,
		Category:    in.Category,
	}
	if in.MaxPoints != nil {
		if *in.MaxPoints < 0 {
			return nil, invalid("max_points cannot be negative")
		}
		challenge.MaxPoints = *in.MaxPoints
	}
	if in.Difficulty != "" {
		if !in.Difficulty.Valid() {
			return nil, invalid("difficulty must be one of easy, medium, hard, expert")
		}
		challenge.Difficulty = in.Difficulty
	}
	if err := c.challenges.Create(ctx, challenge); err != nil {
		return nil, err
	}
	c.recorder.Record(ctx, storage.ActivityChallengeCreated, nil, 0, "Nouveau défi: %s", challenge.Name)
	c.notifier.Notify(EventLeaderboardUpdated)
	return challenge, nil
}

func (c *Challenges) Update(ctx context.Context, id int, change ChallengeChange) (*storage.Challenge, error) {
	challenge, err := c.challenges.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if change.Name != nil {
		if strings.TrimSpace(*change.Name) == "" {
			return nil, invalid("challenge name cannot be empty")
		}
		challenge.Name = strings.TrimSpace(*change.Name)
	}
	if change.Description != nil {
		challenge.Description = *change.Description
	}
	if change.MaxPoints != nil {
		if *change.MaxPoints < 0 {
			return nil, invalid("max_points cannot be negative")
		}
		challenge.MaxPoints = *change.MaxPoints
	}
	if change.Difficulty != nil {
		if !change.Difficulty.Valid() {
			return nil, invalid("difficulty must be one of easy, medium, hard, expert")
		}
		challenge.Difficulty = *change.Difficulty
	}
	if change.Category != nil {
		challenge.Category = *change.Category
	}
	if err := c.challenges.Update(ctx, challenge); err != nil {
		return nil, err
	}
	c.notifier.Notify(EventLeaderboardUpdated)
	return challenge, nil
}

// Delete removes the challenge. Scores that referenced it keep their
// challenge id and still count toward challenges_completed.
func (c *Challenges) Delete(ctx context.Context, id int) error {
	if err := c.challenges.Delete(ctx, id); err != nil {
		return err
	}
	c.notifier.Notify(EventLeaderboardUpdated)
	return nil
}
