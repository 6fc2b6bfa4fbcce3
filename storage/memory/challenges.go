package memory

import (
	"context"
	"fmt"
	"github.com/Ahmedouyahya/Podium-de-concours/storage"
)

type challengeStore struct{ s *Store }

func (c *challengeStore) Get(_ context.Context, id int) (*storage.Challenge, error) {
	c.s.mu.RLock()
	defer c.s.mu.RUnlock()
	challenge, ok := c.s.challenges[id]
	if !ok {
		return nil, fmt.Errorf("%w: challenge %d", storage.ErrNotFound, id)
	}
	return cloneChallenge(challenge), nil
}

func (c *challengeStore) GetAll(_ context.Context) ([]*storage.Challenge, error) {
	c.s.mu.RLock()
	defer c.s.mu.RUnlock()
	challenges := make([]*storage.Challenge, 0, len(c.s.challenges))
	for _, id := range sortedKeys(c.s.challenges) {
		challenges = append(challenges, cloneChallenge(c.s.challenges[id]))
	}
	return challenges, nil
}

func (c *challengeStore) Create(_ context.Context, challenge *storage.Challenge) error {
	c.s.mu.Lock()
	defer c.s.mu.Unlock()
	challenge.ID = c.s.nextID(counterChallenges)
	challenge.CreatedAt = c.s.now().UTC()
	c.s.challenges[challenge.ID] = cloneChallenge(challenge)
	return c.s.commit()
}

func (c *challengeStore) Update(_ context.Context, challenge *storage.Challenge) error {
	c.s.mu.Lock()
	defer c.s.mu.Unlock()
	if _, ok := c.s.challenges[challenge.ID]; !ok {
		return fmt.Errorf("%w: challenge %d", storage.ErrNotFound, challenge.ID)
	}
	c.s.challenges[challenge.ID] = cloneChallenge(challenge)
	return c.s.commit()
}

func (c *challengeStore) Delete(_ context.Context, id int) error {
	c.s.mu.Lock()
	defer c.s.mu.Unlock()
	if _, ok := c.s.challenges[id]; !ok {
		return fmt.Errorf("%w: challenge %d", storage.ErrNotFound, id)
	}
	delete(c.s.challenges, id)
	return c.s.commit()
}
