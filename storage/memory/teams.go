package memory

import (
	"context"
	"fmt"
	"github.com/Ahmedouyahya/Podium-de-concours/storage"
)

type teamStore struct{ s *Store }

func (t *teamStore) Get(_ context.Context, id int) (*storage.Team, error) {
	t.s.mu.RLock()
	defer t.s.mu.RUnlock()
	team, ok := t.s.teams[id]
	if !ok {
		return nil, fmt.Errorf("%w: team %d", storage.ErrNotFound, id)
	}
	return cloneTeam(team), nil
}

func (t *teamStore) GetAll(_ context.Context) ([]*storage.Team, error) {
	t.s.mu.RLock()
	defer t.s.mu.RUnlock()
	teams := make([]*storage.Team, 0, len(t.s.teams))
	for _, id := range sortedKeys(t.s.teams) {
		teams = append(teams, cloneTeam(t.s.teams[id]))
	}
	return teams, nil
}

func (t *teamStore) GetByName(_ context.Context, name string) (*storage.Team, error) {
	t.s.mu.RLock()
	defer t.s.mu.RUnlock()
	if team := t.findByNameLocked(name, 0); team != nil {
		return cloneTeam(team), nil
	}
	return nil, fmt.Errorf("%w: team %q", storage.ErrNotFound, name)
}

func (t *teamStore) findByNameLocked(name string, exceptID int) *storage.Team {
	key := storage.NameKey(name)
	for _, team := range t.s.teams {
		if team.ID != exceptID && storage.NameKey(team.Name) == key {
			return team
		}
	}
	return nil
}

func (t *teamStore) Create(_ context.Context, team *storage.Team) error {
	t.s.mu.Lock()
	defer t.s.mu.Unlock()
	if t.findByNameLocked(team.Name, 0) != nil {
		return fmt.Errorf("%w: team name %q", storage.ErrAlreadyExists, team.Name)
	}
	team.ID = t.s.nextID(counterTeams)
	team.CreatedAt = t.s.now().UTC()
	t.s.teams[team.ID] = cloneTeam(team)
	return t.s.commit()
}

func (t *teamStore) Update(_ context.Context, team *storage.Team) error {
	t.s.mu.Lock()
	defer t.s.mu.Unlock()
	if _, ok := t.s.teams[team.ID]; !ok {
		return fmt.Errorf("%w: team %d", storage.ErrNotFound, team.ID)
	}
	if t.findByNameLocked(team.Name, team.ID) != nil {
		return fmt.Errorf("%w: team name %q", storage.ErrAlreadyExists, team.Name)
	}
	t.s.teams[team.ID] = cloneTeam(team)
	return t.s.commit()
}

func (t *teamStore) Delete(_ context.Context, id int) error {
	t.s.mu.Lock()
	defer t.s.mu.Unlock()
	if _, ok := t.s.teams[id]; !ok {
		return fmt.Errorf("%w: team %d", storage.ErrNotFound, id)
	}
	delete(t.s.teams, id)
	return t.s.commit()
}
