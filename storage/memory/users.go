package memory

import (
	"context"
	"fmt"
	"github.com/Ahmedouyahya/Podium-de-concours/storage"
	"strings"
)

type userStore struct{ s *Store }

func (u *userStore) Get(_ context.Context, id int) (*storage.User, error) {
	u.s.mu.RLock()
	defer u.s.mu.RUnlock()
	user, ok := u.s.users[id]
	if !ok {
		return nil, fmt.Errorf("%w: user %d", storage.ErrNotFound, id)
	}
	return cloneUser(user), nil
}

func (u *userStore) GetAll(_ context.Context) ([]*storage.User, error) {
	u.s.mu.RLock()
	defer u.s.mu.RUnlock()
	users := make([]*storage.User, 0, len(u.s.users))
	for _, id := range sortedKeys(u.s.users) {
		users = append(users, cloneUser(u.s.users[id]))
	}
	return users, nil
}

func (u *userStore) GetByLogin(_ context.Context, login string) (*storage.User, error) {
	u.s.mu.RLock()
	defer u.s.mu.RUnlock()
	for _, id := range sortedKeys(u.s.users) {
		user := u.s.users[id]
		if user.Username == login || strings.EqualFold(user.Email, login) {
			return cloneUser(user), nil
		}
	}
	return nil, fmt.Errorf("%w: user %q", storage.ErrNotFound, login)
}

func (u *userStore) ListByTeam(_ context.Context, teamID int) ([]*storage.User, error) {
	u.s.mu.RLock()
	defer u.s.mu.RUnlock()
	var users []*storage.User
	for _, id := range sortedKeys(u.s.users) {
		user := u.s.users[id]
		if user.TeamID != nil && *user.TeamID == teamID {
			users = append(users, cloneUser(user))
		}
	}
	return users, nil
}

func (u *userStore) conflictLocked(user *storage.User) error {
	for _, other := range u.s.users {
		if other.ID == user.ID {
			continue
		}
		if other.Username == user.Username {
			return fmt.Errorf("%w: username %q", storage.ErrAlreadyExists, user.Username)
		}
		if strings.EqualFold(other.Email, user.Email) {
			return fmt.Errorf("%w: email %q", storage.ErrAlreadyExists, user.Email)
		}
	}
	return nil
}

func (u *userStore) Create(_ context.Context, user *storage.User) error {
	u.s.mu.Lock()
	defer u.s.mu.Unlock()
	user.ID = 0
	if err := u.conflictLocked(user); err != nil {
		return err
	}
	user.ID = u.s.nextID(counterUsers)
	user.CreatedAt = u.s.now().UTC()
	u.s.users[user.ID] = cloneUser(user)
	return u.s.commit()
}

func (u *userStore) Update(_ context.Context, user *storage.User) error {
	u.s.mu.Lock()
	defer u.s.mu.Unlock()
	if _, ok := u.s.users[user.ID]; !ok {
		return fmt.Errorf("%w: user %d", storage.ErrNotFound, user.ID)
	}
	if err := u.conflictLocked(user); err != nil {
		return err
	}
	u.s.users[user.ID] = cloneUser(user)
	return u.s.commit()
}

func (u *userStore) Delete(_ context.Context, id int) error {
	u.s.mu.Lock()
	defer u.s.mu.Unlock()
	if _, ok := u.s.users[id]; !ok {
		return fmt.Errorf("%w: user %d", storage.ErrNotFound, id)
	}
	delete(u.s.users, id)
	return u.s.commit()
}
