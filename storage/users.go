package storage

import "context"

type UserStorage interface {
	Get(ctx context.Context, id int) (*User, error)
	GetAll(ctx context.Context) ([]*User, error)
	// GetByLogin looks a user up by username or email.
	GetByLogin(ctx context.Context, login string) (*User, error)
	ListByTeam(ctx context.Context, teamID int) ([]*User, error)
	// Create assigns ID and CreatedAt. Username and email are unique.
	Create(ctx context.Context, user *User) error
	Update(ctx context.Context, user *User) error
	Delete(ctx context.Context, id int) error
}
