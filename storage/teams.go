package storage

import (
	"context"
	"strings"
)

type TeamStorage interface {
	Get(ctx context.Context, id int) (*Team, error)
	GetAll(ctx context.Context) ([]*Team, error)
	// GetByName matches case-insensitively.
	GetByName(ctx context.Context, name string) (*Team, error)
	// Create assigns ID and CreatedAt. A case-insensitive name clash returns ErrAlreadyExists.
	Create(ctx context.Context, team *Team) error
	Update(ctx context.Context, team *Team) error
	Delete(ctx context.Context, id int) error
}

// NameKey is the normalized form team names are compared by.
func NameKey(name string) string {
	return strings.ToLower(strings.TrimSpace(name))
}
